package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/natal"
)

// Field indexes into the form's input list.
const (
	fieldName = iota
	fieldGender
	fieldDate
	fieldTime
	fieldCount
)

var (
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	formFocusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	formHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	formErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// FormModel collects the birth data that seeds a chart.
type FormModel struct {
	inputs []textinput.Model
	focus  int
	errMsg string
	width  int
	height int
}

// NewFormModel creates the birth form with the name field focused.
func NewFormModel() FormModel {
	inputs := make([]textinput.Model, fieldCount)

	name := textinput.New()
	name.Placeholder = "Ada Lovelace"
	name.CharLimit = 64
	name.Width = 28
	name.Focus()
	inputs[fieldName] = name

	gender := textinput.New()
	gender.Placeholder = "female"
	gender.CharLimit = 24
	gender.Width = 28
	inputs[fieldGender] = gender

	date := textinput.New()
	date.Placeholder = "1990-06-15"
	date.CharLimit = 10
	date.Width = 28
	inputs[fieldDate] = date

	clock := textinput.New()
	clock.Placeholder = "14:30"
	clock.CharLimit = 5
	clock.Width = 28
	inputs[fieldTime] = clock

	return FormModel{inputs: inputs}
}

// Prefill loads an existing subject into the form fields.
func (m FormModel) Prefill(s natal.Subject) FormModel {
	m.inputs[fieldName].SetValue(s.Name)
	m.inputs[fieldGender].SetValue(s.Gender)
	if !s.Moment.IsZero() {
		m.inputs[fieldDate].SetValue(s.Moment.Local().Format(natal.DateLayout))
		m.inputs[fieldTime].SetValue(s.Moment.Local().Format(natal.ClockLayout))
	}
	return m
}

// Init implements the Bubble Tea model interface.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the viewport size.
func (m FormModel) SetSize(width, height int) FormModel {
	m.width = width
	m.height = height
	return m
}

// Update handles input messages.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, textinput.Blink
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, textinput.Blink
		case "enter":
			// Enter advances; on the last field it submits.
			if m.focus < fieldCount-1 {
				m.setFocus(m.focus + 1)
				return m, textinput.Blink
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// submit validates the fields and emits the subject, or surfaces the first
// validation error inline and refocuses the offending field.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	date := strings.TrimSpace(m.inputs[fieldDate].Value())
	clock := strings.TrimSpace(m.inputs[fieldTime].Value())

	if date == "" {
		m.errMsg = "birth date is required"
		m.setFocus(fieldDate)
		return m, textinput.Blink
	}
	if clock == "" {
		// Unknown birth time: charts traditionally assume noon.
		clock = "12:00"
	}

	moment, err := natal.ParseMoment(date, clock)
	if err != nil {
		m.errMsg = err.Error()
		if strings.HasPrefix(err.Error(), "invalid date") {
			m.setFocus(fieldDate)
		} else {
			m.setFocus(fieldTime)
		}
		return m, textinput.Blink
	}

	m.errMsg = ""
	subject := natal.Subject{
		Name:   strings.TrimSpace(m.inputs[fieldName].Value()),
		Gender: strings.TrimSpace(m.inputs[fieldGender].Value()),
		Moment: moment,
	}
	return m, func() tea.Msg {
		return subjectSubmittedMsg{subject: subject}
	}
}

// View renders the form.
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString("  " + formTitleStyle.Render("Cast a natal chart"))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Name", "Gender", "Birth date", "Birth time"}
	hints := [fieldCount]string{"optional", "optional", "YYYY-MM-DD", "HH:MM local, blank = noon"}

	for i := range m.inputs {
		label := fmt.Sprintf("%-11s", labels[i])
		if i == m.focus {
			b.WriteString("  " + formFocusStyle.Render("▶ "+label))
		} else {
			b.WriteString("  " + formLabelStyle.Render("  "+label))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString(formHintStyle.Render("  " + hints[i]))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n  " + formErrorStyle.Render("✗ "+m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n  " + formHintStyle.Render("The date and time are read in this machine's time zone."))
	b.WriteString("\n")

	return b.String()
}
