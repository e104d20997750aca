package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/oracle"
	"github.com/litescript/ls-natal/internal/state"
)

var (
	readingTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	readingMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	readingDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	readingWaitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
)

// ReadingModel displays oracle readings as rendered markdown in a scrollable
// viewport, with access to the session's reading history.
type ReadingModel struct {
	width  int
	height int

	vp      viewport.Model
	vpReady bool
	spin    spinner.Model

	enabled bool // An oracle generator is configured
	loading bool // A request is in flight

	// Session history, oldest first. histIdx selects the displayed reading;
	// -1 means none yet.
	readings []oracle.Reading
	histIdx  int
}

// NewReadingModel creates a new reading view model. enabled reports whether
// an oracle generator is available at all.
func NewReadingModel(enabled bool) ReadingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReadingModel{
		spin:    sp,
		enabled: enabled,
		histIdx: -1,
	}
}

// SetSize updates the viewport size.
func (m ReadingModel) SetSize(width, height int) ReadingModel {
	m.width = width
	m.height = height

	vpHeight := height - 3 // Header, blank line, scroll indicator
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.vpReady {
		m.vp = viewport.New(width, vpHeight)
		m.vpReady = true
	} else {
		m.vp.Width = width
		m.vp.Height = vpHeight
	}

	// Word wrap depends on the width, so the markdown must be re-rendered.
	m.rerender()
	return m
}

// UpdateData refreshes the reading history from a state snapshot.
func (m ReadingModel) UpdateData(snapshot state.Snapshot) ReadingModel {
	m.readings = snapshot.Readings
	if m.histIdx >= len(m.readings) {
		m.histIdx = len(m.readings) - 1
	}
	if m.histIdx < 0 && len(m.readings) > 0 {
		m.histIdx = len(m.readings) - 1
	}
	m.rerender()
	return m
}

// SetLoading marks a request as in flight (or clears it after a failure).
func (m ReadingModel) SetLoading(v bool) ReadingModel {
	m.loading = v
	return m
}

// SetReading selects a freshly generated reading. The caller pushes the
// snapshot containing it first, so it is normally the last in the history.
func (m ReadingModel) SetReading(r oracle.Reading) ReadingModel {
	m.loading = false
	m.histIdx = len(m.readings) - 1
	for i := range m.readings {
		if m.readings[i].ID == r.ID {
			m.histIdx = i
			break
		}
	}
	m.rerender()
	if m.vpReady {
		m.vp.GotoTop()
	}
	return m
}

// SpinTick returns the command that starts the loading spinner.
func (m ReadingModel) SpinTick() tea.Cmd {
	return m.spin.Tick
}

// Update handles input messages.
func (m ReadingModel) Update(msg tea.Msg) (ReadingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil // Drop the tick chain once loading ends
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "h", "left":
			if m.histIdx > 0 {
				m.histIdx--
				m.rerender()
				m.vp.GotoTop()
			}
			return m, nil
		case "l", "right":
			if m.histIdx >= 0 && m.histIdx < len(m.readings)-1 {
				m.histIdx++
				m.rerender()
				m.vp.GotoTop()
			}
			return m, nil
		}
	}

	if m.vpReady {
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// rerender re-renders the selected reading's markdown into the viewport.
func (m *ReadingModel) rerender() {
	if !m.vpReady || m.histIdx < 0 || m.histIdx >= len(m.readings) {
		return
	}
	md := m.readings[m.histIdx].Markdown

	wrap := m.width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.vp.SetContent(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		// Fall back to the raw markdown rather than hiding the reading.
		m.vp.SetContent(md)
		return
	}
	m.vp.SetContent(out)
}

// View renders the reading view.
func (m ReadingModel) View() string {
	if !m.enabled {
		return "\n" + readingMetaStyle.Render("  Readings are disabled.") + "\n\n" +
			readingDimStyle.Render("  Set GEMINI_API_KEY (or oracle.api_key in the config file)\n"+
				"  and restart to consult the oracle.") + "\n"
	}

	if m.loading {
		return "\n  " + m.spin.View() + readingWaitStyle.Render("Consulting the oracle...") + "\n\n" +
			readingDimStyle.Render("  The reading usually takes a few seconds. You can switch\n"+
				"  views while you wait; it will be here when it is done.") + "\n"
	}

	if m.histIdx < 0 || m.histIdx >= len(m.readings) {
		return "\n" + readingMetaStyle.Render("  No reading yet.") + "\n\n" +
			readingDimStyle.Render("  Press g to ask the oracle about the current chart.") + "\n"
	}

	r := m.readings[m.histIdx]

	title := "Reading"
	if r.Subject.Name != "" {
		title = "Reading for " + r.Subject.Name
	}
	meta := fmt.Sprintf("%s · %s · %s · %d/%d",
		r.Model,
		r.CreatedAt.Format("2006-01-02 15:04"),
		r.Elapsed.Round(time.Millisecond),
		m.histIdx+1, len(m.readings))

	var b strings.Builder
	b.WriteString("  " + readingTitleStyle.Render("◆ "+title))
	b.WriteString("  " + readingDimStyle.Render(meta))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString("  " + readingDimStyle.Render(fmt.Sprintf("%3.0f%%", m.vp.ScrollPercent()*100)))

	return b.String()
}
