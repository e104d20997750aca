// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/natal"
	"github.com/litescript/ls-natal/internal/oracle"
	"github.com/litescript/ls-natal/internal/state"
	"github.com/litescript/ls-natal/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewForm ViewMode = iota
	ViewWheel
	ViewReading
	ViewPositions
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// subjectSubmittedMsg carries a validated birth form submission.
	subjectSubmittedMsg struct {
		subject natal.Subject
	}

	// readingResultMsg delivers the outcome of an oracle request.
	readingResultMsg struct {
		reading oracle.Reading
		err     error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state     *state.Manager
	projector *natal.Projector
	oracle    *oracle.Generator // nil when no API key is configured

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	statusErr bool
	animTick  int

	// Sub-models
	form      FormModel
	wheel     WheelModel
	reading   ReadingModel
	positions PositionsModel

	// Data snapshot (refreshed on ticks and after every state write)
	snapshot state.Snapshot

	// One oracle request may be outstanding; further ones are refused.
	readingInFlight bool
}

// New creates the root UI model. gen may be nil; the reading view then
// explains how to enable readings.
func New(stateMgr *state.Manager, projector *natal.Projector, gen *oracle.Generator) Model {
	form := NewFormModel()
	if subj, ok := stateMgr.Subject(); ok {
		form = form.Prefill(subj)
	}

	m := Model{
		state:     stateMgr,
		projector: projector,
		oracle:    gen,
		viewMode:  ViewForm,
		form:      form,
		wheel:     NewWheelModel(),
		reading:   NewReadingModel(gen != nil),
		positions: NewPositionsModel(),
		snapshot:  stateMgr.Snapshot(),
	}

	// A chart computed before launch (e.g. a prefilled session) skips the form.
	if len(m.snapshot.Positions) > 0 {
		m.pushSnapshot()
		m.viewMode = ViewWheel
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.form.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// The form owns the keyboard while it is visible: someone typing a
		// name must be able to use q, g and the digits.
		if m.viewMode == ViewForm {
			if msg.String() == "esc" && m.hasChart() {
				m.viewMode = ViewWheel
				break
			}
			cmds = append(cmds, m.updateActiveView(msg))
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "1", "e":
			m.viewMode = ViewForm
			cmds = append(cmds, textinput.Blink)
		case "2", "w":
			m.viewMode = ViewWheel
		case "3", "r":
			m.viewMode = ViewReading
		case "4", "p":
			m.viewMode = ViewPositions

		case "tab":
			// Cycle through views
			m.viewMode = (m.viewMode + 1) % 4
			if m.viewMode == ViewForm {
				cmds = append(cmds, textinput.Blink)
			}

		case "g":
			cmds = append(cmds, m.requestReading())

		default:
			// Pass to active view
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Propagate to sub-models.
		// Logo takes ~10 lines, tabs 2, footer 2.
		contentHeight := msg.Height - 14
		if contentHeight < 5 {
			contentHeight = 5
		}
		m.form = m.form.SetSize(msg.Width, contentHeight)
		m.wheel = m.wheel.SetSize(msg.Width, contentHeight)
		m.reading = m.reading.SetSize(msg.Width, contentHeight)
		m.positions = m.positions.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()
		m.positions = m.positions.UpdateData(m.snapshot)

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case spinner.TickMsg:
		// The reading spinner must keep turning even while another view is
		// active, so its ticks bypass the active-view routing.
		var cmd tea.Cmd
		m.reading, cmd = m.reading.Update(msg)
		cmds = append(cmds, cmd)

	case subjectSubmittedMsg:
		m.state.SetSubject(msg.subject)
		m = m.computeChart(msg.subject.Moment)
		m.viewMode = ViewWheel

	case readingResultMsg:
		m.readingInFlight = false
		if msg.err != nil {
			m.reading = m.reading.SetLoading(false)
			m.setStatus("Reading failed: "+msg.err.Error(), true)
			break
		}
		m.state.AddReading(msg.reading)
		m.snapshot = m.state.Snapshot()
		m.pushSnapshot()
		m.reading = m.reading.SetReading(msg.reading)
		m.setStatus("", false)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewWheel:
		m.wheel, cmd = m.wheel.Update(msg)
	case ViewReading:
		m.reading, cmd = m.reading.Update(msg)
	case ViewPositions:
		m.positions, cmd = m.positions.Update(msg)
	}
	return cmd
}

func (m Model) hasChart() bool {
	return len(m.snapshot.Positions) > 0
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// pushSnapshot hands the current snapshot to every view that draws from it.
func (m *Model) pushSnapshot() {
	m.wheel = m.wheel.UpdateData(m.snapshot)
	m.positions = m.positions.UpdateData(m.snapshot)
	m.reading = m.reading.UpdateData(m.snapshot)
}

// computeChart projects the chart for a moment and publishes it through the
// session state. Projection runs synchronously: the analytic provider needs
// microseconds, and one Horizons pass is still well within the patience of
// someone who just pressed enter on a birth form.
func (m Model) computeChart(moment natal.BirthMoment) Model {
	start := time.Now()
	positions := m.projector.Positions(moment)
	aspects := natal.FindAspects(positions)
	m.state.UpdateChart(positions, aspects, m.projector.ProviderName(), time.Since(start), nil)

	m.snapshot = m.state.Snapshot()
	m.pushSnapshot()

	if n := natal.ValidCount(positions); n < len(positions) {
		m.setStatus(fmt.Sprintf("%d of %d bodies could not be computed", len(positions)-n, len(positions)), true)
	} else {
		m.setStatus("", false)
	}
	return m
}

// requestReading starts one oracle request. A second press while a request
// is in flight is refused, not queued.
func (m *Model) requestReading() tea.Cmd {
	if !m.hasChart() {
		return nil
	}
	if m.oracle == nil {
		m.setStatus("Readings disabled: set GEMINI_API_KEY and restart", true)
		m.viewMode = ViewReading
		return nil
	}
	if m.readingInFlight {
		m.setStatus("A reading is already being generated", false)
		return nil
	}
	subject, ok := m.state.Subject()
	if !ok {
		return nil
	}

	m.readingInFlight = true
	m.reading = m.reading.SetLoading(true)
	m.viewMode = ViewReading
	m.setStatus("", false)

	gen := m.oracle
	positions := m.snapshot.Positions
	aspects := m.snapshot.Aspects
	return tea.Batch(m.reading.SpinTick(), func() tea.Msg {
		r, err := gen.Generate(context.Background(), subject, positions, aspects)
		return readingResultMsg{reading: r, err: err}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewForm:
		content = m.form.View()
	case ViewWheel:
		content = m.wheel.View()
	case ViewReading:
		content = m.reading.View()
	case ViewPositions:
		content = m.positions.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗      ███╗   ██╗ █████╗ ████████╗ █████╗ ██╗`,
		`  ██║     ██╔════╝      ████╗  ██║██╔══██╗╚══██╔══╝██╔══██╗██║`,
		`  ██║     ███████╗█████╗██╔██╗ ██║███████║   ██║   ███████║██║`,
		`  ██║     ╚════██║╚════╝██║╚██╗██║██╔══██║   ██║   ██╔══██║██║`,
		`  ███████╗███████║      ██║ ╚████║██║  ██║   ██║   ██║  ██║███████╗`,
		`  ╚══════╝╚══════╝      ╚═╝  ╚═══╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚══════╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	// Horizontal truecolor gradient, fading toward the bottom rows.
	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := logoColor(col, row, len(runes), len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Natal charts · Ephemeris · Oracle readings"))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// logoColor returns a hex color for a position in the logo gradient: dawn
// gold through rose into deep violet, brighter at the top.
func logoColor(col, row, width, height int) string {
	x := float64(col) / float64(width)
	y := float64(row) / float64(height)

	stops := [4][3]float64{
		{232, 180, 76},  // gold
		{217, 106, 139}, // rose
		{139, 92, 246},  // violet
		{91, 60, 196},   // deep violet
	}

	seg := x * 3
	i := int(seg)
	if i > 2 {
		i = 2
	}
	t := seg - float64(i)

	fade := 1.0 - y*0.45
	r := (stops[i][0] + t*(stops[i+1][0]-stops[i][0])) * fade
	g := (stops[i][1] + t*(stops[i+1][1]-stops[i][1])) * fade
	bl := (stops[i][2] + t*(stops[i+1][2]-stops[i][2])) * fade

	return fmt.Sprintf("#%02X%02X%02X", clamp8(r), clamp8(g), clamp8(bl))
}

func clamp8(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Form", "[2] Wheel", "[3] Reading", "[4] Positions"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spin := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.readingInFlight:
		status = accentStyle.Render(spin) + " " + m.shimmer("Consulting the oracle...")
	case m.statusMsg != "" && m.statusErr:
		status = errorStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		status = dimStyle.Render(m.statusMsg)
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.hasChart():
		status = dimStyle.Render(fmt.Sprintf("%s · %d bodies · computed in %s",
			m.snapshot.Provider,
			natal.ValidCount(m.snapshot.Positions),
			m.snapshot.ComputeDuration.Round(time.Microsecond)))
	default:
		status = accentStyle.Render(spin) + " " + m.shimmer("Awaiting birth data...")
	}

	var help string
	switch m.viewMode {
	case ViewForm:
		help = dimStyle.Render("tab/↑↓: field | enter: next, last submits | ctrl+c: quit")
	case ViewWheel:
		help = dimStyle.Render("j/k: focus body | a: aspects | u: guides | g: reading | e: edit")
	case ViewReading:
		help = dimStyle.Render("↑↓: scroll | h/l: older/newer | g: new reading | tab: switch view")
	case ViewPositions:
		help = dimStyle.Render("j/k: focus body | tab: switch view")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// shimmer renders text with a soft highlight sweeping across it.
func (m Model) shimmer(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	pos := m.animTick % (len(runes) + 6)

	var b strings.Builder
	for i, r := range runes {
		d := i - pos + 3
		if d < 0 {
			d = -d
		}
		var c string
		switch {
		case d <= 1:
			c = "#C9B8F0"
		case d <= 3:
			c = "#9A86CC"
		default:
			c = "#655487"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return b.String()
}

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
