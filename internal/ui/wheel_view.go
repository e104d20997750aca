package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/chart"
	"github.com/litescript/ls-natal/internal/natal"
	"github.com/litescript/ls-natal/internal/state"
)

// WheelModel renders the natal wheel on a character canvas. It rasterizes
// the same primitives the SVG sink draws, so the two stay in agreement.
type WheelModel struct {
	width    int
	height   int
	snapshot state.Snapshot

	// View state
	focusIdx    int  // Index into snapshot.Positions
	showAspects bool // Draw aspect chords
	showGuides  bool // Draw center-to-marker guides
}

// NewWheelModel creates a new wheel view model.
func NewWheelModel() WheelModel {
	return WheelModel{showAspects: true}
}

// SetSize updates the viewport size.
func (m WheelModel) SetSize(width, height int) WheelModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m WheelModel) UpdateData(snapshot state.Snapshot) WheelModel {
	m.snapshot = snapshot
	if m.focusIdx >= len(snapshot.Positions) {
		m.focusIdx = 0
	}
	return m
}

// Update handles input messages.
func (m WheelModel) Update(msg tea.Msg) (WheelModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "j", "[":
			m.focusPrev()
		case "k", "]":
			m.focusNext()
		case "a":
			m.showAspects = !m.showAspects
		case "u":
			m.showGuides = !m.showGuides
		}
	}
	return m, nil
}

func (m *WheelModel) focusNext() {
	if len(m.snapshot.Positions) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.snapshot.Positions)
}

func (m *WheelModel) focusPrev() {
	if len(m.snapshot.Positions) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + len(m.snapshot.Positions) - 1) % len(m.snapshot.Positions)
}

// View renders the wheel view.
func (m WheelModel) View() string {
	if len(m.snapshot.Positions) == 0 {
		return "\n  No chart yet — fill in the birth form first.\n"
	}
	if m.width < 40 || m.height < 14 {
		return "Terminal too small for the wheel view"
	}

	canvas := m.buildCanvas()
	hud := m.renderHUD()
	return lipgloss.JoinVertical(lipgloss.Left, canvas, hud)
}

// buildCanvas rasterizes the wheel primitives onto a rune grid. The wheel
// is laid out at its native size and scaled down to the canvas; terminal
// cells are roughly twice as tall as wide, so Y is additionally compressed
// by half to keep the wheel visually circular.
func (m WheelModel) buildCanvas() string {
	canvasH := m.height - 4 // HUD lines
	if canvasH < 9 {
		canvasH = 9
	}
	canvasW := m.width

	wheel := chart.Layout(m.snapshot.Positions, m.snapshot.Aspects, chart.DefaultSize)

	// The wheel square spans size columns and size/2 rows on screen.
	size := math.Min(float64(canvasW-1), float64((canvasH-1)*2))
	k := size / wheel.Size

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	offX := (float64(canvasW) - size) / 2
	offY := (float64(canvasH) - size/2) / 2

	cell := func(p chart.Point) (int, int) {
		return int(math.Round(p.X*k + offX)), int(math.Round(p.Y*k*0.5 + offY))
	}
	plot := func(p chart.Point, r rune, overwrite bool) {
		x, y := cell(p)
		if x < 0 || x >= canvasW || y < 0 || y >= canvasH {
			return
		}
		if !overwrite && grid[y][x] != ' ' {
			return
		}
		grid[y][x] = r
	}

	for _, r := range wheel.Rings {
		m.traceCircle(plot, wheel.Center, r, k)
	}
	for _, l := range wheel.Dividers {
		m.traceLine(plot, l, k, '·', false)
	}
	if m.showGuides {
		for _, l := range wheel.Guides {
			m.traceLine(plot, l, k, '·', false)
		}
	}

	// Glyphs and chords overwrite the dotted structure.
	for _, l := range wheel.SectorLabels {
		plot(l.At, l.Glyph, true)
	}
	if m.showAspects {
		for _, l := range wheel.Chords {
			m.traceLine(plot, l, k, '∙', true)
		}
	}
	for _, mk := range wheel.Markers {
		plot(mk.At, mk.Glyph, true)
	}
	plot(wheel.CenterMark.At, '+', true)

	m.labelFocused(grid, wheel, cell)

	return m.renderGrid(grid)
}

// traceCircle draws a dotted circle in wheel space, stepping roughly one
// canvas cell per dot.
func (m WheelModel) traceCircle(plot func(chart.Point, rune, bool), c chart.Point, r, k float64) {
	steps := int(2 * math.Pi * r * k)
	if steps < 8 {
		steps = 8
	}
	if steps > 360 {
		steps = 360
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := chart.Point{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)}
		plot(p, '·', false)
	}
}

// traceLine draws a line by stepping along the segment, one step per cell.
func (m WheelModel) traceLine(plot func(chart.Point, rune, bool), l chart.Line, k float64, r rune, overwrite bool) {
	dx := (l.To.X - l.From.X) * k
	dy := (l.To.Y - l.From.Y) * k * 0.5
	steps := int(math.Hypot(dx, dy)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := chart.Point{
			X: l.From.X + t*(l.To.X-l.From.X),
			Y: l.From.Y + t*(l.To.Y-l.From.Y),
		}
		plot(p, r, overwrite)
	}
}

// labelFocused writes "◄ Name" beside the focused body's marker, like the
// marker labels in any decent star atlas.
func (m WheelModel) labelFocused(grid [][]rune, wheel chart.Wheel, cell func(chart.Point) (int, int)) {
	p := m.snapshot.Positions[m.focusIdx]
	if !p.Valid {
		return
	}

	for _, mk := range wheel.Markers {
		if mk.Glyph != p.Body.Glyph {
			continue
		}
		mx, my := cell(mk.At)
		if my < 0 || my >= len(grid) {
			return
		}
		label := "◄ " + p.Body.Name
		for i, r := range label {
			x := mx + 2 + i
			if x >= len(grid[my]) {
				break
			}
			if x < 0 {
				continue
			}
			// Only write over empty cells or the dotted structure.
			if grid[my][x] == ' ' || grid[my][x] == '·' {
				grid[my][x] = r
			}
		}
		return
	}
}

var (
	wheelDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	wheelChordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	wheelFocusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	wheelLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	// Glyph styles come from the shared color tables so the terminal wheel
	// matches the SVG palette.
	canvasGlyphStyles = buildCanvasStyles()
)

func buildCanvasStyles() map[rune]lipgloss.Style {
	styles := make(map[rune]lipgloss.Style, len(natal.Bodies)+len(natal.Sectors))
	for _, b := range natal.Bodies {
		styles[b.Glyph] = lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Bold(true)
	}
	for _, s := range natal.Sectors {
		styles[s.Glyph] = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
	}
	return styles
}

func (m WheelModel) renderGrid(grid [][]rune) string {
	var b strings.Builder

	var focusGlyph rune
	if m.focusIdx < len(m.snapshot.Positions) {
		focusGlyph = m.snapshot.Positions[m.focusIdx].Body.Glyph
	}

	for _, row := range grid {
		for _, ch := range row {
			switch {
			case ch == ' ':
				b.WriteRune(ch)
			case ch == focusGlyph:
				b.WriteString(wheelFocusStyle.Render(string(ch)))
			case ch == '·' || ch == '+':
				b.WriteString(wheelDimStyle.Render(string(ch)))
			case ch == '∙':
				b.WriteString(wheelChordStyle.Render(string(ch)))
			default:
				if st, ok := canvasGlyphStyles[ch]; ok {
					b.WriteString(st.Render(string(ch)))
				} else {
					b.WriteString(wheelLabelStyle.Render(string(ch)))
				}
			}
		}
		b.WriteRune('\n')
	}

	return b.String()
}

func (m WheelModel) renderHUD() string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder

	name := "Natal wheel"
	if m.snapshot.HasSubject && m.snapshot.Subject.Name != "" {
		name = m.snapshot.Subject.Name
	}
	b.WriteString(headerStyle.Render("◆ " + name))
	if m.snapshot.HasSubject {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(m.snapshot.Subject.Moment.String() + " local"))
	}
	b.WriteString("\n")

	p := m.snapshot.Positions[m.focusIdx]
	if p.Valid {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%c %-8s", p.Body.Glyph, p.Body.Name)))
		b.WriteString(valueStyle.Render(natal.FormatSignDeg(p)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("lon "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f°", p.LongitudeDeg)))
	} else {
		reason := "unavailable"
		if p.Err != nil {
			reason = p.Err.Error()
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%c %-8s", p.Body.Glyph, p.Body.Name)))
		b.WriteString(dimStyle.Render("— " + reason))
	}
	b.WriteString("\n")

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}
	b.WriteString(dimStyle.Render("Aspects:"))
	b.WriteString(valueStyle.Render(onOff(m.showAspects)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Guides:"))
	b.WriteString(valueStyle.Render(onOff(m.showGuides)))

	return b.String()
}
