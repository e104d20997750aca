package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/natal"
	"github.com/litescript/ls-natal/internal/state"
)

var (
	posTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	posColHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	posRowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	posFocusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	posErrStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	posDimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// PositionsModel renders the computed positions as a table, with the aspect
// list and a description of the focused body's sector below it.
type PositionsModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	focusIdx int
}

// NewPositionsModel creates a new positions view model.
func NewPositionsModel() PositionsModel {
	return PositionsModel{}
}

// SetSize updates the viewport size.
func (m PositionsModel) SetSize(width, height int) PositionsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m PositionsModel) UpdateData(snapshot state.Snapshot) PositionsModel {
	m.snapshot = snapshot
	if m.focusIdx >= len(snapshot.Positions) {
		m.focusIdx = 0
	}
	return m
}

// Update handles input messages.
func (m PositionsModel) Update(msg tea.Msg) (PositionsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		n := len(m.snapshot.Positions)
		if n == 0 {
			return m, nil
		}
		switch key.String() {
		case "j", "down":
			m.focusIdx = (m.focusIdx + 1) % n
		case "k", "up":
			m.focusIdx = (m.focusIdx + n - 1) % n
		}
	}
	return m, nil
}

// View renders the positions view.
func (m PositionsModel) View() string {
	if len(m.snapshot.Positions) == 0 {
		return "\n  No chart yet — fill in the birth form first.\n"
	}

	var b strings.Builder

	title := "◆ Positions"
	if m.snapshot.Provider != "" {
		title += " — " + m.snapshot.Provider
	}
	if !m.snapshot.ComputedAt.IsZero() {
		title += posDimStyle.Render(" · " + m.snapshot.ComputedAt.Format("15:04:05"))
	}
	b.WriteString("  " + posTitleStyle.Render(title) + "\n")

	b.WriteString("    " + posColHeadStyle.Render(fmt.Sprintf(
		"%-12s %-20s %9s %8s %12s  %s",
		"BODY", "POSITION", "LON", "LAT", "DIST", "ELEM")) + "\n")

	for i, p := range m.snapshot.Positions {
		prefix := "  "
		rowStyle := posRowStyle
		if i == m.focusIdx {
			prefix = "▶ "
			rowStyle = posFocusStyle
		}
		b.WriteString("  " + prefix)

		bodyCell := fmt.Sprintf("%c %s", p.Body.Glyph, p.Body.Name)
		if !p.Valid {
			reason := "unavailable"
			if p.Err != nil {
				reason = "unavailable: " + p.Err.Error()
			}
			b.WriteString(rowStyle.Render(fmt.Sprintf("%-12s ", bodyCell)))
			b.WriteString(posErrStyle.Render(truncate(reason, m.width-18)))
			b.WriteString("\n")
			continue
		}

		b.WriteString(rowStyle.Render(fmt.Sprintf(
			"%-12s %-20s %9s %8s %12s  %s",
			bodyCell,
			natal.FormatSignDeg(p),
			fmt.Sprintf("%.2f°", p.LongitudeDeg),
			fmt.Sprintf("%+.2f°", p.LatitudeDeg),
			fmt.Sprintf("%.4f AU", p.DistanceAU),
			p.Sector.Element)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderAspects())
	b.WriteString(m.renderSectorNote())

	return b.String()
}

func (m PositionsModel) renderAspects() string {
	var b strings.Builder

	b.WriteString("  " + posTitleStyle.Render(fmt.Sprintf("◆ Aspects (%d)", len(m.snapshot.Aspects))) + "\n")
	if len(m.snapshot.Aspects) == 0 {
		b.WriteString("    " + posDimStyle.Render("none within orb") + "\n")
		return b.String()
	}

	// Body rows, titles and the sector note take the rest of the screen.
	maxRows := m.height - len(m.snapshot.Positions) - 6
	if maxRows < 1 {
		maxRows = 1
	}

	for i, h := range m.snapshot.Aspects {
		if i == maxRows && len(m.snapshot.Aspects) > maxRows {
			b.WriteString("    " + posDimStyle.Render(fmt.Sprintf("… +%d more", len(m.snapshot.Aspects)-maxRows)) + "\n")
			break
		}
		pa := m.snapshot.Positions[h.A]
		pb := m.snapshot.Positions[h.B]
		line := fmt.Sprintf("%c %c %c   %-12s orb %.1f°",
			pa.Body.Glyph, h.Aspect.Glyph, pb.Body.Glyph, h.Aspect.Name, h.OrbDeg)
		b.WriteString("    " + posRowStyle.Render(line) + "\n")
	}
	return b.String()
}

func (m PositionsModel) renderSectorNote() string {
	p := m.snapshot.Positions[m.focusIdx]
	if !p.Valid {
		return ""
	}
	s := p.Sector
	note := fmt.Sprintf("◆ %c %s — %s", s.Glyph, s.Name, s.Description)
	return "\n  " + posDimStyle.Render(truncate(note, m.width-4)) + "\n"
}

// truncate shortens a string to max runes, ending with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
