package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-natal/internal/natal"
	"github.com/litescript/ls-natal/internal/oracle"
	"github.com/litescript/ls-natal/internal/state"
)

func readingSnapshot(t *testing.T, readings ...oracle.Reading) state.Snapshot {
	t.Helper()

	mgr := state.NewManager(state.DefaultConfig())
	for _, r := range readings {
		mgr.AddReading(r)
	}
	return mgr.Snapshot()
}

func TestReadingModelDisabled(t *testing.T) {
	m := NewReadingModel(false)
	m = m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "disabled") {
		t.Error("view should say readings are disabled")
	}
	if !strings.Contains(view, "GEMINI_API_KEY") {
		t.Error("view should name the key variable")
	}
}

func TestReadingModelNoReadingYet(t *testing.T) {
	m := NewReadingModel(true)
	m = m.SetSize(80, 24)

	if !strings.Contains(m.View(), "No reading yet") {
		t.Error("view should invite a first reading")
	}
}

func TestReadingModelLoading(t *testing.T) {
	m := NewReadingModel(true)
	m = m.SetSize(80, 24)
	m = m.SetLoading(true)

	if !strings.Contains(m.View(), "Consulting the oracle") {
		t.Error("loading view should show the wait line")
	}
}

func TestReadingModelShowsReading(t *testing.T) {
	r := oracle.Reading{
		ID:        "r1",
		Subject:   natal.Subject{Name: "Ada"},
		Markdown:  "# Greeting\n\nHello from the stars.",
		Model:     "fake-model",
		CreatedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
		Elapsed:   1200 * time.Millisecond,
	}

	m := NewReadingModel(true)
	m = m.SetSize(100, 30)
	m = m.UpdateData(readingSnapshot(t, r))

	view := m.View()
	for _, want := range []string{"Reading for Ada", "fake-model", "1/1", "Greeting", "Hello"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if !strings.Contains(view, "%") {
		t.Error("view should show the scroll position")
	}
}

func TestReadingModelHistoryNavigation(t *testing.T) {
	first := oracle.Reading{ID: "r1", Markdown: "first"}
	second := oracle.Reading{ID: "r2", Markdown: "second"}

	m := NewReadingModel(true)
	m = m.SetSize(80, 24)
	m = m.UpdateData(readingSnapshot(t, first, second))

	// The latest reading is selected.
	if m.histIdx != 1 {
		t.Fatalf("expected histIdx 1, got %d", m.histIdx)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if m.histIdx != 0 {
		t.Errorf("after h, expected histIdx 0, got %d", m.histIdx)
	}

	// No wrap past the oldest.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if m.histIdx != 0 {
		t.Errorf("h at the oldest should stay, got %d", m.histIdx)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.histIdx != 1 {
		t.Errorf("after l, expected histIdx 1, got %d", m.histIdx)
	}

	// No wrap past the newest.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.histIdx != 1 {
		t.Errorf("l at the newest should stay, got %d", m.histIdx)
	}
}

func TestReadingModelSetReadingSelectsByID(t *testing.T) {
	first := oracle.Reading{ID: "r1", Markdown: "first"}
	second := oracle.Reading{ID: "r2", Markdown: "second"}

	m := NewReadingModel(true)
	m = m.SetSize(80, 24)
	m = m.UpdateData(readingSnapshot(t, first, second))

	m = m.SetReading(first)
	if m.histIdx != 0 {
		t.Errorf("expected histIdx 0 for r1, got %d", m.histIdx)
	}

	m = m.SetReading(second)
	if m.histIdx != 1 {
		t.Errorf("expected histIdx 1 for r2, got %d", m.histIdx)
	}
	if m.loading {
		t.Error("SetReading should clear the loading flag")
	}
}

func TestReadingModelSpinnerTicksOnlyWhileLoading(t *testing.T) {
	m := NewReadingModel(true)
	m = m.SetSize(80, 24)

	_, cmd := m.Update(spinner.TickMsg{Time: time.Now()})
	if cmd != nil {
		t.Error("spinner ticks should die once loading ends")
	}

	m = m.SetLoading(true)
	_, cmd = m.Update(spinner.TickMsg{Time: time.Now()})
	if cmd == nil {
		t.Error("spinner should keep ticking while loading")
	}
}
