package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-natal/internal/natal"
)

func TestFormModelInit(t *testing.T) {
	m := NewFormModel()

	if len(m.inputs) != fieldCount {
		t.Fatalf("expected %d inputs, got %d", fieldCount, len(m.inputs))
	}
	if m.focus != fieldName {
		t.Errorf("expected initial focus on name, got %d", m.focus)
	}
	if m.inputs[fieldDate].Placeholder != "1990-06-15" {
		t.Errorf("date placeholder = %q", m.inputs[fieldDate].Placeholder)
	}
}

func TestFormModelNavigation(t *testing.T) {
	m := NewFormModel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldGender {
		t.Errorf("after tab, focus = %d, want %d", m.focus, fieldGender)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldName {
		t.Errorf("after shift+tab, focus = %d, want %d", m.focus, fieldName)
	}

	// Wraps from the first field to the last
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldTime {
		t.Errorf("after wrap, focus = %d, want %d", m.focus, fieldTime)
	}
}

func TestFormModelEnterAdvances(t *testing.T) {
	m := NewFormModel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != fieldGender {
		t.Errorf("after enter, focus = %d, want %d", m.focus, fieldGender)
	}
}

func TestFormModelSubmitRequiresDate(t *testing.T) {
	m := NewFormModel()

	m, _ = m.submit()
	if m.errMsg != "birth date is required" {
		t.Errorf("errMsg = %q, want date-required error", m.errMsg)
	}
	if m.focus != fieldDate {
		t.Errorf("focus = %d, want the date field", m.focus)
	}
}

func TestFormModelSubmitBadDate(t *testing.T) {
	m := NewFormModel()
	m.inputs[fieldDate].SetValue("15/06/1990")

	m, _ = m.submit()
	if !strings.HasPrefix(m.errMsg, "invalid date") {
		t.Errorf("errMsg = %q, want invalid-date error", m.errMsg)
	}
	if m.focus != fieldDate {
		t.Errorf("focus = %d, want the date field", m.focus)
	}
}

func TestFormModelSubmitBadTime(t *testing.T) {
	m := NewFormModel()
	m.inputs[fieldDate].SetValue("1990-06-15")
	m.inputs[fieldTime].SetValue("25:99")

	m, _ = m.submit()
	if !strings.HasPrefix(m.errMsg, "invalid time") {
		t.Errorf("errMsg = %q, want invalid-time error", m.errMsg)
	}
	if m.focus != fieldTime {
		t.Errorf("focus = %d, want the time field", m.focus)
	}
}

func TestFormModelSubmitValid(t *testing.T) {
	m := NewFormModel()
	m.inputs[fieldName].SetValue("  Ada  ")
	m.inputs[fieldGender].SetValue("female")
	m.inputs[fieldDate].SetValue("1990-06-15")
	m.inputs[fieldTime].SetValue("14:30")

	m, cmd := m.submit()
	if m.errMsg != "" {
		t.Fatalf("unexpected errMsg %q", m.errMsg)
	}
	if cmd == nil {
		t.Fatal("expected a submit command")
	}

	msg, ok := cmd().(subjectSubmittedMsg)
	if !ok {
		t.Fatalf("expected subjectSubmittedMsg, got %T", cmd())
	}
	if msg.subject.Name != "Ada" {
		t.Errorf("name = %q, want trimmed %q", msg.subject.Name, "Ada")
	}
	if got := msg.subject.Moment.String(); got != "1990-06-15 14:30" {
		t.Errorf("moment = %q, want %q", got, "1990-06-15 14:30")
	}
}

func TestFormModelSubmitBlankTimeDefaultsToNoon(t *testing.T) {
	m := NewFormModel()
	m.inputs[fieldDate].SetValue("1990-06-15")

	m, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg, ok := cmd().(subjectSubmittedMsg)
	if !ok {
		t.Fatalf("expected subjectSubmittedMsg, got %T", cmd())
	}
	if msg.subject.Moment.Hour != 12 || msg.subject.Moment.Minute != 0 {
		t.Errorf("moment = %s, want noon default", msg.subject.Moment)
	}
}

func TestFormModelPrefill(t *testing.T) {
	moment, err := natal.ParseMoment("1984-02-29", "03:05")
	if err != nil {
		t.Fatalf("ParseMoment: %v", err)
	}
	m := NewFormModel().Prefill(natal.Subject{Name: "Ada", Gender: "female", Moment: moment})

	if got := m.inputs[fieldName].Value(); got != "Ada" {
		t.Errorf("name value = %q", got)
	}
	if got := m.inputs[fieldDate].Value(); got != "1984-02-29" {
		t.Errorf("date value = %q", got)
	}
	if got := m.inputs[fieldTime].Value(); got != "03:05" {
		t.Errorf("time value = %q", got)
	}
}

func TestFormModelViewShowsError(t *testing.T) {
	m := NewFormModel()
	m, _ = m.submit()

	view := m.View()
	if !strings.Contains(view, "birth date is required") {
		t.Error("view should surface the validation error")
	}
	if !strings.Contains(view, "Birth date") {
		t.Error("view should label the date field")
	}
}
