package oracle

import (
	"strings"
	"testing"

	"github.com/litescript/ls-natal/internal/natal"
)

func promptSubject() natal.Subject {
	return natal.Subject{
		Name:   "Ada",
		Gender: "female",
		Moment: natal.BirthMoment{Year: 1990, Month: 6, Day: 15, Hour: 14, Minute: 30},
	}
}

func promptPositions(lons ...float64) []natal.BodyPosition {
	positions := make([]natal.BodyPosition, len(lons))
	for i, lon := range lons {
		positions[i] = natal.BodyPosition{
			Body:         natal.Bodies[i],
			LongitudeDeg: lon,
			Sector:       natal.SectorFor(lon),
			Valid:        true,
		}
	}
	return positions
}

func TestBuildPrompt(t *testing.T) {
	positions := promptPositions(84.3, 33, 110, 201, 204.5, 259, 305)
	positions[1].Valid = false
	aspects := natal.FindAspects(positions)

	prompt := BuildPrompt(promptSubject(), positions, aspects)

	for _, want := range []string{
		"Name: Ada",
		"Gender: female",
		"Born: 1990-06-15 14:30",
		"Sun in Gemini (84.3°)",
		"Moon: position unavailable",
		"Mars in Libra (204.5°)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}

	// Venus 201° and Mars 204.5° are conjunct; the line names both bodies.
	if !strings.Contains(prompt, "Venus conjunction Mars (orb 3.5°)") {
		t.Errorf("prompt missing aspect line\n%s", prompt)
	}
}

func TestBuildPromptWithoutAspects(t *testing.T) {
	positions := promptPositions(10, 55, 110, 165, 220, 275, 330)

	prompt := BuildPrompt(promptSubject(), positions, nil)

	if !strings.Contains(prompt, "Aspects: none within orb.") {
		t.Errorf("prompt missing empty-aspect note\n%s", prompt)
	}
}

func TestBuildPromptAnonymousSubject(t *testing.T) {
	prompt := BuildPrompt(natal.Subject{}, promptPositions(10), nil)

	if !strings.Contains(prompt, "Name: the subject") {
		t.Errorf("prompt missing fallback name\n%s", prompt)
	}
	if strings.Contains(prompt, "Gender:") {
		t.Error("empty gender should be omitted")
	}
}
