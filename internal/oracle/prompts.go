package oracle

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-natal/internal/natal"
)

// readingSystemPrompt frames every reading request. The chart data itself
// arrives in the user prompt built by BuildPrompt.
const readingSystemPrompt = `You are a thoughtful, literate astrologer writing a natal chart reading.

You are given the subject's details and their chart: geocentric ecliptic
longitudes of the seven classical bodies, the zodiac sign each occupies, and
the Ptolemaic aspects between them.

Write the reading in Markdown:
- Open with a short portrait of the person suggested by the chart as a whole.
- Then one section per body, titled with the body and its sign, interpreting
  that placement.
- Close with a section on the aspects and how they color the placements.
- If a body is marked unavailable, say its position could not be computed and
  move on. Never invent a position.

Keep the tone warm and concrete, not vague. Address the subject by name.
Aim for 500-800 words.`

// BuildPrompt renders a chart as the user prompt for a reading.
func BuildPrompt(subject natal.Subject, positions []natal.BodyPosition, aspects []natal.AspectHit) string {
	var b strings.Builder

	name := strings.TrimSpace(subject.Name)
	if name == "" {
		name = "the subject"
	}
	fmt.Fprintf(&b, "Name: %s\n", name)
	if g := strings.TrimSpace(subject.Gender); g != "" {
		fmt.Fprintf(&b, "Gender: %s\n", g)
	}
	fmt.Fprintf(&b, "Born: %s (local time)\n", subject.Moment)

	b.WriteString("\nPlanetary positions:\n")
	for _, p := range positions {
		if !p.Valid {
			fmt.Fprintf(&b, "- %s: position unavailable\n", p.Body.Name)
			continue
		}
		fmt.Fprintf(&b, "- %s in %s (%.1f°)\n", p.Body.Name, p.Sector.Name, p.LongitudeDeg)
	}

	if len(aspects) > 0 {
		b.WriteString("\nAspects:\n")
		for _, h := range aspects {
			fmt.Fprintf(&b, "- %s %s %s (orb %.1f°)\n",
				positions[h.A].Body.Name, h.Aspect.Name, positions[h.B].Body.Name, h.OrbDeg)
		}
	} else {
		b.WriteString("\nAspects: none within orb.\n")
	}

	return b.String()
}
