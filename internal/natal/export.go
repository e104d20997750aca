package natal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-natal/internal/astro"
)

// ChartExport is the JSON-serializable representation of a computed chart.
type ChartExport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Provider    string           `json:"provider"`
	Subject     SubjectExport    `json:"subject"`
	Positions   []PositionExport `json:"positions"`
	Aspects     []AspectExport   `json:"aspects"`
}

// SubjectExport is a JSON-friendly subject representation.
type SubjectExport struct {
	Name   string `json:"name,omitempty"`
	Gender string `json:"gender,omitempty"`
	Moment string `json:"moment"`
}

// PositionExport is a JSON-friendly body position.
type PositionExport struct {
	Body         string  `json:"body"`
	LongitudeDeg float64 `json:"longitude_deg"`
	LatitudeDeg  float64 `json:"latitude_deg"`
	DistanceAU   float64 `json:"distance_au"`
	Sector       string  `json:"sector,omitempty"`
	SignDeg      float64 `json:"sign_deg"`
	Valid        bool    `json:"valid"`
	Error        string  `json:"error,omitempty"`
}

// AspectExport is a JSON-friendly aspect hit.
type AspectExport struct {
	BodyA  string  `json:"body_a"`
	BodyB  string  `json:"body_b"`
	Aspect string  `json:"aspect"`
	OrbDeg float64 `json:"orb_deg"`
}

// ExportChart converts computed chart data to an exportable format.
func ExportChart(subject Subject, positions []BodyPosition, aspects []AspectHit, provider string) *ChartExport {
	export := &ChartExport{
		GeneratedAt: time.Now(),
		Provider:    provider,
		Subject: SubjectExport{
			Name:   subject.Name,
			Gender: subject.Gender,
			Moment: subject.Moment.String(),
		},
	}

	for _, p := range positions {
		pe := PositionExport{
			Body:  p.Body.Name,
			Valid: p.Valid,
		}
		if p.Valid {
			pe.LongitudeDeg = p.LongitudeDeg
			pe.LatitudeDeg = p.LatitudeDeg
			pe.DistanceAU = p.DistanceAU
			pe.Sector = p.Sector.Name
			pe.SignDeg = p.SignDeg()
		} else if p.Err != nil {
			pe.Error = p.Err.Error()
		}
		export.Positions = append(export.Positions, pe)
	}

	for _, h := range aspects {
		export.Aspects = append(export.Aspects, AspectExport{
			BodyA:  positions[h.A].Body.Name,
			BodyB:  positions[h.B].Body.Name,
			Aspect: h.Aspect.Name,
			OrbDeg: h.OrbDeg,
		})
	}

	return export
}

// WriteJSON writes the chart as indented JSON to the given writer.
func (c *ChartExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// FormatSignDeg formats a position as degrees and minutes within its
// sector, e.g. "24°11′ Gemini".
func FormatSignDeg(p BodyPosition) string {
	if !p.Valid {
		return "—"
	}
	deg := int(p.SignDeg())
	min := int((p.SignDeg() - float64(deg)) * 60)
	return fmt.Sprintf("%d°%02d′ %s", deg, min, p.Sector.Name)
}

// WritePositionsTable writes a text table of positions to the given writer.
func WritePositionsTable(w io.Writer, positions []BodyPosition, aspects []AspectHit, t time.Time) {
	fmt.Fprintf(w, "Positions @ %s\n", t.Format("2006-01-02 15:04 MST"))
	fmt.Fprintln(w, strings.Repeat("─", 62))

	fmt.Fprintf(w, "%-3s %-9s %12s %14s %10s\n", "", "Body", "Longitude", "Place", "Light")
	fmt.Fprintln(w, strings.Repeat("─", 62))

	for _, p := range positions {
		if !p.Valid {
			reason := "unavailable"
			if p.Err != nil {
				reason = p.Err.Error()
			}
			fmt.Fprintf(w, "%-3c %-9s %12s %14s\n", p.Body.Glyph, p.Body.Name, "—", reason)
			continue
		}
		fmt.Fprintf(w, "%-3c %-9s %11.4f° %14s %10s\n",
			p.Body.Glyph,
			p.Body.Name,
			p.LongitudeDeg,
			FormatSignDeg(p),
			astro.FormatLightTime(p.LightTimeSec()),
		)
	}

	if len(aspects) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Aspects")
	fmt.Fprintln(w, strings.Repeat("─", 62))
	for _, h := range aspects {
		fmt.Fprintf(w, "%-9s %c %-9s %-12s orb %.1f°\n",
			positions[h.A].Body.Name,
			h.Aspect.Glyph,
			positions[h.B].Body.Name,
			h.Aspect.Name,
			h.OrbDeg,
		)
	}
}
