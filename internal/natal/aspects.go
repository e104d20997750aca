package natal

import (
	"math"

	"github.com/litescript/ls-natal/internal/astro"
)

// Aspect is one of the five Ptolemaic angular relationships between two
// bodies. A pair is "in aspect" when their separation falls within OrbDeg
// of the exact angle.
type Aspect struct {
	Name     string
	Glyph    rune
	AngleDeg float64
	OrbDeg   float64
	Color    string // Chord color on the wheel
}

// Aspects in order of exactness precedence: when a separation matches two
// aspects (impossible with these orbs, but kept deterministic anyway), the
// earlier entry wins.
var Aspects = []Aspect{
	{Name: "conjunction", Glyph: '☌', AngleDeg: 0, OrbDeg: 8, Color: "#d9d9d9"},
	{Name: "opposition", Glyph: '☍', AngleDeg: 180, OrbDeg: 8, Color: "#bf4040"},
	{Name: "trine", Glyph: '△', AngleDeg: 120, OrbDeg: 8, Color: "#4d94ff"},
	{Name: "square", Glyph: '□', AngleDeg: 90, OrbDeg: 8, Color: "#e07b39"},
	{Name: "sextile", Glyph: '✶', AngleDeg: 60, OrbDeg: 6, Color: "#66b266"},
}

// AspectHit records one detected aspect between two positions. A and B are
// indexes into the positions slice (A < B, body table order).
type AspectHit struct {
	A, B   int
	Aspect Aspect
	OrbDeg float64 // Distance from exact, 0 = partile
}

// SeparationDeg returns the angular separation of two ecliptic longitudes
// along the zodiac circle, in [0, 180].
func SeparationDeg(lonA, lonB float64) float64 {
	d := math.Abs(astro.NormalizeDeg(lonA) - astro.NormalizeDeg(lonB))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// matchAspect returns the aspect a separation falls into, if any.
func matchAspect(sepDeg float64) (Aspect, float64, bool) {
	for _, a := range Aspects {
		orb := math.Abs(sepDeg - a.AngleDeg)
		if orb <= a.OrbDeg {
			return a, orb, true
		}
	}
	return Aspect{}, 0, false
}

// FindAspects scans all body pairs for Ptolemaic aspects. Invalid positions
// are skipped. Hits come out in pair order (0-1, 0-2, ... 5-6), so the
// result is deterministic for a given position slice.
func FindAspects(positions []BodyPosition) []AspectHit {
	var hits []AspectHit

	for i := 0; i < len(positions); i++ {
		if !positions[i].Valid {
			continue
		}
		for j := i + 1; j < len(positions); j++ {
			if !positions[j].Valid {
				continue
			}

			sep := SeparationDeg(positions[i].LongitudeDeg, positions[j].LongitudeDeg)
			if a, orb, ok := matchAspect(sep); ok {
				hits = append(hits, AspectHit{A: i, B: j, Aspect: a, OrbDeg: orb})
			}
		}
	}

	return hits
}
