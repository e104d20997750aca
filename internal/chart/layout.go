// Package chart lays a computed natal chart out on a circular wheel and
// renders it to drawable primitives. Layout is pure geometry: the same
// positions and size always produce the identical wheel, and both the
// terminal canvas and the SVG writer consume the same primitives.
package chart

import (
	"math"

	"github.com/litescript/ls-natal/internal/natal"
)

// Fixed proportions of the wheel, in canvas units.
const (
	// Margin between the outer ring and the canvas edge.
	Margin = 10.0

	// RingWidth is the depth of the zodiac band between the two rings.
	RingWidth = 40.0

	// glyphInset pulls sector glyphs inside the outer ring.
	glyphInset = 20.0

	// bodyInset pulls the first body ring inside the inner ring.
	bodyInset = 20.0

	// bodyStagger alternates neighboring bodies between two radii so
	// markers at similar longitudes don't collide.
	bodyStagger = 15.0

	// markerRadius is the disc drawn behind each body glyph.
	markerRadius = 9.0

	// centerRadius is the small disc at the exact wheel center.
	centerRadius = 3.0
)

// DefaultSize is the wheel diameter used when the caller doesn't pick one.
const DefaultSize = 600.0

// Point is a 2D canvas coordinate, Y growing downward.
type Point struct {
	X, Y float64
}

// LineKind distinguishes the stroke treatments on the wheel.
type LineKind int

const (
	LineDivider LineKind = iota // Sector boundary spokes
	LineGuide                   // Faint center-to-marker guides
	LineChord                   // Aspect chords between markers
)

// Line is a straight stroke between two points.
type Line struct {
	From, To Point
	Kind     LineKind
	Color    string
}

// Label is a positioned glyph with an explanatory name.
type Label struct {
	At    Point
	Glyph rune
	Name  string
	Color string
}

// Marker is a body's disc and glyph at its place on the wheel.
type Marker struct {
	At    Point
	R     float64
	Glyph rune
	Color string
	Title string // Hover text: body, longitude, sector
}

// Wheel is the complete set of drawable primitives for one chart.
type Wheel struct {
	Size   float64
	Center Point
	OuterR float64
	InnerR float64

	Rings        []float64 // Ring radii around Center, outermost first
	Dividers     []Line
	Guides       []Line
	Chords       []Line
	SectorLabels []Label
	Markers      []Marker
	CenterMark   Marker
}

// PolarPoint maps an ecliptic longitude and radius to canvas coordinates.
// 0° sits at the right (vernal point) and longitude increases clockwise on
// screen, matching the downward Y axis.
func PolarPoint(center Point, deg, r float64) Point {
	rad := -deg * math.Pi / 180
	return Point{
		X: center.X + r*math.Cos(rad),
		Y: center.Y + r*math.Sin(rad),
	}
}

// bodyRadius returns the marker radius for the i-th body, alternating
// between two rings inside the inner circle.
func bodyRadius(innerR float64, i int) float64 {
	return innerR - bodyInset - float64(i%2)*bodyStagger
}

// Layout builds the wheel for a set of positions and aspects. Invalid
// positions contribute no marker, guide or chord; everything else is
// unaffected by them.
func Layout(positions []natal.BodyPosition, aspects []natal.AspectHit, size float64) Wheel {
	if size <= 0 {
		size = DefaultSize
	}

	center := Point{X: size / 2, Y: size / 2}
	outerR := size/2 - Margin
	innerR := outerR - RingWidth

	w := Wheel{
		Size:   size,
		Center: center,
		OuterR: outerR,
		InnerR: innerR,
		Rings:  []float64{outerR, innerR},
		CenterMark: Marker{
			At:    center,
			R:     centerRadius,
			Color: "#aab2c4",
		},
	}

	// Zodiac band: one spoke per boundary, one glyph per sector midpoint.
	for _, s := range natal.Sectors {
		w.Dividers = append(w.Dividers, Line{
			From:  center,
			To:    PolarPoint(center, s.StartDeg, outerR),
			Kind:  LineDivider,
			Color: "#2a3140",
		})
		w.SectorLabels = append(w.SectorLabels, Label{
			At:    PolarPoint(center, s.StartDeg+natal.SectorWidthDeg/2, outerR-glyphInset),
			Glyph: s.Glyph,
			Name:  s.Name,
			Color: s.Color,
		})
	}

	// Body markers on the alternating inner rings.
	markerAt := make(map[int]Point, len(positions))
	for i, p := range positions {
		if !p.Valid {
			continue
		}

		at := PolarPoint(center, p.LongitudeDeg, bodyRadius(innerR, i))
		markerAt[i] = at

		w.Guides = append(w.Guides, Line{
			From:  center,
			To:    at,
			Kind:  LineGuide,
			Color: "#1d2330",
		})
		w.Markers = append(w.Markers, Marker{
			At:    at,
			R:     markerRadius,
			Glyph: p.Body.Glyph,
			Color: p.Body.Color,
			Title: p.Body.Name + " " + natal.FormatSignDeg(p),
		})
	}

	// Aspect chords connect the two marker points directly.
	for _, h := range aspects {
		from, okA := markerAt[h.A]
		to, okB := markerAt[h.B]
		if !okA || !okB {
			continue
		}
		w.Chords = append(w.Chords, Line{
			From:  from,
			To:    to,
			Kind:  LineChord,
			Color: h.Aspect.Color,
		})
	}

	return w
}
