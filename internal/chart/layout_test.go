package chart

import (
	"math"
	"reflect"
	"testing"

	"github.com/litescript/ls-natal/internal/natal"
)

// wheelPositions builds one valid position per body at the given longitudes.
func wheelPositions(lons ...float64) []natal.BodyPosition {
	positions := make([]natal.BodyPosition, len(lons))
	for i, lon := range lons {
		positions[i] = natal.BodyPosition{
			Body:         natal.Bodies[i],
			LongitudeDeg: lon,
			DistanceAU:   1,
			Sector:       natal.SectorFor(lon),
			Valid:        true,
		}
	}
	return positions
}

// sevenBodies spreads all seven bodies around the wheel with no aspects.
func sevenBodies() []natal.BodyPosition {
	return wheelPositions(84.3, 33, 110, 201, 147, 259, 305)
}

func TestLayoutGeometry(t *testing.T) {
	w := Layout(sevenBodies(), nil, 600)

	if w.Center.X != 300 || w.Center.Y != 300 {
		t.Errorf("center = (%v, %v), want (300, 300)", w.Center.X, w.Center.Y)
	}
	if w.OuterR != 290 {
		t.Errorf("outer radius = %v, want 290", w.OuterR)
	}
	if w.InnerR != 250 {
		t.Errorf("inner radius = %v, want 250", w.InnerR)
	}
	if !reflect.DeepEqual(w.Rings, []float64{290, 250}) {
		t.Errorf("rings = %v, want [290 250]", w.Rings)
	}
}

func TestLayoutDefaultSize(t *testing.T) {
	w := Layout(nil, nil, 0)
	if w.Size != DefaultSize {
		t.Errorf("size = %v, want %v", w.Size, DefaultSize)
	}
}

func TestPolarPoint(t *testing.T) {
	center := Point{X: 100, Y: 100}

	tests := []struct {
		name string
		deg  float64
		want Point
	}{
		{"zero degrees points right", 0, Point{X: 150, Y: 100}},
		{"ninety degrees points up", 90, Point{X: 100, Y: 50}},
		{"opposition points left", 180, Point{X: 50, Y: 100}},
		{"two seventy points down", 270, Point{X: 100, Y: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolarPoint(center, tt.deg, 50)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("PolarPoint(%v°) = (%v, %v), want (%v, %v)",
					tt.deg, got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestLayoutCounts(t *testing.T) {
	positions := sevenBodies()
	w := Layout(positions, natal.FindAspects(positions), 600)

	if len(w.Dividers) != 12 {
		t.Errorf("dividers = %d, want 12", len(w.Dividers))
	}
	if len(w.SectorLabels) != 12 {
		t.Errorf("sector labels = %d, want 12", len(w.SectorLabels))
	}
	if len(w.Markers) != 7 {
		t.Errorf("markers = %d, want 7", len(w.Markers))
	}
	if len(w.Guides) != 7 {
		t.Errorf("guides = %d, want 7", len(w.Guides))
	}
	if w.CenterMark.At != w.Center {
		t.Errorf("center mark at %v, want %v", w.CenterMark.At, w.Center)
	}
}

func TestLayoutSkipsInvalid(t *testing.T) {
	positions := sevenBodies()
	positions[1].Valid = false
	positions[1].LongitudeDeg = math.NaN()

	w := Layout(positions, nil, 600)

	if len(w.Markers) != 6 {
		t.Errorf("markers = %d, want 6 with one invalid position", len(w.Markers))
	}
	if len(w.Guides) != 6 {
		t.Errorf("guides = %d, want 6 with one invalid position", len(w.Guides))
	}
	for _, m := range w.Markers {
		if m.Glyph == natal.Bodies[1].Glyph {
			t.Errorf("invalid body %s still drew a marker", natal.Bodies[1].Name)
		}
	}
}

func TestLayoutDropsChordsToInvalidBodies(t *testing.T) {
	// Sun-Moon conjunction plus a Moon-Mercury sextile; invalidating
	// Mercury must drop only the sextile chord.
	positions := wheelPositions(0, 8, 68)
	hits := natal.FindAspects(positions)
	if len(hits) != 2 {
		t.Fatalf("aspect hits = %d, want 2", len(hits))
	}

	positions[2].Valid = false
	w := Layout(positions, hits, 600)

	if len(w.Chords) != 1 {
		t.Fatalf("chords = %d, want 1 after invalidating one endpoint", len(w.Chords))
	}
}

func TestLayoutAlternatesBodyRadii(t *testing.T) {
	// Same longitude for everyone: distance from center exposes the radius.
	positions := wheelPositions(45, 45, 45, 45, 45, 45, 45)
	w := Layout(positions, nil, 600)

	dist := func(p Point) float64 {
		return math.Hypot(p.X-w.Center.X, p.Y-w.Center.Y)
	}

	for i, m := range w.Markers {
		want := w.InnerR - 20
		if i%2 == 1 {
			want -= 15
		}
		if got := dist(m.At); math.Abs(got-want) > 1e-9 {
			t.Errorf("marker %d radius = %v, want %v", i, got, want)
		}
	}
}

func TestLayoutSectorLabelPlacement(t *testing.T) {
	w := Layout(nil, nil, 600)

	// First label is Aries, centered at 15° just inside the outer ring.
	got := w.SectorLabels[0]
	if got.Name != "Aries" || got.Glyph != '♈' {
		t.Fatalf("first label = %q %q, want Aries ♈", got.Name, string(got.Glyph))
	}
	want := PolarPoint(w.Center, 15, w.OuterR-20)
	if math.Abs(got.At.X-want.X) > 1e-9 || math.Abs(got.At.Y-want.Y) > 1e-9 {
		t.Errorf("Aries label at (%v, %v), want (%v, %v)", got.At.X, got.At.Y, want.X, want.Y)
	}
}

func TestLayoutChordsJoinMarkerPoints(t *testing.T) {
	// Grand trine between the first three bodies.
	positions := wheelPositions(0, 120, 240)
	hits := natal.FindAspects(positions)
	if len(hits) != 3 {
		t.Fatalf("aspect hits = %d, want 3 for a grand trine", len(hits))
	}

	w := Layout(positions, hits, 600)
	if len(w.Chords) != 3 {
		t.Fatalf("chords = %d, want 3", len(w.Chords))
	}

	markerPoints := make(map[Point]bool, len(w.Markers))
	for _, m := range w.Markers {
		markerPoints[m.At] = true
	}
	for i, c := range w.Chords {
		if !markerPoints[c.From] || !markerPoints[c.To] {
			t.Errorf("chord %d endpoints (%v, %v) do not sit on markers", i, c.From, c.To)
		}
		if c.Kind != LineChord {
			t.Errorf("chord %d kind = %v, want LineChord", i, c.Kind)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	positions := sevenBodies()
	hits := natal.FindAspects(positions)

	a := Layout(positions, hits, 600)
	b := Layout(positions, hits, 600)

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different wheels")
	}
}
