package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/litescript/ls-natal/internal/natal"
)

func TestWriteSVGDocument(t *testing.T) {
	positions := sevenBodies()
	w := Layout(positions, natal.FindAspects(positions), 600)

	var buf bytes.Buffer
	WriteSVG(&buf, w)
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not an SVG document")
	}

	// Two rings, seven body discs, one center dot.
	if got := strings.Count(out, "<circle"); got != 10 {
		t.Errorf("circle count = %d, want 10", got)
	}

	wantLines := len(w.Dividers) + len(w.Guides) + len(w.Chords)
	if got := strings.Count(out, "<line"); got != wantLines {
		t.Errorf("line count = %d, want %d", got, wantLines)
	}

	// Every sector label and marker carries a hover title.
	if got := strings.Count(out, "<title>"); got != 19 {
		t.Errorf("title count = %d, want 19", got)
	}
}

func TestWriteSVGGlyphsAndTitles(t *testing.T) {
	positions := sevenBodies()
	w := Layout(positions, nil, 600)

	var buf bytes.Buffer
	WriteSVG(&buf, w)
	out := buf.String()

	for _, s := range natal.Sectors {
		if !strings.Contains(out, string(s.Glyph)) {
			t.Errorf("missing sector glyph %q", string(s.Glyph))
		}
	}
	for _, b := range natal.Bodies {
		if !strings.Contains(out, string(b.Glyph)) {
			t.Errorf("missing body glyph %q", string(b.Glyph))
		}
	}

	// The Sun at 84.3° reads as 24°18′ into Gemini.
	if !strings.Contains(out, "Sun 24°18′ Gemini") {
		t.Error("missing Sun hover title")
	}
}

func TestWriteSVGSkipsInvalidMarkers(t *testing.T) {
	positions := sevenBodies()
	positions[0].Valid = false
	w := Layout(positions, nil, 600)

	var buf bytes.Buffer
	WriteSVG(&buf, w)
	out := buf.String()

	if strings.Contains(out, "☉") {
		t.Error("invalid Sun still rendered")
	}
	if got := strings.Count(out, "<circle"); got != 9 {
		t.Errorf("circle count = %d, want 9 with one invalid body", got)
	}
}
