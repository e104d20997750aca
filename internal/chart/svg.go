package chart

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
)

// Stroke and fill styles shared by every rendered wheel.
const (
	backgroundFill = "#0b0e14"
	ringStroke     = "#3a4254"
	glyphFont      = "font-family:'Noto Sans Symbols',sans-serif"
)

func strokeStyle(color string, width float64) string {
	return fmt.Sprintf("stroke:%s;stroke-width:%.1f;fill:none", color, width)
}

func glyphStyle(color string, sizePx float64) string {
	return fmt.Sprintf("fill:%s;font-size:%.0fpx;%s;text-anchor:middle;dominant-baseline:central", color, sizePx, glyphFont)
}

// WriteSVG renders a wheel as a standalone SVG document.
func WriteSVG(w io.Writer, wheel Wheel) {
	canvas := svg.New(w)
	canvas.Start(wheel.Size, wheel.Size)
	canvas.Rect(0, 0, wheel.Size, wheel.Size, "fill:"+backgroundFill)

	for _, r := range wheel.Rings {
		canvas.Circle(wheel.Center.X, wheel.Center.Y, r, strokeStyle(ringStroke, 1.5))
	}

	// Faint structure first so markers and chords draw on top.
	for _, l := range wheel.Guides {
		canvas.Line(l.From.X, l.From.Y, l.To.X, l.To.Y, strokeStyle(l.Color, 1))
	}
	for _, l := range wheel.Dividers {
		canvas.Line(l.From.X, l.From.Y, l.To.X, l.To.Y, strokeStyle(l.Color, 1))
	}
	for _, l := range wheel.Chords {
		canvas.Line(l.From.X, l.From.Y, l.To.X, l.To.Y, strokeStyle(l.Color, 1.2))
	}

	for _, lb := range wheel.SectorLabels {
		canvas.Group()
		canvas.Title(lb.Name)
		canvas.Text(lb.At.X, lb.At.Y, string(lb.Glyph), glyphStyle(lb.Color, 18))
		canvas.Gend()
	}

	for _, m := range wheel.Markers {
		canvas.Group()
		canvas.Title(m.Title)
		canvas.Circle(m.At.X, m.At.Y, m.R, "fill:"+backgroundFill+";stroke:"+m.Color+";stroke-width:1.5")
		canvas.Text(m.At.X, m.At.Y, string(m.Glyph), glyphStyle(m.Color, 14))
		canvas.Gend()
	}

	cm := wheel.CenterMark
	canvas.Circle(cm.At.X, cm.At.Y, cm.R, "fill:"+cm.Color)

	canvas.End()
}
