// Package natal computes natal chart data: geocentric ecliptic longitudes
// for the seven classical bodies, their zodiac sector classification, and
// the aspects between them.
package natal

// CelestialBody describes one entry of the fixed body list charted by the
// application. The set and its order never change at runtime.
type CelestialBody struct {
	Name   string // Display name (e.g., "Mercury")
	Key    string // Stable lookup key for ephemeris tables (e.g., "mercury")
	NAIFID int    // NAIF identifier for Horizons queries
	Glyph  rune   // Traditional astrological symbol
	Color  string // Hex color used by both terminal and SVG renderers
}

// Bodies is the charted body list in canonical presentation order.
// Positions, tables and prompts all follow this order.
var Bodies = []CelestialBody{
	{Name: "Sun", Key: "sun", NAIFID: 10, Glyph: '☉', Color: "#f0c420"},
	{Name: "Moon", Key: "moon", NAIFID: 301, Glyph: '☽', Color: "#cdd6e4"},
	{Name: "Mercury", Key: "mercury", NAIFID: 199, Glyph: '☿', Color: "#7dcfb6"},
	{Name: "Venus", Key: "venus", NAIFID: 299, Glyph: '♀', Color: "#e78ac3"},
	{Name: "Mars", Key: "mars", NAIFID: 499, Glyph: '♂', Color: "#e25822"},
	{Name: "Jupiter", Key: "jupiter", NAIFID: 599, Glyph: '♃', Color: "#c77b3f"},
	{Name: "Saturn", Key: "saturn", NAIFID: 699, Glyph: '♄', Color: "#8a7f6d"},
}

// BodyByKey returns the body with the given key, or nil if unknown.
func BodyByKey(key string) *CelestialBody {
	for i := range Bodies {
		if Bodies[i].Key == key {
			return &Bodies[i]
		}
	}
	return nil
}
