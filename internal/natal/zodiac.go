package natal

import "github.com/litescript/ls-natal/internal/astro"

// Element categorizes zodiac sectors by classical element.
type Element int

const (
	ElementFire Element = iota
	ElementEarth
	ElementAir
	ElementWater
)

// String returns the element name.
func (e Element) String() string {
	switch e {
	case ElementFire:
		return "fire"
	case ElementEarth:
		return "earth"
	case ElementAir:
		return "air"
	case ElementWater:
		return "water"
	default:
		return "unknown"
	}
}

// ZodiacSector is one of the twelve 30° divisions of the ecliptic.
// A longitude L belongs to the sector with StartDeg <= L < StartDeg+30.
type ZodiacSector struct {
	Name        string
	Glyph       rune
	StartDeg    float64 // Lower boundary, inclusive
	Element     Element
	Color       string // Element color, shared by terminal and SVG renderers
	Description string
}

// SectorWidthDeg is the angular width of every zodiac sector.
const SectorWidthDeg = 30.0

// Sectors is the zodiac in ecliptic order starting at the vernal equinox.
var Sectors = []ZodiacSector{
	{Name: "Aries", Glyph: '♈', StartDeg: 0, Element: ElementFire, Color: "#e25822", Description: "Cardinal fire. Headstrong initiative, the spark that starts things."},
	{Name: "Taurus", Glyph: '♉', StartDeg: 30, Element: ElementEarth, Color: "#4e9a06", Description: "Fixed earth. Steady, sensual, slow to move and slow to anger."},
	{Name: "Gemini", Glyph: '♊', StartDeg: 60, Element: ElementAir, Color: "#e5c07b", Description: "Mutable air. Quick, curious, a pair of everything."},
	{Name: "Cancer", Glyph: '♋', StartDeg: 90, Element: ElementWater, Color: "#3f7cac", Description: "Cardinal water. Protective, tidal, memory runs deep."},
	{Name: "Leo", Glyph: '♌', StartDeg: 120, Element: ElementFire, Color: "#e25822", Description: "Fixed fire. Radiant self-expression, warmth that wants witness."},
	{Name: "Virgo", Glyph: '♍', StartDeg: 150, Element: ElementEarth, Color: "#4e9a06", Description: "Mutable earth. Precision, service, the craft of small things."},
	{Name: "Libra", Glyph: '♎', StartDeg: 180, Element: ElementAir, Color: "#e5c07b", Description: "Cardinal air. Balance, partnership, the aesthetics of fairness."},
	{Name: "Scorpio", Glyph: '♏', StartDeg: 210, Element: ElementWater, Color: "#3f7cac", Description: "Fixed water. Intensity, depth, transformation under pressure."},
	{Name: "Sagittarius", Glyph: '♐', StartDeg: 240, Element: ElementFire, Color: "#e25822", Description: "Mutable fire. Restless aim at far horizons."},
	{Name: "Capricorn", Glyph: '♑', StartDeg: 270, Element: ElementEarth, Color: "#4e9a06", Description: "Cardinal earth. Ambition with patience, the long climb."},
	{Name: "Aquarius", Glyph: '♒', StartDeg: 300, Element: ElementAir, Color: "#e5c07b", Description: "Fixed air. Systems, ideals, the view from outside."},
	{Name: "Pisces", Glyph: '♓', StartDeg: 330, Element: ElementWater, Color: "#3f7cac", Description: "Mutable water. Porous boundaries, imagination, undertow."},
}

// SectorFor returns the zodiac sector containing the given ecliptic
// longitude. The longitude is normalized into [0, 360) first, so every
// finite input lands in a sector; boundary longitudes belong to the
// sector they open (30.0° is Taurus, not Aries).
//
// If the computed index still falls outside the table (NaN input), the
// zero ZodiacSector with an empty name is returned rather than panicking.
func SectorFor(lonDeg float64) ZodiacSector {
	lon := astro.NormalizeDeg(lonDeg)
	idx := int(lon / SectorWidthDeg)
	if idx < 0 || idx >= len(Sectors) {
		return ZodiacSector{}
	}
	return Sectors[idx]
}

// SectorByName returns the sector with the given name, or nil if unknown.
func SectorByName(name string) *ZodiacSector {
	for i := range Sectors {
		if Sectors[i].Name == name {
			return &Sectors[i]
		}
	}
	return nil
}
