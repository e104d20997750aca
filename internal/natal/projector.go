package natal

import (
	"math"
	"time"

	"github.com/litescript/ls-natal/internal/astro"
)

// Provider supplies geocentric positions for charted bodies. Implementations
// live in the ephem package; the projector only needs this slice of them.
type Provider interface {
	// Name identifies the provider in logs and exports.
	Name() string

	// GeoVector returns the body's geocentric position in the ecliptic
	// frame of date, in AU, light-time corrected.
	GeoVector(body CelestialBody, t time.Time) (astro.Vec3, error)
}

// BodyPosition is one body's computed place on the ecliptic at a moment.
// Derived data; recomputed fresh for every input change, never stored.
type BodyPosition struct {
	Body         CelestialBody
	LongitudeDeg float64 // Ecliptic longitude in [0, 360)
	LatitudeDeg  float64 // Ecliptic latitude (small for everything but the Moon)
	DistanceAU   float64 // Geocentric distance
	Sector       ZodiacSector

	// Valid is false when the provider failed for this body. The entry
	// then carries the error and an empty sector, and renderers skip it.
	Valid bool
	Err   error
}

// SignDeg returns the longitude within the body's sector, in [0, 30).
func (p BodyPosition) SignDeg() float64 {
	if !p.Valid {
		return 0
	}
	return p.LongitudeDeg - p.Sector.StartDeg
}

// LightTimeSec returns the one-way light time to the body in seconds.
func (p BodyPosition) LightTimeSec() float64 {
	return astro.LightTimeFromAU(p.DistanceAU)
}

// Projector turns a birth moment into classified body positions.
type Projector struct {
	provider Provider
}

// NewProjector creates a projector over the given position provider.
func NewProjector(provider Provider) *Projector {
	return &Projector{provider: provider}
}

// ProviderName reports the underlying provider's name.
func (pr *Projector) ProviderName() string {
	return pr.provider.Name()
}

// Positions computes one BodyPosition per charted body, in table order.
// The slice always has len(Bodies) entries: a provider failure for one
// body marks that entry invalid and leaves the rest untouched.
func (pr *Projector) Positions(m BirthMoment) []BodyPosition {
	return pr.PositionsAt(m.Local())
}

// PositionsAt is Positions for an arbitrary instant, used by transit mode.
func (pr *Projector) PositionsAt(t time.Time) []BodyPosition {
	out := make([]BodyPosition, 0, len(Bodies))

	for _, body := range Bodies {
		v, err := pr.provider.GeoVector(body, t)
		if err != nil {
			out = append(out, BodyPosition{Body: body, Err: err})
			continue
		}

		lon := astro.NormalizeDeg(astro.EclipticLongitude(v))
		if math.IsNaN(lon) {
			out = append(out, BodyPosition{Body: body, Err: errNaNPosition})
			continue
		}

		out = append(out, BodyPosition{
			Body:         body,
			LongitudeDeg: lon,
			LatitudeDeg:  astro.EclipticLatitude(v),
			DistanceAU:   v.Norm(),
			Sector:       SectorFor(lon),
			Valid:        true,
		})
	}

	return out
}

// ValidCount returns how many of the positions carry usable data.
func ValidCount(positions []BodyPosition) int {
	n := 0
	for _, p := range positions {
		if p.Valid {
			n++
		}
	}
	return n
}

type nanError struct{}

func (nanError) Error() string { return "position is not a number" }

var errNaNPosition = nanError{}
