// Package astro provides astronomical time scales, orbital mechanics and
// ecliptic frame math.
package astro

import (
	"math"
	"time"
)

// SunApparentLongitude calculates the apparent ecliptic longitude of the Sun
// in degrees, referred to the equinox of date.
// Uses a simplified solar ephemeris based on the Astronomical Almanac.
// Accuracy: ~0.01 degrees, independent of the orbital-element ephemeris,
// which makes it a useful cross-check.
func SunApparentLongitude(t time.Time) float64 {
	// Julian centuries from J2000.0
	T := JulianCenturies(t)

	// Mean longitude of the Sun (degrees)
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	L0 = NormalizeDeg(L0)

	// Mean anomaly of the Sun (degrees)
	M := 357.52911 + 35999.05029*T - 0.0001537*T*T
	M = NormalizeDeg(M)
	Mrad := degToRad(M)

	// Sun's equation of center (degrees)
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	// Sun's true longitude (degrees)
	sunLon := L0 + C

	// Apparent longitude (correcting for aberration and nutation)
	omega := 125.04 - 1934.136*T
	sunLonApp := sunLon - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	return NormalizeDeg(sunLonApp)
}
