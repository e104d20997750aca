// Package astro provides astronomical time scales, orbital mechanics and
// ecliptic frame math.
package astro

import (
	"math"
)

// OrbitalElements holds the six osculating Keplerian elements of a body,
// referred to the ecliptic and mean equinox of date.
//
// Angles are in degrees; the semi-major axis is in whatever distance unit
// the caller works in (AU for planets, Earth radii for the Moon).
type OrbitalElements struct {
	LonAscNode  float64 // N: longitude of the ascending node
	Inclination float64 // i: inclination to the ecliptic
	ArgPerihel  float64 // w: argument of perihelion
	SemiMajor   float64 // a: semi-major axis
	Ecc         float64 // e: eccentricity (0=circle, 0..1=ellipse)
	MeanAnomaly float64 // M: mean anomaly (0 at perihelion)
}

// MeanLongitude returns L = N + w + M, normalized to [0, 360).
func (el OrbitalElements) MeanLongitude() float64 {
	return NormalizeDeg(el.LonAscNode + el.ArgPerihel + el.MeanAnomaly)
}

// SolveKepler solves Kepler's equation M = E - e*sin(E) for the eccentric
// anomaly E. M is in radians; the result is in radians.
//
// Uses Newton-Raphson iteration seeded with the standard first-order
// approximation. Converges in a handful of iterations for the eccentricities
// found in the solar system (e < 0.25).
func SolveKepler(M, e float64) float64 {
	// First approximation
	E := M + e*math.Sin(M)*(1+e*math.Cos(M))

	for i := 0; i < 20; i++ {
		delta := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= delta
		if math.Abs(delta) < 1e-8 {
			break
		}
	}

	return E
}

// HeliocentricEcliptic computes the body's position vector from its orbital
// elements, in the plane of the ecliptic, in the same distance unit as the
// semi-major axis. X points toward the vernal equinox.
//
// For the Sun's geocentric orbit (N=0, i=0, a=1) this directly yields the
// Sun's geocentric position; for the Moon's geocentric elements it yields
// the Moon's position in Earth radii.
func (el OrbitalElements) HeliocentricEcliptic() Vec3 {
	e := el.Ecc
	E := SolveKepler(degToRad(el.MeanAnomaly), e)

	// Position in the orbital plane, X axis toward perihelion
	xv := el.SemiMajor * (math.Cos(E) - e)
	yv := el.SemiMajor * math.Sqrt(1-e*e) * math.Sin(E)

	// True anomaly and radial distance
	v := math.Atan2(yv, xv)
	r := math.Sqrt(xv*xv + yv*yv)

	// Rotate through argument of perihelion, inclination and node
	N := degToRad(el.LonAscNode)
	i := degToRad(el.Inclination)
	vw := v + degToRad(el.ArgPerihel)

	sinN, cosN := math.Sincos(N)
	sinI, cosI := math.Sincos(i)
	sinVW, cosVW := math.Sincos(vw)

	return Vec3{
		X: r * (cosN*cosVW - sinN*sinVW*cosI),
		Y: r * (sinN*cosVW + cosN*sinVW*cosI),
		Z: r * (sinVW * sinI),
	}
}

// SphericalLonLatR decomposes an ecliptic vector into longitude and latitude
// in degrees plus radial distance, the form perturbation series are applied
// in.
func SphericalLonLatR(v Vec3) (lonDeg, latDeg, r float64) {
	r = v.Norm()
	if r == 0 {
		return 0, 0, 0
	}
	lonDeg = EclipticLongitude(v)
	latDeg = radToDeg(math.Asin(v.Z / r))
	return lonDeg, latDeg, r
}

// FromSphericalLonLatR rebuilds an ecliptic vector from longitude and
// latitude in degrees and a radial distance.
func FromSphericalLonLatR(lonDeg, latDeg, r float64) Vec3 {
	sinLon, cosLon := math.Sincos(degToRad(lonDeg))
	sinLat, cosLat := math.Sincos(degToRad(latDeg))
	return Vec3{
		X: r * cosLat * cosLon,
		Y: r * cosLat * sinLon,
		Z: r * sinLat,
	}
}
