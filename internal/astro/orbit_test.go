package astro

import (
	"math"
	"testing"
)

func TestSolveKeplerCircularOrbit(t *testing.T) {
	// With e=0 the eccentric anomaly equals the mean anomaly
	for _, M := range []float64{0, 0.5, 1.0, 2.0, math.Pi, 5.0} {
		E := SolveKepler(M, 0)
		if math.Abs(E-M) > 1e-10 {
			t.Errorf("SolveKepler(%f, 0) = %f, want %f", M, E, M)
		}
	}
}

func TestSolveKeplerResidual(t *testing.T) {
	// Kepler's equation must be satisfied to high precision across the
	// eccentricity range of the classical planets (Mercury e~0.206).
	for _, e := range []float64{0.0067, 0.0167, 0.0484, 0.0556, 0.0934, 0.206} {
		for M := 0.0; M < 2*math.Pi; M += 0.1 {
			E := SolveKepler(M, e)
			residual := E - e*math.Sin(E) - M
			if math.Abs(residual) > 1e-6 {
				t.Errorf("residual %g for M=%f e=%f", residual, M, e)
			}
		}
	}
}

func TestHeliocentricEclipticCircular(t *testing.T) {
	// Zero eccentricity, zero inclination: the ecliptic longitude of the
	// computed position must equal the mean longitude N+w+M.
	el := OrbitalElements{
		LonAscNode:  40,
		Inclination: 0,
		ArgPerihel:  100,
		SemiMajor:   1.5,
		Ecc:         0,
		MeanAnomaly: 75,
	}

	v := el.HeliocentricEcliptic()

	wantLon := el.MeanLongitude() // 215
	gotLon := EclipticLongitude(v)
	if math.Abs(gotLon-wantLon) > 1e-6 {
		t.Errorf("longitude = %f, want %f", gotLon, wantLon)
	}

	if r := v.Norm(); math.Abs(r-1.5) > 1e-9 {
		t.Errorf("radius = %f, want 1.5", r)
	}

	if math.Abs(v.Z) > 1e-12 {
		t.Errorf("Z = %g, want 0 for zero inclination", v.Z)
	}
}

func TestHeliocentricEclipticPerihelion(t *testing.T) {
	// At M=0 the body sits at perihelion: r = a(1-e)
	el := OrbitalElements{
		LonAscNode:  0,
		Inclination: 0,
		ArgPerihel:  0,
		SemiMajor:   2.0,
		Ecc:         0.1,
		MeanAnomaly: 0,
	}

	v := el.HeliocentricEcliptic()
	wantR := 2.0 * (1 - 0.1)
	if r := v.Norm(); math.Abs(r-wantR) > 1e-9 {
		t.Errorf("perihelion distance = %f, want %f", r, wantR)
	}
}

func TestHeliocentricEclipticInclination(t *testing.T) {
	// 90 degrees past the node with i=90, the body should be at maximum
	// ecliptic latitude.
	el := OrbitalElements{
		LonAscNode:  0,
		Inclination: 90,
		ArgPerihel:  0,
		SemiMajor:   1,
		Ecc:         0,
		MeanAnomaly: 90,
	}

	v := el.HeliocentricEcliptic()
	lat := EclipticLatitude(v)
	if math.Abs(lat-90) > 1e-6 {
		t.Errorf("latitude = %f, want 90", lat)
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	tests := []Vec3{
		{X: 1, Y: 0, Z: 0},
		{X: 0.3, Y: -0.8, Z: 0.1},
		{X: -5.2, Y: 2.1, Z: -0.4},
	}

	for _, v := range tests {
		lon, lat, r := SphericalLonLatR(v)
		back := FromSphericalLonLatR(lon, lat, r)

		if math.Abs(back.X-v.X) > 1e-9 || math.Abs(back.Y-v.Y) > 1e-9 || math.Abs(back.Z-v.Z) > 1e-9 {
			t.Errorf("round trip %+v -> %+v", v, back)
		}
	}
}

func TestMeanLongitudeWraps(t *testing.T) {
	el := OrbitalElements{LonAscNode: 300, ArgPerihel: 100, MeanAnomaly: 50}
	got := el.MeanLongitude()
	if math.Abs(got-90) > 1e-9 {
		t.Errorf("MeanLongitude = %f, want 90", got)
	}
}
