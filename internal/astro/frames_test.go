package astro

import (
	"math"
	"testing"
	"time"
)

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"unit y", Vec3{0, 1, 0}, 1},
		{"unit z", Vec3{0, 0, 1}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Vec3
	}{
		{"unit x", Vec3{5, 0, 0}, Vec3{1, 0, 0}},
		{"unit y", Vec3{0, 3, 0}, Vec3{0, 1, 0}},
		{"diagonal", Vec3{1, 1, 0}, Vec3{1 / math.Sqrt(2), 1 / math.Sqrt(2), 0}},
		{"zero", Vec3{0, 0, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalized()
			if math.Abs(got.X-tt.want.X) > 1e-10 ||
				math.Abs(got.Y-tt.want.Y) > 1e-10 ||
				math.Abs(got.Z-tt.want.Z) > 1e-10 {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3AddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-4, 0.5, 2}

	sum := a.Add(b)
	if sum != (Vec3{-3, 2.5, 5}) {
		t.Errorf("Add = %v", sum)
	}

	back := sum.Sub(b)
	if math.Abs(back.X-a.X) > 1e-12 || math.Abs(back.Y-a.Y) > 1e-12 || math.Abs(back.Z-a.Z) > 1e-12 {
		t.Errorf("Sub round trip = %v, want %v", back, a)
	}
}

func TestVec3RotateZ(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		deg  float64
		want Vec3
	}{
		{"quarter turn", Vec3{1, 0, 0}, 90, Vec3{0, 1, 0}},
		{"half turn", Vec3{1, 0, 0}, 180, Vec3{-1, 0, 0}},
		{"negative", Vec3{0, 1, 0}, -90, Vec3{1, 0, 0}},
		{"z untouched", Vec3{1, 0, 5}, 90, Vec3{0, 1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.RotateZ(tt.deg)
			if math.Abs(got.X-tt.want.X) > 1e-10 ||
				math.Abs(got.Y-tt.want.Y) > 1e-10 ||
				math.Abs(got.Z-tt.want.Z) > 1e-10 {
				t.Errorf("RotateZ(%v, %v) = %v, want %v", tt.v, tt.deg, got, tt.want)
			}
		})
	}
}

func TestKmToAU(t *testing.T) {
	tests := []struct {
		km     float64
		wantAU float64
		tolPct float64 // tolerance as percentage
	}{
		{AU, 1.0, 0.001},           // 1 AU in km = 1 AU
		{AU * 5.2, 5.2, 0.001},     // Jupiter distance
		{AU * 9.55, 9.55, 0.001},   // Saturn distance
		{384400, 384400 / AU, 0.001}, // Moon distance
	}

	for _, tt := range tests {
		got := KmToAU(tt.km)
		diff := math.Abs(got-tt.wantAU) / tt.wantAU
		if diff > tt.tolPct/100 {
			t.Errorf("KmToAU(%.0f) = %.4f, want %.4f", tt.km, got, tt.wantAU)
		}
	}
}

func TestEquatorialToEcliptic(t *testing.T) {
	// A vector along the equatorial Z-axis (north celestial pole)
	// should tilt toward positive ecliptic Y and negative ecliptic Z
	// by the obliquity angle (~23.4°)
	northPole := Vec3{0, 0, 1}
	ecl := EquatorialToEcliptic(northPole)

	// Expected: X unchanged, Y = sin(23.4°), Z = cos(23.4°)
	expectedY := math.Sin(obliquityRad)
	expectedZ := math.Cos(obliquityRad)

	if math.Abs(ecl.X) > 1e-10 {
		t.Errorf("X should be 0, got %v", ecl.X)
	}
	if math.Abs(ecl.Y-expectedY) > 1e-6 {
		t.Errorf("Y = %v, want %v", ecl.Y, expectedY)
	}
	if math.Abs(ecl.Z-expectedZ) > 1e-6 {
		t.Errorf("Z = %v, want %v", ecl.Z, expectedZ)
	}
}

func TestEclipticToEquatorial(t *testing.T) {
	// Roundtrip test
	original := Vec3{1, 2, 3}
	ecl := EquatorialToEcliptic(original)
	back := EclipticToEquatorial(ecl)

	if math.Abs(back.X-original.X) > 1e-10 ||
		math.Abs(back.Y-original.Y) > 1e-10 ||
		math.Abs(back.Z-original.Z) > 1e-10 {
		t.Errorf("Roundtrip failed: %v -> %v -> %v", original, ecl, back)
	}
}

func TestPrecessionDeg(t *testing.T) {
	// At J2000 the correction vanishes
	if got := PrecessionDeg(J2000); math.Abs(got) > 1e-12 {
		t.Errorf("PrecessionDeg(J2000) = %g, want 0", got)
	}

	// ~50.29 arcsec per year accumulates to ~0.36° over 26 years
	jd2026 := JulianDate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	got := PrecessionDeg(jd2026)
	if got < 0.35 || got > 0.37 {
		t.Errorf("PrecessionDeg(2026) = %f, want ~0.363", got)
	}

	// Negative before the epoch
	jd1990 := JulianDate(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	if got := PrecessionDeg(jd1990); got >= 0 {
		t.Errorf("PrecessionDeg(1990) = %f, want negative", got)
	}
}

func TestLightTimeFromAU(t *testing.T) {
	tests := []struct {
		au       float64
		wantSecs float64
		tolSecs  float64
	}{
		{1, 499.005, 0.1},       // 1 AU = ~8.3 minutes
		{0, 0, 0.1},             // 0 AU
		{5.2, 5.2 * 499.005, 1}, // Jupiter
		{0.00257, 1.28, 0.01},   // Moon, ~1.3 light seconds
	}

	for _, tt := range tests {
		got := LightTimeFromAU(tt.au)
		if math.Abs(got-tt.wantSecs) > tt.tolSecs {
			t.Errorf("LightTimeFromAU(%.1f) = %.1f, want %.1f", tt.au, got, tt.wantSecs)
		}
	}
}

func TestFormatLightTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{30, "30.0s"},
		{60, "1m0s"},
		{90, "1m30s"},
		{499, "8m19s"}, // Sun
		{3600, "1h0m"},
		{3660, "1h1m"},
		{7200, "2h0m"},
	}

	for _, tt := range tests {
		got := FormatLightTime(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatLightTime(%.0f) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestEclipticLatitude(t *testing.T) {
	tests := []struct {
		v       Vec3
		wantDeg float64
		tol     float64
	}{
		{Vec3{1, 0, 0}, 0, 0.01},
		{Vec3{0, 1, 0}, 0, 0.01},
		{Vec3{0, 0, 1}, 90, 0.01},
		{Vec3{0, 0, -1}, -90, 0.01},
		{Vec3{1, 0, 1}, 45, 0.01},
		{Vec3{1, 1, 0}, 0, 0.01},
	}

	for _, tt := range tests {
		got := EclipticLatitude(tt.v)
		if math.Abs(got-tt.wantDeg) > tt.tol {
			t.Errorf("EclipticLatitude(%v) = %.2f°, want %.2f°", tt.v, got, tt.wantDeg)
		}
	}
}

func TestEclipticLongitude(t *testing.T) {
	tests := []struct {
		v       Vec3
		wantDeg float64
		tol     float64
	}{
		{Vec3{1, 0, 0}, 0, 0.01},
		{Vec3{0, 1, 0}, 90, 0.01},
		{Vec3{-1, 0, 0}, 180, 0.01},
		{Vec3{0, -1, 0}, 270, 0.01},
		{Vec3{1, 1, 0}, 45, 0.01},
	}

	for _, tt := range tests {
		got := EclipticLongitude(tt.v)
		if math.Abs(got-tt.wantDeg) > tt.tol {
			t.Errorf("EclipticLongitude(%v) = %.2f°, want %.2f°", tt.v, got, tt.wantDeg)
		}
	}

	// Always normalized regardless of quadrant
	for deg := -720.0; deg < 720; deg += 37.5 {
		v := Vec3{math.Cos(deg * math.Pi / 180), math.Sin(deg * math.Pi / 180), 0}
		got := EclipticLongitude(v)
		if got < 0 || got >= 360 {
			t.Errorf("EclipticLongitude out of range: %f for input angle %f", got, deg)
		}
	}
}
