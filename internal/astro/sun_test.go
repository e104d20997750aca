package astro

import (
	"math"
	"testing"
	"time"
)

// wrapDiff returns the smallest absolute difference between two angles in
// degrees, accounting for wrap-around at 0/360.
func wrapDiff(a, b float64) float64 {
	d := math.Abs(NormalizeDeg(a) - NormalizeDeg(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestSunApparentLongitudeSeasons(t *testing.T) {
	// At the equinoxes and solstices the Sun sits at the cardinal points
	// of the ecliptic: 0°, 90°, 180°, 270°.
	tests := []struct {
		name    string
		t       time.Time
		wantLon float64
	}{
		{"march equinox 2000", time.Date(2000, 3, 20, 7, 35, 0, 0, time.UTC), 0},
		{"june solstice 2000", time.Date(2000, 6, 21, 1, 48, 0, 0, time.UTC), 90},
		{"september equinox 2024", time.Date(2024, 9, 22, 12, 44, 0, 0, time.UTC), 180},
		{"december solstice 1990", time.Date(1990, 12, 22, 3, 7, 0, 0, time.UTC), 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunApparentLongitude(tt.t)
			if diff := wrapDiff(got, tt.wantLon); diff > 1.0 {
				t.Errorf("SunApparentLongitude = %.3f°, want %.0f° ±1°", got, tt.wantLon)
			}
		})
	}
}

func TestSunApparentLongitudeDailyMotion(t *testing.T) {
	// The Sun advances roughly 0.9856° per day along the ecliptic.
	start := time.Date(1995, 4, 10, 12, 0, 0, 0, time.UTC)

	prev := SunApparentLongitude(start)
	for day := 1; day <= 30; day++ {
		cur := SunApparentLongitude(start.AddDate(0, 0, day))
		advance := wrapDiff(cur, prev)
		if advance < 0.9 || advance > 1.1 {
			t.Fatalf("day %d: advance %.4f°, want ~0.986°", day, advance)
		}
		prev = cur
	}
}

func TestSunApparentLongitudeRange(t *testing.T) {
	// Scan a decade of dates: the result must always be in [0, 360).
	start := time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		lon := SunApparentLongitude(start.AddDate(0, i, 0))
		if lon < 0 || lon >= 360 {
			t.Errorf("longitude out of range: %f at month offset %d", lon, i)
		}
	}
}
