package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/natal"
)

// elementEpochJD is the epoch of the orbital element series: d = 0 at
// 1999-12-31 00:00 UT (JD 2451543.5).
const elementEpochJD = 2451543.5

// earthRadiusAU converts the Moon's element-series distances (Earth radii)
// into AU.
const earthRadiusAU = astro.EarthRadiusKm / astro.AU

// Validity window of the truncated element series. Outside it the linear
// element rates drift too far to trust.
const (
	analyticMinYear = 1800
	analyticMaxYear = 2200
)

// AnalyticProvider computes geocentric ecliptic positions from a compact
// truncated-series ephemeris: per-body osculating elements linear in time,
// Kepler's equation, and the dominant perturbation terms for the Moon,
// Jupiter and Saturn.
//
// Positions are referred to the ecliptic and equinox of date and include a
// one-step light-time correction. Accuracy is about an arc minute for the
// Sun and planets and a few arc minutes for the Moon, which classifies a
// zodiac sector correctly except within a whisker of a boundary. The
// provider needs no network and never fails inside its validity window.
type AnalyticProvider struct{}

// NewAnalyticProvider creates the built-in ephemeris provider.
func NewAnalyticProvider() *AnalyticProvider {
	return &AnalyticProvider{}
}

// Name implements natal.Provider.
func (p *AnalyticProvider) Name() string { return "analytic" }

// Available reports whether the body has an element series.
func (p *AnalyticProvider) Available(body natal.CelestialBody) bool {
	switch body.Key {
	case "sun", "moon":
		return true
	default:
		_, ok := planetElements[body.Key]
		return ok
	}
}

// GeoVector implements natal.Provider. The returned vector is geocentric,
// in AU, ecliptic of date, antedated by one light-time iteration.
func (p *AnalyticProvider) GeoVector(body natal.CelestialBody, t time.Time) (astro.Vec3, error) {
	if y := t.Year(); y < analyticMinYear || y > analyticMaxYear {
		return astro.Vec3{}, fmt.Errorf("analytic ephemeris: year %d outside %d-%d validity window",
			y, analyticMinYear, analyticMaxYear)
	}

	d := astro.JulianDate(t) - elementEpochJD

	switch body.Key {
	case "sun":
		geo := sunGeocentric(d)
		lt := astro.LightTimeFromAU(geo.Norm())
		return sunGeocentric(d - lt/86400.0), nil

	case "moon":
		geo := moonGeocentric(d)
		lt := astro.LightTimeFromAU(geo.Norm())
		return moonGeocentric(d - lt/86400.0), nil

	default:
		elements, ok := planetElements[body.Key]
		if !ok {
			return astro.Vec3{}, fmt.Errorf("analytic ephemeris: no orbital elements for %q", body.Key)
		}

		// Light time retards the planet along its orbit; the observer
		// stays at the requested instant.
		sun := sunGeocentric(d)
		geo := helioPosition(body.Key, elements, d).Add(sun)
		lt := astro.LightTimeFromAU(geo.Norm())
		return helioPosition(body.Key, elements, d-lt/86400.0).Add(sun), nil
	}
}

// sunGeocentric returns the Sun's geocentric ecliptic position in AU.
// The Sun's "orbit" here is the Earth's orbit mirrored, so the element
// machinery applies directly with N=0, i=0.
func sunGeocentric(d float64) astro.Vec3 {
	return sunElements(d).HeliocentricEcliptic()
}

// moonGeocentric returns the Moon's geocentric ecliptic position in AU,
// with the classical perturbation series applied in spherical form.
func moonGeocentric(d float64) astro.Vec3 {
	el := moonElements(d)
	lon, lat, r := astro.SphericalLonLatR(el.HeliocentricEcliptic())

	// Fundamental arguments of the lunar series: the Sun's and Moon's
	// mean anomalies, the mean elongation D and argument of latitude F.
	sun := sunElements(d)
	Ms := sun.MeanAnomaly
	Mm := el.MeanAnomaly
	Ls := sun.MeanLongitude()
	Lm := el.MeanLongitude()
	D := Lm - Ls
	F := Lm - el.LonAscNode

	// Longitude terms (degrees): evection, variation, yearly equation,
	// then the smaller terms in decreasing magnitude.
	lon += -1.274 * sind(Mm-2*D)
	lon += 0.658 * sind(2*D)
	lon += -0.186 * sind(Ms)
	lon += -0.059 * sind(2*Mm-2*D)
	lon += -0.057 * sind(Mm-2*D+Ms)
	lon += 0.053 * sind(Mm+2*D)
	lon += 0.046 * sind(2*D-Ms)
	lon += 0.041 * sind(Mm-Ms)
	lon += -0.035 * sind(D)
	lon += -0.031 * sind(Mm+Ms)
	lon += -0.015 * sind(2*F-2*D)
	lon += 0.011 * sind(Mm-4*D)

	// Latitude terms (degrees)
	lat += -0.173 * sind(F-2*D)
	lat += -0.055 * sind(Mm-F-2*D)
	lat += -0.046 * sind(Mm+F-2*D)
	lat += 0.033 * sind(F+2*D)
	lat += 0.017 * sind(2*Mm+F)

	// Distance terms (Earth radii)
	r += -0.58 * cosd(Mm-2*D)
	r += -0.46 * cosd(2*D)

	return astro.FromSphericalLonLatR(lon, lat, r).Scale(earthRadiusAU)
}

// helioPosition returns a planet's heliocentric ecliptic position in AU,
// including the Jupiter/Saturn mutual perturbations.
func helioPosition(key string, elements func(float64) astro.OrbitalElements, d float64) astro.Vec3 {
	pos := elements(d).HeliocentricEcliptic()

	if key != "jupiter" && key != "saturn" {
		return pos
	}

	lon, lat, r := astro.SphericalLonLatR(pos)
	lon += giantLonPerturbation(key, d)
	if key == "saturn" {
		lat += saturnLatPerturbation(d)
	}
	return astro.FromSphericalLonLatR(lon, lat, r)
}

// giantLonPerturbation returns the longitude correction from the great
// Jupiter-Saturn inequality and its companion terms, in degrees.
func giantLonPerturbation(key string, d float64) float64 {
	Mj := jupiterElements(d).MeanAnomaly
	Ms := saturnElements(d).MeanAnomaly

	switch key {
	case "jupiter":
		return -0.332*sind(2*Mj-5*Ms-67.6) -
			0.056*sind(2*Mj-2*Ms+21) +
			0.042*sind(3*Mj-5*Ms+21) -
			0.036*sind(Mj-2*Ms) +
			0.022*cosd(Mj-Ms) +
			0.023*sind(2*Mj-3*Ms+52) -
			0.016*sind(Mj-5*Ms-69)
	case "saturn":
		return 0.812*sind(2*Mj-5*Ms-67.6) -
			0.229*cosd(2*Mj-4*Ms-2) +
			0.119*sind(Mj-2*Ms-3) +
			0.046*sind(2*Mj-6*Ms-69) +
			0.014*sind(Mj-3*Ms+32)
	default:
		return 0
	}
}

// saturnLatPerturbation returns Saturn's latitude correction in degrees.
func saturnLatPerturbation(d float64) float64 {
	Mj := jupiterElements(d).MeanAnomaly
	Ms := saturnElements(d).MeanAnomaly

	return -0.020*cosd(2*Mj-4*Ms-2) + 0.018*sind(2*Mj-6*Ms-49)
}

// Orbital elements at day offset d from the series epoch. Values follow
// the standard low-precision series for the ecliptic of date.

func sunElements(d float64) astro.OrbitalElements {
	return astro.OrbitalElements{
		LonAscNode:  0,
		Inclination: 0,
		ArgPerihel:  282.9404 + 4.70935e-5*d,
		SemiMajor:   1.000000,
		Ecc:         0.016709 - 1.151e-9*d,
		MeanAnomaly: astro.NormalizeDeg(356.0470 + 0.9856002585*d),
	}
}

func moonElements(d float64) astro.OrbitalElements {
	return astro.OrbitalElements{
		LonAscNode:  astro.NormalizeDeg(125.1228 - 0.0529538083*d),
		Inclination: 5.1454,
		ArgPerihel:  astro.NormalizeDeg(318.0634 + 0.1643573223*d),
		SemiMajor:   60.2666, // Earth radii
		Ecc:         0.054900,
		MeanAnomaly: astro.NormalizeDeg(115.3654 + 13.0649929509*d),
	}
}

func mercuryElements(d float64) astro.OrbitalElements {
	return astro.OrbitalElements{
		LonAscNode:  astro.NormalizeDeg(48.3313 + 3.24587e-5*d),
		Inclination: 7.0047 + 5.00e-8*d,
		ArgPerihel:  astro.NormalizeDeg(29.1241 + 1.01444e-5*d),
		SemiMajor:   0.387098,
		Ecc:         0.205635 + 5.59e-10*d,
		MeanAnomaly: astro.NormalizeDeg(168.6562 + 4.0923344368*d),
	}
}

func venusElements(d float64) astro.OrbitalElements {
	return astro.OrbitalElements{
		LonAscNode:  astro.NormalizeDeg(76.6799 + 2.46590e-5*d),
		Inclination: 3.3946 + 2.75e-8*d,
		ArgPerihel:  astro.NormalizeDeg(54.8910 + 1.38374e-5*d),
		SemiMajor:   0.723330,
		Ecc:         0.006773 - 1.302e-9*d,
		MeanAnomaly: astro.NormalizeDeg(48.0052 + 1.6021302244*d),
	}
}

func marsElements(d float64) astro.OrbitalElements {
	return astro.OrbitalElements{
		LonAscNode:  astro.NormalizeDeg(49.5574 + 2.11081e-5*d),
		Inclination: 1.8497 - 1.78e-8*d,
		ArgPerihel:  astro.NormalizeDeg(286.5016 + 2.92961e-5*d),
		SemiMajor:   1.523688,
		Ecc:         0.093405 + 2.516e-9*d,
		MeanAnomaly: astro.NormalizeDeg(18.6021 + 0.5240207766*d),
	}
}

func jupiterElements(d float64) astro.OrbitalElements {
	return astro.OrbitalElements{
		LonAscNode:  astro.NormalizeDeg(100.4542 + 2.76854e-5*d),
		Inclination: 1.3030 - 1.557e-7*d,
		ArgPerihel:  astro.NormalizeDeg(273.8777 + 1.64505e-5*d),
		SemiMajor:   5.20256,
		Ecc:         0.048498 + 4.469e-9*d,
		MeanAnomaly: astro.NormalizeDeg(19.8950 + 0.0830853001*d),
	}
}

func saturnElements(d float64) astro.OrbitalElements {
	return astro.OrbitalElements{
		LonAscNode:  astro.NormalizeDeg(113.6634 + 2.38980e-5*d),
		Inclination: 2.4886 - 1.081e-7*d,
		ArgPerihel:  astro.NormalizeDeg(339.3939 + 2.97661e-5*d),
		SemiMajor:   9.55475,
		Ecc:         0.055546 - 9.499e-9*d,
		MeanAnomaly: astro.NormalizeDeg(316.9670 + 0.0334442282*d),
	}
}

// planetElements maps body keys to their element series. Sun and Moon are
// handled separately because their vectors are already geocentric.
var planetElements = map[string]func(float64) astro.OrbitalElements{
	"mercury": mercuryElements,
	"venus":   venusElements,
	"mars":    marsElements,
	"jupiter": jupiterElements,
	"saturn":  saturnElements,
}

// sind is sin of an angle in degrees.
func sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }

// cosd is cos of an angle in degrees.
func cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
