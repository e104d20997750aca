// Package ephem supplies geocentric ecliptic positions for the charted
// bodies, either from the built-in orbital-element ephemeris or from the
// JPL Horizons API.
package ephem

import (
	"time"

	"go.uber.org/zap"

	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/natal"
)

// Mode represents which ephemeris source to use.
type Mode int

const (
	ModeAnalytic Mode = iota // Built-in orbital elements (default, offline)
	ModeHorizons             // JPL Horizons only
	ModeAuto                 // Try Horizons, fall back to the analytic series
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAnalytic:
		return "analytic"
	case ModeHorizons:
		return "horizons"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. Unknown strings select the analytic
// provider, which always works offline.
func ParseMode(s string) Mode {
	switch s {
	case "horizons":
		return ModeHorizons
	case "auto":
		return ModeAuto
	case "analytic":
		return ModeAnalytic
	default:
		return ModeAnalytic
	}
}

// Options configures provider construction.
type Options struct {
	BaseURL string        // Horizons endpoint; empty selects the public API
	Timeout time.Duration // HTTP timeout; zero selects RequestTimeout
	Logger  *zap.Logger   // nil selects zap.NewNop()
}

// New builds the provider for a mode.
func New(mode Mode, opts Options) natal.Provider {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	switch mode {
	case ModeHorizons:
		return NewHorizonsProvider(opts)
	case ModeAuto:
		return &fallbackProvider{
			primary:  NewHorizonsProvider(opts),
			fallback: NewAnalyticProvider(),
			log:      opts.Logger,
		}
	default:
		return NewAnalyticProvider()
	}
}

// fallbackProvider tries the primary source per body and silently degrades
// to the fallback, so a network failure costs accuracy rather than data.
type fallbackProvider struct {
	primary  natal.Provider
	fallback natal.Provider
	log      *zap.Logger
}

// Name implements natal.Provider.
func (p *fallbackProvider) Name() string { return "auto" }

// GeoVector implements natal.Provider.
func (p *fallbackProvider) GeoVector(body natal.CelestialBody, t time.Time) (astro.Vec3, error) {
	v, err := p.primary.GeoVector(body, t)
	if err == nil {
		return v, nil
	}

	p.log.Warn("primary ephemeris failed, using fallback",
		zap.String("body", body.Key),
		zap.String("primary", p.primary.Name()),
		zap.Error(err))

	return p.fallback.GeoVector(body, t)
}
