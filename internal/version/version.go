// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Gemini oracle readings with rendered markdown view, reading history
// 0.2.0 - Aspect engine, SVG wheel export, positions/watch headless commands
// 0.1.0 - Initial release: birth form, terminal wheel, analytic ephemeris, JPL Horizons provider
