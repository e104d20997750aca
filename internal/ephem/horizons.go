package ephem

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/natal"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// RequestTimeout is the default HTTP request timeout.
	RequestTimeout = 30 * time.Second

	// vectorCacheMax bounds the per-instant vector cache. Watch mode can
	// accumulate entries; past this the cache is simply dropped.
	vectorCacheMax = 512
)

// HorizonsProvider queries JPL Horizons for geocentric ecliptic state
// vectors. Vectors come back in the J2000 ecliptic frame, light-time
// corrected by the service, and are precessed here to the equinox of date
// so they classify against the tropical zodiac like the analytic series.
type HorizonsProvider struct {
	client  *http.Client
	baseURL string
	log     *zap.Logger

	// Vector cache, keyed by body and minute. A chart recomputes on every
	// form edit, so repeated queries for one birth moment are the norm.
	mu    sync.RWMutex
	cache map[vectorKey]astro.Vec3
}

type vectorKey struct {
	naifID int
	minute int64
}

// NewHorizonsProvider creates a Horizons API client.
func NewHorizonsProvider(opts Options) *HorizonsProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = HorizonsAPIURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = RequestTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &HorizonsProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log,
		cache:   make(map[vectorKey]astro.Vec3),
	}
}

// Name implements natal.Provider.
func (p *HorizonsProvider) Name() string { return "horizons" }

// Available reports whether the body can be queried.
func (p *HorizonsProvider) Available(body natal.CelestialBody) bool {
	return body.NAIFID != 0
}

// GeoVector implements natal.Provider.
func (p *HorizonsProvider) GeoVector(body natal.CelestialBody, t time.Time) (astro.Vec3, error) {
	key := vectorKey{naifID: body.NAIFID, minute: t.UTC().Truncate(time.Minute).Unix()}

	p.mu.RLock()
	v, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := p.queryGeocentricVector(body.NAIFID, t)
	if err != nil {
		return astro.Vec3{}, err
	}

	// J2000 ecliptic -> ecliptic of date
	v = v.RotateZ(astro.PrecessionDeg(astro.JulianDate(t)))

	p.mu.Lock()
	if len(p.cache) >= vectorCacheMax {
		p.cache = make(map[vectorKey]astro.Vec3)
	}
	p.cache[key] = v
	p.mu.Unlock()

	return v, nil
}

// queryGeocentricVector queries Horizons for geocentric ecliptic state
// vectors at a single instant.
func (p *HorizonsProvider) queryGeocentricVector(naifID int, t time.Time) (astro.Vec3, error) {
	// Build request parameters - values must be quoted with single quotes
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", naifID))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "VECTORS")
	params.Set("CENTER", "'500@399'") // Geocenter
	params.Set("REF_PLANE", "ECLIPTIC")
	params.Set("REF_SYSTEM", "ICRF")
	params.Set("VEC_TABLE", "'2'") // Position only (no velocity)
	params.Set("VEC_CORR", "'LT'") // Light-time corrected
	params.Set("VEC_LABELS", "NO")
	params.Set("OUT_UNITS", "'AU-D'") // AU and days
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t.Add(time.Minute))))
	params.Set("STEP_SIZE", "'1 m'")

	reqURL := p.baseURL + "?" + params.Encode()

	p.log.Debug("querying horizons",
		zap.Int("naif_id", naifID),
		zap.Time("at", t))

	resp, err := p.client.Get(reqURL)
	if err != nil {
		return astro.Vec3{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return astro.Vec3{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return astro.Vec3{}, fmt.Errorf("failed to read response: %w", err)
	}

	return parseVectorResponse(body)
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
}

// parseVectorResponse parses the Horizons JSON response for vector data.
func parseVectorResponse(body []byte) (astro.Vec3, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return astro.Vec3{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	// Find the data section between $$SOE and $$EOE markers
	soeIdx := strings.Index(resp.Result, "$$SOE")
	eoeIdx := strings.Index(resp.Result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return astro.Vec3{}, fmt.Errorf("could not find vector data markers")
	}

	dataSection := resp.Result[soeIdx+5 : eoeIdx]
	lines := strings.Split(dataSection, "\n")

	// Vector format (VEC_TABLE='2', no labels):
	// 2460651.500000000 = A.D. 2024-Dec-05 00:00:00.0000 TDB
	//  X = 1.234567890123456E+00 Y = 2.345678901234567E+00 Z = 3.456789012345678E-01
	// OR compact format:
	// 2460651.500000000 = A.D. 2024-Dec-05 00:00:00.0000 TDB
	//  1.234567890123456E+00  2.345678901234567E+00  3.456789012345678E-01

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "=") && strings.Contains(line, "A.D.") {
			continue
		}

		// Try labeled format first: X = val Y = val Z = val
		if strings.Contains(line, "X =") {
			return parseVectorLabeled(line)
		}

		// Try unlabeled format: just three numbers
		vec, err := parseVectorUnlabeled(line)
		if err == nil {
			return vec, nil
		}
	}

	return astro.Vec3{}, fmt.Errorf("could not parse vector data")
}

// parseVectorLabeled parses: X = 1.23E+00 Y = 2.34E+00 Z = 3.45E-01
func parseVectorLabeled(line string) (astro.Vec3, error) {
	// Split on = and parse pairs
	parts := strings.Split(line, "=")
	if len(parts) < 4 {
		return astro.Vec3{}, fmt.Errorf("invalid labeled format")
	}

	// parts[1] contains "X_value Y", parts[2] contains "Y_value Z",
	// parts[3] contains "Z_value"
	xStr := strings.Fields(parts[1])[0]
	yStr := strings.Fields(parts[2])[0]
	zStr := strings.TrimSpace(parts[3])

	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return astro.Vec3{}, err
	}
	y, err := strconv.ParseFloat(yStr, 64)
	if err != nil {
		return astro.Vec3{}, err
	}
	z, err := strconv.ParseFloat(zStr, 64)
	if err != nil {
		return astro.Vec3{}, err
	}

	return astro.Vec3{X: x, Y: y, Z: z}, nil
}

// parseVectorUnlabeled parses: 1.23E+00  2.34E+00  3.45E-01
func parseVectorUnlabeled(line string) (astro.Vec3, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return astro.Vec3{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return astro.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return astro.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return astro.Vec3{}, err
	}

	return astro.Vec3{X: x, Y: y, Z: z}, nil
}

// formatHorizonsTime formats a time for the Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
