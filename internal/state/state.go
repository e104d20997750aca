// Package state provides thread-safe shared state for the application: the
// active subject, the latest computed chart, recent readings, and the event
// log produced when watch-mode recomputes move a body across a boundary.
package state

import (
	"math"
	"sync"
	"time"

	"github.com/litescript/ls-natal/internal/natal"
	"github.com/litescript/ls-natal/internal/oracle"
)

// EventType represents the type of chart change event.
type EventType string

const (
	// EventIngress fires when a body crosses into a new zodiac sector.
	EventIngress EventType = "INGRESS"
	// EventBodyLost fires when a previously computed body fails.
	EventBodyLost EventType = "BODY_LOST"
	// EventBodyRestored fires when a failed body computes again.
	EventBodyRestored EventType = "BODY_RESTORED"
)

// Event represents a change between two chart computations.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
	OldSector string    `json:"old_sector,omitempty"`
	NewSector string    `json:"new_sector,omitempty"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// BodyHistory tracks a body's ecliptic longitude over repeated computes.
type BodyHistory struct {
	BodyKey   string
	BodyName  string
	Longitude []TimeSeries
}

// Config holds configuration for the state manager.
type Config struct {
	MaxReadings int
	MaxBodyHist int
	MaxEvents   int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxReadings: 16,  // Session reading history
		MaxBodyHist: 120, // 2 hours of watch samples at 1/min
		MaxEvents:   50,  // Last 50 events
	}
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Subject being charted
	subject    natal.Subject
	hasSubject bool

	// Current chart
	positions       []natal.BodyPosition
	aspects         []natal.AspectHit
	provider        string
	computedAt      time.Time
	computeDuration time.Duration
	lastError       error

	// Previous sectors for event detection; nil until the first compute
	primed      bool
	prevSectors map[string]string

	// Per-body longitude history
	bodyHistory map[string]*BodyHistory
	maxBodyHist int

	// Generated readings, oldest first
	readings    []oracle.Reading
	maxReadings int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxReadings := cfg.MaxReadings
	if maxReadings <= 0 {
		maxReadings = 16
	}
	return &Manager{
		maxBodyHist: cfg.MaxBodyHist,
		maxReadings: maxReadings,
		maxEvents:   maxEvents,
		events:      make([]Event, 0, maxEvents),
		bodyHistory: make(map[string]*BodyHistory),
		prevSectors: make(map[string]string),
	}
}

// SetSubject records the person being charted.
func (m *Manager) SetSubject(s natal.Subject) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subject = s
	m.hasSubject = true
}

// Subject returns the active subject and whether one has been set.
func (m *Manager) Subject() (natal.Subject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.subject, m.hasSubject
}

// UpdateChart atomically replaces the current chart. A nil positions slice
// records only the error and timing.
func (m *Manager) UpdateChart(positions []natal.BodyPosition, aspects []natal.AspectHit, provider string, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.computedAt = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if positions == nil {
		return
	}

	// Detect events before replacing current state
	m.detectEvents(positions)

	m.positions = positions
	m.aspects = aspects
	m.provider = provider

	m.updateBodyHistory(positions)

	// Update prevSectors for next comparison
	sectors := make(map[string]string, len(positions))
	for _, p := range positions {
		if p.Valid {
			sectors[p.Body.Key] = p.Sector.Name
		}
	}
	m.prevSectors = sectors
	m.primed = true
}

// detectEvents compares new positions with the previous compute. The first
// compute primes the baseline and emits nothing.
func (m *Manager) detectEvents(positions []natal.BodyPosition) {
	if !m.primed {
		return
	}

	now := time.Now()
	for _, p := range positions {
		prev, tracked := m.prevSectors[p.Body.Key]

		switch {
		case p.Valid && !tracked:
			m.addEvent(Event{
				Type:      EventBodyRestored,
				Timestamp: now,
				Body:      p.Body.Name,
				NewSector: p.Sector.Name,
			})
		case p.Valid && prev != p.Sector.Name:
			m.addEvent(Event{
				Type:      EventIngress,
				Timestamp: now,
				Body:      p.Body.Name,
				OldSector: prev,
				NewSector: p.Sector.Name,
			})
		case !p.Valid && tracked:
			m.addEvent(Event{
				Type:      EventBodyLost,
				Timestamp: now,
				Body:      p.Body.Name,
				OldSector: prev,
			})
		}
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) updateBodyHistory(positions []natal.BodyPosition) {
	for _, p := range positions {
		if !p.Valid {
			continue
		}

		hist, ok := m.bodyHistory[p.Body.Key]
		if !ok {
			hist = &BodyHistory{
				BodyKey:   p.Body.Key,
				BodyName:  p.Body.Name,
				Longitude: make([]TimeSeries, 0, m.maxBodyHist),
			}
			m.bodyHistory[p.Body.Key] = hist
		}

		hist.Longitude = append(hist.Longitude, TimeSeries{Timestamp: m.computedAt, Value: p.LongitudeDeg})
		if len(hist.Longitude) > m.maxBodyHist {
			hist.Longitude = hist.Longitude[1:]
		}
	}
}

// AddReading appends a generated reading, dropping the oldest past the cap.
func (m *Manager) AddReading(r oracle.Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readings = append(m.readings, r)
	if len(m.readings) > m.maxReadings {
		m.readings = m.readings[1:]
	}
}

// LatestReading returns the most recent reading, if any.
func (m *Manager) LatestReading() (oracle.Reading, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.readings) == 0 {
		return oracle.Reading{}, false
	}
	return m.readings[len(m.readings)-1], true
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Subject         natal.Subject
	HasSubject      bool
	Positions       []natal.BodyPosition
	Aspects         []natal.AspectHit
	Provider        string
	ComputedAt      time.Time
	ComputeDuration time.Duration
	LastError       error
	Readings        []oracle.Reading
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	positions := make([]natal.BodyPosition, len(m.positions))
	copy(positions, m.positions)

	aspects := make([]natal.AspectHit, len(m.aspects))
	copy(aspects, m.aspects)

	readings := make([]oracle.Reading, len(m.readings))
	copy(readings, m.readings)

	return Snapshot{
		Subject:         m.subject,
		HasSubject:      m.hasSubject,
		Positions:       positions,
		Aspects:         aspects,
		Provider:        m.provider,
		ComputedAt:      m.computedAt,
		ComputeDuration: m.computeDuration,
		LastError:       m.lastError,
		Readings:        readings,
		Events:          m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// BodyHistoryFor returns a copy of the longitude history for a body key.
func (m *Manager) BodyHistoryFor(bodyKey string) *BodyHistory {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.bodyHistory[bodyKey]
	if !ok {
		return nil
	}

	copyHist := &BodyHistory{
		BodyKey:   hist.BodyKey,
		BodyName:  hist.BodyName,
		Longitude: make([]TimeSeries, len(hist.Longitude)),
	}
	copy(copyHist.Longitude, hist.Longitude)
	return copyHist
}

// DailyMotionDeg estimates a body's motion in degrees per day from the last
// two history points. Negative values mean apparent retrograde motion.
func (m *Manager) DailyMotionDeg(bodyKey string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.bodyHistory[bodyKey]
	if !ok || len(hist.Longitude) < 2 {
		return 0
	}

	n := len(hist.Longitude)
	p1 := hist.Longitude[n-2]
	p2 := hist.Longitude[n-1]

	days := p2.Timestamp.Sub(p1.Timestamp).Hours() / 24
	if days <= 0 {
		return 0
	}

	// Signed wrap-aware difference in (-180, 180]
	delta := math.Mod(p2.Value-p1.Value+540, 360) - 180
	return delta / days
}

// HasChart returns true once at least one chart has been computed.
func (m *Manager) HasChart() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.primed
}
