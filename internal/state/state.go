// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
)

// Manager holds the shared application state: the active observer, the
// day-phase calculator, and the most recent report. All access is
// mutex-guarded; the calculator itself is additionally safe for concurrent
// phase appends.
type Manager struct {
	mu sync.RWMutex

	calc     *astro.Calculator
	observer astro.Observer

	current     *almanac.Report
	lastCompute time.Time

	refreshInterval time.Duration
	frozen          bool // true when an explicit -date pins the report time
	frozenAt        time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	Observer        astro.Observer
	RefreshInterval time.Duration
	CustomPhases    []astro.DayPhase
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Observer:        astro.Observer{LatDeg: 51.4769, LonDeg: 0, Name: "Greenwich"},
		RefreshInterval: time.Second,
	}
}

// NewManager creates a new state manager. Custom phases from the config are
// appended to the built-in six in order.
func NewManager(cfg Config) *Manager {
	calc := astro.NewCalculator()
	for _, p := range cfg.CustomPhases {
		calc.AddDayPhase(p.AngleDeg, p.MorningName, p.EveningName)
	}

	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = time.Second
	}

	return &Manager{
		calc:            calc,
		observer:        cfg.Observer,
		refreshInterval: interval,
	}
}

// Freeze pins the report time, so Recompute keeps reporting for the given
// instant instead of following the clock (the -date flag).
func (m *Manager) Freeze(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frozen = true
	m.frozenAt = t
}

// Recompute rebuilds the report for the current clock time (or the frozen
// instant) and returns it.
func (m *Manager) Recompute() *almanac.Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	at := time.Now().UTC()
	if m.frozen {
		at = m.frozenAt
	}

	m.current = almanac.Compute(m.calc, m.observer, at)
	m.lastCompute = time.Now()
	return m.current
}

// Snapshot is an immutable view of the current state.
type Snapshot struct {
	Report      *almanac.Report
	Observer    astro.Observer
	LastCompute time.Time
	Frozen      bool
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Report:      m.current,
		Observer:    m.observer,
		LastCompute: m.lastCompute,
		Frozen:      m.frozen,
	}
}

// SetObserver switches the active observer; the next Recompute uses it.
func (m *Manager) SetObserver(obs astro.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = obs
}

// Observer returns the active observer.
func (m *Manager) Observer() astro.Observer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.observer
}

// AddDayPhase appends a custom day phase visible to subsequent recomputes.
func (m *Manager) AddDayPhase(angleDeg float64, morningName, eveningName string) {
	m.mu.RLock()
	calc := m.calc
	m.mu.RUnlock()
	calc.AddDayPhase(angleDeg, morningName, eveningName)
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// HasData reports whether at least one report has been computed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
