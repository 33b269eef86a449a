package state

import (
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
)

func TestManagerRecompute(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m.HasData() {
		t.Error("fresh manager should have no data")
	}

	r := m.Recompute()
	if r == nil {
		t.Fatal("Recompute returned nil")
	}
	if !m.HasData() {
		t.Error("HasData false after recompute")
	}

	snap := m.Snapshot()
	if snap.Report != r {
		t.Error("snapshot does not carry the latest report")
	}
	if snap.LastCompute.IsZero() {
		t.Error("LastCompute not recorded")
	}
}

func TestManagerFreeze(t *testing.T) {
	m := NewManager(DefaultConfig())
	at := time.Date(2013, 3, 5, 12, 0, 0, 0, time.UTC)
	m.Freeze(at)

	r := m.Recompute()
	if !r.Time.Equal(at) {
		t.Errorf("frozen report time = %v, want %v", r.Time, at)
	}

	time.Sleep(5 * time.Millisecond)
	r2 := m.Recompute()
	if !r2.Time.Equal(at) {
		t.Errorf("frozen report drifted to %v", r2.Time)
	}
}

func TestManagerCustomPhases(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CustomPhases = []astro.DayPhase{{AngleDeg: -4, MorningName: "blueHourDawn", EveningName: "blueHourDusk"}}

	m := NewManager(cfg)
	m.Freeze(time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC))
	r := m.Recompute()

	if _, ok := r.DayTimes["blueHourDawn"]; !ok {
		t.Error("config-registered custom phase missing from report")
	}
}

func TestManagerSetObserver(t *testing.T) {
	m := NewManager(DefaultConfig())
	obs := astro.Observer{LatDeg: 50.5, LonDeg: 30.5, Name: "Kyiv"}
	m.SetObserver(obs)

	if got := m.Observer(); got != obs {
		t.Errorf("Observer() = %+v, want %+v", got, obs)
	}
	if r := m.Recompute(); r.Observer != obs {
		t.Errorf("report observer = %+v, want %+v", r.Observer, obs)
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			m.Recompute()
		}()
		go func() {
			defer wg.Done()
			_ = m.Snapshot()
		}()
		go func(i int) {
			defer wg.Done()
			m.AddDayPhase(-float64(i), "m", "e")
		}(i)
	}
	wg.Wait()
}

func TestDefaultRefreshInterval(t *testing.T) {
	m := NewManager(Config{})
	if m.RefreshInterval() <= 0 {
		t.Error("zero-config manager must still have a positive refresh interval")
	}
}
