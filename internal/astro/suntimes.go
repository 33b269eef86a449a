package astro

import (
	"math"
	"sync"
	"time"
)

// DayPhase defines one configurable solar day phase: the sun elevation angle
// that bounds it and the names of its morning and evening crossings.
type DayPhase struct {
	AngleDeg    float64 // Sun elevation in degrees; negative is below the horizon
	MorningName string
	EveningName string
}

// PhaseTime is the instant of one day-phase crossing. Valid is false when the
// sun never reaches the phase's elevation on that day and latitude (polar day
// or polar night); Time is then the zero Time. This is the solver's only
// failure mode and it is a checked outcome, not an error.
type PhaseTime struct {
	Time  time.Time
	Valid bool
}

// DayTimes maps phase names to their instants for one solar day. It always
// contains "solarNoon" and "nadir"; each configured DayPhase contributes its
// morning and evening names. Later-registered duplicate names overwrite
// earlier entries.
type DayTimes map[string]PhaseTime

// defaultPhases are the built-in day phases, in registration order.
func defaultPhases() []DayPhase {
	return []DayPhase{
		{-0.833, "sunrise", "sunset"},
		{-0.3, "sunriseEnd", "sunsetStart"},
		{-6, "dawn", "dusk"},
		{-12, "nauticalDawn", "nauticalDusk"},
		{-18, "nightEnd", "night"},
		{6, "goldenHourEnd", "goldenHour"},
	}
}

// Calculator holds an ordered day-phase table. Each Calculator is independent,
// so callers that extend the table do not interfere with each other; the
// package-level Default calculator preserves the traditional process-wide
// behavior. Append and read are safe for concurrent use.
type Calculator struct {
	mu     sync.RWMutex
	phases []DayPhase
}

// NewCalculator returns a Calculator pre-populated with the six built-in
// phases: sunrise/sunset, the civil, nautical and astronomical twilight
// boundaries, and the golden hour.
func NewCalculator() *Calculator {
	return &Calculator{phases: defaultPhases()}
}

// AddDayPhase appends a custom day phase. Phases are never removed; a phase
// reusing an existing name overwrites that entry in subsequent DayTimes
// results (last write wins).
func (c *Calculator) AddDayPhase(angleDeg float64, morningName, eveningName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phases = append(c.phases, DayPhase{angleDeg, morningName, eveningName})
}

// Phases returns a copy of the phase table in registration order.
func (c *Calculator) Phases() []DayPhase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]DayPhase, len(c.phases))
	copy(out, c.phases)
	return out
}

// j0 is the small epoch correction of the transit approximation.
const j0 = 0.0009

// julianCycle returns the integer Julian cycle nearest day offset d for
// negated longitude lw.
func julianCycle(d, lw float64) float64 {
	return math.Round(d - j0 - lw/(2*math.Pi))
}

// approxTransit approximates the transit for hour angle Ht, negated longitude
// lw and Julian cycle n.
func approxTransit(Ht, lw, n float64) float64 {
	return j0 + (Ht+lw)/(2*math.Pi) + n
}

// solarTransitJ corrects an approximate transit ds by the solar mean anomaly M
// and ecliptic longitude L.
func solarTransitJ(ds, M, L float64) float64 {
	return J2000 + ds + 0.0053*math.Sin(M) - 0.0069*math.Sin(2*L)
}

// hourAngle returns the hour angle at which the sun reaches elevation h for
// observer latitude phi and sun declination d. NaN when the elevation is never
// reached on this day (the acos argument leaves [-1,1]).
func hourAngle(h, phi, d float64) float64 {
	return math.Acos((math.Sin(h) - math.Sin(phi)*math.Sin(d)) / (math.Cos(phi) * math.Cos(d)))
}

// observerAngle returns the horizon depression in degrees for an observer
// height in meters above the horizon.
func observerAngle(heightM float64) float64 {
	return -2.076 * math.Sqrt(heightM) / 60
}

// setJulian returns the Julian day of the evening crossing of sun elevation h.
func setJulian(h, lw, phi, dec, n, M, L float64) float64 {
	w := hourAngle(h, phi, dec)
	a := approxTransit(w, lw, n)
	return solarTransitJ(a, M, L)
}

// phaseTime wraps a Julian day as a PhaseTime, treating NaN as indeterminate.
func phaseTime(j float64) PhaseTime {
	if math.IsNaN(j) {
		return PhaseTime{}
	}
	return PhaseTime{Time: JulianToTime(j), Valid: true}
}

// DayTimes computes the instants of all configured day phases for the solar
// day nearest t at the observer's location, anchored at true solar transit.
// Morning crossings are mirrored around noon (Jrise = Jnoon - (Jset - Jnoon)),
// which makes each pair exactly symmetric by construction.
func (c *Calculator) DayTimes(t time.Time, obs Observer) DayTimes {
	lw := degToRad(-obs.LonDeg)
	phi := degToRad(obs.LatDeg)
	dh := observerAngle(obs.HeightM)

	d := DaysSinceJ2000(t)
	n := julianCycle(d, lw)
	ds := approxTransit(0, lw, n)

	M := solarMeanAnomaly(ds)
	L := eclipticLongitude(M)
	dec := declination(L, 0)

	Jnoon := solarTransitJ(ds, M, L)

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(DayTimes, 2+2*len(c.phases))
	result["solarNoon"] = phaseTime(Jnoon)
	result["nadir"] = phaseTime(Jnoon - 0.5)

	for _, p := range c.phases {
		h0 := degToRad(p.AngleDeg + dh)
		Jset := setJulian(h0, lw, phi, dec, n, M, L)
		Jrise := Jnoon - (Jset - Jnoon)

		result[p.MorningName] = phaseTime(Jrise)
		result[p.EveningName] = phaseTime(Jset)
	}

	return result
}

// Default is the package-level calculator used by the convenience functions.
// Phases added to it are visible to every subsequent DayTimesAt call in the
// process.
var Default = NewCalculator()

// DayTimesAt computes day-phase times with the Default calculator.
func DayTimesAt(t time.Time, latDeg, lonDeg float64) DayTimes {
	return Default.DayTimes(t, Observer{LatDeg: latDeg, LonDeg: lonDeg})
}

// AddDayPhase appends a custom day phase to the Default calculator.
func AddDayPhase(angleDeg float64, morningName, eveningName string) {
	Default.AddDayPhase(angleDeg, morningName, eveningName)
}
