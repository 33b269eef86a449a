// Package almanac assembles sun and moon reports for an observer and
// serializes them for the headless CLI modes.
package almanac

import (
	"math"
	"sort"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Report is everything the almanac knows about one observer at one instant.
type Report struct {
	Observer astro.Observer
	Time     time.Time

	Sun       astro.SunPosition
	Moon      astro.MoonPosition
	MoonIllum astro.MoonIllumination
	MoonTimes astro.MoonTimes
	DayTimes  astro.DayTimes
}

// PhaseRow is one day-phase entry prepared for display.
type PhaseRow struct {
	Name string
	Time astro.PhaseTime
}

// Compute builds a report for the observer at time t using the calculator's
// phase table.
func Compute(calc *astro.Calculator, obs astro.Observer, t time.Time) *Report {
	return &Report{
		Observer:  obs,
		Time:      t,
		Sun:       obs.SunPosition(t),
		Moon:      obs.MoonPosition(t),
		MoonIllum: astro.MoonIlluminationAt(t),
		MoonTimes: obs.MoonTimes(t),
		DayTimes:  calc.DayTimes(t, obs),
	}
}

// Rows returns the day-phase entries sorted chronologically, with
// indeterminate entries (polar day/night) grouped at the end by name.
func (r *Report) Rows() []PhaseRow {
	rows := make([]PhaseRow, 0, len(r.DayTimes))
	for name, pt := range r.DayTimes {
		rows = append(rows, PhaseRow{Name: name, Time: pt})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Time.Valid != b.Time.Valid {
			return a.Time.Valid
		}
		if !a.Time.Valid {
			return a.Name < b.Name
		}
		return a.Time.Time.Before(b.Time.Time)
	})
	return rows
}

// NextEvent returns the first valid day-phase crossing after the report time.
func (r *Report) NextEvent() (name string, at time.Time, ok bool) {
	for _, row := range r.Rows() {
		if row.Time.Valid && row.Time.Time.After(r.Time) {
			return row.Name, row.Time.Time, true
		}
	}
	return "", time.Time{}, false
}

// MoonPhaseName names the lunar phase for a phase value in [0,1).
func MoonPhaseName(phase float64) string {
	switch {
	case phase < 0.0625 || phase >= 0.9375:
		return "New Moon"
	case phase < 0.1875:
		return "Waxing Crescent"
	case phase < 0.3125:
		return "First Quarter"
	case phase < 0.4375:
		return "Waxing Gibbous"
	case phase < 0.5625:
		return "Full Moon"
	case phase < 0.6875:
		return "Waning Gibbous"
	case phase < 0.8125:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

// MoonPhaseGlyph returns the moon glyph for a phase value in [0,1).
func MoonPhaseGlyph(phase float64) rune {
	glyphs := []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	idx := int(math.Mod(phase+0.0625, 1) * 8)
	if idx < 0 {
		idx = 0
	}
	if idx > 7 {
		idx = 7
	}
	return glyphs[idx]
}

// CompassAzimuthDeg converts a formula-convention azimuth (radians from south,
// westward positive) to compass degrees (0 = north, 90 = east).
func CompassAzimuthDeg(az float64) float64 {
	deg := az*180/math.Pi + 180
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// CompassPoint returns the 16-wind compass point for a formula-convention
// azimuth.
func CompassPoint(az float64) string {
	points := []string{
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	}
	deg := CompassAzimuthDeg(az)
	idx := int(math.Mod(deg/22.5+0.5, 16))
	return points[idx]
}
