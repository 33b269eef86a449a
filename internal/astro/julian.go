package astro

import (
	"math"
	"time"
)

// Julian day epochs and the length of a civil day in milliseconds.
const (
	msPerDay = 86400000.0
	J1970    = 2440588 // Julian day of the Unix epoch
	J2000    = 2451545 // Julian day of the J2000.0 epoch
)

// TimeToJulian converts a time to a continuous Julian day number.
// Non-finite results are possible only for non-finite inputs and propagate.
func TimeToJulian(t time.Time) float64 {
	return float64(t.UnixMilli())/msPerDay - 0.5 + J1970
}

// JulianToTime converts a Julian day number back to a time in UTC.
// NaN (the solver's "event never happens" signal) maps to the zero Time.
// Round trip with TimeToJulian holds to within one millisecond.
func JulianToTime(j float64) time.Time {
	if math.IsNaN(j) {
		return time.Time{}
	}
	return time.UnixMilli(int64(math.Round((j + 0.5 - J1970) * msPerDay))).UTC()
}

// DaysSinceJ2000 returns the fractional days between t and the J2000.0 epoch,
// the time argument of every ephemeris formula in this package.
func DaysSinceJ2000(t time.Time) float64 {
	return TimeToJulian(t) - J2000
}
