// Package astro computes sun and moon positions, day-phase times, and moon
// illumination from the simplified ephemeris formula set popularized by the
// SunCalc family of calculators ("Astronomical Algorithms", Jean Meeus, and
// the www.aa.quae.nl formula collection).
//
// Conventions, fixed by the formula set and easy to invert by mistake:
//   - Geographic longitude is east-positive on input and negated internally.
//   - Azimuth is measured from south, positive toward the west (the atan2
//     convention of the underlying formulas), in radians.
//   - All returned angles are radians unless the name says degrees.
//   - Domain errors (asin/acos arguments outside [-1,1]) propagate as NaN
//     rather than panicking; day-phase results surface them as invalid
//     PhaseTime values. Inputs are not range-checked.
package astro

import "math"

// obliquityRad is the Earth's axial tilt used throughout the formula set.
const obliquityRad = 23.4397 * math.Pi / 180

// Observer is a ground-based observer location.
type Observer struct {
	LatDeg  float64 // Latitude in degrees (north positive)
	LonDeg  float64 // Longitude in degrees (east positive)
	HeightM float64 // Height above the horizon in meters, used for day-phase times
	Name    string  // Optional name for the site
}

// rightAscension converts ecliptic longitude l and latitude b (radians) to
// right ascension.
func rightAscension(l, b float64) float64 {
	return math.Atan2(math.Sin(l)*math.Cos(obliquityRad)-math.Tan(b)*math.Sin(obliquityRad), math.Cos(l))
}

// declination converts ecliptic longitude l and latitude b (radians) to
// declination.
func declination(l, b float64) float64 {
	return math.Asin(math.Sin(b)*math.Cos(obliquityRad) + math.Cos(b)*math.Sin(obliquityRad)*math.Sin(l))
}

// azimuth computes the azimuth (from south, westward positive) for hour angle
// H, observer latitude phi and declination dec.
func azimuth(H, phi, dec float64) float64 {
	return math.Atan2(math.Sin(H), math.Cos(H)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
}

// altitude computes the altitude above the horizon for hour angle H, observer
// latitude phi and declination dec.
func altitude(H, phi, dec float64) float64 {
	return math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(H))
}

// siderealTime returns the local sidereal time for day offset d and negated
// observer longitude lw (both the formula's own conventions).
func siderealTime(d, lw float64) float64 {
	return degToRad(280.16+360.9856235*d) - lw
}

// astroRefraction returns the atmospheric refraction correction for an
// apparent altitude h in radians. Formula 16.4 of "Astronomical Algorithms"
// 2nd edition by Jean Meeus, converted from degrees/arc-minutes to radians.
// Only valid near the horizon; h is floored at 0 to avoid the singularity at
// h = -0.08901179. Applied to moon altitude only, never to the sun.
func astroRefraction(h float64) float64 {
	if h < 0 {
		h = 0
	}
	return 0.0002967 / math.Tan(h+0.00312536/(h+0.08901179))
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
