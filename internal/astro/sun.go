package astro

import (
	"math"
	"time"
)

// SunPosition is the sun's position in the observer's sky.
type SunPosition struct {
	Azimuth  float64 // Radians, from south, westward positive
	Altitude float64 // Radians above the horizon
}

// solarMeanAnomaly returns the sun's mean anomaly for day offset d.
func solarMeanAnomaly(d float64) float64 {
	return degToRad(357.5291 + 0.98560028*d)
}

// eclipticLongitude returns the sun's ecliptic longitude for mean anomaly M:
// the equation of center, the perihelion of the Earth, and pi to point from
// the Earth toward the sun instead of the reverse.
func eclipticLongitude(M float64) float64 {
	C := degToRad(1.9148*math.Sin(M) + 0.02*math.Sin(2*M) + 0.0003*math.Sin(3*M))
	P := degToRad(102.9372)
	return M + C + P + math.Pi
}

// equatorial sun coordinates for a day offset
type sunCoords struct {
	dec float64
	ra  float64
}

// sunCoordsAt computes the sun's equatorial coordinates for day offset d.
// The sun's ecliptic latitude is taken as exactly zero, a valid simplification
// at this approximation order.
func sunCoordsAt(d float64) sunCoords {
	M := solarMeanAnomaly(d)
	L := eclipticLongitude(M)
	return sunCoords{
		dec: declination(L, 0),
		ra:  rightAscension(L, 0),
	}
}

// SunPosition calculates the sun's apparent position for the observer at time t.
func (obs Observer) SunPosition(t time.Time) SunPosition {
	lw := degToRad(-obs.LonDeg)
	phi := degToRad(obs.LatDeg)
	d := DaysSinceJ2000(t)

	c := sunCoordsAt(d)
	H := siderealTime(d, lw) - c.ra

	return SunPosition{
		Azimuth:  azimuth(H, phi, c.dec),
		Altitude: altitude(H, phi, c.dec),
	}
}

// SunPositionAt calculates the sun's position using the package-level
// conventions; it is shorthand for Observer{...}.SunPosition(t).
func SunPositionAt(t time.Time, latDeg, lonDeg float64) SunPosition {
	return Observer{LatDeg: latDeg, LonDeg: lonDeg}.SunPosition(t)
}
