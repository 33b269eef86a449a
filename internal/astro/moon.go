package astro

import (
	"math"
	"time"
)

// MoonPosition is the moon's position in the observer's sky.
type MoonPosition struct {
	Azimuth          float64 // Radians, from south, westward positive
	Altitude         float64 // Radians, refraction-corrected
	DistanceKm       float64 // Geocentric Earth-moon distance
	Declination      float64 // Radians
	RightAscension   float64 // Radians
	ParallacticAngle float64 // Radians
}

// MoonIllumination describes the sunlit side of the moon as seen from Earth.
type MoonIllumination struct {
	Fraction float64 // Illuminated fraction of the disk, 0 (new) to 1 (full)
	Phase    float64 // 0 and 1 new moon, 0.25 first quarter, 0.5 full, 0.75 last quarter
	Angle    float64 // Midpoint angle of the bright limb; sign tells waxing from waning
}

// MoonTimes holds the moon rise and set instants for one civil day. At high
// latitudes the moon can stay up or down the whole day; AlwaysUp/AlwaysDown
// flag those days and both instants are then nil.
type MoonTimes struct {
	Rise       *time.Time
	Set        *time.Time
	AlwaysUp   bool
	AlwaysDown bool
}

// sunDistanceKm is the mean Earth-sun distance used by the illumination
// phase-angle formula.
const sunDistanceKm = 149598000.0

// equatorial moon coordinates and distance for a day offset
type moonCoords struct {
	ra   float64
	dec  float64
	dist float64
}

// moonCoordsAt computes geocentric ecliptic coordinates of the moon for day
// offset d. The F term is the formula set's historical "mean distance" label
// for the moon's argument of latitude; the name is a misnomer, the numbers
// are not.
func moonCoordsAt(d float64) moonCoords {
	L := degToRad(218.316 + 13.176396*d) // ecliptic longitude
	M := degToRad(134.963 + 13.064993*d) // mean anomaly
	F := degToRad(93.272 + 13.229350*d)  // mean distance

	l := L + degToRad(6.289)*math.Sin(M) // longitude
	b := degToRad(5.128) * math.Sin(F)   // latitude
	dt := 385001 - 20905*math.Cos(M)     // distance to the moon in km

	return moonCoords{
		ra:   rightAscension(l, b),
		dec:  declination(l, b),
		dist: dt,
	}
}

// MoonPosition calculates the moon's apparent position for the observer at
// time t. Altitude includes the near-horizon refraction correction, which is
// only meaningful around the horizon and grows exaggerated far below it.
func (obs Observer) MoonPosition(t time.Time) MoonPosition {
	lw := degToRad(-obs.LonDeg)
	phi := degToRad(obs.LatDeg)
	d := DaysSinceJ2000(t)

	c := moonCoordsAt(d)
	H := siderealTime(d, lw) - c.ra
	h := altitude(H, phi, c.dec)

	// formula 14.1 of "Astronomical Algorithms" 2nd edition by Jean Meeus
	pa := math.Atan2(math.Sin(H), math.Tan(phi)*math.Cos(c.dec)-math.Sin(c.dec)*math.Cos(H))

	h += astroRefraction(h)

	return MoonPosition{
		Azimuth:          azimuth(H, phi, c.dec),
		Altitude:         h,
		DistanceKm:       c.dist,
		Declination:      c.dec,
		RightAscension:   c.ra,
		ParallacticAngle: pa,
	}
}

// MoonPositionAt is shorthand for Observer{...}.MoonPosition(t).
func MoonPositionAt(t time.Time, latDeg, lonDeg float64) MoonPosition {
	return Observer{LatDeg: latDeg, LonDeg: lonDeg}.MoonPosition(t)
}

// MoonIlluminationAt calculates the illuminated fraction, phase and bright-limb
// angle of the moon at time t from the phase angle between sun and moon as
// seen from Earth. Formulas 48.1 and 48.3 of "Astronomical Algorithms".
func MoonIlluminationAt(t time.Time) MoonIllumination {
	d := DaysSinceJ2000(t)
	s := sunCoordsAt(d)
	m := moonCoordsAt(d)

	phi := math.Acos(math.Sin(s.dec)*math.Sin(m.dec) + math.Cos(s.dec)*math.Cos(m.dec)*math.Cos(s.ra-m.ra))
	inc := math.Atan2(sunDistanceKm*math.Sin(phi), m.dist-sunDistanceKm*math.Cos(phi))
	angle := math.Atan2(math.Cos(s.dec)*math.Sin(s.ra-m.ra),
		math.Sin(s.dec)*math.Cos(m.dec)-math.Cos(s.dec)*math.Sin(m.dec)*math.Cos(s.ra-m.ra))

	return MoonIllumination{
		Fraction: (1 + math.Cos(inc)) / 2,
		Phase:    0.5 + 0.5*inc*math.Copysign(1, angle)/math.Pi,
		Angle:    angle,
	}
}

func hoursLater(t time.Time, h float64) time.Time {
	return t.Add(time.Duration(h * float64(time.Hour)))
}

// MoonTimes finds the moon rise and set instants for the UTC civil day
// containing t by scanning altitude in 2-hour steps and fitting a quadratic
// through each triple of samples. hc is the altitude at the moon's upper limb
// touching the horizon, refraction included.
func (obs Observer) MoonTimes(t time.Time) MoonTimes {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	hc := degToRad(0.133)
	h0 := obs.MoonPosition(day).Altitude - hc

	var rise, set, ye float64
	var hasRise, hasSet bool

	for i := 1; i <= 24; i += 2 {
		h1 := obs.MoonPosition(hoursLater(day, float64(i))).Altitude - hc
		h2 := obs.MoonPosition(hoursLater(day, float64(i+1))).Altitude - hc

		a := (h0+h2)/2 - h1
		b := (h2 - h0) / 2
		xe := -b / (2 * a)
		ye = (a*xe+b)*xe + h1
		disc := b*b - 4*a*h1
		roots := 0
		var x1, x2 float64

		if disc >= 0 {
			dx := math.Sqrt(disc) / (math.Abs(a) * 2)
			x1 = xe - dx
			x2 = xe + dx
			if math.Abs(x1) <= 1 {
				roots++
			}
			if math.Abs(x2) <= 1 {
				roots++
			}
			if x1 < -1 {
				x1 = x2
			}
		}

		switch roots {
		case 1:
			if h0 < 0 {
				rise = float64(i) + x1
				hasRise = true
			} else {
				set = float64(i) + x1
				hasSet = true
			}
		case 2:
			if ye < 0 {
				rise = float64(i) + x2
				set = float64(i) + x1
			} else {
				rise = float64(i) + x1
				set = float64(i) + x2
			}
			hasRise = true
			hasSet = true
		}

		if hasRise && hasSet {
			break
		}

		h0 = h2
	}

	result := MoonTimes{}
	if hasRise {
		rt := hoursLater(day, rise)
		result.Rise = &rt
	}
	if hasSet {
		st := hoursLater(day, set)
		result.Set = &st
	}
	if !hasRise && !hasSet {
		if ye > 0 {
			result.AlwaysUp = true
		} else {
			result.AlwaysDown = true
		}
	}

	return result
}

// MoonTimesAt is shorthand for Observer{...}.MoonTimes(t).
func MoonTimesAt(t time.Time, latDeg, lonDeg float64) MoonTimes {
	return Observer{LatDeg: latDeg, LonDeg: lonDeg}.MoonTimes(t)
}
