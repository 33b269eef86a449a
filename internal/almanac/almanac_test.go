package almanac

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
)

var (
	testDate = time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)
	testObs  = astro.Observer{LatDeg: 50.5, LonDeg: 30.5, Name: "Kyiv"}
)

func testReport(t *testing.T) *Report {
	t.Helper()
	return Compute(astro.NewCalculator(), testObs, testDate)
}

func TestComputePopulatesEverything(t *testing.T) {
	r := testReport(t)

	if r.Observer != testObs {
		t.Errorf("observer = %+v, want %+v", r.Observer, testObs)
	}
	if len(r.DayTimes) != 14 { // solarNoon + nadir + 6 phase pairs
		t.Errorf("day times has %d entries, want 14", len(r.DayTimes))
	}
	if r.Moon.DistanceKm < 356000 || r.Moon.DistanceKm > 407000 {
		t.Errorf("moon distance %.0f km implausible", r.Moon.DistanceKm)
	}
	if r.MoonIllum.Fraction < 0 || r.MoonIllum.Fraction > 1 {
		t.Errorf("illuminated fraction %v out of range", r.MoonIllum.Fraction)
	}
}

func TestRowsChronological(t *testing.T) {
	rows := testReport(t).Rows()

	if len(rows) != 14 {
		t.Fatalf("got %d rows, want 14", len(rows))
	}

	var prev time.Time
	for i, row := range rows {
		if !row.Time.Valid {
			t.Fatalf("row %d (%s) invalid for a mid-latitude date", i, row.Name)
		}
		if i > 0 && row.Time.Time.Before(prev) {
			t.Errorf("rows out of order at %d: %s %v before %v", i, row.Name, row.Time.Time, prev)
		}
		prev = row.Time.Time
	}

	// nadir for this date falls the previous evening, so it sorts first.
	if rows[0].Name != "nadir" {
		t.Errorf("first row = %s, want nadir", rows[0].Name)
	}
}

func TestRowsInvalidGroupedLast(t *testing.T) {
	r := Compute(astro.NewCalculator(),
		astro.Observer{LatDeg: 78, LonDeg: 15},
		time.Date(2020, 12, 21, 0, 0, 0, 0, time.UTC))

	rows := r.Rows()
	seenInvalid := false
	for _, row := range rows {
		if !row.Time.Valid {
			seenInvalid = true
		} else if seenInvalid {
			t.Fatalf("valid row %s after invalid rows", row.Name)
		}
	}
	if !seenInvalid {
		t.Fatal("expected invalid rows during polar night")
	}
}

func TestNextEvent(t *testing.T) {
	r := testReport(t)

	name, at, ok := r.NextEvent()
	if !ok {
		t.Fatal("expected a next event after midnight")
	}
	// First crossing after 2013-03-05T00:00Z is astronomical dawn.
	if name != "nightEnd" {
		t.Errorf("next event = %s, want nightEnd", name)
	}
	if !at.After(r.Time) {
		t.Errorf("next event at %v not after report time %v", at, r.Time)
	}
}

func TestMoonPhaseName(t *testing.T) {
	tests := []struct {
		phase float64
		want  string
	}{
		{0, "New Moon"},
		{0.12, "Waxing Crescent"},
		{0.25, "First Quarter"},
		{0.37, "Waxing Gibbous"},
		{0.5, "Full Moon"},
		{0.62, "Waning Gibbous"},
		{0.75, "Last Quarter"},
		{0.87, "Waning Crescent"},
		{0.97, "New Moon"},
	}
	for _, tt := range tests {
		if got := MoonPhaseName(tt.phase); got != tt.want {
			t.Errorf("MoonPhaseName(%.2f) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestCompassConversions(t *testing.T) {
	tests := []struct {
		name    string
		az      float64 // formula convention: from south, westward positive
		wantDeg float64
		wantPt  string
	}{
		{"due south", 0, 180, "S"},
		{"due west", math.Pi / 2, 270, "W"},
		{"due north", math.Pi, 0, "N"},
		{"due east", -math.Pi / 2, 90, "E"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deg := CompassAzimuthDeg(tt.az)
			if math.Abs(deg-tt.wantDeg) > 1e-9 {
				t.Errorf("CompassAzimuthDeg = %v, want %v", deg, tt.wantDeg)
			}
			if pt := CompassPoint(tt.az); pt != tt.wantPt {
				t.Errorf("CompassPoint = %q, want %q", pt, tt.wantPt)
			}
		})
	}
}
