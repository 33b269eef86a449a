package almanac

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
)

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, testReport(t))
	out := buf.String()

	for _, want := range []string{"Almanac for Kyiv", "Sun", "Moon", "sunrise", "sunset", "solarNoon", "nadir"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryTablePolarNight(t *testing.T) {
	r := Compute(astro.NewCalculator(),
		astro.Observer{LatDeg: 78, LonDeg: 15, Name: "Longyearbyen"},
		time.Date(2020, 12, 21, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	WriteSummaryTable(&buf, r)
	out := buf.String()

	// Indeterminate phases render as an em-dash placeholder, not a zero time.
	if !strings.Contains(out, "—") {
		t.Errorf("polar-night summary should mark missing phases:\n%s", out)
	}
	if strings.Contains(out, "0001-01-01") {
		t.Errorf("zero time leaked into summary:\n%s", out)
	}
}

func TestWriteNowLine(t *testing.T) {
	var buf bytes.Buffer
	WriteNowLine(&buf, testReport(t))
	out := buf.String()

	if !strings.Contains(out, "sun") || !strings.Contains(out, "moon") {
		t.Errorf("now line incomplete: %q", out)
	}
	if !strings.Contains(out, "next nightEnd") {
		t.Errorf("now line should announce the next event: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("now line must be a single line: %q", out)
	}
}

func TestExportReportJSON(t *testing.T) {
	r := testReport(t)
	export := ExportReport(r, time.Date(2013, 3, 5, 0, 0, 1, 0, time.UTC))

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded ReportExport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}

	if decoded.Site != "Kyiv" {
		t.Errorf("site = %q, want Kyiv", decoded.Site)
	}
	if decoded.Latitude != 50.5 || decoded.Longitude != 30.5 {
		t.Errorf("coordinates = %v, %v", decoded.Latitude, decoded.Longitude)
	}
	if len(decoded.DayPhases) != 14 {
		t.Errorf("day phases = %d, want 14", len(decoded.DayPhases))
	}
	if decoded.Moon.PhaseName == "" {
		t.Error("moon phase name missing")
	}
}

func TestExportReportOmitsIndeterminatePhases(t *testing.T) {
	r := Compute(astro.NewCalculator(),
		astro.Observer{LatDeg: 78, LonDeg: 15},
		time.Date(2020, 12, 21, 0, 0, 0, 0, time.UTC))

	export := ExportReport(r, time.Now())

	var sawNil bool
	for _, p := range export.DayPhases {
		if p.Name == "sunrise" && p.Time != nil {
			t.Error("polar-night sunrise should have nil time")
		}
		if p.Time == nil {
			sawNil = true
		}
	}
	if !sawNil {
		t.Error("expected omitted times during polar night")
	}
}
