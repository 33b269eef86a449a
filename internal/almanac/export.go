package almanac

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// ReportExport is the JSON-serializable representation of a report.
type ReportExport struct {
	Site        string       `json:"site,omitempty"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	HeightM     float64      `json:"height_m,omitempty"`
	Time        time.Time    `json:"time"`
	Sun         BodyExport   `json:"sun"`
	Moon        MoonExport   `json:"moon"`
	DayPhases   []PhaseEntry `json:"day_phases"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// BodyExport is a JSON-friendly sky position.
type BodyExport struct {
	AzimuthDeg  float64 `json:"azimuth_deg"` // compass convention, 0 = north
	AltitudeDeg float64 `json:"altitude_deg"`
	Compass     string  `json:"compass"`
}

// MoonExport extends BodyExport with moon-specific fields.
type MoonExport struct {
	BodyExport
	DistanceKm float64    `json:"distance_km"`
	Fraction   float64    `json:"illuminated_fraction"`
	Phase      float64    `json:"phase"`
	PhaseName  string     `json:"phase_name"`
	Rise       *time.Time `json:"rise,omitempty"`
	Set        *time.Time `json:"set,omitempty"`
	AlwaysUp   bool       `json:"always_up,omitempty"`
	AlwaysDown bool       `json:"always_down,omitempty"`
}

// PhaseEntry is one day-phase crossing. Time is omitted when the phase does
// not occur (polar day or night).
type PhaseEntry struct {
	Name string     `json:"name"`
	Time *time.Time `json:"time,omitempty"`
}

// ExportReport converts a report to its exportable form.
func ExportReport(r *Report, generatedAt time.Time) *ReportExport {
	export := &ReportExport{
		Site:        r.Observer.Name,
		Latitude:    r.Observer.LatDeg,
		Longitude:   r.Observer.LonDeg,
		HeightM:     r.Observer.HeightM,
		Time:        r.Time,
		GeneratedAt: generatedAt,
		Sun: BodyExport{
			AzimuthDeg:  CompassAzimuthDeg(r.Sun.Azimuth),
			AltitudeDeg: r.Sun.Altitude * 180 / math.Pi,
			Compass:     CompassPoint(r.Sun.Azimuth),
		},
		Moon: MoonExport{
			BodyExport: BodyExport{
				AzimuthDeg:  CompassAzimuthDeg(r.Moon.Azimuth),
				AltitudeDeg: r.Moon.Altitude * 180 / math.Pi,
				Compass:     CompassPoint(r.Moon.Azimuth),
			},
			DistanceKm: r.Moon.DistanceKm,
			Fraction:   r.MoonIllum.Fraction,
			Phase:      r.MoonIllum.Phase,
			PhaseName:  MoonPhaseName(r.MoonIllum.Phase),
			Rise:       r.MoonTimes.Rise,
			Set:        r.MoonTimes.Set,
			AlwaysUp:   r.MoonTimes.AlwaysUp,
			AlwaysDown: r.MoonTimes.AlwaysDown,
		},
	}

	for _, row := range r.Rows() {
		entry := PhaseEntry{Name: row.Name}
		if row.Time.Valid {
			t := row.Time.Time
			entry.Time = &t
		}
		export.DayPhases = append(export.DayPhases, entry)
	}

	return export
}

// WriteJSON writes the export as indented JSON to the given writer.
func (e *ReportExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummaryTable writes a text table of the report to the given writer.
func WriteSummaryTable(w io.Writer, r *Report) {
	site := r.Observer.Name
	if site == "" {
		site = fmt.Sprintf("%.4f, %.4f", r.Observer.LatDeg, r.Observer.LonDeg)
	}

	fmt.Fprintf(w, "Almanac for %s @ %s\n", site, r.Time.UTC().Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 62))

	fmt.Fprintf(w, "Sun   Az %6.1f° (%s)  Alt %6.1f°\n",
		CompassAzimuthDeg(r.Sun.Azimuth), CompassPoint(r.Sun.Azimuth), r.Sun.Altitude*180/math.Pi)
	fmt.Fprintf(w, "Moon  Az %6.1f° (%s)  Alt %6.1f°  %s %.0f%%  %.0f km\n",
		CompassAzimuthDeg(r.Moon.Azimuth), CompassPoint(r.Moon.Azimuth), r.Moon.Altitude*180/math.Pi,
		MoonPhaseName(r.MoonIllum.Phase), r.MoonIllum.Fraction*100, r.Moon.DistanceKm)

	switch {
	case r.MoonTimes.AlwaysUp:
		fmt.Fprintln(w, "      up all day")
	case r.MoonTimes.AlwaysDown:
		fmt.Fprintln(w, "      down all day")
	default:
		fmt.Fprintf(w, "      rise %s  set %s\n",
			formatInstant(r.MoonTimes.Rise), formatInstant(r.MoonTimes.Set))
	}

	fmt.Fprintln(w, strings.Repeat("─", 62))
	fmt.Fprintf(w, "%-16s %s\n", "Phase", "Time (UTC)")
	fmt.Fprintln(w, strings.Repeat("─", 62))

	for _, row := range r.Rows() {
		if row.Time.Valid {
			fmt.Fprintf(w, "%-16s %s\n", row.Name, row.Time.Time.UTC().Format("15:04:05 Jan _2"))
		} else {
			fmt.Fprintf(w, "%-16s —\n", row.Name)
		}
	}
}

// WriteNowLine writes the single-line now-playing summary.
func WriteNowLine(w io.Writer, r *Report) {
	next := "no further events today"
	if name, at, ok := r.NextEvent(); ok {
		next = fmt.Sprintf("next %s %s", name, at.UTC().Format("15:04"))
	}
	fmt.Fprintf(w, "%c sun %+.1f° | moon %+.1f° %.0f%% | %s\n",
		MoonPhaseGlyph(r.MoonIllum.Phase),
		r.Sun.Altitude*180/math.Pi,
		r.Moon.Altitude*180/math.Pi,
		r.MoonIllum.Fraction*100,
		next)
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.UTC().Format("15:04")
}
