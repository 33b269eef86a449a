package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/state"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("179"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	nextEventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	indeterminateStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)

// DashboardModel is the main almanac dashboard view: sun and moon panels
// plus the day-phase timetable.
type DashboardModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// Init implements the Bubble Tea model interface.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot.
func (m DashboardModel) UpdateData(snapshot state.Snapshot) DashboardModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rowCount := 0
		if m.snapshot.Report != nil {
			rowCount = len(m.snapshot.Report.DayTimes)
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < rowCount-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if rowCount > 0 {
				m.cursor = rowCount - 1
			}
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.snapshot.Report == nil {
		return "Computing ephemerides..."
	}

	var b strings.Builder

	b.WriteString(m.renderSunPanel())
	b.WriteString("\n")
	b.WriteString(m.renderMoonPanel())
	b.WriteString("\n\n")
	b.WriteString(m.renderPhaseTable())

	return b.String()
}

func (m DashboardModel) renderSunPanel() string {
	r := m.snapshot.Report
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sun"))
	b.WriteString("\n")

	altDeg := r.Sun.Altitude * 180 / math.Pi
	azDeg := almanac.CompassAzimuthDeg(r.Sun.Azimuth)

	status := "below horizon"
	switch {
	case altDeg >= 6:
		status = "up"
	case altDeg >= -0.833:
		status = "low (golden hour)"
	case altDeg >= -6:
		status = "civil twilight"
	case altDeg >= -12:
		status = "nautical twilight"
	case altDeg >= -18:
		status = "astronomical twilight"
	}

	b.WriteString(fmt.Sprintf("  Alt %7.2f°  Az %6.1f° (%s)  %s\n",
		altDeg, azDeg, almanac.CompassPoint(r.Sun.Azimuth), status))

	return b.String()
}

func (m DashboardModel) renderMoonPanel() string {
	r := m.snapshot.Report
	var b strings.Builder

	b.WriteString(titleStyle.Render("Moon"))
	b.WriteString("\n")

	altDeg := r.Moon.Altitude * 180 / math.Pi
	azDeg := almanac.CompassAzimuthDeg(r.Moon.Azimuth)

	b.WriteString(fmt.Sprintf("  Alt %7.2f°  Az %6.1f° (%s)  %.0f km\n",
		altDeg, azDeg, almanac.CompassPoint(r.Moon.Azimuth), r.Moon.DistanceKm))

	glyph := almanac.MoonPhaseGlyph(r.MoonIllum.Phase)
	name := almanac.MoonPhaseName(r.MoonIllum.Phase)
	bar := m.renderIlluminationBar(r.MoonIllum.Fraction, 20)
	b.WriteString(fmt.Sprintf("  %c %s  %s %.1f%% lit\n",
		glyph, name, bar, r.MoonIllum.Fraction*100))

	b.WriteString("  " + m.renderMoonTimes() + "\n")

	return b.String()
}

func (m DashboardModel) renderMoonTimes() string {
	mt := m.snapshot.Report.MoonTimes
	switch {
	case mt.AlwaysUp:
		return "up all day"
	case mt.AlwaysDown:
		return "down all day"
	}

	rise := "—"
	if mt.Rise != nil {
		rise = mt.Rise.UTC().Format("15:04")
	}
	set := "—"
	if mt.Set != nil {
		set = mt.Set.UTC().Format("15:04")
	}
	return fmt.Sprintf("rise %s  set %s", rise, set)
}

func (m DashboardModel) renderIlluminationBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	return "[" + style.Render(bar) + "]"
}

func (m DashboardModel) renderPhaseTable() string {
	r := m.snapshot.Report
	var b strings.Builder

	b.WriteString(titleStyle.Render("Day Phases"))
	b.WriteString("\n")

	header := fmt.Sprintf("%-16s %-10s", "Event", "Time (UTC)")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	rows := r.Rows()
	nextName, _, hasNext := r.NextEvent()

	// Leave room for the panels above.
	maxRows := m.height - 12
	if maxRows < 5 {
		maxRows = 5
	}

	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := startIdx + maxRows
	if endIdx > len(rows) {
		endIdx = len(rows)
	}

	for i := startIdx; i < endIdx; i++ {
		row := rows[i]

		timeStr := "—"
		if row.Time.Valid {
			timeStr = row.Time.Time.UTC().Format("15:04:05")
		}
		line := fmt.Sprintf("%-16s %-10s", row.Name, timeStr)

		switch {
		case i == m.cursor:
			b.WriteString(selectedRowStyle.Render(line))
		case hasNext && row.Name == nextName:
			b.WriteString(nextEventStyle.Render(line + "  ← next"))
		case !row.Time.Valid:
			b.WriteString(indeterminateStyle.Render(line))
		default:
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(rows) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d events", startIdx+1, endIdx, len(rows)))
	}

	return b.String()
}
