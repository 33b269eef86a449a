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

const (
	glyphSun = '☀'

	colorSun     = "220" // bright gold
	colorMoon    = "252" // pale gray
	colorHorizon = "60"  // muted purple
	colorGround  = "46"  // green observer marker
)

// SkyViewModel renders the whole sky: azimuth 0–360° across the width,
// altitude 0–90° above the horizon line.
type SkyViewModel struct {
	width  int
	height int

	snapshot state.Snapshot
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{}
}

// Init returns nil cmd.
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages. The sky view has no interactive state of its own.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	return m, nil
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}
	if m.snapshot.Report == nil {
		return "Computing ephemerides..."
	}

	viewHeight := m.height - 2
	canvas := m.renderSkyCanvas(m.width, viewHeight)

	var b strings.Builder
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m SkyViewModel) renderStatus() string {
	r := m.snapshot.Report
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	sunAlt := r.Sun.Altitude * 180 / math.Pi
	moonAlt := r.Moon.Altitude * 180 / math.Pi

	line := fmt.Sprintf(">>> Sun Az:%.0f° Alt:%.0f° | %c Moon Az:%.0f° Alt:%.0f° | %.0f%% lit",
		almanac.CompassAzimuthDeg(r.Sun.Azimuth), sunAlt,
		almanac.MoonPhaseGlyph(r.MoonIllum.Phase),
		almanac.CompassAzimuthDeg(r.Moon.Azimuth), moonAlt,
		r.MoonIllum.Fraction*100,
	)
	return accentStyle.Render(line)
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	horizonY := height - 2

	// Horizon line
	for x := 0; x < width; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = colorHorizon
	}

	// Cardinal directions on the horizon
	m.drawCardinal(canvas, colors, width, horizonY, 'N', 0)
	m.drawCardinal(canvas, colors, width, horizonY, 'E', 90)
	m.drawCardinal(canvas, colors, width, horizonY, 'S', 180)
	m.drawCardinal(canvas, colors, width, horizonY, 'W', 270)

	r := m.snapshot.Report

	// Sun
	if x, y, up := m.projectBody(r.Sun.Azimuth, r.Sun.Altitude, width, horizonY); up {
		canvas[y][x] = glyphSun
		colors[y][x] = colorSun
	}

	// Moon: glyph tracks the phase
	if x, y, up := m.projectBody(r.Moon.Azimuth, r.Moon.Altitude, width, horizonY); up {
		canvas[y][x] = almanac.MoonPhaseGlyph(r.MoonIllum.Phase)
		colors[y][x] = colorMoon
	}

	// Observer marker at bottom center
	obsX := width / 2
	obsY := height - 1
	canvas[obsY][obsX] = '▲'
	colors[obsY][obsX] = colorGround

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m SkyViewModel) drawCardinal(canvas [][]rune, colors [][]lipgloss.Color, width, horizonY int, label rune, compassDeg float64) {
	x := int(compassDeg / 360 * float64(width))
	if x >= 0 && x < width {
		canvas[horizonY][x] = label
		colors[horizonY][x] = "252"
	}
}

// projectBody maps a formula-convention azimuth/altitude (radians) onto the
// canvas: compass azimuth 0–360° spans the width, altitude 0–90° spans the
// rows above the horizon line. Bodies below the horizon are not drawn.
func (m SkyViewModel) projectBody(az, alt float64, width, horizonY int) (int, int, bool) {
	altDeg := alt * 180 / math.Pi
	if altDeg <= 0 {
		return 0, 0, false
	}
	if altDeg > 90 {
		altDeg = 90
	}

	compassDeg := almanac.CompassAzimuthDeg(az)
	x := int(compassDeg / 360 * float64(width))
	if x >= width {
		x = width - 1
	}

	y := int((1 - altDeg/90) * float64(horizonY))
	if y >= horizonY {
		y = horizonY - 1
	}
	if y < 0 {
		y = 0
	}

	return x, y, true
}
