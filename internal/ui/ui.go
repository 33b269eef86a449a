// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewSky
)

// TickMsg triggers the periodic recompute.
type TickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	viewMode ViewMode
	width    int
	height   int
	ready    bool

	dashboard DashboardModel
	skyView   SkyViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:     stateMgr,
		viewMode:  ViewDashboard,
		dashboard: NewDashboardModel(),
		skyView:   NewSkyViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(recomputeNow(), tickCmd(m.state.RefreshInterval()))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "d":
			m.viewMode = ViewDashboard
		case "2", "s":
			m.viewMode = ViewSky
		case "tab":
			m.viewMode = (m.viewMode + 1) % 2

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes 4 lines, footer 2.
		contentHeight := msg.Height - 6
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()))
		m.state.Recompute()
		m.snapshot = m.state.Snapshot()
		m.dashboard = m.dashboard.UpdateData(m.snapshot)
		m.skyView = m.skyView.UpdateData(m.snapshot)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDashboard:
		content = m.dashboard.View()
	case ViewSky:
		content = m.skyView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("179")) // warm gold
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	site := "—"
	if m.snapshot.Observer.Name != "" {
		site = m.snapshot.Observer.Name
	} else if m.snapshot.Report != nil {
		site = fmt.Sprintf("%.2f, %.2f", m.snapshot.Observer.LatDeg, m.snapshot.Observer.LonDeg)
	}

	title := titleStyle.Render("ls-almanac") +
		mutedStyle.Render(fmt.Sprintf("  sun & moon almanac · v%s · %s", version.Version, site))

	return title + "\n" + m.renderTabs() + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Dashboard", "[2] Sky"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	clock := "—"
	if m.snapshot.Report != nil {
		clock = m.snapshot.Report.Time.UTC().Format("15:04:05 UTC")
		if m.snapshot.Frozen {
			clock += " (pinned)"
		}
	}

	help := "tab: switch view | q: quit"
	if m.viewMode == ViewDashboard {
		help = "↑/↓: scroll phases | " + help
	}

	return "  " + dimStyle.Render(clock) + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// recomputeNow produces an immediate first tick so the UI does not wait a
// full interval for data.
func recomputeNow() tea.Cmd {
	return func() tea.Msg {
		return TickMsg(time.Now())
	}
}
