// Command ls-almanac is a terminal almanac for sun and moon positions,
// twilight times, and lunar phases at an observer location.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/ui"
	"github.com/litescript/ls-almanac/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	nowMode       bool
	watchInterval time.Duration
	snapshotPath  string
)

const (
	defaultRefresh = 1 * time.Second
	minRefresh     = 100 * time.Millisecond
	maxRefresh     = 5 * time.Minute
)

func main() {
	lat := flag.Float64("lat", 51.4769, "Observer latitude in degrees (north positive)")
	lon := flag.Float64("lon", 0, "Observer longitude in degrees (east positive)")
	height := flag.Float64("height", 0, "Observer height above the horizon in metres")
	siteName := flag.String("site", "", "Named site from the config file")
	configPath := flag.String("config", "", "Path to YAML config file")
	dateStr := flag.String("date", "", "Compute for a fixed instant (RFC 3339 or YYYY-MM-DD) instead of now")
	refresh := flag.Duration("refresh", defaultRefresh, "TUI refresh interval (e.g., 1s)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print almanac table instead of TUI")
	flag.BoolVar(&nowMode, "now", false, "Single-line now mode")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON report to file (use - for stdout)")
	flag.Parse()

	if *showVersion {
		fmt.Println("ls-almanac " + version.Version)
		return
	}

	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
	}

	// The config file's log level applies unless -log-level was given.
	level := *logLevel
	if !flagsSet()["log-level"] && cfg.Logging.Level != "" {
		level = cfg.Logging.Level
	}

	logger, err := newLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *configPath != "" {
		logger.Debugw("Config loaded", "path", *configPath, "sites", len(cfg.Sites))
	}

	obs, err := resolveObserver(cfg, *siteName, *lat, *lon, *height, flagsSet())
	if err != nil {
		logger.Fatalw("Resolving observer", "error", err)
	}

	stateCfg := state.DefaultConfig()
	stateCfg.Observer = obs
	stateCfg.RefreshInterval = *refresh
	for _, p := range cfg.Phases {
		stateCfg.CustomPhases = append(stateCfg.CustomPhases, astro.DayPhase{
			AngleDeg:    p.AngleDeg,
			MorningName: p.Morning,
			EveningName: p.Evening,
		})
	}
	stateMgr := state.NewManager(stateCfg)

	if *dateStr != "" {
		at, err := parseDate(*dateStr)
		if err != nil {
			logger.Fatalw("Parsing -date", "value", *dateStr, "error", err)
		}
		stateMgr.Freeze(at)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Headless when a text mode is requested, or when stdout is not a
	// terminal (piped output falls back to the summary table).
	headless := summaryMode || nowMode || snapshotPath != ""
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		summaryMode = true
		headless = true
	}
	if headless {
		runHeadless(ctx, stateMgr, logger)
		return
	}

	model := ui.New(stateMgr)
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Debugw("Starting TUI", "observer", obs.Name, "refresh", *refresh)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a console logger on stderr so headless output on stdout
// stays clean.
func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Sugar(), nil
}

// parseDate accepts an RFC 3339 instant or a bare YYYY-MM-DD date (midnight UTC).
func parseDate(s string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339, s); err == nil {
		return at.UTC(), nil
	}
	at, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC 3339 or YYYY-MM-DD: %w", err)
	}
	return at.UTC(), nil
}

// flagsSet reports which flags were given explicitly on the command line.
func flagsSet() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// resolveObserver picks the observer location: a named config site when
// -site is given (or the config declares a default), overridden by any
// explicit -lat/-lon/-height flags.
func resolveObserver(cfg *config.Config, siteName string, lat, lon, height float64, set map[string]bool) (astro.Observer, error) {
	var obs astro.Observer

	if siteName != "" || cfg.DefaultSite != "" {
		site, ok := cfg.Site(siteName)
		if !ok {
			return obs, fmt.Errorf("site %q not found in config", siteName)
		}
		obs = astro.Observer{
			LatDeg:  site.Latitude,
			LonDeg:  site.Longitude,
			HeightM: site.HeightM,
			Name:    site.Name,
		}
	} else {
		obs = astro.Observer{LatDeg: lat, LonDeg: lon, HeightM: height}
	}

	if set["lat"] {
		obs.LatDeg = lat
	}
	if set["lon"] {
		obs.LonDeg = lon
	}
	if set["height"] {
		obs.HeightM = height
	}

	if obs.LatDeg < -90 || obs.LatDeg > 90 {
		return obs, fmt.Errorf("latitude %.4f out of range [-90, 90]", obs.LatDeg)
	}
	if obs.LonDeg < -180 || obs.LonDeg > 180 {
		return obs, fmt.Errorf("longitude %.4f out of range [-180, 180]", obs.LonDeg)
	}
	return obs, nil
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, logger *zap.SugaredLogger) {
	outputOnce := func() error {
		r := stateMgr.Recompute()
		snap := stateMgr.Snapshot()

		if nowMode {
			almanac.WriteNowLine(os.Stdout, r)
			return nil
		}

		if snapshotPath != "" {
			export := almanac.ExportReport(r, snap.LastCompute)
			if snapshotPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
				logger.Debugw("Snapshot written", "path", snapshotPath)
			}
		}

		if summaryMode {
			almanac.WriteSummaryTable(os.Stdout, r)
		}

		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !nowMode {
				fmt.Println()
			}
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
