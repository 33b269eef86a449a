package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "almanac.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
default_site: kyiv
sites:
  - name: kyiv
    latitude: 50.5
    longitude: 30.5
  - name: svalbard
    latitude: 78.22
    longitude: 15.65
    height_m: 10
phases:
  - angle_deg: -4
    morning: blueHourDawn
    evening: blueHourDusk
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Sites) != 2 {
		t.Fatalf("sites = %d, want 2", len(cfg.Sites))
	}

	site, ok := cfg.Site("") // empty falls back to default_site
	if !ok || site.Name != "kyiv" {
		t.Errorf("default site = %+v (ok=%v), want kyiv", site, ok)
	}
	if site.Latitude != 50.5 || site.Longitude != 30.5 {
		t.Errorf("kyiv coordinates = %v, %v", site.Latitude, site.Longitude)
	}

	sv, ok := cfg.Site("svalbard")
	if !ok || sv.HeightM != 10 {
		t.Errorf("svalbard = %+v (ok=%v)", sv, ok)
	}

	if len(cfg.Phases) != 1 || cfg.Phases[0].Morning != "blueHourDawn" {
		t.Errorf("phases = %+v", cfg.Phases)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "sites: [unclosed")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unnamed site",
			content: "sites:\n  - latitude: 1\n    longitude: 2\n",
			wantErr: "no name",
		},
		{
			name:    "duplicate site",
			content: "sites:\n  - name: a\n  - name: a\n",
			wantErr: "duplicate",
		},
		{
			name:    "unknown default site",
			content: "default_site: x\nsites:\n  - name: a\n",
			wantErr: "not found",
		},
		{
			name:    "half-named phase",
			content: "phases:\n  - angle_deg: -4\n    morning: only\n",
			wantErr: "both morning and evening",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSiteUnknown(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.Site("anywhere"); ok {
		t.Error("empty config should not resolve sites")
	}
}
