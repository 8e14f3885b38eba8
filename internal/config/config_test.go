package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TestParseConfig tests parsing and validation of config files
func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name:    "valid cli config",
			data:    `{"endpoint": "https://sheets.example.com/v1", "member": "ada", "ui": "cli"}`,
			wantErr: false,
		},
		{
			name:    "valid tui config",
			data:    `{"endpoint": "", "ui": "tui"}`,
			wantErr: false,
		},
		{
			name:    "invalid UI value",
			data:    `{"endpoint": "", "ui": "web"}`,
			wantErr: true,
		},
		{
			name:    "dashboard weeks out of range",
			data:    `{"endpoint": "", "ui": "cli", "dashboard_weeks": 99}`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			data:    `{"endpoint": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tt.data), "test-config.json")
			if (err != nil) != tt.wantErr {
				t.Errorf("parseConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSampleConfigIsValid ensures the embedded sample parses and validates
func TestSampleConfigIsValid(t *testing.T) {
	cfg, err := parseConfig(sampleConfig, "config.sample.json")
	if err != nil {
		t.Fatalf("embedded sample config is invalid: %v", err)
	}
	if !cfg.UsesFixture() {
		t.Error("sample config should default to fixture data (empty endpoint)")
	}
	if cfg.UI != "cli" {
		t.Errorf("sample UI = %s, want cli", cfg.UI)
	}
}

// TestConfigDefaults tests fallback values for optional fields
func TestConfigDefaults(t *testing.T) {
	cfg := &Config{UI: "cli"}

	if got := cfg.GetRefreshSchedule(); got != "*/15 * * * *" {
		t.Errorf("GetRefreshSchedule() = %q, want %q", got, "*/15 * * * *")
	}
	if got := cfg.GetDashboardWeeks(); got != 4 {
		t.Errorf("GetDashboardWeeks() = %d, want 4", got)
	}

	cfg.RefreshSchedule = "0 * * * *"
	cfg.DashboardWeeks = 8
	if got := cfg.GetRefreshSchedule(); got != "0 * * * *" {
		t.Errorf("GetRefreshSchedule() = %q, want %q", got, "0 * * * *")
	}
	if got := cfg.GetDashboardWeeks(); got != 8 {
		t.Errorf("GetDashboardWeeks() = %d, want 8", got)
	}
}

// TestApplyEnvOverrides tests environment variable overrides
func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TEAMPULSE_ENDPOINT", "https://override.example.com")
	t.Setenv("TEAMPULSE_MEMBER", "grace")
	t.Setenv("TEAMPULSE_UI", "tui")
	t.Setenv("TEAMPULSE_DASHBOARD_WEEKS", "12")

	cfg := &Config{
		Endpoint: "https://original.example.com",
		Member:   "ada",
		UI:       "cli",
	}
	applyEnvOverrides(cfg)

	if cfg.Endpoint != "https://override.example.com" {
		t.Errorf("Endpoint = %s, want override", cfg.Endpoint)
	}
	if cfg.Member != "grace" {
		t.Errorf("Member = %s, want grace", cfg.Member)
	}
	if cfg.UI != "tui" {
		t.Errorf("UI = %s, want tui", cfg.UI)
	}
	if cfg.DashboardWeeks != 12 {
		t.Errorf("DashboardWeeks = %d, want 12", cfg.DashboardWeeks)
	}
}

// TestApplyEnvOverridesIgnoresBadValues tests that malformed overrides are dropped
func TestApplyEnvOverridesIgnoresBadValues(t *testing.T) {
	t.Setenv("TEAMPULSE_UI", "web")
	t.Setenv("TEAMPULSE_DASHBOARD_WEEKS", "not-a-number")

	cfg := &Config{UI: "cli", DashboardWeeks: 4}
	applyEnvOverrides(cfg)

	if cfg.UI != "cli" {
		t.Errorf("UI = %s, want cli (invalid override ignored)", cfg.UI)
	}
	if cfg.DashboardWeeks != 4 {
		t.Errorf("DashboardWeeks = %d, want 4 (invalid override ignored)", cfg.DashboardWeeks)
	}
}

// TestSetCustomConfigPath tests resolution of the --config flag
func TestSetCustomConfigPath(t *testing.T) {
	defer func() { customConfigPath = "" }()

	tmpDir := t.TempDir()

	// A directory argument resolves to config.json inside it
	SetCustomConfigPath(tmpDir)
	got, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	want := filepath.Join(tmpDir, CONFIG_FILE_PATH)
	if got != want {
		t.Errorf("GetConfigPath() = %s, want %s", got, want)
	}

	// A file argument is used directly
	filePath := filepath.Join(tmpDir, "custom.json")
	if err := os.WriteFile(filePath, []byte(`{"endpoint":"","ui":"cli"}`), 0644); err != nil {
		t.Fatal(err)
	}
	SetCustomConfigPath(filePath)
	got, err = GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if got != filePath {
		t.Errorf("GetConfigPath() = %s, want %s", got, filePath)
	}
}

// TestConfigRoundTrip tests that a config survives marshal and re-parse
func TestConfigRoundTrip(t *testing.T) {
	cfg := &Config{
		Endpoint:        "https://sheets.example.com/v1",
		Member:          "linus",
		Tabs:            TabsConfig{Checkins: "daily", Kudos: "shoutouts"},
		RefreshSchedule: "*/5 * * * *",
		UI:              "tui",
		DashboardWeeks:  6,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}

	parsed, err := parseConfig(data, "roundtrip.json")
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if parsed.Endpoint != cfg.Endpoint {
		t.Errorf("Endpoint = %s, want %s", parsed.Endpoint, cfg.Endpoint)
	}
	if parsed.Tabs.Kudos != "shoutouts" {
		t.Errorf("Tabs.Kudos = %s, want shoutouts", parsed.Tabs.Kudos)
	}
	if parsed.UsesFixture() {
		t.Error("config with endpoint should not use fixture")
	}
}
