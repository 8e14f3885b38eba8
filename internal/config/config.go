package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"teampulse/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	_ "embed"
)

var configOnce sync.Once

var globalConfig *Config

var customConfigPath string // Custom config path set via --config flag

//go:embed config.sample.json
var sampleConfig []byte

const (
	CONFIG_DIR_PATH  = "teampulse"
	CONFIG_FILE_PATH = "config.json"
	CONFIG_DIR_PERM  = 0755
	CONFIG_FILE_PERM = 0644
)

// TabsConfig overrides the sheet tab a record family is read from and
// appended to. Empty fields fall back to the tab's default name.
type TabsConfig struct {
	Checkins string `json:"checkins,omitempty"`
	Kudos    string `json:"kudos,omitempty"`
	Replies  string `json:"replies,omitempty"`
	Tasks    string `json:"tasks,omitempty"`
	Goals    string `json:"goals,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	// Endpoint is the base URL of the spreadsheet REST endpoint. When
	// empty, the application runs against the embedded fixture data.
	Endpoint string `json:"endpoint"`

	// APIToken is the lowest-priority credential source. The keyring and
	// the TEAMPULSE_API_TOKEN environment variable take precedence.
	APIToken string `json:"api_token,omitempty"`

	// Member is the name under which check-ins, kudos, tasks and goals
	// are recorded.
	Member string `json:"member,omitempty"`

	Tabs TabsConfig `json:"tabs,omitempty"`

	// RefreshSchedule is a cron expression for the watch command.
	RefreshSchedule string `json:"refresh_schedule,omitempty"`

	// SnapshotPath overrides the default location of the local snapshot
	// database.
	SnapshotPath string `json:"snapshot_path,omitempty"`

	UI string `json:"ui" validate:"oneof=cli tui"`

	// DashboardWeeks is how many Monday-anchored weeks the dashboard
	// covers, ending at the current week.
	DashboardWeeks int `json:"dashboard_weeks,omitempty" validate:"omitempty,min=1,max=52"`
}

// UsesFixture reports whether the app should serve the embedded fixture
// data instead of a remote endpoint.
func (c *Config) UsesFixture() bool {
	return c.Endpoint == ""
}

func (c *Config) GetRefreshSchedule() string {
	if c.RefreshSchedule == "" {
		return "*/15 * * * *" // Every 15 minutes
	}
	return c.RefreshSchedule
}

func (c *Config) GetDashboardWeeks() int {
	if c.DashboardWeeks == 0 {
		return 4
	}
	return c.DashboardWeeks
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// SetCustomConfigPath sets a custom config path to use instead of the default
// user config directory.
// If path is empty or ".", it uses "./teampulse/config.json" (current directory).
// If path is a directory, it looks for "config.json" inside it.
// If path is a file, it uses that file directly.
// This must be called before GetConfig() is called for the first time.
func SetCustomConfigPath(path string) {
	if path == "" || path == "." {
		customConfigPath = filepath.Join(".", CONFIG_DIR_PATH, CONFIG_FILE_PATH)
	} else {
		// Check if path is a directory
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			customConfigPath = filepath.Join(path, CONFIG_FILE_PATH)
		} else {
			customConfigPath = path
		}
	}
}

func GetConfig() *Config {
	configOnce.Do(func() {
		config, err := loadUserOrSampleConfig()
		if err != nil {
			log.Fatal(err)
		}
		globalConfig = config
	})
	return globalConfig
}

func loadUserOrSampleConfig() (*Config, error) {
	// A .env file next to the working directory may carry overrides,
	// ignore it when absent.
	_ = godotenv.Load()

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	configData, err := configDataFromPath(configPath)
	if err != nil {
		return nil, err
	}
	configObj, err := parseConfig(configData, configPath)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(configObj)
	return configObj, nil
}

func GetConfigPath() (string, error) {
	// If a custom config path was set, check if it exists
	if customConfigPath != "" {
		if _, err := os.Stat(customConfigPath); err == nil {
			return customConfigPath, nil
		}
		// Custom path was set but doesn't exist, still return it
		// (allows creation of config in custom location)
		return customConfigPath, nil
	}

	// Otherwise, use the default user config directory
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(dir, CONFIG_DIR_PATH, CONFIG_FILE_PATH), nil
}

func createConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), CONFIG_DIR_PERM)
}

func WriteConfigFile(configPath string, data []byte) error {
	return os.WriteFile(configPath, data, CONFIG_FILE_PERM)
}

func createConfigFromSample(configPath string) []byte {
	var (
		configData []byte
		err        error
	)
	err = createConfigDir(configPath)
	if err != nil {
		log.Fatal(err)
	}
	configData = sampleConfig

	err = WriteConfigFile(configPath, configData)
	if err != nil {
		log.Fatal(err)
	}
	return configData
}

func parseConfig(configData []byte, configPath string) (*Config, error) {
	var configObj Config
	err := json.Unmarshal(configData, &configObj)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in config file %s: %w", configPath, err)
	}

	if err = configObj.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field(s) in JSON config file %s: %w", configPath, err)
	}
	return &configObj, nil
}

func configDataFromPath(configPath string) ([]byte, error) {
	var (
		configData []byte
		err        error
	)

	configData, err = os.ReadFile(configPath)
	if os.IsNotExist(err) {
		fmt.Println("No config exist at ", configPath)

		shouldCopySample := utils.PromptYesNo("Do you want to copy config sample to " + configPath + "?")
		if shouldCopySample {
			configData = createConfigFromSample(configPath)
		} else {
			configData = sampleConfig
		}
	}

	return configData, nil
}

// applyEnvOverrides lets environment variables (possibly loaded from a
// .env file) override individual config fields.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("TEAMPULSE_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("TEAMPULSE_MEMBER"); v != "" {
		c.Member = v
	}
	if v := os.Getenv("TEAMPULSE_SNAPSHOT_PATH"); v != "" {
		c.SnapshotPath = v
	}
	if v := os.Getenv("TEAMPULSE_REFRESH_SCHEDULE"); v != "" {
		c.RefreshSchedule = v
	}
	if v := os.Getenv("TEAMPULSE_UI"); v == "cli" || v == "tui" {
		c.UI = v
	}
	if v := os.Getenv("TEAMPULSE_DASHBOARD_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 52 {
			c.DashboardWeeks = n
		}
	}
}
