package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "waitingtodo/internal/infrastructure/errors"
)

// FileName is the optional config file looked up beside the executable
const FileName = "shell.yaml"

// DefaultDevServerURL is loaded in development mode unless DEV_SERVER_URL overrides it
const DefaultDevServerURL = "http://localhost:5173"

// ProcessMode selects where the window content comes from
type ProcessMode string

const (
	ModeDevelopment ProcessMode = "development"
	ModeProduction  ProcessMode = "production"
)

// ModeFromEnv maps a NODE_ENV value to a ProcessMode; only the exact value "development" selects development
func ModeFromEnv(value string) ProcessMode {
	if value == string(ModeDevelopment) {
		return ModeDevelopment
	}
	return ModeProduction
}

// parseBoolEnv reads an environment variable and parses it as a boolean.
// Returns the parsed value and whether the variable was present and recognised.
func parseBoolEnv(key string) (bool, bool) {
	value := os.Getenv(key)
	if value == "" {
		return false, false
	}

	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed, true
	}

	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, true
	case "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

// Config holds the shell settings
type Config struct {
	// Window
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`

	// Tray
	TrayTooltip  string `json:"trayTooltip" yaml:"trayTooltip"`
	QuitLabel    string `json:"quitLabel" yaml:"quitLabel"`
	RestartLabel string `json:"restartLabel" yaml:"restartLabel"`

	// Packaged resources, relative to the executable directory
	IconPath    string `json:"iconPath" yaml:"iconPath"`
	EntryPath   string `json:"entryPath" yaml:"entryPath"`
	PreloadPath string `json:"preloadPath" yaml:"preloadPath"`

	// Development
	DevServerURL        string `json:"devServerUrl" yaml:"devServerUrl"`
	DevServerProbeTries int    `json:"devServerProbeTries" yaml:"devServerProbeTries"` // 0 disables the readiness probe

	NotifyOnHide bool   `json:"notifyOnHide" yaml:"notifyOnHide"` // one-time "still running" notification
	LogLevel     string `json:"logLevel" yaml:"logLevel"`

	// Mode is derived from NODE_ENV in Load and never read from the file
	Mode ProcessMode `json:"-" yaml:"-"`
}

// DefaultConfig returns the packaged defaults
func DefaultConfig() *Config {
	return &Config{
		Title:  "WaitingToDo",
		Width:  1200,
		Height: 800,

		TrayTooltip:  "WaitingToDo",
		QuitLabel:    "退出",
		RestartLabel: "重启",

		IconPath:    filepath.Join("resources", "icon.png"),
		EntryPath:   filepath.Join("out", "renderer", "index.html"),
		PreloadPath: filepath.Join("out", "preload", "index.js"),

		DevServerURL:        DefaultDevServerURL,
		DevServerProbeTries: 5,

		NotifyOnHide: true,
		LogLevel:     "info",
		Mode:         ModeProduction,
	}
}

// Load builds the configuration: defaults, then shell.yaml in exeDir if present, then the environment
func Load(exeDir string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(exeDir, FileName)
	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}

	cfg.LoadFromEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.HandleConfigError("load_config", path, err)
	}
	return cfg, nil
}

// LoadFromFile overlays values from a YAML file; a missing file is not an error
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperrors.HandleConfigError("read_config", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return apperrors.HandleConfigError("parse_config", path, err)
	}
	return nil
}

// LoadFromEnvironment applies environment overrides and derives the process mode
func (c *Config) LoadFromEnvironment() {
	c.Mode = ModeFromEnv(os.Getenv("NODE_ENV"))

	if devURL := os.Getenv("DEV_SERVER_URL"); devURL != "" {
		c.DevServerURL = devURL
	}

	if level := os.Getenv("WAITINGTODO_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}

	if notify, present := parseBoolEnv("WAITINGTODO_NOTIFY_ON_HIDE"); present {
		c.NotifyOnHide = notify
	}
}

// IsDevelopment reports whether content comes from the development server
func (c *Config) IsDevelopment() bool {
	return c.Mode == ModeDevelopment
}

// Validate validates the configuration parameters
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}

	if strings.TrimSpace(c.QuitLabel) == "" {
		return fmt.Errorf("quitLabel cannot be empty")
	}
	if strings.TrimSpace(c.RestartLabel) == "" {
		return fmt.Errorf("restartLabel cannot be empty")
	}

	for name, p := range map[string]string{"iconPath": c.IconPath, "entryPath": c.EntryPath, "preloadPath": c.PreloadPath} {
		if p == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
	}

	u, err := url.Parse(c.DevServerURL)
	if err != nil {
		return fmt.Errorf("invalid devServerUrl %q: %w", c.DevServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("devServerUrl must be an absolute http(s) URL, got %q", c.DevServerURL)
	}

	if c.DevServerProbeTries < 0 {
		return fmt.Errorf("devServerProbeTries cannot be negative, got %d", c.DevServerProbeTries)
	}

	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}

	return nil
}
