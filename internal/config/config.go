// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/toastui/internal/animation"
	"github.com/jmylchreest/toastui/internal/dismiss"
	"github.com/jmylchreest/toastui/internal/icon"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/placement"
)

// AppName is the directory name used under the XDG config home.
const AppName = "toastui"

// Default configuration values.
const (
	DefaultVolume   = 80
	DefaultTheme    = "default"
	DefaultTemplate = "default"
)

// Config represents the toastui configuration.
// Loaded from ~/.config/toastui/config.toml
type Config struct {
	Display   DisplayConfig            `toml:"display" yaml:"display"`
	Timeouts  TimeoutConfig            `toml:"timeouts" yaml:"timeouts"`
	Animation AnimationConfig          `toml:"animation" yaml:"animation"`
	Defaults  model.NotificationConfig `toml:"defaults" yaml:"defaults"`
	Audio     AudioConfig              `toml:"audio" yaml:"audio"`
	Theme     ThemeConfig              `toml:"theme" yaml:"theme"`
	Layout    LayoutConfig             `toml:"layout" yaml:"layout"`
	Icon      IconConfig               `toml:"icon" yaml:"icon"`
}

// DisplayConfig contains window placement settings.
type DisplayConfig struct {
	Width           int              `toml:"width" yaml:"width"`                       // Popup width in pixels
	Margin          int              `toml:"margin" yaml:"margin"`                     // Pixels from screen edge
	BottomAllowance int              `toml:"bottom_allowance" yaml:"bottom_allowance"` // Extra lift for bottom corners
	Monitor         int              `toml:"monitor" yaml:"monitor"`                   // 0 = first monitor
	Insets          placement.Insets `toml:"insets" yaml:"insets"`                     // Panels and docks to avoid
}

// TimeoutConfig contains the auto-dismiss delay per durability.
// Durations can be specified as "5s", "1m", etc. or as integer milliseconds.
type TimeoutConfig struct {
	Short Duration `toml:"short" yaml:"short"`
	Long  Duration `toml:"long" yaml:"long"`
}

// AnimationConfig contains open/close animation settings.
type AnimationConfig struct {
	Duration Duration `toml:"duration" yaml:"duration"`
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled   bool   `toml:"enabled" yaml:"enabled"`
	Volume    int    `toml:"volume" yaml:"volume"`         // 0-100
	SoundsDir string `toml:"sounds_dir" yaml:"sounds_dir"` // Empty = ~/.config/toastui/sounds
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name string `toml:"name" yaml:"name"` // Theme name without .css extension
}

// LayoutConfig contains layout template settings.
type LayoutConfig struct {
	Template string `toml:"template" yaml:"template"` // Template name without .xml extension
}

// IconConfig contains icon loading limits.
type IconConfig struct {
	FetchTimeout Duration `toml:"fetch_timeout" yaml:"fetch_timeout"`
	MaxBytes     int64    `toml:"max_bytes" yaml:"max_bytes"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:           placement.DefaultWidth,
			Margin:          placement.DefaultMargin,
			BottomAllowance: placement.DefaultBottomAllowance,
		},
		Timeouts: TimeoutConfig{
			Short: Duration(dismiss.DefaultShort),
			Long:  Duration(dismiss.DefaultLong),
		},
		Animation: AnimationConfig{
			Duration: Duration(animation.DefaultDuration),
		},
		Defaults: model.DefaultConfig(),
		Audio: AudioConfig{
			Enabled: true,
			Volume:  DefaultVolume,
		},
		Theme: ThemeConfig{
			Name: DefaultTheme,
		},
		Layout: LayoutConfig{
			Template: DefaultTemplate,
		},
		Icon: IconConfig{
			FetchTimeout: Duration(icon.DefaultTimeout),
			MaxBytes:     icon.DefaultMaxBytes,
		},
	}
}

// ConfigDir returns the toastui config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// ThemesDir returns the user themes directory.
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// TemplatesDir returns the user layout templates directory.
func TemplatesDir() string {
	return filepath.Join(ConfigDir(), "templates")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns the default config if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Display.Width < 100 || c.Display.Width > 1000 {
		return fmt.Errorf("width must be between 100 and 1000, got %d", c.Display.Width)
	}
	if c.Display.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %d", c.Display.Margin)
	}
	if c.Display.BottomAllowance < 0 {
		return fmt.Errorf("bottom_allowance must not be negative, got %d", c.Display.BottomAllowance)
	}
	if c.Display.Monitor < 0 {
		return fmt.Errorf("monitor must not be negative, got %d", c.Display.Monitor)
	}
	in := c.Display.Insets
	if in.Top < 0 || in.Bottom < 0 || in.Left < 0 || in.Right < 0 {
		return fmt.Errorf("insets must not be negative, got %+v", in)
	}

	if c.Timeouts.Short <= 0 || c.Timeouts.Long <= 0 {
		return fmt.Errorf("timeouts must be positive, got short=%s long=%s",
			c.Timeouts.Short.Duration(), c.Timeouts.Long.Duration())
	}

	if d := c.Animation.Duration.Duration(); d <= 0 || d > 10*time.Second {
		return fmt.Errorf("animation duration must be between 0 and 10s, got %s", d)
	}

	if op := c.Defaults.BackgroundOpacity; op < 0 || op > 1 {
		return fmt.Errorf("opacity must be between 0.0 and 1.0, got %g", op)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if strings.TrimSpace(c.Theme.Name) == "" {
		return errors.New("theme name must not be empty")
	}
	if strings.TrimSpace(c.Layout.Template) == "" {
		return errors.New("layout template must not be empty")
	}

	if c.Icon.FetchTimeout <= 0 {
		return fmt.Errorf("icon fetch_timeout must be positive, got %s", c.Icon.FetchTimeout.Duration())
	}
	if c.Icon.MaxBytes <= 0 {
		return fmt.Errorf("icon max_bytes must be positive, got %d", c.Icon.MaxBytes)
	}

	return nil
}

// Geometry returns the toast window geometry.
func (c *Config) Geometry() placement.Geometry {
	return placement.Geometry{
		Width:           c.Display.Width,
		Margin:          c.Display.Margin,
		BottomAllowance: c.Display.BottomAllowance,
	}
}

// Durations returns the auto-dismiss delays.
func (c *Config) Durations() dismiss.Durations {
	return dismiss.Durations{
		Short: c.Timeouts.Short.Duration(),
		Long:  c.Timeouts.Long.Duration(),
	}
}

// NotificationDefaults returns the presentation settings new toasts start from.
func (c *Config) NotificationDefaults() model.NotificationConfig {
	cfg := c.Defaults
	cfg.IconPathOrURL = expandPath(cfg.IconPathOrURL)
	return cfg.Normalize()
}

// SoundsPath returns the user sounds directory with ~ expanded.
func (c *Config) SoundsPath() string {
	if c.Audio.SoundsDir == "" {
		return filepath.Join(ConfigDir(), "sounds")
	}
	return expandPath(c.Audio.SoundsDir)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
