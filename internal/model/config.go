package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Edit XP policies.
const (
	EditXPUnlimited = "unlimited"
	EditXPLimited   = "limited"
)

// AIConfig holds settings for the summarization collaborator.
type AIConfig struct {
	Model     string `mapstructure:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// SimulationConfig controls the cosmetic background timers and toast lifetime.
type SimulationConfig struct {
	ChatIntervalSec    int `mapstructure:"chat_interval_sec" yaml:"chat_interval_sec"`
	PresenceIntervalMs int `mapstructure:"presence_interval_ms" yaml:"presence_interval_ms"`
	ToastTTLSec        int `mapstructure:"toast_ttl_sec" yaml:"toast_ttl_sec"`
}

// GamificationConfig controls XP policies that product has not settled.
type GamificationConfig struct {
	// EditXPPolicy is "unlimited" (every card edit pays) or "limited"
	// (edits pay at most EditXPPerMinute per user, with EditXPBurst).
	EditXPPolicy    string `mapstructure:"edit_xp_policy" yaml:"edit_xp_policy"`
	EditXPPerMinute int    `mapstructure:"edit_xp_per_minute" yaml:"edit_xp_per_minute"`
	EditXPBurst     int    `mapstructure:"edit_xp_burst" yaml:"edit_xp_burst"`
}

// StorageConfig locates on-disk files.
type StorageConfig struct {
	PrefsPath string `mapstructure:"prefs_path" yaml:"prefs_path"`
	LogPath   string `mapstructure:"log_path" yaml:"log_path"`
}

// MetricsConfig controls the optional prometheus endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	AI           AIConfig           `mapstructure:"ai" yaml:"ai"`
	Display      DisplayConfig      `mapstructure:"display" yaml:"display"`
	Simulation   SimulationConfig   `mapstructure:"simulation" yaml:"simulation"`
	Gamification GamificationConfig `mapstructure:"gamification" yaml:"gamification"`
	Storage      StorageConfig      `mapstructure:"storage" yaml:"storage"`
	Metrics      MetricsConfig      `mapstructure:"metrics" yaml:"metrics"`
}

// ConfigDir returns ~/.config/flowstate, or the working directory if the
// home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "flowstate")
}

// DefaultConfigPath returns the default path for the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		AI: AIConfig{
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 1024,
			BaseURL:   "https://api.anthropic.com",
		},
		Display: DisplayConfig{
			Theme: "light",
		},
		Simulation: SimulationConfig{
			ChatIntervalSec:    12,
			PresenceIntervalMs: 2000,
			ToastTTLSec:        5,
		},
		Gamification: GamificationConfig{
			EditXPPolicy:    EditXPUnlimited,
			EditXPPerMinute: 5,
			EditXPBurst:     5,
		},
		Storage: StorageConfig{
			PrefsPath: filepath.Join(dir, "prefs.db"),
			LogPath:   filepath.Join(dir, "flowstate.log"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FLOWSTATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("ai.model", def.AI.Model)
	v.SetDefault("ai.max_tokens", def.AI.MaxTokens)
	v.SetDefault("ai.base_url", def.AI.BaseURL)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("simulation.chat_interval_sec", def.Simulation.ChatIntervalSec)
	v.SetDefault("simulation.presence_interval_ms", def.Simulation.PresenceIntervalMs)
	v.SetDefault("simulation.toast_ttl_sec", def.Simulation.ToastTTLSec)
	v.SetDefault("gamification.edit_xp_policy", def.Gamification.EditXPPolicy)
	v.SetDefault("gamification.edit_xp_per_minute", def.Gamification.EditXPPerMinute)
	v.SetDefault("gamification.edit_xp_burst", def.Gamification.EditXPBurst)
	v.SetDefault("storage.prefs_path", def.Storage.PrefsPath)
	v.SetDefault("storage.log_path", def.Storage.LogPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that viper cannot type-check.
func (c *AppConfig) Validate() error {
	switch c.Gamification.EditXPPolicy {
	case EditXPUnlimited, EditXPLimited:
	default:
		return fmt.Errorf("gamification.edit_xp_policy must be %q or %q, got %q",
			EditXPUnlimited, EditXPLimited, c.Gamification.EditXPPolicy)
	}
	if c.Gamification.EditXPPolicy == EditXPLimited && c.Gamification.EditXPPerMinute <= 0 {
		return fmt.Errorf("gamification.edit_xp_per_minute must be positive")
	}
	if c.Simulation.ChatIntervalSec <= 0 || c.Simulation.PresenceIntervalMs <= 0 || c.Simulation.ToastTTLSec <= 0 {
		return fmt.Errorf("simulation intervals must be positive")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("ai", cfg.AI)
	v.Set("display", cfg.Display)
	v.Set("simulation", cfg.Simulation)
	v.Set("gamification", cfg.Gamification)
	v.Set("storage", cfg.Storage)
	v.Set("metrics", cfg.Metrics)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
