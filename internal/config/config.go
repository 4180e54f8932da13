// Package config loads and saves timesheet preferences from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all timesheet configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Billing BillingConfig `toml:"billing"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath string `toml:"db_path,omitempty"`
}

// BillingConfig holds currency and number formatting settings.
type BillingConfig struct {
	Currency string `toml:"currency"`
	Locale   string `toml:"locale"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Billing: BillingConfig{
			Currency: "EUR",
			Locale:   "en-US",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "timesheet")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "timesheet")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Billing.Currency == "" {
		cfg.Billing.Currency = "EUR"
	}
	if cfg.Billing.Locale == "" {
		cfg.Billing.Locale = "en-US"
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
