// Package config provides configuration management for wg-toggle.
// It handles loading, saving, and managing application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/yllada/wg-toggle/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// Tool is the command invoked as "<tool> up|down <path>".
	Tool string `yaml:"tool" koanf:"tool"`
	// Elevate selects how the tool gains privileges: "sudo", "pkexec" or "none".
	Elevate string `yaml:"elevate" koanf:"elevate"`
	// Database overrides the location of the path registry.
	// Empty means ~/.local/share/wg-toggle/vpn_paths.db.
	Database string `yaml:"database_path,omitempty" koanf:"database_path"`
	// ShowNotifications sends a desktop notification after each toggle.
	ShowNotifications bool `yaml:"show_notifications" koanf:"show_notifications"`
	// Color controls styled terminal output: "auto", "always" or "never".
	Color string `yaml:"color" koanf:"color"`

	path string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tool:              common.DefaultTool,
		Elevate:           common.ElevateSudo,
		ShowNotifications: false,
		Color:             common.ColorAuto,
	}
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath, layering the file over
// the defaults. A missing file is created with default values.
func LoadFrom(configPath string) (*Config, error) {
	defaults := DefaultConfig()
	defaults.path = configPath

	if !common.FileExists(configPath) {
		if err := defaults.Save(); err != nil {
			return defaults, err
		}
		return defaults, nil
	}

	defaultBytes, err := yamlv3.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfigLoad, err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultBytes), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: loading defaults: %w", common.ErrConfigLoad, err)
	}
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: error parsing configuration: %w", common.ErrConfigLoad, err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfigLoad, err)
	}
	cfg.path = configPath

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// validate normalizes configuration values, falling back to defaults
// for anything unrecognized.
func (c *Config) validate() error {
	switch c.Elevate {
	case common.ElevateSudo, common.ElevatePkexec, common.ElevateNone:
	default:
		common.LogWarn("Unknown elevate mode %q, using %s", c.Elevate, common.ElevateSudo)
		c.Elevate = common.ElevateSudo
	}

	switch c.Color {
	case common.ColorAuto, common.ColorAlways, common.ColorNever:
	default:
		c.Color = common.ColorAuto
	}

	if c.Tool == "" {
		c.Tool = common.DefaultTool
	}
	return nil
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// DatabasePath returns the configured registry location or the default one.
func (c *Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	return common.DefaultDatabasePath()
}

// Save saves the configuration to the file it was loaded from.
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = DefaultPath(); err != nil {
			return err
		}
		c.path = configPath
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("%w: error creating config directory: %w", common.ErrConfigSave, err)
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: error serializing configuration: %w", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfigSave, err)
	}

	return nil
}

// DefaultPath returns ~/.config/wg-toggle/config.yaml.
func DefaultPath() (string, error) {
	configDir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, common.ConfigFileName), nil
}
