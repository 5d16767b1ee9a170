package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds user-level defaults persisted across runs. Everything here is
// overridable per invocation by CLI flags; the merged result becomes the
// explicit dispatch options.
type Config struct {
	// TimeoutSeconds bounds each external command; 0 means DefaultToolTimeout
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`

	// OverridesFile is the repo-relative binding override file name
	OverridesFile string `json:"overrides_file,omitempty"`

	// IgnoreGlobs replaces the default tree-scan exclusions when non-empty
	IgnoreGlobs []string `json:"ignore_globs,omitempty"`

	// Env entries ("KEY=value") appended to every tool's environment
	Env []string `json:"env,omitempty"`
}

// GetConfigDir returns the polycheck config directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return LocalConfigDir
	}
	return filepath.Join(home, LocalConfigDir)
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), LocalConfigFile)
}

// LoadConfig loads the user configuration. A missing file yields the zero
// config, not an error.
func LoadConfig() (*Config, error) {
	data, err := os.ReadFile(GetConfigPath())
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes the configuration back to disk
func (c *Config) SaveConfig() error {
	if err := os.MkdirAll(GetConfigDir(), PermDirectory); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(), data, PermConfigFile); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Timeout returns the configured tool timeout, falling back to the default
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds > 0 {
		return time.Duration(c.TimeoutSeconds) * time.Second
	}
	return DefaultToolTimeout
}

// Overrides returns the configured override file name, falling back to the
// default
func (c *Config) Overrides() string {
	if c.OverridesFile != "" {
		return c.OverridesFile
	}
	return DefaultOverridesFile
}
