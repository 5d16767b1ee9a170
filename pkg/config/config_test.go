package config_test

import (
	"reflect"
	"testing"
	"time"

	"polycheck/pkg/config"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Missing config file must yield zero config, got error: %v", err)
	}
	if cfg.Timeout() != config.DefaultToolTimeout {
		t.Errorf("Expected default timeout, got %v", cfg.Timeout())
	}
	if cfg.Overrides() != config.DefaultOverridesFile {
		t.Errorf("Expected default overrides file, got %q", cfg.Overrides())
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	original := &config.Config{
		TimeoutSeconds: 90,
		OverridesFile:  "ci/bindings.yml",
		IgnoreGlobs:    []string{"third_party/**"},
		Env:            []string{"CARGO_TERM_COLOR=never"},
	}

	if err := original.SaveConfig(); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !reflect.DeepEqual(original, loaded) {
		t.Errorf("Roundtrip mismatch:\nsaved:  %+v\nloaded: %+v", original, loaded)
	}
	if loaded.Timeout() != 90*time.Second {
		t.Errorf("Expected 90s timeout, got %v", loaded.Timeout())
	}
	if loaded.Overrides() != "ci/bindings.yml" {
		t.Errorf("Expected configured overrides file, got %q", loaded.Overrides())
	}
}
