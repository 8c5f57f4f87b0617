package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadEnvConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadEnvConfig failed: %v", err)
	}
	if cfg.OllamaEndpoint != "http://localhost:11434" {
		t.Errorf("OllamaEndpoint = %q, want default", cfg.OllamaEndpoint)
	}
	if cfg.WaterModel != "tip3p" {
		t.Errorf("WaterModel = %q, want tip3p", cfg.WaterModel)
	}
}

func TestLoadEnvConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "default_model: qwen2.5:1.5b-instruct\nbox_size: 1.2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadEnvConfig(path)
	if err != nil {
		t.Fatalf("LoadEnvConfig failed: %v", err)
	}
	if cfg.DefaultModel != "qwen2.5:1.5b-instruct" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.BoxSize != 1.2 {
		t.Errorf("BoxSize = %v, want 1.2", cfg.BoxSize)
	}
	if cfg.ForceField != "amber99sb-ildn" {
		t.Errorf("ForceField = %q, want default", cfg.ForceField)
	}
}

func TestLoadEnvConfig_RejectsUnknownWaterModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("water_model: tip9p\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEnvConfig(path); err == nil {
		t.Error("expected error for unknown water model")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultEnvConfig()
	cfg.Workspace = "/tmp/sims"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadEnvConfig(path)
	if err != nil {
		t.Fatalf("LoadEnvConfig failed: %v", err)
	}
	if loaded.Workspace != "/tmp/sims" {
		t.Errorf("Workspace = %q, want /tmp/sims", loaded.Workspace)
	}
}

func TestGetEnvPath_EnvOverride(t *testing.T) {
	t.Setenv("GMXAGENT_ENV", "/custom/path.yaml")
	if got := GetEnvPath(); got != "/custom/path.yaml" {
		t.Errorf("GetEnvPath() = %q, want override", got)
	}
}
