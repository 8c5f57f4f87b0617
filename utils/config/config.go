package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Verbose and Debug are process-wide output flags, set once from the CLI
// flags before any work starts.
var (
	Verbose bool
	Debug   bool
)

// VerboseLog logs when verbose output is enabled.
func VerboseLog(format string, args ...interface{}) {
	if Verbose {
		log.Printf("[INFO] "+format+"\n", args...)
	}
}

// DebugLog logs when debug output is enabled.
func DebugLog(format string, args ...interface{}) {
	if Debug {
		log.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// EnvConfig holds the environment configuration for the agent: where the
// local inference endpoints live, which model to use, and the default
// simulation parameters passed into prompt templates.
type EnvConfig struct {
	OllamaEndpoint string `yaml:"ollama_endpoint,omitempty"`
	VLLMEndpoint   string `yaml:"vllm_endpoint,omitempty"`
	DefaultModel   string `yaml:"default_model,omitempty"`

	Workspace     string  `yaml:"workspace,omitempty"`
	ForceField    string  `yaml:"force_field,omitempty"`
	WaterModel    string  `yaml:"water_model,omitempty"`
	BoxSize       float64 `yaml:"box_size,omitempty"`
	Concentration float64 `yaml:"concentration,omitempty"`
}

// DefaultEnvConfig mirrors the defaults of the original agent arguments.
func DefaultEnvConfig() *EnvConfig {
	return &EnvConfig{
		OllamaEndpoint: "http://localhost:11434",
		VLLMEndpoint:   "http://localhost:8000",
		DefaultModel:   "qwen2.5:3b-instruct",
		Workspace:      ".",
		ForceField:     "amber99sb-ildn",
		WaterModel:     "tip3p",
		BoxSize:        1.0,
		Concentration:  0.15,
	}
}

// waterModels is the set of water models pdb2gmx accepts.
var waterModels = map[string]bool{
	"none":   true,
	"spc":    true,
	"spce":   true,
	"tip3p":  true,
	"tip4p":  true,
	"tip5p":  true,
	"tips3p": true,
}

// Validate checks the parameter fields that have a closed value set.
func (c *EnvConfig) Validate() error {
	if c.WaterModel != "" && !waterModels[c.WaterModel] {
		return fmt.Errorf("unknown water model %q", c.WaterModel)
	}
	if c.BoxSize < 0 {
		return fmt.Errorf("box size must be non-negative, got %v", c.BoxSize)
	}
	if c.Concentration < 0 {
		return fmt.Errorf("ion concentration must be non-negative, got %v", c.Concentration)
	}
	return nil
}

// GetEnvPath returns the config file location: $GMXAGENT_ENV when set,
// otherwise ~/.gmxagent/config.yaml.
func GetEnvPath() string {
	if path := os.Getenv("GMXAGENT_ENV"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gmxagent.yaml"
	}
	return filepath.Join(home, ".gmxagent", "config.yaml")
}

// LoadEnvConfig reads the YAML config at path, filling unset fields from
// the defaults. A missing file is not an error: the defaults are used so
// a fresh install works against a local Ollama without any setup.
func LoadEnvConfig(path string) (*EnvConfig, error) {
	cfg := DefaultEnvConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		DebugLog("[Config] No config file at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	DebugLog("[Config] Loaded configuration from %s", path)
	return cfg, nil
}

// Save writes the configuration to path, creating the directory first.
func (c *EnvConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", path, err)
	}
	return nil
}
