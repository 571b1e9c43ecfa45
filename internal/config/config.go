// Package config loads the budget.yaml project configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level budget.yaml configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Import     ImportConfig     `yaml:"import"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// DataConfig selects where the ledger lives.
type DataConfig struct {
	Backend string `yaml:"backend"` // "json" or "sqlite"
	Path    string `yaml:"path"`
}

// ImportConfig controls the statement import workflow.
type ImportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // default parser when the extension is ambiguous
}

// ClassifierConfig controls the model-based category suggestions.
type ClassifierConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Model         string  `yaml:"model,omitempty"`
	MinConfidence float64 `yaml:"min_confidence,omitempty"`
}

// Load reads a budget.yaml file from disk and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Backend: "json",
			Path:    "budget_data.json",
		},
		Import: ImportConfig{
			Dir:    "import",
			Format: "csv",
		},
		Classifier: ClassifierConfig{
			Enabled:       false,
			MinConfidence: 0.4,
		},
	}
}

// applyEnv overlays BUDGET_* environment variables on the file values.
func (c *Config) applyEnv() {
	setString(&c.Data.Backend, "BUDGET_DATA_BACKEND")
	setString(&c.Data.Path, "BUDGET_DATA_PATH")
	setString(&c.Import.Dir, "BUDGET_IMPORT_DIR")
	setString(&c.Import.Format, "BUDGET_IMPORT_FORMAT")
	setString(&c.Classifier.Model, "BUDGET_CLASSIFIER_MODEL")
	setBool(&c.Classifier.Enabled, "BUDGET_CLASSIFIER_ENABLED")
	setFloat(&c.Classifier.MinConfidence, "BUDGET_CLASSIFIER_MIN_CONFIDENCE")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*dst = parsed
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}
