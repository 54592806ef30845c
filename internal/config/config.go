package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/tojson/internal/errors"
)

// Config represents the complete configuration for tojson
type Config struct {
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// OutputConfig controls how JSON text is rendered and written
type OutputConfig struct {
	Indent          int  `yaml:"indent"`
	Raw             bool `yaml:"raw"`
	TrailingNewline bool `yaml:"trailing_newline"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Indent:          2,
			Raw:             false,
			TrailingNewline: true,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".tojson.yml", ".tojson.yaml", "tojson.yml", "tojson.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			break
		}
		dir = parentDir
	}

	return ""
}

// Validate checks the configuration for values the formatter cannot honor
func (c *Config) Validate() error {
	if c.Output.Indent < 0 {
		return errors.ErrInvalidIndent
	}
	return nil
}

// MergeConfigs merges CLI overrides into a base config.
// A positive indent and a set raw flag in override take precedence.
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.Output.Indent > 0 {
		merged.Output.Indent = override.Output.Indent
	}
	if override.Output.Raw {
		merged.Output.Raw = true
	}
	if override.Dev.Debug {
		merged.Dev.Debug = true
	}

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// cliIndent of zero means the flag was not given.
func LoadConfigWithCLI(configPath string, cliIndent int, cliRaw, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliIndent < 0 {
		return nil, errors.ErrInvalidIndent
	}

	override := &Config{
		Output: OutputConfig{Indent: cliIndent, Raw: cliRaw},
		Dev:    DevConfig{Debug: cliDebug},
	}
	return MergeConfigs(cfg, override), nil
}
