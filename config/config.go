// Package config loads run configuration from YAML files, with defaults
// tuned for US-GAAP annual filings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/finsheet/finsheet/search"
	"github.com/finsheet/finsheet/tables"
	"github.com/finsheet/finsheet/validate"
)

// DefaultConfigFile is the default configuration file name
const DefaultConfigFile = ".finsheet.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
// Callers should handle it based on whether the path was explicitly
// specified by the user.
var ErrConfigNotFound = errors.New("configuration file not found")

// StatementQuery names one statement to locate and the phrase that finds
// its page.
type StatementQuery struct {
	Name   string `yaml:"name"`
	Phrase string `yaml:"phrase"`
}

// Search configures the page locator
type Search struct {
	Statements []StatementQuery `yaml:"statements"`
	MinPage    int              `yaml:"min_page"`
	Exclude    string           `yaml:"exclude"`
}

// Validation configures the rule engine
type Validation struct {
	// Tolerance is the relative tolerance for total comparisons
	Tolerance float64 `yaml:"tolerance"`
}

// Config is the complete run configuration
type Config struct {
	Search     Search         `yaml:"search"`
	Extraction tables.Config  `yaml:"extraction"`
	Selection  tables.Weights `yaml:"selection"`
	Validation Validation     `yaml:"validation"`
}

// Default returns the configuration used when no file overrides it
func Default() *Config {
	return &Config{
		Search: Search{
			Statements: []StatementQuery{
				{Name: "BALANCE_SHEETS", Phrase: "CONSOLIDATED BALANCE SHEETS"},
				{Name: "STATEMENTS_OF_INCOME", Phrase: "CONSOLIDATED STATEMENTS OF INCOME"},
				{Name: "STATEMENTS_OF_CASH_FLOWS", Phrase: "CONSOLIDATED STATEMENTS OF CASH FLOWS"},
			},
			MinPage: 1,
			Exclude: search.DefaultExclude,
		},
		Extraction: tables.DefaultConfig(),
		Selection:  tables.DefaultWeights(),
		Validation: Validation{Tolerance: validate.DefaultTolerance},
	}
}

// Load reads a YAML configuration file over the defaults, so a partial
// file overrides only the keys it names. A missing file returns
// ErrConfigNotFound.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Find searches for the configuration file:
//  1. the explicit path, when given
//  2. DefaultConfigFile in the current directory
//  3. DefaultConfigFile in the user's home directory
//
// Returns the path found, or empty string.
func Find(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
