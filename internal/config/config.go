// Package config loads and validates the engine's static configuration:
// solver defaults, Sheets/Gmail source identifiers, and Postgres
// connection settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration, loaded from
// roster_config.yaml (or an environment-suffixed variant).
type Config struct {
	// StaffSheetID and VacationSheetTab identify where the roster's staff
	// roster and vacation calendar live in Google Sheets.
	StaffSheetID     string `yaml:"staffSheetID" validate:"required"`
	StaffSheetTab    string `yaml:"staffSheetTab" validate:"required"`
	VacationSheetTab string `yaml:"vacationSheetTab" validate:"required"`

	// ResultSheetID, if set, is where Solve's published schedule is
	// written back to.
	ResultSheetID string `yaml:"resultSheetID,omitempty"`

	GmailUserID string `yaml:"gmailUserID" validate:"required"`
	GmailSender string `yaml:"gmailSender,omitempty"`

	// DatabaseURL is a Postgres connection string for pkg/store; empty
	// disables persistence and leaves results in memory for the duration
	// of the CLI invocation.
	DatabaseURL string `yaml:"databaseURL,omitempty"`

	// TimeLimitSeconds and Seed seed the default pkg/core/solve.Options
	// for CLI invocations that don't override them on the command line.
	TimeLimitSeconds int    `yaml:"timeLimitSeconds,omitempty" validate:"omitempty,min=1"`
	Seed             *int64 `yaml:"seed,omitempty"`

	EnforceMinParticipation      bool `yaml:"enforceMinParticipation,omitempty"`
	ExemptRestrictedFromFairness bool `yaml:"exemptRestrictedFromFairness,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix, e.g. env="staging" looks for "roster_config.staging.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct-tag validation over cfg.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for the config file in the current directory,
// then the home directory. If env is provided, it's appended as an
// extension (e.g., "roster_config.staging.yaml").
func findConfigFile(env string) (string, error) {
	configFileName := "roster_config.yaml"
	if env != "" {
		configFileName = "roster_config." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
