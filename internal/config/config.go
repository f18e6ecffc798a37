package config

import (
	"os"
	"strconv"

	"respcheck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Paths    PathConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	UploadDir string
}

// AnalysisConfig holds detection tunables exposed through the environment
type AnalysisConfig struct {
	// Locale selects the scoring rule set; only "cs" ships today.
	Locale string
	// MinStraightBatteries overrides the straight-lining corroboration
	// threshold (0 keeps the default of 2).
	MinStraightBatteries int
	// LongBatteryTierPolicy enables battery-length based medium/low tiering.
	LongBatteryTierPolicy bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Paths: PathConfig{
			UploadDir: getEnvOrDefault("UPLOAD_DIR", os.TempDir()),
		},
		Analysis: AnalysisConfig{
			Locale:                getEnvOrDefault("ANALYSIS_LOCALE", "cs"),
			MinStraightBatteries:  getEnvIntOrDefault("MIN_STRAIGHT_BATTERIES", 0),
			LongBatteryTierPolicy: getEnvBoolOrDefault("LONG_BATTERY_TIER_POLICY", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Paths.UploadDir == "" {
		return errors.ConfigInvalid("upload directory is required")
	}
	if config.Analysis.Locale != "cs" {
		return errors.ConfigInvalid("unsupported analysis locale: " + config.Analysis.Locale)
	}
	if config.Analysis.MinStraightBatteries < 0 {
		return errors.ConfigInvalid("MIN_STRAIGHT_BATTERIES must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
