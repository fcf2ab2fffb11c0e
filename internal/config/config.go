// Package config loads the engine's ambient configuration from environment
// variables, ahead of flag parsing.
//
// Grounded on internal/config/config.go's LoadConfig (os.Getenv reads with
// string-literal defaults, one env var per field).
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the engine's ambient configuration.
type Config struct {
	PrimitivesPath           string
	TaxonomyPath             string
	ReportDir                string
	MethodsPerClassThreshold int
	StorePath                string
}

// Load reads a .env file if present (godotenv; a no-op, not an error, when
// absent) and then environment variables, applying the same defaults the
// CLI flags fall back to.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		PrimitivesPath:           os.Getenv("STEREOCODE_PRIMITIVES_PATH"),
		TaxonomyPath:             os.Getenv("STEREOCODE_TAXONOMY_PATH"),
		ReportDir:                os.Getenv("STEREOCODE_REPORT_DIR"),
		MethodsPerClassThreshold: 21, // spec §6 default
		StorePath:                os.Getenv("STEREOCODE_STORE_PATH"),
	}

	if thresholdStr := os.Getenv("STEREOCODE_METHODS_PER_CLASS_THRESHOLD"); thresholdStr != "" {
		if threshold, err := strconv.Atoi(thresholdStr); err == nil && threshold > 0 {
			cfg.MethodsPerClassThreshold = threshold
		}
	}

	return cfg
}
