package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultsWhenEnvUnset(t *testing.T) {
	t.Setenv("STEREOCODE_PRIMITIVES_PATH", "")
	t.Setenv("STEREOCODE_TAXONOMY_PATH", "")
	t.Setenv("STEREOCODE_REPORT_DIR", "")
	t.Setenv("STEREOCODE_STORE_PATH", "")
	t.Setenv("STEREOCODE_METHODS_PER_CLASS_THRESHOLD", "")

	cfg := Load()

	assert.Equal(t, "", cfg.PrimitivesPath)
	assert.Equal(t, 21, cfg.MethodsPerClassThreshold)
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("STEREOCODE_PRIMITIVES_PATH", "/tmp/primitives.txt")
	t.Setenv("STEREOCODE_REPORT_DIR", "/tmp/report")
	t.Setenv("STEREOCODE_STORE_PATH", "/tmp/store.db")
	t.Setenv("STEREOCODE_METHODS_PER_CLASS_THRESHOLD", "30")

	cfg := Load()

	assert.Equal(t, "/tmp/primitives.txt", cfg.PrimitivesPath)
	assert.Equal(t, "/tmp/report", cfg.ReportDir)
	assert.Equal(t, "/tmp/store.db", cfg.StorePath)
	assert.Equal(t, 30, cfg.MethodsPerClassThreshold)
}

func TestLoadIgnoresInvalidThreshold(t *testing.T) {
	t.Setenv("STEREOCODE_METHODS_PER_CLASS_THRESHOLD", "not-a-number")

	cfg := Load()

	assert.Equal(t, 21, cfg.MethodsPerClassThreshold)
}

func TestLoadIgnoresNonPositiveThreshold(t *testing.T) {
	t.Setenv("STEREOCODE_METHODS_PER_CLASS_THRESHOLD", "-5")

	cfg := Load()

	assert.Equal(t, 21, cfg.MethodsPerClassThreshold)
}
