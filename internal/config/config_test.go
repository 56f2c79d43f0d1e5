package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			Output: []string{"stderr"},
		},
		Dice: DiceConfig{
			MaxOutcomes: 10_000_000,
		},
		Scripting: ScriptingConfig{
			InstructionLimit: 100_000,
			ScriptDir:        "scripts",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, []string{"stderr"}, cfg.Logging.Output)
	assert.Equal(t, uint64(0), cfg.Dice.Seed)
	assert.Equal(t, uint64(10_000_000), cfg.Dice.MaxOutcomes)
	assert.Empty(t, cfg.Presets.Dir)
	assert.Equal(t, 100_000, cfg.Scripting.InstructionLimit)
	assert.False(t, cfg.Output.Distribution)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
dice:
  seed: 42
  max_outcomes: 5000
presets:
  dir: /etc/dice/presets
scripting:
  instruction_limit: 500
  script_dir: lua
output:
  distribution: true
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, uint64(42), cfg.Dice.Seed)
	assert.Equal(t, uint64(5000), cfg.Dice.MaxOutcomes)
	assert.Equal(t, "/etc/dice/presets", cfg.Presets.Dir)
	assert.Equal(t, 500, cfg.Scripting.InstructionLimit)
	assert.Equal(t, "lua", cfg.Scripting.ScriptDir)
	assert.True(t, cfg.Output.Distribution)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DICE_DICE_SEED", "7")
	t.Setenv("DICE_OUTPUT_DISTRIBUTION", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Dice.Seed)
	assert.True(t, cfg.Output.Distribution)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "logging.level")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingOutputEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Output = nil
	assert.Error(t, cfg.Validate())
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Scripting.InstructionLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "scripting.instruction_limit")
}

// Property-based tests

func TestPropertyInstructionLimitNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(-1000, 1_000_000).Draw(t, "limit")
		cfg := validConfig()
		cfg.Scripting.InstructionLimit = limit
		err := cfg.Validate()
		if limit >= 0 && err != nil {
			t.Fatalf("valid limit %d rejected: %v", limit, err)
		}
		if limit < 0 && err == nil {
			t.Fatalf("invalid limit %d accepted", limit)
		}
	})
}
