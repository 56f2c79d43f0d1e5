// Package config provides Viper-based configuration loading for the dice tools.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output lists zap sink URLs or paths; "stderr" keeps stdout free for results.
	Output []string `mapstructure:"output"`
}

// DiceConfig holds rolling and enumeration settings.
type DiceConfig struct {
	// Seed selects a reproducible random source; 0 uses crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// MaxOutcomes caps the number of combinations a distribution may
	// enumerate. 0 disables the cap.
	MaxOutcomes uint64 `mapstructure:"max_outcomes"`
}

// PresetsConfig locates named dice presets.
type PresetsConfig struct {
	// Dir is a directory of preset YAML files; empty disables presets.
	Dir string `mapstructure:"dir"`
}

// ScriptingConfig holds Lua sandbox settings.
type ScriptingConfig struct {
	// InstructionLimit is the maximum number of Lua opcodes per VM; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
	// ScriptDir is the directory of *.lua files loaded by dicescript.
	ScriptDir string `mapstructure:"script_dir"`
}

// OutputConfig controls what the dice command prints.
type OutputConfig struct {
	// Distribution prints the full outcome distribution after each summary.
	Distribution bool `mapstructure:"distribution"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Dice      DiceConfig      `mapstructure:"dice"`
	Presets   PresetsConfig   `mapstructure:"presets"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Output    OutputConfig    `mapstructure:"output"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if len(l.Output) == 0 {
		errs = append(errs, "logging.output must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path skips the file
// and uses defaults plus environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DICE_ prefix
	v.SetEnvPrefix("DICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", []string{"stderr"})

	v.SetDefault("dice.seed", 0)
	v.SetDefault("dice.max_outcomes", 10_000_000)

	v.SetDefault("presets.dir", "")

	v.SetDefault("scripting.instruction_limit", 100_000)
	v.SetDefault("scripting.script_dir", "scripts")

	v.SetDefault("output.distribution", false)
}
