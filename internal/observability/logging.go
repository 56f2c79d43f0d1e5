// Package observability builds the zap logger shared by the dice and
// dicescript commands. Logs go to stderr unless configured otherwise, so
// stdout carries only roll reports and script results.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/dicestat/internal/config"
)

// defaultOutput is used when cfg.Output is empty.
var defaultOutput = []string{"stderr"}

// NewLogger creates a structured logger from the given logging configuration.
// The console format omits stack traces; a one-shot command's warnings read
// better as single lines.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger writing to cfg.Output (or
// stderr), or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	output := cfg.Output
	if len(output) == 0 {
		output = defaultOutput
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = output
	zapCfg.ErrorOutputPaths = output

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger for %v: %w", output, err)
	}
	return logger, nil
}
