// Package logging provides structured logging utilities.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level
	Level string `yaml:"level" json:"level"`

	// Format is the output format (json, console)
	Format string `yaml:"format" json:"format"`

	// Output is the output destination (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`

	// Development enables development mode
	Development bool `yaml:"development" json:"development"`
}

// DefaultConfig logs warnings and above to stderr so CLI output stays clean.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// New builds a zap logger from cfg. Unknown levels fall back to info.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "console", "":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	var ws zapcore.WriteSyncer
	switch cfg.Output {
	case "stdout":
		ws = zapcore.AddSync(os.Stdout)
	case "stderr", "":
		ws = zapcore.AddSync(os.Stderr)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.Output, err)
		}
		ws = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(encoder, ws, level)
	if cfg.Development {
		return zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
	}
	return zap.New(core, zap.AddCaller()), nil
}

// CalculationLogger adapts a zap logger to the engine's printf-style Logger.
type CalculationLogger struct {
	sugar *zap.SugaredLogger
}

// NewCalculationLogger wraps l; a nil logger discards output.
func NewCalculationLogger(l *zap.Logger) *CalculationLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &CalculationLogger{sugar: l.Named("engine").Sugar()}
}

func (c *CalculationLogger) Debugf(format string, args ...any) { c.sugar.Debugf(format, args...) }
func (c *CalculationLogger) Infof(format string, args ...any)  { c.sugar.Infof(format, args...) }
func (c *CalculationLogger) Warnf(format string, args ...any)  { c.sugar.Warnf(format, args...) }
func (c *CalculationLogger) Errorf(format string, args ...any) { c.sugar.Errorf(format, args...) }
