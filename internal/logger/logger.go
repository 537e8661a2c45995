// Package logger builds the service's zap logger and carries per-request
// loggers through context.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/docgate/internal/version"
)

// ServiceName tags every log line.
const ServiceName = "docgate"

// NewLogger creates a zap logger for the given environment.
// prod writes sampled JSON with ISO8601 timestamps; local, dev, docker and
// test write console output. A non-empty levelOverride (debug, info, warn,
// error) replaces the environment's default level.
func NewLogger(env string, levelOverride ...string) (*zap.Logger, error) {
	cfg, err := configFor(env)
	if err != nil {
		return nil, err
	}

	if len(levelOverride) > 0 && levelOverride[0] != "" {
		level, err := zapcore.ParseLevel(levelOverride[0])
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelOverride[0], err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.With(
		zap.String("service", ServiceName),
		zap.String("version", version.Version),
		zap.String("env", env),
	), nil
}

func configFor(env string) (zap.Config, error) {
	switch env {
	case "prod":
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg, nil
	case "local", "dev", "docker":
		return zap.NewDevelopmentConfig(), nil
	case "test":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.DisableStacktrace = true
		return cfg, nil
	default:
		return zap.Config{}, fmt.Errorf("unknown environment %q for logger", env)
	}
}
