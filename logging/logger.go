package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new zap logger for the given environment. "local" logs at debug
// level, "development" at info level, anything else uses the production config.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "local":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "development":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "production", "":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown logging environment %q", env)
	}
	return cfg.Build()
}
