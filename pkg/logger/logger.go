// Package logger wraps zap behind the small surface the pipeline needs.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a sugared zap logger. Mode "prod"/"production" selects the
// JSON production config; anything else gets the human-readable
// development config.
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// Nop returns a logger that discards everything. Used by tests and as
// the merger's default.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
