// Package logger wraps zap construction behind a small initialization API.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sam-pro/catalog/internal/config"
)

// Logger holds the application-wide zap logger.
type Logger struct {
	// Log is the underlying zap logger; a no-op logger until Init is called.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger so callers can log safely
// before Init runs.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds the real logger for the given environment and level.
// Local environments get a console encoder, everything else JSON.
func (l *Logger) Init(env, level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	var cfg zap.Config
	if env == config.EnvLocal {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = z
	return nil
}
