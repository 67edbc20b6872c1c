package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/config"
)

// Logging bundles the root logger with the level handle used for hot reload.
type Logging struct {
	Logger *zap.Logger
	Level  zap.AtomicLevel
}

// NewLogging builds a production logger on stderr. Stdout is reserved for
// the stdio transport.
func NewLogging(cfg domain.Config) (*Logging, error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	atomic := zap.NewAtomicLevelAt(level)

	zcfg := zap.NewProductionConfig()
	zcfg.Level = atomic
	zcfg.Encoding = cfg.Log.Format
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Log.Format == domain.LogFormatConsole {
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logging{Logger: logger.Named("app"), Level: atomic}, nil
}

// NewLogger returns the logger from a Logging bundle.
func NewLogger(logging *Logging) *zap.Logger {
	return logging.Logger
}

// SetLevel applies a reloaded log level. It reports whether the level changed.
func (l *Logging) SetLevel(level string) (bool, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return false, err
	}
	if l.Level.Level() == lvl {
		return false, nil
	}
	l.Level.SetLevel(lvl)
	return true, nil
}
