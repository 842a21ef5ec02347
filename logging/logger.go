package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logger.V()
const (
	DEFAULT = 2
	VERBOSE = 3
	DEBUG   = 4
	TRACE   = 5
)

// NewLogger returns a console logger that emits V(level) messages for every
// level up to verbosity.
func NewLogger(verbosity int) (logger logr.Logger, err error) {
	var (
		cfg = uberzap.NewDevelopmentConfig()
		zl  *uberzap.Logger
	)
	cfg.Level = uberzap.NewAtomicLevelAt(zapcore.Level(-1 * verbosity))
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if zl, err = cfg.Build(); err != nil {
		return logr.Discard(), err
	}
	logger = zapr.NewLogger(zl)
	return
}

// NewTestLogger logs everything up to TRACE in development mode.
func NewTestLogger() logr.Logger {
	logger, err := NewLogger(TRACE)
	if err != nil {
		return logr.Discard()
	}
	return logger
}
