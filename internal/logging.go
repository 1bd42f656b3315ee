package internal

import (
	"fmt"

	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

// InitLogging builds the process-wide zap logger. Debug selects the
// development encoder and level; otherwise the production JSON encoder is used.
func InitLogging(debug bool) (*zap.SugaredLogger, error) {
	var base *zap.Logger
	var err error
	if debug {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %w", err)
	}
	logger = base.Sugar()
	zap.ReplaceGlobals(base)
	return logger, nil
}

// Logger returns the process-wide logger, or a no-op logger before InitLogging
func Logger() *zap.SugaredLogger {
	if logger == nil {
		return zap.NewNop().Sugar()
	}
	return logger
}

// SyncLogging flushes buffered log entries
func SyncLogging() {
	if logger != nil {
		_ = logger.Sync()
	}
}
