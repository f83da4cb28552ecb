package logging

import (
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

// Init builds the global logger. Verbose mode uses zap's development
// config at debug level; otherwise production config capped at warn so
// normal runs only surface skipped-line warnings and real problems.
func Init(verbose bool) error {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l.Sugar()
	return nil
}

// L returns the global sugared logger, or a no-op logger when Init
// has not been called (e.g. in library use and tests).
func L() *zap.SugaredLogger {
	if logger == nil {
		return zap.NewNop().Sugar()
	}
	return logger
}
