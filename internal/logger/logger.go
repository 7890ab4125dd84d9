package logger

import (
	"go.uber.org/zap"
)

var Logger *zap.Logger

// Init builds the process-wide logger. Development mode gets the
// human-readable console encoder.
func Init(env string) error {
	var err error
	if env == "development" {
		Logger, err = zap.NewDevelopment()
	} else {
		Logger, err = zap.NewProduction()
	}
	return err
}

// L returns the configured logger, falling back to a no-op logger so
// library code and tests never nil-check.
func L() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}
