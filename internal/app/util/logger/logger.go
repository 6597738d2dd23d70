package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger. Development mode (the --verbose flag) gets
// colored, debug-level console output; otherwise only warnings and above
// reach the user.
func New(development bool) (*zap.Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	return config.Build()
}

// MustNew creates a new logger and panics if it fails.
func MustNew(development bool) *zap.Logger {
	log, err := New(development)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return log
}
