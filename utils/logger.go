package utils

import "go.uber.org/zap"

// NewLogger builds the process logger. Development gets the console
// encoder, everything else the production JSON encoder.
func NewLogger(environment string) *zap.Logger {
	if environment == "development" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
