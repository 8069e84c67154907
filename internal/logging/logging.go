package logging

import (
	"go.uber.org/zap"
)

// Init builds the process-wide sugared logger. Warnings and above only in
// normal runs so scan output stays clean for CI log scraping; debug mode
// switches to the development config.
func Init(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
