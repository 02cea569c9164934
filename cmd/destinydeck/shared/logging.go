package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures pretty console logging on stderr
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// SetupStructuredLogger configures JSON logging for machine consumption
func SetupStructuredLogger(debug bool) *log.Logger {
	logger := SetupLogger(debug)
	logger.SetFormatter(log.JSONFormatter)
	return logger
}
