// Package bioshelllog configures the process-wide logger from a single
// environment variable, per spec.md §6 ("a logging verbosity level
// read from one environment variable at startup, info by default").
//
// Grounded on inference-sim-inference-sim's use of sirupsen/logrus
// alongside a cobra+yaml CLI — the same shape this project's sampler
// binary has.
package bioshelllog

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// EnvVar is the environment variable consulted at startup.
const EnvVar = "BIOSHELL_LOG_LEVEL"

var (
	once   sync.Once
	logger *logrus.Logger
)

// Logger returns the process-wide logger, initializing it from
// BIOSHELL_LOG_LEVEL on first use. Initialization happens once and is
// then frozen, per the "global state: initialize lazily once, freeze
// after construction" guidance in spec.md §9.
func Logger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		level, err := logrus.ParseLevel(os.Getenv(EnvVar))
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
	})
	return logger
}

// WithField is a convenience wrapper around Logger().WithField.
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger().WithField(key, value)
}
