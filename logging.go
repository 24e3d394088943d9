package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// setupLogging points logrus at the configured file. The terminal belongs
// to the UI, so without a file the output is discarded.
func setupLogging(cfg *Config) (io.Closer, error) {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.LogFile == "" {
		logrus.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return io.NopCloser(nil), err
	}
	logrus.SetOutput(file)
	return file, nil
}
