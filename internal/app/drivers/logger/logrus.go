package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the human facing logger of the command line tools.
func NewLogrusLogger(out io.Writer, verbose, jsonFormat bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if jsonFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: !verbose,
		})
	}
	return logger
}
