// Package log provides the logrus loggers used across the module.
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv is the environment variable that switches loggers to debug level.
const DebugEnv = "BLOCKGRAPH_DEBUG"

// GetLogger returns a new logger writing to stderr. The level is Debug when
// BLOCKGRAPH_DEBUG parses as true, Info otherwise.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if debugEnabled() {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func debugEnabled() bool {
	debug, err := strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		return false
	}
	return debug
}
