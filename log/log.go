// Package log provides loggers for tutorial programs and backends.
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv is the environment variable which enables debug logging.
const DebugEnv = "TUTORIAL_DEBUG"

var debug bool

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger instance.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Printf adapts a logger to clients which log with Printf only. All
// such lines are logged at debug level.
type Printf struct {
	logrus.FieldLogger
}

// Printf logs at debug level.
func (p Printf) Printf(format string, args ...interface{}) {
	p.FieldLogger.Debugf(format, args...)
}
