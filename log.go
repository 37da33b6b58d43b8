package pluton

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is shared by every Scene in the process. Hosts replace it with
// SetLogger to route diagnostics into their own handler.
var logger = newDefaultLogger()

func newDefaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "pluton",
		Level:  log.WarnLevel,
	})
}

// SetLogger replaces the package logger. A nil logger restores the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newDefaultLogger()
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}
