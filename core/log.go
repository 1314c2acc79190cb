package core

import (
	"os"

	"github.com/charmbracelet/log"
)

// Log is the logger used for warnings and debug output; user facing messages are printed directly
var Log = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "mrtool",
	Level:  log.InfoLevel,
})

// SetVerbose enables debug output
func SetVerbose(verbose bool) {
	if verbose {
		Log.SetLevel(log.DebugLevel)
	} else {
		Log.SetLevel(log.InfoLevel)
	}
}

func loggerOr(l *log.Logger) *log.Logger {
	if l == nil {
		return Log
	}
	return l
}
