package internal

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a text logger writing to w.
// Only warnings and above are emitted unless verbose is set.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// Operation returns an entry tagged with the command being run.
func Operation(log *logrus.Logger, command string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"command": command,
	})
}
