package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger.
var Log = logrus.New()

// Init configures the shared logger. Release mode logs JSON at info level,
// everything else gets a human-readable format with debug enabled.
func Init(mode string) {
	Log.SetOutput(os.Stdout)
	if mode == "release" {
		Log.SetLevel(logrus.InfoLevel)
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetLevel(logrus.DebugLevel)
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	Log.WithField("mode", mode).Info("logger initialized")
}
