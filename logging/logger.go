package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// BootstrapLogger sets up the global logger. LOG_LEVEL is read directly from
// the environment so startup errors are visible before config is loaded.
func BootstrapLogger() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Log.SetReportCaller(true)
	Log.SetLevel(logrus.DebugLevel)

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if level, err := logrus.ParseLevel(raw); err == nil {
			Log.SetLevel(level)
		} else {
			Log.Warnf("invalid LOG_LEVEL %q, staying on debug", raw)
		}
	}
}
