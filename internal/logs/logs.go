package logs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger — process-wide logger; Init reconfigures it from config.
var Logger = logrus.New()

type Options struct {
	Level  string // debug|info|warn|error (default info)
	Format string // text|json
	File   string // empty — stderr
}

func Init(o Options) {
	lvl, err := logrus.ParseLevel(o.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)

	switch o.Format {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			Logger.Warnf("log file %s: %v (falling back to stderr)", o.File, err)
			return
		}
		Logger.SetOutput(f)
	}
}
