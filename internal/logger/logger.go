package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger. Unknown levels are an error,
// unknown formats fall back to text.
func Init(level, format string) error {
	return setup(logrus.StandardLogger(), level, format, os.Stdout)
}

func setup(l *logrus.Logger, level, format string, out io.Writer) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetOutput(out)
	return nil
}

// WithNamespace returns an entry tagged with the nspace field.
func WithNamespace(nspace string) *logrus.Entry {
	return logrus.WithField("nspace", nspace)
}
