package pointplot

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogger replaces the logger used by the package. Passing nil restores
// the default, which only reports warnings and errors on stderr.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		logger = newLogger()
		return
	}
	logger = l
}
