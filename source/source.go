// Package source reads points from the files and tables that feed a plot.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/l2project/pointplot"
	"github.com/sirupsen/logrus"
)

// Parser extracts points from a single file. Every point it returns has
// File set to the path it was read from.
type Parser interface {
	Parse(path string) ([]pointplot.Point, error)
}

var log logrus.FieldLogger = newLogger()

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
		log = newLogger()
		return
	}
	log = l
}

// ForFile picks a parser by the file's extension, ignoring case.
func ForFile(path string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		return TxtParser{}, nil
	case ".bin":
		return BinParser{}, nil
	case ".json":
		return JSONParser{}, nil
	}
	return nil, fmt.Errorf("source: unsupported file extension %q", ext)
}

// ParseFiles parses every path in order and concatenates the points. The
// first failing file aborts the run.
func ParseFiles(paths []string) ([]pointplot.Point, error) {
	var all []pointplot.Point
	for _, path := range paths {
		p, err := ForFile(path)
		if err != nil {
			return nil, err
		}
		points, err := p.Parse(path)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"path": path, "points": len(points)}).Debug("parsed point file")
		all = append(all, points...)
	}
	return all, nil
}
