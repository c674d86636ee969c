// Package preview draws points through gnuplot.
//
// Importing this package requires gnuplot on PATH: glot looks the binary up
// at init and panics when it is missing. Keep it out of anything that must
// run without gnuplot.
package preview

import (
	"os"

	"github.com/Arafatk/glot"
	"github.com/l2project/pointplot"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogger replaces the logger used by the package; nil restores the default.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		logger = newLogger()
		return
	}
	logger = l
}

// RenderGnuplot draws doc through a gnuplot process and saves the result to
// path; the terminal is chosen by gnuplot from the file extension. Points
// are grouped into one series per legend label, in first-seen order.
//
// A document without points is an error, since gnuplot refuses to save a
// plot with no curves.
func RenderGnuplot(doc *pointplot.Document, path string) error {
	p, err := glot.NewPlot(2, false, false)
	if err != nil {
		return pointplot.ErrRender.Wrap(err, "gnuplot")
	}
	defer p.Close()

	legend := pointplot.NewLegend()
	var series [][2][]float64
	for _, pt := range doc.Points {
		i, added := legend.Add(pt.Label(), nil)
		if added {
			series = append(series, [2][]float64{})
		}
		series[i][0] = append(series[i][0], pt.X)
		series[i][1] = append(series[i][1], pt.Y)
	}

	for i, label := range legend.Labels() {
		if err := p.AddPointGroup(label, "points", [][]float64{series[i][0], series[i][1]}); err != nil {
			return pointplot.ErrRender.Wrap(err, "series "+label)
		}
	}

	opts := pointplot.DefaultOptions()
	if err := p.SetTitle(opts.Title); err != nil {
		return pointplot.ErrRender.Wrap(err, "gnuplot title")
	}
	if err := p.SetXLabel(opts.XLabel); err != nil {
		return pointplot.ErrRender.Wrap(err, "gnuplot x label")
	}
	if err := p.SetYLabel(opts.YLabel); err != nil {
		return pointplot.ErrRender.Wrap(err, "gnuplot y label")
	}
	if err := p.SavePlot(path); err != nil {
		return pointplot.ErrRender.Wrap(err, path)
	}

	logger.WithFields(logrus.Fields{
		"series": legend.Len(),
		"path":   path,
	}).Debug("gnuplot preview saved")
	return nil
}
