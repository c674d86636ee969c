package pointplot

import (
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"
)

const (
	// OutputDir is the output directory, relative to the user's home.
	OutputDir  = "l2_project/bin"
	OutputName = "output.png"
)

// Options are the rendering constants of a Figure.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Grid   bool

	// Alpha is the opacity of every marker, in [0, 1].
	Alpha        float64
	MarkerRadius vg.Length
	LegendFont   vg.Length

	// Width and Height size the plot area. The legend is laid out to the
	// right of it and widens the image by exactly what it needs.
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultOptions returns the options plotpoints renders with.
func DefaultOptions() Options {
	return Options{
		Title:        "Точки из файлов",
		XLabel:       "X",
		YLabel:       "Y",
		Grid:         true,
		Alpha:        0.7,
		MarkerRadius: vg.Points(3),
		LegendFont:   vg.Points(8),
		Width:        6.4 * vg.Inch,
		Height:       4.8 * vg.Inch,
		DPI:          100,
	}
}

// DefaultOutputPath returns $HOME/l2_project/bin/output.png. The directory
// is not created.
func DefaultOutputPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrFilesystem.Wrap(err, "home directory")
	}
	return filepath.Join(home, filepath.FromSlash(OutputDir), OutputName), nil
}
