package pointplot

import (
	"image/color"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// legendMargin is the room kept between the legend text and the image edge.
const legendMargin = 4 * vg.Millimeter

// Figure is a scatter plot and its legend. It is built once and every
// drawing call goes through it; there is no package level plot state.
type Figure struct {
	opts    Options
	plot    *plot.Plot
	legend  *Legend
	markers []*plotter.Scatter
}

func NewFigure(opts Options) *Figure {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	if opts.Grid {
		p.Add(plotter.NewGrid())
	}
	return &Figure{opts: opts, plot: p, legend: NewLegend()}
}

// Scatter adds one marker for pt. Markers sharing a label share a color and
// a legend entry; the first marker of a label provides the thumbnail.
func (f *Figure) Scatter(pt Point) error {
	label := pt.Label()
	idx := f.legend.Lookup(label)
	if idx < 0 {
		idx = f.legend.Len()
	}

	s, err := plotter.NewScatter(plotter.XYs{{X: pt.X, Y: pt.Y}})
	if err != nil {
		return ErrRender.Wrap(err, "marker "+label)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = f.opts.MarkerRadius
	s.GlyphStyle.Color = fade(plotutil.Color(idx), f.opts.Alpha)

	f.plot.Add(s)
	f.markers = append(f.markers, s)
	f.legend.Add(label, s)
	return nil
}

// Markers returns the number of markers drawn so far.
func (f *Figure) Markers() int {
	return len(f.markers)
}

func (f *Figure) Legend() *Legend {
	return f.legend
}

// WriteTo draws the figure and encodes it as PNG to w.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	leg := f.plotLegend()
	legendW := f.legendWidth(&leg)
	height := f.opts.Height
	if h := f.legendHeight(&leg) - leg.YOffs; h > height {
		height = h
	}

	img := vgimg.NewWith(
		vgimg.UseWH(f.opts.Width+legendW, height),
		vgimg.UseDPI(f.opts.DPI),
	)
	dc := draw.New(img)
	// The axes keep their size at the top; a long legend extends below them.
	f.plot.Draw(draw.Crop(dc, 0, -legendW, height-f.opts.Height, 0))
	if f.legend.Len() > 0 {
		leg.Draw(draw.Crop(dc, f.opts.Width, 0, 0, 0))
	}

	n, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	if err != nil {
		return n, ErrRender.Wrap(err, "png")
	}
	return n, nil
}

// Save writes the figure to path. The parent directory must exist.
func (f *Figure) Save(path string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return ErrFilesystem.Wrap(err, path)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = ErrFilesystem.Wrap(cerr, path)
		}
	}()

	ew := &errWriter{w: out}
	if _, err := f.WriteTo(ew); err != nil {
		if ew.err != nil {
			return ErrFilesystem.Wrap(ew.err, path)
		}
		return err
	}
	return nil
}

// plotLegend lays the legend out from its top-left corner, level with the
// top of the axes.
func (f *Figure) plotLegend() plot.Legend {
	leg := plot.NewLegend()
	leg.Top = true
	leg.Left = true
	leg.TextStyle.Font.Size = f.opts.LegendFont
	if f.plot.Title.Text != "" {
		leg.YOffs = -(f.plot.Title.TextStyle.Height(f.plot.Title.Text) + f.plot.Title.Padding)
	}
	for _, e := range f.legend.entries {
		leg.Add(e.label, e.thumb)
	}
	return leg
}

func (f *Figure) legendWidth(leg *plot.Legend) vg.Length {
	if f.legend.Len() == 0 {
		return 0
	}
	var text vg.Length
	for _, e := range f.legend.entries {
		if w := leg.TextStyle.Width(e.label); w > text {
			text = w
		}
	}
	return leg.ThumbnailWidth + leg.TextStyle.Width(" ") + text + legendMargin
}

// legendHeight is the height of all legend entries stacked from the top,
// without the vertical offset.
func (f *Figure) legendHeight(leg *plot.Legend) vg.Length {
	n := f.legend.Len()
	if n == 0 {
		return 0
	}
	var entry vg.Length
	for _, e := range f.legend.entries {
		if h := leg.TextStyle.Height(e.label); h > entry {
			entry = h
		}
	}
	return vg.Length(n)*(entry+leg.Padding) + legendMargin
}

// Render draws every point of doc in order and saves the figure to path.
func Render(doc *Document, path string) error {
	fig := NewFigure(DefaultOptions())
	for _, pt := range doc.Points {
		if err := fig.Scatter(pt); err != nil {
			return err
		}
	}
	if err := fig.Save(path); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"points": fig.Markers(),
		"labels": fig.Legend().Len(),
		"path":   path,
	}).Debug("scatter plot saved")
	return nil
}

func fade(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(alpha*255 + 0.5),
	}
}

// errWriter remembers the first error of the underlying writer so that
// write failures can be told apart from encoding failures.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	n, err := ew.w.Write(p)
	if err != nil && ew.err == nil {
		ew.err = err
	}
	return n, err
}
