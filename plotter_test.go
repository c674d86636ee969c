package pointplot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderToFile(t *testing.T, doc *Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), OutputName)
	require.NoError(t, Render(doc, path))
	return path
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestFigureOneMarkerPerPoint(t *testing.T) {
	doc := &Document{Points: []Point{
		{File: "/data/a.csv", Group: "1", X: 1, Y: 2},
		{File: "/data/a.csv", Group: "1", X: 3, Y: 4},
		{File: "/data/b.csv", Group: "2", X: 5, Y: 6},
		{File: "/data/b.csv", Group: "3", X: 5, Y: 6},
	}}

	fig := NewFigure(DefaultOptions())
	for _, pt := range doc.Points {
		require.NoError(t, fig.Scatter(pt))
	}

	assert.Equal(t, 4, fig.Markers())
	assert.Equal(t, []string{"a.csv:1", "b.csv:2", "b.csv:3"}, fig.Legend().Labels())
	assert.Equal(t, fig.markers[0].GlyphStyle.Color, fig.markers[1].GlyphStyle.Color)
	assert.NotEqual(t, fig.markers[0].GlyphStyle.Color, fig.markers[2].GlyphStyle.Color)

	var buf bytes.Buffer
	n, err := fig.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)
}

func TestFigureMarkersAreTranslucent(t *testing.T) {
	fig := NewFigure(DefaultOptions())
	require.NoError(t, fig.Scatter(Point{File: "a.csv", Group: "1"}))

	_, _, _, a := fig.markers[0].GlyphStyle.Color.RGBA()
	assert.InDelta(t, 0.7, float64(a)/0xffff, 0.01)
}

func TestRenderLegendWidensImage(t *testing.T) {
	empty := decodePNG(t, renderToFile(t, &Document{}))
	withLegend := decodePNG(t, renderToFile(t, &Document{Points: []Point{
		{File: "a.csv", Group: "a rather long group name", X: 1, Y: 1},
	}}))

	assert.Equal(t, empty.Bounds().Dy(), withLegend.Bounds().Dy())
	assert.Greater(t, withLegend.Bounds().Dx(), empty.Bounds().Dx())
}

func TestRenderLongLegendGrowsImage(t *testing.T) {
	few := &Document{}
	many := &Document{}
	for i := 0; i < 100; i++ {
		pt := Point{File: fmt.Sprintf("/data/f%03d.txt", i), Group: "1", X: float64(i), Y: float64(i)}
		if i < 3 {
			few.Points = append(few.Points, pt)
		}
		many.Points = append(many.Points, pt)
	}

	short := decodePNG(t, renderToFile(t, few))
	assert.InDelta(t, 480, short.Bounds().Dy(), 1)

	tall := decodePNG(t, renderToFile(t, many))
	require.Greater(t, tall.Bounds().Dy(), short.Bounds().Dy())

	// The bottom rows of the legend column stay blank: nothing runs off the edge.
	b := tall.Bounds()
	for x := b.Max.X - 40; x < b.Max.X; x++ {
		r, g, bl, _ := tall.At(x, b.Max.Y-1).RGBA()
		assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, bl}, "pixel (%d,%d)", x, b.Max.Y-1)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	path := renderToFile(t, &Document{Points: []Point{}})

	img := decodePNG(t, path)
	assert.InDelta(t, 640, img.Bounds().Dx(), 1)
	assert.InDelta(t, 480, img.Bounds().Dy(), 1)
}

func TestRenderIsRepeatable(t *testing.T) {
	doc := &Document{Points: []Point{
		{File: "a.txt", Group: "1", X: 10, Y: 20},
		{File: "b.bin", Group: "7", X: -3, Y: 4.5},
	}}

	first := decodePNG(t, renderToFile(t, doc))
	second := decodePNG(t, renderToFile(t, doc))

	require.Equal(t, first.Bounds(), second.Bounds())
	b := first.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if first.At(x, y) != second.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs between runs", x, y)
			}
		}
	}
}

func TestRenderMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", OutputName)

	err := Render(&Document{}, path)
	require.Error(t, err)
	assert.True(t, ErrFilesystem.Is(err))
	assert.Contains(t, err.Error(), path)
}

func TestDefaultOutputPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultOutputPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "l2_project", "bin", "output.png"), path)
}
