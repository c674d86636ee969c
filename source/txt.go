package source

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/l2project/pointplot"
)

// TxtParser reads one point per line, formatted as "group:x,y".
type TxtParser struct{}

func (TxtParser) Parse(path string) ([]pointplot.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: cannot open %s: %w", path, err)
	}
	defer f.Close()

	var points []pointplot.Point
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		pt, err := parseTxtLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("source: bad format in %s line %d: %w", path, line, err)
		}
		pt.File = path
		points = append(points, pt)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("source: cannot read %s: %w", path, err)
	}
	return points, nil
}

func parseTxtLine(line string) (pointplot.Point, error) {
	var pt pointplot.Point
	colon := strings.IndexByte(line, ':')
	comma := strings.IndexByte(line, ',')
	if colon < 0 || comma < colon {
		return pt, fmt.Errorf("want group:x,y, got %q", line)
	}

	x, err := strconv.Atoi(strings.TrimSpace(line[colon+1 : comma]))
	if err != nil {
		return pt, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(line[comma+1:]))
	if err != nil {
		return pt, err
	}

	pt.Group = line[:colon]
	pt.X, pt.Y = float64(x), float64(y)
	return pt, nil
}
