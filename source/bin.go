package source

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/l2project/pointplot"
)

// BinParser reads big-endian 32-bit records: the group in the top 8 bits,
// then 12 bits of x and 12 bits of y. A trailing partial record is ignored.
type BinParser struct{}

func (BinParser) Parse(path string) ([]pointplot.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: cannot open %s: %w", path, err)
	}
	defer f.Close()

	points, err := decodeBin(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("source: cannot read %s: %w", path, err)
	}
	for i := range points {
		points[i].File = path
	}
	return points, nil
}

func decodeBin(r io.Reader) ([]pointplot.Point, error) {
	var points []pointplot.Point
	var rec [4]byte
	for {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return points, nil
			}
			return nil, err
		}
		points = append(points, unpack(binary.BigEndian.Uint32(rec[:])))
	}
}

func unpack(entry uint32) pointplot.Point {
	return pointplot.Point{
		Group: strconv.FormatUint(uint64(entry>>24&0xFF), 10),
		X:     float64(entry >> 12 & 0xFFF),
		Y:     float64(entry & 0xFFF),
	}
}
