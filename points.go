package pointplot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
)

// Point is a single 2D coordinate read from a source file.
type Point struct {
	File  string  `json:"file"`
	Group string  `json:"group"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Filename returns the last path component of File.
func (p Point) Filename() string {
	i := strings.LastIndexFunc(p.File, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	})
	return p.File[i+1:]
}

// Label is the legend label of the point, "{filename}:{group}".
func (p Point) Label() string {
	return p.Filename() + ":" + p.Group
}

// Document is the input of a render: an ordered list of points.
type Document struct {
	Points []Point `json:"points"`
}

// Encode writes d as a single line of JSON.
func (d *Document) Encode(w io.Writer) error {
	points := d.Points
	if points == nil {
		points = []Point{}
	}
	return json.NewEncoder(w).Encode(Document{Points: points})
}

type wireDocument struct {
	Points *[]map[string]json.RawMessage `json:"points"`
}

// Decode reads r to the end and parses it as a Document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrParse.Wrap(err, "input")
	}
	return Unmarshal(data)
}

// Unmarshal parses data as a Document. Every point must carry file, x, y
// and group; the first one that doesn't fails the whole document.
func Unmarshal(data []byte) (*Document, error) {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, ErrParse.Wrap(err, "input")
	}
	if wire.Points == nil {
		return nil, ErrMissingField.New("points")
	}

	doc := &Document{Points: make([]Point, 0, len(*wire.Points))}
	for i, raw := range *wire.Points {
		pt, err := decodePoint(i, raw)
		if err != nil {
			return nil, err
		}
		doc.Points = append(doc.Points, pt)
	}
	return doc, nil
}

func decodePoint(i int, raw map[string]json.RawMessage) (Point, error) {
	var pt Point
	for _, key := range []string{"file", "x", "y", "group"} {
		v, ok := raw[key]
		name := fmt.Sprintf("points[%d].%s", i, key)
		if !ok || isNull(v) {
			return pt, ErrMissingField.New(name)
		}

		var err error
		switch key {
		case "file":
			err = json.Unmarshal(v, &pt.File)
		case "x":
			err = json.Unmarshal(v, &pt.X)
		case "y":
			err = json.Unmarshal(v, &pt.Y)
		case "group":
			pt.Group, err = text(v)
		}
		if err != nil {
			return pt, ErrParse.Wrap(err, name)
		}
	}
	return pt, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// text renders a JSON value as label text: strings unquoted, anything else
// as its compact JSON form.
func text(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) > 0 && v[0] == '"' {
		var s string
		err := json.Unmarshal(v, &s)
		return s, err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
