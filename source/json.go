package source

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/l2project/pointplot"
)

// JSONParser reads point objects either from a top-level array or from the
// "points" array of a top-level object. Objects lacking any of group, x or
// y are skipped.
type JSONParser struct{}

func (JSONParser) Parse(path string) ([]pointplot.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: cannot open %s: %w", path, err)
	}
	points, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("source: bad format in %s: %w", path, err)
	}
	for i := range points {
		points[i].File = path
	}
	return points, nil
}

func decodeJSON(data []byte) ([]pointplot.Point, error) {
	var objects []map[string]interface{}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			Points []map[string]interface{} `json:"points"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		objects = doc.Points
	} else if err := json.Unmarshal(data, &objects); err != nil {
		return nil, err
	}

	var points []pointplot.Point
	for i, obj := range objects {
		group, gok := obj["group"]
		x, xok := obj["x"]
		y, yok := obj["y"]
		if !gok || !xok || !yok {
			continue
		}

		xf, ok := x.(float64)
		if !ok {
			return nil, fmt.Errorf("object %d: x is %T, want a number", i, x)
		}
		yf, ok := y.(float64)
		if !ok {
			return nil, fmt.Errorf("object %d: y is %T, want a number", i, y)
		}
		points = append(points, pointplot.Point{Group: groupText(group), X: xf, Y: yf})
	}
	return points, nil
}

func groupText(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
