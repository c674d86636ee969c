package pointplot

import (
	"gonum.org/v1/plot"
)

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

// Legend keeps one entry per distinct label, in the order labels were first
// seen. Later additions with a known label are ignored.
type Legend struct {
	entries []legendEntry
	index   map[string]int
}

func NewLegend() *Legend {
	return &Legend{index: make(map[string]int)}
}

// Add records label with its thumbnail unless the label is already present.
// It returns the position of the label in the legend and whether it was new.
func (l *Legend) Add(label string, thumb plot.Thumbnailer) (int, bool) {
	if i, ok := l.index[label]; ok {
		return i, false
	}
	l.index[label] = len(l.entries)
	l.entries = append(l.entries, legendEntry{label: label, thumb: thumb})
	return len(l.entries) - 1, true
}

// Lookup returns the position of label, or -1.
func (l *Legend) Lookup(label string) int {
	if i, ok := l.index[label]; ok {
		return i
	}
	return -1
}

func (l *Legend) Labels() []string {
	labels := make([]string, len(l.entries))
	for i, e := range l.entries {
		labels[i] = e.label
	}
	return labels
}

func (l *Legend) Len() int {
	return len(l.entries)
}
