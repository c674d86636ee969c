package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/l2project/pointplot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command with a fresh home directory. It returns the
// output path, stdout, stderr and the command error.
func execute(t *testing.T, stdin string, mkdir bool) (string, string, string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, "l2_project", "bin")
	if mkdir {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	return filepath.Join(dir, "output.png"), stdout.String(), stderr.String(), err
}

func TestPlotPoints(t *testing.T) {
	path, stdout, stderr, err := execute(t, `{"points": [
		{"file": "/home/user/data/a.csv", "x": 1, "y": 2, "group": "1"},
		{"file": "/home/user/data/a.csv", "x": 2, "y": 3, "group": "1"},
		{"file": "/home/user/data/b.csv", "x": 3, "y": 1, "group": "2"}
	]}`, true)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.FileExists(t, path)
}

func TestPlotPointsEmpty(t *testing.T) {
	path, _, _, err := execute(t, `{"points": []}`, true)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestPlotPointsErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		mkdir bool
		kind  interface{ Is(error) bool }
	}{
		{"empty stdin", "", true, pointplot.ErrParse},
		{"truncated", `{"points": [{"file"`, true, pointplot.ErrParse},
		{"no points", `{}`, true, pointplot.ErrMissingField},
		{"point without group", `{"points": [{"file": "a", "x": 1, "y": 1}]}`, true, pointplot.ErrMissingField},
		{"missing output dir", `{"points": []}`, false, pointplot.ErrFilesystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, stdout, stderr, err := execute(t, tt.stdin, tt.mkdir)
			require.Error(t, err)
			assert.True(t, tt.kind.Is(err), err.Error())
			assert.Empty(t, stdout)
			assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)
			assert.NoFileExists(t, path)
		})
	}
}

func TestPlotPointsRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"input.json"})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())
}

func TestPlotPointsRunsWithoutGnuplot(t *testing.T) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		t.Skip("no build info in this binary")
	}
	for _, dep := range info.Deps {
		assert.NotEqual(t, "github.com/Arafatk/glot", dep.Path, "glot panics at init without gnuplot")
	}
}
