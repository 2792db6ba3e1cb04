package io

import (
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/grid"
	"github.com/phil-mansfield/gopic/mesh"
	"github.com/phil-mansfield/gopic/species"
)

func TestGridRoundTrip(t *testing.T) {
	fname := path.Join(t.TempDir(), "test.grid")

	hd := &GridHeader{
		Nodes:    [3]int64{4, 4, 4},
		Origin:   [3]float64{0, 0, 0},
		MaxBound: [3]float64{1, 1, 1},
		Spacing:  [3]float64{1. / 3, 1. / 3, 1. / 3},
		Step:     7,
		Time:     7e-10,
	}

	phi := make([]float64, 64)
	ef := make([]float64, 3*64)
	for i := range phi {
		phi[i] = float64(i) * 0.25
	}
	for i := range ef {
		ef[i] = -float64(i)
	}
	blocks := []GridBlock{
		{"phi", 1, phi},
		{"ef", 3, ef},
	}

	err := WriteGrid(fname, hd, blocks)
	assert.NoError(t, err)

	rhd, rblocks, err := ReadGrid(fname)
	assert.NoError(t, err)

	assert.Equal(t, hd.Nodes, rhd.Nodes)
	assert.Equal(t, hd.Step, rhd.Step)
	assert.Equal(t, hd.Time, rhd.Time)
	assert.Equal(t, int64(2), rhd.Blocks)

	assert.Equal(t, "phi", rblocks[0].Name)
	assert.Equal(t, 1, rblocks[0].Components)
	assert.Equal(t, phi, rblocks[0].Data)
	assert.Equal(t, "ef", rblocks[1].Name)
	assert.Equal(t, 3, rblocks[1].Components)
	assert.Equal(t, ef, rblocks[1].Data)
}

func TestReadGridRejectsGarbage(t *testing.T) {
	fname := path.Join(t.TempDir(), "not_a.grid")
	err := os.WriteFile(fname, make([]byte, 256), 0644)
	assert.NoError(t, err)

	_, _, err = ReadGrid(fname)
	assert.Error(t, err)
}

func TestWriteVTK(t *testing.T) {
	dir := t.TempDir()

	m := mesh.New(
		geom.Vec{0, 0, 0}, geom.Vec{1, 1, 1},
		grid.NewDims(4, 4, 4), 1e-10,
	)
	s := species.New("e-", 1.0, -1.0, m.Dims())

	err := WriteVTK(dir, 3, m, []*species.Species{s})
	assert.NoError(t, err)

	b, err := os.ReadFile(path.Join(dir, "field_00003.vti"))
	assert.NoError(t, err)
	text := string(b)

	// Every named array the external tools expect must be present.
	for _, name := range []string{"NodeVol", "phi", "rho", "e-", "ef"} {
		assert.True(
			t, strings.Contains(text, "Name=\""+name+"\""),
			"missing array %s", name,
		)
	}
	assert.True(t, strings.Contains(text, "WholeExtent=\"0 3 0 3 0 3\""))
}

func TestTraceWriter(t *testing.T) {
	fname := path.Join(t.TempDir(), "trace.txt")

	tw, err := CreateTrace(fname)
	assert.NoError(t, err)

	p := &species.Particle{
		X: geom.Vec{1, 2, 3}, V: geom.Vec{4, 5, 6}, Weight: 1,
	}
	tw.Append(1e-10, p, 0.5, -0.25)
	assert.NoError(t, tw.Close())

	b, err := os.ReadFile(fname)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Equal(t, 2, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "#"))

	cols := strings.Fields(lines[1])
	assert.Equal(t, 9, len(cols))
	assert.Equal(t, "1e-10", cols[0])
	assert.Equal(t, "0.5", cols[7])
	assert.Equal(t, "-0.25", cols[8])
}
