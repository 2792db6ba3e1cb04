package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/gopic/geom"
)

func TestScatterWeightConservation(t *testing.T) {
	f := NewScalar(NewDims(4, 5, 6))

	// Coordinates strictly inside [0, dim-1) must deposit exactly their
	// value, wherever they sit within a cell.
	lcs := []geom.Vec{
		{0.5, 0.5, 0.5},
		{1.25, 2.75, 3.5},
		{0, 0, 0},
		{2.999, 3.999, 4.999},
		{1, 2, 3},
	}
	for _, lc := range lcs {
		f.Clear()
		f.Scatter(lc, 2.5)
		assert.InDelta(t, 2.5, f.Sum(), 1e-12, "lc = %v", lc)
	}
}

func TestScatterOutOfDomain(t *testing.T) {
	f := NewScalar(NewDims(4, 4, 4))

	// The do-not-extrapolate policy: out-of-domain deposits are dropped.
	lcs := []geom.Vec{
		{-0.1, 1, 1},
		{1, -0.1, 1},
		{1, 1, -0.1},
		{3, 1, 1},
		{1, 3.5, 1},
		{1, 1, 3},
	}
	for _, lc := range lcs {
		f.Scatter(lc, 1)
		assert.Equal(t, 0.0, f.Sum(), "lc = %v", lc)
	}
}

func TestScatterGatherDuality(t *testing.T) {
	f := NewScalar(NewDims(5, 5, 5))

	// A unit deposit at an exact node gathers back exactly.
	f.Scatter(geom.Vec{2, 3, 1}, 1)
	assert.Equal(t, 1.0, f.Gather(geom.Vec{2, 3, 1}))

	// Halfway between two nodes the gather is the average of their values.
	f.Clear()
	f.Set(1, 2, 2, 3.0)
	f.Set(2, 2, 2, 5.0)
	assert.InDelta(t, 4.0, f.Gather(geom.Vec{1.5, 2, 2}), 1e-12)
}

func TestGatherUpperFace(t *testing.T) {
	d := NewDims(4, 4, 4)
	f := NewScalar(d)
	f.Set(3, 3, 3, 7.0)

	// Gather is defined on the closed interval, including the far corner.
	assert.InDelta(t, 7.0, f.Gather(geom.Vec{3, 3, 3}), 1e-12)
}

func TestScalarArithmetic(t *testing.T) {
	d := NewDims(3, 3, 3)
	f := NewScalar(d)
	for i := range f.Data {
		f.Data[i] = float64(i)
	}

	g := f.Add(1)
	assert.Equal(t, f.Data[4]+1, g.Data[4])
	g = f.Sub(2)
	assert.Equal(t, f.Data[4]-2, g.Data[4])
	g = f.Mul(3)
	assert.Equal(t, f.Data[4]*3, g.Data[4])
	g = f.Div(2)
	assert.Equal(t, f.Data[4]/2, g.Data[4])

	// The originals are untouched.
	assert.Equal(t, 4.0, f.Data[4])
}

func TestAddScaledSelf(t *testing.T) {
	d := NewDims(3, 3, 3)
	f, g := NewScalar(d), NewScalar(d)
	for i := range g.Data {
		g.Data[i] = 2
	}

	f.AddScaledSelf(g, -1.5)
	for i := range f.Data {
		assert.Equal(t, -3.0, f.Data[i])
	}
}

func TestDivFieldSelf(t *testing.T) {
	d := NewDims(3, 3, 3)
	f, g := NewScalar(d), NewScalar(d)
	for i := range f.Data {
		f.Data[i] = 6
		g.Data[i] = 3
	}

	f.DivFieldSelf(g)
	for i := range f.Data {
		assert.Equal(t, 2.0, f.Data[i])
	}
}

func TestShapeMismatchPanics(t *testing.T) {
	f := NewScalar(NewDims(3, 3, 3))
	g := NewScalar(NewDims(3, 3, 4))

	assert.Panics(t, func() { f.DivFieldSelf(g) })
	assert.Panics(t, func() { f.AddScaledSelf(g, 1) })
}

func TestDimsPanics(t *testing.T) {
	assert.Panics(t, func() { NewDims(2, 3, 3) })
	assert.Panics(t, func() { NewDims(3, 0, 3) })
	assert.Panics(t, func() { NewDims(3, 3, -1) })
}

func TestVecFieldScatterGather(t *testing.T) {
	f := NewVecField(NewDims(4, 4, 4))
	val := geom.Vec{1, -2, 3}

	f.Scatter(geom.Vec{1.5, 1.5, 1.5}, val)

	// The eight corners share the deposit and gather it back exactly at
	// the deposit point.
	got := f.Gather(geom.Vec{1.5, 1.5, 1.5})
	for d := 0; d < 3; d++ {
		// Gathering at the scatter point recovers val scaled by the sum of
		// the squared weights.
		assert.InDelta(t, val[d]*0.125, got[d], 1e-12)
	}

	sum := geom.Vec{}
	for _, v := range f.Data {
		sum = sum.Add(v)
	}
	for d := 0; d < 3; d++ {
		assert.InDelta(t, val[d], sum[d], 1e-12)
	}
}

func TestClearAndCopy(t *testing.T) {
	f := NewScalar(NewDims(3, 3, 3))
	f.Data[0] = 1

	g := f.Copy()
	f.Clear()

	assert.Equal(t, 0.0, f.Data[0])
	assert.Equal(t, 1.0, g.Data[0])

	if math.IsNaN(g.Sum()) {
		t.Errorf("Copy corrupted field data.")
	}
}
