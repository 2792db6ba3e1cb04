package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/gopic/constants"
	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/grid"
)

func testMesh(n int) *Mesh {
	return New(
		geom.Vec{0, 0, 0}, geom.Vec{1, 1, 1},
		grid.NewDims(n, n, n), 1e-10,
	)
}

func TestNodeVolumePartition(t *testing.T) {
	// The half/quarter/eighth boundary corrections must make the node
	// volumes sum to exactly the box volume.
	for _, n := range []int{3, 4, 7, 21} {
		m := testMesh(n)
		assert.InDelta(t, 1.0, m.NodeVolumes().Sum(), 1e-10, "n = %d", n)
	}

	m := New(
		geom.Vec{-0.1, -0.1, -0.1}, geom.Vec{0.1, 0.1, 0.2},
		grid.NewDims(5, 6, 7), 1e-10,
	)
	assert.InDelta(t, 0.2*0.2*0.3, m.NodeVolumes().Sum(), 1e-12)
}

func TestNodeVolumeCorners(t *testing.T) {
	m := testMesh(5)
	h := m.Spacing()
	full := h[0] * h[1] * h[2]

	vols := m.NodeVolumes()
	assert.InDelta(t, full/8, vols.At(0, 0, 0), 1e-15)
	assert.InDelta(t, full/4, vols.At(0, 0, 2), 1e-15)
	assert.InDelta(t, full/2, vols.At(0, 2, 2), 1e-15)
	assert.InDelta(t, full, vols.At(2, 2, 2), 1e-15)
}

func TestGeometry(t *testing.T) {
	m := New(
		geom.Vec{-1, -2, -3}, geom.Vec{1, 2, 3},
		grid.NewDims(5, 5, 5), 1e-10,
	)

	assert.Equal(t, geom.Vec{0, 0, 0}, m.Centroid())
	h := m.Spacing()
	assert.InDelta(t, 0.5, h[0], 1e-15)
	assert.InDelta(t, 1.0, h[1], 1e-15)
	assert.InDelta(t, 1.5, h[2], 1e-15)

	lc := m.LogicalCoord(geom.Vec{-1, -2, -3})
	assert.Equal(t, geom.Vec{0, 0, 0}, lc)
	lc = m.LogicalCoord(geom.Vec{1, 2, 3})
	assert.InDelta(t, 4.0, lc[0], 1e-12)
	assert.InDelta(t, 4.0, lc[1], 1e-12)
	assert.InDelta(t, 4.0, lc[2], 1e-12)
}

func TestDegenerateGeometryPanics(t *testing.T) {
	assert.Panics(t, func() {
		New(geom.Vec{0, 0, 0}, geom.Vec{1, 0, 1}, grid.NewDims(5, 5, 5), 1e-10)
	})
	assert.Panics(t, func() {
		New(geom.Vec{0, 0, 0}, geom.Vec{1, 1, 1}, grid.NewDims(5, 5, 5), 0)
	})
}

func TestZeroSourceSolve(t *testing.T) {
	m := testMesh(7)

	// With no charge anywhere and grounded walls the exact solution is
	// phi = 0, which the solver starts at: the first residual check must
	// report convergence.
	converged := m.SolvePotential(1000, 1e-6)
	assert.True(t, converged)

	phi := m.Potential()
	for i := range phi.Data {
		assert.Equal(t, 0.0, phi.Data[i])
	}
}

func TestSolveMatchesResidual(t *testing.T) {
	m := testMesh(9)

	// A blob of charge in the middle of the box.
	m.rho.Set(4, 4, 4, constants.ElementaryCharge*1e13)

	converged := m.SolvePotential(4000, 1e-6)
	assert.True(t, converged)

	// Convergence means the discrete Poisson equation holds at interior
	// nodes to within the tolerance.
	dx2 := 1 / (m.spacing[0] * m.spacing[0])
	dy2 := 1 / (m.spacing[1] * m.spacing[1])
	dz2 := 1 / (m.spacing[2] * m.spacing[2])
	buf := make([]float64, 7*7*7)
	assert.Less(t, m.residual(dx2, dy2, dz2, buf), 1e-6)

	// The walls stayed grounded.
	phi := m.Potential()
	d := m.Dims()
	for i := 0; i < d[0]; i++ {
		for j := 0; j < d[1]; j++ {
			assert.Equal(t, 0.0, phi.At(i, j, 0))
			assert.Equal(t, 0.0, phi.At(i, j, d[2]-1))
		}
	}
}

func TestLinearPotentialGivesUniformField(t *testing.T) {
	m := testMesh(6)
	slope := 2.5

	phi := grid.NewScalar(m.Dims())
	h := m.Spacing()
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			for k := 0; k < 6; k++ {
				phi.Set(i, j, k, slope*float64(i)*h[0])
			}
		}
	}
	m.SetPotential(phi)
	m.ComputeEField()

	// For a linear potential both the centered and the one-sided stencils
	// are exact, so E = (-slope, 0, 0) everywhere.
	ef := m.EField()
	for _, e := range ef.Data {
		assert.InDelta(t, -slope, e[0], 1e-10)
		assert.InDelta(t, 0.0, e[1], 1e-10)
		assert.InDelta(t, 0.0, e[2], 1e-10)
	}
}

func TestComputeChargeDensity(t *testing.T) {
	m := testMesh(4)

	a := grid.NewScalar(m.Dims())
	for i := range a.Data {
		a.Data[i] = 2
	}

	m.ComputeChargeDensity([]Source{
		scaledSource{a, 3}, scaledSource{a, -1},
	})

	rho := m.Rho()
	for i := range rho.Data {
		assert.InDelta(t, 4.0, rho.Data[i], 1e-12)
	}

	// A second call starts from a cleared field instead of accumulating.
	m.ComputeChargeDensity([]Source{scaledSource{a, 1}})
	rho = m.Rho()
	for i := range rho.Data {
		assert.InDelta(t, 2.0, rho.Data[i], 1e-12)
	}
}

type scaledSource struct {
	f      *grid.Scalar
	charge float64
}

func (s scaledSource) AccumulateRho(rho *grid.Scalar) {
	rho.AddScaledSelf(s.f, s.charge)
}

func TestSnapshotsAreCopies(t *testing.T) {
	m := testMesh(4)

	phi := m.Potential()
	phi.Data[0] = math.Inf(1)
	assert.Equal(t, 0.0, m.Potential().Data[0])

	vols := m.NodeVolumes()
	vols.Data[0] = 0
	assert.NotEqual(t, 0.0, m.NodeVolumes().Data[0])
}
