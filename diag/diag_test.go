package diag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/grid"
	"github.com/phil-mansfield/gopic/mesh"
	"github.com/phil-mansfield/gopic/species"
)

func testMesh() *mesh.Mesh {
	return mesh.New(
		geom.Vec{0, 0, 0}, geom.Vec{1, 1, 1},
		grid.NewDims(5, 5, 5), 1e-10,
	)
}

func TestEnergyKinetic(t *testing.T) {
	m := testMesh()
	s := species.New("ions", 2.0, 1.0, m.Dims())

	// The potential is zero, so all the energy is kinetic:
	// 0.5 * mass * weight * v^2.
	s.Add(species.Particle{
		X: geom.Vec{0.5, 0.5, 0.5}, V: geom.Vec{3, 0, 4}, Weight: 10,
	}, m)

	ke, pe := Energy(s, m)
	assert.InDelta(t, 0.5*2*10*25, ke, 1e-10)
	assert.Equal(t, 0.0, pe)
}

func TestVelocityMoments(t *testing.T) {
	m := testMesh()
	s := species.New("ions", 1.0, 0.0, m.Dims())

	vxs := []float64{1, 2, 3, 4}
	for _, vx := range vxs {
		s.Add(species.Particle{
			X: geom.Vec{0.5, 0.5, 0.5}, V: geom.Vec{vx, -vx, 0}, Weight: 1,
		}, m)
	}

	mean, std := VelocityMoments(s)
	assert.InDelta(t, 2.5, mean[0], 1e-12)
	assert.InDelta(t, -2.5, mean[1], 1e-12)
	assert.Equal(t, 0.0, mean[2])

	// Sample standard deviation of {1,2,3,4}.
	want := math.Sqrt(5.0 / 3.0)
	assert.InDelta(t, want, std[0], 1e-12)
	assert.InDelta(t, want, std[1], 1e-12)
	assert.Equal(t, 0.0, std[2])
}

func TestVelocityMomentsSmallEnsembles(t *testing.T) {
	m := testMesh()
	s := species.New("ions", 1.0, 0.0, m.Dims())

	mean, std := VelocityMoments(s)
	assert.Equal(t, [3]float64{}, mean)
	assert.Equal(t, [3]float64{}, std)
}
