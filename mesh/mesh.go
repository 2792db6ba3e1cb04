/*package mesh implements the structured simulation domain: the box geometry,
the node-volume correction, the Gauss-Seidel potential solver, and the finite
difference electric field.*/
package mesh

import (
	"fmt"

	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/grid"
)

// Source deposits one species' charge onto the mesh. It is implemented by
// species.Species. Implementations add charge times number density into rho
// and may skip the work entirely when the species carries no charge.
type Source interface {
	AccumulateRho(rho *grid.Scalar)
}

// Mesh is a node-centered box domain with Dirichlet (grounded) boundaries.
// All of its fields are mutated only by the Mesh's own methods.
type Mesh struct {
	origin, maxBound, centroid geom.Vec
	dims                       grid.Dims
	spacing                    [3]float64
	dt                         float64

	nodeVolumes *grid.Scalar
	phi, rho    *grid.Scalar
	ef          *grid.VecField
}

// New creates a mesh spanning the box from origin to maxBound with the given
// node counts and timestep. Degenerate geometry is a configuration error and
// panics.
func New(origin, maxBound geom.Vec, dims grid.Dims, dt float64) *Mesh {
	span := maxBound.Sub(origin)
	for d := 0; d < 3; d++ {
		if span[d] <= 0 {
			panic(fmt.Sprintf(
				"Mesh bounds %v -> %v give a non-positive span on axis %d.",
				origin, maxBound, d,
			))
		}
	}
	if dt <= 0 {
		panic(fmt.Sprintf("Timestep %g is non-positive.", dt))
	}

	m := &Mesh{
		origin:   origin,
		maxBound: maxBound,
		centroid: origin.Add(maxBound).Scale(0.5),
		dims:     dims,
		dt:       dt,

		nodeVolumes: grid.NewScalar(dims),
		phi:         grid.NewScalar(dims),
		rho:         grid.NewScalar(dims),
		ef:          grid.NewVecField(dims),
	}
	// n nodes spanning the box leave n-1 cells per axis.
	for d := 0; d < 3; d++ {
		m.spacing[d] = span[d] / float64(dims[d]-1)
	}

	m.computeNodeVolumes()
	return m
}

// Origin returns the corner of the box with the smallest coordinates.
func (m *Mesh) Origin() geom.Vec { return m.origin }

// MaxBound returns the corner of the box diagonally opposite the origin.
func (m *Mesh) MaxBound() geom.Vec { return m.maxBound }

// Centroid returns the midpoint of the box.
func (m *Mesh) Centroid() geom.Vec { return m.centroid }

// Dims returns the node counts of the mesh.
func (m *Mesh) Dims() grid.Dims { return m.dims }

// Spacing returns the per-axis cell spacings.
func (m *Mesh) Spacing() [3]float64 { return m.spacing }

// Timestep returns the simulation timestep.
func (m *Mesh) Timestep() float64 { return m.dt }

// NodeVolumes returns a copy of the per-node Voronoi volumes.
func (m *Mesh) NodeVolumes() *grid.Scalar { return m.nodeVolumes.Copy() }

// Potential returns a copy of the electric potential field.
func (m *Mesh) Potential() *grid.Scalar { return m.phi.Copy() }

// Rho returns a copy of the charge density field.
func (m *Mesh) Rho() *grid.Scalar { return m.rho.Copy() }

// EField returns a copy of the electric field.
func (m *Mesh) EField() *grid.VecField { return m.ef.Copy() }

// SetPotential overwrites the potential field, e.g. when restarting from a
// snapshot. The field must match the mesh's shape.
func (m *Mesh) SetPotential(f *grid.Scalar) {
	if f.Dims != m.dims {
		panic(fmt.Sprintf(
			"Field shape %v does not match mesh shape %v.", f.Dims, m.dims,
		))
	}
	copy(m.phi.Data, f.Data)
}

// LogicalCoord maps a physical position to fractional grid-index units.
func (m *Mesh) LogicalCoord(pos geom.Vec) geom.Vec {
	rel := pos.Sub(m.origin)
	return geom.Vec{
		rel[0] / m.spacing[0], rel[1] / m.spacing[1], rel[2] / m.spacing[2],
	}
}

// EFieldAt interpolates the electric field at a logical coordinate.
func (m *Mesh) EFieldAt(lc geom.Vec) geom.Vec { return m.ef.Gather(lc) }

// PotentialAt interpolates the potential at a logical coordinate.
func (m *Mesh) PotentialAt(lc geom.Vec) float64 { return m.phi.Gather(lc) }

// NormalizeByVolume converts per-node deposited weight into a density by
// dividing through by the node volumes.
func (m *Mesh) NormalizeByVolume(f *grid.Scalar) { f.DivFieldSelf(m.nodeVolumes) }

// ComputeChargeDensity clears the charge density field and accumulates the
// contribution of every source onto it.
func (m *Mesh) ComputeChargeDensity(sources []Source) {
	m.rho.Clear()
	for _, s := range sources {
		s.AccumulateRho(m.rho)
	}
}

// computeNodeVolumes fills the node-volume field once at construction. A
// node's volume is the product of the cell spacings, halved on each axis
// where the node sits on the boundary, so corners carry 1/8 of a cell and
// the volumes sum to the volume of the box.
func (m *Mesh) computeNodeVolumes() {
	dims := m.dims
	for i := 0; i < dims[0]; i++ {
		for j := 0; j < dims[1]; j++ {
			for k := 0; k < dims[2]; k++ {
				vol := m.spacing[0] * m.spacing[1] * m.spacing[2]
				if i == 0 || i == dims[0]-1 {
					vol *= 0.5
				}
				if j == 0 || j == dims[1]-1 {
					vol *= 0.5
				}
				if k == 0 || k == dims[2]-1 {
					vol *= 0.5
				}
				m.nodeVolumes.Set(i, j, k, vol)
			}
		}
	}
}
