/*package species manages homogeneous ensembles of macroparticles: loading,
the leapfrog push, and number-density deposition. A Species never stores the
mesh it runs on; every operation that needs one takes it as a read-only
parameter.*/
package species

import (
	"fmt"
	"math/rand"

	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/grid"
	"github.com/phil-mansfield/gopic/mesh"
)

// Particle is a macroparticle: a single simulated point standing in for
// Weight real particles.
type Particle struct {
	X, V   geom.Vec
	Weight float64
}

// Species is an ensemble of particles sharing a mass, charge, and name,
// together with the number density they deposit on the grid.
type Species struct {
	name         string
	mass, charge float64
	density      *grid.Scalar
	parts        []Particle
}

// New creates an empty species. Charge may take any sign or be zero, but a
// non-positive mass is a configuration error and panics.
func New(name string, mass, charge float64, dims grid.Dims) *Species {
	if mass <= 0 {
		panic(fmt.Sprintf("Species %s has non-positive mass %g.", name, mass))
	}
	return &Species{
		name:    name,
		mass:    mass,
		charge:  charge,
		density: grid.NewScalar(dims),
	}
}

// Name returns the species' name.
func (s *Species) Name() string { return s.name }

// Mass returns the mass of a single real particle in kg.
func (s *Species) Mass() float64 { return s.mass }

// Charge returns the charge of a single real particle in C.
func (s *Species) Charge() float64 { return s.charge }

// Len returns the number of macroparticles.
func (s *Species) Len() int { return len(s.parts) }

// Particles returns the live particle slice. Callers may read and modify the
// particles in place but must not grow the slice: new particles go through
// Add so their velocities stay synchronized with the leapfrog scheme.
func (s *Species) Particles() []Particle { return s.parts }

// Density returns a copy of the species' number density field.
func (s *Species) Density() *grid.Scalar { return s.density.Copy() }

// AccumulateRho implements mesh.Source by adding charge times number density
// into rho. Neutral species deposit nothing and are skipped.
func (s *Species) AccumulateRho(rho *grid.Scalar) {
	if s.charge == 0 {
		return
	}
	rho.AddScaledSelf(s.density, s.charge)
}

// Add inserts a macroparticle, rewinding its velocity by half a timestep.
// The leapfrog scheme keeps velocities at half-integer timesteps and
// positions at integer ones, so a particle created with both defined at the
// same instant must be shifted back before its first push.
func (s *Species) Add(p Particle, m *mesh.Mesh) {
	ef := m.EFieldAt(m.LogicalCoord(p.X))
	p.V = p.V.Sub(ef.Scale(0.5 * s.charge / s.mass * m.Timestep()))
	s.parts = append(s.parts, p)
}

// LoadBox fills the box from origin to corner with count macroparticles
// placed uniformly at random and at rest, weighted so the box carries the
// number density n0.
func (s *Species) LoadBox(
	rng *rand.Rand, origin, corner geom.Vec, n0 float64, count int,
	m *mesh.Mesh,
) {
	span := corner.Sub(origin)
	weight := n0 * span[0] * span[1] * span[2] / float64(count)

	for i := 0; i < count; i++ {
		x := geom.Vec{
			origin[0] + rng.Float64()*span[0],
			origin[1] + rng.Float64()*span[1],
			origin[2] + rng.Float64()*span[2],
		}
		s.Add(Particle{X: x, Weight: weight}, m)
	}
}

// LoadBoxQuiet fills the box from origin to corner with macroparticles on a
// regular lattice of the given node counts, weighted so the box carries the
// number density n0. The lattice's cells, not its nodes, set the
// per-particle weight; particles on a lattice face carry half weight per
// boundary axis so that tiled or repeated lattices do not double count, and
// particles on the maximum face are nudged inward so they never sit exactly
// on a grid boundary.
func (s *Species) LoadBoxQuiet(
	origin, corner geom.Vec, n0 float64, lattice [3]int, m *mesh.Mesh,
) {
	span := corner.Sub(origin)
	cells := (lattice[0] - 1) * (lattice[1] - 1) * (lattice[2] - 1)
	weight := n0 * span[0] * span[1] * span[2] / float64(cells)

	var dx [3]float64
	for d := 0; d < 3; d++ {
		dx[d] = span[d] / float64(lattice[d]-1)
	}

	for i := 0; i < lattice[0]; i++ {
		for j := 0; j < lattice[1]; j++ {
			for k := 0; k < lattice[2]; k++ {
				x := geom.Vec{
					origin[0] + float64(i)*dx[0],
					origin[1] + float64(j)*dx[1],
					origin[2] + float64(k)*dx[2],
				}

				w := weight
				idx := [3]int{i, j, k}
				for d := 0; d < 3; d++ {
					if idx[d] == lattice[d]-1 {
						x[d] -= 1e-4 * dx[d]
					}
					if idx[d] == 0 || idx[d] == lattice[d]-1 {
						w *= 0.5
					}
				}

				s.Add(Particle{X: x, Weight: w}, m)
			}
		}
	}
}

// Advance pushes every particle through one leapfrog step: gather the
// electric field at the particle, kick the velocity, drift the position,
// then reflect any particle that left the box back inside.
func (s *Species) Advance(m *mesh.Mesh) {
	dt := m.Timestep()
	qm := s.charge / s.mass

	for i := range s.parts {
		p := &s.parts[i]

		ef := m.EFieldAt(m.LogicalCoord(p.X))
		p.V = p.V.Add(ef.Scale(qm * dt))
		p.X = p.X.Add(p.V.Scale(dt))

		reflect(p, m)
	}
}

// reflect applies specular reflection per axis: the position mirrors about
// the wall plane and the velocity component flips sign, leaving the speed
// unchanged. This keeps every particle strictly inside the interpolatable
// domain.
func reflect(p *Particle, m *mesh.Mesh) {
	lc := m.LogicalCoord(p.X)
	origin, maxBound := m.Origin(), m.MaxBound()
	dims := m.Dims()

	for d := 0; d < 3; d++ {
		if lc[d] < 0 {
			p.X[d] = 2*origin[d] - p.X[d]
			p.V[d] = -p.V[d]
		} else if lc[d] >= float64(dims[d]-1) {
			p.X[d] = 2*maxBound[d] - p.X[d]
			p.V[d] = -p.V[d]
		}
	}
}

// ComputeNumberDensity recomputes the species' number density from the
// current particle positions: scatter every particle's weight onto the grid,
// then divide by the node volumes.
func (s *Species) ComputeNumberDensity(m *mesh.Mesh) {
	s.density.Clear()
	for i := range s.parts {
		s.density.Scatter(m.LogicalCoord(s.parts[i].X), s.parts[i].Weight)
	}
	m.NormalizeByVolume(s.density)
}
