/*package diag computes runtime diagnostics over particle ensembles. Nothing
here feeds back into the simulation: every function reads the mesh and
species and returns numbers for logging or tracing.*/
package diag

import (
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/gopic/mesh"
	"github.com/phil-mansfield/gopic/species"
)

// Energy returns the total kinetic and potential energy of a species in J,
// weighted by the macroparticle weights. The potential energy uses the
// mesh's current potential field.
func Energy(s *species.Species, m *mesh.Mesh) (kinetic, potential float64) {
	parts := s.Particles()
	mass, charge := s.Mass(), s.Charge()

	for i := range parts {
		p := &parts[i]
		kinetic += 0.5 * mass * p.Weight * p.V.Dot(p.V)
		potential += charge * p.Weight * m.PotentialAt(m.LogicalCoord(p.X))
	}
	return kinetic, potential
}

// VelocityMoments returns the per-axis mean and standard deviation of the
// particle velocities. The moments are unweighted: macroparticles within a
// species share a weight up to boundary corrections, and the thermal spread
// is what these numbers are read for.
func VelocityMoments(s *species.Species) (mean, std [3]float64) {
	parts := s.Particles()
	if len(parts) < 2 {
		return mean, std
	}

	vs := make([]float64, len(parts))
	for d := 0; d < 3; d++ {
		for i := range parts {
			vs[i] = parts[i].V[d]
		}
		mean[d], std[d] = stat.MeanStdDev(vs, nil)
	}
	return mean, std
}
