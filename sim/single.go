package sim

import (
	"log"
	"os"
	"path"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gopic/constants"
	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/grid"
	"github.com/phil-mansfield/gopic/io"
	"github.com/phil-mansfield/gopic/mesh"
	"github.com/phil-mansfield/gopic/species"
)

// uniformSource is a fixed charge density field standing in for an immobile
// ion background. It implements mesh.Source.
type uniformSource struct {
	rho *grid.Scalar
}

func (u uniformSource) AccumulateRho(rho *grid.Scalar) {
	rho.AddScaledSelf(u.rho, 1)
}

// SingleParticle traces a single electron oscillating in the potential well
// created by a uniform positive background inside the grounded box. The
// fields are solved once and held static: one electron doesn't feed back on
// the mesh measurably, and a static well makes the energy trace easy to
// check against theory.
func SingleParticle(con *io.SingleParticleConfig) error {
	if err := os.MkdirAll(con.Output, 0755); err != nil {
		return err
	}

	dims := grid.NewDims(con.Nodes, con.Nodes, con.Nodes)
	m := mesh.New(
		geom.Vec{con.OriginX, con.OriginY, con.OriginZ},
		geom.Vec{con.MaxX, con.MaxY, con.MaxZ},
		dims, con.Timestep,
	)

	bg := grid.NewScalar(dims).Add(
		con.BackgroundDensity * constants.ElementaryCharge,
	)
	m.ComputeChargeDensity([]mesh.Source{uniformSource{bg}})
	m.SolvePotential(con.SolverIterations, con.Tolerance)
	m.ComputeEField()

	// The well's peak sets the zero point of the potential energy, so the
	// trace's total energy is negative for a trapped particle.
	phi := m.Potential()
	phiMax := floats.Max(phi.Data)

	electron := species.New(
		"e-", constants.ElectronMass, -constants.ElementaryCharge, dims,
	)
	start := m.Centroid()
	start[0] = m.Origin()[0] + con.StartOffset*m.Spacing()[0]
	electron.Add(species.Particle{X: start, Weight: 1}, m)

	tw, err := io.CreateTrace(path.Join(con.Output, "trace.txt"))
	if err != nil {
		return err
	}
	defer tw.Close()

	dt := m.Timestep()
	mass, charge := electron.Mass(), electron.Charge()
	p := &electron.Particles()[0]

	for ts := 1; ts <= con.Steps; ts++ {
		prev := p.X
		electron.Advance(m)

		// The leapfrog velocity sits half a step behind the position, so
		// the potential is sampled at the midpoint of the step to line the
		// two energies up in time.
		mid := prev.Add(p.X).Scale(0.5)
		phiMid := phi.Gather(m.LogicalCoord(mid))

		// Both energies are reported in eV.
		kinetic := 0.5 * mass * p.V.Dot(p.V) / constants.ElementaryCharge
		potential := charge * (phiMid - phiMax) / constants.ElementaryCharge

		tw.Append(float64(ts)*dt, p, kinetic, potential)

		if ts == 1 || ts%con.LogRate == 0 {
			log.Printf(
				"ts: %d, x: %v, v: %v, ke: %g eV, pe: %g eV",
				ts, p.X, p.V, kinetic, potential,
			)
		}
	}

	return nil
}
