/*package sim contains the simulation drivers. Each driver owns the mesh and
the species, chooses the iteration counts, and invokes the particle-in-cell
cycle: deposit charge, solve the potential, differentiate the field, push the
particles, and redeposit density.*/
package sim

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path"
	"time"

	"github.com/phil-mansfield/gopic/constants"
	"github.com/phil-mansfield/gopic/diag"
	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/grid"
	"github.com/phil-mansfield/gopic/io"
	"github.com/phil-mansfield/gopic/mesh"
	"github.com/phil-mansfield/gopic/species"
)

// GroundedBox runs the two-species plasma simulation: oxygen ions fill the
// whole grounded box and electrons fill the lower octant between the origin
// and the centroid. The electrons accelerate toward the ion cloud and slosh
// back and forth while the walls reflect anything that reaches them.
func GroundedBox(con *io.GroundedBoxConfig) error {
	if err := os.MkdirAll(con.Output, 0755); err != nil {
		return err
	}

	dims := grid.NewDims(con.Nodes, con.Nodes, con.Nodes)
	m := mesh.New(
		geom.Vec{con.OriginX, con.OriginY, con.OriginZ},
		geom.Vec{con.MaxX, con.MaxY, con.MaxZ},
		dims, con.Timestep,
	)

	// An initial solve on the empty box gives Add a valid electric field to
	// rewind the loaded particles against.
	m.SolvePotential(con.SolverIterations, con.Tolerance)
	m.ComputeEField()

	ions := species.New(
		"O+", 16*constants.AtomicMassUnit, constants.ElementaryCharge, dims,
	)
	electrons := species.New(
		"e-", constants.ElectronMass, -constants.ElementaryCharge, dims,
	)

	if con.QuietStart {
		nIon := con.IonLattice
		nEle := con.ElectronLattice
		ions.LoadBoxQuiet(
			m.Origin(), m.MaxBound(), con.NumberDensity,
			[3]int{nIon, nIon, nIon}, m,
		)
		electrons.LoadBoxQuiet(
			m.Origin(), m.Centroid(), con.NumberDensity,
			[3]int{nEle, nEle, nEle}, m,
		)
	} else {
		seed := con.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		ions.LoadBox(
			rng, m.Origin(), m.MaxBound(), con.NumberDensity, con.Ions, m,
		)
		electrons.LoadBox(
			rng, m.Origin(), m.Centroid(), con.NumberDensity, con.Electrons, m,
		)
	}

	sp := []*species.Species{ions, electrons}
	sources := []mesh.Source{ions, electrons}

	ions.ComputeNumberDensity(m)
	electrons.ComputeNumberDensity(m)

	log.Printf(
		"Loaded %d ion and %d electron macroparticles.",
		ions.Len(), electrons.Len(),
	)

	for step := 0; step < con.Steps; step++ {
		log.Printf("Iteration: %d", step)

		m.ComputeChargeDensity(sources)
		m.SolvePotential(con.SolverIterations, con.Tolerance)
		m.ComputeEField()

		for _, s := range sp {
			s.Advance(m)
			s.ComputeNumberDensity(m)
		}

		if step%con.DumpRate == 0 || step == con.Steps-1 {
			logEnergies(m, sp)
			if err := dump(con, m, sp, step); err != nil {
				return err
			}
		}
	}

	return nil
}

// logEnergies logs the total energy and velocity spread of every species.
func logEnergies(m *mesh.Mesh, sp []*species.Species) {
	for _, s := range sp {
		ke, pe := diag.Energy(s, m)
		_, std := diag.VelocityMoments(s)
		log.Printf(
			"%s: KE = %.6g J, PE = %.6g J, v_std = (%.4g, %.4g, %.4g) m/s",
			s.Name(), ke, pe, std[0], std[1], std[2],
		)
	}
}

// dump writes the configured output formats for one timestep.
func dump(
	con *io.GroundedBoxConfig, m *mesh.Mesh, sp []*species.Species, step int,
) error {
	if con.WriteVTK {
		if err := io.WriteVTK(con.Output, step, m, sp); err != nil {
			return err
		}
	}
	if con.WriteGrid {
		fname := path.Join(con.Output, fmt.Sprintf("field_%05d.grid", step))
		if err := writeGridSnapshot(fname, m, sp, step); err != nil {
			return err
		}
	}
	return nil
}

// writeGridSnapshot packs the mesh and species fields into compressed
// blocks.
func writeGridSnapshot(
	fname string, m *mesh.Mesh, sp []*species.Species, step int,
) error {
	dims := m.Dims()
	hd := &io.GridHeader{
		Nodes:    [3]int64{int64(dims[0]), int64(dims[1]), int64(dims[2])},
		Origin:   [3]float64(m.Origin()),
		MaxBound: [3]float64(m.MaxBound()),
		Spacing:  m.Spacing(),
		Step:     int64(step),
		Time:     float64(step) * m.Timestep(),
	}

	blocks := []io.GridBlock{
		{"NodeVol", 1, m.NodeVolumes().Data},
		{"phi", 1, m.Potential().Data},
		{"rho", 1, m.Rho().Data},
	}
	for _, s := range sp {
		blocks = append(blocks, io.GridBlock{s.Name(), 1, s.Density().Data})
	}

	ef := m.EField()
	efData := make([]float64, 3*len(ef.Data))
	for i, v := range ef.Data {
		efData[3*i], efData[3*i+1], efData[3*i+2] = v[0], v[1], v[2]
	}
	blocks = append(blocks, io.GridBlock{"ef", 3, efData})

	return io.WriteGrid(fname, hd, blocks)
}
