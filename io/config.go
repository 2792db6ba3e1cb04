/*package io handles the simulation's file surface: gcfg configuration
files, VTK ImageData dumps, compressed binary grid snapshots, and the
particle trace.*/
package io

const (
	ExampleGroundedBoxFile = `[GroundedBox]

#######################
# Required Parameters #
#######################

# Directory which VTK dumps and grid snapshots will be written to.
Output = path/to/output/dir

# Number of mesh nodes along each axis. Must be at least 3. Choose it high
# enough that the largest cell is smaller than the Debye length, or the
# electrostatic interactions between particles won't be resolved.
Nodes = 21

# Corners of the simulation box in m.
OriginX = -0.1
OriginY = -0.1
OriginZ = -0.1
MaxX = 0.1
MaxY = 0.1
MaxZ = 0.2

# Simulation timestep in s and the number of timesteps to run.
Timestep = 2e-10
Steps = 10000

# Target number density of each plasma species in m^-3. Ions fill the whole
# box and electrons fill the lower octant between the origin and the
# centroid.
NumberDensity = 1e11

#######################
# Optional Parameters #
#######################

# Cap on Gauss-Seidel sweeps per solve and the RMS residual below which the
# solver reports convergence.
# SolverIterations = 4000
# Tolerance = 1e-6

# QuietStart loads particles on a deterministic lattice instead of uniformly
# at random. IonLattice and ElectronLattice set the lattice node counts per
# axis; Ions and Electrons set the macroparticle counts for random loading.
# QuietStart = false
# Ions = 80000
# Electrons = 10000
# IonLattice = 41
# ElectronLattice = 21

# Seed for random loading. 0 seeds from the current time.
# Seed = 0

# Number of timesteps between output dumps.
# DumpRate = 100

# WriteVTK controls the ASCII .vti dumps and WriteGrid the compressed binary
# .grid snapshots.
# WriteVTK = true
# WriteGrid = false

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`

	ExampleSingleParticleFile = `[SingleParticle]

#######################
# Required Parameters #
#######################

# Directory which the trace file will be written to.
Output = path/to/output/dir

# Number of mesh nodes along each axis. Must be at least 3.
Nodes = 21

# Corners of the simulation box in m.
OriginX = 0.0
OriginY = 0.0
OriginZ = 0.0
MaxX = 0.1
MaxY = 0.1
MaxZ = 0.1

# Simulation timestep in s and the number of timesteps to run.
Timestep = 1e-10
Steps = 5000

#######################
# Optional Parameters #
#######################

# Uniform background charge number density in m^-3. The single electron
# oscillates in the potential well this background creates.
# BackgroundDensity = 1e12

# The electron starts this many cells away from the origin along the x axis,
# centered on the other two axes.
# StartOffset = 4

# Cap on Gauss-Seidel sweeps and the convergence tolerance for the one
# potential solve.
# SolverIterations = 4000
# Tolerance = 1e-6

# Number of timesteps between log lines.
# LogRate = 1000

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out`
)

// SharedConfig holds the parameters common to every simulation mode.
type SharedConfig struct {
	// Required
	Output string
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// GroundedBoxConfig configures the two-species plasma simulation in a
// grounded box.
type GroundedBoxConfig struct {
	SharedConfig

	// Required
	Nodes                      int
	OriginX, OriginY, OriginZ  float64
	MaxX, MaxY, MaxZ           float64
	Timestep                   float64
	Steps                      int
	NumberDensity              float64

	// Optional
	SolverIterations            int
	Tolerance                   float64
	QuietStart                  bool
	Ions, Electrons             int
	IonLattice, ElectronLattice int
	Seed                        int64
	DumpRate                    int
	WriteVTK, WriteGrid         bool
}

type GroundedBoxWrapper struct {
	GroundedBox GroundedBoxConfig
}

func DefaultGroundedBoxWrapper() *GroundedBoxWrapper {
	con := GroundedBoxConfig{}
	con.SolverIterations = 4000
	con.Tolerance = 1e-6
	con.Ions = 80000
	con.Electrons = 10000
	con.IonLattice = 41
	con.ElectronLattice = 21
	con.DumpRate = 100
	con.WriteVTK = true
	return &GroundedBoxWrapper{con}
}

func (con *GroundedBoxConfig) ValidNodes() bool {
	return con.Nodes >= 3
}
func (con *GroundedBoxConfig) ValidBounds() bool {
	return con.MaxX > con.OriginX &&
		con.MaxY > con.OriginY &&
		con.MaxZ > con.OriginZ
}
func (con *GroundedBoxConfig) ValidTimestep() bool {
	return con.Timestep > 0
}
func (con *GroundedBoxConfig) ValidSteps() bool {
	return con.Steps > 0
}
func (con *GroundedBoxConfig) ValidNumberDensity() bool {
	return con.NumberDensity > 0
}
func (con *GroundedBoxConfig) ValidSolverIterations() bool {
	return con.SolverIterations > 0
}
func (con *GroundedBoxConfig) ValidTolerance() bool {
	return con.Tolerance > 0
}
func (con *GroundedBoxConfig) ValidLoading() bool {
	if con.QuietStart {
		return con.IonLattice >= 2 && con.ElectronLattice >= 2
	}
	return con.Ions > 0 && con.Electrons > 0
}
func (con *GroundedBoxConfig) ValidDumpRate() bool {
	return con.DumpRate > 0
}

// SingleParticleConfig configures the single-electron diagnostic run.
type SingleParticleConfig struct {
	SharedConfig

	// Required
	Nodes                     int
	OriginX, OriginY, OriginZ float64
	MaxX, MaxY, MaxZ          float64
	Timestep                  float64
	Steps                     int

	// Optional
	BackgroundDensity float64
	StartOffset       float64
	SolverIterations  int
	Tolerance         float64
	LogRate           int
}

type SingleParticleWrapper struct {
	SingleParticle SingleParticleConfig
}

func DefaultSingleParticleWrapper() *SingleParticleWrapper {
	con := SingleParticleConfig{}
	con.BackgroundDensity = 1e12
	con.StartOffset = 4
	con.SolverIterations = 4000
	con.Tolerance = 1e-6
	con.LogRate = 1000
	return &SingleParticleWrapper{con}
}

func (con *SingleParticleConfig) ValidNodes() bool {
	return con.Nodes >= 3
}
func (con *SingleParticleConfig) ValidBounds() bool {
	return con.MaxX > con.OriginX &&
		con.MaxY > con.OriginY &&
		con.MaxZ > con.OriginZ
}
func (con *SingleParticleConfig) ValidTimestep() bool {
	return con.Timestep > 0
}
func (con *SingleParticleConfig) ValidSteps() bool {
	return con.Steps > 0
}
func (con *SingleParticleConfig) ValidBackgroundDensity() bool {
	return con.BackgroundDensity > 0
}
func (con *SingleParticleConfig) ValidStartOffset() bool {
	return con.StartOffset > 0 && con.StartOffset < float64(con.Nodes-1)
}
func (con *SingleParticleConfig) ValidSolverIterations() bool {
	return con.SolverIterations > 0
}
func (con *SingleParticleConfig) ValidTolerance() bool {
	return con.Tolerance > 0
}
func (con *SingleParticleConfig) ValidLogRate() bool {
	return con.LogRate > 0
}
