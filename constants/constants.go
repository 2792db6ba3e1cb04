/*package constants contains the physical constants consumed by the field
solver and by species setup. They are inputs to the simulation, not quantities
it computes.*/
package constants

// All values are in SI units.
const (
	// AtomicMassUnit is the unified atomic mass unit in kg.
	AtomicMassUnit = 1.660538921e-27

	// ElementaryCharge is the charge of a proton in C.
	ElementaryCharge = 1.602176565e-19

	// ElectronMass is the rest mass of an electron in kg.
	ElectronMass = 9.10938215e-31

	// Permittivity is the dielectric permittivity of the vacuum in F/m.
	Permittivity = 8.85418782e-12
)
