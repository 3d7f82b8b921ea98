/*package io reads run configuration files and cross-section point tables for
the shield simulator.
*/
package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/kirbyh/mag-fields/geom"
	"github.com/kirbyh/mag-fields/integrator"
	magfields "github.com/kirbyh/mag-fields"
)

const ExampleMonteCarloFile = `[CoilArray]

#######################
# Required Parameters #
#######################

# Number of coils in the toroidal array. Multiples of 4 preserve the array's
# symmetry; other counts are allowed but warned about.
Coils = 8
# Major radius of the array in meters.
Radius = 5.6

# The coil cross-section. Either point to a two-column file of boundary
# points (closed polyline, first and last point equal),
# CrossSectionFile = path/to/points.txt
# or generate a racetrack with the given straight length, cap radius, and
# boundary point count.
RacetrackLength = 2.0
RacetrackRadius = 1.0
Points = 33

#######################
# Optional Parameters #
#######################

# Alternating flips every other coil by half a turn, giving the "pumpkin"
# field topology. Default is false.
# Alternating = true

[MonteCarlo]

#######################
# Required Parameters #
#######################

# Number of sampled particles.
Particles = 1000
# Coil current in amperes for the shielded pass.
Current = 4e6
# Radius of the protected sphere in meters.
Thresh = 1.0
# Radius of the sphere particles are sampled on, in meters.
SphereRadius = 10.0

#######################
# Optional Parameters #
#######################

# Direction sampling policy: Isotropic, Inward, or Thresholded.
# Default is Inward.
# Direction = Thresholded
# Aim-sphere multiplier for the Thresholded policy. Default is 1.
# Sampling = 1.5

# Energy sampling: Fixed or PowerLaw. Default is Fixed at 1e8 eV.
# EnergyMode = PowerLaw
# Energy = 1e8
# EnergyMin = 1e6
# EnergyMax = 1e10
# EnergyIndex = -2.7

# Seed >= 0 makes runs exactly reproducible. Negative (the default) draws
# fresh entropy each invocation.
# Seed = 10

# Particle species: Proton or Electron. Default is Proton.
# Species = Proton

# Integrate non-relativistic equations of motion instead. Default is false.
# NonRelativistic = true

# Reference field in teslas for the Larmor normalization. Default is 1e-4.
# B0 = 1e-4

# Deterministic lat/long start positions instead of random ones.
# GridSample = true

# Worker pool size. Default is one worker per core.
# Workers = 4`

const ExampleForcesFile = `[CoilArray]

# See the MonteCarlo example for the full [CoilArray] reference.
Coils = 8
Radius = 5.6
RacetrackLength = 2.0
RacetrackRadius = 1.0
Points = 33

[Forces]

# Coil current in amperes.
Current = 4e6

# Exclude each coil's own panels when computing the force on it, isolating
# inter-coil forces from self-field hoop stress. Default is false.
# OmitSelfCoil = true`

// CoilArrayConfig is the [CoilArray] section shared by every mode.
type CoilArrayConfig struct {
	// Required
	Coils int
	Radius float64

	// One of the two cross-section sources is required.
	CrossSectionFile string
	RacetrackLength, RacetrackRadius float64
	Points int

	// Optional
	Alternating bool
}

func (con *CoilArrayConfig) CheckInit() error {
	if con.Coils <= 0 {
		return fmt.Errorf(
			"Need to specify a positive coil count, got %d.", con.Coils,
		)
	}
	if con.Radius <= 0 {
		return fmt.Errorf(
			"Need to specify a positive array radius, got %g.", con.Radius,
		)
	}

	generated := con.RacetrackRadius != 0 || con.RacetrackLength != 0 ||
		con.Points != 0
	if con.CrossSectionFile == "" && !generated {
		return fmt.Errorf(
			"Need either CrossSectionFile or racetrack parameters in " +
				"[CoilArray].",
		)
	}
	if con.CrossSectionFile != "" && generated {
		return fmt.Errorf(
			"CrossSectionFile and racetrack parameters are mutually " +
				"exclusive in [CoilArray].",
		)
	}
	if generated && con.Points < 3 {
		return fmt.Errorf(
			"Racetrack cross-sections need at least 3 points, got %d.",
			con.Points,
		)
	}
	return nil
}

// Build reads or generates the cross-section and constructs the coil array.
func (con *CoilArrayConfig) Build() (*geom.CoilArray, error) {
	var (
		cross []geom.Vec2
		err error
	)
	if con.CrossSectionFile != "" {
		cross, err = ReadCrossSection(con.CrossSectionFile)
	} else {
		cross, err = geom.RacetrackCrossSection(
			con.RacetrackLength, con.RacetrackRadius, con.Points,
		)
	}
	if err != nil {
		return nil, err
	}

	return geom.BuildCoilArray(cross, con.Coils, con.Radius, con.Alternating)
}

// MonteCarloConfig is the [MonteCarlo] section.
type MonteCarloConfig struct {
	// Required
	Particles int
	Current float64
	Thresh float64
	SphereRadius float64

	// Optional
	Direction string
	Sampling float64
	EnergyMode string
	Energy float64
	EnergyMin, EnergyMax float64
	EnergyIndex float64
	Seed int64
	Species string
	NonRelativistic bool
	B0 float64
	GridSample bool
	Workers int
}

// Convert translates the parsed section into the engine's validated Config.
func (con *MonteCarloConfig) Convert() (*magfields.Config, error) {
	cfg := magfields.DefaultConfig()
	cfg.N = con.Particles
	cfg.Current = con.Current
	cfg.Thresh = con.Thresh
	cfg.SphereRadius = con.SphereRadius
	cfg.Relativistic = !con.NonRelativistic
	cfg.GridSample = con.GridSample
	cfg.Workers = con.Workers

	var err error
	if con.Direction != "" {
		cfg.Direction, err = magfields.ParseDirectionPolicy(con.Direction)
		if err != nil {
			return nil, err
		}
	}
	if con.Sampling != 0 {
		cfg.Sampling = con.Sampling
	}

	if con.EnergyMode != "" {
		cfg.EnergyMode, err = magfields.ParseEnergyMode(con.EnergyMode)
		if err != nil {
			return nil, err
		}
	}
	if con.Energy != 0 {
		cfg.Energy = con.Energy
	}
	cfg.EnergyMin, cfg.EnergyMax = con.EnergyMin, con.EnergyMax
	if con.EnergyIndex != 0 {
		cfg.EnergyIndex = con.EnergyIndex
	}

	if con.Seed >= 0 {
		cfg.Seed, cfg.Seeded = con.Seed, true
	}

	switch con.Species {
	case "", "Proton", "proton":
		cfg.Mass, cfg.Charge = integrator.ProtonMass, integrator.ElemCharge
	case "Electron", "electron":
		cfg.Mass, cfg.Charge = integrator.ElectronMass, -integrator.ElemCharge
	default:
		return nil, fmt.Errorf("Unrecognized species '%s'.", con.Species)
	}

	if con.B0 != 0 {
		cfg.B0 = con.B0
	}

	return cfg, cfg.CheckInit()
}

// ForcesConfig is the [Forces] section.
type ForcesConfig struct {
	// Required
	Current float64

	// Optional
	OmitSelfCoil bool
}

func (con *ForcesConfig) CheckInit() error {
	if con.Current == 0 {
		return fmt.Errorf("Need to specify a non-zero current in [Forces].")
	}
	return nil
}

// MonteCarloWrapper is the top-level structure of a -MonteCarlo config file.
type MonteCarloWrapper struct {
	CoilArray CoilArrayConfig
	MonteCarlo MonteCarloConfig
}

// DefaultMonteCarloWrapper sets the defaults gcfg cannot express.
func DefaultMonteCarloWrapper() *MonteCarloWrapper {
	wrap := &MonteCarloWrapper{}
	wrap.MonteCarlo.Seed = -1
	return wrap
}

// ForcesWrapper is the top-level structure of a -Forces config file.
type ForcesWrapper struct {
	CoilArray CoilArrayConfig
	Forces ForcesConfig
}

func DefaultForcesWrapper() *ForcesWrapper {
	return &ForcesWrapper{}
}

// ReadMonteCarloConfig parses and validates a -MonteCarlo config file.
func ReadMonteCarloConfig(fname string) (*MonteCarloWrapper, error) {
	wrap := DefaultMonteCarloWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CoilArray.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// ReadForcesConfig parses and validates a -Forces config file.
func ReadForcesConfig(fname string) (*ForcesWrapper, error) {
	wrap := DefaultForcesWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CoilArray.CheckInit(); err != nil {
		return nil, err
	}
	if err := wrap.Forces.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}
