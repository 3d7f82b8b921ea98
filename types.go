package magfields

import (
	"fmt"
	"math"
	"strings"

	"github.com/kirbyh/mag-fields/integrator"
)

// DirectionPolicy selects how initial particle directions are drawn.
type DirectionPolicy int

const (
	// Isotropic draws directions uniformly over the full sphere.
	Isotropic DirectionPolicy = iota
	// Inward draws isotropically over the hemisphere facing the origin.
	Inward
	// Thresholded aims each particle at a point inside a sphere of radius
	// thresh * sampling around the origin, concentrating the draw on
	// particles that would have hit undeflected.
	Thresholded
	endDirectionPolicy
)

func (p DirectionPolicy) String() string {
	switch p {
	case Isotropic:
		return "Isotropic"
	case Inward:
		return "Inward"
	case Thresholded:
		return "Thresholded"
	}
	return fmt.Sprintf("DirectionPolicy(%d)", int(p))
}

// ParseDirectionPolicy converts a config string to a DirectionPolicy.
func ParseDirectionPolicy(s string) (DirectionPolicy, error) {
	for p := Isotropic; p < endDirectionPolicy; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("Unrecognized direction policy '%s'.", s)
}

// EnergyMode selects how initial kinetic energies are drawn.
type EnergyMode int

const (
	// FixedEnergy gives every particle the same kinetic energy.
	FixedEnergy EnergyMode = iota
	// PowerLawEnergy draws energies from dN/dE ~ E^index over
	// [EnergyMin, EnergyMax].
	PowerLawEnergy
	endEnergyMode
)

func (m EnergyMode) String() string {
	switch m {
	case FixedEnergy:
		return "Fixed"
	case PowerLawEnergy:
		return "PowerLaw"
	}
	return fmt.Sprintf("EnergyMode(%d)", int(m))
}

// ParseEnergyMode converts a config string to an EnergyMode.
func ParseEnergyMode(s string) (EnergyMode, error) {
	for m := FixedEnergy; m < endEnergyMode; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("Unrecognized energy mode '%s'.", s)
}

// Config enumerates every option of a Monte Carlo run with its default. It
// is validated once by CheckInit before any simulation work starts.
type Config struct {
	// N is the number of sampled particles.
	N int
	// Current is the coil current in amperes for the shielded pass.
	Current float64
	// Thresh is the radius of the protected sphere.
	Thresh float64
	// SphereRadius is the radius of the sampling sphere particles start on.
	SphereRadius float64

	Direction DirectionPolicy
	// Sampling scales the aim sphere of the Thresholded policy.
	Sampling float64

	EnergyMode EnergyMode
	// Energy is the kinetic energy in eV for FixedEnergy.
	Energy float64
	// EnergyMin, EnergyMax bound the PowerLawEnergy draw, in eV.
	EnergyMin, EnergyMax float64
	// EnergyIndex is the power-law exponent.
	EnergyIndex float64

	// Seed fixes the run's random stream when Seeded is true; otherwise
	// fresh entropy is drawn each invocation.
	Seed int64
	Seeded bool

	// GridSample replaces random start positions with a deterministic
	// lat/long grid, for reproducible low-N testing.
	GridSample bool

	Relativistic bool
	// Mass and Charge select the particle species, in SI units.
	Mass, Charge float64
	// B0 is the reference field used for Larmor normalization, in teslas.
	B0 float64

	// Workers caps the worker pool size. Zero means one worker per core.
	Workers int
}

// DefaultConfig returns a Config with every optional field at its default:
// 100 MeV relativistic protons sampled isotropically inward.
func DefaultConfig() *Config {
	return &Config{
		N: 1000,
		Current: 1e6,
		Thresh: 1,
		SphereRadius: 10,
		Direction: Inward,
		Sampling: 1,
		EnergyMode: FixedEnergy,
		Energy: 1e8,
		EnergyIndex: -2.7,
		Relativistic: true,
		Mass: integrator.ProtonMass,
		Charge: integrator.ElemCharge,
		B0: 1e-4,
	}
}

// CheckInit validates a Config.
func (cfg *Config) CheckInit() error {
	if cfg.N < 0 {
		return fmt.Errorf("Particle count is %d, but must be >= 0.", cfg.N)
	}
	if cfg.Thresh <= 0 {
		return fmt.Errorf(
			"Protection threshold is %g, but must be positive.", cfg.Thresh,
		)
	}
	if cfg.SphereRadius <= cfg.Thresh {
		return fmt.Errorf(
			"Sampling sphere radius %g must exceed the protection "+
				"threshold %g.", cfg.SphereRadius, cfg.Thresh,
		)
	}
	if cfg.Direction < 0 || cfg.Direction >= endDirectionPolicy {
		return fmt.Errorf("Unrecognized direction policy %d.", cfg.Direction)
	}
	if cfg.Direction == Thresholded {
		if cfg.Sampling <= 0 {
			return fmt.Errorf(
				"Sampling multiplier is %g, but must be positive.", cfg.Sampling,
			)
		}
		if aim := cfg.Thresh * cfg.Sampling; aim >= cfg.SphereRadius {
			return fmt.Errorf(
				"Aim sphere radius %g (thresh * sampling) must be smaller "+
					"than the sampling sphere radius %g.",
				aim, cfg.SphereRadius,
			)
		}
	}
	switch cfg.EnergyMode {
	case FixedEnergy:
		if cfg.Energy <= 0 {
			return fmt.Errorf(
				"Kinetic energy is %g eV, but must be positive.", cfg.Energy,
			)
		}
	case PowerLawEnergy:
		if cfg.EnergyMin <= 0 || cfg.EnergyMax <= cfg.EnergyMin {
			return fmt.Errorf(
				"Power-law energy range [%g, %g] eV is invalid.",
				cfg.EnergyMin, cfg.EnergyMax,
			)
		}
	default:
		return fmt.Errorf("Unrecognized energy mode %d.", cfg.EnergyMode)
	}
	if cfg.Mass <= 0 || cfg.Charge == 0 {
		return fmt.Errorf(
			"Particle species has mass %g kg and charge %g C, but needs "+
				"positive mass and non-zero charge.", cfg.Mass, cfg.Charge,
		)
	}
	if cfg.B0 <= 0 {
		return fmt.Errorf(
			"Reference field is %g T, but must be positive.", cfg.B0,
		)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("Worker count is %d, but must be >= 0.", cfg.Workers)
	}
	return nil
}

// RunStatistics aggregates the paired shielded/unshielded outcomes of a
// Monte Carlo run.
//
// DeflectionRate = (Deflected - Parasitic) / BaselineHits.
// ParasiticRate = Parasitic / (Deflected + eps).
type RunStatistics struct {
	DeflectionRate, ParasiticRate float64

	// BaselineHits counts particles that hit with the field off. Deflected
	// counts baseline hits converted to misses by the field; Parasitic
	// counts baseline misses converted to hits. Failed counts particles
	// whose integration did not converge; they are excluded from the rates.
	BaselineHits, Deflected, Parasitic, Failed int
	N int
}

// Defined reports whether the rates are meaningful. They are not when no
// particle hit the unshielded target (including the N = 0 case).
func (st *RunStatistics) Defined() bool {
	return !math.IsNaN(st.DeflectionRate)
}
