package magfields

import (
	"math"
	"math/rand"

	"github.com/kirbyh/mag-fields/geom"
)

// splitmix64 finalization constants.
const (
	seedGamma = 0x9E3779B97F4A7C15
	mixA = 0xBF58476D1CE4E5B9
	mixB = 0x94D049BB133111EB
)

// particleSeed derives a reproducible per-particle seed from the run seed
// and the particle index. Parallel and sequential schedules draw identical
// per-particle streams, so worker count never changes the statistics.
func particleSeed(runSeed int64, i int) int64 {
	z := uint64(runSeed) + uint64(i+1)*seedGamma
	z = (z ^ (z >> 30)) * mixA
	z = (z ^ (z >> 27)) * mixB
	return int64(z ^ (z >> 31))
}

// SpherePoint draws a point uniformly on the sphere of radius r by
// inverse-CDF polar sampling.
func SpherePoint(rng *rand.Rand, r float64) geom.Vec {
	cosTh := 1 - 2*rng.Float64()
	sinTh := math.Sqrt(1 - cosTh*cosTh)
	phi := 2 * math.Pi * rng.Float64()

	return geom.Vec{
		r * sinTh * math.Cos(phi),
		r * sinTh * math.Sin(phi),
		r * cosTh,
	}
}

// gridPosition places particle i of n on a deterministic lat/long grid over
// the sphere of radius r.
func gridPosition(i, n int, r float64) geom.Vec {
	nLat := int(math.Round(math.Sqrt(float64(n))))
	if nLat < 1 {
		nLat = 1
	}
	nLon := (n + nLat - 1) / nLat

	th := math.Pi * (float64(i/nLon) + 0.5) / float64(nLat)
	phi := 2 * math.Pi * float64(i%nLon) / float64(nLon)

	return geom.Vec{
		r * math.Sin(th) * math.Cos(phi),
		r * math.Sin(th) * math.Sin(phi),
		r * math.Cos(th),
	}
}

// sampleDirection draws a unit initial direction for a particle at pos.
func sampleDirection(
	rng *rand.Rand, policy DirectionPolicy, pos *geom.Vec,
	thresh, sampling float64,
) geom.Vec {
	switch policy {
	case Inward:
		dir := SpherePoint(rng, 1)
		if dir.Dot(pos) > 0 {
			dir.Scale(-1, &dir)
		}
		return dir

	case Thresholded:
		// Aim at a point uniform in the ball of radius thresh * sampling.
		target := SpherePoint(rng, 1)
		target.Scale(
			thresh*sampling*math.Cbrt(rng.Float64()), &target,
		)

		var dir geom.Vec
		target.Sub(pos, &dir)
		dir.Scale(1/dir.Norm(), &dir)
		return dir

	default:
		return SpherePoint(rng, 1)
	}
}

// sampleEnergy draws a kinetic energy in eV.
func sampleEnergy(rng *rand.Rand, cfg *Config) float64 {
	if cfg.EnergyMode == FixedEnergy {
		return cfg.Energy
	}

	u := rng.Float64()
	a := cfg.EnergyIndex
	if a == -1 {
		return cfg.EnergyMin * math.Pow(cfg.EnergyMax/cfg.EnergyMin, u)
	}

	lo := math.Pow(cfg.EnergyMin, a+1)
	hi := math.Pow(cfg.EnergyMax, a+1)
	return math.Pow(lo+u*(hi-lo), 1/(a+1))
}
