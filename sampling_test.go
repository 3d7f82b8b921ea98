package magfields

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kirbyh/mag-fields/geom"
)

func TestSpherePointUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	var sum geom.Vec
	for i := 0; i < 2000; i++ {
		p := SpherePoint(rng, 3)
		if r := p.Norm(); math.Abs(r-3) > 1e-12 {
			t.Fatalf("sample %d at radius %g, want 3", i, r)
		}
		sum.Add(&p, &sum)
	}

	// Uniform samples average toward the center.
	sum.Scale(1.0/2000, &sum)
	if sum.Norm() > 0.2 {
		t.Errorf("mean position %v too far from origin for uniform sampling", sum)
	}
}

func TestGridPositionDeterministic(t *testing.T) {
	for i := 0; i < 25; i++ {
		p1 := gridPosition(i, 25, 2)
		p2 := gridPosition(i, 25, 2)
		if p1 != p2 {
			t.Errorf("grid position %d not deterministic: %v != %v", i, p1, p2)
		}
		if r := p1.Norm(); math.Abs(r-2) > 1e-12 {
			t.Errorf("grid position %d at radius %g, want 2", i, r)
		}
	}
}

func TestSampleDirectionPolicies(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pos := geom.Vec{0, 0, 5}

	for i := 0; i < 500; i++ {
		dir := sampleDirection(rng, Inward, &pos, 1, 1)
		if math.Abs(dir.Norm()-1) > 1e-12 {
			t.Fatalf("inward direction not unit: %g", dir.Norm())
		}
		if dir.Dot(&pos) > 0 {
			t.Fatalf("inward direction %v points away from origin", dir)
		}
	}

	// Thresholded directions must aim within the scaled target sphere: the
	// ray from pos must pass within thresh * sampling of the origin.
	for i := 0; i < 500; i++ {
		dir := sampleDirection(rng, Thresholded, &pos, 1, 2)
		t0 := -pos.Dot(&dir)
		var closest geom.Vec
		dir.Scale(t0, &closest)
		closest.Add(&pos, &closest)
		if closest.Norm() > 2+1e-12 {
			t.Fatalf(
				"thresholded ray misses the aim sphere by %g", closest.Norm(),
			)
		}
	}
}

func TestSampleEnergy(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	cfg := DefaultConfig()
	cfg.EnergyMode = FixedEnergy
	cfg.Energy = 5e7
	if e := sampleEnergy(rng, cfg); e != 5e7 {
		t.Errorf("fixed energy draw gave %g", e)
	}

	cfg.EnergyMode = PowerLawEnergy
	cfg.EnergyMin, cfg.EnergyMax = 1e6, 1e9
	for _, index := range []float64{-2.7, -1, 0.5} {
		cfg.EnergyIndex = index
		for i := 0; i < 1000; i++ {
			e := sampleEnergy(rng, cfg)
			if e < cfg.EnergyMin || e > cfg.EnergyMax {
				t.Fatalf(
					"index %g: energy %g outside [%g, %g]",
					index, e, cfg.EnergyMin, cfg.EnergyMax,
				)
			}
		}
	}
}

func TestParticleSeedsDistinct(t *testing.T) {
	seen := map[int64]int{}
	for i := 0; i < 10000; i++ {
		s := particleSeed(10, i)
		if j, ok := seen[s]; ok {
			t.Fatalf("particles %d and %d share seed %d", i, j, s)
		}
		seen[s] = i
	}
}
