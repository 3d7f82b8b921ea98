/*package magfields evaluates the shielding effectiveness of toroidal coil
arrays against charged particles.

The package builds a panel discretization of the coil array, superposes
Biot-Savart contributions to get the magnetic field, integrates relativistic
particle trajectories through that field, and aggregates Monte Carlo
hit/miss statistics: how many particles that would have struck the protected
sphere are deflected by the field, and how many are parasitically entrained
into it.
*/
package magfields

import (
	"math"
	"math/rand"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kirbyh/mag-fields/field"
	"github.com/kirbyh/mag-fields/geom"
	"github.com/kirbyh/mag-fields/integrator"
)

// rateEps guards the parasitic-rate division when nothing was deflected.
const rateEps = 1e-12

// Manager runs Monte Carlo deflection studies against a fixed coil array.
// Its state is read-only after construction, so a Manager may run from
// multiple goroutines, though a single Run already saturates the cores.
type Manager struct {
	cfg Config
	on, off *integrator.FieldContext
	rk *integrator.RK45
	workers int
}

// outcome is the paired classification of one particle.
type outcome struct {
	hitOn, hitOff, failed bool
}

// NewManager validates cfg and binds it to a coil array. The two field
// contexts, shielded and unshielded, share the array's panels; the
// unshielded one just carries zero current.
func NewManager(ca *geom.CoilArray, cfg *Config) (*Manager, error) {
	if err := cfg.CheckInit(); err != nil {
		return nil, err
	}

	man := &Manager{cfg: *cfg, rk: integrator.NewRK45()}

	man.on = &integrator.FieldContext{
		Src: field.NewSource(ca, cfg.Current),
		Mass: cfg.Mass,
		Charge: cfg.Charge,
		B0: cfg.B0,
		Relativistic: cfg.Relativistic,
	}
	off := *man.on
	off.Src = field.NewSource(ca, 0)
	man.off = &off

	man.workers = cfg.Workers
	if man.workers == 0 {
		man.workers = runtime.NumCPU()
	}
	if man.workers > cfg.N && cfg.N > 0 {
		man.workers = cfg.N
	}

	return man, nil
}

// Run samples cfg.N particles, integrates each twice (coil current on and
// off), and aggregates the paired outcomes. A seeded run returns identical
// statistics every invocation regardless of worker count.
func (man *Manager) Run() (*RunStatistics, error) {
	cfg := &man.cfg

	seed := cfg.Seed
	if !cfg.Seeded {
		seed = time.Now().UnixNano()
	}

	log.WithFields(log.Fields{
		"particles": cfg.N,
		"current": cfg.Current,
		"workers": man.workers,
		"seed": seed,
	}).Info("Starting Monte Carlo run")

	outcomes := make([]outcome, cfg.N)
	if cfg.N > 0 {
		out := make(chan int, man.workers)
		for id := 0; id < man.workers-1; id++ {
			go man.chanParticles(id, seed, outcomes, out)
		}
		man.chanParticles(man.workers-1, seed, outcomes, out)

		for i := 0; i < man.workers; i++ {
			<-out
		}
	}

	st := aggregate(outcomes)
	log.WithFields(log.Fields{
		"deflectionRate": st.DeflectionRate,
		"parasiticRate": st.ParasiticRate,
		"baselineHits": st.BaselineHits,
		"failed": st.Failed,
	}).Info("Monte Carlo run finished")

	return st, nil
}

// chanParticles processes the particles whose index is congruent to id
// modulo the worker count, then signals completion.
func (man *Manager) chanParticles(
	id int, seed int64, outcomes []outcome, out chan<- int,
) {
	for i := id; i < len(outcomes); i += man.workers {
		outcomes[i] = man.runParticle(i, seed)
	}
	out <- id
}

// runParticle samples particle i's initial conditions and classifies it with
// the field on and off. Every random draw comes from the particle's own
// deterministic stream.
func (man *Manager) runParticle(i int, seed int64) outcome {
	cfg := &man.cfg
	rng := rand.New(rand.NewSource(particleSeed(seed, i)))

	var pos geom.Vec
	if cfg.GridSample {
		pos = gridPosition(i, cfg.N, cfg.SphereRadius)
	} else {
		pos = SpherePoint(rng, cfg.SphereRadius)
	}
	dir := sampleDirection(rng, cfg.Direction, &pos, cfg.Thresh, cfg.Sampling)
	ev := sampleEnergy(rng, cfg)

	u := man.on.InitialMomentum(&dir, ev)
	span := man.on.CrossingSpan(&u, cfg.SphereRadius)

	trailOn, err := integrator.RunTrajectory(man.on, &pos, &u, span, man.rk)
	if err != nil {
		log.WithFields(log.Fields{"particle": i, "err": err}).
			Warn("Shielded trajectory failed; excluding particle")
		return outcome{failed: true}
	}
	trailOff, err := integrator.RunTrajectory(man.off, &pos, &u, span, man.rk)
	if err != nil {
		log.WithFields(log.Fields{"particle": i, "err": err}).
			Warn("Unshielded trajectory failed; excluding particle")
		return outcome{failed: true}
	}

	return outcome{
		hitOn: integrator.ClassifyHit(trailOn, cfg.Thresh),
		hitOff: integrator.ClassifyHit(trailOff, cfg.Thresh),
	}
}

// aggregate folds per-particle outcomes into run statistics.
func aggregate(outcomes []outcome) *RunStatistics {
	st := &RunStatistics{N: len(outcomes)}

	for _, o := range outcomes {
		switch {
		case o.failed:
			st.Failed++
		case o.hitOff && !o.hitOn:
			st.BaselineHits++
			st.Deflected++
		case o.hitOff:
			st.BaselineHits++
		case o.hitOn:
			st.Parasitic++
		}
	}

	if st.BaselineHits > 0 {
		st.DeflectionRate =
			float64(st.Deflected-st.Parasitic) / float64(st.BaselineHits)
	} else {
		st.DeflectionRate = math.NaN()
	}
	st.ParasiticRate = float64(st.Parasitic) / (float64(st.Deflected) + rateEps)

	return st
}

// RunMonteCarlo builds a Manager for the given array and configuration and
// executes a single run.
func RunMonteCarlo(ca *geom.CoilArray, cfg *Config) (*RunStatistics, error) {
	man, err := NewManager(ca, cfg)
	if err != nil {
		return nil, err
	}
	return man.Run()
}
