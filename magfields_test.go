package magfields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirbyh/mag-fields/geom"
)

func testArray(t *testing.T, nCoils int) *geom.CoilArray {
	xs, err := geom.RacetrackCrossSection(2, 1, 33)
	require.NoError(t, err)
	ca, err := geom.BuildCoilArray(xs, nCoils, 5.6, false)
	require.NoError(t, err)
	return ca
}

func fastConfig() *Config {
	cfg := DefaultConfig()
	cfg.N = 10
	cfg.Current = 1e5
	cfg.Thresh = 1
	cfg.SphereRadius = 2
	cfg.Direction = Thresholded
	cfg.Sampling = 1.5
	cfg.Energy = 1e8
	cfg.Seed = 42
	cfg.Seeded = true
	return cfg
}

func TestRunReproducibleAcrossWorkerCounts(t *testing.T) {
	ca := testArray(t, 4)

	var last *RunStatistics
	for _, workers := range []int{1, 4} {
		cfg := fastConfig()
		cfg.Workers = workers

		st, err := RunMonteCarlo(ca, cfg)
		require.NoError(t, err)

		if last != nil {
			assert.Equal(t, last, st,
				"%d workers changed seeded statistics", workers)
		}
		last = st
	}
}

func TestRunReproducibleAcrossInvocations(t *testing.T) {
	ca := testArray(t, 4)
	cfg := fastConfig()

	st1, err := RunMonteCarlo(ca, cfg)
	require.NoError(t, err)
	st2, err := RunMonteCarlo(ca, cfg)
	require.NoError(t, err)

	assert.Equal(t, st1, st2)
}

func TestRunZeroParticles(t *testing.T) {
	ca := testArray(t, 4)
	cfg := fastConfig()
	cfg.N = 0

	st, err := RunMonteCarlo(ca, cfg)
	require.NoError(t, err)

	assert.Equal(t, 0, st.N)
	assert.Equal(t, 0, st.BaselineHits)
	assert.False(t, st.Defined())
	assert.Equal(t, 0.0, st.ParasiticRate)
}

func TestNewManagerValidation(t *testing.T) {
	ca := testArray(t, 4)

	bad := fastConfig()
	bad.N = -1
	_, err := NewManager(ca, bad)
	assert.Error(t, err, "negative N")

	bad = fastConfig()
	bad.Thresh = 3
	bad.SphereRadius = 2
	_, err = NewManager(ca, bad)
	assert.Error(t, err, "threshold outside sampling sphere")

	bad = fastConfig()
	bad.Sampling = 4
	_, err = NewManager(ca, bad)
	assert.Error(t, err, "aim ball swallows the sampling sphere")

	bad = fastConfig()
	bad.EnergyMode = PowerLawEnergy
	bad.EnergyMin, bad.EnergyMax = 1e9, 1e6
	_, err = NewManager(ca, bad)
	assert.Error(t, err, "inverted energy range")

	bad = fastConfig()
	bad.Charge = 0
	_, err = NewManager(ca, bad)
	assert.Error(t, err, "chargeless particle")
}

func TestAggregate(t *testing.T) {
	outcomes := []outcome{
		{hitOn: false, hitOff: true},  // deflected
		{hitOn: false, hitOff: true},  // deflected
		{hitOn: true, hitOff: true},   // baseline hit, not deflected
		{hitOn: true, hitOff: false},  // parasitic
		{hitOn: false, hitOff: false}, // clean miss
		{failed: true},
	}

	st := aggregate(outcomes)
	assert.Equal(t, 3, st.BaselineHits)
	assert.Equal(t, 2, st.Deflected)
	assert.Equal(t, 1, st.Parasitic)
	assert.Equal(t, 1, st.Failed)
	assert.InDelta(t, (2.0-1.0)/3.0, st.DeflectionRate, 1e-12)
	assert.InDelta(t, 1.0/2.0, st.ParasiticRate, 1e-9)
	assert.True(t, st.Defined())
}

func TestShieldScenario(t *testing.T) {
	// 8-coil array, radius 5.6, 4 MA, 33-point racetrack cross-section,
	// 100 particles sampled isotropically inward at 100 MeV, seed 10.
	ca := testArray(t, 8)

	cfg := DefaultConfig()
	cfg.N = 100
	cfg.Current = 4e6
	cfg.Thresh = 1
	cfg.SphereRadius = 2
	cfg.Direction = Inward
	cfg.Energy = 1e8
	cfg.Seed = 10
	cfg.Seeded = true

	st1, err := RunMonteCarlo(ca, cfg)
	require.NoError(t, err)
	st2, err := RunMonteCarlo(ca, cfg)
	require.NoError(t, err)

	assert.Equal(t, st1, st2, "seeded scenario must reproduce")
	require.True(t, st1.Defined(), "scenario produced no baseline hits")
	assert.GreaterOrEqual(t, st1.DeflectionRate, 0.0)
	assert.LessOrEqual(t, st1.DeflectionRate, 1.0)
}
