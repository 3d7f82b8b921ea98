package field

import (
	"math"
	"testing"

	"github.com/kirbyh/mag-fields/geom"
)

// loopSource builds a flat circular loop of the given radius in the xy-plane,
// centered on the origin, discretized into panels.
func loopSource(radius float64, panels int, current float64) *Source {
	mids := make([]geom.Vec, panels)
	dirs := make([]geom.Vec, panels)

	pts := make([]geom.Vec, panels+1)
	for i := 0; i <= panels; i++ {
		th := 2 * math.Pi * float64(i) / float64(panels)
		pts[i] = geom.Vec{radius * math.Cos(th), radius * math.Sin(th), 0}
	}
	for i := 0; i < panels; i++ {
		pts[i].Add(&pts[i+1], &mids[i])
		mids[i].Scale(0.5, &mids[i])
		pts[i+1].Sub(&pts[i], &dirs[i])
	}

	return &Source{
		Midpoints: mids, Directions: dirs,
		PanelsPerCoil: panels, Current: current,
	}
}

// loopBz is the closed-form on-axis field of a circular loop.
func loopBz(radius, current, z float64) float64 {
	return Mu0 * current * radius * radius /
		(2 * math.Pow(radius*radius+z*z, 1.5))
}

func TestOnAxisLoopConvergence(t *testing.T) {
	zs := []float64{0, 0.5, 1, 2}
	panelCounts := []int{8, 16, 32, 64, 128}

	for _, z := range zs {
		want := loopBz(1, 1e3, z)
		prevErr := math.Inf(+1)

		for _, panels := range panelCounts {
			src := loopSource(1, panels, 1e3)
			b := src.Eval(&geom.Vec{0, 0, z}, ExcludeNone, 0)

			if math.Abs(b[0]) > 1e-9*math.Abs(want) ||
				math.Abs(b[1]) > 1e-9*math.Abs(want) {
				t.Errorf(
					"z=%g panels=%d: off-axis components (%g, %g) not zero",
					z, panels, b[0], b[1],
				)
			}

			err := math.Abs(b[2]-want) / want
			if err > prevErr*1.01 {
				t.Errorf(
					"z=%g: error grew from %g to %g at %d panels",
					z, prevErr, err, panels,
				)
			}
			prevErr = err
		}

		if prevErr > 1e-3 {
			t.Errorf("z=%g: error %g at 128 panels, want < 1e-3", z, prevErr)
		}
	}
}

func TestEvalAtPanelMidpointIsFinite(t *testing.T) {
	src := loopSource(1, 16, 1e3)

	// The singularity floor drops the panel's own contribution, so even an
	// unexcluded evaluation at a midpoint stays finite.
	for _, ex := range []Exclude{ExcludeNone, ExcludePanel} {
		b := src.Eval(&src.Midpoints[3], ex, 3)
		for c := 0; c < 3; c++ {
			if math.IsNaN(b[c]) || math.IsInf(b[c], 0) {
				t.Fatalf("exclude=%d: non-finite field %v at own midpoint", ex, b)
			}
		}
	}
}

func TestExcludeCoilDropsWholeCoil(t *testing.T) {
	xs, err := geom.RacetrackCrossSection(1, 0.5, 17)
	if err != nil {
		t.Fatal(err)
	}
	ca, err := geom.BuildCoilArray(xs, 4, 5, false)
	if err != nil {
		t.Fatal(err)
	}
	src := NewSource(ca, 1e3)

	// Field at coil 0's first midpoint with coil 0 excluded must equal the
	// superposition of coils 1..3 only, which a manual sum confirms.
	x := src.Midpoints[0]
	got := src.Eval(&x, ExcludeCoil, 0)

	other := &Source{
		Midpoints: src.Midpoints[ca.PanelsPerCoil:],
		Directions: src.Directions[ca.PanelsPerCoil:],
		PanelsPerCoil: ca.PanelsPerCoil,
		Current: src.Current,
	}
	want := other.Eval(&x, ExcludeNone, 0)

	for c := 0; c < 3; c++ {
		if math.Abs(got[c]-want[c]) > 1e-12*(1+math.Abs(want[c])) {
			t.Errorf("component %d: got %g, want %g", c, got[c], want[c])
		}
	}
}

func TestHoopForceSymmetry(t *testing.T) {
	xs, err := geom.RacetrackCrossSection(1, 0.5, 33)
	if err != nil {
		t.Fatal(err)
	}

	for _, nCoils := range []int{4, 8} {
		ca, err := geom.BuildCoilArray(xs, nCoils, 5.6, false)
		if err != nil {
			t.Fatal(err)
		}
		src := NewSource(ca, 4e6)

		forces := src.PanelForces(true)
		net, mids := HoopForces(forces, ca)

		if len(net) != nCoils || len(mids) != nCoils {
			t.Fatalf(
				"%d coils gave %d forces, %d midpoints",
				nCoils, len(net), len(mids),
			)
		}

		// A closed symmetric system exerts no net force on itself.
		var total geom.Vec
		scale := 0.0
		for k := range net {
			total.Add(&net[k], &total)
			if n := net[k].Norm(); n > scale {
				scale = n
			}
		}
		if total.Norm() > 1e-8*scale {
			t.Errorf(
				"%d coils: net force %v is %g of the largest coil force",
				nCoils, total, total.Norm()/scale,
			)
		}
	}
}

func TestPanelForcesAlignment(t *testing.T) {
	xs, _ := geom.RacetrackCrossSection(1, 0.5, 9)
	ca, err := geom.BuildCoilArray(xs, 4, 5, false)
	if err != nil {
		t.Fatal(err)
	}
	src := NewSource(ca, 1e6)

	forces := src.PanelForces(false)
	if len(forces) != ca.PanelCount() {
		t.Fatalf("%d forces for %d panels", len(forces), ca.PanelCount())
	}

	// Every force is orthogonal to its panel's direction.
	for i := range forces {
		d := &src.Directions[i]
		dot := forces[i].Dot(d)
		if math.Abs(dot) > 1e-10*forces[i].Norm()*d.Norm() {
			t.Errorf("panel %d: force not orthogonal to direction (dot %g)", i, dot)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	xs, _ := geom.RacetrackCrossSection(1, 0.5, 33)
	ca, _ := geom.BuildCoilArray(xs, 8, 5.6, false)
	src := NewSource(ca, 4e6)
	x := geom.Vec{1, 2, 3}

	b.ResetTimer()
	var out geom.Vec
	for n := 0; n < b.N; n++ {
		src.EvalAt(&x, ExcludeNone, 0, &out)
	}
}
