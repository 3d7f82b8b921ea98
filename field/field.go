/*package field evaluates the magnetic field of a discretized coil array by
Biot-Savart superposition and derives the Lorentz forces the panels exert on
one another.

Each panel contributes through its midpoint and chord vector,
B(x) = (mu0 I / 4 pi) sum_i (d_i x r_i) / |r_i|^3 with r_i = x - m_i. This is
a coarse straight-element approximation, not the finite-segment closed form:
its error scales with panel length, so panel count is the convergence knob.
*/
package field

import (
	"math"

	"github.com/kirbyh/mag-fields/geom"
)

// Mu0 is the vacuum permeability in SI units.
const Mu0 = 4e-7 * math.Pi

// minDist2 is the squared distance floor below which a panel's contribution
// is skipped. Evaluating exactly at a panel midpoint would otherwise divide
// by zero and feed NaNs into the trajectory integrator.
const minDist2 = 1e-24

// Exclude selects which panels are omitted from a field evaluation.
type Exclude int

const (
	// ExcludeNone sums over every panel.
	ExcludeNone Exclude = iota
	// ExcludePanel omits the single panel with the given index.
	ExcludePanel
	// ExcludeCoil omits every panel of the coil with the given index.
	ExcludeCoil
)

// Source is the input to every field evaluation: the flat panel arrays of a
// coil array plus the uniform current carried by every panel. Sources are
// read-only and may be shared freely across goroutines.
type Source struct {
	Midpoints, Directions []geom.Vec
	PanelsPerCoil int
	Current float64
}

// NewSource binds a coil array's panels to a scalar current.
func NewSource(ca *geom.CoilArray, current float64) *Source {
	return &Source{
		Midpoints: ca.Midpoints,
		Directions: ca.Directions,
		PanelsPerCoil: ca.PanelsPerCoil,
		Current: current,
	}
}

// EvalAt computes the magnetic field at x and stores it in out. ex and idx
// choose the exclusion policy: the panel index for ExcludePanel, the coil
// index for ExcludeCoil, and ignored for ExcludeNone.
func (src *Source) EvalAt(x *geom.Vec, ex Exclude, idx int, out *geom.Vec) {
	out[0], out[1], out[2] = 0, 0, 0

	lo, hi := -1, -1
	switch ex {
	case ExcludePanel:
		lo, hi = idx, idx+1
	case ExcludeCoil:
		lo = idx * src.PanelsPerCoil
		hi = lo + src.PanelsPerCoil
	}

	var r, term geom.Vec
	for i := range src.Midpoints {
		if i >= lo && i < hi {
			continue
		}

		x.Sub(&src.Midpoints[i], &r)
		r2 := r.Norm2()
		if r2 < minDist2 {
			continue
		}

		src.Directions[i].Cross(&r, &term)
		term.Scale(1/(r2*math.Sqrt(r2)), &term)
		out.Add(&term, out)
	}

	out.Scale(Mu0*src.Current/(4*math.Pi), out)
}

// Eval is EvalAt with the field returned by value.
func (src *Source) Eval(x *geom.Vec, ex Exclude, idx int) geom.Vec {
	var out geom.Vec
	src.EvalAt(x, ex, idx, &out)
	return out
}
