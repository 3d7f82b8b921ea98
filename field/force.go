package field

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kirbyh/mag-fields/geom"
)

// PanelForces computes the Lorentz force on every panel from the field of all
// other panels, F_i = I (d_i x B_i). The returned slice is aligned
// index-for-index with the source's panel arrays.
//
// When omitSelfCoil is true the whole coil owning panel i is excluded from
// panel i's field, not just the panel itself. This isolates the inter-coil
// forces from the (much larger) self-field hoop stress.
func (src *Source) PanelForces(omitSelfCoil bool) []geom.Vec {
	forces := make([]geom.Vec, len(src.Midpoints))

	var b geom.Vec
	for i := range src.Midpoints {
		if omitSelfCoil {
			src.EvalAt(&src.Midpoints[i], ExcludeCoil, i/src.PanelsPerCoil, &b)
		} else {
			src.EvalAt(&src.Midpoints[i], ExcludePanel, i, &b)
		}

		src.Directions[i].Cross(&b, &forces[i])
		forces[i].Scale(src.Current, &forces[i])
	}

	return forces
}

// HoopForces aggregates per-panel forces to per-coil net forces. It returns
// one net force and one reference midpoint per coil, the midpoint being the
// mean of the coil's non-duplicated boundary points.
func HoopForces(forces []geom.Vec, ca *geom.CoilArray) (net, mids []geom.Vec) {
	nCoils := len(ca.Coils)
	ppc := ca.PanelsPerCoil
	net = make([]geom.Vec, nCoils)
	mids = make([]geom.Vec, nCoils)

	buf := make([]float64, ppc)
	for k := 0; k < nCoils; k++ {
		for c := 0; c < 3; c++ {
			for j := 0; j < ppc; j++ {
				buf[j] = forces[k*ppc+j][c]
			}
			net[k][c] = floats.Sum(buf)
		}
		mids[k] = ca.CoilMidpoint(k)
	}

	return net, mids
}
