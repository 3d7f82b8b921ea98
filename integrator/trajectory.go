package integrator

import (
	"math"

	"github.com/kirbyh/mag-fields/field"
	"github.com/kirbyh/mag-fields/geom"
)

// Physical constants, SI.
const (
	SpeedOfLight = 2.99792458e8  // m/s
	ElemCharge   = 1.602176634e-19 // C
	ProtonMass   = 1.67262192369e-27 // kg
	ElectronMass = 9.1093837015e-31 // kg
)

// maxTrail caps the length of a logged trajectory. When the cap is reached
// the trail is decimated by 2 and the logging stride doubles.
const maxTrail = 1 << 12

// Field supplies the magnetic field seen by a particle. *field.Source
// satisfies it; tests use analytic fields.
type Field interface {
	EvalAt(x *geom.Vec, ex field.Exclude, idx int, out *geom.Vec)
}

// FieldContext binds everything the equations of motion need: the panel
// field source, the particle species, and the normalization scales. It is
// immutable and closed over by the derivative callback, so trajectory runs
// are reentrant and safe to share across goroutines.
type FieldContext struct {
	Src Field
	Mass float64   // kg
	Charge float64 // C, signed
	B0 float64     // reference field for Larmor normalization, T
	Relativistic bool
}

// Larmor returns the normalization radius mc/(|q| B0).
func (ctx *FieldContext) Larmor() float64 {
	return ctx.Mass * SpeedOfLight / (math.Abs(ctx.Charge) * ctx.B0)
}

// InitialMomentum converts a kinetic energy in eV along the unit direction
// dir into the integrator's momentum coordinate: the dimensionless u = p/(mc)
// in relativistic mode, the velocity in m/s otherwise.
func (ctx *FieldContext) InitialMomentum(dir *geom.Vec, kineticEV float64) geom.Vec {
	eJ := kineticEV * ElemCharge

	var mag float64
	if ctx.Relativistic {
		gamma := 1 + eJ/(ctx.Mass*SpeedOfLight*SpeedOfLight)
		mag = math.Sqrt(gamma*gamma - 1)
	} else {
		mag = math.Sqrt(2 * eJ / ctx.Mass)
	}

	var u geom.Vec
	dir.Scale(mag, &u)
	return u
}

// CrossingSpan returns the integration span over which a particle with
// initial momentum u covers the full diameter of the sampling sphere at its
// asymptotic speed: a phase interval in relativistic mode, a time interval
// otherwise.
func (ctx *FieldContext) CrossingSpan(u *geom.Vec, rSphere float64) float64 {
	if ctx.Relativistic {
		u2 := u.Norm2()
		beta := math.Sqrt(u2 / (1 + u2))
		return 2 * rSphere / (ctx.Larmor() * beta)
	}
	return 2 * rSphere / u.Norm()
}

// RunTrajectory integrates a single particle's equation of motion from the
// physical position x0 with initial momentum u0 (in the convention of
// InitialMomentum) over [0, span], and returns the trajectory's sampled
// positions in physical units. The relativistic equations are
//
//	dX/ds = u / gamma
//	du/ds = sign(q) (u x B/B0) / gamma
//
// with X = x/R, R the Larmor radius, and s the cyclotron phase; the
// non-relativistic equations are the same system in physical (x, v, t) with
// dv/dt = (q/m) v x B.
func RunTrajectory(
	ctx *FieldContext, x0, u0 *geom.Vec, span float64, rk *RK45,
) ([]geom.Vec, error) {
	var f Derivs
	var y [6]float64

	if ctx.Relativistic {
		r := ctx.Larmor()
		sign := 1.0
		if ctx.Charge < 0 {
			sign = -1
		}

		for k := 0; k < 3; k++ {
			y[k] = x0[k] / r
			y[3+k] = u0[k]
		}

		f = func(s float64, y, dyds []float64) {
			x := geom.Vec{y[0] * r, y[1] * r, y[2] * r}
			u := geom.Vec{y[3], y[4], y[5]}
			gamma := math.Sqrt(1 + u.Norm2())

			var b geom.Vec
			ctx.Src.EvalAt(&x, field.ExcludeNone, 0, &b)
			b.Scale(sign/ctx.B0, &b)

			var du geom.Vec
			u.Cross(&b, &du)

			for k := 0; k < 3; k++ {
				dyds[k] = u[k] / gamma
				dyds[3+k] = du[k] / gamma
			}
		}
	} else {
		qm := ctx.Charge / ctx.Mass

		for k := 0; k < 3; k++ {
			y[k] = x0[k]
			y[3+k] = u0[k]
		}

		f = func(t float64, y, dydt []float64) {
			x := geom.Vec{y[0], y[1], y[2]}
			v := geom.Vec{y[3], y[4], y[5]}

			var b geom.Vec
			ctx.Src.EvalAt(&x, field.ExcludeNone, 0, &b)

			var dv geom.Vec
			v.Cross(&b, &dv)
			dv.Scale(qm, &dv)

			for k := 0; k < 3; k++ {
				dydt[k] = v[k]
				dydt[3+k] = dv[k]
			}
		}
	}

	scale := 1.0
	if ctx.Relativistic {
		scale = ctx.Larmor()
	}

	trail := make([]geom.Vec, 0, 256)
	stride, tick := 1, 0
	log := func(s float64, y []float64) {
		if tick%stride == 0 {
			trail = append(trail, geom.Vec{
				y[0] * scale, y[1] * scale, y[2] * scale,
			})
			if len(trail) == maxTrail {
				trail = decimate(trail)
				stride *= 2
			}
		}
		tick++
	}

	if err := rk.Integrate(f, y[:], 0, span, log); err != nil {
		return nil, err
	}
	return trail, nil
}

func decimate(trail []geom.Vec) []geom.Vec {
	half := trail[:0]
	for i := 0; i < len(trail); i += 2 {
		half = append(half, trail[i])
	}
	return half
}

// ClassifyHit scans a trajectory for its closest sampled approach to the
// origin and reports whether the chords around that sample cross the sphere
// of the given threshold radius. Testing the straddling segments instead of
// comparing the raw minimum distance keeps the verdict robust when the true
// trajectory dips below the threshold between integrator samples.
func ClassifyHit(trail []geom.Vec, thresh float64) bool {
	if len(trail) == 0 {
		return false
	}

	iMin, dMin := 0, math.Inf(+1)
	for i := range trail {
		if d := trail[i].Norm2(); d < dMin {
			iMin, dMin = i, d
		}
	}

	if iMin > 0 &&
		geom.SegmentSphereIntersect(&trail[iMin-1], &trail[iMin], thresh) {
		return true
	}
	if iMin+1 < len(trail) &&
		geom.SegmentSphereIntersect(&trail[iMin], &trail[iMin+1], thresh) {
		return true
	}
	return geom.SegmentSphereIntersect(&trail[iMin], &trail[iMin], thresh)
}
