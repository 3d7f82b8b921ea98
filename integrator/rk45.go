/*package integrator advances charged particles through the field of a coil
array. The ODE stepper is an embedded Cash-Karp Runge-Kutta 4(5) pair with
adaptive step size control.
*/
package integrator

import (
	"fmt"
	"math"
)

// Derivs evaluates the right-hand side dy/ds of an ODE system at (s, y) and
// stores it in dyds.
type Derivs func(s float64, y, dyds []float64)

// StepFunc is invoked after every accepted step, including once for the
// initial state.
type StepFunc func(s float64, y []float64)

// RK45 is an adaptive Cash-Karp Runge-Kutta 4(5) integrator. The zero value
// is not usable; construct with NewRK45.
type RK45 struct {
	Atol, Rtol float64
	InitStep float64
	MaxSteps int
}

// NewRK45 creates an integrator with the default tolerances.
func NewRK45() *RK45 {
	return &RK45{Atol: 1e-10, Rtol: 1e-8, InitStep: 1e-3, MaxSteps: 1 << 16}
}

// Cash-Karp tableau.
var (
	ckB = [6][5]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{3.0 / 10, -9.0 / 10, 6.0 / 5},
		{-11.0 / 54, 5.0 / 2, -70.0 / 27, 35.0 / 27},
		{1631.0 / 55296, 175.0 / 512, 575.0 / 13824,
			44275.0 / 110592, 253.0 / 4096},
	}
	ckC5 = [6]float64{
		37.0 / 378, 0, 250.0 / 621, 125.0 / 594, 0, 512.0 / 1771,
	}
	ckC4 = [6]float64{
		2825.0 / 27648, 0, 18575.0 / 48384, 13525.0 / 55296,
		277.0 / 14336, 1.0 / 4,
	}
	ckA = [6]float64{0, 1.0 / 5, 3.0 / 10, 3.0 / 5, 1, 7.0 / 8}
)

// Integrate advances y from s0 to s1, mutating y in place. step, if non-nil,
// observes every accepted state. Integration fails if the step budget is
// exhausted or the step size underflows before reaching s1.
func (rk *RK45) Integrate(f Derivs, y []float64, s0, s1 float64, step StepFunc) error {
	n := len(y)
	ks := make([][]float64, 6)
	for i := range ks {
		ks[i] = make([]float64, n)
	}
	ytmp := make([]float64, n)
	y5 := make([]float64, n)

	s, h := s0, rk.InitStep
	if h > s1-s0 {
		h = s1 - s0
	}
	hMin := 1e-14 * (s1 - s0)

	if step != nil {
		step(s, y)
	}

	for steps := 0; s < s1; steps++ {
		if steps >= rk.MaxSteps {
			return fmt.Errorf(
				"Integration exceeded %d steps at s = %g of [%g, %g].",
				rk.MaxSteps, s, s0, s1,
			)
		}
		clamped := false
		if s+h > s1 {
			h, clamped = s1-s, true
		}

		f(s, y, ks[0])
		for i := 1; i < 6; i++ {
			for j := 0; j < n; j++ {
				dy := 0.0
				for l := 0; l < i; l++ {
					dy += ckB[i][l] * ks[l][j]
				}
				ytmp[j] = y[j] + h*dy
			}
			f(s+ckA[i]*h, ytmp, ks[i])
		}

		errMax := 0.0
		for j := 0; j < n; j++ {
			dy5, dy4 := 0.0, 0.0
			for i := 0; i < 6; i++ {
				dy5 += ckC5[i] * ks[i][j]
				dy4 += ckC4[i] * ks[i][j]
			}
			y5[j] = y[j] + h*dy5

			scale := rk.Atol + rk.Rtol*(math.Abs(y[j])+math.Abs(h*ks[0][j]))
			if e := math.Abs(h*(dy5-dy4)) / scale; e > errMax {
				errMax = e
			}
		}

		if errMax <= 1 {
			s += h
			copy(y, y5)
			if step != nil {
				step(s, y)
			}

			grow := 5.0
			if errMax > 0 {
				grow = 0.9 * math.Pow(errMax, -0.2)
				if grow > 5 {
					grow = 5
				}
			}
			h *= grow
		} else {
			shrink := 0.9 * math.Pow(errMax, -0.25)
			if shrink < 0.1 {
				shrink = 0.1
			}
			h *= shrink
		}

		// A step clamped to the end of the span may be arbitrarily small
		// without the solver being stuck.
		if h < hMin && !clamped {
			return fmt.Errorf(
				"Step size underflowed to %g at s = %g of [%g, %g].",
				h, s, s0, s1,
			)
		}
	}

	return nil
}
