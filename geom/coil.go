package geom

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/kirbyh/mag-fields/math/mat"
)

// Coil is a single closed current loop embedded in 3D. Points is the coil's
// boundary polyline: the first and last points coincide, so a coil with P
// points carries P - 1 panels.
type Coil struct {
	Points []Vec
}

// CoilArray is a toroidal arrangement of identical coils spaced uniformly in
// toroidal angle around the z axis at a common major radius. It owns the flat
// panel arrays consumed by the field evaluator: Midpoints[i] and Directions[i]
// describe panel i, with panels ordered coil by coil.
//
// A CoilArray is immutable once built. Single coils are just arrays of
// length 1.
type CoilArray struct {
	Coils []Coil
	Radius float64
	Alternating bool

	Midpoints, Directions []Vec
	PanelsPerCoil int
}

// BuildCoilArray embeds the closed 2D cross-section polyline cross as nCoils
// rigid copies spaced 2 pi / nCoils apart in toroidal angle at major radius
// radius. The cross-section's two axes map to the local poloidal plane: the
// first axis points radially outward, the second along z.
//
// When alternating is true every odd-indexed coil receives an extra in-plane
// rotation of pi, inverting its effective current direction relative to its
// neighbors (the "pumpkin" configuration).
//
// A cross-section with fewer than 2 points cannot produce panels and is
// rejected. Coil counts that are not multiples of 4 break the symmetry most
// analyses assume, so they are warned about but allowed.
func BuildCoilArray(
	cross []Vec2, nCoils int, radius float64, alternating bool,
) (*CoilArray, error) {
	if len(cross) < 2 {
		return nil, fmt.Errorf(
			"Cross-section has %d points, but at least 2 are needed to "+
				"form a panel.", len(cross),
		)
	}
	if nCoils < 1 {
		return nil, fmt.Errorf("Coil count is %d, but must be positive.", nCoils)
	}
	if nCoils % 4 != 0 {
		log.Warnf(
			"Coil count %d is not a multiple of 4. The array will not have "+
				"the usual toroidal symmetry.", nCoils,
		)
	}

	ca := &CoilArray{
		Coils: make([]Coil, nCoils),
		Radius: radius,
		Alternating: alternating,
		PanelsPerCoil: len(cross) - 1,
	}

	// A half turn about y inverts the poloidal plane for alternating coils.
	flip := mat.EulerMatrix(0, math.Pi, 0)

	for k := 0; k < nCoils; k++ {
		phi := 2 * math.Pi * float64(k) / float64(nCoils)
		rot := mat.EulerMatrix(0, 0, -phi)

		center := Vec{radius, 0, 0}
		center.Rotate(rot)
		if alternating && k % 2 == 1 { rot = rot.Mult(flip) }

		pts := make([]Vec, len(cross))
		for j, p := range cross {
			// Embed in the poloidal plane, then carry to the coil's azimuth.
			pts[j] = Vec{p[0], 0, p[1]}
			pts[j].Rotate(rot)
			pts[j].Add(&center, &pts[j])
		}
		ca.Coils[k].Points = pts
	}

	ca.buildPanels()
	return ca, nil
}

// buildPanels derives the flat midpoint and direction arrays from the coil
// boundary points, preserving coil order.
func (ca *CoilArray) buildPanels() {
	n := len(ca.Coils) * ca.PanelsPerCoil
	ca.Midpoints = make([]Vec, 0, n)
	ca.Directions = make([]Vec, 0, n)

	for k := range ca.Coils {
		pts := ca.Coils[k].Points
		for i := 0; i+1 < len(pts); i++ {
			var mid, dir Vec
			pts[i].Add(&pts[i+1], &mid)
			mid.Scale(0.5, &mid)
			pts[i+1].Sub(&pts[i], &dir)

			ca.Midpoints = append(ca.Midpoints, mid)
			ca.Directions = append(ca.Directions, dir)
		}
	}
}

// PanelCount returns the total number of panels across all coils.
func (ca *CoilArray) PanelCount() int {
	return len(ca.Midpoints)
}

// CoilOf returns the index of the coil owning panel i.
func (ca *CoilArray) CoilOf(i int) int {
	return i / ca.PanelsPerCoil
}

// CoilMidpoint returns the mean of coil k's boundary points with the
// duplicated closing point excluded.
func (ca *CoilArray) CoilMidpoint(k int) Vec {
	pts := ca.Coils[k].Points
	n := len(pts) - 1

	var sum Vec
	for i := 0; i < n; i++ {
		sum.Add(&pts[i], &sum)
	}
	sum.Scale(1/float64(n), &sum)
	return sum
}

// RacetrackCrossSection generates a closed racetrack polyline: two straight
// sections of the given length joined by semicircular caps of the given
// radius, centered on the origin. points is the boundary point count
// including the duplicated closing point, so the polyline has points - 1
// panels. The perimeter is sampled uniformly by arc length.
func RacetrackCrossSection(length, radius float64, points int) ([]Vec2, error) {
	if points < 3 {
		return nil, fmt.Errorf(
			"Racetrack needs at least 3 boundary points, got %d.", points,
		)
	}
	if length < 0 || radius <= 0 {
		return nil, fmt.Errorf(
			"Racetrack needs non-negative length and positive cap radius, "+
				"got length %g, radius %g.", length, radius,
		)
	}

	perim := 2*length + 2*math.Pi*radius
	xs := make([]Vec2, points)
	for i := 0; i < points-1; i++ {
		s := perim * float64(i) / float64(points-1)
		xs[i] = racetrackPoint(length, radius, s)
	}
	xs[points-1] = xs[0]
	return xs, nil
}

// racetrackPoint maps an arc-length parameter to a boundary point. The walk
// starts at the midpoint of the top straight and proceeds counterclockwise.
func racetrackPoint(length, radius, s float64) Vec2 {
	half := length / 2
	arc := math.Pi * radius

	switch {
	case s < half:
		return Vec2{-s, radius}
	case s < half+arc:
		th := (s - half) / radius
		return Vec2{-half - radius*math.Sin(th), radius * math.Cos(th)}
	case s < half+arc+length:
		return Vec2{-half + (s - half - arc), -radius}
	case s < half+2*arc+length:
		th := (s - half - arc - length) / radius
		return Vec2{half + radius*math.Sin(th), -radius * math.Cos(th)}
	default:
		return Vec2{half - (s - half - 2*arc - length), radius}
	}
}
