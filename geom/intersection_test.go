package geom

import (
	"testing"
)

func TestSegmentSphereIntersect(t *testing.T) {
	table := []struct {
		p1, p2 Vec
		r float64
		res bool
	}{
		// Endpoints straddle the sphere.
		{Vec{0.5, 0, 0}, Vec{2, 0, 0}, 1, true},
		{Vec{2, 0, 0}, Vec{0.5, 0, 0}, 1, true},
		// Both endpoints outside, chord passes through.
		{Vec{-2, 0.5, 0}, Vec{2, 0.5, 0}, 1, true},
		// Both endpoints outside, chord misses.
		{Vec{-2, 1.5, 0}, Vec{2, 1.5, 0}, 1, false},
		// Both endpoints outside on the same side.
		{Vec{2, 0, 0}, Vec{3, 0, 0}, 1, false},
		// Both endpoints inside.
		{Vec{0.1, 0, 0}, Vec{-0.2, 0.1, 0}, 1, true},
		// Endpoint exactly on the sphere.
		{Vec{1, 0, 0}, Vec{2, 0, 0}, 1, true},
		// Degenerate zero-length segment.
		{Vec{0.5, 0, 0}, Vec{0.5, 0, 0}, 1, true},
		{Vec{2, 0, 0}, Vec{2, 0, 0}, 1, false},
		// Grazing chord off axis.
		{Vec{-2, 0, 0.999}, Vec{2, 0, 0.999}, 1, true},
	}

	for i, test := range table {
		res := SegmentSphereIntersect(&test.p1, &test.p2, test.r)
		if res != test.res {
			t.Errorf(
				"%d) SegmentSphereIntersect(%v, %v, %g) = %v, want %v",
				i, test.p1, test.p2, test.r, res, test.res,
			)
		}
	}
}

func BenchmarkSegmentSphereIntersect(b *testing.B) {
	p1, p2 := Vec{-2, 0.5, 0.1}, Vec{2, 0.3, -0.4}
	for n := 0; n < b.N; n++ {
		SegmentSphereIntersect(&p1, &p2, 1)
	}
}
