package geom

// SegmentSphereIntersect reports whether the straight segment from p1 to p2
// passes within radius r of the origin. This includes the case where one or
// both endpoints are already inside the sphere: the test is against the solid
// ball, since a trajectory chord anywhere inside the protected region counts
// as a hit.
func SegmentSphereIntersect(p1, p2 *Vec, r float64) bool {
	var d Vec
	p2.Sub(p1, &d)

	d2 := d.Norm2()
	if d2 == 0 {
		return p1.Norm2() <= r*r
	}

	// Closest approach of the infinite line, clamped to the segment.
	t := -p1.Dot(&d) / d2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	var closest Vec
	d.Scale(t, &closest)
	closest.Add(p1, &closest)
	return closest.Norm2() <= r*r
}
