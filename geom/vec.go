/*package geom contains the geometric types shared by the field and trajectory
code: 3-vectors, coil arrays discretized into current-carrying panels, and the
segment-sphere intersection kernel used for hit classification.
*/
package geom

import (
	"math"

	"github.com/kirbyh/mag-fields/math/mat"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Vec2 is a two dimensional vector. Cross-section polylines are sequences of
// these prior to being embedded in 3D.
type Vec2 [2]float64

// Add stores v1 + v2 in out.
func (v1 *Vec) Add(v2, out *Vec) {
	out[0] = v1[0] + v2[0]
	out[1] = v1[1] + v2[1]
	out[2] = v1[2] + v2[2]
}

// Sub stores v1 - v2 in out.
func (v1 *Vec) Sub(v2, out *Vec) {
	out[0] = v1[0] - v2[0]
	out[1] = v1[1] - v2[1]
	out[2] = v1[2] - v2[2]
}

// Scale stores a*v in out.
func (v *Vec) Scale(a float64, out *Vec) {
	out[0] = a * v[0]
	out[1] = a * v[1]
	out[2] = a * v[2]
}

// Dot returns the inner product of v1 and v2.
func (v1 *Vec) Dot(v2 *Vec) float64 {
	return v1[0]*v2[0] + v1[1]*v2[1] + v1[2]*v2[2]
}

// Cross stores v1 x v2 in out. out must not alias either input.
func (v1 *Vec) Cross(v2, out *Vec) {
	out[0] = v1[1]*v2[2] - v1[2]*v2[1]
	out[1] = v1[2]*v2[0] - v1[0]*v2[2]
	out[2] = v1[0]*v2[1] - v1[1]*v2[0]
}

// Norm returns the Euclidean length of v.
func (v *Vec) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Norm2 returns the squared Euclidean length of v.
func (v *Vec) Norm2() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Rotate rotates a vector by the given rotation matrix.
func (v *Vec) Rotate(m *mat.Matrix) {
	v0 := m.Vals[0]*v[0] + m.Vals[1]*v[1] + m.Vals[2]*v[2]
	v1 := m.Vals[3]*v[0] + m.Vals[4]*v[1] + m.Vals[5]*v[2]
	v2 := m.Vals[6]*v[0] + m.Vals[7]*v[1] + m.Vals[8]*v[2]
	v[0], v[1], v[2] = v0, v1, v2
}
