package adcs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Quaternion defines a rotation quaternion with the vector part first and the scalar part W last.
// Products follow the Hamilton convention.
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion returns the quaternion of the null rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// NewQuaternion returns the quaternion of a rotation of angle θ (in radians) about the provided axis.
// The axis need not be normalized, but it must not be the nil vector.
func NewQuaternion(axis []float64, θ float64) Quaternion {
	u := unit(axis)
	s, c := math.Sincos(θ / 2)
	return Quaternion{u[0] * s, u[1] * s, u[2] * s, c}
}

// QuaternionFromSlice returns a quaternion from a [x, y, z, w] slice.
func QuaternionFromSlice(q []float64) Quaternion {
	return Quaternion{q[0], q[1], q[2], q[3]}
}

// Slice returns the quaternion as [x, y, z, w].
func (q Quaternion) Slice() []float64 {
	return []float64{q.X, q.Y, q.Z, q.W}
}

// Vector returns the vector part of this quaternion.
func (q Quaternion) Vector() []float64 {
	return []float64{q.X, q.Y, q.Z}
}

// Norm returns the norm of this quaternion.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns the unit quaternion of q, or the identity if q is nil.
func (q Quaternion) Normalize() Quaternion {
	n := q.Norm()
	if scalar.EqualWithinAbs(n, 0, zeroNorm) {
		return IdentityQuaternion()
	}
	return Quaternion{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// Conjugate returns the conjugate of q, which is the inverse rotation for a unit quaternion.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// Canonical returns q or -q such that the scalar part is non-negative.
func (q Quaternion) Canonical() Quaternion {
	if q.W < 0 {
		return Quaternion{-q.X, -q.Y, -q.Z, -q.W}
	}
	return q
}

// Mul returns the Hamilton product q*p, i.e. the rotation p followed by the rotation q.
func (q Quaternion) Mul(p Quaternion) Quaternion {
	qv, pv := q.Vector(), p.Vector()
	c := cross(qv, pv)
	return Quaternion{
		q.W*p.X + p.W*q.X + c[0],
		q.W*p.Y + p.W*q.Y + c[1],
		q.W*p.Z + p.W*q.Z + c[2],
		q.W*p.W - dot(qv, pv),
	}
}

// Rotate returns q*v*q^-1, i.e. the vector v actively rotated by q.
// For a quaternion returned by the estimator, this maps a body frame vector to the reference frame.
func (q Quaternion) Rotate(v []float64) []float64 {
	r := q.Mul(Quaternion{v[0], v[1], v[2], 0}).Mul(q.Conjugate())
	return []float64{r.X, r.Y, r.Z}
}

// DCM returns the direction cosine matrix A of this quaternion, such that b = A*r for r in the reference
// frame and b in the body frame. This is the same passive convention as R1, R2 and R3.
func (q Quaternion) DCM() *mat.Dense {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return mat.NewDense(3, 3, []float64{
		w*w + x*x - y*y - z*z, 2 * (x*y + z*w), 2 * (x*z - y*w),
		2 * (x*y - z*w), w*w - x*x + y*y - z*z, 2 * (y*z + x*w),
		2 * (x*z + y*w), 2 * (y*z - x*w), w*w - x*x - y*y + z*z,
	})
}

// QuaternionFromDCM returns the quaternion of the provided direction cosine matrix (Shepperd's method).
// The returned quaternion has a non-negative scalar part.
func QuaternionFromDCM(A mat.Matrix) Quaternion {
	tr := mat.Trace(A)
	var q Quaternion
	switch floats.MaxIdx([]float64{tr, A.At(0, 0), A.At(1, 1), A.At(2, 2)}) {
	case 0:
		q.W = 0.5 * math.Sqrt(1+tr)
		f := 4 * q.W
		q.X = (A.At(1, 2) - A.At(2, 1)) / f
		q.Y = (A.At(2, 0) - A.At(0, 2)) / f
		q.Z = (A.At(0, 1) - A.At(1, 0)) / f
	case 1:
		q.X = 0.5 * math.Sqrt(1+A.At(0, 0)-A.At(1, 1)-A.At(2, 2))
		f := 4 * q.X
		q.W = (A.At(1, 2) - A.At(2, 1)) / f
		q.Y = (A.At(0, 1) + A.At(1, 0)) / f
		q.Z = (A.At(0, 2) + A.At(2, 0)) / f
	case 2:
		q.Y = 0.5 * math.Sqrt(1-A.At(0, 0)+A.At(1, 1)-A.At(2, 2))
		f := 4 * q.Y
		q.W = (A.At(2, 0) - A.At(0, 2)) / f
		q.X = (A.At(0, 1) + A.At(1, 0)) / f
		q.Z = (A.At(1, 2) + A.At(2, 1)) / f
	case 3:
		q.Z = 0.5 * math.Sqrt(1-A.At(0, 0)-A.At(1, 1)+A.At(2, 2))
		f := 4 * q.Z
		q.W = (A.At(0, 1) - A.At(1, 0)) / f
		q.X = (A.At(0, 2) + A.At(2, 0)) / f
		q.Y = (A.At(1, 2) + A.At(2, 1)) / f
	}
	return q.Canonical()
}

// Angle returns the rotation angle of q in radians, in [0, π].
func (q Quaternion) Angle() float64 {
	n := q.Normalize().Canonical()
	return 2 * math.Atan2(norm(n.Vector()), n.W)
}

// AngleTo returns the angle (in radians) of the rotation between q and o.
func (q Quaternion) AngleTo(o Quaternion) float64 {
	return q.Conjugate().Mul(o).Angle()
}

// Equals returns whether both quaternions represent the same rotation within the provided tolerance
// on each component, accounting for the q = -q ambiguity.
func (q Quaternion) Equals(o Quaternion, tol float64) bool {
	return floats.EqualApprox(q.Slice(), o.Slice(), tol) || floats.EqualApprox(q.Slice(), floats.ScaleTo(make([]float64, 4), -1, o.Slice()), tol)
}

// MRP returns the (short) modified Rodrigues parameters of this quaternion.
func (q Quaternion) MRP() MRP {
	// The canonical quaternion has w >= 0, which already yields |σ| <= 1.
	n := q.Normalize().Canonical()
	s := MRP{n.X / (1 + n.W), n.Y / (1 + n.W), n.Z / (1 + n.W)}
	s.Short()
	return s
}

func (q Quaternion) String() string {
	return fmt.Sprintf("[%.9f %.9f %.9f | %.9f]", q.X, q.Y, q.Z, q.W)
}

/*-----*/
/* Modified Rodrigez Parameters */
/*-----*/

// MRP defines Modified Rodrigez Parameters.
type MRP struct {
	s1, s2, s3 float64
}

// NewMRP returns a new MRP from its three parameters.
func NewMRP(s1, s2, s3 float64) MRP {
	return MRP{s1, s2, s3}
}

func (s *MRP) squared() float64 {
	return s.s1*s.s1 + s.s2*s.s2 + s.s3*s.s3
}

func (s *MRP) norm() float64 {
	return math.Sqrt(s.squared())
}

// Short refreshes this MRP representation to use its short notation.
func (s *MRP) Short() {
	if s.norm() > 1 {
		// Switch to shadow set.
		sq := s.squared()
		s.s1 = -s.s1 / sq
		s.s2 = -s.s2 / sq
		s.s3 = -s.s3 / sq
	}
}

// Equals returns whether both MRPs represent the same attitude within the provided tolerance.
func (s *MRP) Equals(o *MRP, tol float64) bool {
	a, b := *s, *o
	a.Short()
	b.Short()
	return floats.EqualApprox(a.Slice(), b.Slice(), tol)
}

// Slice returns the MRP as [σ1, σ2, σ3].
func (s *MRP) Slice() []float64 {
	return []float64{s.s1, s.s2, s.s3}
}

// Tilde returns the tilde matrix of this MRP.
// The m parameter allows to multiply directly the Tilde matrix.
func (s *MRP) Tilde(m float64) *mat.Dense {
	return Skew([]float64{s.s1 * m, s.s2 * m, s.s3 * m})
}

// Quaternion returns the unit quaternion of this MRP.
func (s *MRP) Quaternion() Quaternion {
	sq := s.squared()
	f := 2 / (1 + sq)
	return Quaternion{s.s1 * f, s.s2 * f, s.s3 * f, (1 - sq) / (1 + sq)}
}
