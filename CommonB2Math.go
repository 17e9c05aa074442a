package box2d

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// Vectors, matrices, transforms and sweeps
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

/// This function is used to ensure that a floating point number is not a NaN or infinity.
func B2IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func B2InvSqrt(x float64) float64 {
	return 1.0 / math.Sqrt(x)
}

///////////////////////////////////////////////////////////////////////////////
/// A 2D column vector.
///////////////////////////////////////////////////////////////////////////////
type B2Vec2 struct {
	X, Y float64
}

func MakeB2Vec2(xIn, yIn float64) B2Vec2 {
	return B2Vec2{X: xIn, Y: yIn}
}

func NewB2Vec2(xIn, yIn float64) *B2Vec2 {
	return &B2Vec2{X: xIn, Y: yIn}
}

func (v *B2Vec2) SetZero() {
	v.X = 0.0
	v.Y = 0.0
}

func (v *B2Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

func (v B2Vec2) OperatorNegate() B2Vec2 {
	return B2Vec2{X: -v.X, Y: -v.Y}
}

func (v *B2Vec2) OperatorPlusInplace(other B2Vec2) {
	v.X += other.X
	v.Y += other.Y
}

func (v *B2Vec2) OperatorMinusInplace(other B2Vec2) {
	v.X -= other.X
	v.Y -= other.Y
}

func (v *B2Vec2) OperatorScalarMulInplace(a float64) {
	v.X *= a
	v.Y *= a
}

func (v B2Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

/// Get the length squared. For performance, use this instead of
/// B2Vec2::Length (if possible).
func (v B2Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

/// Convert this vector into a unit vector. Returns the length.
/// Vectors shorter than epsilon are left untouched and report zero.
func (v *B2Vec2) Normalize() float64 {
	length := v.Length()
	if length < B2_epsilon {
		return 0.0
	}

	invLength := 1.0 / length
	v.X *= invLength
	v.Y *= invLength

	return length
}

func (v B2Vec2) IsValid() bool {
	return B2IsValid(v.X) && B2IsValid(v.Y)
}

/// Get the skew vector such that dot(skew_vec, other) == cross(vec, other)
func (v B2Vec2) Skew() B2Vec2 {
	return B2Vec2{X: -v.Y, Y: v.X}
}

///////////////////////////////////////////////////////////////////////////////
/// A 2D column vector with 3 elements.
///////////////////////////////////////////////////////////////////////////////
type B2Vec3 struct {
	X, Y, Z float64
}

func MakeB2Vec3(xIn, yIn, zIn float64) B2Vec3 {
	return B2Vec3{X: xIn, Y: yIn, Z: zIn}
}

func (v *B2Vec3) SetZero() {
	v.X = 0.0
	v.Y = 0.0
	v.Z = 0.0
}

func (v *B2Vec3) Set(x, y, z float64) {
	v.X = x
	v.Y = y
	v.Z = z
}

func (v B2Vec3) OperatorNegate() B2Vec3 {
	return B2Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v *B2Vec3) OperatorPlusInplace(other B2Vec3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

func (v *B2Vec3) OperatorMinusInplace(other B2Vec3) {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
}

func (v *B2Vec3) OperatorScalarMulInplace(a float64) {
	v.X *= a
	v.Y *= a
	v.Z *= a
}

///////////////////////////////////////////////////////////////////////////////
/// A 2-by-2 matrix. Stored in column-major order.
///////////////////////////////////////////////////////////////////////////////
type B2Mat22 struct {
	Col1, Col2 B2Vec2
}

func MakeB2Mat22() B2Mat22 {
	return B2Mat22{}
}

func MakeB2Mat22FromColumns(c1, c2 B2Vec2) B2Mat22 {
	return B2Mat22{Col1: c1, Col2: c2}
}

func MakeB2Mat22FromScalars(a11, a12, a21, a22 float64) B2Mat22 {
	return B2Mat22{
		Col1: MakeB2Vec2(a11, a21),
		Col2: MakeB2Vec2(a12, a22),
	}
}

/// Construct this matrix using an angle. This matrix becomes
/// an orthonormal rotation matrix.
func MakeB2Mat22FromAngle(angle float64) B2Mat22 {
	m := B2Mat22{}
	m.SetAngle(angle)
	return m
}

func (m *B2Mat22) Set(c1 B2Vec2, c2 B2Vec2) {
	m.Col1 = c1
	m.Col2 = c2
}

func (m *B2Mat22) SetAngle(angle float64) {
	c := math.Cos(angle)
	s := math.Sin(angle)
	m.Col1.X = c
	m.Col2.X = -s
	m.Col1.Y = s
	m.Col2.Y = c
}

func (m *B2Mat22) SetIdentity() {
	m.Col1.Set(1.0, 0.0)
	m.Col2.Set(0.0, 1.0)
}

func (m *B2Mat22) SetZero() {
	m.Col1.SetZero()
	m.Col2.SetZero()
}

/// Extract the angle from this matrix (assumed to be a rotation matrix).
func (m B2Mat22) GetAngle() float64 {
	return math.Atan2(m.Col1.Y, m.Col1.X)
}

/// Returns the zero matrix if singular.
func (m B2Mat22) GetInverse() B2Mat22 {
	a := m.Col1.X
	b := m.Col2.X
	c := m.Col1.Y
	d := m.Col2.Y

	det := a*d - b*c
	if det != 0.0 {
		det = 1.0 / det
	}

	return B2Mat22{
		Col1: MakeB2Vec2(det*d, -det*c),
		Col2: MakeB2Vec2(-det*b, det*a),
	}
}

/// Solve A * x = b, where b is a column vector. This is more efficient
/// than computing the inverse in one-shot cases. A singular matrix yields zero.
func (m B2Mat22) Solve(b B2Vec2) B2Vec2 {
	a11 := m.Col1.X
	a12 := m.Col2.X
	a21 := m.Col1.Y
	a22 := m.Col2.Y

	det := a11*a22 - a12*a21
	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeB2Vec2(
		det*(a22*b.X-a12*b.Y),
		det*(a11*b.Y-a21*b.X),
	)
}

///////////////////////////////////////////////////////////////////////////////
/// A 3-by-3 matrix. Stored in column-major order.
///////////////////////////////////////////////////////////////////////////////
type B2Mat33 struct {
	Col1, Col2, Col3 B2Vec3
}

func MakeB2Mat33FromColumns(c1, c2, c3 B2Vec3) B2Mat33 {
	return B2Mat33{Col1: c1, Col2: c2, Col3: c3}
}

func (m *B2Mat33) SetZero() {
	m.Col1.SetZero()
	m.Col2.SetZero()
	m.Col3.SetZero()
}

/// Solve A * x = b, where b is a column vector. A singular matrix yields zero.
func (m B2Mat33) Solve33(b B2Vec3) B2Vec3 {
	det := B2Vec3Dot(m.Col1, B2Vec3Cross(m.Col2, m.Col3))
	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeB2Vec3(
		det*B2Vec3Dot(b, B2Vec3Cross(m.Col2, m.Col3)),
		det*B2Vec3Dot(m.Col1, B2Vec3Cross(b, m.Col3)),
		det*B2Vec3Dot(m.Col1, B2Vec3Cross(m.Col2, b)),
	)
}

/// Solve A * x = b using only the upper 2-by-2 block.
func (m B2Mat33) Solve22(b B2Vec2) B2Vec2 {
	a11 := m.Col1.X
	a12 := m.Col2.X
	a21 := m.Col1.Y
	a22 := m.Col2.Y

	det := a11*a22 - a12*a21
	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeB2Vec2(
		det*(a22*b.X-a12*b.Y),
		det*(a11*b.Y-a21*b.X),
	)
}

///////////////////////////////////////////////////////////////////////////////
/// A transform contains translation and rotation. It is used to represent
/// the position and orientation of rigid frames.
///////////////////////////////////////////////////////////////////////////////
type B2Transform struct {
	P B2Vec2
	R B2Mat22
}

func MakeB2Transform() B2Transform {
	xf := B2Transform{}
	xf.SetIdentity()
	return xf
}

func MakeB2TransformByPositionAndAngle(position B2Vec2, angle float64) B2Transform {
	return B2Transform{
		P: position,
		R: MakeB2Mat22FromAngle(angle),
	}
}

func (t *B2Transform) SetIdentity() {
	t.P.SetZero()
	t.R.SetIdentity()
}

func (t *B2Transform) Set(position B2Vec2, angle float64) {
	t.P = position
	t.R.SetAngle(angle)
}

func (t B2Transform) GetAngle() float64 {
	return t.R.GetAngle()
}

///////////////////////////////////////////////////////////////////////////////
/// This describes the motion of a body/shape for TOI computation.
/// Shapes are defined with respect to the body origin, which may
/// no coincide with the center of mass. However, to support dynamics
/// we must interpolate the center of mass position.
///////////////////////////////////////////////////////////////////////////////
type B2Sweep struct {
	LocalCenter B2Vec2  ///< local center of mass position
	C0, C       B2Vec2  ///< center world positions
	A0, A       float64 ///< world angles

	/// Fraction of the current time step in the range [0,1]
	/// c0 and a0 are the positions at alpha0.
	Alpha0 float64
}

///////////////////////////////////////////////////////////////////////////////
// Free functions
///////////////////////////////////////////////////////////////////////////////

var B2Vec2_zero = MakeB2Vec2(0, 0)

/// Perform the dot product on two vectors.
func B2Vec2Dot(a, b B2Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

/// Perform the cross product on two vectors. In 2D this produces a scalar.
func B2Vec2Cross(a, b B2Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

/// Perform the cross product on a vector and a scalar. In 2D this produces
/// a vector.
func B2Vec2CrossVectorScalar(a B2Vec2, s float64) B2Vec2 {
	return MakeB2Vec2(s*a.Y, -s*a.X)
}

/// Perform the cross product on a scalar and a vector. In 2D this produces
/// a vector.
func B2Vec2CrossScalarVector(s float64, a B2Vec2) B2Vec2 {
	return MakeB2Vec2(-s*a.Y, s*a.X)
}

/// Multiply a matrix times a vector. If a rotation matrix is provided,
/// then this transforms the vector from one frame to another.
func B2Vec2Mat22Mul(A B2Mat22, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(A.Col1.X*v.X+A.Col2.X*v.Y, A.Col1.Y*v.X+A.Col2.Y*v.Y)
}

/// Multiply a matrix transpose times a vector. If a rotation matrix is provided,
/// then this transforms the vector from one frame to another (inverse transform).
func B2Vec2Mat22MulT(A B2Mat22, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(B2Vec2Dot(v, A.Col1), B2Vec2Dot(v, A.Col2))
}

func B2Vec2Add(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(a.X+b.X, a.Y+b.Y)
}

func B2Vec2Sub(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(a.X-b.X, a.Y-b.Y)
}

func B2Vec2MulScalar(s float64, a B2Vec2) B2Vec2 {
	return MakeB2Vec2(s*a.X, s*a.Y)
}

func B2Vec2Equals(a, b B2Vec2) bool {
	return a.X == b.X && a.Y == b.Y
}

func B2Vec2Distance(a, b B2Vec2) float64 {
	return B2Vec2Sub(a, b).Length()
}

func B2Vec2DistanceSquared(a, b B2Vec2) float64 {
	c := B2Vec2Sub(a, b)
	return B2Vec2Dot(c, c)
}

func B2Vec3MulScalar(s float64, a B2Vec3) B2Vec3 {
	return MakeB2Vec3(s*a.X, s*a.Y, s*a.Z)
}

func B2Vec3Add(a, b B2Vec3) B2Vec3 {
	return MakeB2Vec3(a.X+b.X, a.Y+b.Y, a.Z+b.Z)
}

func B2Vec3Sub(a, b B2Vec3) B2Vec3 {
	return MakeB2Vec3(a.X-b.X, a.Y-b.Y, a.Z-b.Z)
}

func B2Vec3Dot(a, b B2Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func B2Vec3Cross(a, b B2Vec3) B2Vec3 {
	return MakeB2Vec3(a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X)
}

func B2Mat22Add(A, B B2Mat22) B2Mat22 {
	return MakeB2Mat22FromColumns(B2Vec2Add(A.Col1, B.Col1), B2Vec2Add(A.Col2, B.Col2))
}

// A * B
func B2Mat22Mul(A, B B2Mat22) B2Mat22 {
	return MakeB2Mat22FromColumns(B2Vec2Mat22Mul(A, B.Col1), B2Vec2Mat22Mul(A, B.Col2))
}

// A^T * B
func B2Mat22MulT(A, B B2Mat22) B2Mat22 {
	c1 := MakeB2Vec2(B2Vec2Dot(A.Col1, B.Col1), B2Vec2Dot(A.Col2, B.Col1))
	c2 := MakeB2Vec2(B2Vec2Dot(A.Col1, B.Col2), B2Vec2Dot(A.Col2, B.Col2))
	return MakeB2Mat22FromColumns(c1, c2)
}

/// Multiply a matrix times a vector.
func B2Vec3Mat33Mul(A B2Mat33, v B2Vec3) B2Vec3 {
	return B2Vec3Add(
		B2Vec3Add(B2Vec3MulScalar(v.X, A.Col1), B2Vec3MulScalar(v.Y, A.Col2)),
		B2Vec3MulScalar(v.Z, A.Col3),
	)
}

func B2TransformVec2Mul(T B2Transform, v B2Vec2) B2Vec2 {
	return B2Vec2Add(T.P, B2Vec2Mat22Mul(T.R, v))
}

func B2TransformVec2MulT(T B2Transform, v B2Vec2) B2Vec2 {
	return B2Vec2Mat22MulT(T.R, B2Vec2Sub(v, T.P))
}

func B2Vec2Abs(a B2Vec2) B2Vec2 {
	return MakeB2Vec2(math.Abs(a.X), math.Abs(a.Y))
}

func B2Mat22Abs(A B2Mat22) B2Mat22 {
	return MakeB2Mat22FromColumns(B2Vec2Abs(A.Col1), B2Vec2Abs(A.Col2))
}

func B2Vec2Min(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(math.Min(a.X, b.X), math.Min(a.Y, b.Y))
}

func B2Vec2Max(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(math.Max(a.X, b.X), math.Max(a.Y, b.Y))
}

func B2FloatClamp(a, low, high float64) float64 {
	return math.Max(low, math.Min(a, high))
}

/// "Next Largest Power of 2
/// Given a binary integer value x, the next largest power of 2 can be computed by a SWAR algorithm
/// that recursively "folds" the upper bits into the lower bits."
func B2NextPowerOfTwo(x uint32) uint32 {
	x |= (x >> 1)
	x |= (x >> 2)
	x |= (x >> 4)
	x |= (x >> 8)
	x |= (x >> 16)
	return x + 1
}

func B2IsPowerOfTwo(x uint32) bool {
	return x > 0 && (x&(x-1)) == 0
}

/// Get the interpolated transform at a specific time.
/// t is the normalized time in [0,1] over the whole step; the sweep
/// itself only covers [Alpha0, 1].
func (sweep B2Sweep) GetTransform(xf *B2Transform, t float64) {
	if 1.0-sweep.Alpha0 > B2_epsilon {
		alpha := (t - sweep.Alpha0) / (1.0 - sweep.Alpha0)
		xf.P = B2Vec2Add(
			B2Vec2MulScalar(1.0-alpha, sweep.C0),
			B2Vec2MulScalar(alpha, sweep.C),
		)
		xf.R.SetAngle((1.0-alpha)*sweep.A0 + alpha*sweep.A)
	} else {
		xf.P = sweep.C
		xf.R.SetAngle(sweep.A)
	}

	// Shift to origin
	xf.P.OperatorMinusInplace(B2Vec2Mat22Mul(xf.R, sweep.LocalCenter))
}

/// Advance the sweep forward, yielding a new initial state.
/// t is the new initial time.
func (sweep *B2Sweep) Advance(t float64) {
	if sweep.Alpha0 < t && 1.0-sweep.Alpha0 > B2_epsilon {
		alpha := (t - sweep.Alpha0) / (1.0 - sweep.Alpha0)
		sweep.C0 = B2Vec2Add(
			B2Vec2MulScalar(1.0-alpha, sweep.C0),
			B2Vec2MulScalar(alpha, sweep.C),
		)
		sweep.A0 = (1.0-alpha)*sweep.A0 + alpha*sweep.A
		sweep.Alpha0 = t
	}
}

/// Normalize an angle in radians to be between -pi and pi
func (sweep *B2Sweep) Normalize() {
	twoPi := 2.0 * B2_pi
	d := twoPi * math.Floor(sweep.A0/twoPi)
	sweep.A0 -= d
	sweep.A -= d
}
