package box2d

import (
	"fmt"
	"math"
)

/// A circle shape.
type B2CircleShape struct {
	B2Shape

	/// Position relative to the body origin.
	M_p      B2Vec2
	M_radius float64
}

func MakeB2CircleShape(radius float64) B2CircleShape {
	return B2CircleShape{
		B2Shape: B2Shape{
			M_type: B2Shape_Type.E_circle,
		},
		M_radius: radius,
	}
}

func NewB2CircleShape(radius float64) *B2CircleShape {
	res := MakeB2CircleShape(radius)
	return &res
}

///////////////////////////////////////////////////////////////////////////////

func (shape B2CircleShape) Clone() B2ShapeInterface {
	clone := shape
	return &clone
}

func (shape B2CircleShape) GetRadius() float64 {
	return shape.M_radius
}

func (shape B2CircleShape) TestPoint(transform B2Transform, p B2Vec2) bool {
	center := B2TransformVec2Mul(transform, shape.M_p)
	d := B2Vec2Sub(p, center)
	return B2Vec2Dot(d, d) <= shape.M_radius*shape.M_radius
}

// Collision Detection in Interactive 3D Environments by Gino van den Bergen
// From Section 3.1.2
// x = s + a * r
// norm(x) = radius
func (shape B2CircleShape) TestSegment(transform B2Transform, out *B2RayCastOutput, segment B2Segment, maxLambda float64) uint8 {
	position := B2TransformVec2Mul(transform, shape.M_p)
	s := B2Vec2Sub(segment.P1, position)
	b := B2Vec2Dot(s, s) - shape.M_radius*shape.M_radius

	// Does the segment start inside the circle?
	if b < 0.0 {
		return B2SegmentCollide.E_startsInside
	}

	// Solve quadratic equation.
	r := B2Vec2Sub(segment.P2, segment.P1)
	c := B2Vec2Dot(s, r)
	rr := B2Vec2Dot(r, r)
	sigma := c*c - rr*b

	// Check for negative discriminant and short segment.
	if sigma < 0.0 || rr < B2_epsilon {
		return B2SegmentCollide.E_miss
	}

	// Find the point of intersection of the line with the circle.
	a := -(c + math.Sqrt(sigma))

	// Is the intersection point on the segment?
	if 0.0 <= a && a <= maxLambda*rr {
		a /= rr
		out.Lambda = a
		out.Normal = B2Vec2Add(s, B2Vec2MulScalar(a, r))
		out.Normal.Normalize()
		return B2SegmentCollide.E_hit
	}

	return B2SegmentCollide.E_miss
}

func (shape B2CircleShape) ComputeAABB(aabb *B2AABB, transform B2Transform) {
	p := B2TransformVec2Mul(transform, shape.M_p)
	aabb.LowerBound.Set(p.X-shape.M_radius, p.Y-shape.M_radius)
	aabb.UpperBound.Set(p.X+shape.M_radius, p.Y+shape.M_radius)
}

func (shape B2CircleShape) ComputeSweptAABB(aabb *B2AABB, transform1, transform2 B2Transform) {
	p1 := B2TransformVec2Mul(transform1, shape.M_p)
	p2 := B2TransformVec2Mul(transform2, shape.M_p)
	lower := B2Vec2Min(p1, p2)
	upper := B2Vec2Max(p1, p2)

	aabb.LowerBound.Set(lower.X-shape.M_radius, lower.Y-shape.M_radius)
	aabb.UpperBound.Set(upper.X+shape.M_radius, upper.Y+shape.M_radius)
}

func (shape B2CircleShape) ComputeMass(massData *B2MassData, density float64) {
	massData.Mass = density * B2_pi * shape.M_radius * shape.M_radius
	massData.Center = shape.M_p

	// inertia about the local origin
	massData.I = massData.Mass * (0.5*shape.M_radius*shape.M_radius + B2Vec2Dot(shape.M_p, shape.M_p))
}

func (shape B2CircleShape) ComputeSubmergedArea(normal B2Vec2, offset float64, xf B2Transform, c *B2Vec2) float64 {
	p := B2TransformVec2Mul(xf, shape.M_p)
	l := -(B2Vec2Dot(normal, p) - offset)
	r := shape.M_radius

	if l < -r+B2_epsilon {
		// Completely dry
		return 0.0
	}

	if l > r {
		// Completely wet
		*c = p
		return B2_pi * r * r
	}

	// Magic
	r2 := r * r
	l2 := l * l
	area := r2*(math.Asin(l/r)+B2_pi/2.0) + l*math.Sqrt(r2-l2)
	com := -2.0 / 3.0 * math.Pow(r2-l2, 1.5) / area

	*c = B2Vec2Add(p, B2Vec2MulScalar(com, normal))
	return area
}

/// The core circle is shrunk by the TOI slop.
func (shape B2CircleShape) Support(xf B2Transform, d B2Vec2) B2Vec2 {
	p := B2TransformVec2Mul(xf, shape.M_p)
	n := d
	if n.Normalize() < B2_epsilon {
		return p
	}
	return B2Vec2Add(p, B2Vec2MulScalar(shape.M_radius-B2_toiSlop, n))
}

func (shape B2CircleShape) GetFirstVertex(xf B2Transform) B2Vec2 {
	return B2TransformVec2Mul(xf, shape.M_p)
}

func (shape *B2CircleShape) UpdateSweepRadius(center B2Vec2) {
	// Update the sweep radius (maximum radius) as measured from
	// a local center point.
	d := B2Vec2Sub(shape.M_p, center)
	shape.M_sweepRadius = d.Length() + shape.M_radius - B2_toiSlop
}

func (shape B2CircleShape) Dump() {
	fmt.Print("    shape := box2d.NewB2CircleShape(")
	fmt.Printf("%.15e)\n", shape.M_radius)
	fmt.Printf("    shape.M_p.Set(%.15e, %.15e)\n", shape.M_p.X, shape.M_p.Y)
}
