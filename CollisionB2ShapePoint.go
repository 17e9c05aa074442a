package box2d

import (
	"fmt"
	"math"
)

/// A point shape. It has no area; its mass is given explicitly and sits at
/// the local position. Points collide with circles and polygons only.
type B2PointShape struct {
	B2Shape

	M_p    B2Vec2
	M_mass float64
}

func MakeB2PointShape(localPosition B2Vec2, mass float64) B2PointShape {
	return B2PointShape{
		B2Shape: B2Shape{
			M_type: B2Shape_Type.E_point,
		},
		M_p:    localPosition,
		M_mass: mass,
	}
}

func NewB2PointShape(localPosition B2Vec2, mass float64) *B2PointShape {
	res := MakeB2PointShape(localPosition, mass)
	return &res
}

func (shape B2PointShape) Clone() B2ShapeInterface {
	clone := shape
	return &clone
}

func (shape B2PointShape) GetLocalPosition() B2Vec2 {
	return shape.M_p
}

func (shape B2PointShape) GetMass() float64 {
	return shape.M_mass
}

func (shape B2PointShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	return false
}

func (shape B2PointShape) TestSegment(xf B2Transform, out *B2RayCastOutput, segment B2Segment, maxLambda float64) uint8 {
	return B2SegmentCollide.E_miss
}

func (shape B2PointShape) ComputeAABB(aabb *B2AABB, xf B2Transform) {
	p := B2TransformVec2Mul(xf, shape.M_p)
	aabb.LowerBound.Set(p.X-B2_epsilon, p.Y-B2_epsilon)
	aabb.UpperBound.Set(p.X+B2_epsilon, p.Y+B2_epsilon)
}

func (shape B2PointShape) ComputeSweptAABB(aabb *B2AABB, xf1, xf2 B2Transform) {
	p1 := B2TransformVec2Mul(xf1, shape.M_p)
	p2 := B2TransformVec2Mul(xf2, shape.M_p)
	lower := B2Vec2Min(p1, p2)
	upper := B2Vec2Max(p1, p2)
	aabb.LowerBound.Set(lower.X-B2_epsilon, lower.Y-B2_epsilon)
	aabb.UpperBound.Set(upper.X+B2_epsilon, upper.Y+B2_epsilon)
}

// The density is ignored.
func (shape B2PointShape) ComputeMass(massData *B2MassData, density float64) {
	massData.Mass = shape.M_mass
	massData.Center = shape.M_p
	massData.I = shape.M_mass * B2Vec2Dot(shape.M_p, shape.M_p)
}

func (shape B2PointShape) ComputeSubmergedArea(normal B2Vec2, offset float64, xf B2Transform, c *B2Vec2) float64 {
	return 0.0
}

func (shape B2PointShape) Support(xf B2Transform, d B2Vec2) B2Vec2 {
	return B2TransformVec2Mul(xf, shape.M_p)
}

func (shape B2PointShape) GetFirstVertex(xf B2Transform) B2Vec2 {
	return B2TransformVec2Mul(xf, shape.M_p)
}

func (shape *B2PointShape) UpdateSweepRadius(center B2Vec2) {
	d := B2Vec2Sub(shape.M_p, center)
	shape.M_sweepRadius = math.Max(d.Length()-B2_toiSlop, 0.0)
}

func (shape B2PointShape) Dump() {
	fmt.Printf("    shape := box2d.NewB2PointShape(box2d.MakeB2Vec2(%.15e, %.15e), %.15e)\n",
		shape.M_p.X, shape.M_p.Y, shape.M_mass)
}
