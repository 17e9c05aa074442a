package box2d

import (
	"fmt"
	"math"
)

/// A one-sided line segment. Edges have no mass and are meant for static
/// terrain. Edges created together by B2Body.CreateEdgeChain are linked so
/// that their core vertices and corner directions meet at shared vertices.
type B2EdgeShape struct {
	B2Shape

	M_v1, M_v2         B2Vec2
	M_coreV1, M_coreV2 B2Vec2

	M_length float64

	/// Points from the solid side to the empty side.
	M_normal B2Vec2

	/// Unit vector from v1 to v2.
	M_direction B2Vec2

	// Unit vectors halfway between this edge's direction and the
	// previous/next edge's direction.
	M_cornerDir1, M_cornerDir2       B2Vec2
	M_cornerConvex1, M_cornerConvex2 bool

	M_prevEdge, M_nextEdge *B2EdgeShape
}

func MakeB2EdgeShape() B2EdgeShape {
	return B2EdgeShape{
		B2Shape: B2Shape{
			M_type: B2Shape_Type.E_edge,
		},
	}
}

/// Create a lone edge from v1 to v2.
func NewB2EdgeShape(v1, v2 B2Vec2) (*B2EdgeShape, error) {
	edge := MakeB2EdgeShape()
	if err := edge.Set(v1, v2); err != nil {
		return nil, err
	}
	return &edge, nil
}

/// Set the vertices. The empty side is to the right when walking from v1 to
/// v2. Any chain links are dropped.
func (edge *B2EdgeShape) Set(v1, v2 B2Vec2) error {
	direction := B2Vec2Sub(v2, v1)
	length := direction.Normalize()
	if length < B2_linearSlop {
		return fmt.Errorf("%w: length %v is below %v", ErrInvalidEdge, length, B2_linearSlop)
	}

	edge.M_v1 = v1
	edge.M_v2 = v2
	edge.M_direction = direction
	edge.M_length = length
	edge.M_normal = MakeB2Vec2(direction.Y, -direction.X)

	edge.M_coreV1 = B2Vec2Add(v1, B2Vec2MulScalar(-B2_toiSlop, B2Vec2Sub(edge.M_normal, direction)))
	edge.M_coreV2 = B2Vec2Add(v2, B2Vec2MulScalar(-B2_toiSlop, B2Vec2Add(edge.M_normal, direction)))

	edge.M_cornerDir1 = edge.M_normal
	edge.M_cornerDir2 = edge.M_normal.OperatorNegate()
	edge.M_cornerConvex1 = false
	edge.M_cornerConvex2 = false

	edge.M_prevEdge = nil
	edge.M_nextEdge = nil

	return nil
}

// The clone keeps its corner data but not its links to neighbours.
func (edge B2EdgeShape) Clone() B2ShapeInterface {
	clone := edge
	clone.M_prevEdge = nil
	clone.M_nextEdge = nil
	return &clone
}

func (edge B2EdgeShape) GetVertex1() B2Vec2 {
	return edge.M_v1
}

func (edge B2EdgeShape) GetVertex2() B2Vec2 {
	return edge.M_v2
}

func (edge B2EdgeShape) GetCoreVertex1() B2Vec2 {
	return edge.M_coreV1
}

func (edge B2EdgeShape) GetCoreVertex2() B2Vec2 {
	return edge.M_coreV2
}

func (edge B2EdgeShape) GetLength() float64 {
	return edge.M_length
}

func (edge B2EdgeShape) GetNormalVector() B2Vec2 {
	return edge.M_normal
}

func (edge B2EdgeShape) GetDirectionVector() B2Vec2 {
	return edge.M_direction
}

func (edge B2EdgeShape) GetCorner1Vector() B2Vec2 {
	return edge.M_cornerDir1
}

func (edge B2EdgeShape) GetCorner2Vector() B2Vec2 {
	return edge.M_cornerDir2
}

func (edge B2EdgeShape) Corner1IsConvex() bool {
	return edge.M_cornerConvex1
}

func (edge B2EdgeShape) Corner2IsConvex() bool {
	return edge.M_cornerConvex2
}

func (edge B2EdgeShape) GetPrevEdge() *B2EdgeShape {
	return edge.M_prevEdge
}

func (edge B2EdgeShape) GetNextEdge() *B2EdgeShape {
	return edge.M_nextEdge
}

func (edge *B2EdgeShape) setPrevEdge(prev *B2EdgeShape, core B2Vec2, cornerDir B2Vec2, convex bool) {
	edge.M_prevEdge = prev
	edge.M_coreV1 = core
	edge.M_cornerDir1 = cornerDir
	edge.M_cornerConvex1 = convex
}

func (edge *B2EdgeShape) setNextEdge(next *B2EdgeShape, core B2Vec2, cornerDir B2Vec2, convex bool) {
	edge.M_nextEdge = next
	edge.M_coreV2 = core
	edge.M_cornerDir2 = cornerDir
	edge.M_cornerConvex2 = convex
}

// Join s1's end to s2's start. angle1 is the direction angle of s1; the
// direction angle of s2 is returned for the next joint of the chain.
func b2ConnectEdges(s1, s2 *B2EdgeShape, angle1 float64) float64 {
	angle2 := math.Atan2(s2.M_direction.Y, s2.M_direction.X)

	core := B2Vec2MulScalar(math.Tan((angle2-angle1)*0.5), s2.M_direction)
	core = B2Vec2Add(B2Vec2MulScalar(B2_toiSlop, B2Vec2Sub(core, s2.M_normal)), s2.M_v1)

	cornerDir := B2Vec2Add(s1.M_direction, s2.M_direction)
	cornerDir.Normalize()

	convex := B2Vec2Dot(s1.M_direction, s2.M_normal) > 0.0
	s1.setNextEdge(s2, core, cornerDir, convex)
	s2.setPrevEdge(s1, core, cornerDir, convex)

	return angle2
}

func (edge B2EdgeShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	return false
}

/// Only rays arriving from the empty side hit.
func (edge B2EdgeShape) TestSegment(xf B2Transform, out *B2RayCastOutput, segment B2Segment, maxLambda float64) uint8 {
	r := B2Vec2Sub(segment.P2, segment.P1)
	v1 := B2TransformVec2Mul(xf, edge.M_v1)
	d := B2Vec2Sub(B2TransformVec2Mul(xf, edge.M_v2), v1)
	n := B2Vec2CrossVectorScalar(d, 1.0)

	k_slop := 100.0 * B2_epsilon
	denom := -B2Vec2Dot(r, n)

	// Cull back facing collision and ignore parallel segments.
	if denom <= k_slop {
		return B2SegmentCollide.E_miss
	}

	// Does the segment intersect the infinite line associated with this edge?
	b := B2Vec2Sub(segment.P1, v1)
	a := B2Vec2Dot(b, n)
	if a < 0.0 || a > maxLambda*denom {
		return B2SegmentCollide.E_miss
	}

	// Does the segment intersect this edge?
	mu2 := -r.X*b.Y + r.Y*b.X
	if mu2 < -k_slop*denom || mu2 > denom*(1.0+k_slop) {
		return B2SegmentCollide.E_miss
	}

	n.Normalize()
	out.Lambda = a / denom
	out.Normal = n
	return B2SegmentCollide.E_hit
}

func (edge B2EdgeShape) ComputeAABB(aabb *B2AABB, xf B2Transform) {
	v1 := B2TransformVec2Mul(xf, edge.M_v1)
	v2 := B2TransformVec2Mul(xf, edge.M_v2)
	aabb.LowerBound = B2Vec2Min(v1, v2)
	aabb.UpperBound = B2Vec2Max(v1, v2)
}

func (edge B2EdgeShape) ComputeSweptAABB(aabb *B2AABB, xf1, xf2 B2Transform) {
	var aabb1, aabb2 B2AABB
	edge.ComputeAABB(&aabb1, xf1)
	edge.ComputeAABB(&aabb2, xf2)
	aabb.LowerBound = B2Vec2Min(aabb1.LowerBound, aabb2.LowerBound)
	aabb.UpperBound = B2Vec2Max(aabb1.UpperBound, aabb2.UpperBound)
}

// Edges are massless. The density is ignored.
func (edge B2EdgeShape) ComputeMass(massData *B2MassData, density float64) {
	massData.Mass = 0.0
	massData.Center = edge.M_v1
	massData.I = 0.0
}

/// The submerged area of the triangle formed by the edge and the surface
/// point normal*offset. Summed over a closed chain this gives the area of the
/// enclosed region below the surface.
func (edge B2EdgeShape) ComputeSubmergedArea(normal B2Vec2, offset float64, xf B2Transform, c *B2Vec2) float64 {
	v0 := B2Vec2MulScalar(offset, normal)

	v1 := B2TransformVec2Mul(xf, edge.M_v1)
	v2 := B2TransformVec2Mul(xf, edge.M_v2)

	d1 := B2Vec2Dot(normal, v1) - offset
	d2 := B2Vec2Dot(normal, v2) - offset

	if d1 > 0.0 {
		if d2 > 0.0 {
			return 0.0
		}
		v1 = B2Vec2Add(B2Vec2MulScalar(-d2/(d1-d2), v1), B2Vec2MulScalar(d1/(d1-d2), v2))
	} else if d2 > 0.0 {
		v2 = B2Vec2Add(B2Vec2MulScalar(-d2/(d1-d2), v1), B2Vec2MulScalar(d1/(d1-d2), v2))
	}

	k_inv3 := 1.0 / 3.0
	*c = B2Vec2MulScalar(k_inv3, B2Vec2Add(B2Vec2Add(v0, v1), v2))

	return 0.5 * B2Vec2Cross(B2Vec2Sub(v1, v0), B2Vec2Sub(v2, v0))
}

func (edge B2EdgeShape) Support(xf B2Transform, d B2Vec2) B2Vec2 {
	v1 := B2TransformVec2Mul(xf, edge.M_coreV1)
	v2 := B2TransformVec2Mul(xf, edge.M_coreV2)
	if B2Vec2Dot(v1, d) > B2Vec2Dot(v2, d) {
		return v1
	}
	return v2
}

func (edge B2EdgeShape) GetFirstVertex(xf B2Transform) B2Vec2 {
	return B2TransformVec2Mul(xf, edge.M_coreV1)
}

func (edge *B2EdgeShape) UpdateSweepRadius(center B2Vec2) {
	d1 := B2Vec2Sub(edge.M_coreV1, center).LengthSquared()
	d2 := B2Vec2Sub(edge.M_coreV2, center).LengthSquared()
	edge.M_sweepRadius = math.Sqrt(math.Max(d1, d2))
}

func (edge B2EdgeShape) Dump() {
	fmt.Printf("    shape, _ := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(%.15e, %.15e), box2d.MakeB2Vec2(%.15e, %.15e))\n",
		edge.M_v1.X, edge.M_v1.Y, edge.M_v2.X, edge.M_v2.Y)
}
