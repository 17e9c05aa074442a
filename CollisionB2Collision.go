package box2d

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Collision.h
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

const B2_nullFeature uint8 = math.MaxUint8

/// The features that intersect to form the contact point.
/// This must be 4 bytes or less.
type B2ContactFeature struct {
	ReferenceEdge  uint8 ///< The edge that defines the outward contact normal.
	IncidentEdge   uint8 ///< The edge most anti-parallel to the reference edge.
	IncidentVertex uint8 ///< The vertex (0 or 1) on the incident edge that was clipped.
	Flip           uint8 ///< A value of 1 indicates that the reference edge is on shape2.
}

/// Contact ids to facilitate warm starting.
type B2ContactID struct {
	Features B2ContactFeature
}

///< Used to quickly compare contact ids.
func (v B2ContactID) Key() uint32 {
	var key uint32 = 0
	key |= uint32(v.Features.ReferenceEdge)
	key |= uint32(v.Features.IncidentEdge) << 8
	key |= uint32(v.Features.IncidentVertex) << 16
	key |= uint32(v.Features.Flip) << 24
	return key
}

func (v *B2ContactID) SetKey(key uint32) {
	v.Features.ReferenceEdge = uint8(key & 0xFF)
	v.Features.IncidentEdge = uint8(key >> 8 & 0xFF)
	v.Features.IncidentVertex = uint8(key >> 16 & 0xFF)
	v.Features.Flip = uint8(key >> 24 & 0xFF)
}

func (v *B2ContactID) SetZero() {
	v.Features = B2ContactFeature{}
}

/// A manifold point is a contact point belonging to a contact
/// manifold. It holds details related to the geometry and dynamics
/// of the contact points.
/// The point is stored in local coordinates because CCD
/// requires sub-stepping in which the separation is stale.
type B2ManifoldPoint struct {
	LocalPoint1    B2Vec2      ///< local position of the contact point in body1
	LocalPoint2    B2Vec2      ///< local position of the contact point in body2
	Separation     float64     ///< the separation of the shapes along the normal vector
	NormalImpulse  float64     ///< the non-penetration impulse
	TangentImpulse float64     ///< the friction impulse
	Id             B2ContactID ///< uniquely identifies a contact point between two shapes
}

/// A manifold for two touching convex shapes.
type B2Manifold struct {
	Points     [B2_maxManifoldPoints]B2ManifoldPoint ///< the points of contact
	Normal     B2Vec2                                ///< the shared unit normal vector, pointing from shape1 to shape2
	PointCount int                                   ///< the number of manifold points
}

func NewB2Manifold() *B2Manifold {
	return &B2Manifold{}
}

var B2PointState = struct {
	B2_nullState    uint8 ///< point does not exist
	B2_addState     uint8 ///< point was added in the update
	B2_persistState uint8 ///< point persisted across the update
	B2_removeState  uint8 ///< point was removed in the update
}{
	B2_nullState:    0,
	B2_addState:     1,
	B2_persistState: 2,
	B2_removeState:  3,
}

/// Used for computing contact manifolds.
type B2ClipVertex struct {
	V  B2Vec2
	Id B2ContactID
}

/// A line segment.
type B2Segment struct {
	P1 B2Vec2 ///< the starting point
	P2 B2Vec2 ///< the ending point
}

func MakeB2Segment(p1, p2 B2Vec2) B2Segment {
	return B2Segment{P1: p1, P2: p2}
}

/// Result of a shape versus segment test.
var B2SegmentCollide = struct {
	E_startsInside uint8
	E_miss         uint8
	E_hit          uint8
}{
	E_startsInside: 0,
	E_miss:         1,
	E_hit:          2,
}

/// Ray-cast output data. The ray hits at p1 + Lambda * (p2 - p1).
type B2RayCastOutput struct {
	Normal B2Vec2
	Lambda float64
}

/// An axis aligned bounding box.
type B2AABB struct {
	LowerBound B2Vec2 ///< the lower vertex
	UpperBound B2Vec2 ///< the upper vertex
}

func MakeB2AABB() B2AABB {
	return B2AABB{}
}

func MakeB2AABBFromBounds(lower, upper B2Vec2) B2AABB {
	return B2AABB{LowerBound: lower, UpperBound: upper}
}

func NewB2AABB() *B2AABB {
	res := MakeB2AABB()
	return &res
}

/// Get the center of the AABB.
func (bb B2AABB) GetCenter() B2Vec2 {
	return B2Vec2MulScalar(
		0.5,
		B2Vec2Add(bb.LowerBound, bb.UpperBound),
	)
}

/// Get the extents of the AABB (half-widths).
func (bb B2AABB) GetExtents() B2Vec2 {
	return B2Vec2MulScalar(
		0.5,
		B2Vec2Sub(bb.UpperBound, bb.LowerBound),
	)
}

/// Combine an AABB into this one.
func (bb *B2AABB) CombineInPlace(aabb B2AABB) {
	bb.LowerBound = B2Vec2Min(bb.LowerBound, aabb.LowerBound)
	bb.UpperBound = B2Vec2Max(bb.UpperBound, aabb.UpperBound)
}

/// Combine two AABBs into this one.
func (bb *B2AABB) CombineTwoInPlace(aabb1, aabb2 B2AABB) {
	bb.LowerBound = B2Vec2Min(aabb1.LowerBound, aabb2.LowerBound)
	bb.UpperBound = B2Vec2Max(aabb1.UpperBound, aabb2.UpperBound)
}

/// Does this aabb contain the provided AABB.
func (bb B2AABB) Contains(aabb B2AABB) bool {
	return (bb.LowerBound.X <= aabb.LowerBound.X &&
		bb.LowerBound.Y <= aabb.LowerBound.Y &&
		aabb.UpperBound.X <= bb.UpperBound.X &&
		aabb.UpperBound.Y <= bb.UpperBound.Y)
}

/// Verify that the bounds are sorted.
func (bb B2AABB) IsValid() bool {
	d := B2Vec2Sub(bb.UpperBound, bb.LowerBound)
	valid := d.X >= 0.0 && d.Y >= 0.0
	valid = valid && bb.LowerBound.IsValid() && bb.UpperBound.IsValid()
	return valid
}

func B2TestOverlapBoundingBoxes(a, b B2AABB) bool {
	d1 := B2Vec2Sub(b.LowerBound, a.UpperBound)
	d2 := B2Vec2Sub(a.LowerBound, b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}

	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}

	return true
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Collision.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

/// Compute the point states given two manifolds. The states pertain to the transition from manifold1
/// to manifold2. So state1 is either persist or remove while state2 is either add or persist.
func B2GetPointStates(state1 *[B2_maxManifoldPoints]uint8, state2 *[B2_maxManifoldPoints]uint8, manifold1 B2Manifold, manifold2 B2Manifold) {

	for i := 0; i < B2_maxManifoldPoints; i++ {
		state1[i] = B2PointState.B2_nullState
		state2[i] = B2PointState.B2_nullState
	}

	// Detect persists and removes.
	for i := 0; i < manifold1.PointCount; i++ {
		key := manifold1.Points[i].Id.Key()

		state1[i] = B2PointState.B2_removeState

		for j := 0; j < manifold2.PointCount; j++ {
			if manifold2.Points[j].Id.Key() == key {
				state1[i] = B2PointState.B2_persistState
				break
			}
		}
	}

	// Detect persists and adds.
	for i := 0; i < manifold2.PointCount; i++ {
		key := manifold2.Points[i].Id.Key()

		state2[i] = B2PointState.B2_addState

		for j := 0; j < manifold1.PointCount; j++ {
			if manifold1.Points[j].Id.Key() == key {
				state2[i] = B2PointState.B2_persistState
				break
			}
		}
	}
}

// From Real-time Collision Detection, p179.
// The segment hits at P1 + output.Lambda*(P2 - P1) when this returns true.
func (bb B2AABB) RayCast(output *B2RayCastOutput, segment B2Segment, maxLambda float64) bool {
	tmin := -B2_maxFloat
	tmax := B2_maxFloat

	p := [2]float64{segment.P1.X, segment.P1.Y}
	d := [2]float64{segment.P2.X - segment.P1.X, segment.P2.Y - segment.P1.Y}
	lower := [2]float64{bb.LowerBound.X, bb.LowerBound.Y}
	upper := [2]float64{bb.UpperBound.X, bb.UpperBound.Y}

	var normal [2]float64

	for i := 0; i < 2; i++ {
		if math.Abs(d[i]) < B2_epsilon {
			// Parallel.
			if p[i] < lower[i] || upper[i] < p[i] {
				return false
			}
		} else {
			inv_d := 1.0 / d[i]
			t1 := (lower[i] - p[i]) * inv_d
			t2 := (upper[i] - p[i]) * inv_d

			// Sign of the normal vector.
			s := -1.0

			if t1 > t2 {
				t1, t2 = t2, t1
				s = 1.0
			}

			// Push the min up
			if t1 > tmin {
				normal = [2]float64{}
				normal[i] = s
				tmin = t1
			}

			// Pull the max down
			tmax = math.Min(tmax, t2)

			if tmin > tmax {
				return false
			}
		}
	}

	// Does the ray start inside the box?
	// Does the ray intersect beyond the max fraction?
	if tmin < 0.0 || maxLambda < tmin {
		return false
	}

	// Intersection.
	output.Lambda = tmin
	output.Normal = MakeB2Vec2(normal[0], normal[1])
	return true
}

// Sutherland-Hodgman clipping. Points inherit the contact id of the input
// vertex they were derived from; an intersection point takes the id of the
// vertex that was behind the plane.
func B2ClipSegmentToLine(vOut *[2]B2ClipVertex, vIn [2]B2ClipVertex, normal B2Vec2, offset float64) int {

	// Start with no output points
	numOut := 0

	// Calculate the distance of end points to the line
	distance0 := B2Vec2Dot(normal, vIn[0].V) - offset
	distance1 := B2Vec2Dot(normal, vIn[1].V) - offset

	// If the points are behind the plane
	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}

	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// If the points are on different sides of the plane
	if distance0*distance1 < 0.0 {
		// Find intersection point of edge and plane
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].V = B2Vec2Add(
			vIn[0].V,
			B2Vec2MulScalar(interp, B2Vec2Sub(vIn[1].V, vIn[0].V)),
		)

		if distance0 > 0.0 {
			vOut[numOut].Id = vIn[0].Id
		} else {
			vOut[numOut].Id = vIn[1].Id
		}
		numOut++
	}

	return numOut
}

/// Test whether two shapes overlap using the distance routine.
func B2TestOverlapShapes(shapeA B2ShapeInterface, xfA B2Transform, shapeB B2ShapeInterface, xfB B2Transform) bool {
	var x1, x2 B2Vec2
	return B2Distance(&x1, &x2, shapeA, xfA, shapeB, xfB) < 10.0*B2_epsilon
}
