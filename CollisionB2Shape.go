package box2d

/// This holds the mass data computed for a shape.
type B2MassData struct {
	/// The mass of the shape, usually in kilograms.
	Mass float64

	/// The position of the shape's centroid relative to the shape's origin.
	Center B2Vec2

	/// The rotational inertia of the shape about the local origin.
	I float64
}

func MakeMassData() B2MassData {
	return B2MassData{}
}

func NewMassData() *B2MassData {
	res := MakeMassData()
	return &res
}

/// An oriented bounding box.
type B2OBB struct {
	R       B2Mat22 ///< the rotation matrix
	Center  B2Vec2  ///< the local centroid
	Extents B2Vec2  ///< the half-widths
}

/// A shape is used for collision detection. Shapes are created automatically
/// when a b2Fixture is created and are immutable afterwards.

const b2_shapeTypeCount = 5

var B2Shape_Type = struct {
	E_unknown   uint8
	E_circle    uint8
	E_polygon   uint8
	E_point     uint8
	E_edge      uint8
	E_typeCount uint8
}{
	E_unknown:   0,
	E_circle:    1,
	E_polygon:   2,
	E_point:     3,
	E_edge:      4,
	E_typeCount: b2_shapeTypeCount,
}

/// The capabilities the distance and time of impact routines need.
type B2SupportShape interface {
	/// The farthest point of the core shape along d, in world coordinates.
	Support(xf B2Transform, d B2Vec2) B2Vec2

	/// Any point of the core shape, used to seed GJK.
	GetFirstVertex(xf B2Transform) B2Vec2
}

type B2ShapeInterface interface {
	B2SupportShape

	/// Clone the concrete shape.
	Clone() B2ShapeInterface

	/// Get the type of this shape. You can use this to down cast to the concrete shape.
	/// @return the shape type.
	GetType() uint8

	/// Test a point for containment in this shape. This only works for convex shapes.
	/// @param xf the shape world transform.
	/// @param p a point in world coordinates.
	TestPoint(xf B2Transform, p B2Vec2) bool

	/// Perform a ray cast against this shape.
	/// @param xf the shape world transform.
	/// @param out the hit fraction and normal, valid for B2SegmentCollide.E_hit.
	/// @param segment defines the begin and end point of the ray cast.
	/// @param maxLambda a number typically in the range [0,1].
	TestSegment(xf B2Transform, out *B2RayCastOutput, segment B2Segment, maxLambda float64) uint8

	/// Given a transform, compute the associated axis aligned bounding box for this shape.
	ComputeAABB(aabb *B2AABB, xf B2Transform)

	/// Given two transforms, compute the associated swept axis aligned bounding box for this shape.
	ComputeSweptAABB(aabb *B2AABB, xf1, xf2 B2Transform)

	/// Compute the mass properties of this shape using its dimensions and density.
	/// @param massData returns the mass data for this shape.
	/// @param density the density in kilograms per meter squared.
	ComputeMass(massData *B2MassData, density float64)

	/// Compute the volume and centroid of this shape intersected with a half plane.
	/// @param normal the surface normal
	/// @param offset the surface offset along normal
	/// @param xf the shape transform
	/// @param c returns the centroid
	/// @return the total volume less than offset along normal
	ComputeSubmergedArea(normal B2Vec2, offset float64, xf B2Transform, c *B2Vec2) float64

	/// Get the maximum radius about the parent body's center of mass.
	GetSweepRadius() float64

	/// Recompute the sweep radius about a new body center of mass.
	UpdateSweepRadius(center B2Vec2)

	/// Print the shape as Go source.
	Dump()
}

type B2Shape struct {
	M_type uint8

	/// Maximum distance from the body center of mass to the core shape.
	M_sweepRadius float64
}

func (shape B2Shape) GetType() uint8 {
	return shape.M_type
}

func (shape B2Shape) GetSweepRadius() float64 {
	return shape.M_sweepRadius
}
