package box2d

/// Collide function for one ordered pair of shape types.
type B2CollideFcn[A B2ShapeInterface, B B2ShapeInterface] func(manifold *B2Manifold, shapeA A, xfA B2Transform, shapeB B, xfB B2Transform)

/// A contact whose manifold comes from a single collide function. Fixture A
/// always holds the shape of type A.
type B2ShapeContact[A B2ShapeInterface, B B2ShapeInterface] struct {
	B2Contact
	collide B2CollideFcn[A, B]
}

func (contact *B2ShapeContact[A, B]) Evaluate(manifold *B2Manifold, xfA B2Transform, xfB B2Transform) {
	contact.collide(
		manifold,
		contact.GetFixtureA().GetShape().(A), xfA,
		contact.GetFixtureB().GetShape().(B), xfB,
	)
}

func makeShapeContactFcn[A B2ShapeInterface, B B2ShapeInterface](typeA uint8, typeB uint8, collide B2CollideFcn[A, B]) B2ContactCreateFcn {
	return func(fixtureA *B2Fixture, fixtureB *B2Fixture) B2ContactInterface {
		B2Assert(fixtureA.GetType() == typeA)
		B2Assert(fixtureB.GetType() == typeB)
		return &B2ShapeContact[A, B]{
			B2Contact: MakeB2Contact(fixtureA, fixtureB),
			collide:   collide,
		}
	}
}

// Point against point has no registered contact: two points never collide.
// Edges are static terrain, so edge against edge or point has none either.
func b2RegisterShapeContacts() {
	shape := B2Shape_Type

	addContactType(makeShapeContactFcn(shape.E_circle, shape.E_circle, B2CollideCircles), shape.E_circle, shape.E_circle)
	addContactType(makeShapeContactFcn(shape.E_polygon, shape.E_circle, B2CollidePolygonAndCircle), shape.E_polygon, shape.E_circle)
	addContactType(makeShapeContactFcn(shape.E_polygon, shape.E_polygon, B2CollidePolygons), shape.E_polygon, shape.E_polygon)
	addContactType(makeShapeContactFcn(shape.E_point, shape.E_circle, B2CollidePointAndCircle), shape.E_point, shape.E_circle)
	addContactType(makeShapeContactFcn(shape.E_polygon, shape.E_point, B2CollidePolygonAndPoint), shape.E_polygon, shape.E_point)
	addContactType(makeShapeContactFcn(shape.E_edge, shape.E_circle, B2CollideEdgeAndCircle), shape.E_edge, shape.E_circle)
	addContactType(makeShapeContactFcn(shape.E_polygon, shape.E_edge, B2CollidePolygonAndEdge), shape.E_polygon, shape.E_edge)
}
