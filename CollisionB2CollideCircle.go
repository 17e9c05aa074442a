package box2d

import "math"

// Fill a single point manifold from a world contact point.
func b2SetSinglePoint(manifold *B2Manifold, p B2Vec2, xf1 B2Transform, xf2 B2Transform, separation float64, id B2ContactID) {
	manifold.PointCount = 1
	manifold.Points[0].LocalPoint1 = B2TransformVec2MulT(xf1, p)
	manifold.Points[0].LocalPoint2 = B2TransformVec2MulT(xf2, p)
	manifold.Points[0].Separation = separation
	manifold.Points[0].Id = id
}

func B2CollideCircles(manifold *B2Manifold, circle1 *B2CircleShape, xf1 B2Transform, circle2 *B2CircleShape, xf2 B2Transform) {
	manifold.PointCount = 0

	p1 := B2TransformVec2Mul(xf1, circle1.M_p)
	p2 := B2TransformVec2Mul(xf2, circle2.M_p)

	d := B2Vec2Sub(p2, p1)
	distSqr := B2Vec2Dot(d, d)
	r1 := circle1.M_radius
	r2 := circle2.M_radius
	radiusSum := r1 + r2

	// Touching circles are not in contact.
	if distSqr >= radiusSum*radiusSum {
		return
	}

	var separation float64
	if distSqr < B2_epsilon {
		separation = -radiusSum
		manifold.Normal.Set(0.0, 1.0)
	} else {
		dist := math.Sqrt(distSqr)
		separation = dist - radiusSum
		a := 1.0 / dist
		manifold.Normal = B2Vec2MulScalar(a, d)
	}

	p1.OperatorPlusInplace(B2Vec2MulScalar(r1, manifold.Normal))
	p2.OperatorMinusInplace(B2Vec2MulScalar(r2, manifold.Normal))

	p := B2Vec2MulScalar(0.5, B2Vec2Add(p1, p2))

	var id B2ContactID
	b2SetSinglePoint(manifold, p, xf1, xf2, separation, id)
}

func B2CollidePolygonAndCircle(manifold *B2Manifold, polygon *B2PolygonShape, xf1 B2Transform, circle *B2CircleShape, xf2 B2Transform) {
	manifold.PointCount = 0

	// Compute circle position in the frame of the polygon.
	c := B2TransformVec2Mul(xf2, circle.M_p)
	cLocal := B2TransformVec2MulT(xf1, c)

	// Find the min separating edge.
	normalIndex := 0
	separation := -B2_maxFloat
	radius := circle.M_radius
	vertexCount := polygon.M_count
	vertices := polygon.M_vertices
	normals := polygon.M_normals

	for i := 0; i < vertexCount; i++ {
		s := B2Vec2Dot(normals[i], B2Vec2Sub(cLocal, vertices[i]))

		if s > radius {
			// Early out.
			return
		}

		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	// If the center is inside the polygon ...
	if separation < B2_epsilon {
		manifold.Normal = B2Vec2Mat22Mul(xf1.R, normals[normalIndex])

		var id B2ContactID
		id.Features.IncidentEdge = uint8(normalIndex)
		id.Features.IncidentVertex = B2_nullFeature
		id.Features.ReferenceEdge = 0
		id.Features.Flip = 0

		position := B2Vec2Sub(c, B2Vec2MulScalar(radius, manifold.Normal))
		b2SetSinglePoint(manifold, position, xf1, xf2, separation-radius, id)
		return
	}

	// Project the circle center onto the edge segment.
	vertIndex1 := normalIndex
	vertIndex2 := 0
	if vertIndex1+1 < vertexCount {
		vertIndex2 = vertIndex1 + 1
	}

	e := B2Vec2Sub(vertices[vertIndex2], vertices[vertIndex1])
	length := e.Normalize()
	B2Assert(length > B2_epsilon)

	// Project the center onto the edge.
	u := B2Vec2Dot(B2Vec2Sub(cLocal, vertices[vertIndex1]), e)

	var id B2ContactID
	var p B2Vec2
	if u <= 0.0 {
		p = vertices[vertIndex1]
		id.Features.IncidentEdge = B2_nullFeature
		id.Features.IncidentVertex = uint8(vertIndex1)
	} else if u >= length {
		p = vertices[vertIndex2]
		id.Features.IncidentEdge = B2_nullFeature
		id.Features.IncidentVertex = uint8(vertIndex2)
	} else {
		p = B2Vec2Add(vertices[vertIndex1], B2Vec2MulScalar(u, e))
		id.Features.IncidentEdge = uint8(normalIndex)
		id.Features.IncidentVertex = B2_nullFeature
	}
	id.Features.ReferenceEdge = 0
	id.Features.Flip = 0

	d := B2Vec2Sub(cLocal, p)
	dist := d.Normalize()
	if dist > radius {
		return
	}

	manifold.Normal = B2Vec2Mat22Mul(xf1.R, d)
	position := B2Vec2Sub(c, B2Vec2MulScalar(radius, manifold.Normal))
	b2SetSinglePoint(manifold, position, xf1, xf2, dist-radius, id)
}

/// A point against a circle behaves like a circle of zero radius.
func B2CollidePointAndCircle(manifold *B2Manifold, point *B2PointShape, xf1 B2Transform, circle *B2CircleShape, xf2 B2Transform) {
	manifold.PointCount = 0

	p1 := B2TransformVec2Mul(xf1, point.M_p)
	p2 := B2TransformVec2Mul(xf2, circle.M_p)

	d := B2Vec2Sub(p2, p1)
	distSqr := B2Vec2Dot(d, d)
	r2 := circle.M_radius

	if distSqr >= r2*r2 {
		return
	}

	var separation float64
	if distSqr < B2_epsilon {
		separation = -r2
		manifold.Normal.Set(0.0, 1.0)
	} else {
		dist := math.Sqrt(distSqr)
		separation = dist - r2
		manifold.Normal = B2Vec2MulScalar(1.0/dist, d)
	}

	p2.OperatorMinusInplace(B2Vec2MulScalar(r2, manifold.Normal))
	p := B2Vec2MulScalar(0.5, B2Vec2Add(p1, p2))

	var id B2ContactID
	b2SetSinglePoint(manifold, p, xf1, xf2, separation, id)
}

/// A point only touches a polygon when it is inside it. The manifold normal
/// is the outward normal of the face of least penetration.
func B2CollidePolygonAndPoint(manifold *B2Manifold, polygon *B2PolygonShape, xf1 B2Transform, point *B2PointShape, xf2 B2Transform) {
	manifold.PointCount = 0

	// Compute point position in the frame of the polygon.
	c := B2TransformVec2Mul(xf2, point.M_p)
	cLocal := B2TransformVec2MulT(xf1, c)

	// Find the min separating edge.
	normalIndex := 0
	separation := -B2_maxFloat
	vertexCount := polygon.M_count
	vertices := polygon.M_vertices
	normals := polygon.M_normals

	for i := 0; i < vertexCount; i++ {
		s := B2Vec2Dot(normals[i], B2Vec2Sub(cLocal, vertices[i]))
		if s > 0.0 {
			// Early out.
			return
		}

		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	manifold.Normal = B2Vec2Mat22Mul(xf1.R, normals[normalIndex])

	var id B2ContactID
	id.Features.IncidentEdge = uint8(normalIndex)
	id.Features.IncidentVertex = B2_nullFeature
	id.Features.ReferenceEdge = 0
	id.Features.Flip = 0

	b2SetSinglePoint(manifold, c, xf1, xf2, separation, id)
}
