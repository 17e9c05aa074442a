package box2d

// Find the separation between poly1 and poly2 for a give edge normal on poly1.
func b2EdgeSeparation(poly1 *B2PolygonShape, xf1 B2Transform, edge1 int, poly2 *B2PolygonShape, xf2 B2Transform) float64 {
	vertices1 := poly1.M_vertices
	normals1 := poly1.M_normals

	count2 := poly2.M_count
	vertices2 := poly2.M_vertices

	B2Assert(0 <= edge1 && edge1 < poly1.M_count)

	// Convert normal from poly1's frame into poly2's frame.
	normal1World := B2Vec2Mat22Mul(xf1.R, normals1[edge1])
	normal1 := B2Vec2Mat22MulT(xf2.R, normal1World)

	// Find support vertex on poly2 for -normal.
	index := 0
	minDot := B2_maxFloat
	for i := 0; i < count2; i++ {
		dot := B2Vec2Dot(vertices2[i], normal1)
		if dot < minDot {
			minDot = dot
			index = i
		}
	}

	v1 := B2TransformVec2Mul(xf1, vertices1[edge1])
	v2 := B2TransformVec2Mul(xf2, vertices2[index])
	return B2Vec2Dot(B2Vec2Sub(v2, v1), normal1World)
}

// Find the max separation between poly1 and poly2 using edge normals from poly1.
// The search starts at the edge facing poly2's centroid and climbs toward
// larger separations. A positive separation is returned as soon as it is found.
func B2FindMaxSeparation(edgeIndex *int, poly1 *B2PolygonShape, xf1 B2Transform, poly2 *B2PolygonShape, xf2 B2Transform) float64 {
	count1 := poly1.M_count
	normals1 := poly1.M_normals

	// Vector pointing from the centroid of poly1 to the centroid of poly2.
	d := B2Vec2Sub(B2TransformVec2Mul(xf2, poly2.M_centroid), B2TransformVec2Mul(xf1, poly1.M_centroid))
	dLocal1 := B2Vec2Mat22MulT(xf1.R, d)

	// Find edge normal on poly1 that has the largest projection onto d.
	edge := 0
	maxDot := -B2_maxFloat
	for i := 0; i < count1; i++ {
		dot := B2Vec2Dot(normals1[i], dLocal1)
		if dot > maxDot {
			maxDot = dot
			edge = i
		}
	}

	// Get the separation for the edge normal.
	s := b2EdgeSeparation(poly1, xf1, edge, poly2, xf2)
	if s > 0.0 {
		return s
	}

	// Check the separation for the previous edge normal.
	prevEdge := count1 - 1
	if edge-1 >= 0 {
		prevEdge = edge - 1
	}
	sPrev := b2EdgeSeparation(poly1, xf1, prevEdge, poly2, xf2)
	if sPrev > 0.0 {
		return sPrev
	}

	// Check the separation for the next edge normal.
	nextEdge := 0
	if edge+1 < count1 {
		nextEdge = edge + 1
	}
	sNext := b2EdgeSeparation(poly1, xf1, nextEdge, poly2, xf2)
	if sNext > 0.0 {
		return sNext
	}

	// Find the best edge and the search direction.
	var bestEdge, increment int
	var bestSeparation float64
	if sPrev > s && sPrev > sNext {
		increment = -1
		bestEdge = prevEdge
		bestSeparation = sPrev
	} else if sNext > s {
		increment = 1
		bestEdge = nextEdge
		bestSeparation = sNext
	} else {
		*edgeIndex = edge
		return s
	}

	// Perform a local search for the best edge normal.
	for {
		if increment == -1 {
			if bestEdge-1 >= 0 {
				edge = bestEdge - 1
			} else {
				edge = count1 - 1
			}
		} else {
			if bestEdge+1 < count1 {
				edge = bestEdge + 1
			} else {
				edge = 0
			}
		}

		s = b2EdgeSeparation(poly1, xf1, edge, poly2, xf2)
		if s > 0.0 {
			return s
		}

		if s > bestSeparation {
			bestEdge = edge
			bestSeparation = s
		} else {
			break
		}
	}

	*edgeIndex = bestEdge
	return bestSeparation
}

func B2FindIncidentEdge(c *[2]B2ClipVertex, poly1 *B2PolygonShape, xf1 B2Transform, edge1 int, poly2 *B2PolygonShape, xf2 B2Transform) {
	normals1 := poly1.M_normals

	count2 := poly2.M_count
	vertices2 := poly2.M_vertices
	normals2 := poly2.M_normals

	B2Assert(0 <= edge1 && edge1 < poly1.M_count)

	// Get the normal of the reference edge in poly2's frame.
	normal1 := B2Vec2Mat22MulT(xf2.R, B2Vec2Mat22Mul(xf1.R, normals1[edge1]))

	// Find the incident edge on poly2.
	index := 0
	minDot := B2_maxFloat
	for i := 0; i < count2; i++ {
		dot := B2Vec2Dot(normal1, normals2[i])
		if dot < minDot {
			minDot = dot
			index = i
		}
	}

	// Build the clip vertices for the incident edge.
	i1 := index
	i2 := 0
	if i1+1 < count2 {
		i2 = i1 + 1
	}

	c[0].V = B2TransformVec2Mul(xf2, vertices2[i1])
	c[0].Id.Features.ReferenceEdge = uint8(edge1)
	c[0].Id.Features.IncidentEdge = uint8(i1)
	c[0].Id.Features.IncidentVertex = 0

	c[1].V = B2TransformVec2Mul(xf2, vertices2[i2])
	c[1].Id.Features.ReferenceEdge = uint8(edge1)
	c[1].Id.Features.IncidentEdge = uint8(i2)
	c[1].Id.Features.IncidentVertex = 1
}

// Find edge normal of max separation on A - return if separating axis is found
// Find edge normal of max separation on B - return if separation axis is found
// Choose reference edge as min(minA, minB)
// Find incident edge
// Clip

// The normal points from 1 to 2
func B2CollidePolygons(manifold *B2Manifold, polyA *B2PolygonShape, xfA B2Transform, polyB *B2PolygonShape, xfB B2Transform) {
	manifold.PointCount = 0

	edgeA := 0
	separationA := B2FindMaxSeparation(&edgeA, polyA, xfA, polyB, xfB)
	if separationA > 0.0 {
		return
	}

	edgeB := 0
	separationB := B2FindMaxSeparation(&edgeB, polyB, xfB, polyA, xfA)
	if separationB > 0.0 {
		return
	}

	var poly1 *B2PolygonShape // reference polygon
	var poly2 *B2PolygonShape // incident polygon
	var xf1, xf2 B2Transform
	var edge1 int // reference edge
	var flip uint8

	const k_relativeTol = 0.98
	const k_absoluteTol = 0.001

	if separationB > k_relativeTol*separationA+k_absoluteTol {
		poly1 = polyB
		poly2 = polyA
		xf1 = xfB
		xf2 = xfA
		edge1 = edgeB
		flip = 1
	} else {
		poly1 = polyA
		poly2 = polyB
		xf1 = xfA
		xf2 = xfB
		edge1 = edgeA
		flip = 0
	}

	var incidentEdge [2]B2ClipVertex
	B2FindIncidentEdge(&incidentEdge, poly1, xf1, edge1, poly2, xf2)

	count1 := poly1.M_count
	vertices1 := poly1.M_vertices

	v11 := vertices1[edge1]
	v12 := vertices1[0]
	if edge1+1 < count1 {
		v12 = vertices1[edge1+1]
	}

	sideNormal := B2Vec2Mat22Mul(xf1.R, B2Vec2Sub(v12, v11))
	sideNormal.Normalize()
	frontNormal := B2Vec2CrossVectorScalar(sideNormal, 1.0)

	v11 = B2TransformVec2Mul(xf1, v11)
	v12 = B2TransformVec2Mul(xf1, v12)

	frontOffset := B2Vec2Dot(frontNormal, v11)
	sideOffset1 := -B2Vec2Dot(sideNormal, v11)
	sideOffset2 := B2Vec2Dot(sideNormal, v12)

	// Clip incident edge against extruded edge1 side edges.
	var clipPoints1, clipPoints2 [2]B2ClipVertex

	// Clip to box side 1
	np := B2ClipSegmentToLine(&clipPoints1, incidentEdge, sideNormal.OperatorNegate(), sideOffset1)
	if np < 2 {
		return
	}

	// Clip to negative box side 1
	np = B2ClipSegmentToLine(&clipPoints2, clipPoints1, sideNormal, sideOffset2)
	if np < 2 {
		return
	}

	// Now clipPoints2 contains the clipped points.
	if flip != 0 {
		manifold.Normal = frontNormal.OperatorNegate()
	} else {
		manifold.Normal = frontNormal
	}

	pointCount := 0
	for i := 0; i < B2_maxManifoldPoints; i++ {
		separation := B2Vec2Dot(frontNormal, clipPoints2[i].V) - frontOffset

		if separation <= 0.0 {
			cp := &manifold.Points[pointCount]
			cp.Separation = separation
			cp.LocalPoint1 = B2TransformVec2MulT(xfA, clipPoints2[i].V)
			cp.LocalPoint2 = B2TransformVec2MulT(xfB, clipPoints2[i].V)
			cp.Id = clipPoints2[i].Id
			cp.Id.Features.Flip = flip
			pointCount++
		}
	}

	manifold.PointCount = pointCount
}
