package box2d

/// Collide an edge with a circle. Beyond either end of the edge the circle
/// is tested against the vertex, but only when it sits outside the corner
/// shared with the neighbouring edge.
func B2CollideEdgeAndCircle(manifold *B2Manifold, edge *B2EdgeShape, xf1 B2Transform, circle *B2CircleShape, xf2 B2Transform) {
	manifold.PointCount = 0

	c := B2TransformVec2Mul(xf2, circle.M_p)
	cLocal := B2TransformVec2MulT(xf1, c)
	n := edge.M_normal
	v1 := edge.M_v1
	v2 := edge.M_v2
	radius := circle.M_radius

	var d B2Vec2
	var id B2ContactID

	dirDist := B2Vec2Dot(B2Vec2Sub(cLocal, v1), edge.M_direction)
	if dirDist <= 0.0 {
		d = B2Vec2Sub(cLocal, v1)
		if B2Vec2Dot(d, edge.M_cornerDir1) < 0.0 {
			return
		}
		d = B2Vec2Sub(c, B2TransformVec2Mul(xf1, v1))
	} else if dirDist >= edge.M_length {
		d = B2Vec2Sub(cLocal, v2)
		if B2Vec2Dot(d, edge.M_cornerDir2) > 0.0 {
			return
		}
		d = B2Vec2Sub(c, B2TransformVec2Mul(xf1, v2))
	} else {
		separation := B2Vec2Dot(B2Vec2Sub(cLocal, v1), n)
		if separation > radius || separation < -radius {
			return
		}

		manifold.Normal = B2Vec2Mat22Mul(xf1.R, n)
		position := B2Vec2Sub(c, B2Vec2MulScalar(radius, manifold.Normal))
		b2SetSinglePoint(manifold, position, xf1, xf2, separation-radius, id)
		return
	}

	distSqr := B2Vec2Dot(d, d)
	if distSqr > radius*radius {
		return
	}

	var separation float64
	if distSqr < B2_epsilon {
		separation = -radius
		manifold.Normal = B2Vec2Mat22Mul(xf1.R, n)
	} else {
		separation = d.Normalize() - radius
		manifold.Normal = d
	}

	position := B2Vec2Sub(c, B2Vec2MulScalar(radius, manifold.Normal))
	b2SetSinglePoint(manifold, position, xf1, xf2, separation, id)
}

/// Collide a polygon with an edge. The manifold normal points from the
/// polygon into the edge's solid side. The polygon gets at most two points,
/// found where its outline crosses the edge's supporting line.
func B2CollidePolygonAndEdge(manifold *B2Manifold, polygon *B2PolygonShape, xf1 B2Transform, edge *B2EdgeShape, xf2 B2Transform) {
	manifold.PointCount = 0

	v1 := B2TransformVec2Mul(xf2, edge.M_v1)
	v2 := B2TransformVec2Mul(xf2, edge.M_v2)
	n := B2Vec2Mat22Mul(xf2.R, edge.M_normal)
	v1Local := B2TransformVec2MulT(xf1, v1)
	v2Local := B2TransformVec2MulT(xf1, v2)
	nLocal := B2Vec2Mat22MulT(xf1.R, n)

	vertexCount := polygon.M_count
	vertices := polygon.M_vertices
	normals := polygon.M_normals

	// Face of the polygon that best separates it from the whole edge.
	separationIndex := -1
	separationMax := -B2_maxFloat
	separationV1 := false

	// Same, for each edge vertex on its own.
	separationIndex1 := -1
	separationMax1 := -B2_maxFloat
	separationIndex2 := -1
	separationMax2 := -B2_maxFloat

	// Where the polygon outline dips below the edge line and comes back.
	enterStartIndex, enterEndIndex := -1, -1
	exitStartIndex, exitEndIndex := -1, -1
	enterSepN, exitSepN := 0.0, 0.0
	deepestSepN := B2_maxFloat

	prevSepN := B2Vec2Dot(B2Vec2Sub(vertices[vertexCount-1], v1Local), nLocal)

	for i := 0; i < vertexCount; i++ {
		separation1 := B2Vec2Dot(B2Vec2Sub(v1Local, vertices[i]), normals[i])
		separation2 := B2Vec2Dot(B2Vec2Sub(v2Local, vertices[i]), normals[i])
		if separation2 < separation1 {
			if separation2 > separationMax {
				separationMax = separation2
				separationV1 = false
				separationIndex = i
			}
		} else {
			if separation1 > separationMax {
				separationMax = separation1
				separationV1 = true
				separationIndex = i
			}
		}
		if separation1 > separationMax1 {
			separationMax1 = separation1
			separationIndex1 = i
		}
		if separation2 > separationMax2 {
			separationMax2 = separation2
			separationIndex2 = i
		}

		prev := i - 1
		if i == 0 {
			prev = vertexCount - 1
		}

		nextSepN := B2Vec2Dot(B2Vec2Sub(vertices[i], v1Local), nLocal)
		if nextSepN >= 0.0 && prevSepN < 0.0 {
			exitStartIndex = prev
			exitEndIndex = i
			exitSepN = prevSepN
		} else if nextSepN < 0.0 && prevSepN >= 0.0 {
			enterStartIndex = prev
			enterEndIndex = i
			enterSepN = nextSepN
		}
		if nextSepN < deepestSepN {
			deepestSepN = nextSepN
		}
		prevSepN = nextSepN
	}

	// The outline never crosses the edge line.
	if enterStartIndex == -1 {
		return
	}

	if separationMax > 0.0 {
		return
	}

	// Near a convex corner a polygon face may separate better than the edge
	// normal. Then the polygon touches only the corner vertex.
	if (separationV1 && edge.M_cornerConvex1) || (!separationV1 && edge.M_cornerConvex2) {
		if separationMax > deepestSepN+B2_linearSlop {
			if separationV1 {
				corner := B2Vec2Mat22MulT(xf1.R, B2Vec2Mat22Mul(xf2.R, edge.M_cornerDir1))
				if B2Vec2Dot(normals[separationIndex1], corner) >= 0.0 {
					return
				}
			} else {
				corner := B2Vec2Mat22MulT(xf1.R, B2Vec2Mat22Mul(xf2.R, edge.M_cornerDir2))
				if B2Vec2Dot(normals[separationIndex2], corner) <= 0.0 {
					return
				}
			}

			manifold.PointCount = 1
			manifold.Normal = B2Vec2Mat22Mul(xf1.R, normals[separationIndex])
			point := &manifold.Points[0]
			point.Id.Features = B2ContactFeature{
				IncidentEdge:   uint8(separationIndex),
				IncidentVertex: B2_nullFeature,
			}
			if separationV1 {
				point.LocalPoint1 = v1Local
				point.LocalPoint2 = edge.M_v1
			} else {
				point.LocalPoint1 = v2Local
				point.LocalPoint2 = edge.M_v2
			}
			point.Separation = separationMax
			return
		}
	}

	manifold.Normal = n.OperatorNegate()

	// Only one vertex dips below the line.
	if enterEndIndex == exitStartIndex {
		manifold.PointCount = 1
		point := &manifold.Points[0]
		point.Id.Features = B2ContactFeature{
			IncidentEdge:   uint8(enterEndIndex),
			IncidentVertex: B2_nullFeature,
		}
		point.LocalPoint1 = vertices[enterEndIndex]
		point.LocalPoint2 = B2TransformVec2MulT(xf2, B2TransformVec2Mul(xf1, vertices[enterEndIndex]))
		point.Separation = enterSepN
		return
	}

	manifold.PointCount = 2

	// Positions along the edge, measured from v1.
	dirLocal := B2Vec2CrossVectorScalar(nLocal, -1.0)
	dirProj1 := B2Vec2Dot(dirLocal, B2Vec2Sub(vertices[enterEndIndex], v1Local))

	exitEndIndex = enterEndIndex + 1
	if enterEndIndex == vertexCount-1 {
		exitEndIndex = 0
	}
	if exitEndIndex != exitStartIndex {
		exitStartIndex = exitEndIndex
		exitSepN = B2Vec2Dot(nLocal, B2Vec2Sub(vertices[exitStartIndex], v1Local))
	}
	dirProj2 := B2Vec2Dot(dirLocal, B2Vec2Sub(vertices[exitStartIndex], v1Local))

	k_ratioSlop := 100.0 * B2_epsilon

	point := &manifold.Points[0]
	point.Id.Features = B2ContactFeature{
		IncidentEdge:   uint8(enterEndIndex),
		IncidentVertex: B2_nullFeature,
	}
	if dirProj1 > edge.M_length {
		// Clip to v2.
		point.LocalPoint1 = v2Local
		point.LocalPoint2 = edge.M_v2
		ratio := (edge.M_length - dirProj2) / (dirProj1 - dirProj2)
		if ratio > k_ratioSlop && ratio < 1.0 {
			point.Separation = exitSepN*(1.0-ratio) + enterSepN*ratio
		} else {
			point.Separation = enterSepN
		}
	} else {
		point.LocalPoint1 = vertices[enterEndIndex]
		point.LocalPoint2 = B2TransformVec2MulT(xf2, B2TransformVec2Mul(xf1, vertices[enterEndIndex]))
		point.Separation = enterSepN
	}

	point = &manifold.Points[1]
	point.Id.Features = B2ContactFeature{
		IncidentEdge:   uint8(exitStartIndex),
		IncidentVertex: B2_nullFeature,
	}
	if dirProj2 < 0.0 {
		// Clip to v1.
		point.LocalPoint1 = v1Local
		point.LocalPoint2 = edge.M_v1
		ratio := -dirProj1 / (dirProj2 - dirProj1)
		if ratio > k_ratioSlop && ratio < 1.0 {
			point.Separation = enterSepN*(1.0-ratio) + exitSepN*ratio
		} else {
			point.Separation = exitSepN
		}
	} else {
		point.LocalPoint1 = vertices[exitStartIndex]
		point.LocalPoint2 = B2TransformVec2MulT(xf2, B2TransformVec2Mul(xf1, vertices[exitStartIndex]))
		point.Separation = exitSepN
	}
}
