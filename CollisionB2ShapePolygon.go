package box2d

import (
	"fmt"
	"math"
)

/// A convex polygon. The interior of the polygon is to the left of each edge.
/// Polygons have a maximum number of vertices equal to b2_maxPolygonVertices.
/// In most cases you should not need many vertices for a convex polygon.
///
/// Besides its real vertices a polygon carries a core polygon, inset by
/// B2_toiSlop, which the distance and time of impact routines work with so a
/// positive margin survives continuous collision.
type B2PolygonShape struct {
	B2Shape

	M_centroid     B2Vec2
	M_obb          B2OBB
	M_vertices     [B2_maxPolygonVertices]B2Vec2
	M_normals      [B2_maxPolygonVertices]B2Vec2
	M_coreVertices [B2_maxPolygonVertices]B2Vec2
	M_count        int
}

func MakeB2PolygonShape() B2PolygonShape {
	return B2PolygonShape{
		B2Shape: B2Shape{
			M_type: B2Shape_Type.E_polygon,
		},
	}
}

func NewB2PolygonShape() *B2PolygonShape {
	res := MakeB2PolygonShape()
	return &res
}

/// Build a polygon from counter-clockwise vertices.
func NewB2PolygonShapeFromVertices(vertices []B2Vec2) (*B2PolygonShape, error) {
	poly := NewB2PolygonShape()
	if err := poly.Set(vertices); err != nil {
		return nil, err
	}
	return poly, nil
}

func (poly *B2PolygonShape) GetVertex(index int) *B2Vec2 {
	B2Assert(0 <= index && index < poly.M_count)
	return &poly.M_vertices[index]
}

func (poly B2PolygonShape) GetVertexCount() int {
	return poly.M_count
}

func (poly *B2PolygonShape) GetVertices() []B2Vec2 {
	return poly.M_vertices[:poly.M_count]
}

func (poly *B2PolygonShape) GetNormals() []B2Vec2 {
	return poly.M_normals[:poly.M_count]
}

func (poly *B2PolygonShape) GetCoreVertices() []B2Vec2 {
	return poly.M_coreVertices[:poly.M_count]
}

func (poly B2PolygonShape) GetCentroid() B2Vec2 {
	return poly.M_centroid
}

func (poly B2PolygonShape) GetOBB() B2OBB {
	return poly.M_obb
}

/// Get the centroid in world coordinates.
func (poly B2PolygonShape) Centroid(xf B2Transform) B2Vec2 {
	return B2TransformVec2Mul(xf, poly.M_centroid)
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2PolygonShape.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

func (poly B2PolygonShape) Clone() B2ShapeInterface {
	clone := poly
	return &clone
}

/// Build vertices to represent an axis-aligned box.
/// @param hx the half-width.
/// @param hy the half-height.
func (poly *B2PolygonShape) SetAsBox(hx float64, hy float64) error {
	return poly.Set([]B2Vec2{
		MakeB2Vec2(-hx, -hy),
		MakeB2Vec2(hx, -hy),
		MakeB2Vec2(hx, hy),
		MakeB2Vec2(-hx, hy),
	})
}

/// Build vertices to represent an oriented box.
/// @param hx the half-width.
/// @param hy the half-height.
/// @param center the center of the box in local coordinates.
/// @param angle the rotation of the box in local coordinates.
func (poly *B2PolygonShape) SetAsOrientedBox(hx float64, hy float64, center B2Vec2, angle float64) error {
	xf := MakeB2TransformByPositionAndAngle(center, angle)

	vertices := []B2Vec2{
		MakeB2Vec2(-hx, -hy),
		MakeB2Vec2(hx, -hy),
		MakeB2Vec2(hx, hy),
		MakeB2Vec2(-hx, hy),
	}

	for i := range vertices {
		vertices[i] = B2TransformVec2Mul(xf, vertices[i])
	}

	return poly.Set(vertices)
}

func ComputeCentroid(vs []B2Vec2) (B2Vec2, error) {
	count := len(vs)
	if count < 3 {
		return B2Vec2{}, fmt.Errorf("%w: %d vertices", ErrInvalidPolygon, count)
	}

	c := MakeB2Vec2(0, 0)
	area := 0.0

	// pRef is the reference point for forming triangles.
	// It's location doesn't change the result (except for rounding error).
	pRef := MakeB2Vec2(0.0, 0.0)

	inv3 := 1.0 / 3.0

	for i := 0; i < count; i++ {
		// Triangle vertices.
		p1 := pRef
		p2 := vs[i]
		var p3 B2Vec2
		if i+1 < count {
			p3 = vs[i+1]
		} else {
			p3 = vs[0]
		}

		e1 := B2Vec2Sub(p2, p1)
		e2 := B2Vec2Sub(p3, p1)

		D := B2Vec2Cross(e1, e2)

		triangleArea := 0.5 * D
		area += triangleArea

		// Area weighted centroid
		c.OperatorPlusInplace(B2Vec2MulScalar(triangleArea*inv3, B2Vec2Add(B2Vec2Add(p1, p2), p3)))
	}

	// Centroid
	if area <= B2_epsilon {
		return B2Vec2{}, fmt.Errorf("%w: area %g is too small", ErrInvalidPolygon, area)
	}

	c.OperatorScalarMulInplace(1.0 / area)
	return c, nil
}

/// Find the minimum area rectangle that bounds the vertices, trying one
/// rectangle per edge direction.
func ComputeOBB(obb *B2OBB, vs []B2Vec2) error {
	count := len(vs)
	B2Assert(count <= B2_maxPolygonVertices)

	var p [B2_maxPolygonVertices + 1]B2Vec2
	copy(p[:], vs)
	p[count] = p[0]

	minArea := B2_maxFloat

	for i := 1; i <= count; i++ {
		root := p[i-1]
		ux := B2Vec2Sub(p[i], root)
		length := ux.Normalize()
		if length <= B2_epsilon {
			return fmt.Errorf("%w: edge %d is degenerate", ErrInvalidPolygon, i-1)
		}
		uy := MakeB2Vec2(-ux.Y, ux.X)
		lower := MakeB2Vec2(B2_maxFloat, B2_maxFloat)
		upper := MakeB2Vec2(-B2_maxFloat, -B2_maxFloat)

		for j := 0; j < count; j++ {
			d := B2Vec2Sub(p[j], root)
			r := MakeB2Vec2(B2Vec2Dot(ux, d), B2Vec2Dot(uy, d))
			lower = B2Vec2Min(lower, r)
			upper = B2Vec2Max(upper, r)
		}

		area := (upper.X - lower.X) * (upper.Y - lower.Y)
		if area < 0.95*minArea {
			minArea = area
			obb.R.Col1 = ux
			obb.R.Col2 = uy
			center := MakeB2Vec2(0.5*(lower.X+upper.X), 0.5*(lower.Y+upper.Y))
			obb.Center = B2Vec2Add(root, B2Vec2Mat22Mul(obb.R, center))
			obb.Extents = MakeB2Vec2(0.5*(upper.X-lower.X), 0.5*(upper.Y-lower.Y))
		}
	}

	B2Assert(minArea < B2_maxFloat)
	return nil
}

/// Copy vertices. This assumes the vertices define a convex polygon in
/// counter-clockwise order. The input is validated; on error the shape is
/// left unchanged.
func (poly *B2PolygonShape) Set(vertices []B2Vec2) error {
	count := len(vertices)
	if count < 3 || count > B2_maxPolygonVertices {
		return fmt.Errorf("%w: %d vertices, want 3 to %d", ErrInvalidPolygon, count, B2_maxPolygonVertices)
	}

	next := *poly
	next.M_count = count

	// Copy vertices.
	copy(next.M_vertices[:], vertices)

	// Compute normals. Ensure the edges have non-zero length.
	for i := 0; i < count; i++ {
		i1 := i
		i2 := 0
		if i+1 < count {
			i2 = i + 1
		}

		edge := B2Vec2Sub(next.M_vertices[i2], next.M_vertices[i1])
		if edge.LengthSquared() <= B2_epsilon*B2_epsilon {
			return fmt.Errorf("%w: edge %d is degenerate", ErrInvalidPolygon, i)
		}
		next.M_normals[i] = B2Vec2CrossVectorScalar(edge, 1.0)
		next.M_normals[i].Normalize()
	}

	// Ensure the polygon is convex.
	for i := 0; i < count; i++ {
		for j := 0; j < count; j++ {
			// Don't check vertices on the current edge.
			if j == i || j == (i+1)%count {
				continue
			}

			// Your polygon is non-convex (it has an indentation).
			// Or your polygon is too skinny.
			s := B2Vec2Dot(next.M_normals[i], B2Vec2Sub(next.M_vertices[j], next.M_vertices[i]))
			if s >= -B2_linearSlop {
				return fmt.Errorf("%w: vertex %d is not behind edge %d", ErrInvalidPolygon, j, i)
			}
		}
	}

	// Ensure the polygon is counter-clockwise.
	for i := 1; i < count; i++ {
		cross := B2Vec2Cross(next.M_normals[i-1], next.M_normals[i])

		// Keep asinf happy.
		cross = B2FloatClamp(cross, -1.0, 1.0)

		// You have consecutive edges that are almost parallel on your polygon.
		// Or the polygon is clockwise.
		angle := math.Asin(cross)
		if angle <= B2_angularSlop {
			return fmt.Errorf("%w: corner %d turns by %g rad", ErrInvalidPolygon, i, angle)
		}
	}

	// Compute the polygon centroid.
	centroid, err := ComputeCentroid(next.M_vertices[:count])
	if err != nil {
		return err
	}
	next.M_centroid = centroid

	// Compute the oriented bounding box.
	if err := ComputeOBB(&next.M_obb, next.M_vertices[:count]); err != nil {
		return err
	}

	// Create core polygon shape by shifting edges inward.
	// Also compute the min/max radius for CCD.
	for i := 0; i < count; i++ {
		i1 := count - 1
		if i-1 >= 0 {
			i1 = i - 1
		}
		i2 := i

		n1 := next.M_normals[i1]
		n2 := next.M_normals[i2]
		v := B2Vec2Sub(next.M_vertices[i], next.M_centroid)

		d := MakeB2Vec2(
			B2Vec2Dot(n1, v)-B2_toiSlop,
			B2Vec2Dot(n2, v)-B2_toiSlop,
		)

		// Shifting the edge inward by b2_toiSlop should
		// not cause the plane to pass the centroid.

		// Your shape has a radius/extent less than b2_toiSlop.
		if d.X < 0.0 || d.Y < 0.0 {
			return fmt.Errorf("%w: vertex %d is within %g of the centroid", ErrInvalidPolygon, i, B2_toiSlop)
		}

		A := MakeB2Mat22FromScalars(n1.X, n1.Y, n2.X, n2.Y)
		next.M_coreVertices[i] = B2Vec2Add(A.Solve(d), next.M_centroid)
	}

	next.UpdateSweepRadius(next.M_centroid)

	*poly = next
	return nil
}

func (poly B2PolygonShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	pLocal := B2Vec2Mat22MulT(xf.R, B2Vec2Sub(p, xf.P))

	for i := 0; i < poly.M_count; i++ {
		dot := B2Vec2Dot(poly.M_normals[i], B2Vec2Sub(pLocal, poly.M_vertices[i]))
		if dot > 0.0 {
			return false
		}
	}

	return true
}

func (poly B2PolygonShape) TestSegment(xf B2Transform, out *B2RayCastOutput, segment B2Segment, maxLambda float64) uint8 {
	lower := 0.0
	upper := maxLambda

	// Put the segment into the polygon's frame of reference.
	p1 := B2Vec2Mat22MulT(xf.R, B2Vec2Sub(segment.P1, xf.P))
	p2 := B2Vec2Mat22MulT(xf.R, B2Vec2Sub(segment.P2, xf.P))
	d := B2Vec2Sub(p2, p1)

	index := -1

	for i := 0; i < poly.M_count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := B2Vec2Dot(poly.M_normals[i], B2Vec2Sub(poly.M_vertices[i], p1))
		denominator := B2Vec2Dot(poly.M_normals[i], d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return B2SegmentCollide.E_miss
			}
		} else {
			// Note: we want this predicate without division:
			// lower < numerator / denominator, where denominator < 0
			// Since denominator < 0, we have to flip the inequality:
			// lower < numerator / denominator <==> denominator * lower > numerator.
			if denominator < 0.0 && numerator < lower*denominator {
				// Increase lower.
				// The segment enters this half-space.
				lower = numerator / denominator
				index = i
			} else if denominator > 0.0 && numerator < upper*denominator {
				// Decrease upper.
				// The segment exits this half-space.
				upper = numerator / denominator
			}
		}

		if upper < lower {
			return B2SegmentCollide.E_miss
		}
	}

	B2Assert(0.0 <= lower && lower <= maxLambda)

	if index >= 0 {
		out.Lambda = lower
		out.Normal = B2Vec2Mat22Mul(xf.R, poly.M_normals[index])
		return B2SegmentCollide.E_hit
	}

	out.Lambda = 0.0
	return B2SegmentCollide.E_startsInside
}

func (poly B2PolygonShape) ComputeAABB(aabb *B2AABB, xf B2Transform) {
	R := B2Mat22Mul(xf.R, poly.M_obb.R)
	absR := B2Mat22Abs(R)
	h := B2Vec2Mat22Mul(absR, poly.M_obb.Extents)
	position := B2Vec2Add(xf.P, B2Vec2Mat22Mul(xf.R, poly.M_obb.Center))
	aabb.LowerBound = B2Vec2Sub(position, h)
	aabb.UpperBound = B2Vec2Add(position, h)
}

func (poly B2PolygonShape) ComputeSweptAABB(aabb *B2AABB, xf1, xf2 B2Transform) {
	var aabb1, aabb2 B2AABB
	poly.ComputeAABB(&aabb1, xf1)
	poly.ComputeAABB(&aabb2, xf2)
	aabb.CombineTwoInPlace(aabb1, aabb2)
}

func (poly B2PolygonShape) ComputeMass(massData *B2MassData, density float64) {
	// Polygon mass, centroid, and inertia.
	// Let rho be the polygon density in mass per unit area.
	// Then:
	// mass = rho * int(dA)
	// centroid.x = (1/mass) * rho * int(x * dA)
	// centroid.y = (1/mass) * rho * int(y * dA)
	// I = rho * int((x*x + y*y) * dA)
	//
	// We can compute these integrals by summing all the integrals
	// for each triangle of the polygon. To evaluate the integral
	// for a single triangle, we make a change of variables to
	// the (u,v) coordinates of the triangle:
	// x = x0 + e1x * u + e2x * v
	// y = y0 + e1y * u + e2y * v
	// where 0 <= u && 0 <= v && u + v <= 1.
	//
	// We integrate u from [0,1-v] and then v from [0,1].
	// We also need to use the Jacobian of the transformation:
	// D = cross(e1, e2)
	//
	// Simplification: triangle centroid = (1/3) * (p1 + p2 + p3)
	//
	// The rest of the derivation is handled by computer algebra.

	B2Assert(poly.M_count >= 3)

	center := MakeB2Vec2(0, 0)

	area := 0.0
	I := 0.0

	// s is the reference point for forming triangles.
	// It's location doesn't change the result (except for rounding error).
	s := MakeB2Vec2(0.0, 0.0)

	// This code would put the reference point inside the polygon.
	for i := 0; i < poly.M_count; i++ {
		s.OperatorPlusInplace(poly.M_vertices[i])
	}

	s.OperatorScalarMulInplace(1.0 / float64(poly.M_count))

	k_inv3 := 1.0 / 3.0

	for i := 0; i < poly.M_count; i++ {
		// Triangle vertices.
		e1 := B2Vec2Sub(poly.M_vertices[i], s)
		var e2 B2Vec2

		if i+1 < poly.M_count {
			e2 = B2Vec2Sub(poly.M_vertices[i+1], s)
		} else {
			e2 = B2Vec2Sub(poly.M_vertices[0], s)
		}

		D := B2Vec2Cross(e1, e2)

		triangleArea := 0.5 * D
		area += triangleArea

		// Area weighted centroid
		center.OperatorPlusInplace(B2Vec2MulScalar(triangleArea*k_inv3, B2Vec2Add(e1, e2)))

		ex1 := e1.X
		ey1 := e1.Y
		ex2 := e2.X
		ey2 := e2.Y

		intx2 := ex1*ex1 + ex2*ex1 + ex2*ex2
		inty2 := ey1*ey1 + ey2*ey1 + ey2*ey2

		I += (0.25 * k_inv3 * D) * (intx2 + inty2)
	}

	// Total mass
	massData.Mass = density * area

	// Center of mass
	B2Assert(area > B2_epsilon)
	center.OperatorScalarMulInplace(1.0 / area)
	massData.Center = B2Vec2Add(center, s)

	// Inertia tensor relative to the local origin (point s).
	massData.I = density * I

	// Shift to center of mass then to original body origin.
	massData.I += massData.Mass * (B2Vec2Dot(massData.Center, massData.Center) - B2Vec2Dot(center, center))
}

func (poly B2PolygonShape) ComputeSubmergedArea(normal B2Vec2, offset float64, xf B2Transform, c *B2Vec2) float64 {
	// Transform plane into shape co-ordinates
	normalL := B2Vec2Mat22MulT(xf.R, normal)
	offsetL := offset - B2Vec2Dot(normal, xf.P)

	var depths [B2_maxPolygonVertices]float64
	diveCount := 0
	intoIndex := -1
	outoIndex := -1

	lastSubmerged := false
	for i := 0; i < poly.M_count; i++ {
		depths[i] = B2Vec2Dot(normalL, poly.M_vertices[i]) - offsetL
		isSubmerged := depths[i] < -B2_epsilon
		if i > 0 {
			if isSubmerged {
				if !lastSubmerged {
					intoIndex = i - 1
					diveCount++
				}
			} else {
				if lastSubmerged {
					outoIndex = i - 1
					diveCount++
				}
			}
		}
		lastSubmerged = isSubmerged
	}

	switch diveCount {
	case 0:
		if lastSubmerged {
			// Completely submerged
			var md B2MassData
			poly.ComputeMass(&md, 1.0)
			*c = B2TransformVec2Mul(xf, md.Center)
			return md.Mass
		}
		// Completely dry
		return 0.0

	case 1:
		if intoIndex == -1 {
			intoIndex = poly.M_count - 1
		} else {
			outoIndex = poly.M_count - 1
		}
	}

	intoIndex2 := (intoIndex + 1) % poly.M_count
	outoIndex2 := (outoIndex + 1) % poly.M_count

	intoLambda := (0.0 - depths[intoIndex]) / (depths[intoIndex2] - depths[intoIndex])
	outoLambda := (0.0 - depths[outoIndex]) / (depths[outoIndex2] - depths[outoIndex])

	intoVec := B2Vec2Add(
		B2Vec2MulScalar(1.0-intoLambda, poly.M_vertices[intoIndex]),
		B2Vec2MulScalar(intoLambda, poly.M_vertices[intoIndex2]),
	)
	outoVec := B2Vec2Add(
		B2Vec2MulScalar(1.0-outoLambda, poly.M_vertices[outoIndex]),
		B2Vec2MulScalar(outoLambda, poly.M_vertices[outoIndex2]),
	)

	// Initialize accumulator
	area := 0.0
	center := MakeB2Vec2(0, 0)
	p2 := poly.M_vertices[intoIndex2]

	k_inv3 := 1.0 / 3.0

	// An awkward loop from intoIndex2+1 to outIndex2
	i := intoIndex2
	for i != outoIndex2 {
		i = (i + 1) % poly.M_count
		var p3 B2Vec2
		if i == outoIndex2 {
			p3 = outoVec
		} else {
			p3 = poly.M_vertices[i]
		}

		// Add the triangle formed by intoVec,p2,p3
		e1 := B2Vec2Sub(p2, intoVec)
		e2 := B2Vec2Sub(p3, intoVec)

		D := B2Vec2Cross(e1, e2)

		triangleArea := 0.5 * D

		area += triangleArea

		// Area weighted centroid
		center.OperatorPlusInplace(B2Vec2MulScalar(triangleArea*k_inv3, B2Vec2Add(B2Vec2Add(intoVec, p2), p3)))

		p2 = p3
	}

	// Normalize and transform centroid
	if area > B2_epsilon {
		center.OperatorScalarMulInplace(1.0 / area)
	}

	*c = B2TransformVec2Mul(xf, center)

	return area
}

func (poly B2PolygonShape) Support(xf B2Transform, d B2Vec2) B2Vec2 {
	dLocal := B2Vec2Mat22MulT(xf.R, d)

	bestIndex := 0
	bestValue := B2Vec2Dot(poly.M_coreVertices[0], dLocal)
	for i := 1; i < poly.M_count; i++ {
		value := B2Vec2Dot(poly.M_coreVertices[i], dLocal)
		if value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}

	return B2TransformVec2Mul(xf, poly.M_coreVertices[bestIndex])
}

func (poly B2PolygonShape) GetFirstVertex(xf B2Transform) B2Vec2 {
	return B2TransformVec2Mul(xf, poly.M_coreVertices[0])
}

func (poly *B2PolygonShape) UpdateSweepRadius(center B2Vec2) {
	// Update the sweep radius (maximum radius) as measured from
	// a local center point.
	poly.M_sweepRadius = 0.0
	for i := 0; i < poly.M_count; i++ {
		d := B2Vec2Sub(poly.M_coreVertices[i], center)
		poly.M_sweepRadius = math.Max(poly.M_sweepRadius, d.Length())
	}
}

func (poly B2PolygonShape) Dump() {
	fmt.Print("    shape := box2d.NewB2PolygonShape()\n")
	fmt.Printf("    vs := make([]box2d.B2Vec2, %d)\n", poly.M_count)
	for i := 0; i < poly.M_count; i++ {
		fmt.Printf("    vs[%d].Set(%.15e, %.15e)\n", i, poly.M_vertices[i].X, poly.M_vertices[i].Y)
	}
	fmt.Print("    shape.Set(vs)\n")
}
