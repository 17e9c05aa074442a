package box2d

import "math"

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Distance.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// GJK using Voronoi regions (Christer Ericson) and region selection
// optimizations (Casey Muratori).

// These counters are process wide and are not synchronized. They are intended
// for profiling a single world.
var B2_gjkCalls, B2_gjkIters, B2_gjkMaxIters int

const b2_gjkMaxIterations = 20

// The origin is either in the region of points[1] or in the edge region. The origin is
// not in region of points[0] because that is the old point.
func b2ProcessTwo(x1, x2 *B2Vec2, p1s, p2s, points *[3]B2Vec2) int {
	// If in point[1] region
	r := points[1].OperatorNegate()
	d := B2Vec2Sub(points[0], points[1])
	length := d.Normalize()
	lambda := B2Vec2Dot(r, d)
	if lambda <= 0.0 || length < B2_epsilon {
		// The simplex is reduced to a point.
		*x1 = p1s[1]
		*x2 = p2s[1]
		p1s[0] = p1s[1]
		p2s[0] = p2s[1]
		points[0] = points[1]
		return 1
	}

	// Else in edge region
	lambda /= length
	*x1 = B2Vec2Add(p1s[1], B2Vec2MulScalar(lambda, B2Vec2Sub(p1s[0], p1s[1])))
	*x2 = B2Vec2Add(p2s[1], B2Vec2MulScalar(lambda, B2Vec2Sub(p2s[0], p2s[1])))
	return 2
}

// Possible regions:
// - points[2]
// - edge points[0]-points[2]
// - edge points[1]-points[2]
// - inside the triangle
func b2ProcessThree(x1, x2 *B2Vec2, p1s, p2s, points *[3]B2Vec2) int {
	a := points[0]
	b := points[1]
	c := points[2]

	ab := B2Vec2Sub(b, a)
	ac := B2Vec2Sub(c, a)
	bc := B2Vec2Sub(c, b)

	tn := -B2Vec2Dot(a, ac)
	td := B2Vec2Dot(c, ac)
	un := -B2Vec2Dot(b, bc)
	ud := B2Vec2Dot(c, bc)

	// In vertex c region?
	if td <= 0.0 && ud <= 0.0 {
		// Single point
		*x1 = p1s[2]
		*x2 = p2s[2]
		p1s[0] = p1s[2]
		p2s[0] = p2s[2]
		points[0] = points[2]
		return 1
	}

	// Should not be in vertex a or b region.

	n := B2Vec2Cross(ab, ac)

	vc := n * B2Vec2Cross(a, b)

	// Should not be in edge ab region.

	va := n * B2Vec2Cross(b, c)

	// In edge bc region?
	if va <= 0.0 && un >= 0.0 && ud >= 0.0 && (un+ud) > 0.0 {
		B2Assert(un+ud > 0.0)
		lambda := un / (un + ud)
		*x1 = B2Vec2Add(p1s[1], B2Vec2MulScalar(lambda, B2Vec2Sub(p1s[2], p1s[1])))
		*x2 = B2Vec2Add(p2s[1], B2Vec2MulScalar(lambda, B2Vec2Sub(p2s[2], p2s[1])))
		p1s[0] = p1s[2]
		p2s[0] = p2s[2]
		points[0] = points[2]
		return 2
	}

	vb := n * B2Vec2Cross(c, a)

	// In edge ac region?
	if vb <= 0.0 && tn >= 0.0 && td >= 0.0 && (tn+td) > 0.0 {
		B2Assert(tn+td > 0.0)
		lambda := tn / (tn + td)
		*x1 = B2Vec2Add(p1s[0], B2Vec2MulScalar(lambda, B2Vec2Sub(p1s[2], p1s[0])))
		*x2 = B2Vec2Add(p2s[0], B2Vec2MulScalar(lambda, B2Vec2Sub(p2s[2], p2s[0])))
		p1s[1] = p1s[2]
		p2s[1] = p2s[2]
		points[1] = points[2]
		return 2
	}

	// Inside the triangle, compute barycentric coordinates
	denom := va + vb + vc
	B2Assert(denom > 0.0)
	denom = 1.0 / denom
	u := va * denom
	v := vb * denom
	w := 1.0 - u - v
	*x1 = B2Vec2Add(B2Vec2Add(B2Vec2MulScalar(u, p1s[0]), B2Vec2MulScalar(v, p1s[1])), B2Vec2MulScalar(w, p1s[2]))
	*x2 = B2Vec2Add(B2Vec2Add(B2Vec2MulScalar(u, p2s[0]), B2Vec2MulScalar(v, p2s[1])), B2Vec2MulScalar(w, p2s[2]))
	return 3
}

func b2InPoints(w B2Vec2, points *[3]B2Vec2, pointCount int) bool {
	k_tolerance := 100.0 * B2_epsilon
	for i := 0; i < pointCount; i++ {
		d := B2Vec2Abs(B2Vec2Sub(w, points[i]))
		m := B2Vec2Max(B2Vec2Abs(w), B2Vec2Abs(points[i]))

		if d.X < k_tolerance*(m.X+1.0) && d.Y < k_tolerance*(m.Y+1.0) {
			return true
		}
	}

	return false
}

/// Compute the distance between the core shapes of two convex supporters.
/// x1 and x2 receive the closest points. A zero distance means the core
/// shapes overlap and the points are not meaningful.
func B2DistanceGeneric(x1, x2 *B2Vec2, shape1 B2SupportShape, xf1 B2Transform, shape2 B2SupportShape, xf2 B2Transform) float64 {
	var p1s, p2s, points [3]B2Vec2
	pointCount := 0

	*x1 = shape1.GetFirstVertex(xf1)
	*x2 = shape2.GetFirstVertex(xf2)

	vSqr := 0.0
	for iter := 0; iter < b2_gjkMaxIterations; iter++ {
		v := B2Vec2Sub(*x2, *x1)
		w1 := shape1.Support(xf1, v)
		w2 := shape2.Support(xf2, v.OperatorNegate())

		vSqr = B2Vec2Dot(v, v)
		w := B2Vec2Sub(w2, w1)
		vw := B2Vec2Dot(v, w)
		if vSqr-vw <= 0.01*vSqr || b2InPoints(w, &points, pointCount) {
			if pointCount == 0 {
				*x1 = w1
				*x2 = w2
			}
			b2SetGjkIters(iter)
			return math.Sqrt(vSqr)
		}

		switch pointCount {
		case 0:
			p1s[0] = w1
			p2s[0] = w2
			points[0] = w
			*x1 = p1s[0]
			*x2 = p2s[0]
			pointCount++

		case 1:
			p1s[1] = w1
			p2s[1] = w2
			points[1] = w
			pointCount = b2ProcessTwo(x1, x2, &p1s, &p2s, &points)

		case 2:
			p1s[2] = w1
			p2s[2] = w2
			points[2] = w
			pointCount = b2ProcessThree(x1, x2, &p1s, &p2s, &points)
		}

		// If we have three points, then the origin is in the corresponding triangle.
		if pointCount == 3 {
			b2SetGjkIters(iter)
			return 0.0
		}

		maxSqr := -B2_maxFloat
		for i := 0; i < pointCount; i++ {
			maxSqr = math.Max(maxSqr, B2Vec2Dot(points[i], points[i]))
		}

		if vSqr <= 100.0*B2_epsilon*maxSqr {
			b2SetGjkIters(iter)
			v = B2Vec2Sub(*x2, *x1)
			vSqr = B2Vec2Dot(v, v)
			return math.Sqrt(vSqr)
		}
	}

	b2SetGjkIters(b2_gjkMaxIterations)
	return math.Sqrt(vSqr)
}

func b2SetGjkIters(iters int) {
	B2_gjkIters = iters
	if iters > B2_gjkMaxIters {
		B2_gjkMaxIters = iters
	}
}

func b2DistanceCC(x1, x2 *B2Vec2, circle1 *B2CircleShape, xf1 B2Transform, circle2 *B2CircleShape, xf2 B2Transform) float64 {
	p1 := B2TransformVec2Mul(xf1, circle1.M_p)
	p2 := B2TransformVec2Mul(xf2, circle2.M_p)

	d := B2Vec2Sub(p2, p1)
	dSqr := B2Vec2Dot(d, d)
	r1 := circle1.M_radius - B2_toiSlop
	r2 := circle2.M_radius - B2_toiSlop
	r := r1 + r2
	if dSqr > r*r {
		dLen := d.Normalize()
		distance := dLen - r
		*x1 = B2Vec2Add(p1, B2Vec2MulScalar(r1, d))
		*x2 = B2Vec2Sub(p2, B2Vec2MulScalar(r2, d))
		return distance
	} else if dSqr > B2_epsilon*B2_epsilon {
		d.Normalize()
		*x1 = B2Vec2Add(p1, B2Vec2MulScalar(r1, d))
		*x2 = *x1
		return 0.0
	}

	*x1 = p1
	*x2 = *x1
	return 0.0
}

// A lone world point, used to run GJK against a circle center.
type b2Point struct {
	p B2Vec2
}

func (point b2Point) Support(xf B2Transform, d B2Vec2) B2Vec2 {
	return point.p
}

func (point b2Point) GetFirstVertex(xf B2Transform) B2Vec2 {
	return point.p
}

// GJK against the circle center, then pull the second point back by the
// core radius.
func b2DistanceSupportAndCircle(x1, x2 *B2Vec2, shape1 B2SupportShape, xf1 B2Transform, circle *B2CircleShape, xf2 B2Transform) float64 {
	point := b2Point{p: B2TransformVec2Mul(xf2, circle.M_p)}

	distance := B2DistanceGeneric(x1, x2, shape1, xf1, point, MakeB2Transform())

	r := circle.M_radius - B2_toiSlop

	if distance > r {
		distance -= r
		d := B2Vec2Sub(*x2, *x1)
		d.Normalize()
		x2.OperatorMinusInplace(B2Vec2MulScalar(r, d))
	} else {
		distance = 0.0
		*x2 = *x1
	}

	return distance
}

// Shapes whose core is the convex hull of their support points.
func b2IsSupportShape(shapeType uint8) bool {
	return shapeType == B2Shape_Type.E_polygon ||
		shapeType == B2Shape_Type.E_point ||
		shapeType == B2Shape_Type.E_edge
}

/// Compute the distance between the core shapes of shape1 and shape2 and the
/// closest points x1 on shape1 and x2 on shape2. A zero distance means the
/// core shapes overlap.
func B2Distance(x1, x2 *B2Vec2, shape1 B2ShapeInterface, xf1 B2Transform, shape2 B2ShapeInterface, xf2 B2Transform) float64 {
	B2_gjkCalls++

	type1 := shape1.GetType()
	type2 := shape2.GetType()

	if type1 == B2Shape_Type.E_circle && type2 == B2Shape_Type.E_circle {
		return b2DistanceCC(x1, x2, shape1.(*B2CircleShape), xf1, shape2.(*B2CircleShape), xf2)
	}

	if type2 == B2Shape_Type.E_circle && b2IsSupportShape(type1) {
		return b2DistanceSupportAndCircle(x1, x2, shape1, xf1, shape2.(*B2CircleShape), xf2)
	}

	if type1 == B2Shape_Type.E_circle && b2IsSupportShape(type2) {
		return b2DistanceSupportAndCircle(x2, x1, shape2, xf2, shape1.(*B2CircleShape), xf1)
	}

	if b2IsSupportShape(type1) && b2IsSupportShape(type2) {
		return B2DistanceGeneric(x1, x2, shape1, xf1, shape2, xf2)
	}

	B2Assert(false)
	return 0.0
}
