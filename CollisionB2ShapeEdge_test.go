package box2d

import (
	"errors"
	"math"
	"testing"
)

func vecClose(a, b B2Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// A floor from right to left, so its empty side faces +y.
func makeFloorEdge(t *testing.T, halfWidth float64) *B2EdgeShape {
	t.Helper()
	edge, err := NewB2EdgeShape(MakeB2Vec2(halfWidth, 0.0), MakeB2Vec2(-halfWidth, 0.0))
	if err != nil {
		t.Fatal(err)
	}
	return edge
}

func TestEdgeShapeRejectsDegenerateEdge(t *testing.T) {
	_, err := NewB2EdgeShape(MakeB2Vec2(1.0, 1.0), MakeB2Vec2(1.0, 1.0))
	if !errors.Is(err, ErrInvalidEdge) {
		t.Fatalf("err = %v, want ErrInvalidEdge", err)
	}
}

func TestEdgeShapeGeometry(t *testing.T) {
	edge := makeFloorEdge(t, 1.0)

	if edge.GetType() != B2Shape_Type.E_edge {
		t.Errorf("type = %d", edge.GetType())
	}
	if edge.GetLength() != 2.0 {
		t.Errorf("length = %v, want 2", edge.GetLength())
	}
	if !vecClose(edge.GetNormalVector(), MakeB2Vec2(0.0, 1.0), 1e-12) {
		t.Errorf("normal = %v", edge.GetNormalVector())
	}

	// Core vertices sit inside the edge and below its surface.
	if want := MakeB2Vec2(1.0-B2_toiSlop, -B2_toiSlop); !vecClose(edge.GetCoreVertex1(), want, 1e-12) {
		t.Errorf("core v1 = %v, want %v", edge.GetCoreVertex1(), want)
	}
	if want := MakeB2Vec2(-1.0+B2_toiSlop, -B2_toiSlop); !vecClose(edge.GetCoreVertex2(), want, 1e-12) {
		t.Errorf("core v2 = %v, want %v", edge.GetCoreVertex2(), want)
	}

	var md B2MassData
	edge.ComputeMass(&md, 5.0)
	if md.Mass != 0.0 || md.I != 0.0 {
		t.Errorf("edge mass = %v, inertia = %v", md.Mass, md.I)
	}
	if edge.TestPoint(MakeB2Transform(), MakeB2Vec2(0.0, 0.0)) {
		t.Error("edge contains a point")
	}

	var aabb B2AABB
	edge.ComputeAABB(&aabb, MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.0, 3.0), 0.5*B2_pi))
	if !vecClose(aabb.LowerBound, MakeB2Vec2(0.0, 2.0), 1e-9) || !vecClose(aabb.UpperBound, MakeB2Vec2(0.0, 4.0), 1e-9) {
		t.Errorf("rotated aabb = %v", aabb)
	}
}

func TestEdgeRayCastIsOneSided(t *testing.T) {
	edge := makeFloorEdge(t, 5.0)
	xf := MakeB2Transform()

	var out B2RayCastOutput
	if got := edge.TestSegment(xf, &out, MakeB2Segment(MakeB2Vec2(0.0, 2.0), MakeB2Vec2(0.0, -2.0)), 1.0); got != B2SegmentCollide.E_hit {
		t.Fatalf("downward ray: %d, want hit", got)
	}
	if math.Abs(out.Lambda-0.5) > 1e-12 {
		t.Errorf("lambda = %v, want 0.5", out.Lambda)
	}
	if !vecClose(out.Normal, MakeB2Vec2(0.0, 1.0), 1e-12) {
		t.Errorf("normal = %v", out.Normal)
	}

	for name, segment := range map[string]B2Segment{
		"from below":   MakeB2Segment(MakeB2Vec2(0.0, -2.0), MakeB2Vec2(0.0, 2.0)),
		"past the end": MakeB2Segment(MakeB2Vec2(6.0, 2.0), MakeB2Vec2(6.0, -2.0)),
		"too short":    MakeB2Segment(MakeB2Vec2(0.0, 2.0), MakeB2Vec2(0.0, 1.0)),
	} {
		if got := edge.TestSegment(xf, &out, segment, 1.0); got != B2SegmentCollide.E_miss {
			t.Errorf("%s: %d, want miss", name, got)
		}
	}
}

func TestCollideEdgeAndCircle(t *testing.T) {
	edge := makeFloorEdge(t, 5.0)
	circle := MakeB2CircleShape(0.5)

	cases := []struct {
		name       string
		center     B2Vec2
		count      int
		separation float64
		normal     B2Vec2
	}{
		{"face", MakeB2Vec2(1.0, 0.4), 1, -0.1, MakeB2Vec2(0.0, 1.0)},
		{"above", MakeB2Vec2(1.0, 0.6), 0, 0.0, B2Vec2{}},
		{"end vertex", MakeB2Vec2(-5.3, 0.3), 1, math.Sqrt(0.18) - 0.5, MakeB2Vec2(-math.Sqrt2/2, math.Sqrt2/2)},
		{"under the end", MakeB2Vec2(-5.3, -0.3), 0, 0.0, B2Vec2{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m B2Manifold
			B2CollideEdgeAndCircle(&m, edge, MakeB2Transform(), &circle, MakeB2TransformByPositionAndAngle(tc.center, 0.0))

			if m.PointCount != tc.count {
				t.Fatalf("point count = %d, want %d", m.PointCount, tc.count)
			}
			if m.PointCount == 0 {
				return
			}
			if math.Abs(m.Points[0].Separation-tc.separation) > 1e-9 {
				t.Errorf("separation = %v, want %v", m.Points[0].Separation, tc.separation)
			}
			if !vecClose(m.Normal, tc.normal, 1e-9) {
				t.Errorf("normal = %v, want %v", m.Normal, tc.normal)
			}
		})
	}
}

func TestCollidePolygonAndEdge(t *testing.T) {
	edge := makeFloorEdge(t, 5.0)
	box := makeBox(t, 0.5, 0.5)

	t.Run("resting", func(t *testing.T) {
		var m B2Manifold
		B2CollidePolygonAndEdge(&m, &box, MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.0, 0.49), 0.0), edge, MakeB2Transform())

		if m.PointCount != 2 {
			t.Fatalf("point count = %d, want 2", m.PointCount)
		}
		if !vecClose(m.Normal, MakeB2Vec2(0.0, -1.0), 1e-12) {
			t.Errorf("normal = %v, want (0,-1)", m.Normal)
		}
		for i := 0; i < 2; i++ {
			if math.Abs(m.Points[i].Separation+0.01) > 1e-9 {
				t.Errorf("point %d separation = %v, want -0.01", i, m.Points[i].Separation)
			}
		}
	})

	t.Run("above", func(t *testing.T) {
		var m B2Manifold
		B2CollidePolygonAndEdge(&m, &box, MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.0, 0.6), 0.0), edge, MakeB2Transform())
		if m.PointCount != 0 {
			t.Fatalf("point count = %d, want 0", m.PointCount)
		}
	})

	t.Run("overhanging", func(t *testing.T) {
		var m B2Manifold
		B2CollidePolygonAndEdge(&m, &box, MakeB2TransformByPositionAndAngle(MakeB2Vec2(4.8, 0.49), 0.0), edge, MakeB2Transform())

		if m.PointCount != 2 {
			t.Fatalf("point count = %d, want 2", m.PointCount)
		}
		// The corner past the end is clipped back to the edge vertex.
		if !vecClose(m.Points[1].LocalPoint2, MakeB2Vec2(5.0, 0.0), 1e-12) {
			t.Errorf("clipped point = %v, want (5,0)", m.Points[1].LocalPoint2)
		}
		if math.Abs(m.Points[1].Separation+0.01) > 1e-9 {
			t.Errorf("clipped separation = %v, want -0.01", m.Points[1].Separation)
		}
	})
}

func TestEdgeLoopSubmergedArea(t *testing.T) {
	square := []B2Vec2{
		MakeB2Vec2(-1.0, -2.0),
		MakeB2Vec2(1.0, -2.0),
		MakeB2Vec2(1.0, 0.0),
		MakeB2Vec2(-1.0, 0.0),
	}

	submerged := func(offset float64) (float64, B2Vec2) {
		area := 0.0
		var centroid B2Vec2
		for i := range square {
			edge, err := NewB2EdgeShape(square[i], square[(i+1)%len(square)])
			if err != nil {
				t.Fatal(err)
			}
			var c B2Vec2
			a := edge.ComputeSubmergedArea(MakeB2Vec2(0.0, 1.0), offset, MakeB2Transform(), &c)
			area += a
			centroid.OperatorPlusInplace(B2Vec2MulScalar(a, c))
		}
		if area != 0.0 {
			centroid = B2Vec2MulScalar(1.0/area, centroid)
		}
		return area, centroid
	}

	if area, c := submerged(1.0); math.Abs(area-4.0) > 1e-12 || !vecClose(c, MakeB2Vec2(0.0, -1.0), 1e-12) {
		t.Errorf("fully submerged: area %v centroid %v", area, c)
	}
	if area, c := submerged(-1.0); math.Abs(area-2.0) > 1e-12 || !vecClose(c, MakeB2Vec2(0.0, -1.5), 1e-12) {
		t.Errorf("half submerged: area %v centroid %v", area, c)
	}
	if area, _ := submerged(-3.0); area != 0.0 {
		t.Errorf("dry: area %v", area)
	}
}

func TestEdgeChainConnectsNeighbours(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))

	def := MakeB2EdgeChainDef(MakeB2Vec2(10.0, 0.0), MakeB2Vec2(0.0, 1.0), MakeB2Vec2(-10.0, 0.0))
	fixtures, err := world.GetGroundBody().CreateEdgeChain(&def)
	if err != nil {
		t.Fatal(err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("%d fixtures, want 2", len(fixtures))
	}

	e1 := fixtures[0].GetShape().(*B2EdgeShape)
	e2 := fixtures[1].GetShape().(*B2EdgeShape)
	if e1.GetNextEdge() != e2 || e2.GetPrevEdge() != e1 {
		t.Fatal("edges are not linked")
	}
	if e1.GetPrevEdge() != nil || e2.GetNextEdge() != nil {
		t.Error("open chain has linked ends")
	}
	if e1.GetCoreVertex2() != e2.GetCoreVertex1() {
		t.Errorf("core vertices differ at the joint: %v and %v", e1.GetCoreVertex2(), e2.GetCoreVertex1())
	}
	if !e1.Corner2IsConvex() || !e2.Corner1IsConvex() {
		t.Error("hill top is not convex")
	}
	if e1.GetCorner2Vector() != e2.GetCorner1Vector() {
		t.Error("corner directions differ at the joint")
	}

	loop := MakeB2EdgeChainDef(MakeB2Vec2(10.0, 0.0), MakeB2Vec2(0.0, 1.0))
	loop.IsLoop = true
	if _, err := world.GetGroundBody().CreateEdgeChain(&loop); !errors.Is(err, ErrInvalidEdge) {
		t.Errorf("two-vertex loop: err = %v, want ErrInvalidEdge", err)
	}
}

func TestShapesRestOnEdgeChain(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))

	def := MakeB2EdgeChainDef(MakeB2Vec2(10.0, 0.0), MakeB2Vec2(0.0, 0.0), MakeB2Vec2(-10.0, 0.0))
	if _, err := world.GetGroundBody().CreateEdgeChain(&def); err != nil {
		t.Fatal(err)
	}

	box := addBoxBody(t, world, MakeB2Vec2(5.0, 2.0), 0.5, 0.5)
	// Lands on the shared vertex.
	ball := addCircleBody(t, world, MakeB2Vec2(0.0, 2.0), 0.5)

	stepN(world, 180, nil)

	for name, body := range map[string]*B2Body{"box": box, "ball": ball} {
		if y := body.GetPosition().Y; y < 0.45 || y > 0.55 {
			t.Errorf("%s rests at y=%v, want about 0.5", name, y)
		}
	}
}
