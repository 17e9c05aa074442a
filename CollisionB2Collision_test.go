package box2d

import (
	"math"
	"math/rand"
	"testing"
)

func TestAABBOverlapIsSymmetricAndReflexive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	randomBox := func() B2AABB {
		x, y := rng.Float64()*20.0-10.0, rng.Float64()*20.0-10.0
		return MakeB2AABBFromBounds(MakeB2Vec2(x, y), MakeB2Vec2(x+rng.Float64()*5.0, y+rng.Float64()*5.0))
	}

	for i := 0; i < 500; i++ {
		a := randomBox()
		b := randomBox()

		if !B2TestOverlapBoundingBoxes(a, a) {
			t.Fatalf("box %v does not overlap itself", a)
		}
		if B2TestOverlapBoundingBoxes(a, b) != B2TestOverlapBoundingBoxes(b, a) {
			t.Fatalf("overlap of %v and %v is not symmetric", a, b)
		}
	}
}

func TestAABBRayCast(t *testing.T) {
	box := MakeB2AABBFromBounds(MakeB2Vec2(-1.0, -1.0), MakeB2Vec2(1.0, 1.0))

	var out B2RayCastOutput
	if !box.RayCast(&out, MakeB2Segment(MakeB2Vec2(-3.0, 0.0), MakeB2Vec2(3.0, 0.0)), 1.0) {
		t.Fatalf("segment through the box missed")
	}
	if math.Abs(out.Lambda-1.0/3.0) > 1e-9 {
		t.Errorf("lambda = %v, want 1/3", out.Lambda)
	}
	if out.Normal != MakeB2Vec2(-1.0, 0.0) {
		t.Errorf("normal = %v, want (-1, 0)", out.Normal)
	}

	if box.RayCast(&out, MakeB2Segment(MakeB2Vec2(-3.0, 2.0), MakeB2Vec2(3.0, 2.0)), 1.0) {
		t.Errorf("segment above the box hit")
	}
}

func TestCollideCircles(t *testing.T) {
	c1 := MakeB2CircleShape(1.0)
	c2 := MakeB2CircleShape(0.5)

	cases := []struct {
		name  string
		x     float64
		count int
	}{
		{"overlapping", 1.0, 1},
		{"touching", 1.5, 0},
		{"apart", 2.0, 0},
		{"concentric", 0.0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m B2Manifold
			xf1 := MakeB2Transform()
			xf2 := MakeB2TransformByPositionAndAngle(MakeB2Vec2(tc.x, 0.0), 0.0)
			B2CollideCircles(&m, &c1, xf1, &c2, xf2)

			if m.PointCount != tc.count {
				t.Fatalf("point count = %d, want %d", m.PointCount, tc.count)
			}
			if m.PointCount == 0 {
				return
			}

			if want := tc.x - 1.5; math.Abs(m.Points[0].Separation-want) > 1e-12 {
				t.Errorf("separation = %v, want %v", m.Points[0].Separation, want)
			}
			if math.Abs(m.Normal.Length()-1.0) > 1e-12 {
				t.Errorf("normal %v is not unit length", m.Normal)
			}
		})
	}
}

func TestCollideUnitCirclesHalfOverlapping(t *testing.T) {
	circle := MakeB2CircleShape(1.0)

	var m B2Manifold
	B2CollideCircles(&m, &circle, MakeB2Transform(), &circle, MakeB2TransformByPositionAndAngle(MakeB2Vec2(1.5, 0.0), 0.0))

	if m.PointCount != 1 {
		t.Fatalf("point count = %d, want 1", m.PointCount)
	}
	if math.Abs(m.Points[0].Separation+0.5) > 1e-12 {
		t.Errorf("separation = %v, want -0.5", m.Points[0].Separation)
	}
	if math.Abs(m.Normal.X-1.0) > 1e-12 || math.Abs(m.Normal.Y) > 1e-12 {
		t.Errorf("normal = %v, want (1,0)", m.Normal)
	}
	// Halfway between the two surface points.
	if p := m.Points[0].LocalPoint1; math.Abs(p.X-0.75) > 1e-12 || math.Abs(p.Y) > 1e-12 {
		t.Errorf("contact point = %v, want (0.75,0)", p)
	}
}

func makeBox(t *testing.T, hx, hy float64) B2PolygonShape {
	t.Helper()
	box := MakeB2PolygonShape()
	if err := box.SetAsBox(hx, hy); err != nil {
		t.Fatalf("SetAsBox: %v", err)
	}
	return box
}

func TestCollidePolygonsSeparations(t *testing.T) {
	a := makeBox(t, 1.0, 1.0)
	b := makeBox(t, 0.5, 0.5)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		xfA := MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.0, 0.0), rng.Float64()*2.0*B2_pi)
		xfB := MakeB2TransformByPositionAndAngle(
			MakeB2Vec2(rng.Float64()*3.0-1.5, rng.Float64()*3.0-1.5),
			rng.Float64()*2.0*B2_pi,
		)

		var m B2Manifold
		B2CollidePolygons(&m, &a, xfA, &b, xfB)

		if m.PointCount > B2_maxManifoldPoints {
			t.Fatalf("point count %d", m.PointCount)
		}
		for k := 0; k < m.PointCount; k++ {
			if m.Points[k].Separation > 0.0 {
				t.Fatalf("positive separation %v", m.Points[k].Separation)
			}
		}
		if m.PointCount > 0 && math.Abs(m.Normal.Length()-1.0) > 1e-9 {
			t.Fatalf("normal %v is not unit length", m.Normal)
		}
	}
}

func TestCollidePolygonsFaceContact(t *testing.T) {
	ground := makeBox(t, 5.0, 0.5)
	box := makeBox(t, 0.5, 0.5)

	var m B2Manifold
	xfA := MakeB2Transform()
	xfB := MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.0, 0.95), 0.0)
	B2CollidePolygons(&m, &ground, xfA, &box, xfB)

	if m.PointCount != 2 {
		t.Fatalf("resting box has %d points, want 2", m.PointCount)
	}
	if math.Abs(m.Normal.X) > 1e-9 || math.Abs(m.Normal.Y-1.0) > 1e-9 {
		t.Errorf("normal = %v, want (0, 1)", m.Normal)
	}
	for k := 0; k < 2; k++ {
		if math.Abs(m.Points[k].Separation+0.05) > 1e-9 {
			t.Errorf("separation = %v, want -0.05", m.Points[k].Separation)
		}
	}
}

func TestContactIDsAreStable(t *testing.T) {
	ground := makeBox(t, 5.0, 0.5)
	box := makeBox(t, 0.5, 0.5)
	xfA := MakeB2Transform()

	keys := func(y, x float64) map[uint32]bool {
		var m B2Manifold
		B2CollidePolygons(&m, &ground, xfA, &box, MakeB2TransformByPositionAndAngle(MakeB2Vec2(x, y), 0.01))
		ids := make(map[uint32]bool)
		for k := 0; k < m.PointCount; k++ {
			ids[m.Points[k].Id.Key()] = true
		}
		return ids
	}

	first := keys(0.95, 0.0)
	if len(first) != 2 {
		t.Fatalf("expected two distinct ids, got %v", first)
	}

	// Small motions keep the same features in contact.
	for _, dx := range []float64{0.01, 0.05, 0.1, -0.1} {
		next := keys(0.96, dx)
		if len(next) != len(first) {
			t.Fatalf("dx=%v: %d ids, want %d", dx, len(next), len(first))
		}
		for id := range first {
			if !next[id] {
				t.Errorf("dx=%v: id %#x disappeared", dx, id)
			}
		}
	}
}

func TestContactIDKeyRoundTrip(t *testing.T) {
	var id B2ContactID
	id.Features = B2ContactFeature{ReferenceEdge: 3, IncidentEdge: 1, IncidentVertex: 1, Flip: 1}

	var other B2ContactID
	other.SetKey(id.Key())
	if other != id {
		t.Errorf("SetKey(Key()) = %+v, want %+v", other, id)
	}
}

func TestCollidePolygonAndCircle(t *testing.T) {
	box := makeBox(t, 1.0, 1.0)
	circle := MakeB2CircleShape(0.5)

	var m B2Manifold
	B2CollidePolygonAndCircle(&m, &box, MakeB2Transform(), &circle, MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.0, 1.25), 0.0))
	if m.PointCount != 1 {
		t.Fatalf("point count = %d, want 1", m.PointCount)
	}
	if math.Abs(m.Points[0].Separation+0.25) > 1e-9 {
		t.Errorf("separation = %v, want -0.25", m.Points[0].Separation)
	}

	B2CollidePolygonAndCircle(&m, &box, MakeB2Transform(), &circle, MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.0, 1.75), 0.0))
	if m.PointCount != 0 {
		t.Errorf("separated circle has %d points", m.PointCount)
	}
}

func TestCollidePointAndCircle(t *testing.T) {
	point := MakeB2PointShape(MakeB2Vec2(0.0, 0.0), 1.0)
	circle := MakeB2CircleShape(0.5)

	var m B2Manifold
	B2CollidePointAndCircle(&m, &point, MakeB2Transform(), &circle, MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.3, 0.0), 0.0))
	if m.PointCount != 1 {
		t.Fatalf("point inside the circle: count = %d, want 1", m.PointCount)
	}

	B2CollidePointAndCircle(&m, &point, MakeB2Transform(), &circle, MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.7, 0.0), 0.0))
	if m.PointCount != 0 {
		t.Errorf("point outside the circle: count = %d, want 0", m.PointCount)
	}
}
