package box2d

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func toCpVerts(vs []B2Vec2) []cp.Vector {
	res := make([]cp.Vector, len(vs))
	for i, v := range vs {
		res[i] = cp.Vector{X: v.X, Y: v.Y}
	}
	return res
}

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1.0, math.Max(math.Abs(a), math.Abs(b)))
}

func TestCircleMassMatchesChipmunk(t *testing.T) {
	for _, tc := range []struct {
		radius  float64
		center  B2Vec2
		density float64
	}{
		{0.5, MakeB2Vec2(0.0, 0.0), 1.0},
		{2.0, MakeB2Vec2(1.0, -3.0), 0.25},
		{0.1, MakeB2Vec2(-0.5, 0.5), 7.0},
	} {
		circle := MakeB2CircleShape(tc.radius)
		circle.M_p = tc.center

		var md B2MassData
		circle.ComputeMass(&md, tc.density)

		mass := tc.density * cp.AreaForCircle(0.0, tc.radius)
		inertia := cp.MomentForCircle(mass, 0.0, tc.radius, cp.Vector{X: tc.center.X, Y: tc.center.Y})

		if !closeTo(md.Mass, mass, 1e-12) {
			t.Errorf("r=%v: mass = %v, want %v", tc.radius, md.Mass, mass)
		}
		if !closeTo(md.I, inertia, 1e-12) {
			t.Errorf("r=%v: inertia = %v, want %v", tc.radius, md.I, inertia)
		}
		if md.Center != tc.center {
			t.Errorf("r=%v: center = %v, want %v", tc.radius, md.Center, tc.center)
		}
	}
}

func TestBoxMassMatchesChipmunk(t *testing.T) {
	box := makeBox(t, 1.5, 0.25)

	var md B2MassData
	box.ComputeMass(&md, 2.0)

	mass := 2.0 * 3.0 * 0.5
	if !closeTo(md.Mass, mass, 1e-12) {
		t.Errorf("mass = %v, want %v", md.Mass, mass)
	}
	if want := cp.MomentForBox(mass, 3.0, 0.5); !closeTo(md.I, want, 1e-9) {
		t.Errorf("inertia = %v, want %v", md.I, want)
	}
	if md.Center.Length() > 1e-12 {
		t.Errorf("center = %v, want origin", md.Center)
	}
}

func TestPolygonMassMatchesChipmunk(t *testing.T) {
	vertexSets := [][]B2Vec2{
		// Offset triangle
		{MakeB2Vec2(1.0, 1.0), MakeB2Vec2(3.0, 1.0), MakeB2Vec2(2.0, 4.0)},
		// Irregular pentagon
		{MakeB2Vec2(-1.0, -1.0), MakeB2Vec2(1.0, -1.5), MakeB2Vec2(2.0, 0.5), MakeB2Vec2(0.0, 2.0), MakeB2Vec2(-1.5, 0.5)},
		// Rotated, shifted box
		{MakeB2Vec2(4.0, 0.0), MakeB2Vec2(5.0, 1.0), MakeB2Vec2(4.0, 2.0), MakeB2Vec2(3.0, 1.0)},
	}

	for i, vs := range vertexSets {
		poly, err := NewB2PolygonShapeFromVertices(vs)
		if err != nil {
			t.Fatalf("polygon %d: %v", i, err)
		}

		density := 1.5
		var md B2MassData
		poly.ComputeMass(&md, density)

		verts := toCpVerts(vs)
		mass := density * cp.AreaForPoly(len(verts), verts, 0.0)
		centroid := cp.CentroidForPoly(len(verts), verts)
		inertia := cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0.0)

		if !closeTo(md.Mass, mass, 1e-9) {
			t.Errorf("polygon %d: mass = %v, want %v", i, md.Mass, mass)
		}
		if !closeTo(md.Center.X, centroid.X, 1e-9) || !closeTo(md.Center.Y, centroid.Y, 1e-9) {
			t.Errorf("polygon %d: center = %v, want %v", i, md.Center, centroid)
		}
		if !closeTo(md.I, inertia, 1e-9) {
			t.Errorf("polygon %d: inertia = %v, want %v", i, md.I, inertia)
		}
		if !closeTo(poly.GetCentroid().X, centroid.X, 1e-9) || !closeTo(poly.GetCentroid().Y, centroid.Y, 1e-9) {
			t.Errorf("polygon %d: cached centroid = %v, want %v", i, poly.GetCentroid(), centroid)
		}
	}
}

func TestPointMass(t *testing.T) {
	point := MakeB2PointShape(MakeB2Vec2(1.0, 2.0), 3.0)

	var md B2MassData
	point.ComputeMass(&md, 100.0)

	if md.Mass != 3.0 {
		t.Errorf("mass = %v, want 3", md.Mass)
	}
	if md.Center != MakeB2Vec2(1.0, 2.0) {
		t.Errorf("center = %v", md.Center)
	}
	if want := cp.MomentForCircle(3.0, 0.0, 0.0, cp.Vector{X: 1.0, Y: 2.0}); !closeTo(md.I, want, 1e-12) {
		t.Errorf("inertia = %v, want %v", md.I, want)
	}
}

func TestPolygonSetRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		vs   []B2Vec2
	}{
		{"too few", []B2Vec2{MakeB2Vec2(0.0, 0.0), MakeB2Vec2(1.0, 0.0)}},
		{"too many", make([]B2Vec2, B2_maxPolygonVertices+1)},
		{"clockwise", []B2Vec2{MakeB2Vec2(0.0, 0.0), MakeB2Vec2(0.0, 1.0), MakeB2Vec2(1.0, 0.0)}},
		{"concave", []B2Vec2{
			MakeB2Vec2(0.0, 0.0), MakeB2Vec2(2.0, 0.0), MakeB2Vec2(1.0, 0.5),
			MakeB2Vec2(2.0, 2.0), MakeB2Vec2(0.0, 2.0),
		}},
		{"duplicate vertex", []B2Vec2{MakeB2Vec2(0.0, 0.0), MakeB2Vec2(1.0, 0.0), MakeB2Vec2(1.0, 0.0), MakeB2Vec2(0.0, 1.0)}},
		{"collinear", []B2Vec2{MakeB2Vec2(0.0, 0.0), MakeB2Vec2(1.0, 0.0), MakeB2Vec2(2.0, 0.0)}},
		{"thinner than the core", []B2Vec2{MakeB2Vec2(0.0, 0.0), MakeB2Vec2(1.0, 0.0), MakeB2Vec2(1.0, 0.05), MakeB2Vec2(0.0, 0.05)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			poly := makeBox(t, 1.0, 1.0)
			before := poly

			err := poly.Set(tc.vs)
			if !errors.Is(err, ErrInvalidPolygon) {
				t.Fatalf("err = %v, want ErrInvalidPolygon", err)
			}
			if poly != before {
				t.Errorf("failed Set modified the polygon")
			}
		})
	}

	box := MakeB2PolygonShape()
	if err := box.SetAsBox(0.01, 1.0); !errors.Is(err, ErrInvalidPolygon) {
		t.Errorf("SetAsBox(0.01, 1) err = %v, want ErrInvalidPolygon", err)
	}
}

func TestShapeTestPointAndSegment(t *testing.T) {
	box := makeBox(t, 1.0, 1.0)
	circle := MakeB2CircleShape(1.0)
	point := MakeB2PointShape(MakeB2Vec2(0.0, 0.0), 1.0)
	xf := MakeB2TransformByPositionAndAngle(MakeB2Vec2(2.0, 0.0), 0.25*B2_pi)

	for _, shape := range []B2ShapeInterface{&box, &circle} {
		if !shape.TestPoint(xf, MakeB2Vec2(2.1, 0.1)) {
			t.Errorf("type %d: center point not inside", shape.GetType())
		}
		if shape.TestPoint(xf, MakeB2Vec2(4.0, 0.0)) {
			t.Errorf("type %d: far point inside", shape.GetType())
		}

		var out B2RayCastOutput
		seg := MakeB2Segment(MakeB2Vec2(-2.0, 0.0), MakeB2Vec2(6.0, 0.0))
		if got := shape.TestSegment(xf, &out, seg, 1.0); got != B2SegmentCollide.E_hit {
			t.Fatalf("type %d: segment result %d, want hit", shape.GetType(), got)
		}
		if out.Lambda <= 0.0 || out.Lambda >= 0.5 {
			t.Errorf("type %d: lambda = %v", shape.GetType(), out.Lambda)
		}
		if out.Normal.X >= 0.0 {
			t.Errorf("type %d: normal %v does not face the ray", shape.GetType(), out.Normal)
		}

		inside := MakeB2Segment(MakeB2Vec2(2.0, 0.0), MakeB2Vec2(6.0, 0.0))
		if got := shape.TestSegment(xf, &out, inside, 1.0); got != B2SegmentCollide.E_startsInside {
			t.Errorf("type %d: segment from inside gives %d", shape.GetType(), got)
		}
	}

	var out B2RayCastOutput
	seg := MakeB2Segment(MakeB2Vec2(-2.0, 0.0), MakeB2Vec2(6.0, 0.0))
	if got := point.TestSegment(xf, &out, seg, 1.0); got != B2SegmentCollide.E_miss {
		t.Errorf("point shape segment result %d, want miss", got)
	}
	if point.TestPoint(xf, MakeB2Vec2(2.0, 0.0)) {
		t.Errorf("point shape contains a point")
	}
}

func TestSubmergedArea(t *testing.T) {
	box := makeBox(t, 1.0, 1.0)
	circle := MakeB2CircleShape(1.0)
	xf := MakeB2Transform()
	up := MakeB2Vec2(0.0, 1.0)

	var c B2Vec2
	if area := box.ComputeSubmergedArea(up, 0.0, xf, &c); !closeTo(area, 2.0, 1e-9) {
		t.Errorf("half submerged box area = %v, want 2", area)
	} else if !closeTo(c.Y, -0.5, 1e-9) || math.Abs(c.X) > 1e-9 {
		t.Errorf("half submerged box centroid = %v, want (0, -0.5)", c)
	}

	if area := circle.ComputeSubmergedArea(up, 0.0, xf, &c); !closeTo(area, 0.5*B2_pi, 1e-9) {
		t.Errorf("half submerged circle area = %v, want pi/2", area)
	} else if !closeTo(c.Y, -4.0/(3.0*B2_pi), 1e-9) {
		t.Errorf("half submerged circle centroid = %v, want y=-4/(3pi)", c)
	}

	if area := box.ComputeSubmergedArea(up, -5.0, xf, &c); area != 0.0 {
		t.Errorf("dry box area = %v", area)
	}
	if area := box.ComputeSubmergedArea(up, 5.0, xf, &c); !closeTo(area, 4.0, 1e-9) {
		t.Errorf("wet box area = %v, want 4", area)
	}
}
