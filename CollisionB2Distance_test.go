package box2d

import (
	"math"
	"math/rand"
	"testing"
)

func TestDistanceBetweenSeparatedShapes(t *testing.T) {
	box := makeBox(t, 0.5, 0.5)
	big := MakeB2CircleShape(1.0)
	small := MakeB2CircleShape(0.5)
	point := MakeB2PointShape(MakeB2Vec2(0.0, 0.0), 1.0)

	// Distances are measured between the core shapes, which are inset by
	// B2_toiSlop.
	cases := []struct {
		name   string
		s1, s2 B2ShapeInterface
		x      float64
		want   float64
	}{
		{"box-box", &box, &box, 1.5, 0.5 + 2.0*B2_toiSlop},
		{"circle-circle", &big, &small, 3.0, 1.5 + 2.0*B2_toiSlop},
		{"box-circle", &box, &small, 2.0, 1.0 + 2.0*B2_toiSlop},
		{"circle-box", &small, &box, 2.0, 1.0 + 2.0*B2_toiSlop},
		{"point-box", &point, &box, 2.0, 1.5 + B2_toiSlop},
		{"point-circle", &point, &big, 3.0, 2.0 + B2_toiSlop},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var x1, x2 B2Vec2
			xf1 := MakeB2Transform()
			xf2 := MakeB2TransformByPositionAndAngle(MakeB2Vec2(tc.x, 0.0), 0.0)

			d := B2Distance(&x1, &x2, tc.s1, xf1, tc.s2, xf2)
			if math.Abs(d-tc.want) > 0.01*tc.want {
				t.Fatalf("distance = %v, want %v", d, tc.want)
			}

			if got := B2Vec2Distance(x1, x2); math.Abs(got-d) > 0.01*tc.want {
				t.Errorf("witness points are %v apart, distance is %v", got, d)
			}
		})
	}
}

func TestDistanceIsZeroForOverlappingCores(t *testing.T) {
	box := makeBox(t, 0.5, 0.5)
	circle := MakeB2CircleShape(0.5)

	var x1, x2 B2Vec2
	xf1 := MakeB2Transform()
	xf2 := MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.3, 0.2), 0.4)

	if d := B2Distance(&x1, &x2, &box, xf1, &box, xf2); d != 0.0 {
		t.Errorf("overlapping boxes: distance = %v", d)
	}
	if d := B2Distance(&x1, &x2, &box, xf1, &circle, xf2); d != 0.0 {
		t.Errorf("overlapping box and circle: distance = %v", d)
	}
	if d := B2Distance(&x1, &x2, &circle, xf1, &circle, xf2); d != 0.0 {
		t.Errorf("overlapping circles: distance = %v", d)
	}
}

// GJK and the contact manifold must agree: touching cores always produce
// contact points, and shapes far enough apart never do.
func TestDistanceAgreesWithManifold(t *testing.T) {
	a := makeBox(t, 1.0, 0.5)
	b := makeBox(t, 0.5, 0.5)

	rng := rand.New(rand.NewSource(5))
	B2_gjkMaxIters = 0

	for i := 0; i < 500; i++ {
		xfA := MakeB2TransformByPositionAndAngle(MakeB2Vec2(0.0, 0.0), rng.Float64()*2.0*B2_pi)
		xfB := MakeB2TransformByPositionAndAngle(
			MakeB2Vec2(rng.Float64()*6.0-3.0, rng.Float64()*6.0-3.0),
			rng.Float64()*2.0*B2_pi,
		)

		var x1, x2 B2Vec2
		d := B2Distance(&x1, &x2, &a, xfA, &b, xfB)

		var m B2Manifold
		B2CollidePolygons(&m, &a, xfA, &b, xfB)

		if d == 0.0 && m.PointCount == 0 {
			t.Fatalf("round %d: cores overlap but the manifold is empty", i)
		}
		if d > 0.2 && m.PointCount > 0 {
			t.Fatalf("round %d: distance %v but %d contact points", i, d, m.PointCount)
		}
	}

	if B2_gjkMaxIters > b2_gjkMaxIterations {
		t.Errorf("GJK ran %d iterations, cap is %d", B2_gjkMaxIters, b2_gjkMaxIterations)
	}
}

func linearSweep(from, to B2Vec2) B2Sweep {
	return B2Sweep{C0: from, C: to}
}

func TestTimeOfImpactBoxes(t *testing.T) {
	box := makeBox(t, 0.5, 0.5)

	moving := linearSweep(MakeB2Vec2(-5.0, 0.0), MakeB2Vec2(5.0, 0.0))
	still := linearSweep(MakeB2Vec2(0.0, 0.0), MakeB2Vec2(0.0, 0.0))

	toi := B2TimeOfImpact(&box, moving, &box, still)
	if toi <= 0.0 || toi >= 1.0 {
		t.Fatalf("toi = %v, want a hit inside (0, 1)", toi)
	}
	if B2_toiIters > b2_toiMaxIterations {
		t.Errorf("TOI ran %d iterations", B2_toiIters)
	}

	// At the time of impact the cores are separated by a small margin.
	var xf1, xf2 B2Transform
	moving.GetTransform(&xf1, toi)
	still.GetTransform(&xf2, toi)

	var x1, x2 B2Vec2
	d := B2Distance(&x1, &x2, &box, xf1, &box, xf2)
	if d <= 0.0 || d > 2.0*B2_toiSlop {
		t.Errorf("distance at toi = %v, want in (0, %v]", d, 2.0*B2_toiSlop)
	}

	// The real shapes do not overlap at the time of impact.
	var m B2Manifold
	B2CollidePolygons(&m, &box, xf1, &box, xf2)
	for k := 0; k < m.PointCount; k++ {
		if m.Points[k].Separation < -2.0*B2_toiSlop {
			t.Errorf("penetration %v at toi", m.Points[k].Separation)
		}
	}
}

func TestTimeOfImpactIsMonotone(t *testing.T) {
	box := makeBox(t, 0.5, 0.5)
	circle := MakeB2CircleShape(0.5)
	moving := linearSweep(MakeB2Vec2(-5.0, 0.0), MakeB2Vec2(5.0, 0.0))

	last := 0.0
	for _, x := range []float64{-2.0, -1.0, 0.0, 1.0, 2.0, 3.0} {
		obstacle := linearSweep(MakeB2Vec2(x, 0.0), MakeB2Vec2(x, 0.0))
		toi := B2TimeOfImpact(&circle, moving, &box, obstacle)
		if toi < 0.0 || toi > 1.0 {
			t.Fatalf("obstacle at %v: toi = %v out of range", x, toi)
		}
		if toi <= last {
			t.Fatalf("obstacle at %v: toi = %v, previous %v", x, toi, last)
		}
		last = toi
	}
}

// A faster circle reaches the same wall earlier in its sweep.
func TestTimeOfImpactShrinksWithSpeed(t *testing.T) {
	ball := MakeB2CircleShape(1.0)
	wall := MakeB2PolygonShape()
	if err := wall.SetAsOrientedBox(0.1, 5.0, MakeB2Vec2(10.0, 0.0), 0.0); err != nil {
		t.Fatal(err)
	}
	still := linearSweep(MakeB2Vec2(0.0, 0.0), MakeB2Vec2(0.0, 0.0))

	// The ball's center touches the wall at x = 10 - 0.1 - 1.
	const contactX = 8.9

	last := 1.0
	for _, speed := range []float64{12.0, 15.0, 20.0, 40.0, 80.0, 160.0} {
		moving := linearSweep(MakeB2Vec2(0.0, 0.0), MakeB2Vec2(speed, 0.0))
		toi := B2TimeOfImpact(&ball, moving, &wall, still)

		if toi <= 0.0 || toi >= 1.0 {
			t.Fatalf("speed %v: toi = %v, want a hit inside (0, 1)", speed, toi)
		}
		if toi >= last {
			t.Fatalf("speed %v: toi = %v, not below %v at the previous speed", speed, toi, last)
		}
		if x := toi * speed; math.Abs(x-contactX) > 0.1 {
			t.Errorf("speed %v: stopped at x=%v, want about %v", speed, x, contactX)
		}
		last = toi
	}
}

func TestTimeOfImpactMissAndStartTouching(t *testing.T) {
	box := makeBox(t, 0.5, 0.5)

	// Passes above the obstacle.
	moving := linearSweep(MakeB2Vec2(-5.0, 3.0), MakeB2Vec2(5.0, 3.0))
	still := linearSweep(MakeB2Vec2(0.0, 0.0), MakeB2Vec2(0.0, 0.0))
	if toi := B2TimeOfImpact(&box, moving, &box, still); toi != 1.0 {
		t.Errorf("missing sweep: toi = %v, want 1", toi)
	}

	// Moving away from each other.
	moving = linearSweep(MakeB2Vec2(-2.0, 0.0), MakeB2Vec2(-7.0, 0.0))
	if toi := B2TimeOfImpact(&box, moving, &box, still); toi != 1.0 {
		t.Errorf("separating sweep: toi = %v, want 1", toi)
	}

	// Already overlapping.
	moving = linearSweep(MakeB2Vec2(0.2, 0.0), MakeB2Vec2(5.0, 0.0))
	if toi := B2TimeOfImpact(&box, moving, &box, still); toi != 0.0 {
		t.Errorf("overlapping sweep: toi = %v, want 0", toi)
	}
}
