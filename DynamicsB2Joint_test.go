package box2d

import (
	"errors"
	"math"
	"testing"
)

const testHz = 60.0

func newTestWorld(t *testing.T, gravity B2Vec2) *B2World {
	t.Helper()
	aabb := MakeB2AABBFromBounds(MakeB2Vec2(-100.0, -100.0), MakeB2Vec2(100.0, 100.0))
	world, err := NewB2World(gravity, aabb, true)
	if err != nil {
		t.Fatalf("NewB2World: %v", err)
	}
	return world
}

func addBody(t *testing.T, world *B2World, position B2Vec2, shape B2ShapeInterface, density float64) *B2Body {
	t.Helper()
	bd := MakeB2BodyDef()
	bd.Position = position
	body, err := world.CreateBody(&bd)
	if err != nil {
		t.Fatalf("CreateBody: %v", err)
	}
	if shape != nil {
		if _, err := body.CreateFixtureFromShape(shape, density); err != nil {
			t.Fatalf("CreateFixture: %v", err)
		}
	}
	return body
}

func addCircleBody(t *testing.T, world *B2World, position B2Vec2, radius float64) *B2Body {
	t.Helper()
	circle := MakeB2CircleShape(radius)
	return addBody(t, world, position, &circle, 1.0)
}

func addBoxBody(t *testing.T, world *B2World, position B2Vec2, hx, hy float64) *B2Body {
	t.Helper()
	box := makeBox(t, hx, hy)
	return addBody(t, world, position, &box, 1.0)
}

func stepN(world *B2World, n int, each func(step int)) {
	for i := 0; i < n; i++ {
		world.Step(1.0/testHz, 10, 8)
		if each != nil {
			each(i)
		}
	}
}

func TestCreateJointRejectsSameBody(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	body := addCircleBody(t, world, MakeB2Vec2(0.0, 5.0), 0.5)

	jd := MakeB2RevoluteJointDef()
	jd.Initialize(body, body, MakeB2Vec2(0.0, 5.0))

	if _, err := world.CreateJoint(&jd); !errors.Is(err, ErrJointSameBody) {
		t.Fatalf("err = %v, want ErrJointSameBody", err)
	}
	if world.GetJointCount() != 0 || body.GetJointList() != nil {
		t.Errorf("rejected joint was linked")
	}
}

func TestGearJointRejectsBadInputs(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, 0.0))
	ground := world.GetGroundBody()
	a := addCircleBody(t, world, MakeB2Vec2(0.0, 0.0), 0.5)
	b := addCircleBody(t, world, MakeB2Vec2(5.0, 0.0), 0.5)

	rd := MakeB2RevoluteJointDef()
	rd.Initialize(ground, a, a.GetPosition())
	revolute, err := world.CreateJoint(&rd)
	if err != nil {
		t.Fatal(err)
	}

	dd := MakeB2DistanceJointDef()
	dd.Initialize(ground, b, MakeB2Vec2(5.0, 3.0), b.GetPosition())
	distance, err := world.CreateJoint(&dd)
	if err != nil {
		t.Fatal(err)
	}

	gd := MakeB2GearJointDef()
	gd.Joint1 = revolute
	gd.Joint2 = distance
	if _, err := world.CreateJoint(&gd); !errors.Is(err, ErrGearJointType) {
		t.Errorf("distance input: err = %v, want ErrGearJointType", err)
	}

	// The first body of each input joint must be static.
	rd2 := MakeB2RevoluteJointDef()
	rd2.Initialize(a, b, b.GetPosition())
	dynamicPivot, err := world.CreateJoint(&rd2)
	if err != nil {
		t.Fatal(err)
	}

	gd = MakeB2GearJointDef()
	gd.Joint1 = revolute
	gd.Joint2 = dynamicPivot
	if _, err := world.CreateJoint(&gd); !errors.Is(err, ErrGearJointType) {
		t.Errorf("dynamic ground: err = %v, want ErrGearJointType", err)
	}

	if world.GetJointCount() != 3 {
		t.Errorf("joint count = %d, want 3", world.GetJointCount())
	}
}

func TestGearJointHoldsRatio(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	ground := world.GetGroundBody()

	wheel1 := addCircleBody(t, world, MakeB2Vec2(-3.0, 10.0), 1.0)
	wheel2 := addCircleBody(t, world, MakeB2Vec2(3.0, 10.0), 2.0)

	rd1 := MakeB2RevoluteJointDef()
	rd1.Initialize(ground, wheel1, wheel1.GetPosition())
	j1, err := world.CreateJoint(&rd1)
	if err != nil {
		t.Fatal(err)
	}

	rd2 := MakeB2RevoluteJointDef()
	rd2.Initialize(ground, wheel2, wheel2.GetPosition())
	j2, err := world.CreateJoint(&rd2)
	if err != nil {
		t.Fatal(err)
	}

	const ratio = 2.0
	gd := MakeB2GearJointDef()
	gd.Joint1 = j1
	gd.Joint2 = j2
	gd.Ratio = ratio
	gj, err := world.CreateJoint(&gd)
	if err != nil {
		t.Fatalf("gear: %v", err)
	}
	gear := gj.(*B2GearJoint)
	if gear.GetBodyA() != wheel1 || gear.GetBodyB() != wheel2 || gear.GetRatio() != ratio {
		t.Fatalf("gear bodies or ratio not taken from the input joints")
	}

	wheel1.SetAngularVelocity(3.0)

	r1 := j1.(*B2RevoluteJoint)
	r2 := j2.(*B2RevoluteJoint)
	stepN(world, 120, func(step int) {
		c := r1.GetJointAngle() + ratio*r2.GetJointAngle()
		if math.Abs(c) > 0.02 {
			t.Fatalf("step %d: angle1 + ratio*angle2 = %v", step, c)
		}
	})

	if math.Abs(r1.GetJointAngle()) < 0.5 {
		t.Errorf("driving wheel barely turned: %v", r1.GetJointAngle())
	}
}

func TestDistanceJointKeepsLength(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	ground := world.GetGroundBody()
	bob := addCircleBody(t, world, MakeB2Vec2(3.0, 20.0), 0.25)

	anchor := MakeB2Vec2(0.0, 20.0)
	jd := MakeB2DistanceJointDef()
	jd.Initialize(ground, bob, anchor, bob.GetPosition())
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	joint := j.(*B2DistanceJoint)
	if joint.GetLength() != 3.0 {
		t.Fatalf("length = %v, want 3", joint.GetLength())
	}

	lowest := bob.GetPosition().Y
	stepN(world, 180, func(step int) {
		d := B2Vec2Distance(anchor, bob.GetPosition())
		if math.Abs(d-3.0) > 0.05 {
			t.Fatalf("step %d: length drifted to %v", step, d)
		}
		lowest = math.Min(lowest, bob.GetPosition().Y)
	})

	if lowest > 17.5 {
		t.Errorf("pendulum did not swing down, lowest y = %v", lowest)
	}
}

func TestDistanceJointPositionSolveConverges(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, 0.0))
	ground := world.GetGroundBody()
	box := addBoxBody(t, world, MakeB2Vec2(4.0, 1.0), 1.0, 0.5)

	// Anchored at a corner so the correction also turns the box.
	jd := MakeB2DistanceJointDef()
	jd.Initialize(ground, box, MakeB2Vec2(0.0, 0.0), MakeB2Vec2(3.0, 1.5))
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	joint := j.(*B2DistanceJoint)
	joint.SetLength(2.5)

	lengthError := func() float64 {
		return math.Abs(B2Vec2Distance(joint.GetAnchorA(), joint.GetAnchorB()) - 2.5)
	}

	joint.InitVelocityConstraints(MakeB2TimeStepFromDt(1.0/testHz, 10, 8, 0.0, false))

	last := lengthError()
	solved := false
	for i := 0; i < 20 && !solved; i++ {
		solved = joint.SolvePositionConstraints(B2_contactBaumgarte)
		e := lengthError()
		if e > last+1e-9 {
			t.Fatalf("iteration %d: length error grew from %v to %v", i, last, e)
		}
		last = e
	}

	if !solved {
		t.Errorf("position solve did not converge, error %v", last)
	}
	if last > B2_linearSlop {
		t.Errorf("length error %v above linear slop", last)
	}
}

func TestSoftDistanceJointConverges(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, 0.0))
	ground := world.GetGroundBody()
	body := addCircleBody(t, world, MakeB2Vec2(4.0, 0.0), 0.25)

	jd := MakeB2DistanceJointDef()
	jd.Initialize(ground, body, MakeB2Vec2(0.0, 0.0), body.GetPosition())
	jd.Length = 2.0
	jd.FrequencyHz = 1.0
	jd.DampingRatio = 1.0
	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatal(err)
	}

	initial := math.Abs(body.GetPosition().Length() - 2.0)
	stepN(world, 240, nil)
	final := math.Abs(body.GetPosition().Length() - 2.0)

	if final > 0.1*initial {
		t.Errorf("error went from %v to %v", initial, final)
	}
}

func TestRevoluteJointLimits(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	ground := world.GetGroundBody()

	// A horizontal arm hinged at its left end.
	arm := addBoxBody(t, world, MakeB2Vec2(2.0, 10.0), 2.0, 0.125)

	jd := MakeB2RevoluteJointDef()
	jd.Initialize(ground, arm, MakeB2Vec2(0.0, 10.0))
	jd.EnableLimit = true
	jd.LowerAngle = -0.25 * B2_pi
	jd.UpperAngle = 0.25 * B2_pi
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	joint := j.(*B2RevoluteJoint)

	stepN(world, 180, func(step int) {
		if a := joint.GetJointAngle(); a < jd.LowerAngle-0.05 {
			t.Fatalf("step %d: angle %v passed the lower limit", step, a)
		}
	})

	if a := joint.GetJointAngle(); math.Abs(a-jd.LowerAngle) > 0.05 {
		t.Errorf("arm rests at %v, want the lower limit %v", a, jd.LowerAngle)
	}
	if joint.GetLimitState() != B2LimitState.E_atLowerLimit {
		t.Errorf("limit state = %d, want at lower limit", joint.GetLimitState())
	}

	// The hinge point stays put.
	if d := B2Vec2Distance(joint.GetAnchorA(), joint.GetAnchorB()); d > 0.02 {
		t.Errorf("anchors separated by %v", d)
	}
}

func TestRevoluteJointMotor(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, 0.0))
	ground := world.GetGroundBody()
	wheel := addCircleBody(t, world, MakeB2Vec2(0.0, 0.0), 1.0)

	jd := MakeB2RevoluteJointDef()
	jd.Initialize(ground, wheel, wheel.GetPosition())
	jd.EnableMotor = true
	jd.MotorSpeed = 2.0
	jd.MaxMotorTorque = 1000.0
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	joint := j.(*B2RevoluteJoint)

	stepN(world, 30, nil)
	if s := joint.GetJointSpeed(); math.Abs(s-2.0) > 1e-3 {
		t.Errorf("joint speed = %v, want 2", s)
	}
}

func TestPrismaticJointLimits(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	ground := world.GetGroundBody()
	slider := addBoxBody(t, world, MakeB2Vec2(0.0, 10.0), 0.5, 0.5)

	jd := MakeB2PrismaticJointDef()
	jd.Initialize(ground, slider, slider.GetPosition(), MakeB2Vec2(0.0, 1.0))
	jd.EnableLimit = true
	jd.LowerTranslation = -2.0
	jd.UpperTranslation = 2.0
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	joint := j.(*B2PrismaticJoint)

	stepN(world, 120, func(step int) {
		if x := slider.GetPosition().X; math.Abs(x) > 0.01 {
			t.Fatalf("step %d: slider left its axis, x = %v", step, x)
		}
		if tr := joint.GetJointTranslation(); tr < -2.05 {
			t.Fatalf("step %d: translation %v passed the lower limit", step, tr)
		}
	})

	if tr := joint.GetJointTranslation(); math.Abs(tr+2.0) > 0.05 {
		t.Errorf("translation = %v, want -2", tr)
	}
	if math.Abs(slider.GetAngle()) > 0.01 {
		t.Errorf("slider rotated to %v", slider.GetAngle())
	}
}

func TestLineJointKeepsAxis(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	ground := world.GetGroundBody()
	body := addBoxBody(t, world, MakeB2Vec2(0.0, 10.0), 0.5, 0.5)
	body.SetLinearVelocity(MakeB2Vec2(2.0, 0.0))

	jd := MakeB2LineJointDef()
	jd.Initialize(ground, body, body.GetPosition(), MakeB2Vec2(1.0, 0.0))
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	joint := j.(*B2LineJoint)

	stepN(world, 60, nil)

	if y := body.GetPosition().Y; math.Abs(y-10.0) > 0.02 {
		t.Errorf("body fell off the line, y = %v", y)
	}
	if tr := joint.GetJointTranslation(); math.Abs(tr-2.0) > 0.1 {
		t.Errorf("translation = %v, want about 2", tr)
	}
}

func TestWeldJointHolds(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	ground := world.GetGroundBody()
	body := addBoxBody(t, world, MakeB2Vec2(1.0, 10.0), 1.0, 0.25)

	jd := MakeB2WeldJointDef()
	jd.Initialize(ground, body, MakeB2Vec2(0.0, 10.0))
	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatal(err)
	}

	stepN(world, 120, nil)

	if d := B2Vec2Distance(body.GetPosition(), MakeB2Vec2(1.0, 10.0)); d > 0.05 {
		t.Errorf("welded body moved by %v", d)
	}
	if a := body.GetAngle(); math.Abs(a) > 0.05 {
		t.Errorf("welded body rotated to %v", a)
	}
}

func TestMouseJointTracksTarget(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	body := addCircleBody(t, world, MakeB2Vec2(0.0, 10.0), 0.5)

	jd := MakeB2MouseJointDef()
	jd.BodyA = world.GetGroundBody()
	jd.BodyB = body
	jd.Target = body.GetPosition()
	jd.MaxForce = 1000.0 * body.GetMass()
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	joint := j.(*B2MouseJoint)

	target := MakeB2Vec2(3.0, 12.0)
	joint.SetTarget(target)
	stepN(world, 180, nil)

	if d := B2Vec2Distance(body.GetPosition(), target); d > 0.1 {
		t.Errorf("body is %v from the target", d)
	}
}

func TestPulleyJointConservesRope(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))

	light := addBoxBody(t, world, MakeB2Vec2(-5.0, 10.0), 0.5, 0.5)
	heavyBox := makeBox(t, 0.5, 0.5)
	heavy := addBody(t, world, MakeB2Vec2(5.0, 10.0), &heavyBox, 3.0)

	groundA := MakeB2Vec2(-5.0, 20.0)
	groundB := MakeB2Vec2(5.0, 20.0)

	jd := MakeB2PulleyJointDef()
	jd.Initialize(light, heavy, groundA, groundB, light.GetPosition(), heavy.GetPosition(), 1.0)
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	joint := j.(*B2PulleyJoint)

	total := joint.GetLength1() + joint.GetLength2()
	stepN(world, 60, func(step int) {
		if got := joint.GetLength1() + joint.GetLength2(); math.Abs(got-total) > 0.05 {
			t.Fatalf("step %d: rope length %v, want %v", step, got, total)
		}
	})

	if heavy.GetPosition().Y >= 10.0 || light.GetPosition().Y <= 10.0 {
		t.Errorf("heavy side did not go down: light y=%v heavy y=%v", light.GetPosition().Y, heavy.GetPosition().Y)
	}
}

func TestFrictionJointSlowsBody(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, 0.0))
	body := addCircleBody(t, world, MakeB2Vec2(0.0, 0.0), 0.5)
	body.SetLinearVelocity(MakeB2Vec2(4.0, 0.0))
	body.SetAngularVelocity(2.0)

	jd := MakeB2FrictionJointDef()
	jd.Initialize(world.GetGroundBody(), body, body.GetWorldCenter())
	jd.MaxForce = 2.0 * body.GetMass()
	jd.MaxTorque = 2.0 * body.GetInertia()
	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatal(err)
	}

	stepN(world, 30, nil)

	// Half a second at a deceleration of 2.
	if v := body.GetLinearVelocity().X; math.Abs(v-3.0) > 0.05 {
		t.Errorf("velocity = %v, want about 3", v)
	}
	if w := body.GetAngularVelocity(); math.Abs(w-1.0) > 0.05 {
		t.Errorf("angular velocity = %v, want about 1", w)
	}

	stepN(world, 120, nil)
	if v := body.GetLinearVelocity().Length(); v > 1e-6 {
		t.Errorf("body still moving at %v", v)
	}
}

func TestDestroyJointUnlinks(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	a := addCircleBody(t, world, MakeB2Vec2(0.0, 10.0), 0.5)
	b := addCircleBody(t, world, MakeB2Vec2(0.5, 10.0), 0.5)

	jd := MakeB2DistanceJointDef()
	jd.Initialize(a, b, a.GetPosition(), b.GetPosition())
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}

	// The overlapping bodies are connected, so they do not collide.
	stepN(world, 1, nil)
	if world.GetContactCount() != 0 {
		t.Fatalf("connected bodies produced %d contacts", world.GetContactCount())
	}

	if err := world.DestroyJoint(j); err != nil {
		t.Fatal(err)
	}
	if world.GetJointCount() != 0 || world.GetJointList() != nil {
		t.Errorf("joint still listed by the world")
	}
	if a.GetJointList() != nil || b.GetJointList() != nil {
		t.Errorf("joint still listed by a body")
	}

	stepN(world, 1, nil)
	if world.GetContactCount() != 1 {
		t.Errorf("contact count after destroying the joint = %d, want 1", world.GetContactCount())
	}
}
