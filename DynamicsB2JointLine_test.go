package box2d

import (
	"math"
	"testing"
)

func newLimitedLineJoint(t *testing.T, world *B2World, body *B2Body) *B2LineJoint {
	t.Helper()
	jd := MakeB2LineJointDef()
	jd.Initialize(world.GetGroundBody(), body, body.GetPosition(), MakeB2Vec2(0.0, 1.0))
	jd.EnableLimit = true
	jd.LowerTranslation = -1.0
	jd.UpperTranslation = 1.0
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatal(err)
	}
	return j.(*B2LineJoint)
}

func TestLineJointRestsOnLimit(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	body := addBoxBody(t, world, MakeB2Vec2(0.0, 10.0), 0.5, 0.5)
	joint := newLimitedLineJoint(t, world, body)

	stepN(world, 120, nil)

	if tr := joint.GetJointTranslation(); math.Abs(tr+1.0) > 0.02 {
		t.Errorf("translation = %v, want -1", tr)
	}
	if joint.GetLimitState() != B2LimitState.E_atLowerLimit {
		t.Errorf("limit state = %d, want lower", joint.GetLimitState())
	}
	if joint.M_impulse.Y <= 0.0 {
		t.Errorf("limit impulse = %v, want positive", joint.M_impulse.Y)
	}
}

func TestLineJointDisabledLimitLeavesBodyAtRest(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	body := addBoxBody(t, world, MakeB2Vec2(0.0, 10.0), 0.5, 0.5)
	joint := newLimitedLineJoint(t, world, body)

	stepN(world, 120, nil)

	world.SetGravity(MakeB2Vec2(0.0, 0.0))
	joint.EnableLimit(false)
	if joint.M_impulse.Y != 0.0 {
		t.Fatalf("limit impulse %v kept after disabling the limit", joint.M_impulse.Y)
	}
	body.SetLinearVelocity(MakeB2Vec2(0.0, 0.0))
	body.SetAngularVelocity(0.0)

	rest := body.GetPosition()
	stepN(world, 60, nil)

	if d := B2Vec2Distance(rest, body.GetPosition()); d > 0.01 {
		t.Errorf("resting body drifted by %v after disabling the limit", d)
	}
	if body.IsFrozen() {
		t.Errorf("resting body left the world")
	}
}

func TestLineJointLeavingLimitClearsImpulse(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	body := addBoxBody(t, world, MakeB2Vec2(0.0, 10.0), 0.5, 0.5)
	joint := newLimitedLineJoint(t, world, body)

	stepN(world, 120, nil)

	world.SetGravity(MakeB2Vec2(0.0, 0.0))
	body.SetLinearVelocity(MakeB2Vec2(0.0, 1.0))
	stepN(world, 30, nil)

	if joint.GetLimitState() != B2LimitState.E_inactiveLimit {
		t.Fatalf("limit state = %d, want inactive at translation %v", joint.GetLimitState(), joint.GetJointTranslation())
	}
	if joint.M_impulse.Y != 0.0 {
		t.Errorf("limit impulse = %v between the limits", joint.M_impulse.Y)
	}
	if v := body.GetLinearVelocity().Y; math.Abs(v-1.0) > 1e-3 {
		t.Errorf("free body velocity = %v, want 1", v)
	}
}
