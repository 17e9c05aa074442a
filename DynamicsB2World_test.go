package box2d

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"
)

type contactCounter struct {
	adds, persists, removes, results int
	maxNormalImpulse                 float64
}

func (c *contactCounter) Add(point *B2ContactPoint)     { c.adds++ }
func (c *contactCounter) Persist(point *B2ContactPoint) { c.persists++ }
func (c *contactCounter) Remove(point *B2ContactPoint)  { c.removes++ }
func (c *contactCounter) Result(result *B2ContactResult) {
	c.results++
	c.maxNormalImpulse = math.Max(c.maxNormalImpulse, result.NormalImpulse)
}

func addGround(t *testing.T, world *B2World, hx, hy float64, center B2Vec2) *B2Fixture {
	t.Helper()
	box := MakeB2PolygonShape()
	if err := box.SetAsOrientedBox(hx, hy, center, 0.0); err != nil {
		t.Fatal(err)
	}
	fixture, err := world.GetGroundBody().CreateFixtureFromShape(&box, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	return fixture
}

func TestWorldContactLifecycle(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	addGround(t, world, 10.0, 0.5, MakeB2Vec2(0.0, -0.5))

	listener := &contactCounter{}
	world.SetContactListener(listener)

	ball := addCircleBody(t, world, MakeB2Vec2(0.0, 2.0), 0.5)

	stepN(world, 120, nil)

	if listener.adds == 0 || listener.persists == 0 || listener.results == 0 {
		t.Fatalf("listener saw adds=%d persists=%d results=%d", listener.adds, listener.persists, listener.results)
	}
	if listener.maxNormalImpulse <= 0.0 {
		t.Errorf("no positive normal impulse reported")
	}
	if world.GetContactCount() != 1 {
		t.Errorf("contact count = %d, want 1", world.GetContactCount())
	}

	// The ball rests on the ground.
	if y := ball.GetPosition().Y; math.Abs(y-0.5) > 0.02 {
		t.Errorf("ball rests at y=%v, want 0.5", y)
	}

	removes := listener.removes
	if err := world.DestroyBody(ball); err != nil {
		t.Fatal(err)
	}
	if listener.removes <= removes {
		t.Errorf("destroying the ball did not report removed points")
	}
	if world.GetContactCount() != 0 {
		t.Errorf("contact count = %d after destroying the ball", world.GetContactCount())
	}
}

type lockedListener struct {
	contactCounter
	world *B2World
	err   error
}

func (p *lockedListener) Add(point *B2ContactPoint) {
	bd := MakeB2BodyDef()
	_, p.err = p.world.CreateBody(&bd)
}

func TestWorldIsLockedDuringStep(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	addGround(t, world, 10.0, 0.5, MakeB2Vec2(0.0, -0.5))
	addCircleBody(t, world, MakeB2Vec2(0.0, 0.45), 0.5)

	listener := &lockedListener{world: world}
	world.SetContactListener(listener)

	bodies := world.GetBodyCount()
	stepN(world, 1, nil)

	if !errors.Is(listener.err, ErrWorldLocked) {
		t.Errorf("CreateBody in a callback: err = %v, want ErrWorldLocked", listener.err)
	}
	if world.GetBodyCount() != bodies {
		t.Errorf("body count changed during the step")
	}
	if world.IsLocked() {
		t.Errorf("world still locked after Step")
	}
}

type goodbyeRecorder struct {
	fixtures int
	joints   int
}

func (g *goodbyeRecorder) SayGoodbyeToFixture(fixture *B2Fixture)  { g.fixtures++ }
func (g *goodbyeRecorder) SayGoodbyeToJoint(joint B2JointInterface) { g.joints++ }

func TestDestroyBodyNotifiesListener(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	recorder := &goodbyeRecorder{}
	world.SetDestructionListener(recorder)

	body := addCircleBody(t, world, MakeB2Vec2(0.0, 5.0), 0.5)
	box := makeBox(t, 0.5, 0.5)
	if _, err := body.CreateFixtureFromShape(&box, 1.0); err != nil {
		t.Fatal(err)
	}
	other := addCircleBody(t, world, MakeB2Vec2(3.0, 5.0), 0.5)

	jd := MakeB2RevoluteJointDef()
	jd.Initialize(body, other, MakeB2Vec2(1.5, 5.0))
	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatal(err)
	}

	proxies := world.GetProxyCount()
	if err := world.DestroyBody(body); err != nil {
		t.Fatal(err)
	}

	if recorder.fixtures != 2 || recorder.joints != 1 {
		t.Errorf("goodbye fixtures=%d joints=%d, want 2 and 1", recorder.fixtures, recorder.joints)
	}
	if world.GetJointCount() != 0 || other.GetJointList() != nil {
		t.Errorf("joint survived its body")
	}
	if got := world.GetProxyCount(); got != proxies-2 {
		t.Errorf("proxy count = %d, want %d", got, proxies-2)
	}
	for b := world.GetBodyList(); b != nil; b = b.GetNext() {
		if b == body {
			t.Errorf("destroyed body still listed")
		}
	}
	world.Validate()
}

type boundaryRecorder struct {
	bodies []*B2Body
}

func (r *boundaryRecorder) Violation(body *B2Body) {
	r.bodies = append(r.bodies, body)
}

func TestBodyLeavingWorldIsFrozen(t *testing.T) {
	var logs bytes.Buffer
	SetB2Logger(log.New(&logs, "", 0))
	t.Cleanup(func() { SetB2Logger(nil) })

	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	recorder := &boundaryRecorder{}
	world.SetBoundaryListener(recorder)

	body := addCircleBody(t, world, MakeB2Vec2(0.0, -98.0), 0.5)
	body.SetLinearVelocity(MakeB2Vec2(0.0, -30.0))

	stepN(world, 30, nil)

	if !body.IsFrozen() {
		t.Fatalf("body at %v is not frozen", body.GetPosition())
	}
	if len(recorder.bodies) != 1 || recorder.bodies[0] != body {
		t.Errorf("boundary listener got %v", recorder.bodies)
	}
	if v := body.GetLinearVelocity(); v.Length() != 0.0 {
		t.Errorf("frozen body still moving at %v", v)
	}
	if world.GetProxyCount() != 0 {
		t.Errorf("frozen body kept %d proxies", world.GetProxyCount())
	}
	if !strings.Contains(logs.String(), "frozen") {
		t.Errorf("no log line for the frozen body, got %q", logs.String())
	}

	// A frozen body stays put.
	position := body.GetPosition()
	stepN(world, 10, nil)
	if body.GetPosition() != position {
		t.Errorf("frozen body moved from %v to %v", position, body.GetPosition())
	}
}

func TestBodiesFallAsleep(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	addGround(t, world, 10.0, 0.5, MakeB2Vec2(0.0, -0.5))
	box := addBoxBody(t, world, MakeB2Vec2(0.0, 1.0), 0.5, 0.5)

	stepN(world, 240, nil)
	if box.IsAwake() {
		t.Fatalf("resting box is still awake, v=%v", box.GetLinearVelocity())
	}

	// Sleeping bodies do not move.
	position := box.GetPosition()
	stepN(world, 10, nil)
	if box.GetPosition() != position {
		t.Errorf("sleeping box moved")
	}

	box.ApplyLinearImpulse(MakeB2Vec2(0.0, 5.0), box.GetWorldCenter(), true)
	if !box.IsAwake() {
		t.Fatalf("impulse did not wake the box")
	}
	stepN(world, 5, nil)
	if box.GetPosition().Y <= position.Y {
		t.Errorf("woken box did not jump")
	}
}

func TestSleepCanBeDisabled(t *testing.T) {
	aabb := MakeB2AABBFromBounds(MakeB2Vec2(-100.0, -100.0), MakeB2Vec2(100.0, 100.0))
	world, err := NewB2World(MakeB2Vec2(0.0, -10.0), aabb, false)
	if err != nil {
		t.Fatal(err)
	}
	addGround(t, world, 10.0, 0.5, MakeB2Vec2(0.0, -0.5))
	box := addBoxBody(t, world, MakeB2Vec2(0.0, 1.0), 0.5, 0.5)

	stepN(world, 240, nil)
	if !box.IsAwake() {
		t.Errorf("box fell asleep in a world without sleeping")
	}
}

func TestWorldQueryAndRayCast(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, 0.0))

	near := addBoxBody(t, world, MakeB2Vec2(5.0, 0.0), 0.5, 0.5)
	far := addCircleBody(t, world, MakeB2Vec2(10.0, 0.0), 0.5)
	addCircleBody(t, world, MakeB2Vec2(5.0, 10.0), 0.5)

	found := world.Query(MakeB2AABBFromBounds(MakeB2Vec2(4.0, -1.0), MakeB2Vec2(11.0, 1.0)), 10)
	if len(found) != 2 {
		t.Fatalf("query found %d fixtures, want 2", len(found))
	}

	visited := 0
	world.QueryAABB(func(fixture *B2Fixture) bool {
		visited++
		return false
	}, MakeB2AABBFromBounds(MakeB2Vec2(4.0, -1.0), MakeB2Vec2(11.0, 1.0)))
	if visited != 1 {
		t.Errorf("QueryAABB visited %d fixtures after stopping", visited)
	}

	// Closest hit: clip the ray at every hit.
	var closest *B2Fixture
	var closestPoint, closestNormal B2Vec2
	world.RayCast(func(fixture *B2Fixture, point, normal B2Vec2, fraction float64) float64 {
		closest = fixture
		closestPoint = point
		closestNormal = normal
		return fraction
	}, MakeB2Vec2(0.0, 0.0), MakeB2Vec2(20.0, 0.0))

	if closest == nil || closest.GetBody() != near {
		t.Fatalf("closest hit is not the near box")
	}
	if B2Vec2Distance(closestPoint, MakeB2Vec2(4.5, 0.0)) > 1e-9 {
		t.Errorf("hit point = %v, want (4.5, 0)", closestPoint)
	}
	if B2Vec2Distance(closestNormal, MakeB2Vec2(-1.0, 0.0)) > 1e-9 {
		t.Errorf("hit normal = %v, want (-1, 0)", closestNormal)
	}

	// Collect every hit without clipping.
	hits := make(map[*B2Body]bool)
	world.RayCast(func(fixture *B2Fixture, point, normal B2Vec2, fraction float64) float64 {
		hits[fixture.GetBody()] = true
		return 1.0
	}, MakeB2Vec2(0.0, 0.0), MakeB2Vec2(20.0, 0.0))
	if len(hits) != 2 || !hits[near] || !hits[far] {
		t.Errorf("unclipped ray hit %d bodies, want near and far", len(hits))
	}

	// Terminating stops after the first reported fixture.
	calls := 0
	world.RayCast(func(fixture *B2Fixture, point, normal B2Vec2, fraction float64) float64 {
		calls++
		return 0.0
	}, MakeB2Vec2(0.0, 0.0), MakeB2Vec2(20.0, 0.0))
	if calls != 1 {
		t.Errorf("terminated ray cast made %d calls", calls)
	}
}

func TestContinuousPhysicsStopsTunneling(t *testing.T) {
	run := func(continuous bool) float64 {
		world := newTestWorld(t, MakeB2Vec2(0.0, 0.0))
		world.SetContinuousPhysics(continuous)
		addGround(t, world, 0.1, 5.0, MakeB2Vec2(10.0, 0.0))

		bullet := addCircleBody(t, world, MakeB2Vec2(0.5, 0.0), 0.25)
		bullet.SetLinearVelocity(MakeB2Vec2(180.0, 0.0))

		stepN(world, 10, nil)
		return bullet.GetPosition().X
	}

	if x := run(true); x >= 10.0 {
		t.Errorf("with continuous physics the bullet reached x=%v", x)
	}
	if x := run(false); x <= 10.0 {
		t.Errorf("without continuous physics the bullet stopped at x=%v", x)
	}
}

func TestClearForces(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, 0.0))
	world.SetAutoClearForces(false)
	body := addCircleBody(t, world, MakeB2Vec2(0.0, 0.0), 0.5)

	body.ApplyForceToCenter(MakeB2Vec2(body.GetMass(), 0.0), true)
	stepN(world, 60, nil)

	// The force stays applied for the whole second.
	if v := body.GetLinearVelocity().X; math.Abs(v-1.0) > 1e-9 {
		t.Errorf("velocity = %v, want 1", v)
	}

	world.ClearForces()
	stepN(world, 60, nil)
	if v := body.GetLinearVelocity().X; math.Abs(v-1.0) > 1e-9 {
		t.Errorf("velocity after clearing = %v, want 1", v)
	}
}

func TestWorldStepIsDeterministic(t *testing.T) {
	build := func() (*B2World, []*B2Body) {
		world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
		addGround(t, world, 20.0, 0.5, MakeB2Vec2(0.0, -0.5))
		var bodies []*B2Body
		for i := 0; i < 10; i++ {
			x := float64(i%3) * 0.3
			bodies = append(bodies, addBoxBody(t, world, MakeB2Vec2(x, 0.6+1.1*float64(i)), 0.5, 0.5))
		}
		return world, bodies
	}

	w1, b1 := build()
	w2, b2 := build()
	stepN(w1, 90, nil)
	stepN(w2, 90, nil)

	for i := range b1 {
		if b1[i].GetPosition() != b2[i].GetPosition() || b1[i].GetAngle() != b2[i].GetAngle() {
			t.Fatalf("body %d diverged: %v vs %v", i, b1[i].GetPosition(), b2[i].GetPosition())
		}
	}
}
