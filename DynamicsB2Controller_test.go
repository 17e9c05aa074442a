package box2d

import (
	"math"
	"testing"
)

func addWater(t *testing.T, world *B2World, density, linearDrag float64) *B2BuoyancyController {
	t.Helper()
	def := MakeB2BuoyancyControllerDef()
	def.Density = density
	def.LinearDrag = linearDrag
	def.AngularDrag = 1.0
	water := NewB2BuoyancyController(def)
	if err := world.AddController(water); err != nil {
		t.Fatal(err)
	}
	return water
}

func addRaft(t *testing.T, world *B2World, position B2Vec2, density float64) *B2Body {
	t.Helper()
	raft := makeBox(t, 1.0, 0.25)
	return addBody(t, world, position, &raft, density)
}

func TestBuoyancyFloatsBodyAtEquilibrium(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	water := addWater(t, world, 2.0, 5.0)

	raft := addRaft(t, world, MakeB2Vec2(0.0, 1.0), 1.0)
	water.AddBody(raft)

	stepN(world, 600, nil)

	// Half as dense as the fluid: half of the raft is under the surface.
	if y := raft.GetPosition().Y; math.Abs(y) > 0.02 {
		t.Errorf("raft settled at y=%v, want 0", y)
	}
	if v := raft.GetLinearVelocity().Length(); v > 0.05 {
		t.Errorf("raft still moving at %v", v)
	}

	var c B2Vec2
	shape := raft.GetFixtureList().GetShape()
	area := shape.ComputeSubmergedArea(MakeB2Vec2(0.0, 1.0), 0.0, raft.GetTransform(), &c)
	if math.Abs(area-0.5) > 0.02 {
		t.Errorf("submerged area = %v, want 0.5", area)
	}
}

func TestBuoyancyLetsDenseBodySink(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	water := addWater(t, world, 2.0, 1.0)

	rock := addRaft(t, world, MakeB2Vec2(0.0, 0.0), 3.0)
	water.AddBody(rock)

	stepN(world, 120, nil)

	if y := rock.GetPosition().Y; y > -1.0 {
		t.Errorf("dense body is at y=%v, want it sinking", y)
	}
}

func TestControllerBodyBookkeeping(t *testing.T) {
	world := newTestWorld(t, MakeB2Vec2(0.0, -10.0))
	water := addWater(t, world, 2.0, 1.0)
	if water.GetWorld() != world {
		t.Fatal("controller is not attached to the world")
	}

	a := addRaft(t, world, MakeB2Vec2(-3.0, 0.0), 1.0)
	b := addRaft(t, world, MakeB2Vec2(3.0, 0.0), 1.0)
	water.AddBody(a)
	water.AddBody(b)
	water.AddBody(a)
	if n := water.GetBodyCount(); n != 2 {
		t.Fatalf("body count = %d, want 2", n)
	}

	if err := world.DestroyBody(a); err != nil {
		t.Fatal(err)
	}
	if n := water.GetBodyCount(); n != 1 || water.GetBodyList()[0] != b {
		t.Errorf("destroyed body still attached: %v", water.GetBodyList())
	}

	if err := world.RemoveController(water); err != nil {
		t.Fatal(err)
	}
	if water.GetWorld() != nil || water.GetBodyCount() != 0 || len(world.GetControllerList()) != 0 {
		t.Error("removed controller kept its world or bodies")
	}

	// A detached controller no longer holds the raft up.
	stepN(world, 60, nil)
	if y := b.GetPosition().Y; y > -1.0 {
		t.Errorf("raft without water is at y=%v", y)
	}
}
