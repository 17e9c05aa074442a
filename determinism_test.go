package box2d_test

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/ByteArena/box2d-classic"
	"github.com/pmezard/go-difflib/difflib"
)

// Build the character scene and return its trajectory log over 60 steps.
func simulateCharacters(t *testing.T) string {
	t.Helper()

	worldAABB := box2d.MakeB2AABBFromBounds(box2d.MakeB2Vec2(-50.0, -20.0), box2d.MakeB2Vec2(50.0, 50.0))
	world, err := box2d.NewB2World(box2d.MakeB2Vec2(0.0, -10.0), worldAABB, true)
	if err != nil {
		t.Fatalf("NewB2World: %v", err)
	}

	characters := make(map[string]*box2d.B2Body)

	must := func(_ interface{}, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	// Ground body
	{
		shape := box2d.MakeB2PolygonShape()
		must(nil, shape.SetAsOrientedBox(20.0, 0.5, box2d.MakeB2Vec2(0.0, -0.5), 0.0))
		must(world.GetGroundBody().CreateFixtureFromShape(&shape, 0.0))
		characters["00_ground"] = world.GetGroundBody()
	}

	// Square tiles. Boxes sliding across them hit the internal vertices.
	{
		bd := box2d.MakeB2BodyDef()
		ground, err := world.CreateBody(&bd)
		must(nil, err)

		shape := box2d.MakeB2PolygonShape()
		for _, x := range []float64{4.0, 6.0, 8.0} {
			must(nil, shape.SetAsOrientedBox(1.0, 1.0, box2d.MakeB2Vec2(x, 3.0), 0.0))
			must(ground.CreateFixtureFromShape(&shape, 0.0))
		}
		characters["01_squaretiles"] = ground
	}

	// Tilted ramp
	{
		bd := box2d.MakeB2BodyDef()
		bd.Position.Set(-10.0, 4.0)
		bd.Angle = 0.25 * box2d.B2_pi
		ramp, err := world.CreateBody(&bd)
		must(nil, err)

		shape := box2d.MakeB2PolygonShape()
		must(nil, shape.SetAsBox(3.0, 0.25))
		must(ramp.CreateFixtureFromShape(&shape, 0.0))
		characters["02_ramp"] = ramp
	}

	square := func(name string, x, y, h float64) {
		bd := box2d.MakeB2BodyDef()
		bd.Position.Set(x, y)
		bd.FixedRotation = true
		bd.AllowSleep = false

		body, err := world.CreateBody(&bd)
		must(nil, err)

		shape := box2d.MakeB2PolygonShape()
		must(nil, shape.SetAsBox(h, h))

		fd := box2d.MakeB2FixtureDef()
		fd.Shape = &shape
		fd.Density = 20.0
		must(body.CreateFixture(&fd))
		characters[name] = body
	}

	square("03_squarecharacter1", -3.0, 8.0, 0.5)
	square("04_squarecharacter2", -5.0, 5.0, 0.25)

	// Hexagon character
	{
		bd := box2d.MakeB2BodyDef()
		bd.Position.Set(-5.0, 8.0)
		bd.AllowSleep = false

		body, err := world.CreateBody(&bd)
		must(nil, err)

		angle := 0.0
		delta := box2d.B2_pi / 3.0
		vertices := make([]box2d.B2Vec2, 6)
		for i := 0; i < 6; i++ {
			vertices[i].Set(0.5*math.Cos(angle), 0.5*math.Sin(angle))
			angle += delta
		}

		shape := box2d.MakeB2PolygonShape()
		must(nil, shape.Set(vertices))

		fd := box2d.MakeB2FixtureDef()
		fd.Shape = &shape
		fd.Density = 20.0
		must(body.CreateFixture(&fd))
		characters["05_hexagoncharacter"] = body
	}

	circle := func(name string, x, y, radius, friction float64, fixedRotation bool) {
		bd := box2d.MakeB2BodyDef()
		bd.Position.Set(x, y)
		bd.FixedRotation = fixedRotation
		bd.AllowSleep = false

		body, err := world.CreateBody(&bd)
		must(nil, err)

		shape := box2d.MakeB2CircleShape(radius)

		fd := box2d.MakeB2FixtureDef()
		fd.Shape = &shape
		fd.Density = 20.0
		fd.Friction = friction
		must(body.CreateFixture(&fd))
		characters[name] = body
	}

	circle("06_circlecharacter1", 3.0, 5.0, 0.5, 0.2, true)
	circle("07_circlecharacter2", -7.0, 6.0, 0.25, 1.0, false)

	// A point mass carried by a box.
	{
		bd := box2d.MakeB2BodyDef()
		bd.Position.Set(7.0, 8.0)

		body, err := world.CreateBody(&bd)
		must(nil, err)

		shape := box2d.MakeB2PolygonShape()
		must(nil, shape.SetAsBox(0.5, 0.25))
		must(body.CreateFixtureFromShape(&shape, 5.0))

		point := box2d.MakeB2PointShape(box2d.MakeB2Vec2(0.4, 0.0), 2.0)
		must(body.CreateFixtureFromShape(&point, 0.0))
		characters["08_pointmass"] = body
	}

	timeStep := 1.0 / 60.0
	velocityIterations := 8
	positionIterations := 3

	characterNames := make([]string, 0, len(characters))
	for k := range characters {
		characterNames = append(characterNames, k)
	}
	sort.Strings(characterNames)

	var output strings.Builder
	for i := 0; i < 60; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)

		for _, name := range characterNames {
			character := characters[name]
			position := character.GetPosition()
			angle := character.GetAngle()
			fmt.Fprintf(&output, "%v(%s): %4.3f %4.3f %4.3f\n", i, name, position.X, position.Y, angle)
		}
	}

	world.Validate()

	return output.String()
}

func TestTrajectoryIsDeterministic(t *testing.T) {
	expected := simulateCharacters(t)
	current := simulateCharacters(t)

	if current != expected {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(expected),
			B:        difflib.SplitLines(current),
			FromFile: "First run",
			ToFile:   "Second run",
			Context:  0,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		t.Fatalf("two runs of the same scene diverged:\n%s", text)
	}
}

func TestCharactersComeToRest(t *testing.T) {
	out := simulateCharacters(t)

	// No body ends the run below the ground.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for _, line := range lines[len(lines)-9:] {
		var step int
		var name string
		var x, y, a float64
		fields := strings.Fields(line)
		if len(fields) != 4 {
			t.Fatalf("malformed line %q", line)
		}
		if _, err := fmt.Sscanf(fields[0], "%d(%s", &step, &name); err != nil {
			t.Fatalf("malformed line %q: %v", line, err)
		}
		if _, err := fmt.Sscanf(strings.Join(fields[1:], " "), "%f %f %f", &x, &y, &a); err != nil {
			t.Fatalf("malformed line %q: %v", line, err)
		}

		if y < -1.0 {
			t.Errorf("%s fell through the ground: y = %v", line, y)
		}
	}
}
