package main

import (
	"fmt"
	"os"

	"github.com/ByteArena/box2d-classic"
	"gopkg.in/yaml.v3"
)

type BenchFile struct {
	World     box2d.B2Config `yaml:"world"`
	Steps     int            `yaml:"steps"`
	Scenarios []ScenarioSpec `yaml:"scenarios"`
}

type ScenarioSpec struct {
	Kind    string  `yaml:"kind"`
	Count   int     `yaml:"count"`
	Size    float64 `yaml:"size"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Density float64 `yaml:"density"`
}

func LoadBench(filename string) (BenchFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return BenchFile{}, fmt.Errorf("b2bench: load %s: %w", filename, err)
	}

	return ParseBench(data)
}

func ParseBench(data []byte) (BenchFile, error) {
	bench := BenchFile{
		World: box2d.DefaultB2Config(),
		Steps: 600,
	}

	if err := yaml.Unmarshal(data, &bench); err != nil {
		return BenchFile{}, fmt.Errorf("b2bench: unmarshal: %w", err)
	}

	if err := bench.World.Validate(); err != nil {
		return BenchFile{}, err
	}

	if bench.Steps < 1 {
		return BenchFile{}, fmt.Errorf("b2bench: steps must be positive, got %d", bench.Steps)
	}

	for i, s := range bench.Scenarios {
		if _, ok := scenarioBuilders[s.Kind]; !ok {
			return BenchFile{}, fmt.Errorf("b2bench: scenario %d: unknown kind %q", i, s.Kind)
		}
	}

	return bench, nil
}

type scenarioBuilder func(world *box2d.B2World, s ScenarioSpec) error

var scenarioBuilders = map[string]scenarioBuilder{
	"pyramid": buildPyramid,
	"piston":  buildPiston,
	"chain":   buildChain,
	"rain":    buildRain,
}

/// Build a world holding a static floor and every scenario of the bench.
func (bench BenchFile) Build() (*box2d.B2World, error) {
	world, err := box2d.NewB2WorldFromConfig(bench.World)
	if err != nil {
		return nil, err
	}

	lower := bench.World.WorldAABB.Lower
	upper := bench.World.WorldAABB.Upper

	// Scenario offsets are relative to the top of the floor.
	floorTop := lower.Y + 1.5

	// Floor spanning the world box just above its bottom edge.
	{
		width := 0.5 * (upper.X - lower.X)

		shape := box2d.MakeB2PolygonShape()
		if err := shape.SetAsOrientedBox(0.9*width, 0.5, box2d.MakeB2Vec2(lower.X+width, lower.Y+1.0), 0.0); err != nil {
			return nil, err
		}
		if _, err := world.GetGroundBody().CreateFixtureFromShape(&shape, 0.0); err != nil {
			return nil, err
		}
	}

	for i, s := range bench.Scenarios {
		if s.Count <= 0 {
			s.Count = 10
		}
		if s.Size <= 0.0 {
			s.Size = 0.5
		}
		if s.Density <= 0.0 {
			s.Density = 1.0
		}
		s.OffsetY += floorTop

		if err := scenarioBuilders[s.Kind](world, s); err != nil {
			return nil, fmt.Errorf("b2bench: scenario %d (%s): %w", i, s.Kind, err)
		}
	}

	return world, nil
}

func dynamicBody(world *box2d.B2World, position box2d.B2Vec2) (*box2d.B2Body, error) {
	bd := box2d.MakeB2BodyDef()
	bd.Position = position
	return world.CreateBody(&bd)
}

func buildPyramid(world *box2d.B2World, s ScenarioSpec) error {
	h := s.Size
	shape := box2d.MakeB2PolygonShape()
	if err := shape.SetAsBox(h, h); err != nil {
		return err
	}

	x := box2d.MakeB2Vec2(s.OffsetX-float64(s.Count)*h, s.OffsetY+h)
	deltaX := box2d.MakeB2Vec2(h*1.125, h*2.0)
	deltaY := box2d.MakeB2Vec2(h*2.25, 0.0)

	for i := 0; i < s.Count; i++ {
		y := x
		for j := i; j < s.Count; j++ {
			body, err := dynamicBody(world, y)
			if err != nil {
				return err
			}
			if _, err := body.CreateFixtureFromShape(&shape, s.Density); err != nil {
				return err
			}
			y.OperatorPlusInplace(deltaY)
		}
		x.OperatorPlusInplace(deltaX)
	}

	return nil
}

// A motorized crank drives a connecting rod and a piston along a vertical
// prismatic axis. Count boxes are stacked on the piston.
func buildPiston(world *box2d.B2World, s ScenarioSpec) error {
	ground := world.GetGroundBody()
	origin := box2d.MakeB2Vec2(s.OffsetX, s.OffsetY)
	at := func(x, y float64) box2d.B2Vec2 {
		return box2d.B2Vec2Add(origin, box2d.MakeB2Vec2(x, y))
	}

	prevBody := ground

	// Crank
	{
		shape := box2d.MakeB2PolygonShape()
		if err := shape.SetAsBox(0.5, 2.0); err != nil {
			return err
		}

		body, err := dynamicBody(world, at(0.0, 7.0))
		if err != nil {
			return err
		}
		if _, err := body.CreateFixtureFromShape(&shape, 2.0); err != nil {
			return err
		}

		rjd := box2d.MakeB2RevoluteJointDef()
		rjd.Initialize(prevBody, body, at(0.0, 5.0))
		rjd.MotorSpeed = 1.0 * box2d.B2_pi
		rjd.MaxMotorTorque = 10000.0
		rjd.EnableMotor = true
		if _, err := world.CreateJoint(&rjd); err != nil {
			return err
		}

		prevBody = body
	}

	// Follower
	{
		shape := box2d.MakeB2PolygonShape()
		if err := shape.SetAsBox(0.5, 4.0); err != nil {
			return err
		}

		body, err := dynamicBody(world, at(0.0, 13.0))
		if err != nil {
			return err
		}
		if _, err := body.CreateFixtureFromShape(&shape, 2.0); err != nil {
			return err
		}

		rjd := box2d.MakeB2RevoluteJointDef()
		rjd.Initialize(prevBody, body, at(0.0, 9.0))
		if _, err := world.CreateJoint(&rjd); err != nil {
			return err
		}

		prevBody = body
	}

	// Piston
	{
		shape := box2d.MakeB2PolygonShape()
		if err := shape.SetAsBox(1.5, 1.5); err != nil {
			return err
		}

		body, err := dynamicBody(world, at(0.0, 17.0))
		if err != nil {
			return err
		}
		if _, err := body.CreateFixtureFromShape(&shape, 2.0); err != nil {
			return err
		}

		rjd := box2d.MakeB2RevoluteJointDef()
		rjd.Initialize(prevBody, body, at(0.0, 17.0))
		if _, err := world.CreateJoint(&rjd); err != nil {
			return err
		}

		pjd := box2d.MakeB2PrismaticJointDef()
		pjd.Initialize(ground, body, at(0.0, 17.0), box2d.MakeB2Vec2(0.0, 1.0))
		pjd.MaxMotorForce = 1000.0
		pjd.EnableMotor = true
		if _, err := world.CreateJoint(&pjd); err != nil {
			return err
		}
	}

	// Payload
	shape := box2d.MakeB2PolygonShape()
	if err := shape.SetAsBox(s.Size, s.Size); err != nil {
		return err
	}
	for i := 0; i < s.Count; i++ {
		body, err := dynamicBody(world, at(0.0, 19.0+float64(i)*(2.0*s.Size+0.05)))
		if err != nil {
			return err
		}
		if _, err := body.CreateFixtureFromShape(&shape, s.Density); err != nil {
			return err
		}
	}

	return nil
}

// A hanging chain of Count thin boxes linked by revolute joints.
func buildChain(world *box2d.B2World, s ScenarioSpec) error {
	shape := box2d.MakeB2PolygonShape()
	if err := shape.SetAsBox(s.Size, 0.125); err != nil {
		return err
	}

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = s.Density
	fd.Friction = 0.2

	y := s.OffsetY
	prevBody := world.GetGroundBody()
	for i := 0; i < s.Count; i++ {
		body, err := dynamicBody(world, box2d.MakeB2Vec2(s.OffsetX+s.Size+2.0*s.Size*float64(i), y))
		if err != nil {
			return err
		}
		if _, err := body.CreateFixture(&fd); err != nil {
			return err
		}

		jd := box2d.MakeB2RevoluteJointDef()
		jd.Initialize(prevBody, body, box2d.MakeB2Vec2(s.OffsetX+2.0*s.Size*float64(i), y))
		if _, err := world.CreateJoint(&jd); err != nil {
			return err
		}

		prevBody = body
	}

	return nil
}

// Count circles dropped on a grid, alternating radius.
func buildRain(world *box2d.B2World, s ScenarioSpec) error {
	columns := 10
	for i := 0; i < s.Count; i++ {
		radius := s.Size
		if i%2 == 1 {
			radius *= 0.5
		}

		shape := box2d.MakeB2CircleShape(radius)

		fd := box2d.MakeB2FixtureDef()
		fd.Shape = &shape
		fd.Density = s.Density
		fd.Friction = 0.3
		fd.Restitution = 0.2

		col := i % columns
		row := i / columns
		position := box2d.MakeB2Vec2(
			s.OffsetX+float64(col-columns/2)*2.5*s.Size,
			s.OffsetY+float64(row)*2.5*s.Size,
		)

		body, err := dynamicBody(world, position)
		if err != nil {
			return err
		}
		if _, err := body.CreateFixture(&fd); err != nil {
			return err
		}
	}

	return nil
}
