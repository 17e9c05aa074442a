package box2d

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/// A 2D vector in YAML, written as `{x: 0, y: -10}`.
type B2VecConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v B2VecConfig) Vec2() B2Vec2 {
	return MakeB2Vec2(v.X, v.Y)
}

type B2AABBConfig struct {
	Lower B2VecConfig `yaml:"lower"`
	Upper B2VecConfig `yaml:"upper"`
}

func (a B2AABBConfig) AABB() B2AABB {
	return MakeB2AABBFromBounds(a.Lower.Vec2(), a.Upper.Vec2())
}

/// World and stepping parameters loaded from YAML.
type B2Config struct {
	Gravity   B2VecConfig  `yaml:"gravity"`
	WorldAABB B2AABBConfig `yaml:"world_aabb"`

	/// Step frequency in Hertz. The time step is 1/Hz.
	Hz                 float64 `yaml:"hz"`
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`

	WarmStarting      bool `yaml:"warm_starting"`
	ContinuousPhysics bool `yaml:"continuous_physics"`
	AllowSleep        bool `yaml:"allow_sleep"`
	AutoClearForces   bool `yaml:"auto_clear_forces"`

	/// When set the first step after a change of time step does not rescale
	/// warm starting impulses (dtRatio is forced to 1).
	FixedDtRatio bool `yaml:"fixed_dt_ratio"`

	MaxProxies int `yaml:"max_proxies"`
	MaxPairs   int `yaml:"max_pairs"`
}

func DefaultB2Config() B2Config {
	return B2Config{
		Gravity: B2VecConfig{X: 0.0, Y: -10.0},
		WorldAABB: B2AABBConfig{
			Lower: B2VecConfig{X: -100.0, Y: -100.0},
			Upper: B2VecConfig{X: 100.0, Y: 200.0},
		},
		Hz:                 60.0,
		VelocityIterations: 10,
		PositionIterations: 8,
		WarmStarting:       true,
		ContinuousPhysics:  true,
		AllowSleep:         true,
		AutoClearForces:    true,
		FixedDtRatio:       false,
		MaxProxies:         B2_maxProxies,
		MaxPairs:           B2_maxPairs,
	}
}

/// The time step implied by Hz.
func (cfg B2Config) TimeStep() float64 {
	if cfg.Hz <= 0.0 {
		return 0.0
	}
	return 1.0 / cfg.Hz
}

func (cfg B2Config) Validate() error {
	if !cfg.WorldAABB.AABB().IsValid() {
		return fmt.Errorf("%w: world_aabb lower must not exceed upper", ErrInvalidConfig)
	}

	if cfg.WorldAABB.Lower.X == cfg.WorldAABB.Upper.X || cfg.WorldAABB.Lower.Y == cfg.WorldAABB.Upper.Y {
		return fmt.Errorf("%w: world_aabb has no area", ErrInvalidConfig)
	}

	if !cfg.Gravity.Vec2().IsValid() {
		return fmt.Errorf("%w: gravity is not finite", ErrInvalidConfig)
	}

	if cfg.Hz < 0.0 || !B2IsValid(cfg.Hz) {
		return fmt.Errorf("%w: hz = %v", ErrInvalidConfig, cfg.Hz)
	}

	if cfg.VelocityIterations < 1 || cfg.PositionIterations < 1 {
		return fmt.Errorf("%w: iterations must be positive (velocity=%d position=%d)",
			ErrInvalidConfig, cfg.VelocityIterations, cfg.PositionIterations)
	}

	if cfg.MaxProxies < 1 || cfg.MaxProxies >= B2_nullProxy {
		return fmt.Errorf("%w: max_proxies = %d", ErrInvalidConfig, cfg.MaxProxies)
	}

	if cfg.MaxPairs < 1 {
		return fmt.Errorf("%w: max_pairs = %d", ErrInvalidConfig, cfg.MaxPairs)
	}

	return nil
}

/// Parse a YAML document over the defaults. Missing keys keep their default.
func ParseB2Config(data []byte) (B2Config, error) {
	cfg := DefaultB2Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return B2Config{}, fmt.Errorf("box2d: unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return B2Config{}, err
	}

	return cfg, nil
}

func LoadB2Config(path string) (B2Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return B2Config{}, fmt.Errorf("box2d: load %s: %w", path, err)
	}

	cfg, err := ParseB2Config(data)
	if err != nil {
		return B2Config{}, fmt.Errorf("box2d: %s: %w", path, err)
	}

	return cfg, nil
}

func (cfg B2Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}

/// Build a world from the configuration.
func NewB2WorldFromConfig(cfg B2Config) (*B2World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world, err := NewB2WorldWithCapacity(
		cfg.Gravity.Vec2(),
		cfg.WorldAABB.AABB(),
		cfg.AllowSleep,
		cfg.MaxProxies,
		cfg.MaxPairs,
	)
	if err != nil {
		return nil, err
	}

	world.SetWarmStarting(cfg.WarmStarting)
	world.SetContinuousPhysics(cfg.ContinuousPhysics)
	world.SetAutoClearForces(cfg.AutoClearForces)
	world.M_fixedDtRatio = cfg.FixedDtRatio

	return world, nil
}

/// Advance the world by one configured time step.
func (cfg B2Config) Step(world *B2World) {
	world.Step(cfg.TimeStep(), cfg.VelocityIterations, cfg.PositionIterations)
}
