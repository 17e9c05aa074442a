package box2d

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultB2Config()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	if got := cfg.TimeStep(); got != 1.0/60.0 {
		t.Errorf("TimeStep = %v, want 1/60", got)
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseB2Config([]byte(`
gravity: {x: 1, y: -5}
hz: 30
warm_starting: false
`))
	if err != nil {
		t.Fatalf("ParseB2Config: %v", err)
	}

	def := DefaultB2Config()
	if cfg.Gravity.Vec2() != MakeB2Vec2(1.0, -5.0) {
		t.Errorf("gravity = %v", cfg.Gravity)
	}
	if cfg.Hz != 30.0 || cfg.WarmStarting {
		t.Errorf("hz = %v, warm_starting = %v", cfg.Hz, cfg.WarmStarting)
	}
	if cfg.WorldAABB != def.WorldAABB || cfg.VelocityIterations != def.VelocityIterations ||
		cfg.MaxProxies != def.MaxProxies || !cfg.ContinuousPhysics {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	cases := []struct {
		name   string
		doc    string
		config bool
	}{
		{"syntax", "gravity: [", false},
		{"inverted aabb", "world_aabb: {lower: {x: 10, y: 0}, upper: {x: -10, y: 5}}", true},
		{"flat aabb", "world_aabb: {lower: {x: -10, y: 0}, upper: {x: 10, y: 0}}", true},
		{"negative hz", "hz: -1", true},
		{"no velocity iterations", "velocity_iterations: 0", true},
		{"no position iterations", "position_iterations: -3", true},
		{"no proxies", "max_proxies: 0", true},
		{"negative proxies", "max_proxies: -5", true},
		{"no pairs", "max_pairs: 0", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseB2Config([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tc.config {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v for %v", got, err)
			}
		})
	}
}

func TestConfigMarshalRoundTrip(t *testing.T) {
	cfg := DefaultB2Config()
	cfg.Gravity = B2VecConfig{X: 0.5, Y: -9.8}
	cfg.FixedDtRatio = true
	cfg.MaxPairs = 1234

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back, err := ParseB2Config(data)
	if err != nil {
		t.Fatalf("ParseB2Config: %v\n%s", err, data)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	if err := os.WriteFile(path, []byte("hz: 120\nallow_sleep: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadB2Config(path)
	if err != nil {
		t.Fatalf("LoadB2Config: %v", err)
	}
	if cfg.Hz != 120.0 || cfg.AllowSleep {
		t.Errorf("loaded %+v", cfg)
	}

	if _, err := LoadB2Config(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestWorldFromConfig(t *testing.T) {
	cfg := DefaultB2Config()
	cfg.WarmStarting = false
	cfg.ContinuousPhysics = false
	cfg.AutoClearForces = false
	cfg.Gravity = B2VecConfig{X: 0.0, Y: -5.0}

	world, err := NewB2WorldFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewB2WorldFromConfig: %v", err)
	}

	if world.GetWarmStarting() || world.GetContinuousPhysics() || world.GetAutoClearForces() {
		t.Errorf("world flags do not follow the config")
	}
	if world.GetGravity() != MakeB2Vec2(0.0, -5.0) {
		t.Errorf("gravity = %v", world.GetGravity())
	}

	bd := MakeB2BodyDef()
	bd.Position.Set(0.0, 10.0)
	body, err := world.CreateBody(&bd)
	if err != nil {
		t.Fatal(err)
	}
	circle := MakeB2CircleShape(0.5)
	if _, err := body.CreateFixtureFromShape(&circle, 1.0); err != nil {
		t.Fatal(err)
	}

	cfg.Step(world)
	if v := body.GetLinearVelocity(); math.Abs(v.Y+5.0/60.0) > 1e-9 {
		t.Errorf("velocity after one step = %v, want y=%v", v, -5.0/60.0)
	}

	cfg.MaxProxies = 0
	if _, err := NewB2WorldFromConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid config: err = %v", err)
	}
}
