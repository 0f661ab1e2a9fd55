package scenario

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
	"github.com/oomph-ac/kinemove/input"
	"github.com/oomph-ac/kinemove/movement"
	"github.com/oomph-ac/kinemove/oerror"
	"gopkg.in/yaml.v3"
)

// Scenario describes a self-contained simulation: static and moving geometry, one character with its
// movement tunables, a timed input script and the outcomes expected from it.
type Scenario struct {
	Name     string  `yaml:"name"`
	Ticks    int64   `yaml:"ticks"`
	TickRate float64 `yaml:"tick_rate"`
	// Gravity is the world gravity along Z in cm/s².
	Gravity float64 `yaml:"gravity"`

	Geometry  Geometry      `yaml:"geometry"`
	Character Character     `yaml:"character"`
	Script    input.Script  `yaml:"script"`
	Expect    []Expectation `yaml:"expect"`
}

// Geometry is the collision world of a scenario.
type Geometry struct {
	Planes []Plane `yaml:"planes"`
	Slopes []Slope `yaml:"slopes"`
	Boxes  []Box   `yaml:"boxes"`
}

// Plane is an infinite half-space.
type Plane struct {
	Point  mgl64.Vec3 `yaml:"point"`
	Normal mgl64.Vec3 `yaml:"normal"`
}

// Slope is a half-space rising at Angle degrees along Direction.
type Slope struct {
	Point     mgl64.Vec3 `yaml:"point"`
	Direction mgl64.Vec3 `yaml:"direction"`
	Angle     float64    `yaml:"angle"`
}

// Box is an axis-aligned box. A box with a path is a platform moving through the waypoints at Speed.
type Box struct {
	Min mgl64.Vec3 `yaml:"min"`
	Max mgl64.Vec3 `yaml:"max"`

	Path  []mgl64.Vec3 `yaml:"path"`
	Speed float64      `yaml:"speed"`
	Loop  bool         `yaml:"loop"`
}

// Character is the simulated character.
type Character struct {
	Shape    Shape           `yaml:"shape"`
	Location mgl64.Vec3      `yaml:"location"`
	Yaw      float64         `yaml:"yaw"`
	Movement movement.Config `yaml:"movement"`
	// Debug lists the movement debug modes to trace.
	Debug  []string `yaml:"debug"`
	Camera bool     `yaml:"camera"`
}

// Shape is the collision shape of the character.
type Shape struct {
	Kind       string     `yaml:"kind"`
	Radius     float64    `yaml:"radius"`
	HalfHeight float64    `yaml:"half_height"`
	Extent     mgl64.Vec3 `yaml:"extent"`
}

// Expectation is checked against the character after the movement of a tick. Unset fields are not
// checked.
type Expectation struct {
	Tick      int64       `yaml:"tick"`
	Location  *mgl64.Vec3 `yaml:"location"`
	Tolerance float64     `yaml:"tolerance"`
	Grounded  *bool       `yaml:"grounded"`
	MinSpeed  *float64    `yaml:"min_speed"`
	MaxSpeed  *float64    `yaml:"max_speed"`
}

// Default returns a scenario with the default tick rate and gravity and a capsule character using the
// base movement config.
func Default(base movement.Config) Scenario {
	return Scenario{
		TickRate: 60,
		Gravity:  game.DefaultGravityZ,
		Character: Character{
			Shape:    Shape{Kind: "capsule", Radius: 40, HalfHeight: 92},
			Movement: base,
		},
	}
}

// Parse decodes a YAML scenario on top of Default(base) and validates it.
func Parse(data []byte, base movement.Config) (*Scenario, error) {
	s := Default(base)
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, oerror.Wrap(err, "error decoding scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a scenario file. The file name is used when the scenario has no name.
func Load(path string, base movement.Config) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerror.Wrap(err, "error reading scenario")
	}
	s, err := Parse(data, base)
	if err != nil {
		return nil, oerror.Wrap(err, "scenario %s", path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Validate checks the scenario for values the simulation cannot run with.
func (s *Scenario) Validate() error {
	if s.Ticks <= 0 {
		return oerror.New("ticks must be positive, got %d", s.Ticks)
	}
	if !(s.TickRate > 0) {
		return oerror.New("tick rate must be positive, got %v", s.TickRate)
	}
	if _, err := s.Character.Shape.shape(); err != nil {
		return err
	}
	if err := s.Character.Movement.Validate(); err != nil {
		return oerror.Wrap(err, "character movement")
	}
	if _, err := movement.ParseDebugModes(s.Character.Debug); err != nil {
		return err
	}
	if err := s.Script.Validate(); err != nil {
		return err
	}
	for i, p := range s.Geometry.Planes {
		if p.Normal.LenSqr() == 0 {
			return oerror.New("plane %d has no normal", i)
		}
	}
	for i, sl := range s.Geometry.Slopes {
		if game.Horizontal(sl.Direction).LenSqr() == 0 || sl.Angle < 0 || sl.Angle >= 90 {
			return oerror.New("slope %d needs a horizontal direction and an angle in [0, 90)", i)
		}
	}
	for i, b := range s.Geometry.Boxes {
		if b.Min.X() >= b.Max.X() || b.Min.Y() >= b.Max.Y() || b.Min.Z() >= b.Max.Z() {
			return oerror.New("box %d is empty: min %v max %v", i, b.Min, b.Max)
		}
		if len(b.Path) > 0 && !(b.Speed > 0) {
			return oerror.New("moving box %d needs a positive speed", i)
		}
	}
	for i, e := range s.Expect {
		if e.Tick < 0 || e.Tick >= s.Ticks {
			return oerror.New("expectation %d checks tick %d outside [0, %d)", i, e.Tick, s.Ticks)
		}
	}
	return nil
}

func (s Shape) shape() (collision.Shape, error) {
	var sh collision.Shape
	switch s.Kind {
	case "capsule":
		sh = collision.Capsule(s.Radius, s.HalfHeight)
	case "sphere":
		sh = collision.Sphere(s.Radius)
	case "box":
		sh = collision.Box(s.Extent)
	default:
		return sh, oerror.New("unknown shape kind %q", s.Kind)
	}
	if sh.IsZero() {
		return sh, oerror.New("%s shape has no volume", s.Kind)
	}
	return sh, nil
}
