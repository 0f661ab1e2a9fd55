package scenario

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/camera"
	"github.com/oomph-ac/kinemove/entity"
	"github.com/oomph-ac/kinemove/game"
	"github.com/oomph-ac/kinemove/input"
	"github.com/oomph-ac/kinemove/movement"
	"github.com/oomph-ac/kinemove/simulation"
	"github.com/oomph-ac/kinemove/world"
	"github.com/sirupsen/logrus"
)

const defaultTolerance = 1

// Run is a scenario built into a world and a schedule, ready to execute.
type Run struct {
	scenario *Scenario
	log      *logrus.Logger

	World     *world.World
	Character *simulation.Character
	Scheduler *simulation.Scheduler

	failures []string
}

// Result is the outcome of a scenario run.
type Result struct {
	Name     string
	Ticks    int64
	Checksum uint64

	Location mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool

	// Failures lists the expectations that did not hold.
	Failures []string

	// Tick* summarise the wall time of a tick in microseconds.
	TickMean   float64
	TickMedian float64
	TickStdDev float64
	TickMax    float64
}

// Passed returns true if every expectation held.
func (r Result) Passed() bool {
	return len(r.Failures) == 0
}

// Build creates the world, the character and the schedule of the scenario. A nil logger discards output.
func (s *Scenario) Build(log *logrus.Logger) (*Run, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	r := &Run{
		scenario:  s,
		log:       log,
		World:     world.New(log),
		Scheduler: simulation.NewScheduler(log),
	}

	var platforms []string
	for _, p := range s.Geometry.Planes {
		r.World.AddPlane(p.Point, p.Normal)
	}
	for _, sl := range s.Geometry.Slopes {
		r.World.Add(world.NewSlope(sl.Point, sl.Direction, sl.Angle))
	}
	for i, b := range s.Geometry.Boxes {
		box := r.World.AddBox(b.Min, b.Max)
		if len(b.Path) == 0 {
			continue
		}
		p := world.NewPlatform(r.World, box, b.Speed, b.Loop, b.Path...)
		name := fmt.Sprintf("platform/%d", i)
		if err := r.Scheduler.Add(name, simulation.TaskFunc(func(_ int64, dt float64) {
			p.Tick(dt)
		})); err != nil {
			return nil, err
		}
		platforms = append(platforms, name)
	}

	shape, err := s.Character.Shape.shape()
	if err != nil {
		return nil, err
	}
	debug, err := movement.ParseDebugModes(s.Character.Debug)
	if err != nil {
		return nil, err
	}
	ent := entity.New(shape, s.Character.Location, game.Rotator{Yaw: s.Character.Yaw})
	c, err := movement.NewController(s.Character.Movement, movement.Options{
		Backend: r.World,
		Target:  ent,
		Gravity: movement.ConstantGravity(s.Gravity),
		Log:     log,
		Debug:   debug,
	})
	if err != nil {
		return nil, err
	}

	r.Character = &simulation.Character{
		Name:       "character",
		Entity:     ent,
		Controller: c,
		Stick:      input.NewStick(s.Character.Yaw),
		Script:     s.Script,
		Recorder:   simulation.NewRecorder(false),
	}
	if s.Character.Camera {
		r.Character.Camera = camera.NewFollow()
	}
	if err := r.Character.Register(r.Scheduler, platforms...); err != nil {
		return nil, err
	}
	if len(s.Expect) > 0 {
		if err := r.Scheduler.Add("expect", simulation.TaskFunc(r.check), r.Character.MovementTask()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Execute runs every tick of the scenario. Failed expectations are reported in the result; only a
// cancelled context or a failing tick return an error.
func (r *Run) Execute(ctx context.Context) (Result, error) {
	s := r.scenario
	dt := 1 / s.TickRate
	durations := make([]float64, 0, s.Ticks)

	for range s.Ticks {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		start := time.Now()
		if err := r.Scheduler.Step(dt); err != nil {
			return Result{}, err
		}
		durations = append(durations, float64(time.Since(start).Nanoseconds())/1e3)
	}

	c := r.Character.Controller
	res := Result{
		Name:       s.Name,
		Ticks:      s.Ticks,
		Checksum:   r.Character.Recorder.Sum(),
		Location:   c.Location(),
		Velocity:   c.Velocity(),
		Grounded:   c.IsGrounded(),
		Failures:   r.failures,
		TickMean:   game.Mean(durations),
		TickMedian: game.Median(durations),
		TickStdDev: game.StandardDeviation(durations),
		TickMax:    game.Max(durations),
	}
	r.log.WithFields(logrus.Fields{
		"scenario": s.Name,
		"ticks":    s.Ticks,
		"checksum": fmt.Sprintf("%016x", res.Checksum),
		"passed":   res.Passed(),
	}).Debug("scenario: finished run")
	return res, nil
}

func (r *Run) check(tick int64, _ float64) {
	for _, e := range r.scenario.Expect {
		if e.Tick != tick {
			continue
		}
		hp, ok := r.Character.Entity.Rewind(tick)
		if !ok || hp.Tick != tick {
			r.fail("tick %d: no recorded state", tick)
			continue
		}
		tolerance := e.Tolerance
		if tolerance <= 0 {
			tolerance = defaultTolerance
		}
		if e.Location != nil && hp.Location.Sub(*e.Location).Len() > tolerance {
			r.fail("tick %d: location %v is not within %v of %v", tick, hp.Location, tolerance, *e.Location)
		}
		if e.Grounded != nil && hp.Grounded != *e.Grounded {
			r.fail("tick %d: grounded is %v, expected %v", tick, hp.Grounded, *e.Grounded)
		}
		speed := game.Horizontal(hp.Velocity).Len()
		if e.MinSpeed != nil && speed < *e.MinSpeed-tolerance {
			r.fail("tick %d: horizontal speed %.2f is below %.2f", tick, speed, *e.MinSpeed)
		}
		if e.MaxSpeed != nil && speed > *e.MaxSpeed+tolerance {
			r.fail("tick %d: horizontal speed %.2f is above %.2f", tick, speed, *e.MaxSpeed)
		}
	}
}

func (r *Run) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.failures = append(r.failures, msg)
	r.log.WithField("scenario", r.scenario.Name).Warn(msg)
}
