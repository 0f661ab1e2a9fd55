package simulation

import (
	"github.com/oomph-ac/kinemove/camera"
	"github.com/oomph-ac/kinemove/entity"
	"github.com/oomph-ac/kinemove/game"
	"github.com/oomph-ac/kinemove/input"
	"github.com/oomph-ac/kinemove/movement"
)

// Character bundles a controller with the entity it moves and the pieces that feed and follow it.
type Character struct {
	Name       string
	Entity     *entity.Entity
	Controller *movement.Controller

	Stick  *input.Stick
	Script input.Script

	// Camera and Recorder are optional.
	Camera   *camera.Follow
	Recorder *Recorder
}

// InputTask returns the name of the task feeding input to the character.
func (c *Character) InputTask() string {
	return c.Name + "/input"
}

// MovementTask returns the name of the task ticking the controller.
func (c *Character) MovementTask() string {
	return c.Name + "/movement"
}

// CameraTask returns the name of the task updating the camera.
func (c *Character) CameraTask() string {
	return c.Name + "/camera"
}

// Register schedules the character. Input is applied first, then the controller moves the entity, then
// the camera follows it. All three run after the tasks named in after, such as moving platforms.
func (c *Character) Register(s *Scheduler, after ...string) error {
	if err := s.Add(c.InputTask(), TaskFunc(c.tickInput), after...); err != nil {
		return err
	}
	if err := s.Add(c.MovementTask(), TaskFunc(c.tickMovement), c.InputTask()); err != nil {
		return err
	}
	if c.Camera == nil {
		return nil
	}
	return s.Add(c.CameraTask(), TaskFunc(c.tickCamera), c.InputTask(), c.MovementTask())
}

func (c *Character) tickInput(tick int64, dt float64) {
	if c.Stick == nil {
		return
	}
	c.Script.Apply(tick, dt, c.Stick, c.Controller)
}

func (c *Character) tickMovement(tick int64, dt float64) {
	c.Controller.Tick(dt)

	vel, grounded := c.Controller.Velocity(), c.Controller.IsGrounded()
	c.Entity.Record(tick, vel, grounded)
	if c.Recorder != nil {
		c.Recorder.Record(Frame{
			Tick:     tick,
			Location: c.Controller.Location(),
			Rotation: c.Controller.Rotation(),
			Velocity: vel,
			Grounded: grounded,
		})
	}
}

func (c *Character) tickCamera(int64, float64) {
	control := game.RotatorFromQuat(c.Entity.Rotation())
	if c.Stick != nil {
		control = c.Stick.ControlRotation
	}
	c.Camera.Update(c.Entity, control)
}
