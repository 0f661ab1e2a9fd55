package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/game"
)

const (
	// analogLookRate is the look rate in degrees per second at full stick deflection and unit scale.
	analogLookRate = 100
	// maxControlPitch keeps the control rotation from flipping over the poles.
	maxControlPitch = 89.9
)

// Mover receives movement input. *movement.Controller implements it.
type Mover interface {
	AddMovementInput(dir mgl64.Vec3, scale float64)
	Jump() bool
	AddVerticalForce(height float64)
}

// Stick maps a two-axis analog stick onto movement input relative to a control rotation, the way a
// player controller drives a character. Axis X is right and axis Y is forward.
type Stick struct {
	// ControlRotation is the view rotation the stick is relative to. Only its yaw affects movement.
	ControlRotation game.Rotator

	LookYawScale   float64
	LookPitchScale float64
	InvertPitch    bool
}

// NewStick returns a stick with unit look scales facing along yaw.
func NewStick(yaw float64) *Stick {
	return &Stick{
		ControlRotation: game.Rotator{Yaw: yaw},
		LookYawScale:    1,
		LookPitchScale:  1,
	}
}

// Look turns the control rotation by an analog look axis deflection held for dt seconds.
func (s *Stick) Look(axis mgl64.Vec2, dt float64) {
	rate := dt * analogLookRate
	pitch := axis.Y() * rate * s.LookPitchScale
	if s.InvertPitch {
		pitch = -pitch
	}
	s.turn(axis.X()*rate*s.LookYawScale, pitch)
}

// LookAbsolute turns the control rotation by absolute yaw and pitch deltas in degrees, as from a mouse.
func (s *Stick) LookAbsolute(yaw, pitch float64) {
	if !s.InvertPitch {
		pitch = -pitch
	}
	s.turn(yaw, pitch)
}

func (s *Stick) turn(yaw, pitch float64) {
	s.ControlRotation.Yaw = game.WrapAngle(s.ControlRotation.Yaw + yaw)
	s.ControlRotation.Pitch = game.ClampFloat(s.ControlRotation.Pitch+pitch, -maxControlPitch, maxControlPitch)
}

// Direction returns the world movement direction and magnitude of a move axis deflection. The magnitude
// is clamped to [0, 1]; a centred stick returns a zero direction.
func (s *Stick) Direction(axis mgl64.Vec2) (mgl64.Vec3, float64) {
	local := mgl64.Vec3{axis.Y(), axis.X(), 0}
	dir := game.SafeNormal(game.YawQuat(s.ControlRotation.Yaw).Rotate(local))
	return dir, game.ClampFloat(math.Hypot(axis.X(), axis.Y()), 0, 1)
}

// Move feeds a move axis deflection to m. A centred stick adds no input.
func (s *Stick) Move(m Mover, axis mgl64.Vec2) {
	dir, scale := s.Direction(axis)
	if scale == 0 || dir.LenSqr() == 0 {
		return
	}
	m.AddMovementInput(dir, scale)
}
