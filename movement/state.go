package movement

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mode is the movement mode a controller is ticking.
type Mode uint8

const (
	// ModeWalking is ground locomotion with gravity, steps and slopes.
	ModeWalking Mode = iota
)

func (m Mode) String() string {
	switch m {
	case ModeWalking:
		return "walking"
	}
	return "unknown"
}

// RootMotion is the animation-driven delta consumed for the current tick.
type RootMotion struct {
	HasMotion   bool
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// State is the velocity and input state of a controller. Horizontal velocity never has a vertical
// component and vertical velocity never has a horizontal one.
type State struct {
	Mode Mode

	HorizontalVelocity mgl64.Vec3
	VerticalVelocity   mgl64.Vec3

	// InputDirection is the last requested movement direction, a horizontal unit vector. It survives the
	// end of the tick so orientation can fall back to it.
	InputDirection mgl64.Vec3
	// InputScale is the requested movement strength in [0, 1]. It is cleared after every tick.
	InputScale float64

	RootMotion RootMotion
}

// Velocity returns the combined velocity.
func (s State) Velocity() mgl64.Vec3 {
	return s.HorizontalVelocity.Add(s.VerticalVelocity)
}

// RequestingMovement returns true if movement input was supplied for this tick.
func (s State) RequestingMovement() bool {
	return s.InputScale > 0
}
