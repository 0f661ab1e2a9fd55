package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/kinemove/collision"
)

// TransformTarget is the collision volume moved by a Controller.
type TransformTarget interface {
	// ID identifies the target so that queries can ignore it.
	ID() uuid.UUID
	// Location returns the world location of the target.
	Location() mgl64.Vec3
	// SetLocation moves the target to a world location.
	SetLocation(pos mgl64.Vec3)
	// Rotation returns the world rotation of the target.
	Rotation() mgl64.Quat
	// SetRotation sets the world rotation of the target.
	SetRotation(rot mgl64.Quat)
	// Forward returns the forward axis of the target.
	Forward() mgl64.Vec3
	// Right returns the right axis of the target.
	Right() mgl64.Vec3
	// Shape returns the current collision shape of the target.
	Shape() collision.Shape
	// AttachTo binds the target's transform to c, keeping the current world transform.
	AttachTo(c collision.Component)
	// Detach releases the target from its parent, keeping the current world transform.
	Detach()
}

// RootMotionSource provides animation-driven motion.
type RootMotionSource interface {
	// Consume returns and clears the root-motion delta accumulated for this tick.
	Consume() (hasMotion bool, translation mgl64.Vec3, rotation mgl64.Quat)
}

// GravityProvider provides world gravity.
type GravityProvider interface {
	// GravityZ returns the world gravity along Z in cm/s², negative pointing down.
	GravityZ() float64
}

// ConstantGravity is a GravityProvider returning a fixed value.
type ConstantGravity float64

// GravityZ ...
func (g ConstantGravity) GravityZ() float64 {
	return float64(g)
}
