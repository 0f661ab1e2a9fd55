package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
)

// ModeBehaviour is the mode-specific part of a controller tick. New movement modes implement it and are
// added with Controller.RegisterMode, reusing the controller's sweep, ground and step helpers.
type ModeBehaviour interface {
	// Mode returns the mode the behaviour implements.
	Mode() Mode
	// GroundCheck reports whether the shape at the given transform is standing on ground.
	GroundCheck(c *Controller, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) bool
	// IntegrateHorizontal integrates horizontal velocity over dt and moves the target.
	IntegrateHorizontal(c *Controller, dt float64, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat)
	// IntegrateVertical integrates vertical velocity over dt and moves the target.
	IntegrateVertical(c *Controller, dt float64, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat)
	// AdjustDepenetrationNormal returns the normal used to push the target out of an overlap.
	AdjustDepenetrationNormal(c *Controller, normal, impactNormal mgl64.Vec3) mgl64.Vec3
	// Orientation returns the rotation the target should turn towards, or false if there is none.
	Orientation(c *Controller) (game.Rotator, bool)
	// ApplyRootMotionRotation applies the root-motion rotation delta to the target.
	ApplyRootMotionRotation(c *Controller, rotation mgl64.Quat)
	// ApplyVerticalForce applies a vertical impulse reaching the given apex height.
	ApplyVerticalForce(c *Controller, height float64)
}

// PlatformRider is implemented by modes that attach the target to the surface it stands on.
type PlatformRider interface {
	UpdateAttachment(c *Controller, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat)
}
