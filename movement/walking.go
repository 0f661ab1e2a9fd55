package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
)

// walking is ground locomotion: input-driven acceleration with friction and braking on ground, reduced
// control in the air, gravity while falling, steps, slopes and moving platforms.
type walking struct{}

// Mode ...
func (walking) Mode() Mode {
	return ModeWalking
}

// GroundCheck ...
func (walking) GroundCheck(c *Controller, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) bool {
	return c.GroundedAt(shape, loc, rot)
}

// IntegrateHorizontal ...
func (w walking) IntegrateHorizontal(c *Controller, dt float64, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) {
	groundedBefore := c.GroundedAt(shape, loc, rot)

	var displacement mgl64.Vec3
	if rm := c.state.RootMotion; rm.HasMotion {
		// Root motion only carries a distance; the character always travels along its facing.
		forward := game.SafeNormal(game.Horizontal(game.Forward(rot)))
		displacement = forward.Mul(game.Horizontal(rm.Translation).Len())
		if dt > game.SmallNumber {
			c.state.HorizontalVelocity = displacement.Mul(1 / dt)
		}
	} else {
		displacement = w.integrateVelocity(c, dt, groundedBefore)
	}
	c.dbg.Notify(DebugModeIntegration, true, "horizontal: grounded=%v velocity=%v displacement=%v", groundedBefore, c.state.HorizontalVelocity, displacement)

	c.SlideHorizontal(displacement, loc, rot, shape)
	if !groundedBefore {
		return
	}

	newLoc := c.target.Location()
	if c.GroundedAt(shape, newLoc, rot) {
		return
	}
	// Only snap down if there is something close below, otherwise the character walks off the ledge.
	lowest := shape.LowestPoint(newLoc, rot, game.UpVector)
	if ok, _ := c.lineTrace(lowest, lowest.Add(game.DownVector.Mul(c.conf.LedgeSearchDistance))); !ok {
		c.dbg.Notify(DebugModeGround, true, "walked off ledge at %v", newLoc)
		return
	}
	c.SnapDown(c.conf.MaxStepHeight, newLoc, rot, shape)
}

// integrateVelocity advances the horizontal velocity by dt and returns the displacement covered.
func (walking) integrateVelocity(c *Controller, dt float64, grounded bool) mgl64.Vec3 {
	conf, s := c.conf, &c.state
	requesting := s.RequestingMovement()
	if requesting {
		s.InputScale = max(conf.MinAnalogWalkSpeed/conf.MaxWalkSpeed, s.InputScale)
	}

	v0 := s.HorizontalVelocity
	var accel mgl64.Vec3
	braking := false
	switch {
	case !grounded:
		accel = s.InputDirection.Mul(conf.MaxAccelerationRate * s.InputScale * conf.AirControl)
	case !requesting && v0.Len() > 0:
		braking = true
		friction := v0.Mul(-conf.FrictionCoefficient * conf.GroundFriction)
		accel = game.SafeNormal(v0).Mul(-conf.BrakingDecelerationRate)
		if !conf.ApplySeparateBrakingForce {
			accel = accel.Add(friction)
		}
		// Stop once the deceleration would carry the character backwards within this tick.
		next := v0.Mul(dt).Add(accel.Mul(0.5 * dt * dt))
		if game.SafeNormal(next).Dot(game.SafeNormal(v0)) <= 0 {
			accel, v0 = mgl64.Vec3{}, mgl64.Vec3{}
		}
	default:
		friction := v0.Mul(-conf.FrictionCoefficient * conf.GroundFriction)
		accel = s.InputDirection.Mul(conf.MaxAccelerationRate * s.InputScale).Add(friction)
	}

	v1 := v0.Add(accel.Mul(dt))
	if braking && v1.Dot(v0) < 0 {
		v1 = mgl64.Vec3{}
	}
	if v1.Len() > conf.MaxWalkSpeed {
		desired := game.SafeNormal(v1).Mul(conf.MaxWalkSpeed)
		accel = desired.Sub(v0).Mul(1 / dt)
		v1 = v0.Add(accel.Mul(dt))
	}

	s.HorizontalVelocity = game.Horizontal(v1)
	return game.Horizontal(v0.Add(v1).Mul(0.5 * dt))
}

// IntegrateVertical ...
func (w walking) IntegrateVertical(c *Controller, dt float64, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) {
	s := &c.state
	v0 := s.VerticalVelocity

	var accel float64
	if !c.GroundedAt(shape, loc, rot) {
		accel = c.gravityZ() * c.conf.GravityScale
	}
	v1 := v0.Add(mgl64.Vec3{0, 0, accel * dt})
	if v1.Z() < 0 {
		v1 = game.ClampLength(v1, c.conf.MaxFallSpeed)
	}
	displacement := v0.Add(v1).Mul(0.5 * dt)
	s.VerticalVelocity = v1
	c.dbg.Notify(DebugModeIntegration, accel != 0 || v1.Z() != 0, "vertical: velocity=%v displacement=%v", v1, displacement)

	res := c.SlideVertical(displacement, loc, rot, shape)
	if !res.HitCeiling && !res.Landed {
		return
	}
	impact := s.Velocity()
	s.VerticalVelocity = mgl64.Vec3{}
	if res.Landed {
		w.landed(c, impact)
	}
}

func (walking) landed(c *Controller, velocity mgl64.Vec3) {
	ctx := &Context{}
	c.handler.HandleLanded(ctx, velocity)
	if ctx.Cancelled() {
		return
	}
	if c.conf.RemoveVelocityOnLand && c.state.InputScale < 0.01 {
		c.state.HorizontalVelocity = mgl64.Vec3{}
	}
}

// AdjustDepenetrationNormal pushes straight up out of walkable ground so slight overlaps with it never
// move the character sideways.
func (walking) AdjustDepenetrationNormal(c *Controller, normal, impactNormal mgl64.Vec3) mgl64.Vec3 {
	if c.IsWalkable(impactNormal) {
		return game.UpVector
	}
	return normal
}

// Orientation faces the horizontal velocity, or the last input direction while standing still.
func (walking) Orientation(c *Controller) (game.Rotator, bool) {
	dir := c.state.HorizontalVelocity
	if game.NearlyZero(dir, game.KindaSmallNumber) {
		dir = c.state.InputDirection
	}
	if game.NearlyZero(dir, game.KindaSmallNumber) {
		return game.Rotator{}, false
	}
	return game.OrientationOf(dir), true
}

// ApplyRootMotionRotation applies only the yaw of the delta.
func (walking) ApplyRootMotionRotation(c *Controller, rotation mgl64.Quat) {
	yaw := game.RotatorFromQuat(rotation).Yaw
	c.target.SetRotation(game.YawQuat(yaw).Mul(c.target.Rotation()).Normalize())
}

// ApplyVerticalForce replaces the vertical velocity with the launch speed reaching height under unscaled
// world gravity, so the gravity scale never changes how high the character jumps.
func (walking) ApplyVerticalForce(c *Controller, height float64) {
	c.state.VerticalVelocity = mgl64.Vec3{0, 0, jumpSpeed(c.gravityZ(), height)}
}
