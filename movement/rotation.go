package movement

import "github.com/oomph-ac/kinemove/game"

// updateRotation applies the root-motion rotation, then turns the target towards its movement at the
// configured per-axis rates.
func (c *Controller) updateRotation(dt float64) {
	mode := c.behaviour()
	if c.state.RootMotion.HasMotion {
		mode.ApplyRootMotionRotation(c, c.state.RootMotion.Rotation)
		if !c.conf.AllowRotationDuringRootMotion {
			return
		}
	}
	if !c.conf.OrientRotationToMovement || !c.state.RequestingMovement() {
		return
	}
	target, ok := mode.Orientation(c)
	if !ok {
		return
	}

	current := game.RotatorFromQuat(c.target.Rotation())
	next := current
	if c.conf.OrientPitch {
		next.Pitch += game.OrientDelta(current.Pitch, target.Pitch, dt, c.conf.OrientPitchRate)
	}
	if c.conf.OrientYaw {
		next.Yaw += game.OrientDelta(current.Yaw, target.Yaw, dt, c.conf.OrientYawRate)
	}
	if c.conf.OrientRoll {
		next.Roll += game.OrientDelta(current.Roll, target.Roll, dt, c.conf.OrientRollRate)
	}
	if next == current {
		return
	}
	c.dbg.Notify(DebugModeRotation, true, "orienting from %+v to %+v (target %+v)", current, next, target)
	c.target.SetRotation(next.Quat())
}
