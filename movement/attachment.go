package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
)

// UpdateAttachment attaches the target to the walkable surface it stands on, so it is carried along when
// that surface moves, and detaches it otherwise.
func (walking) UpdateAttachment(c *Controller, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) {
	hit := c.FindGround(shape, loc, rot)
	if !hit.Blocking || !c.IsWalkable(hit.ImpactNormal) || hit.Component == nil {
		c.target.Detach()
		return
	}
	c.dbg.Notify(DebugModeAttachment, true, "attaching to %v", hit.Component.ID())
	c.target.AttachTo(hit.Component)
}
