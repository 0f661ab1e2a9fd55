package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
)

const (
	// stepUpMargin is added to the step height so the raised shape clears the step surface.
	stepUpMargin = 0.01
	// stepProbeRadius is the radius of the sphere used to find the surface of a step.
	stepProbeRadius = 0.25
)

// tryStepUp attempts to climb the obstacle of a blocking horizontal hit by raising the shape to the
// obstacle's height and sweeping the displacement again. On success the target has been moved.
func (c *Controller) tryStepUp(hit collision.HitRecord, displacement mgl64.Vec3, shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) bool {
	height := game.NumericalDistance(hit.ImpactPoint.Z(), shape.LowestPoint(loc, rot, game.UpVector).Z())
	if height > c.conf.MaxStepHeight {
		c.dbg.Notify(DebugModeStepUp, true, "step of height %.2f is too high", height)
		return false
	}
	if !c.IsWalkable(c.stepSurfaceNormal(hit)) {
		c.dbg.Notify(DebugModeStepUp, true, "step surface at %v is not walkable", hit.ImpactPoint)
		return false
	}

	raised := hit.TraceStart.Add(mgl64.Vec3{0, 0, height + stepUpMargin})
	if ok, ceiling := c.sweepSingle(loc, raised, rot, shape); ok {
		c.dbg.Notify(DebugModeStepUp, true, "step blocked by ceiling at %v", ceiling.ImpactPoint)
		return false
	}

	ok, stepHit := c.sweepSingle(raised, raised.Add(displacement), rot, shape)
	if !ok {
		c.target.SetLocation(stepHit.TraceEnd)
		c.SnapDown(c.conf.MaxSnapDownDistance, stepHit.TraceEnd, rot, shape)
		c.steppedUp(height)
		return true
	}

	// Shallow collisions are slopes and are always climbable regardless of step depth.
	depth := game.Vec3HzDist(stepHit.ImpactPoint, hit.ImpactPoint)
	if depth < c.conf.MinStepDepth && height >= c.conf.StepDepthHeightThreshold {
		c.dbg.Notify(DebugModeStepUp, true, "step depth %.2f is too shallow", depth)
		return false
	}
	newLoc := c.pullBack(stepHit)
	c.target.SetLocation(newLoc)
	c.SnapDown(c.conf.MaxSnapDownDistance, newLoc, rot, shape)
	c.steppedUp(height)
	return true
}

// stepSurfaceNormal probes the top of the obstacle at the impact point with a small sphere.
func (c *Controller) stepSurfaceNormal(hit collision.HitRecord) mgl64.Vec3 {
	_, probe := c.sweepSingle(
		hit.ImpactPoint.Add(mgl64.Vec3{0, 0, 1}),
		hit.ImpactPoint.Sub(mgl64.Vec3{0, 0, 0.01}),
		mgl64.QuatIdent(),
		collision.Sphere(stepProbeRadius),
	)
	return probe.ImpactNormal
}

func (c *Controller) steppedUp(height float64) {
	c.dbg.Notify(DebugModeStepUp, true, "stepped up %.2f to %v", height, c.target.Location())
	c.handler.HandleStepUp(height)
}

// SnapDown sweeps the shape down by up to distance and moves the target just above any surface found.
// It returns true if a surface was found.
func (c *Controller) SnapDown(distance float64, loc mgl64.Vec3, rot mgl64.Quat, shape collision.Shape) bool {
	ok, hit := c.sweepSingle(loc, loc.Sub(mgl64.Vec3{0, 0, distance}), rot, shape)
	if !ok {
		return false
	}
	c.target.SetLocation(c.pullBack(hit))
	return true
}
