package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
)

// SlideResult is the outcome of a sweep-and-slide move.
type SlideResult struct {
	// Location is where the target ended up.
	Location mgl64.Vec3
	// Iterations is the number of slide iterations consumed.
	Iterations int
	// Landed is set when a vertical move stopped on walkable ground.
	Landed bool
	// HitCeiling is set when a vertical move was stopped by a surface above the target.
	HitCeiling bool
	// SteppedUp is set when a horizontal move climbed an obstacle.
	SteppedUp bool
	// Stuck is set when an iteration could not move because the target remained in penetration.
	Stuck bool
}

// depenetrateAndSweep sweeps the shape inflated by the skin margin by displacement. If that sweep starts
// in penetration, the overlaps are resolved and the unskinned shape is swept again from the fixed-up
// location. The returned record always carries the start and end of the sweep that produced it.
func (c *Controller) depenetrateAndSweep(displacement, loc mgl64.Vec3, rot mgl64.Quat, shape collision.Shape) (bool, collision.HitRecord) {
	end := loc.Add(displacement)
	hits := c.sweepMulti(loc, end, rot, shape.Inflate(c.conf.InflationMargin))
	if len(hits) == 0 {
		return false, collision.Miss(loc, end)
	}
	if !anyPenetrating(hits) {
		return true, hits[len(hits)-1]
	}

	res := ResolvePenetration(hits, c.conf.MaxDepenetrationIterations, c.conf.AdditionalDepenetrationDistance, nil)
	c.dbg.Notify(DebugModePenetration, true, "depenetrating %d hits by %v (iterations=%d, resolved=%v)", len(hits), res.Fixup, res.Iterations, res.Resolved)

	start := loc.Add(res.Fixup)
	return c.sweepSingle(start, start.Add(displacement), rot, shape)
}

// pullBack returns the location just short of the hit along the sweep.
func (c *Controller) pullBack(hit collision.HitRecord) mgl64.Vec3 {
	return hit.TraceStart.Add(game.PullBack(hit.Location.Sub(hit.TraceStart), c.conf.PullBackDistance))
}

// SlideHorizontal moves the target by a horizontal displacement. On walkable ground the displacement
// follows the slope and low obstacles are stepped onto; other blocking hits are slid along.
func (c *Controller) SlideHorizontal(displacement, loc mgl64.Vec3, rot mgl64.Quat, shape collision.Shape) SlideResult {
	res := SlideResult{Location: loc}
	remaining := displacement

	for i := 0; i < c.conf.MaxSlideIterations; i++ {
		if game.NearlyZero(remaining, game.KindaSmallNumber) {
			break
		}
		res.Iterations++

		groundNormal := c.FindGroundSurfaceNormal(shape, res.Location, rot)
		onGround := !game.NearlyZero(groundNormal, 0.01)
		if onGround {
			remaining = game.MatchVectorToSlope(game.UpVector, remaining, groundNormal)
		}

		ok, hit := c.depenetrateAndSweep(remaining, res.Location, rot, shape)
		if !ok {
			res.Location = hit.TraceEnd
			break
		}
		if hit.StartPenetrating {
			c.dbg.Notify(DebugModeSweep, true, "horizontal slide stuck at %v", hit.TraceStart)
			res.Stuck = true
			remaining = mgl64.Vec3{}
			continue
		}

		if onGround && c.tryStepUp(hit, remaining, shape, res.Location, rot) {
			res.SteppedUp = true
			res.Location = c.target.Location()
			return res
		}

		// Never slide vertically off a horizontal move.
		normal := hit.Normal
		if onGround {
			normal = game.MatchVectorToSlope(groundNormal, normal, groundNormal)
		} else {
			normal = game.SafeNormal(game.Horizontal(normal))
		}

		res.Location = c.pullBack(hit)
		remaining = game.PlaneProject(remaining.Mul(1-hit.Time), normal)
		if game.SafeNormal(remaining).Dot(game.SafeNormal(displacement)) < 0 {
			remaining = mgl64.Vec3{}
		}
		c.dbg.Notify(DebugModeSweep, true, "horizontal slide hit %v at t=%.3f, remaining %v", hit.ImpactPoint, hit.Time, remaining)
	}

	c.target.SetLocation(res.Location)
	return res
}

// SlideVertical moves the target by a vertical displacement. It stops on walkable ground and on ceilings
// and slides along anything else.
func (c *Controller) SlideVertical(displacement, loc mgl64.Vec3, rot mgl64.Quat, shape collision.Shape) SlideResult {
	res := SlideResult{Location: loc}
	remaining := displacement

	for i := 0; i < c.conf.MaxSlideIterations; i++ {
		if game.NearlyZero(remaining, game.KindaSmallNumber) {
			break
		}
		res.Iterations++

		ok, hit := c.depenetrateAndSweep(remaining, res.Location, rot, shape)
		if !ok {
			res.Location = hit.TraceEnd
			break
		}
		if hit.StartPenetrating {
			c.dbg.Notify(DebugModeSweep, true, "vertical slide stuck at %v", hit.TraceStart)
			res.Stuck = true
			remaining = mgl64.Vec3{}
			continue
		}

		res.Location = c.pullBack(hit)
		if hit.ImpactPoint.Z() > res.Location.Z() {
			c.dbg.Notify(DebugModeSweep, true, "vertical slide hit ceiling at %v", hit.ImpactPoint)
			res.HitCeiling = true
			break
		}
		if c.IsWalkable(hit.ImpactNormal) {
			c.dbg.Notify(DebugModeSweep, true, "vertical slide landed at %v", hit.ImpactPoint)
			res.Landed = true
			break
		}
		remaining = game.PlaneProject(remaining.Mul(1-hit.Time), hit.Normal)
	}

	c.target.SetLocation(res.Location)
	return res
}
