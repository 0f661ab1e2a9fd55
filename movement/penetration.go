package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
)

// NormalAdjuster replaces the normal used to push a shape out of an overlap.
type NormalAdjuster func(normal, impactNormal mgl64.Vec3) mgl64.Vec3

// Resolution is the outcome of ResolvePenetration.
type Resolution struct {
	// Fixup is the offset that removes the overlaps.
	Fixup mgl64.Vec3
	// ErrorSum is the overlap left unresolved by the last iteration.
	ErrorSum float64
	// Iterations is the number of relaxation passes run.
	Iterations int
	// Resolved is false if the iteration cap was reached first.
	Resolved bool
}

// ResolvePenetration computes a single offset that moves a shape out of every start-penetrating hit by
// at least its depth plus skin. Hits are relaxed one after another, each pass adding only the overlap not
// already covered by the offset along that hit's normal, until the summed error is negligible or
// maxIterations passes have run. adjust may be nil.
func ResolvePenetration(hits []collision.HitRecord, maxIterations int, skin float64, adjust NormalAdjuster) Resolution {
	var res Resolution
	if !anyPenetrating(hits) {
		res.Resolved = true
		return res
	}
	for res.Iterations < maxIterations {
		res.Iterations++
		res.ErrorSum = 0
		for _, hit := range hits {
			if !hit.StartPenetrating {
				continue
			}
			normal := hit.Normal
			if adjust != nil {
				normal = adjust(normal, hit.ImpactNormal)
			}
			err := max(0, hit.PenetrationDepth+skin-res.Fixup.Dot(normal))
			res.ErrorSum += err
			res.Fixup = res.Fixup.Add(normal.Mul(err))
		}
		if res.ErrorSum < game.KindaSmallNumber {
			res.Resolved = true
			break
		}
	}
	return res
}

func anyPenetrating(hits []collision.HitRecord) bool {
	for _, hit := range hits {
		if hit.StartPenetrating {
			return true
		}
	}
	return false
}

// moveOutOfCollision pushes the target out of geometry that moved into it since the last tick.
func (c *Controller) moveOutOfCollision(loc mgl64.Vec3, rot mgl64.Quat, shape collision.Shape) {
	hits := c.sweepMulti(loc, loc.Add(c.target.Forward().Mul(0.01)), rot, shape)
	if !anyPenetrating(hits) {
		return
	}
	mode := c.behaviour()
	res := ResolvePenetration(hits, c.conf.MaxDepenetrationIterations, c.conf.AdditionalDepenetrationDistance,
		func(normal, impactNormal mgl64.Vec3) mgl64.Vec3 {
			return mode.AdjustDepenetrationNormal(c, normal, impactNormal)
		})
	c.dbg.Notify(DebugModePenetration, true, "moving out of collision by %v (iterations=%d, resolved=%v)", res.Fixup, res.Iterations, res.Resolved)
	c.target.SetLocation(loc.Add(res.Fixup))
}
