package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
)

// FindGround searches for the surface below a shape. A short ray is cast down from the centre of the
// shape's bottom and then from four points around it; if all miss, the whole shape is swept down. It
// returns the first blocking hit, or an empty record.
func (c *Controller) FindGround(shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) collision.HitRecord {
	lowest := shape.LowestPoint(loc, rot, game.UpVector)
	centre := mgl64.Vec3{loc.X(), loc.Y(), lowest.Z()}

	forward := game.Forward(rot).Mul(c.conf.GroundSampleRadius)
	right := game.Right(rot).Mul(c.conf.GroundSampleRadius)
	probes := [5]mgl64.Vec3{
		centre,
		centre.Add(forward),
		centre.Sub(forward),
		centre.Add(right),
		centre.Sub(right),
	}

	offset := game.UpVector.Mul(c.conf.GroundProbeOffset)
	delta := game.DownVector.Mul(c.conf.GroundProbeDistance)
	for i, p := range probes {
		if ok, hit := c.lineTrace(p.Add(offset), p.Add(delta)); ok {
			c.dbg.Notify(DebugModeGround, true, "ground probe %d hit %v (normal %v)", i, hit.ImpactPoint, hit.ImpactNormal)
			return hit
		}
	}

	// Probes can all miss for shapes wider than they are tall, so fall back to the whole shape.
	if ok, hit := c.sweepSingle(loc, loc.Add(delta), rot, shape); ok {
		c.dbg.Notify(DebugModeGround, true, "ground sweep hit %v (normal %v)", hit.ImpactPoint, hit.ImpactNormal)
		return hit
	}
	var hit collision.HitRecord
	hit.Reset()
	return hit
}

// IsWalkable returns true if a surface with the given normal is shallow enough to stand on.
func (c *Controller) IsWalkable(normal mgl64.Vec3) bool {
	return game.VectorAngleDegrees(normal, game.UpVector) <= c.conf.MaxWalkableSlopeAngle
}

// FindGroundSurfaceNormal returns the normal of the walkable ground below the shape, or the zero vector if
// there is no walkable ground.
func (c *Controller) FindGroundSurfaceNormal(shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) mgl64.Vec3 {
	hit := c.FindGround(shape, loc, rot)
	if hit.Blocking && c.IsWalkable(hit.ImpactNormal) {
		return hit.ImpactNormal
	}
	return mgl64.Vec3{}
}

// GroundedAt returns true if the shape at the given transform stands on walkable ground.
func (c *Controller) GroundedAt(shape collision.Shape, loc mgl64.Vec3, rot mgl64.Quat) bool {
	hit := c.FindGround(shape, loc, rot)
	return hit.Blocking && c.IsWalkable(hit.ImpactNormal)
}
