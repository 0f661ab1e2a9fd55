package world

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
)

// touchTolerance is the distance within which a shape touching a surface is not considered to overlap it.
const touchTolerance = 1e-6

// contact is a single shape-versus-collider result.
type contact struct {
	collider    Collider
	penetrating bool
	time        float64
	depth       float64
	normal      mgl64.Vec3
	impact      mgl64.Vec3
}

// SweepSingle ...
func (w *World) SweepSingle(start, end mgl64.Vec3, rot mgl64.Quat, shape collision.Shape, channel collision.Channel, params collision.QueryParams) (bool, collision.HitRecord) {
	var (
		best  contact
		found bool
	)
	w.query(start, end, rot, shape, channel, params, func(ct contact) {
		if !found || ct.before(best) {
			best, found = ct, true
		}
	})
	if !found {
		return false, collision.Miss(start, end)
	}
	return true, best.record(start, end)
}

// SweepMulti ...
func (w *World) SweepMulti(dst []collision.HitRecord, start, end mgl64.Vec3, rot mgl64.Quat, shape collision.Shape, channel collision.Channel, params collision.QueryParams) []collision.HitRecord {
	var (
		first       contact
		found       bool
		penetrating bool
	)
	w.query(start, end, rot, shape, channel, params, func(ct contact) {
		if ct.penetrating {
			dst = append(dst, ct.record(start, end))
			penetrating = true
			return
		}
		if !found || ct.before(first) {
			first, found = ct, true
		}
	})
	if found && !penetrating {
		dst = append(dst, first.record(start, end))
	}
	return dst
}

// LineTrace ...
func (w *World) LineTrace(start, end mgl64.Vec3, channel collision.Channel, params collision.QueryParams) (bool, collision.HitRecord) {
	return w.SweepSingle(start, end, mgl64.QuatIdent(), collision.Sphere(0), channel, params)
}

// query runs the narrowphase for every collider near the swept volume.
func (w *World) query(start, end mgl64.Vec3, rot mgl64.Quat, shape collision.Shape, channel collision.Channel, params collision.QueryParams, f func(ct contact)) {
	delta := end.Sub(start)
	ext := shape.Extents(rot)
	swept := cube.Box(
		start[0]-ext[0], start[1]-ext[1], start[2]-ext[2],
		start[0]+ext[0], start[1]+ext[1], start[2]+ext[2],
	).Extend(delta).Grow(1)

	w.RLock()
	defer w.RUnlock()

	w.nearby(swept, func(c Collider) {
		if !c.Responds(channel) || params.Ignores(c.ID()) {
			return
		}
		var (
			ct contact
			ok bool
		)
		switch c := c.(type) {
		case *Plane:
			ct, ok = planeContact(c, start, delta, rot, shape)
		case *Box:
			ct, ok = boxContact(c.BBox(), start, delta, ext)
		}
		if ok {
			ct.collider = c
			f(ct)
		}
	})
}

// planeContact finds the first contact of a shape moving by delta with a half-space, using the shape's
// support point against the plane normal.
func planeContact(p *Plane, start, delta mgl64.Vec3, rot mgl64.Quat, shape collision.Shape) (contact, bool) {
	support := shape.Support(rot, p.normal.Mul(-1))
	s0 := p.distance(start.Add(support))
	if s0 < -touchTolerance {
		return contact{
			penetrating: true,
			depth:       -s0,
			normal:      p.normal,
			impact:      start.Add(support).Sub(p.normal.Mul(s0)),
		}, true
	}

	approach := delta.Dot(p.normal)
	if approach >= 0 || s0+approach > 0 {
		return contact{}, false
	}
	t := mgl64.Clamp(s0/-approach, 0, 1)
	deepest := start.Add(delta.Mul(t)).Add(support)
	return contact{
		time:   t,
		normal: p.normal,
		impact: deepest.Sub(p.normal.Mul(p.distance(deepest))),
	}, true
}

// boxContact finds the first contact of a box of half extents ext moving by delta with bb, by casting the
// centre against bb grown by ext.
func boxContact(bb cube.BBox, start, delta, ext mgl64.Vec3) (contact, bool) {
	min, max := bb.Min().Sub(ext), bb.Max().Add(ext)

	inside := true
	for i := 0; i < 3; i++ {
		if start[i] <= min[i]+touchTolerance || start[i] >= max[i]-touchTolerance {
			inside = false
			break
		}
	}
	if inside {
		depth := math.Inf(1)
		var normal mgl64.Vec3
		for i := 0; i < 3; i++ {
			if d := start[i] - min[i]; d < depth {
				depth, normal = d, axisVec(i, -1)
			}
			if d := max[i] - start[i]; d < depth {
				depth, normal = d, axisVec(i, 1)
			}
		}
		return contact{
			penetrating: true,
			depth:       depth,
			normal:      normal,
			impact:      clampVec(start, bb.Min(), bb.Max()),
		}, true
	}

	tEnter, tExit := math.Inf(-1), math.Inf(1)
	axis := -1
	for i := 0; i < 3; i++ {
		if math.Abs(delta[i]) < 1e-12 {
			if start[i] <= min[i]+touchTolerance || start[i] >= max[i]-touchTolerance {
				return contact{}, false
			}
			continue
		}
		t1, t2 := (min[i]-start[i])/delta[i], (max[i]-start[i])/delta[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter, axis = t1, i
		}
		tExit = math.Min(tExit, t2)
	}
	if axis == -1 || tEnter >= tExit || tExit <= 0 || tEnter > 1 {
		return contact{}, false
	}
	if tEnter < 0 {
		// Already inside the slab of the entering axis: only a shape resting on the entering face counts.
		face := max[axis]
		if delta[axis] > 0 {
			face = min[axis]
		}
		if math.Abs(start[axis]-face) > touchTolerance {
			return contact{}, false
		}
	}
	tEnter = math.Max(tEnter, 0)

	sign := 1.0
	if delta[axis] > 0 {
		sign = -1
	}
	loc := start.Add(delta.Mul(tEnter))
	return contact{
		time:   tEnter,
		normal: axisVec(axis, sign),
		impact: clampVec(loc, bb.Min(), bb.Max()),
	}, true
}

// before orders contacts by time, preferring the deepest penetration at equal time.
func (ct contact) before(o contact) bool {
	if ct.time != o.time {
		return ct.time < o.time
	}
	if ct.penetrating != o.penetrating {
		return ct.penetrating
	}
	return ct.depth > o.depth
}

func (ct contact) record(start, end mgl64.Vec3) collision.HitRecord {
	return collision.HitRecord{
		Blocking:         true,
		StartPenetrating: ct.penetrating,
		TraceStart:       start,
		TraceEnd:         end,
		Location:         start.Add(end.Sub(start).Mul(ct.time)),
		ImpactPoint:      ct.impact,
		ImpactNormal:     ct.normal,
		Normal:           ct.normal,
		PenetrationDepth: ct.depth,
		Time:             ct.time,
		Component:        ct.collider,
	}
}

func axisVec(i int, sign float64) mgl64.Vec3 {
	var v mgl64.Vec3
	v[i] = sign
	return v
}

func clampVec(v, min, max mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(v[0], min[0], max[0]),
		mgl64.Clamp(v[1], min[1], max[1]),
		mgl64.Clamp(v[2], min[2], max[2]),
	}
}
