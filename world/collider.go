package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
)

// Collider is a piece of static or movable geometry in a World.
type Collider interface {
	collision.Component
	// Bounds returns the world-space bounding box of the collider, used for broadphase culling. Unbounded
	// colliders return false.
	Bounds() (cube.BBox, bool)
	// Responds returns true if the collider blocks queries on the given channel.
	Responds(channel collision.Channel) bool
}

// Box is an axis-aligned box collider. Its shape is stored relative to its origin so that it can be
// moved as a platform.
type Box struct {
	id       uuid.UUID
	local    cube.BBox
	origin   mgl64.Vec3
	channels uint32
}

// NewBox creates a box collider spanning min to max in world space.
func NewBox(min, max mgl64.Vec3) *Box {
	centre := min.Add(max).Mul(0.5)
	return &Box{
		id:       uuid.New(),
		local:    cube.Box(min[0], min[1], min[2], max[0], max[1], max[2]).Translate(centre.Mul(-1)),
		origin:   centre,
		channels: collision.ChannelAll,
	}
}

// ID ...
func (b *Box) ID() uuid.UUID {
	return b.id
}

// Location returns the centre of the box.
func (b *Box) Location() mgl64.Vec3 {
	return b.origin
}

// Rotation ...
func (b *Box) Rotation() mgl64.Quat {
	return mgl64.QuatIdent()
}

// BBox returns the world-space box.
func (b *Box) BBox() cube.BBox {
	return b.local.Translate(b.origin)
}

// Bounds ...
func (b *Box) Bounds() (cube.BBox, bool) {
	return b.BBox(), true
}

// Responds ...
func (b *Box) Responds(channel collision.Channel) bool {
	return b.channels&channel.Mask() != 0
}

// SetChannels replaces the response mask of the box.
func (b *Box) SetChannels(mask uint32) {
	b.channels = mask
}

// Plane is a solid half-space: everything below the plane through Point with the given Normal.
type Plane struct {
	id       uuid.UUID
	point    mgl64.Vec3
	normal   mgl64.Vec3
	channels uint32
}

// NewPlane creates a half-space collider. The normal is normalised.
func NewPlane(point, normal mgl64.Vec3) *Plane {
	return &Plane{id: uuid.New(), point: point, normal: game.SafeNormal(normal), channels: collision.ChannelAll}
}

// NewSlope creates a plane through point that rises along the horizontal direction dir at the given angle in degrees.
func NewSlope(point, dir mgl64.Vec3, angle float64) *Plane {
	dir = game.SafeNormal(game.Horizontal(dir))
	rot := mgl64.QuatRotate(mgl64.DegToRad(angle), dir.Cross(game.UpVector))
	return NewPlane(point, rot.Rotate(game.UpVector))
}

// ID ...
func (p *Plane) ID() uuid.UUID {
	return p.id
}

// Location returns a point on the plane.
func (p *Plane) Location() mgl64.Vec3 {
	return p.point
}

// Rotation ...
func (p *Plane) Rotation() mgl64.Quat {
	return mgl64.QuatIdent()
}

// Normal returns the unit normal of the plane.
func (p *Plane) Normal() mgl64.Vec3 {
	return p.normal
}

// Bounds ...
func (p *Plane) Bounds() (cube.BBox, bool) {
	return cube.BBox{}, false
}

// Responds ...
func (p *Plane) Responds(channel collision.Channel) bool {
	return p.channels&channel.Mask() != 0
}

// distance returns the signed distance of a point above the plane.
func (p *Plane) distance(pos mgl64.Vec3) float64 {
	return pos.Sub(p.point).Dot(p.normal)
}
