package entity

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
)

// DefaultHistorySize is the number of ticks of transform history kept by a new entity.
const DefaultHistorySize = 128

// Entity is a character's collision volume in the world. While attached to a parent component its
// transform is stored relative to the parent, so it follows the parent when the parent moves.
type Entity struct {
	// mu protects all the following fields.
	mu sync.Mutex
	id uuid.UUID
	// shape is the collision shape of the entity.
	shape collision.Shape
	// location is the world location, or the offset from the parent while attached.
	location mgl64.Vec3
	// rotation is the world rotation, or the rotation relative to the parent while attached.
	rotation mgl64.Quat
	// parent is the component the entity is attached to, if any.
	parent collision.Component

	history *RingBuffer
}

// New creates an entity with the given shape at a world transform.
func New(shape collision.Shape, location mgl64.Vec3, rotation game.Rotator) *Entity {
	return &Entity{
		id:       uuid.New(),
		shape:    shape,
		location: location,
		rotation: rotation.Quat(),
		history:  NewRingBuffer(DefaultHistorySize),
	}
}

// ID ...
func (e *Entity) ID() uuid.UUID {
	return e.id
}

// Shape returns the collision shape of the entity.
func (e *Entity) Shape() collision.Shape {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shape
}

// Location returns the world location of the entity.
func (e *Entity) Location() mgl64.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.worldLocation()
}

// SetLocation moves the entity to a world location.
func (e *Entity) SetLocation(pos mgl64.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.parent == nil {
		e.location = pos
		return
	}
	e.location = e.parent.Rotation().Inverse().Rotate(pos.Sub(e.parent.Location()))
}

// Rotation returns the world rotation of the entity.
func (e *Entity) Rotation() mgl64.Quat {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.worldRotation()
}

// SetRotation sets the world rotation of the entity.
func (e *Entity) SetRotation(rot mgl64.Quat) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rot = rot.Normalize()
	if e.parent == nil {
		e.rotation = rot
		return
	}
	e.rotation = e.parent.Rotation().Inverse().Mul(rot)
}

// Forward ...
func (e *Entity) Forward() mgl64.Vec3 {
	return game.Forward(e.Rotation())
}

// Right ...
func (e *Entity) Right() mgl64.Vec3 {
	return game.Right(e.Rotation())
}

// Up ...
func (e *Entity) Up() mgl64.Vec3 {
	return game.Up(e.Rotation())
}

// AttachTo attaches the entity to c, keeping its current world transform. Attaching to the current parent
// is a no-op.
func (e *Entity) AttachTo(c collision.Component) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c == nil || (e.parent != nil && e.parent.ID() == c.ID()) {
		return
	}
	loc, rot := e.worldLocation(), e.worldRotation()
	e.parent = c

	inv := c.Rotation().Inverse()
	e.location = inv.Rotate(loc.Sub(c.Location()))
	e.rotation = inv.Mul(rot)
}

// Detach removes the entity from its parent, keeping its current world transform.
func (e *Entity) Detach() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.parent == nil {
		return
	}
	e.location, e.rotation = e.worldLocation(), e.worldRotation()
	e.parent = nil
}

// Parent returns the component the entity is attached to, or nil.
func (e *Entity) Parent() collision.Component {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.parent
}

// Record stores the current transform in the history under the given tick.
func (e *Entity) Record(tick int64, velocity mgl64.Vec3, grounded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	hp := HistoricalPosition{
		Location: e.worldLocation(),
		Rotation: e.worldRotation(),
		Velocity: velocity,
		Grounded: grounded,
		Tick:     tick,
	}
	if last, ok := e.history.Latest(); ok {
		hp.PrevLocation = last.Location
	} else {
		hp.PrevLocation = hp.Location
	}
	e.history.Add(hp)
}

// History returns the transform history of the entity.
func (e *Entity) History() *RingBuffer {
	return e.history
}

func (e *Entity) worldLocation() mgl64.Vec3 {
	if e.parent == nil {
		return e.location
	}
	return e.parent.Location().Add(e.parent.Rotation().Rotate(e.location))
}

func (e *Entity) worldRotation() mgl64.Quat {
	if e.parent == nil {
		return e.rotation
	}
	return e.parent.Rotation().Mul(e.rotation).Normalize()
}
