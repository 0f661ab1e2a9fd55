package world

import (
	"io"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// World is an in-memory collision world made of boxes and half-space planes. It implements
// collision.Backend. Colliders are iterated in insertion order so queries are deterministic.
type World struct {
	colliders *orderedmap.OrderedMap[uuid.UUID, Collider]
	log       *logrus.Logger

	deadlock.RWMutex
}

// New creates an empty world. A nil logger discards output.
func New(log *logrus.Logger) *World {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &World{
		colliders: orderedmap.NewOrderedMap[uuid.UUID, Collider](),
		log:       log,
	}
}

// Add inserts colliders into the world.
func (w *World) Add(colliders ...Collider) {
	w.Lock()
	defer w.Unlock()

	for _, c := range colliders {
		w.colliders.Set(c.ID(), c)
		w.log.Debugf("world: added collider %s", c.ID())
	}
}

// AddBox creates a box from min to max and adds it to the world.
func (w *World) AddBox(min, max mgl64.Vec3) *Box {
	b := NewBox(min, max)
	w.Add(b)
	return b
}

// AddPlane creates a half-space and adds it to the world.
func (w *World) AddPlane(point, normal mgl64.Vec3) *Plane {
	p := NewPlane(point, normal)
	w.Add(p)
	return p
}

// Remove deletes the collider with the given ID, returning true if it existed.
func (w *World) Remove(id uuid.UUID) bool {
	w.Lock()
	defer w.Unlock()
	return w.colliders.Delete(id)
}

// Collider returns the collider with the given ID.
func (w *World) Collider(id uuid.UUID) (Collider, bool) {
	w.RLock()
	defer w.RUnlock()
	return w.colliders.Get(id)
}

// Len returns the number of colliders in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return w.colliders.Len()
}

// MoveBox moves a box so that its centre is at pos. It is used to animate platforms.
func (w *World) MoveBox(b *Box, pos mgl64.Vec3) {
	w.Lock()
	defer w.Unlock()
	b.origin = pos
}

// nearby calls f for every collider whose bounds intersect bb. The read lock must be held.
func (w *World) nearby(bb cube.BBox, f func(c Collider)) {
	for el := w.colliders.Front(); el != nil; el = el.Next() {
		if bounds, ok := el.Value.Bounds(); ok && !bounds.IntersectsWith(bb) {
			continue
		}
		f(el.Value)
	}
}
