package entity

import (
	"github.com/go-gl/mathgl/mgl64"
)

// HistoricalPosition is a transform of an entity that was recorded at a certain tick.
type HistoricalPosition struct {
	Location     mgl64.Vec3
	PrevLocation mgl64.Vec3
	Rotation     mgl64.Quat
	Velocity     mgl64.Vec3

	Grounded bool
	Tick     int64
}

// Rewind looks back in the position history of the entity, and returns the transform closest to the given tick.
func (e *Entity) Rewind(tick int64) (HistoricalPosition, bool) {
	if hp, ok := e.history.Get(tick); ok {
		return hp, true
	}
	return e.history.GetClosest(tick)
}
