package collision

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Component is a collider that can be hit by a query and, if it moves, ridden by a character.
type Component interface {
	// ID returns the unique identity of the collider.
	ID() uuid.UUID
	// Location returns the world location of the collider's origin.
	Location() mgl64.Vec3
	// Rotation returns the world rotation of the collider.
	Rotation() mgl64.Quat
}

// HitRecord is the result of a sweep or trace.
type HitRecord struct {
	// Blocking is true if the query was stopped by a collider.
	Blocking bool
	// StartPenetrating is true if the shape already overlapped the collider at the start of the query.
	StartPenetrating bool

	TraceStart mgl64.Vec3
	TraceEnd   mgl64.Vec3
	// Location is where the shape's centre (or the ray) came to rest.
	Location mgl64.Vec3
	// ImpactPoint is the contact point on the surface that was hit.
	ImpactPoint mgl64.Vec3
	// ImpactNormal is the true normal of the surface that was hit.
	ImpactNormal mgl64.Vec3
	// Normal is the normal of the sweep at the contact, which may differ from ImpactNormal for rounded shapes.
	Normal mgl64.Vec3

	PenetrationDepth float64
	// Time is the fraction of the query travelled before the hit, in [0, 1].
	Time float64

	// Component is the collider that was hit, or nil.
	Component Component
}

// Reset clears the record to its empty, non-blocking state.
func (h *HitRecord) Reset() {
	*h = HitRecord{Time: 1}
}

// Miss returns the record of a query from start to end that hit nothing.
func Miss(start, end mgl64.Vec3) HitRecord {
	return HitRecord{TraceStart: start, TraceEnd: end, Location: end, Time: 1}
}
