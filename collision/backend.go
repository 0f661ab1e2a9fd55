package collision

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Channel selects which colliders respond to a query.
type Channel uint8

const (
	// ChannelPawn is used by character movement queries.
	ChannelPawn Channel = iota
	// ChannelVisibility is used by line traces that only care about visible geometry.
	ChannelVisibility
	// ChannelCamera is used by camera probes.
	ChannelCamera
)

// Mask returns the bit of the channel in a collider response mask.
func (c Channel) Mask() uint32 {
	return 1 << c
}

// ChannelAll is a response mask matching every channel.
const ChannelAll uint32 = 1<<32 - 1

// QueryParams filters the colliders a query may hit.
type QueryParams struct {
	// Ignore lists colliders that never block the query, such as the querying character itself.
	Ignore []uuid.UUID
}

// Ignores returns true if the collider with the given ID is excluded from the query.
func (p QueryParams) Ignores(id uuid.UUID) bool {
	for _, i := range p.Ignore {
		if i == id {
			return true
		}
	}
	return false
}

// Backend performs shape sweeps and ray casts against world geometry.
type Backend interface {
	// SweepSingle sweeps shape from start to end and returns the first blocking hit. A shape overlapping
	// geometry at start yields a start-penetrating hit with Time 0.
	SweepSingle(start, end mgl64.Vec3, rotation mgl64.Quat, shape Shape, channel Channel, params QueryParams) (bool, HitRecord)
	// SweepMulti appends the hits of a sweep to dst and returns it. Start-penetrating hits come first and,
	// if there are none, the first blocking hit is last.
	SweepMulti(dst []HitRecord, start, end mgl64.Vec3, rotation mgl64.Quat, shape Shape, channel Channel, params QueryParams) []HitRecord
	// LineTrace casts a ray from start to end and returns the first blocking hit.
	LineTrace(start, end mgl64.Vec3, channel Channel, params QueryParams) (bool, HitRecord)
}
