package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/game"
)

// Subject is anything the camera can follow.
type Subject interface {
	Location() mgl64.Vec3
}

// Follow is a third person camera that orbits its subject at the control rotation. The distance behind
// the subject grows while looking down and shrinks while looking up.
type Follow struct {
	// BackOffset is the distance behind the subject at level pitch.
	BackOffset float64
	// LookUpOffset is added to BackOffset, scaled by how far the camera looks up.
	LookUpOffset float64
	// LookDownOffset is added to BackOffset, scaled by how far the camera looks down.
	LookDownOffset float64

	pivot    mgl64.Vec3
	rotation game.Rotator
	offset   float64
}

// NewFollow returns a follow camera with the default offsets.
func NewFollow() *Follow {
	return &Follow{
		BackOffset:     300,
		LookUpOffset:   -250,
		LookDownOffset: 100,
	}
}

// Update moves the camera behind subject at the control rotation. It must run after the subject has
// moved for the tick, otherwise the camera lags one tick behind.
func (f *Follow) Update(subject Subject, control game.Rotator) {
	f.pivot = subject.Location()
	f.rotation = control

	forward := game.Forward(control.Quat())
	down := -forward.Dot(game.UpVector)
	scale := f.LookUpOffset
	if down > 0 {
		scale = f.LookDownOffset
	}
	f.offset = f.BackOffset + scale*math.Abs(down)
}

// Offset returns the current distance between the camera and its subject.
func (f *Follow) Offset() float64 {
	return f.offset
}

// Location returns the world location of the camera.
func (f *Follow) Location() mgl64.Vec3 {
	return f.pivot.Add(f.rotation.Quat().Rotate(mgl64.Vec3{-f.offset, 0, 0}))
}

// Rotation returns the rotation of the camera.
func (f *Follow) Rotation() game.Rotator {
	return f.rotation
}

// Pivot returns the subject location the camera orbits.
func (f *Follow) Pivot() mgl64.Vec3 {
	return f.pivot
}
