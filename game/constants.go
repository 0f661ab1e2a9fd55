package game

import "github.com/go-gl/mathgl/mgl64"

const (
	// KindaSmallNumber is the tolerance used for "effectively zero" displacements and error sums.
	KindaSmallNumber = 1e-4
	// SmallNumber guards normalisation of near-zero vectors.
	SmallNumber = 1e-8

	// DefaultGravityZ is the world gravity used when no gravity provider is present, in cm/s².
	DefaultGravityZ = -980.0
)

var (
	UpVector      = mgl64.Vec3{0, 0, 1}
	DownVector    = mgl64.Vec3{0, 0, -1}
	ForwardVector = mgl64.Vec3{1, 0, 0}
	RightVector   = mgl64.Vec3{0, 1, 0}
)
