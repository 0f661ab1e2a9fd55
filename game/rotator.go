package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotator is an orientation expressed as pitch (nose up), yaw (turn right) and roll, in degrees.
type Rotator struct {
	Pitch, Yaw, Roll float64
}

// Quat converts the rotator into a quaternion, applying roll, then pitch, then yaw.
func (r Rotator) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(r.Yaw), UpVector)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(-r.Pitch), RightVector)
	roll := mgl64.QuatRotate(mgl64.DegToRad(r.Roll), ForwardVector)
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

// Add returns the component-wise sum of two rotators.
func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch + o.Pitch, Yaw: r.Yaw + o.Yaw, Roll: r.Roll + o.Roll}
}

// RotatorFromQuat extracts pitch, yaw and roll from a quaternion.
func RotatorFromQuat(q mgl64.Quat) Rotator {
	q = q.Normalize()
	w, x, y, z := q.W, q.V.X(), q.V.Y(), q.V.Z()

	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	pitch := math.Asin(ClampFloat(2*(w*y-z*x), -1, 1))
	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return Rotator{
		Pitch: -mgl64.RadToDeg(pitch),
		Yaw:   mgl64.RadToDeg(yaw),
		Roll:  mgl64.RadToDeg(roll),
	}
}

// OrientationOf returns the rotator facing along v with zero roll. A zero vector yields the zero rotator.
func OrientationOf(v mgl64.Vec3) Rotator {
	if v.LenSqr() < SmallNumber {
		return Rotator{}
	}
	return Rotator{
		Pitch: mgl64.RadToDeg(math.Atan2(v.Z(), math.Hypot(v.X(), v.Y()))),
		Yaw:   mgl64.RadToDeg(math.Atan2(v.Y(), v.X())),
	}
}

// YawQuat returns a rotation of deg degrees about world up.
func YawQuat(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), UpVector)
}

// Forward returns the forward axis of a rotation.
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(ForwardVector)
}

// Right returns the right axis of a rotation.
func Right(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(RightVector)
}

// Up returns the up axis of a rotation.
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(UpVector)
}
