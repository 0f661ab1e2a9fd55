package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// NearlyZero returns true if every component of the vector is within tolerance of zero.
func NearlyZero(v mgl64.Vec3, tolerance float64) bool {
	return math.Abs(v.X()) <= tolerance && math.Abs(v.Y()) <= tolerance && math.Abs(v.Z()) <= tolerance
}

// SafeNormal returns the normalised vector, or the zero vector if it is too short to normalise.
func SafeNormal(v mgl64.Vec3) mgl64.Vec3 {
	lenSqr := v.LenSqr()
	if lenSqr < SmallNumber {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / math.Sqrt(lenSqr))
}

// ClampLength returns the vector with its length limited to max.
func ClampLength(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if max < SmallNumber {
		return mgl64.Vec3{}
	}
	lenSqr := v.LenSqr()
	if lenSqr > max*max {
		return v.Mul(max / math.Sqrt(lenSqr))
	}
	return v
}

// Horizontal strips the vertical component of a vector.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), v.Y(), 0}
}

// Vertical strips the horizontal components of a vector.
func Vertical(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, v.Z()}
}

// Vec3HzDist returns the horizontal distance between two points.
func Vec3HzDist(a, b mgl64.Vec3) float64 {
	return Horizontal(a.Sub(b)).Len()
}

// PlaneProject projects v onto the plane with the given unit normal.
func PlaneProject(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal)))
}

// MatchVectorToSlope rotates v so it lies in the plane of normal while keeping its heading and length.
func MatchVectorToSlope(up, v, normal mgl64.Vec3) mgl64.Vec3 {
	right := SafeNormal(up.Cross(SafeNormal(v)))
	return SafeNormal(right.Cross(normal)).Mul(v.Len())
}

// VectorAngleDegrees returns the angle between two unit vectors in degrees.
func VectorAngleDegrees(a, b mgl64.Vec3) float64 {
	return mgl64.RadToDeg(math.Acos(ClampFloat(a.Dot(b), -1, 1)))
}

// NumericalDistance is the absolute difference between two scalars.
func NumericalDistance(a, b float64) float64 {
	return math.Abs(a - b)
}

// PullBack shortens movement by epsilon, returning zero if the movement is shorter than epsilon.
func PullBack(movement mgl64.Vec3, epsilon float64) mgl64.Vec3 {
	dist := movement.Len()
	if dist <= epsilon {
		return mgl64.Vec3{}
	}
	return movement.Mul((dist - epsilon) / dist)
}

// WrapAngle wraps an angle in degrees into (-180, 180].
func WrapAngle(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg <= 0 {
		deg += 360
	}
	return deg - 180
}

// OrientDelta returns the step to take from current towards target this tick, following the shortest
// path and limited to rate*dt degrees.
func OrientDelta(current, target, dt, rate float64) float64 {
	step := math.Abs(dt * rate)
	return ClampFloat(WrapAngle(target-current), -step, step)
}

// Finite returns true if no component of the vector is NaN or infinite.
func Finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
