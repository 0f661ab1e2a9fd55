package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/game"
)

// ShapeKind is the variant of a collision shape.
type ShapeKind uint8

const (
	ShapeCapsule ShapeKind = iota
	ShapeSphere
	ShapeBox
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCapsule:
		return "capsule"
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	}
	return "unknown"
}

// Shape is a convex collision volume centred on its owner's location. Capsules are aligned with the local
// up axis and HalfHeight includes the hemispherical caps. Boxes use Extent as half-size per local axis.
type Shape struct {
	Kind       ShapeKind
	Radius     float64
	HalfHeight float64
	Extent     mgl64.Vec3
}

// Capsule returns an upright capsule shape. The half height is raised to the radius if it is smaller.
func Capsule(radius, halfHeight float64) Shape {
	return Shape{Kind: ShapeCapsule, Radius: radius, HalfHeight: math.Max(radius, halfHeight)}
}

// Sphere returns a sphere shape.
func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Box returns a box shape with the given half extents.
func Box(extent mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, Extent: extent}
}

// Inflate returns a copy of the shape grown by margin in every direction.
func (s Shape) Inflate(margin float64) Shape {
	switch s.Kind {
	case ShapeCapsule:
		return Capsule(s.Radius+margin, s.HalfHeight+margin)
	case ShapeSphere:
		return Sphere(s.Radius + margin)
	case ShapeBox:
		return Box(s.Extent.Add(mgl64.Vec3{margin, margin, margin}))
	}
	return s
}

// Support returns the offset from the shape's centre to its furthest point along dir. Ties on flat
// features resolve to the middle of the feature.
func (s Shape) Support(rotation mgl64.Quat, dir mgl64.Vec3) mgl64.Vec3 {
	dir = game.SafeNormal(dir)
	switch s.Kind {
	case ShapeCapsule:
		axis := game.Up(rotation)
		return axis.Mul(sign(axis.Dot(dir)) * s.segmentHalf()).Add(dir.Mul(s.Radius))
	case ShapeSphere:
		return dir.Mul(s.Radius)
	case ShapeBox:
		var out mgl64.Vec3
		for i, axis := range boxAxes(rotation) {
			out = out.Add(axis.Mul(sign(axis.Dot(dir)) * s.Extent[i]))
		}
		return out
	}
	return mgl64.Vec3{}
}

// Extents returns the half extents of the world-axis-aligned box enclosing the rotated shape.
func (s Shape) Extents(rotation mgl64.Quat) mgl64.Vec3 {
	switch s.Kind {
	case ShapeCapsule:
		axis := game.Up(rotation)
		seg := s.segmentHalf()
		return mgl64.Vec3{
			math.Abs(axis.X())*seg + s.Radius,
			math.Abs(axis.Y())*seg + s.Radius,
			math.Abs(axis.Z())*seg + s.Radius,
		}
	case ShapeSphere:
		return mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	case ShapeBox:
		var out mgl64.Vec3
		for i, axis := range boxAxes(rotation) {
			out = out.Add(mgl64.Vec3{math.Abs(axis.X()), math.Abs(axis.Y()), math.Abs(axis.Z())}.Mul(s.Extent[i]))
		}
		return out
	}
	return mgl64.Vec3{}
}

// LowestPoint returns the point of the shape furthest along -up when placed at location with rotation.
func (s Shape) LowestPoint(location mgl64.Vec3, rotation mgl64.Quat, up mgl64.Vec3) mgl64.Vec3 {
	return location.Add(s.Support(rotation, up.Mul(-1)))
}

// IsZero returns true if the shape has no volume.
func (s Shape) IsZero() bool {
	switch s.Kind {
	case ShapeCapsule, ShapeSphere:
		return s.Radius <= 0
	case ShapeBox:
		return s.Extent.X() <= 0 || s.Extent.Y() <= 0 || s.Extent.Z() <= 0
	}
	return true
}

func (s Shape) segmentHalf() float64 {
	return math.Max(0, s.HalfHeight-s.Radius)
}

func boxAxes(rotation mgl64.Quat) [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{game.Forward(rotation), game.Right(rotation), game.Up(rotation)}
}

func sign(f float64) float64 {
	switch {
	case f > 1e-9:
		return 1
	case f < -1e-9:
		return -1
	}
	return 0
}
