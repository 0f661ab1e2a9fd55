package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/kinemove/game"
	"github.com/stretchr/testify/assert"
)

func TestLowestPoint(t *testing.T) {
	loc := mgl64.Vec3{10, 20, 92}
	up := game.UpVector

	tests := []struct {
		name  string
		shape Shape
		rot   mgl64.Quat
		want  mgl64.Vec3
	}{
		{"capsule", Capsule(40, 92), mgl64.QuatIdent(), mgl64.Vec3{10, 20, 0}},
		{"capsule yawed", Capsule(40, 92), game.YawQuat(45), mgl64.Vec3{10, 20, 0}},
		{"capsule on side", Capsule(40, 92), game.Rotator{Pitch: 90}.Quat(), mgl64.Vec3{10, 20, 52}},
		{"sphere", Sphere(50), mgl64.QuatIdent(), mgl64.Vec3{10, 20, 42}},
		{"box", Box(mgl64.Vec3{30, 30, 50}), mgl64.QuatIdent(), mgl64.Vec3{10, 20, 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.shape.LowestPoint(loc, tt.rot, up)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tt.want[i], got[i], 1e-6)
			}
		})
	}
}

func TestInflate(t *testing.T) {
	c := Capsule(40, 92).Inflate(1)
	assert.Equal(t, 41.0, c.Radius)
	assert.Equal(t, 93.0, c.HalfHeight)

	b := Box(mgl64.Vec3{1, 2, 3}).Inflate(0.5)
	assert.Equal(t, mgl64.Vec3{1.5, 2.5, 3.5}, b.Extent)
}

func TestExtents(t *testing.T) {
	e := Capsule(40, 92).Extents(mgl64.QuatIdent())
	assert.InDelta(t, 40, e.X(), 1e-9)
	assert.InDelta(t, 92, e.Z(), 1e-9)

	e = Box(mgl64.Vec3{10, 10, 10}).Extents(game.YawQuat(45))
	assert.InDelta(t, 14.142, e.X(), 1e-3)
	assert.InDelta(t, 10, e.Z(), 1e-9)
}

func TestQueryParamsIgnores(t *testing.T) {
	id := uuid.New()
	var p QueryParams
	assert.False(t, p.Ignores(id))
	p.Ignore = append(p.Ignore, id)
	assert.True(t, p.Ignores(id))
}
