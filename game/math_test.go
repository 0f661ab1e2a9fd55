package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeNormal(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, SafeNormal(mgl64.Vec3{1e-6, 0, 0}))
	n := SafeNormal(mgl64.Vec3{3, 4, 0})
	assert.InDelta(t, 0.6, n.X(), 1e-9)
	assert.InDelta(t, 0.8, n.Y(), 1e-9)
}

func TestPullBack(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, PullBack(mgl64.Vec3{0.05, 0, 0}, 0.1))
	v := PullBack(mgl64.Vec3{10, 0, 0}, 0.1)
	assert.InDelta(t, 9.9, v.X(), 1e-9)
}

func TestMatchVectorToSlope(t *testing.T) {
	// 30 degree ramp rising towards +X.
	n := mgl64.Vec3{-math.Sin(math.Pi / 6), 0, math.Cos(math.Pi / 6)}
	v := MatchVectorToSlope(UpVector, mgl64.Vec3{100, 0, 0}, n)

	assert.InDelta(t, 100, v.Len(), 1e-9)
	assert.InDelta(t, 0, v.Dot(n), 1e-9)
	assert.Greater(t, v.Z(), 0.0)
	assert.Greater(t, v.X(), 0.0)
}

func TestPlaneProject(t *testing.T) {
	v := PlaneProject(mgl64.Vec3{1, 1, 0}, mgl64.Vec3{-1, 0, 0})
	assert.InDelta(t, 0, v.X(), 1e-12)
	assert.InDelta(t, 1, v.Y(), 1e-12)
}

func TestOrientDelta(t *testing.T) {
	tests := []struct {
		current, target, dt, rate, want float64
	}{
		{0, 90, 1, 360, 90},
		{0, 90, 0.1, 360, 36},
		{170, -170, 1, 360, 20},
		{-170, 170, 1, 360, -20},
		{0, 180, 1, 360, 180},
		{10, 10, 1, 360, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, OrientDelta(tt.current, tt.target, tt.dt, tt.rate), 1e-9,
			"OrientDelta(%v, %v)", tt.current, tt.target)
	}
}

func TestRotatorRoundTrip(t *testing.T) {
	for _, r := range []Rotator{{}, {Yaw: 90}, {Pitch: 30, Yaw: -45}, {Pitch: -10, Yaw: 170, Roll: 20}} {
		got := RotatorFromQuat(r.Quat())
		require.InDelta(t, r.Pitch, got.Pitch, 1e-6)
		require.InDelta(t, r.Yaw, got.Yaw, 1e-6)
		require.InDelta(t, r.Roll, got.Roll, 1e-6)
	}
}

func TestRotatorAxes(t *testing.T) {
	q := Rotator{Yaw: 90}.Quat()
	f := Forward(q)
	assert.InDelta(t, 0, f.X(), 1e-9)
	assert.InDelta(t, 1, f.Y(), 1e-9)

	q = Rotator{Pitch: 90}.Quat()
	assert.InDelta(t, 1, Forward(q).Z(), 1e-9)
}

func TestOrientationOf(t *testing.T) {
	r := OrientationOf(mgl64.Vec3{0, -5, 0})
	assert.InDelta(t, -90, r.Yaw, 1e-9)
	assert.Equal(t, Rotator{}, OrientationOf(mgl64.Vec3{}))
}

func TestStatistics(t *testing.T) {
	data := []float64{4, 1, 3, 2}
	assert.Equal(t, 2.5, Mean(data))
	assert.Equal(t, 2.5, Median(data))
	assert.Equal(t, []float64{4, 1, 3, 2}, data)
	assert.Equal(t, 4.0, Max(data))
	assert.InDelta(t, 1.118, StandardDeviation(data), 1e-3)
}
