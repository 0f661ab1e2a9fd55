package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestPlatformPingPong(t *testing.T) {
	w := New(nil)
	b := w.AddBox(mgl64.Vec3{-50, -50, 0}, mgl64.Vec3{50, 50, 20})
	p := NewPlatform(w, b, 100, false, mgl64.Vec3{100, 0, 10})

	p.Tick(0.5)
	assert.InDelta(t, 50, b.Location().X(), 1e-9)
	assert.InDelta(t, 100, b.BBox().Max().X(), 1e-9)

	// Overshooting the end turns the platform around.
	p.Tick(0.75)
	assert.InDelta(t, 75, b.Location().X(), 1e-9)
	p.Tick(0.75)
	assert.InDelta(t, 0, b.Location().X(), 1e-9)
	p.Tick(0.25)
	assert.InDelta(t, 25, b.Location().X(), 1e-9)
	assert.Equal(t, p.Box(), b)
}

func TestPlatformLoop(t *testing.T) {
	w := New(nil)
	b := w.AddBox(mgl64.Vec3{-10, -10, -10}, mgl64.Vec3{10, 10, 10})
	p := NewPlatform(w, b, 100, true, mgl64.Vec3{100, 0, 0}, mgl64.Vec3{100, 100, 0})

	p.Tick(2.5)
	loc := b.Location()
	assert.InDelta(t, 100-50/1.4142135623730951, loc.X(), 1e-9)
	assert.InDelta(t, 100-50/1.4142135623730951, loc.Y(), 1e-9)
}

func TestPlatformStatic(t *testing.T) {
	w := New(nil)
	b := w.AddBox(mgl64.Vec3{}, mgl64.Vec3{10, 10, 10})
	NewPlatform(w, b, 100, false).Tick(1)
	NewPlatform(w, b, 0, false, mgl64.Vec3{100, 0, 0}).Tick(1)
	assert.Equal(t, mgl64.Vec3{5, 5, 5}, b.Location())
}
