package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/game"
)

// Platform moves a box along a path of waypoints at a constant speed. Characters standing on the box
// are carried along through their attachment to it.
type Platform struct {
	world *World
	box   *Box

	path  []mgl64.Vec3
	speed float64
	loop  bool

	next, dir int
}

// NewPlatform animates b from its current centre through the waypoints. A looping platform returns to
// its start after the last waypoint, otherwise it travels the path back and forth.
func NewPlatform(w *World, b *Box, speed float64, loop bool, waypoints ...mgl64.Vec3) *Platform {
	return &Platform{
		world: w,
		box:   b,
		path:  append([]mgl64.Vec3{b.Location()}, waypoints...),
		speed: speed,
		loop:  loop,
		next:  1,
		dir:   1,
	}
}

// Box returns the animated box.
func (p *Platform) Box() *Box {
	return p.box
}

// Tick advances the platform along its path by dt seconds.
func (p *Platform) Tick(dt float64) {
	if len(p.path) < 2 || !(p.speed > 0) || !(dt > 0) {
		return
	}
	pos, remaining := p.box.Location(), p.speed*dt
	for range len(p.path) + 1 {
		delta := p.path[p.next].Sub(pos)
		dist := delta.Len()
		if dist > remaining {
			pos = pos.Add(delta.Mul(remaining / dist))
			break
		}
		pos, remaining = p.path[p.next], remaining-dist
		p.advance()
		if remaining < game.SmallNumber {
			break
		}
	}
	p.world.MoveBox(p.box, pos)
}

func (p *Platform) advance() {
	if p.loop {
		p.next = (p.next + 1) % len(p.path)
		return
	}
	if n := p.next + p.dir; n < 0 || n >= len(p.path) {
		p.dir = -p.dir
	}
	p.next += p.dir
}
