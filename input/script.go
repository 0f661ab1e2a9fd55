package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/oerror"
)

// Entry is one step of a Script. It holds its input for Ticks consecutive ticks starting at Tick.
type Entry struct {
	Tick  int64 `yaml:"tick"`
	Ticks int64 `yaml:"ticks"`

	// Move is the move axis deflection, X right and Y forward.
	Move mgl64.Vec2 `yaml:"move"`
	// Look is the analog look axis deflection.
	Look mgl64.Vec2 `yaml:"look"`
	// Jump requests a jump on the first tick of the entry.
	Jump bool `yaml:"jump"`
	// VerticalForce applies a vertical impulse of the given apex height on the first tick of the entry.
	VerticalForce float64 `yaml:"vertical_force"`
}

func (e Entry) active(tick int64) bool {
	return tick >= e.Tick && tick < e.Tick+max(e.Ticks, 1)
}

// Script is a list of timed input entries. Entries may overlap; their move deflections then add up.
type Script []Entry

// Validate returns an error describing the first malformed entry.
func (s Script) Validate() error {
	for i, e := range s {
		if e.Tick < 0 || e.Ticks < 0 {
			return oerror.New("input script entry %d: tick and ticks must not be negative", i)
		}
		if e.Move.Len() > 1+1e-9 {
			return oerror.New("input script entry %d: move deflection %v is longer than 1", i, e.Move)
		}
		if e.VerticalForce < 0 {
			return oerror.New("input script entry %d: vertical force must not be negative", i)
		}
	}
	return nil
}

// Apply drives m through stick with every entry active on tick.
func (s Script) Apply(tick int64, dt float64, stick *Stick, m Mover) {
	var move, look mgl64.Vec2
	for _, e := range s {
		if !e.active(tick) {
			continue
		}
		move, look = move.Add(e.Move), look.Add(e.Look)
		if tick != e.Tick {
			continue
		}
		if e.Jump {
			m.Jump()
		}
		if e.VerticalForce > 0 {
			m.AddVerticalForce(e.VerticalForce)
		}
	}
	if look.LenSqr() > 0 {
		stick.Look(look, dt)
	}
	stick.Move(m, move)
}

// Len returns the number of ticks until the last entry ends.
func (s Script) Len() int64 {
	var n int64
	for _, e := range s {
		n = max(n, e.Tick+max(e.Ticks, 1))
	}
	return n
}
