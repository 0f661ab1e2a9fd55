package movement

import "github.com/go-gl/mathgl/mgl64"

// Context is passed to handler methods whose outcome can be cancelled.
type Context struct {
	cancel bool
}

// Cancel cancels the action the handler was called for.
func (ctx *Context) Cancel() {
	ctx.cancel = true
}

// Cancelled returns true if the action has been cancelled.
func (ctx *Context) Cancelled() bool {
	return ctx.cancel
}

// Handler receives events fired by a Controller during its tick.
type Handler interface {
	// HandleLanded is called when a falling character lands on a walkable surface with the velocity it had
	// before landing. Cancelling keeps the horizontal velocity that would otherwise be removed on landing.
	HandleLanded(ctx *Context, velocity mgl64.Vec3)
	// HandleJump is called before a jump impulse of the given speed is applied. Cancelling prevents the jump.
	HandleJump(ctx *Context, speed float64)
	// HandleStepUp is called after the character stepped onto an obstacle of the given height.
	HandleStepUp(height float64)
}

// NopHandler implements Handler by doing nothing.
type NopHandler struct{}

func (NopHandler) HandleLanded(*Context, mgl64.Vec3) {}
func (NopHandler) HandleJump(*Context, float64)      {}
func (NopHandler) HandleStepUp(float64)              {}
