package movement

import (
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/kinemove/assert"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/game"
	"github.com/oomph-ac/kinemove/oerror"
	"github.com/sirupsen/logrus"
)

// Options holds the collaborators of a Controller. Backend and Target are required.
type Options struct {
	Backend collision.Backend
	Target  TransformTarget

	// Gravity defaults to game.DefaultGravityZ when nil.
	Gravity GravityProvider
	// RootMotion is optional. Without it the controller always integrates input.
	RootMotion RootMotionSource
	// Handler defaults to NopHandler.
	Handler Handler

	// Log defaults to a logger discarding all output.
	Log   *logrus.Logger
	Debug DebugMode

	// Channel is the collision channel used for every query.
	Channel collision.Channel
	// Ignore lists extra colliders that never block the character. The target is always ignored.
	Ignore []uuid.UUID
}

// Controller is a kinematic character movement solver. Each Tick integrates velocity from input, root
// motion and gravity and resolves the resulting displacement against the collision backend. A Controller
// is not safe for concurrent use; all calls are expected from the simulation loop.
type Controller struct {
	conf Config

	backend    collision.Backend
	target     TransformTarget
	gravity    GravityProvider
	rootMotion RootMotionSource
	handler    Handler

	log *logrus.Logger
	dbg *Debugger

	channel collision.Channel
	params  collision.QueryParams

	state State
	modes map[Mode]ModeBehaviour

	// scratch is reused by every multi sweep and cleared before each use.
	scratch []collision.HitRecord
}

// NewController validates conf and creates a controller in walking mode.
func NewController(conf Config, opts Options) (*Controller, error) {
	assert.IsTrue(opts.Backend != nil, "movement controller requires a collision backend")
	assert.IsTrue(opts.Target != nil, "movement controller requires a transform target")

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if opts.Handler == nil {
		opts.Handler = NopHandler{}
	}
	if opts.Log == nil {
		opts.Log = logrus.New()
		opts.Log.SetOutput(io.Discard)
	}

	c := &Controller{
		conf:       conf,
		backend:    opts.Backend,
		target:     opts.Target,
		gravity:    opts.Gravity,
		rootMotion: opts.RootMotion,
		handler:    opts.Handler,
		log:        opts.Log,
		dbg:        NewDebugger(opts.Log, opts.Debug),
		channel:    opts.Channel,
		params: collision.QueryParams{
			Ignore: append([]uuid.UUID{opts.Target.ID()}, opts.Ignore...),
		},
		modes:   make(map[Mode]ModeBehaviour),
		scratch: make([]collision.HitRecord, 0, 8),
	}
	c.RegisterMode(walking{})
	c.state.Mode = ModeWalking
	c.state.InputDirection = game.SafeNormal(game.Horizontal(opts.Target.Forward()))
	c.state.RootMotion.Rotation = mgl64.QuatIdent()
	return c, nil
}

// RegisterMode adds or replaces the behaviour of a movement mode.
func (c *Controller) RegisterMode(b ModeBehaviour) {
	c.modes[b.Mode()] = b
}

// SetMode switches the controller to a registered mode.
func (c *Controller) SetMode(m Mode) error {
	if _, ok := c.modes[m]; !ok {
		return oerror.New("movement mode %v is not registered", m)
	}
	c.state.Mode = m
	return nil
}

// Config returns the tunables of the controller.
func (c *Controller) Config() Config {
	return c.conf
}

// Target returns the transform target moved by the controller.
func (c *Controller) Target() TransformTarget {
	return c.target
}

// Debugger returns the trace debugger of the controller.
func (c *Controller) Debugger() *Debugger {
	return c.dbg
}

// Tick advances the controller by dt seconds. A dt that is not a positive finite number only clears the
// movement input.
func (c *Controller) Tick(dt float64) {
	defer c.clearMovementInput()
	if !(dt > 0) || math.IsInf(dt, 0) {
		c.log.Warnf("movement: skipping tick with invalid delta %v", dt)
		return
	}

	c.consumeRootMotion()
	c.updateRotation(dt)

	shape, rot := c.target.Shape(), c.target.Rotation()
	c.moveOutOfCollision(c.target.Location(), rot, shape)

	mode := c.behaviour()
	if rider, ok := mode.(PlatformRider); ok {
		rider.UpdateAttachment(c, shape, c.target.Location(), rot)
	}
	mode.IntegrateHorizontal(c, dt, shape, c.target.Location(), rot)
	mode.IntegrateVertical(c, dt, shape, c.target.Location(), rot)
}

// AddMovementInput requests movement along dir for the next tick. The vertical component of dir is
// discarded and scale is clamped to [0, 1]. A direction without a horizontal component is ignored.
func (c *Controller) AddMovementInput(dir mgl64.Vec3, scale float64) {
	dir = game.SafeNormal(game.Horizontal(dir))
	if dir.LenSqr() == 0 || math.IsNaN(scale) {
		return
	}
	c.state.InputDirection = dir
	c.state.InputScale = game.ClampFloat(scale, 0, 1)
}

// Jump applies the jump impulse if the controller is walking on ground. It returns true if it jumped.
func (c *Controller) Jump() bool {
	if c.state.Mode != ModeWalking || !c.IsGrounded() {
		return false
	}
	speed := jumpSpeed(c.gravityZ(), c.conf.JumpHeight)
	ctx := &Context{}
	c.handler.HandleJump(ctx, speed)
	if ctx.Cancelled() {
		return false
	}
	c.behaviour().ApplyVerticalForce(c, c.conf.JumpHeight)
	return true
}

// AddVerticalForce applies a vertical impulse reaching the given apex height, regardless of ground.
func (c *Controller) AddVerticalForce(height float64) {
	c.behaviour().ApplyVerticalForce(c, height)
}

// IsGrounded reports whether the target is standing on walkable ground in the current mode.
func (c *Controller) IsGrounded() bool {
	return c.behaviour().GroundCheck(c, c.target.Shape(), c.target.Location(), c.target.Rotation())
}

// Velocity returns the combined velocity of the character.
func (c *Controller) Velocity() mgl64.Vec3 {
	return c.state.Velocity()
}

// Location returns the world location of the target.
func (c *Controller) Location() mgl64.Vec3 {
	return c.target.Location()
}

// Rotation returns the world rotation of the target.
func (c *Controller) Rotation() mgl64.Quat {
	return c.target.Rotation()
}

// State returns a copy of the movement state.
func (c *Controller) State() State {
	return c.state
}

// SetHorizontalVelocity replaces the horizontal velocity. The vertical component of v is discarded.
func (c *Controller) SetHorizontalVelocity(v mgl64.Vec3) {
	c.state.HorizontalVelocity = game.Horizontal(v)
}

// SetVerticalVelocity replaces the vertical velocity. The horizontal components of v are discarded.
func (c *Controller) SetVerticalVelocity(v mgl64.Vec3) {
	c.state.VerticalVelocity = game.Vertical(v)
}

func (c *Controller) behaviour() ModeBehaviour {
	b, ok := c.modes[c.state.Mode]
	assert.IsTrue(ok, "movement mode %v has no behaviour", c.state.Mode)
	return b
}

func (c *Controller) gravityZ() float64 {
	if c.gravity == nil {
		return game.DefaultGravityZ
	}
	return c.gravity.GravityZ()
}

func (c *Controller) consumeRootMotion() {
	c.state.RootMotion = RootMotion{Rotation: mgl64.QuatIdent()}
	if c.rootMotion == nil {
		return
	}
	has, translation, rotation := c.rootMotion.Consume()
	if !has {
		return
	}
	c.state.RootMotion = RootMotion{HasMotion: true, Translation: translation, Rotation: rotation}
}

func (c *Controller) clearMovementInput() {
	c.state.InputScale = 0
}

// sweepSingle and sweepMulti run queries with the controller's channel and ignore list.
func (c *Controller) sweepSingle(start, end mgl64.Vec3, rot mgl64.Quat, shape collision.Shape) (bool, collision.HitRecord) {
	return c.backend.SweepSingle(start, end, rot, shape, c.channel, c.params)
}

func (c *Controller) sweepMulti(start, end mgl64.Vec3, rot mgl64.Quat, shape collision.Shape) []collision.HitRecord {
	c.scratch = c.backend.SweepMulti(c.scratch[:0], start, end, rot, shape, c.channel, c.params)
	return c.scratch
}

func (c *Controller) lineTrace(start, end mgl64.Vec3) (bool, collision.HitRecord) {
	return c.backend.LineTrace(start, end, c.channel, c.params)
}

func jumpSpeed(gravityZ, height float64) float64 {
	v := -2 * gravityZ * height
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
