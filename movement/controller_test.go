package movement

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinemove/collision"
	"github.com/oomph-ac/kinemove/entity"
	"github.com/oomph-ac/kinemove/game"
	"github.com/oomph-ac/kinemove/world"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

// restZ is the height a capsule of half height 92 settles at on a floor at z=0: the skin margin plus
// the depenetration distance above touching.
const restZ = 92.15

var capsule = collision.Capsule(40, 92)

type recordingHandler struct {
	landed []mgl64.Vec3
	jumps  []float64
	steps  []float64

	cancelJump, cancelLanded bool
}

func (h *recordingHandler) HandleLanded(ctx *Context, velocity mgl64.Vec3) {
	h.landed = append(h.landed, velocity)
	if h.cancelLanded {
		ctx.Cancel()
	}
}

func (h *recordingHandler) HandleJump(ctx *Context, speed float64) {
	h.jumps = append(h.jumps, speed)
	if h.cancelJump {
		ctx.Cancel()
	}
}

func (h *recordingHandler) HandleStepUp(height float64) {
	h.steps = append(h.steps, height)
}

type rootMotion struct {
	translation mgl64.Vec3
	rotation    mgl64.Quat
	ticks       int
}

func (r *rootMotion) Consume() (bool, mgl64.Vec3, mgl64.Quat) {
	if r.ticks == 0 {
		return false, mgl64.Vec3{}, mgl64.QuatIdent()
	}
	r.ticks--
	return true, r.translation, r.rotation
}

// floorWorld returns a world with a walkable floor at z=0.
func floorWorld() *world.World {
	w := world.New(nil)
	w.AddPlane(mgl64.Vec3{}, game.UpVector)
	return w
}

func newTestController(t *testing.T, w *world.World, loc mgl64.Vec3, conf Config, opts Options) (*Controller, *entity.Entity) {
	t.Helper()
	ent := entity.New(capsule, loc, game.Rotator{})
	opts.Backend, opts.Target = w, ent
	c, err := NewController(conf, opts)
	require.NoError(t, err)
	return c, ent
}

func vecInDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestSettledAndWalkingToMaxSpeed(t *testing.T) {
	conf := DefaultConfig()
	conf.MaxAccelerationRate = 100000
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, 92}, conf, Options{})

	require.True(t, c.IsGrounded())
	for i := 0; i < 10; i++ {
		c.Tick(dt)
		require.Equal(t, 92.0, c.Location().Z())
	}

	prev := 0.0
	for i := 0; i < 120; i++ {
		c.AddMovementInput(game.ForwardVector, 1)
		c.Tick(dt)

		speed := c.Velocity().Len()
		require.LessOrEqual(t, speed, 600+1e-9)
		require.GreaterOrEqual(t, speed, prev-1e-9)
		prev = speed
		assert.InDelta(t, restZ, c.Location().Z(), 1e-6)
	}
	assert.InDelta(t, 600, prev, 1e-6)
	assert.Greater(t, c.Location().X(), 600*118*dt)
}

func TestSettlesFromOrigin(t *testing.T) {
	conf := DefaultConfig()
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{}, conf, Options{})

	for i := 0; i < 30; i++ {
		c.Tick(dt)
	}
	require.True(t, c.IsGrounded())
	// Relaxing out of the floor leaves the extra depenetration distance as a gap.
	assert.InDelta(t, 92+conf.AdditionalDepenetrationDistance, c.Location().Z(), 1e-6)
}

func TestAccelerationApproachesMaxSpeed(t *testing.T) {
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{})

	var speeds []float64
	for i := 0; i < 60; i++ {
		c.AddMovementInput(game.ForwardVector, 1)
		c.Tick(dt)
		speeds = append(speeds, c.Velocity().Len())
	}
	for i := 1; i < len(speeds); i++ {
		assert.GreaterOrEqual(t, speeds[i], speeds[i-1]-1e-9)
		assert.LessOrEqual(t, speeds[i], 600+1e-9)
	}
	assert.InDelta(t, 600, speeds[len(speeds)-1], 1e-6)
}

func TestMinAnalogWalkSpeed(t *testing.T) {
	conf := DefaultConfig()
	conf.MinAnalogWalkSpeed = 300
	conf.GroundFriction = 0
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, conf, Options{})

	c.AddMovementInput(game.ForwardVector, 0.01)
	c.Tick(dt)
	// The input scale is raised to MinAnalogWalkSpeed/MaxWalkSpeed.
	assert.InDelta(t, conf.MaxAccelerationRate*0.5*dt, c.Velocity().X(), 1e-9)
}

func TestBrakingToStop(t *testing.T) {
	for _, separate := range []bool{true, false} {
		conf := DefaultConfig()
		conf.ApplySeparateBrakingForce = separate
		c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, conf, Options{})

		v := 600.0
		c.SetHorizontalVelocity(mgl64.Vec3{v, 0, 0})
		limit := int(math.Ceil(v / (conf.BrakingDecelerationRate * dt)))

		prevVel, prevX := v, c.Location().X()
		stopped := false
		for i := 0; i < limit; i++ {
			c.Tick(dt)
			vel := c.Velocity()
			require.GreaterOrEqual(t, vel.X(), 0.0, "reversed on tick %d", i)
			require.LessOrEqual(t, vel.X(), prevVel)
			require.GreaterOrEqual(t, c.Location().X(), prevX)
			prevVel, prevX = vel.X(), c.Location().X()
			if vel.Len() == 0 {
				stopped = true
				break
			}
		}
		assert.True(t, stopped, "separate braking force %v", separate)
	}
}

func TestJump(t *testing.T) {
	h := &recordingHandler{}
	conf := DefaultConfig()
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, conf, Options{Handler: h})

	require.True(t, c.Jump())
	v := math.Sqrt(-2 * game.DefaultGravityZ * conf.JumpHeight)
	require.Len(t, h.jumps, 1)
	assert.InDelta(t, v, h.jumps[0], 1e-9)
	assert.InDelta(t, v, c.Velocity().Z(), 1e-9)

	apex := 0.0
	for i := 0; i < 200 && len(h.landed) == 0; i++ {
		c.Tick(dt)
		apex = math.Max(apex, c.Location().Z())
		if i == 0 {
			assert.False(t, c.Jump(), "jumped in the air")
		}
	}
	require.Len(t, h.landed, 1)
	assert.InDelta(t, v, -h.landed[0].Z(), 2*-game.DefaultGravityZ*dt+1)
	assert.InDelta(t, restZ, c.Location().Z(), 1e-6)
	assert.Zero(t, c.Velocity().Z())
	assert.InDelta(t, restZ+conf.JumpHeight+v*dt, apex, 0.5)
}

func TestJumpIgnoresGravityScale(t *testing.T) {
	conf := DefaultConfig()
	conf.GravityScale = 0.25
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, conf, Options{})

	require.True(t, c.Jump())
	assert.InDelta(t, math.Sqrt(-2*game.DefaultGravityZ*conf.JumpHeight), c.Velocity().Z(), 1e-9)
}

func TestJumpCancelled(t *testing.T) {
	h := &recordingHandler{cancelJump: true}
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{Handler: h})

	assert.False(t, c.Jump())
	assert.Len(t, h.jumps, 1)
	assert.Zero(t, c.Velocity().Z())
}

func TestAddVerticalForceInAir(t *testing.T) {
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, 500}, DefaultConfig(), Options{Gravity: ConstantGravity(-490)})

	assert.False(t, c.Jump())
	c.AddVerticalForce(10)
	assert.InDelta(t, math.Sqrt(2*490*10), c.Velocity().Z(), 1e-9)
}

func TestVelocityDecomposition(t *testing.T) {
	w := floorWorld()
	w.AddBox(mgl64.Vec3{150, -500, 0}, mgl64.Vec3{300, 500, 20})
	c, _ := newTestController(t, w, mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{})

	dir := mgl64.Vec3{1, 0.5, 0}.Normalize()
	for i := 0; i < 180; i++ {
		if i%40 == 0 {
			c.Jump()
		}
		if i < 120 {
			c.AddMovementInput(dir, 1)
		}
		c.Tick(dt)

		s := c.State()
		require.Zero(t, s.HorizontalVelocity.Z())
		require.Zero(t, s.VerticalVelocity.X())
		require.Zero(t, s.VerticalVelocity.Y())
		require.True(t, game.Finite(c.Location()))
	}
}

func TestAddMovementInput(t *testing.T) {
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{})

	c.AddMovementInput(game.UpVector, 1)
	assert.False(t, c.State().RequestingMovement())

	c.AddMovementInput(mgl64.Vec3{0, 2, 5}, 3)
	assert.Equal(t, game.RightVector, c.State().InputDirection)
	assert.Equal(t, 1.0, c.State().InputScale)

	c.AddMovementInput(game.ForwardVector, math.NaN())
	assert.Equal(t, game.RightVector, c.State().InputDirection)

	c.Tick(dt)
	assert.Zero(t, c.State().InputScale)
	assert.Equal(t, game.RightVector, c.State().InputDirection)
}

func TestInvalidDeltaTime(t *testing.T) {
	log, hook := test.NewNullLogger()
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{Log: log})

	for _, d := range []float64{0, -dt, math.NaN(), math.Inf(1)} {
		hook.Reset()
		c.AddMovementInput(game.ForwardVector, 1)
		c.Tick(d)

		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.Zero(t, c.State().InputScale)
		assert.Equal(t, mgl64.Vec3{0, 0, restZ}, c.Location())
	}
}

func TestOrientRotationToMovement(t *testing.T) {
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{})

	c.AddMovementInput(game.RightVector, 1)
	c.Tick(dt)
	assert.InDelta(t, 9, game.RotatorFromQuat(c.Rotation()).Yaw, 1e-6)

	for i := 0; i < 20; i++ {
		c.AddMovementInput(game.RightVector, 1)
		c.Tick(dt)
	}
	r := game.RotatorFromQuat(c.Rotation())
	assert.InDelta(t, 90, r.Yaw, 1e-6)
	assert.InDelta(t, 0, r.Pitch, 1e-6)
	assert.InDelta(t, 0, r.Roll, 1e-6)

	// Without input the character keeps its facing while braking.
	c.Tick(dt)
	assert.InDelta(t, 90, game.RotatorFromQuat(c.Rotation()).Yaw, 1e-6)
}

func TestOrientTakesShortestPath(t *testing.T) {
	c, ent := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{})
	ent.SetRotation(game.Rotator{Yaw: 170}.Quat())

	c.AddMovementInput(mgl64.Vec3{-1, -0.1, 0}, 1)
	c.Tick(dt)
	// The target is just past -180, so the character turns through 180 rather than back through 0.
	yaw := game.RotatorFromQuat(c.Rotation()).Yaw
	assert.InDelta(t, 179, math.Abs(yaw), 1e-6)
}

func TestRootMotion(t *testing.T) {
	rm := &rootMotion{translation: mgl64.Vec3{10, 0, 5}, rotation: game.YawQuat(90), ticks: 1}
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{RootMotion: rm})

	c.Tick(dt)
	assert.True(t, c.State().RootMotion.HasMotion)
	assert.InDelta(t, 90, game.RotatorFromQuat(c.Rotation()).Yaw, 1e-6)
	vecInDelta(t, mgl64.Vec3{0, 10, restZ}, c.Location(), 1e-6)
	vecInDelta(t, mgl64.Vec3{0, 600, 0}, c.Velocity(), 1e-6)

	// The next tick continues with the velocity root motion handed off.
	c.Tick(dt)
	assert.False(t, c.State().RootMotion.HasMotion)
	assert.Greater(t, c.Location().Y(), 10.0)
}

func TestRootMotionFollowsFacing(t *testing.T) {
	for name, translation := range map[string]mgl64.Vec3{
		"forward":  {10, 0, 0},
		"lateral":  {0, 10, 0},
		"backward": {-10, 0, 0},
	} {
		t.Run(name, func(t *testing.T) {
			rm := &rootMotion{translation: translation, rotation: mgl64.QuatIdent(), ticks: 1}
			c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{RootMotion: rm})

			c.Tick(dt)
			assert.InDelta(t, 0, game.RotatorFromQuat(c.Rotation()).Yaw, 1e-6)
			vecInDelta(t, mgl64.Vec3{10, 0, restZ}, c.Location(), 1e-6)
			vecInDelta(t, mgl64.Vec3{600, 0, 0}, c.Velocity(), 1e-6)
		})
	}
}

func TestConfigValidation(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	conf := DefaultConfig()
	conf.MaxSlideIterations = 0
	err := conf.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_slide_iterations")

	conf = DefaultConfig()
	conf.MaxWalkableSlopeAngle = 90
	_, err = NewController(conf, Options{Backend: floorWorld(), Target: entity.New(capsule, mgl64.Vec3{}, game.Rotator{})})
	require.Error(t, err)

	conf = DefaultConfig()
	conf.MinAnalogWalkSpeed = conf.MaxWalkSpeed + 1
	assert.Error(t, conf.Validate())
}

func TestSetMode(t *testing.T) {
	c, _ := newTestController(t, floorWorld(), mgl64.Vec3{0, 0, restZ}, DefaultConfig(), Options{})

	require.NoError(t, c.SetMode(ModeWalking))
	assert.Error(t, c.SetMode(Mode(42)))
	assert.Equal(t, ModeWalking, c.State().Mode)
	assert.Equal(t, "walking", c.State().Mode.String())
}
