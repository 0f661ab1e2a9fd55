package movement

import (
	"math"

	"github.com/oomph-ac/kinemove/oerror"
)

// Config holds the per-character movement tunables. Distances are in centimetres, speeds in cm/s,
// accelerations in cm/s² and angles in degrees. A Config is treated as read-only once a Controller
// has been created with it.
type Config struct {
	// MaxWalkSpeed is the horizontal speed limit. Must be > 0.
	MaxWalkSpeed float64 `toml:"max_walk_speed" yaml:"max_walk_speed"`
	// MinAnalogWalkSpeed is the speed that any non-zero movement input is able to reach. [0, MaxWalkSpeed].
	MinAnalogWalkSpeed float64 `toml:"min_analog_walk_speed" yaml:"min_analog_walk_speed"`
	// MaxAccelerationRate is the acceleration applied at full input scale. >= 0.
	MaxAccelerationRate float64 `toml:"max_acceleration_rate" yaml:"max_acceleration_rate"`
	// GroundFriction and FrictionCoefficient scale the friction opposing velocity while grounded. >= 0.
	GroundFriction      float64 `toml:"ground_friction" yaml:"ground_friction"`
	FrictionCoefficient float64 `toml:"friction_coefficient" yaml:"friction_coefficient"`
	// BrakingDecelerationRate is the deceleration applied while grounded without input. >= 0.
	BrakingDecelerationRate float64 `toml:"braking_deceleration_rate" yaml:"braking_deceleration_rate"`
	// ApplySeparateBrakingForce disables friction while braking so only the braking deceleration applies.
	ApplySeparateBrakingForce bool `toml:"apply_separate_braking_force" yaml:"apply_separate_braking_force"`
	// AirControl scales input acceleration while airborne. [0, 1].
	AirControl float64 `toml:"air_control" yaml:"air_control"`

	// GravityScale multiplies world gravity. Must be finite.
	GravityScale float64 `toml:"gravity_scale" yaml:"gravity_scale"`
	// MaxFallSpeed limits the magnitude of downward velocity. > 0.
	MaxFallSpeed float64 `toml:"max_fall_speed" yaml:"max_fall_speed"`
	// JumpHeight is the apex height of a jump under unscaled world gravity. >= 0.
	JumpHeight float64 `toml:"jump_height" yaml:"jump_height"`
	// RemoveVelocityOnLand zeroes horizontal velocity when landing without movement input.
	RemoveVelocityOnLand bool `toml:"remove_velocity_on_land" yaml:"remove_velocity_on_land"`

	// MaxWalkableSlopeAngle is the steepest surface, measured from world up, that counts as ground. [0, 90).
	MaxWalkableSlopeAngle float64 `toml:"max_walkable_slope_angle" yaml:"max_walkable_slope_angle"`
	// MaxStepHeight is the tallest obstacle that can be stepped onto. >= 0.
	MaxStepHeight float64 `toml:"max_step_height" yaml:"max_step_height"`
	// MinStepDepth is the least horizontal room needed on top of a step. >= 0.
	MinStepDepth float64 `toml:"min_step_depth" yaml:"min_step_depth"`
	// StepDepthHeightThreshold is the collision height below which MinStepDepth is ignored, letting the
	// character walk up shallow slopes. >= 0.
	StepDepthHeightThreshold float64 `toml:"step_depth_height_threshold" yaml:"step_depth_height_threshold"`
	// LedgeSearchDistance is how far below the character a surface must be found to snap down to it
	// instead of walking off a ledge. >= 0.
	LedgeSearchDistance float64 `toml:"ledge_search_distance" yaml:"ledge_search_distance"`
	// MaxSnapDownDistance is how far the character is snapped down after stepping up. >= 0.
	MaxSnapDownDistance float64 `toml:"max_snap_down_distance" yaml:"max_snap_down_distance"`

	// GroundSampleRadius offsets the four outer ground probes from the centre probe. >= 0.
	GroundSampleRadius float64 `toml:"ground_sample_radius" yaml:"ground_sample_radius"`
	// GroundProbeOffset raises the start of each ground probe above the lowest point. >= 0.
	GroundProbeOffset float64 `toml:"ground_probe_offset" yaml:"ground_probe_offset"`
	// GroundProbeDistance is how far below the lowest point ground is searched for. > 0.
	GroundProbeDistance float64 `toml:"ground_probe_distance" yaml:"ground_probe_distance"`

	// InflationMargin grows the shape for the first sweep of every slide iteration. >= 0.
	InflationMargin float64 `toml:"inflation_margin" yaml:"inflation_margin"`
	// PullBackDistance retracts the character from every contact along its approach. >= 0.
	PullBackDistance float64 `toml:"pull_back_distance" yaml:"pull_back_distance"`
	// AdditionalDepenetrationDistance is added to every penetration depth when resolving overlaps. >= 0.
	AdditionalDepenetrationDistance float64 `toml:"additional_depenetration_distance" yaml:"additional_depenetration_distance"`
	// MaxSlideIterations caps the sweep-and-slide loop. >= 1.
	MaxSlideIterations int `toml:"max_slide_iterations" yaml:"max_slide_iterations"`
	// MaxDepenetrationIterations caps the penetration relaxation loop. >= 1.
	MaxDepenetrationIterations int `toml:"max_depenetration_iterations" yaml:"max_depenetration_iterations"`

	// OrientRotationToMovement turns the character towards its movement while input is applied.
	OrientRotationToMovement bool `toml:"orient_rotation_to_movement" yaml:"orient_rotation_to_movement"`
	OrientPitch              bool `toml:"orient_pitch" yaml:"orient_pitch"`
	OrientYaw                bool `toml:"orient_yaw" yaml:"orient_yaw"`
	OrientRoll               bool `toml:"orient_roll" yaml:"orient_roll"`
	// Orient*Rate are the angular rates per axis, in degrees per second. >= 0.
	OrientPitchRate float64 `toml:"orient_pitch_rate" yaml:"orient_pitch_rate"`
	OrientYawRate   float64 `toml:"orient_yaw_rate" yaml:"orient_yaw_rate"`
	OrientRollRate  float64 `toml:"orient_roll_rate" yaml:"orient_roll_rate"`
	// AllowRotationDuringRootMotion keeps orienting to movement while root motion is applied.
	AllowRotationDuringRootMotion bool `toml:"allow_rotation_during_root_motion" yaml:"allow_rotation_during_root_motion"`
}

// DefaultConfig returns the tunables of a human-sized character.
func DefaultConfig() Config {
	return Config{
		MaxWalkSpeed:            600,
		MaxAccelerationRate:     4096,
		GroundFriction:          4,
		FrictionCoefficient:     1,
		BrakingDecelerationRate: 2048,
		AirControl:              0.35,

		GravityScale: 1,
		MaxFallSpeed: 4000,
		JumpHeight:   100,

		MaxWalkableSlopeAngle:    45,
		MaxStepHeight:            45,
		MinStepDepth:             5,
		StepDepthHeightThreshold: 5,
		LedgeSearchDistance:      50,
		MaxSnapDownDistance:      10,

		GroundSampleRadius:  20,
		GroundProbeOffset:   2,
		GroundProbeDistance: 2.4,

		InflationMargin:                 0.05,
		PullBackDistance:                0.1,
		AdditionalDepenetrationDistance: 0.1,
		MaxSlideIterations:              4,
		MaxDepenetrationIterations:      8,

		OrientRotationToMovement: true,
		OrientYaw:                true,
		OrientYawRate:            540,
	}
}

// Validate returns an error describing the first field that is out of its documented range.
func (c Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"max_walk_speed", c.MaxWalkSpeed > 0},
		{"min_analog_walk_speed", c.MinAnalogWalkSpeed >= 0 && c.MinAnalogWalkSpeed <= c.MaxWalkSpeed},
		{"max_acceleration_rate", c.MaxAccelerationRate >= 0},
		{"ground_friction", c.GroundFriction >= 0},
		{"friction_coefficient", c.FrictionCoefficient >= 0},
		{"braking_deceleration_rate", c.BrakingDecelerationRate >= 0},
		{"air_control", c.AirControl >= 0 && c.AirControl <= 1},
		{"gravity_scale", !math.IsNaN(c.GravityScale) && !math.IsInf(c.GravityScale, 0)},
		{"max_fall_speed", c.MaxFallSpeed > 0},
		{"jump_height", c.JumpHeight >= 0},
		{"max_walkable_slope_angle", c.MaxWalkableSlopeAngle >= 0 && c.MaxWalkableSlopeAngle < 90},
		{"max_step_height", c.MaxStepHeight >= 0},
		{"min_step_depth", c.MinStepDepth >= 0},
		{"step_depth_height_threshold", c.StepDepthHeightThreshold >= 0},
		{"ledge_search_distance", c.LedgeSearchDistance >= 0},
		{"max_snap_down_distance", c.MaxSnapDownDistance >= 0},
		{"ground_sample_radius", c.GroundSampleRadius >= 0},
		{"ground_probe_offset", c.GroundProbeOffset >= 0},
		{"ground_probe_distance", c.GroundProbeDistance > 0},
		{"inflation_margin", c.InflationMargin >= 0},
		{"pull_back_distance", c.PullBackDistance >= 0},
		{"additional_depenetration_distance", c.AdditionalDepenetrationDistance >= 0},
		{"max_slide_iterations", c.MaxSlideIterations >= 1},
		{"max_depenetration_iterations", c.MaxDepenetrationIterations >= 1},
		{"orient_pitch_rate", c.OrientPitchRate >= 0},
		{"orient_yaw_rate", c.OrientYawRate >= 0},
		{"orient_roll_rate", c.OrientRollRate >= 0},
	}
	for _, check := range checks {
		if !check.ok {
			return oerror.New("movement config: %s is out of range", check.name)
		}
	}
	return nil
}
