package pose

import (
	"fmt"
	"math"
)

// Params holds the presentation constants of the pose solver.
// None of them are load-bearing contracts; they are tuned for feel and may be overridden from configuration.
type Params struct {
	// HoverScale multiplies the base scale while the object is hovered.
	HoverScale float64 `yaml:"hover_scale" env:"HOVER_SCALE"`

	// Smoothing is the per-frame lerp fraction applied to scale, yaw, pitch and roll.
	Smoothing float64 `yaml:"smoothing" env:"SMOOTHING"`

	// BaseSpeed is the idle yaw speed in radians per second at scroll fraction 0.
	BaseSpeed float64 `yaml:"base_speed" env:"BASE_SPEED"`

	// SpinImpulse is the yaw velocity injected by a click on an interactable object.
	SpinImpulse float64 `yaml:"spin_impulse" env:"SPIN_IMPULSE"`

	// SpinDecay is the per-frame lerp fraction pulling the spin velocity toward zero.
	SpinDecay float64 `yaml:"spin_decay" env:"SPIN_DECAY"`

	// PointerYaw is the yaw offset in radians at pointer x = ±1.
	PointerYaw float64 `yaml:"pointer_yaw" env:"POINTER_YAW"`

	// PointerPitch is the pitch offset in radians at pointer y = ±1.
	PointerPitch float64 `yaml:"pointer_pitch" env:"POINTER_PITCH"`

	// ScrollPitch is the pitch tilt in radians at scroll fraction 1.
	ScrollPitch float64 `yaml:"scroll_pitch" env:"SCROLL_PITCH"`

	// ScrollRoll is the roll tilt in radians at scroll fraction 1.
	ScrollRoll float64 `yaml:"scroll_roll" env:"SCROLL_ROLL"`

	// ExplodedAmplitude is the yaw oscillation amplitude of the exploded view.
	ExplodedAmplitude float64 `yaml:"exploded_amplitude" env:"EXPLODED_AMPLITUDE"`

	// ExplodedFrequency is the angular frequency of the exploded view oscillation.
	ExplodedFrequency float64 `yaml:"exploded_frequency" env:"EXPLODED_FREQUENCY"`
}

// DefaultParams returns the stock tuning.
//
// Returns:
//   - Params: the default parameter set
func DefaultParams() Params {
	return Params{
		HoverScale:        1.03,
		Smoothing:         0.1,
		BaseSpeed:         0.5,
		SpinImpulse:       10,
		SpinDecay:         0.05,
		PointerYaw:        math.Pi / 10,
		PointerPitch:      math.Pi / 20,
		ScrollPitch:       0.5,
		ScrollRoll:        0.15,
		ExplodedAmplitude: 0.1,
		ExplodedFrequency: 0.5,
	}
}

// Validate reports whether the fractions are inside (0, 1], which keeps every smoothed value free of overshoot.
//
// Returns:
//   - error: a description of the first invalid field, or nil
func (p Params) Validate() error {
	if p.Smoothing <= 0 || p.Smoothing > 1 {
		return &ParamError{Field: "smoothing", Value: p.Smoothing}
	}
	if p.SpinDecay <= 0 || p.SpinDecay > 1 {
		return &ParamError{Field: "spin_decay", Value: p.SpinDecay}
	}
	if p.HoverScale <= 0 {
		return &ParamError{Field: "hover_scale", Value: p.HoverScale}
	}
	return nil
}

// ParamError describes an out-of-range tuning value.
type ParamError struct {
	Field string
	Value float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("pose: parameter %s out of range: %g", e.Field, e.Value)
}
