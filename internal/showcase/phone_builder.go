package showcase

import "github.com/Carmen-Shannon/nova-showcase/internal/pose"

type phoneConfig struct {
	exploded      bool
	screenContent bool
	baseScale     float64
	tiltY         float64
	params        pose.Params
	float         Float
}

// PhoneBuilderOption is a functional option for configuring a Phone.
type PhoneBuilderOption func(*phoneConfig)

// WithExploded pulls the body, board and display layers apart and swaps spinning for a gentle sway.
func WithExploded(exploded bool) PhoneBuilderOption {
	return func(c *phoneConfig) {
		c.exploded = exploded
	}
}

// WithScreenContent shows the animated screen texture on the display and makes the phone clickable.
func WithScreenContent(enabled bool) PhoneBuilderOption {
	return func(c *phoneConfig) {
		c.screenContent = enabled
	}
}

// WithBaseScale sets the phone's nominal scale.
//
// Parameters:
//   - s: the scale, ignored if not positive
//
// Returns:
//   - PhoneBuilderOption: option function to apply
func WithBaseScale(s float64) PhoneBuilderOption {
	return func(c *phoneConfig) {
		if s > 0 {
			c.baseScale = s
		}
	}
}

// WithTilt sets a fixed yaw between the float wobble and the posed root.
func WithTilt(yaw float64) PhoneBuilderOption {
	return func(c *phoneConfig) {
		c.tiltY = yaw
	}
}

// WithPoseParams sets the pose solver tuning.
func WithPoseParams(p pose.Params) PhoneBuilderOption {
	return func(c *phoneConfig) {
		c.params = p
	}
}

// WithFloat sets the idle wobble.
func WithFloat(f Float) PhoneBuilderOption {
	return func(c *phoneConfig) {
		c.float = f
	}
}
