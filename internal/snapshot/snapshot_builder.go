package snapshot

import "go.uber.org/zap"

// EncoderBuilderOption is a functional option for configuring an Encoder.
type EncoderBuilderOption func(*Encoder)

// WithSize sets the output dimensions. Non-positive values keep the default.
//
// Parameters:
//   - width: the output width in pixels
//   - height: the output height in pixels
//
// Returns:
//   - EncoderBuilderOption: option function to apply
func WithSize(width, height int) EncoderBuilderOption {
	return func(e *Encoder) {
		if width > 0 && height > 0 {
			e.width, e.height = width, height
		}
	}
}

// WithFrameRate sets the animation sample rate.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - EncoderBuilderOption: option function to apply
func WithFrameRate(fps float64) EncoderBuilderOption {
	return func(e *Encoder) {
		if fps > 0 {
			e.fps = fps
		}
	}
}

// WithLoopCount sets how often an animation repeats. Zero loops forever.
func WithLoopCount(n uint16) EncoderBuilderOption {
	return func(e *Encoder) {
		e.loops = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) EncoderBuilderOption {
	return func(e *Encoder) {
		if logger != nil {
			e.logger = logger
		}
	}
}
