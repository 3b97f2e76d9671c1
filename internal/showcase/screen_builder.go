package showcase

import "go.uber.org/zap"

// ScreenBuilderOption is a functional option for configuring a Screen.
type ScreenBuilderOption func(*Screen)

// WithScreenSize sets the texture dimensions in pixels. Non-positive values keep the default.
//
// Parameters:
//   - width: the texture width
//   - height: the texture height
//
// Returns:
//   - ScreenBuilderOption: option function to apply
func WithScreenSize(width, height int) ScreenBuilderOption {
	return func(s *Screen) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
		}
	}
}

// WithBands sets how many horizontal bands a frame is split into.
//
// Parameters:
//   - n: the band count, at least 1
//
// Returns:
//   - ScreenBuilderOption: option function to apply
func WithBands(n int) ScreenBuilderOption {
	return func(s *Screen) {
		s.bands = n
	}
}

// WithWorkers sets the worker pool size. One or fewer paints on the calling goroutine.
//
// Parameters:
//   - n: the maximum number of concurrent workers
//
// Returns:
//   - ScreenBuilderOption: option function to apply
func WithWorkers(n int) ScreenBuilderOption {
	return func(s *Screen) {
		s.workers = n
	}
}

// WithScreenLogger sets the logger.
func WithScreenLogger(logger *zap.Logger) ScreenBuilderOption {
	return func(s *Screen) {
		if logger != nil {
			s.logger = logger.Named("screen")
		}
	}
}
