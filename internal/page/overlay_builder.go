package page

import (
	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"go.uber.org/zap"
)

type overlayConfig struct {
	logger  *zap.Logger
	tracker *reveal.Tracker
	scale   float64
}

// OverlayBuilderOption is a functional option for configuring an Overlay.
type OverlayBuilderOption func(*overlayConfig)

// WithOverlayLogger sets the logger. The default discards everything.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithOverlayLogger(l *zap.Logger) OverlayBuilderOption {
	return func(c *overlayConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracker shares a reveal tracker, for example one configured from the reveal settings.
//
// Parameters:
//   - t: the tracker
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithTracker(t *reveal.Tracker) OverlayBuilderOption {
	return func(c *overlayConfig) {
		c.tracker = t
	}
}

// WithPixelScale sets the framebuffer pixels per layout pixel, the display content scale. Block
// textures are painted at this density and the page is placed in framebuffer pixels.
//
// Parameters:
//   - scale: framebuffer pixels per layout pixel; non-positive values keep 1
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithPixelScale(scale float64) OverlayBuilderOption {
	return func(c *overlayConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}
