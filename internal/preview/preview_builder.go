package preview

import (
	"time"

	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"go.uber.org/zap"
)

// PreviewBuilderOption is a functional option for configuring a Preview.
type PreviewBuilderOption func(*Preview)

// WithLogger sets the logger. The default discards everything.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithLogger(l *zap.Logger) PreviewBuilderOption {
	return func(p *Preview) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracker uses a configured reveal tracker. Its geometry is in terminal rows.
//
// Parameters:
//   - t: the tracker
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithTracker(t *reveal.Tracker) PreviewBuilderOption {
	return func(p *Preview) {
		p.tracker = t
	}
}

// WithTick sets the redraw interval.
//
// Parameters:
//   - d: the interval between frames
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithTick(d time.Duration) PreviewBuilderOption {
	return func(p *Preview) {
		if d > 0 {
			p.tick = d
		}
	}
}
