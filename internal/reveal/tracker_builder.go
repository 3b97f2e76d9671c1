package reveal

import (
	"time"

	"go.uber.org/zap"
)

// Default observer geometry and transition timing.
const (
	DefaultThreshold    = 0.1
	DefaultBottomMargin = 50.0
	DefaultDuration     = 1000 * time.Millisecond
	DefaultTravel       = 48.0
)

// TrackerBuilderOption is a functional option for configuring a Tracker.
type TrackerBuilderOption func(*Tracker)

// WithThreshold sets the visible-area fraction a block must reach before it reveals.
//
// Parameters:
//   - threshold: fraction of the block area in (0, 1]
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithThreshold(threshold float64) TrackerBuilderOption {
	return func(t *Tracker) {
		if threshold > 0 && threshold <= 1 {
			t.threshold = threshold
		}
	}
}

// WithBottomMargin sets how far the viewport's bottom edge is pulled in before intersection tests.
//
// Parameters:
//   - margin: inset in device-independent pixels
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithBottomMargin(margin float64) TrackerBuilderOption {
	return func(t *Tracker) {
		if margin >= 0 {
			t.bottomMargin = margin
		}
	}
}

// WithDuration sets the length of the reveal transition used by Block.Progress.
//
// Parameters:
//   - d: the transition duration
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithDuration(d time.Duration) TrackerBuilderOption {
	return func(t *Tracker) {
		if d > 0 {
			t.duration = d
		}
	}
}

// WithLogger sets the logger used for reveal events.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithLogger(l *zap.Logger) TrackerBuilderOption {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// BlockOption configures a single observed block.
type BlockOption func(*Block)

// WithDelay postpones the start of the block's transition after it reveals.
//
// Parameters:
//   - d: the delay
//
// Returns:
//   - BlockOption: option function to apply
func WithDelay(d time.Duration) BlockOption {
	return func(b *Block) {
		b.delay = d
	}
}

// WithDirection sets the side the block slides in from.
//
// Parameters:
//   - d: the slide direction
//
// Returns:
//   - BlockOption: option function to apply
func WithDirection(d Direction) BlockOption {
	return func(b *Block) {
		b.direction = d
	}
}
