package reveal

import (
	"time"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"go.uber.org/zap"
)

// Direction is the side a block slides in from while revealing.
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// HiddenOffset returns the block's displacement in the Hidden state, as a unit vector in screen space.
// "Up" content starts below its resting place and rises; "Left" content starts to the right and moves left.
//
// Returns:
//   - dx, dy: the unit displacement
func (d Direction) HiddenOffset() (dx, dy float64) {
	switch d {
	case DirectionDown:
		return 0, -1
	case DirectionLeft:
		return 1, 0
	case DirectionRight:
		return -1, 0
	default:
		return 0, 1
	}
}

// Event reports a block's Hidden → Visible transition.
type Event struct {
	Block string
	At    time.Time
	Ratio float64
}

// Block is one observed content block.
type Block struct {
	id        string
	bounds    Rect
	flag      Flag
	events    chan Event
	detached  bool
	delay     time.Duration
	direction Direction
	firedAt   time.Time
	duration  time.Duration
	travel    float64
}

// ID returns the block identifier.
func (b *Block) ID() string {
	return b.id
}

// Events returns the block's transition stream. It yields at most one Event and is closed when the
// block's observer detaches, either after firing or when the tracker is closed.
func (b *Block) Events() <-chan Event {
	return b.events
}

// State returns the block's visibility state.
func (b *Block) State() State {
	return b.flag.State()
}

// Visible reports whether the block has revealed.
func (b *Block) Visible() bool {
	return b.flag.Visible()
}

// Bounds returns the block's page-space rectangle.
func (b *Block) Bounds() Rect {
	return b.bounds
}

// SetBounds moves the block, for instance after a relayout. Has no effect on a revealed block's state.
func (b *Block) SetBounds(r Rect) {
	b.bounds = r
}

// Progress returns the eased transition progress at the given time: 0 while hidden or delayed, 1 when done.
//
// Parameters:
//   - now: the current time
//
// Returns:
//   - float64: the progress in [0, 1]
func (b *Block) Progress(now time.Time) float64 {
	if !b.flag.Visible() {
		return 0
	}
	elapsed := now.Sub(b.firedAt) - b.delay
	if elapsed <= 0 {
		return 0
	}
	return common.EaseOutCubic(float64(elapsed) / float64(b.duration))
}

// Offset returns the block's current slide displacement in pixels.
//
// Parameters:
//   - now: the current time
//
// Returns:
//   - dx, dy: the displacement from the resting position
func (b *Block) Offset(now time.Time) (dx, dy float64) {
	ux, uy := b.direction.HiddenOffset()
	rest := (1 - b.Progress(now)) * b.travel
	return ux * rest, uy * rest
}

// detach closes the event stream once.
func (b *Block) detach() {
	if b.detached {
		return
	}
	b.detached = true
	close(b.events)
}

// Tracker observes a set of blocks against a moving viewport.
// It is driven from the frame loop and is not safe for concurrent use.
type Tracker struct {
	threshold    float64
	bottomMargin float64
	duration     time.Duration
	logger       *zap.Logger

	blocks []*Block
	active int
}

// NewTracker creates a Tracker with the given options.
//
// Parameters:
//   - options: functional options for threshold, margin, duration and logging
//
// Returns:
//   - *Tracker: the tracker
func NewTracker(options ...TrackerBuilderOption) *Tracker {
	t := &Tracker{
		threshold:    DefaultThreshold,
		bottomMargin: DefaultBottomMargin,
		duration:     DefaultDuration,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Observe starts observing a block.
//
// Parameters:
//   - id: a stable identifier for logging and events
//   - bounds: the block's page-space rectangle
//   - options: per-block delay and direction
//
// Returns:
//   - *Block: the observed block
func (t *Tracker) Observe(id string, bounds Rect, options ...BlockOption) *Block {
	b := &Block{
		id:       id,
		bounds:   bounds,
		events:   make(chan Event, 1),
		duration: t.duration,
		travel:   DefaultTravel,
	}
	for _, opt := range options {
		opt(b)
	}
	t.blocks = append(t.blocks, b)
	t.active++
	return b
}

// Update tests every attached block against the viewport and fires the ones that crossed the threshold.
//
// Parameters:
//   - viewport: the visible page-space rectangle
//   - now: the current time, stamped on events
//
// Returns:
//   - []Event: the transitions fired by this update
func (t *Tracker) Update(viewport Rect, now time.Time) []Event {
	if t.active == 0 {
		return nil
	}
	root := viewport.InsetBottom(t.bottomMargin)

	var fired []Event
	for _, b := range t.blocks {
		if b.detached {
			continue
		}
		ratio := VisibleRatio(b.bounds, root)
		if ratio <= 0 || ratio < t.threshold {
			continue
		}
		if !b.flag.Fire() {
			continue
		}
		b.firedAt = now
		ev := Event{Block: b.id, At: now, Ratio: ratio}
		b.events <- ev
		b.detach()
		t.active--
		fired = append(fired, ev)
		t.logger.Debug("block revealed", zap.String("block", b.id), zap.Float64("ratio", ratio))
	}
	return fired
}

// Reconfigure applies new observer options to later updates and observations. Blocks already
// revealing keep their duration.
//
// Parameters:
//   - options: the threshold, margin or duration options to apply
func (t *Tracker) Reconfigure(options ...TrackerBuilderOption) {
	for _, opt := range options {
		opt(t)
	}
}

// Blocks returns the observed blocks in registration order.
func (t *Tracker) Blocks() []*Block {
	return t.blocks
}

// Block returns the block with the given id, or nil.
func (t *Tracker) Block(id string) *Block {
	for _, b := range t.blocks {
		if b.id == id {
			return b
		}
	}
	return nil
}

// Pending returns the number of blocks still waiting to reveal.
func (t *Tracker) Pending() int {
	return t.active
}

// Close detaches every remaining observer. Blocks that never revealed stay Hidden and their streams close empty.
func (t *Tracker) Close() {
	for _, b := range t.blocks {
		if !b.detached {
			b.detach()
		}
	}
	t.active = 0
}
