package page

import (
	"time"

	"github.com/Carmen-Shannon/nova-showcase/common"
)

const (
	// SlideTravel is how far the carousel track moves per slide.
	SlideTravel = 300.0

	slideDuration = 700 * time.Millisecond
	focusDuration = 500 * time.Millisecond

	inactiveScale   = 0.95
	inactiveOpacity = 0.6
)

// Carousel is the interface slider. The active slide wraps in both directions and the track eases
// to its new position.
type Carousel struct {
	count    int
	active   int
	previous int
	from     float64
	changed  time.Time
}

// NewCarousel creates a carousel over count slides, showing the first.
func NewCarousel(count int) *Carousel {
	return &Carousel{count: max(count, 1)}
}

// Active is the index of the slide in focus.
func (c *Carousel) Active() int {
	return c.active
}

// Next focuses the following slide, wrapping to the first.
func (c *Carousel) Next(now time.Time) {
	c.set((c.active+1)%c.count, now)
}

// Prev focuses the preceding slide, wrapping to the last.
func (c *Carousel) Prev(now time.Time) {
	c.set((c.active-1+c.count)%c.count, now)
}

func (c *Carousel) set(i int, now time.Time) {
	c.from = c.Offset(now)
	c.previous = c.active
	c.active = i
	c.changed = now
}

// Offset is how far the track has moved left at a given time.
func (c *Carousel) Offset(now time.Time) float64 {
	target := float64(c.active) * SlideTravel
	if c.changed.IsZero() {
		return target
	}
	return common.Lerp(c.from, target, progress(now.Sub(c.changed), slideDuration))
}

// Focus returns the scale and opacity of slide i at a given time.
//
// Parameters:
//   - i: the slide index
//   - now: the sample time
//
// Returns:
//   - scale, opacity: 1 for the active slide, eased from the previous focus state
func (c *Carousel) Focus(i int, now time.Time) (scale, opacity float64) {
	state := func(active int) (float64, float64) {
		if i == active {
			return 1, 1
		}
		return inactiveScale, inactiveOpacity
	}
	s1, o1 := state(c.active)
	if c.changed.IsZero() {
		return s1, o1
	}
	s0, o0 := state(c.previous)
	t := progress(now.Sub(c.changed), focusDuration)
	return common.Lerp(s0, s1, t), common.Lerp(o0, o1, t)
}

func progress(elapsed, d time.Duration) float64 {
	return common.EaseOutCubic(float64(elapsed) / float64(d))
}
