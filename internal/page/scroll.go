package page

import (
	"math"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/internal/pose"
)

const (
	// WheelStep is the scroll distance of one wheel notch.
	WheelStep = 80.0
	// LineStep is the scroll distance of an arrow key press.
	LineStep = 60.0

	// scrollRate is the exponential rate at which the offset catches up with its target, per second.
	scrollRate = 14.0
)

// Scroll is the vertical scroll position of the page. Inputs move a target; Update eases the offset toward it.
type Scroll struct {
	y, target      float64
	pageHeight     float64
	viewportHeight float64
}

// NewScroll creates a scroll position at the top of the page.
//
// Parameters:
//   - pageHeight: the total page height
//   - viewportHeight: the visible height
//
// Returns:
//   - *Scroll: the scroll state
func NewScroll(pageHeight, viewportHeight float64) *Scroll {
	return &Scroll{pageHeight: pageHeight, viewportHeight: viewportHeight}
}

// Resize changes the page and viewport heights and pulls the offset back into range.
func (s *Scroll) Resize(pageHeight, viewportHeight float64) {
	s.pageHeight, s.viewportHeight = pageHeight, viewportHeight
	s.target = s.clamp(s.target)
	s.y = s.clamp(s.y)
}

// Max is the largest scroll offset.
func (s *Scroll) Max() float64 {
	return max(s.pageHeight-s.viewportHeight, 0)
}

// Y is the current scroll offset in pixels.
func (s *Scroll) Y() float64 {
	return s.y
}

// Target is the offset the scroll is easing toward.
func (s *Scroll) Target() float64 {
	return s.target
}

// ViewportHeight is the visible height.
func (s *Scroll) ViewportHeight() float64 {
	return s.viewportHeight
}

// Fraction is the scroll offset as the [0, 1] fraction the pose solver consumes.
func (s *Scroll) Fraction() float64 {
	return pose.ClampScroll(s.y, s.viewportHeight)
}

// Wheel applies a wheel or trackpad offset. Positive dy scrolls up, as GLFW reports it.
func (s *Scroll) Wheel(dy float64) {
	s.target = s.clamp(s.target - dy*WheelStep)
}

// ScrollTo moves the target to an absolute offset.
func (s *Scroll) ScrollTo(y float64) {
	s.target = s.clamp(y)
}

// Jump moves both the offset and the target, skipping the easing.
func (s *Scroll) Jump(y float64) {
	s.target = s.clamp(y)
	s.y = s.target
}

// Key handles the scrolling keys.
//
// Parameters:
//   - code: the key code
//
// Returns:
//   - bool: true if the key scrolls the page
func (s *Scroll) Key(code uint32) bool {
	page := max(s.viewportHeight-NavHeight, LineStep)
	switch code {
	case common.KeyDown:
		s.ScrollTo(s.target + LineStep)
	case common.KeyUp:
		s.ScrollTo(s.target - LineStep)
	case common.KeyPageDown, common.KeySpace:
		s.ScrollTo(s.target + page)
	case common.KeyPageUp:
		s.ScrollTo(s.target - page)
	case common.KeyHome:
		s.ScrollTo(0)
	case common.KeyEnd:
		s.ScrollTo(s.Max())
	default:
		return false
	}
	return true
}

// Update eases the offset toward the target.
//
// Parameters:
//   - dt: the frame interval in seconds
//
// Returns:
//   - float64: the new offset
func (s *Scroll) Update(dt float64) float64 {
	if dt <= 0 {
		return s.y
	}
	s.y = common.Lerp(s.y, s.target, 1-math.Exp(-scrollRate*dt))
	if math.Abs(s.target-s.y) < 0.5 {
		s.y = s.target
	}
	return s.y
}

func (s *Scroll) clamp(y float64) float64 {
	return common.Clamp(y, 0, s.Max())
}
