// Package pose computes the per-frame orientation and scale of a showcased object
// from scroll position, pointer location, hover state and click impulses.
//
// Advance is a pure function of its arguments: the previous State carries everything
// the next frame depends on, so any sequence of frames can be replayed deterministically.
package pose

import (
	"math"
	"sync/atomic"

	"github.com/Carmen-Shannon/nova-showcase/common"
)

// State is the pose of one rendered object.
// Yaw accumulates without bound while the object spins; treat it as periodic when an absolute orientation matters.
type State struct {
	Yaw          float64
	Pitch        float64
	Roll         float64
	Scale        float64
	SpinVelocity float64

	// AccumulatedYaw is the integrated idle rotation plus click impulse, before pointer offset and smoothing.
	AccumulatedYaw float64
}

// Rest returns the pose of an object that has not moved yet.
//
// Parameters:
//   - baseScale: the object's nominal scale
//
// Returns:
//   - State: zero orientation at the given scale
func Rest(baseScale float64) State {
	return State{Scale: baseScale}
}

// Input is the environment sample for one frame. The caller clamps ScrollFraction to [0, 1]
// and normalizes the pointer to [-1, 1] on both axes; the solver performs no bounds checking.
type Input struct {
	Elapsed        float64
	ScrollFraction float64
	PointerX       float64
	PointerY       float64
	Hovered        bool
	Clicked        bool
}

// ClampScroll converts a raw scroll offset into the [0, 1] fraction Advance expects.
// The fraction saturates once the page has scrolled one viewport height.
//
// Parameters:
//   - scrollY: the scroll offset in pixels
//   - viewportHeight: the viewport height in pixels
//
// Returns:
//   - float64: min(scrollY/viewportHeight, 1), or 0 for an empty viewport
func ClampScroll(scrollY, viewportHeight float64) float64 {
	if viewportHeight <= 0 {
		return 0
	}
	return common.Clamp(scrollY/viewportHeight, 0, 1)
}

// Advance computes the next pose from the previous one.
//
// Parameters:
//   - p: the tuning constants
//   - baseScale: the object's nominal scale
//   - prev: the previous frame's state
//   - in: this frame's environment sample
//   - dt: the frame interval in seconds
//   - exploded: true for the exploded view, which only oscillates
//   - interactable: true if clicks inject a spin impulse
//
// Returns:
//   - State: the next frame's state
func Advance(p Params, baseScale float64, prev State, in Input, dt float64, exploded, interactable bool) State {
	next := prev

	target := baseScale
	if in.Hovered {
		target = p.HoverScale * baseScale
	}
	next.Scale = common.Lerp(prev.Scale, target, p.Smoothing)

	if exploded {
		next.Yaw = math.Sin(in.Elapsed*p.ExplodedFrequency) * p.ExplodedAmplitude
	} else {
		speed := common.Lerp(p.BaseSpeed, 0, in.ScrollFraction)
		next.SpinVelocity = common.Lerp(prev.SpinVelocity, 0, p.SpinDecay)
		if interactable && in.Clicked {
			next.SpinVelocity = p.SpinImpulse
		}
		next.AccumulatedYaw = prev.AccumulatedYaw + dt*speed + dt*next.SpinVelocity

		next.Yaw = common.Lerp(prev.Yaw, next.AccumulatedYaw+in.PointerX*p.PointerYaw, p.Smoothing)
		next.Pitch = common.Lerp(prev.Pitch, in.PointerY*p.PointerPitch+in.ScrollFraction*p.ScrollPitch, p.Smoothing)
		next.Roll = common.Lerp(prev.Roll, in.ScrollFraction*p.ScrollRoll, p.Smoothing)
		return next
	}

	if interactable && in.Clicked {
		next.SpinVelocity = p.SpinImpulse
	}
	return next
}

// Solver owns the pose of one object and its tuning. Params may be swapped from another goroutine
// (configuration reload); the state itself is only touched by the frame loop.
type Solver struct {
	params       atomic.Pointer[Params]
	baseScale    float64
	exploded     bool
	interactable bool
	state        State
}

// NewSolver creates a Solver at rest.
//
// Parameters:
//   - p: the tuning constants
//   - baseScale: the object's nominal scale
//   - exploded: true for the exploded view
//   - interactable: true if clicks inject a spin impulse
//
// Returns:
//   - *Solver: the new solver
func NewSolver(p Params, baseScale float64, exploded, interactable bool) *Solver {
	s := &Solver{
		baseScale:    baseScale,
		exploded:     exploded,
		interactable: interactable,
		state:        Rest(baseScale),
	}
	s.params.Store(&p)
	return s
}

// Step advances the owned state by one frame and returns it.
//
// Parameters:
//   - in: this frame's environment sample
//   - dt: the frame interval in seconds
//
// Returns:
//   - State: the new state
func (s *Solver) Step(in Input, dt float64) State {
	s.state = Advance(*s.params.Load(), s.baseScale, s.state, in, dt, s.exploded, s.interactable)
	return s.state
}

// State returns the most recent pose.
func (s *Solver) State() State {
	return s.state
}

// Params returns the active tuning.
func (s *Solver) Params() Params {
	return *s.params.Load()
}

// SetParams replaces the tuning. The next Step uses the new values.
//
// Parameters:
//   - p: the new tuning constants
func (s *Solver) SetParams(p Params) {
	s.params.Store(&p)
}

// SetExploded switches between the spinning and the exploded view.
func (s *Solver) SetExploded(exploded bool) {
	s.exploded = exploded
}

// Exploded reports whether the solver runs the exploded view.
func (s *Solver) Exploded() bool {
	return s.exploded
}

// Interactable reports whether clicks inject a spin impulse.
func (s *Solver) Interactable() bool {
	return s.interactable
}

// Reset returns the owned state to rest.
func (s *Solver) Reset() {
	s.state = Rest(s.baseScale)
}
