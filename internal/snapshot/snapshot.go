// Package snapshot writes the animated phone display as WebP, as a still or a short animation.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/Carmen-Shannon/nova-showcase/internal/showcase"
	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// ErrEmptyRange is returned by Animation when the time range holds no frame.
var ErrEmptyRange = errors.New("snapshot: empty time range")

// maxFrames caps an animation so a typo in the range cannot exhaust memory.
const maxFrames = 600

// Encoder renders display frames and downsamples them to the output size.
type Encoder struct {
	screen *showcase.Screen
	logger *zap.Logger

	width, height int
	fps           float64
	loops         uint16
}

// NewEncoder creates an encoder over a display rasterizer. The default output is half the rasterizer
// size, so a rasterizer built at twice the wanted size yields a supersampled picture.
//
// Parameters:
//   - screen: the display rasterizer; the caller keeps ownership
//   - options: functional options for the encoder
//
// Returns:
//   - *Encoder: the encoder
func NewEncoder(screen *showcase.Screen, options ...EncoderBuilderOption) *Encoder {
	w, h := screen.Size()
	e := &Encoder{
		screen: screen,
		logger: zap.NewNop(),
		width:  max(w/2, 1),
		height: max(h/2, 1),
		fps:    20,
	}
	for _, opt := range options {
		opt(e)
	}
	e.logger = e.logger.Named("snapshot")
	return e
}

// Size returns the output dimensions in pixels.
func (e *Encoder) Size() (int, int) {
	return e.width, e.height
}

// Frame renders the display at one instant and scales it to the output size.
//
// Parameters:
//   - elapsed: seconds since the animation started
//
// Returns:
//   - *image.RGBA: a new image owned by the caller
func (e *Encoder) Frame(elapsed float64) *image.RGBA {
	src := e.screen.Render(elapsed)
	dst := image.NewRGBA(image.Rect(0, 0, e.width, e.height))
	if src.Bounds().Size() == dst.Bounds().Size() {
		copy(dst.Pix, src.Pix)
		return dst
	}
	// The display is opaque, so filtering straight RGBA leaves no halo.
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Still writes one lossless WebP frame.
//
// Parameters:
//   - w: the destination
//   - elapsed: seconds since the animation started
//
// Returns:
//   - error: error if encoding fails
func (e *Encoder) Still(w io.Writer, elapsed float64) error {
	if err := nativewebp.Encode(w, e.Frame(elapsed), nil); err != nil {
		return fmt.Errorf("snapshot: encode still: %w", err)
	}
	e.logger.Debug("still written", zap.Float64("elapsed", elapsed), zap.Int("width", e.width), zap.Int("height", e.height))
	return nil
}

// Frames returns the sample times of an animation over [from, to).
//
// Parameters:
//   - from: the first sample in seconds
//   - to: the end of the range in seconds
//
// Returns:
//   - []float64: the sample times, at most maxFrames
func (e *Encoder) Frames(from, to float64) []float64 {
	if !(to > from) || e.fps <= 0 {
		return nil
	}
	n := int(math.Ceil((to - from) * e.fps))
	n = min(n, maxFrames)
	times := make([]float64, n)
	for i := range times {
		times[i] = from + float64(i)/e.fps
	}
	return times
}

// Animation writes an animated WebP covering [from, to) at the encoder frame rate.
//
// Parameters:
//   - w: the destination
//   - from: the first sample in seconds
//   - to: the end of the range in seconds
//
// Returns:
//   - error: ErrEmptyRange when no frame falls in the range, or an encoding error
func (e *Encoder) Animation(w io.Writer, from, to float64) error {
	times := e.Frames(from, to)
	if len(times) == 0 {
		return fmt.Errorf("%w: [%g, %g)", ErrEmptyRange, from, to)
	}

	delay := uint(math.Round(1000 / e.fps))
	ani := &nativewebp.Animation{
		Images:    make([]image.Image, len(times)),
		Durations: make([]uint, len(times)),
		Disposals: make([]uint, len(times)),
		LoopCount: e.loops,
	}
	for i, t := range times {
		ani.Images[i] = e.Frame(t)
		ani.Durations[i] = delay
	}
	if err := nativewebp.EncodeAll(w, ani, nil); err != nil {
		return fmt.Errorf("snapshot: encode animation: %w", err)
	}
	e.logger.Debug("animation written", zap.Int("frames", len(times)), zap.Uint("delay_ms", delay))
	return nil
}
