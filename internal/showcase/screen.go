package showcase

import (
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/nova-showcase/common"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ScreenTexture is the renderer texture key the animated display is uploaded under.
const ScreenTexture = "screen"

const (
	// screenCameraZ and screenFov describe the virtual camera looking at the display content.
	screenCameraZ = 2.0
	screenFov     = 50 * math.Pi / 180

	// screenOverlayZ is the depth of the rings, particles and bars in front of the blobs.
	screenOverlayZ = 0.1
)

// blob is a soft colored disc drifting on a Lissajous path.
type blob struct {
	color   string
	opacity float64
	scale   float64
	speed   float64
	offset  float64
}

// ring is a thin annulus spinning about the display center.
type ring struct {
	radius  float64
	width   float64
	opacity float64
	speed   float64
	color   string
}

// dot is a small static particle.
type dot struct {
	x, y    float64
	radius  float64
	color   string
	opacity float64
}

// bar is a hairline rectangle.
type bar struct {
	y, width float64
	opacity  float64
}

var (
	screenBackground = "#050505"

	screenBlobs = []blob{
		{color: "#0c0a20", opacity: 0.8, scale: 4, speed: 0.1},
		{color: "#1e3a8a", opacity: 0.4, scale: 3, speed: 0.2},
		{color: "#3BAFFF", opacity: 0.2, scale: 2, speed: 0.3, offset: 10},
		{color: "#7c3aed", opacity: 0.15, scale: 1.5, speed: 0.4, offset: 20},
	}

	screenRings = []ring{
		{radius: 0.1, width: 0.01, opacity: 0.6, speed: 0.8, color: "#ffffff"},
		{radius: 0.15, width: 0.005, opacity: 0.5, speed: 0.5, color: "#3BAFFF"},
		{radius: 0.22, width: 0.002, opacity: 0.3, speed: -0.3, color: "#3BAFFF"},
		{radius: 0.35, width: 0.001, opacity: 0.15, speed: 0.1, color: "#3BAFFF"},
		{radius: 0.6, width: 0.002, opacity: 0.05, speed: 0.05, color: "#3BAFFF"},
	}

	screenDots = []dot{
		{x: 0.2, y: 0.4, radius: 0.01, color: "#3BAFFF", opacity: 0.8},
		{x: -0.2, y: -0.3, radius: 0.015, color: "#3BAFFF", opacity: 0.6},
		{x: 0.3, y: -0.5, radius: 0.008, color: "#ffffff", opacity: 0.4},
	}

	screenBars = []bar{
		{y: 0.9, width: 0.2, opacity: 0.4},
		{y: -0.9, width: 0.4, opacity: 0.3},
	}
)

// shape is one filled polygon in pixel space, optionally with a hole, painted in order.
type shape struct {
	outer []vec2
	inner []vec2
	fill  *image.Uniform
	minY  float32
	maxY  float32
}

type vec2 struct {
	x, y float32
}

// Screen rasterizes the animated phone display into an RGBA image.
// The picture is a pure function of elapsed time, so a frame can be reproduced for snapshots.
//
// Rows are split into horizontal bands painted concurrently on a worker pool; each band owns its
// rows of the destination, so no locking is needed around the pixels.
type Screen struct {
	mu     *sync.Mutex
	logger *zap.Logger

	width, height int
	bands         int
	workers       int
	pool          worker.DynamicWorkerPool

	img *image.RGBA
}

// NewScreen creates a display rasterizer and applies the options.
//
// Parameters:
//   - options: functional options configuring size and parallelism
//
// Returns:
//   - *Screen: the rasterizer; Close releases its worker pool
func NewScreen(options ...ScreenBuilderOption) *Screen {
	s := &Screen{
		mu:      &sync.Mutex{},
		logger:  zap.NewNop(),
		width:   352,
		height:  736,
		bands:   8,
		workers: 4,
	}
	for _, opt := range options {
		opt(s)
	}
	s.bands = max(1, min(s.bands, s.height))
	if s.workers > 1 && s.bands > 1 {
		s.pool = worker.NewDynamicWorkerPool(s.workers, 256, time.Second)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	return s
}

// Size returns the image dimensions in pixels.
func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

// Render paints the display at the given time. The returned image is reused by the next call.
//
// Parameters:
//   - elapsed: seconds since the animation started
//
// Returns:
//   - *image.RGBA: the painted display, fully opaque
func (s *Screen) Render(elapsed float64) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	shapes := s.shapesAt(elapsed)
	bands := s.bandRects()
	if s.pool == nil {
		for _, b := range bands {
			paintBand(s.img, b, shapes)
		}
		return s.img
	}

	var wg sync.WaitGroup
	for i, b := range bands {
		wg.Add(1)
		band := b
		s.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				paintBand(s.img, band, shapes)
				return nil, nil
			},
		})
	}
	wg.Wait()
	return s.img
}

// Close stops the worker pool.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Stop()
		s.pool = nil
		s.logger.Debug("worker pool stopped", zap.Int("workers", s.workers))
	}
}

func (s *Screen) bandRects() []image.Rectangle {
	out := make([]image.Rectangle, 0, s.bands)
	step := (s.height + s.bands - 1) / s.bands
	for y := 0; y < s.height; y += step {
		out = append(out, image.Rect(0, y, s.width, min(y+step, s.height)))
	}
	return out
}

// pixelScale is the number of pixels per world unit at depth z.
func (s *Screen) pixelScale(z float64) float64 {
	halfHeight := (screenCameraZ - z) * math.Tan(screenFov/2)
	return float64(s.height) / (2 * halfHeight)
}

func (s *Screen) toPixel(x, y, z float64) vec2 {
	k := s.pixelScale(z)
	return vec2{
		x: float32(float64(s.width)/2 + x*k),
		y: float32(float64(s.height)/2 - y*k),
	}
}

// polygon returns a regular n-gon centered on (cx, cy) at depth z, rotated by angle.
func (s *Screen) polygon(cx, cy, z, radius, angle float64, segments int, reverse bool) []vec2 {
	pts := make([]vec2, segments)
	for i := range segments {
		a := angle + float64(i)/float64(segments)*2*math.Pi
		if reverse {
			a = angle - float64(i)/float64(segments)*2*math.Pi
		}
		pts[i] = s.toPixel(cx+radius*math.Cos(a), cy+radius*math.Sin(a), z)
	}
	return pts
}

func (s *Screen) shapesAt(elapsed float64) []shape {
	out := make([]shape, 0, len(screenBlobs)+len(screenRings)+len(screenDots)+len(screenBars))
	for _, b := range screenBlobs {
		t := elapsed*b.speed + b.offset
		r := b.scale + math.Sin(t*2)*0.1
		out = append(out, newShape(s.polygon(math.Sin(t)*0.4, math.Cos(t*0.8)*0.6, 0, r, 0, 32, false), nil, b.color, b.opacity))
	}
	for _, r := range screenRings {
		angle := elapsed * r.speed
		outer := s.polygon(0, 0, screenOverlayZ, r.radius+r.width, angle, 64, false)
		inner := s.polygon(0, 0, screenOverlayZ, r.radius, angle, 64, true)
		out = append(out, newShape(outer, inner, r.color, r.opacity))
	}
	for _, d := range screenDots {
		out = append(out, newShape(s.polygon(d.x, d.y, screenOverlayZ, d.radius, 0, 8, false), nil, d.color, d.opacity))
	}
	for _, b := range screenBars {
		hw, hh := b.width/2, 0.0025
		rect := []vec2{
			s.toPixel(-hw, b.y+hh, screenOverlayZ),
			s.toPixel(hw, b.y+hh, screenOverlayZ),
			s.toPixel(hw, b.y-hh, screenOverlayZ),
			s.toPixel(-hw, b.y-hh, screenOverlayZ),
		}
		out = append(out, newShape(rect, nil, "#ffffff", b.opacity))
	}
	return out
}

func newShape(outer, inner []vec2, hex string, opacity float64) shape {
	c := common.MustHexColor(hex)
	sh := shape{
		outer: outer,
		inner: inner,
		fill: image.NewUniform(color.NRGBA{
			R: uint8(c[0]*255 + 0.5),
			G: uint8(c[1]*255 + 0.5),
			B: uint8(c[2]*255 + 0.5),
			A: uint8(common.Clamp(opacity, 0, 1)*255 + 0.5),
		}),
		minY: float32(math.Inf(1)),
		maxY: float32(math.Inf(-1)),
	}
	for _, p := range outer {
		sh.minY = min(sh.minY, p.y)
		sh.maxY = max(sh.maxY, p.y)
	}
	return sh
}

// paintBand clears one band to the background and composites every shape that overlaps it.
func paintBand(dst *image.RGBA, band image.Rectangle, shapes []shape) {
	bg := common.MustHexColor(screenBackground)
	draw.Draw(dst, band, image.NewUniform(color.NRGBA{
		R: uint8(bg[0]*255 + 0.5),
		G: uint8(bg[1]*255 + 0.5),
		B: uint8(bg[2]*255 + 0.5),
		A: 255,
	}), image.Point{}, draw.Src)

	z := vector.NewRasterizer(band.Dx(), band.Dy())
	dy := float32(band.Min.Y)
	for _, sh := range shapes {
		if sh.maxY < float32(band.Min.Y) || sh.minY > float32(band.Max.Y) {
			continue
		}
		z.Reset(band.Dx(), band.Dy())
		tracePath(z, sh.outer, dy)
		if len(sh.inner) > 0 {
			tracePath(z, sh.inner, dy)
		}
		z.Draw(dst, band, sh.fill, image.Point{})
	}
}

func tracePath(z *vector.Rasterizer, pts []vec2, dy float32) {
	if len(pts) == 0 {
		return
	}
	z.MoveTo(pts[0].x, pts[0].y-dy)
	for _, p := range pts[1:] {
		z.LineTo(p.x, p.y-dy)
	}
	z.ClosePath()
}
