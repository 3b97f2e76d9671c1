package page

import (
	"fmt"
	"image"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/engine/camera"
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"go.uber.org/zap"
)

// Overlay scene names.
const (
	ScenePage  = "page"
	SceneFixed = "page-fixed"
)

// navBarOpacity is the backdrop opacity of the navigation bar once the page has scrolled.
const navBarOpacity = 0.95

// TextureSink receives painted textures. The renderer implements it.
type TextureSink interface {
	UpdateTexture(key string, img image.Image) error
}

// TextureKey is the renderer texture key of a block.
func TextureKey(blockID string) string {
	return "page/" + blockID
}

// CanvasRevealID is the reveal block id observing a canvas.
func CanvasRevealID(sceneName string) string {
	return "canvas." + sceneName
}

// item is one drawn block.
type item struct {
	block Block
	node  *scene.Node
	mat   material.Material
	// slide is the carousel index, or -1.
	slide int
}

// Overlay draws the page itself: section backgrounds and every block as a textured quad in an
// orthographic scene measured in pixels. Fixed blocks live in a second scene drawn over the 3D canvases.
type Overlay struct {
	logger  *zap.Logger
	text    TextRenderer
	painter *Painter
	// scale is framebuffer pixels per layout pixel.
	scale    float64
	tracker  *reveal.Tracker
	carousel *Carousel

	page  scene.Scene
	fixed scene.Scene
	plane *model.Mesh

	layout      *Layout
	pageContent *scene.Node
	fixContent  *scene.Node
	items       []*item
	menuOpen    bool
}

// NewOverlay creates the page scenes. Call SetLayout before the first Update.
//
// Parameters:
//   - text: draws labels into block textures
//   - options: functional options for the overlay
//
// Returns:
//   - *Overlay: the overlay
func NewOverlay(text TextRenderer, options ...OverlayBuilderOption) *Overlay {
	cfg := overlayConfig{logger: zap.NewNop(), scale: 1}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.tracker == nil {
		cfg.tracker = reveal.NewTracker(reveal.WithLogger(cfg.logger))
	}

	newCam := func() camera.Camera {
		return camera.NewCamera(camera.WithPosition(0, 0, 10), camera.WithTarget(0, 0, 0),
			camera.WithClip(0.1, 100), camera.WithOrthographic(1))
	}
	return &Overlay{
		logger:   cfg.logger.Named("page"),
		text:     text,
		painter:  NewPainter(text, cfg.scale),
		scale:    cfg.scale,
		tracker:  cfg.tracker,
		carousel: NewCarousel(len(Screens)),
		page:     scene.NewScene(ScenePage, newCam(), scene.WithBackground(ColorBackground)),
		fixed:    scene.NewScene(SceneFixed, newCam()),
		plane:    model.NewPlane(1, 1),
	}
}

// Scenes returns the page scene, drawn before the canvases, and the fixed scene, drawn after them.
func (o *Overlay) Scenes() (page, fixed scene.Scene) {
	return o.page, o.fixed
}

// Tracker returns the reveal tracker observing the blocks.
func (o *Overlay) Tracker() *reveal.Tracker {
	return o.tracker
}

// Carousel returns the interface slider.
func (o *Overlay) Carousel() *Carousel {
	return o.carousel
}

// PixelScale returns the framebuffer pixels per layout pixel.
func (o *Overlay) PixelScale() float64 {
	return o.scale
}

// SetPixelScale changes the framebuffer pixels per layout pixel, for example after the window moved
// to a display with another content scale. It takes effect with the next SetLayout.
//
// Parameters:
//   - scale: framebuffer pixels per layout pixel; non-positive values are ignored
func (o *Overlay) SetPixelScale(scale float64) {
	if scale <= 0 || scale == o.scale {
		return
	}
	o.scale = scale
	o.painter = NewPainter(o.text, scale)
}

// MenuOpen reports whether the narrow-layout navigation menu is shown.
func (o *Overlay) MenuOpen() bool {
	return o.menuOpen
}

// Layout returns the current layout.
func (o *Overlay) Layout() *Layout {
	return o.layout
}

// SetLayout rebuilds the quads for a new layout and uploads every block texture. Blocks that keep
// their id keep their reveal state, so a language switch or a resize does not replay the reveals.
//
// Parameters:
//   - l: the layout to draw
//   - sink: receives the block textures
//
// Returns:
//   - error: an error if a block cannot be painted or uploaded
func (o *Overlay) SetLayout(l *Layout, sink TextureSink) error {
	pageContent := scene.NewNode("page-content")
	fixContent := scene.NewNode("page-fixed-content")
	var items []*item

	for _, s := range l.Sections {
		mat := material.NewMaterial(material.WithName("section-"+s.ID), material.WithBasic(),
			material.WithColor(s.Fill), material.WithToneMapped(false))
		n := scene.NewNode("section-"+s.ID, scene.WithMesh(o.plane, mat))
		place(n, s.Rect, 0)
		pageContent.Add(n)
	}

	add := func(b Block, slide int) error {
		if len(b.Parts) == 0 {
			return nil
		}
		img, err := o.painter.Paint(b)
		if err != nil {
			return err
		}
		key := TextureKey(b.ID)
		if err := sink.UpdateTexture(key, img); err != nil {
			return fmt.Errorf("page: upload %s: %w", key, err)
		}
		mat := material.NewMaterial(material.WithName(key), material.WithBasic(), material.WithTexture(key),
			material.WithOpacity(1), material.WithToneMapped(false))
		order := 1
		if b.ID == BlockNavBar {
			order = 0
		}
		n := scene.NewNode(b.ID, scene.WithMesh(o.plane, mat), scene.WithRenderOrder(order))
		if b.Fixed {
			fixContent.Add(n)
		} else {
			pageContent.Add(n)
		}
		items = append(items, &item{block: b, node: n, mat: mat, slide: slide})
		return nil
	}
	for _, b := range l.Blocks {
		if err := add(b, -1); err != nil {
			return err
		}
		if !b.Fixed {
			o.observe(b.ID, b.Rect, b.Delay, b.Direction)
		}
	}
	for i, b := range l.Slides {
		if err := add(b, i); err != nil {
			return err
		}
	}
	for _, c := range l.Canvases {
		if c.Reveal {
			o.observe(CanvasRevealID(c.Scene), c.Rect, c.Delay, c.Direction)
		}
	}

	if o.pageContent != nil {
		o.page.Root().Remove(o.pageContent)
		o.fixed.Root().Remove(o.fixContent)
	}
	o.page.Root().Add(pageContent)
	o.fixed.Root().Add(fixContent)
	o.pageContent, o.fixContent = pageContent, fixContent
	o.items = items
	o.layout = l
	if _, ok := l.Block(BlockMenu); !ok {
		o.menuOpen = false
	}

	vp := scene.Viewport{Width: float32(l.Width * o.scale), Height: float32(l.ViewportHeight * o.scale)}
	for _, sc := range []scene.Scene{o.page, o.fixed} {
		sc.SetViewport(vp)
		sc.Camera().SetOrthographic(float32(l.ViewportHeight))
	}
	o.logger.Debug("page laid out",
		zap.Float64("width", l.Width), zap.Float64("height", l.Height), zap.Int("blocks", len(items)))
	return nil
}

func (o *Overlay) observe(id string, r reveal.Rect, delay time.Duration, dir reveal.Direction) {
	if b := o.tracker.Block(id); b != nil {
		b.SetBounds(r)
		return
	}
	o.tracker.Observe(id, r, reveal.WithDelay(delay), reveal.WithDirection(dir))
}

// Update reveals blocks entering the viewport and moves every quad for this frame.
//
// Parameters:
//   - scrollY: the scroll offset
//   - now: the frame time
func (o *Overlay) Update(scrollY float64, now time.Time) {
	l := o.layout
	if l == nil {
		return
	}
	view := reveal.Rect{Y: scrollY, W: l.Width, H: l.ViewportHeight}
	o.tracker.Update(view, now)

	cx := float32(l.Width / 2)
	cy := -float32(scrollY + l.ViewportHeight/2)
	o.page.Camera().SetPosition([3]float32{cx, cy, 10})
	o.page.Camera().SetTarget([3]float32{cx, cy, 0})
	fy := -float32(l.ViewportHeight / 2)
	o.fixed.Camera().SetPosition([3]float32{cx, fy, 10})
	o.fixed.Camera().SetTarget([3]float32{cx, fy, 0})

	var carouselProgress, carouselDX, carouselDY float64
	if cb := o.tracker.Block(BlockCarousel); cb != nil {
		carouselProgress = cb.Progress(now)
		carouselDX, carouselDY = cb.Offset(now)
	}
	track := o.carousel.Offset(now)

	for _, it := range o.items {
		r := it.block.Rect
		opacity := 1.0
		switch {
		case it.block.ID == BlockNavBar:
			if !NavScrolled(scrollY) {
				opacity = 0
			} else {
				opacity = navBarOpacity
			}
		case it.block.Menu:
			if !o.menuOpen {
				opacity = 0
			}
		case it.block.Fixed:
		case it.slide >= 0:
			s, a := o.carousel.Focus(it.slide, now)
			r.X += carouselDX - track
			r.Y += carouselDY
			r = scaleAbout(r, s)
			opacity = a * carouselProgress
		default:
			rb := o.tracker.Block(it.block.ID)
			if rb == nil {
				break
			}
			dx, dy := rb.Offset(now)
			r.X += dx
			r.Y += dy
			opacity = rb.Progress(now)
		}
		it.mat.SetOpacity(float32(opacity))

		onScreen := it.block.Fixed || (r.Y+r.H >= scrollY && r.Y <= scrollY+l.ViewportHeight)
		it.node.Visible = opacity > 0 && onScreen
		place(it.node, r, 1)
	}
}

// CanvasRect returns where a canvas is on screen this frame, with its reveal slide applied.
//
// Parameters:
//   - sceneName: the canvas scene
//   - scrollY: the scroll offset
//   - now: the frame time
//
// Returns:
//   - scene.Viewport: the canvas in framebuffer pixels, possibly extending off screen
//   - bool: false when the canvas is unknown or not revealed yet
func (o *Overlay) CanvasRect(sceneName string, scrollY float64, now time.Time) (scene.Viewport, bool) {
	if o.layout == nil {
		return scene.Viewport{}, false
	}
	c, ok := o.layout.Canvas(sceneName)
	if !ok {
		return scene.Viewport{}, false
	}
	r := c.Rect
	r.Y -= scrollY
	if c.Reveal {
		rb := o.tracker.Block(CanvasRevealID(sceneName))
		if rb == nil || rb.Progress(now) <= 0 {
			return scene.Viewport{}, false
		}
		dx, dy := rb.Offset(now)
		r.X += dx
		r.Y += dy
	}
	s := o.scale
	return scene.Viewport{X: float32(r.X * s), Y: float32(r.Y * s), Width: float32(r.W * s), Height: float32(r.H * s)}, true
}

// Click applies a click at a viewport position. Carousel arrows and the navigation menu are handled
// here; the returned part tells the caller about the other actions. While the menu is open every
// click is claimed.
//
// Parameters:
//   - x, y: the click in framebuffer pixels
//   - scrollY: the scroll offset
//   - now: the click time
//
// Returns:
//   - Part: the clicked part
//   - bool: false when nothing clickable was hit
func (o *Overlay) Click(x, y, scrollY float64, now time.Time) (Part, bool) {
	if o.layout == nil {
		return Part{}, false
	}
	p, ok := o.layout.Hit(x/o.scale, y/o.scale, scrollY, o.menuOpen)
	if !ok {
		// the open menu covers the page and the canvases
		return Part{}, o.menuOpen
	}
	switch p.Action {
	case ActionPrevSlide:
		o.carousel.Prev(now)
	case ActionNextSlide:
		o.carousel.Next(now)
	case ActionToggleMenu:
		o.menuOpen = !o.menuOpen
	case ActionScrollTo, ActionCloseMenu:
		o.menuOpen = false
	}
	o.logger.Debug("page click", zap.Uint8("action", uint8(p.Action)), zap.String("target", p.Target))
	return p, true
}

// place sizes a unit quad to a page rectangle. Page y grows down, world y grows up.
func place(n *scene.Node, r reveal.Rect, z float32) {
	n.Position = [3]float32{float32(r.X + r.W/2), -float32(r.Y + r.H/2), z}
	n.Scale = [3]float32{float32(r.W), float32(r.H), 1}
}

// scaleAbout shrinks a rectangle around its center.
func scaleAbout(r reveal.Rect, s float64) reveal.Rect {
	w, h := r.W*s, r.H*s
	return reveal.Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}
