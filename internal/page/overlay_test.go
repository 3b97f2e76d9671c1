package page

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOverlay(t *testing.T, l *Layout) (*Overlay, *fakeSink) {
	t.Helper()
	o := NewOverlay(fakeText{})
	sink := &fakeSink{}
	require.NoError(t, o.SetLayout(l, sink))
	return o, sink
}

func TestOverlay_UploadsEveryPaintedBlock(t *testing.T) {
	l := build(t, locale.EN, 1280, 800)
	o, sink := newOverlay(t, l)

	for _, b := range append(append([]Block{}, l.Blocks...), l.Slides...) {
		size, ok := sink.sizes[TextureKey(b.ID)]
		if len(b.Parts) == 0 {
			assert.False(t, ok, "block %s has nothing to paint", b.ID)
			continue
		}
		require.True(t, ok, "block %s", b.ID)
		assert.Greater(t, size.X, 0)
	}

	page, fixed := o.Scenes()
	assert.Equal(t, ScenePage, page.Name())
	assert.Equal(t, SceneFixed, fixed.Name())
	assert.NotNil(t, fixed.Root().Find(BlockToggle))
	assert.Nil(t, page.Root().Find(BlockToggle))
	assert.NotNil(t, page.Root().Find("hero.title"))
	assert.Equal(t, float32(1280), page.Viewport().Width)
	assert.Same(t, l, o.Layout())
}

func TestOverlay_RevealsOnScroll(t *testing.T) {
	l := build(t, locale.EN, 1280, 800)
	o, _ := newOverlay(t, l)
	page, fixed := o.Scenes()
	start := time.Unix(100, 0)

	o.Update(0, start)
	title := page.Root().Find("hero.title")
	require.NotNil(t, title)
	assert.True(t, o.Tracker().Block("hero.title").Visible())
	assert.False(t, title.Visible, "revealed blocks start fully transparent")

	o.Update(0, start.Add(2*time.Second))
	assert.True(t, title.Visible)
	assert.InDelta(t, -(l.Blocks[0].Rect.Y + l.Blocks[0].Rect.H/2), title.Position.Y(), 1e-3)

	features := page.Root().Find("features.f1")
	require.NotNil(t, features)
	assert.False(t, features.Visible)
	assert.False(t, o.Tracker().Block("features.f1").Visible())

	assert.False(t, fixed.Root().Find(BlockNavBar).Visible, "bar is clear at the top")
	assert.True(t, fixed.Root().Find(BlockToggle).Visible)

	f1, _ := l.Block("features.f1")
	scrollY := f1.Rect.Y - 200
	o.Update(scrollY, start.Add(3*time.Second))
	assert.True(t, o.Tracker().Block("features.f1").Visible())
	assert.True(t, fixed.Root().Find(BlockNavBar).Visible)
	assert.InDelta(t, -(scrollY + 400), page.Camera().Position().Y(), 1e-3)
	assert.InDelta(t, -400, fixed.Camera().Position().Y(), 1e-3)
}

func TestOverlay_CanvasRect(t *testing.T) {
	l := build(t, locale.EN, 1280, 800)
	o, _ := newOverlay(t, l)
	now := time.Unix(100, 0)
	o.Update(100, now)

	hero, ok := o.CanvasRect(CanvasHero, 100, now)
	require.True(t, ok)
	assert.Equal(t, float32(-100), hero.Y)
	assert.Equal(t, float32(640), hero.X)

	_, ok = o.CanvasRect(CanvasLayers, 100, now)
	assert.False(t, ok, "hidden until revealed")

	layers, _ := l.Canvas(CanvasLayers)
	scrollY := layers.Rect.Y - 100
	o.Update(scrollY, now)
	later := now.Add(5 * time.Second)
	vp, ok := o.CanvasRect(CanvasLayers, scrollY, later)
	require.True(t, ok)
	assert.InDelta(t, 100, vp.Y, 1e-3)
	assert.InDelta(t, layers.Rect.X, vp.X, 1e-3, "slide finished")

	_, ok = o.CanvasRect("missing", 0, now)
	assert.False(t, ok)
}

func TestOverlay_RelayoutKeepsReveals(t *testing.T) {
	o, _ := newOverlay(t, build(t, locale.EN, 1280, 800))
	now := time.Unix(100, 0)
	o.Update(0, now)
	before := o.Tracker().Block("hero.title")
	count := len(o.Tracker().Blocks())

	pt := build(t, locale.PT, 1280, 800)
	require.NoError(t, o.SetLayout(pt, &fakeSink{}))
	assert.Same(t, before, o.Tracker().Block("hero.title"))
	assert.True(t, before.Visible())
	assert.Len(t, o.Tracker().Blocks(), count)

	page, _ := o.Scenes()
	assert.Len(t, page.Root().Children(), 1, "old quads are dropped")
}

func TestOverlay_ClickDrivesCarousel(t *testing.T) {
	l := build(t, locale.EN, 1280, 800)
	o, _ := newOverlay(t, l)
	now := time.Unix(100, 0)
	arrows, _ := l.Block("interface.arrows")
	scrollY := arrows.Rect.Y - 176

	p, ok := o.Click(arrows.Rect.X+88, 200, scrollY, now)
	require.True(t, ok)
	assert.Equal(t, ActionNextSlide, p.Action)
	assert.Equal(t, 1, o.Carousel().Active())

	p, ok = o.Click(arrows.Rect.X+24, 200, scrollY, now)
	require.True(t, ok)
	assert.Equal(t, ActionPrevSlide, p.Action)
	assert.Equal(t, 0, o.Carousel().Active())

	p, ok = o.Click(40, 750, scrollY, now)
	require.True(t, ok)
	assert.Equal(t, ActionToggleLocale, p.Action)

	_, ok = o.Click(640, 400, 900, now)
	assert.False(t, ok)
}

func TestOverlay_SlidesFollowTrack(t *testing.T) {
	l := build(t, locale.EN, 1280, 800)
	o, _ := newOverlay(t, l)
	carousel, _ := l.Block(BlockCarousel)
	scrollY := carousel.Rect.Y - 100
	now := time.Unix(100, 0)

	o.Update(scrollY, now)
	settled := now.Add(5 * time.Second)
	o.Update(scrollY, settled)
	page, _ := o.Scenes()
	first := page.Root().Find(SlideID(Screens[0].Key))
	require.NotNil(t, first)
	x0 := first.Position.X()
	assert.InDelta(t, l.Slides[0].Rect.X+l.Slides[0].Rect.W/2, x0, 1e-3)

	o.Carousel().Next(settled)
	o.Update(scrollY, settled.Add(5*time.Second))
	assert.InDelta(t, x0-SlideTravel, first.Position.X(), 1e-3)
	assert.InDelta(t, l.Slides[0].Rect.W*inactiveScale, first.Scale.X(), 1e-3)
}

func TestOverlay_PixelScale(t *testing.T) {
	l := build(t, locale.EN, 1280, 800)
	o := NewOverlay(fakeText{}, WithPixelScale(2))
	sink := &fakeSink{}
	require.NoError(t, o.SetLayout(l, sink))
	now := time.Unix(100, 0)
	o.Update(100, now)

	page, _ := o.Scenes()
	assert.Equal(t, float32(2560), page.Viewport().Width)
	assert.Equal(t, float32(1600), page.Viewport().Height)

	title, ok := l.Block("hero.title")
	require.True(t, ok)
	assert.Equal(t, int(math.Ceil(title.Rect.W*2)), sink.sizes[TextureKey("hero.title")].X)

	hero, ok := o.CanvasRect(CanvasHero, 100, now)
	require.True(t, ok)
	assert.Equal(t, float32(-200), hero.Y)
	assert.Equal(t, float32(1280), hero.X)

	p, ok := o.Click(80, 1500, 100, now)
	require.True(t, ok)
	assert.Equal(t, ActionToggleLocale, p.Action)

	o.SetPixelScale(1)
	require.NoError(t, o.SetLayout(l, sink))
	assert.Equal(t, float32(1280), page.Viewport().Width)
	assert.Equal(t, int(math.Ceil(title.Rect.W)), sink.sizes[TextureKey("hero.title")].X)
}

func TestOverlay_MobileMenu(t *testing.T) {
	l := build(t, locale.EN, 390, 800)
	o, _ := newOverlay(t, l)
	_, fixed := o.Scenes()
	now := time.Unix(100, 0)

	node := fixed.Root().Find(BlockMenu)
	require.NotNil(t, node)
	o.Update(0, now)
	assert.False(t, node.Visible)

	bx, by := partAt(t, l, BlockNav, ActionToggleMenu, "")
	p, ok := o.Click(bx, by, 0, now)
	require.True(t, ok)
	assert.Equal(t, ActionToggleMenu, p.Action)
	assert.True(t, o.MenuOpen())
	o.Update(0, now)
	assert.True(t, node.Visible)

	p, ok = o.Click(10, 120, 0, now)
	assert.True(t, ok, "the open menu claims every click")
	assert.Equal(t, ActionNone, p.Action)
	assert.True(t, o.MenuOpen())

	lx, ly := partAt(t, l, BlockMenu, ActionScrollTo, SectionFeatures)
	p, ok = o.Click(lx, ly, 0, now)
	require.True(t, ok)
	assert.Equal(t, SectionFeatures, p.Target)
	assert.False(t, o.MenuOpen(), "following a link closes the menu")

	_, _ = o.Click(bx, by, 0, now)
	cx, cy := partAt(t, l, BlockMenu, ActionCloseMenu, "")
	p, ok = o.Click(cx, cy, 0, now)
	require.True(t, ok)
	assert.Equal(t, ActionCloseMenu, p.Action)
	assert.False(t, o.MenuOpen())

	_, _ = o.Click(bx, by, 0, now)
	_, _ = o.Click(bx, by, 0, now)
	assert.False(t, o.MenuOpen(), "the button toggles")

	_, _ = o.Click(bx, by, 0, now)
	require.NoError(t, o.SetLayout(build(t, locale.EN, 1280, 800), &fakeSink{}))
	assert.False(t, o.MenuOpen(), "a layout without a menu closes it")
}
