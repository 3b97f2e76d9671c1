package app

import (
	"context"
	"image"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/engine"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/engine/window"
	"github.com/Carmen-Shannon/nova-showcase/internal/config"
	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/Carmen-Shannon/nova-showcase/internal/page"
	"github.com/Carmen-Shannon/nova-showcase/internal/showcase"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/Carmen-Shannon/automation/tools/worker.(*worker).Start.func1"))
}

// fakeWindow runs a fixed number of iterations and keeps the input callbacks so tests can drive them.
type fakeWindow struct {
	iterations int
	running    bool
	onUpdate   func()
	onResize   func(int, int)
	onScroll   func(float64, float64)
	onKey      func(uint32)
	onButton   func(window.MouseButton, bool, float64, float64)
	onMove     func(float64, float64)

	width, height int
	scale         float64
}

func (w *fakeWindow) SetUpdateCallback(cb func())                    { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(int, int))            { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(float64, float64))    { w.onScroll = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(uint32))             { w.onKey = cb }
func (w *fakeWindow) SetKeyUpCallback(func(uint32))                  {}
func (w *fakeWindow) SetMouseMoveCallback(cb func(float64, float64)) { w.onMove = cb }
func (w *fakeWindow) CursorPosition() (float64, float64)             { return 0, 0 }
func (w *fakeWindow) SetTitle(string)                                {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor     { return nil }
func (w *fakeWindow) IsRunning() bool                                { return w.running }
func (w *fakeWindow) RequestClose()                                  { w.running = false }
func (w *fakeWindow) Close() error                                   { return nil }
func (w *fakeWindow) Width() int                                     { return w.width }
func (w *fakeWindow) Height() int                                    { return w.height }
func (w *fakeWindow) ContentScale() float64                          { return w.scale }
func (w *fakeWindow) SetMouseButtonCallback(cb func(window.MouseButton, bool, float64, float64)) {
	w.onButton = cb
}

func (w *fakeWindow) ProcessMessages() {
	w.running = true
	for i := 0; i < w.iterations && w.running; i++ {
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
	w.running = false
}

type fakeRenderer struct {
	textures map[string]image.Point
	drawn    []string
}

func (r *fakeRenderer) Resize(int, int)                     {}
func (r *fakeRenderer) Size() (int, int)                    { return 1280, 800 }
func (r *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (r *fakeRenderer) BeginFrame() error                   { return nil }
func (r *fakeRenderer) EndFrame()                           {}
func (r *fakeRenderer) Present()                            {}
func (r *fakeRenderer) Close()                              {}

func (r *fakeRenderer) UpdateTexture(key string, img image.Image) error {
	if r.textures == nil {
		r.textures = make(map[string]image.Point)
	}
	r.textures[key] = img.Bounds().Size()
	return nil
}

func (r *fakeRenderer) DrawScene(s scene.Scene) error {
	r.drawn = append(r.drawn, s.Name())
	return nil
}

type fixture struct {
	app   *App
	eng   engine.Engine
	win   *fakeWindow
	rend  *fakeRenderer
	store *locale.Store
	clock *time.Time
}

func newFixture(t *testing.T, options ...AppBuilderOption) *fixture {
	t.Helper()
	return newFixtureOn(t, &fakeWindow{iterations: 1, width: 1280, height: 800, scale: 1}, options...)
}

// newFixtureOn builds the app on the given window.
func newFixtureOn(t *testing.T, win *fakeWindow, options ...AppBuilderOption) *fixture {
	t.Helper()
	rend := &fakeRenderer{}
	eng, err := engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(rend))
	require.NoError(t, err)

	catalogs, err := locale.LoadEmbedded()
	require.NoError(t, err)
	store := locale.NewStore(catalogs, locale.EN, nil)

	clock := time.Unix(1000, 0)
	f := &fixture{eng: eng, win: win, rend: rend, store: store, clock: &clock}
	cfg := config.Default()
	cfg.Render.ScreenSize = 128
	opts := append([]AppBuilderOption{WithConfig(cfg), withClock(func() time.Time { return *f.clock })}, options...)
	f.app, err = New(eng, store, opts...)
	require.NoError(t, err)
	t.Cleanup(f.app.Close)
	return f
}

// run advances the fake clock and steps n frames. The engine stops for good once Run returns, so
// frames are stepped directly.
func (f *fixture) run(t *testing.T, n int, step time.Duration) {
	t.Helper()
	for range n {
		*f.clock = f.clock.Add(step)
		f.app.frame(float32(step.Seconds()))
	}
}

func TestNew_RegistersScenesAndTextures(t *testing.T) {
	f := newFixture(t)

	names := map[int]string{}
	for k, s := range f.eng.Scenes() {
		names[k] = s.Name()
	}
	assert.Equal(t, map[int]string{
		KeyPage:   page.ScenePage,
		KeyHero:   showcase.SceneHero,
		KeyLayers: showcase.SceneLayers,
		KeyIcon:   showcase.SceneIcon,
		KeyFixed:  page.SceneFixed,
	}, names)

	assert.Contains(t, f.rend.textures, showcase.ScreenTexture)
	assert.Contains(t, f.rend.textures, showcase.MockupTexture)
	assert.Equal(t, image.Pt(61, 128), f.rend.textures[showcase.ScreenTexture])
	pageTextures := 0
	for k := range f.rend.textures {
		if strings.HasPrefix(k, "page/") {
			pageTextures++
		}
	}
	assert.Greater(t, pageTextures, 10)
}

func TestApp_FramePlacesCanvases(t *testing.T) {
	f := newFixture(t)
	f.run(t, 1, 16*time.Millisecond)

	hero := f.app.Stage().Hero().Viewport()
	assert.Equal(t, scene.Viewport{X: 640, Y: 0, Width: 640, Height: 800}, hero)
	assert.True(t, f.app.Stage().Layers().Viewport().Empty(), "layer canvas has not revealed")
	assert.True(t, f.app.Stage().Icon().Viewport().Empty(), "icon canvas has not revealed")
	assert.Equal(t, []string{page.ScenePage, showcase.SceneHero, page.SceneFixed}, drawnWithViewport(f))
}

// drawnWithViewport lists the scenes of the last frame that had somewhere to draw.
func drawnWithViewport(f *fixture) []string {
	var out []string
	for _, k := range []int{KeyPage, KeyHero, KeyLayers, KeyIcon, KeyFixed} {
		s := f.eng.Scene(k)
		if k == KeyPage || k == KeyFixed || !s.Viewport().Empty() {
			out = append(out, s.Name())
		}
	}
	return out
}

func TestApp_ScrollRevealsCanvases(t *testing.T) {
	f := newFixture(t)
	f.win.onKey(common.KeyEnd)
	f.run(t, 600, 10*time.Millisecond)

	assert.InDelta(t, f.app.Scroll().Max(), f.app.Scroll().Y(), 0.5)
	assert.True(t, f.app.Overlay().Tracker().Block(page.CanvasRevealID(page.CanvasIcon)).Visible())
	assert.True(t, f.app.Stage().Hero().Viewport().Empty(), "hero canvas scrolled away")
}

func TestApp_Keys(t *testing.T) {
	tests := []struct {
		name  string
		key   uint32
		check func(t *testing.T, f *fixture)
	}{
		{name: "language", key: common.KeyL, check: func(t *testing.T, f *fixture) {
			assert.Equal(t, locale.PT, f.store.Tag())
			assert.Equal(t, locale.PT, f.app.Overlay().Layout().Tag)
		}},
		{name: "profiler", key: common.KeyP, check: func(t *testing.T, f *fixture) {
			assert.True(t, f.eng.ProfilerEnabled())
		}},
		{name: "carousel", key: common.KeyRight, check: func(t *testing.T, f *fixture) {
			assert.Equal(t, 1, f.app.Overlay().Carousel().Active())
		}},
		{name: "scroll", key: common.KeyPageDown, check: func(t *testing.T, f *fixture) {
			assert.Equal(t, 800-page.NavHeight, f.app.Scroll().Target())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.win.onKey(tt.key)
			f.run(t, 1, 16*time.Millisecond)
			tt.check(t, f)
		})
	}
}

func TestApp_EscQuits(t *testing.T) {
	f := newFixture(t)
	f.win.onKey(common.KeyEsc)
	f.win.iterations = 5
	require.NoError(t, f.eng.Run(context.Background()))
	assert.Zero(t, f.eng.Frames())
}

func TestApp_ClickToggleAndNav(t *testing.T) {
	f := newFixture(t)
	f.run(t, 1, 16*time.Millisecond)

	// The language toggle is pinned to the bottom left of the viewport.
	f.win.onButton(window.MouseButtonLeft, true, 40, 800-72+20)
	f.run(t, 1, 16*time.Millisecond)
	assert.Equal(t, locale.PT, f.store.Tag())

	f.win.onButton(window.MouseButtonRight, true, 40, 800-72+20)
	assert.Equal(t, locale.PT, f.store.Tag(), "only the left button clicks")

	l := f.app.Overlay().Layout()
	var nav page.Part
	var found bool
	for _, b := range l.Blocks {
		for _, p := range b.Parts {
			if p.Action == page.ActionScrollTo && p.Target == page.SectionTech {
				nav, found = p, true
				nav.Rect.X += b.Rect.X
				nav.Rect.Y += b.Rect.Y
			}
		}
	}
	require.True(t, found)
	f.win.onButton(window.MouseButtonLeft, true, nav.Rect.X+nav.Rect.W/2, nav.Rect.Y+nav.Rect.H/2)
	sec, ok := l.Section(page.SectionTech)
	require.True(t, ok)
	assert.Equal(t, sec.Rect.Y-page.NavHeight, f.app.Scroll().Target())
}

func TestApp_MobileMenu(t *testing.T) {
	f := newFixtureOn(t, &fakeWindow{iterations: 1, width: 390, height: 800, scale: 1})
	f.run(t, 1, 16*time.Millisecond)
	l := f.app.Overlay().Layout()

	center := func(blockID string, action page.Action, target string) (float64, float64) {
		b, ok := l.Block(blockID)
		require.True(t, ok, blockID)
		for _, p := range b.Parts {
			if p.Action == action && p.Target == target {
				return b.Rect.X + p.Rect.X + p.Rect.W/2, b.Rect.Y + p.Rect.Y + p.Rect.H/2
			}
		}
		t.Fatalf("no part in %s", blockID)
		return 0, 0
	}

	x, y := center(page.BlockNav, page.ActionToggleMenu, "")
	f.win.onButton(window.MouseButtonLeft, true, x, y)
	assert.True(t, f.app.Overlay().MenuOpen())
	f.run(t, 1, 16*time.Millisecond)

	x, y = center(page.BlockMenu, page.ActionScrollTo, page.SectionInterface)
	f.win.onButton(window.MouseButtonLeft, true, x, y)
	assert.False(t, f.app.Overlay().MenuOpen())
	sec, ok := l.Section(page.SectionInterface)
	require.True(t, ok)
	assert.Equal(t, sec.Rect.Y-page.NavHeight, f.app.Scroll().Target())
}

func TestApp_ResizeRelaysThePage(t *testing.T) {
	f := newFixture(t)
	f.win.onResize(600, 900)
	f.run(t, 1, 16*time.Millisecond)

	l := f.app.Overlay().Layout()
	assert.Equal(t, 600.0, l.Width)
	assert.Equal(t, 900.0, l.ViewportHeight)
	assert.Equal(t, 900.0, f.app.Scroll().ViewportHeight())
}

func TestApp_HighDensityDisplay(t *testing.T) {
	f := newFixtureOn(t, &fakeWindow{iterations: 1, width: 2560, height: 1600, scale: 2})
	f.run(t, 1, 16*time.Millisecond)

	l := f.app.Overlay().Layout()
	assert.Equal(t, 1280.0, l.Width, "the page is laid out in device-independent pixels")
	assert.Equal(t, 800.0, l.ViewportHeight)
	assert.Equal(t, 2.0, f.app.Overlay().PixelScale())

	pageScene := f.eng.Scene(KeyPage)
	assert.Equal(t, scene.Viewport{Width: 2560, Height: 1600}, pageScene.Viewport())
	assert.Equal(t, scene.Viewport{X: 1280, Y: 0, Width: 1280, Height: 1600}, f.app.Stage().Hero().Viewport())

	title, ok := l.Block("hero.title")
	require.True(t, ok)
	assert.Equal(t, image.Pt(int(math.Ceil(title.Rect.W*2)), int(math.Ceil(title.Rect.H*2))),
		f.rend.textures[page.TextureKey("hero.title")])

	// Clicks arrive in framebuffer pixels.
	f.win.onButton(window.MouseButtonLeft, true, 80, 2*(800-72+20))
	assert.Equal(t, locale.PT, f.store.Tag())
}

func TestApp_ContentScaleChange(t *testing.T) {
	f := newFixture(t)
	f.win.scale = 2
	f.win.onResize(2560, 1600)
	f.run(t, 1, 16*time.Millisecond)

	l := f.app.Overlay().Layout()
	assert.Equal(t, 1280.0, l.Width)
	assert.Equal(t, 800.0, f.app.Scroll().ViewportHeight())

	// The reveal margin stays 50 layout pixels: a block 40 layout pixels past the fold stays hidden.
	f.win.onKey(common.KeyPageDown)
	f.run(t, 200, 10*time.Millisecond)
	y := f.app.Scroll().Y()
	for _, b := range f.app.Overlay().Tracker().Blocks() {
		r := b.Bounds()
		if r.Y > y+l.ViewportHeight-50 && r.Y+r.H > y+l.ViewportHeight {
			assert.False(t, b.Visible(), b.ID())
		}
	}
}

func TestApp_Reload(t *testing.T) {
	f := newFixture(t)
	cfg := config.Default()
	cfg.Pose.SpinImpulse = 4
	cfg.Reveal.Threshold = 0.5

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.app.Reload(cfg)
	}()
	<-done
	f.run(t, 1, 16*time.Millisecond)

	assert.Equal(t, 4.0, f.app.Stage().HeroPhone().Solver().Params().SpinImpulse)
	assert.Equal(t, 4.0, f.app.Stage().LayerPhone().Solver().Params().SpinImpulse)
}

func TestApp_WheelAndPointer(t *testing.T) {
	f := newFixture(t)
	f.win.onScroll(0, -2)
	assert.Equal(t, 2*page.WheelStep, f.app.Scroll().Target())

	// Off the phone the pointer still steers the pose, but nothing is hovered.
	f.win.onMove(650, 10)
	f.run(t, 1, 16*time.Millisecond)
	assert.False(t, f.app.Stage().Hovered())
}
