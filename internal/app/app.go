// Package app binds the landing page, its 3D canvases and the window input to one engine.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/engine"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/engine/window"
	"github.com/Carmen-Shannon/nova-showcase/internal/config"
	"github.com/Carmen-Shannon/nova-showcase/internal/locale"
	"github.com/Carmen-Shannon/nova-showcase/internal/page"
	"github.com/Carmen-Shannon/nova-showcase/internal/reveal"
	"github.com/Carmen-Shannon/nova-showcase/internal/showcase"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
	"go.uber.org/zap"
)

// Scene keys. The page is drawn first, the canvases over it and the fixed navigation last.
const (
	KeyPage   = 0
	KeyHero   = 10
	KeyLayers = 11
	KeyIcon   = 12
	KeyFixed  = 20
)

// App is the running showcase. Everything except Reload runs on the engine goroutine.
type App struct {
	logger *zap.Logger
	eng    engine.Engine
	store  *locale.Store
	now    func() time.Time

	typesetter *typeset.Typesetter
	screen     *showcase.Screen
	stage      *showcase.Stage
	overlay    *page.Overlay
	scroll     *page.Scroll

	// width and height are framebuffer pixels; scale is framebuffer pixels per layout pixel.
	width, height int
	scale         float64
	relayout      bool

	pointerX, pointerY float64
	pointerValid       bool
	clicked            bool
	clickX, clickY     float64

	reloadMu sync.Mutex
	reload   *config.Config
}

// New builds the stage and the page for the engine's window and registers every scene and callback.
//
// Parameters:
//   - eng: the engine; its renderer receives the textures
//   - store: the active language
//   - options: functional options for the app
//
// Returns:
//   - *App: the app, ready to Run
//   - error: an error if fonts cannot be loaded or the first layout cannot be painted
func New(eng engine.Engine, store *locale.Store, options ...AppBuilderOption) (*App, error) {
	cfg := appConfig{
		logger: zap.NewNop(),
		config: config.Default(),
		now:    time.Now,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	a := &App{
		logger: cfg.logger.Named("app"),
		eng:    eng,
		store:  store,
		now:    cfg.now,
		width:  max(eng.Window().Width(), 1),
		height: max(eng.Window().Height(), 1),
		scale:  contentScale(eng.Window()),
	}

	ts, err := typeset.New()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.typesetter = ts

	size := cfg.config.Render.ScreenSize
	a.screen = showcase.NewScreen(showcase.WithScreenSize(size*11/23, size), showcase.WithScreenLogger(cfg.logger))
	a.stage, err = showcase.NewStage(
		showcase.WithLogger(cfg.logger),
		showcase.WithParams(cfg.config.Pose),
		showcase.WithScreen(a.screen),
		showcase.WithTypesetter(ts),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	rc := cfg.config.Reveal
	tracker := reveal.NewTracker(
		reveal.WithThreshold(rc.Threshold),
		reveal.WithBottomMargin(rc.BottomMargin),
		reveal.WithDuration(rc.Duration),
		reveal.WithLogger(cfg.logger),
	)
	a.overlay = page.NewOverlay(ts,
		page.WithOverlayLogger(cfg.logger),
		page.WithTracker(tracker),
		page.WithPixelScale(a.scale),
	)

	if err := a.layout(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.stage.Upload(eng.Renderer()); err != nil {
		a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	pageScene, fixed := a.overlay.Scenes()
	eng.AddScene(KeyPage, pageScene)
	eng.AddScene(KeyHero, a.stage.Hero())
	eng.AddScene(KeyLayers, a.stage.Layers())
	eng.AddScene(KeyIcon, a.stage.Icon())
	eng.AddScene(KeyFixed, fixed)

	store.Subscribe(func(*locale.Snapshot) { a.relayout = true })
	a.bindInput()
	eng.SetFrameCallback(a.frame)
	eng.SetResizeCallback(a.resize)
	return a, nil
}

// Stage returns the 3D canvases.
func (a *App) Stage() *showcase.Stage {
	return a.stage
}

// Overlay returns the page overlay.
func (a *App) Overlay() *page.Overlay {
	return a.overlay
}

// Scroll returns the page scroll position.
func (a *App) Scroll() *page.Scroll {
	return a.scroll
}

// layout rebuilds the page for the current size, content scale and language. The page is laid out
// in device-independent pixels, so the reveal margins keep their size on high-DPI displays.
func (a *App) layout() error {
	a.overlay.SetPixelScale(a.scale)
	l, err := page.Build(a.store.Snapshot(), a.typesetter, float64(a.width)/a.scale, float64(a.height)/a.scale)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := a.overlay.SetLayout(l, a.eng.Renderer()); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if a.scroll == nil {
		a.scroll = page.NewScroll(l.Height, l.ViewportHeight)
	} else {
		a.scroll.Resize(l.Height, l.ViewportHeight)
	}
	a.logger.Debug("page laid out",
		zap.Float64("width", l.Width), zap.Float64("height", l.Height), zap.Stringer("lang", l.Tag))
	return nil
}

func (a *App) bindInput() {
	win := a.eng.Window()
	win.SetScrollCallback(func(_, dy float64) {
		a.scroll.Wheel(dy)
	})
	win.SetMouseMoveCallback(func(x, y float64) {
		a.pointerX, a.pointerY, a.pointerValid = x, y, true
	})
	win.SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y float64) {
		if button != window.MouseButtonLeft || !pressed {
			return
		}
		a.click(x, y)
	})
	win.SetKeyDownCallback(a.key)
}

// click routes a click to the page first; anything the page does not claim reaches the canvases.
func (a *App) click(x, y float64) {
	part, ok := a.overlay.Click(x, y, a.scroll.Y(), a.now())
	if !ok {
		a.clicked, a.clickX, a.clickY = true, x, y
		return
	}
	switch part.Action {
	case page.ActionToggleLocale:
		snap := a.store.Toggle()
		a.logger.Info("language toggled", zap.Stringer("lang", snap.Tag))
	case page.ActionScrollTo:
		if sec, ok := a.overlay.Layout().Section(part.Target); ok {
			a.scroll.ScrollTo(sec.Rect.Y - page.NavHeight)
		}
	}
}

func (a *App) key(code uint32) {
	switch code {
	case common.KeyEsc:
		a.eng.Quit()
	case common.KeyL:
		a.store.Toggle()
	case common.KeyP:
		if a.eng.ProfilerEnabled() {
			a.eng.DisableProfiler()
		} else {
			a.eng.EnableProfiler()
		}
	case common.KeyLeft:
		a.overlay.Carousel().Prev(a.now())
	case common.KeyRight:
		a.overlay.Carousel().Next(a.now())
	default:
		a.scroll.Key(code)
	}
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.scale = contentScale(a.eng.Window())
	a.relayout = true
}

func contentScale(win window.Window) float64 {
	if s := win.ContentScale(); s > 0 {
		return s
	}
	return 1
}

// Reload hands a reloaded configuration to the frame loop. Safe from any goroutine; only the latest
// configuration is kept.
//
// Parameters:
//   - cfg: the new configuration
func (a *App) Reload(cfg config.Config) {
	a.reloadMu.Lock()
	a.reload = &cfg
	a.reloadMu.Unlock()
}

func (a *App) applyReload() {
	a.reloadMu.Lock()
	cfg := a.reload
	a.reload = nil
	a.reloadMu.Unlock()
	if cfg == nil {
		return
	}
	a.stage.SetPoseParams(cfg.Pose)
	a.overlay.Tracker().Reconfigure(
		reveal.WithThreshold(cfg.Reveal.Threshold),
		reveal.WithBottomMargin(cfg.Reveal.BottomMargin),
		reveal.WithDuration(cfg.Reveal.Duration),
	)
	a.logger.Info("configuration applied")
}

// frame advances the page and the canvases by one rendered frame.
func (a *App) frame(dt float32) {
	a.applyReload()
	if a.relayout {
		a.relayout = false
		if err := a.layout(); err != nil {
			a.logger.Error("relayout", zap.Error(err))
		}
	}

	now := a.now()
	y := a.scroll.Update(float64(dt))
	a.overlay.Update(y, now)

	fbW, fbH := float32(a.width), float32(a.height)
	for _, sc := range a.stage.Scenes() {
		rect, ok := a.overlay.CanvasRect(sc.Name(), y, now)
		if !ok {
			rect = scene.Viewport{}
		}
		sc.SetCanvas(rect, fbW, fbH)
	}

	err := a.stage.Update(showcase.Frame{
		Dt:             float64(dt),
		ScrollY:        y,
		ViewportHeight: a.scroll.ViewportHeight(),
		PointerX:       a.pointerX,
		PointerY:       a.pointerY,
		PointerValid:   a.pointerValid,
		Clicked:        a.clicked,
		ClickX:         a.clickX,
		ClickY:         a.clickY,
	}, a.eng.Renderer())
	a.clicked = false
	if err != nil {
		a.logger.Warn("stage update", zap.Error(err))
	}
}

// Close releases the stage, its rasterizer and the fonts.
func (a *App) Close() {
	if a.stage != nil {
		a.stage.Close()
	} else if a.typesetter != nil {
		_ = a.typesetter.Close()
	}
	if a.screen != nil {
		a.screen.Close()
	}
}
