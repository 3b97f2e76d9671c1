package engine

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/engine/profiler"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/engine/window"
	"go.uber.org/zap"
)

// maxTicksPerFrame bounds catch-up work after a stall so a long pause does not freeze the loop.
const maxTicksPerFrame = 5

// engine implements the Engine interface.
// Everything runs on the goroutine that calls Run: input callbacks, ticks, frame callbacks and drawing.
type engine struct {
	mu     *sync.Mutex
	logger *zap.Logger

	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate       time.Duration
	tickAccum      time.Duration
	tickCallback   func(deltaTime float32)
	frameCallback  func(deltaTime float32)
	resizeCallback func(width, height int)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
	frames           uint64

	stopped  atomic.Bool
	quitOnce sync.Once

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine drives a window's message loop and draws the registered scenes each iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer scenes are drawn with.
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ProfilerEnabled reports whether profiling is on.
	ProfilerEnabled() bool

	// SetTickRate sets the fixed-step rate of the tick callback in ticks per second.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers the fixed-step update, called zero or more times per frame
	// so that it runs at the tick rate on average.
	//
	// Parameters:
	//   - callback: function receiving the fixed step in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetFrameCallback registers the function called once per loop iteration before drawing.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous frame in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function called after the renderer has been resized.
	//
	// Parameters:
	//   - callback: function receiving the new framebuffer size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key, or nil.
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	Scenes() map[int]scene.Scene

	// Frames returns how many frames have run.
	Frames() uint64

	// Run processes window messages until the window closes, Quit is called or ctx is cancelled.
	// No callback runs after Run returns.
	//
	// Parameters:
	//   - ctx: cancelling it closes the window at the next iteration
	//
	// Returns:
	//   - error: ctx.Err() when cancelled, nil on a normal close
	Run(ctx context.Context) error

	// Quit asks the loop to stop after the current iteration.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
// A window and a renderer are required; scenes may be added later.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the window or renderer is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:       &sync.Mutex{},
		logger:   zap.NewNop(),
		scenes:   make(map[int]scene.Scene),
		tickRate: time.Second / 60,
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.window == nil {
		return nil, errors.New("engine: a window is required")
	}
	if e.renderer == nil {
		return nil, errors.New("engine: a renderer is required")
	}
	e.logger = e.logger.Named("engine")
	e.profiler = profiler.NewProfiler(e.logger)

	e.window.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		e.renderer.Resize(width, height)
		if e.resizeCallback != nil && !e.stopped.Load() {
			e.resizeCallback(width, height)
		}
	})
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run(ctx context.Context) error {
	e.lastFrame = e.now()
	e.window.SetUpdateCallback(func() {
		e.frame(ctx)
	})
	e.window.ProcessMessages()

	e.stopped.Store(true)
	e.window.SetUpdateCallback(nil)
	e.window.SetResizeCallback(nil)
	e.logger.Info("loop stopped", zap.Uint64("frames", e.frames))
	return ctx.Err()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.stopped.Store(true)
		e.window.RequestClose()
	})
}

// frame is one loop iteration: ticks, the frame callback, then every active scene in key order.
func (e *engine) frame(ctx context.Context) {
	if ctx.Err() != nil {
		e.Quit()
	}
	if e.stopped.Load() {
		return
	}

	start := e.now()
	elapsed := start.Sub(e.lastFrame)
	e.lastFrame = start
	dt := float32(elapsed.Seconds())

	e.runTicks(elapsed)
	if e.frameCallback != nil {
		e.frameCallback(dt)
	}
	if e.stopped.Load() {
		return
	}

	e.draw()
	e.frames++

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

func (e *engine) runTicks(elapsed time.Duration) {
	if e.tickCallback == nil {
		return
	}
	e.tickAccum += elapsed
	step := float32(e.tickRate.Seconds())
	for n := 0; e.tickAccum >= e.tickRate; n++ {
		if n == maxTicksPerFrame {
			e.tickAccum = 0
			break
		}
		e.tickCallback(step)
		e.tickAccum -= e.tickRate
	}
}

func (e *engine) draw() {
	scenes := e.sortedScenes()
	if len(scenes) == 0 {
		return
	}
	if err := e.renderer.BeginFrame(); err != nil {
		e.logger.Debug("frame skipped", zap.Error(err))
		return
	}
	for _, s := range scenes {
		if err := e.renderer.DrawScene(s); err != nil {
			e.logger.Warn("draw scene", zap.String("scene", s.Name()), zap.Error(err))
		}
	}
	e.renderer.EndFrame()
	e.renderer.Present()
}

func (e *engine) sortedScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]scene.Scene, 0, len(e.scenes))
	for _, k := range slices.Sorted(maps.Keys(e.scenes)) {
		if s := e.scenes[k]; s.Active() {
			out = append(out, s)
		}
	}
	return out
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) ProfilerEnabled() bool {
	return e.profilingEnabled
}

func (e *engine) SetTickRate(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	e.tickRate = time.Duration(float64(time.Second) / tps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	if s == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.scenes)
}

func (e *engine) Frames() uint64 {
	return e.frames
}
