package engine

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/engine/camera"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeWindow runs the update callback a fixed number of times, or until RequestClose.
type fakeWindow struct {
	iterations int
	running    bool
	onUpdate   func()
	onResize   func(int, int)
	resizeAt   int
}

func (w *fakeWindow) SetUpdateCallback(cb func())                                             { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(int, int))                                     { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(func(float64, float64))                                {}
func (w *fakeWindow) SetKeyDownCallback(func(uint32))                                         {}
func (w *fakeWindow) SetKeyUpCallback(func(uint32))                                           {}
func (w *fakeWindow) SetMouseButtonCallback(func(window.MouseButton, bool, float64, float64)) {}
func (w *fakeWindow) SetMouseMoveCallback(func(float64, float64))                             {}
func (w *fakeWindow) CursorPosition() (float64, float64)                                      { return 0, 0 }
func (w *fakeWindow) SetTitle(string)                                                         {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor                              { return nil }
func (w *fakeWindow) IsRunning() bool                                                         { return w.running }
func (w *fakeWindow) RequestClose()                                                           { w.running = false }
func (w *fakeWindow) Close() error                                                            { return nil }
func (w *fakeWindow) Width() int                                                              { return 800 }
func (w *fakeWindow) Height() int                                                             { return 600 }
func (w *fakeWindow) ContentScale() float64                                                   { return 1 }

func (w *fakeWindow) ProcessMessages() {
	w.running = true
	for i := 0; i < w.iterations && w.running; i++ {
		if i == w.resizeAt && w.onResize != nil {
			w.onResize(1024, 768)
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
	w.running = false
}

type fakeRenderer struct {
	begun   int
	drawn   []string
	resized [2]int
	failing bool
}

func (r *fakeRenderer) Resize(w, h int)                         { r.resized = [2]int{w, h} }
func (r *fakeRenderer) Size() (int, int)                        { return r.resized[0], r.resized[1] }
func (r *fakeRenderer) SetPresentMode(renderer.PresentMode)     {}
func (r *fakeRenderer) UpdateTexture(string, image.Image) error { return nil }
func (r *fakeRenderer) EndFrame()                               {}
func (r *fakeRenderer) Present()                                {}
func (r *fakeRenderer) Close()                                  {}

func (r *fakeRenderer) BeginFrame() error {
	if r.failing {
		return renderer.ErrFrameInFlight
	}
	r.begun++
	return nil
}

func (r *fakeRenderer) DrawScene(s scene.Scene) error {
	r.drawn = append(r.drawn, s.Name())
	return nil
}

// stepClock advances by a fixed step on every read.
type stepClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *stepClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
}

func newTestEngine(t *testing.T, iterations int, opts ...EngineBuilderOption) (*engine, *fakeWindow, *fakeRenderer) {
	t.Helper()
	w := &fakeWindow{iterations: iterations, resizeAt: -1}
	r := &fakeRenderer{}
	e, err := NewEngine(append([]EngineBuilderOption{WithWindow(w), WithRenderer(r)}, opts...)...)
	require.NoError(t, err)
	return e.(*engine), w, r
}

func TestNewEngine_RequiresWindowAndRenderer(t *testing.T) {
	_, err := NewEngine()
	assert.Error(t, err)
	_, err = NewEngine(WithWindow(&fakeWindow{}))
	assert.Error(t, err)
}

func TestEngine_DrawsActiveScenesInKeyOrder(t *testing.T) {
	back := scene.NewScene("back", camera.NewCamera())
	front := scene.NewScene("front", camera.NewCamera())
	hidden := scene.NewScene("hidden", camera.NewCamera(), scene.WithActive(false))

	e, _, r := newTestEngine(t, 2, WithScene(10, front), WithScene(-1, back), WithScene(5, hidden))
	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, 2, r.begun)
	assert.Equal(t, []string{"back", "front", "back", "front"}, r.drawn)
	assert.Equal(t, uint64(2), e.Frames())
}

func TestEngine_SkipsFrameWhenBeginFails(t *testing.T) {
	e, _, r := newTestEngine(t, 3, WithScene(0, scene.NewScene("s", camera.NewCamera())))
	r.failing = true
	require.NoError(t, e.Run(context.Background()))
	assert.Empty(t, r.drawn)
}

func TestEngine_FixedTicks(t *testing.T) {
	clock := &stepClock{t: time.Unix(0, 0), step: 25 * time.Millisecond}
	e, _, _ := newTestEngine(t, 4, WithTickRate(100), withClock(clock.now, clock.sleep))

	var ticks int
	var frames []float32
	e.SetTickCallback(func(dt float32) {
		ticks++
		assert.InDelta(t, 0.01, dt, 1e-6)
	})
	e.SetFrameCallback(func(dt float32) {
		frames = append(frames, dt)
	})
	require.NoError(t, e.Run(context.Background()))

	// Each frame is 25ms apart: two ticks per frame plus carried remainders.
	assert.Len(t, frames, 4)
	assert.InDelta(t, 0.025, frames[1], 1e-6)
	assert.Equal(t, 10, ticks)
}

func TestEngine_TickCatchUpIsBounded(t *testing.T) {
	clock := &stepClock{t: time.Unix(0, 0), step: time.Second}
	e, _, _ := newTestEngine(t, 1, WithTickRate(60), withClock(clock.now, clock.sleep))
	var ticks int
	e.SetTickCallback(func(float32) { ticks++ })
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, maxTicksPerFrame, ticks)
	assert.Zero(t, e.tickAccum)
}

func TestEngine_FrameLimitSleeps(t *testing.T) {
	clock := &stepClock{t: time.Unix(0, 0), step: time.Millisecond}
	e, _, _ := newTestEngine(t, 1, WithRenderFrameLimit(100), withClock(clock.now, clock.sleep))
	require.NoError(t, e.Run(context.Background()))
	require.Len(t, clock.slept, 1)
	assert.Equal(t, 9*time.Millisecond, clock.slept[0])
}

func TestEngine_QuitStopsCallbacks(t *testing.T) {
	e, w, _ := newTestEngine(t, 100)
	var calls int
	e.SetFrameCallback(func(float32) {
		calls++
		if calls == 3 {
			e.Quit()
			e.Quit()
		}
	})
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, calls)
	assert.Nil(t, w.onUpdate)
}

func TestEngine_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e, _, _ := newTestEngine(t, 100)
	var calls int
	e.SetFrameCallback(func(float32) {
		calls++
		if calls == 2 {
			cancel()
		}
	})
	err := e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

func TestEngine_ResizeForwardsToRenderer(t *testing.T) {
	e, w, r := newTestEngine(t, 2)
	w.resizeAt = 1
	var got [2]int
	e.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, [2]int{1024, 768}, r.resized)
	assert.Equal(t, [2]int{1024, 768}, got)
}

func TestEngine_SceneRegistry(t *testing.T) {
	e, _, _ := newTestEngine(t, 0)
	s := scene.NewScene("s", camera.NewCamera())
	e.AddScene(1, s)
	e.AddScene(2, nil)
	assert.Same(t, s, e.Scene(1))
	assert.Len(t, e.Scenes(), 1)
	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))

	assert.False(t, e.ProfilerEnabled())
	e.EnableProfiler()
	assert.True(t, e.ProfilerEnabled())
	e.DisableProfiler()
	assert.False(t, e.ProfilerEnabled())
}
