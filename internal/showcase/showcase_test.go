package showcase

import (
	"image"
	"math"
	"testing"

	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/internal/pose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// Pool workers park on their queue until the process exits.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/Carmen-Shannon/automation/tools/worker.(*worker).Start.func1"))
}

type fakeSink struct {
	keys  []string
	sizes map[string]image.Point
}

func (f *fakeSink) UpdateTexture(key string, img image.Image) error {
	if f.sizes == nil {
		f.sizes = make(map[string]image.Point)
	}
	f.keys = append(f.keys, key)
	f.sizes[key] = img.Bounds().Size()
	return nil
}

func TestScreen_BandsMatchSerialPaint(t *testing.T) {
	serial := NewScreen(WithScreenSize(88, 184), WithBands(1), WithWorkers(1))
	defer serial.Close()
	parallel := NewScreen(WithScreenSize(88, 184), WithBands(7), WithWorkers(3))
	defer parallel.Close()

	for _, elapsed := range []float64{0, 1.25, 42} {
		a := serial.Render(elapsed)
		b := parallel.Render(elapsed)
		require.Equal(t, a.Bounds(), b.Bounds())
		assert.LessOrEqual(t, maxChannelDiff(a.Pix, b.Pix), 2, "elapsed %v", elapsed)
	}
}

// maxChannelDiff tolerates rounding from shifting paths into band-local coordinates.
func maxChannelDiff(a, b []byte) int {
	worst := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}

func TestScreen_OpaqueAndAnimated(t *testing.T) {
	s := NewScreen(WithScreenSize(110, 230), WithWorkers(1))
	defer s.Close()

	w, h := s.Size()
	assert.Equal(t, 110, w)
	assert.Equal(t, 230, h)

	first := append([]byte(nil), s.Render(0).Pix...)
	for i := 3; i < len(first); i += 4 {
		require.Equal(t, uint8(255), first[i], "pixel %d not opaque", i/4)
	}
	assert.NotEqual(t, first, s.Render(5).Pix)
}

func TestScreen_RingIsBrighterThanHole(t *testing.T) {
	s := NewScreen(WithScreenSize(352, 736), WithWorkers(1))
	defer s.Close()
	img := s.Render(0)

	// The white core ring spans radius 0.1 to 0.11 at the overlay depth.
	k := s.pixelScale(screenOverlayZ)
	cx, cy := 352/2, 736/2
	onRing := img.RGBAAt(cx+int(0.105*k), cy)
	inHole := img.RGBAAt(cx+int(0.05*k), cy)
	assert.Greater(t, int(onRing.R)+int(onRing.G)+int(onRing.B), int(inHole.R)+int(inHole.G)+int(inHole.B))
}

func TestFloat_Pose(t *testing.T) {
	f := Float{Speed: 2, RotationIntensity: 0.5, FloatIntensity: 0.5, Range: [2]float64{-0.1, 0.1}}

	y, rot := f.Pose(0)
	assert.InDelta(t, 0, y, 1e-9)
	assert.InDelta(t, 0.5/8, rot[0], 1e-9)
	assert.InDelta(t, 0, rot[1], 1e-9)

	// sin reaches 1 when elapsed/4*speed = π/2.
	y, rot = f.Pose(math.Pi)
	assert.InDelta(t, 0.05, y, 1e-9)
	assert.InDelta(t, 0.5/8, rot[1], 1e-9)
	assert.InDelta(t, 0.5/20, rot[2], 1e-9)

	wide := Float{Speed: 2, FloatIntensity: 1, Range: [2]float64{-1, 1}}
	y, _ = wide.Pose(math.Pi)
	assert.InDelta(t, 1, y, 1e-9)

	n := scene.NewNode("n")
	f.Apply(n, math.Pi)
	assert.InDelta(t, 0.05, n.Position.Y(), 1e-6)
}

func TestPhone_Variants(t *testing.T) {
	tests := []struct {
		name       string
		opts       []PhoneBuilderOption
		board      bool
		mockup     bool
		gap        float32
		displayTex string
	}{
		{name: "hero", opts: []PhoneBuilderOption{WithScreenContent(true)}, displayTex: ScreenTexture},
		{name: "exploded", opts: []PhoneBuilderOption{WithExploded(true)}, board: true, mockup: true, gap: explodedGap},
		{name: "exploded with content", opts: []PhoneBuilderOption{WithExploded(true), WithScreenContent(true)},
			board: true, gap: explodedGap, displayTex: ScreenTexture},
		{name: "plain", opts: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPhone(tt.opts...)
			root := p.Node()
			assert.Equal(t, tt.board, root.Find(NodeBoard) != nil)
			assert.Equal(t, tt.board, root.Find(NodeChip) != nil)
			assert.Equal(t, tt.mockup, root.Find(NodeMockup) != nil)

			body := root.Find(NodeBody)
			require.NotNil(t, body)
			assert.InDelta(t, -tt.gap, body.Position.Z(), 1e-6)

			display := root.Find(NodeDisplay)
			require.NotNil(t, display)
			assert.Equal(t, tt.displayTex, display.Material.Texture())
			assert.True(t, p.Owns(display))
			assert.True(t, p.Owns(root.Find(NodeNotch)))
		})
	}
}

func TestPhone_DisplayMaterialFollowsExplodedState(t *testing.T) {
	off := NewPhone().Node().Find(NodeDisplay).Material
	on := NewPhone(WithExploded(true)).Node().Find(NodeDisplay).Material
	assert.Zero(t, off.EmissiveIntensity())
	assert.InDelta(t, 0.4, on.EmissiveIntensity(), 1e-6)
}

func TestPhone_UpdateAppliesPose(t *testing.T) {
	p := NewPhone(WithScreenContent(true), WithBaseScale(2))
	assert.False(t, p.Owns(scene.NewNode("stranger")))

	st := p.Update(pose.Input{Elapsed: 0.016, Hovered: true, Clicked: true}, 0.016)
	assert.InDelta(t, 2+0.1*(2*1.03-2), st.Scale, 1e-9)
	assert.InDelta(t, 10, st.SpinVelocity, 1e-9)
	assert.InDelta(t, st.Scale, float64(p.Root().Scale.X()), 1e-6)
	assert.InDelta(t, st.Yaw, float64(p.Root().Rotation.Y()), 1e-6)
}

func TestPhone_ExplodedIgnoresClicks(t *testing.T) {
	p := NewPhone(WithExploded(true), WithTilt(-0.5))
	st := p.Update(pose.Input{Elapsed: math.Pi, Clicked: true}, 0.016)
	assert.Zero(t, st.SpinVelocity)
	assert.InDelta(t, 0.1, st.Yaw, 1e-9)
	assert.InDelta(t, -0.5, p.Node().Find("phone-tilt").Rotation.Y(), 1e-6)
}

func newTestStage(t *testing.T) *Stage {
	t.Helper()
	screen := NewScreen(WithScreenSize(44, 92), WithWorkers(1))
	t.Cleanup(screen.Close)
	s, err := NewStage(WithScreen(screen))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	s.Hero().SetViewport(scene.Viewport{X: 0, Y: 0, Width: 400, Height: 400})
	return s
}

func TestStage_Scenes(t *testing.T) {
	s := newTestStage(t)
	scenes := s.Scenes()
	require.Len(t, scenes, 3)
	assert.Equal(t, SceneHero, scenes[0].Name())
	assert.Equal(t, SceneLayers, scenes[1].Name())
	assert.Equal(t, SceneIcon, scenes[2].Name())

	_, clears := s.Layers().Background()
	assert.True(t, clears)
	_, clears = s.Hero().Background()
	assert.False(t, clears)
	assert.NotNil(t, s.Icon().Root().Find("icosahedron").Mesh.Edges())
}

func TestStage_HoverAndClick(t *testing.T) {
	s := newTestStage(t)

	require.NoError(t, s.Update(Frame{Dt: 0.016, ViewportHeight: 800, PointerX: 200, PointerY: 200, PointerValid: true}, nil))
	assert.True(t, s.Hovered())
	assert.Greater(t, s.HeroPose().Scale, 1.0)

	require.NoError(t, s.Update(Frame{Dt: 0.016, ViewportHeight: 800, PointerX: 5, PointerY: 5, PointerValid: true}, nil))
	assert.False(t, s.Hovered())

	require.NoError(t, s.Update(Frame{Dt: 0.016, ViewportHeight: 800, PointerX: 900, PointerY: 900, PointerValid: true}, nil))
	assert.False(t, s.Hovered(), "pointer outside the canvas")

	require.NoError(t, s.Update(Frame{Dt: 0.016, ViewportHeight: 800, Clicked: true, ClickX: 5, ClickY: 5}, nil))
	assert.Less(t, s.HeroPose().SpinVelocity, 1.0, "click beside the phone")

	require.NoError(t, s.Update(Frame{Dt: 0.016, ViewportHeight: 800, Clicked: true, ClickX: 200, ClickY: 200}, nil))
	assert.InDelta(t, 10, s.HeroPose().SpinVelocity, 1e-9)
}

func TestStage_ScrollReachesSolver(t *testing.T) {
	s := newTestStage(t)
	for range 200 {
		require.NoError(t, s.Update(Frame{Dt: 0.016, ScrollY: 5000, ViewportHeight: 800}, nil))
	}
	// Fully scrolled: pitch settles at the scroll tilt, roll at the scroll roll.
	p := pose.DefaultParams()
	assert.InDelta(t, p.ScrollPitch, s.HeroPose().Pitch, 1e-3)
	assert.InDelta(t, p.ScrollRoll, s.HeroPose().Roll, 1e-3)
}

func TestStage_Uploads(t *testing.T) {
	s := newTestStage(t)
	sink := &fakeSink{}
	require.NoError(t, s.Upload(sink))
	assert.Equal(t, []string{MockupTexture, ScreenTexture}, sink.keys)
	assert.Equal(t, image.Pt(256, 128), sink.sizes[MockupTexture])
	assert.Equal(t, image.Pt(44, 92), sink.sizes[ScreenTexture])

	sink.keys = nil
	require.NoError(t, s.Update(Frame{Dt: 0.016}, sink))
	assert.Equal(t, []string{ScreenTexture}, sink.keys)

	sink.keys = nil
	s.Hero().SetViewport(scene.Viewport{})
	require.NoError(t, s.Update(Frame{Dt: 0.016}, sink))
	assert.Empty(t, sink.keys, "offscreen hero keeps its last texture")

	s.SetPoseParams(pose.Params{Smoothing: 1, SpinDecay: 1, HoverScale: 1})
	assert.InDelta(t, 1, s.HeroPhone().Solver().Params().Smoothing, 1e-9)
	assert.InDelta(t, 1, s.LayerPhone().Solver().Params().SpinDecay, 1e-9)
}
