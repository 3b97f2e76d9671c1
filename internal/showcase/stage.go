// Package showcase composes the three 3D canvases of the landing page: the interactive hero phone,
// the exploded layer phone and the floating icon, plus the animated texture on the hero display.
package showcase

import (
	"fmt"
	"image"
	"math"

	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/engine/camera"
	"github.com/Carmen-Shannon/nova-showcase/engine/light"
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/internal/pose"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
	"go.uber.org/zap"
)

// Scene names.
const (
	SceneHero   = "hero"
	SceneLayers = "layers"
	SceneIcon   = "icon"
)

// TextureSink receives CPU-painted textures. The renderer implements it.
type TextureSink interface {
	UpdateTexture(key string, img image.Image) error
}

// Frame is the environment sample the stage consumes once per rendered frame.
// Pointer and click positions are framebuffer pixels.
type Frame struct {
	Dt             float64
	ScrollY        float64
	ViewportHeight float64

	PointerX, PointerY float64
	PointerValid       bool

	Clicked        bool
	ClickX, ClickY float64
}

// Stage owns the showcase scenes and advances them each frame.
type Stage struct {
	logger *zap.Logger

	hero   scene.Scene
	layers scene.Scene
	icon   scene.Scene

	heroPhone  *Phone
	layerPhone *Phone
	iconFloat  Float
	iconNode   *scene.Node

	screen     *Screen
	ownsScreen bool
	typesetter *typeset.Typesetter

	elapsed  float64
	pointer  [2]float64
	hovered  bool
	lastPose pose.State
}

// NewStage builds the three scenes.
//
// Parameters:
//   - options: functional options for the stage
//
// Returns:
//   - *Stage: the stage
//   - error: an error if the fonts for the display mockup cannot be loaded
func NewStage(options ...StageBuilderOption) (*Stage, error) {
	cfg := stageConfig{
		logger: zap.NewNop(),
		params: pose.DefaultParams(),
	}
	for _, opt := range options {
		opt(&cfg)
	}

	s := &Stage{
		logger:     cfg.logger.Named("showcase"),
		screen:     cfg.screen,
		typesetter: cfg.typesetter,
	}
	if s.screen == nil {
		s.screen = NewScreen(WithScreenLogger(s.logger))
		s.ownsScreen = true
	}
	if s.typesetter == nil {
		ts, err := typeset.New()
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("showcase: %w", err)
		}
		s.typesetter = ts
	}

	s.heroPhone = NewPhone(
		WithScreenContent(true),
		WithPoseParams(cfg.params),
		WithFloat(Float{Speed: 2, RotationIntensity: 0.5, FloatIntensity: 0.5, Range: [2]float64{-0.1, 0.1}}),
	)
	s.hero = scene.NewScene(SceneHero,
		camera.NewCamera(camera.WithPosition(0, 0, 4.5), camera.WithTarget(0, 0, 0), camera.WithFov(35)),
		scene.WithLights(
			light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.5)),
			light.NewLight(light.LightTypeSpot, light.WithPosition(10, 10, 10), light.WithTarget(0, 0, 0),
				light.WithSpotCone(0.15, 1), light.WithIntensity(1)),
			light.NewLight(light.LightTypePoint, light.WithPosition(-10, -10, -10),
				light.WithHexColor("#3BAFFF"), light.WithIntensity(0.5)),
		),
		scene.WithEnvironment("#dfe6ee", "#4a4640", 1),
		scene.WithNodes(s.heroPhone.Node()),
	)

	s.layerPhone = NewPhone(
		WithExploded(true),
		WithBaseScale(0.9),
		WithTilt(-0.5),
		WithPoseParams(cfg.params),
		WithFloat(Float{Speed: 1.5, RotationIntensity: 0.2, FloatIntensity: 0.2, Range: [2]float64{-0.1, 0.1}}),
	)
	s.layers = scene.NewScene(SceneLayers,
		camera.NewCamera(camera.WithPosition(2, 0, 5), camera.WithTarget(0, 0, 0), camera.WithFov(40)),
		scene.WithLights(
			light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.7)),
			light.NewLight(light.LightTypeSpot, light.WithPosition(5, 5, 5), light.WithTarget(0, 0, 0),
				light.WithIntensity(0.8)),
		),
		scene.WithBackground("#f3f4f6"),
		scene.WithEnvironment("#ffffff", "#9a9a9a", 0.8),
		scene.WithNodes(s.layerPhone.Node()),
	)

	s.iconFloat = Float{Speed: 4, RotationIntensity: 2, FloatIntensity: 1, Range: [2]float64{-0.1, 0.1}}
	s.iconNode = newIcon()
	s.icon = scene.NewScene(SceneIcon,
		camera.NewCamera(camera.WithPosition(0, 0, 4), camera.WithTarget(0, 0, 0), camera.WithFov(75)),
		scene.WithLights(
			light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.5)),
			light.NewLight(light.LightTypePoint, light.WithPosition(2, 2, 2),
				light.WithHexColor("#3BAFFF"), light.WithIntensity(2)),
		),
		scene.WithNodes(s.iconNode),
	)
	return s, nil
}

// newIcon is a wireframe icosahedron around a glossy sphere.
func newIcon() *scene.Node {
	ico := model.NewIcosahedron(1)
	wire := model.NewMesh("icosahedron-wire", ico.Vertices(), ico.Indices(), model.WithEdges())
	return scene.NewNode("icon-float", scene.WithChildren(
		scene.NewNode("icosahedron", scene.WithRotation(math.Pi/4, math.Pi/4, 0),
			scene.WithMesh(wire, material.NewMaterial(material.WithName("icosahedron"),
				material.WithColor("#F7F7F7"), material.WithWireframe()))),
		scene.NewNode("core", scene.WithMesh(model.NewSphere(0.5, 32, 32), material.NewMaterial(
			material.WithName("core"), material.WithColor("#3BAFFF"),
			material.WithRoughness(0.1), material.WithMetalness(0.5)))),
	))
}

// Hero returns the interactive phone scene.
func (s *Stage) Hero() scene.Scene {
	return s.hero
}

// Layers returns the exploded phone scene.
func (s *Stage) Layers() scene.Scene {
	return s.layers
}

// Icon returns the floating icon scene.
func (s *Stage) Icon() scene.Scene {
	return s.icon
}

// Scenes returns every scene in draw order.
func (s *Stage) Scenes() []scene.Scene {
	return []scene.Scene{s.hero, s.layers, s.icon}
}

// HeroPhone returns the interactive phone.
func (s *Stage) HeroPhone() *Phone {
	return s.heroPhone
}

// LayerPhone returns the exploded phone.
func (s *Stage) LayerPhone() *Phone {
	return s.layerPhone
}

// Hovered reports whether the pointer was over the hero phone on the last update.
func (s *Stage) Hovered() bool {
	return s.hovered
}

// Elapsed returns the animation clock in seconds.
func (s *Stage) Elapsed() float64 {
	return s.elapsed
}

// HeroPose returns the hero phone pose computed on the last update.
func (s *Stage) HeroPose() pose.State {
	return s.lastPose
}

// SetPoseParams swaps the solver tuning of both phones.
//
// Parameters:
//   - p: the new tuning constants
func (s *Stage) SetPoseParams(p pose.Params) {
	s.heroPhone.Solver().SetParams(p)
	s.layerPhone.Solver().SetParams(p)
}

// Upload paints the static textures and hands them to the sink. Call once after the renderer exists.
//
// Parameters:
//   - sink: the texture receiver
//
// Returns:
//   - error: an error if painting or uploading fails
func (s *Stage) Upload(sink TextureSink) error {
	clock, err := s.typesetter.RenderBox("12:42", typeset.Style{Size: 64, Bold: true, Align: typeset.AlignCenter}, 256, 128)
	if err != nil {
		return fmt.Errorf("paint mockup clock: %w", err)
	}
	if err := sink.UpdateTexture(MockupTexture, clock); err != nil {
		return fmt.Errorf("upload mockup clock: %w", err)
	}
	return s.uploadScreen(sink)
}

func (s *Stage) uploadScreen(sink TextureSink) error {
	if err := sink.UpdateTexture(ScreenTexture, s.screen.Render(s.elapsed)); err != nil {
		return fmt.Errorf("upload screen: %w", err)
	}
	return nil
}

// Update advances every scene by one frame and repaints the hero display.
//
// Parameters:
//   - f: this frame's environment sample
//   - sink: receives the repainted display; nil skips the upload
//
// Returns:
//   - error: an error if the display upload fails
func (s *Stage) Update(f Frame, sink TextureSink) error {
	s.elapsed += f.Dt
	scroll := pose.ClampScroll(f.ScrollY, f.ViewportHeight)

	heroVP := s.hero.Viewport()
	if f.PointerValid && heroVP.Contains(float32(f.PointerX), float32(f.PointerY)) {
		nx, ny := heroVP.Normalize(float32(f.PointerX), float32(f.PointerY))
		s.pointer = [2]float64{common.Clamp(float64(nx), -1, 1), common.Clamp(float64(ny), -1, 1)}
		s.hovered = s.hitsPhone(s.hero, s.heroPhone, f.PointerX, f.PointerY)
	} else {
		s.hovered = false
	}
	clicked := f.Clicked && s.hitsPhone(s.hero, s.heroPhone, f.ClickX, f.ClickY)
	if clicked {
		s.logger.Debug("spin impulse", zap.Float64("elapsed", s.elapsed))
	}

	s.lastPose = s.heroPhone.Update(pose.Input{
		Elapsed:        s.elapsed,
		ScrollFraction: scroll,
		PointerX:       s.pointer[0],
		PointerY:       s.pointer[1],
		Hovered:        s.hovered,
		Clicked:        clicked,
	}, f.Dt)
	s.layerPhone.Update(pose.Input{Elapsed: s.elapsed, ScrollFraction: scroll}, f.Dt)
	s.iconFloat.Apply(s.iconNode, s.elapsed)

	if sink == nil || !s.hero.Active() || heroVP.Empty() {
		return nil
	}
	return s.uploadScreen(sink)
}

// hitsPhone casts a pick ray through a framebuffer pixel and reports whether it lands on the phone.
func (s *Stage) hitsPhone(sc scene.Scene, p *Phone, x, y float64) bool {
	vp := sc.Viewport()
	if vp.Empty() || !vp.Contains(float32(x), float32(y)) {
		return false
	}
	nx, ny := vp.Normalize(float32(x), float32(y))
	for _, hit := range sc.Raycast(nx, ny) {
		if p.Owns(hit.Node) {
			return true
		}
	}
	return false
}

// Close stops the display rasterizer if the stage created it.
func (s *Stage) Close() {
	if s.ownsScreen && s.screen != nil {
		s.screen.Close()
	}
	if s.typesetter != nil {
		_ = s.typesetter.Close()
	}
}
