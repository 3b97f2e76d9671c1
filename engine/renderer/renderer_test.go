package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/nova-showcase/engine/camera"
	"github.com/Carmen-Shannon/nova-showcase/engine/light"
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records calls instead of talking to a GPU.
type fakeBackend struct {
	frameOpen   bool
	pipelines   []string
	meshes      int
	frames      int
	objectSizes []int
	textures    map[string][2]int
	writes      []bind_group_provider.BufferWrite
	viewports   []pixelRect
	backdrops   []string
	draws       []fakeDraw
	released    bool
}

type fakeDraw struct {
	pipeline string
	lines    bool
	offset   uint32
	texture  string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{textures: make(map[string][2]int)}
}

func (f *fakeBackend) ConfigureSurface(int, int)               {}
func (f *fakeBackend) SetPresentMode(PresentMode)              {}
func (f *fakeBackend) SetClearColor(float64, float64, float64) {}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	f.pipelines = append(f.pipelines, p.Key())
	return nil
}

func (f *fakeBackend) InitMeshBuffers(p bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int, _ []byte, lineCount int) error {
	f.meshes++
	p.SetMesh(nil, nil, indexCount)
	p.SetLines(nil, lineCount)
	return nil
}

func (f *fakeBackend) InitFrameBindGroup(p bind_group_provider.BindGroupProvider) error {
	f.frames++
	p.SetBuffer(bindingCamera, nil, 80)
	p.SetBuffer(bindingLights, nil, 528)
	p.SetBuffer(bindingScene, nil, 48)
	return nil
}

func (f *fakeBackend) InitObjectBindGroup(p bind_group_provider.BindGroupProvider, capacity int) error {
	f.objectSizes = append(f.objectSizes, capacity)
	p.SetBuffer(0, nil, uint64(capacity*objectStride))
	return nil
}

func (f *fakeBackend) InitTexture(p bind_group_provider.BindGroupProvider, w, h int) error {
	f.textures[p.Label()] = [2]int{w, h}
	return nil
}

func (f *fakeBackend) WriteTexture(bind_group_provider.BindGroupProvider, []byte, int, int) {}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeBackend) BeginFrame() error {
	if f.frameOpen {
		return ErrFrameInFlight
	}
	f.frameOpen = true
	return nil
}

func (f *fakeBackend) SetViewport(r pixelRect) {
	f.viewports = append(f.viewports, r)
}

func (f *fakeBackend) DrawBackdrop(p pipeline.Pipeline, _ bind_group_provider.BindGroupProvider) {
	f.backdrops = append(f.backdrops, p.Key())
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, _ bind_group_provider.BindGroupProvider, lines bool, _, _ bind_group_provider.BindGroupProvider, offset uint32, tex bind_group_provider.BindGroupProvider) {
	f.draws = append(f.draws, fakeDraw{pipeline: p.Key(), lines: lines, offset: offset, texture: tex.Label()})
}

func (f *fakeBackend) EndFrame() {}
func (f *fakeBackend) Present()  { f.frameOpen = false }
func (f *fakeBackend) Release()  { f.released = true }

func newTestRenderer(t *testing.T) (*renderer, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend()
	r := newRenderer(BackendTypeWGPU)
	r.backend = fb
	r.Resize(800, 600)
	require.NoError(t, r.registerPipelines())
	white := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	require.NoError(t, r.UpdateTexture("", white))
	return r, fb
}

func testScene(opts ...scene.SceneBuilderOption) scene.Scene {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10))
	opts = append([]scene.SceneBuilderOption{scene.WithViewport(scene.Viewport{Width: 400, Height: 300})}, opts...)
	return scene.NewScene("test", cam, opts...)
}

func TestPipelineFor(t *testing.T) {
	tests := []struct {
		name string
		mat  material.Material
		want string
	}{
		{"opaque", material.NewMaterial(), PipelineOpaque},
		{"transparent", material.NewMaterial(material.WithOpacity(0.4)), PipelineTransparent},
		{"wireframe", material.NewMaterial(material.WithWireframe()), PipelineWireframe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pipelineFor(tt.mat))
		})
	}
}

func TestClampViewport(t *testing.T) {
	tests := []struct {
		name string
		in   scene.Viewport
		want pixelRect
		ok   bool
	}{
		{"inside", scene.Viewport{X: 10, Y: 20, Width: 100, Height: 50}, pixelRect{10, 20, 100, 50}, true},
		{"fractional", scene.Viewport{X: 10.5, Y: 0, Width: 10, Height: 10.2}, pixelRect{10, 0, 11, 11}, true},
		{"clipped left", scene.Viewport{X: -50, Y: 0, Width: 100, Height: 100}, pixelRect{0, 0, 50, 100}, true},
		{"clipped right", scene.Viewport{X: 700, Y: 500, Width: 400, Height: 400}, pixelRect{700, 500, 100, 100}, true},
		{"off screen", scene.Viewport{X: 900, Y: 0, Width: 100, Height: 100}, pixelRect{}, false},
		{"empty", scene.Viewport{Width: 100}, pixelRect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := clampViewport(tt.in, 800, 600)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectCapacity(t *testing.T) {
	assert.Equal(t, 16, objectCapacity(0))
	assert.Equal(t, 16, objectCapacity(16))
	assert.Equal(t, 32, objectCapacity(17))
	assert.Equal(t, 128, objectCapacity(100))
}

func TestPreferSRGB(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb,
		preferSRGB([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb}))
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, preferSRGB([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm}))
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, preferSRGB(nil))
}

func TestStraightRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})
	src.Set(6, 5, color.RGBA{G: 64, A: 128})

	pix, w, h := straightRGBA(src)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	require.Len(t, pix, 8)
	assert.Equal(t, []byte{255, 0, 0, 255}, pix[:4])
	// Premultiplied 64 at alpha 128 becomes straight 127.
	assert.InDelta(t, 127, int(pix[5]), 1)
	assert.Equal(t, byte(128), pix[7])
}

func TestDefaultPipelines(t *testing.T) {
	byKey := map[string]pipeline.Pipeline{}
	for _, p := range defaultPipelines() {
		byKey[p.Key()] = p
	}
	require.Len(t, byKey, 5)

	assert.Equal(t, 3, byKey[PipelineOpaque].Groups())
	assert.True(t, byKey[PipelineOpaque].DepthWriteEnabled())
	assert.False(t, byKey[PipelineTransparent].DepthWriteEnabled())
	assert.True(t, byKey[PipelineTransparent].BlendEnabled())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, byKey[PipelineWireframe].Topology())
	assert.Equal(t, 1, byKey[PipelineBackdrop].Groups())
	assert.False(t, byKey[PipelineBackdrop].DepthTestEnabled())
	assert.Equal(t, wgpu.ColorWriteMask(0), byKey[PipelineDepthClear].WriteMask())
}

func TestPlanScene(t *testing.T) {
	box := model.NewBox(1, 1, 1)
	wire := model.NewMesh("wire", box.Vertices(), box.Indices(), model.WithEdges())
	s := testScene(
		scene.WithBackground("#101010"),
		scene.WithLights(light.NewLight(light.LightTypeAmbient)),
		scene.WithNodes(
			scene.NewNode("solid", scene.WithMesh(box, material.NewMaterial(material.WithTexture("screen")))),
			scene.NewNode("glass", scene.WithMesh(box, material.NewMaterial(material.WithOpacity(0.5)))),
			scene.NewNode("wire", scene.WithMesh(wire, material.NewMaterial(material.WithWireframe()))),
			scene.NewNode("no-edges", scene.WithMesh(box, material.NewMaterial(material.WithWireframe()))),
		),
	)

	plan, ok := planScene(s, 800, 600)
	require.True(t, ok)
	assert.Equal(t, pixelRect{0, 0, 400, 300}, plan.rect)
	assert.Equal(t, PipelineBackdrop, plan.backdrop)
	assert.Len(t, plan.camera, 80)
	assert.Len(t, plan.lights, 528)
	assert.Len(t, plan.scene, 48)
	assert.Len(t, plan.objects, 4*objectStride)

	require.Len(t, plan.calls, 3)
	assert.Equal(t, PipelineOpaque, plan.calls[0].pipeline)
	assert.Equal(t, "screen", plan.calls[0].texture)
	assert.Equal(t, uint32(0), plan.calls[0].offset)
	assert.Equal(t, PipelineTransparent, plan.calls[1].pipeline)
	assert.Equal(t, PipelineWireframe, plan.calls[2].pipeline)
	assert.True(t, plan.calls[2].lines)
}

func TestPlanScene_Skips(t *testing.T) {
	s := testScene()
	plan, ok := planScene(s, 800, 600)
	require.True(t, ok)
	assert.Equal(t, PipelineDepthClear, plan.backdrop)
	assert.Empty(t, plan.calls)

	s.SetActive(false)
	_, ok = planScene(s, 800, 600)
	assert.False(t, ok)

	s.SetActive(true)
	s.SetViewport(scene.Viewport{})
	_, ok = planScene(s, 800, 600)
	assert.False(t, ok)
}

func TestRenderer_DrawScene(t *testing.T) {
	r, fb := newTestRenderer(t)
	assert.ElementsMatch(t, []string{PipelineOpaque, PipelineTransparent, PipelineWireframe, PipelineBackdrop, PipelineDepthClear}, fb.pipelines)

	box := model.NewBox(1, 1, 1)
	s := testScene(scene.WithNodes(
		scene.NewNode("a", scene.WithMesh(box, material.NewMaterial())),
		scene.NewNode("b", scene.WithMesh(box, material.NewMaterial(material.WithTexture("missing")))),
	))

	assert.ErrorIs(t, r.DrawScene(s), ErrNoFrame)

	require.NoError(t, r.BeginFrame())
	assert.ErrorIs(t, r.BeginFrame(), ErrFrameInFlight)
	require.NoError(t, r.DrawScene(s))
	r.EndFrame()
	r.Present()

	assert.Equal(t, 1, fb.meshes, "shared mesh uploads once")
	assert.Equal(t, 1, fb.frames)
	assert.Equal(t, []int{16}, fb.objectSizes)
	assert.Equal(t, []string{PipelineDepthClear}, fb.backdrops)
	require.Len(t, fb.draws, 2)
	assert.Equal(t, uint32(objectStride), fb.draws[1].offset)
	assert.Equal(t, "texture ", fb.draws[1].texture, "unknown texture keys fall back to white")
	for _, w := range fb.writes {
		assert.True(t, w.Fits())
	}

	// A second frame reuses every resource.
	require.NoError(t, r.BeginFrame())
	require.NoError(t, r.DrawScene(s))
	r.EndFrame()
	r.Present()
	assert.Equal(t, 1, fb.meshes)
	assert.Equal(t, 1, fb.frames)
	assert.Len(t, fb.objectSizes, 1)
}

func TestRenderer_ObjectBufferGrows(t *testing.T) {
	r, fb := newTestRenderer(t)
	box := model.NewBox(1, 1, 1)
	nodes := make([]*scene.Node, 20)
	for i := range nodes {
		nodes[i] = scene.NewNode("n", scene.WithMesh(box, material.NewMaterial()))
	}
	s := testScene(scene.WithNodes(nodes...))

	require.NoError(t, r.BeginFrame())
	require.NoError(t, r.DrawScene(s))
	r.EndFrame()
	r.Present()

	assert.Equal(t, []int{32}, fb.objectSizes)
	assert.Len(t, fb.draws, 20)
}

func TestRenderer_UpdateTexture(t *testing.T) {
	r, fb := newTestRenderer(t)

	require.NoError(t, r.UpdateTexture("screen", image.NewNRGBA(image.Rect(0, 0, 4, 8))))
	assert.Equal(t, [2]int{4, 8}, fb.textures["texture screen"])

	require.NoError(t, r.UpdateTexture("screen", image.NewNRGBA(image.Rect(0, 0, 16, 8))))
	assert.Equal(t, [2]int{16, 8}, fb.textures["texture screen"])

	assert.Error(t, r.UpdateTexture("empty", image.NewNRGBA(image.Rect(0, 0, 0, 0))))
}

func TestRenderer_Close(t *testing.T) {
	r, fb := newTestRenderer(t)
	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	r.Resize(0, 100)
	w, _ = r.Size()
	assert.Equal(t, 800, w)

	r.Close()
	assert.True(t, fb.released)
}
