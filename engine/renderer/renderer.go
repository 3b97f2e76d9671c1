package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/Carmen-Shannon/nova-showcase/engine/light"
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/shader"
	"github.com/Carmen-Shannon/nova-showcase/engine/scene"
	"github.com/Carmen-Shannon/nova-showcase/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

//go:embed assets/lit.wgsl
var litSource string

//go:embed assets/backdrop.wgsl
var backdropSource string

// Pipeline keys.
const (
	PipelineOpaque      = "opaque"
	PipelineTransparent = "transparent"
	PipelineWireframe   = "wireframe"
	PipelineBackdrop    = "backdrop"
	PipelineDepthClear  = "depth-clear"
)

// Bindings inside the frame bind group.
const (
	bindingCamera = 0
	bindingLights = 1
	bindingScene  = 2
)

// objectStride is the distance between per-draw uniforms in the object buffer.
// It matches the default minUniformBufferOffsetAlignment.
const objectStride = 256

var (
	// ErrFrameInFlight is returned by BeginFrame when the previous frame was never presented.
	ErrFrameInFlight = errors.New("renderer: previous frame not yet presented")

	// ErrNoFrame is returned by DrawScene outside BeginFrame / EndFrame.
	ErrNoFrame = errors.New("renderer: DrawScene called outside a frame")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *zap.Logger

	backendType RendererBackendType
	backend     RendererBackend

	pipelineCache map[string]pipeline.Pipeline

	meshes   map[uint64]bind_group_provider.BindGroupProvider
	frames   map[string]bind_group_provider.BindGroupProvider
	objects  map[string]bind_group_provider.BindGroupProvider
	textures map[string]texture

	width, height int
	inFrame       bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	clearColor           [3]float64
}

type texture struct {
	provider      bind_group_provider.BindGroupProvider
	width, height int
}

// Renderer draws scenes into viewports of one window surface.
//
// A frame is BeginFrame, any number of DrawScene calls in back-to-front order, EndFrame, Present.
// Every scene owns its uniform buffers, so each scene may be drawn once per frame.
type Renderer interface {
	// Resize reconfigures the surface after the framebuffer size changes.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current framebuffer size in pixels.
	Size() (width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// UpdateTexture uploads an image under key, creating or resizing the GPU texture as needed.
	// Materials reference the texture by the same key.
	//
	// Parameters:
	//   - key: the texture name
	//   - img: the pixels to upload
	//
	// Returns:
	//   - error: an error if the texture could not be created
	UpdateTexture(key string, img image.Image) error

	// BeginFrame acquires the swapchain texture and begins the render pass.
	//
	// Returns:
	//   - error: ErrFrameInFlight or a surface acquisition error; the frame should be skipped
	BeginFrame() error

	// DrawScene draws an active scene into its viewport. Inactive scenes and empty viewports are skipped.
	//
	// Parameters:
	//   - s: the scene to draw
	//
	// Returns:
	//   - error: ErrNoFrame outside a frame, or a GPU resource creation error
	DrawScene(s scene.Scene) error

	// EndFrame ends the render pass and submits it to the GPU.
	EndFrame()

	// Present presents the surface to the display.
	Present()

	// Close releases every GPU resource.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the window's surface and builds its pipelines.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - win: the window whose surface is drawn to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if a pipeline could not be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa, r.logger)
		if err != nil {
			return nil, err
		}
		r.backend = b
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.SetClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2])
	r.Resize(win.Width(), win.Height())

	if err := r.registerPipelines(); err != nil {
		r.backend.Release()
		return nil, err
	}
	white := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})
	if err := r.UpdateTexture("", white); err != nil {
		r.backend.Release()
		return nil, err
	}
	r.logger.Info("renderer ready", zap.Uint32("msaa", uint32(msaa)), zap.Int("width", r.width), zap.Int("height", r.height))
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        zap.NewNop(),
		backendType:   backendType,
		pipelineCache: make(map[string]pipeline.Pipeline),
		meshes:        make(map[uint64]bind_group_provider.BindGroupProvider),
		frames:        make(map[string]bind_group_provider.BindGroupProvider),
		objects:       make(map[string]bind_group_provider.BindGroupProvider),
		textures:      make(map[string]texture),
		clearColor:    [3]float64{0.02, 0.02, 0.03},
	}
	for _, opt := range options {
		opt(r)
	}
	r.logger = r.logger.Named("renderer")
	return r
}

// defaultPipelines describes every pipeline the renderer draws with.
func defaultPipelines() []pipeline.Pipeline {
	lit := shader.MustShader("lit", litSource)
	backdrop := shader.MustShader("backdrop", backdropSource)
	return []pipeline.Pipeline{
		pipeline.NewPipeline(PipelineOpaque, lit, pipeline.WithGroups(3)),
		pipeline.NewPipeline(PipelineTransparent, lit, pipeline.WithGroups(3), pipeline.Transparent()),
		pipeline.NewPipeline(PipelineWireframe, lit, pipeline.WithGroups(3), pipeline.Transparent(),
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList)),
		pipeline.NewPipeline(PipelineBackdrop, backdrop, pipeline.WithDepthTestEnabled(false)),
		pipeline.NewPipeline(PipelineDepthClear, backdrop, pipeline.WithDepthTestEnabled(false),
			pipeline.WithWriteMask(wgpu.ColorWriteMask(0))),
	}
}

func (r *renderer) registerPipelines() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range defaultPipelines() {
		if _, exists := r.pipelineCache[p.Key()]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("pipeline %s: %w", p.Key(), err)
		}
		r.pipelineCache[p.Key()] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) UpdateTexture(key string, img image.Image) error {
	pixels, w, h := straightRGBA(img)
	if w == 0 || h == 0 {
		return fmt.Errorf("renderer: texture %q is empty", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tex, ok := r.textures[key]
	if !ok {
		tex.provider = bind_group_provider.NewBindGroupProvider("texture " + key)
	}
	if !ok || tex.width != w || tex.height != h {
		if err := r.backend.InitTexture(tex.provider, w, h); err != nil {
			return err
		}
		tex.width, tex.height = w, h
		r.textures[key] = tex
	}
	r.backend.WriteTexture(tex.provider, pixels, w, h)
	return nil
}

func (r *renderer) BeginFrame() error {
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.mu.Lock()
	r.inFrame = true
	r.mu.Unlock()
	return nil
}

func (r *renderer) DrawScene(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return ErrNoFrame
	}
	plan, ok := planScene(s, r.width, r.height)
	if !ok {
		return nil
	}

	frame, err := r.frameProvider(s.Name())
	if err != nil {
		return err
	}
	objects, err := r.objectProvider(s.Name(), len(plan.calls))
	if err != nil {
		return err
	}
	for _, call := range plan.calls {
		if _, err := r.meshProvider(call.mesh); err != nil {
			return err
		}
	}

	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: frame, Binding: bindingCamera, Data: plan.camera},
		{Provider: frame, Binding: bindingLights, Data: plan.lights},
		{Provider: frame, Binding: bindingScene, Data: plan.scene},
		{Provider: objects, Binding: 0, Data: plan.objects},
	})

	r.backend.SetViewport(plan.rect)
	r.backend.DrawBackdrop(r.pipelineCache[plan.backdrop], frame)
	for _, call := range plan.calls {
		tex, ok := r.textures[call.texture]
		if !ok {
			tex = r.textures[""]
		}
		r.backend.DrawCall(r.pipelineCache[call.pipeline], r.meshes[call.mesh.ID()], call.lines, frame, objects, call.offset, tex.provider)
	}
	return nil
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	r.inFrame = false
	r.mu.Unlock()
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.meshes {
		p.Release()
	}
	for _, p := range r.frames {
		p.Release()
	}
	for _, p := range r.objects {
		p.Release()
	}
	for _, t := range r.textures {
		t.provider.Release()
	}
	clear(r.meshes)
	clear(r.frames)
	clear(r.objects)
	clear(r.textures)
	r.backend.Release()
}

// frameProvider returns the scene's frame bind group, creating it on first use. Caller must hold mu.
func (r *renderer) frameProvider(name string) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.frames[name]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider(name + " frame")
	if err := r.backend.InitFrameBindGroup(p); err != nil {
		return nil, err
	}
	r.frames[name] = p
	return p, nil
}

// objectProvider returns the scene's object bind group with room for n draws. Caller must hold mu.
func (r *renderer) objectProvider(name string, n int) (bind_group_provider.BindGroupProvider, error) {
	p, ok := r.objects[name]
	if !ok {
		p = bind_group_provider.NewBindGroupProvider(name + " objects")
		r.objects[name] = p
	}
	if need := uint64(objectCapacity(n)) * objectStride; p.BufferSize(0) < need {
		if err := r.backend.InitObjectBindGroup(p, objectCapacity(n)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// meshProvider uploads a mesh the first time it is drawn. Caller must hold mu.
func (r *renderer) meshProvider(m *model.Mesh) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.meshes[m.ID()]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider(m.Name())
	var lines []byte
	if len(m.Edges()) > 0 {
		lines = model.MarshalIndices(m.Edges())
	}
	err := r.backend.InitMeshBuffers(p,
		model.MarshalVertices(m.Vertices()),
		model.MarshalIndices(m.Indices()), len(m.Indices()),
		lines, len(m.Edges()))
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", m.Name(), err)
	}
	r.meshes[m.ID()] = p
	return p, nil
}

// objectCapacity rounds a draw count up to a power of two, at least 16, so the buffer grows rarely.
func objectCapacity(n int) int {
	c := 16
	for c < n {
		c *= 2
	}
	return c
}

type drawCall struct {
	pipeline string
	mesh     *model.Mesh
	texture  string
	offset   uint32
	lines    bool
}

// scenePlan is everything DrawScene uploads and encodes for one scene.
type scenePlan struct {
	rect     pixelRect
	backdrop string
	camera   []byte
	lights   []byte
	scene    []byte
	objects  []byte
	calls    []drawCall
}

// planScene resolves a scene into uploads and draw calls without touching the GPU.
//
// Parameters:
//   - s: the scene to plan
//   - fbWidth, fbHeight: the framebuffer size the viewport is clamped to
//
// Returns:
//   - scenePlan: the uploads and draws
//   - bool: false when the scene is inactive or its viewport is off screen
func planScene(s scene.Scene, fbWidth, fbHeight int) (scenePlan, bool) {
	if !s.Active() {
		return scenePlan{}, false
	}
	rect, ok := clampViewport(s.Viewport(), fbWidth, fbHeight)
	if !ok {
		return scenePlan{}, false
	}

	cam := s.Camera().Uniform()
	lights := light.Pack(s.Lights())
	env := s.Uniform()
	plan := scenePlan{
		rect:     rect,
		backdrop: PipelineDepthClear,
		camera:   cam.Marshal(),
		lights:   lights.Marshal(),
		scene:    env.Marshal(),
	}
	if _, ok := s.Background(); ok {
		plan.backdrop = PipelineBackdrop
	}

	items := s.DrawList()
	plan.objects = make([]byte, len(items)*objectStride)
	for i, item := range items {
		u := item.Uniform()
		u.MarshalInto(plan.objects[i*objectStride:])

		call := drawCall{
			pipeline: pipelineFor(item.Material),
			mesh:     item.Mesh,
			texture:  item.Material.Texture(),
			offset:   uint32(i * objectStride),
		}
		if item.Material.Wireframe() {
			if len(item.Mesh.Edges()) == 0 {
				continue
			}
			call.lines = true
		}
		plan.calls = append(plan.calls, call)
	}
	return plan, true
}

// pipelineFor picks the pipeline a material draws with.
func pipelineFor(m material.Material) string {
	switch {
	case m.Wireframe():
		return PipelineWireframe
	case m.Transparent():
		return PipelineTransparent
	default:
		return PipelineOpaque
	}
}

// clampViewport converts a viewport to whole pixels inside the framebuffer.
func clampViewport(v scene.Viewport, fbWidth, fbHeight int) (pixelRect, bool) {
	if v.Empty() || fbWidth <= 0 || fbHeight <= 0 {
		return pixelRect{}, false
	}
	x0 := max(float64(v.X), 0)
	y0 := max(float64(v.Y), 0)
	x1 := min(float64(v.X+v.Width), float64(fbWidth))
	y1 := min(float64(v.Y+v.Height), float64(fbHeight))
	x0, y0 = math.Floor(x0), math.Floor(y0)
	x1, y1 = math.Ceil(x1), math.Ceil(y1)
	if x1 <= x0 || y1 <= y0 {
		return pixelRect{}, false
	}
	return pixelRect{X: uint32(x0), Y: uint32(y0), Width: uint32(x1 - x0), Height: uint32(y1 - y0)}, true
}

// straightRGBA returns the image as tightly packed non-premultiplied RGBA bytes.
func straightRGBA(img image.Image) ([]byte, int, int) {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && n.Stride == b.Dx()*4 && b.Min == (image.Point{}) {
		return n.Pix, b.Dx(), b.Dy()
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst.Pix, b.Dx(), b.Dy()
}
