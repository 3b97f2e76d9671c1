package renderer

import (
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// pixelRect is a viewport clamped to the framebuffer, in whole pixels.
type pixelRect struct {
	X, Y, Width, Height uint32
}

// RendererBackend is the GPU side of the Renderer: resource creation and command encoding.
// The Renderer decides what to draw; the backend only knows how.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and the depth and MSAA targets.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode selects vsync or uncapped presentation. Takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the framebuffer is cleared to at the start of each frame.
	SetClearColor(r, g, b float64)

	// RegisterRenderPipeline creates the GPU pipeline described by p and attaches it.
	//
	// Returns:
	//   - error: an error if the shader module or pipeline could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads geometry into a mesh provider. lineData may be empty.
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int, lineData []byte, lineCount int) error

	// InitFrameBindGroup creates the camera, light and scene uniform buffers of a scene and their bind group.
	InitFrameBindGroup(provider bind_group_provider.BindGroupProvider) error

	// InitObjectBindGroup (re)creates a scene's per-draw uniform buffer with room for capacity draws.
	InitObjectBindGroup(provider bind_group_provider.BindGroupProvider, capacity int) error

	// InitTexture (re)creates a sampled RGBA texture, its sampler and bind group.
	InitTexture(provider bind_group_provider.BindGroupProvider, width, height int) error

	// WriteTexture uploads tightly packed straight-alpha RGBA pixels into a texture provider.
	WriteTexture(provider bind_group_provider.BindGroupProvider, pixels []byte, width, height int)

	// WriteBuffers queues the given buffer uploads. Writes that do not fit their buffer are dropped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain texture and begins the frame's single render pass.
	//
	// Returns:
	//   - error: ErrFrameInFlight if the previous frame was not presented, or a surface error
	BeginFrame() error

	// SetViewport restricts subsequent draws to a framebuffer rectangle.
	SetViewport(r pixelRect)

	// DrawBackdrop draws a full-viewport triangle at the far plane with a backdrop pipeline.
	DrawBackdrop(p pipeline.Pipeline, frame bind_group_provider.BindGroupProvider)

	// DrawCall encodes one indexed draw.
	//
	// Parameters:
	//   - p: the pipeline to draw with
	//   - mesh: the mesh provider holding geometry
	//   - lines: draw the edge index buffer instead of triangles
	//   - frame: the scene frame bind group
	//   - objects: the scene object bind group
	//   - offset: the dynamic offset of this draw's object uniform
	//   - texture: the texture bind group
	DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, lines bool, frame, objects bind_group_provider.BindGroupProvider, offset uint32, texture bind_group_provider.BindGroupProvider)

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees the device, surface and render targets.
	Release()
}
