package scene

import (
	"cmp"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/nova-showcase/engine/camera"
	"github.com/Carmen-Shannon/nova-showcase/engine/light"
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is a rectangle of the framebuffer in pixels, origin top-left.
type Viewport struct {
	X, Y, Width, Height float32
}

// Empty reports whether the viewport covers no pixels.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Aspect returns width / height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Empty() {
		return 1
	}
	return v.Width / v.Height
}

// Contains reports whether the pixel (x, y) lies inside the viewport.
func (v Viewport) Contains(x, y float32) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}

// Normalize converts a framebuffer pixel into viewport NDC: x and y in [-1, 1] inside the viewport, y up.
//
// Parameters:
//   - x, y: the pixel position
//
// Returns:
//   - nx, ny: the normalized position, unclamped
func (v Viewport) Normalize(x, y float32) (nx, ny float32) {
	if v.Empty() {
		return 0, 0
	}
	nx = (x-v.X)/v.Width*2 - 1
	ny = -((y-v.Y)/v.Height*2 - 1)
	return nx, ny
}

// Environment approximates image-based lighting with a two-color hemisphere.
// Reflections sample Sky above the horizon and Ground below.
type Environment struct {
	Sky       mgl32.Vec3
	Ground    mgl32.Vec3
	Intensity float32
}

// DrawItem is one mesh to draw with its resolved world transform.
type DrawItem struct {
	Node     *Node
	Mesh     *model.Mesh
	Material material.Material
	World    mgl32.Mat4

	// Depth is the view-space distance along the camera axis, used for transparent sorting.
	Depth float32
}

// Scene is a camera, a node graph and its lights, drawn into a viewport of the framebuffer.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for the scene-level fields; the node graph itself is owned by the frame goroutine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently drawn.
	Active() bool

	// SetActive sets whether this scene is drawn.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Root returns the root node of the scene graph.
	Root() *Node

	// Lights returns the scene lights.
	Lights() []light.Light

	// AddLight adds a light to the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// Environment returns the hemisphere environment used for reflections.
	Environment() Environment

	// Background returns the color the viewport is cleared to and whether it is cleared at all.
	// Scenes without a background draw over whatever is already in the framebuffer.
	Background() (mgl32.Vec4, bool)

	// Viewport returns the framebuffer rectangle the scene draws into.
	Viewport() Viewport

	// SetViewport moves the scene on screen and updates the camera aspect ratio to match.
	//
	// Parameters:
	//   - v: the new viewport
	SetViewport(v Viewport)

	// SetCanvas places a canvas that may extend past the framebuffer. The viewport becomes the visible
	// part of the canvas and the camera renders only that window of the whole canvas.
	//
	// Parameters:
	//   - canvas: the whole canvas in framebuffer pixels, possibly off screen
	//   - fbWidth, fbHeight: the framebuffer size
	SetCanvas(canvas Viewport, fbWidth, fbHeight float32)

	// DrawList flattens the visible graph into draw items: opaque items in graph order,
	// then transparent items ordered by RenderOrder and back to front.
	//
	// Returns:
	//   - []DrawItem: the items to draw this frame
	DrawList() []DrawItem

	// Uniform packs the environment and background for GPU upload.
	Uniform() GPUSceneUniform

	// Raycast intersects the ray under a viewport NDC position with every visible mesh.
	//
	// Parameters:
	//   - ndcX, ndcY: the position in viewport NDC, y up
	//
	// Returns:
	//   - []Hit: hits ordered nearest first
	Raycast(ndcX, ndcY float32) []Hit
}

type scene struct {
	mu *sync.RWMutex

	name       string
	active     bool
	cam        camera.Camera
	root       *Node
	lights     []light.Light
	env        Environment
	background mgl32.Vec4
	clear      bool
	viewport   Viewport
}

var _ Scene = &scene{}

// NewScene creates an active scene with an empty root node.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	s := &scene{
		mu:     &sync.RWMutex{},
		name:   name,
		active: true,
		cam:    cam,
		root:   NewNode(name),
		env: Environment{
			Sky:       mgl32.Vec3{0.85, 0.88, 0.95},
			Ground:    mgl32.Vec3{0.12, 0.12, 0.14},
			Intensity: 1,
		},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Root() *Node {
	return s.root
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Environment() Environment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env
}

func (s *scene) Background() (mgl32.Vec4, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background, s.clear
}

func (s *scene) Viewport() Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

func (s *scene) SetViewport(v Viewport) {
	s.mu.Lock()
	s.viewport = v
	s.mu.Unlock()
	if !v.Empty() {
		s.cam.SetAspect(v.Aspect())
	}
}

func (s *scene) SetCanvas(canvas Viewport, fbWidth, fbHeight float32) {
	x0, y0 := max(canvas.X, 0), max(canvas.Y, 0)
	x1, y1 := min(canvas.X+canvas.Width, fbWidth), min(canvas.Y+canvas.Height, fbHeight)
	if canvas.Empty() || x1 <= x0 || y1 <= y0 {
		s.mu.Lock()
		s.viewport = Viewport{}
		s.mu.Unlock()
		s.cam.ClearViewOffset()
		return
	}
	visible := Viewport{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	s.mu.Lock()
	s.viewport = visible
	s.mu.Unlock()
	s.cam.SetViewOffset(canvas.Width, canvas.Height, x0-canvas.X, y0-canvas.Y, visible.Width, visible.Height)
}

func (s *scene) DrawList() []DrawItem {
	view := s.cam.ViewMatrix()
	var opaque, transparent []DrawItem
	s.root.Walk(mgl32.Ident4(), func(n *Node, world mgl32.Mat4) {
		if n.Mesh == nil || n.Material == nil {
			return
		}
		item := DrawItem{Node: n, Mesh: n.Mesh, Material: n.Material, World: world}
		if n.Material.Transparent() {
			center := mgl32.TransformCoordinate(n.Mesh.Bounds().Center(), world)
			item.Depth = -mgl32.TransformCoordinate(center, view).Z()
			transparent = append(transparent, item)
			return
		}
		opaque = append(opaque, item)
	})
	slices.SortStableFunc(transparent, func(a, b DrawItem) int {
		if c := cmp.Compare(a.Node.RenderOrder, b.Node.RenderOrder); c != 0 {
			return c
		}
		return cmp.Compare(b.Depth, a.Depth)
	})
	return append(opaque, transparent...)
}
