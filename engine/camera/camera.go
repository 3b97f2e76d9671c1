package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// clipCorrection remaps OpenGL clip depth [-w, w] to the WebGPU range [0, w].
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	// orthoHeight switches to an orthographic projection spanning this many world units vertically when > 0.
	orthoHeight float32
	view        *viewOffset

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera is a perspective camera looking from a position toward a target.
// Matrices are recomputed eagerly whenever a parameter changes, so reads are cheap.
type Camera interface {
	// Position returns the world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// Target returns the world-space point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at target
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix with WebGPU depth range.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined projection * view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix (column-major)
	ViewProjectionMatrix() mgl32.Mat4

	// Project transforms a world-space point into normalized device coordinates.
	// x and y are in [-1, 1] with y up when the point is inside the frustum.
	//
	// Parameters:
	//   - world: the point to project
	//
	// Returns:
	//   - mgl32.Vec3: the NDC position
	//   - bool: false when the point is behind the camera
	Project(world mgl32.Vec3) (mgl32.Vec3, bool)

	// Uniform packs the camera state for GPU upload.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform block contents
	Uniform() GPUCameraUniform

	// SetPosition moves the eye.
	SetPosition(p mgl32.Vec3)

	// SetTarget changes the look-at target.
	SetTarget(t mgl32.Vec3)

	// SetUp sets the camera's up vector.
	SetUp(up mgl32.Vec3)

	// SetFov sets the vertical field of view in degrees.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height).
	// Non-positive values are ignored, which keeps a zero-height viewport from producing NaN matrices.
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	SetFar(far float32)

	// Orthographic returns the visible world height of an orthographic camera, or 0 for perspective.
	Orthographic() float32

	// SetOrthographic switches to an orthographic projection spanning height world units vertically.
	// A height of 0 switches back to perspective.
	SetOrthographic(height float32)

	// SetViewOffset restricts the projection to a window of a larger virtual canvas, so a partly
	// visible canvas renders exactly the pixels it would show if it were whole. The aspect ratio
	// becomes fullWidth / fullHeight.
	//
	// Parameters:
	//   - fullWidth, fullHeight: the size of the whole canvas in pixels
	//   - x, y: the top-left corner of the visible window inside the canvas
	//   - width, height: the size of the visible window
	SetViewOffset(fullWidth, fullHeight, x, y, width, height float32)

	// ClearViewOffset removes a window set by SetViewOffset.
	ClearViewOffset()
}

// viewOffset is the visible window of a larger canvas, in pixels.
type viewOffset struct {
	fullWidth, fullHeight float32
	x, y, width, height   float32
}

// crop maps the window's NDC range onto [-1, 1].
func (v viewOffset) crop() mgl32.Mat4 {
	sx := v.fullWidth / v.width
	sy := v.fullHeight / v.height
	left := v.x/v.fullWidth*2 - 1
	right := (v.x+v.width)/v.fullWidth*2 - 1
	top := 1 - v.y/v.fullHeight*2
	bottom := 1 - (v.y+v.height)/v.fullHeight*2
	return mgl32.Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), 0, 1,
	}
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at (0, 0, 5) looking at the origin with a 50 degree field of view,
// then applies the options in order.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 5},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      50,
		aspect:   1,
		near:     0.1,
		far:      100,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Project(world mgl32.Vec3) (mgl32.Vec3, bool) {
	c.mu.Lock()
	clip := c.viewProjectionMatrix.Mul4x1(world.Vec4(1))
	c.mu.Unlock()

	if clip.W() <= 0 {
		return mgl32.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) SetTarget(t mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = t
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Orthographic() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orthoHeight
}

func (c *cameraImpl) SetOrthographic(height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orthoHeight = max(height, 0)
	c.updateMatrices()
}

func (c *cameraImpl) SetViewOffset(fullWidth, fullHeight, x, y, width, height float32) {
	if fullWidth <= 0 || fullHeight <= 0 || width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = &viewOffset{fullWidth: fullWidth, fullHeight: fullHeight, x: x, y: y, width: width, height: height}
	c.aspect = fullWidth / fullHeight
	c.updateMatrices()
}

func (c *cameraImpl) ClearViewOffset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil {
		return
	}
	c.view = nil
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)
	if c.orthoHeight > 0 {
		h := c.orthoHeight / 2
		w := h * c.aspect
		c.projectionMatrix = clipCorrection.Mul4(mgl32.Ortho(-w, w, -h, h, c.near, c.far))
	} else {
		c.projectionMatrix = clipCorrection.Mul4(mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far))
	}
	if c.view != nil {
		c.projectionMatrix = c.view.crop().Mul4(c.projectionMatrix)
	}
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
