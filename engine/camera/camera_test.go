package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.Equal(t, float32(50), c.Fov())
	assert.Equal(t, float32(1), c.Aspect())
}

func TestCamera_ProjectCenterAndEdges(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 4.5), WithFov(35), WithAspect(1))

	ndc, ok := c.Project(mgl32.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.Greater(t, ndc.Z(), float32(0))
	assert.Less(t, ndc.Z(), float32(1))

	// A point on the top edge of the frustum at the origin plane lands on y = 1.
	halfHeight := float32(4.5 * math.Tan(35.0/2*math.Pi/180))
	ndc, ok = c.Project(mgl32.Vec3{0, halfHeight, 0})
	require.True(t, ok)
	assert.InDelta(t, 1, ndc.Y(), 1e-4)

	ndc, ok = c.Project(mgl32.Vec3{0.5, 0, 0})
	require.True(t, ok)
	assert.Greater(t, ndc.X(), float32(0))
}

func TestCamera_ProjectBehind(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5))
	_, ok := c.Project(mgl32.Vec3{0, 0, 10})
	assert.False(t, ok)
}

func TestCamera_DepthRange(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 0), WithTarget(0, 0, -1), WithClip(1, 10))

	near, ok := c.Project(mgl32.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.InDelta(t, 0, near.Z(), 1e-5)

	far, ok := c.Project(mgl32.Vec3{0, 0, -10})
	require.True(t, ok)
	assert.InDelta(t, 1, far.Z(), 1e-5)
}

func TestCamera_SetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(2))
	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
	c.SetAspect(1.5)
	assert.Equal(t, float32(1.5), c.Aspect())
}

func TestCamera_SettersRecompute(t *testing.T) {
	c := NewCamera()
	before := c.ViewProjectionMatrix()
	c.SetPosition(mgl32.Vec3{2, 0, 5})
	assert.NotEqual(t, before, c.ViewProjectionMatrix())
	assert.Equal(t, c.ProjectionMatrix().Mul4(c.ViewMatrix()), c.ViewProjectionMatrix())
}

func TestGPUCameraUniform_Marshal(t *testing.T) {
	c := NewCamera(WithPosition(2, 0, 5))
	u := c.Uniform()
	require.Equal(t, 80, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, u.ViewProj[5], math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])))
	assert.Equal(t, float32(5), math.Float32frombits(binary.LittleEndian.Uint32(buf[72:])))
}

func TestCamera_Orthographic(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10), WithOrthographic(800), WithAspect(1.5), WithClip(0.1, 100))
	assert.Equal(t, float32(800), c.Orthographic())

	ndc, ok := c.Project(mgl32.Vec3{600, -400, 0})
	require.True(t, ok)
	assert.InDelta(t, 1, ndc.X(), 1e-5)
	assert.InDelta(t, -1, ndc.Y(), 1e-5)

	c.SetOrthographic(0)
	ndc, ok = c.Project(mgl32.Vec3{600, -400, 0})
	require.True(t, ok)
	assert.Greater(t, ndc.X(), float32(1))
}

func TestCamera_ViewOffset(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10), WithOrthographic(2), WithClip(0.1, 100))

	// Bottom half of a 400x200 canvas.
	c.SetViewOffset(400, 200, 0, 100, 400, 100)
	assert.Equal(t, float32(2), c.Aspect())
	ndc, ok := c.Project(mgl32.Vec3{1, -0.5, 0})
	require.True(t, ok)
	assert.InDelta(t, 0.5, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)

	c.ClearViewOffset()
	ndc, _ = c.Project(mgl32.Vec3{1, -0.5, 0})
	assert.InDelta(t, -0.5, ndc.Y(), 1e-5)
}
