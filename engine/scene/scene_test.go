package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/nova-showcase/engine/camera"
	"github.com/Carmen-Shannon/nova-showcase/engine/light"
	"github.com/Carmen-Shannon/nova-showcase/engine/model"
	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []DrawItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Node.Name
	}
	return out
}

func TestNode_AddReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.Add(c)
	b.Add(c)

	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{c}, b.Children())
	assert.Same(t, b, c.Parent())
	assert.Same(t, c, b.Find("c"))
	assert.Nil(t, a.Find("c"))
}

func TestNode_WorldMatrix(t *testing.T) {
	child := NewNode("child", WithPosition(1, 0, 0))
	parent := NewNode("parent", WithPosition(0, 2, 0), WithRotation(0, 0, math.Pi/2), WithChildren(child))
	_ = parent

	p := mgl32.TransformCoordinate(mgl32.Vec3{}, child.WorldMatrix())
	// The parent's 90 degree Z rotation turns +X into +Y.
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 3, p.Y(), 1e-5)
}

func TestNode_WalkSkipsInvisibleSubtrees(t *testing.T) {
	leaf := NewNode("leaf")
	hidden := NewNode("hidden", WithVisible(false), WithChildren(leaf))
	root := NewNode("root", WithChildren(hidden, NewNode("shown")))

	var seen []string
	root.Walk(mgl32.Ident4(), func(n *Node, _ mgl32.Mat4) {
		seen = append(seen, n.Name)
	})
	assert.Equal(t, []string{"root", "shown"}, seen)
}

func TestNode_WorldBounds(t *testing.T) {
	box := NewNode("box", WithMesh(model.NewBox(1, 1, 1), material.NewMaterial()), WithPosition(2, 0, 0), WithScale(2))
	root := NewNode("root", WithChildren(box))

	b := root.WorldBounds()
	assert.InDelta(t, 1, b.Min.X(), 1e-5)
	assert.InDelta(t, 3, b.Max.X(), 1e-5)
	assert.InDelta(t, -1, b.Min.Y(), 1e-5)
}

func TestScene_DrawListOrder(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10))
	mesh := model.NewBox(1, 1, 1)
	solid := material.NewMaterial()
	glass := material.NewMaterial(material.WithOpacity(0.5))

	s := NewScene("test", cam, WithNodes(
		NewNode("near-glass", WithMesh(mesh, glass), WithPosition(0, 0, 2)),
		NewNode("solid-a", WithMesh(mesh, solid)),
		NewNode("far-glass", WithMesh(mesh, glass), WithPosition(0, 0, -2)),
		NewNode("overlay", WithMesh(mesh, glass), WithPosition(0, 0, -5), WithRenderOrder(1)),
		NewNode("solid-b", WithMesh(mesh, solid)),
		NewNode("hidden", WithMesh(mesh, solid), WithVisible(false)),
		NewNode("empty"),
	))

	items := s.DrawList()
	assert.Equal(t, []string{"solid-a", "solid-b", "far-glass", "near-glass", "overlay"}, names(items))
	assert.InDelta(t, 12, items[2].Depth, 1e-4)
	assert.InDelta(t, 8, items[3].Depth, 1e-4)
}

func TestScene_DrawListStableForEqualDepth(t *testing.T) {
	cam := camera.NewCamera()
	mesh := model.NewPlane(1, 1)
	glass := material.NewMaterial(material.WithOpacity(0.3))
	s := NewScene("test", cam, WithNodes(
		NewNode("first", WithMesh(mesh, glass)),
		NewNode("second", WithMesh(mesh, glass)),
	))
	assert.Equal(t, []string{"first", "second"}, names(s.DrawList()))
}

func TestScene_SetViewportUpdatesAspect(t *testing.T) {
	cam := camera.NewCamera()
	s := NewScene("test", cam)

	s.SetViewport(Viewport{X: 10, Y: 20, Width: 400, Height: 200})
	assert.Equal(t, float32(2), cam.Aspect())

	s.SetViewport(Viewport{Width: 400})
	assert.Equal(t, float32(2), cam.Aspect())
	assert.True(t, s.Viewport().Empty())
}

func TestScene_SetCanvasClipsToFramebuffer(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 5), camera.WithTarget(0, 0, 0))
	s := NewScene("test", cam)

	// The top half of a 400x200 canvas is scrolled above the framebuffer.
	s.SetCanvas(Viewport{X: 100, Y: -100, Width: 400, Height: 200}, 800, 600)
	assert.Equal(t, Viewport{X: 100, Y: 0, Width: 400, Height: 100}, s.Viewport())
	assert.Equal(t, float32(2), cam.Aspect())

	// The canvas center sits on the top edge of the visible window.
	ndc, ok := cam.Project(mgl32.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 1, ndc.Y(), 1e-5)

	s.SetCanvas(Viewport{X: 0, Y: -300, Width: 400, Height: 200}, 800, 600)
	assert.True(t, s.Viewport().Empty())
	ndc, _ = cam.Project(mgl32.Vec3{0, 0, 0})
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
}

func TestViewport_Normalize(t *testing.T) {
	v := Viewport{X: 100, Y: 50, Width: 200, Height: 100}

	x, y := v.Normalize(100, 50)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = v.Normalize(200, 100)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	assert.True(t, v.Contains(299, 149))
	assert.False(t, v.Contains(300, 100))
}

func TestScene_Lights(t *testing.T) {
	s := NewScene("test", camera.NewCamera(), WithLights(light.NewLight(light.LightTypeAmbient), nil))
	s.AddLight(nil)
	s.AddLight(light.NewLight(light.LightTypePoint))
	assert.Len(t, s.Lights(), 2)
}

func TestScene_Background(t *testing.T) {
	s := NewScene("test", camera.NewCamera())
	_, ok := s.Background()
	assert.False(t, ok)

	s = NewScene("test", camera.NewCamera(), WithBackground("#ff0000"))
	c, ok := s.Background()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, c)
}

func TestScene_RaycastNearestFirst(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 5))
	mesh := model.NewBox(1, 1, 1)
	mat := material.NewMaterial()
	s := NewScene("test", cam, WithNodes(
		NewNode("back", WithMesh(mesh, mat), WithPosition(0, 0, -2)),
		NewNode("front", WithMesh(mesh, mat)),
	))

	hits := s.Raycast(0, 0)
	require.Len(t, hits, 2)
	assert.Equal(t, "front", hits[0].Node.Name)
	assert.Equal(t, "back", hits[1].Node.Name)
	assert.InDelta(t, 0.5, hits[0].Point.Z(), 1e-4)
	assert.InDelta(t, -1.5, hits[1].Point.Z(), 1e-4)
	assert.Less(t, hits[0].Distance, hits[1].Distance)
}

func TestScene_RaycastMissAndHidden(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 5))
	box := NewNode("box", WithMesh(model.NewBox(1, 1, 1), material.NewMaterial()))
	s := NewScene("test", cam, WithNodes(box))

	assert.Empty(t, s.Raycast(0.9, 0.9))

	box.Visible = false
	assert.Empty(t, s.Raycast(0, 0))
}

func TestScene_RaycastScaledNode(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 5))
	node := NewNode("big", WithMesh(model.NewBox(1, 1, 1), material.NewMaterial()), WithScale(2))
	s := NewScene("test", cam, WithNodes(node))

	// Half-height of the view at the box front face is (5-1)*tan(25deg), about 1.87,
	// so NDC 0.4 lands 0.75 units up: outside a unit box but inside the scaled one.
	hits := s.Raycast(0, 0.4)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1, hits[0].Point.Z(), 1e-4)
}

func TestIntersectTriangle(t *testing.T) {
	a := mgl32.Vec3{-1, -1, 0}
	b := mgl32.Vec3{1, -1, 0}
	c := mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name string
		ray  Ray
		hit  bool
		t    float32
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, -1}}, true, 3},
		{"back face", Ray{mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, 1}}, true, 2},
		{"outside", Ray{mgl32.Vec3{2, 0, 3}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"parallel", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{1, 0, 0}}, false, 0},
		{"behind origin", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := intersectTriangle(tt.ray, a, b, c)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.InDelta(t, tt.t, got, 1e-5)
			}
		})
	}
}

func TestRayFromNDC(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 5))
	ray, ok := RayFromNDC(cam.ViewProjectionMatrix(), 0, 0)
	require.True(t, ok)
	assert.InDelta(t, -1, ray.Direction.Z(), 1e-4)
	assert.InDelta(t, 4.9, ray.Origin.Z(), 1e-3)

	_, ok = RayFromNDC(mgl32.Mat4{}, 0, 0)
	assert.False(t, ok)
}

func TestGPUObjectUniform(t *testing.T) {
	n := NewNode("n", WithMesh(model.NewBox(1, 1, 1), material.NewMaterial(material.WithColor("#336699"))), WithPosition(1, 2, 3), WithScale(2))
	item := DrawItem{Node: n, Mesh: n.Mesh, Material: n.Material, World: n.WorldMatrix()}

	u := item.Uniform()
	require.Equal(t, 176, u.Size())
	assert.Equal(t, float32(1), u.Model[12])
	// Uniform scale s gives a normal matrix of 1/s on the diagonal.
	assert.InDelta(t, 0.5, u.Normal[0], 1e-5)

	buf := make([]byte, 176)
	u.MarshalInto(buf)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[56:])))
	assert.InDelta(t, 0.2, math.Float32frombits(binary.LittleEndian.Uint32(buf[128:])), 1e-3)
}

func TestGPUSceneUniform(t *testing.T) {
	s := NewScene("test", camera.NewCamera(), WithEnvironment("#ffffff", "#000000", 0.5), WithBackground("#000000"))
	u := s.Uniform()
	require.Equal(t, 48, u.Size())

	buf := u.Marshal()
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[44:])))
}
