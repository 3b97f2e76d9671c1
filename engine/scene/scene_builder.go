package scene

import (
	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/Carmen-Shannon/nova-showcase/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is drawn.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLights adds lights to the scene.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}

// WithNodes attaches nodes under the scene root.
//
// Parameters:
//   - nodes: the nodes to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...*Node) SceneBuilderOption {
	return func(s *scene) {
		s.root.Add(nodes...)
	}
}

// WithBackground clears the viewport to a CSS hex color before drawing.
//
// Parameters:
//   - hex: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(hex string) SceneBuilderOption {
	return func(s *scene) {
		c := common.MustHexColor(hex)
		s.background = mgl32.Vec4{c[0], c[1], c[2], 1}
		s.clear = true
	}
}

// WithEnvironment sets the reflection hemisphere.
//
// Parameters:
//   - sky: color reflected from above
//   - ground: color reflected from below
//   - intensity: reflection strength
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEnvironment(sky, ground string, intensity float32) SceneBuilderOption {
	return func(s *scene) {
		s.env = Environment{
			Sky:       common.MustHexColor(sky),
			Ground:    common.MustHexColor(ground),
			Intensity: intensity,
		}
	}
}

// WithViewport sets the initial framebuffer rectangle.
//
// Parameters:
//   - v: the viewport
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithViewport(v Viewport) SceneBuilderOption {
	return func(s *scene) {
		s.viewport = v
		if !v.Empty() {
			s.cam.SetAspect(v.Aspect())
		}
	}
}
