package material

import (
	"github.com/Carmen-Shannon/nova-showcase/common"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBasic switches the material to unlit shading.
//
// Returns:
//   - MaterialBuilderOption: a function that applies the kind option to a material
func WithBasic() MaterialBuilderOption {
	return func(m *material) {
		m.kind = KindBasic
	}
}

// WithColor sets the base color from a CSS hex string such as "#1a1a1a".
// Panics on malformed input, since material colors are compile-time constants.
//
// Parameters:
//   - hex: the color string
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(hex string) MaterialBuilderOption {
	return func(m *material) {
		m.color = common.MustHexColor(hex)
	}
}

// WithRGB sets the base color from components in [0, 1].
//
// Parameters:
//   - r, g, b: the color components
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithRGB(r, g, b float32) MaterialBuilderOption {
	return func(m *material) {
		m.color = mgl32.Vec3{r, g, b}
	}
}

// WithOpacity marks the material transparent with the given opacity.
//
// Parameters:
//   - opacity: alpha in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = true
		m.opacity = opacity
	}
}

// WithEmissive sets the emitted color and its intensity.
//
// Parameters:
//   - hex: the emissive color string
//   - intensity: the emissive multiplier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(hex string, intensity float32) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = common.MustHexColor(hex)
		m.emissiveIntensity = intensity
	}
}

// WithRoughness sets the roughness factor.
//
// Parameters:
//   - roughness: 0 (smooth) to 1 (rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithMetalness sets the metalness factor.
//
// Parameters:
//   - metalness: 0 (dielectric) to 1 (metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = metalness
	}
}

// WithToneMapped enables or disables tone mapping of the output color.
//
// Parameters:
//   - toneMapped: false to output the color as-is
//
// Returns:
//   - MaterialBuilderOption: a function that applies the tone mapping option to a material
func WithToneMapped(toneMapped bool) MaterialBuilderOption {
	return func(m *material) {
		m.toneMapped = toneMapped
	}
}

// WithWireframe draws the mesh edges instead of its faces.
//
// Returns:
//   - MaterialBuilderOption: a function that applies the wireframe option to a material
func WithWireframe() MaterialBuilderOption {
	return func(m *material) {
		m.wireframe = true
	}
}

// WithTexture samples the named renderer texture as the color map.
//
// Parameters:
//   - key: the texture key registered with the renderer
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(key string) MaterialBuilderOption {
	return func(m *material) {
		m.texture = key
	}
}
