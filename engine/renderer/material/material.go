package material

import "github.com/go-gl/mathgl/mgl32"

// Kind selects the shading model.
type Kind int

const (
	// KindStandard is lit with a roughness/metalness approximation.
	KindStandard Kind = iota
	// KindBasic ignores lights and outputs its color (or texture) directly.
	KindBasic
)

// material is the implementation of the Material interface.
type material struct {
	name              string
	kind              Kind
	color             mgl32.Vec3
	opacity           float32
	transparent       bool
	emissive          mgl32.Vec3
	emissiveIntensity float32
	roughness         float32
	metalness         float32
	toneMapped        bool
	wireframe         bool
	texture           string
}

// Material describes how a surface is shaded.
//
// Surface properties are set at construction; color and opacity stay mutable so
// animations can fade or tint a shared material without rebuilding it.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Kind returns the shading model.
	Kind() Kind

	// Color retrieves the base RGB color.
	//
	// Returns:
	//   - mgl32.Vec3: the color in [0, 1]
	Color() mgl32.Vec3

	// Opacity returns the alpha applied when the material is transparent.
	Opacity() float32

	// Transparent reports whether the material is alpha blended.
	// Transparent surfaces draw after opaque ones, back to front, without depth writes.
	Transparent() bool

	// Emissive returns the emitted RGB color.
	Emissive() mgl32.Vec3

	// EmissiveIntensity returns the emissive multiplier.
	EmissiveIntensity() float32

	// Roughness retrieves the roughness factor: 0 is mirror-smooth, 1 fully rough.
	Roughness() float32

	// Metalness retrieves the metalness factor: 0 is dielectric, 1 fully metallic.
	Metalness() float32

	// ToneMapped reports whether the output passes through tone mapping.
	ToneMapped() bool

	// Wireframe reports whether the mesh draws as edges instead of faces.
	Wireframe() bool

	// Texture returns the key of the texture sampled as the color map, or "" for none.
	Texture() string

	// SetColor replaces the base color.
	SetColor(c mgl32.Vec3)

	// SetOpacity replaces the opacity.
	SetOpacity(opacity float32)

	// Uniform packs the material for GPU upload.
	//
	// Returns:
	//   - GPUMaterial: the packed material block
	Uniform() GPUMaterial
}

var _ Material = &material{}

// NewMaterial creates a white, opaque, fully rough standard material and applies the options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		kind:       KindStandard,
		color:      mgl32.Vec3{1, 1, 1},
		opacity:    1,
		roughness:  1,
		toneMapped: true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Kind() Kind {
	return m.kind
}

func (m *material) Color() mgl32.Vec3 {
	return m.color
}

func (m *material) Opacity() float32 {
	return m.opacity
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) Emissive() mgl32.Vec3 {
	return m.emissive
}

func (m *material) EmissiveIntensity() float32 {
	return m.emissiveIntensity
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) ToneMapped() bool {
	return m.toneMapped
}

func (m *material) Wireframe() bool {
	return m.wireframe
}

func (m *material) Texture() string {
	return m.texture
}

func (m *material) SetColor(c mgl32.Vec3) {
	m.color = c
}

func (m *material) SetOpacity(opacity float32) {
	m.opacity = opacity
}

func (m *material) Uniform() GPUMaterial {
	g := GPUMaterial{
		Color:             [4]float32{m.color[0], m.color[1], m.color[2], 1},
		Emissive:          m.emissive,
		EmissiveIntensity: m.emissiveIntensity,
		Roughness:         m.roughness,
		Metalness:         m.metalness,
	}
	if m.transparent {
		g.Color[3] = m.opacity
	}
	if m.kind == KindStandard {
		g.Flags |= FlagLit
	}
	if m.texture != "" {
		g.Flags |= FlagTextured
	}
	if m.toneMapped {
		g.Flags |= FlagToneMapped
	}
	return g
}
