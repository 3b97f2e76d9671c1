package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypePoint emits in all directions from a position.
	LightTypePoint

	// LightTypeSpot emits in a cone from a position toward a target.
	// The cone edge softens over the penumbra fraction of its half-angle.
	LightTypeSpot
)

// String returns the lowercase light type name.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	target    mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	angle     float32 // spot half-angle in radians
	penumbra  float32 // [0, 1]
	enabled   bool
}

// Light is a scene light source. Type-specific properties (position for ambient lights,
// cone values for non-spot lights) are ignored by the shader when not applicable.
type Light interface {
	// Type returns the kind of light source.
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Target returns the point a spot light aims at.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// Direction returns the normalized axis from position toward target.
	//
	// Returns:
	//   - mgl32.Vec3: the unit direction, or -Y when position equals target
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier.
	Intensity() float32

	// Angle returns the spot cone half-angle in radians.
	Angle() float32

	// Penumbra returns the fraction of the cone over which the spot falls off.
	Penumbra() float32

	// Enabled reports whether the light contributes to rendering.
	Enabled() bool

	// SetPosition moves the light.
	SetPosition(p mgl32.Vec3)

	// SetColor changes the light color.
	SetColor(c mgl32.Vec3)

	// SetIntensity changes the intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a white light of intensity 1 and applies the options.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: functional options configuring the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
		angle:     math.Pi / 3,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.target.Sub(l.position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Angle() float32 {
	return l.angle
}

func (l *lightImpl) Penumbra() float32 {
	return l.penumbra
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetColor(c mgl32.Vec3) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
