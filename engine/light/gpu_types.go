package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the number of point and spot lights the uniform block holds.
// Ambient lights are folded into a single term and do not count against it.
const MaxGPULights = 8

// GPULightSource is the canonical WGSL definition of the Light and LightUniform structs.
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of a single point or spot light.
// Size: 64 bytes.
type GPULight struct {
	Position  [3]float32 // offset  0
	LightType uint32     // offset 12: 1 = point, 2 = spot
	Color     [3]float32 // offset 16
	Intensity float32    // offset 28
	Direction [3]float32 // offset 32: spot axis
	CosOuter  float32    // offset 44: cos(angle)
	CosInner  float32    // offset 48: cos(angle * (1 - penumbra))
	_pad      [3]float32 // offset 52
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	g.marshalInto(buf)
	return buf
}

func (g *GPULight) marshalInto(buf []byte) {
	putVec3(buf[0:], g.Position)
	binary.LittleEndian.PutUint32(buf[12:], g.LightType)
	putVec3(buf[16:], g.Color)
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(g.Intensity))
	putVec3(buf[32:], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:], math.Float32bits(g.CosOuter))
	binary.LittleEndian.PutUint32(buf[48:], math.Float32bits(g.CosInner))
}

// GPULightUniform is the light uniform block: a combined ambient term followed by a fixed light array.
// Size: 16 + 64 * MaxGPULights bytes.
type GPULightUniform struct {
	Ambient [3]float32 // offset 0: sum of ambient color * intensity
	Count   uint32     // offset 12: number of valid entries in Lights
	Lights  [MaxGPULights]GPULight
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform block for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec3(buf[0:], g.Ambient)
	binary.LittleEndian.PutUint32(buf[12:], g.Count)
	for i := range g.Lights {
		g.Lights[i].marshalInto(buf[16+i*64:])
	}
	return buf
}

// Pack folds a light list into a GPULightUniform.
// Disabled lights are skipped; ambient lights are summed; point and spot lights beyond MaxGPULights are dropped.
//
// Parameters:
//   - lights: the scene lights in priority order
//
// Returns:
//   - GPULightUniform: the packed uniform block
func Pack(lights []Light) GPULightUniform {
	var u GPULightUniform
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		if l.Type() == LightTypeAmbient {
			c := l.Color().Mul(l.Intensity())
			u.Ambient[0] += c[0]
			u.Ambient[1] += c[1]
			u.Ambient[2] += c[2]
			continue
		}
		if int(u.Count) >= MaxGPULights {
			continue
		}
		g := GPULight{
			Position:  l.Position(),
			LightType: uint32(l.Type()),
			Color:     l.Color(),
			Intensity: l.Intensity(),
		}
		if l.Type() == LightTypeSpot {
			g.Direction = l.Direction()
			g.CosOuter = float32(math.Cos(float64(l.Angle())))
			g.CosInner = float32(math.Cos(float64(l.Angle() * (1 - l.Penumbra()))))
		}
		u.Lights[u.Count] = g
		u.Count++
	}
	return u
}

func putVec3(buf []byte, v [3]float32) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
	}
}
