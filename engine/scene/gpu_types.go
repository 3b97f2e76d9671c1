package scene

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/nova-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUSceneUniformSource is the canonical WGSL definition of the SceneUniform struct.
//
//go:embed assets/scene.wgsl
var GPUSceneUniformSource string

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct.
// It references MaterialUniform, so the material source must be included first.
//
//go:embed assets/object.wgsl
var GPUObjectUniformSource string

// GPUSceneUniform carries the per-scene shading terms.
// Size: 48 bytes.
type GPUSceneUniform struct {
	Sky          [3]float32 // offset  0
	EnvIntensity float32    // offset 12
	Ground       [3]float32 // offset 16
	Exposure     float32    // offset 28
	Background   [4]float32 // offset 32
}

// Size returns the size of the GPUSceneUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUSceneUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSceneUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUSceneUniform) Marshal() []byte {
	buf := make([]byte, 48)
	putFloats(buf[0:], g.Sky[:]...)
	putFloats(buf[12:], g.EnvIntensity)
	putFloats(buf[16:], g.Ground[:]...)
	putFloats(buf[28:], g.Exposure)
	putFloats(buf[32:], g.Background[:]...)
	return buf
}

// GPUObjectUniform is the per-draw block: transforms plus the material.
// Size: 176 bytes.
type GPUObjectUniform struct {
	Model    mgl32.Mat4           // offset   0
	Normal   mgl32.Mat4           // offset  64: inverse transpose of Model
	Material material.GPUMaterial // offset 128
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (176)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalInto writes the struct into the first 176 bytes of buf.
//
// Parameters:
//   - buf: destination, at least 176 bytes
func (g *GPUObjectUniform) MarshalInto(buf []byte) {
	putFloats(buf[0:], g.Model[:]...)
	putFloats(buf[64:], g.Normal[:]...)
	g.Material.MarshalInto(buf[128:])
}

// Uniform packs the scene environment and background for GPU upload.
//
// Returns:
//   - GPUSceneUniform: the uniform block contents
func (s *scene) Uniform() GPUSceneUniform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return GPUSceneUniform{
		Sky:          s.env.Sky,
		EnvIntensity: s.env.Intensity,
		Ground:       s.env.Ground,
		Exposure:     1,
		Background:   s.background,
	}
}

// Uniform packs the item's transforms and material for GPU upload.
//
// Returns:
//   - GPUObjectUniform: the uniform block contents
func (d DrawItem) Uniform() GPUObjectUniform {
	normal := d.World
	if d.World.Det() != 0 {
		normal = d.World.Inv().Transpose()
	}
	return GPUObjectUniform{
		Model:    d.World,
		Normal:   normal,
		Material: d.Material.Uniform(),
	}
}

func putFloats(buf []byte, v ...float32) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}
