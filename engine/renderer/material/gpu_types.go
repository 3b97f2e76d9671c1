package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// Material flag bits, mirrored as constants in GPUMaterialSource.
const (
	FlagLit        uint32 = 1 << 0
	FlagTextured   uint32 = 1 << 1
	FlagToneMapped uint32 = 1 << 2
)

// GPUMaterialSource is the canonical WGSL definition of the MaterialUniform struct.
// Matches GPUMaterial layout exactly (48 bytes).
//
//go:embed assets/material.wgsl
var GPUMaterialSource string

// GPUMaterial is the GPU-aligned representation of a material.
type GPUMaterial struct {
	Color             [4]float32 // offset  0: rgb + opacity
	Emissive          [3]float32 // offset 16
	EmissiveIntensity float32    // offset 28
	Roughness         float32    // offset 32
	Metalness         float32    // offset 36
	Flags             uint32     // offset 40
	_pad              uint32     // offset 44
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (48)
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, 48)
	g.MarshalInto(buf)
	return buf
}

// MarshalInto writes the struct into the first 48 bytes of buf.
//
// Parameters:
//   - buf: destination, at least 48 bytes
func (g *GPUMaterial) MarshalInto(buf []byte) {
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Emissive[i]))
	}
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(g.EmissiveIntensity))
	binary.LittleEndian.PutUint32(buf[32:], math.Float32bits(g.Roughness))
	binary.LittleEndian.PutUint32(buf[36:], math.Float32bits(g.Metalness))
	binary.LittleEndian.PutUint32(buf[40:], g.Flags)
	binary.LittleEndian.PutUint32(buf[44:], 0)
}
