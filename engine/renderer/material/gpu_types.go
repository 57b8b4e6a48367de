package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniformSource is the WGSL definition of the MaterialUniform struct.
// Matches GPUMaterialUniform layout exactly (48 bytes).
//
//go:embed assets/material_uniform.wgsl
var GPUMaterialUniformSource string

// GPUMaterialUniform is the GPU-aligned material uniform bound at group 3, binding 0.
// Size: 48 bytes (the WGSL struct rounds up to its 16-byte alignment).
type GPUMaterialUniform struct {
	Color        [4]float32 // offset  0: linear RGBA base color
	Roughness    float32    // offset 16
	Metalness    float32    // offset 20
	UseMap       uint32     // offset 24: 1 when a color map is bound
	UseNormalMap uint32     // offset 28: 1 when a normal map is bound
	NormalScale  [2]float32 // offset 32
	_pad         [2]float32 // offset 40: padding to 48 bytes
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (48)
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Roughness))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Metalness))
	binary.LittleEndian.PutUint32(buf[24:28], g.UseMap)
	binary.LittleEndian.PutUint32(buf[28:32], g.UseNormalMap)
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.NormalScale[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.NormalScale[1]))
	return buf
}
