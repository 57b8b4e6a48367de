package game_object

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUObjectUniformSource is the WGSL definition of the ObjectUniform struct.
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

// GPUObjectUniform is the per-object uniform bound at group 2.
// Size: 128 bytes.
type GPUObjectUniform struct {
	Model        [16]float32 // offset  0: local-to-world matrix
	NormalMatrix [16]float32 // offset 64: inverse transpose of the model matrix's upper 3x3
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer for upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.Model {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.NormalMatrix {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
