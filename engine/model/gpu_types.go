package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the WGSL definition of the VertexInput struct shared by every scene pipeline.
// Matches GPUVertex layout exactly (48 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Every scene pipeline declares the same VertexInput struct, so triangle meshes and line
// helpers share one vertex layout; lit shaders ignore Color, line shaders ignore Normal and TexCoord.
// Size: 48 bytes, no padding required.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate, v up (8 bytes)
	Color    [4]float32 // offset 32: per-vertex linear RGBA color (16 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	fields := [][]float32{g.Position[:], g.Normal[:], g.TexCoord[:], g.Color[:]}
	offset := 0
	for _, field := range fields {
		for _, f := range field {
			binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(f))
			offset += 4
		}
	}
	return buf
}

// ComputeBoundingRadius calculates the bounding sphere radius of a vertex slice as the
// maximum distance of any vertex from the model origin.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
