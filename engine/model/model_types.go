package model

import "github.com/Carmen-Shannon/oxy-folio/common"

// Primitive selects how a Geometry's indices are assembled.
type Primitive int

const (
	// PrimitiveTriangles groups indices in threes, counter-clockwise front faces.
	PrimitiveTriangles Primitive = iota

	// PrimitiveLines groups indices in pairs.
	PrimitiveLines
)

// Geometry is CPU-side mesh data produced by the generators in this package.
type Geometry struct {
	// Name identifies the generator and its parameters, for labels and logs.
	Name string

	Vertices  []GPUVertex
	Indices   []uint32
	Primitive Primitive
}

// VertexData returns the vertices packed for upload.
//
// Returns:
//   - []byte: the vertex bytes
func (g Geometry) VertexData() []byte {
	return common.SliceToBytes(g.Vertices)
}

// IndexData returns the indices packed for upload as uint32 values.
//
// Returns:
//   - []byte: the index bytes
func (g Geometry) IndexData() []byte {
	return common.SliceToBytes(g.Indices)
}

// SetColor fills every vertex color with one linear color. Line helpers are tinted this way.
//
// Parameters:
//   - c: the sRGB color to linearize and apply
func (g Geometry) SetColor(c common.Color) {
	lin := c.Linear()
	for i := range g.Vertices {
		g.Vertices[i].Color = [4]float32{lin[0], lin[1], lin[2], 1}
	}
}
