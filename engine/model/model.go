package model

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	primitive      Primitive
	meshProvider   bind_group_provider.BindGroupProvider
	boundingRadius float32
	vertexData     []byte
	indexData      []byte
	indexCount     int
	vertexCount    int
}

// Model is a GPU-ready mesh: packed vertex and index bytes plus the provider that will
// own the GPU buffers once the renderer initializes it. A Model may be shared by many
// game objects; its buffers are uploaded once.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Primitive reports whether the indices describe triangles or lines.
	//
	// Returns:
	//   - Primitive: the primitive kind
	Primitive() Primitive

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	IndexCount() int
	VertexCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin. Used by frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel packs a Geometry into a Model.
//
// Parameters:
//   - geometry: the mesh data
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the new model
func NewModel(geometry Geometry, options ...ModelBuilderOption) Model {
	m := &model{
		name:           geometry.Name,
		primitive:      geometry.Primitive,
		boundingRadius: ComputeBoundingRadius(geometry.Vertices),
		vertexData:     geometry.VertexData(),
		indexData:      geometry.IndexData(),
		indexCount:     len(geometry.Indices),
		vertexCount:    len(geometry.Vertices),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name+"_mesh",
			bind_group_provider.WithIndexCount(m.indexCount),
			bind_group_provider.WithVertexCount(m.vertexCount),
		)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Primitive() Primitive {
	return m.primitive
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
