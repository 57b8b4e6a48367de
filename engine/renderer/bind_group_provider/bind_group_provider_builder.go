package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithIndexCount sets the number of indices drawn for this provider's mesh.
//
// Parameters:
//   - count: the index count
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}

// WithVertexCount sets the number of vertices drawn when the provider has no index buffer.
// Fullscreen passes use this with no vertex buffer at all.
//
// Parameters:
//   - count: the vertex count
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithVertexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexCount = count
	}
}
