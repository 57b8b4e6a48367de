package model

import "github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that overrides the name taken from the Geometry.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshProvider is an option builder that supplies the provider for the model's GPU buffers.
// By default NewModel creates one labeled after the model.
//
// Parameters:
//   - provider: the mesh provider
//
// Returns:
//   - ModelBuilderOption: a function that applies the provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
