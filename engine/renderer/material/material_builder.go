package material

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a functional option for configuring a Material.
type MaterialBuilderOption func(*material)

// WithName sets the material's name. The default is the material type's name.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor sets the base color from a 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed sRGB color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.color = common.HexColor(hex)
	}
}

// WithRoughness sets the roughness, clamped to [0, 1].
//
// Parameters:
//   - roughness: the roughness factor
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Clamp(roughness, 0, 1)
	}
}

// WithMetalness sets the metalness, clamped to [0, 1].
//
// Parameters:
//   - metalness: the metallic factor
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = common.Clamp(metalness, 0, 1)
	}
}

// WithMap assigns the color map.
//
// Parameters:
//   - tex: the color texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color map option to a material
func WithMap(tex Texture) MaterialBuilderOption {
	return func(m *material) {
		m.textures[SlotMap] = tex
	}
}

// WithNormalMap assigns the tangent space normal map. Only standard materials sample it.
//
// Parameters:
//   - tex: the normal map texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal map option to a material
func WithNormalMap(tex Texture) MaterialBuilderOption {
	return func(m *material) {
		m.textures[SlotNormalMap] = tex
	}
}

// WithNormalScale sets how strongly the normal map bends the surface normal along each tangent axis.
//
// Parameters:
//   - x: scale of the tangent component
//   - y: scale of the bitangent component
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal scale option to a material
func WithNormalScale(x, y float32) MaterialBuilderOption {
	return func(m *material) {
		m.normalScale = [2]float32{x, y}
	}
}

// WithPipelineKey overrides the pipeline the material draws with.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider sets the provider for the material's GPU resources.
//
// Parameters:
//   - provider: the bind group provider
//
// Returns:
//   - MaterialBuilderOption: a function that applies the provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
