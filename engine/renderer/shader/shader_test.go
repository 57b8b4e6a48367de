package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltinStandard(t *testing.T) {
	vs, fs, err := LoadBuiltin(KeyStandard)
	require.NoError(t, err)

	assert.Equal(t, "standard_vs", vs.Key())
	assert.Equal(t, "standard_fs", fs.Key())
	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, "fs_main", fs.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, vs.ShaderType())
	assert.NotContains(t, vs.Source(), includeDirective)

	sizes := map[int]uint64{0: 80, 1: 272, 2: 128, 3: 48}
	for group, size := range sizes {
		desc := vs.BindGroupLayoutDescriptor(group)
		require.NotEmpty(t, desc.Entries, "group %d", group)
		assert.Equal(t, wgpu.BufferBindingTypeUniform, desc.Entries[0].Buffer.Type)
		assert.Equal(t, size, desc.Entries[0].Buffer.MinBindingSize, "group %d", group)
		assert.Equal(t, wgpu.ShaderStageVertex, desc.Entries[0].Visibility)
	}

	material := fs.BindGroupLayoutDescriptor(3)
	require.Len(t, material.Entries, 5)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, material.Entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, material.Entries[1].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, material.Entries[2].Sampler.Type)
	assert.Equal(t, wgpu.ShaderStageFragment, material.Entries[4].Visibility)
}

func TestStandardVertexLayout(t *testing.T) {
	vs, _, err := LoadBuiltin(KeyStandard)
	require.NoError(t, err)

	layouts := vs.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(48), layouts[0].ArrayStride)
	require.Len(t, layouts[0].Attributes, 4)

	offsets := []uint64{0, 12, 24, 32}
	formats := []wgpu.VertexFormat{
		wgpu.VertexFormatFloat32x3,
		wgpu.VertexFormatFloat32x3,
		wgpu.VertexFormatFloat32x2,
		wgpu.VertexFormatFloat32x4,
	}
	for i, attr := range layouts[0].Attributes {
		assert.Equal(t, uint32(i), attr.ShaderLocation)
		assert.Equal(t, offsets[i], attr.Offset)
		assert.Equal(t, formats[i], attr.Format)
	}
}

func TestMaterialGroupPerProgram(t *testing.T) {
	tests := []struct {
		key     string
		entries int
	}{
		{KeyStandard, 5},
		{KeyBasic, 3},
		{KeyLine, 1},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, fs, err := LoadBuiltin(tt.key)
			require.NoError(t, err)
			assert.Len(t, fs.BindGroupLayoutDescriptor(3).Entries, tt.entries)
			assert.Len(t, fs.BindGroupLayoutDescriptors(), 4)
		})
	}
}

func TestBackgroundProgram(t *testing.T) {
	vs, fs, err := LoadBuiltin(KeyBackground)
	require.NoError(t, err)

	assert.Empty(t, vs.VertexLayouts())
	assert.Empty(t, fs.VertexLayouts())

	desc := fs.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 2)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[1].Sampler.Type)

	binding, ok := fs.BindGroupFromVarName(0, "background_sampler")
	assert.True(t, ok)
	assert.Equal(t, 1, binding)
	assert.Equal(t, "background_map", fs.BindGroupVarName(0, 0))

	_, ok = fs.BindGroupFromVarName(0, "missing")
	assert.False(t, ok)
}

func TestLoadBuiltinUnknown(t *testing.T) {
	_, _, err := LoadBuiltin("toon")
	assert.Error(t, err)
}

func TestNewShaderWithoutEntryPoint(t *testing.T) {
	_, err := NewShader("empty", ShaderTypeFragment, "struct A { x: f32, }")
	assert.ErrorIs(t, err, ErrNoEntryPoint)
}

func TestModuleDescriptor(t *testing.T) {
	src := "@fragment\nfn main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }"
	s, err := NewShader("solid", ShaderTypeFragment, src)
	require.NoError(t, err)

	require.NotNil(t, s.Module())
	assert.Equal(t, "solid", s.Module().Label)
	assert.Equal(t, src, s.Module().WGSLDescriptor.Code)
	assert.Empty(t, s.BindGroupLayoutDescriptors())
}
