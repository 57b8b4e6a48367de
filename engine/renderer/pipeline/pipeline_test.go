package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("custom")

	assert.Equal(t, "custom", p.PipelineKey())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.NotNil(t, p.BlendState())
	assert.Nil(t, p.RenderPipeline())
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))
	assert.Empty(t, p.BindGroupLayoutDescriptors())
}

func TestBuiltinPipelines(t *testing.T) {
	line, err := NewBuiltinPipeline(shader.KeyLine)
	require.NoError(t, err)
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, line.Topology())
	assert.NotNil(t, line.Shader(shader.ShaderTypeVertex))
	assert.NotNil(t, line.Shader(shader.ShaderTypeFragment))

	bg, err := NewBuiltinPipeline(shader.KeyBackground)
	require.NoError(t, err)
	assert.Equal(t, wgpu.CompareFunctionAlways, bg.DepthCompare())
	assert.False(t, bg.DepthWriteEnabled())

	std, err := NewBuiltinPipeline(shader.KeyStandard, WithCullMode(wgpu.CullModeBack))
	require.NoError(t, err)
	assert.Equal(t, wgpu.CullModeBack, std.CullMode())
	assert.Equal(t, shader.KeyStandard, std.PipelineKey())

	_, err = NewBuiltinPipeline("toon")
	assert.Error(t, err)

	assert.Equal(t, shader.KeyBackground, BuiltinKeys()[0])
	assert.Len(t, BuiltinKeys(), len(builtinDefaults))
}

func TestMergedLayoutsShareVisibility(t *testing.T) {
	p, err := NewBuiltinPipeline(shader.KeyStandard)
	require.NoError(t, err)

	merged := p.BindGroupLayoutDescriptors()
	require.Len(t, merged, 4)
	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	for g, desc := range merged {
		for _, e := range desc.Entries {
			assert.Equal(t, both, e.Visibility, "group %d binding %d", g, e.Binding)
		}
	}
	assert.Len(t, merged[3].Entries, 5)
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
		1: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageVertex}}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 2, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
		2: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 1, Visibility: wgpu.ShaderStageFragment}}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	require.Len(t, merged, 3)

	g0 := merged[0].Entries
	require.Len(t, g0, 2)
	assert.Equal(t, uint32(0), g0[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, g0[0].Visibility)
	assert.Equal(t, uint32(2), g0[1].Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, g0[1].Visibility)

	assert.Equal(t, wgpu.ShaderStageVertex, merged[1].Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, merged[2].Entries[0].Visibility)
}
