package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessExpandsOnce(t *testing.T) {
	out, err := NewPreProcessor().Process("//@oxy:include camera\n  //@oxy:include camera\nfn f() {}")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "struct CameraUniform"))
	assert.True(t, strings.HasSuffix(out, "fn f() {}"))
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"unknown", "fn a() {}\n//@oxy:include shadow", "line 2: unknown include"},
		{"missing key", "//@oxy:include", "line 1: include takes exactly one key"},
		{"two keys", "//@oxy:include camera light", "line 1: include takes exactly one key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPreProcessor().Process(tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestKeys(t *testing.T) {
	assert.ElementsMatch(t, []string{"camera", "light", "object", "material", "vertex"}, NewPreProcessor().Keys())
}

func TestStructLayouts(t *testing.T) {
	out, err := NewPreProcessor().Process("//@oxy:include light\n//@oxy:include material")
	require.NoError(t, err)

	sizes := computeStructSizes(parseStructBlocks(stripComments(out)))
	assert.Equal(t, wgslTypeLayout{64, 16}, sizes["Light"])
	assert.Equal(t, wgslTypeLayout{272, 16}, sizes["LightUniform"])
	assert.Equal(t, wgslTypeLayout{48, 16}, sizes["MaterialUniform"])
}

func TestStripComments(t *testing.T) {
	src := "a // line\nb /* block /* nested */ still */ c"
	assert.Equal(t, "a \nb  c", stripComments(src))
}

func TestResolveRuntimeArray(t *testing.T) {
	layout, ok := resolveTypeLayout("array<vec3<f32>>", nil)
	require.True(t, ok)
	assert.Equal(t, wgslTypeLayout{16, 16}, layout)

	_, ok = resolveTypeLayout("array<Missing, 2>", nil)
	assert.False(t, ok)
}
