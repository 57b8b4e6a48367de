package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// builtinDefaults holds the fixed-function state each built-in program needs.
var builtinDefaults = map[string][]PipelineBuilderOption{
	shader.KeyStandard: nil,
	shader.KeyBasic:    nil,
	shader.KeyLine: {
		WithTopology(wgpu.PrimitiveTopologyLineList),
	},
	shader.KeyBackground: {
		WithDepthCompare(wgpu.CompareFunctionAlways),
		WithDepthWriteEnabled(false),
	},
}

// NewBuiltinPipeline loads one of the embedded shader programs and configures the pipeline
// state it is drawn with. The pipeline key equals the program key.
//
// Parameters:
//   - key: shader.KeyStandard, shader.KeyBasic, shader.KeyLine or shader.KeyBackground
//   - opts: options applied after the program's defaults
//
// Returns:
//   - Pipeline: the configured pipeline, not yet registered
//   - error: an error if the key is unknown or the program fails to parse
func NewBuiltinPipeline(key string, opts ...PipelineBuilderOption) (Pipeline, error) {
	defaults, ok := builtinDefaults[key]
	if !ok {
		return nil, fmt.Errorf("unknown built-in pipeline %q", key)
	}
	vs, fs, err := shader.LoadBuiltin(key)
	if err != nil {
		return nil, err
	}

	all := make([]PipelineBuilderOption, 0, len(defaults)+len(opts)+2)
	all = append(all, WithVertexShader(vs), WithFragmentShader(fs))
	all = append(all, defaults...)
	all = append(all, opts...)
	return NewPipeline(key, all...), nil
}

// BuiltinKeys lists the keys accepted by NewBuiltinPipeline in draw order: the background
// first, then lit meshes, unlit meshes and helper lines.
//
// Returns:
//   - []string: the built-in pipeline keys
func BuiltinKeys() []string {
	return []string{shader.KeyBackground, shader.KeyStandard, shader.KeyBasic, shader.KeyLine}
}
