package shader

import (
	"embed"
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader is parsed for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage of a render pipeline.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage of a render pipeline.
	ShaderTypeFragment
)

// Keys of the built-in WGSL programs. Each file holds both a @vertex and a @fragment entry point.
const (
	KeyStandard   = "standard"
	KeyBasic      = "basic"
	KeyLine       = "line"
	KeyBackground = "background"
)

// ErrNoEntryPoint is returned when the source has no entry point for the requested stage.
var ErrNoEntryPoint = errors.New("shader source has no entry point for the requested stage")

//go:embed assets/*.wgsl
var builtinSources embed.FS

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and resource binding.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a pre-processed, reflected WGSL program for one pipeline stage. It exposes the
// entry point, the bind group layouts declared by the source and, for vertex shaders, the
// vertex buffer layouts derived from the vertex input structs.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source with every include expanded
	Source() string

	// ShaderType returns the stage this shader was parsed for.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader's stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// BindGroupLayoutDescriptor retrieves the layout descriptor of one bind group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors.
	// Entries carry this shader's stage as visibility; the renderer merges the vertex and
	// fragment descriptors of a pipeline.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not declared
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName retrieves the binding index of a variable within a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable name was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// VertexLayouts retrieves the vertex buffer layouts, one per vertex input struct in source
	// order. The slice index is the vertex buffer slot. Empty for fragment shaders and for
	// vertex shaders that generate their vertices (fullscreen passes).
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the shader module descriptor built from the pre-processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes and reflects a WGSL source for one stage.
//
// Parameters:
//   - key: a unique identifier for the shader, used for labels and lookups
//   - shaderType: the stage to reflect (vertex or fragment)
//   - source: the raw WGSL source, which may contain //@oxy:include lines
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if pre-processing fails or the stage has no entry point
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	processed, err := NewPreProcessor().Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:        key,
		source:     processed,
		shaderType: shaderType,
		entryPoint: parseEntryPoint(processed, shaderType),
	}
	if s.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: %w", key, ErrNoEntryPoint)
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(s.source)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(s.source, visibility)
	return s, nil
}

// NewShaderPair parses one WGSL source holding both stages into a vertex and a fragment shader.
//
// Parameters:
//   - key: the program key; the stages are keyed "<key>_vs" and "<key>_fs"
//   - source: the raw WGSL source
//
// Returns:
//   - Shader: the vertex shader
//   - Shader: the fragment shader
//   - error: an error if either stage fails to parse
func NewShaderPair(key, source string) (Shader, Shader, error) {
	vs, err := NewShader(key+"_vs", ShaderTypeVertex, source)
	if err != nil {
		return nil, nil, err
	}
	fs, err := NewShader(key+"_fs", ShaderTypeFragment, source)
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}

// LoadBuiltin parses one of the embedded programs (KeyStandard, KeyBasic, KeyLine, KeyBackground).
//
// Parameters:
//   - key: the program key
//
// Returns:
//   - Shader: the vertex shader
//   - Shader: the fragment shader
//   - error: an error if the program does not exist or fails to parse
func LoadBuiltin(key string) (Shader, Shader, error) {
	data, err := builtinSources.ReadFile("assets/" + key + ".wgsl")
	if err != nil {
		return nil, nil, fmt.Errorf("unknown built-in shader %q: %w", key, err)
	}
	return NewShaderPair(key, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
