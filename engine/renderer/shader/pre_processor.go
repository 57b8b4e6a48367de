// pre_processor.go expands //@oxy:include lines in WGSL sources. Each include key names a
// struct whose canonical WGSL lives next to the Go type it mirrors, so the byte layout the CPU
// marshals and the layout the shader reads come from one place.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
)

// includeDirective marks an include line. The rest of the line is the include key.
const includeDirective = "//@oxy:include"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes maps include keys to the WGSL struct source injected in their place.
	includes map[string]string
}

// PreProcessor expands include directives in raw WGSL source.
type PreProcessor interface {
	// Process replaces every //@oxy:include <key> line with the registered struct source.
	// Each key is expanded at most once; repeated includes of the same key are dropped so
	// the struct is never declared twice.
	//
	// Parameters:
	//   - source: the raw WGSL source code
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error naming the line of a malformed or unknown include
	Process(source string) (string, error)

	// Keys returns the registered include keys.
	//
	// Returns:
	//   - []string: the include keys in no particular order
	Keys() []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's GPU struct sources registered:
// camera, light, object, material and vertex.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		includes: map[string]string{
			"camera":   camera.GPUCameraUniformSource,
			"light":    light.GPULightSource,
			"object":   game_object.GPUObjectUniformSource,
			"material": material.GPUMaterialUniformSource,
			"vertex":   model.GPUVertexSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]bool)

	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), includeDirective)
		if !ok {
			out = append(out, line)
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) != 1 {
			return "", fmt.Errorf("line %d: include takes exactly one key, got %q", i+1, strings.TrimSpace(rest))
		}
		key := fields[0]
		src, ok := p.includes[key]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, key)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimRight(src, "\n"))
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Keys() []string {
	keys := make([]string, 0, len(p.includes))
	for k := range p.includes {
		keys = append(keys, k)
	}
	return keys
}
