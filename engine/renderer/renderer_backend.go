package renderer

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// Valid reports whether the count is one of the supported sample counts.
//
// Returns:
//   - bool: true for 1, 4, 8 or 16
func (m MSAASampleCount) Valid() bool {
	switch m {
	case MSAAOff, MSAA4x, MSAA8x, MSAA16x:
		return true
	default:
		return false
	}
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// preferredSurfaceFormat picks the first sRGB format the surface supports so shader output in
// linear space is encoded on write. Falls back to the surface's first format.
//
// Parameters:
//   - formats: the formats reported by the surface capabilities, in preference order
//
// Returns:
//   - wgpu.TextureFormat: the chosen format, or TextureFormatUndefined when formats is empty
func preferredSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			return f
		}
	}
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined
	}
	return formats[0]
}

// textureFormat maps a staging color space to the GPU format its bytes are uploaded as.
func textureFormat(cs common.ColorSpace) wgpu.TextureFormat {
	if cs == common.ColorSpaceLinear {
		return wgpu.TextureFormatRGBA8Unorm
	}
	return wgpu.TextureFormatRGBA8UnormSrgb
}

// drawArgs decides how a mesh provider is drawn.
//
// Parameters:
//   - indexCount: indices in the provider's index buffer
//   - vertexCount: vertices to draw when there is no index buffer
//
// Returns:
//   - bool: true for an indexed draw
//   - uint32: the index or vertex count, 0 meaning nothing to draw
func drawArgs(indexCount, vertexCount int) (bool, uint32) {
	if indexCount > 0 {
		return true, uint32(indexCount)
	}
	return false, uint32(max(vertexCount, 0))
}
