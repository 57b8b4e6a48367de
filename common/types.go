// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxTextureSize is the largest texture edge accepted without downscaling.
// It matches the WebGPU default limit for maxTextureDimension2D.
const DefaultMaxTextureSize = 8192

// ErrEmptyTextureSource is returned when a TextureSource has neither bytes nor a path.
var ErrEmptyTextureSource = errors.New("texture source has neither data nor path")

// ColorSpace selects how the GPU interprets a texture's stored bytes.
type ColorSpace int

const (
	// ColorSpaceSRGB decodes texels from sRGB to linear on sampling. Used for color maps and backgrounds.
	ColorSpaceSRGB ColorSpace = iota

	// ColorSpaceLinear samples texels as stored. Used for data textures such as normal maps.
	ColorSpaceLinear
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// ColorSpace selects the GPU texture format; the zero value is sRGB.
	ColorSpace ColorSpace
}

// SolidTexture returns a 1x1 staging texture of the given color. Used as a placeholder while
// the real image is still decoding.
//
// Parameters:
//   - r, g, b, a: the 8-bit channel values
//
// Returns:
//   - TextureStagingData: the single pixel texture
func SolidTexture(r, g, b, a uint8) TextureStagingData {
	return TextureStagingData{Pixels: []byte{r, g, b, a}, Width: 1, Height: 1}
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero values fall back to linear filtering with repeat addressing.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// TextureSource describes an image to decode into RGBA pixels. Either Data or Path must be set;
// Data wins when both are.
type TextureSource struct {
	// Name is an identifier for this texture (e.g., "moon", "normal").
	Name string

	// Path is the file path of the image on disk.
	Path string

	// Data contains raw encoded image bytes (PNG, JPEG, GIF, WebP or BMP).
	Data []byte

	// MaxSize caps the longest edge in pixels; larger images are downscaled preserving aspect.
	// Zero means DefaultMaxTextureSize.
	MaxSize int
}

// Decode decodes the texture source to RGBA pixel data.
// Supports PNG, JPEG, GIF, WebP and BMP.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - TextureStagingData: raw RGBA pixel data (4 bytes per pixel, row-major, top row first)
//   - error: error if reading or decoding fails
func (t TextureSource) Decode() (TextureStagingData, error) {
	var r io.Reader
	switch {
	case len(t.Data) > 0:
		r = bytes.NewReader(t.Data)
	case t.Path != "":
		file, err := os.Open(t.Path)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, err)
		}
		defer file.Close()
		r = file
	default:
		return TextureStagingData{}, ErrEmptyTextureSource
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode texture %s: %w", t.label(), err)
	}

	rgba := toRGBA(img, Coalesce(t.MaxSize, DefaultMaxTextureSize))

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(rgba.Bounds().Dx()),
		Height: uint32(rgba.Bounds().Dy()),
	}, nil
}

func (t TextureSource) label() string {
	return Coalesce(t.Name, t.Path, "<embedded>")
}

// toRGBA converts any image to a tightly packed RGBA image, downscaling it with a
// Catmull-Rom filter when its longest edge exceeds maxSize.
func toRGBA(img image.Image, maxSize int) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()

	if w > maxSize || h > maxSize {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == w*4 {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), img, src.Min, xdraw.Src)
	return dst
}
