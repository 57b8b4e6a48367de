package common

import "github.com/chewxy/math32"

// Color is an RGB color with float components in [0, 1], in sRGB space unless stated otherwise.
type Color [3]float32

// White is the default color for lights and untextured materials.
var White = Color{1, 1, 1}

// HexColor converts a 0xRRGGBB integer to a Color.
//
// Parameters:
//   - hex: the packed 24-bit color
//
// Returns:
//   - Color: the unpacked sRGB color
func HexColor(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// Hex packs the color back into a 0xRRGGBB integer, rounding each channel.
func (c Color) Hex() uint32 {
	ch := func(v float32) uint32 {
		return uint32(math32.Floor(Clamp(v, 0, 1)*255 + 0.5))
	}
	return ch(c[0])<<16 | ch(c[1])<<8 | ch(c[2])
}

// Linear converts an sRGB color to linear space for shading. Shaders light in linear space
// and the sRGB surface format encodes the result on write.
//
// Returns:
//   - Color: the color in linear space
func (c Color) Linear() Color {
	return Color{srgbToLinear(c[0]), srgbToLinear(c[1]), srgbToLinear(c[2])}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}
