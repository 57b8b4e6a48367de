package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightSource is the WGSL definition of the Light and LightUniform structs.
// The lights array length must equal MaxGPULights.
//
//go:embed assets/light.wgsl
var GPULightSource string

// MaxGPULights is the number of directional and point lights the light uniform holds.
// Enabled lights beyond this budget are dropped in scene order.
const MaxGPULights = 4

// GPULight is the GPU-aligned representation of a single directional or point light.
// Matches the WGSL Light struct in the lit shaders.
// Size: 64 bytes (WGSL aligned, the struct rounds up to its 16-byte alignment).
type GPULight struct {
	Position  [3]float32 // offset  0: world-space position (point) or unused (directional)
	LightType uint32     // offset 12: LightType value
	Color     [3]float32 // offset 16: linear RGB color
	Intensity float32    // offset 28: scalar multiplier
	Direction [3]float32 // offset 32: normalized travel direction (directional)
	Distance  float32    // offset 44: cutoff distance, 0 = unlimited
	Decay     float32    // offset 48: falloff exponent
	_pad      [3]uint32  // offset 52: padding to 64 bytes
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec3(buf[0:], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	putVec3(buf[32:], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.Distance))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.Decay))
	return buf
}

// GPULightHeader leads the light uniform with the summed ambient light and the light count.
// Size: 16 bytes.
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: summed ambient RGB, linear, intensity applied
	LightCount   uint32     // offset 12: number of valid entries in the light array
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// GPULightUniform is the complete light uniform bound at group 1.
// Size: 16 + 64 * MaxGPULights bytes.
type GPULightUniform struct {
	Header GPULightHeader
	Lights [MaxGPULights]GPULight
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes
func (u *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized buffer
func (u *GPULightUniform) Marshal() []byte {
	buf := make([]byte, u.Size())
	putVec3(buf[0:], u.Header.AmbientColor)
	binary.LittleEndian.PutUint32(buf[12:16], u.Header.LightCount)

	offset := u.Header.Size()
	for i := range u.Lights {
		copy(buf[offset:], u.Lights[i].Marshal())
		offset += u.Lights[i].Size()
	}
	return buf
}

// ToGPULight converts a Light into its GPU representation with the color linearized.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	return GPULight{
		Position:  l.Position(),
		LightType: uint32(l.Type()),
		Color:     l.Color().Linear(),
		Intensity: l.Intensity(),
		Direction: l.Direction(),
		Distance:  l.Distance(),
		Decay:     l.Decay(),
	}
}

// BuildLightUniform folds the scene's lights into the uniform layout. Enabled ambient lights
// add color * intensity to the header; enabled directional and point lights fill the array
// in order until MaxGPULights is reached. Disabled lights are skipped.
//
// Parameters:
//   - lights: the lights in scene order
//
// Returns:
//   - GPULightUniform: the uniform ready to marshal
func BuildLightUniform(lights []Light) GPULightUniform {
	var u GPULightUniform
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		if l.Type() == LightTypeAmbient {
			c := l.Color().Linear().Scale(l.Intensity())
			for i := range 3 {
				u.Header.AmbientColor[i] += c[i]
			}
			continue
		}
		if u.Header.LightCount >= MaxGPULights {
			continue
		}
		u.Lights[u.Header.LightCount] = ToGPULight(l)
		u.Header.LightCount++
	}
	return u
}

func putVec3(buf []byte, v [3]float32) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}
