package light

import "github.com/Carmen-Shannon/oxy-folio/common"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment equally regardless of position or normal.
	// Ambient lights are summed into the light header rather than the light array.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Affects all fragments uniformly with no distance attenuation.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// With a zero distance it never fades; otherwise it reaches zero at that distance.
	LightTypePoint
)

// String returns the lowercase name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  [3]float32
	direction [3]float32
	color     common.Color
	intensity float32
	distance  float32
	decay     float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are marshaled into the scene's light uniform every frame via BuildLightUniform.
// Type-specific properties return their stored values for every type but only affect
// shading where they apply.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient and directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction the light travels in.
	// Only used by directional lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the light color in sRGB space, as authored.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Distance returns the cutoff distance of a point light. Zero means unlimited.
	//
	// Returns:
	//   - float32: the cutoff distance
	Distance() float32

	// Decay returns the exponent of the distance falloff used when Distance is non-zero.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	SetColor(c common.Color)
	SetIntensity(intensity float32)
	SetDistance(distance float32)
	SetDecay(decay float32)
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type: white, intensity 1, unlimited distance,
// decay 2, shining straight down.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		direction: [3]float32{0, -1, 0},
		color:     common.White,
		intensity: 1,
		decay:     2,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Distance() float32 {
	return l.distance
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = normalize3(x, y, z)
}

func (l *lightImpl) SetColor(c common.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetDistance(distance float32) {
	l.distance = max(distance, 0)
}

func (l *lightImpl) SetDecay(decay float32) {
	l.decay = decay
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
