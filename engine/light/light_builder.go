package light

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/chewxy/math32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = normalize3(x, y, z)
	}
}

// WithColor is an option builder that sets the light color from a 0xRRGGBB value.
//
// Parameters:
//   - hex: the sRGB color as 0xRRGGBB
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.HexColor(hex)
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithDistance sets the distance at which a point light fades to zero. Zero disables falloff.
//
// Parameters:
//   - distance: the cutoff distance
//
// Returns:
//   - LightBuilderOption: a function that applies the distance option to a lightImpl
func WithDistance(distance float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.distance = max(distance, 0)
	}
}

// WithDecay sets the falloff exponent used with a non-zero distance.
//
// Parameters:
//   - decay: the decay exponent (2 is physically based)
//
// Returns:
//   - LightBuilderOption: a function that applies the decay option to a lightImpl
func WithDecay(decay float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.decay = decay
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// normalize3 normalizes a 3-component vector. Returns a zero vector if the input
// has zero length.
func normalize3(x, y, z float32) [3]float32 {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return [3]float32{}
	}
	inv := 1 / length
	return [3]float32{x * inv, y * inv, z * inv}
}
