package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)

	assert.Equal(t, LightTypePoint, l.Type())
	assert.Equal(t, common.White, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, float32(0), l.Distance())
	assert.Equal(t, float32(2), l.Decay())
	assert.True(t, l.Enabled())
	assert.Equal(t, "point", l.Type().String())
}

func TestLightOptions(t *testing.T) {
	l := NewLight(LightTypeDirectional,
		WithPosition(5, 5, 5),
		WithDirection(0, 0, -10),
		WithColor(0xff0000),
		WithIntensity(2),
		WithDistance(-3),
		WithDecay(1),
		WithEnabled(false),
	)

	assert.Equal(t, [3]float32{5, 5, 5}, l.Position())
	assert.Equal(t, [3]float32{0, 0, -1}, l.Direction())
	assert.Equal(t, common.Color{1, 0, 0}, l.Color())
	assert.Equal(t, float32(2), l.Intensity())
	assert.Equal(t, float32(0), l.Distance())
	assert.Equal(t, float32(1), l.Decay())
	assert.False(t, l.Enabled())

	l.SetDirection(0, 0, 0)
	assert.Equal(t, [3]float32{}, l.Direction())
}

func TestBuildLightUniform(t *testing.T) {
	lights := []Light{
		NewLight(LightTypePoint, WithPosition(5, 5, 5)),
		NewLight(LightTypeAmbient, WithIntensity(0.5)),
		NewLight(LightTypeAmbient, WithColor(0x000000)),
		NewLight(LightTypePoint, WithEnabled(false)),
	}

	u := BuildLightUniform(lights)
	assert.Equal(t, uint32(1), u.Header.LightCount)
	assert.InDelta(t, 0.5, u.Header.AmbientColor[0], 1e-6)
	assert.Equal(t, [3]float32{5, 5, 5}, u.Lights[0].Position)
	assert.Equal(t, uint32(LightTypePoint), u.Lights[0].LightType)
}

func TestBuildLightUniformCapsLights(t *testing.T) {
	var lights []Light
	for i := range MaxGPULights + 2 {
		lights = append(lights, NewLight(LightTypePoint, WithPosition(float32(i), 0, 0)))
	}

	u := BuildLightUniform(lights)
	assert.Equal(t, uint32(MaxGPULights), u.Header.LightCount)
	assert.Equal(t, float32(MaxGPULights-1), u.Lights[MaxGPULights-1].Position[0])
}

func TestGPULightUniformMarshal(t *testing.T) {
	assert.Equal(t, 64, (&GPULight{}).Size())
	assert.Equal(t, 16, (&GPULightHeader{}).Size())

	u := BuildLightUniform([]Light{
		NewLight(LightTypeAmbient),
		NewLight(LightTypePoint, WithPosition(1, 2, 3), WithDistance(10)),
	})
	require.Equal(t, 16+64*MaxGPULights, u.Size())

	buf := u.Marshal()
	assert.Equal(t, common.StructToBytes(&u), buf)
}
