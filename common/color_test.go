package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexColor(t *testing.T) {
	c := HexColor(0xff6347)
	assert.InDelta(t, 1, c[0], eps)
	assert.InDelta(t, float32(0x63)/255, c[1], eps)
	assert.InDelta(t, float32(0x47)/255, c[2], eps)
	assert.Equal(t, uint32(0xff6347), c.Hex())
	assert.Equal(t, White, HexColor(0xffffff))
}

func TestColorLinear(t *testing.T) {
	assert.Equal(t, Color{0, 0, 0}, Color{}.Linear())
	white := White.Linear()
	for _, ch := range white {
		assert.InDelta(t, 1, ch, eps)
	}
	mid := Color{0.5, 0.5, 0.5}.Linear()
	assert.InDelta(t, 0.2140, mid[0], 1e-3)
}

func TestColorScaleAndClampedHex(t *testing.T) {
	assert.Equal(t, Color{0.5, 1, 1.5}, Color{1, 2, 3}.Scale(0.5))
	assert.Equal(t, uint32(0xffffff), Color{2, 2, 2}.Hex())
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(30, 0, 10))
	assert.Equal(t, float32(2.5), Clamp(float32(2.5), 0, 10))

	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
