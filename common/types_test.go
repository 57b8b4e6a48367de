package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTextureSourceDecodeFromData(t *testing.T) {
	staging, err := TextureSource{Name: "tile", Data: encodePNG(t, 4, 2)}.Decode()
	require.NoError(t, err)

	assert.Equal(t, uint32(4), staging.Width)
	assert.Equal(t, uint32(2), staging.Height)
	require.Len(t, staging.Pixels, 4*2*4)

	// pixel (3, 1): row 1, column 3
	off := (1*4 + 3) * 4
	assert.Equal(t, []byte{3, 1, 200, 255}, staging.Pixels[off:off+4])
}

func TestTextureSourceDecodeFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moon.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 3, 3), 0o600))

	staging, err := TextureSource{Path: path}.Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), staging.Width)
}

func TestTextureSourceDownscales(t *testing.T) {
	staging, err := TextureSource{Data: encodePNG(t, 64, 16), MaxSize: 32}.Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(32), staging.Width)
	assert.Equal(t, uint32(8), staging.Height)
	assert.Len(t, staging.Pixels, 32*8*4)
}

func TestTextureSourceErrors(t *testing.T) {
	_, err := TextureSource{}.Decode()
	assert.ErrorIs(t, err, ErrEmptyTextureSource)

	_, err = TextureSource{Path: filepath.Join(t.TempDir(), "missing.jpg")}.Decode()
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = TextureSource{Name: "junk", Data: []byte("not an image")}.Decode()
	assert.ErrorContains(t, err, "junk")
}

func TestSolidTexture(t *testing.T) {
	s := SolidTexture(255, 255, 255, 255)
	assert.Equal(t, uint32(1), s.Width)
	assert.Equal(t, uint32(1), s.Height)
	assert.Equal(t, []byte{255, 255, 255, 255}, s.Pixels)
}
