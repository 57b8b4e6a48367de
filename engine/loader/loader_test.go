package loader

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	require.NoError(t, os.Rename(tmp, path))
}

func waitDone(t *testing.T, tex Texture) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return tex.Wait(ctx)
}

func TestLoadDecodesInBackground(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "moon.png"), 4, 2, color.RGBA{200, 100, 50, 255})

	l := NewLoader(WithBaseDir(dir), WithWorkers(1))
	defer l.Close()

	tex := l.Load("moon.png")
	assert.Equal(t, "moon.png", tex.Name())
	assert.Equal(t, filepath.Join(dir, "moon.png"), tex.Path())

	require.NoError(t, waitDone(t, tex))
	assert.True(t, tex.Ready())
	assert.Equal(t, uint64(1), tex.Version())

	staging := tex.Staging()
	assert.Equal(t, uint32(4), staging.Width)
	assert.Equal(t, uint32(2), staging.Height)
	require.Len(t, staging.Pixels, 4*2*4)
	assert.Equal(t, []byte{200, 100, 50, 255}, staging.Pixels[:4])
}

func TestLoadIsCached(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "jeff.png"), 1, 1, color.RGBA{A: 255})

	l := NewLoader(WithBaseDir(dir))
	defer l.Close()

	a := l.Load("jeff.png")
	b := l.Load(filepath.Join(dir, "jeff.png"))
	assert.Same(t, a, b)
	assert.Same(t, a, l.Get("jeff.png"))
	assert.Nil(t, l.Get("space.jpg"))
	assert.Len(t, l.Textures(), 1)
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.jpg"), []byte("not an image"), 0o644))

	l := NewLoader(WithBaseDir(dir))
	defer l.Close()

	bad := l.Load("notes.jpg")
	assert.ErrorIs(t, waitDone(t, bad), ErrNotImage)
	assert.False(t, bad.Ready())

	missing := l.Load("missing.png")
	err := waitDone(t, missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, uint64(0), missing.Version())
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "normal.png")
	writePNG(t, path, 1, 1, color.RGBA{128, 128, 255, 255})

	l := NewLoader(WithBaseDir(dir))
	defer l.Close()

	tex := l.Load("normal.png")
	require.NoError(t, waitDone(t, tex))

	writePNG(t, path, 2, 2, color.RGBA{128, 128, 255, 255})
	assert.True(t, l.Reload("normal.png"))
	assert.False(t, l.Reload("other.png"))

	require.Eventually(t, func() bool { return tex.Version() == 2 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, uint32(2), tex.Staging().Width)
}

func TestFailedReloadKeepsPixels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "space.png")
	writePNG(t, path, 3, 3, color.RGBA{A: 255})

	l := NewLoader(WithBaseDir(dir))
	defer l.Close()

	tex := l.Load("space.png")
	require.NoError(t, waitDone(t, tex))

	require.NoError(t, os.WriteFile(path, []byte("truncated"), 0o644))
	l.Reload("space.png")

	require.Eventually(t, func() bool { return tex.Err() != nil }, 5*time.Second, 10*time.Millisecond)
	assert.True(t, tex.Ready())
	assert.Equal(t, uint64(1), tex.Version())
	assert.Equal(t, uint32(3), tex.Staging().Width)
}

func TestWatchReloadsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moon.png")
	writePNG(t, path, 1, 1, color.RGBA{A: 255})

	l := NewLoader(WithBaseDir(dir))
	defer l.Close()

	tex := l.Load("moon.png")
	require.NoError(t, waitDone(t, tex))
	require.NoError(t, l.Watch())
	require.NoError(t, l.Watch())

	writePNG(t, path, 8, 8, color.RGBA{255, 255, 255, 255})

	require.Eventually(t, func() bool {
		return tex.Version() >= 2 && tex.Staging().Width == 8
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchAfterClose(t *testing.T) {
	l := NewLoader()
	require.NoError(t, l.Close())
	assert.ErrorIs(t, l.Watch(), ErrClosed)
	assert.NoError(t, l.Close())
}

func TestWaitHonorsContext(t *testing.T) {
	tex := newTexture("pending.png", "pending.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tex.Wait(ctx), context.Canceled)
}
