package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsMatchTheDesignedScene(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(75), cfg.Camera.Fov)
	assert.Equal(t, [3]float32{0, 0, 30}, cfg.Camera.Position)
	assert.Equal(t, uint32(0xff6347), cfg.Scene.TorusColor)
	assert.Equal(t, [3]float32{-10, 0, 30}, cfg.Scene.MoonPosition)
	assert.Equal(t, 200, cfg.Stars.Count)
	assert.Equal(t, float32(100), cfg.Stars.Spread)
	assert.False(t, cfg.Stars.SharedGeometry)
	assert.False(t, cfg.Stars.BasicMaterial)
	assert.Equal(t, float32(-0.1), cfg.Motion.CameraZ)
	assert.Equal(t, [3]float32{0.05, 0.075, 0.05}, cfg.Motion.MoonRotation)
	assert.Equal(t, [3]float32{0.01, 0.005, 0.01}, cfg.Motion.TorusRotation)
	assert.False(t, cfg.Camera.TrackResize)
}

func TestLoadEmptyAndMissing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "oxy-folio.toml", `
[stars]
count = 50
shared_geometry = true

[scene]
torus_color = 0x00ff00
avatar_position = [0.0, 2.0, 0.0]

[camera]
track_resize = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Stars.Count)
	assert.True(t, cfg.Stars.SharedGeometry)
	assert.Equal(t, uint32(0x00ff00), cfg.Scene.TorusColor)
	assert.Equal(t, [3]float32{0, 2, 0}, cfg.Scene.AvatarPosition)
	assert.True(t, cfg.Camera.TrackResize)
	assert.Equal(t, float32(100), cfg.Stars.Spread, "unset keys keep their defaults")
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "oxy-folio.yaml", `
scroll:
  page_height: 8000
motion:
  camera_z: -0.2
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(8000), cfg.Scroll.PageHeight)
	assert.Equal(t, float32(-0.2), cfg.Motion.CameraZ)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, float32(-0.0002), cfg.Motion.CameraX)
}

func TestLoadEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "typo.toml", "[stars]\ncuont = 3\n"))
	assert.ErrorContains(t, err, "unknown keys")

	_, err = Load(writeFile(t, "typo.yaml", "stars:\n  cuont: 3\n"))
	assert.Error(t, err)
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "config.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoadValidates(t *testing.T) {
	_, err := Load(writeFile(t, "bad.toml", "[camera]\nnear = 10.0\nfar = 5.0\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"fov zero", func(c *Config) { c.Camera.Fov = 0 }, "camera.fov"},
		{"near after far", func(c *Config) { c.Camera.Near = 2000 }, "camera.near"},
		{"negative stars", func(c *Config) { c.Stars.Count = -1 }, "stars.count"},
		{"page height", func(c *Config) { c.Scroll.PageHeight = 0 }, "scroll.page_height"},
		{"msaa", func(c *Config) { c.Render.MSAA = 8 }, "render.msaa"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"workers", func(c *Config) { c.Assets.Workers = 0 }, "assets.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := Default()
	cfg.Stars.Count = 0
	assert.NoError(t, cfg.Validate(), "an empty star field is allowed")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Camera.Fov = -1
	cfg.Stars.Count = -5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera.fov")
	assert.Contains(t, err.Error(), "stars.count")
}

func TestResolveAsset(t *testing.T) {
	cfg := Default()
	cfg.Assets.Dir = "/srv/assets"

	path, err := cfg.ResolveAsset("moon.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/assets", "moon.jpg"), path)

	path, err = cfg.ResolveAsset("/tmp/space.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/space.jpg", path)

	home, err := homedir.Dir()
	require.NoError(t, err)
	path, err = cfg.ResolveAsset("~/pictures/jeff.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pictures", "jeff.png"), path)

	cfg.Assets.Dir = "~/portfolio"
	path, err = cfg.ResolveAsset("normal.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "portfolio", "normal.jpg"), path)
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(LogConfig{Level: "warn", Format: "json"}.Handler(&buf))
	logger.Info("hidden")
	logger.Warn("shown", "component", "config")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	level, err := LogConfig{Level: "DEBUG"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
