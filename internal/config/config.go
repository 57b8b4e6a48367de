// Package config loads the portfolio configuration from TOML or YAML. Every value defaults to
// the constant the scene was designed with, so an empty or missing file reproduces it exactly.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete portfolio configuration.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Camera CameraConfig `toml:"camera" yaml:"camera"`
	Scene  SceneConfig  `toml:"scene" yaml:"scene"`
	Lights LightsConfig `toml:"lights" yaml:"lights"`
	Stars  StarsConfig  `toml:"stars" yaml:"stars"`
	Scroll ScrollConfig `toml:"scroll" yaml:"scroll"`
	Motion MotionConfig `toml:"motion" yaml:"motion"`
	Assets AssetsConfig `toml:"assets" yaml:"assets"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Engine EngineConfig `toml:"engine" yaml:"engine"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// WindowConfig sizes the native window.
type WindowConfig struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
}

// CameraConfig holds the perspective camera. Fov is the vertical field of view in degrees.
type CameraConfig struct {
	Fov         float32    `toml:"fov" yaml:"fov"`
	Near        float32    `toml:"near" yaml:"near"`
	Far         float32    `toml:"far" yaml:"far"`
	Position    [3]float32 `toml:"position" yaml:"position"`
	TrackResize bool       `toml:"track_resize" yaml:"track_resize"`
}

// SceneConfig places the fixed scene objects.
type SceneConfig struct {
	TorusColor     uint32     `toml:"torus_color" yaml:"torus_color"`
	AvatarPosition [3]float32 `toml:"avatar_position" yaml:"avatar_position"`
	MoonPosition   [3]float32 `toml:"moon_position" yaml:"moon_position"`
	GridSize       float32    `toml:"grid_size" yaml:"grid_size"`
	GridDivisions  int        `toml:"grid_divisions" yaml:"grid_divisions"`
	ShowHelpers    bool       `toml:"show_helpers" yaml:"show_helpers"`
}

// LightsConfig holds the point and ambient lights. A point distance of 0 means infinite range.
type LightsConfig struct {
	PointColor       uint32     `toml:"point_color" yaml:"point_color"`
	PointPosition    [3]float32 `toml:"point_position" yaml:"point_position"`
	PointIntensity   float32    `toml:"point_intensity" yaml:"point_intensity"`
	PointDistance    float32    `toml:"point_distance" yaml:"point_distance"`
	PointDecay       float32    `toml:"point_decay" yaml:"point_decay"`
	AmbientColor     uint32     `toml:"ambient_color" yaml:"ambient_color"`
	AmbientIntensity float32    `toml:"ambient_intensity" yaml:"ambient_intensity"`
	HelperSize       float32    `toml:"helper_size" yaml:"helper_size"`
}

// StarsConfig controls the star field. Seed 0 draws a random seed.
type StarsConfig struct {
	Count          int     `toml:"count" yaml:"count"`
	Spread         float32 `toml:"spread" yaml:"spread"`
	Radius         float32 `toml:"radius" yaml:"radius"`
	Segments       int     `toml:"segments" yaml:"segments"`
	SharedGeometry bool    `toml:"shared_geometry" yaml:"shared_geometry"`
	BasicMaterial  bool    `toml:"basic_material" yaml:"basic_material"`
	Seed           uint64  `toml:"seed" yaml:"seed"`
}

// ScrollConfig sizes the virtual page the wheel and keyboard scroll.
type ScrollConfig struct {
	PageHeight    float32 `toml:"page_height" yaml:"page_height"`
	PixelsPerLine float32 `toml:"pixels_per_line" yaml:"pixels_per_line"`
}

// MotionConfig holds the scroll coefficients and the per-event and per-frame rotation steps.
type MotionConfig struct {
	CameraX        float32    `toml:"camera_x" yaml:"camera_x"`
	CameraY        float32    `toml:"camera_y" yaml:"camera_y"`
	CameraZ        float32    `toml:"camera_z" yaml:"camera_z"`
	MoonRotation   [3]float32 `toml:"moon_rotation" yaml:"moon_rotation"`
	AvatarRotation [3]float32 `toml:"avatar_rotation" yaml:"avatar_rotation"`
	TorusRotation  [3]float32 `toml:"torus_rotation" yaml:"torus_rotation"`
}

// AssetsConfig names the texture files. Relative names resolve against Dir.
type AssetsConfig struct {
	Dir            string `toml:"dir" yaml:"dir"`
	Background     string `toml:"background" yaml:"background"`
	Avatar         string `toml:"avatar" yaml:"avatar"`
	Moon           string `toml:"moon" yaml:"moon"`
	MoonNormal     string `toml:"moon_normal" yaml:"moon_normal"`
	Watch          bool   `toml:"watch" yaml:"watch"`
	Workers        int    `toml:"workers" yaml:"workers"`
	MaxTextureSize int    `toml:"max_texture_size" yaml:"max_texture_size"`
}

// RenderConfig configures the GPU surface.
type RenderConfig struct {
	MSAA       int    `toml:"msaa" yaml:"msaa"`
	VSync      bool   `toml:"vsync" yaml:"vsync"`
	ClearColor uint32 `toml:"clear_color" yaml:"clear_color"`
	Software   bool   `toml:"software" yaml:"software"`
	Culling    bool   `toml:"culling" yaml:"culling"`
}

// EngineConfig configures the engine loops.
type EngineConfig struct {
	Profile    bool    `toml:"profile" yaml:"profile"`
	FrameLimit float64 `toml:"frame_limit" yaml:"frame_limit"`
}

// LogConfig configures the default slog logger.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the configuration that reproduces the portfolio scene as designed.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "oxy-folio",
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		Camera: CameraConfig{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{0, 0, 30},
		},
		Scene: SceneConfig{
			TorusColor:    0xff6347,
			MoonPosition:  [3]float32{-10, 0, 30},
			GridSize:      200,
			GridDivisions: 50,
			ShowHelpers:   true,
		},
		Lights: LightsConfig{
			PointColor:       0xffffff,
			PointPosition:    [3]float32{5, 5, 5},
			PointIntensity:   1,
			PointDecay:       2,
			AmbientColor:     0xffffff,
			AmbientIntensity: 1,
			HelperSize:       1,
		},
		Stars: StarsConfig{
			Count:    200,
			Spread:   100,
			Radius:   0.25,
			Segments: 24,
		},
		Scroll: ScrollConfig{
			PageHeight:    5000,
			PixelsPerLine: 100,
		},
		Motion: MotionConfig{
			CameraX:        -0.0002,
			CameraY:        -0.0002,
			CameraZ:        -0.1,
			MoonRotation:   [3]float32{0.05, 0.075, 0.05},
			AvatarRotation: [3]float32{0, 0.01, 0.01},
			TorusRotation:  [3]float32{0.01, 0.005, 0.01},
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			Background:     "space.jpg",
			Avatar:         "jeff.png",
			Moon:           "moon.jpg",
			MoonNormal:     "normal.jpg",
			Workers:        2,
			MaxTextureSize: 8192,
		},
		Render: RenderConfig{
			MSAA:    4,
			VSync:   true,
			Culling: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file over the defaults. The format follows the extension:
// .toml, or .yaml/.yml. An empty path or a missing file yields the defaults. Unknown keys are
// rejected so a misspelled key does not silently fall back to its default.
//
// Parameters:
//   - path: the configuration file, may start with ~
//
// Returns:
//   - Config: the loaded and validated configuration
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("config file not found, using defaults", "component", "config", "path", expanded)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", expanded, err)
	}

	if err := Decode(&cfg, filepath.Ext(expanded), data); err != nil {
		return cfg, fmt.Errorf("config %s: %w", expanded, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Decode decodes data over cfg in the format named by ext. Keys missing from data keep their
// current value.
//
// Parameters:
//   - cfg: the configuration to decode into
//   - ext: ".toml", ".yaml" or ".yml"
//   - data: the encoded configuration
//
// Returns:
//   - error: an error for an unsupported extension, malformed input or unknown keys
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return fmt.Errorf("unknown keys:\n%s", strict.String())
			}
			return err
		}
		return nil
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q, want .toml, .yaml or .yml", ext)
	}
}

// Validate reports every out-of-range value, each wrapping ErrInvalid.
//
// Returns:
//   - error: nil when the configuration is usable
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "camera.fov %v must be in (0, 180)", c.Camera.Fov)
	check(c.Camera.Near > 0, "camera.near %v must be positive", c.Camera.Near)
	check(c.Camera.Near < c.Camera.Far, "camera.near %v must be less than camera.far %v", c.Camera.Near, c.Camera.Far)
	check(c.Stars.Count >= 0, "stars.count %d must not be negative", c.Stars.Count)
	check(c.Stars.Spread >= 0, "stars.spread %v must not be negative", c.Stars.Spread)
	check(c.Stars.Radius > 0, "stars.radius %v must be positive", c.Stars.Radius)
	check(c.Stars.Segments >= 3, "stars.segments %d must be at least 3", c.Stars.Segments)
	check(c.Scroll.PageHeight > 0, "scroll.page_height %v must be positive", c.Scroll.PageHeight)
	check(c.Scroll.PixelsPerLine > 0, "scroll.pixels_per_line %v must be positive", c.Scroll.PixelsPerLine)
	check(c.Scene.GridDivisions > 0, "scene.grid_divisions %d must be positive", c.Scene.GridDivisions)
	check(c.Lights.PointDistance >= 0, "lights.point_distance %v must not be negative", c.Lights.PointDistance)
	check(c.Assets.Workers > 0, "assets.workers %d must be positive", c.Assets.Workers)
	check(c.Assets.MaxTextureSize > 0, "assets.max_texture_size %d must be positive", c.Assets.MaxTextureSize)
	check(c.Render.MSAA == 1 || c.Render.MSAA == 4, "render.msaa %d must be 1 or 4", c.Render.MSAA)
	check(c.Engine.FrameLimit >= 0, "engine.frame_limit %v must not be negative", c.Engine.FrameLimit)

	_, levelErr := c.Log.SlogLevel()
	check(levelErr == nil, "log.level %q must be debug, info, warn or error", c.Log.Level)
	check(c.Log.Format == "text" || c.Log.Format == "json", "log.format %q must be text or json", c.Log.Format)

	return errors.Join(errs...)
}

// ResolveAsset turns an asset name into a path: ~ is expanded and relative names are joined
// to the assets directory.
//
// Parameters:
//   - name: the asset file name or path
//
// Returns:
//   - string: the resolved path
//   - error: an error if home directory expansion fails
func (c Config) ResolveAsset(name string) (string, error) {
	expanded, err := homedir.Expand(name)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	dir, err := homedir.Expand(c.Assets.Dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, expanded), nil
}

// SlogLevel parses the configured level.
//
// Returns:
//   - slog.Level: the level
//   - error: an error for an unknown level name
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// Handler builds the slog handler the configuration describes, writing to w.
//
// Parameters:
//   - w: the log destination
//
// Returns:
//   - slog.Handler: a text or JSON handler at the configured level
func (l LogConfig) Handler(w io.Writer) slog.Handler {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
