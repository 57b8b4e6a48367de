// Package portfolio assembles the portfolio scene: a star field, a rotating torus, a textured
// avatar cube and a normal mapped moon, moved by page scroll and animated every frame.
package portfolio

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/loader"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/Carmen-Shannon/oxy-folio/internal/config"
)

const (
	// Grid line colors: the two center lines, then the rest.
	gridCenterColor = 0x444444
	gridLineColor   = 0x888888

	torusRadius          = 10
	torusTube            = 3
	torusRadialSegments  = 16
	torusTubularSegments = 100

	avatarSize = 3

	moonRadius   = 3
	moonSegments = 32
)

// Portfolio owns the scene graph and, once bootstrapped, the window and GPU resources that
// draw it. Scroll input arrives on the window goroutine and frames on the render goroutine.
// motionMu serializes the two so a scroll is never overwritten by a frame that read the camera
// before it.
type Portfolio struct {
	mu       sync.Mutex
	motionMu sync.Mutex

	cfg config.Config
	rng common.Float32Source

	cam      camera.Camera
	controls camera.OrbitControls

	objects []game_object.GameObject
	lights  []light.Light
	stars   []game_object.GameObject

	starModel    model.Model
	starMaterial material.Material

	torus       game_object.GameObject
	avatar      game_object.GameObject
	moon        game_object.GameObject
	lightHelper game_object.GameObject
	grid        game_object.GameObject

	pointLight   light.Light
	ambientLight light.Light

	background material.Texture

	window   window.Window
	renderer renderer.Renderer
	loader   loader.Loader
	scene    scene.Scene
	engine   engine.Engine
	scroll   *window.ScrollTracker
	closed   bool
}

// New builds the CPU side of the scene in the order the page adds it: the stars, the torus,
// the point and ambient lights, the light helper and grid, the avatar and the moon. Nothing
// touches the GPU until Bootstrap.
//
// Parameters:
//   - cfg: the validated configuration
//   - opts: functional options
//
// Returns:
//   - *Portfolio: the assembled scene
//   - error: an error if the configuration is invalid
func New(cfg config.Config, opts ...Option) (*Portfolio, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}

	p := &Portfolio{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = newRand(cfg.Stars.Seed)
	}

	p.cam = camera.NewCamera(
		camera.WithPosition(cfg.Camera.Position[0], cfg.Camera.Position[1], cfg.Camera.Position[2]),
		camera.WithFov(common.DegToRad(cfg.Camera.Fov)),
		camera.WithAspect(float32(cfg.Window.Width)/float32(cfg.Window.Height)),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
	)
	p.controls = camera.NewOrbitControls(p.cam,
		camera.WithOrbitTarget(0, 0, 0),
		camera.WithViewportHeight(float32(cfg.Window.Height)),
	)

	p.torus = game_object.NewGameObject(
		game_object.WithName("torus"),
		game_object.WithModel(model.NewModel(
			model.Torus(torusRadius, torusTube, torusRadialSegments, torusTubularSegments),
			model.WithName("torus"),
		)),
		game_object.WithMaterial(material.NewMaterial(material.MaterialTypeStandard,
			material.WithName("torus"),
			material.WithColor(cfg.Scene.TorusColor),
		)),
	)

	p.pointLight = light.NewLight(light.LightTypePoint,
		light.WithColor(cfg.Lights.PointColor),
		light.WithPosition(cfg.Lights.PointPosition[0], cfg.Lights.PointPosition[1], cfg.Lights.PointPosition[2]),
		light.WithIntensity(cfg.Lights.PointIntensity),
		light.WithDistance(cfg.Lights.PointDistance),
		light.WithDecay(cfg.Lights.PointDecay),
	)
	p.ambientLight = light.NewLight(light.LightTypeAmbient,
		light.WithColor(cfg.Lights.AmbientColor),
		light.WithIntensity(cfg.Lights.AmbientIntensity),
	)

	p.lightHelper = game_object.NewGameObject(
		game_object.WithName("point_light_helper"),
		game_object.WithModel(model.NewModel(
			model.PointLightHelper(cfg.Lights.HelperSize, common.HexColor(cfg.Lights.PointColor)),
			model.WithName("point_light_helper"),
		)),
		game_object.WithMaterial(material.NewMaterial(material.MaterialTypeLine, material.WithName("point_light_helper"))),
		game_object.WithLight(p.pointLight),
	)
	p.grid = game_object.NewGameObject(
		game_object.WithName("grid"),
		game_object.WithModel(model.NewModel(
			model.Grid(cfg.Scene.GridSize, cfg.Scene.GridDivisions, common.HexColor(gridCenterColor), common.HexColor(gridLineColor)),
			model.WithName("grid"),
		)),
		game_object.WithMaterial(material.NewMaterial(material.MaterialTypeLine, material.WithName("grid"))),
	)

	p.avatar = game_object.NewGameObject(
		game_object.WithName("avatar"),
		game_object.WithModel(model.NewModel(model.Box(avatarSize, avatarSize, avatarSize), model.WithName("avatar"))),
		game_object.WithMaterial(material.NewMaterial(material.MaterialTypeBasic, material.WithName("avatar"))),
		game_object.WithPosition(cfg.Scene.AvatarPosition[0], cfg.Scene.AvatarPosition[1], cfg.Scene.AvatarPosition[2]),
	)
	p.moon = game_object.NewGameObject(
		game_object.WithName("moon"),
		game_object.WithModel(model.NewModel(model.Sphere(moonRadius, moonSegments, moonSegments), model.WithName("moon"))),
		game_object.WithMaterial(material.NewMaterial(material.MaterialTypeStandard, material.WithName("moon"))),
		game_object.WithPosition(cfg.Scene.MoonPosition[0], cfg.Scene.MoonPosition[1], cfg.Scene.MoonPosition[2]),
	)

	for range cfg.Stars.Count {
		p.AddStar()
	}
	p.objects = append(p.objects, p.torus)
	p.lights = append(p.lights, p.pointLight, p.ambientLight)
	if cfg.Scene.ShowHelpers {
		p.objects = append(p.objects, p.lightHelper, p.grid)
	}
	p.objects = append(p.objects, p.avatar, p.moon)

	slog.Debug("portfolio assembled",
		"component", "portfolio",
		"stars", len(p.stars),
		"objects", len(p.objects),
		"shared_star_geometry", cfg.Stars.SharedGeometry,
	)
	return p, nil
}

// newRand seeds a PCG source. Seed 0 draws a fresh seed so every run scatters differently.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// AddStar scatters one more star and appends it to the scene. Each axis is drawn from
// (-spread/2, spread/2]. Unless stars share geometry, every star gets its own mesh and material.
// Stars added after Bootstrap are uploaded on their first frame.
//
// Returns:
//   - game_object.GameObject: the new star
func (p *Portfolio) AddStar() game_object.GameObject {
	p.mu.Lock()
	defer p.mu.Unlock()

	spread := p.cfg.Stars.Spread
	x := common.RandFloatSpread(spread, p.rng)
	y := common.RandFloatSpread(spread, p.rng)
	z := common.RandFloatSpread(spread, p.rng)

	mdl, mat := p.starMesh(len(p.stars))
	star := game_object.NewGameObject(
		game_object.WithName(fmt.Sprintf("star_%d", len(p.stars))),
		game_object.WithModel(mdl),
		game_object.WithMaterial(mat),
		game_object.WithPosition(x, y, z),
	)
	p.stars = append(p.stars, star)
	p.objects = append(p.objects, star)
	if p.scene != nil {
		p.scene.Add(star)
	}
	return star
}

// starMesh returns the mesh and material for star i. The caller must hold p.mu.
func (p *Portfolio) starMesh(i int) (model.Model, material.Material) {
	if p.cfg.Stars.SharedGeometry && p.starModel != nil {
		return p.starModel, p.starMaterial
	}

	materialType := material.MaterialTypeStandard
	if p.cfg.Stars.BasicMaterial {
		materialType = material.MaterialTypeBasic
	}
	name := fmt.Sprintf("star_%d", i)
	if p.cfg.Stars.SharedGeometry {
		name = "star"
	}
	mdl := model.NewModel(
		model.Sphere(p.cfg.Stars.Radius, p.cfg.Stars.Segments, p.cfg.Stars.Segments),
		model.WithName(name),
	)
	mat := material.NewMaterial(materialType, material.WithName(name), material.WithColor(0xffffff))
	if p.cfg.Stars.SharedGeometry {
		p.starModel, p.starMaterial = mdl, mat
	}
	return mdl, mat
}

// MoveCamera applies a scroll offset. The camera position is a pure function of t while the
// moon and avatar rotations accumulate on every call.
//
// Parameters:
//   - t: the page's top edge offset, 0 at the top and negative when scrolled down
func (p *Portfolio) MoveCamera(t float32) {
	p.motionMu.Lock()
	defer p.motionMu.Unlock()

	m := p.cfg.Motion
	p.moon.Rotate(m.MoonRotation[0], m.MoonRotation[1], m.MoonRotation[2])
	p.avatar.Rotate(m.AvatarRotation[0], m.AvatarRotation[1], m.AvatarRotation[2])
	p.cam.SetPosition(t*m.CameraX, t*m.CameraY, t*m.CameraZ)
}

// Animate advances one frame: the torus turns by its per-frame step and the orbit controls
// apply pending drags. The engine draws the scene right after.
func (p *Portfolio) Animate() {
	p.motionMu.Lock()
	defer p.motionMu.Unlock()

	r := p.cfg.Motion.TorusRotation
	p.torus.Rotate(r[0], r[1], r[2])
	p.controls.Update()
}

// Camera returns the scene camera.
func (p *Portfolio) Camera() camera.Camera { return p.cam }

// Controls returns the orbit controls bound to the camera.
func (p *Portfolio) Controls() camera.OrbitControls { return p.controls }

// Torus returns the rotating torus.
func (p *Portfolio) Torus() game_object.GameObject { return p.torus }

// Avatar returns the textured cube.
func (p *Portfolio) Avatar() game_object.GameObject { return p.avatar }

// Moon returns the normal mapped moon.
func (p *Portfolio) Moon() game_object.GameObject { return p.moon }

// PointLight returns the point light.
func (p *Portfolio) PointLight() light.Light { return p.pointLight }

// AmbientLight returns the ambient light.
func (p *Portfolio) AmbientLight() light.Light { return p.ambientLight }

// Background returns the background texture, nil before Bootstrap.
func (p *Portfolio) Background() material.Texture {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.background
}

// Stars returns the stars in the order they were added.
//
// Returns:
//   - []game_object.GameObject: a copy of the star list
func (p *Portfolio) Stars() []game_object.GameObject {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]game_object.GameObject(nil), p.stars...)
}

// Objects returns every drawable object in insertion order.
//
// Returns:
//   - []game_object.GameObject: a copy of the object list
func (p *Portfolio) Objects() []game_object.GameObject {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]game_object.GameObject(nil), p.objects...)
}

// Lights returns the scene lights in insertion order.
//
// Returns:
//   - []light.Light: a copy of the light list
func (p *Portfolio) Lights() []light.Light {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]light.Light(nil), p.lights...)
}
