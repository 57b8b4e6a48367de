package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/loader"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
)

// ErrNotBootstrapped is returned by Run before Bootstrap succeeded.
var ErrNotBootstrapped = errors.New("portfolio is not bootstrapped")

// sceneKey is the portfolio scene's z-index in the engine.
const sceneKey = 0

// Bootstrap opens the window, binds the renderer to it, starts decoding the textures and
// uploads the scene. Textures arrive asynchronously: until one is decoded the objects using it
// sample white and the background stays at the clear color. Cancelling ctx stops the engine.
// GPU initialization failures panic in the renderer.
//
// Parameters:
//   - ctx: controls the lifetime of the running engine
//
// Returns:
//   - error: an error if the scene cannot be initialized
func (p *Portfolio) Bootstrap(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.engine != nil {
		return errors.New("portfolio is already bootstrapped")
	}
	cfg := p.cfg

	p.window = window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable),
	)
	width, height := p.window.Width(), p.window.Height()

	presentMode := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	p.renderer = renderer.NewRenderer(renderer.BackendTypeWGPU, p.window,
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithPresentMode(presentMode),
		renderer.WithClearColor(common.HexColor(cfg.Render.ClearColor)),
		renderer.WithForceSoftwareRenderer(cfg.Render.Software),
	)
	if width > 0 && height > 0 {
		p.cam.SetAspect(float32(width) / float32(height))
		p.controls.SetViewportHeight(float32(height))
	}

	if err := p.loadTextures(ctx); err != nil {
		return err
	}

	p.scene = scene.NewScene("portfolio", p.cam, p.renderer,
		scene.WithObjects(p.objects...),
		scene.WithLights(p.lights...),
		scene.WithControls(p.controls),
		scene.WithBackground(p.background),
		scene.WithCullingDisabled(!cfg.Render.Culling),
		scene.WithTrackResize(cfg.Camera.TrackResize),
	)
	if err := p.scene.Init(); err != nil {
		return fmt.Errorf("portfolio: %w", err)
	}

	p.engine = engine.NewEngine(
		engine.WithWindow(p.window),
		engine.WithScene(sceneKey, p.scene),
		engine.WithRenderCallback(func(float32) { p.Animate() }),
		engine.WithProfiling(cfg.Engine.Profile),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
	)

	p.scroll = window.NewScrollTracker(
		window.WithPageHeight(cfg.Scroll.PageHeight),
		window.WithViewportHeight(float32(height)),
		window.WithPixelsPerLine(cfg.Scroll.PixelsPerLine),
		window.WithScrollHandler(p.MoveCamera),
	)
	bindInput(p.window, p.engine, p.scroll, p.controls)

	go func(e engine.Engine) {
		select {
		case <-ctx.Done():
			slog.Info("context cancelled, stopping", "component", "portfolio", "cause", context.Cause(ctx))
			e.Quit()
		case <-e.Done():
		}
	}(p.engine)

	slog.Info("portfolio ready",
		"component", "portfolio",
		"objects", len(p.objects),
		"stars", len(p.stars),
		"width", width,
		"height", height,
	)
	return nil
}

// loadTextures queues every texture on a new loader and assigns them to their materials.
// The caller must hold p.mu.
func (p *Portfolio) loadTextures(ctx context.Context) error {
	cfg := p.cfg
	p.loader = loader.NewLoader(
		loader.WithWorkers(cfg.Assets.Workers),
		loader.WithMaxTextureSize(cfg.Assets.MaxTextureSize),
	)

	load := func(name string) (loader.Texture, error) {
		path, err := cfg.ResolveAsset(name)
		if err != nil {
			return nil, fmt.Errorf("portfolio: asset %q: %w", name, err)
		}
		return p.loader.Load(path), nil
	}

	background, err := load(cfg.Assets.Background)
	if err != nil {
		return err
	}
	avatar, err := load(cfg.Assets.Avatar)
	if err != nil {
		return err
	}
	moon, err := load(cfg.Assets.Moon)
	if err != nil {
		return err
	}
	normal, err := load(cfg.Assets.MoonNormal)
	if err != nil {
		return err
	}

	p.background = background
	p.avatar.Material().SetTexture(material.SlotMap, avatar)
	p.moon.Material().SetTexture(material.SlotMap, moon)
	p.moon.Material().SetTexture(material.SlotNormalMap, normal)

	if cfg.Assets.Watch {
		if err := p.loader.Watch(); err != nil {
			slog.Warn("texture hot reload disabled", "component", "portfolio", "error", err)
		}
	}

	for _, tex := range []loader.Texture{background, avatar, moon, normal} {
		go func(tex loader.Texture) {
			if err := tex.Wait(ctx); err != nil {
				return
			}
			if tex.Err() == nil {
				slog.Info("texture loaded", "component", "portfolio", "texture", tex.Name())
			}
		}(tex)
	}
	return nil
}

// Run pumps window messages on the calling goroutine until the window closes, Quit is called
// or the Bootstrap context is cancelled, then releases every resource. It must be called from
// the goroutine that called Bootstrap, normally main.
//
// Returns:
//   - error: ErrNotBootstrapped, or an error from releasing resources
func (p *Portfolio) Run() error {
	p.mu.Lock()
	e := p.engine
	p.mu.Unlock()
	if e == nil {
		return ErrNotBootstrapped
	}
	e.Run()
	return p.Close()
}

// Quit asks a running portfolio to stop. Run returns once the engine has shut down.
func (p *Portfolio) Quit() {
	p.mu.Lock()
	e := p.engine
	p.mu.Unlock()
	if e != nil {
		e.Quit()
	}
}

// Close releases GPU resources and stops the texture loader. It is safe to call more than once.
//
// Returns:
//   - error: errors from stopping the loader's file watcher or closing the window
func (p *Portfolio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if p.engine != nil {
		p.engine.Quit()
	}
	if p.scene != nil {
		p.scene.Release()
	}
	if p.renderer != nil {
		p.renderer.Release()
	}
	var errs []error
	if p.loader != nil {
		if err := p.loader.Close(); err != nil {
			errs = append(errs, fmt.Errorf("portfolio: close loader: %w", err))
		}
	}
	// a running engine closes the window itself when it stops
	if p.engine == nil && p.window != nil {
		if err := p.window.Close(); err != nil {
			errs = append(errs, fmt.Errorf("portfolio: close window: %w", err))
		}
	}
	return errors.Join(errs...)
}
