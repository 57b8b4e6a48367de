package engine

import (
	"log/slog"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/profiler"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
)

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	mu              *sync.Mutex
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	ticking        bool // the tick goroutine was started by Run
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	// lastDrawErr suppresses repeating the same draw error every frame.
	lastDrawErr string
}

// Engine is the main entry point for the engine.
// It orchestrates the engine loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for logic that should run at a fixed rate independent of the display.
	// The tick goroutine only runs when a callback is registered before Run.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per render frame, before the
	// active scenes are drawn. Per-frame animation belongs here.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default). With a VSync present mode the display
	// already paces the loop.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order during the render loop.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Resize reconfigures every scene renderer for a new framebuffer size and forwards the
	// size to the scenes. Wired to the window's resize callback.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// Run starts the engine and render goroutines and pumps window messages on the calling
	// goroutine. Blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel that is closed once the engine has been told to quit.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// Initializes message channels and profiler with sensible defaults.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.Resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.handle()
	if e.window == nil {
		e.wg.Wait()
		return
	}

	// the window must be destroyed on the goroutine that pumps its messages, and only after
	// the render goroutine has stopped presenting to it
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.wg.Wait()
			e.closeWindow()
		default:
		}
	})
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
	e.closeWindow()
	slog.Info("engine stopped", "component", "engine")
}

// closeWindow closes the window, which is a no-op when it is already closed.
func (e *engine) closeWindow() {
	if err := e.window.Close(); err != nil {
		slog.Error("window close failed", "component", "engine", "error", err)
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the render goroutine and, when a tick callback is registered, the tick
// goroutine. Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.mu.Lock()
	e.ticking = e.tickCallback != nil
	ticking := e.ticking
	e.mu.Unlock()

	e.running.Store(true)
	if ticking {
		e.wg.Add(1)
		go e.handleEngine()
	}
	e.wg.Add(1)
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.mu.Lock()
			callback := e.tickCallback
			e.mu.Unlock()
			if callback != nil {
				callback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// handleRender runs the render loop in its own goroutine until quit. Each iteration runs one
// frame. A panic inside a frame is recovered, logged and stops the engine.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("render goroutine recovered from panic", "component", "engine", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.renderFrame(dt)

			if e.profilingEnabled.Load() && e.profiler != nil {
				e.profiler.Tick()
			}

			e.mu.Lock()
			limit := e.renderFrameLimit
			e.mu.Unlock()
			if limit > 0 {
				if remaining := limit - time.Since(lastRender); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// renderFrame runs the frame callback, then draws the active scenes in ascending z-index order
// inside one BeginFrame/EndFrame block on the first active scene's renderer, then presents.
// A failed BeginFrame (for example while the surface is being reconfigured) skips the draw.
//
// Parameters:
//   - dt: seconds since the previous frame
func (e *engine) renderFrame(dt float32) {
	e.mu.Lock()
	callback := e.renderCallback
	active := e.activeScenes()
	e.mu.Unlock()

	if callback != nil {
		callback(dt)
	}
	if len(active) == 0 {
		return
	}

	frameRenderer := active[0].Renderer()
	if frameRenderer == nil {
		return
	}
	if err := frameRenderer.BeginFrame(); err != nil {
		slog.Debug("frame skipped", "component", "engine", "error", err)
		return
	}
	for _, s := range active {
		if err := s.DrawCalls(); err != nil {
			e.reportDrawError(s, err)
		}
	}
	frameRenderer.EndFrame()
	frameRenderer.Present()
}

// activeScenes returns the active scenes in ascending key order. Callers hold e.mu.
func (e *engine) activeScenes() []scene.Scene {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// reportDrawError logs a scene draw error unless it repeats the previous one.
func (e *engine) reportDrawError(s scene.Scene, err error) {
	msg := err.Error()
	e.mu.Lock()
	repeat := msg == e.lastDrawErr
	e.lastDrawErr = msg
	e.mu.Unlock()
	if !repeat {
		slog.Error("scene draw failed", "component", "engine", "scene", s.Name(), "error", err)
	}
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.mu.Lock()
	scenes := make([]scene.Scene, 0, len(e.scenes))
	for _, s := range e.scenes {
		scenes = append(scenes, s)
	}
	e.mu.Unlock()

	var resized []renderer.Renderer
	for _, s := range scenes {
		if r := s.Renderer(); r != nil && !slices.Contains(resized, r) {
			r.Resize(width, height)
			resized = append(resized, r)
		}
		s.Resize(width, height)
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	e.mu.Lock()
	ticking := e.ticking
	e.mu.Unlock()
	if ticking && e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
		return
	}
	e.mu.Lock()
	e.engineTickRate = newRate
	e.mu.Unlock()
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameInterval(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// tickInterval converts a tick rate to a ticker period, treating rates <= 0 as 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameInterval converts a frame cap to a minimum frame duration, 0 meaning uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
