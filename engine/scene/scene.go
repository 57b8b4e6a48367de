package scene

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group indices shared by every scene pipeline.
const (
	groupCamera   = 0
	groupLights   = 1
	groupObject   = 2
	groupMaterial = 3
)

// Background pipeline bindings, group 0.
const (
	backgroundTextureBinding = 0
	backgroundSamplerBinding = 1
)

// Scene owns a camera, its orbit controls, the lights, the game objects in insertion order and
// an optional background texture, and turns them into draw calls on a Renderer.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controls returns the orbit controls bound to the scene's camera, or nil.
	Controls() camera.OrbitControls

	// SetControls replaces the scene's orbit controls.
	//
	// Parameters:
	//   - controls: the new controls, nil to detach
	SetControls(controls camera.OrbitControls)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Add appends game objects to the scene. Objects are drawn in insertion order. A light
	// attached to an object is registered with the scene as well. Adding an object twice is a
	// no-op.
	//
	// Parameters:
	//   - objects: the objects to add
	Add(objects ...game_object.GameObject)

	// Remove removes a game object from the scene. Its GPU resources are kept so it can be
	// added again.
	//
	// Parameters:
	//   - obj: the object to remove
	Remove(obj game_object.GameObject)

	// Objects returns a copy of the scene's objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// AddLight registers a light. Lights are marshaled into the light uniform every frame.
	// Registering the same light twice is a no-op.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light by reference.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns a copy of the registered lights.
	//
	// Returns:
	//   - []light.Light: the lights in registration order
	Lights() []light.Light

	// Background returns the background texture, or nil.
	Background() material.Texture

	// SetBackground sets the texture drawn behind every object. Nothing is drawn behind the
	// scene until the texture is ready.
	//
	// Parameters:
	//   - tex: the background texture, nil to clear it
	SetBackground(tex material.Texture)

	// CullingDisabled returns whether frustum culling is disabled for this scene.
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling against object bounding spheres.
	//
	// Parameters:
	//   - disabled: true to draw every enabled object
	SetCullingDisabled(disabled bool)

	// Init registers the built-in pipelines and creates the GPU resources of the camera, the
	// lights, the background and every object added so far. Objects added later are prepared
	// on their first frame.
	//
	// Returns:
	//   - error: an error if a pipeline or a GPU resource could not be created
	Init() error

	// Resize reacts to a framebuffer resize. The orbit controls always learn the new height;
	// the camera aspect only follows when the scene tracks resizes.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// DrawCalls uploads this frame's uniforms and finished textures, then issues the
	// background draw followed by one draw per visible object in insertion order.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error

	// Release frees the GPU resources the scene created.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu     *sync.Mutex
	name   string
	active bool

	cam      camera.Camera
	controls camera.OrbitControls
	r        renderer.Renderer

	lights  []light.Light
	objects []game_object.GameObject

	background         material.Texture
	backgroundProvider bind_group_provider.BindGroupProvider
	backgroundVersion  uint64
	lightsProvider     bind_group_provider.BindGroupProvider

	// prepared holds the providers whose GPU resources exist, so shared meshes and materials
	// are created once.
	prepared map[bind_group_provider.BindGroupProvider]bool

	initialized     bool
	cullingDisabled bool
	trackResize     bool

	// writes and bindGroups are reused across frames.
	writes     []bind_group_provider.BufferWrite
	bindGroups []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene creates a Scene drawing through the given camera and renderer.
//
// Parameters:
//   - name: the scene's identifier, used for labels and logs
//   - cam: the camera the scene is viewed through
//   - r: the renderer the scene draws with
//   - options: optional builder options
//
// Returns:
//   - Scene: the new scene, active by default
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:                 &sync.Mutex{},
		name:               name,
		active:             true,
		cam:                cam,
		r:                  r,
		lightsProvider:     bind_group_provider.NewBindGroupProvider(name + "_lights"),
		backgroundProvider: bind_group_provider.NewBindGroupProvider(name+"_background", bind_group_provider.WithVertexCount(3)),
		prepared:           make(map[bind_group_provider.BindGroupProvider]bool),
		bindGroups:         make([]bind_group_provider.BindGroupProvider, groupMaterial+1),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Controls() camera.OrbitControls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controls
}

func (s *scene) SetControls(controls camera.OrbitControls) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls = controls
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Add(objects ...game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range objects {
		if obj == nil || slices.Contains(s.objects, obj) {
			continue
		}
		s.objects = append(s.objects, obj)
		if l := obj.Light(); l != nil && !slices.Contains(s.lights, l) {
			s.lights = append(s.lights, l)
		}
	}
}

func (s *scene) Remove(obj game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.objects, obj); i >= 0 {
		s.objects = slices.Delete(s.objects, i, i+1)
	}
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.objects)
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil || slices.Contains(s.lights, l) {
		return
	}
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.lights, l); i >= 0 {
		s.lights = slices.Delete(s.lights, i, i+1)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lights)
}

func (s *scene) Background() material.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *scene) SetBackground(tex material.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = tex
	s.backgroundVersion = 0
}

func (s *scene) CullingDisabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}
	if s.cam == nil {
		return fmt.Errorf("scene %q has no camera attached", s.name)
	}

	for _, key := range pipeline.BuiltinKeys() {
		if s.r.Pipeline(key) != nil {
			continue
		}
		p, err := pipeline.NewBuiltinPipeline(key)
		if err != nil {
			return err
		}
		if err := s.r.RegisterPipelines(p); err != nil {
			return err
		}
	}

	standard := s.r.Pipeline(shader.KeyStandard).BindGroupLayoutDescriptors()
	if err := s.r.InitBindGroup(s.cam.BindGroupProvider(), standard[groupCamera], nil, nil); err != nil {
		return fmt.Errorf("scene %q camera: %w", s.name, err)
	}
	if err := s.r.InitBindGroup(s.lightsProvider, standard[groupLights], nil, nil); err != nil {
		return fmt.Errorf("scene %q lights: %w", s.name, err)
	}
	if err := s.initBackground(); err != nil {
		return err
	}

	for _, obj := range s.objects {
		if err := s.prepareObject(obj); err != nil {
			return err
		}
	}
	s.initialized = true
	slog.Debug("scene initialized", "component", "scene", "scene", s.name, "objects", len(s.objects), "lights", len(s.lights))
	return nil
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controls != nil {
		s.controls.SetViewportHeight(float32(height))
	}
	if s.trackResize && s.cam != nil {
		s.cam.SetAspect(float32(width) / float32(height))
	}
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}
	if !s.initialized {
		return fmt.Errorf("scene %q is not initialized", s.name)
	}

	s.cam.Update()
	camUniform := s.cam.Uniform()
	lightUniform := light.BuildLightUniform(s.lights)
	s.writes = append(s.writes[:0],
		bind_group_provider.BufferWrite{Provider: s.cam.BindGroupProvider(), Binding: 0, Data: camUniform.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.lightsProvider, Binding: 0, Data: lightUniform.Marshal()},
	)

	s.uploadBackground()

	visible := s.visibleObjects()
	for _, obj := range visible {
		if err := s.prepareObject(obj); err != nil {
			return err
		}
		mat := obj.Material()
		s.uploadTextures(mat)

		objUniform := obj.Uniform()
		matUniform := mat.Uniform()
		s.writes = append(s.writes,
			bind_group_provider.BufferWrite{Provider: obj.BindGroupProvider(), Binding: 0, Data: objUniform.Marshal()},
			bind_group_provider.BufferWrite{Provider: mat.BindGroupProvider(), Binding: material.UniformBinding, Data: matUniform.Marshal()},
		)
	}
	s.r.WriteBuffers(s.writes)

	if s.background != nil && s.backgroundVersion > 0 {
		if err := s.r.DrawCall(shader.KeyBackground, s.backgroundProvider, []bind_group_provider.BindGroupProvider{s.backgroundProvider}); err != nil {
			return err
		}
	}

	s.bindGroups[groupCamera] = s.cam.BindGroupProvider()
	s.bindGroups[groupLights] = s.lightsProvider
	for _, obj := range visible {
		s.bindGroups[groupObject] = obj.BindGroupProvider()
		s.bindGroups[groupMaterial] = obj.Material().BindGroupProvider()
		if err := s.r.DrawCall(obj.Material().PipelineKey(), obj.Model().MeshProvider(), s.bindGroups); err != nil {
			return fmt.Errorf("scene %q object %q: %w", s.name, obj.Name(), err)
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for provider := range s.prepared {
		provider.Release()
	}
	clear(s.prepared)
	s.lightsProvider.Release()
	s.backgroundProvider.Release()
	if s.cam != nil {
		s.cam.BindGroupProvider().Release()
	}
	s.initialized = false
}

// visibleObjects returns the drawable objects in insertion order: enabled, carrying a model
// and a material, and inside the camera frustum unless culling is disabled. Callers hold s.mu.
func (s *scene) visibleObjects() []game_object.GameObject {
	var frustum common.Frustum
	if !s.cullingDisabled {
		frustum = s.cam.Frustum()
	}

	visible := make([]game_object.GameObject, 0, len(s.objects))
	for _, obj := range s.objects {
		if !obj.Enabled() || obj.Model() == nil || obj.Material() == nil {
			continue
		}
		if !s.cullingDisabled {
			center, radius := obj.BoundingSphere()
			if radius > 0 && !frustum.IntersectsSphere(center, radius) {
				continue
			}
		}
		visible = append(visible, obj)
	}
	return visible
}

// prepareObject creates the mesh buffers, the object uniform and the material bind group of one
// object, skipping resources already created for another object. Callers hold s.mu.
func (s *scene) prepareObject(obj game_object.GameObject) error {
	mdl, mat := obj.Model(), obj.Material()
	if mdl == nil || mat == nil {
		return nil
	}
	p := s.r.Pipeline(mat.PipelineKey())
	if p == nil {
		return fmt.Errorf("scene %q object %q: render pipeline %q not registered", s.name, obj.Name(), mat.PipelineKey())
	}
	layouts := p.BindGroupLayoutDescriptors()

	if mesh := mdl.MeshProvider(); !s.prepared[mesh] {
		if err := s.r.InitMeshBuffers(mesh, mdl.VertexData(), mdl.IndexData(), mdl.VertexCount(), mdl.IndexCount()); err != nil {
			return fmt.Errorf("scene %q mesh %q: %w", s.name, mdl.Name(), err)
		}
		s.prepared[mesh] = true
	}

	if provider := obj.BindGroupProvider(); !s.prepared[provider] {
		if err := s.r.InitBindGroup(provider, layouts[groupObject], nil, nil); err != nil {
			return fmt.Errorf("scene %q object %q: %w", s.name, obj.Name(), err)
		}
		s.prepared[provider] = true
	}

	if provider := mat.BindGroupProvider(); !s.prepared[provider] {
		for _, slot := range mat.Type().TextureSlots() {
			texBinding, samplerBinding := material.SlotBindings(slot)
			fallback := common.SolidTexture(255, 255, 255, 255)
			fallback.ColorSpace = material.SlotColorSpace(slot)
			if err := s.r.InitTextureView(provider, texBinding, fallback); err != nil {
				return fmt.Errorf("scene %q material %q: %w", s.name, mat.Name(), err)
			}
			if err := s.r.InitSampler(provider, samplerBinding, common.SamplerStagingData{}); err != nil {
				return fmt.Errorf("scene %q material %q: %w", s.name, mat.Name(), err)
			}
		}
		if err := s.r.InitBindGroup(provider, layouts[groupMaterial], nil, nil); err != nil {
			return fmt.Errorf("scene %q material %q: %w", s.name, mat.Name(), err)
		}
		s.prepared[provider] = true
	}
	return nil
}

// uploadTextures moves every finished texture of a material to the GPU and rebuilds the
// material's bind group around the new views. A failed upload is logged and the slot keeps
// its previous view. Callers hold s.mu.
func (s *scene) uploadTextures(mat material.Material) {
	pending := mat.PendingTextures()
	if len(pending) == 0 {
		return
	}

	provider := mat.BindGroupProvider()
	rebuild := false
	for _, slot := range pending {
		tex := mat.Texture(slot)
		version := tex.Version()
		staging := tex.Staging()
		staging.ColorSpace = material.SlotColorSpace(slot)

		texBinding, _ := material.SlotBindings(slot)
		if err := s.r.InitTextureView(provider, texBinding, staging); err != nil {
			slog.Error("texture upload failed", "component", "scene", "material", mat.Name(), "texture", tex.Name(), "error", err)
		} else {
			rebuild = true
		}
		mat.MarkUploaded(slot, version)
	}
	if !rebuild {
		return
	}

	p := s.r.Pipeline(mat.PipelineKey())
	if err := s.r.InitBindGroup(provider, p.BindGroupLayoutDescriptors()[groupMaterial], nil, nil); err != nil {
		slog.Error("material bind group rebuild failed", "component", "scene", "material", mat.Name(), "error", err)
	}
}

// initBackground creates the background sampler and a black placeholder so the bind group is
// valid before the image arrives. Callers hold s.mu.
func (s *scene) initBackground() error {
	if err := s.r.InitTextureView(s.backgroundProvider, backgroundTextureBinding, common.SolidTexture(0, 0, 0, 255)); err != nil {
		return fmt.Errorf("scene %q background: %w", s.name, err)
	}
	sampler := common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	}
	if err := s.r.InitSampler(s.backgroundProvider, backgroundSamplerBinding, sampler); err != nil {
		return fmt.Errorf("scene %q background: %w", s.name, err)
	}
	layouts := s.r.Pipeline(shader.KeyBackground).BindGroupLayoutDescriptors()
	if err := s.r.InitBindGroup(s.backgroundProvider, layouts[0], nil, nil); err != nil {
		return fmt.Errorf("scene %q background: %w", s.name, err)
	}
	return nil
}

// uploadBackground uploads the background texture once it is ready or whenever it has been
// reloaded. Callers hold s.mu.
func (s *scene) uploadBackground() {
	if s.background == nil || !s.background.Ready() {
		return
	}
	version := s.background.Version()
	if version <= s.backgroundVersion {
		return
	}
	s.backgroundVersion = version

	staging := s.background.Staging()
	staging.ColorSpace = common.ColorSpaceSRGB
	if err := s.r.InitTextureView(s.backgroundProvider, backgroundTextureBinding, staging); err != nil {
		slog.Error("background upload failed", "component", "scene", "texture", s.background.Name(), "error", err)
		return
	}
	layouts := s.r.Pipeline(shader.KeyBackground).BindGroupLayoutDescriptors()
	if err := s.r.InitBindGroup(s.backgroundProvider, layouts[0], nil, nil); err != nil {
		slog.Error("background bind group rebuild failed", "component", "scene", "error", err)
	}
}
