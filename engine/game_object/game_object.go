package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
)

// gameObject is the implementation of the GameObject interface.
type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool

	mdl           model.Model
	mat           material.Material
	attachedLight light.Light

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// GameObject is a renderable scene node: a model drawn with a material under a transform.
// Rotation is an Euler triple in radians applied in X, Y, Z order. Transform accessors are safe
// to call from the input thread while the render goroutine reads the model matrix.
type GameObject interface {
	// ID returns the identifier assigned by the scene.
	ID() uint64

	// SetID sets the identifier. Called by the scene when the object is added.
	SetID(id uint64)

	// Name returns the object's name, used for GPU labels and logging.
	Name() string

	// Enabled reports whether the object is drawn.
	Enabled() bool

	// SetEnabled shows or hides the object.
	SetEnabled(enabled bool)

	// Model returns the object's mesh.
	Model() model.Model

	// SetModel replaces the object's mesh.
	SetModel(m model.Model)

	// Material returns the object's material.
	Material() material.Material

	// SetMaterial replaces the object's material.
	SetMaterial(m material.Material)

	// Light returns the light this object follows, or nil.
	Light() light.Light

	// SetLight attaches the object to a light. While attached the object's position tracks
	// the light's position, which is how light helpers stay on their light.
	//
	// Parameters:
	//   - l: the light to follow, nil to detach
	SetLight(l light.Light)

	// Position returns the world-space position.
	Position() (x, y, z float32)

	// SetPosition sets the world-space position.
	SetPosition(x, y, z float32)

	// Rotation returns the Euler rotation in radians.
	Rotation() (rx, ry, rz float32)

	// SetRotation sets the Euler rotation in radians.
	SetRotation(rx, ry, rz float32)

	// Rotate adds to each Euler angle. Increments accumulate without wrapping.
	//
	// Parameters:
	//   - dx, dy, dz: radians added around X, Y and Z
	Rotate(dx, dy, dz float32)

	// Scale returns the per-axis scale.
	Scale() (sx, sy, sz float32)

	// SetScale sets the per-axis scale.
	SetScale(sx, sy, sz float32)

	// ModelMatrix builds the column-major local-to-world matrix from the current transform.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// Uniform builds the per-object GPU uniform (model and normal matrices).
	//
	// Returns:
	//   - GPUObjectUniform: the uniform ready to marshal
	Uniform() GPUObjectUniform

	// BoundingSphere returns the world-space bounding sphere used for frustum culling.
	// The model's radius is grown by the largest axis scale.
	//
	// Returns:
	//   - [3]float32: the sphere center
	//   - float32: the sphere radius, 0 when the object has no model
	BoundingSphere() ([3]float32, float32)

	// BindGroupProvider returns the provider holding the object's group 2 uniform buffer.
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ GameObject = &gameObject{}

// NewGameObject creates a GameObject at the origin with unit scale, enabled.
//
// Parameters:
//   - options: a variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the configured object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.name == "" && obj.mdl != nil {
		obj.name = obj.mdl.Name()
	}
	if obj.bindGroupProvider == nil {
		obj.bindGroupProvider = bind_group_provider.NewBindGroupProvider(obj.name + "_object")
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mat = m
}

func (g *gameObject) Light() light.Light {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attachedLight
}

func (g *gameObject) SetLight(l light.Light) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attachedLight = l
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.currentPosition()
	return p[0], p[1], p[2]
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) Rotate(dx, dy, dz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation[0] += dx
	g.rotation[1] += dy
	g.rotation[2] += dz
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) ModelMatrix() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var m [16]float32
	common.BuildModelMatrix(m[:], g.currentPosition(), g.rotation, g.scale)
	return m
}

func (g *gameObject) Uniform() GPUObjectUniform {
	u := GPUObjectUniform{Model: g.ModelMatrix()}
	common.NormalMatrix(u.NormalMatrix[:], u.Model[:])
	return u
}

func (g *gameObject) BoundingSphere() ([3]float32, float32) {
	m := g.ModelMatrix()
	center := [3]float32{m[12], m[13], m[14]}
	if g.mdl == nil {
		return center, 0
	}
	return center, g.mdl.BoundingRadius() * common.MaxScale(m[:])
}

func (g *gameObject) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return g.bindGroupProvider
}

// currentPosition returns the attached light's position when one is set. Callers hold g.mu.
func (g *gameObject) currentPosition() [3]float32 {
	if g.attachedLight != nil {
		return g.attachedLight.Position()
	}
	return g.position
}
