package game_object

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the name of the GameObject. Defaults to the model's name.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithModel sets the mesh of the GameObject.
//
// Parameters:
//   - m: the Model to draw
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithMaterial sets the material the GameObject is drawn with.
//
// Parameters:
//   - m: the Material
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Material
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mat = m
	}
}

// WithPosition sets the world-space position of the GameObject.
//
// Parameters:
//   - x, y, z: the position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithScale sets the per-axis scale of the GameObject.
//
// Parameters:
//   - sx, sy, sz: scale factors
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the Euler rotation of the GameObject in radians.
//
// Parameters:
//   - rx, ry, rz: rotation around X, Y and Z
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithLight attaches the GameObject to a light so it follows the light's position.
//
// Parameters:
//   - l: the light to follow
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the light
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.attachedLight = l
	}
}

// WithBindGroupProvider sets the provider for the object's uniform buffer.
//
// Parameters:
//   - provider: the bind group provider
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.bindGroupProvider = provider
	}
}
