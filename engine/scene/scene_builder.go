package scene

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene, in order, registering any attached lights.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
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
}

// WithLights registers initial lights.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil && !slices.Contains(s.lights, l) {
				s.lights = append(s.lights, l)
			}
		}
	}
}

// WithControls binds orbit controls to the scene.
func WithControls(controls camera.OrbitControls) SceneBuilderOption {
	return func(s *scene) {
		s.controls = controls
	}
}

// WithBackground sets the background texture.
func WithBackground(tex material.Texture) SceneBuilderOption {
	return func(s *scene) {
		s.background = tex
	}
}

// WithCullingDisabled disables frustum culling. By default objects whose bounding sphere lies
// entirely outside the camera frustum are skipped.
//
// Parameters:
//   - disabled: true to draw every enabled object
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}

// WithTrackResize makes the camera aspect follow the framebuffer on Resize. Off by default,
// so the aspect captured at startup is kept and the image stretches with the window.
//
// Parameters:
//   - track: true to update the camera aspect on resize
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTrackResize(track bool) SceneBuilderOption {
	return func(s *scene) {
		s.trackResize = track
	}
}
