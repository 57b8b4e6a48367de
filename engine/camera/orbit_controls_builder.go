package camera

// OrbitControlsOption is a functional option for configuring OrbitControls at construction.
type OrbitControlsOption func(*orbitControls)

// WithOrbitTarget sets the point the camera orbits around. Defaults to the origin.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - OrbitControlsOption: option function to apply
func WithOrbitTarget(x, y, z float32) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithViewportHeight sets the viewport height in pixels used to scale drags.
//
// Parameters:
//   - height: viewport height in pixels
//
// Returns:
//   - OrbitControlsOption: option function to apply
func WithViewportHeight(height float32) OrbitControlsOption {
	return func(oc *orbitControls) {
		if height > 0 {
			oc.viewportHeight = height
		}
	}
}

// WithRotateSpeed scales how far a drag rotates the camera. A drag across the full viewport
// height at speed 1 is one full turn.
//
// Parameters:
//   - speed: rotation multiplier
//
// Returns:
//   - OrbitControlsOption: option function to apply
func WithRotateSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.rotateSpeed = speed
	}
}

// WithPanSpeed scales how far a right drag pans the target.
//
// Parameters:
//   - speed: pan multiplier
//
// Returns:
//   - OrbitControlsOption: option function to apply
func WithPanSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.panSpeed = speed
	}
}

// WithZoomSpeed scales the dolly step of a middle drag.
//
// Parameters:
//   - speed: zoom multiplier
//
// Returns:
//   - OrbitControlsOption: option function to apply
func WithZoomSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.zoomSpeed = speed
	}
}

// WithPolarLimits bounds the polar angle measured from +Y.
//
// Parameters:
//   - minAngle: minimum polar angle in radians (0 is straight above the target)
//   - maxAngle: maximum polar angle in radians (pi is straight below)
//
// Returns:
//   - OrbitControlsOption: option function to apply
func WithPolarLimits(minAngle, maxAngle float32) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.minPolarAngle = minAngle
		oc.maxPolarAngle = maxAngle
	}
}

// WithDistanceLimits bounds the camera's distance from the target.
//
// Parameters:
//   - minDistance: minimum distance
//   - maxDistance: maximum distance
//
// Returns:
//   - OrbitControlsOption: option function to apply
func WithDistanceLimits(minDistance, maxDistance float32) OrbitControlsOption {
	return func(oc *orbitControls) {
		oc.minDistance = minDistance
		oc.maxDistance = maxDistance
	}
}
