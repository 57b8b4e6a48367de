package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/chewxy/math32"
)

// polarEpsilon keeps the polar angle off the poles where the look-at basis degenerates.
const polarEpsilon = 0.000001

type controlState int

const (
	stateNone controlState = iota
	stateRotate
	stateDolly
	statePan
)

// OrbitControls moves a Camera around a target point in response to pointer drags.
// Left drag orbits, middle drag dollies and right drag pans. Input only accumulates deltas;
// Update applies them to the camera, so it must run once per frame.
type OrbitControls interface {
	// Target returns the point the camera orbits around.
	//
	// Returns:
	//   - [3]float32: the orbit target
	Target() [3]float32

	// SetTarget moves the orbit target. The camera turns toward it on the next Update.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetViewportHeight sets the height in pixels used to convert drags into angles and distances.
	//
	// Parameters:
	//   - height: viewport height in pixels
	SetViewportHeight(height float32)

	// Enabled reports whether pointer input is accepted.
	//
	// Returns:
	//   - bool: true when enabled
	Enabled() bool

	// SetEnabled turns pointer input on or off. Disabling cancels the drag in progress.
	//
	// Parameters:
	//   - enabled: false to ignore pointer input
	SetEnabled(enabled bool)

	// HandleMouseDown starts the drag mapped to a mouse button.
	//
	// Parameters:
	//   - button: common.MouseButtonLeft, Middle or Right
	//   - x, y: cursor position in pixels
	HandleMouseDown(button int, x, y int32)

	// HandleMouseMove continues the active drag, if any.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	HandleMouseMove(x, y int32)

	// HandleMouseUp ends the active drag.
	//
	// Parameters:
	//   - button: the released button
	HandleMouseUp(button int)

	// RotateStart begins an orbit drag at the given pointer position.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	RotateStart(x, y float32)

	// RotateMove turns the pointer movement since the last sample into azimuth and polar
	// deltas. A full viewport height of travel is one full turn.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	RotateMove(x, y float32)

	// RotateEnd ends any drag in progress. Accumulated deltas are still applied by the next Update.
	RotateEnd()

	// PanStart begins a pan drag at the given pointer position.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PanStart(x, y float32)

	// PanMove shifts the target along the camera's screen axes so the point under the cursor
	// follows it at the target's depth.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PanMove(x, y float32)

	// DollyStart begins a dolly drag at the given pointer position.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	DollyStart(x, y float32)

	// DollyMove moves the camera toward the target when dragging up and away when dragging down.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	DollyMove(x, y float32)

	// RotateLeft adds an azimuth rotation applied on the next Update.
	//
	// Parameters:
	//   - angle: radians, positive turns the camera to the left around the target
	RotateLeft(angle float32)

	// RotateUp adds a polar rotation applied on the next Update.
	//
	// Parameters:
	//   - angle: radians, positive raises the camera toward the top pole
	RotateUp(angle float32)

	// Update re-derives spherical coordinates from the camera's current position, applies the
	// accumulated deltas and limits, writes the position back and points the camera at the target.
	//
	// Returns:
	//   - bool: true if the camera position or target changed
	Update() bool
}

type orbitControls struct {
	mu *sync.Mutex

	camera  Camera
	target  [3]float32
	enabled bool

	viewportHeight float32

	rotateSpeed float32
	panSpeed    float32
	zoomSpeed   float32

	minPolarAngle float32
	maxPolarAngle float32
	minDistance   float32
	maxDistance   float32

	state      controlState
	start      [2]float32
	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  [3]float32

	lastPosition [3]float32
	lastTarget   [3]float32
}

var _ OrbitControls = &orbitControls{}

// NewOrbitControls binds controls to a camera and immediately runs Update, so the camera
// faces the target from the moment the controls exist.
//
// Parameters:
//   - cam: the camera to move
//   - options: functional options to configure the controls
//
// Returns:
//   - OrbitControls: the new controls
func NewOrbitControls(cam Camera, options ...OrbitControlsOption) OrbitControls {
	oc := &orbitControls{
		mu:             &sync.Mutex{},
		camera:         cam,
		enabled:        true,
		viewportHeight: 720,
		rotateSpeed:    1,
		panSpeed:       1,
		zoomSpeed:      1,
		minPolarAngle:  0,
		maxPolarAngle:  math32.Pi,
		minDistance:    0,
		maxDistance:    math32.Inf(1),
		scale:          1,
	}
	for _, option := range options {
		option(oc)
	}
	oc.Update()
	return oc
}

func (oc *orbitControls) Target() [3]float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControls) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
}

func (oc *orbitControls) SetViewportHeight(height float32) {
	if height <= 0 {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.viewportHeight = height
}

func (oc *orbitControls) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControls) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.state = stateNone
	}
}

func (oc *orbitControls) HandleMouseDown(button int, x, y int32) {
	fx, fy := float32(x), float32(y)
	switch button {
	case common.MouseButtonLeft:
		oc.RotateStart(fx, fy)
	case common.MouseButtonMiddle:
		oc.DollyStart(fx, fy)
	case common.MouseButtonRight:
		oc.PanStart(fx, fy)
	}
}

func (oc *orbitControls) HandleMouseMove(x, y int32) {
	oc.mu.Lock()
	state := oc.state
	oc.mu.Unlock()

	fx, fy := float32(x), float32(y)
	switch state {
	case stateRotate:
		oc.RotateMove(fx, fy)
	case stateDolly:
		oc.DollyMove(fx, fy)
	case statePan:
		oc.PanMove(fx, fy)
	}
}

func (oc *orbitControls) HandleMouseUp(_ int) {
	oc.RotateEnd()
}

func (oc *orbitControls) RotateStart(x, y float32) {
	oc.begin(stateRotate, x, y)
}

func (oc *orbitControls) RotateMove(x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.state != stateRotate {
		return
	}
	dx, dy := oc.advance(x, y)
	oc.deltaTheta -= 2 * math32.Pi * dx * oc.rotateSpeed / oc.viewportHeight
	oc.deltaPhi -= 2 * math32.Pi * dy * oc.rotateSpeed / oc.viewportHeight
}

// RotateEnd ends any drag in progress. Accumulated deltas are still applied by the next Update.
func (oc *orbitControls) RotateEnd() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.state = stateNone
}

func (oc *orbitControls) PanStart(x, y float32) {
	oc.begin(statePan, x, y)
}

// PanMove shifts the target along the camera's screen axes so the point under the cursor
// follows it at the target's depth.
func (oc *orbitControls) PanMove(x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.state != statePan {
		return
	}
	dx, dy := oc.advance(x, y)
	dx *= oc.panSpeed
	dy *= oc.panSpeed

	pos := oc.camera.Position()
	offset := sub3(pos, oc.target)
	targetDistance := length3(offset) * math32.Tan(oc.camera.Fov()/2)

	right, up := localAxes(pos, oc.target, oc.camera.Up())
	left := -2 * dx * targetDistance / oc.viewportHeight
	upward := 2 * dy * targetDistance / oc.viewportHeight
	for i := range 3 {
		oc.panOffset[i] += right[i]*left + up[i]*upward
	}
}

func (oc *orbitControls) DollyStart(x, y float32) {
	oc.begin(stateDolly, x, y)
}

func (oc *orbitControls) DollyMove(x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.state != stateDolly {
		return
	}
	_, dy := oc.advance(x, y)
	zoomScale := math32.Pow(0.95, oc.zoomSpeed)
	switch {
	case dy > 0:
		oc.scale /= zoomScale
	case dy < 0:
		oc.scale *= zoomScale
	}
}

func (oc *orbitControls) RotateLeft(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.deltaTheta -= angle
}

func (oc *orbitControls) RotateUp(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.deltaPhi -= angle
}

func (oc *orbitControls) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	pos := oc.camera.Position()
	radius, theta, phi := toSpherical(sub3(pos, oc.target))

	theta += oc.deltaTheta
	phi = common.Clamp(phi+oc.deltaPhi, oc.minPolarAngle, oc.maxPolarAngle)
	phi = common.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)
	radius = common.Clamp(radius*oc.scale, oc.minDistance, oc.maxDistance)

	for i := range 3 {
		oc.target[i] += oc.panOffset[i]
	}

	offset := fromSpherical(radius, theta, phi)
	pos = [3]float32{oc.target[0] + offset[0], oc.target[1] + offset[1], oc.target[2] + offset[2]}
	oc.camera.SetPosition(pos[0], pos[1], pos[2])
	oc.camera.LookAt(oc.target[0], oc.target[1], oc.target[2])

	oc.deltaTheta, oc.deltaPhi = 0, 0
	oc.scale = 1
	oc.panOffset = [3]float32{}

	changed := distanceSq3(pos, oc.lastPosition) > polarEpsilon || distanceSq3(oc.target, oc.lastTarget) > polarEpsilon
	oc.lastPosition = pos
	oc.lastTarget = oc.target
	return changed
}

func (oc *orbitControls) begin(state controlState, x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.state = state
	oc.start = [2]float32{x, y}
}

// advance returns the movement since the last pointer sample and records the new sample.
// Caller must hold the mutex.
func (oc *orbitControls) advance(x, y float32) (dx, dy float32) {
	dx, dy = x-oc.start[0], y-oc.start[1]
	oc.start = [2]float32{x, y}
	return dx, dy
}

// toSpherical converts an offset into radius, azimuth around +Y measured from +Z, and polar angle from +Y.
func toSpherical(v [3]float32) (radius, theta, phi float32) {
	radius = length3(v)
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(v[0], v[2])
	phi = math32.Acos(common.Clamp(v[1]/radius, -1, 1))
	return radius, theta, phi
}

func fromSpherical(radius, theta, phi float32) [3]float32 {
	sinPhiRadius := math32.Sin(phi) * radius
	return [3]float32{
		sinPhiRadius * math32.Sin(theta),
		math32.Cos(phi) * radius,
		sinPhiRadius * math32.Cos(theta),
	}
}

// localAxes returns the camera's right and up axes, consistent with common.LookAt.
// Both are zero when position and target coincide.
func localAxes(position, target, worldUp [3]float32) (right, up [3]float32) {
	back := sub3(position, target)
	l := length3(back)
	if l < 1e-8 {
		return
	}
	back = scale3(back, 1/l)

	right = cross3(worldUp, back)
	if rl := length3(right); rl > 1e-8 {
		right = scale3(right, 1/rl)
	}
	up = cross3(back, right)
	return right, up
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale3(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length3(a [3]float32) float32 {
	return math32.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

func distanceSq3(a, b [3]float32) float32 {
	d := sub3(a, b)
	return d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
}
