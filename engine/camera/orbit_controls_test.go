package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const delta = 1e-3

func assertVec3InDelta(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range 3 {
		assert.InDeltaf(t, want[i], got[i], delta, "component %d: want %v got %v", i, want, got)
	}
}

func newTestRig(options ...OrbitControlsOption) (Camera, OrbitControls) {
	cam := NewCamera(WithFov(common.DegToRad(90)), WithPosition(0, 0, 30))
	options = append([]OrbitControlsOption{WithViewportHeight(1000)}, options...)
	return cam, NewOrbitControls(cam, options...)
}

func TestOrbitControlsLookAtTargetOnCreate(t *testing.T) {
	cam, oc := newTestRig()

	assert.Equal(t, [3]float32{}, oc.Target())
	assert.Equal(t, [3]float32{}, cam.Target())
	assertVec3InDelta(t, [3]float32{0, 0, 30}, cam.Position())
}

func TestOrbitControlsUpdatePreservesExternalMoves(t *testing.T) {
	cam, oc := newTestRig()

	// a scroll handler moves the camera between frames
	cam.SetPosition(0.2, 0.2, 100)
	assert.True(t, oc.Update())
	assertVec3InDelta(t, [3]float32{0.2, 0.2, 100}, cam.Position())

	assert.False(t, oc.Update())
}

func TestOrbitControlsRotateLeft(t *testing.T) {
	cam, oc := newTestRig()

	oc.RotateLeft(math32.Pi / 2)
	oc.Update()
	assertVec3InDelta(t, [3]float32{-30, 0, 0}, cam.Position())
}

func TestOrbitControlsDragRotates(t *testing.T) {
	cam, oc := newTestRig()

	oc.HandleMouseDown(common.MouseButtonLeft, 0, 0)
	oc.HandleMouseMove(100, 0)
	oc.HandleMouseMove(250, 0)
	oc.HandleMouseUp(common.MouseButtonLeft)
	oc.HandleMouseMove(900, 0) // ignored after release

	oc.Update()
	assertVec3InDelta(t, [3]float32{-30, 0, 0}, cam.Position())
}

func TestOrbitControlsPolarClamp(t *testing.T) {
	cam, oc := newTestRig()

	oc.RotateUp(-math32.Pi) // push far below the bottom pole
	oc.Update()

	pos := cam.Position()
	assert.InDelta(t, -30, pos[1], delta)
	assert.InDelta(t, 30, length3(pos), delta)
}

func TestOrbitControlsPolarLimits(t *testing.T) {
	cam, oc := newTestRig(WithPolarLimits(0, math32.Pi/4))

	oc.Update()
	pos := cam.Position()
	// clamped to 45 degrees from +Y
	assert.InDelta(t, 30*math32.Cos(math32.Pi/4), pos[1], delta)
}

func TestOrbitControlsPan(t *testing.T) {
	cam, oc := newTestRig()

	oc.HandleMouseDown(common.MouseButtonRight, 0, 0)
	oc.HandleMouseMove(100, 0)
	oc.HandleMouseUp(common.MouseButtonRight)
	oc.Update()

	assertVec3InDelta(t, [3]float32{-6, 0, 0}, oc.Target())
	assertVec3InDelta(t, [3]float32{-6, 0, 30}, cam.Position())
	assertVec3InDelta(t, [3]float32{-6, 0, 0}, cam.Target())
}

func TestOrbitControlsDolly(t *testing.T) {
	cam, oc := newTestRig()

	oc.DollyStart(0, 0)
	oc.DollyMove(0, 10)
	oc.RotateEnd()
	oc.Update()
	assert.InDelta(t, 30/0.95, cam.Position()[2], delta)
}

func TestOrbitControlsDistanceLimits(t *testing.T) {
	cam, oc := newTestRig(WithDistanceLimits(5, 20))
	assert.InDelta(t, 20, length3(cam.Position()), delta)

	cam.SetPosition(0, 0, 1)
	oc.Update()
	assert.InDelta(t, 5, length3(cam.Position()), delta)
}

func TestOrbitControlsDegenerateStaysAtTarget(t *testing.T) {
	cam, oc := newTestRig()

	cam.SetPosition(0, 0, 0)
	oc.Update()
	assertVec3InDelta(t, [3]float32{}, cam.Position())
}

func TestOrbitControlsDisabledIgnoresInput(t *testing.T) {
	cam, oc := newTestRig()
	oc.SetEnabled(false)
	assert.False(t, oc.Enabled())

	oc.HandleMouseDown(common.MouseButtonLeft, 0, 0)
	oc.HandleMouseMove(250, 0)
	oc.Update()
	assertVec3InDelta(t, [3]float32{0, 0, 30}, cam.Position())
}
