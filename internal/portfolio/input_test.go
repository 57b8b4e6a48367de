package portfolio

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button int, x, y int32)
	onMouseUp   func(button int, x, y int32)
	onMouseMove func(x, y int32)
}

func (f *fakeInput) SetResizeCallback(cb func(width, height int)) { f.onResize = cb }
func (f *fakeInput) SetScrollCallback(cb func(delta float32)) { f.onScroll = cb }
func (f *fakeInput) SetKeyDownCallback(cb func(keyCode uint32)) { f.onKeyDown = cb }
func (f *fakeInput) SetKeyUpCallback(cb func(keyCode uint32)) { f.onKeyUp = cb }
func (f *fakeInput) SetMouseDownCallback(cb func(button int, x, y int32)) { f.onMouseDown = cb }
func (f *fakeInput) SetMouseUpCallback(cb func(button int, x, y int32)) { f.onMouseUp = cb }
func (f *fakeInput) SetMouseMoveCallback(cb func(x, y int32)) { f.onMouseMove = cb }

type fakeRunner struct {
	resizes [][2]int
	quits   int
}

func (r *fakeRunner) Resize(width, height int) { r.resizes = append(r.resizes, [2]int{width, height}) }
func (r *fakeRunner) Quit() { r.quits++ }

func newInputFixture() (*fakeInput, *fakeRunner, *window.ScrollTracker, camera.Camera, *[]float32) {
	var offsets []float32
	src := &fakeInput{}
	r := &fakeRunner{}
	scroll := window.NewScrollTracker(
		window.WithPageHeight(5000),
		window.WithViewportHeight(720),
		window.WithScrollHandler(func(top float32) { offsets = append(offsets, top) }),
	)
	cam := camera.NewCamera(camera.WithPosition(0, 0, 30))
	controls := camera.NewOrbitControls(cam, camera.WithViewportHeight(720))
	bindInput(src, r, scroll, controls)
	return src, r, scroll, cam, &offsets
}

func TestWheelScrollsPage(t *testing.T) {
	src, _, scroll, _, offsets := newInputFixture()

	src.onScroll(-1)
	assert.Equal(t, float32(-100), scroll.Top(), "wheel down scrolls the page down")
	src.onScroll(2)
	assert.Equal(t, float32(0), scroll.Top())
	src.onScroll(1)
	assert.Equal(t, []float32{-100, 0}, *offsets, "scrolling past the top fires nothing")
}

func TestKeysScrollPageAndEscapeQuits(t *testing.T) {
	src, r, scroll, _, offsets := newInputFixture()

	src.onResize(1000, 500)
	assert.Equal(t, [][2]int{{1000, 500}}, r.resizes)

	src.onKeyDown(common.KeyPageDown)
	assert.Equal(t, float32(-500), scroll.Top(), "page down uses the resized viewport")

	src.onKeyDown(common.KeyLeftShift)
	src.onKeyDown(common.KeySpace)
	src.onKeyUp(common.KeyLeftShift)
	assert.Equal(t, float32(0), scroll.Top())

	src.onKeyDown(common.KeyEsc)
	assert.Equal(t, 1, r.quits)
	assert.Len(t, *offsets, 2)
}

func TestResizeIgnoresEmptyViewport(t *testing.T) {
	src, r, scroll, _, _ := newInputFixture()

	src.onResize(0, 0)
	src.onKeyDown(common.KeyPageDown)
	assert.Equal(t, float32(-720), scroll.Top())
	assert.Len(t, r.resizes, 1)
}

func TestMouseDragOrbitsCamera(t *testing.T) {
	src, _, _, cam, _ := newInputFixture()
	controls := camera.NewOrbitControls(cam, camera.WithViewportHeight(720))
	bindInput(src, &fakeRunner{}, window.NewScrollTracker(), controls)

	src.onMouseDown(common.MouseButtonLeft, 100, 100)
	src.onMouseMove(200, 100)
	src.onMouseUp(common.MouseButtonLeft, 200, 100)
	require.True(t, controls.Update())

	pos := cam.Position()
	assert.NotZero(t, pos[0], "a horizontal drag swings the camera around the target")
	radius := pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2]
	assert.InDelta(t, 900, radius, 0.1, "orbiting keeps the distance")
}
