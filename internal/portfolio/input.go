package portfolio

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
)

// inputSource is the part of window.Window that delivers input.
type inputSource interface {
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetMouseDownCallback(callback func(button int, x, y int32))
	SetMouseUpCallback(callback func(button int, x, y int32))
	SetMouseMoveCallback(callback func(x, y int32))
}

// runner is the part of engine.Engine that input drives.
type runner interface {
	Resize(width, height int)
	Quit()
}

// bindInput routes window input. The wheel and the navigation keys scroll the virtual page,
// the mouse drives the orbit controls and Escape quits. Resizes reach the engine first, then
// the page so keyboard paging uses the new viewport height.
//
// Parameters:
//   - src: the window delivering input
//   - r: the engine to resize and quit
//   - scroll: the virtual page
//   - controls: the orbit controls
func bindInput(src inputSource, r runner, scroll *window.ScrollTracker, controls camera.OrbitControls) {
	src.SetResizeCallback(func(width, height int) {
		r.Resize(width, height)
		if height > 0 {
			scroll.SetViewportHeight(float32(height))
		}
	})
	src.SetScrollCallback(scroll.HandleWheel)
	src.SetKeyDownCallback(func(keyCode uint32) {
		if keyCode == common.KeyEsc {
			r.Quit()
			return
		}
		scroll.HandleKeyDown(keyCode)
	})
	src.SetKeyUpCallback(scroll.HandleKeyUp)
	src.SetMouseDownCallback(controls.HandleMouseDown)
	src.SetMouseUpCallback(func(button int, _, _ int32) {
		controls.HandleMouseUp(button)
	})
	src.SetMouseMoveCallback(controls.HandleMouseMove)
}
