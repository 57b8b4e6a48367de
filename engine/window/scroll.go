package window

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// ScrollTracker models a virtual document scrolled by the wheel and the keyboard.
// It tracks the document's top edge relative to the viewport: 0 at the top of the page and
// negative as the page scrolls down. The handler fires only when that offset changes.
type ScrollTracker struct {
	mu sync.Mutex

	top            float32
	pageHeight     float32
	viewportHeight float32
	pixelsPerLine  float32
	shiftDown      bool

	onScroll func(top float32)
}

// NewScrollTracker creates a ScrollTracker at the top of the page.
//
// Parameters:
//   - options: functional options to configure the tracker
//
// Returns:
//   - *ScrollTracker: the configured tracker
func NewScrollTracker(options ...ScrollTrackerOption) *ScrollTracker {
	s := &ScrollTracker{
		pageHeight:     5000,
		viewportHeight: 720,
		pixelsPerLine:  100,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Top returns the current offset of the page's top edge. It is always in [-(page - viewport), 0].
//
// Returns:
//   - float32: the offset in pixels
func (s *ScrollTracker) Top() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top
}

// Scroll moves the page by a number of lines. Positive lines scroll down.
//
// Parameters:
//   - lines: line count, fractional for high resolution wheels
func (s *ScrollTracker) Scroll(lines float32) {
	s.mu.Lock()
	s.set(s.top - lines*s.pixelsPerLine)
}

// ScrollPages moves the page by whole viewport heights. Positive pages scroll down.
//
// Parameters:
//   - pages: number of viewport heights
func (s *ScrollTracker) ScrollPages(pages float32) {
	s.mu.Lock()
	s.set(s.top - pages*s.viewportHeight)
}

// Home scrolls to the top of the page.
func (s *ScrollTracker) Home() {
	s.mu.Lock()
	s.set(0)
}

// End scrolls to the bottom of the page.
func (s *ScrollTracker) End() {
	s.mu.Lock()
	s.set(s.minTop())
}

// SetViewportHeight updates the viewport height and re-clamps the offset, which fires the
// handler when a taller viewport pulls the page back.
//
// Parameters:
//   - height: the viewport height in pixels
func (s *ScrollTracker) SetViewportHeight(height float32) {
	s.mu.Lock()
	s.viewportHeight = max(height, 0)
	s.set(s.top)
}

// SetScrollHandler replaces the function called with the new offset after each change.
//
// Parameters:
//   - handler: the callback, or nil to disable
func (s *ScrollTracker) SetScrollHandler(handler func(top float32)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onScroll = handler
}

// HandleWheel applies a wheel delta as reported by the window, where positive means wheel up.
//
// Parameters:
//   - delta: the wheel delta in notches
func (s *ScrollTracker) HandleWheel(delta float32) {
	s.Scroll(-delta)
}

// HandleKeyDown applies the browser's keyboard scrolling conventions.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - bool: true if the key is a scrolling key
func (s *ScrollTracker) HandleKeyDown(keyCode uint32) bool {
	switch keyCode {
	case common.KeyLeftShift, common.KeyRightShift:
		s.mu.Lock()
		s.shiftDown = true
		s.mu.Unlock()
		return false
	case common.KeyDown:
		s.Scroll(1)
	case common.KeyUp:
		s.Scroll(-1)
	case common.KeyPageDown:
		s.ScrollPages(1)
	case common.KeyPageUp:
		s.ScrollPages(-1)
	case common.KeySpace:
		s.mu.Lock()
		shift := s.shiftDown
		s.mu.Unlock()
		if shift {
			s.ScrollPages(-1)
		} else {
			s.ScrollPages(1)
		}
	case common.KeyHome:
		s.Home()
	case common.KeyEnd:
		s.End()
	default:
		return false
	}
	return true
}

// HandleKeyUp tracks modifier releases.
//
// Parameters:
//   - keyCode: the virtual key code
func (s *ScrollTracker) HandleKeyUp(keyCode uint32) {
	if keyCode == common.KeyLeftShift || keyCode == common.KeyRightShift {
		s.mu.Lock()
		s.shiftDown = false
		s.mu.Unlock()
	}
}

func (s *ScrollTracker) minTop() float32 {
	return min(s.viewportHeight-s.pageHeight, 0)
}

// set clamps and stores the offset, then releases the lock and fires the handler if it moved.
// The caller must hold s.mu.
func (s *ScrollTracker) set(top float32) {
	top = common.Clamp(top, s.minTop(), 0)
	if top == s.top {
		s.mu.Unlock()
		return
	}
	s.top = top
	handler := s.onScroll
	s.mu.Unlock()

	if handler != nil {
		handler(top)
	}
}
