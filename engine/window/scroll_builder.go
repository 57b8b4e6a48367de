package window

// ScrollTrackerOption is a functional option for configuring a ScrollTracker.
type ScrollTrackerOption func(s *ScrollTracker)

// WithPageHeight sets the total height of the virtual page in pixels.
//
// Parameters:
//   - height: page height in pixels
//
// Returns:
//   - ScrollTrackerOption: option function to apply
func WithPageHeight(height float32) ScrollTrackerOption {
	return func(s *ScrollTracker) {
		s.pageHeight = height
	}
}

// WithViewportHeight sets the initial viewport height in pixels.
//
// Parameters:
//   - height: viewport height in pixels
//
// Returns:
//   - ScrollTrackerOption: option function to apply
func WithViewportHeight(height float32) ScrollTrackerOption {
	return func(s *ScrollTracker) {
		s.viewportHeight = height
	}
}

// WithPixelsPerLine sets how far one wheel notch or arrow key moves the page.
//
// Parameters:
//   - pixels: distance per line in pixels
//
// Returns:
//   - ScrollTrackerOption: option function to apply
func WithPixelsPerLine(pixels float32) ScrollTrackerOption {
	return func(s *ScrollTracker) {
		s.pixelsPerLine = pixels
	}
}

// WithScrollHandler sets the function called with the new offset after each change.
//
// Parameters:
//   - handler: the callback
//
// Returns:
//   - ScrollTrackerOption: option function to apply
func WithScrollHandler(handler func(top float32)) ScrollTrackerOption {
	return func(s *ScrollTracker) {
		s.onScroll = handler
	}
}
