package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/stretchr/testify/assert"
)

func newTestTracker(calls *[]float32) *ScrollTracker {
	return NewScrollTracker(
		WithPageHeight(3000),
		WithViewportHeight(1000),
		WithPixelsPerLine(100),
		WithScrollHandler(func(top float32) { *calls = append(*calls, top) }),
	)
}

func TestScrollTrackerWheel(t *testing.T) {
	var calls []float32
	s := newTestTracker(&calls)

	assert.Equal(t, float32(0), s.Top())

	s.HandleWheel(-1) // wheel down
	assert.Equal(t, float32(-100), s.Top())

	s.HandleWheel(-2.5)
	assert.Equal(t, float32(-350), s.Top())

	s.HandleWheel(1)
	assert.Equal(t, float32(-250), s.Top())
	assert.Equal(t, []float32{-100, -350, -250}, calls)
}

func TestScrollTrackerClampsWithoutFiring(t *testing.T) {
	var calls []float32
	s := newTestTracker(&calls)

	s.HandleWheel(3) // already at the top
	assert.Empty(t, calls)

	s.End()
	assert.Equal(t, float32(-2000), s.Top())
	s.Scroll(5)
	s.End()
	assert.Equal(t, []float32{-2000}, calls)

	s.Scroll(-100)
	assert.Equal(t, float32(0), s.Top())
	assert.Equal(t, []float32{-2000, 0}, calls)
}

func TestScrollTrackerKeys(t *testing.T) {
	var calls []float32
	s := newTestTracker(&calls)

	tests := []struct {
		name string
		key  uint32
		want float32
	}{
		{name: "down arrow", key: common.KeyDown, want: -100},
		{name: "page down", key: common.KeyPageDown, want: -1100},
		{name: "up arrow", key: common.KeyUp, want: -1000},
		{name: "space", key: common.KeySpace, want: -2000},
		{name: "page up", key: common.KeyPageUp, want: -1000},
		{name: "home", key: common.KeyHome, want: 0},
		{name: "end", key: common.KeyEnd, want: -2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, s.HandleKeyDown(tt.key))
			assert.Equal(t, tt.want, s.Top())
		})
	}

	assert.False(t, s.HandleKeyDown(common.KeyR))
}

func TestScrollTrackerShiftSpace(t *testing.T) {
	var calls []float32
	s := newTestTracker(&calls)
	s.End()

	assert.False(t, s.HandleKeyDown(common.KeyLeftShift))
	s.HandleKeyDown(common.KeySpace)
	assert.Equal(t, float32(-1000), s.Top())

	s.HandleKeyUp(common.KeyLeftShift)
	s.HandleKeyDown(common.KeySpace)
	assert.Equal(t, float32(-2000), s.Top())
}

func TestScrollTrackerViewportResize(t *testing.T) {
	var calls []float32
	s := newTestTracker(&calls)
	s.End()

	s.SetViewportHeight(2500)
	assert.Equal(t, float32(-500), s.Top())

	// a viewport taller than the page pins the page to the top
	s.SetViewportHeight(4000)
	assert.Equal(t, float32(0), s.Top())
	assert.Equal(t, []float32{-2000, -500, 0}, calls)

	s.SetViewportHeight(1000)
	assert.Len(t, calls, 3)
}

func TestScrollTrackerReplaceHandler(t *testing.T) {
	s := NewScrollTracker()
	var got float32
	s.SetScrollHandler(func(top float32) { got = top })
	s.Scroll(1)
	assert.Equal(t, float32(-100), got)

	s.SetScrollHandler(nil)
	s.Scroll(1)
	assert.Equal(t, float32(-200), s.Top())
}
