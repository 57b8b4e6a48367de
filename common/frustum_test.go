package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testViewProjection() [16]float32 {
	var view, proj, vp [16]float32
	LookAt(view[:], [3]float32{0, 0, 30}, [3]float32{}, [3]float32{0, 1, 0})
	Perspective(proj[:], DegToRad(75), 1, 0.1, 1000)
	Mul4(vp[:], proj[:], view[:])
	return vp
}

func TestFrustumIntersectsSphere(t *testing.T) {
	vp := testViewProjection()
	f := ExtractFrustumFromMatrix(vp[:])

	tests := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{name: "origin in front of camera", center: [3]float32{0, 0, 0}, radius: 1, want: true},
		{name: "behind camera", center: [3]float32{0, 0, 40}, radius: 1, want: false},
		{name: "straddles near plane", center: [3]float32{0, 0, 30.5}, radius: 1, want: true},
		{name: "far off to the side", center: [3]float32{500, 0, 0}, radius: 1, want: false},
		{name: "beyond far plane", center: [3]float32{0, 0, -1100}, radius: 1, want: false},
		{name: "large sphere reaching in", center: [3]float32{60, 0, 0}, radius: 40, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IntersectsSphere(tt.center, tt.radius))
		})
	}
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	vp := testViewProjection()
	f := ExtractFrustumFromMatrix(vp[:])
	for i, p := range f.Planes {
		l := p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]
		assert.InDeltaf(t, 1, l, 1e-4, "plane %d", i)
	}
}
