package common

import (
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func assertMatrixInDelta(t *testing.T, want, got []float32) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDeltaf(t, want[i], got[i], eps, "element %d", i)
	}
}

func TestIdentityAndMul4(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], m[:])
	assertMatrixInDelta(t, m[:], out[:])

	Mul4(out[:], m[:], id[:])
	assertMatrixInDelta(t, m[:], out[:])
}

func TestMul4Aliasing(t *testing.T) {
	var a, b [16]float32
	BuildModelMatrix(a[:], [3]float32{1, 2, 3}, [3]float32{0.3, 0.2, 0.1}, [3]float32{1, 1, 1})
	BuildModelMatrix(b[:], [3]float32{-1, 0, 4}, [3]float32{0, 1, 0}, [3]float32{2, 2, 2})

	var want [16]float32
	Mul4(want[:], a[:], b[:])
	Mul4(a[:], a[:], b[:])
	assertMatrixInDelta(t, want[:], a[:])
}

func TestBuildModelMatrixTranslationAndScale(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{-10, 0, 30}, [3]float32{}, [3]float32{2, 3, 4})

	p := TransformPoint(m[:], [3]float32{1, 1, 1})
	assert.InDelta(t, -8, p[0], eps)
	assert.InDelta(t, 3, p[1], eps)
	assert.InDelta(t, 34, p[2], eps)
}

func TestBuildModelMatrixEulerOrderXYZ(t *testing.T) {
	// Rotating +90deg around X then +90deg around Y in intrinsic XYZ order is Rx * Ry.
	// Ry takes +X to -Z, then Rx takes -Z to +Y.
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{}, [3]float32{math32.Pi / 2, math32.Pi / 2, 0}, [3]float32{1, 1, 1})

	p := TransformPoint(m[:], [3]float32{1, 0, 0})
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 1, p[1], eps)
	assert.InDelta(t, 0, p[2], eps)
}

func TestInvert4(t *testing.T) {
	var m, inv, out, id [16]float32
	BuildModelMatrix(m[:], [3]float32{5, 5, 5}, [3]float32{0.05, 0.075, 0.05}, [3]float32{1, 2, 3})
	require.True(t, Invert4(inv[:], m[:]))

	Mul4(out[:], m[:], inv[:])
	Identity(id[:])
	assertMatrixInDelta(t, id[:], out[:])

	var singular [16]float32
	inv[0] = 42
	assert.False(t, Invert4(inv[:], singular[:]))
	assert.Equal(t, float32(42), inv[0], "output must be untouched for a singular matrix")
}

func TestNormalMatrixUndoesNonUniformScale(t *testing.T) {
	var m, n [16]float32
	BuildModelMatrix(m[:], [3]float32{1, 2, 3}, [3]float32{}, [3]float32{2, 1, 1})
	NormalMatrix(n[:], m[:])

	// A normal along X must shrink by the X scale and stay on X.
	p := TransformPoint(n[:], [3]float32{1, 0, 0})
	assert.InDelta(t, 0.5, p[0], eps)
	assert.InDelta(t, 0, p[1], eps)
	assert.InDelta(t, 0, p[2], eps)
	assert.Equal(t, float32(0), n[12], "normal matrix carries no translation")
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var v [16]float32
	eye := [3]float32{0, 0, 30}
	LookAt(v[:], eye, [3]float32{}, [3]float32{0, 1, 0})

	p := TransformPoint(v[:], eye)
	assert.InDelta(t, 0, p[0], eps)
	assert.InDelta(t, 0, p[1], eps)
	assert.InDelta(t, 0, p[2], eps)

	// The target sits in front of the camera, down the negative view Z axis.
	target := TransformPoint(v[:], [3]float32{})
	assert.InDelta(t, -30, target[2], 1e-4)
}

func TestLookAtEyeOnTargetLooksDownNegativeZ(t *testing.T) {
	var v [16]float32
	LookAt(v[:], [3]float32{}, [3]float32{}, [3]float32{0, 1, 0})
	for i, f := range v {
		assert.Falsef(t, math32.IsNaN(f) || math32.IsInf(f, 0), "element %d not finite", i)
	}

	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	assertMatrixInDelta(t, identity[:], v[:])

	p := TransformPoint(v[:], [3]float32{0, 0, -10})
	assert.InDelta(t, -10, p[2], eps, "points ahead of the camera stay in front of it")
}

func TestLookAtForwardParallelToUp(t *testing.T) {
	var v [16]float32
	LookAt(v[:], [3]float32{0, 10, 0}, [3]float32{}, [3]float32{0, 1, 0})
	for i, f := range v {
		assert.Falsef(t, math32.IsNaN(f) || math32.IsInf(f, 0), "element %d not finite", i)
	}

	// the rotation part stays orthonormal
	for col := range 3 {
		l := v[col*4]*v[col*4] + v[col*4+1]*v[col*4+1] + v[col*4+2]*v[col*4+2]
		assert.InDelta(t, 1, l, 1e-4)
	}
	p := TransformPoint(v[:], [3]float32{})
	assert.InDelta(t, -10, p[2], 1e-3, "the target sits in front of the camera")
}

func TestLookAtUpAlongZ(t *testing.T) {
	var v [16]float32
	LookAt(v[:], [3]float32{0, 0, 5}, [3]float32{}, [3]float32{0, 0, 1})
	p := TransformPoint(v[:], [3]float32{})
	assert.InDelta(t, -5, p[2], 1e-3)
	assert.NotZero(t, v[0]*v[0]+v[4]*v[4]+v[8]*v[8])
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	near, far := float32(0.1), float32(1000)
	Perspective(p[:], DegToRad(75), 16.0/9.0, near, far)

	ndcDepth := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11]*z + p[15]
		return clipZ / clipW
	}
	assert.InDelta(t, 0, ndcDepth(-near), eps)
	assert.InDelta(t, 1, ndcDepth(-far), 1e-4)
}

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, math32.Pi, DegToRad(180), eps)
	assert.InDelta(t, 1.3089969, DegToRad(75), eps)
}

type fixedSource []float32

func (f *fixedSource) Float32() float32 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestRandFloatSpread(t *testing.T) {
	src := fixedSource{0, 0.5, 0.999999}
	assert.InDelta(t, 50, RandFloatSpread(100, &src), eps)
	assert.InDelta(t, 0, RandFloatSpread(100, &src), eps)
	assert.InDelta(t, -50, RandFloatSpread(100, &src), 1e-3)

	rng := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		v := RandFloatSpread(100, rng)
		assert.Greater(t, v, float32(-50))
		assert.LessOrEqual(t, v, float32(50))
	}
}

func TestMaxScale(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{}, [3]float32{0.4, 0.1, 1}, [3]float32{1, 3, 2})
	assert.InDelta(t, 3, MaxScale(m[:]), eps)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes[float32](nil))
	b := SliceToBytes([]uint32{1, 2})
	assert.Len(t, b, 8)

	type pair struct{ A, B float32 }
	assert.Len(t, StructToBytes(&pair{}), 8)
}
