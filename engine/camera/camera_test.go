package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, [3]float32{}, c.Position())
	assert.Equal(t, [3]float32{0, 0, -1}, c.Target())
	assert.Equal(t, [3]float32{0, 1, 0}, c.Up())
	assert.InDelta(t, common.DegToRad(50), c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	require.NotNil(t, c.BindGroupProvider())
	assert.Contains(t, c.BindGroupProvider().Label(), "camera_")
}

func TestCameraUpdateProjectsTargetToCenter(t *testing.T) {
	c := NewCamera(
		WithFov(common.DegToRad(75)),
		WithAspect(16.0/9.0),
		WithClipPlanes(0.1, 1000),
		WithPosition(0, 0, 30),
		WithTarget(0, 0, 0),
	)
	c.Update()

	vp := c.ViewProjectionMatrix()
	clip := [4]float32{vp[12], vp[13], vp[14], vp[15]} // origin through the matrix
	require.Greater(t, clip[3], float32(0))
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-5)
	assert.InDelta(t, 0, clip[1]/clip[3], 1e-5)

	z := clip[2] / clip[3]
	assert.Greater(t, z, float32(0))
	assert.Less(t, z, float32(1))

	assert.True(t, c.Frustum().IntersectsSphere([3]float32{}, 1))
	assert.False(t, c.Frustum().IntersectsSphere([3]float32{0, 0, 60}, 1))
}

func TestCameraPositionNeedsUpdate(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 30), WithTarget(0, 0, 0))
	before := c.ViewMatrix()

	c.SetPosition(0, 0, 50)
	assert.Equal(t, before, c.ViewMatrix())

	c.Update()
	assert.NotEqual(t, before, c.ViewMatrix())
	assert.Equal(t, [3]float32{0, 0, 50}, c.Uniform().CameraPosition)
}

func TestCameraSetAspect(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())

	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())

	p := c.ProjectionMatrix()
	assert.InDelta(t, p[5]/2, p[0], 1e-6)
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	u := GPUCameraUniform{CameraPosition: [3]float32{1, 2, 3}}
	common.Identity(u.ViewProj[:])

	buf := u.Marshal()
	assert.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
	assert.Equal(t, common.StructToBytes(&u), buf)
}
