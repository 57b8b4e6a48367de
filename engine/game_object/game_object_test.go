package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithModel(model.NewModel(model.Box(3, 3, 3))))

	assert.True(t, obj.Enabled())
	assert.Equal(t, "box_3_3_3", obj.Name())
	sx, sy, sz := obj.Scale()
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32{sx, sy, sz})
	x, y, z := obj.Position()
	assert.Equal(t, [3]float32{}, [3]float32{x, y, z})
	require.NotNil(t, obj.BindGroupProvider())
	assert.Equal(t, "box_3_3_3_object", obj.BindGroupProvider().Label())
}

func TestGameObjectOptions(t *testing.T) {
	mat := material.NewMaterial(material.MaterialTypeBasic)
	obj := NewGameObject(
		WithID(7),
		WithName("avatar"),
		WithMaterial(mat),
		WithPosition(1, 2, 3),
		WithRotation(0.1, 0.2, 0.3),
		WithScale(2, 2, 2),
		WithEnabled(false),
	)

	assert.Equal(t, uint64(7), obj.ID())
	assert.Equal(t, "avatar", obj.Name())
	assert.Same(t, mat, obj.Material())
	assert.False(t, obj.Enabled())
	rx, ry, rz := obj.Rotation()
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, [3]float32{rx, ry, rz})
}

func TestRotateAccumulates(t *testing.T) {
	obj := NewGameObject(WithName("moon"))
	for range 3 {
		obj.Rotate(0.05, 0.075, 0.05)
	}
	rx, ry, rz := obj.Rotation()
	assert.InDelta(t, 0.15, rx, 1e-6)
	assert.InDelta(t, 0.225, ry, 1e-6)
	assert.InDelta(t, 0.15, rz, 1e-6)
}

func TestModelMatrix(t *testing.T) {
	obj := NewGameObject(WithName("moon"), WithPosition(-10, 0, 30))
	obj.SetRotation(0, math32.Pi/2, 0)

	m := obj.ModelMatrix()
	p := common.TransformPoint(m[:], [3]float32{1, 0, 0})
	assert.InDelta(t, -10, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, 29, p[2], 1e-5)
}

func TestUniformNormalMatrix(t *testing.T) {
	obj := NewGameObject(WithName("scaled"), WithScale(2, 4, 8))
	u := obj.Uniform()

	assert.Equal(t, float32(2), u.Model[0])
	assert.InDelta(t, 0.5, u.NormalMatrix[0], 1e-6)
	assert.InDelta(t, 0.25, u.NormalMatrix[5], 1e-6)
	assert.InDelta(t, 0.125, u.NormalMatrix[10], 1e-6)
	assert.Equal(t, float32(1), u.NormalMatrix[15])
}

func TestBoundingSphere(t *testing.T) {
	obj := NewGameObject(
		WithModel(model.NewModel(model.Sphere(3, 32, 32))),
		WithPosition(-10, 0, 30),
		WithScale(1, 2, 1),
	)
	center, radius := obj.BoundingSphere()
	assert.Equal(t, [3]float32{-10, 0, 30}, center)
	assert.InDelta(t, 6, radius, 1e-4)

	empty := NewGameObject(WithName("empty"))
	_, radius = empty.BoundingSphere()
	assert.Equal(t, float32(0), radius)
}

func TestAttachedLightDrivesPosition(t *testing.T) {
	l := light.NewLight(light.LightTypePoint, light.WithPosition(5, 5, 5))
	helper := NewGameObject(WithName("helper"), WithLight(l))

	x, y, z := helper.Position()
	assert.Equal(t, [3]float32{5, 5, 5}, [3]float32{x, y, z})

	l.SetPosition(1, 2, 3)
	m := helper.ModelMatrix()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{m[12], m[13], m[14]})

	helper.SetLight(nil)
	helper.SetPosition(9, 9, 9)
	x, y, z = helper.Position()
	assert.Equal(t, [3]float32{9, 9, 9}, [3]float32{x, y, z})
}

func TestGPUObjectUniformMarshal(t *testing.T) {
	u := NewGameObject(WithName("torus"), WithRotation(0.3, 0.2, 0.1)).Uniform()
	assert.Equal(t, 128, u.Size())
	assert.Equal(t, common.StructToBytes(&u), u.Marshal())
}
