package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertIndicesInRange(t *testing.T, g Geometry) {
	t.Helper()
	for _, idx := range g.Indices {
		require.Less(t, int(idx), len(g.Vertices))
	}
}

func assertUnitNormals(t *testing.T, g Geometry) {
	t.Helper()
	for i, v := range g.Vertices {
		n := v.Normal
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		require.InDeltaf(t, 1, l, 1e-4, "vertex %d", i)
	}
}

func TestTorusLayout(t *testing.T) {
	g := Torus(10, 3, 16, 100)

	assert.Len(t, g.Vertices, 17*101)
	assert.Len(t, g.Indices, 16*100*6)
	assert.Equal(t, PrimitiveTriangles, g.Primitive)
	assertIndicesInRange(t, g)
	assertUnitNormals(t, g)

	assert.InDelta(t, 13, ComputeBoundingRadius(g.Vertices), 1e-4)

	// first vertex sits on the outer equator on +X
	assert.InDelta(t, 13, g.Vertices[0].Position[0], 1e-5)
	assert.InDelta(t, 1, g.Vertices[0].Normal[0], 1e-5)
}

func TestSphereLayout(t *testing.T) {
	tests := []struct {
		name          string
		radius        float32
		width, height int
	}{
		{name: "moon", radius: 3, width: 32, height: 32},
		{name: "star", radius: 0.25, width: 24, height: 24},
		{name: "clamped segments", radius: 1, width: 1, height: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Sphere(tt.radius, tt.width, tt.height)
			w, h := max(tt.width, 3), max(tt.height, 2)

			assert.Len(t, g.Vertices, (w+1)*(h+1))
			assert.Len(t, g.Indices, 6*w*(h-1))
			assertIndicesInRange(t, g)
			assertUnitNormals(t, g)
			assert.InDelta(t, tt.radius, ComputeBoundingRadius(g.Vertices), 1e-5)
		})
	}
}

func TestSpherePoleTexCoords(t *testing.T) {
	g := Sphere(1, 4, 2)
	assert.InDelta(t, 0.125, g.Vertices[0].TexCoord[0], 1e-6)
	assert.Equal(t, float32(1), g.Vertices[0].TexCoord[1])

	last := g.Vertices[len(g.Vertices)-1]
	assert.InDelta(t, 1-0.125, last.TexCoord[0], 1e-6)
	assert.Equal(t, float32(0), last.TexCoord[1])
}

func TestBoxLayout(t *testing.T) {
	g := Box(3, 3, 3)

	assert.Len(t, g.Vertices, 24)
	assert.Len(t, g.Indices, 36)
	assertIndicesInRange(t, g)
	assertUnitNormals(t, g)

	for _, v := range g.Vertices {
		for _, c := range v.Position {
			assert.InDelta(t, 1.5, math32.Abs(c), 1e-6)
		}
	}
}

func TestBoxFacesWindOutward(t *testing.T) {
	g := Box(2, 4, 6)
	for tri := 0; tri < len(g.Indices); tri += 3 {
		p0 := g.Vertices[g.Indices[tri]].Position
		p1 := g.Vertices[g.Indices[tri+1]].Position
		p2 := g.Vertices[g.Indices[tri+2]].Position
		n := g.Vertices[g.Indices[tri]].Normal

		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		dot := cross[0]*n[0] + cross[1]*n[1] + cross[2]*n[2]
		assert.Greaterf(t, dot, float32(0), "triangle %d winds inward", tri/3)
	}
}

func TestGrid(t *testing.T) {
	g := Grid(200, 50, common.HexColor(0x444444), common.HexColor(0x888888))

	assert.Equal(t, PrimitiveLines, g.Primitive)
	assert.Len(t, g.Vertices, 51*4)
	assert.Len(t, g.Indices, 51*4)
	assertIndicesInRange(t, g)

	center := common.HexColor(0x444444).Linear()
	// line 25 passes through the origin
	assert.InDelta(t, 0, g.Vertices[25*4].Position[2], 1e-4)
	assert.InDelta(t, center[0], g.Vertices[25*4].Color[0], 1e-6)
	assert.NotEqual(t, g.Vertices[0].Color, g.Vertices[25*4].Color)
	assert.InDelta(t, math32.Sqrt(2)*100, ComputeBoundingRadius(g.Vertices), 1e-3)
}

func TestPointLightHelper(t *testing.T) {
	g := PointLightHelper(1, common.White)

	assert.Equal(t, PrimitiveLines, g.Primitive)
	assert.Len(t, g.Indices, 40)
	assertIndicesInRange(t, g)
	for _, v := range g.Vertices {
		assert.Equal(t, [4]float32{1, 1, 1, 1}, v.Color)
	}

	seen := map[[2]uint32]bool{}
	for i := 0; i < len(g.Indices); i += 2 {
		a, b := g.Indices[i], g.Indices[i+1]
		key := [2]uint32{min(a, b), max(a, b)}
		assert.False(t, seen[key], "duplicate edge %v", key)
		seen[key] = true
	}
}

func TestNewModel(t *testing.T) {
	geometry := Box(3, 3, 3)
	m := NewModel(geometry)

	assert.Equal(t, "box_3_3_3", m.Name())
	assert.Equal(t, 36, m.IndexCount())
	assert.Equal(t, 24, m.VertexCount())
	assert.Len(t, m.VertexData(), 24*48)
	assert.Len(t, m.IndexData(), 36*4)
	assert.InDelta(t, math32.Sqrt(3*1.5*1.5), m.BoundingRadius(), 1e-5)
	require.NotNil(t, m.MeshProvider())
	assert.Equal(t, "box_3_3_3_mesh", m.MeshProvider().Label())
	assert.Equal(t, 36, m.MeshProvider().IndexCount())

	named := NewModel(geometry, WithName("avatar"))
	assert.Equal(t, "avatar", named.Name())
	assert.Equal(t, "avatar_mesh", named.MeshProvider().Label())
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		TexCoord: [2]float32{0.5, 0.25},
		Color:    [4]float32{1, 1, 1, 1},
	}
	assert.Equal(t, 48, v.Size())
	assert.Equal(t, common.StructToBytes(&v), v.Marshal())
}
