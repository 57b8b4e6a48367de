package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// Grid generates a square line grid on the XZ plane centered on the origin.
// The two lines through the center use centerColor, every other line gridColor.
//
// Parameters:
//   - size: edge length of the grid
//   - divisions: number of cells along each edge
//   - centerColor: sRGB color of the center lines
//   - gridColor: sRGB color of the remaining lines
//
// Returns:
//   - Geometry: the line mesh
func Grid(size float32, divisions int, centerColor, gridColor common.Color) Geometry {
	divisions = max(divisions, 1)
	center := divisions / 2
	step := size / float32(divisions)
	half := size / 2

	g := Geometry{
		Name:      fmt.Sprintf("grid_%g_%d", size, divisions),
		Primitive: PrimitiveLines,
		Vertices:  make([]GPUVertex, 0, (divisions+1)*4),
		Indices:   make([]uint32, 0, (divisions+1)*4),
	}

	centerLin, gridLin := centerColor.Linear(), gridColor.Linear()
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		c := gridLin
		if i == center {
			c = centerLin
		}
		color := [4]float32{c[0], c[1], c[2], 1}
		for _, p := range [4][3]float32{{-half, 0, k}, {half, 0, k}, {k, 0, -half}, {k, 0, half}} {
			g.Indices = append(g.Indices, uint32(len(g.Vertices)))
			g.Vertices = append(g.Vertices, GPUVertex{Position: p, Normal: [3]float32{0, 1, 0}, Color: color})
		}
	}
	return g
}

// PointLightHelper generates the marker drawn at a point light: the wireframe of a coarse
// sphere (4 x 2 segments) of the given size, tinted with the light's color.
//
// Parameters:
//   - size: radius of the marker sphere
//   - color: sRGB color of the light
//
// Returns:
//   - Geometry: the line mesh
func PointLightHelper(size float32, color common.Color) Geometry {
	g := Wireframe(Sphere(size, 4, 2))
	g.Name = fmt.Sprintf("point_light_helper_%g", size)
	g.SetColor(color)
	return g
}

// Wireframe converts a triangle geometry into a line geometry with one line per unique
// triangle edge. Edges are identified by vertex index, so seam duplicates keep their own edges.
//
// Parameters:
//   - src: the triangle mesh
//
// Returns:
//   - Geometry: the line mesh sharing src's vertex values
func Wireframe(src Geometry) Geometry {
	g := Geometry{
		Name:      src.Name + "_wireframe",
		Primitive: PrimitiveLines,
		Vertices:  append([]GPUVertex(nil), src.Vertices...),
	}

	seen := make(map[[2]uint32]struct{}, len(src.Indices))
	for t := 0; t+2 < len(src.Indices); t += 3 {
		tri := src.Indices[t : t+3]
		for e := range 3 {
			a, b := tri[e], tri[(e+1)%3]
			key := [2]uint32{min(a, b), max(a, b)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			g.Indices = append(g.Indices, a, b)
		}
	}
	return g
}
