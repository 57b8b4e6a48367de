package model

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Torus generates a closed torus in the XY plane centered on the origin.
// Vertices form a (radialSegments+1) x (tubularSegments+1) grid; the seam vertices are
// duplicated so texture coordinates wrap cleanly.
//
// Parameters:
//   - radius: distance from the torus center to the center of the tube
//   - tube: radius of the tube
//   - radialSegments: segments around the tube cross-section
//   - tubularSegments: segments around the ring
//
// Returns:
//   - Geometry: the triangle mesh
func Torus(radius, tube float32, radialSegments, tubularSegments int) Geometry {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)

	g := Geometry{
		Name:     fmt.Sprintf("torus_%g_%g_%d_%d", radius, tube, radialSegments, tubularSegments),
		Vertices: make([]GPUVertex, 0, (radialSegments+1)*(tubularSegments+1)),
		Indices:  make([]uint32, 0, radialSegments*tubularSegments*6),
	}

	for j := 0; j <= radialSegments; j++ {
		v := float32(j) / float32(radialSegments) * 2 * math32.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * 2 * math32.Pi

			center := [3]float32{radius * math32.Cos(u), radius * math32.Sin(u), 0}
			pos := [3]float32{
				(radius + tube*math32.Cos(v)) * math32.Cos(u),
				(radius + tube*math32.Cos(v)) * math32.Sin(u),
				tube * math32.Sin(v),
			}
			g.Vertices = append(g.Vertices, GPUVertex{
				Position: pos,
				Normal:   normalize([3]float32{pos[0] - center[0], pos[1] - center[1], pos[2] - center[2]}),
				TexCoord: [2]float32{float32(i) / float32(tubularSegments), float32(j) / float32(radialSegments)},
				Color:    [4]float32{1, 1, 1, 1},
			})
		}
	}

	row := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// Sphere generates a UV sphere centered on the origin. The pole rows skip their degenerate
// triangles and shift their u coordinate half a segment so each pole triangle samples the
// middle of its texture column.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: horizontal segments (minimum 3)
//   - heightSegments: vertical segments (minimum 2)
//
// Returns:
//   - Geometry: the triangle mesh
func Sphere(radius float32, widthSegments, heightSegments int) Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	g := Geometry{
		Name:     fmt.Sprintf("sphere_%g_%d_%d", radius, widthSegments, heightSegments),
		Vertices: make([]GPUVertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint32, 0, widthSegments*(heightSegments-1)*6),
	}

	grid := make([][]uint32, heightSegments+1)
	var index uint32
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		theta := v * math32.Pi

		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi

			pos := [3]float32{
				-radius * math32.Cos(phi) * math32.Sin(theta),
				radius * math32.Cos(theta),
				radius * math32.Sin(phi) * math32.Sin(theta),
			}
			g.Vertices = append(g.Vertices, GPUVertex{
				Position: pos,
				Normal:   normalize(pos),
				TexCoord: [2]float32{u + uOffset, 1 - v},
				Color:    [4]float32{1, 1, 1, 1},
			})
			grid[iy][ix] = index
			index++
		}
	}

	for iy := range heightSegments {
		for ix := range widthSegments {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// Box generates an axis-aligned box centered on the origin with one quad per face.
// Each face has its own four vertices so normals and texture coordinates stay per face,
// and every face maps the full texture.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//
// Returns:
//   - Geometry: the triangle mesh
func Box(width, height, depth float32) Geometry {
	g := Geometry{
		Name:     fmt.Sprintf("box_%g_%g_%g", width, height, depth),
		Vertices: make([]GPUVertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	const x, y, z = 0, 1, 2
	g.boxFace(z, y, x, -1, -1, depth, height, width)  // +X
	g.boxFace(z, y, x, 1, -1, depth, height, -width)  // -X
	g.boxFace(x, z, y, 1, 1, width, depth, height)    // +Y
	g.boxFace(x, z, y, 1, -1, width, depth, -height)  // -Y
	g.boxFace(x, y, z, 1, -1, width, height, depth)   // +Z
	g.boxFace(x, y, z, -1, -1, width, height, -depth) // -Z
	return g
}

// boxFace appends one face of a box. u and v name the in-plane axes, w the face normal axis;
// udir and vdir flip the in-plane axes so every face winds counter-clockwise seen from outside.
func (g *Geometry) boxFace(u, v, w int, udir, vdir, width, height, depth float32) {
	base := uint32(len(g.Vertices))
	normalSign := float32(1)
	if depth < 0 {
		normalSign = -1
	}

	for iy := range 2 {
		py := float32(iy)*height - height/2
		for ix := range 2 {
			px := float32(ix)*width - width/2

			var pos, normal [3]float32
			pos[u] = px * udir
			pos[v] = py * vdir
			pos[w] = depth / 2
			normal[w] = normalSign

			g.Vertices = append(g.Vertices, GPUVertex{
				Position: pos,
				Normal:   normal,
				TexCoord: [2]float32{float32(ix), 1 - float32(iy)},
				Color:    [4]float32{1, 1, 1, 1},
			})
		}
	}

	a := base
	b := base + 2
	c := base + 3
	d := base + 1
	g.Indices = append(g.Indices, a, b, d, b, c, d)
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
