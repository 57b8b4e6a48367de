package common

import "github.com/chewxy/math32"

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix using the
// Gribb/Hartmann method. The projection must map depth to [0, 1], so the near plane is the
// third row alone rather than the sum of the third and fourth rows.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	var f Frustum

	// M[row][col] is at viewProj[col*4+row].
	row := func(r int) [4]float32 {
		return [4]float32{viewProj[r], viewProj[4+r], viewProj[8+r], viewProj[12+r]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	set := func(i int, v [4]float32) {
		f.Planes[i] = Plane{Normal: [3]float32{v[0], v[1], v[2]}, Distance: v[3]}
	}
	set(FrustumLeft, addRows(r3, r0, 1))
	set(FrustumRight, addRows(r3, r0, -1))
	set(FrustumBottom, addRows(r3, r1, 1))
	set(FrustumTop, addRows(r3, r1, -1))
	set(FrustumNear, r2)
	set(FrustumFar, addRows(r3, r2, -1))

	for i := range f.Planes {
		f.normalizePlane(i)
	}
	return f
}

// IntersectsSphere reports whether a bounding sphere is at least partially inside the frustum.
//
// Parameters:
//   - center: the sphere center in world space
//   - radius: the sphere radius
//
// Returns:
//   - bool: false only when the sphere lies entirely outside one of the planes
func (f Frustum) IntersectsSphere(center [3]float32, radius float32) bool {
	for _, p := range f.Planes {
		d := p.Normal[0]*center[0] + p.Normal[1]*center[1] + p.Normal[2]*center[2] + p.Distance
		if d < -radius {
			return false
		}
	}
	return true
}

func addRows(a, b [4]float32, sign float32) [4]float32 {
	return [4]float32{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2], a[3] + sign*b[3]}
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := math32.Sqrt(p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2])
	if length > 0 {
		invLen := 1 / length
		p.Normal[0] *= invLen
		p.Normal[1] *= invLen
		p.Normal[2] *= invLen
		p.Distance *= invLen
	}
}
