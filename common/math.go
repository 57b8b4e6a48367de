package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Float32Source is the minimal random source used for procedural placement.
// *rand.Rand from math/rand/v2 satisfies it.
type Float32Source interface {
	// Float32 returns a pseudo-random number in the half-open interval [0.0, 1.0).
	Float32() float32
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// DegToRad converts an angle in degrees to radians.
//
// Parameters:
//   - deg: the angle in degrees
//
// Returns:
//   - float32: the angle in radians
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// RandFloatSpread returns a random float in the interval (-spread/2, spread/2].
// It mirrors the spread helper used to scatter objects symmetrically around the origin.
//
// Parameters:
//   - spread: the total width of the interval
//   - rng: the random source
//
// Returns:
//   - float32: a value centered on zero
func RandFloatSpread(spread float32, rng Float32Source) float32 {
	return spread * (0.5 - rng.Float32())
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order. Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements, may alias a or b)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix targeting the WebGPU clip space,
// where depth is mapped to [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
	out[15] = 0
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// Rotations are intrinsic in X, Y, Z order, so the rotation matrix is Rx * Ry * Rz.
// This matches the default Euler order of scene-graph objects, which the scroll and frame
// handlers rely on when they add to individual rotation axes.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - rot: rotation angles in radians around X, Y and Z
//   - scale: scale factors along each axis
func BuildModelMatrix(out []float32, pos, rot, scale [3]float32) {
	a, b := math32.Cos(rot[0]), math32.Sin(rot[0])
	c, d := math32.Cos(rot[1]), math32.Sin(rot[1])
	e, f := math32.Cos(rot[2]), math32.Sin(rot[2])

	ae, af, be, bf := a*e, a*f, b*e, b*f

	out[0] = c * e * scale[0]
	out[1] = (af + be*d) * scale[0]
	out[2] = (bf - ae*d) * scale[0]
	out[3] = 0

	out[4] = -c * f * scale[1]
	out[5] = (ae - bf*d) * scale[1]
	out[6] = (be + af*d) * scale[1]
	out[7] = 0

	out[8] = d * scale[2]
	out[9] = -b * c * scale[2]
	out[10] = a * c * scale[2]
	out[11] = 0

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
}

// NormalMatrix computes the matrix used to transform normals: the inverse transpose of the
// upper 3x3 of the model matrix, embedded in a 4x4 with no translation. When the model matrix
// is singular the identity is written.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - model: the model matrix (16 elements, column-major)
func NormalMatrix(out, model []float32) {
	var inv [16]float32
	if !Invert4(inv[:], model) {
		Identity(out)
		return
	}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			out[col*4+row] = inv[row*4+col]
		}
	}
	out[3], out[7], out[11] = 0, 0, 0
	out[12], out[13], out[14], out[15] = 0, 0, 0, 1
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular the output is left
// unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}
	invDet := 1 / det

	var r [16]float32
	r[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	r[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	r[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	r[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	r[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	r[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	r[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	r[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	r[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	r[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	r[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	r[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	r[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	r[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	r[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	r[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	copy(out, r[:])
	return true
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view space.
// A camera sitting on its target looks down -Z, and a forward axis parallel to up is
// nudged off it, so the basis never collapses.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up [3]float32) {
	z := [3]float32{eye[0] - center[0], eye[1] - center[1], eye[2] - center[2]}
	if lengthSq(z) == 0 {
		z[2] = 1
	}
	z = normalize(z)

	x := cross(up, z)
	if lengthSq(x) == 0 {
		if math32.Abs(up[2]) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = normalize(z)
		x = cross(up, z)
	}
	x = normalize(x)
	y := cross(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -(x[0]*eye[0] + x[1]*eye[1] + x[2]*eye[2])
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -(y[0]*eye[0] + y[1]*eye[1] + y[2]*eye[2])
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -(z[0]*eye[0] + z[1]*eye[1] + z[2]*eye[2])
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// TransformPoint multiplies a point (w = 1) by a column-major 4x4 matrix, without
// the perspective divide.
//
// Parameters:
//   - m: the matrix (16 elements)
//   - p: the point
//
// Returns:
//   - [3]float32: the transformed point
func TransformPoint(m []float32, p [3]float32) [3]float32 {
	return [3]float32{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// MaxScale returns the largest axis scale encoded in a column-major model matrix.
// Used to grow bounding spheres under non-uniform scale.
//
// Parameters:
//   - m: the model matrix (16 elements)
//
// Returns:
//   - float32: the largest column length of the upper 3x3
func MaxScale(m []float32) float32 {
	sx := m[0]*m[0] + m[1]*m[1] + m[2]*m[2]
	sy := m[4]*m[4] + m[5]*m[5] + m[6]*m[6]
	sz := m[8]*m[8] + m[9]*m[9] + m[10]*m[10]
	return math32.Sqrt(math32.Max(sx, math32.Max(sy, sz)))
}

func lengthSq(v [3]float32) float32 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// normalize scales v to unit length. A zero vector is returned unchanged.
func normalize(v [3]float32) [3]float32 {
	l := lengthSq(v)
	if l == 0 {
		return v
	}
	inv := 1 / math32.Sqrt(l)
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
