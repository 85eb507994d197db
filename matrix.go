package sprite

import (
	"encoding/binary"
	"math"
)

// Mat4 is a 4x4 transformation matrix stored in column-major order,
// matching the memory layout of a WGSL mat4x4<f32> uniform. Element
// (row r, column c) lives at index c*4+r.
//
// Vertex positions are extended to (x, y, 0, 1) and multiplied on the
// left: clip = m * v.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho2D returns an orthographic projection for a width x height
// viewport with the origin at the top-left corner and y increasing
// downward. Depth maps to the [0,1] clip range used by WebGPU; a
// z of 0 lands on the near plane.
//
// A point at (0,0) maps to clip (-1,1), and (width,height) maps
// to clip (1,-1).
func Ortho2D(width, height float32) Mat4 {
	return Mat4{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, 0, 1,
	}
}

// Scale returns a scaling matrix.
func Scale(x, y float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotate returns a rotation matrix around the z axis.
// The angle is in radians; positive angles rotate clockwise in the
// y-down coordinate system.
func Rotate(angle float32) Mat4 {
	cos := float32(math.Cos(float64(angle)))
	sin := float32(math.Sin(float64(angle)))
	return Mat4{
		cos, sin, 0, 0,
		-sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns the matrix product m * n. Applying the result to a
// vector is equivalent to applying n first, then m.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulVec4 multiplies the matrix by a column vector: out = m * v.
func (m Mat4) MulVec4(v [4]float32) [4]float32 {
	var out [4]float32
	for r := 0; r < 4; r++ {
		out[r] = m[0*4+r]*v[0] + m[1*4+r]*v[1] + m[2*4+r]*v[2] + m[3*4+r]*v[3]
	}
	return out
}

// TransformPoint applies the matrix to a 2D point, treating it as
// (x, y, 0, 1), and returns the transformed x and y. The w component
// is ignored; sprite transforms are affine so w stays 1.
func (m Mat4) TransformPoint(p Vec2) Vec2 {
	out := m.MulVec4([4]float32{p.X, p.Y, 0, 1})
	return Vec2{X: out[0], Y: out[1]}
}

// AppendBytes appends the matrix in little-endian column-major order,
// ready for upload into a uniform buffer. The encoding is exactly 64
// bytes.
func (m Mat4) AppendBytes(buf []byte) []byte {
	var tmp [4]byte
	for _, f := range m {
		binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(f))
		buf = append(buf, tmp[:]...)
	}
	return buf
}

// Approx returns true if two matrices are approximately equal within
// epsilon, compared element-wise.
func (m Mat4) Approx(n Mat4, epsilon float32) bool {
	for i := range m {
		if abs32(m[i]-n[i]) >= epsilon {
			return false
		}
	}
	return true
}
