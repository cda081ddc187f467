package types

// A 4x4 matrix stored as a row-major flat array. The layout matches the
// float16 parameter block consumed by the opencl kernels.
type Mat4 [16]float32

// Create an identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Build a rotation matrix from an orthonormal camera basis. The basis
// vectors [right; up; -front] are embedded into a 4x4 identity; the
// kernel-side ray direction transform depends on this exact layout.
func RotationFromBasis(right, up, front Vec3) Mat4 {
	return Mat4{
		right[0], up[0], -front[0], 0,
		right[1], up[1], -front[1], 0,
		right[2], up[2], -front[2], 0,
		0, 0, 0, 1,
	}
}

// Multiply a 4x4 matrix with a 4 component vector.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}
