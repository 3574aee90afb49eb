package lmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func Eye2() mgl32.Mat2 {
	return mgl32.Ident2()
}

func Eye3() mgl32.Mat3 {
	return mgl32.Ident3()
}

func Eye4() mgl32.Mat4 {
	return mgl32.Ident4()
}

// MatMul returns a*b, so b is applied to a vector first
func MatMul(a, b mgl32.Mat4) mgl32.Mat4 {
	return a.Mul4(b)
}

// PerspectiveMat builds an off-axis perspective frustum. The argument order is
// near, far, left, right, top, bottom.
func PerspectiveMat(n, f, l, r, t, b float32) mgl32.Mat4 {

	// Indices are column*4 + row
	var m mgl32.Mat4
	m[0] = 2 * n / (r - l)
	m[5] = 2 * n / (t - b)
	m[8] = (r + l) / (r - l)
	m[9] = (t + b) / (t - b)
	m[10] = (n + f) / (n - f)
	m[11] = -1
	m[14] = 2 * n * f / (n - f)

	return m
}

// OrthographicMat uses the same argument order as PerspectiveMat
func OrthographicMat(n, f, l, r, t, b float32) mgl32.Mat4 {

	var m mgl32.Mat4
	m[0] = 2 / (r - l)
	m[5] = 2 / (t - b)
	m[10] = 2 / (n - f)
	m[12] = (l + r) / (l - r)
	m[13] = (b + t) / (b - t)
	m[14] = (n + f) / (n - f)
	m[15] = 1

	return m
}

// PerspectiveFov builds a symmetric frustum. fovY is in radians.
func PerspectiveFov(fovY, aspect, n, f float32) mgl32.Mat4 {
	t := n * math32.Tan(fovY/2)
	r := t * aspect
	return PerspectiveMat(n, f, -r, r, t, -t)
}

// LookAt builds a right-handed view matrix with the camera at eye looking at target
func LookAt(eye, target, up mgl32.Vec3) mgl32.Mat4 {

	forward := Normalize3(Subtract3(target, eye))
	right := Normalize3(Cross(forward, up))
	camUp := Cross(right, forward)

	return mgl32.Mat4{
		right[0], camUp[0], -forward[0], 0,
		right[1], camUp[1], -forward[1], 0,
		right[2], camUp[2], -forward[2], 0,
		-right.Dot(eye), -camUp.Dot(eye), forward.Dot(eye), 1,
	}
}

func Translation(x, y, z float32) mgl32.Mat4 {
	m := mgl32.Ident4()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

func Scaling(x, y, z float32) mgl32.Mat4 {
	m := mgl32.Ident4()
	m[0] = x
	m[5] = y
	m[10] = z
	return m
}

// Rotation takes euler angles in radians. X is applied first, then Y, then Z,
// so the result is Rz*Ry*Rx.
func Rotation(x, y, z float32) mgl32.Mat4 {

	sx, cx := math32.Sincos(x)
	sy, cy := math32.Sincos(y)
	sz, cz := math32.Sincos(z)

	rx := mgl32.Mat4{
		1, 0, 0, 0,
		0, cx, sx, 0,
		0, -sx, cx, 0,
		0, 0, 0, 1,
	}

	ry := mgl32.Mat4{
		cy, 0, -sy, 0,
		0, 1, 0, 0,
		sy, 0, cy, 0,
		0, 0, 0, 1,
	}

	rz := mgl32.Mat4{
		cz, sz, 0, 0,
		-sz, cz, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}

	return rz.Mul4(ry).Mul4(rx)
}

// NormalMatrix is the inverse-transpose of the upper 3x3 of model. A singular
// model matrix gives the zero matrix.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}
