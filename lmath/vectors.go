// Package lmath holds the small amount of linear algebra the renderer needs:
// vector helpers, model transforms, and view/projection matrices.
//
// Types are the mgl32 ones. Matrices are column-major, so they are uploaded
// to shaders without transposing.
package lmath

import (
	"cmp"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func Cross(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Add3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Subtract3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale3(a mgl32.Vec3, s float32) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * s, a[1] * s, a[2] * s}
}

// Normalize3 returns v with length 1. The zero vector is returned unchanged
// rather than turning into NaNs.
//
// v is divided by its largest component before squaring, so very large or very
// small vectors don't overflow to Inf or underflow to 0.
func Normalize3(v mgl32.Vec3) mgl32.Vec3 {

	m := maxAbs(v[:])
	if m == 0 || math32.IsInf(m, 0) || math32.IsNaN(m) {
		return v
	}

	x, y, z := v[0]/m, v[1]/m, v[2]/m
	l := math32.Sqrt(x*x + y*y + z*z)
	return mgl32.Vec3{x / l, y / l, z / l}
}

func maxAbs(v []float32) float32 {
	var m float32
	for _, c := range v {
		m = math32.Max(m, math32.Abs(c))
	}
	return m
}

// Normalize is Normalize3 for any length. The input is not modified.
func Normalize(v []float32) []float32 {

	out := make([]float32, len(v))

	m := maxAbs(v)
	if m == 0 || math32.IsInf(m, 0) || math32.IsNaN(m) {
		return out
	}

	var sqLen float32
	for i := 0; i < len(v); i++ {
		out[i] = v[i] / m
		sqLen += out[i] * out[i]
	}

	l := math32.Sqrt(sqLen)
	for i := 0; i < len(out); i++ {
		out[i] /= l
	}

	return out
}

// SphericalToCartesian uses a y-up convention: theta is measured from +Y and
// phi rotates around it starting at +X.
func SphericalToCartesian(r, phi, theta float32) mgl32.Vec3 {
	sinTheta := math32.Sin(theta)
	return mgl32.Vec3{
		r * sinTheta * math32.Cos(phi),
		r * math32.Cos(theta),
		r * sinTheta * math32.Sin(phi),
	}
}

// Clamp limits v to [bottom, top]. The top bound is checked first, so with
// bottom > top values above top give top and everything else gives bottom.
func Clamp[T cmp.Ordered](v, bottom, top T) T {
	if v > top {
		return top
	}
	if v < bottom {
		return bottom
	}
	return v
}

func ClampMin[T cmp.Ordered](v, bottom T) T {
	if v < bottom {
		return bottom
	}
	return v
}

func ClampMax[T cmp.Ordered](v, top T) T {
	if v > top {
		return top
	}
	return v
}

func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
