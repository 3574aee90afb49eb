package meshfile

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// GenerateNormals computes smooth per-vertex normals for a triangle list.
//
// Each triangle's face normal is cross(p1-p0, p2-p1). It is added unnormalized
// to the normals of its three vertices, which weights larger faces more, and
// every sum is normalized once all faces are in. Vertices not used by any
// triangle, or whose face normals cancel out, get the zero normal.
//
// Sums are kept in float64 so that coordinates anywhere in the float32 range
// give unit normals.
//
// tris must hold valid indices into positions and have a length that is a
// multiple of 3. Trailing indices that don't form a triangle are ignored.
func GenerateNormals(positions []mgl32.Vec3, tris []uint32) []mgl32.Vec3 {

	sums := make([]mgl64.Vec3, len(positions))
	for i := 0; i+2 < len(tris); i += 3 {

		i0, i1, i2 := tris[i], tris[i+1], tris[i+2]
		p0, p1, p2 := vec64(positions[i0]), vec64(positions[i1]), vec64(positions[i2])

		faceNormal := p1.Sub(p0).Cross(p2.Sub(p1))

		sums[i0] = sums[i0].Add(faceNormal)
		sums[i1] = sums[i1].Add(faceNormal)
		sums[i2] = sums[i2].Add(faceNormal)
	}

	normals := make([]mgl32.Vec3, len(positions))
	for i, s := range sums {

		l := s.Len()
		if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
			continue
		}

		normals[i] = mgl32.Vec3{float32(s[0] / l), float32(s[1] / l), float32(s[2] / l)}
	}

	return normals
}

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
