package meshes

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wienergl/wiener/buffers"
)

func v3(x, y, z float32) gglm.Vec3 {
	return gglm.Vec3{Data: [3]float32{x, y, z}}
}

func TestLayoutForStride(t *testing.T) {

	tests := []struct {
		stride int
		types  []buffers.ElementType
	}{
		{3, []buffers.ElementType{buffers.DataTypeVec3}},
		{5, []buffers.ElementType{buffers.DataTypeVec3, buffers.DataTypeVec2}},
		{6, []buffers.ElementType{buffers.DataTypeVec3, buffers.DataTypeVec3}},
		{8, []buffers.ElementType{buffers.DataTypeVec3, buffers.DataTypeVec3, buffers.DataTypeVec2}},
		{9, []buffers.ElementType{buffers.DataTypeVec3, buffers.DataTypeVec3, buffers.DataTypeVec3}},
	}

	for _, tt := range tests {
		layout, err := LayoutForStride(tt.stride)
		require.NoError(t, err, tt.stride)
		require.Len(t, layout, len(tt.types))

		var floats int32
		for i, e := range layout {
			assert.Equal(t, tt.types[i], e.ElementType)
			floats += e.ElementType.CompCount()
		}
		assert.EqualValues(t, tt.stride, floats)
	}

	for _, stride := range []int{0, 1, 4, 7, 12} {
		_, err := LayoutForStride(stride)
		assert.Error(t, err, stride)
	}
}

func TestInterleaveKeepsNormals(t *testing.T) {

	positions := []gglm.Vec3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0)}
	normals := []gglm.Vec3{v3(0, 0, 1), v3(0, 0, 1), v3(1, 0, 0)}

	out := interleavePosNormal(positions, normals, []uint32{0, 1, 2})
	assert.Equal(t, []float32{
		0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 1,
		0, 1, 0, 1, 0, 0,
	}, out)
}

func TestInterleaveGeneratesMissingNormals(t *testing.T) {

	positions := []gglm.Vec3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0), v3(5, 5, 5)}

	out := interleavePosNormal(positions, nil, []uint32{0, 1, 2})
	require.Len(t, out, 24)

	assert.Equal(t, []float32{0, 0, 1}, out[3:6])
	assert.Equal(t, []float32{0, 0, 1}, out[9:12])
	assert.Equal(t, []float32{0, 0, 1}, out[15:18])

	// Not part of any triangle
	assert.Equal(t, []float32{5, 5, 5, 0, 0, 0}, out[18:24])
}

func TestFitMatrix(t *testing.T) {

	m := &Mesh{
		BoundsMin: mgl32.Vec3{2, -1, 0},
		BoundsMax: mgl32.Vec3{6, 1, 1},
	}

	fit := m.FitMatrix(2)

	lo := fit.Mul4x1(m.BoundsMin.Vec4(1)).Vec3()
	hi := fit.Mul4x1(m.BoundsMax.Vec4(1)).Vec3()
	assert.True(t, lo.ApproxEqual(mgl32.Vec3{-1, -0.5, -0.25}), "%v", lo)
	assert.True(t, hi.ApproxEqual(mgl32.Vec3{1, 0.5, 0.25}), "%v", hi)

	empty := &Mesh{}
	assert.Equal(t, mgl32.Ident4(), empty.FitMatrix(2))
}

func TestMergeSubMeshes(t *testing.T) {

	tri := subMeshSource{
		Positions: []gglm.Vec3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0)},
		Indices:   []uint32{0, 1, 2},
	}

	quad := subMeshSource{
		Positions: []gglm.Vec3{v3(0, 0, 5), v3(1, 0, 5), v3(1, 1, 5), v3(0, 1, 5)},
		Normals:   []gglm.Vec3{v3(0, 1, 0), v3(0, 1, 0), v3(0, 1, 0), v3(0, 1, 0)},
		Indices:   []uint32{0, 1, 2, 2, 3, 0},
	}

	md, subMeshes := mergeSubMeshes([]subMeshSource{tri, quad})
	require.NoError(t, md.Validate())

	assert.Equal(t, 6, md.Stride)
	assert.Equal(t, 7, md.VertexCount())
	assert.Equal(t, []SubMesh{
		{BaseVertex: 0, BaseIndex: 0, IndexCount: 3},
		{BaseVertex: 3, BaseIndex: 3, IndexCount: 6},
	}, subMeshes)

	// Indices stay local to their submesh
	assert.Equal(t, []uint32{0, 1, 2, 0, 1, 2, 2, 3, 0}, md.Indices)

	// Every index of a submesh plus its base vertex lands on that submesh's own vertex
	for _, sm := range subMeshes[1:] {
		for i := sm.BaseIndex; i < sm.BaseIndex+uint32(sm.IndexCount); i++ {
			local := md.Indices[i]
			global := int(sm.BaseVertex) + int(local)
			v := md.Vertices[global*md.Stride : (global+1)*md.Stride]
			assert.Equal(t, quad.Positions[local].Data[:], v[:3], "index %d", i)
			assert.Equal(t, []float32{0, 1, 0}, v[3:6], "index %d", i)
		}
	}

	// The triangle had no normals, so they were generated
	assert.Equal(t, []float32{0, 0, 1}, md.Vertices[3:6])

	min, max, err := md.Bounds()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, min)
	assert.Equal(t, mgl32.Vec3{1, 1, 5}, max)
}

func TestMergeSingleSubMesh(t *testing.T) {

	md, subMeshes := mergeSubMeshes([]subMeshSource{{
		Positions: []gglm.Vec3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0)},
		Indices:   []uint32{0, 1, 2},
	}})

	require.Len(t, subMeshes, 1)
	assert.Equal(t, SubMesh{IndexCount: 3}, subMeshes[0])
	assert.Equal(t, 3, md.VertexCount())
}
