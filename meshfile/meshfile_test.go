package meshfile

import (
	"io"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func assertVec3(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, want.ApproxEqualThreshold(got, eps), "want %v got %v %v", want, got, msgAndArgs)
}

func TestGenerateNormalsSingleTriangle(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

	normals := GenerateNormals(positions, []uint32{0, 1, 2})
	require.Len(t, normals, 3)
	for i, n := range normals {
		assertVec3(t, mgl32.Vec3{0, 0, 1}, n, i)
	}

	// Flipping the winding flips the normal
	normals = GenerateNormals(positions, []uint32{0, 2, 1})
	assertVec3(t, mgl32.Vec3{0, 0, -1}, normals[0])
}

func TestGenerateNormalsAreaWeighted(t *testing.T) {
	positions := []mgl32.Vec3{
		{0, 0, 0},
		{2, 0, 0}, {0, 2, 0}, // large triangle facing +Z
		{0, 0, 1}, {0, 1, 0}, // small triangle facing -X
	}

	normals := GenerateNormals(positions, []uint32{0, 1, 2, 0, 3, 4})

	// The face normals are (0,0,4) and (-1,0,0). Summing before normalizing
	// gives the larger face more weight.
	want := mgl32.Vec3{-1, 0, 4}.Mul(1 / math32.Sqrt(17))
	assertVec3(t, want, normals[0])

	assertVec3(t, mgl32.Vec3{0, 0, 1}, normals[1])
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, normals[3])
}

func TestGenerateNormalsZeroCases(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {5, 5, 5}}

	// The same triangle with both windings cancels out, and vertex 3 is unused
	normals := GenerateNormals(positions, []uint32{0, 1, 2, 0, 2, 1})
	for i, n := range normals {
		assert.Equal(t, mgl32.Vec3{}, n, i)
	}

	// Degenerate triangle with collinear points
	normals = GenerateNormals([]mgl32.Vec3{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}, []uint32{0, 1, 2})
	for _, n := range normals {
		assert.False(t, math32.IsNaN(n[0]) || math32.IsNaN(n[1]) || math32.IsNaN(n[2]))
		assert.Equal(t, mgl32.Vec3{}, n)
	}

	assert.Empty(t, GenerateNormals(nil, nil))
}

const quadOFF = `OFF
4 1 0
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`

func TestReadOFFQuad(t *testing.T) {
	md, err := ReadOFF(strings.NewReader(quadOFF))
	require.NoError(t, err)

	assert.Equal(t, OFFStride, md.Stride)
	assert.Equal(t, 4, md.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, md.Indices)
	require.NoError(t, md.Validate())

	for i := 0; i < md.VertexCount(); i++ {
		v := md.Vertices[i*OFFStride : (i+1)*OFFStride]
		assertVec3(t, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{v[3], v[4], v[5]}, i)
	}

	assert.Equal(t, []float32{1, 1, 0}, md.Vertices[12:15])
}

func TestReadOFFFormatting(t *testing.T) {
	src := "# leading comment\r\n" +
		"\r\n" +
		"OFF 3 1 3\r\n" +
		"0 0 0 # origin\r\n" +
		"1 0 0 0.5 0.5 0.5\r\n" +
		"\r\n" +
		"0 1 0\r\n" +
		"3 0 1 2 255 0 0\r\n"

	md, err := ReadOFF(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, md.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2}, md.Indices)
	assert.Equal(t, []float32{1, 0, 0}, md.Vertices[6:9])
}

func TestGenerateNormalsExtremeCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		scale float32
	}{
		{"unit", 1},
		{"huge", 1e10},
		{"near max", 1e38},
		{"tiny", 1e-12},
		{"near min", 1e-30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.scale
			positions := []mgl32.Vec3{{0, 0, 0}, {s, 0, 0}, {0, s, 0}, {s, s, 0}}

			normals := GenerateNormals(positions, []uint32{0, 1, 2, 1, 3, 2})
			for i, n := range normals {
				assertVec3(t, mgl32.Vec3{0, 0, 1}, n, i)
			}
		})
	}
}

func TestReadOFFHeaderCountsBeyondInput(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errText string
	}{
		{"huge vertex count", "OFF\n3000000000 0 0\n", "reading vertex 0 of 3000000000"},
		{"huge face count", "OFF\n3 3000000000 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n", "reading face 1 of 3000000000"},
		{"huge counts on header line", "OFF 3000000000 3000000000 0\n", "reading vertex 0"},
		{"huge face size", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3000000000 0 1 2\n", "lists 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOFF(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}

	_, err := ReadOFF(strings.NewReader("OFF\n3000000000 0 0\n"))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadOFFExtremeCoordinates(t *testing.T) {
	src := "OFF\n3 1 0\n0 0 0\n1e30 0 0\n0 1e30 0\n3 0 1 2\n"

	md, err := ReadOFF(strings.NewReader(src))
	require.NoError(t, err)
	for i := 0; i < md.VertexCount(); i++ {
		v := md.Vertices[i*OFFStride : (i+1)*OFFStride]
		assertVec3(t, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{v[3], v[4], v[5]}, i)
	}
}

func TestReadOFFErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errText string
	}{
		{"empty", "", ""},
		{"wrong header", "PLY\n3 1 0\n", ""},
		{"missing counts", "OFF\n", "missing vertex and face counts"},
		{"short counts", "OFF\n3\n", "expected"},
		{"bad count", "OFF\nthree 1 0\n", "bad vertex count"},
		{"negative count", "OFF\n-3 1 0\n", "can't be negative"},
		{"truncated vertices", "OFF\n3 1 0\n0 0 0\n1 0 0\n", "reading vertex 2"},
		{"short vertex", "OFF\n3 1 0\n0 0\n1 0 0\n0 1 0\n3 0 1 2\n", "needs 3 coordinates"},
		{"bad coordinate", "OFF\n3 1 0\n0 0 x\n1 0 0\n0 1 0\n3 0 1 2\n", "bad vertex coordinate"},
		{"truncated faces", "OFF\n3 2 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n", "reading face 1"},
		{"face too small", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n2 0 1\n", "at least 3 vertices"},
		{"face missing indices", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n4 0 1 2\n", "lists 3"},
		{"index out of range", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 3\n", "out of range"},
		{"bad index", "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 -2\n", "bad face index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOFF(strings.NewReader(tt.src))
			require.Error(t, err)

			if tt.errText == "" {
				assert.ErrorIs(t, err, ErrNotOFF)
				return
			}
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadOFF(t *testing.T) {
	md, err := LoadOFF("testdata/tetrahedron.off")
	require.NoError(t, err)
	require.NoError(t, md.Validate())

	assert.Equal(t, 4, md.VertexCount())
	assert.Len(t, md.Indices, 12)

	// Every vertex of a closed mesh gets a unit normal pointing away from the centroid
	centroid := mgl32.Vec3{0.25, 0.25, 0.25}
	for i := 0; i < md.VertexCount(); i++ {
		v := md.Vertices[i*OFFStride : (i+1)*OFFStride]
		p := mgl32.Vec3{v[0], v[1], v[2]}
		n := mgl32.Vec3{v[3], v[4], v[5]}

		assert.InDelta(t, 1, n.Len(), eps, i)
		assert.Greater(t, n.Dot(p.Sub(centroid)), float32(0), i)
	}

	_, err = LoadOFF("testdata/missing.off")
	assert.Error(t, err)
}

func TestMeshDataHelpers(t *testing.T) {
	md, err := ReadOFF(strings.NewReader(quadOFF))
	require.NoError(t, err)

	min, max, err := md.Bounds()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, min)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, max)

	colored := md.WithColor(1, 0.5, 0)
	assert.Equal(t, OFFStride+3, colored.Stride)
	assert.Equal(t, md.VertexCount(), colored.VertexCount())
	assert.Equal(t, md.Indices, colored.Indices)
	assert.Equal(t, []float32{1, 0.5, 0}, colored.Vertices[6:9])
	assert.Equal(t, md.Vertices[6:12], colored.Vertices[9:15])
	require.NoError(t, colored.Validate())

	positions, err := md.Positions()
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, positions)

	empty := MeshData{Stride: 3}
	min, max, err = empty.Bounds()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{}, min)
	assert.Equal(t, mgl32.Vec3{}, max)
}

func TestMeshDataShortStride(t *testing.T) {
	for _, stride := range []int{-1, 0, 1, 2} {
		md := MeshData{Vertices: []float32{1, 2, 3, 4, 5, 6}, Stride: stride}

		_, err := md.Positions()
		assert.ErrorContains(t, err, "stride must be at least 3", stride)

		_, _, err = md.Bounds()
		assert.ErrorContains(t, err, "stride must be at least 3", stride)

		assert.Error(t, md.Validate(), stride)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		md   MeshData
		ok   bool
	}{
		{"ok", MeshData{Vertices: make([]float32, 9), Indices: []uint32{0, 1, 2}, Stride: 3}, true},
		{"small stride", MeshData{Vertices: make([]float32, 4), Stride: 2}, false},
		{"stride mismatch", MeshData{Vertices: make([]float32, 10), Stride: 3}, false},
		{"partial triangle", MeshData{Vertices: make([]float32, 9), Indices: []uint32{0, 1}, Stride: 3}, false},
		{"index out of range", MeshData{Vertices: make([]float32, 9), Indices: []uint32{0, 1, 3}, Stride: 3}, false},
	}

	for _, tt := range tests {
		err := tt.md.Validate()
		if tt.ok {
			assert.NoError(t, err, tt.name)
		} else {
			assert.Error(t, err, tt.name)
		}
	}
}
