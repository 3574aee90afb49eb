package meshes

import (
	"errors"
	"fmt"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/wienergl/wiener/buffers"
	"github.com/wienergl/wiener/meshfile"
	"github.com/wienergl/wiener/shaders"
)

// ModelLoadFlags are always applied when importing through assimp
var ModelLoadFlags asig.PostProcess = asig.PostProcessTriangulate

var errNoIndices = errors.New("mesh has no indices")

// LayoutForStride returns the attribute layout used for MeshData of the given stride:
//   - 3: position
//   - 5: position, uv
//   - 6: position, normal
//   - 8: position, normal, uv
//   - 9: position, normal, color
func LayoutForStride(stride int) ([]buffers.Element, error) {

	switch stride {
	case 3:
		return buffers.LayoutFromSizes(3), nil
	case 5:
		return buffers.LayoutFromSizes(3, 2), nil
	case 6:
		return buffers.LayoutFromSizes(3, 3), nil
	case 8:
		return buffers.LayoutFromSizes(3, 3, 2), nil
	case 9:
		return buffers.LayoutFromSizes(3, 3, 3), nil
	}

	return nil, fmt.Errorf("no vertex layout for a stride of %d floats", stride)
}

// FitMatrix scales and moves the mesh bounds so they are centered on the origin and
// the largest side is size long. Meshes without bounds get the identity.
func (m *Mesh) FitMatrix(size float32) mgl32.Mat4 {

	extent := m.BoundsMax.Sub(m.BoundsMin)
	largest := max(extent.X(), extent.Y(), extent.Z())
	if largest <= 0 {
		return mgl32.Ident4()
	}

	center := m.BoundsMin.Add(extent.Mul(0.5))
	s := size / largest

	return mgl32.Scale3D(s, s, s).Mul4(mgl32.Translate3D(-center.X(), -center.Y(), -center.Z()))
}

func NewMeshFromData(name string, shader *shaders.ShaderProgram, md meshfile.MeshData) (*Mesh, error) {

	if err := md.Validate(); err != nil {
		return nil, fmt.Errorf("invalid data for mesh '%s': %w", name, err)
	}

	if len(md.Indices) == 0 {
		return nil, fmt.Errorf("invalid data for mesh '%s': %w", name, errNoIndices)
	}

	layout, err := LayoutForStride(md.Stride)
	if err != nil {
		return nil, fmt.Errorf("invalid data for mesh '%s': %w", name, err)
	}

	boundsMin, boundsMax, err := md.Bounds()
	if err != nil {
		return nil, fmt.Errorf("invalid data for mesh '%s': %w", name, err)
	}

	m := NewMesh(name, shader).
		WithVertices(md.Vertices).
		WithLayout(layout...).
		WithIndices(md.Indices)

	m.BoundsMin, m.BoundsMax = boundsMin, boundsMax
	return m, nil
}

// NewMeshFromOFF loads an OFF file and gives every vertex the same color.
// Locations are 0: position, 1: normal, 2: color.
func NewMeshFromOFF(name, path string, shader *shaders.ShaderProgram, color mgl32.Vec3) (*Mesh, error) {

	md, err := meshfile.LoadOFF(path)
	if err != nil {
		return nil, err
	}

	return NewMeshFromData(name, shader, md.WithColor(color.X(), color.Y(), color.Z()))
}

// NewMeshFromFile imports any model format assimp understands. All meshes of the file share one
// vertex buffer with the layout 0: position, 1: normal, and are drawn as submeshes.
// Normals the file doesn't have are generated from the triangles.
func NewMeshFromFile(name, path string, shader *shaders.ShaderProgram) (*Mesh, error) {

	scene, release, err := asig.ImportFile(path, ModelLoadFlags)
	if err != nil {
		return nil, fmt.Errorf("failed to load model '%s': %w", path, err)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, fmt.Errorf("no meshes found in file '%s'", path)
	}

	parts := make([]subMeshSource, 0, len(scene.Meshes))
	for i, sceneMesh := range scene.Meshes {

		indices, err := flattenFaces(sceneMesh.Faces)
		if err != nil {
			return nil, fmt.Errorf("failed to load submesh %d of '%s': %w", i, path, err)
		}

		parts = append(parts, subMeshSource{
			Positions: sceneMesh.Vertices,
			Normals:   sceneMesh.Normals,
			Indices:   indices,
		})
	}

	md, subMeshes := mergeSubMeshes(parts)

	m, err := NewMeshFromData(name, shader, md)
	if err != nil {
		return nil, err
	}

	// A single submesh is the same as drawing everything
	if len(subMeshes) > 1 {
		m.SubMeshes = subMeshes
	}

	return m, nil
}

// subMeshSource is one mesh of an imported file. Indices are local to its own vertices.
type subMeshSource struct {
	Positions []gglm.Vec3
	Normals   []gglm.Vec3
	Indices   []uint32
}

// mergeSubMeshes packs every part into one [x y z nx ny nz] vertex buffer and one index
// buffer. Indices stay local to their part and each SubMesh records where its vertices
// and indices start, to be drawn with a base vertex.
func mergeSubMeshes(parts []subMeshSource) (meshfile.MeshData, []SubMesh) {

	md := meshfile.MeshData{Stride: 6}
	subMeshes := make([]SubMesh, 0, len(parts))

	for _, p := range parts {

		subMeshes = append(subMeshes, SubMesh{
			BaseVertex: int32(len(md.Vertices) / md.Stride),
			BaseIndex:  uint32(len(md.Indices)),
			IndexCount: int32(len(p.Indices)),
		})

		md.Vertices = append(md.Vertices, interleavePosNormal(p.Positions, p.Normals, p.Indices)...)
		md.Indices = append(md.Indices, p.Indices...)
	}

	return md, subMeshes
}

// interleavePosNormal gives [x y z nx ny nz] per vertex. Normals are generated when the
// source has none.
func interleavePosNormal(positions, normals []gglm.Vec3, indices []uint32) []float32 {

	pos := make([]mgl32.Vec3, len(positions))
	for i := range positions {
		pos[i] = mgl32.Vec3(positions[i].Data)
	}

	norms := make([]mgl32.Vec3, 0, len(positions))
	if len(normals) == len(positions) {
		for i := range normals {
			norms = append(norms, mgl32.Vec3(normals[i].Data))
		}
	} else {
		norms = meshfile.GenerateNormals(pos, indices)
	}

	out := make([]float32, 0, len(pos)*6)
	for i := range pos {
		out = append(out, pos[i][:]...)
		out = append(out, norms[i][:]...)
	}

	return out
}

func flattenFaces(faces []asig.Face) ([]uint32, error) {

	uints := make([]uint32, 0, len(faces)*3)
	for i := range faces {

		// Points and lines survive triangulation and are skipped
		if len(faces[i].Indices) < 3 {
			continue
		}

		if len(faces[i].Indices) != 3 {
			return nil, fmt.Errorf("face %d has %d indices after triangulation", i, len(faces[i].Indices))
		}

		uints = append(uints,
			uint32(faces[i].Indices[0]),
			uint32(faces[i].Indices[1]),
			uint32(faces[i].Indices[2]),
		)
	}

	if len(uints) == 0 {
		return nil, errNoIndices
	}

	return uints, nil
}
