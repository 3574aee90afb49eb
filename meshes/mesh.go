package meshes

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/wienergl/wiener/assert"
	"github.com/wienergl/wiener/buffers"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/shaders"
	"github.com/wienergl/wiener/textures"
)

var meshLog = logging.Module("Mesh")

// DefaultModelUniform is the mat4 uniform Draw writes ModelMat to
const DefaultModelUniform = "modelMat"

type SubMesh struct {
	BaseVertex int32
	BaseIndex  uint32
	IndexCount int32
}

// Mesh owns a vertex array with one vertex buffer and one index buffer. The shader
// and textures are shared and are not deleted with the mesh.
type Mesh struct {
	Name string

	Vao buffers.VertexArray
	Vbo buffers.VertexBuffer
	Ibo buffers.IndexBuffer

	Shader   *shaders.ShaderProgram
	Textures []textures.Texture

	ModelMat mgl32.Mat4
	// ModelUniform is skipped when empty or when the shader doesn't use it
	ModelUniform string

	// When empty the whole index buffer is drawn at once
	SubMeshes []SubMesh

	// Axis aligned bounds of the vertex positions, set by the loaders
	BoundsMin mgl32.Vec3
	BoundsMax mgl32.Vec3
}

func NewMesh(name string, shader *shaders.ShaderProgram) *Mesh {

	m := &Mesh{
		Name:         name,
		Vao:          buffers.NewVertexArray(),
		Vbo:          buffers.NewVertexBuffer(),
		Ibo:          buffers.NewIndexBuffer(),
		Shader:       shader,
		ModelMat:     mgl32.Ident4(),
		ModelUniform: DefaultModelUniform,
	}

	meshLog.Info("Creating new mesh", "name", name, "vao", m.Vao.Id)
	return m
}

func (m *Mesh) WithVertices(vertices []float32) *Mesh {
	m.Vbo.SetData(vertices)
	m.Vbo.UnBind()
	return m
}

// WithIndices uploads the indices and attaches the index buffer to the vertex array.
// The vertex array is unbound afterwards so later buffer binds don't end up in it.
func (m *Mesh) WithIndices(indices []uint32) *Mesh {

	m.Vao.Bind()
	m.Ibo.SetData(indices)
	m.Vao.SetIndexBuffer(m.Ibo)
	m.Vao.UnBind()

	return m
}

// WithLayout describes the vertices and configures the vertex array attributes.
// Elements without locations get 0, 1, 2... in order.
func (m *Mesh) WithLayout(layout ...buffers.Element) *Mesh {

	m.Vbo.SetLayout(layout...)

	// The vertex array keeps its own copy of the buffer
	m.Vao.Vbos = m.Vao.Vbos[:0]
	m.Vao.AddVertexBuffer(m.Vbo)
	m.Vao.UnBind()

	return m
}

func (m *Mesh) WithTextures(texs ...textures.Texture) *Mesh {
	m.Textures = append(m.Textures[:0], texs...)
	return m
}

func (m *Mesh) AddTexture(tex textures.Texture) {
	m.Textures = append(m.Textures, tex)
}

func (m *Mesh) WithModelMat(model mgl32.Mat4) *Mesh {
	m.ModelMat = model
	return m
}

func (m *Mesh) IndexCount() int32 {
	return m.Ibo.IndexBufCount
}

// Bind binds the shader, the textures and the vertex array, then uploads the model matrix
func (m *Mesh) Bind() {

	assert.T(m.Shader != nil, "Mesh '%s' has no shader", m.Name)

	m.Shader.Bind()
	for _, t := range m.Textures {
		t.Bind()
	}

	m.UploadModelMat()
	m.Vao.Bind()
}

func (m *Mesh) UnBind() {
	m.Vao.UnBind()
	for _, t := range m.Textures {
		t.UnBind()
	}
	m.Shader.UnBind()
}

func (m *Mesh) UploadModelMat() {
	if m.ModelUniform != "" && m.Shader.HasUniform(m.ModelUniform) {
		m.Shader.SetUnifMat4(m.ModelUniform, m.ModelMat)
	}
}

func (m *Mesh) Draw() {
	m.Bind()
	m.DrawElements()
}

// DrawElements issues the draw calls only. The vertex array and shader must already be bound.
func (m *Mesh) DrawElements() {

	if len(m.SubMeshes) == 0 {
		gl.DrawElements(gl.TRIANGLES, m.Ibo.IndexBufCount, gl.UNSIGNED_INT, nil)
		return
	}

	for _, sm := range m.SubMeshes {
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, sm.IndexCount, gl.UNSIGNED_INT, uintptr(sm.BaseIndex*4), sm.BaseVertex)
	}
}

// Delete deletes the buffers and vertex array of the mesh
func (m *Mesh) Delete() {

	meshLog.Info("Deleting mesh", "name", m.Name)

	m.Vao.Delete()
	m.Vbo.Delete()
	m.Ibo.Delete()
	m.SubMeshes = nil
}
