package rend3dgl

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/buffers"
	"github.com/wienergl/wiener/meshes"
	"github.com/wienergl/wiener/renderer"
	"github.com/wienergl/wiener/shaders"
)

var _ renderer.Render = &Rend3DGL{}

// Rend3DGL skips vertex array and program binds that are already in place during a frame.
// Anything binding outside of it must be followed by FrameEnd.
type Rend3DGL struct {
	BoundVaoId     uint32
	BoundProgramId uint32

	DrawCalls          int
	LastFrameDrawCalls int
}

func (r *Rend3DGL) bindProgram(sp *shaders.ShaderProgram) {
	if sp.Id != r.BoundProgramId {
		sp.Bind()
		r.BoundProgramId = sp.Id
	}
}

func (r *Rend3DGL) bindVao(vao *buffers.VertexArray) {
	if vao.Id != r.BoundVaoId {
		vao.Bind()
		r.BoundVaoId = vao.Id
	}
}

func (r *Rend3DGL) DrawMesh(mesh *meshes.Mesh) {

	r.bindProgram(mesh.Shader)
	r.bindVao(&mesh.Vao)

	// Several meshes can share one texture slot, so these are always bound
	for _, t := range mesh.Textures {
		t.Bind()
	}

	mesh.UploadModelMat()
	mesh.DrawElements()

	if len(mesh.SubMeshes) == 0 {
		r.DrawCalls++
	} else {
		r.DrawCalls += len(mesh.SubMeshes)
	}
}

func (r *Rend3DGL) DrawVertexArray(sp *shaders.ShaderProgram, vao *buffers.VertexArray, firstElement int32, elementCount int32) {

	r.bindProgram(sp)
	r.bindVao(vao)

	gl.DrawArrays(gl.TRIANGLES, firstElement, elementCount)
	r.DrawCalls++
}

func (r *Rend3DGL) FrameEnd() {
	r.BoundVaoId = 0
	r.BoundProgramId = 0
	r.LastFrameDrawCalls = r.DrawCalls
	r.DrawCalls = 0
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}
