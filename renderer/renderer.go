package renderer

import (
	"github.com/wienergl/wiener/buffers"
	"github.com/wienergl/wiener/meshes"
	"github.com/wienergl/wiener/shaders"
	"github.com/wienergl/wiener/textures"
)

type Bindable interface {
	Bind()
	UnBind()
	Delete()
}

type HasId interface {
	Id() uint32
}

type Drawable interface {
	Draw()
}

var (
	_ Bindable = &buffers.VertexBuffer{}
	_ Bindable = &buffers.IndexBuffer{}
	_ Bindable = &buffers.VertexArray{}
	_ Bindable = &buffers.UniformBuffer{}
	_ Bindable = &buffers.Framebuffer{}
	_ Bindable = &shaders.ShaderProgram{}
	_ Bindable = &meshes.Mesh{}

	_ Bindable = &textures.Texture2D{}
	_ Bindable = &textures.CubeMap{}
	_ Bindable = &textures.RenderBuffer{}
	_ HasId    = &textures.Texture2D{}
	_ HasId    = &textures.CubeMap{}
	_ HasId    = &textures.RenderBuffer{}

	_ Drawable = &meshes.Mesh{}
)

type Render interface {
	DrawMesh(mesh *meshes.Mesh)
	DrawVertexArray(shader *shaders.ShaderProgram, vao *buffers.VertexArray, firstElement int32, count int32)
	FrameEnd()
}
