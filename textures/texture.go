// Package textures wraps OpenGL textures and renderbuffers.
//
// Textures are configured with builder methods and then Build, which applies
// the wrap and filter parameters:
//
//	tex := textures.NewTexture2D().WithSlot(1).WithFilters(gl.NEAREST, gl.NEAREST).Build()
//	err := tex.BufferFromFile("res/textures/crate.png")
package textures

// Texture is any texture object that can be bound to a texture slot
type Texture interface {
	Id() uint32
	Target() uint32
	Bind()
	UnBind()
	Delete()
}

// Params are the sampling parameters shared by every texture kind. They are
// applied to the GPU object by Build.
type Params struct {
	// Slot is the texture unit, so Slot=2 binds to gl.TEXTURE2
	Slot uint32

	InternalFormat int32
	Format         uint32
	DataType       uint32

	WrapS int32
	WrapT int32
	WrapR int32

	MinFilter int32
	MagFilter int32
}
