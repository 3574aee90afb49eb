package buffers

import (
	"testing"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufUsage(t *testing.T) {
	tests := []struct {
		usage BufUsage
		gl    uint32
		name  string
	}{
		{BufUsage_Static_Draw, gl.STATIC_DRAW, "static_draw"},
		{BufUsage_Dynamic_Draw, gl.DYNAMIC_DRAW, "dynamic_draw"},
		{BufUsage_Stream_Draw, gl.STREAM_DRAW, "stream_draw"},
		{BufUsage_Static_Read, gl.STATIC_READ, "static_read"},
		{BufUsage_Dynamic_Read, gl.DYNAMIC_READ, "dynamic_read"},
		{BufUsage_Stream_Read, gl.STREAM_READ, "stream_read"},
		{BufUsage_Static_Copy, gl.STATIC_COPY, "static_copy"},
		{BufUsage_Dynamic_Copy, gl.DYNAMIC_COPY, "dynamic_copy"},
		{BufUsage_Stream_Copy, gl.STREAM_COPY, "stream_copy"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.gl, tt.usage.ToGL(), tt.name)
		assert.Equal(t, tt.name, tt.usage.String())
		assert.Equal(t, tt.usage, BufUsageFromGL(tt.gl), tt.name)
	}

	assert.Equal(t, BufUsage_Unknown, BufUsageFromGL(gl.FLOAT))
	assert.Equal(t, "unknown", BufUsage(100).String())
	assert.Panics(t, func() { BufUsage_Unknown.ToGL() })
}

func TestElementTypes(t *testing.T) {
	tests := []struct {
		dt        ElementType
		glType    uint32
		compCount int32
		size      int32
		align     uint16
		std140    uint16
	}{
		{DataTypeUint32, gl.UNSIGNED_INT, 1, 4, 4, 4},
		{DataTypeInt32, gl.INT, 1, 4, 4, 4},
		{DataTypeFloat32, gl.FLOAT, 1, 4, 4, 4},
		{DataTypeVec2, gl.FLOAT, 2, 8, 8, 8},
		{DataTypeVec3, gl.FLOAT, 3, 12, 16, 12},
		{DataTypeVec4, gl.FLOAT, 4, 16, 16, 16},
		{DataTypeMat2, gl.FLOAT, 4, 16, 16, 32},
		{DataTypeMat3, gl.FLOAT, 9, 36, 16, 48},
		{DataTypeMat4, gl.FLOAT, 16, 64, 16, 64},
	}

	for _, tt := range tests {
		name := tt.dt.String()
		assert.Equal(t, tt.glType, tt.dt.GLType(), name)
		assert.Equal(t, tt.compCount, tt.dt.CompCount(), name)
		assert.Equal(t, tt.size, tt.dt.Size(), name)
		assert.Equal(t, tt.align, tt.dt.Std140Alignment(), name)
		assert.Equal(t, tt.std140, tt.dt.Std140Size(), name)
	}

	assert.True(t, DataTypeInt32.IsInteger())
	assert.False(t, DataTypeVec3.IsInteger())
	assert.Equal(t, uint16(16), DataTypeStruct.Std140Alignment())
	assert.Panics(t, func() { DataTypeStruct.GLType() })
	assert.Panics(t, func() { DataTypeUnknown.CompCount() })
	assert.Equal(t, "Unknown(42)", ElementType(42).String())
}

func TestLayoutFromSizes(t *testing.T) {
	layout := LayoutFromSizes(3, 3, 2)
	require.Len(t, layout, 3)

	assert.Equal(t, Element{Location: 0, ElementType: DataTypeVec3}, layout[0])
	assert.Equal(t, Element{Location: 1, ElementType: DataTypeVec3}, layout[1])
	assert.Equal(t, Element{Location: 2, ElementType: DataTypeVec2}, layout[2])

	assert.Equal(t, DataTypeFloat32, LayoutFromSizes(1)[0].ElementType)
	assert.Equal(t, DataTypeVec4, LayoutFromSizes(4)[0].ElementType)
	assert.Panics(t, func() { LayoutFromSizes(5) })
}

func TestVertexBufferSetLayout(t *testing.T) {
	vb := VertexBuffer{}
	vb.SetLayout(LayoutFromSizes(3, 3, 2)...)

	assert.Equal(t, int32(8*4), vb.Stride)

	layout := vb.GetLayout()
	require.Len(t, layout, 3)
	assert.Equal(t, 0, layout[0].Offset)
	assert.Equal(t, 12, layout[1].Offset)
	assert.Equal(t, 24, layout[2].Offset)

	// GetLayout returns a copy
	layout[0].Offset = 99
	assert.Equal(t, 0, vb.GetLayout()[0].Offset)
}

func TestVertexBufferLocations(t *testing.T) {
	vb := VertexBuffer{}

	// All zero locations are assigned in order
	vb.SetLayout(Element{ElementType: DataTypeVec3}, Element{ElementType: DataTypeVec4})
	assert.Equal(t, uint32(0), vb.GetLayout()[0].Location)
	assert.Equal(t, uint32(1), vb.GetLayout()[1].Location)

	// Explicit locations are kept
	vb.SetLayout(Element{Location: 3, ElementType: DataTypeVec3}, Element{Location: 0, ElementType: DataTypeInt32})
	assert.Equal(t, uint32(3), vb.GetLayout()[0].Location)
	assert.Equal(t, uint32(0), vb.GetLayout()[1].Location)
	assert.Equal(t, int32(16), vb.Stride)
}

func TestLayoutStd140(t *testing.T) {
	fields, size := LayoutStd140([]UniformBufferFieldInput{
		{Id: 0, Type: DataTypeFloat32},
		{Id: 1, Type: DataTypeVec3},
		{Id: 2, Type: DataTypeFloat32},
		{Id: 3, Type: DataTypeMat4},
		{Id: 4, Type: DataTypeVec2, Count: 3},
		{Id: 5, Type: DataTypeInt32},
	})

	want := []UniformBufferField{
		{Id: 0, Type: DataTypeFloat32, AlignedOffset: 0, Count: 1},
		{Id: 1, Type: DataTypeVec3, AlignedOffset: 16, Count: 1},
		// A scalar fits in the padding after a vec3
		{Id: 2, Type: DataTypeFloat32, AlignedOffset: 28, Count: 1},
		{Id: 3, Type: DataTypeMat4, AlignedOffset: 32, Count: 1},
		{Id: 4, Type: DataTypeVec2, AlignedOffset: 96, Count: 3},
		{Id: 5, Type: DataTypeInt32, AlignedOffset: 144, Count: 1},
	}

	assert.Equal(t, want, fields)
	assert.Equal(t, uint32(160), size)
}

func TestLayoutStd140Arrays(t *testing.T) {
	fields, size := LayoutStd140([]UniformBufferFieldInput{
		{Id: 0, Type: DataTypeFloat32, Count: 4},
		{Id: 1, Type: DataTypeVec3},
	})
	assert.Equal(t, uint16(64), fields[1].AlignedOffset)
	assert.Equal(t, uint32(80), size)

	fields, size = LayoutStd140([]UniformBufferFieldInput{
		{Id: 0, Type: DataTypeMat3, Count: 2},
		{Id: 1, Type: DataTypeFloat32},
	})
	assert.Equal(t, uint16(96), fields[1].AlignedOffset)
	assert.Equal(t, uint32(112), size)
}

func TestLayoutStd140Structs(t *testing.T) {
	fields, size := LayoutStd140([]UniformBufferFieldInput{
		{Id: 0, Type: DataTypeVec3},
		{Id: 1, Type: DataTypeStruct, Count: 2, Subfields: []UniformBufferFieldInput{
			{Id: 0, Type: DataTypeFloat32},
			{Id: 1, Type: DataTypeVec2},
		}},
		{Id: 2, Type: DataTypeFloat32},
	})

	want := []UniformBufferField{
		{Id: 0, Type: DataTypeVec3, AlignedOffset: 0, Count: 1},
		{Id: 1, Type: DataTypeStruct, AlignedOffset: 16, Count: 2},
		{Id: 0, Type: DataTypeFloat32, AlignedOffset: 16, Count: 1},
		{Id: 1, Type: DataTypeVec2, AlignedOffset: 24, Count: 1},
		{Id: 2, Type: DataTypeFloat32, AlignedOffset: 48, Count: 1},
	}

	assert.Equal(t, want, fields)
	assert.Equal(t, uint32(64), size)
}

func TestLayoutStd140ReusedId(t *testing.T) {
	assert.Panics(t, func() {
		LayoutStd140([]UniformBufferFieldInput{
			{Id: 7, Type: DataTypeFloat32},
			{Id: 7, Type: DataTypeVec4},
		})
	})
}

func TestStd140Matrices(t *testing.T) {
	m2 := mgl32.Mat2{1, 2, 3, 4}
	assert.Equal(t, [8]float32{1, 2, 0, 0, 3, 4, 0, 0}, Std140Mat2(m2))

	m3 := mgl32.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, [12]float32{1, 2, 3, 0, 4, 5, 6, 0, 7, 8, 9, 0}, Std140Mat3(m3))
}

func TestUniformBufferFieldLookup(t *testing.T) {
	fields, size := LayoutStd140([]UniformBufferFieldInput{
		{Id: 0, Type: DataTypeMat4},
		{Id: 1, Type: DataTypeVec3},
	})
	ub := UniformBuffer{Size: size, Fields: fields}

	f := ub.getField(1, DataTypeVec3)
	assert.Equal(t, uint16(64), f.AlignedOffset)

	assert.Panics(t, func() { ub.getField(1, DataTypeVec4) })
	assert.Panics(t, func() { ub.getField(9, DataTypeVec3) })
}

func TestFramebufferStatusError(t *testing.T) {
	assert.NoError(t, FramebufferStatusError(gl.FRAMEBUFFER_COMPLETE))

	tests := []struct {
		status uint32
		err    error
	}{
		{gl.FRAMEBUFFER_UNDEFINED, ErrFramebufferUndefined},
		{gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT, ErrFramebufferIncompleteAttachment},
		{gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT, ErrFramebufferIncompleteMissingAttachment},
		{gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER, ErrFramebufferIncompleteDrawBuffer},
		{gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER, ErrFramebufferIncompleteReadBuffer},
		{gl.FRAMEBUFFER_UNSUPPORTED, ErrFramebufferUnsupported},
		{gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE, ErrFramebufferIncompleteMultisample},
		{gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS, ErrFramebufferIncompleteLayerTargets},
	}

	for _, tt := range tests {
		assert.ErrorIs(t, FramebufferStatusError(tt.status), tt.err)
	}

	assert.EqualError(t, FramebufferStatusError(0x1234), "unknown framebuffer status 0x1234")
}

func TestFramebufferAttachmentFormats(t *testing.T) {
	assert.True(t, FramebufferAttachmentDataFormat_RGBA8.IsColorFormat())
	assert.False(t, FramebufferAttachmentDataFormat_RGBA8.IsDepthFormat())
	assert.True(t, FramebufferAttachmentDataFormat_Depth24Stencil8.IsDepthFormat())

	assert.Equal(t, int32(gl.RGBA8), FramebufferAttachmentDataFormat_RGBA8.GlInternalFormat())
	assert.Equal(t, uint32(gl.DEPTH_STENCIL), FramebufferAttachmentDataFormat_Depth24Stencil8.GlFormat())
	assert.Equal(t, uint32(gl.UNSIGNED_INT_24_8), FramebufferAttachmentDataFormat_Depth24Stencil8.GlDataType())
	assert.Equal(t, uint32(gl.RED_INTEGER), FramebufferAttachmentDataFormat_R32Int.GlFormat())

	fbo := Framebuffer{Width: 800, Height: 600}
	assert.Equal(t, 800, fbo.Rect().Dx())
	assert.False(t, fbo.HasDepthAttachment())

	fbo.track(FramebufferAttachment{Id: 5, Attachment: gl.COLOR_ATTACHMENT0 + 1})
	fbo.track(FramebufferAttachment{Id: 6, Attachment: gl.DEPTH_ATTACHMENT})
	assert.Equal(t, uint32(1), fbo.ColorAttachmentsCount)
	assert.True(t, fbo.HasDepthAttachment())
}

func TestFramebufferColorIndices(t *testing.T) {

	tests := []struct {
		name      string
		attached  []uint32
		wantNext  uint32
		wantFree  bool
		wantCount uint32
	}{
		{name: "empty", attached: nil, wantNext: 0, wantFree: true, wantCount: 0},
		{name: "explicit index 0", attached: []uint32{0}, wantNext: 1, wantFree: true, wantCount: 1},
		{name: "explicit index 1 leaves 0 free", attached: []uint32{1}, wantNext: 0, wantFree: true, wantCount: 1},
		{name: "gap", attached: []uint32{0, 1, 3}, wantNext: 2, wantFree: true, wantCount: 3},
		{name: "reattach same index", attached: []uint32{0, 0, 0}, wantNext: 1, wantFree: true, wantCount: 1},
		{name: "full", attached: []uint32{7, 6, 5, 4, 3, 2, 1, 0}, wantNext: 0, wantFree: false, wantCount: MaxColorAttachments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			fbo := Framebuffer{}
			fbo.track(FramebufferAttachment{Id: 99, Attachment: gl.DEPTH_STENCIL_ATTACHMENT})
			for i, idx := range tt.attached {
				fbo.track(FramebufferAttachment{Id: uint32(i + 1), Attachment: gl.COLOR_ATTACHMENT0 + idx})
			}

			next, free := fbo.nextFreeColorIndex()
			assert.Equal(t, tt.wantFree, free)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantCount, fbo.ColorAttachmentsCount)
			assert.Equal(t, tt.wantCount > 0, fbo.HasColorAttachment())
		})
	}
}

func TestFramebufferTrackReplaces(t *testing.T) {

	fbo := Framebuffer{}

	_, replaced := fbo.track(FramebufferAttachment{Id: 1, Attachment: gl.COLOR_ATTACHMENT0 + 2, Owned: true})
	assert.False(t, replaced)

	old, replaced := fbo.track(FramebufferAttachment{Id: 2, Attachment: gl.COLOR_ATTACHMENT0 + 2})
	require.True(t, replaced)
	assert.Equal(t, uint32(1), old.Id)
	assert.True(t, old.Owned)

	require.Len(t, fbo.Attachments, 1)
	assert.Equal(t, uint32(2), fbo.Attachments[0].Id)
	assert.Equal(t, uint32(1), fbo.ColorAttachmentsCount)

	// Non-owned replacements don't touch GL
	fbo.attach(FramebufferAttachment{Id: 3, Attachment: gl.COLOR_ATTACHMENT0 + 2})
	require.Len(t, fbo.Attachments, 1)
	assert.Equal(t, uint32(3), fbo.Attachments[0].Id)
}
