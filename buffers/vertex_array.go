package buffers

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var vaLog = logging.Module("VertexArray")

type VertexArray struct {
	Id          uint32
	Vbos        []VertexBuffer
	IndexBuffer IndexBuffer
}

func (va *VertexArray) Bind() {
	logging.Trace(vaLog, "Binding", "id", va.Id)
	gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	logging.Trace(vaLog, "Unbinding", "id", va.Id)
	gl.BindVertexArray(0)
}

// AddVertexBuffer enables and configures one attribute per element of the
// buffer's layout. The vertex array is left bound.
func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	vaLog.Info("Updating layout", "id", va.Id, "vbo", vbo.Id, "attributes", len(vbo.layout), "stride", vbo.Stride)

	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]

		gl.EnableVertexAttribArray(l.Location)
		if l.ElementType.IsInteger() {
			gl.VertexAttribIPointerWithOffset(l.Location, l.ElementType.CompCount(), l.ElementType.GLType(), vbo.Stride, uintptr(l.Offset))
		} else {
			gl.VertexAttribPointerWithOffset(l.Location, l.ElementType.CompCount(), l.ElementType.GLType(), false, vbo.Stride, uintptr(l.Offset))
		}
	}

	va.Vbos = append(va.Vbos, vbo)
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

// Delete only deletes the vertex array. The buffers it references are owned by the caller.
func (va *VertexArray) Delete() {

	if va.Id == 0 {
		return
	}

	vaLog.Info("Deleting", "id", va.Id)
	gl.DeleteVertexArrays(1, &va.Id)
	va.Id = 0
	metrics.Deleted(metrics.KindVertexArray)
}

func NewVertexArray() VertexArray {

	vao := VertexArray{}

	gl.GenVertexArrays(1, &vao.Id)
	if vao.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL vertex array object")
	}

	vaLog.Info("Creating new VertexArray", "id", vao.Id)
	metrics.Created(metrics.KindVertexArray)

	return vao
}
