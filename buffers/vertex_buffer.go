package buffers

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var vbLog = logging.Module("VertexBuffer")

type VertexBuffer struct {
	Id     uint32
	Stride int32
	Usage  BufUsage
	layout []Element
}

func (vb *VertexBuffer) Bind() {
	logging.Trace(vbLog, "Binding", "id", vb.Id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	logging.Trace(vbLog, "Unbinding", "id", vb.Id)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (vb *VertexBuffer) SetUsage(usage BufUsage) {
	vb.Usage = usage
}

// SetData binds the buffer and replaces its contents
func (vb *VertexBuffer) SetData(values []float32) {

	vb.Bind()

	sizeInBytes := len(values) * 4
	vbLog.Debug("Buffering data to GPU", "id", vb.Id, "bytes", sizeInBytes, "usage", vb.Usage.String())

	if sizeInBytes == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, vb.Usage.ToGL())
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, sizeInBytes, gl.Ptr(&values[0]), vb.Usage.ToGL())
	}

	metrics.Uploaded(metrics.KindVertexBuffer, sizeInBytes)
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

// SetLayout computes the offset of every element and the stride
func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = make([]Element, len(layout))
	copy(vb.layout, layout)

	autoLocations := true
	for i := 0; i < len(vb.layout); i++ {
		if vb.layout[i].Location != 0 {
			autoLocations = false
			break
		}
	}

	for i := 0; i < len(vb.layout); i++ {

		if autoLocations {
			vb.layout[i].Location = uint32(i)
		}

		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

func (vb *VertexBuffer) Delete() {

	if vb.Id == 0 {
		return
	}

	vbLog.Info("Deleting", "id", vb.Id)
	gl.DeleteBuffers(1, &vb.Id)
	vb.Id = 0
	metrics.Deleted(metrics.KindVertexBuffer)
}

func NewVertexBuffer(layout ...Element) VertexBuffer {

	vb := VertexBuffer{Usage: BufUsage_Static_Draw}

	gl.GenBuffers(1, &vb.Id)
	if vb.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	vbLog.Info("Creating new VertexBuffer", "id", vb.Id)
	metrics.Created(metrics.KindVertexBuffer)

	vb.SetLayout(layout...)
	return vb
}
