package buffers

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var ibLog = logging.Module("IndexBuffer")

type IndexBuffer struct {
	Id uint32
	// IndexBufCount is the number of elements in the index buffer. Updated in IndexBuffer.SetData
	IndexBufCount int32
	Usage         BufUsage
}

func (ib *IndexBuffer) Bind() {
	logging.Trace(ibLog, "Binding", "id", ib.Id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.Id)
}

func (ib *IndexBuffer) UnBind() {
	logging.Trace(ibLog, "Unbinding", "id", ib.Id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

func (ib *IndexBuffer) SetUsage(usage BufUsage) {
	ib.Usage = usage
}

// SetData binds the buffer and replaces its contents. When a vertex array is
// bound it keeps a reference to this buffer.
func (ib *IndexBuffer) SetData(values []uint32) {

	ib.Bind()

	sizeInBytes := len(values) * 4
	ib.IndexBufCount = int32(len(values))
	ibLog.Debug("Buffering data to GPU", "id", ib.Id, "indices", len(values), "usage", ib.Usage.String())

	if sizeInBytes == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, ib.Usage.ToGL())
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, sizeInBytes, gl.Ptr(&values[0]), ib.Usage.ToGL())
	}

	metrics.Uploaded(metrics.KindIndexBuffer, sizeInBytes)
}

func (ib *IndexBuffer) Delete() {

	if ib.Id == 0 {
		return
	}

	ibLog.Info("Deleting", "id", ib.Id)
	gl.DeleteBuffers(1, &ib.Id)
	ib.Id = 0
	ib.IndexBufCount = 0
	metrics.Deleted(metrics.KindIndexBuffer)
}

func NewIndexBuffer() IndexBuffer {

	ib := IndexBuffer{Usage: BufUsage_Static_Draw}

	gl.GenBuffers(1, &ib.Id)
	if ib.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	ibLog.Info("Creating new IndexBuffer", "id", ib.Id)
	metrics.Created(metrics.KindIndexBuffer)

	return ib
}
