package textures

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var rboLog = logging.Module("RenderBuffer")

// RenderBuffer is write-only storage for a framebuffer attachment, usually depth and stencil
type RenderBuffer struct {
	id uint32

	Format  uint32
	Width   int32
	Height  int32
	Samples int32
}

func NewRenderBuffer() *RenderBuffer {

	rbo := &RenderBuffer{}

	gl.GenRenderbuffers(1, &rbo.id)
	if rbo.id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL renderbuffer")
	}

	rboLog.Info("Creating renderbuffer", "id", rbo.id)
	metrics.Created(metrics.KindRenderbuffer)

	return rbo
}

func (rbo *RenderBuffer) Id() uint32 {
	return rbo.id
}

// SetUp allocates storage, e.g. SetUp(gl.DEPTH24_STENCIL8, 800, 600)
func (rbo *RenderBuffer) SetUp(format uint32, width, height int32) *RenderBuffer {

	rboLog.Debug("Setting up render buffer", "id", rbo.id, "format", format, "width", width, "height", height)

	rbo.Format, rbo.Width, rbo.Height, rbo.Samples = format, width, height, 0

	rbo.Bind()
	gl.RenderbufferStorage(gl.RENDERBUFFER, format, width, height)
	rbo.UnBind()

	return rbo
}

func (rbo *RenderBuffer) SetUpMultisample(samples int32, format uint32, width, height int32) *RenderBuffer {

	rboLog.Debug("Setting up multisampled render buffer", "id", rbo.id, "samples", samples, "format", format, "width", width, "height", height)

	rbo.Format, rbo.Width, rbo.Height, rbo.Samples = format, width, height, samples

	rbo.Bind()
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, format, width, height)
	rbo.UnBind()

	return rbo
}

func (rbo *RenderBuffer) Bind() {
	logging.Trace(rboLog, "Binding", "id", rbo.id)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rbo.id)
}

func (rbo *RenderBuffer) UnBind() {
	logging.Trace(rboLog, "Unbinding", "id", rbo.id)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (rbo *RenderBuffer) Delete() {

	if rbo.id == 0 {
		return
	}

	rboLog.Info("Deleting", "id", rbo.id)
	gl.DeleteRenderbuffers(1, &rbo.id)
	rbo.id = 0
	metrics.Deleted(metrics.KindRenderbuffer)
}
