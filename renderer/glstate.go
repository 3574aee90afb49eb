package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/logging"
)

var glLog = logging.Module("GL")

// These must be called on the thread owning the context, after the window was built

func Enable(capability uint32) {
	gl.Enable(capability)
}

func Disable(capability uint32) {
	gl.Disable(capability)
}

func ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func Clear(mask uint32) {
	gl.Clear(mask)
}

func BlendFunc(srcFactor, dstFactor uint32) {
	gl.BlendFunc(srcFactor, dstFactor)
}

func Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func DepthFunc(fn uint32) {
	gl.DepthFunc(fn)
}

// CheckError returns the oldest OpenGl error flag, or nil
func CheckError() error {

	errCode := gl.GetError()
	if errCode == gl.NO_ERROR {
		return nil
	}

	return fmt.Errorf("OpenGl error 0x%X", errCode)
}

type ContextInfo struct {
	Vendor      string
	Renderer    string
	Version     string
	GLSLVersion string

	MaxTextureSize           int32
	MaxTextureUnits          int32
	MaxColorAttachments      int32
	MaxSamples               int32
	MaxUniformBufferBindings int32
	MaxVertexAttribs         int32
}

func GLInfo() ContextInfo {

	info := ContextInfo{
		Vendor:      gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}

	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &info.MaxTextureSize)
	gl.GetIntegerv(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS, &info.MaxTextureUnits)
	gl.GetIntegerv(gl.MAX_COLOR_ATTACHMENTS, &info.MaxColorAttachments)
	gl.GetIntegerv(gl.MAX_SAMPLES, &info.MaxSamples)
	gl.GetIntegerv(gl.MAX_UNIFORM_BUFFER_BINDINGS, &info.MaxUniformBufferBindings)
	gl.GetIntegerv(gl.MAX_VERTEX_ATTRIBS, &info.MaxVertexAttribs)

	return info
}

func (i ContextInfo) Log() {
	glLog.Info("OpenGl context",
		"vendor", i.Vendor,
		"renderer", i.Renderer,
		"version", i.Version,
		"glsl", i.GLSLVersion,
	)
	glLog.Debug("OpenGl limits",
		"max_texture_size", i.MaxTextureSize,
		"max_texture_units", i.MaxTextureUnits,
		"max_color_attachments", i.MaxColorAttachments,
		"max_samples", i.MaxSamples,
		"max_uniform_buffer_bindings", i.MaxUniformBufferBindings,
		"max_vertex_attribs", i.MaxVertexAttribs,
	)
}
