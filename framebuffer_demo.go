package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/buffers"
	"github.com/wienergl/wiener/engine"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/meshes"
	"github.com/wienergl/wiener/renderer"
	"github.com/wienergl/wiener/shaders"
	"github.com/wienergl/wiener/textures"
)

// framebufferDemo renders the model scene into a multisampled framebuffer, resolves
// it into a texture and draws that texture over the whole window. With an export
// path the last resolved frame is saved as a png on exit.
type framebufferDemo struct {
	*demo
	scene modelScene

	modelPath  string
	exportPath string

	samples    int32
	msaaFbo    buffers.Framebuffer
	msaaColor  *textures.Texture2D
	msaaDepth  *textures.RenderBuffer
	resolveFbo buffers.Framebuffer
	resolveTex *textures.Texture2D

	screenQuad *meshes.Mesh
	resized    bool
}

func (d *framebufferDemo) Init() error {

	if err := d.scene.Init(d.demo, d.modelPath); err != nil {
		return err
	}
	d.samples = d.Cfg.MSAASamples

	screenShdr, err := d.loadShader("screen", func(sp *shaders.ShaderProgram) {
		sp.SetUnif1i("screenTex", 0)
	}, "screen.glsl")
	if err != nil {
		return err
	}

	d.screenQuad = meshes.NewMesh("screen", screenShdr).
		WithVertices(screenQuadVerts).
		WithLayout(buffers.LayoutFromSizes(3, 2)...).
		WithIndices(quadIndices)

	w, h := d.Win.FramebufferSize()
	if err := d.createFramebuffers(w, h); err != nil {
		return fmt.Errorf("failed to create framebuffers: %w", err)
	}

	d.Win.EventCallbacks = append(d.Win.EventCallbacks, func(e engine.Event) {
		if e.Kind == engine.EventFramebufferSize && e.Width > 0 && e.Height > 0 {
			d.resized = true
		}
	})

	return nil
}

func (d *framebufferDemo) createFramebuffers(width, height int32) error {

	d.resolveFbo = buffers.NewFramebuffer(uint32(width), uint32(height))
	d.resolveTex = textures.NewTexture2D().
		WithSlot(0).
		WithFormat(gl.RGBA).
		WithInternalFormat(gl.RGBA8).
		WithWrap(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE).
		Build()
	if err := d.resolveTex.BufferEmpty(width, height); err != nil {
		return err
	}
	d.resolveFbo.AttachTexture2D(0, d.resolveTex)

	if d.samples <= 0 {

		// The scene is drawn straight into the resolve framebuffer, which then needs depth
		d.resolveFbo.NewDepthStencilAttachment(buffers.FramebufferAttachmentType_Renderbuffer, buffers.FramebufferAttachmentDataFormat_Depth24Stencil8)
		d.screenQuad.WithTextures(d.resolveTex)
		return d.resolveFbo.Verify()
	}

	if err := d.resolveFbo.Verify(); err != nil {
		return err
	}

	d.msaaFbo = buffers.NewFramebuffer(uint32(width), uint32(height))

	d.msaaColor = textures.NewTexture2D().WithSlot(0).WithFormat(gl.RGBA).WithInternalFormat(gl.RGBA8)
	if err := d.msaaColor.BufferMultisampled(d.samples, width, height); err != nil {
		return err
	}
	d.msaaFbo.AttachMultisampledTexture2D(0, d.msaaColor)

	d.msaaDepth = textures.NewRenderBuffer().SetUpMultisample(d.samples, gl.DEPTH24_STENCIL8, width, height)
	d.msaaFbo.AttachRenderbuffer(gl.DEPTH_STENCIL_ATTACHMENT, d.msaaDepth)

	d.screenQuad.WithTextures(d.resolveTex)
	return d.msaaFbo.Verify()
}

func (d *framebufferDemo) deleteFramebuffers() {

	d.msaaFbo.Delete()
	if d.msaaColor != nil {
		d.msaaColor.Delete()
		d.msaaColor = nil
	}
	if d.msaaDepth != nil {
		d.msaaDepth.Delete()
		d.msaaDepth = nil
	}

	d.resolveFbo.Delete()
	d.resolveTex.Delete()
}

func (d *framebufferDemo) Update() {

	d.demo.Update()
	d.scene.Update()

	if !d.resized {
		return
	}
	d.resized = false

	w, h := d.Win.FramebufferSize()
	d.deleteFramebuffers()
	if err := d.createFramebuffers(w, h); err != nil {
		d.fail(fmt.Errorf("failed to recreate framebuffers after resize: %w", err))
	}
}

func (d *framebufferDemo) Render() {

	target := &d.resolveFbo
	if d.samples > 0 {
		target = &d.msaaFbo
	}

	target.BindWithViewport()
	d.clear()
	d.scene.Render(d.demo, int32(target.Width), int32(target.Height))

	if d.samples > 0 {
		d.msaaFbo.Blit(&d.resolveFbo, d.msaaFbo.Rect(), d.resolveFbo.Rect(), gl.COLOR_BUFFER_BIT, gl.NEAREST)
	}

	w, h := d.Win.FramebufferSize()
	target.UnBindWithViewport(uint32(w), uint32(h))

	renderer.Disable(gl.DEPTH_TEST)
	d.clear()
	d.Rend.DrawMesh(d.screenQuad)
	renderer.Enable(gl.DEPTH_TEST)
}

func (d *framebufferDemo) DeInit() {

	if d.exportPath != "" {
		if err := d.resolveTex.Export(d.resolveFbo.Rect(), d.exportPath); err != nil {
			d.fail(fmt.Errorf("failed to export frame: %w", err))
		} else {
			logging.InfoLog.Printf("Exported last frame to %s\n", d.exportPath)
		}
	}

	d.scene.DeInit()
	d.screenQuad.Delete()
	d.deleteFramebuffers()
}
