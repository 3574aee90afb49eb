package buffers

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/assert"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var fbLog = logging.Module("FrameBuffer")

const MaxColorAttachments = 8

var (
	ErrFramebufferUndefined                   = errors.New("framebuffer is undefined")
	ErrFramebufferIncompleteAttachment        = errors.New("framebuffer has an incomplete attachment")
	ErrFramebufferIncompleteMissingAttachment = errors.New("framebuffer has no attachments")
	ErrFramebufferIncompleteDrawBuffer        = errors.New("framebuffer draw buffer has no attachment")
	ErrFramebufferIncompleteReadBuffer        = errors.New("framebuffer read buffer has no attachment")
	ErrFramebufferUnsupported                 = errors.New("framebuffer attachment formats are not supported together")
	ErrFramebufferIncompleteMultisample       = errors.New("framebuffer attachments have mismatched sample counts")
	ErrFramebufferIncompleteLayerTargets      = errors.New("framebuffer attachments are not all layered")
)

// FramebufferStatusError maps a glCheckFramebufferStatus result to an error. Complete gives nil.
func FramebufferStatusError(status uint32) error {

	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return nil
	case gl.FRAMEBUFFER_UNDEFINED:
		return ErrFramebufferUndefined
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return ErrFramebufferIncompleteAttachment
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return ErrFramebufferIncompleteMissingAttachment
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return ErrFramebufferIncompleteDrawBuffer
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return ErrFramebufferIncompleteReadBuffer
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return ErrFramebufferUnsupported
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return ErrFramebufferIncompleteMultisample
	case gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return ErrFramebufferIncompleteLayerTargets
	default:
		return fmt.Errorf("unknown framebuffer status 0x%X", status)
	}
}

// AttachTarget is a texture or renderbuffer that can be attached to a framebuffer
type AttachTarget interface {
	Id() uint32
}

type FramebufferAttachmentType int32

const (
	FramebufferAttachmentType_Unknown FramebufferAttachmentType = iota
	FramebufferAttachmentType_Texture
	FramebufferAttachmentType_Renderbuffer
)

func (f FramebufferAttachmentType) IsValid() bool {
	return f == FramebufferAttachmentType_Texture || f == FramebufferAttachmentType_Renderbuffer
}

type FramebufferAttachmentDataFormat int32

const (
	FramebufferAttachmentDataFormat_Unknown FramebufferAttachmentDataFormat = iota
	FramebufferAttachmentDataFormat_R32Int
	FramebufferAttachmentDataFormat_RGBA8
	FramebufferAttachmentDataFormat_SRGBA
	FramebufferAttachmentDataFormat_Depth24Stencil8
)

func (f FramebufferAttachmentDataFormat) IsColorFormat() bool {
	return f == FramebufferAttachmentDataFormat_R32Int ||
		f == FramebufferAttachmentDataFormat_RGBA8 ||
		f == FramebufferAttachmentDataFormat_SRGBA
}

func (f FramebufferAttachmentDataFormat) IsDepthFormat() bool {
	return f == FramebufferAttachmentDataFormat_Depth24Stencil8
}

func (f FramebufferAttachmentDataFormat) GlInternalFormat() int32 {

	switch f {
	case FramebufferAttachmentDataFormat_R32Int:
		return gl.R32I
	case FramebufferAttachmentDataFormat_RGBA8:
		return gl.RGBA8
	case FramebufferAttachmentDataFormat_SRGBA:
		return gl.SRGB8_ALPHA8
	case FramebufferAttachmentDataFormat_Depth24Stencil8:
		return gl.DEPTH24_STENCIL8
	}

	assert.T(false, "unknown framebuffer attachment data format. Format=%d", int32(f))
	return 0
}

func (f FramebufferAttachmentDataFormat) GlFormat() uint32 {

	switch f {
	case FramebufferAttachmentDataFormat_R32Int:
		return gl.RED_INTEGER
	case FramebufferAttachmentDataFormat_RGBA8, FramebufferAttachmentDataFormat_SRGBA:
		return gl.RGBA
	case FramebufferAttachmentDataFormat_Depth24Stencil8:
		return gl.DEPTH_STENCIL
	}

	assert.T(false, "unknown framebuffer attachment data format. Format=%d", int32(f))
	return 0
}

func (f FramebufferAttachmentDataFormat) GlDataType() uint32 {

	switch f {
	case FramebufferAttachmentDataFormat_R32Int:
		return gl.INT
	case FramebufferAttachmentDataFormat_Depth24Stencil8:
		return gl.UNSIGNED_INT_24_8
	default:
		return gl.UNSIGNED_BYTE
	}
}

type FramebufferAttachment struct {
	Id uint32
	// Attachment is the attachment point, e.g. gl.COLOR_ATTACHMENT0
	Attachment uint32
	Type       FramebufferAttachmentType
	Format     FramebufferAttachmentDataFormat
	// Owned attachments were created by the framebuffer and are deleted with it
	Owned bool
}

type Framebuffer struct {
	Id                    uint32
	Attachments           []FramebufferAttachment
	ColorAttachmentsCount uint32
	Width                 uint32
	Height                uint32
}

func (fbo *Framebuffer) Bind() {
	logging.Trace(fbLog, "Binding", "id", fbo.Id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo.Id)
}

func (fbo *Framebuffer) BindRead() {
	logging.Trace(fbLog, "Binding for reading", "id", fbo.Id)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo.Id)
}

func (fbo *Framebuffer) BindDraw() {
	logging.Trace(fbLog, "Binding for drawing", "id", fbo.Id)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fbo.Id)
}

func (fbo *Framebuffer) BindWithViewport() {
	fbo.Bind()
	gl.Viewport(0, 0, int32(fbo.Width), int32(fbo.Height))
}

func (fbo *Framebuffer) UnBind() {
	logging.Trace(fbLog, "Unbinding", "id", fbo.Id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (fbo *Framebuffer) UnBindWithViewport(width, height uint32) {
	fbo.UnBind()
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Verify returns one of the ErrFramebuffer* errors if the framebuffer can't be rendered to.
// Note that this function binds and then unbinds the fbo
func (fbo *Framebuffer) Verify() error {

	fbo.Bind()
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	fbo.UnBind()

	err := FramebufferStatusError(status)
	if err != nil {
		fbLog.Error("Framebuffer is not complete", "id", fbo.Id, "err", err)
		return err
	}

	fbLog.Debug("Framebuffer is complete", "id", fbo.Id)
	return nil
}

// IsComplete returns true if OpenGL reports that the fbo is complete/usable.
// Note that this function binds and then unbinds the fbo
func (fbo *Framebuffer) IsComplete() bool {
	return fbo.Verify() == nil
}

func (fbo *Framebuffer) HasColorAttachment() bool {
	return fbo.ColorAttachmentsCount > 0
}

func (fbo *Framebuffer) HasDepthAttachment() bool {

	for i := 0; i < len(fbo.Attachments); i++ {

		a := &fbo.Attachments[i]
		if a.Format.IsDepthFormat() || a.Attachment == gl.DEPTH_ATTACHMENT || a.Attachment == gl.DEPTH_STENCIL_ATTACHMENT {
			return true
		}
	}

	return false
}

func isColorAttachment(attachment uint32) bool {
	return attachment >= gl.COLOR_ATTACHMENT0 && attachment < gl.COLOR_ATTACHMENT0+MaxColorAttachments
}

// track records a as attached. Attaching to a point that is already in use replaces
// what was there, and the replaced attachment is returned so it can be released.
func (fbo *Framebuffer) track(a FramebufferAttachment) (replaced FramebufferAttachment, ok bool) {

	for i := 0; i < len(fbo.Attachments); i++ {

		if fbo.Attachments[i].Attachment != a.Attachment {
			continue
		}

		replaced = fbo.Attachments[i]
		fbo.Attachments[i] = a
		return replaced, true
	}

	if isColorAttachment(a.Attachment) {
		fbo.ColorAttachmentsCount++
	}

	fbo.Attachments = append(fbo.Attachments, a)
	return replaced, false
}

// attach tracks a and deletes an owned attachment it replaced
func (fbo *Framebuffer) attach(a FramebufferAttachment) {

	replaced, ok := fbo.track(a)
	if !ok || !replaced.Owned || replaced.Id == a.Id {
		return
	}

	fbLog.Debug("Replaced owned attachment", "id", fbo.Id, "attachment_id", replaced.Id, "attachment", replaced.Attachment)
	deleteAttachment(&replaced)
}

// nextFreeColorIndex is the lowest color attachment index nothing is attached to
func (fbo *Framebuffer) nextFreeColorIndex() (uint32, bool) {

	var used [MaxColorAttachments]bool
	for i := 0; i < len(fbo.Attachments); i++ {

		a := fbo.Attachments[i].Attachment
		if isColorAttachment(a) {
			used[a-gl.COLOR_ATTACHMENT0] = true
		}
	}

	for i := uint32(0); i < MaxColorAttachments; i++ {
		if !used[i] {
			return i, true
		}
	}

	return 0, false
}

// AttachTexture attaches level 0 of any kind of texture. The fbo is bound during
// the call and unbound after.
func (fbo *Framebuffer) AttachTexture(attachment uint32, tex AttachTarget) {

	fbLog.Debug("Attaching texture", "id", fbo.Id, "texture", tex.Id(), "attachment", attachment)

	fbo.Bind()
	gl.FramebufferTexture(gl.FRAMEBUFFER, attachment, tex.Id(), 0)
	fbo.UnBind()

	fbo.attach(FramebufferAttachment{Id: tex.Id(), Attachment: attachment, Type: FramebufferAttachmentType_Texture})
}

func (fbo *Framebuffer) AttachDepth(tex AttachTarget) {
	fbo.AttachTexture(gl.DEPTH_ATTACHMENT, tex)
}

// AttachRawTexture2D attaches a texture to the given attachment point with an explicit
// texture target such as gl.TEXTURE_2D or one face of a cube map
func (fbo *Framebuffer) AttachRawTexture2D(attachment, textarget uint32, tex AttachTarget) {

	fbLog.Debug("Attaching 2D texture", "id", fbo.Id, "texture", tex.Id(), "attachment", attachment, "target", textarget)

	fbo.Bind()
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, textarget, tex.Id(), 0)
	fbo.UnBind()

	fbo.attach(FramebufferAttachment{Id: tex.Id(), Attachment: attachment, Type: FramebufferAttachmentType_Texture})
}

// AttachTexture2D attaches tex as color attachment colorIndex
func (fbo *Framebuffer) AttachTexture2D(colorIndex uint32, tex AttachTarget) {
	assert.T(colorIndex < MaxColorAttachments, "color attachment index %d is over the max of %d", colorIndex, MaxColorAttachments)
	fbo.AttachRawTexture2D(gl.COLOR_ATTACHMENT0+colorIndex, gl.TEXTURE_2D, tex)
}

func (fbo *Framebuffer) AttachMultisampledTexture2D(colorIndex uint32, tex AttachTarget) {
	assert.T(colorIndex < MaxColorAttachments, "color attachment index %d is over the max of %d", colorIndex, MaxColorAttachments)
	fbo.AttachRawTexture2D(gl.COLOR_ATTACHMENT0+colorIndex, gl.TEXTURE_2D_MULTISAMPLE, tex)
}

func (fbo *Framebuffer) AttachRenderbuffer(attachment uint32, rbo AttachTarget) {

	fbLog.Debug("Attaching renderbuffer", "id", fbo.Id, "renderbuffer", rbo.Id(), "attachment", attachment)

	fbo.Bind()
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachment, gl.RENDERBUFFER, rbo.Id())
	fbo.UnBind()

	fbo.attach(FramebufferAttachment{Id: rbo.Id(), Attachment: attachment, Type: FramebufferAttachmentType_Renderbuffer})
}

// Blit copies srcRect of this framebuffer into dstRect of dst. A nil dst is the
// default framebuffer. mask is a combination of gl.COLOR_BUFFER_BIT, gl.DEPTH_BUFFER_BIT and
// gl.STENCIL_BUFFER_BIT, and filter is gl.NEAREST or gl.LINEAR.
func (fbo *Framebuffer) Blit(dst *Framebuffer, srcRect, dstRect image.Rectangle, mask uint32, filter uint32) {

	var dstId uint32
	if dst != nil {
		dstId = dst.Id
	}

	logging.Trace(fbLog, "Blitting", "src", fbo.Id, "dst", dstId)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo.Id)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dstId)
	gl.BlitFramebuffer(
		int32(srcRect.Min.X), int32(srcRect.Min.Y), int32(srcRect.Max.X), int32(srcRect.Max.Y),
		int32(dstRect.Min.X), int32(dstRect.Min.Y), int32(dstRect.Max.X), int32(dstRect.Max.Y),
		mask, filter,
	)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Rect is the full size of the framebuffer
func (fbo *Framebuffer) Rect() image.Rectangle {
	return image.Rect(0, 0, int(fbo.Width), int(fbo.Height))
}

// NewColorAttachment creates a texture or renderbuffer of the framebuffer's size
// and attaches it at the next free color attachment. The framebuffer owns it.
func (fbo *Framebuffer) NewColorAttachment(
	attachType FramebufferAttachmentType,
	attachFormat FramebufferAttachmentDataFormat,
) {

	colorIndex, ok := fbo.nextFreeColorIndex()
	assert.T(ok, "failed creating color attachment for framebuffer due it already having %d attached", fbo.ColorAttachmentsCount)
	assert.T(attachType.IsValid(), "failed creating color attachment for framebuffer due to unknown attachment type. Type=%d", int32(attachType))
	assert.T(attachFormat.IsColorFormat(), "failed creating color attachment for framebuffer due to attachment data format not being a valid color type. Data format=%d", int32(attachFormat))
	if !ok {
		return
	}

	fbo.newOwnedAttachment(gl.COLOR_ATTACHMENT0+colorIndex, attachType, attachFormat, gl.LINEAR)
}

// NewDepthStencilAttachment is like NewColorAttachment but for the single depth-stencil attachment
func (fbo *Framebuffer) NewDepthStencilAttachment(
	attachType FramebufferAttachmentType,
	attachFormat FramebufferAttachmentDataFormat,
) {

	assert.T(!fbo.HasDepthAttachment(), "failed creating depth-stencil attachment for framebuffer because a depth-stencil attachment already exists")
	assert.T(attachType.IsValid(), "failed creating depth-stencil attachment for framebuffer due to unknown attachment type. Type=%d", int32(attachType))
	assert.T(attachFormat.IsDepthFormat(), "failed creating depth-stencil attachment for framebuffer due to attachment data format not being a valid depth-stencil type. Data format=%d", int32(attachFormat))

	fbo.newOwnedAttachment(gl.DEPTH_STENCIL_ATTACHMENT, attachType, attachFormat, gl.NEAREST)
}

func (fbo *Framebuffer) newOwnedAttachment(attachment uint32, attachType FramebufferAttachmentType, attachFormat FramebufferAttachmentDataFormat, filter int32) {

	a := FramebufferAttachment{
		Attachment: attachment,
		Type:       attachType,
		Format:     attachFormat,
		Owned:      true,
	}

	fbo.Bind()

	if attachType == FramebufferAttachmentType_Texture {

		gl.GenTextures(1, &a.Id)
		if a.Id == 0 {
			logging.ErrLog.Panicf("failed to generate texture for framebuffer. GlError=%d\n", gl.GetError())
		}

		gl.BindTexture(gl.TEXTURE_2D, a.Id)
		gl.TexImage2D(gl.TEXTURE_2D, 0, attachFormat.GlInternalFormat(), int32(fbo.Width), int32(fbo.Height), 0, attachFormat.GlFormat(), attachFormat.GlDataType(), nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
		gl.BindTexture(gl.TEXTURE_2D, 0)

		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, a.Id, 0)
		metrics.Created(metrics.KindTexture2D)

	} else {

		gl.GenRenderbuffers(1, &a.Id)
		if a.Id == 0 {
			logging.ErrLog.Panicf("failed to generate render buffer for framebuffer. GlError=%d\n", gl.GetError())
		}

		gl.BindRenderbuffer(gl.RENDERBUFFER, a.Id)
		gl.RenderbufferStorage(gl.RENDERBUFFER, uint32(attachFormat.GlInternalFormat()), int32(fbo.Width), int32(fbo.Height))
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachment, gl.RENDERBUFFER, a.Id)
		metrics.Created(metrics.KindRenderbuffer)
	}

	fbo.UnBind()
	fbo.attach(a)

	fbLog.Debug("Created owned attachment", "id", fbo.Id, "attachment_id", a.Id, "attachment", attachment)
}

// Delete deletes the framebuffer and the attachments it created
func (fbo *Framebuffer) Delete() {

	if fbo.Id == 0 {
		return
	}

	for i := 0; i < len(fbo.Attachments); i++ {

		a := &fbo.Attachments[i]
		if a.Owned {
			deleteAttachment(a)
		}
	}

	fbLog.Info("Deleting", "id", fbo.Id)
	gl.DeleteFramebuffers(1, &fbo.Id)
	fbo.Id = 0
	fbo.Attachments = nil
	fbo.ColorAttachmentsCount = 0
	metrics.Deleted(metrics.KindFramebuffer)
}

func deleteAttachment(a *FramebufferAttachment) {

	if a.Type == FramebufferAttachmentType_Texture {
		gl.DeleteTextures(1, &a.Id)
		metrics.Deleted(metrics.KindTexture2D)
	} else {
		gl.DeleteRenderbuffers(1, &a.Id)
		metrics.Deleted(metrics.KindRenderbuffer)
	}
}

func NewFramebuffer(width, height uint32) Framebuffer {

	// It is allowed to have attachments of different sizes in one FBO,
	// but that complicates things (e.g. which size to use for gl.viewport),
	// so all attachments share a size
	fbo := Framebuffer{
		Width:  width,
		Height: height,
	}

	gl.GenFramebuffers(1, &fbo.Id)
	if fbo.Id == 0 {
		logging.ErrLog.Panicf("failed to generate framebuffer. GlError=%d\n", gl.GetError())
	}

	fbLog.Info("Creating new FrameBuffer", "id", fbo.Id, "width", width, "height", height)
	metrics.Created(metrics.KindFramebuffer)

	return fbo
}
