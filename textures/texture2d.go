package textures

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var tex2DLog = logging.Module("Texture2D")

type Texture2D struct {
	Params

	id     uint32
	target uint32
	// bound is set once the texture name has been bound, after which its target is fixed
	bound bool

	Width   int32
	Height  int32
	Samples int32
}

var _ Texture = &Texture2D{}

// NewTexture2D creates an RGB texture on slot 0 that repeats and filters linearly
func NewTexture2D() *Texture2D {

	tex := &Texture2D{
		Params: Params{
			InternalFormat: gl.RGB,
			Format:         gl.RGB,
			DataType:       gl.UNSIGNED_BYTE,
			WrapS:          gl.REPEAT,
			WrapT:          gl.REPEAT,
			WrapR:          gl.REPEAT,
			MinFilter:      gl.LINEAR,
			MagFilter:      gl.LINEAR,
		},
		target: gl.TEXTURE_2D,
	}

	gl.GenTextures(1, &tex.id)
	if tex.id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL texture")
	}

	tex2DLog.Info("Creating new Texture2D", "id", tex.id)
	metrics.Created(metrics.KindTexture2D)

	return tex
}

func (t *Texture2D) Id() uint32 {
	return t.id
}

// Target is gl.TEXTURE_2D, or gl.TEXTURE_2D_MULTISAMPLE after BufferMultisampled
func (t *Texture2D) Target() uint32 {
	return t.target
}

// useTarget switches to target unless the texture was already bound as something else.
// OpenGL fixes a texture's target the first time it is bound.
func (t *Texture2D) useTarget(target uint32) error {

	if t.target == target {
		return nil
	}

	if t.bound {
		return fmt.Errorf("texture %d is already a %s texture and can't become a %s texture", t.id, targetName(t.target), targetName(target))
	}

	t.target = target
	return nil
}

func targetName(target uint32) string {
	switch target {
	case gl.TEXTURE_2D:
		return "2D"
	case gl.TEXTURE_2D_MULTISAMPLE:
		return "multisampled 2D"
	default:
		return fmt.Sprintf("0x%X", target)
	}
}

func (t *Texture2D) WithSlot(slot uint32) *Texture2D {
	logging.Trace(tex2DLog, "Setting texture slot", "slot", slot)
	t.Slot = slot
	return t
}

// WithFormat sets both the format and the internal format. Use WithInternalFormat
// after it if they should differ.
func (t *Texture2D) WithFormat(format uint32) *Texture2D {
	logging.Trace(tex2DLog, "Setting format", "format", format)
	t.Format = format
	t.InternalFormat = int32(format)
	return t
}

func (t *Texture2D) WithInternalFormat(internalFormat int32) *Texture2D {
	logging.Trace(tex2DLog, "Setting internal format", "format", internalFormat)
	t.InternalFormat = internalFormat
	return t
}

func (t *Texture2D) WithDataType(dataType uint32) *Texture2D {
	t.DataType = dataType
	return t
}

func (t *Texture2D) WithWrap(s, tw, r int32) *Texture2D {
	logging.Trace(tex2DLog, "Setting wrap", "s", s, "t", tw, "r", r)
	t.WrapS, t.WrapT, t.WrapR = s, tw, r
	return t
}

func (t *Texture2D) WithFilters(min, mag int32) *Texture2D {
	logging.Trace(tex2DLog, "Setting filters", "min", min, "mag", mag)
	t.MinFilter, t.MagFilter = min, mag
	return t
}

// Build applies the wrap and filter parameters to the texture
func (t *Texture2D) Build() *Texture2D {

	tex2DLog.Info("Building Texture2D", "id", t.id, "wrap_s", t.WrapS, "wrap_t", t.WrapT, "wrap_r", t.WrapR, "min_filter", t.MinFilter, "mag_filter", t.MagFilter)

	t.Bind()

	// Multisampled textures have no sampler state
	if t.target == gl.TEXTURE_2D_MULTISAMPLE {
		return t
	}

	gl.TexParameteri(t.target, gl.TEXTURE_WRAP_S, t.WrapS)
	gl.TexParameteri(t.target, gl.TEXTURE_WRAP_T, t.WrapT)
	gl.TexParameteri(t.target, gl.TEXTURE_WRAP_R, t.WrapR)
	gl.TexParameteri(t.target, gl.TEXTURE_MIN_FILTER, t.MinFilter)
	gl.TexParameteri(t.target, gl.TEXTURE_MAG_FILTER, t.MagFilter)

	return t
}

// BufferImage uploads pixels laid out per Format and DataType and generates mipmaps
func (t *Texture2D) BufferImage(pixels []byte, width, height int32) error {

	if err := t.useTarget(gl.TEXTURE_2D); err != nil {
		return err
	}

	tex2DLog.Info("Buffering image to Texture2D", "id", t.id, "width", width, "height", height)

	t.Width, t.Height = width, height
	t.Bind()

	var ptr any
	if len(pixels) > 0 {
		ptr = &pixels[0]
	}

	gl.TexImage2D(gl.TEXTURE_2D, 0, t.InternalFormat, width, height, 0, t.Format, t.DataType, gl.Ptr(ptr))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	metrics.Uploaded(metrics.KindTexture2D, len(pixels))
	return nil
}

// BufferRGBA uploads img as RGBA8
func (t *Texture2D) BufferRGBA(img *image.RGBA) error {
	t.Format = gl.RGBA
	t.InternalFormat = gl.RGBA8
	t.DataType = gl.UNSIGNED_BYTE
	return t.BufferImage(img.Pix, int32(img.Rect.Dx()), int32(img.Rect.Dy()))
}

// BufferFromFile decodes an image file and uploads it as RGBA8. The image is
// flipped so that uv (0,0) is its bottom left corner.
func (t *Texture2D) BufferFromFile(path string) error {

	img, err := LoadImage(path, true)
	if err != nil {
		return fmt.Errorf("failed to buffer '%s' to texture %d: %w", path, t.id, err)
	}

	return t.BufferRGBA(img)
}

// BufferEmpty allocates storage without uploading any data, e.g. for use as a
// framebuffer attachment
func (t *Texture2D) BufferEmpty(width, height int32) error {

	if err := t.useTarget(gl.TEXTURE_2D); err != nil {
		return err
	}

	tex2DLog.Info("Allocating empty Texture2D", "id", t.id, "width", width, "height", height)

	t.Width, t.Height = width, height
	t.Bind()
	gl.TexImage2D(gl.TEXTURE_2D, 0, t.InternalFormat, width, height, 0, t.Format, t.DataType, nil)
	return nil
}

// BufferMultisampled turns this into a gl.TEXTURE_2D_MULTISAMPLE texture with
// the given number of samples per pixel. It must be called before anything binds the
// texture, so it can't follow Build.
func (t *Texture2D) BufferMultisampled(samples, width, height int32) error {

	if err := t.useTarget(gl.TEXTURE_2D_MULTISAMPLE); err != nil {
		return err
	}

	tex2DLog.Info("Allocating multisampled Texture2D", "id", t.id, "samples", samples, "width", width, "height", height)

	t.Width, t.Height, t.Samples = width, height, samples

	t.Bind()
	gl.TexImage2DMultisample(gl.TEXTURE_2D_MULTISAMPLE, samples, uint32(t.InternalFormat), width, height, true)
	return nil
}

// Export reads the texture back from the GPU and writes the area rect to path
// as a png. rect uses OpenGL coordinates, with 0,0 at the bottom left.
func (t *Texture2D) Export(rect image.Rectangle, path string) error {

	if t.target != gl.TEXTURE_2D {
		return fmt.Errorf("texture %d can't be exported because multisampled textures can't be read back", t.id)
	}

	tex2DLog.Info("Exporting Texture2D", "id", t.id, "rect", rect, "path", path)

	pixels := make([]byte, int(t.Width)*int(t.Height)*4)
	if len(pixels) == 0 {
		return fmt.Errorf("texture %d has no storage to export", t.id)
	}

	t.Bind()
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTexImage(gl.TEXTURE_2D, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))

	img, err := pixelsToImage(pixels, int(t.Width), int(t.Height), rect)
	if err != nil {
		return fmt.Errorf("failed to export texture %d: %w", t.id, err)
	}

	return SavePNG(path, img)
}

// BindSlot makes Slot the active texture unit
func (t *Texture2D) BindSlot() {
	logging.Trace(tex2DLog, "Binding texture slot", "slot", t.Slot)
	gl.ActiveTexture(gl.TEXTURE0 + t.Slot)
}

func (t *Texture2D) Bind() {
	logging.Trace(tex2DLog, "Binding", "id", t.id)
	t.BindSlot()
	gl.BindTexture(t.target, t.id)
	t.bound = true
}

func (t *Texture2D) UnBind() {
	logging.Trace(tex2DLog, "Unbinding", "id", t.id)
	t.BindSlot()
	gl.BindTexture(t.target, 0)
}

func (t *Texture2D) Delete() {

	if t.id == 0 {
		return
	}

	tex2DLog.Info("Deleting", "id", t.id)
	gl.DeleteTextures(1, &t.id)
	t.id = 0
	metrics.Deleted(metrics.KindTexture2D)
}
