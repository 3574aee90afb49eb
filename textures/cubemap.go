package textures

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var cubeLog = logging.Module("CubeMap")

// Faces are in the order +X, -X, +Y, -Y, +Z, -Z
const CubeMapFaces = 6

type CubeMap struct {
	Params

	id uint32
}

var _ Texture = &CubeMap{}

func NewCubeMap() *CubeMap {

	cm := &CubeMap{
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
	}

	gl.GenTextures(1, &cm.id)
	if cm.id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL cube map texture")
	}

	cubeLog.Info("Creating new CubeMap", "id", cm.id)
	metrics.Created(metrics.KindCubeMap)

	return cm
}

func (cm *CubeMap) Id() uint32 {
	return cm.id
}

func (cm *CubeMap) Target() uint32 {
	return gl.TEXTURE_CUBE_MAP
}

func (cm *CubeMap) WithSlot(slot uint32) *CubeMap {
	cm.Slot = slot
	return cm
}

func (cm *CubeMap) WithFormat(format uint32) *CubeMap {
	cm.Format = format
	return cm
}

func (cm *CubeMap) WithInternalFormat(internalFormat int32) *CubeMap {
	cm.InternalFormat = internalFormat
	return cm
}

func (cm *CubeMap) WithDataType(dataType uint32) *CubeMap {
	cm.DataType = dataType
	return cm
}

func (cm *CubeMap) WithWrap(s, t, r int32) *CubeMap {
	cm.WrapS, cm.WrapT, cm.WrapR = s, t, r
	return cm
}

func (cm *CubeMap) WithFilters(min, mag int32) *CubeMap {
	cm.MinFilter, cm.MagFilter = min, mag
	return cm
}

func (cm *CubeMap) Build() *CubeMap {

	cubeLog.Info("Building CubeMap", "id", cm.id, "wrap_s", cm.WrapS, "wrap_t", cm.WrapT, "wrap_r", cm.WrapR, "min_filter", cm.MinFilter, "mag_filter", cm.MagFilter)

	cm.Bind()
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, cm.WrapS)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, cm.WrapT)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, cm.WrapR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, cm.MinFilter)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, cm.MagFilter)

	return cm
}

// BufferImages uploads one image per face using the cube map's format and data type
func (cm *CubeMap) BufferImages(faces [CubeMapFaces][]byte, widths, heights [CubeMapFaces]int32) {

	cubeLog.Info("Buffering images to CubeMap", "id", cm.id)

	cm.Bind()
	for i := 0; i < CubeMapFaces; i++ {

		var ptr any
		if len(faces[i]) > 0 {
			ptr = &faces[i][0]
		}

		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, cm.InternalFormat, widths[i], heights[i], 0, cm.Format, cm.DataType, gl.Ptr(ptr))
		metrics.Uploaded(metrics.KindCubeMap, len(faces[i]))
	}
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
}

// BufferEmpty allocates every face with the given size
func (cm *CubeMap) BufferEmpty(widths, heights [CubeMapFaces]int32) {

	cubeLog.Info("Allocating empty CubeMap", "id", cm.id)

	cm.Bind()
	for i := 0; i < CubeMapFaces; i++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, cm.InternalFormat, widths[i], heights[i], 0, cm.Format, cm.DataType, nil)
	}
}

// BufferFromFiles decodes six image files and uploads them as RGBA8. Cube map
// faces use a top-left origin, so the images are not flipped.
func (cm *CubeMap) BufferFromFiles(paths [CubeMapFaces]string) error {

	var (
		faces   [CubeMapFaces][]byte
		widths  [CubeMapFaces]int32
		heights [CubeMapFaces]int32
	)

	for i, p := range paths {

		img, err := LoadImage(p, false)
		if err != nil {
			return fmt.Errorf("failed to load cube map face %d: %w", i, err)
		}

		faces[i], widths[i], heights[i] = img.Pix, int32(img.Rect.Dx()), int32(img.Rect.Dy())
	}

	cm.Format = gl.RGBA
	cm.InternalFormat = gl.RGBA8
	cm.DataType = gl.UNSIGNED_BYTE
	cm.BufferImages(faces, widths, heights)
	return nil
}

// BufferRGBA uploads decoded face images as RGBA8
func (cm *CubeMap) BufferRGBA(faces [CubeMapFaces]*image.RGBA) {

	var (
		pix     [CubeMapFaces][]byte
		widths  [CubeMapFaces]int32
		heights [CubeMapFaces]int32
	)

	for i, img := range faces {
		pix[i], widths[i], heights[i] = img.Pix, int32(img.Rect.Dx()), int32(img.Rect.Dy())
	}

	cm.Format = gl.RGBA
	cm.InternalFormat = gl.RGBA8
	cm.DataType = gl.UNSIGNED_BYTE
	cm.BufferImages(pix, widths, heights)
}

func (cm *CubeMap) BindSlot() {
	logging.Trace(cubeLog, "Binding texture slot", "slot", cm.Slot)
	gl.ActiveTexture(gl.TEXTURE0 + cm.Slot)
}

func (cm *CubeMap) Bind() {
	logging.Trace(cubeLog, "Binding", "id", cm.id)
	cm.BindSlot()
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cm.id)
}

func (cm *CubeMap) UnBind() {
	logging.Trace(cubeLog, "Unbinding", "id", cm.id)
	cm.BindSlot()
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}

func (cm *CubeMap) Delete() {

	if cm.id == 0 {
		return
	}

	cubeLog.Info("Deleting", "id", cm.id)
	gl.DeleteTextures(1, &cm.id)
	cm.id = 0
	metrics.Deleted(metrics.KindCubeMap)
}
