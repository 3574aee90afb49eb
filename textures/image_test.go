package textures

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

// stripes is 2 pixels wide with a red top row, a green middle row and a blue bottom row
func stripes() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for x := 0; x < 2; x++ {
		img.SetRGBA(x, 0, red)
		img.SetRGBA(x, 1, green)
		img.SetRGBA(x, 2, blue)
	}
	return img
}

func TestSaveAndLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stripes.png")
	require.NoError(t, SavePNG(path, stripes()))

	img, err := LoadImage(path, false)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 3), img.Rect)
	assert.Equal(t, 2*4, img.Stride)
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, blue, img.RGBAAt(1, 2))

	flipped, err := LoadImage(path, true)
	require.NoError(t, err)
	assert.Equal(t, blue, flipped.RGBAAt(0, 0))
	assert.Equal(t, green, flipped.RGBAAt(1, 1))
	assert.Equal(t, red, flipped.RGBAAt(1, 2))

	// Pix starts at the first (bottom) row so it can be uploaded as-is
	assert.Equal(t, []byte{0, 0, 255, 255}, flipped.Pix[:4])
}

func TestLoadImageErrors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"), true)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = LoadImage(path, false)
	assert.Error(t, err)
}

func TestToPackedRGBARebases(t *testing.T) {
	sub := stripes().SubImage(image.Rect(0, 1, 2, 3))

	packed := toPackedRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), packed.Rect)
	assert.Equal(t, green, packed.RGBAAt(0, 0))
	assert.Equal(t, blue, packed.RGBAAt(1, 1))
}

func TestPixelsToImage(t *testing.T) {
	// Bottom-up rows as read back from OpenGL: blue row is the bottom of the image
	pixels := []byte{
		0, 0, 255, 255, 0, 0, 255, 255,
		0, 255, 0, 255, 0, 255, 0, 255,
		255, 0, 0, 255, 255, 0, 0, 255,
	}

	img, err := pixelsToImage(pixels, 2, 3, image.Rect(0, 0, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, stripes().Pix, img.Pix)

	// The bottom row in OpenGL coordinates is the last row of the image
	bottom, err := pixelsToImage(pixels, 2, 3, image.Rect(0, 0, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), bottom.Rect)
	assert.Equal(t, blue, bottom.RGBAAt(0, 0))

	top, err := pixelsToImage(pixels, 2, 3, image.Rect(1, 2, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, red, top.RGBAAt(0, 0))
}

func TestPixelsToImageErrors(t *testing.T) {
	_, err := pixelsToImage(make([]byte, 10), 2, 2, image.Rect(0, 0, 2, 2))
	assert.ErrorContains(t, err, "expected 16 bytes")

	_, err = pixelsToImage(make([]byte, 16), 2, 2, image.Rect(0, 0, 3, 2))
	assert.ErrorContains(t, err, "not inside the texture bounds")

	_, err = pixelsToImage(make([]byte, 16), 2, 2, image.Rectangle{})
	assert.Error(t, err)
}
