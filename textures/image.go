package textures

import (
	"fmt"
	"image"
	"image/draw"

	// Extra decoders for imgio.Open
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// LoadImage decodes an image file (png, jpeg, bmp, tiff or webp) into RGBA.
// When flipForGL is set the rows are flipped, because OpenGL expects the first
// row of pixel data to be the bottom of the image.
func LoadImage(path string, flipForGL bool) (*image.RGBA, error) {

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	if flipForGL {
		return toPackedRGBA(transform.FlipV(img)), nil
	}

	return toPackedRGBA(img), nil
}

// toPackedRGBA returns an RGBA image whose Pix has no row padding and starts
// at the first pixel, so it can be uploaded directly
func toPackedRGBA(img image.Image) *image.RGBA {

	rgba := clone.AsRGBA(img)
	if rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}

	return rebase(rgba)
}

// rebase copies img into a new image whose bounds start at 0,0
func rebase(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// pixelsToImage turns bottom-up RGBA pixels read back from a texture of size
// texW*texH into a top-down image of the area rect.
func pixelsToImage(pixels []byte, texW, texH int, rect image.Rectangle) (*image.RGBA, error) {

	if len(pixels) != texW*texH*4 {
		return nil, fmt.Errorf("expected %d bytes for a %dx%d RGBA texture but got %d", texW*texH*4, texW, texH, len(pixels))
	}

	full := image.Rect(0, 0, texW, texH)
	if rect.Empty() || !rect.In(full) {
		return nil, fmt.Errorf("export area %v is not inside the texture bounds %v", rect, full)
	}

	img := &image.RGBA{
		Pix:    pixels,
		Stride: texW * 4,
		Rect:   full,
	}

	// Rows are bottom up, so flip before cropping with top-down coordinates
	flipped := transform.FlipV(img)
	area := image.Rect(rect.Min.X, texH-rect.Max.Y, rect.Max.X, texH-rect.Min.Y)
	return rebase(flipped.SubImage(area)), nil
}

// SavePNG writes img to path as a png
func SavePNG(path string, img image.Image) error {
	err := imgio.Save(path, img, imgio.PNGEncoder())
	if err != nil {
		return fmt.Errorf("failed to save png '%s': %w", path, err)
	}
	return nil
}
