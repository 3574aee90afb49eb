package main

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// Position then color
var triangleVerts = []float32{
	-0.5, -0.5, 0, 1, 0, 0,
	0.5, -0.5, 0, 0, 1, 0,
	0, 0.5, 0, 0, 0, 1,
}

var twoTrianglesVerts = []float32{
	-0.9, -0.4, 0, 1, 0.5, 0,
	-0.1, -0.4, 0, 1, 0.5, 0,
	-0.5, 0.4, 0, 1, 0.9, 0.2,

	0.1, -0.4, 0, 0, 0.6, 1,
	0.9, -0.4, 0, 0, 0.6, 1,
	0.5, 0.4, 0, 0.3, 0.9, 1,
}

var twoTrianglesIndices = []uint32{0, 1, 2, 3, 4, 5}

// Position then uv, covering all of clip space
var screenQuadVerts = []float32{
	-1, -1, 0, 0, 0,
	1, -1, 0, 1, 0,
	1, 1, 0, 1, 1,
	-1, 1, 0, 0, 1,
}

var quadIndices = []uint32{0, 1, 2, 2, 3, 0}

// Position then uv, half the size of the screen
var texturedQuadVerts = []float32{
	-0.5, -0.5, 0, 0, 0,
	0.5, -0.5, 0, 1, 0,
	0.5, 0.5, 0, 1, 1,
	-0.5, 0.5, 0, 0, 1,
}

var skyboxCubeVerts = []float32{
	-1, -1, -1,
	1, -1, -1,
	1, 1, -1,
	-1, 1, -1,
	-1, -1, 1,
	1, -1, 1,
	1, 1, 1,
	-1, 1, 1,
}

// Wound to face the inside of the cube
var skyboxCubeIndices = []uint32{
	0, 2, 1, 0, 3, 2,
	4, 5, 6, 4, 6, 7,
	0, 4, 7, 0, 7, 3,
	1, 2, 6, 1, 6, 5,
	0, 1, 5, 0, 5, 4,
	3, 7, 6, 3, 6, 2,
}

func checkerboard(size, cells int, a, b color.RGBA) *image.RGBA {

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cellSize := max(size/cells, 1)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cellSize+y/cellSize)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}

	return img
}

// skyGradient is a cube map face going from the horizon colour to the zenith colour.
// Faces are in the order +X, -X, +Y, -Y, +Z, -Z and their rows go top to bottom.
func skyGradient(size, face int, horizon, zenith color.RGBA) *image.RGBA {

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {

		var t float32
		switch face {
		case 2:
			t = 1
		case 3:
			t = 0
		default:
			t = math32.Max(0, 1-float32(y)/float32(size-1)*2)
		}

		c := color.RGBA{
			R: lerp8(horizon.R, zenith.R, t),
			G: lerp8(horizon.G, zenith.G, t),
			B: lerp8(horizon.B, zenith.B, t),
			A: 255,
		}

		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	return img
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(math32.Round(float32(a) + (float32(b)-float32(a))*t))
}
