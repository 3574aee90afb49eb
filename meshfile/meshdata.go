// Package meshfile reads mesh files into interleaved vertex data that can be
// uploaded as-is to a vertex buffer.
package meshfile

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshData is interleaved vertex data. Every vertex starts with its x,y,z
// position, and Stride is the number of floats per vertex.
type MeshData struct {
	Vertices []float32
	Indices  []uint32
	Stride   int
}

func (md MeshData) VertexCount() int {
	if md.Stride <= 0 {
		return 0
	}
	return len(md.Vertices) / md.Stride
}

func (md MeshData) checkStride() error {
	if md.Stride < 3 {
		return fmt.Errorf("stride must be at least 3 to hold a position, but is %d", md.Stride)
	}
	return nil
}

func (md MeshData) Validate() error {

	if err := md.checkStride(); err != nil {
		return err
	}

	if len(md.Vertices)%md.Stride != 0 {
		return fmt.Errorf("vertex data of %d floats is not a multiple of the stride %d", len(md.Vertices), md.Stride)
	}

	if len(md.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(md.Indices))
	}

	vertCount := uint32(md.VertexCount())
	for i, idx := range md.Indices {
		if idx >= vertCount {
			return fmt.Errorf("index %d at position %d is out of range for %d vertices", idx, i, vertCount)
		}
	}

	return nil
}

// Positions returns the x,y,z of every vertex
func (md MeshData) Positions() ([]mgl32.Vec3, error) {

	if err := md.checkStride(); err != nil {
		return nil, err
	}

	count := md.VertexCount()
	positions := make([]mgl32.Vec3, count)
	for i := 0; i < count; i++ {
		base := i * md.Stride
		positions[i] = mgl32.Vec3{md.Vertices[base], md.Vertices[base+1], md.Vertices[base+2]}
	}

	return positions, nil
}

// Bounds returns the axis aligned bounding box of the positions. Empty data
// gives two zero vectors.
func (md MeshData) Bounds() (min, max mgl32.Vec3, err error) {

	if err := md.checkStride(); err != nil {
		return min, max, err
	}

	count := md.VertexCount()
	if count == 0 {
		return min, max, nil
	}

	min = mgl32.Vec3{md.Vertices[0], md.Vertices[1], md.Vertices[2]}
	max = min
	for i := 1; i < count; i++ {
		base := i * md.Stride
		for c := 0; c < 3; c++ {
			v := md.Vertices[base+c]
			if v < min[c] {
				min[c] = v
			}
			if v > max[c] {
				max[c] = v
			}
		}
	}

	return min, max, nil
}

// WithColor returns a copy with r,g,b appended to every vertex
func (md MeshData) WithColor(r, g, b float32) MeshData {

	count := md.VertexCount()
	out := MeshData{
		Vertices: make([]float32, 0, count*(md.Stride+3)),
		Indices:  append([]uint32(nil), md.Indices...),
		Stride:   md.Stride + 3,
	}

	for i := 0; i < count; i++ {
		base := i * md.Stride
		out.Vertices = append(out.Vertices, md.Vertices[base:base+md.Stride]...)
		out.Vertices = append(out.Vertices, r, g, b)
	}

	return out
}
