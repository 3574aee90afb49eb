package meshfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/wienergl/wiener/logging"
)

// OFFStride is the number of floats per vertex produced by ReadOFF: position then normal
const OFFStride = 6

var ErrNotOFF = errors.New("file doesn't have the OFF format")

// maxPrealloc caps how many vertices and faces are allocated up front from the
// header counts. Larger meshes grow as their lines are read, so a header
// claiming more than the file holds fails on the missing lines instead.
const maxPrealloc = 1 << 16

var offLogger = logging.Module("MeshOFF")

// LoadOFF opens path and reads it with ReadOFF
func LoadOFF(path string) (MeshData, error) {

	f, err := os.Open(path)
	if err != nil {
		return MeshData{}, fmt.Errorf("failed to open OFF file: %w", err)
	}
	defer f.Close()

	md, err := ReadOFF(f)
	if err != nil {
		return MeshData{}, fmt.Errorf("failed to read OFF file '%s': %w", path, err)
	}

	return md, nil
}

// ReadOFF parses an ASCII OFF mesh. Polygons are fan triangulated and smooth
// normals are generated with GenerateNormals, giving [x y z nx ny nz] vertices.
func ReadOFF(r io.Reader) (MeshData, error) {

	offLogger.Info("Reading mesh from OFF file")

	lr := &lineReader{sc: bufio.NewScanner(r)}

	header, err := lr.next()
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return MeshData{}, ErrNotOFF
		}
		return MeshData{}, err
	}

	if header[0] != "OFF" {
		return MeshData{}, ErrNotOFF
	}

	// Counts are allowed on the header line itself
	counts := header[1:]
	if len(counts) == 0 {
		counts, err = lr.next()
		if err != nil {
			return MeshData{}, fmt.Errorf("missing vertex and face counts: %w", err)
		}
	}

	if len(counts) < 2 {
		return MeshData{}, fmt.Errorf("line %d: expected 'vertex_count face_count [edge_count]' but got '%s'", lr.lineNum, strings.Join(counts, " "))
	}

	vertCount, err := parseCount(counts[0])
	if err != nil {
		return MeshData{}, fmt.Errorf("line %d: bad vertex count: %w", lr.lineNum, err)
	}

	faceCount, err := parseCount(counts[1])
	if err != nil {
		return MeshData{}, fmt.Errorf("line %d: bad face count: %w", lr.lineNum, err)
	}

	offLogger.Debug("Reading vertices and faces", "vertices", vertCount, "faces", faceCount)

	positions := make([]mgl32.Vec3, 0, min(vertCount, maxPrealloc))
	for i := 0; i < vertCount; i++ {

		fields, err := lr.next()
		if err != nil {
			return MeshData{}, fmt.Errorf("reading vertex %d of %d: %w", i, vertCount, err)
		}

		if len(fields) < 3 {
			return MeshData{}, fmt.Errorf("line %d: vertex needs 3 coordinates but has %d", lr.lineNum, len(fields))
		}

		var p mgl32.Vec3
		for c := 0; c < 3; c++ {
			v, err := strconv.ParseFloat(fields[c], 32)
			if err != nil {
				return MeshData{}, fmt.Errorf("line %d: bad vertex coordinate: %w", lr.lineNum, err)
			}
			p[c] = float32(v)
		}
		positions = append(positions, p)
	}

	indices := make([]uint32, 0, min(faceCount, maxPrealloc)*3)
	for i := 0; i < faceCount; i++ {

		fields, err := lr.next()
		if err != nil {
			return MeshData{}, fmt.Errorf("reading face %d of %d: %w", i, faceCount, err)
		}

		n, err := parseCount(fields[0])
		if err != nil {
			return MeshData{}, fmt.Errorf("line %d: bad face vertex count: %w", lr.lineNum, err)
		}

		if n < 3 {
			return MeshData{}, fmt.Errorf("line %d: face must have at least 3 vertices but has %d", lr.lineNum, n)
		}

		// Anything after the indices is per-face color, which is ignored
		if len(fields)-1 < n {
			return MeshData{}, fmt.Errorf("line %d: face declares %d vertices but lists %d", lr.lineNum, n, len(fields)-1)
		}

		face := make([]uint32, n)
		for j := 0; j < n; j++ {

			idx, err := strconv.ParseUint(fields[j+1], 10, 32)
			if err != nil {
				return MeshData{}, fmt.Errorf("line %d: bad face index: %w", lr.lineNum, err)
			}

			if idx >= uint64(vertCount) {
				return MeshData{}, fmt.Errorf("line %d: face index %d is out of range for %d vertices", lr.lineNum, idx, vertCount)
			}

			face[j] = uint32(idx)
		}

		for j := 1; j < n-1; j++ {
			indices = append(indices, face[0], face[j], face[j+1])
		}
	}

	normals := GenerateNormals(positions, indices)

	md := MeshData{
		Vertices: make([]float32, 0, len(positions)*OFFStride),
		Indices:  indices,
		Stride:   OFFStride,
	}

	for i := range positions {
		p, n := positions[i], normals[i]
		md.Vertices = append(md.Vertices, p[0], p[1], p[2], n[0], n[1], n[2])
	}

	return md, nil
}

func parseCount(s string) (int, error) {

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, fmt.Errorf("count can't be negative, got %d", n)
	}

	return n, nil
}

// lineReader returns the fields of the next line that isn't blank or a comment
type lineReader struct {
	sc      *bufio.Scanner
	lineNum int
}

func (lr *lineReader) next() ([]string, error) {

	for lr.sc.Scan() {
		lr.lineNum++

		line := lr.sc.Text()
		if i := strings.IndexByte(line, '#'); i != -1 {
			line = line[:i]
		}

		// Fields also drops the '\r' of CRLF files
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		return fields, nil
	}

	if err := lr.sc.Err(); err != nil {
		return nil, err
	}

	return nil, io.ErrUnexpectedEOF
}
