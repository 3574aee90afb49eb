package shaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/assert"
)

var ErrUnknownShaderExt = errors.New("unknown shader file extension")

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
	ShaderType_TessControl
	ShaderType_TessEvaluation
	ShaderType_Compute
)

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return gl.GEOMETRY_SHADER
	case ShaderType_TessControl:
		return gl.TESS_CONTROL_SHADER
	case ShaderType_TessEvaluation:
		return gl.TESS_EVALUATION_SHADER
	case ShaderType_Compute:
		return gl.COMPUTE_SHADER
	}

	assert.T(false, "Unknown shader type '%d'", int32(s))
	return 0
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	case ShaderType_TessControl:
		return "tess_control"
	case ShaderType_TessEvaluation:
		return "tess_evaluation"
	case ShaderType_Compute:
		return "compute"
	default:
		return "unknown"
	}
}

var extToShaderType = map[string]ShaderType{
	"v":      ShaderType_Vertex,
	"vs":     ShaderType_Vertex,
	"vsh":    ShaderType_Vertex,
	"vert":   ShaderType_Vertex,
	"vertex": ShaderType_Vertex,

	"f":        ShaderType_Fragment,
	"fs":       ShaderType_Fragment,
	"fsh":      ShaderType_Fragment,
	"frag":     ShaderType_Fragment,
	"fragment": ShaderType_Fragment,

	"g":        ShaderType_Geometry,
	"gs":       ShaderType_Geometry,
	"geom":     ShaderType_Geometry,
	"geometry": ShaderType_Geometry,

	"control":     ShaderType_TessControl,
	"tesc":        ShaderType_TessControl,
	"tescontrol":  ShaderType_TessControl,
	"tesscontrol": ShaderType_TessControl,

	"eval":     ShaderType_TessEvaluation,
	"tese":     ShaderType_TessEvaluation,
	"teseval":  ShaderType_TessEvaluation,
	"tesseval": ShaderType_TessEvaluation,

	"comp":    ShaderType_Compute,
	"compute": ShaderType_Compute,
}

// ShaderTypeFromExt maps a file extension (with or without the dot) to a shader type,
// so "frag", ".fs" and "fragment" are all fragment shaders. The match is case sensitive.
func ShaderTypeFromExt(ext string) (ShaderType, error) {

	t, ok := extToShaderType[strings.TrimPrefix(ext, ".")]
	if !ok {
		return ShaderType_Unknown, fmt.Errorf("%w '%s'", ErrUnknownShaderExt, ext)
	}

	return t, nil
}

// ShaderTypeFromPath uses the last extension of path, so "light.frag.glsl" is not recognized
func ShaderTypeFromPath(path string) (ShaderType, error) {
	return ShaderTypeFromExt(filepath.Ext(path))
}
