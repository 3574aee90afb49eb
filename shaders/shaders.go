package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var shaderLog = logging.Module("Shader")

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete() {

	if s.Id == 0 {
		return
	}

	shaderLog.Info("Deleting shader", "id", s.Id, "type", s.Type.String())
	gl.DeleteShader(s.Id)
	s.Id = 0
	metrics.Deleted(metrics.KindShader)
}

// ShaderSource is one stage of a combined shader file
type ShaderSource struct {
	Type ShaderType
	Src  []byte
}

var combinedShaderTags = []struct {
	tag string
	t   ShaderType
}{
	{"vertex", ShaderType_Vertex},
	{"fragment", ShaderType_Fragment},
	{"geometry", ShaderType_Geometry},
	{"tesscontrol", ShaderType_TessControl},
	{"tesseval", ShaderType_TessEvaluation},
}

// SplitCombinedShaderSrc splits a file where every stage starts with a line like
// '//shader:vertex'. Vertex and fragment stages are required. Supported tags are
// vertex, fragment, geometry, tesscontrol and tesseval.
func SplitCombinedShaderSrc(shaderSrc []byte) ([]ShaderSource, error) {

	parts := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(parts) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	sources := make([]ShaderSource, 0, len(parts)-1)
	seen := make(map[ShaderType]bool, len(parts)-1)

	// Anything before the first tag is ignored
	for i := 1; i < len(parts); i++ {

		src := parts[i]

		shdrType := ShaderType_Unknown
		for _, ct := range combinedShaderTags {
			if bytes.HasPrefix(src, []byte(ct.tag)) {
				src = src[len(ct.tag):]
				shdrType = ct.t
				break
			}
		}

		if shdrType == ShaderType_Unknown {
			return nil, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry' or '//shader:tesscontrol' or '//shader:tesseval'")
		}

		if seen[shdrType] {
			return nil, fmt.Errorf("combined shader has more than one %s shader", shdrType.String())
		}
		seen[shdrType] = true

		sources = append(sources, ShaderSource{Type: shdrType, Src: src})
	}

	if !seen[ShaderType_Vertex] {
		return nil, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if !seen[ShaderType_Fragment] {
		return nil, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return sources, nil
}

func LoadAndCompileCombinedShader(shaderPath string) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to read shader: %w", err)
	}

	sp, err := LoadAndCompileCombinedShaderSrc(combinedSource)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to load '%s': %w", shaderPath, err)
	}

	return sp, nil
}

func LoadAndCompileCombinedShaderSrc(shaderSrc []byte) (ShaderProgram, error) {

	sources, err := SplitCombinedShaderSrc(shaderSrc)
	if err != nil {
		return ShaderProgram{}, err
	}

	shdrs := make([]Shader, 0, len(sources))
	for _, s := range sources {

		shdr, err := CompileShaderOfType(s.Src, s.Type)
		if err != nil {
			for i := range shdrs {
				shdrs[i].Delete()
			}
			return ShaderProgram{}, err
		}

		shdrs = append(shdrs, shdr)
	}

	return NewShaderProgramFromShaders(shdrs...)
}

// LoadShaderFile compiles a single stage, picking the type from the file extension
func LoadShaderFile(path string) (Shader, error) {

	shdrType, err := ShaderTypeFromPath(path)
	if err != nil {
		return Shader{}, fmt.Errorf("failed to load shader '%s': %w", path, err)
	}

	return LoadShaderFileOfType(path, shdrType)
}

func LoadShaderFileOfType(path string, shaderType ShaderType) (Shader, error) {

	src, err := os.ReadFile(path)
	if err != nil {
		return Shader{}, fmt.Errorf("failed to read shader: %w", err)
	}

	shdr, err := CompileShaderOfType(src, shaderType)
	if err != nil {
		return Shader{}, fmt.Errorf("failed to compile '%s': %w", path, err)
	}

	return shdr, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := gl.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	shaderLog.Info("Creating new shader", "id", shaderId, "type", shaderType.String())
	metrics.Created(metrics.KindShader)

	// Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId, shaderType); err != nil {
		gl.DeleteShader(shaderId)
		metrics.Deleted(metrics.KindShader)
		return Shader{}, err
	}

	return Shader{Id: shaderId, Type: shaderType}, nil
}

func getShaderCompileErrors(shaderId uint32, shaderType ShaderType) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength)+1)
	gl.GetShaderInfoLog(shaderId, logLength, nil, gl.Str(log))

	errMsg := strings.TrimSpace(gl.GoStr(gl.Str(log)))
	shaderLog.Error("Compilation of shader failed", "id", shaderId, "type", shaderType.String(), "err", errMsg)
	return fmt.Errorf("failed to compile %s shader: %s", shaderType.String(), errMsg)
}
