package shaders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/wienergl/wiener/assert"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/metrics"
)

var programLog = logging.Module("ShaderProgram")

type ShaderProgram struct {
	Id   uint32
	Name string

	// Shaders attached but not yet linked. They are deleted by Link.
	Shaders []Shader

	UnifLocs map[string]int32
}

func (sp *ShaderProgram) AttachShader(shader Shader) {

	assert.T(shader.Id != 0, "Attaching shader with id 0 to program %d", sp.Id)

	for _, s := range sp.Shaders {
		if s.Type == shader.Type {
			programLog.Warn("Program already has a shader of this type attached", "program", sp.Id, "type", shader.Type.String())
		}
	}

	gl.AttachShader(sp.Id, shader.Id)
	sp.Shaders = append(sp.Shaders, shader)
}

// Link links the attached shaders, then detaches and deletes them whether linking succeeded or not.
// Uniform locations cached before the link are dropped.
func (sp *ShaderProgram) Link() error {

	if len(sp.Shaders) == 0 {
		return errors.New("can't link a shader program with no attached shaders")
	}

	gl.LinkProgram(sp.Id)

	for i := range sp.Shaders {
		gl.DetachShader(sp.Id, sp.Shaders[i].Id)
		sp.Shaders[i].Delete()
	}
	sp.Shaders = sp.Shaders[:0]
	clear(sp.UnifLocs)

	var linkedSuccessfully int32
	gl.GetProgramiv(sp.Id, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		programLog.Debug("Linked shader program", "id", sp.Id, "name", sp.Name)
		return nil
	}

	var logLength int32
	gl.GetProgramiv(sp.Id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength)+1)
	gl.GetProgramInfoLog(sp.Id, logLength, nil, gl.Str(log))

	errMsg := strings.TrimSpace(gl.GoStr(gl.Str(log)))
	programLog.Error("Program Link Error", "id", sp.Id, "name", sp.Name, "err", errMsg)
	return fmt.Errorf("failed to link shader program %d: %s", sp.Id, errMsg)
}

func (sp *ShaderProgram) Bind() {
	logging.Trace(programLog, "Binding", "id", sp.Id)
	gl.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind() {
	logging.Trace(programLog, "UnBinding", "id", sp.Id)
	gl.UseProgram(0)
}

func (sp *ShaderProgram) Delete() {

	if sp.Id == 0 {
		return
	}

	for i := range sp.Shaders {
		sp.Shaders[i].Delete()
	}
	sp.Shaders = nil

	programLog.Info("Deleting shader program", "id", sp.Id, "name", sp.Name)
	gl.DeleteProgram(sp.Id)
	sp.Id = 0
	clear(sp.UnifLocs)
	metrics.Deleted(metrics.KindShaderProgram)
}

// GetUnifLoc returns the cached location of a uniform, or -1 when the program doesn't have it.
// Setting a uniform at -1 is ignored by OpenGl, which is what happens for uniforms the driver
// optimized away.
func (sp *ShaderProgram) GetUnifLoc(uniformName string) int32 {

	loc, ok := sp.UnifLocs[uniformName]
	if ok {
		return loc
	}

	name, free := gl.Strs(uniformName + "\x00")
	loc = gl.GetUniformLocation(sp.Id, *name)
	free()

	if loc == -1 {
		programLog.Warn("Uniform doesn't exist on shader program", "uniform", uniformName, "program", sp.Id, "name", sp.Name)
	}

	if sp.UnifLocs == nil {
		sp.UnifLocs = make(map[string]int32)
	}
	sp.UnifLocs[uniformName] = loc
	return loc
}

// HasUniform is like GetUnifLoc but never warns
func (sp *ShaderProgram) HasUniform(uniformName string) bool {

	if loc, ok := sp.UnifLocs[uniformName]; ok {
		return loc != -1
	}

	name, free := gl.Strs(uniformName + "\x00")
	loc := gl.GetUniformLocation(sp.Id, *name)
	free()

	if sp.UnifLocs == nil {
		sp.UnifLocs = make(map[string]int32)
	}
	sp.UnifLocs[uniformName] = loc
	return loc != -1
}

func (sp *ShaderProgram) SetUniformBlockBindingPoint(uniformBlockName string, bindPointIndex uint32) {

	name, free := gl.Strs(uniformBlockName + "\x00")
	defer free()

	index := gl.GetUniformBlockIndex(sp.Id, *name)
	assert.T(index != gl.INVALID_INDEX, "SetUniformBlockBindingPoint for shader program %d (%s) failed because the uniform block '%s' wasn't found", sp.Id, sp.Name, uniformBlockName)

	gl.UniformBlockBinding(sp.Id, index, bindPointIndex)
}

func (sp *ShaderProgram) SetUnif1i(uniformName string, x int32) {
	gl.ProgramUniform1i(sp.Id, sp.GetUnifLoc(uniformName), x)
}

func (sp *ShaderProgram) SetUnif2i(uniformName string, x, y int32) {
	gl.ProgramUniform2i(sp.Id, sp.GetUnifLoc(uniformName), x, y)
}

func (sp *ShaderProgram) SetUnif3i(uniformName string, x, y, z int32) {
	gl.ProgramUniform3i(sp.Id, sp.GetUnifLoc(uniformName), x, y, z)
}

func (sp *ShaderProgram) SetUnif4i(uniformName string, x, y, z, w int32) {
	gl.ProgramUniform4i(sp.Id, sp.GetUnifLoc(uniformName), x, y, z, w)
}

func (sp *ShaderProgram) SetUnif1f(uniformName string, x float32) {
	gl.ProgramUniform1f(sp.Id, sp.GetUnifLoc(uniformName), x)
}

func (sp *ShaderProgram) SetUnif2f(uniformName string, x, y float32) {
	gl.ProgramUniform2f(sp.Id, sp.GetUnifLoc(uniformName), x, y)
}

func (sp *ShaderProgram) SetUnif3f(uniformName string, x, y, z float32) {
	gl.ProgramUniform3f(sp.Id, sp.GetUnifLoc(uniformName), x, y, z)
}

func (sp *ShaderProgram) SetUnif4f(uniformName string, x, y, z, w float32) {
	gl.ProgramUniform4f(sp.Id, sp.GetUnifLoc(uniformName), x, y, z, w)
}

func (sp *ShaderProgram) SetUnifVec2(uniformName string, v mgl32.Vec2) {
	gl.ProgramUniform2fv(sp.Id, sp.GetUnifLoc(uniformName), 1, &v[0])
}

func (sp *ShaderProgram) SetUnifVec3(uniformName string, v mgl32.Vec3) {
	gl.ProgramUniform3fv(sp.Id, sp.GetUnifLoc(uniformName), 1, &v[0])
}

func (sp *ShaderProgram) SetUnifVec4(uniformName string, v mgl32.Vec4) {
	gl.ProgramUniform4fv(sp.Id, sp.GetUnifLoc(uniformName), 1, &v[0])
}

// Matrices are column-major like mgl32, so they are never transposed on upload

func (sp *ShaderProgram) SetUnifMat2(uniformName string, m mgl32.Mat2) {
	gl.ProgramUniformMatrix2fv(sp.Id, sp.GetUnifLoc(uniformName), 1, false, &m[0])
}

func (sp *ShaderProgram) SetUnifMat3(uniformName string, m mgl32.Mat3) {
	gl.ProgramUniformMatrix3fv(sp.Id, sp.GetUnifLoc(uniformName), 1, false, &m[0])
}

func (sp *ShaderProgram) SetUnifMat4(uniformName string, m mgl32.Mat4) {
	gl.ProgramUniformMatrix4fv(sp.Id, sp.GetUnifLoc(uniformName), 1, false, &m[0])
}

func NewShaderProgram() (ShaderProgram, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return ShaderProgram{}, fmt.Errorf("failed to create OpenGl shader program. OpenGl Error=%d", gl.GetError())
	}

	programLog.Info("Creating new shader program", "id", id)
	metrics.Created(metrics.KindShaderProgram)
	return ShaderProgram{Id: id, UnifLocs: make(map[string]int32)}, nil
}

// NewShaderProgramFromShaders creates a program, attaches the shaders and links it.
// The shaders are deleted in every case.
func NewShaderProgramFromShaders(shdrs ...Shader) (ShaderProgram, error) {

	sp, err := NewShaderProgram()
	if err != nil {
		for i := range shdrs {
			shdrs[i].Delete()
		}
		return ShaderProgram{}, err
	}

	for _, s := range shdrs {
		sp.AttachShader(s)
	}

	if err := sp.Link(); err != nil {
		sp.Delete()
		return ShaderProgram{}, err
	}

	return sp, nil
}
