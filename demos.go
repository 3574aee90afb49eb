package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/wienergl/wiener/buffers"
	"github.com/wienergl/wiener/config"
	"github.com/wienergl/wiener/engine"
	"github.com/wienergl/wiener/input"
	"github.com/wienergl/wiener/lmath"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/meshes"
	"github.com/wienergl/wiener/renderer"
	"github.com/wienergl/wiener/renderer/rend3dgl"
	"github.com/wienergl/wiener/shaders"
	"github.com/wienergl/wiener/textures"
	"github.com/wienergl/wiener/timing"
)

var demoLog = logging.Module("Demo")

// demo holds what every example needs. Examples embed it and override what they use.
type demo struct {
	Win     *engine.Window
	Rend    *rend3dgl.Rend3DGL
	Cfg     *config.Config
	Shaders *shaderLibrary

	// err is the first failure after Init. It closes the window and is returned by run.
	err error
}

func (d *demo) Init() error { return nil }

func (d *demo) Update() {
	if input.KeyClicked(glfw.KeyEscape) {
		d.Win.SetShouldClose(true)
	}
}

func (d *demo) Render() {}

func (d *demo) FrameEnd() {

	d.Shaders.ReloadChanged()

	if timing.FrameCount()%600 == 0 {
		demoLog.Debug("Frame stats", "avg_fps", timing.GetAvgFPS(), "draw_calls", d.Rend.LastFrameDrawCalls)
	}
}

func (d *demo) DeInit() {}

// fail stops the game loop with err. Only the first error is kept.
func (d *demo) fail(err error) {

	if err == nil {
		return
	}

	demoLog.Error("Stopping", "err", err)
	if d.err == nil {
		d.err = err
	}

	if d.Win != nil {
		d.Win.SetShouldClose(true)
	}
}

func (d *demo) clear() {
	renderer.ClearColor(d.Cfg.ClearColourRGBA())
	renderer.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *demo) loadShader(name string, setup func(sp *shaders.ShaderProgram), files ...string) (*shaders.ShaderProgram, error) {

	sp, err := d.Shaders.Load(name, setup, files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load shader '%s': %w", name, err)
	}

	return sp, nil
}

func setIdentityModel(sp *shaders.ShaderProgram) {
	sp.SetUnifMat4(meshes.DefaultModelUniform, lmath.Eye4())
}

// triangleDemo draws one colored triangle straight from a vertex array, without indices
type triangleDemo struct {
	*demo

	shader *shaders.ShaderProgram
	vao    buffers.VertexArray
	vbo    buffers.VertexBuffer
}

func (d *triangleDemo) Init() error {

	var err error
	d.shader, err = d.loadShader("simple", setIdentityModel, "simple.glsl")
	if err != nil {
		return err
	}

	d.vbo = buffers.NewVertexBuffer(buffers.LayoutFromSizes(3, 3)...)
	d.vbo.SetData(triangleVerts)

	d.vao = buffers.NewVertexArray()
	d.vao.AddVertexBuffer(d.vbo)
	d.vao.UnBind()
	d.vbo.UnBind()
	return nil
}

func (d *triangleDemo) Render() {
	d.clear()
	d.Rend.DrawVertexArray(d.shader, &d.vao, 0, 3)
}

func (d *triangleDemo) DeInit() {
	d.vao.Delete()
	d.vbo.Delete()
}

// uniformDemo animates two triangles from separate vertex and fragment shader files
type uniformDemo struct {
	*demo

	shader *shaders.ShaderProgram
	left   *meshes.Mesh
	right  *meshes.Mesh
}

func (d *uniformDemo) Init() error {

	var err error
	d.shader, err = d.loadShader("uniform", nil, "uniform.vert", "uniform.frag")
	if err != nil {
		return err
	}

	layout := buffers.LayoutFromSizes(3, 3)
	d.left = meshes.NewMesh("left", d.shader).
		WithVertices(twoTrianglesVerts[:18]).
		WithLayout(layout...).
		WithIndices(twoTrianglesIndices[:3])

	d.right = meshes.NewMesh("right", d.shader).
		WithVertices(twoTrianglesVerts[18:]).
		WithLayout(layout...).
		WithIndices(twoTrianglesIndices[:3])

	return nil
}

func (d *uniformDemo) Update() {

	d.demo.Update()

	t := timing.ElapsedTime()
	d.left.ModelMat = lmath.Rotation(0, 0, sin(10*t))
	d.right.ModelMat = lmath.Translation(sin(2*t), 0, 0)
}

func (d *uniformDemo) Render() {

	d.clear()

	d.shader.SetUnif1f("u_time", timing.ElapsedTime())
	d.Rend.DrawMesh(d.left)
	d.Rend.DrawMesh(d.right)
}

func (d *uniformDemo) DeInit() {
	d.left.Delete()
	d.right.Delete()
}

// textureDemo shows an image, or a generated checkerboard, on a quad
type textureDemo struct {
	*demo

	texturePath string

	tex  *textures.Texture2D
	quad *meshes.Mesh
}

func (d *textureDemo) Init() error {

	shader, err := d.loadShader("screen", func(sp *shaders.ShaderProgram) {
		sp.SetUnif1i("screenTex", 0)
	}, "screen.glsl")
	if err != nil {
		return err
	}

	d.tex = textures.NewTexture2D().WithSlot(0).Build()
	if d.texturePath != "" {
		err = d.tex.BufferFromFile(d.texturePath)
	} else {
		err = d.tex.BufferRGBA(checkerboard(256, 8, rgba(230, 230, 230), rgba(40, 90, 160)))
	}

	if err != nil {
		d.tex.Delete()
		return err
	}

	d.quad = meshes.NewMesh("quad", shader).
		WithVertices(texturedQuadVerts).
		WithLayout(buffers.LayoutFromSizes(3, 2)...).
		WithIndices(quadIndices).
		WithTextures(d.tex)

	return nil
}

func (d *textureDemo) Render() {
	d.clear()
	d.Rend.DrawMesh(d.quad)
}

func (d *textureDemo) DeInit() {
	d.quad.Delete()
	d.tex.Delete()
}
