package main

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/wienergl/wiener/buffers"
	"github.com/wienergl/wiener/input"
	"github.com/wienergl/wiener/lmath"
	"github.com/wienergl/wiener/meshes"
	"github.com/wienergl/wiener/renderer"
	"github.com/wienergl/wiener/shaders"
	"github.com/wienergl/wiener/textures"
	"github.com/wienergl/wiener/timing"
)

// Camera uniform block fields
const (
	camProjViewField uint16 = iota
	camPosField
	camTimeField
)

const cameraBindPoint = 0

var (
	modelColor = mgl32.Vec3{0.9, 0.55, 0.2}
	lightDir   = mgl32.Vec3{-0.4, -1, -0.6}
)

func sin(x float32) float32 {
	return math32.Sin(x)
}

func rgba(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// orbitCamera circles the origin. Dragging with the left mouse button orbits and
// the wheel zooms.
type orbitCamera struct {
	Radius float32
	Phi    float32
	Theta  float32
	FovY   float32
}

func newOrbitCamera() orbitCamera {
	return orbitCamera{
		Radius: 4,
		Phi:    math32.Pi / 2,
		Theta:  math32.Pi / 3,
		FovY:   lmath.DegToRad(60),
	}
}

func (c *orbitCamera) Update() {

	if input.MouseDown(glfw.MouseButtonLeft) {
		dx, dy := input.GetMouseMotion()
		c.Phi += dx * 0.01
		c.Theta = lmath.Clamp(c.Theta-dy*0.01, 0.05, math32.Pi-0.05)
	}

	_, wheel := input.GetMouseWheelMotion()
	c.Radius = lmath.Clamp(c.Radius-wheel*0.5, 1.5, 20)
}

func (c *orbitCamera) Pos() mgl32.Vec3 {
	return lmath.SphericalToCartesian(c.Radius, c.Phi, c.Theta)
}

func (c *orbitCamera) View() mgl32.Mat4 {
	return lmath.LookAt(c.Pos(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

func (c *orbitCamera) Proj(width, height int32) mgl32.Mat4 {
	aspect := float32(width) / float32(max(height, 1))
	return lmath.PerspectiveFov(c.FovY, aspect, 0.1, 100)
}

// modelScene is a lit model spinning in front of a skybox, shared by the
// model and framebuffer examples
type modelScene struct {
	cam       orbitCamera
	cameraUbo buffers.UniformBuffer

	model      *meshes.Mesh
	modelShdr  *shaders.ShaderProgram
	fitMat     mgl32.Mat4
	skybox     *meshes.Mesh
	skyboxShdr *shaders.ShaderProgram
	skyboxTex  *textures.CubeMap
}

func loadModel(path string, shader *shaders.ShaderProgram) (*meshes.Mesh, error) {

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(filepath.Ext(path), ".off") {
		return meshes.NewMeshFromOFF(name, path, shader, modelColor)
	}

	m, err := meshes.NewMeshFromFile(name, path, shader)
	if err != nil {
		return nil, err
	}

	// Imported meshes have no color attribute, so the shader reads this constant instead
	gl.VertexAttrib3f(2, modelColor.X(), modelColor.Y(), modelColor.Z())
	return m, nil
}

func (s *modelScene) Init(d *demo, modelPath string) error {

	s.cam = newOrbitCamera()

	s.cameraUbo = buffers.NewUniformBuffer([]buffers.UniformBufferFieldInput{
		{Id: camProjViewField, Type: buffers.DataTypeMat4},
		{Id: camPosField, Type: buffers.DataTypeVec3},
		{Id: camTimeField, Type: buffers.DataTypeFloat32},
	})
	s.cameraUbo.SetBindPoint(cameraBindPoint)

	var err error
	s.modelShdr, err = d.loadShader("model", func(sp *shaders.ShaderProgram) {
		sp.SetUniformBlockBindingPoint("Camera", cameraBindPoint)
		sp.SetUnifVec3("lightDir", lightDir)
	}, "model.glsl")
	if err != nil {
		return err
	}

	s.model, err = loadModel(modelPath, s.modelShdr)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	s.fitMat = s.model.FitMatrix(2)

	s.skyboxShdr, err = d.loadShader("skybox", func(sp *shaders.ShaderProgram) {
		sp.SetUnif1i("skybox", 1)
	}, "skybox.glsl")
	if err != nil {
		return err
	}

	var faces [textures.CubeMapFaces]*image.RGBA
	for i := range faces {
		faces[i] = skyGradient(64, i, rgba(200, 215, 235), rgba(40, 80, 150))
	}

	s.skyboxTex = textures.NewCubeMap().
		WithSlot(1).
		WithWrap(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE).
		Build()
	s.skyboxTex.BufferRGBA(faces)

	skyLayout, _ := meshes.LayoutForStride(3)
	s.skybox = meshes.NewMesh("skybox", s.skyboxShdr).
		WithVertices(skyboxCubeVerts).
		WithLayout(skyLayout...).
		WithIndices(skyboxCubeIndices).
		WithTextures(s.skyboxTex)

	renderer.Enable(gl.DEPTH_TEST)
	return nil
}

func (s *modelScene) Update() {

	s.cam.Update()

	t := timing.ElapsedTime()
	s.model.ModelMat = lmath.Rotation(0, t*0.5, 0).Mul4(s.fitMat)
}

func (s *modelScene) Render(d *demo, width, height int32) {

	proj := s.cam.Proj(width, height)
	view := s.cam.View()

	s.cameraUbo.SetMat4(camProjViewField, proj.Mul4(view))
	s.cameraUbo.SetVec3(camPosField, s.cam.Pos())
	s.cameraUbo.SetFloat32(camTimeField, timing.ElapsedTime())

	s.modelShdr.SetUnifMat3("normalMat", lmath.NormalMatrix(s.model.ModelMat))
	d.Rend.DrawMesh(s.model)

	// The skybox ignores camera movement and is drawn at the far plane last
	s.skyboxShdr.SetUnifMat4("projViewMat", proj.Mul4(view.Mat3().Mat4()))
	renderer.DepthFunc(gl.LEQUAL)
	d.Rend.DrawMesh(s.skybox)
	renderer.DepthFunc(gl.LESS)
}

func (s *modelScene) DeInit() {
	s.model.Delete()
	s.skybox.Delete()
	s.skyboxTex.Delete()
	s.cameraUbo.Delete()
}

type modelDemo struct {
	*demo
	scene modelScene

	modelPath string
}

func (d *modelDemo) Init() error {
	return d.scene.Init(d.demo, d.modelPath)
}

func (d *modelDemo) Update() {
	d.demo.Update()
	d.scene.Update()
}

func (d *modelDemo) Render() {
	d.clear()
	w, h := d.Win.FramebufferSize()
	d.scene.Render(d.demo, w, h)
}

func (d *modelDemo) DeInit() {
	d.scene.DeInit()
}
