package main

import (
	"errors"
	"image/color"
	"io/fs"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wienergl/wiener/shaders"
)

func TestNewGame(t *testing.T) {

	base := &demo{}
	for _, ex := range examples {
		g, err := newGame(options{Example: ex}, base)
		require.NoError(t, err, ex)
		assert.NotNil(t, g, ex)
	}

	g, err := newGame(options{Example: "texture_export", ExportPath: "out.png"}, base)
	require.NoError(t, err)
	fb, ok := g.(*framebufferDemo)
	require.True(t, ok)
	assert.Equal(t, "out.png", fb.exportPath)

	_, err = newGame(options{Example: "teapot"}, base)
	assert.ErrorContains(t, err, "unknown example 'teapot'")
}

func TestLoadConfig(t *testing.T) {

	cfg, err := loadConfig(options{Example: "model", MetricsAddr: ":9999"})
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.MetricsAddr)
	assert.Equal(t, "wiener - model", cfg.Window.Title)

	_, err = loadConfig(options{Example: "model", ConfigPath: "does/not/exist.yaml"})
	assert.Error(t, err)
}

func TestEmbeddedShadersSplit(t *testing.T) {

	entries, err := fs.ReadDir(embeddedShaders, shaderDir)
	require.NoError(t, err)

	combined := 0
	for _, e := range entries {

		if path.Ext(e.Name()) != ".glsl" {
			_, err := shaders.ShaderTypeFromPath(e.Name())
			assert.NoError(t, err, e.Name())
			continue
		}

		src, err := embeddedShaders.ReadFile(path.Join(shaderDir, e.Name()))
		require.NoError(t, err)

		stages, err := shaders.SplitCombinedShaderSrc(src)
		require.NoError(t, err, e.Name())
		assert.Len(t, stages, 2, e.Name())
		combined++
	}

	assert.Equal(t, 4, combined)
}

func TestCheckerboard(t *testing.T) {

	a, b := rgba(255, 255, 255), rgba(0, 0, 0)
	img := checkerboard(8, 4, a, b)

	assert.Equal(t, 8, img.Rect.Dx())
	assert.Equal(t, a, img.RGBAAt(0, 0))
	assert.Equal(t, a, img.RGBAAt(1, 1))
	assert.Equal(t, b, img.RGBAAt(2, 0))
	assert.Equal(t, b, img.RGBAAt(0, 2))
	assert.Equal(t, a, img.RGBAAt(2, 2))
}

func TestSkyGradient(t *testing.T) {

	horizon, zenith := rgba(200, 200, 200), rgba(0, 0, 100)

	top := skyGradient(16, 2, horizon, zenith)
	assert.Equal(t, zenith, top.RGBAAt(5, 5))

	bottom := skyGradient(16, 3, horizon, zenith)
	assert.Equal(t, horizon, bottom.RGBAAt(5, 5))

	side := skyGradient(16, 0, horizon, zenith)
	assert.Equal(t, zenith, side.RGBAAt(0, 0))
	assert.Equal(t, horizon, side.RGBAAt(0, 15))
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, side.RGBAAt(3, 10))
}

func TestOrbitCameraPos(t *testing.T) {

	c := newOrbitCamera()
	pos := c.Pos()
	assert.InDelta(t, c.Radius, pos.Len(), 1e-4)
	assert.Greater(t, pos.Y(), float32(0))
}

func TestRunReturnsSetupErrors(t *testing.T) {

	tests := []struct {
		name    string
		opts    options
		wantErr string
	}{
		{name: "unknown example", opts: options{Example: "teapot"}, wantErr: "unknown example 'teapot'"},
		{name: "missing config", opts: options{Example: "triangle", ConfigPath: "does/not/exist.yaml"}, wantErr: "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDemoFailKeepsFirstError(t *testing.T) {

	d := &demo{}
	d.fail(nil)
	assert.NoError(t, d.err)

	first := errors.New("first")
	d.fail(first)
	d.fail(errors.New("second"))
	assert.Same(t, first, d.err)
}
