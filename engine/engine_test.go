package engine

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wienergl/wiener/config"
	"github.com/wienergl/wiener/input"
)

func TestWindowDescriptor(t *testing.T) {

	d := NewWindowDescriptor()
	assert.Equal(t, 640, d.Width)
	assert.Equal(t, 480, d.Height)
	assert.Equal(t, "Hello World!", d.Title)
	assert.Equal(t, WindowModeWindowed, d.Mode)
	require.NoError(t, d.Validate())

	full := d.WithDimensions(1920, 1080).WithTitle("Model").Fullscreen(1)
	assert.Equal(t, WindowModeFullscreen, full.Mode)
	assert.Equal(t, 1, full.Monitor)
	assert.Equal(t, "fullscreen", full.Mode.String())

	// The original is a value and stays untouched
	assert.Equal(t, 640, d.Width)

	back := full.Windowed()
	assert.Equal(t, WindowModeWindowed, back.Mode)
	assert.Equal(t, 1920, back.Width)

	assert.Error(t, d.WithWidth(0).Validate())
	assert.Error(t, d.WithHeight(-5).Validate())
	assert.Error(t, d.Fullscreen(-1).Validate())
}

func TestWindowBuilderDefaults(t *testing.T) {

	b := NewWindowBuilder()
	assert.Equal(t, 4, b.Major)
	assert.Equal(t, 6, b.Minor)
	assert.Equal(t, glfw.OpenGLCoreProfile, b.Profile)
	assert.Equal(t, NewWindowDescriptor(), b.Descriptor)

	b.WithVersion(4, 3).WithProfile(glfw.OpenGLCompatProfile).WithSamples(8)
	assert.Equal(t, 4, b.Major)
	assert.Equal(t, 3, b.Minor)
	assert.Equal(t, glfw.OpenGLCompatProfile, b.Profile)
	assert.Equal(t, 8, b.Samples)
}

func TestWindowBuilderWithConfig(t *testing.T) {

	cfg := config.Default()
	cfg.Window.Width = 800
	cfg.Window.Height = 600
	cfg.Window.Title = "Framebuffer"
	cfg.Window.FullscreenMonitor = 2
	cfg.GL.Minor = 5
	cfg.GL.Profile = config.ProfileAny
	cfg.MSAASamples = 0
	cfg.VSync = false

	b := NewWindowBuilder().WithConfig(cfg)
	assert.Equal(t, 800, b.Descriptor.Width)
	assert.Equal(t, 600, b.Descriptor.Height)
	assert.Equal(t, "Framebuffer", b.Descriptor.Title)
	assert.Equal(t, WindowModeFullscreen, b.Descriptor.Mode)
	assert.Equal(t, 2, b.Descriptor.Monitor)
	assert.Equal(t, 5, b.Minor)
	assert.Equal(t, glfw.OpenGLAnyProfile, b.Profile)
	assert.Zero(t, b.Samples)
	assert.False(t, b.VSync)

	cfg.Window.FullscreenMonitor = -1
	b = NewWindowBuilder().WithConfig(cfg)
	assert.Equal(t, WindowModeWindowed, b.Descriptor.Mode)
}

func TestProfileFromConfig(t *testing.T) {
	assert.Equal(t, glfw.OpenGLCoreProfile, ProfileFromConfig(config.ProfileCore))
	assert.Equal(t, glfw.OpenGLCompatProfile, ProfileFromConfig(config.ProfileCompat))
	assert.Equal(t, glfw.OpenGLAnyProfile, ProfileFromConfig(config.ProfileAny))
}

func TestEventsDrain(t *testing.T) {

	w := &Window{}
	assert.Nil(t, w.Events())

	w.events = append(w.events, Event{Kind: EventScroll, Y: 1}, Event{Kind: EventClose})
	evs := w.Events()
	require.Len(t, evs, 2)
	assert.Equal(t, EventScroll, evs[0].Kind)
	assert.Nil(t, w.Events())
}

func TestDispatchFeedsInput(t *testing.T) {

	input.ClearKeyboardState()
	input.ClearMouseState()
	input.EventLoopStart(false, false)
	defer input.EventLoopStart(false, false)

	var seen []EventKind
	w := &Window{}
	w.EventCallbacks = append(w.EventCallbacks, func(e Event) {
		seen = append(seen, e.Kind)
	})

	w.dispatch(Event{Kind: EventKey, Key: glfw.KeyEscape, Action: glfw.Press})
	w.dispatch(Event{Kind: EventMouseButton, Button: glfw.MouseButtonLeft, Action: glfw.Press, Time: 1})
	w.dispatch(Event{Kind: EventCursorEnter, Entered: true})
	w.dispatch(Event{Kind: EventScroll, Y: -2})
	w.dispatch(Event{Kind: EventClose})

	assert.Equal(t, []EventKind{EventKey, EventMouseButton, EventCursorEnter, EventScroll, EventClose}, seen)
	assert.True(t, input.KeyClicked(glfw.KeyEscape))
	assert.True(t, input.MouseDown(glfw.MouseButtonLeft))
	assert.True(t, input.IsCursorInWindow())
	assert.Equal(t, int32(-1), input.GetMouseWheelYNorm())
	assert.True(t, input.IsQuitClicked())
}

func TestWindowBuilderValidate(t *testing.T) {

	b := NewWindowBuilder()
	assert.NoError(t, b.Validate())

	assert.ErrorContains(t, NewWindowBuilder().WithVersion(3, 3).Validate(), "minimum is 4.1")
	assert.ErrorContains(t, NewWindowBuilder().WithVersion(3, 9).Validate(), "does not exist")
	assert.Error(t, NewWindowBuilder().WithDescriptor(NewWindowDescriptor().WithWidth(0)).Validate())
}
