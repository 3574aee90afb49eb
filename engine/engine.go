// Package engine creates the GLFW window and OpenGl context and runs the game loop.
//
// Everything here must happen on the main thread: call Init first thing in main.
package engine

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/wienergl/wiener/assert"
	"github.com/wienergl/wiener/config"
	"github.com/wienergl/wiener/input"
	"github.com/wienergl/wiener/logging"
	"github.com/wienergl/wiener/renderer"
	"github.com/wienergl/wiener/timing"
)

var (
	isInited = false

	engineLog = logging.Module("Engine")
)

// Init locks the calling goroutine to its OS thread and initializes GLFW
func Init() error {

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	isInited = true
	timing.Init()

	engineLog.Info("Initialized GLFW", "version", glfw.GetVersionString())
	return nil
}

// Terminate destroys any remaining windows and shuts GLFW down
func Terminate() {

	if !isInited {
		return
	}

	glfw.Terminate()
	isInited = false
	engineLog.Info("Terminated GLFW")
}

type WindowBuilder struct {
	Descriptor WindowDescriptor

	Major   int
	Minor   int
	Profile int

	// Samples is the MSAA sample count of the default framebuffer. 0 disables it.
	Samples int
	VSync   bool
}

func NewWindowBuilder() *WindowBuilder {
	return &WindowBuilder{
		Descriptor: NewWindowDescriptor(),
		Major:      4,
		Minor:      6,
		Profile:    glfw.OpenGLCoreProfile,
		VSync:      true,
	}
}

func (b *WindowBuilder) WithDescriptor(desc WindowDescriptor) *WindowBuilder {
	b.Descriptor = desc
	return b
}

func (b *WindowBuilder) WithVersion(major, minor int) *WindowBuilder {
	b.Major = major
	b.Minor = minor
	return b
}

// WithProfile takes one of glfw.OpenGLCoreProfile, glfw.OpenGLCompatProfile or glfw.OpenGLAnyProfile
func (b *WindowBuilder) WithProfile(profile int) *WindowBuilder {
	b.Profile = profile
	return b
}

func (b *WindowBuilder) WithSamples(samples int) *WindowBuilder {
	b.Samples = samples
	return b
}

func (b *WindowBuilder) WithVSync(enabled bool) *WindowBuilder {
	b.VSync = enabled
	return b
}

// WithConfig applies the window and context settings of an already validated config
func (b *WindowBuilder) WithConfig(cfg *config.Config) *WindowBuilder {

	desc := NewWindowDescriptor().
		WithDimensions(cfg.Window.Width, cfg.Window.Height).
		WithTitle(cfg.Window.Title)

	if cfg.Fullscreen() {
		desc = desc.Fullscreen(cfg.Window.FullscreenMonitor)
	}

	return b.WithDescriptor(desc).
		WithVersion(cfg.GL.Major, cfg.GL.Minor).
		WithProfile(ProfileFromConfig(cfg.GL.Profile)).
		WithSamples(int(cfg.MSAASamples)).
		WithVSync(cfg.VSync)
}

func ProfileFromConfig(profile string) int {

	switch profile {
	case config.ProfileCompat:
		return glfw.OpenGLCompatProfile
	case config.ProfileAny:
		return glfw.OpenGLAnyProfile
	default:
		return glfw.OpenGLCoreProfile
	}
}

// Validate checks the descriptor and that the requested context is a real OpenGL
// version new enough for the shader uniform calls
func (b *WindowBuilder) Validate() error {

	if err := b.Descriptor.Validate(); err != nil {
		return err
	}

	return config.ValidateGLVersion(b.Major, b.Minor)
}

func (b *WindowBuilder) Build() (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	if err := b.Validate(); err != nil {
		return nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.CenterCursor, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, b.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, b.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, b.Profile)
	glfw.WindowHint(glfw.Samples, b.Samples)

	// Required on macOS for core profiles
	if b.Profile == glfw.OpenGLCoreProfile {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	monitor := b.monitor()

	glfwWin, err := glfw.CreateWindow(b.Descriptor.Width, b.Descriptor.Height, b.Descriptor.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{
		GlfwWin:    glfwWin,
		Descriptor: b.Descriptor,
	}
	w.setCallbacks()
	glfwWin.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	glfwWin.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfwWin.Destroy()
		return nil, fmt.Errorf("failed to load OpenGl: %w", err)
	}

	w.SetVSync(b.VSync)
	if b.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}

	renderer.GLInfo().Log()
	engineLog.Info("Created window",
		"title", b.Descriptor.Title,
		"width", b.Descriptor.Width,
		"height", b.Descriptor.Height,
		"mode", b.Descriptor.Mode.String(),
		"gl", fmt.Sprintf("%d.%d", b.Major, b.Minor),
	)

	return w, nil
}

// monitor returns nil for windowed mode. A missing monitor falls back to the primary one.
func (b *WindowBuilder) monitor() *glfw.Monitor {

	if b.Descriptor.Mode != WindowModeFullscreen {
		return nil
	}

	monitors := glfw.GetMonitors()
	if b.Descriptor.Monitor < len(monitors) {
		return monitors[b.Descriptor.Monitor]
	}

	engineLog.Warn("Monitor not found, using the primary monitor", "monitor", b.Descriptor.Monitor, "connected", len(monitors))
	return glfw.GetPrimaryMonitor()
}

type Window struct {
	GlfwWin    *glfw.Window
	Descriptor WindowDescriptor

	// EventCallbacks are called for every event, before the input package sees it
	EventCallbacks []func(Event)

	events []Event
}

func (w *Window) setCallbacks() {

	w.GlfwWin.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.push(Event{Kind: EventKey, Key: key, Scancode: scancode, Action: action, Mods: mods})
	})

	w.GlfwWin.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		w.push(Event{Kind: EventMouseButton, Button: button, Action: action, Mods: mods})
	})

	w.GlfwWin.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(Event{Kind: EventCursorPos, X: x, Y: y})
	})

	w.GlfwWin.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		w.push(Event{Kind: EventCursorEnter, Entered: entered})
	})

	w.GlfwWin.SetScrollCallback(func(_ *glfw.Window, xOff, yOff float64) {
		w.push(Event{Kind: EventScroll, X: xOff, Y: yOff})
	})

	w.GlfwWin.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(Event{Kind: EventFramebufferSize, Width: width, Height: height})
	})

	w.GlfwWin.SetCloseCallback(func(_ *glfw.Window) {
		w.push(Event{Kind: EventClose})
	})
}

func (w *Window) push(e Event) {
	e.Time = glfw.GetTime()
	w.events = append(w.events, e)
}

// Events returns the events received since the last call, oldest first
func (w *Window) Events() []Event {

	if len(w.events) == 0 {
		return nil
	}

	evs := w.events
	w.events = nil
	return evs
}

func (w *Window) ShouldClose() bool {
	return w.GlfwWin.ShouldClose()
}

func (w *Window) SetShouldClose(shouldClose bool) {
	w.GlfwWin.SetShouldClose(shouldClose)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.GlfwWin.SwapBuffers()
}

// Time is the seconds since GLFW was initialized
func (w *Window) Time() float32 {
	return float32(glfw.GetTime())
}

func (w *Window) FramebufferSize() (width, height int32) {
	fbWidth, fbHeight := w.GlfwWin.GetFramebufferSize()
	return int32(fbWidth), int32(fbHeight)
}

// SetVSync applies to the current context
func (w *Window) SetVSync(enabled bool) {

	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (w *Window) Destroy() {

	if w.GlfwWin == nil {
		return
	}

	engineLog.Info("Destroying window", "title", w.Descriptor.Title)
	w.GlfwWin.Destroy()
	w.GlfwWin = nil
}

// handleInputs polls GLFW then feeds every buffered event to the callbacks and the input package
func (w *Window) handleInputs() {

	input.EventLoopStart(false, false)
	w.PollEvents()

	for _, e := range w.Events() {

		if e.Kind == EventFramebufferSize && e.Width > 0 && e.Height > 0 {
			renderer.Viewport(0, 0, int32(e.Width), int32(e.Height))
		}

		w.dispatch(e)
	}
}

func (w *Window) dispatch(e Event) {

	for i := 0; i < len(w.EventCallbacks); i++ {
		w.EventCallbacks[i](e)
	}

	switch e.Kind {
	case EventKey:
		input.HandleKeyEvent(e.Key, e.Action)
	case EventMouseButton:
		input.HandleMouseBtnEvent(e.Button, e.Action, e.Time)
	case EventCursorPos:
		input.HandleCursorPosEvent(e.X, e.Y)
	case EventCursorEnter:
		input.HandleCursorEnterEvent(e.Entered)
	case EventScroll:
		input.HandleScrollEvent(e.X, e.Y)
	case EventClose:
		input.HandleQuitEvent()
	}
}
