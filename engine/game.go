package engine

import (
	"fmt"

	"github.com/wienergl/wiener/assert"
	"github.com/wienergl/wiener/metrics"
	"github.com/wienergl/wiener/renderer"
	"github.com/wienergl/wiener/timing"
)

type Game interface {
	// Init sets up the game. On error Run returns it without starting the loop or calling DeInit.
	Init() error

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run calls Init, then every frame handles input, updates, renders and swaps until
// the window should close. DeInit is called once the loop ends.
func Run(g Game, w *Window, rend renderer.Render) error {

	assert.T(isInited, "engine.Init() was not called!")
	assert.T(w != nil && w.GlfwWin != nil, "engine.Run() needs a built window")

	if err := g.Init(); err != nil {
		return fmt.Errorf("failed to init game: %w", err)
	}

	width, height := w.FramebufferSize()
	renderer.Viewport(0, 0, width, height)

	for !w.ShouldClose() {

		timing.FrameStarted()
		w.handleInputs()

		g.Update()
		g.Render()

		if rend != nil {
			rend.FrameEnd()
		}
		g.FrameEnd()

		w.SwapBuffers()
		metrics.FramesRendered.Inc()
		timing.FrameEnded()
	}

	g.DeInit()
	return nil
}
