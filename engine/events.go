package engine

import "github.com/go-gl/glfw/v3.3/glfw"

type EventKind int

const (
	EventKey EventKind = iota
	EventMouseButton
	EventCursorPos
	EventCursorEnter
	EventScroll
	EventFramebufferSize
	EventClose
)

// Event is a window event buffered by the GLFW callbacks until Window.Events is called.
// Only the fields of its Kind are set.
type Event struct {
	// Time is the GLFW time in seconds when the event was received
	Time float64
	Kind EventKind

	Key      glfw.Key
	Scancode int
	Action   glfw.Action
	Mods     glfw.ModifierKey

	Button glfw.MouseButton

	// Cursor position for EventCursorPos, offsets for EventScroll
	X float64
	Y float64

	Width  int
	Height int

	Entered bool
}
