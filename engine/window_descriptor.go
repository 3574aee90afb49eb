package engine

import "fmt"

type WindowMode int

const (
	WindowModeWindowed WindowMode = iota
	WindowModeFullscreen
)

func (m WindowMode) String() string {
	switch m {
	case WindowModeWindowed:
		return "windowed"
	case WindowModeFullscreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("WindowMode(%d)", int(m))
	}
}

// WindowDescriptor describes the window to create. It's built with chained calls:
//
//	desc := engine.NewWindowDescriptor().WithDimensions(1280, 720).WithTitle("Model")
type WindowDescriptor struct {
	Width  int
	Height int
	Title  string
	Mode   WindowMode

	// Monitor is the index into the connected monitors used in fullscreen mode
	Monitor int
}

func NewWindowDescriptor() WindowDescriptor {
	return WindowDescriptor{
		Width:  640,
		Height: 480,
		Title:  "Hello World!",
		Mode:   WindowModeWindowed,
	}
}

func (d WindowDescriptor) WithDimensions(width, height int) WindowDescriptor {
	d.Width = width
	d.Height = height
	return d
}

func (d WindowDescriptor) WithWidth(width int) WindowDescriptor {
	d.Width = width
	return d
}

func (d WindowDescriptor) WithHeight(height int) WindowDescriptor {
	d.Height = height
	return d
}

func (d WindowDescriptor) WithTitle(title string) WindowDescriptor {
	d.Title = title
	return d
}

func (d WindowDescriptor) Windowed() WindowDescriptor {
	d.Mode = WindowModeWindowed
	d.Monitor = 0
	return d
}

func (d WindowDescriptor) Fullscreen(monitor int) WindowDescriptor {
	d.Mode = WindowModeFullscreen
	d.Monitor = monitor
	return d
}

func (d WindowDescriptor) Validate() error {

	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", d.Width, d.Height)
	}

	if d.Mode == WindowModeFullscreen && d.Monitor < 0 {
		return fmt.Errorf("fullscreen monitor index can't be negative, got %d", d.Monitor)
	}

	return nil
}
