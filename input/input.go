// The input package provides an interface to mouse and keyboard inputs
// like key clicks and releases, along with some higher level constructs like
// pressed/released this frames, double clicks, and normalized inputs.
//
// The input package has two sets of functions for most cases, where one
// is in the form 'xy' and the other 'xyCaptured'. The captured form
// always returns normal events even if the mouse or keyboard are captured
// by something else (e.g. a UI layer). The 'xy' form however will return zero/false if the
// respective input device is currently captured (with the exception of mouse position, that is always correctly returned).
//
// State is fed from window events by the engine, once per frame, on the main thread.
package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// DoubleClickTime is the most seconds between two presses of a button for them to count as a double click
var DoubleClickTime = 0.3

type keyState struct {
	Key                 glfw.Key
	IsDown              bool
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn    glfw.MouseButton
	IsDown bool

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
	IsDoubleClicked     bool

	lastPressTime float64
}

type mouseMotionState struct {
	XDelta float32
	YDelta float32
	XPos   float32
	YPos   float32

	hasPos bool
}

type mouseWheelState struct {
	XDelta float32
	YDelta float32
}

var (
	mouseWheel  = mouseWheelState{}
	mouseMotion = mouseMotionState{}
	mouseBtnMap = make(map[glfw.MouseButton]mouseBtnState)
	keyMap      = make(map[glfw.Key]keyState)

	isQuitRequested    bool
	isCursorInWindow   bool
	isMouseCaptured    bool
	isKeyboardCaptured bool
)

func EventLoopStart(mouseGotCaptured, keyboardGotCaptured bool) {

	isMouseCaptured = mouseGotCaptured
	isKeyboardCaptured = keyboardGotCaptured

	// Update per-frame state
	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		v.IsDoubleClicked = false
		mouseBtnMap[k] = v
	}

	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0

	mouseWheel.XDelta = 0
	mouseWheel.YDelta = 0

	isQuitRequested = false
}

func ClearKeyboardState() {
	clear(keyMap)
}

func ClearMouseState() {
	clear(mouseBtnMap)
	mouseMotion = mouseMotionState{}
	mouseWheel = mouseWheelState{}
}

func HandleQuitEvent() {
	isQuitRequested = true
}

func IsMouseCaptured() bool {
	return isMouseCaptured
}

func IsKeyboardCaptured() bool {
	return isKeyboardCaptured
}

func IsQuitClicked() bool {
	return isQuitRequested
}

func IsCursorInWindow() bool {
	return isCursorInWindow
}

func HandleKeyEvent(key glfw.Key, action glfw.Action) {

	ks, ok := keyMap[key]
	if !ok {
		ks = keyState{Key: key}
	}

	switch action {
	case glfw.Press:
		ks.IsPressedThisFrame = !ks.IsDown
		ks.IsDown = true
	case glfw.Release:
		ks.IsReleasedThisFrame = ks.IsDown
		ks.IsDown = false
	case glfw.Repeat:
		ks.IsDown = true
	}

	keyMap[key] = ks
}

// HandleMouseBtnEvent updates a button. timestamp is in seconds and only used for double clicks.
func HandleMouseBtnEvent(btn glfw.MouseButton, action glfw.Action, timestamp float64) {

	mb, ok := mouseBtnMap[btn]
	if !ok {
		mb = mouseBtnState{Btn: btn, lastPressTime: -DoubleClickTime - 1}
	}

	switch action {
	case glfw.Press:
		mb.IsPressedThisFrame = true
		mb.IsDown = true

		if timestamp-mb.lastPressTime <= DoubleClickTime {
			mb.IsDoubleClicked = true
			// A third click starts a new pair
			mb.lastPressTime = -DoubleClickTime - 1
		} else {
			mb.lastPressTime = timestamp
		}

	case glfw.Release:
		mb.IsReleasedThisFrame = true
		mb.IsDown = false
	}

	mouseBtnMap[btn] = mb
}

// HandleCursorPosEvent takes the cursor position in window coordinates. Motion is
// accumulated until the next EventLoopStart.
func HandleCursorPosEvent(x, y float64) {

	if mouseMotion.hasPos {
		mouseMotion.XDelta += float32(x) - mouseMotion.XPos
		mouseMotion.YDelta += float32(y) - mouseMotion.YPos
	}

	mouseMotion.XPos = float32(x)
	mouseMotion.YPos = float32(y)
	mouseMotion.hasPos = true
}

func HandleScrollEvent(xOffset, yOffset float64) {
	mouseWheel.XDelta += float32(xOffset)
	mouseWheel.YDelta += float32(yOffset)
}

func HandleCursorEnterEvent(entered bool) {

	isCursorInWindow = entered

	// Avoids a jump in motion when the cursor comes back at a different place
	if !entered {
		mouseMotion.hasPos = false
	}
}

// GetMousePos returns the window coordinates of the mouse regardless of whether the mouse is captured or not
func GetMousePos() (x, y float32) {
	return mouseMotion.XPos, mouseMotion.YPos
}

// GetMouseMotion returns how many pixels were moved last frame
func GetMouseMotion() (xDelta, yDelta float32) {

	if isMouseCaptured {
		return 0, 0
	}

	return GetMouseMotionCaptured()
}

func GetMouseMotionCaptured() (xDelta, yDelta float32) {
	return mouseMotion.XDelta, mouseMotion.YDelta
}

// GetMouseMotionNorm returns the sign of the motion, with y pointing up
func GetMouseMotionNorm() (xDelta, yDelta int32) {

	if isMouseCaptured {
		return 0, 0
	}

	return GetMouseMotionNormCaptured()
}

func GetMouseMotionNormCaptured() (xDelta, yDelta int32) {
	return sign(mouseMotion.XDelta), -sign(mouseMotion.YDelta)
}

func GetMouseWheelMotion() (xDelta, yDelta float32) {

	if isMouseCaptured {
		return 0, 0
	}

	return GetMouseWheelMotionCaptured()
}

func GetMouseWheelMotionCaptured() (xDelta, yDelta float32) {
	return mouseWheel.XDelta, mouseWheel.YDelta
}

// GetMouseWheelXNorm returns 1 if mouse wheel xDelta > 0, -1 if xDelta < 0, and 0 otherwise
func GetMouseWheelXNorm() int32 {

	if isMouseCaptured {
		return 0
	}

	return GetMouseWheelXNormCaptured()
}

func GetMouseWheelXNormCaptured() int32 {
	return sign(mouseWheel.XDelta)
}

// GetMouseWheelYNorm returns 1 if mouse wheel yDelta > 0, -1 if yDelta < 0, and 0 otherwise
func GetMouseWheelYNorm() int32 {

	if isMouseCaptured {
		return 0
	}

	return GetMouseWheelYNormCaptured()
}

func GetMouseWheelYNormCaptured() int32 {
	return sign(mouseWheel.YDelta)
}

func sign(v float32) int32 {

	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}

	return 0
}

func KeyClicked(kc glfw.Key) bool {

	if isKeyboardCaptured {
		return false
	}

	return KeyClickedCaptured(kc)
}

func KeyClickedCaptured(kc glfw.Key) bool {
	return keyMap[kc].IsPressedThisFrame
}

func KeyReleased(kc glfw.Key) bool {

	if isKeyboardCaptured {
		return false
	}

	return KeyReleasedCaptured(kc)
}

func KeyReleasedCaptured(kc glfw.Key) bool {
	return keyMap[kc].IsReleasedThisFrame
}

func KeyDown(kc glfw.Key) bool {

	if isKeyboardCaptured {
		return false
	}

	return KeyDownCaptured(kc)
}

func KeyDownCaptured(kc glfw.Key) bool {
	return keyMap[kc].IsDown
}

// KeyUp is true for keys never pressed
func KeyUp(kc glfw.Key) bool {

	if isKeyboardCaptured {
		return false
	}

	return KeyUpCaptured(kc)
}

func KeyUpCaptured(kc glfw.Key) bool {
	return !keyMap[kc].IsDown
}

func MouseClicked(mb glfw.MouseButton) bool {

	if isMouseCaptured {
		return false
	}

	return MouseClickedCaptured(mb)
}

func MouseClickedCaptured(mb glfw.MouseButton) bool {
	return mouseBtnMap[mb].IsPressedThisFrame
}

func MouseDoubleClicked(mb glfw.MouseButton) bool {

	if isMouseCaptured {
		return false
	}

	return MouseDoubleClickedCaptured(mb)
}

func MouseDoubleClickedCaptured(mb glfw.MouseButton) bool {
	return mouseBtnMap[mb].IsDoubleClicked
}

func MouseReleased(mb glfw.MouseButton) bool {

	if isMouseCaptured {
		return false
	}

	return MouseReleasedCaptured(mb)
}

func MouseReleasedCaptured(mb glfw.MouseButton) bool {
	return mouseBtnMap[mb].IsReleasedThisFrame
}

func MouseDown(mb glfw.MouseButton) bool {

	if isMouseCaptured {
		return false
	}

	return MouseDownCaptured(mb)
}

func MouseDownCaptured(mb glfw.MouseButton) bool {
	return mouseBtnMap[mb].IsDown
}

func MouseUp(mb glfw.MouseButton) bool {

	if isMouseCaptured {
		return false
	}

	return MouseUpCaptured(mb)
}

func MouseUpCaptured(mb glfw.MouseButton) bool {
	return !mouseBtnMap[mb].IsDown
}
