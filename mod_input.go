package furshell

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyW int = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF11
	KeyShift
	KeyControl
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type InputModule struct{}

type Input struct {
	Pressed [64]bool

	JustPressed  [64]bool
	JustReleased [64]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(System(inputSystem).InStage(Prelude))
	app.UseSystem(System(windowControlSystem).InStage(Update))
}

// windowControlSystem handles the app-level shortcuts: Escape quits, F11
// toggles fullscreen on the configured monitor.
func windowControlSystem(input *Input, s *WindowState, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Quit()
	}
	if input.JustPressed[KeyF11] {
		s.SetFullscreen(!s.Fullscreen(), s.monitorName)
	}
}

func inputSystem(s *WindowState, input *Input) {
	for key, glfwKey := range keyToGlfw {
		action := s.windowGlfw.GetKey(glfwKey)
		updateButton(input, key, action)
	}

	// Mouse deltas only count while captured; otherwise a camera would jump
	// when the cursor re-enters the window.
	mx, my := s.windowGlfw.GetCursorPos()
	if input.MouseCaptured {
		input.MouseDeltaX = mx - input.MouseX
		input.MouseDeltaY = my - input.MouseY
	} else {
		input.MouseDeltaX = 0
		input.MouseDeltaY = 0
	}
	input.MouseX = mx
	input.MouseY = my

	for btn := MouseButtonLeft; btn <= MouseButtonMiddle; btn++ {
		var glfwBtn glfw.MouseButton
		switch btn {
		case MouseButtonLeft:
			glfwBtn = glfw.MouseButtonLeft
		case MouseButtonRight:
			glfwBtn = glfw.MouseButtonRight
		case MouseButtonMiddle:
			glfwBtn = glfw.MouseButtonMiddle
		}

		updateButton(input, btn, s.windowGlfw.GetMouseButton(glfwBtn))
	}

	if input.MouseCaptured {
		s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func updateButton(input *Input, key int, action glfw.Action) {
	input.JustPressed[key] = false
	input.JustReleased[key] = false

	if glfw.Press == action {
		if !input.Pressed[key] {
			input.JustPressed[key] = true
		}
		input.Pressed[key] = true
	} else if glfw.Release == action {
		if input.Pressed[key] {
			input.JustReleased[key] = true
		}
		input.Pressed[key] = false
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyW:       glfw.KeyW,
	KeyA:       glfw.KeyA,
	KeyS:       glfw.KeyS,
	KeyD:       glfw.KeyD,
	KeySpace:   glfw.KeySpace,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyRight:   glfw.KeyRight,
	KeyLeft:    glfw.KeyLeft,
	KeyDown:    glfw.KeyDown,
	KeyUp:      glfw.KeyUp,
	KeyF11:     glfw.KeyF11,
	KeyShift:   glfw.KeyLeftShift,
	KeyControl: glfw.KeyLeftControl,
}
