package furshell

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowModule owns the GLFW window and the wgpu device behind it. It polls
// events at the start of every frame, quits the app when the window closes and
// reconfigures the swapchain on resize.
type WindowModule struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool
	Monitor    string
}

func NewWindowModule(cfg *GameConfig, title string) *WindowModule {
	return &WindowModule{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Title:      title,
		Fullscreen: cfg.Fullscreen,
		Monitor:    cfg.Monitor,
	}
}

func (mod WindowModule) Install(app *App, cmd *Commands) {
	width := mod.Width
	if width <= 0 {
		width = 1280
	}
	height := mod.Height
	if height <= 0 {
		height = 720
	}
	title := mod.Title
	if title == "" {
		title = "furshell"
	}

	windowState := createWindowState(width, height, title)
	windowState.monitorName = mod.Monitor
	if mod.Fullscreen {
		windowState.SetFullscreen(true, mod.Monitor)
	}
	gpuState := createGpuState(windowState)

	app.addResources(windowState, gpuState, &FrameContext{})

	app.UseSystem(System(windowEventsSystem).InStage(Prelude))
	app.UseSystem(System(beginFrameSystem).InStage(PreRender))
	app.UseSystem(System(presentFrameSystem).InStage(Finale))
}

// FrameContext holds the swapchain view and command encoder for the frame in
// flight. Render modules record their passes into it between PreRender and
// Finale; presentFrameSystem submits and presents.
type FrameContext struct {
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
}

func beginFrameSystem(gpu *GpuState, frame *FrameContext) {
	nextTexture, err := gpu.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	encoder, err := gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}

	frame.view = view
	frame.encoder = encoder
}

func presentFrameSystem(gpu *GpuState, frame *FrameContext) {
	if frame.encoder == nil {
		return
	}

	cmdBuffer, err := frame.encoder.Finish(nil)
	if err != nil {
		panic(err)
	}

	gpu.queue.Submit(cmdBuffer)
	gpu.surface.Present()

	cmdBuffer.Release()
	frame.encoder.Release()
	frame.view.Release()
	frame.encoder = nil
	frame.view = nil
}

func windowEventsSystem(s *WindowState, gpu *GpuState, cmd *Commands) {
	glfw.PollEvents()

	if s.windowGlfw.ShouldClose() {
		cmd.Quit()
		return
	}

	w, h := s.windowGlfw.GetSize()
	if w != s.WindowWidth || h != s.WindowHeight {
		s.WindowWidth = w
		s.WindowHeight = h
		gpu.resize(w, h)
	}
}
