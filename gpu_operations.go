package furshell

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	fullscreen     bool
	monitorName    string
	windowedX      int
	windowedY      int
	windowedWidth  int
	windowedHeight int
}

type GpuState struct {
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
}

const depthFormat = wgpu.TextureFormatDepth32Float

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

// SetFullscreen moves the window onto the named monitor, or the primary one
// when the name doesn't match. Windowed geometry is remembered for the way back.
func (s *WindowState) SetFullscreen(fullscreen bool, monitorName string) {
	if fullscreen == s.fullscreen {
		return
	}

	if fullscreen {
		s.windowedX, s.windowedY = s.windowGlfw.GetPos()
		s.windowedWidth, s.windowedHeight = s.windowGlfw.GetSize()

		monitor := findMonitor(monitorName)
		mode := monitor.GetVideoMode()
		s.windowGlfw.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		s.windowGlfw.SetMonitor(nil, s.windowedX, s.windowedY, s.windowedWidth, s.windowedHeight, glfw.DontCare)
	}
	s.fullscreen = fullscreen
}

func (s *WindowState) Fullscreen() bool {
	return s.fullscreen
}

func findMonitor(name string) *glfw.Monitor {
	monitors := glfw.GetMonitors()
	for _, m := range monitors {
		if m.GetName() == name {
			return m
		}
	}
	return glfw.GetPrimaryMonitor()
}

func createGpuState(s *WindowState) *GpuState {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	// wraps GLFW window into a wgpu surface.
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(s.windowGlfw))
	// finds a suitable GPU (discrete GPU preferred)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	// allocates the device and command queue
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            "Main Device",
		RequiredFeatures: nil,
		RequiredLimits:   nil,
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	// defines how the swapchain behaves (size, format, vsync)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(s.WindowWidth),
		Height:      uint32(s.WindowHeight),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}

	surface.Configure(adapter, device, &surfaceConfig)

	gpu := &GpuState{
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         queue,
		surfaceConfig: &surfaceConfig,
	}
	gpu.createDepthTexture(uint32(s.WindowWidth), uint32(s.WindowHeight))
	return gpu
}

func (gpu *GpuState) createDepthTexture(width, height uint32) {
	if gpu.depthView != nil {
		gpu.depthView.Release()
	}
	if gpu.depthTexture != nil {
		gpu.depthTexture.Release()
	}

	texture, err := gpu.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	gpu.depthTexture = texture
	gpu.depthView = view
}

// resize reconfigures the swapchain and rebuilds the depth texture. Must be
// called before acquiring the next surface texture after a window resize.
func (gpu *GpuState) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gpu.surfaceConfig.Width = uint32(width)
	gpu.surfaceConfig.Height = uint32(height)
	gpu.surface.Configure(gpu.adapter, gpu.device, gpu.surfaceConfig)
	gpu.createDepthTexture(uint32(width), uint32(height))
}

// pipelineDescriptor carries everything that differs between render passes:
// the fur pass draws depth-tested triangles, the debug pass untested lines.
type pipelineDescriptor struct {
	name          string
	shaderCode    string
	vertexType    any
	vertexEntry   string
	fragmentEntry string
	topology      wgpu.PrimitiveTopology
	cullMode      wgpu.CullMode
	depthTest     bool
}

func createRenderPipeline(desc pipelineDescriptor, gpuState *GpuState) *wgpu.RenderPipeline {
	pipeline, err := tryCreateRenderPipeline(desc, gpuState)
	if err != nil {
		panic(err)
	}
	return pipeline
}

// tryCreateRenderPipeline is the non-panicking variant, used on shader hot
// reload where a broken edit should keep the previous pipeline running.
func tryCreateRenderPipeline(desc pipelineDescriptor, gpuState *GpuState) (*wgpu.RenderPipeline, error) {
	shader, err := gpuState.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: desc.shaderCode},
	})
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	vertexBufferLayout := createVertexBufferLayout(desc.vertexType)

	var depthStencil *wgpu.DepthStencilState
	if desc.depthTest {
		depthStencil = &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}

	pipeline, err := gpuState.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: desc.name,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: desc.vertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: desc.fragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    gpuState.surfaceConfig.Format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  desc.topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  desc.cullMode,
		},
		DepthStencil: depthStencil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, err
	}
	return pipeline, nil
}

func createVertexIndexBuffers(vertices AnySlice, indices []uint32, device *wgpu.Device) (vertexBuf *wgpu.Buffer, indexBuf *wgpu.Buffer) {
	vertexBuf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Vertex Buffer",
		Contents: untypedSliceToWgpuBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		panic(err)
	}
	indexBuf, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Index Buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		panic(err)
	}
	return vertexBuf, indexBuf
}

func createBuffer(name string, data any, gpuState *GpuState, usage wgpu.BufferUsage) *wgpu.Buffer {
	bufferBytes := toBufferBytes(data)
	buffer, err := gpuState.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: bufferBytes,
		Usage:    usage,
	})
	if err != nil {
		panic(err)
	}
	return buffer
}

func toBufferBytes(data any) []byte {
	val := reflect.ValueOf(data)
	buf := new(bytes.Buffer)
	readUniformsBytes(val, buf)
	return buf.Bytes()
}

// readUniformsBytes serializes nested structs, arrays and scalars in field
// order as little-endian, matching WGSL uniform layout for tightly packed
// mat4/vec types.
func readUniformsBytes(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct {
				readUniformsBytes(elem, buf)
			} else {
				if err := binary.Write(buf, binary.LittleEndian, elem.Interface()); err != nil {
					panic(fmt.Errorf("failed to write slice element: %w", err))
				}
			}
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			readUniformsBytes(field.Field(i), buf)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			panic(fmt.Errorf("failed to write scalar field: %w", err))
		}

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field))
	}
}

func createVertexBufferLayout(vertexType any) wgpu.VertexBufferLayout {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("Vertex must be a struct")
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64 = 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if "layout" == field.Tag.Get("gpu") {
			format := parseFormat(field.Tag.Get("format"))
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if nil != err {
				panic(err)
			}

			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}

		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}
}

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

// AnySlice erases a typed slice's element type while keeping enough of its
// shape to hand the raw bytes to wgpu.
type AnySlice struct {
	value reflect.Value
}

func MakeAnySlice(slice any) AnySlice {
	v := reflect.ValueOf(slice)
	if v.Kind() != reflect.Slice {
		panic("expected a slice")
	}
	return AnySlice{value: v}
}

func (s AnySlice) Len() int {
	return s.value.Len()
}

func (s AnySlice) ElementSize() int {
	return int(s.value.Type().Elem().Size())
}

func (s AnySlice) DataPointer() unsafe.Pointer {
	return s.value.UnsafePointer()
}

func untypedSliceToWgpuBytes(src AnySlice) []byte {
	l := src.Len()
	if l == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(src.DataPointer()), l*src.ElementSize())
}
