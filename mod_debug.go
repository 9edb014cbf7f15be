package furshell

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// DebugVertex is the line-list vertex for the debug pass.
type DebugVertex struct {
	Position mgl32.Vec3 `gpu:"layout" location:"0" format:"float3"`
	Color    mgl32.Vec4 `gpu:"layout" location:"1" format:"float4"`
}

// DebugModule draws gizmos and normal visualizations as a line list on top of
// the fur pass. The pass loads the existing color target and skips the depth
// test, so lines stay visible through geometry.
type DebugModule struct{}

func (DebugModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&debugRenderState{
		lines: NewCpuBuffer[DebugVertex]("debug lines", wgpu.BufferUsageVertex),
	})
	app.UseSystem(System(debugCollectSystem).InStage(PreRender))
	app.UseSystem(System(debugRenderingSystem).InStage(PostRender))
}

type debugRenderState struct {
	pipeline        *wgpu.RenderPipeline
	cameraUniform   cameraUniform
	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	lines *CpuBuffer[DebugVertex]
}

func debugCollectSystem(cmd *Commands, rs *debugRenderState, assets *AssetServer) {
	rs.lines.Clear()

	MakeQuery1[GizmoComponent](cmd).Map(func(eid EntityId, g *GizmoComponent) bool {
		appendGizmoVertices(rs.lines, g)
		return true
	})

	MakeQuery2[FurComponent, ShowNormalsComponent](cmd).Map(func(eid EntityId, fur *FurComponent, show *ShowNormalsComponent) bool {
		meshAsset, ok := assets.meshes[fur.Mesh.assetId]
		if !ok {
			return true
		}
		for _, vertex := range meshAsset.vertices {
			rs.lines.Push(
				DebugVertex{Position: vertex.Position, Color: show.Color},
				DebugVertex{Position: vertex.Position.Add(vertex.Normal.Mul(show.Length)), Color: show.Color},
			)
		}
		return true
	})

	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		rs.cameraUniform.ViewProjMx = buildCameraMatrix(cam)
		return true
	})
}

func debugRenderingSystem(rs *debugRenderState, gpu *GpuState, frame *FrameContext) {
	if rs.lines.Len() == 0 || frame.encoder == nil {
		return
	}

	if rs.pipeline == nil {
		rs.pipeline = createRenderPipeline(pipelineDescriptor{
			name:          "debug lines",
			shaderCode:    debugShaderSource,
			vertexType:    DebugVertex{},
			vertexEntry:   "project_vertices",
			fragmentEntry: "draw_color",
			topology:      wgpu.PrimitiveTopologyLineList,
			cullMode:      wgpu.CullModeNone,
			depthTest:     false,
		}, gpu)

		rs.cameraBuffer = createBuffer("debug camera", rs.cameraUniform, gpu,
			wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)

		layout := rs.pipeline.GetBindGroupLayout(0)
		defer layout.Release()
		bindGroup, err := gpu.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Layout: layout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: rs.cameraBuffer, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			panic(err)
		}
		rs.cameraBindGroup = bindGroup
	}

	if err := gpu.queue.WriteBuffer(rs.cameraBuffer, 0, toBufferBytes(rs.cameraUniform)); err != nil {
		panic(err)
	}
	vertexBuffer := rs.lines.Upload(gpu)

	renderPass := frame.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    frame.view,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(rs.pipeline)
	renderPass.SetBindGroup(0, rs.cameraBindGroup, nil)
	renderPass.SetVertexBuffer(0, vertexBuffer, 0, wgpu.WholeSize)
	renderPass.Draw(uint32(rs.lines.Len()), 1, 0, 0)

	if err := renderPass.End(); err != nil {
		panic(err)
	}
}
