package furshell

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// FurComponent marks an entity as a furry surface: its mesh is drawn
// NumShells times by the instanced shell pipeline.
type FurComponent struct {
	Mesh     Mesh
	Material Material
}

type FurModule struct{}

func (FurModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&furRenderState{
		meshes: make(map[AssetId]*furMeshBuffers),
	})
	app.UseSystem(System(furPrepareSystem).InStage(PreRender))
	app.UseSystem(System(furRenderingSystem).InStage(Render))
}

type cameraUniform struct {
	ViewProjMx mgl32.Mat4
}

type furMeshBuffers struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

type furRenderState struct {
	pipeline        *wgpu.RenderPipeline
	materialId      AssetId
	materialVersion uint

	cameraUniform   cameraUniform
	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	meshes map[AssetId]*furMeshBuffers
}

// furPrepareSystem updates the camera matrix and lazily creates GPU objects
// for fur entities. Pipelines are rebuilt when the material version changes,
// which is how shader hot reload reaches the GPU.
func furPrepareSystem(cmd *Commands, rs *furRenderState, gpu *GpuState, window *WindowState, assets *AssetServer, logger *DefaultLogger) {
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		cam.Aspect = float32(window.WindowWidth) / float32(window.WindowHeight)
		rs.cameraUniform.ViewProjMx = buildCameraMatrix(cam)
		return true
	})

	if rs.cameraBuffer == nil {
		rs.cameraBuffer = createBuffer("fur camera", rs.cameraUniform, gpu,
			wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	}

	MakeQuery1[FurComponent](cmd).Map(func(eid EntityId, fur *FurComponent) bool {
		if _, ok := rs.meshes[fur.Mesh.assetId]; !ok {
			meshAsset, ok := assets.meshes[fur.Mesh.assetId]
			if !ok {
				logger.Warnf("fur entity %d references unknown mesh", eid)
				return true
			}
			vertexBuf, indexBuf := createVertexIndexBuffers(
				MakeAnySlice(meshAsset.vertices), meshAsset.indices, gpu.device)
			rs.meshes[fur.Mesh.assetId] = &furMeshBuffers{
				vertexBuffer: vertexBuf,
				indexBuffer:  indexBuf,
				indexCount:   uint32(len(meshAsset.indices)),
			}
		}

		material, ok := assets.Material(fur.Material.assetId)
		if !ok {
			logger.Warnf("fur entity %d references unknown material", eid)
			return true
		}

		needsBuild := rs.pipeline == nil ||
			rs.materialId != fur.Material.assetId ||
			rs.materialVersion != material.version
		if needsBuild {
			rs.rebuildPipeline(fur.Material.assetId, material, gpu, logger)
		}
		return true
	})
}

func (rs *furRenderState) rebuildPipeline(id AssetId, material MaterialAsset, gpu *GpuState, logger Logger) {
	pipeline, err := tryCreateRenderPipeline(pipelineDescriptor{
		name:          "fur",
		shaderCode:    material.shaderListing,
		vertexType:    Vertex{},
		vertexEntry:   "displace_vertices",
		fragmentEntry: "shade_fur",
		topology:      wgpu.PrimitiveTopologyTriangleList,
		cullMode:      wgpu.CullModeBack,
		depthTest:     true,
	}, gpu)

	// Remember the version either way so a broken edit is not retried
	// every frame.
	rs.materialId = id
	rs.materialVersion = material.version

	if err != nil {
		logger.Errorf("fur pipeline %s: %v", material.shaderName, err)
		return
	}

	if rs.pipeline != nil {
		rs.pipeline.Release()
	}
	if rs.cameraBindGroup != nil {
		rs.cameraBindGroup.Release()
	}
	rs.pipeline = pipeline

	layout := pipeline.GetBindGroupLayout(0)
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

// furRenderingSystem records the shell pass: every fur mesh is drawn with
// NumShells instances, one per shell, into a freshly cleared color and depth
// target.
func furRenderingSystem(cmd *Commands, rs *furRenderState, gpu *GpuState, frame *FrameContext) {
	if rs.pipeline == nil || frame.encoder == nil {
		return
	}

	if err := gpu.queue.WriteBuffer(rs.cameraBuffer, 0, toBufferBytes(rs.cameraUniform)); err != nil {
		panic(err)
	}

	renderPass := frame.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       frame.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1.0},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            gpu.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(rs.pipeline)
	renderPass.SetBindGroup(0, rs.cameraBindGroup, nil)

	MakeQuery1[FurComponent](cmd).Map(func(eid EntityId, fur *FurComponent) bool {
		mesh, ok := rs.meshes[fur.Mesh.assetId]
		if !ok {
			return true
		}

		renderPass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
		renderPass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		renderPass.DrawIndexed(mesh.indexCount, NumShells, 0, 0, 0)
		return true
	})

	if err := renderPass.End(); err != nil {
		panic(err)
	}
}
