package furshell

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// FurSceneModule spawns the demo scene: a furry sphere at the origin and a
// walk camera looking at it. Must be installed after the asset server and the
// logging module.
type FurSceneModule struct {
	// ShaderPath is an on-disk fur shader to load with hot reload. Empty
	// means the embedded default.
	ShaderPath string

	SphereRadius     float32
	SphereResolution int
	MouseSensitivity float32

	// Debug extras, drawn by the debug pass when DebugModule is installed.
	ShowNormals bool
	ShowBounds  bool
}

func (mod FurSceneModule) Install(app *App, cmd *Commands) {
	assets := resourceOf[AssetServer](app)

	radius := mod.SphereRadius
	if radius == 0 {
		radius = 1.0
	}
	resolution := mod.SphereResolution
	if resolution == 0 {
		resolution = 32
	}

	mesh := assets.CreateSphereCubeMesh(radius, resolution)

	var material Material
	if mod.ShaderPath != "" {
		material = assets.LoadMaterial(mod.ShaderPath)
	} else {
		material = assets.LoadMaterialSource("fur.wgsl", furShaderSource)
	}

	furEntity := []any{
		FurComponent{
			Mesh:     mesh,
			Material: material,
		},
	}
	if mod.ShowNormals {
		furEntity = append(furEntity, ShowNormals(FurHeight))
	}
	cmd.AddEntity(furEntity...)

	if mod.ShowBounds {
		bound := radius + FurHeight
		cmd.AddEntity(NewGizmoCube(
			mgl32.Vec3{},
			mgl32.Vec3{bound * 2, bound * 2, bound * 2},
			colornames.Green,
		))
	}

	sensitivity := mod.MouseSensitivity
	if sensitivity == 0 {
		sensitivity = 0.1
	}

	cmd.AddEntity(
		CameraComponent{
			Position: mgl32.Vec3{0, 0, 3},
			LookAt:   mgl32.Vec3{0, 0, 0},
			Up:       mgl32.Vec3{0, 1, 0},
			Fov:      45,
			Aspect:   16.0 / 9.0,
			Near:     0.1,
			Far:      100,
		},
		WalkCameraComponent{
			Speed:       0.5,
			Sensitivity: sensitivity,
		},
	)
}
