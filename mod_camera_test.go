package furshell

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCameraMatrix(t *testing.T) {
	cam := &CameraComponent{
		Position: mgl32.Vec3{0, 0, 3},
		LookAt:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      45,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      100,
	}

	got := buildCameraMatrix(cam)
	want := mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 100).
		Mul4(mgl32.LookAtV(cam.Position, cam.LookAt, cam.Up))

	assert.Equal(t, want, got)
}

func TestBuildCameraMatrix_OriginMapsToNegativeZ(t *testing.T) {
	cam := &CameraComponent{
		Position: mgl32.Vec3{0, 0, 3},
		LookAt:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      45,
		Aspect:   1,
		Near:     0.1,
		Far:      100,
	}

	clip := ClipPosition(buildCameraMatrix(cam), mgl32.Vec3{0, 0, 0})

	// A point straight ahead lands on the screen center with positive depth.
	require.Greater(t, clip.W(), float32(0))
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)
	assert.Greater(t, clip.Z()/clip.W(), float32(0))
}

func walkTestApp(dt time.Duration) (*App, *Commands, EntityId) {
	app := NewAppBuilder().Build()
	cmd := app.Commands()

	app.addResources(&Time{Time: time.Now(), Dt: dt})

	eid := cmd.AddEntity(
		CameraComponent{
			Position: mgl32.Vec3{0, 0, 3},
			LookAt:   mgl32.Vec3{0, 0, 0},
			Up:       mgl32.Vec3{0, 1, 0},
			Fov:      45,
			Aspect:   1,
			Near:     0.1,
			Far:      100,
		},
		WalkCameraComponent{Speed: 0.5, Sensitivity: 0.1},
	)
	app.FlushCommands()
	return app, cmd, eid
}

func TestWalkCamera_ForwardStaysHorizontal(t *testing.T) {
	app, cmd, _ := walkTestApp(time.Second)

	MakeQuery1[WalkCameraComponent](cmd).Map(func(eid EntityId, walk *WalkCameraComponent) bool {
		walk.Move = mgl32.Vec3{0, 0, 1}
		return true
	})
	// Pitch down hard: walking forward must not descend.
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		cam.Pitch = -45
		return true
	})

	app.callSystem(walkCameraControlSystem)

	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		assert.InDelta(t, 0, cam.Position.Y(), 1e-5)
		// Yaw 0 walks toward negative Z at Speed units per second.
		assert.InDelta(t, 3-0.5, cam.Position.Z(), 1e-5)
		assert.InDelta(t, 0, cam.Position.X(), 1e-5)
		return true
	})
}

func TestWalkCamera_Levitate(t *testing.T) {
	app, cmd, _ := walkTestApp(time.Second)

	MakeQuery1[WalkCameraComponent](cmd).Map(func(eid EntityId, walk *WalkCameraComponent) bool {
		walk.Move = mgl32.Vec3{0, 1, 0}
		return true
	})

	app.callSystem(walkCameraControlSystem)

	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		assert.InDelta(t, 0.5, cam.Position.Y(), 1e-5)
		return true
	})
}

func TestWalkCamera_PitchClamped(t *testing.T) {
	app, cmd, _ := walkTestApp(time.Second)

	MakeQuery1[WalkCameraComponent](cmd).Map(func(eid EntityId, walk *WalkCameraComponent) bool {
		walk.Look = mgl32.Vec2{0, -10000}
		return true
	})

	app.callSystem(walkCameraControlSystem)

	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		assert.LessOrEqual(t, cam.Pitch, float32(89.0))
		return true
	})
}

func TestWalkCamera_ZeroDtIsNoop(t *testing.T) {
	app, cmd, _ := walkTestApp(0)

	MakeQuery1[WalkCameraComponent](cmd).Map(func(eid EntityId, walk *WalkCameraComponent) bool {
		walk.Move = mgl32.Vec3{1, 1, 1}
		return true
	})

	app.callSystem(walkCameraControlSystem)

	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		assert.Equal(t, mgl32.Vec3{0, 0, 3}, cam.Position)
		return true
	})
}
