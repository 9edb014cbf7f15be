package furshell

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraComponent describes a perspective camera. The render modules consume
// it through buildCameraMatrix, which yields the projection*view matrix the
// shaders expect.
type CameraComponent struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3

	Yaw   float32
	Pitch float32

	Fov    float32
	Aspect float32
	Near   float32
	Far    float32
}

func buildCameraMatrix(cam *CameraComponent) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(cam.Fov), cam.Aspect, cam.Near, cam.Far)
	view := mgl32.LookAtV(cam.Position, cam.LookAt, cam.Up)
	return proj.Mul4(view)
}

// WalkCameraModule drives CameraComponent entities that also carry a
// WalkCameraComponent: WASD walks in the view plane, Space and Shift levitate,
// and the mouse looks around while the left button is held.
type WalkCameraModule struct{}

func (m WalkCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(System(walkCameraInputSystem).InStage(Update))
	app.UseSystem(System(walkCameraControlSystem).InStage(Update))
}

type WalkCameraComponent struct {
	Speed       float32
	Sensitivity float32
	Move        mgl32.Vec3
	Look        mgl32.Vec2
}

func walkCameraInputSystem(input *Input, cmd *Commands) {
	MakeQuery1[WalkCameraComponent](cmd).Map(func(eid EntityId, walk *WalkCameraComponent) bool {
		input.MouseCaptured = input.Pressed[MouseButtonLeft]

		walk.Move = mgl32.Vec3{0, 0, 0}
		if input.Pressed[KeyW] || input.Pressed[KeyUp] {
			walk.Move[2] += 1
		}
		if input.Pressed[KeyS] || input.Pressed[KeyDown] {
			walk.Move[2] -= 1
		}
		if input.Pressed[KeyA] || input.Pressed[KeyLeft] {
			walk.Move[0] -= 1
		}
		if input.Pressed[KeyD] || input.Pressed[KeyRight] {
			walk.Move[0] += 1
		}
		if input.Pressed[KeySpace] {
			walk.Move[1] += 1
		}
		if input.Pressed[KeyShift] {
			walk.Move[1] -= 1
		}

		if input.MouseCaptured {
			walk.Look[0] = float32(input.MouseDeltaX)
			walk.Look[1] = float32(input.MouseDeltaY)
		} else {
			walk.Look[0] = 0
			walk.Look[1] = 0
		}

		return true
	})
}

func walkCameraControlSystem(cmd *Commands, time *Time) {
	dt := float32(time.Dt.Seconds())
	if dt <= 0 {
		return
	}

	MakeQuery2[CameraComponent, WalkCameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, walk *WalkCameraComponent) bool {
		if walk.Sensitivity == 0 {
			walk.Sensitivity = 0.1
		}

		cam.Yaw += walk.Look[0] * walk.Sensitivity
		cam.Pitch -= walk.Look[1] * walk.Sensitivity

		if cam.Pitch > 89.0 {
			cam.Pitch = 89.0
		}
		if cam.Pitch < -89.0 {
			cam.Pitch = -89.0
		}

		yawRad := mgl32.DegToRad(cam.Yaw)
		pitchRad := mgl32.DegToRad(cam.Pitch)

		forward := mgl32.Vec3{
			float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
			float32(math.Sin(float64(pitchRad))),
			float32(-math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
		}.Normalize()

		right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
		up := mgl32.Vec3{0, 1, 0}

		if walk.Speed == 0 {
			walk.Speed = 0.5
		}

		// Walking stays in the horizontal plane; levitation is the explicit
		// up/down keys, not pitch.
		flatForward := mgl32.Vec3{forward.X(), 0, forward.Z()}
		if flatForward.Len() > 0 {
			flatForward = flatForward.Normalize()
		}

		moveDir := mgl32.Vec3{0, 0, 0}
		moveDir = moveDir.Add(right.Mul(walk.Move[0]))
		moveDir = moveDir.Add(up.Mul(walk.Move[1]))
		moveDir = moveDir.Add(flatForward.Mul(walk.Move[2]))

		if moveDir.Len() > 0 {
			cam.Position = cam.Position.Add(moveDir.Normalize().Mul(walk.Speed * dt))
		}

		cam.LookAt = cam.Position.Add(forward)
		cam.Up = mgl32.Vec3{0, 1, 0}

		return true
	})
}
