package furshell

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoCube
	GizmoCircle
)

// GizmoComponent marks an entity for wireframe visualization by the debug
// line pass. Gizmos live in world space.
type GizmoComponent struct {
	Type  GizmoType
	Color mgl32.Vec4

	// Position is the center, or the start point for GizmoLine.
	Position mgl32.Vec3
	Scale    mgl32.Vec3

	LineEnd mgl32.Vec3 // GizmoLine end point
	Radius  float32    // GizmoCircle radius
	Axis    mgl32.Vec3 // GizmoCircle plane normal
}

func NewGizmoLine(start, end mgl32.Vec3, c color.RGBA) GizmoComponent {
	return GizmoComponent{
		Type:     GizmoLine,
		Position: start,
		LineEnd:  end,
		Color:    colorToVec4(c),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func NewGizmoCube(center mgl32.Vec3, size mgl32.Vec3, c color.RGBA) GizmoComponent {
	return GizmoComponent{
		Type:     GizmoCube,
		Position: center,
		Scale:    size,
		Color:    colorToVec4(c),
	}
}

func NewGizmoCircle(center mgl32.Vec3, radius float32, axis mgl32.Vec3, c color.RGBA) GizmoComponent {
	return GizmoComponent{
		Type:     GizmoCircle,
		Position: center,
		Radius:   radius,
		Axis:     axis,
		Color:    colorToVec4(c),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// ShowNormalsComponent makes the debug pass draw one line per mesh vertex
// along its normal. Useful to eyeball the displacement direction of shells.
type ShowNormalsComponent struct {
	Length float32
	Color  mgl32.Vec4
}

func ShowNormals(length float32) ShowNormalsComponent {
	return ShowNormalsComponent{
		Length: length,
		Color:  colorToVec4(colornames.Yellow),
	}
}

func colorToVec4(c color.RGBA) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
		float32(c.A) / 255.0,
	}
}

const circleSegments = 32

// appendGizmoVertices expands a gizmo into line-list vertices, two per segment.
func appendGizmoVertices(buf *CpuBuffer[DebugVertex], g *GizmoComponent) {
	switch g.Type {
	case GizmoLine:
		buf.Push(
			DebugVertex{Position: g.Position, Color: g.Color},
			DebugVertex{Position: g.LineEnd, Color: g.Color},
		)

	case GizmoCube:
		half := g.Scale.Mul(0.5)
		var corners [8]mgl32.Vec3
		for i := 0; i < 8; i++ {
			sx, sy, sz := float32(1), float32(1), float32(1)
			if i&1 == 0 {
				sx = -1
			}
			if i&2 == 0 {
				sy = -1
			}
			if i&4 == 0 {
				sz = -1
			}
			corners[i] = g.Position.Add(mgl32.Vec3{half.X() * sx, half.Y() * sy, half.Z() * sz})
		}

		edges := [12][2]int{
			{0, 1}, {2, 3}, {4, 5}, {6, 7},
			{0, 2}, {1, 3}, {4, 6}, {5, 7},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		}
		for _, e := range edges {
			buf.Push(
				DebugVertex{Position: corners[e[0]], Color: g.Color},
				DebugVertex{Position: corners[e[1]], Color: g.Color},
			)
		}

	case GizmoCircle:
		axis := g.Axis
		if axis.Len() == 0 {
			axis = mgl32.Vec3{0, 1, 0}
		}
		axis = axis.Normalize()

		// Any vector not parallel to the axis gives a tangent basis.
		ref := mgl32.Vec3{1, 0, 0}
		if math.Abs(float64(axis.Dot(ref))) > 0.99 {
			ref = mgl32.Vec3{0, 0, 1}
		}
		u := axis.Cross(ref).Normalize()
		v := axis.Cross(u)

		prev := g.Position.Add(u.Mul(g.Radius))
		for i := 1; i <= circleSegments; i++ {
			angle := float64(i) * 2 * math.Pi / circleSegments
			point := g.Position.
				Add(u.Mul(g.Radius * float32(math.Cos(angle)))).
				Add(v.Mul(g.Radius * float32(math.Sin(angle))))
			buf.Push(
				DebugVertex{Position: prev, Color: g.Color},
				DebugVertex{Position: point, Color: g.Color},
			)
			prev = point
		}
	}
}
