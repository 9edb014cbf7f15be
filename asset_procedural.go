package furshell

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CreateSphereCubeMesh builds a unit sphere by projecting a subdivided cube
// onto it. Each face keeps its own 0..1 texture coordinates, so strand cells
// stay roughly uniform instead of pinching at the poles like a UV sphere.
func (server *AssetServer) CreateSphereCubeMesh(radius float32, resolution int) Mesh {
	if resolution < 1 {
		resolution = 1
	}

	// Per-face basis: normal, tangent along u, bitangent along v.
	faces := []struct {
		normal    mgl32.Vec3
		tangent   mgl32.Vec3
		bitangent mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}

	var vertices []Vertex
	var indices []uint32

	for _, face := range faces {
		base := uint32(len(vertices))

		for v := 0; v <= resolution; v++ {
			for u := 0; u <= resolution; u++ {
				fu := float32(u) / float32(resolution)
				fv := float32(v) / float32(resolution)

				// Point on the cube face in [-1,1]^2, then out to the sphere.
				p := face.normal.
					Add(face.tangent.Mul(fu*2 - 1)).
					Add(face.bitangent.Mul(fv*2 - 1))
				n := p.Normalize()

				vertices = append(vertices, Vertex{
					Position: n.Mul(radius),
					Normal:   n,
					TexCoord: mgl32.Vec2{fu, fv},
				})
			}
		}

		stride := uint32(resolution + 1)
		for v := 0; v < resolution; v++ {
			for u := 0; u < resolution; u++ {
				i0 := base + uint32(v)*stride + uint32(u)
				i1 := i0 + 1
				i2 := i0 + stride
				i3 := i2 + 1

				indices = append(indices, i0, i2, i1)
				indices = append(indices, i1, i2, i3)
			}
		}
	}

	return server.LoadMesh(vertices, indices)
}

// CreatePlaneMesh builds a flat grid in the XZ plane facing up, sized
// width x depth and centered on the origin.
func (server *AssetServer) CreatePlaneMesh(width, depth float32, resolution int) Mesh {
	if resolution < 1 {
		resolution = 1
	}

	var vertices []Vertex
	var indices []uint32

	up := mgl32.Vec3{0, 1, 0}
	for z := 0; z <= resolution; z++ {
		for x := 0; x <= resolution; x++ {
			fu := float32(x) / float32(resolution)
			fv := float32(z) / float32(resolution)

			vertices = append(vertices, Vertex{
				Position: mgl32.Vec3{(fu - 0.5) * width, 0, (fv - 0.5) * depth},
				Normal:   up,
				TexCoord: mgl32.Vec2{fu, fv},
			})
		}
	}

	stride := uint32(resolution + 1)
	for z := 0; z < resolution; z++ {
		for x := 0; x < resolution; x++ {
			i0 := uint32(z)*stride + uint32(x)
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1

			indices = append(indices, i0, i2, i1)
			indices = append(indices, i1, i2, i3)
		}
	}

	return server.LoadMesh(vertices, indices)
}
