package furshell

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shell fur parameters. These are compiled in, not configurable at run time: the
// WGSL source in shaders/fur.wgsl carries the same values, and the instanced draw
// in mod_fur.go must use NumShells as its instance count or the displacement and
// occupancy mapping silently desynchronize.
const (
	// NumShells is how many times the base mesh is drawn per frame, and the
	// normalization divisor for the shell height factor.
	NumShells = 32
	// FurHeight is the outward displacement of the outermost shell, in
	// object-space units.
	FurHeight = 0.25
	// FurTiling scales mesh UVs into the repeating strand grid.
	FurTiling = 100.0
)

// HeightFactor returns the normalized height of a shell, in [0, 1). Shell 0 sits
// exactly on the base surface. The outermost shell stops at (n-1)/n of the full
// fur height; the divisor never yields 1.0.
func HeightFactor(shell, numShells int) float32 {
	return float32(shell) / float32(numShells)
}

// DisplaceVertex pushes a vertex outward along its normal by the shell's share of
// the fur height. The normal is taken as unit length and is not renormalized.
func DisplaceVertex(pos, normal mgl32.Vec3, heightFactor, furHeight float32) mgl32.Vec3 {
	return pos.Add(normal.Mul(heightFactor * furHeight))
}

// ClipPosition applies the camera view-projection transform to an object-space
// position. The matrix is an explicit argument so the core stays testable outside
// any graphics context.
func ClipPosition(viewProj mgl32.Mat4, p mgl32.Vec3) mgl32.Vec4 {
	return viewProj.Mul4x1(p.Vec4(1.0))
}

// ShadeFur decides whether a fur strand covers the given surface sample. discard
// reports that the fragment writes nothing; a strand whose cell noise falls below
// the shell height has already ended beneath this shell, which is what thins the
// fur toward the tips. Surviving samples get a radial strand-core falloff dimmed
// toward the root.
//
// The strand popping between adjacent shells as cells cross their threshold is
// part of the look, not something to smooth over.
func ShadeFur(texCoord mgl32.Vec2, heightFactor float32) (rgba mgl32.Vec4, discard bool) {
	p := texCoord.Mul(FurTiling)
	cell := mgl32.Vec2{math32.Floor(p[0]), math32.Floor(p[1])}
	if HashNoise(cell) < heightFactor {
		return mgl32.Vec4{}, true
	}

	g := mgl32.Vec2{fract(p[0]), fract(p[1])}
	d := mgl32.Vec2{0.5, 0.5}.Sub(g).Len()
	c := (1.0 - d) * heightFactor
	return mgl32.Vec4{c, c, c, 1.0}, false
}
