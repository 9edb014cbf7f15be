package furshell

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// fract returns the positive fractional part of x, matching WGSL fract().
func fract(x float32) float32 {
	return x - math32.Floor(x)
}

// HashNoise maps a 2D grid cell to a pseudo-random scalar in [0, 1). It is the
// classic magic-constant sine hash: visually uniform enough for threshold tests,
// with no statistical guarantees. Same cell always yields the same value.
//
// The sine argument grows to hundreds of radians, where float32 range reduction
// differs between libm implementations, so the sine is evaluated in float64 and
// rounded back. This keeps the value reproducible on every platform Go targets;
// the GPU-side hash in fur.wgsl is only required to agree with itself.
func HashNoise(cell mgl32.Vec2) float32 {
	d := cell.Dot(mgl32.Vec2{12.9898, 78.233})
	return fract(float32(math.Sin(float64(d))) * 43758.5453)
}

// Skew/hash constants for 2D simplex noise.
const (
	simplexCX = 0.211324865405187  // (3 - sqrt(3)) / 6
	simplexCY = 0.366025403784439  // (sqrt(3) - 1) / 2
	simplexCZ = -0.577350269189626 // 2*simplexCX - 1
	simplexCW = 0.024390243902439  // 1 / 41
)

func mod289(x float32) float32 {
	return x - math32.Floor(x*(1.0/289.0))*289.0
}

func permute(x float32) float32 {
	return mod289((x*34.0 + 1.0) * x)
}

// simplexCorner computes one corner's contribution: radial falloff weight times
// the hashed gradient dotted with the corner offset.
func simplexCorner(hash float32, d mgl32.Vec2) float32 {
	m := math32.Max(0.5-d.Dot(d), 0)
	m = m * m
	m = m * m

	x := 2.0*fract(hash*simplexCW) - 1.0
	h := math32.Abs(x) - 0.5
	a0 := x - math32.Floor(x+0.5)

	m *= 1.79284291400159 - 0.85373472095314*(a0*a0+h*h)
	return m * (a0*d[0] + h*d[1])
}

// GradientNoise is stateless Simplex-style gradient noise over 2D, continuous and
// smooth (unlike HashNoise's hard cell boundaries), returning values in roughly
// [-1, 1]. The active fur path does not call it; it is kept as a building block
// for strand-shape variation, mirrored by gradient_noise in fur.wgsl.
func GradientNoise(v mgl32.Vec2) float32 {
	skew := (v[0] + v[1]) * simplexCY
	i := mgl32.Vec2{math32.Floor(v[0] + skew), math32.Floor(v[1] + skew)}
	unskew := (i[0] + i[1]) * simplexCX
	x0 := v.Sub(i).Add(mgl32.Vec2{unskew, unskew})

	// Which of the two triangles of the skewed cell the point falls in.
	i1 := mgl32.Vec2{0, 1}
	if x0[0] > x0[1] {
		i1 = mgl32.Vec2{1, 0}
	}
	x1 := mgl32.Vec2{x0[0] + simplexCX - i1[0], x0[1] + simplexCX - i1[1]}
	x2 := mgl32.Vec2{x0[0] + simplexCZ, x0[1] + simplexCZ}

	ix, iy := mod289(i[0]), mod289(i[1])
	p0 := permute(permute(iy) + ix)
	p1 := permute(permute(iy+i1[1]) + ix + i1[0])
	p2 := permute(permute(iy+1.0) + ix + 1.0)

	return 130.0 * (simplexCorner(p0, x0) + simplexCorner(p1, x1) + simplexCorner(p2, x2))
}
