package furshell

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightFactorRootShellPinned(t *testing.T) {
	require.Equal(t, float32(0), HeightFactor(0, NumShells))

	pos := mgl32.Vec3{1.5, -2.25, 0.125}
	normal := mgl32.Vec3{0, 1, 0}
	displaced := DisplaceVertex(pos, normal, HeightFactor(0, NumShells), FurHeight)
	assert.Equal(t, pos, displaced, "root shell must not move")
}

func TestHeightFactorMonotonic(t *testing.T) {
	pos := mgl32.Vec3{0.5, 0.5, 0.5}
	normal := mgl32.Vec3{0, 0, 1}

	prevFactor := float32(-1)
	prevOffset := float32(-1)
	for shell := 0; shell < NumShells; shell++ {
		hf := HeightFactor(shell, NumShells)
		assert.Greater(t, hf, prevFactor, "shell %d", shell)
		assert.Less(t, hf, float32(1), "shell %d", shell)

		offset := DisplaceVertex(pos, normal, hf, FurHeight).Sub(pos).Len()
		assert.Greater(t, offset, prevOffset, "shell %d", shell)

		prevFactor = hf
		prevOffset = offset
	}

	// The top shell undershoots the configured height on purpose.
	top := HeightFactor(NumShells-1, NumShells)
	assert.InDelta(t, FurHeight*float32(NumShells-1)/float32(NumShells),
		DisplaceVertex(pos, normal, top, FurHeight).Sub(pos).Len(), 1e-6)
}

func TestDisplaceVertexFollowsNormal(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}
	normal := mgl32.Vec3{0.6, 0.8, 0}

	displaced := DisplaceVertex(pos, normal, 0.5, FurHeight)
	offset := displaced.Sub(pos)
	assert.InDelta(t, 0.5*FurHeight, offset.Len(), 1e-6)
	assert.InDelta(t, 0, offset.Cross(normal).Len(), 1e-6, "offset must be parallel to the normal")
}

func TestClipPosition(t *testing.T) {
	p := mgl32.Vec3{1, 2, 3}
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, ClipPosition(mgl32.Ident4(), p))

	translated := ClipPosition(mgl32.Translate3D(10, 0, 0), p)
	assert.Equal(t, mgl32.Vec4{11, 2, 3, 1}, translated)
}

// A strand that has ended never comes back: going outward through the shells
// there is exactly one transition from kept to discarded.
func TestShadeFurDiscardMonotonic(t *testing.T) {
	for cx := 0; cx < 20; cx++ {
		for cy := 0; cy < 20; cy++ {
			// Sample the center of cell (cx, cy) in tiled space.
			tc := mgl32.Vec2{(float32(cx) + 0.5) / FurTiling, (float32(cy) + 0.5) / FurTiling}

			transitions := 0
			prevDiscard := false
			for shell := 0; shell < NumShells; shell++ {
				_, discard := ShadeFur(tc, HeightFactor(shell, NumShells))
				if discard != prevDiscard {
					transitions++
					require.True(t, discard, "cell (%d,%d): strand reappeared at shell %d", cx, cy, shell)
				}
				prevDiscard = discard
			}
			assert.LessOrEqual(t, transitions, 1, "cell (%d,%d)", cx, cy)

			// The root shell always keeps: no noise value is below zero.
			_, discard := ShadeFur(tc, 0)
			assert.False(t, discard, "cell (%d,%d)", cx, cy)
		}
	}
}

// Pin the full keep/discard/color behavior for one known cell. The noise fixture
// for cell (3,5) is 0.8349609375 (see TestHashNoiseFixtures), so the transition
// lands between shells 26 (0.8125) and 27 (0.84375).
func TestShadeFurScenario(t *testing.T) {
	cell := mgl32.Vec2{3, 5}
	noise := HashNoise(cell)
	require.InDelta(t, 0.8349609375, noise, 1e-6)

	tc := mgl32.Vec2{(cell[0] + 0.5) / FurTiling, (cell[1] + 0.5) / FurTiling}

	_, discard := ShadeFur(tc, 0.1)
	assert.False(t, discard, "noise %v >= 0.1 keeps the fragment", noise)

	_, discard = ShadeFur(tc, 0.9)
	assert.True(t, discard, "noise %v < 0.9 discards the fragment", noise)

	_, discard = ShadeFur(tc, HeightFactor(26, NumShells))
	assert.False(t, discard)
	_, discard = ShadeFur(tc, HeightFactor(27, NumShells))
	assert.True(t, discard)
}

func TestShadeFurFalloff(t *testing.T) {
	cell := mgl32.Vec2{3, 5} // survives up to height 0.8349609375
	hf := float32(0.5)

	samples := []struct {
		in   mgl32.Vec2 // position inside the cell
		dist float32    // distance from cell center
	}{
		{mgl32.Vec2{0.5, 0.5}, 0},
		{mgl32.Vec2{0.5, 0.25}, 0.25},
		{mgl32.Vec2{0.125, 0.5}, 0.375},
		{mgl32.Vec2{0.0078125, 0.0078125}, math32.Hypot(0.4921875, 0.4921875)},
	}
	for _, s := range samples {
		tc := mgl32.Vec2{(cell[0] + s.in[0]) / FurTiling, (cell[1] + s.in[1]) / FurTiling}
		rgba, discard := ShadeFur(tc, hf)
		require.False(t, discard)

		want := (1.0 - s.dist) * hf
		assert.InDelta(t, want, rgba[0], 1e-3, "sample %v", s.in)
		assert.Equal(t, rgba[0], rgba[1])
		assert.Equal(t, rgba[1], rgba[2])
		assert.Equal(t, float32(1), rgba[3], "opaque output")

		// Unclamped falloff still stays within [0, 1]: the farthest point of a
		// cell is its corner at distance ~0.707.
		assert.GreaterOrEqual(t, rgba[0], float32(0))
		assert.LessOrEqual(t, rgba[0], float32(1))
	}
}

// The WGSL source must carry the same compiled-in parameters as fur.go; the
// instance count handed to the draw call comes from the Go side.
func TestFurShaderConstants(t *testing.T) {
	constants := map[string]float64{
		"NUM_SHELLS": NumShells,
		"FUR_HEIGHT": FurHeight,
		"FUR_TILING": FurTiling,
	}
	for name, want := range constants {
		re := regexp.MustCompile(`const ` + name + `: f32 = ([0-9.]+);`)
		m := re.FindStringSubmatch(furShaderSource)
		require.NotNil(t, m, "constant %s missing from fur.wgsl", name)

		got, err := strconv.ParseFloat(m[1], 32)
		require.NoError(t, err)
		assert.Equal(t, want, got, "constant %s", name)
	}
}

func TestFurShaderEntryPoints(t *testing.T) {
	assert.Contains(t, furShaderSource, "fn displace_vertices")
	assert.Contains(t, furShaderSource, "fn shade_fur")
	assert.Contains(t, furShaderSource, "fn gradient_noise")
	assert.Contains(t, debugShaderSource, "fn project_vertices")
	assert.Contains(t, debugShaderSource, "fn draw_color")
}
