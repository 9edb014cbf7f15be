package furshell

import (
	"image"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
)

// RenderFurMap rasterizes one shell of the fur shading on the CPU: each pixel
// samples ShadeFur over the unit UV square, exactly as the fragment stage
// does over the strand grid. Useful to inspect strand density and falloff
// without a GPU.
func RenderFurMap(size int, shell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	heightFactor := HeightFactor(shell, NumShells)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			uv := mgl32.Vec2{
				(float32(x) + 0.5) / float32(size),
				(float32(y) + 0.5) / float32(size),
			}

			rgba, discard := ShadeFur(uv, heightFactor)
			if discard {
				continue
			}

			idx := img.PixOffset(x, y)
			img.Pix[idx+0] = uint8(rgba[0] * 255)
			img.Pix[idx+1] = uint8(rgba[1] * 255)
			img.Pix[idx+2] = uint8(rgba[2] * 255)
			img.Pix[idx+3] = 255
		}
	}

	return img
}

// WriteFurMap renders the strand map for one shell, upscales it with
// nearest-neighbor so individual cells stay sharp, and writes a PNG.
func WriteFurMap(filename string, size int, shell int, scale int) error {
	img := RenderFurMap(size, shell)

	if scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, size*scale, size*scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = scaled
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
