package background

import (
	"image"
	"image/color"
	"math/rand"
)

// Grass is the base colour of the infield and surroundings.
var Grass = color.RGBA{59, 122, 87, 255}

// Generator creates background textures
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new background generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// GenerateGrass creates a speckled grass field with scattered bushes. The
// same seed always gives the same image.
func (g *Generator) GenerateGrass(seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = Grass.R
		img.Pix[i+1] = Grass.G
		img.Pix[i+2] = Grass.B
		img.Pix[i+3] = Grass.A
	}

	// Add noise/texture to grass
	for i := 0; i < g.Width*g.Height/10; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		shade := uint8(100 + rng.Intn(45))
		img.SetRGBA(x, y, color.RGBA{Grass.R - 10, shade, Grass.B - 10, 255})
	}

	bushes := g.Width * g.Height / 4000
	for i := 0; i < bushes; i++ {
		g.drawBush(img, rng.Intn(g.Width), rng.Intn(g.Height), rng)
	}

	return img
}

// drawBush draws a round bush
func (g *Generator) drawBush(img *image.RGBA, x, y int, rng *rand.Rand) {
	radius := 3 + rng.Intn(6)
	c := color.RGBA{
		uint8(30 + rng.Intn(30)),
		uint8(90 + rng.Intn(50)),
		uint8(40 + rng.Intn(30)),
		255,
	}

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				px, py := x+dx, y+dy
				if px >= 0 && px < g.Width && py >= 0 && py < g.Height {
					img.SetRGBA(px, py, c)
				}
			}
		}
	}
}
