package game

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/racer/pkg/race"
)

var (
	carBody       = color.RGBA{200, 30, 30, 255}
	carOutline    = color.RGBA{20, 20, 20, 255}
	carWindshield = color.RGBA{150, 200, 255, 200}
	carWheel      = color.RGBA{30, 30, 30, 255}
)

// carImage draws a top-down car with its bonnet at the top of the image.
func carImage(width, height int, body color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := func(r image.Rectangle, c color.Color) {
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
	}

	fill(img.Bounds(), body)

	// Outline
	const outline = 2
	fill(image.Rect(0, 0, width, outline), carOutline)
	fill(image.Rect(0, height-outline, width, height), carOutline)
	fill(image.Rect(0, 0, outline, height), carOutline)
	fill(image.Rect(width-outline, 0, width, height), carOutline)

	// Windshield
	ww, wh := width*6/10, height/5
	wx := (width - ww) / 2
	fill(image.Rect(wx, outline, wx+ww, outline+wh), carWindshield)

	// Wheels
	wheelW, wheelH := max(width/5, 2), max(height/6, 2)
	front, rear := 4, height-wheelH-4
	for _, y := range []int{front, rear} {
		fill(image.Rect(0, y, wheelW, y+wheelH), carWheel)
		fill(image.Rect(width-wheelW, y, width, y+wheelH), carWheel)
	}

	return img
}

// newCarSprite uploads the car image once so drawing is a single blit.
func newCarSprite(width, height float64) *ebiten.Image {
	return ebiten.NewImageFromImage(carImage(int(width), int(height), carBody))
}

// drawCar places the sprite centred on the car. World y grows up and
// angles are counter-clockwise, the screen is the opposite on both.
func drawCar(screen, sprite *ebiten.Image, car race.CarState, screenHeight int) {
	w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Rotate(-car.Angle)
	op.GeoM.Translate(car.Position.X, float64(screenHeight)-car.Position.Y)
	op.Filter = ebiten.FilterLinear

	screen.DrawImage(sprite, op)
}
