package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/golangdaddy/racer/pkg/race"
)

var (
	hudFace     = text.NewGoXFace(bitmapfont.Face)
	hudOnTrack  = color.White
	hudOffTrack = color.RGBA{255, 0, 0, 255}
	hudHint     = color.RGBA{220, 220, 220, 255}
)

// statusLine is the track indicator text and its colour.
func statusLine(s race.Status) (string, color.Color) {
	if s == race.StatusOffTrack {
		return s.Label(), hudOffTrack
	}
	return s.Label(), hudOnTrack
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := float64(g.cfg.Screen.Width)

	msg, clr := statusLine(g.race.Status())
	drawTextAt(screen, msg, w-130, 30, 16, clr)

	car := g.race.Car()
	info := fmt.Sprintf("%s  %.0f px/s", g.race.Track().Name(), car.Velocity.Len())
	drawTextAt(screen, info, 20, 30, 16, hudHint)

	drawTextAt(screen, "R: restart  TAB: next track  ESC: quit", 20, float64(g.cfg.Screen.Height)-20, 12, hudHint)
}

// drawTextAt draws text at the specified position with the given size
func drawTextAt(screen *ebiten.Image, str string, x, y, size float64, clr color.Color) {
	scale := size / 16.0

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, hudFace, op)
}
