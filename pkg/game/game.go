package game

import (
	"errors"
	"fmt"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/golangdaddy/racer/pkg/background"
	"github.com/golangdaddy/racer/pkg/config"
	"github.com/golangdaddy/racer/pkg/race"
	"github.com/golangdaddy/racer/pkg/road"
)

// grassSeed keeps the generated scenery the same between runs.
const grassSeed = 1

// ErrNoTracks is returned when the config holds no usable track.
var ErrNoTracks = errors.New("no tracks configured")

// layers are the pre-rendered textures for one track
type layers struct {
	background *ebiten.Image
	mask       *ebiten.Image
}

// Game implements the ebiten.Game interface and drives one race at a time
type Game struct {
	cfg    *config.Config
	log    zerolog.Logger
	tracks []*road.Track
	index  int
	race   *race.Race
	dt     float64

	masks  *road.MaskCache
	layers map[int]*layers
	grass  *ebiten.Image
	sprite *ebiten.Image
}

// NewGame creates a game on the configured track
func NewGame(cfg *config.Config, log zerolog.Logger) (*Game, error) {
	tracks := cfg.RoadTracks()
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}

	g := &Game{
		cfg:    cfg,
		log:    log,
		tracks: tracks,
		index:  cfg.SelectedTrack(),
		dt:     1 / float64(cfg.Screen.TPS),
		masks:  road.NewMaskCache(),
		layers: map[int]*layers{},
	}

	settings := cfg.RaceSettings()
	r, err := race.New(g.tracks[g.index], settings, log)
	if err != nil {
		return nil, err
	}
	g.race = r
	g.sprite = newCarSprite(settings.Car.Width, settings.Car.Height)

	if _, err := g.trackLayers(g.index); err != nil {
		return nil, err
	}
	return g, nil
}

// Update handles game logic updates
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if err := g.selectTrack((g.index + 1) % len(g.tracks)); err != nil {
			return err
		}
	} else if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.race.Reset(g.tracks[g.index]); err != nil {
			return err
		}
	}

	in := readInput(ebiten.IsKeyPressed)
	if err := g.race.Update(in, g.dt); err != nil {
		g.log.Error().Err(err).Str("race", g.race.ID()).Msg("race update failed")
		return err
	}
	return nil
}

// Draw renders the track, the car and the HUD
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background.Grass)

	if l, err := g.trackLayers(g.index); err == nil {
		screen.DrawImage(l.background, nil)
		screen.DrawImage(l.mask, nil)
	}

	drawCar(screen, g.sprite, g.race.Car(), g.cfg.Screen.Height)
	g.drawHUD(screen)
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}

func (g *Game) selectTrack(i int) error {
	if _, err := g.trackLayers(i); err != nil {
		return err
	}
	if err := g.race.Reset(g.tracks[i]); err != nil {
		return err
	}
	g.index = i
	g.log.Info().Str("track", g.tracks[i].Name()).Msg("track selected")
	return nil
}

// trackLayers loads the background and mask textures for a track on first use.
func (g *Game) trackLayers(i int) (*layers, error) {
	if l, ok := g.layers[i]; ok {
		return l, nil
	}
	t := g.tracks[i]
	w, h := g.cfg.Screen.Width, g.cfg.Screen.Height

	bg := g.grassImage()
	if t.Image() != "" {
		img, _, err := ebitenutil.NewImageFromFile(t.Image())
		if err != nil {
			return nil, fmt.Errorf("track %q: load image: %w", t.Name(), err)
		}
		bg = img
	}

	l := &layers{
		background: bg,
		mask:       ebiten.NewImageFromImage(g.masks.Get(t, w, h, road.DefaultMaskStyle)),
	}
	g.layers[i] = l

	hits, misses := g.masks.Stats()
	g.log.Debug().Str("track", t.Name()).Int("mask_hits", hits).Int("mask_misses", misses).Msg("track textures ready")
	return l, nil
}

func (g *Game) grassImage() *ebiten.Image {
	if g.grass == nil {
		gen := background.NewGenerator(g.cfg.Screen.Width, g.cfg.Screen.Height)
		g.grass = ebiten.NewImageFromImage(gen.GenerateGrass(grassSeed))
	}
	return g.grass
}
