package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/racer/pkg/config"
	"github.com/golangdaddy/racer/pkg/game"
	"github.com/golangdaddy/racer/pkg/logging"
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	path, err := flags.GetString("config")
	if err != nil {
		errLog := logging.New("error", nil)
		errLog.Error().Err(err).Msg("invalid --config flag")
		os.Exit(2)
	}

	cfg, err := config.Load(path, flags)
	if err != nil {
		errLog := logging.New("error", nil)
		errLog.Error().Err(err).Msg("invalid config")
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, nil)
	for _, w := range cfg.Warnings {
		log.Warn().Err(w).Msg("config warning")
	}

	g, err := game.NewGame(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetTPS(cfg.Screen.TPS)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("game stopped")
	}
}
