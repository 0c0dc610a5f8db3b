package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/tank-ctf/internal/arena"
	"github.com/Garsondee/tank-ctf/internal/config"
	"github.com/Garsondee/tank-ctf/internal/render"
)

func main() {
	var o config.Overrides
	o.RegisterFlags(flag.CommandLine)
	flag.Parse()

	settings, err := o.Load()
	if err != nil {
		log.Fatal("settings", "err", err)
	}
	logger, err := arena.NewLogger(os.Stderr, settings.LogLevel)
	if err != nil {
		log.Fatal("logger", "err", err)
	}
	def, err := config.ResolveMap(settings.Map)
	if err != nil {
		logger.Fatal("map", "err", err)
	}
	m, err := arena.NewMatch(def, settings, logger)
	if err != nil {
		logger.Fatal("match", "err", err)
	}

	g := render.New(m, logger)
	ebiten.SetWindowTitle("Capture the Flag - " + def.Name)
	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetTPS(settings.Framerate)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run", "err", err)
	}
	logger.Info("final score\n" + m.Scoreboard())
}
