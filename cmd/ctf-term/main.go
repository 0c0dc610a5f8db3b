package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/tank-ctf/internal/arena"
	"github.com/Garsondee/tank-ctf/internal/config"
	"github.com/Garsondee/tank-ctf/internal/termview"
)

func main() {
	var o config.Overrides
	var logPath string
	o.RegisterFlags(flag.CommandLine)
	flag.StringVar(&logPath, "log-file", "", "write operator logs to this file instead of discarding them")
	flag.Parse()

	settings, err := o.Load()
	if err != nil {
		log.Fatal("settings", "err", err)
	}
	if settings.Humans > 0 {
		// Terminals report no key releases, so every tank is AI-driven here.
		log.Warn("keyboard players are not supported in the terminal view", "humans", settings.Humans)
		settings.Humans = 0
	}

	// The screen owns stdout/stderr while the match runs.
	logOut := os.DevNull
	if logPath != "" {
		logOut = logPath
	}
	f, err := os.OpenFile(logOut, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal("log file", "err", err)
	}
	defer f.Close()
	logger, err := arena.NewLogger(f, settings.LogLevel)
	if err != nil {
		log.Fatal("logger", "err", err)
	}

	def, err := config.ResolveMap(settings.Map)
	if err != nil {
		log.Fatal("map", "err", err)
	}
	m, err := arena.NewMatch(def, settings, logger)
	if err != nil {
		log.Fatal("match", "err", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("screen", "err", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("screen", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runErr := termview.New(screen, m).Run(ctx)
	screen.Fini()

	if runErr != nil && ctx.Err() == nil {
		log.Error("run", "err", runErr)
	}
	fmt.Print(m.Scoreboard())
}
