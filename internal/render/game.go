// Package render draws a running match in an ebiten window and feeds the
// human players' keyboard state into it.
package render

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/tank-ctf/internal/arena"
)

const (
	TileSize    = 40 // pixels per map tile
	borderWidth = 24
	hudHeight   = 48
)

// Game implements ebiten.Game around one match. Update steps the match
// once per tick, so the window should run at the match framerate.
type Game struct {
	match *arena.Match
	log   *log.Logger

	width, height int // window size in pixels
	gameWidth     int // arena width in pixels, without the log panel
	gameHeight    int
	offX, offY    int

	paused    bool
	showPaths bool
	showLog   bool
	showHUD   bool
	notice    string
	noticeTTL int
}

// New creates a window-sized view of m. A nil logger discards output.
func New(m *arena.Match, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		match:      m,
		log:        logger,
		gameWidth:  m.Def.Width * TileSize,
		gameHeight: m.Def.Height * TileSize,
		offX:       borderWidth,
		offY:       borderWidth,
		showLog:    true,
		showHUD:    true,
	}
	g.width = g.offX*2 + g.gameWidth + logPanelWidth
	g.height = max(g.offY*2+g.gameHeight+hudHeight, logMinHeight)
	return g
}

// WindowSize is the size the window should open with.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	if g.noticeTTL > 0 {
		g.noticeTTL--
	}
	if g.paused {
		return nil
	}
	g.match.Step()
	return nil
}

// handleInput processes overlay toggles (edge-triggered) and the held
// driving keys of the human players.
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.showPaths = !g.showPaths
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.showLog = !g.showLog
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPause) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}

	for player, keys := range playerKeys {
		if player >= g.match.Settings.Humans {
			break
		}
		g.match.Drive(player, arena.Controls{
			Forward: ebiten.IsKeyPressed(keys.forward),
			Back:    ebiten.IsKeyPressed(keys.back),
			Left:    ebiten.IsKeyPressed(keys.left),
			Right:   ebiten.IsKeyPressed(keys.right),
			Fire:    ebiten.IsKeyPressed(keys.fire),
		})
	}
	return nil
}

type keyMap struct {
	forward, back, left, right, fire ebiten.Key
}

// playerKeys holds the bindings of player 1 and player 2.
var playerKeys = []keyMap{
	{ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyEnter},
	{ebiten.KeyW, ebiten.KeyS, ebiten.KeyA, ebiten.KeyD, ebiten.KeySpace},
}

func (g *Game) copyReport() {
	if err := clipboard.WriteAll(g.match.Report()); err != nil {
		g.log.Warn("clipboard copy failed", "err", err)
		g.setNotice("clipboard unavailable")
		return
	}
	g.setNotice("report copied")
}

func (g *Game) setNotice(s string) {
	g.notice = s
	g.noticeTTL = 2 * g.match.Settings.Framerate
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
