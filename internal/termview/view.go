// Package termview renders a match in a terminal, one character per tile.
package termview

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/tank-ctf/internal/arena"
	"github.com/Garsondee/tank-ctf/internal/game"
)

var (
	groundStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 90, 60))
	rockStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(160, 160, 150))
	woodStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(190, 130, 70))
	metalStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(140, 170, 200))
	flagStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	bulletStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	textStyle   = tcell.StyleDefault
	dimStyle    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(130, 140, 130))
)

var playerColors = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorPurple,
	tcell.NewRGBColor(230, 130, 50),
}

func playerStyle(i int) tcell.Style {
	return tcell.StyleDefault.Foreground(playerColors[i%len(playerColors)]).Bold(true)
}

// View draws one match onto a tcell screen.
type View struct {
	screen  tcell.Screen
	match   *arena.Match
	paused  bool
	showLog bool
}

// New wraps an initialised screen.
func New(screen tcell.Screen, m *arena.Match) *View {
	return &View{screen: screen, match: m, showLog: true}
}

// Paused reports whether stepping is suspended.
func (v *View) Paused() bool { return v.paused }

// Run steps the match at its framerate and redraws after every frame
// until the player quits or ctx is cancelled. The match keeps being
// drawn after it is over.
func (v *View) Run(ctx context.Context) error {
	frame := time.Second / time.Duration(v.match.Settings.Framerate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			if !v.paused {
				v.match.Step()
			}
			v.Draw()
		}
	}
}

// HandleEvent applies a key press. It returns false when the view should close.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'p', ' ':
			v.paused = !v.paused
		case 'l':
			v.showLog = !v.showLog
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Draw renders the arena, the status line and the recent agent log.
func (v *View) Draw() {
	s := v.screen
	m := v.match
	s.Clear()

	for y := 0; y < m.Def.Height; y++ {
		for x := 0; x < m.Def.Width; x++ {
			s.SetContent(x, y, '.', nil, groundStyle)
		}
	}
	for _, b := range m.Bases {
		v.put(b.Pos, 'o', playerStyle(b.Player).Bold(false))
	}
	for _, b := range m.World.Boxes() {
		r, style := boxGlyph(b.Class)
		v.put(b.Position(), r, style)
	}
	if m.Flag.Free() {
		v.put(m.Flag.Pos, 'F', flagStyle)
	}
	for _, b := range m.World.Bullets() {
		v.put(b.Position(), '*', bulletStyle)
	}
	for _, t := range m.Tanks() {
		style := playerStyle(t.Index)
		if t.CarriesFlag() {
			style = style.Reverse(true)
		}
		v.put(t.Position(), HeadingGlyph(t.Angle()), style)
	}

	y := m.Def.Height + 1
	x := 0
	for i, score := range m.Scores() {
		label := fmt.Sprintf("P%d %d", i+1, score)
		x = drawString(s, x, y, label, playerStyle(i)) + 2
	}
	status := m.Status()
	if v.paused {
		status += "  PAUSED"
	}
	drawString(s, x, y, status, textStyle)
	drawString(s, 0, y+1, "q quit  p pause  l log", dimStyle)

	if m.Done() {
		for i, line := range strings.Split(strings.TrimRight(m.Scoreboard(), "\n"), "\n") {
			drawString(s, m.Def.Width+3, i, line, textStyle)
		}
	}

	if v.showLog {
		_, h := s.Size()
		top := y + 3
		if n := h - top; n > 0 {
			for i, e := range m.SimLog.Recent(n) {
				drawString(s, 0, top+i, e.String(), dimStyle)
			}
		}
	}
	s.Show()
}

func (v *View) put(p game.Vec2, r rune, style tcell.Style) {
	c := game.CellOf(p)
	if c.X < 0 || c.Y < 0 || c.X >= v.match.Def.Width || c.Y >= v.match.Def.Height {
		return
	}
	v.screen.SetContent(c.X, c.Y, r, nil, style)
}

func boxGlyph(class game.TileClass) (rune, tcell.Style) {
	switch class {
	case game.TileIndestructibleBox:
		return '#', rockStyle
	case game.TileDestructibleBox:
		return '=', woodStyle
	case game.TileMetalBox:
		return 'M', metalStyle
	default:
		return '.', groundStyle
	}
}

// HeadingGlyph is the arrow closest to the direction a body with the given
// angle faces, on a y-down screen.
func HeadingGlyph(angle float64) rune {
	f := game.Forward(angle)
	if math.Abs(f.X) > math.Abs(f.Y) {
		if f.X > 0 {
			return '→'
		}
		return '←'
	}
	if f.Y > 0 {
		return '↓'
	}
	return '↑'
}

// drawString writes s from (x, y) and returns the column after it.
func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
