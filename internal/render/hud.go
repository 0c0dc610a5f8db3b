package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 14 // basicfont 7x13 plus one pixel

var hudFace = text.NewGoXFace(basicfont.Face7x13)

var (
	hudTextCol  = color.RGBA{R: 220, G: 230, B: 210, A: 255}
	hudDimCol   = color.RGBA{R: 140, G: 160, B: 140, A: 255}
	panelBgCol  = color.RGBA{R: 6, G: 10, B: 6, A: 210}
	panelEdgCol = color.RGBA{R: 60, G: 100, B: 60, A: 180}
)

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = lineHeight
	text.Draw(dst, s, hudFace, op)
}

// drawHUD renders scores and the win condition under the arena, and the
// key legend when enabled.
func (g *Game) drawHUD(screen *ebiten.Image) {
	m := g.match
	x := g.offX
	y := g.offY*2 + g.gameHeight - borderWidth/2

	for i, s := range m.Scores() {
		label := fmt.Sprintf("P%d %d", i+1, s)
		vector.FillRect(screen, float32(x), float32(y+3), 8, 8, playerColor(i), false)
		drawText(screen, label, x+12, y, hudTextCol)
		x += 12 + len(label)*7 + 16
	}
	status := m.Status()
	if g.paused {
		status += "  PAUSED"
	}
	drawText(screen, status, x+8, y, hudTextCol)

	if g.noticeTTL > 0 {
		drawText(screen, g.notice, g.offX, y+lineHeight, flagCol)
	} else if g.showHUD {
		drawText(screen, legend(m.Settings.Humans), g.offX, y+lineHeight, hudDimCol)
	}
}

func legend(humans int) string {
	parts := []string{"P paths", "L log", "C copy", "Bksp pause", "H help", "Esc quit"}
	switch humans {
	case 1:
		parts = append(parts, "P1 arrows+Enter")
	case 2:
		parts = append(parts, "P1 arrows+Enter", "P2 WASD+Space")
	}
	return strings.Join(parts, "  ")
}

// drawScoreboard overlays the final score table in the middle of the arena.
func (g *Game) drawScoreboard(screen *ebiten.Image) {
	board := strings.TrimRight(g.match.Scoreboard(), "\n")
	lines := strings.Split(board, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	const pad = 10
	boxW := float32(w*7 + pad*2)
	boxH := float32(len(lines)*lineHeight + pad*2)
	bx := float32(g.offX) + (float32(g.gameWidth)-boxW)/2
	by := float32(g.offY) + (float32(g.gameHeight)-boxH)/2

	vector.FillRect(screen, bx, by, boxW, boxH, panelBgCol, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, panelEdgCol, false)
	drawText(screen, board, int(bx)+pad, int(by)+pad, hudTextCol)
}
