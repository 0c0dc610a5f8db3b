package render

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/tank-ctf/internal/game"
)

const (
	logPanelWidth = 340
	logMinHeight  = 360
	logMaxEntries = 60
	logTitleH     = 18
)

// drawLogPanel renders the newest agent log entries on the right side of
// the screen, newest at the bottom.
func drawLogPanel(screen *ebiten.Image, sl *game.SimLog, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), logTitleH, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	drawText(screen, "AGENT LOG", panelX+8, 2, hudTextCol)
	vector.StrokeLine(screen, float32(panelX), logTitleH, float32(panelX+logPanelWidth), logTitleH, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	maxVisible := min(logMaxEntries, (panelH-logTitleH-6)/lineHeight)
	visible := sl.Recent(maxVisible)
	recent := 3 // newest rows are highlighted

	y := logTitleH + 4
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), lineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, labelColor(e.Agent), false)

		line := fmt.Sprintf("%5d %-3s %s/%s %s", e.Tick, e.Agent, e.Category, e.Key, e.Value)
		if n := (logPanelWidth - 16) / 7; len(line) > n {
			line = line[:n]
		}
		drawText(screen, line, panelX+12, y, hudTextCol)
		y += lineHeight
	}
}

// labelColor maps an agent label such as "P2" to its player colour.
func labelColor(label string) color.Color {
	if len(label) > 1 && label[0] == 'P' {
		if n, err := strconv.Atoi(label[1:]); err == nil && n > 0 {
			return playerColor(n - 1)
		}
	}
	return hudDimCol
}
