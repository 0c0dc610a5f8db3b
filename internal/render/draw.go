package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/tank-ctf/internal/game"
	"github.com/Garsondee/tank-ctf/internal/physics"
)

var (
	backgroundCol = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	groundCol     = color.RGBA{R: 58, G: 74, B: 50, A: 255}
	gridCol       = color.RGBA{R: 70, G: 88, B: 62, A: 120}
	borderCol     = color.RGBA{R: 65, G: 90, B: 65, A: 255}
	flagCol       = color.RGBA{R: 250, G: 220, B: 60, A: 255}
	bulletCol     = color.RGBA{R: 255, G: 240, B: 200, A: 255}
)

var playerCols = []color.RGBA{
	{R: 210, G: 70, B: 70, A: 255},
	{R: 70, G: 110, B: 210, A: 255},
	{R: 80, G: 180, B: 90, A: 255},
	{R: 220, G: 190, B: 70, A: 255},
	{R: 160, G: 90, B: 200, A: 255},
	{R: 230, G: 130, B: 50, A: 255},
}

func playerColor(i int) color.RGBA {
	return playerCols[i%len(playerCols)]
}

func boxColor(class game.TileClass) color.RGBA {
	switch class {
	case game.TileIndestructibleBox:
		return color.RGBA{R: 110, G: 110, B: 105, A: 255}
	case game.TileDestructibleBox:
		return color.RGBA{R: 150, G: 105, B: 55, A: 255}
	case game.TileMetalBox:
		return color.RGBA{R: 120, G: 150, B: 175, A: 255}
	default:
		return groundCol
	}
}

// toScreen converts a tile-space position to window pixels.
func (g *Game) toScreen(p game.Vec2) (float32, float32) {
	return float32(g.offX) + float32(p.X*TileSize), float32(g.offY) + float32(p.Y*TileSize)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundCol)

	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	vector.FillRect(screen, ox, oy, gw, gh, groundCol, false)
	drawGridOffset(screen, g.offX, g.offY, g.gameWidth, g.gameHeight, TileSize, gridCol)

	g.drawBases(screen)
	g.drawBoxes(screen)
	if g.showPaths {
		g.drawPaths(screen)
	}
	g.drawFlag(screen)
	g.drawTanks(screen)
	g.drawBullets(screen)

	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, borderCol, false)
	vector.StrokeRect(screen, ox-3, oy-3, gw+6, gh+6, 1.0, color.RGBA{R: 40, G: 65, B: 40, A: 100}, false)

	g.drawHUD(screen)
	if g.showLog {
		drawLogPanel(screen, g.match.SimLog, g.offX*2+g.gameWidth, g.height)
	}
	if g.match.Done() {
		g.drawScoreboard(screen)
	}
}

func (g *Game) drawBases(screen *ebiten.Image) {
	for _, b := range g.match.Bases {
		x, y := g.toScreen(b.Pos)
		c := playerColor(b.Player)
		fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 60}
		vector.FillCircle(screen, x, y, TileSize*0.45, fill, true)
		vector.StrokeCircle(screen, x, y, TileSize*0.45, 2, c, true)
	}
}

func (g *Game) drawBoxes(screen *ebiten.Image) {
	for _, b := range g.match.World.Boxes() {
		c := boxColor(b.Class)
		fillQuad(screen, g, b.Position(), 0.5, b.Angle(), c)
		inner := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}
		if b.Class == game.TileDestructibleBox {
			// Planks.
			x0, y0 := g.toScreen(b.Position().Add(game.V(-0.4, 0)))
			x1, y1 := g.toScreen(b.Position().Add(game.V(0.4, 0)))
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, inner, false)
		} else {
			fillQuad(screen, g, b.Position(), 0.3, b.Angle(), inner)
		}
	}
}

func (g *Game) drawFlag(screen *ebiten.Image) {
	f := g.match.Flag
	x, y := g.toScreen(f.Pos)
	pole := float32(TileSize) * 0.35
	vector.StrokeLine(screen, x, y+pole, x, y-pole, 2, color.White, true)

	var path vector.Path
	path.MoveTo(x, y-pole)
	path.LineTo(x+pole, y-pole/2)
	path.LineTo(x, y)
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(flagCol)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)
}

func (g *Game) drawTanks(screen *ebiten.Image) {
	for _, t := range g.match.Tanks() {
		c := playerColor(t.Index)
		pos := t.Position()
		if t.CarriesFlag() {
			x, y := g.toScreen(pos)
			vector.StrokeCircle(screen, x, y, TileSize*0.45, 2, flagCol, true)
		}
		fillQuad(screen, g, pos, physics.TankHalfSize, t.Angle(), c)

		// Barrel along the heading.
		x0, y0 := g.toScreen(pos)
		x1, y1 := g.toScreen(pos.Add(game.Forward(t.Angle()).Scale(0.45)))
		vector.StrokeLine(screen, x0, y0, x1, y1, 4, color.RGBA{R: 30, G: 30, B: 30, A: 255}, true)
		vector.FillCircle(screen, x0, y0, TileSize*0.1, color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}, true)
	}
}

func (g *Game) drawBullets(screen *ebiten.Image) {
	for _, b := range g.match.World.Bullets() {
		x, y := g.toScreen(b.Position())
		vector.FillCircle(screen, x, y, float32(physics.BulletRadius*TileSize)+1, bulletCol, true)
	}
}

// drawPaths renders every agent's remaining route as a polyline through
// waypoint centres.
func (g *Game) drawPaths(screen *ebiten.Image) {
	for i := range g.match.Tanks() {
		ai := g.match.AI(i)
		if ai == nil || ai.State() == game.StateReplan && len(ai.Path()) == 0 {
			continue
		}
		pc := playerColor(i)
		c := color.NRGBA{R: pc.R, G: pc.G, B: pc.B, A: 160}
		prev := ai.Tank().Position()
		points := append([]game.Cell{ai.NextWaypoint()}, ai.Path()...)
		for _, cell := range points {
			next := cell.Center()
			x0, y0 := g.toScreen(prev)
			x1, y1 := g.toScreen(next)
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, c, true)
			vector.FillCircle(screen, x1, y1, 3, c, true)
			prev = next
		}
		if target, ok := ai.TargetTile(); ok {
			x, y := g.toScreen(target.Center())
			vector.StrokeRect(screen, x-TileSize/2+2, y-TileSize/2+2, TileSize-4, TileSize-4, 1, c, false)
		}
	}
}

// fillQuad fills a square of half extent h centred on p and rotated by angle.
func fillQuad(screen *ebiten.Image, g *Game, p game.Vec2, h, angle float64, c color.Color) {
	sin, cos := math.Sincos(angle)
	corners := [4]game.Vec2{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	var path vector.Path
	for i, k := range corners {
		x, y := g.toScreen(game.V(p.X+k.X*cos-k.Y*sin, p.Y+k.X*sin+k.Y*cos))
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(screen, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}
