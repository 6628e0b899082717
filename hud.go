package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

func (g *Game) drawHUD(screen *ebiten.Image) {
	cam := g.player.Camera()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"FPS %.0f  TPS %.0f\npos (%.1f, %.1f)  steps %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), cam.Pos.X, cam.Pos.Z, g.steps),
		8, baseHeight-40)

	if g.toast != "" && time.Now().Before(g.toastUntil) {
		ebitenutil.DebugPrintAt(screen, g.toast, baseWidth/2-3*len(g.toast), 24)
	}
}
