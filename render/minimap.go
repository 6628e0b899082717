package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"mazewalker/maze"
)

const minimapCell = 4

func buildMinimap(lvl *maze.Level, wall, accent color.RGBA) *ebiten.Image {
	grid := lvl.Grid
	img := ebiten.NewImage(grid.Width*minimapCell, grid.Height*minimapCell)

	floor := color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}
	for z := 0; z < grid.Height; z++ {
		for x := 0; x < grid.Width; x++ {
			var c color.RGBA
			switch {
			case grid.At(x, z) == maze.CellVoid:
				continue
			case grid.At(x, z) == maze.CellGoal:
				c = accent
			case grid.Solid(x, z):
				c = wall
			default:
				c = floor
			}
			vector.DrawFilledRect(img,
				float32(x*minimapCell), float32(z*minimapCell),
				minimapCell, minimapCell, c, false)
		}
	}
	return img
}

// DrawMinimap blits the static map into the top-left corner and overlays
// the player position and heading.
func (r *Renderer) DrawMinimap(screen *ebiten.Image, cam Camera) {
	const margin = 8
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(margin, margin)
	screen.DrawImage(r.minimap, op)

	px := float32(margin + cam.Pos.X/r.level.Corridor*minimapCell)
	pz := float32(margin + cam.Pos.Z/r.level.Corridor*minimapCell)
	vector.DrawFilledCircle(screen, px, pz, 2.5, color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, true)

	// heading tick
	hx := px + float32(cam.DirX*2*minimapCell)
	hz := pz + float32(cam.DirZ*2*minimapCell)
	vector.StrokeLine(screen, px, pz, hx, hz, 1, color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, true)
}
