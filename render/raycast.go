// Package render draws the first-person view of a maze level with a
// per-column raycaster, plus the minimap overlay.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"mazewalker/common"
	"mazewalker/maze"
)

// Camera is the render-facing view state. Pos is in world units; Bob is
// the cosmetic vertical offset already folded into Pos.Y by the player.
type Camera struct {
	Pos            common.Vec3
	DirX, DirZ     float64
	PlaneX, PlaneZ float64
}

var (
	defaultWall    = color.RGBA{R: 0x8a, G: 0x5a, B: 0x44, A: 0xff}
	defaultMortar  = color.RGBA{R: 0x4a, G: 0x32, B: 0x28, A: 0xff}
	defaultAccent  = color.RGBA{R: 0x4e, G: 0x7a, B: 0x8c, A: 0xff}
	defaultFloor   = color.RGBA{R: 0x33, G: 0x2e, B: 0x28, A: 0xff}
	defaultCeiling = color.RGBA{R: 0x1a, G: 0x1c, B: 0x22, A: 0xff}
)

// Renderer draws one loaded level. Recreate it on level change.
type Renderer struct {
	level *maze.Level

	wallTex   *ebiten.Image
	accentTex *ebiten.Image
	floorCol  color.RGBA
	ceilCol   color.RGBA

	// fogDist is the distance (in cells) at which walls fade to black.
	fogDist float64

	minimap *ebiten.Image
}

// NewRenderer builds the procedural textures and static minimap for a level.
func NewRenderer(lvl *maze.Level) *Renderer {
	wall := ParseHexColor(lvl.Palette.Wall, defaultWall)
	accent := ParseHexColor(lvl.Palette.Accent, defaultAccent)

	r := &Renderer{
		level:     lvl,
		wallTex:   newTexture(brickPixels(TexSize, wall, defaultMortar), TexSize),
		accentTex: newTexture(stonePixels(TexSize, accent, 0x9e37), TexSize),
		floorCol:  ParseHexColor(lvl.Palette.Floor, defaultFloor),
		ceilCol:   ParseHexColor(lvl.Palette.Ceiling, defaultCeiling),
		fogDist:   14,
	}
	r.minimap = buildMinimap(lvl, wall, accent)
	return r
}

// Draw renders the full first-person view for the camera.
func (r *Renderer) Draw(screen *ebiten.Image, cam Camera) {
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()

	// horizon shifts with the bob offset folded into the camera height
	eye := r.level.Corridor / 2
	horizon := h/2 + int((eye-cam.Pos.Y)/r.level.Corridor*float64(h)*0.5)

	r.drawFloorAndCeiling(screen, w, h, horizon)

	// positions in cell units for the DDA walk
	posX := cam.Pos.X / r.level.Corridor
	posZ := cam.Pos.Z / r.level.Corridor

	for x := 0; x < w; x++ {
		cameraX := 2*float64(x)/float64(w) - 1
		rayDirX := cam.DirX + cam.PlaneX*cameraX
		rayDirZ := cam.DirZ + cam.PlaneZ*cameraX
		hit := castRay(r.level.Grid, posX, posZ, rayDirX, rayDirZ)
		if hit.dist <= 0 {
			continue
		}
		r.drawColumn(screen, x, h, horizon, hit)
	}
}

type rayHit struct {
	dist  float64 // perpendicular distance in cell units
	wallX float64 // fractional hit position along the wall face
	side  int     // 0 = X-face, 1 = Z-face
	cellX int
	cellZ int
}

// castRay walks the DDA until it leaves the grid or hits a non-walkable
// cell. Void counts as a hit so rays never escape gaps in the layout.
func castRay(grid *maze.GridMap, posX, posZ, rayDirX, rayDirZ float64) rayHit {
	mapX := int(posX)
	mapZ := int(posZ)

	deltaX := math.Abs(1 / rayDirX)
	deltaZ := math.Abs(1 / rayDirZ)

	var stepX, stepZ int
	var sideX, sideZ float64
	if rayDirX < 0 {
		stepX = -1
		sideX = (posX - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - posX) * deltaX
	}
	if rayDirZ < 0 {
		stepZ = -1
		sideZ = (posZ - float64(mapZ)) * deltaZ
	} else {
		stepZ = 1
		sideZ = (float64(mapZ) + 1 - posZ) * deltaZ
	}

	side := 0
	for i := 0; i < 256; i++ {
		if sideX < sideZ {
			sideX += deltaX
			mapX += stepX
			side = 0
		} else {
			sideZ += deltaZ
			mapZ += stepZ
			side = 1
		}
		if !grid.Walkable(mapX, mapZ) {
			var dist, wallX float64
			if side == 0 {
				dist = sideX - deltaX
				wallX = posZ + dist*rayDirZ
			} else {
				dist = sideZ - deltaZ
				wallX = posX + dist*rayDirX
			}
			wallX -= math.Floor(wallX)
			return rayHit{dist: dist, wallX: wallX, side: side, cellX: mapX, cellZ: mapZ}
		}
	}
	return rayHit{}
}

func (r *Renderer) drawColumn(screen *ebiten.Image, x, h, horizon int, hit rayHit) {
	lineHeight := float64(h) / hit.dist
	top := float64(horizon) - lineHeight/2

	tex := r.wallTex
	if r.nearGoal(hit.cellX, hit.cellZ) {
		tex = r.accentTex
	}

	texX := int(hit.wallX * TexSize)
	if texX >= TexSize {
		texX = TexSize - 1
	}
	column := tex.SubImage(image.Rect(texX, 0, texX+1, TexSize)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1, lineHeight/TexSize)
	op.GeoM.Translate(float64(x), top)

	shade := 1 - hit.dist/r.fogDist
	if shade < 0 {
		shade = 0
	}
	if hit.side == 1 {
		shade *= 0.7 // darken Z-faces for depth cueing
	}
	op.ColorScale.Scale(float32(shade), float32(shade), float32(shade), 1)

	screen.DrawImage(column, op)
}

// nearGoal marks wall cells bordering the goal cell so the exit area is
// visually distinct.
func (r *Renderer) nearGoal(x, z int) bool {
	g := r.level.Grid.Goal
	dx, dz := x-g.X, z-g.Z
	if dx < 0 {
		dx = -dx
	}
	if dz < 0 {
		dz = -dz
	}
	return dx <= 1 && dz <= 1
}

func (r *Renderer) drawFloorAndCeiling(screen *ebiten.Image, w, h, horizon int) {
	if horizon < 0 {
		horizon = 0
	}
	if horizon > h {
		horizon = h
	}
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(horizon), r.ceilCol, false)
	vector.DrawFilledRect(screen, 0, float32(horizon), float32(w), float32(h-horizon), r.floorCol, false)
}
