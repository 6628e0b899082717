package main

import (
	"fmt"
	"image/color"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"mazewalker/maze"
)

type editor struct {
	grid  *maze.GridMap
	name  string
	brush maze.Cell

	outPath     string
	clipboardOK bool

	ui *ebitenui.UI

	status      string
	statusUntil time.Time
}

var cellColors = map[maze.Cell]color.NRGBA{
	maze.CellOpen:  {R: 0x2a, G: 0x2a, B: 0x30, A: 0xff},
	maze.CellWall:  {R: 0x9a, G: 0x6a, B: 0x4a, A: 0xff},
	maze.CellStart: {R: 0x4a, G: 0x9a, B: 0x5a, A: 0xff},
	maze.CellGoal:  {R: 0xc8, G: 0xb4, B: 0x3c, A: 0xff},
	maze.CellVoid:  {R: 0x10, G: 0x10, B: 0x12, A: 0xff},
}

var brushKeys = map[ebiten.Key]maze.Cell{
	ebiten.KeyDigit1: maze.CellOpen,
	ebiten.KeyDigit2: maze.CellWall,
	ebiten.KeyDigit3: maze.CellStart,
	ebiten.KeyDigit4: maze.CellGoal,
	ebiten.KeyDigit5: maze.CellVoid,
}

func (e *editor) setStatus(msg string) {
	e.status = msg
	e.statusUntil = time.Now().Add(3 * time.Second)
}

func (e *editor) Update() error {
	e.ui.Update()

	for key, cell := range brushKeys {
		if inpututil.IsKeyJustPressed(key) {
			e.brush = cell
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		e.save()
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		e.paintAtCursor(e.brush)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		e.paintAtCursor(maze.CellOpen)
	}
	return nil
}

func (e *editor) paintAtCursor(cell maze.Cell) {
	mx, my := ebiten.CursorPosition()
	if my < toolbarHeight {
		return
	}
	x := mx / cellPx
	z := (my - toolbarHeight) / cellPx
	if x < 0 || x >= e.grid.Width || z < 0 || z >= e.grid.Height {
		return
	}

	// Start and goal are unique, so painting one moves it.
	if cell == maze.CellStart || cell == maze.CellGoal {
		for cz := 0; cz < e.grid.Height; cz++ {
			for cx := 0; cx < e.grid.Width; cx++ {
				if e.grid.At(cx, cz) == cell {
					e.grid.SetCell(cx, cz, maze.CellOpen)
				}
			}
		}
	}
	e.grid.SetCell(x, z, cell)
}

func (e *editor) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x18, G: 0x18, B: 0x1c, A: 0xff})

	for z := 0; z < e.grid.Height; z++ {
		for x := 0; x < e.grid.Width; x++ {
			c, ok := cellColors[e.grid.At(x, z)]
			if !ok {
				c = cellColors[maze.CellVoid]
			}
			vector.DrawFilledRect(screen,
				float32(x*cellPx), float32(toolbarHeight+z*cellPx),
				cellPx-1, cellPx-1, c, false)
		}
	}

	e.ui.Draw(screen)

	msg := fmt.Sprintf("brush %c   1-5 select   LMB paint   RMB clear   Ctrl+S save", e.brush)
	if e.status != "" && time.Now().Before(e.statusUntil) {
		msg += "   |   " + e.status
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, screenHeight-20)
}

func (e *editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// newEditorUI builds the top toolbar in the same plain nine-slice style as
// the game's pause menu.
func newEditorUI(e *editor) *ebitenui.UI {
	barImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x26, A: 0xff})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x3a, G: 0x3a, B: 0x40, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(screenWidth, toolbarHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	bar.AddChild(button("Save", e.save))
	bar.AddChild(button("Copy", e.copyGrid))
	bar.AddChild(button("Paste", e.pasteGrid))
	bar.AddChild(button("Generate", e.generate))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	return &ebitenui.UI{Container: root}
}
