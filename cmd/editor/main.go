// Command editor is a small grid-text level editor: paint cells, generate
// mazes, copy/paste the grid text through the system clipboard, and save
// the result as a level manifest.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"mazewalker/maze"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	toolbarHeight = 56
	cellPx        = 24
)

func main() {
	out := flag.String("o", "level.yaml", "output level file")
	open := flag.String("open", "", "existing level file to edit")
	width := flag.Int("w", 17, "new grid width")
	height := flag.Int("h", 11, "new grid height")
	flag.Parse()

	ed := &editor{
		outPath: *out,
		brush:   maze.CellWall,
	}

	if *open != "" {
		grid, name, err := loadGridFile(*open)
		if err != nil {
			log.Fatalf("open %s: %v", *open, err)
		}
		ed.grid = grid
		ed.name = name
		ed.outPath = *open
	} else {
		ed.grid = maze.Generate(*width, *height, time.Now().UnixNano())
		ed.name = strings.TrimSuffix(filepath.Base(*out), ".yaml")
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		ed.clipboardOK = true
	}

	ed.ui = newEditorUI(ed)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("mazewalker editor")
	if err := ebiten.RunGame(ed); err != nil {
		log.Fatal(err)
	}
}

// loadGridFile accepts either a yaml manifest or a bare grid text file.
func loadGridFile(path string) (*maze.GridMap, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		lvl, err := maze.Load(data)
		if err != nil {
			return nil, "", err
		}
		return lvl.Grid, lvl.Name, nil
	}
	grid, err := maze.ParseGrid(string(data))
	if err != nil {
		return nil, "", err
	}
	return grid, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), nil
}

func (e *editor) save() {
	mf := maze.Manifest{Name: e.name, Grid: e.grid.String()}
	data, err := yaml.Marshal(&mf)
	if err != nil {
		e.setStatus(fmt.Sprintf("marshal: %v", err))
		return
	}
	if err := os.WriteFile(e.outPath, data, 0o644); err != nil {
		e.setStatus(fmt.Sprintf("save: %v", err))
		return
	}
	e.setStatus("saved " + e.outPath)
}

func (e *editor) copyGrid() {
	if !e.clipboardOK {
		e.setStatus("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(e.grid.String()))
	e.setStatus("grid copied")
}

func (e *editor) pasteGrid() {
	if !e.clipboardOK {
		e.setStatus("clipboard unavailable")
		return
	}
	grid, err := maze.ParseGrid(string(clipboard.Read(clipboard.FmtText)))
	if err != nil {
		e.setStatus(fmt.Sprintf("paste: %v", err))
		return
	}
	e.grid = grid
	e.setStatus("grid pasted")
}

func (e *editor) generate() {
	e.grid = maze.Generate(e.grid.Width, e.grid.Height, time.Now().UnixNano())
	e.setStatus("generated fresh maze")
}
