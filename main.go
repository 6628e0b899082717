package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "", "level name (embedded or in -levels dir, .yaml optional)")
	levelsDir := flag.String("levels", "levels", "directory holding level files")
	dev := flag.Bool("dev", false, "watch -levels and live-reload the running level on save")
	gen := flag.Int("gen", 0, "generate an NxN maze instead of loading a level")
	seed := flag.Int64("seed", 0, "maze generation seed (0 = time-based)")
	mute := flag.Bool("mute", false, "disable sound effects")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("mazewalker")

	game, err := NewGame(Options{
		LevelName: *levelName,
		LevelsDir: *levelsDir,
		Dev:       *dev,
		GenSize:   *gen,
		GenSeed:   *seed,
		Muted:     *mute,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
