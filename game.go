package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"mazewalker/audio"
	"mazewalker/collision"
	"mazewalker/common"
	"mazewalker/levels"
	"mazewalker/maze"
	"mazewalker/render"
	"mazewalker/spatial"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Options is the game's startup configuration from flags.
type Options struct {
	LevelName string
	LevelsDir string
	Dev       bool
	GenSize   int
	GenSeed   int64
	Muted     bool
}

type Game struct {
	opts Options

	level    *maze.Level
	grid     *spatial.Grid
	resolver *collision.Resolver
	renderer *render.Renderer
	player   *Player
	sounds   *audio.Sounds
	watcher  *maze.Watcher

	ticker ticker
	steps  uint64

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	showMap bool

	prevEsc    bool
	prevTab    bool
	prevMouseX int
	dragging   bool

	toast      string
	toastUntil time.Time
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		opts:     opts,
		resolver: collision.NewResolver(collision.Config{}),
		sounds:   audio.NewSounds(opts.Muted),
		showMap:  true,
	}
	g.pauseUI = newPauseUI(g)

	lvl, err := g.loadLevel(opts.LevelName)
	if err != nil {
		return nil, err
	}
	g.setLevel(lvl)

	if opts.Dev {
		w, err := maze.NewWatcher(opts.LevelsDir)
		if err != nil {
			log.Printf("level watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadLevel resolves a level name: generated maze, then the levels
// directory on disk (which -dev edits touch), then the embedded set.
func (g *Game) loadLevel(name string) (*maze.Level, error) {
	if g.opts.GenSize > 0 && (name == "" || name == "generated") {
		seed := g.opts.GenSeed
		if seed == 0 || name == "generated" {
			seed = time.Now().UnixNano() // completing a generated maze rolls a fresh one
		}
		log.Printf("generating %dx%d maze (seed %d)", g.opts.GenSize, g.opts.GenSize, seed)
		return maze.FromGrid("generated", maze.Generate(g.opts.GenSize, g.opts.GenSize, seed)), nil
	}
	if name == "" {
		name = "intro"
	}

	if data, err := os.ReadFile(levelFilePath(g.opts.LevelsDir, name)); err == nil {
		return maze.Load(data)
	}
	data, err := levels.Read(name)
	if err != nil {
		return nil, fmt.Errorf("level %q not found on disk or embedded: %w", name, err)
	}
	return maze.Load(data)
}

func levelFilePath(dir, name string) string {
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	return filepath.Join(dir, name)
}

// setLevel tears down the previous level's collision state and builds the
// new one: clear both structures, rebuild the wall set and grid, reset the
// player at the new start.
func (g *Game) setLevel(lvl *maze.Level) {
	if g.grid != nil {
		g.grid.Clear()
	}
	g.resolver.Clear()

	g.level = lvl
	g.grid = lvl.Build(g.resolver, playerRadius, playerHeight)
	g.renderer = render.NewRenderer(lvl)
	g.player = NewPlayer(lvl.Start, g.resolver, g.sounds, lvl.Corridor)
	g.ticker.reset()

	g.showToast(lvl.Name)
	log.Printf("level %q: %d walls, world %.0fx%.0f", lvl.Name, g.resolver.WallCount(), lvl.WorldSizeX(), lvl.WorldSizeZ())
}

func (g *Game) showToast(msg string) {
	g.toast = msg
	g.toastUntil = time.Now().Add(2 * time.Second)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	esc := ebiten.IsKeyPressed(ebiten.KeyEscape)
	if esc && !g.prevEsc {
		g.paused = !g.paused
	}
	g.prevEsc = esc

	if g.paused {
		g.pauseUI.Update()
		g.ticker.reset() // don't accumulate catch-up steps while paused
		return nil
	}

	tab := ebiten.IsKeyPressed(ebiten.KeyTab)
	if tab && !g.prevTab {
		g.showMap = !g.showMap
	}
	g.prevTab = tab

	g.drainWatcher()
	g.mouseLook()

	for i := g.ticker.advance(time.Now()); i > 0; i-- {
		g.player.Step(tickSeconds)
		g.steps++
	}

	if common.DistXZ(g.player.Pos, g.level.Goal) < g.level.Corridor/2 {
		g.completeLevel()
	}
	return nil
}

const mouseLookSensitivity = 0.004 // radians per pixel dragged

// mouseLook turns the player while the right mouse button is dragged.
func (g *Game) mouseLook() {
	mx, _ := ebiten.CursorPosition()
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if held && g.dragging {
		g.player.Turn(float64(mx-g.prevMouseX) * mouseLookSensitivity)
	}
	g.dragging = held
	g.prevMouseX = mx
}

func (g *Game) completeLevel() {
	g.sounds.GoalChime()

	next, err := g.level.Complete()
	if err != nil {
		log.Printf("level %q completion hook: %v", g.level.Name, err)
		next = ""
	}
	if next == "" {
		next = g.level.Name // no follow-up named: restart the level
	}

	lvl, err := g.loadLevel(next)
	if err != nil {
		log.Printf("load next level %q: %v", next, err)
		g.restartLevel()
		return
	}
	g.setLevel(lvl)
}

func (g *Game) restartLevel() {
	lvl, err := g.loadLevel(g.level.Name)
	if err != nil {
		// the current level came from somewhere, so keep playing it
		log.Printf("restart %q: %v", g.level.Name, err)
		lvl = g.level
	}
	g.setLevel(lvl)
}

// drainWatcher reloads the running level when a -dev edit touches its file.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if base != g.level.Name {
				continue
			}
			log.Printf("level file changed, reloading: %s", path)
			g.restartLevel()
		case err := <-g.watcher.Errors:
			log.Printf("level watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.player.Camera())
	if g.showMap {
		g.renderer.DrawMinimap(screen, g.player.Camera())
	}
	g.drawHUD(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
