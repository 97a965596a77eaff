package main

import (
	"context"
	"flag"
	"math"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	_ "github.com/joho/godotenv/autoload"

	"github.com/izu-portfolio/cosmos/internal/assets"
	"github.com/izu-portfolio/cosmos/internal/backdrop"
	"github.com/izu-portfolio/cosmos/internal/config"
	"github.com/izu-portfolio/cosmos/internal/platform"
	"github.com/izu-portfolio/cosmos/internal/render"
	"github.com/izu-portfolio/cosmos/internal/scene"
)

const title = "Cosmos"

// Game is the Ebitengine game struct. It forwards window, input and theme
// events to the backdrop and pumps its frame queue once per refresh.
type Game struct {
	renderer *backdrop.Renderer
	canvas   *render.Canvas
	queue    *backdrop.FrameQueue
	label    *render.LoadingLabel
	watcher  *platform.Watcher
	logger   *log.Logger

	forced bool // theme pinned by settings
	theme  scene.Theme

	view    scene.Viewport
	resized bool
	mounted bool

	cursorX, cursorY int
}

func NewGame(s config.Settings, logger *log.Logger) *Game {
	watcher := platform.WatchTheme(s.ThemeOr(scene.Dark))
	canvas := render.NewCanvas()
	queue := &backdrop.FrameQueue{}

	g := &Game{
		canvas:  canvas,
		queue:   queue,
		label:   render.NewLoadingLabel(),
		watcher: watcher,
		logger:  logger,
		forced:  s.Theme != "",
		theme:   s.ThemeOr(watcher.Current()),
	}
	g.renderer = backdrop.New(canvas, queue, backdrop.Options{
		Sources: assets.Sources(s.Planets),
		Fetcher: assets.HTTPFetcher{Client: &http.Client{Timeout: s.FetchTimeout}},
		Rand:    s.Rand(),
		Logger:  logger,
		OnReady: platform.SignalReady,
	})
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !g.mounted {
		if g.view.Width == 0 {
			return nil
		}
		g.renderer.Mount(context.Background(), g.view, g.theme)
		g.mounted = true
		g.resized = false
	}
	if g.resized {
		g.renderer.Resize(g.view)
		g.resized = false
	}

	if t, ok := g.watcher.Poll(); ok && !g.forced {
		g.setTheme(t)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.setTheme(g.theme.Toggle())
	}

	g.updatePointer()
	g.queue.Pump()
	return nil
}

// Close unmounts the backdrop and stops the theme watcher. RunGame returns
// without it when the window is closed, so main calls it on every exit.
func (g *Game) Close() {
	g.renderer.Unmount()
	g.watcher.Close()
}

func (g *Game) setTheme(t scene.Theme) {
	if t == g.theme {
		return
	}
	g.theme = t
	g.logger.Info("Theme changed", "theme", t)
	g.renderer.ThemeChanged(t)
}

// updatePointer feeds the latest cursor or touch position, in logical
// pixels, to the parallax.
func (g *Game) updatePointer() {
	x, y := ebiten.CursorPosition()
	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		x, y = ebiten.TouchPosition(touches[0])
	}
	if x == g.cursorX && y == g.cursorY {
		return
	}
	g.cursorX, g.cursorY = x, y
	s := g.view.Scale()
	g.renderer.PointerMove(float64(x)/s, float64(y)/s)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.renderer.Ready() {
		g.label.Draw(screen, g.view, scene.PaletteFor(g.theme))
		return
	}
	g.canvas.Present(screen)
}

// Layout runs the screen at physical resolution so the canvas maps one
// surface pixel to one device pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := ebiten.Monitor().DeviceScaleFactor()
	view := scene.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight), DPR: dpr}
	if view != g.view {
		g.view = view
		g.resized = true
	}
	return int(math.Ceil(float64(outsideWidth) * dpr)), int(math.Ceil(float64(outsideHeight) * dpr))
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := config.NewFlags(fs)
	fs.Parse(os.Args[1:])

	settings, err := flags.Settings()
	if err != nil {
		log.Fatal("Invalid settings", "err", err)
	}
	logger, err := config.NewLogger(settings.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal("Invalid log level", "err", err)
	}

	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	game := NewGame(settings, logger)
	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		logger.Fatal("Game exited", "err", err)
	}
}
