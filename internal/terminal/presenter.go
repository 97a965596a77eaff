package terminal

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/izu-portfolio/cosmos/internal/assets"
	"github.com/izu-portfolio/cosmos/internal/backdrop"
	"github.com/izu-portfolio/cosmos/internal/raster"
	"github.com/izu-portfolio/cosmos/internal/scene"
)

// Raster floors that keep stars and trails visible at one pixel per cell.
const (
	minStarRadius = 0.5
	minLineWidth  = 0.6
)

// Options configures a Presenter.
type Options struct {
	Sources []assets.Source
	Fetcher assets.Fetcher
	Rand    *rand.Rand
	Logger  *log.Logger
	Theme   scene.Theme
	FPS     int
}

// Presenter runs the backdrop inside a tcell screen. Terminals have no
// display refresh to follow, so a ticker paces the frame queue.
type Presenter struct {
	screen   tcell.Screen
	canvas   *raster.Canvas
	queue    *backdrop.FrameQueue
	renderer *backdrop.Renderer
	logger   *log.Logger

	theme      scene.Theme
	interval   time.Duration
	cols, rows int
}

// New binds a presenter to an initialized screen.
func New(screen tcell.Screen, opts Options) *Presenter {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	canvas := raster.New(raster.Options{MinRadius: minStarRadius, MinWidth: minLineWidth})
	queue := &backdrop.FrameQueue{}
	p := &Presenter{
		screen:   screen,
		canvas:   canvas,
		queue:    queue,
		logger:   logger,
		theme:    opts.Theme,
		interval: time.Second / time.Duration(fps),
	}
	p.renderer = backdrop.New(canvas, queue, backdrop.Options{
		Sources: opts.Sources,
		Fetcher: opts.Fetcher,
		Rand:    opts.Rand,
		Logger:  logger,
	})
	return p
}

// Run mounts the backdrop and drives it until the user quits or ctx ends.
func (p *Presenter) Run(ctx context.Context) error {
	p.screen.EnableMouse(tcell.MouseMotionEvents)
	p.screen.HideCursor()
	p.cols, p.rows = p.screen.Size()
	p.renderer.Mount(ctx, ViewportFor(p.cols, p.rows), p.theme)
	defer p.renderer.Unmount()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !p.handle(ev) {
				return nil
			}
		case <-ticker.C:
			p.queue.Pump()
			p.draw()
			p.screen.Show()
		}
	}
}

// handle applies one event and reports whether to keep running.
func (p *Presenter) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 't':
			p.theme = p.theme.Toggle()
			p.logger.Info("Theme changed", "theme", p.theme)
			p.renderer.ThemeChanged(p.theme)
		}
	case *tcell.EventResize:
		p.cols, p.rows = ev.Size()
		p.renderer.Resize(ViewportFor(p.cols, p.rows))
	case *tcell.EventMouse:
		p.renderer.PointerMove(CellCenter(ev.Position()))
	}
	return true
}

func (p *Presenter) draw() {
	pal := scene.PaletteFor(p.theme)
	if !p.renderer.Ready() {
		style := tcell.StyleDefault.Background(rgb(pal.Placeholder)).Foreground(rgb(pal.PlaceholderText))
		for y := range p.rows {
			for x := range p.cols {
				p.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		writeCentered(p.screen, p.cols, p.rows, scene.LoadingText, style)
		return
	}
	Blit(p.screen, p.canvas.Image(), pal.Background[0])
}
