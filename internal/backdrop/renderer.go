// Package backdrop drives the animated space scene: it owns the scene
// state, the drawing surface and the pending frame request, and reacts to
// viewport, pointer and colour-scheme changes until unmounted.
package backdrop

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/izu-portfolio/cosmos/internal/assets"
	"github.com/izu-portfolio/cosmos/internal/scene"
)

// Options configures a Renderer. Zero values are usable: no sources means
// every body falls back to a synthesized disc.
type Options struct {
	Sources []assets.Source
	Fetcher assets.Fetcher
	Rand    *rand.Rand
	Logger  *log.Logger
	// OnReady runs once, on the frame that first draws the scene.
	OnReady func()
}

// Renderer is the animated backdrop bound to one canvas. All methods must
// be called from the thread that pumps the scheduler.
type Renderer struct {
	canvas scene.Canvas
	sched  Scheduler
	opts   Options
	logger *log.Logger

	scene *scene.Scene
	view  scene.Viewport
	theme scene.Theme

	pending   *assets.Pending
	loadTheme scene.Theme
	images    *assets.Set
	cancel    context.CancelFunc

	frame        FrameID
	framePending bool

	mounted   bool
	ready     bool
	unmounted bool
}

// New creates an unmounted renderer.
func New(canvas scene.Canvas, sched Scheduler, opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Fetcher == nil {
		opts.Fetcher = assets.HTTPFetcher{}
	}
	return &Renderer{
		canvas: canvas,
		sched:  sched,
		opts:   opts,
		logger: logger,
		scene:  scene.New(opts.Rand),
	}
}

// Mount sizes the surface, starts loading the planet images and requests
// the first frame. Nothing is drawn until every image has settled.
func (r *Renderer) Mount(ctx context.Context, view scene.Viewport, theme scene.Theme) {
	if r.mounted || r.unmounted {
		return
	}
	r.mounted = true
	r.view, r.theme = view, theme
	r.canvas.SetSize(view)

	ctx, r.cancel = context.WithCancel(ctx)
	r.loadTheme = theme
	r.pending = assets.Load(ctx, r.opts.Fetcher, r.opts.Sources, scene.PaletteFor(theme).FallbackEdge, r.logger)

	r.logger.Info("Backdrop mounted", "width", view.Width, "height", view.Height, "dpr", view.Scale(), "class", view.Class(), "theme", theme)
	r.request()
}

// Ready reports whether the scene has been generated and drawn.
func (r *Renderer) Ready() bool { return r.ready }

// Scene returns the animated scene state.
func (r *Renderer) Scene() *scene.Scene { return r.scene }

// Viewport returns the latest viewport.
func (r *Renderer) Viewport() scene.Viewport { return r.view }

// Theme returns the active theme.
func (r *Renderer) Theme() scene.Theme { return r.theme }

// Images returns the settled image set, nil before ready.
func (r *Renderer) Images() *assets.Set { return r.images }

// Resize adopts a new viewport and regenerates every particle set.
func (r *Renderer) Resize(view scene.Viewport) {
	if r.unmounted {
		return
	}
	r.view = view
	if !r.mounted {
		return
	}
	r.canvas.SetSize(view)
	if r.ready {
		r.regenerate()
	}
}

// ThemeChanged switches palette, redraws fallback discs and regenerates the
// scene so nebula hues come from the new band.
func (r *Renderer) ThemeChanged(theme scene.Theme) {
	if r.unmounted || theme == r.theme {
		return
	}
	r.theme = theme
	if !r.ready {
		return
	}
	r.images.Retheme(scene.PaletteFor(theme).FallbackEdge)
	r.scene.SetImages(r.images.Images())
	r.regenerate()
}

// PointerMove records the pointer for the next frame's parallax.
func (r *Renderer) PointerMove(x, y float64) {
	if r.unmounted {
		return
	}
	r.scene.SetPointer(x, y)
}

// Unmount cancels the pending frame and the image batch and releases the
// canvas. Every later call is a no-op.
func (r *Renderer) Unmount() {
	if r.unmounted {
		return
	}
	r.unmounted = true
	if r.framePending {
		r.sched.CancelFrame(r.frame)
		r.framePending = false
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.canvas = nil
	r.logger.Info("Backdrop unmounted", "frames", r.scene.Ticks)
}

func (r *Renderer) request() {
	if r.unmounted {
		return
	}
	r.frame = r.sched.RequestFrame(r.tick)
	r.framePending = true
}

func (r *Renderer) tick() {
	r.framePending = false
	if r.unmounted {
		return
	}
	if !r.ready {
		select {
		case <-r.pending.Done():
			r.becomeReady()
			// OnReady may have unmounted us
			if r.unmounted {
				return
			}
		default:
			r.request()
			return
		}
	}
	r.scene.Frame(r.canvas)
	r.request()
}

func (r *Renderer) becomeReady() {
	r.images = r.pending.Set()
	if r.loadTheme != r.theme {
		r.images.Retheme(scene.PaletteFor(r.theme).FallbackEdge)
	}
	r.scene.SetImages(r.images.Images())
	r.regenerate()
	r.ready = true

	r.logger.Info("Backdrop ready", "fallbacks", r.images.Fallbacks())
	if r.opts.OnReady != nil {
		r.opts.OnReady()
	}
}

func (r *Renderer) regenerate() {
	r.scene.Regenerate(r.view, r.theme)
	r.logger.Debug("Scene regenerated",
		"class", r.view.Class(),
		"theme", r.theme,
		"stars", scene.StarCount(r.view),
		"clouds", scene.CloudCount(r.view),
		"meteors", scene.ShootingStarCount(r.view),
	)
}
