package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"

	"github.com/izu-portfolio/cosmos/internal/assets"
	"github.com/izu-portfolio/cosmos/internal/backdrop"
	"github.com/izu-portfolio/cosmos/internal/config"
	"github.com/izu-portfolio/cosmos/internal/raster"
	"github.com/izu-portfolio/cosmos/internal/scene"
)

// settleTimeout bounds the wait for the image batch beyond the fetch timeout.
const settleTimeout = 5 * time.Second

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := config.NewFlags(fs)
	frames := fs.Int("frames", 60, "frames to advance before the snapshot")
	dpr := fs.Float64("dpr", 1, "device pixel ratio")
	outPath := fs.String("out", "cosmos.png", "output PNG path")
	offline := fs.Bool("offline", false, "skip fetching and draw fallback planets")
	fs.Parse(os.Args[1:])

	settings, err := flags.Settings()
	if err != nil {
		log.Fatal("Invalid settings", "err", err)
	}
	logger, err := config.NewLogger(settings.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal("Invalid log level", "err", err)
	}

	var fetcher assets.Fetcher = assets.HTTPFetcher{Client: &http.Client{Timeout: settings.FetchTimeout}}
	if *offline {
		fetcher = assets.FetcherFunc(func(ctx context.Context, url string) (image.Image, error) {
			return nil, errors.New("offline")
		})
	}

	view := scene.Viewport{Width: float64(settings.Width), Height: float64(settings.Height), DPR: *dpr}
	img, err := snapshot(view, settings, fetcher, logger, *frames)
	if err != nil {
		logger.Fatal("Snapshot failed", "err", err)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		logger.Fatal("Failed to create output", "path", *outPath, "err", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		logger.Fatal("Failed to encode PNG", "err", err)
	}
	if err := f.Close(); err != nil {
		logger.Fatal("Failed to write output", "err", err)
	}
	logger.Info("Snapshot written", "path", *outPath, "frames", *frames)
}

// snapshot mounts a renderer on a raster canvas, waits for the scene to
// become ready and advances it by frames.
func snapshot(view scene.Viewport, s config.Settings, f assets.Fetcher, logger *log.Logger, frames int) (*image.RGBA, error) {
	canvas := raster.New(raster.Options{})
	queue := &backdrop.FrameQueue{}
	r := backdrop.New(canvas, queue, backdrop.Options{
		Sources: assets.Sources(s.Planets),
		Fetcher: f,
		Rand:    s.Rand(),
		Logger:  logger,
	})
	r.Mount(context.Background(), view, s.ThemeOr(scene.Dark))
	defer r.Unmount()

	deadline := time.Now().Add(s.FetchTimeout + settleTimeout)
	for !r.Ready() {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("scene not ready after %v", s.FetchTimeout+settleTimeout)
		}
		queue.Pump()
		time.Sleep(10 * time.Millisecond)
	}
	for i := 1; i < frames; i++ {
		queue.Pump()
	}
	return canvas.Image(), nil
}
