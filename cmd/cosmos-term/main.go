package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	_ "github.com/joho/godotenv/autoload"

	"github.com/izu-portfolio/cosmos/internal/assets"
	"github.com/izu-portfolio/cosmos/internal/config"
	"github.com/izu-portfolio/cosmos/internal/scene"
	"github.com/izu-portfolio/cosmos/internal/terminal"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := config.NewFlags(fs)
	logPath := fs.String("log", "", "write logs to this file (the terminal is busy)")
	fs.Parse(os.Args[1:])

	settings, err := flags.Settings()
	if err != nil {
		log.Fatal("Invalid settings", "err", err)
	}

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal("Failed to open log file", "path", *logPath, "err", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := config.NewLogger(settings.LogLevel, out)
	if err != nil {
		log.Fatal("Invalid log level", "err", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("Failed to create screen", "err", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("Failed to initialize screen", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := terminal.New(screen, terminal.Options{
		Sources: assets.Sources(settings.Planets),
		Fetcher: assets.HTTPFetcher{Client: &http.Client{Timeout: settings.FetchTimeout}},
		Rand:    settings.Rand(),
		Logger:  logger,
		Theme:   settings.ThemeOr(scene.Dark),
		FPS:     settings.FPS,
	})
	err = p.Run(ctx)
	screen.Fini()
	if err != nil {
		logger.Error("Terminal backdrop failed", "err", err)
		os.Exit(1)
	}
}
