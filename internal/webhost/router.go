// Package webhost serves the WebAssembly build of the backdrop together
// with the host page it mounts into.
package webhost

import (
	"embed"
	"fmt"
	"html/template"
	"image/color"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/izu-portfolio/cosmos/internal/platform"
	"github.com/izu-portfolio/cosmos/internal/scene"
)

//go:embed web/*.html
var pages embed.FS

// Options configures the router. Empty directories are not mounted.
type Options struct {
	Title     string
	DistDir   string // wasm_exec.js and cosmos.wasm
	PlanetDir string // optional local planet images
}

type placeholder struct {
	Background string
	Text       string
}

// NewRouter builds the dev server routes.
func NewRouter(opts Options) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(pages, "web/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse pages: %w", err)
	}
	if opts.Title == "" {
		opts.Title = "Cosmos"
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	if opts.DistDir != "" {
		r.Static("/dist", opts.DistDir)
	}
	if opts.PlanetDir != "" {
		r.Static("/planets", opts.PlanetDir)
	}

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title":       opts.Title,
			"dist":        "/dist",
			"loadingID":   platform.LoadingElementID,
			"loadingText": scene.LoadingText,
			"dark":        placeholderFor(scene.Dark),
			"light":       placeholderFor(scene.Light),
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r, nil
}

func placeholderFor(t scene.Theme) placeholder {
	p := scene.PaletteFor(t)
	return placeholder{Background: cssHex(p.Placeholder), Text: cssHex(p.PlaceholderText)}
}

func cssHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
