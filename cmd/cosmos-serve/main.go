package main

import (
	"flag"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"

	"github.com/izu-portfolio/cosmos/internal/config"
	"github.com/izu-portfolio/cosmos/internal/webhost"
)

func main() {
	dist := flag.String("dist", config.GetEnv("COSMOS_DIST", "./dist"), "directory holding wasm_exec.js and cosmos.wasm")
	planets := flag.String("planets", config.GetEnv("COSMOS_PLANET_DIR", ""), "directory of local planet images")
	flag.Parse()

	r, err := webhost.NewRouter(webhost.Options{DistDir: *dist, PlanetDir: *planets})
	if err != nil {
		log.Fatal("Failed to build router", "err", err)
	}

	port := config.GetEnv("PORT", "8080")
	log.Info("Serving backdrop", "port", port, "dist", *dist)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "err", err)
	}
}
