package config

import (
	"flag"
	"time"
)

// Flags binds the shared command-line overrides to a FlagSet. Only flags
// given explicitly override the file and environment.
type Flags struct {
	fs *flag.FlagSet

	path     string
	width    int
	height   int
	theme    string
	seed     uint64
	fps      int
	logLevel string
	timeout  time.Duration
}

// NewFlags registers the shared flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", GetEnv("COSMOS_CONFIG", ""), "YAML settings file")
	fs.IntVar(&f.width, "width", 0, "viewport width in logical pixels")
	fs.IntVar(&f.height, "height", 0, "viewport height in logical pixels")
	fs.StringVar(&f.theme, "theme", "", "force colour scheme (dark or light)")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (0 picks one)")
	fs.IntVar(&f.fps, "fps", 0, "frame rate where no display refresh is available")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.DurationVar(&f.timeout, "fetch-timeout", 0, "planet image fetch timeout")
	return f
}

// Settings resolves defaults, file, environment and the flags that were set,
// then validates the result. Call after fs.Parse.
func (f *Flags) Settings() (Settings, error) {
	s, err := Load(f.path)
	if err != nil {
		return s, err
	}
	if err := ApplyEnv(&s); err != nil {
		return s, err
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			s.Width = f.width
		case "height":
			s.Height = f.height
		case "theme":
			s.Theme = f.theme
		case "seed":
			s.Seed = f.seed
		case "fps":
			s.FPS = f.fps
		case "log-level":
			s.LogLevel = f.logLevel
		case "fetch-timeout":
			s.FetchTimeout = f.timeout
		}
	})
	return s, s.Validate()
}
