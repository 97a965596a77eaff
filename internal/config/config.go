// Package config resolves runtime settings from defaults, an optional YAML
// file, COSMOS_* environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

// ErrInvalid is wrapped by every validation and parse failure.
var ErrInvalid = errors.New("invalid settings")

// Settings is the resolved runtime configuration.
type Settings struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Theme forces "dark" or "light"; empty follows the platform preference.
	Theme string `yaml:"theme"`
	// Seed drives every random choice in the scene; 0 picks a fresh seed.
	Seed         uint64            `yaml:"seed"`
	Planets      map[string]string `yaml:"planets"`
	FetchTimeout time.Duration     `yaml:"fetch_timeout"`
	// FPS paces hosts that have no display refresh to follow.
	FPS      int    `yaml:"fps"`
	LogLevel string `yaml:"log_level"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Width:  1280,
		Height: 720,
		Planets: map[string]string{
			"earth":   "https://www.pngmart.com/files/3/Earth-PNG-Transparent-Image.png",
			"venus":   "https://www.pngmart.com/files/3/Venus-PNG-Transparent-Image.png",
			"jupiter": "https://www.pngmart.com/files/3/Jupiter-PNG-Transparent-Image.png",
		},
		FetchTimeout: 10 * time.Second,
		FPS:          30,
		LogLevel:     "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path yields the defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// GetEnv returns the environment value for key, or def when unset or empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ApplyEnv overlays COSMOS_* environment variables onto s.
func ApplyEnv(s *Settings) error {
	var err error
	s.Width, err = envInt("COSMOS_WIDTH", s.Width)
	if err != nil {
		return err
	}
	s.Height, err = envInt("COSMOS_HEIGHT", s.Height)
	if err != nil {
		return err
	}
	s.FPS, err = envInt("COSMOS_FPS", s.FPS)
	if err != nil {
		return err
	}
	if v := os.Getenv("COSMOS_SEED"); v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return fmt.Errorf("%w: COSMOS_SEED: %v", ErrInvalid, perr)
		}
		s.Seed = seed
	}
	if v := os.Getenv("COSMOS_FETCH_TIMEOUT"); v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			return fmt.Errorf("%w: COSMOS_FETCH_TIMEOUT: %v", ErrInvalid, perr)
		}
		s.FetchTimeout = d
	}
	s.Theme = GetEnv("COSMOS_THEME", s.Theme)
	s.LogLevel = GetEnv("COSMOS_LOG_LEVEL", s.LogLevel)

	for _, b := range scene.Catalog {
		key := "COSMOS_PLANET_" + strings.ToUpper(b.Key)
		if v := os.Getenv(key); v != "" {
			if s.Planets == nil {
				s.Planets = map[string]string{}
			}
			s.Planets[b.Key] = v
		}
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	return n, nil
}

// Validate reports the first problem with s, wrapped in ErrInvalid.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if s.Theme != "" {
		if _, err := scene.ParseTheme(s.Theme); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	for _, b := range scene.Catalog {
		if s.Planets[b.Key] == "" {
			return fmt.Errorf("%w: no image url for %s", ErrInvalid, b.Key)
		}
	}
	if s.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch timeout %v", ErrInvalid, s.FetchTimeout)
	}
	if s.FPS < 1 || s.FPS > 240 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, s.FPS)
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// ThemeOr returns the forced theme, or fallback when none is set.
func (s Settings) ThemeOr(fallback scene.Theme) scene.Theme {
	if t, err := scene.ParseTheme(s.Theme); err == nil {
		return t
	}
	return fallback
}

// Rand returns the scene's random source. A zero seed is replaced by a
// clock-derived one.
func (s Settings) Rand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
