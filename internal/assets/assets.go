// Package assets loads the planet imagery and synthesizes replacements for
// images that cannot be fetched.
package assets

import (
	"image"
	"image/color"
	"sort"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

// Source is one keyed planet image and the tint of its fallback disc.
type Source struct {
	Key  string
	URL  string
	Tint color.NRGBA
}

// Sources pairs every catalogue body with its URL from urls. Bodies without
// a URL get an empty one, which always falls back.
func Sources(urls map[string]string) []Source {
	out := make([]Source, 0, len(scene.Catalog))
	for _, b := range scene.Catalog {
		out = append(out, Source{Key: b.Key, URL: urls[b.Key], Tint: b.Color})
	}
	return out
}

// Entry is one settled load.
type Entry struct {
	Source
	Image    image.Image
	Fallback bool // Image was synthesized because the fetch failed
}

// Set is the complete result of a batch load, keyed by source key.
type Set struct {
	entries map[string]Entry
}

func newSet(entries []Entry) *Set {
	s := &Set{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		s.entries[e.Key] = e
	}
	return s
}

// Images returns the keyed images ready for scene.SetImages.
func (s *Set) Images() map[string]image.Image {
	out := make(map[string]image.Image, len(s.entries))
	for k, e := range s.entries {
		out[k] = e.Image
	}
	return out
}

// Entry returns the settled load for key.
func (s *Set) Entry(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Fallbacks returns the sorted keys whose image was synthesized.
func (s *Set) Fallbacks() []string {
	var keys []string
	for k, e := range s.entries {
		if e.Fallback {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Retheme redraws every fallback disc against a new edge colour. Fetched
// images are left alone.
func (s *Set) Retheme(edge color.NRGBA) {
	for k, e := range s.entries {
		if !e.Fallback {
			continue
		}
		e.Image = Fallback(e.Tint, edge)
		s.entries[k] = e
	}
}
