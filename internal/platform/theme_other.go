//go:build !(js && wasm)

package platform

import "github.com/izu-portfolio/cosmos/internal/scene"

// WatchTheme returns a watcher fixed at fallback. Native builds have no
// colour-scheme notifications; the theme comes from settings.
func WatchTheme(fallback scene.Theme) *Watcher {
	return &Watcher{current: fallback}
}

// SignalReady does nothing outside the browser.
func SignalReady() {}
