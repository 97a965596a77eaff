//go:build js && wasm

package platform

import (
	"syscall/js"

	"github.com/izu-portfolio/cosmos/internal/scene"
)

const darkQuery = "(prefers-color-scheme: dark)"

// WatchTheme subscribes to the browser's prefers-color-scheme media query.
// fallback is used when the query is unavailable.
func WatchTheme(fallback scene.Theme) *Watcher {
	w := &Watcher{current: fallback, changes: make(chan scene.Theme, 1)}

	matchMedia := js.Global().Get("matchMedia")
	if matchMedia.Type() != js.TypeFunction {
		return w
	}
	mql := js.Global().Call("matchMedia", darkQuery)
	w.current = themeOf(mql.Get("matches").Bool())

	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			w.notify(themeOf(args[0].Get("matches").Bool()))
		}
		return nil
	})
	mql.Call("addEventListener", "change", listener)
	w.release = func() {
		mql.Call("removeEventListener", "change", listener)
		listener.Release()
	}
	return w
}

func themeOf(dark bool) scene.Theme {
	if dark {
		return scene.Dark
	}
	return scene.Light
}

// SignalReady removes the host page's loading placeholder.
func SignalReady() {
	doc := js.Global().Get("document")
	if doc.IsUndefined() {
		return
	}
	el := doc.Call("getElementById", LoadingElementID)
	if el.IsNull() || el.IsUndefined() {
		return
	}
	el.Call("remove")
}
