// Package platform reports the ambient colour-scheme preference and
// signals the host page when the backdrop is ready.
package platform

import "github.com/izu-portfolio/cosmos/internal/scene"

// LoadingElementID is the id of the host page placeholder that SignalReady
// removes.
const LoadingElementID = "cosmos-loading"

// Watcher follows the colour-scheme preference. Changes delivers the new
// theme whenever the preference flips; it is nil where no notifications
// exist. Receivers should poll it without blocking.
type Watcher struct {
	current scene.Theme
	changes chan scene.Theme
	release func()
}

// Current returns the latest known theme.
func (w *Watcher) Current() scene.Theme { return w.current }

// Changes returns the notification channel, possibly nil.
func (w *Watcher) Changes() <-chan scene.Theme { return w.changes }

// Poll returns the pending change, if any, and records it as current.
func (w *Watcher) Poll() (scene.Theme, bool) {
	select {
	case t := <-w.changes:
		w.current = t
		return t, true
	default:
		return w.current, false
	}
}

// Close stops listening for changes. It is safe to call more than once.
func (w *Watcher) Close() {
	if w.release != nil {
		w.release()
		w.release = nil
	}
}

// notify replaces any undelivered change with t.
func (w *Watcher) notify(t scene.Theme) {
	for {
		select {
		case w.changes <- t:
			return
		default:
		}
		select {
		case <-w.changes:
		default:
		}
	}
}
