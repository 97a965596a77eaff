package assets

import (
	"context"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Pending is an in-flight batch load.
type Pending struct {
	done chan struct{}
	set  *Set
}

// Done is closed once every source has either loaded or fallen back.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Set returns the complete set once Done is closed, nil before.
func (p *Pending) Set() *Set {
	select {
	case <-p.done:
		return p.set
	default:
		return nil
	}
}

// Load fetches every source concurrently. A failed fetch is logged and
// replaced by a fallback disc drawn against edge; no error escapes and
// nothing is retried. Cancelling ctx aborts in-flight fetches, which then
// settle as fallbacks.
func Load(ctx context.Context, f Fetcher, sources []Source, edge color.NRGBA, logger *log.Logger) *Pending {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Pending{done: make(chan struct{})}
	entries := make([]Entry, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			img, err := f.Fetch(ctx, src.URL)
			if err == nil && img == nil {
				err = ErrEmpty
			}
			if err != nil {
				logger.Warn("Failed to load planet image", "key", src.Key, "url", src.URL, "err", err)
				entries[i] = Entry{Source: src, Image: Fallback(src.Tint, edge), Fallback: true}
				return nil
			}
			entries[i] = Entry{Source: src, Image: img}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		p.set = newSet(entries)
		close(p.done)
	}()
	return p
}
