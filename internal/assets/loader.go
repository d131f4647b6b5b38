package assets

import (
	"context"
	"sync"
	"time"

	"turntable/internal/config"
	"turntable/internal/logger"
)

// defaultWorkers is the loader's worker count when none is given.
const defaultWorkers = 2

// Result is the outcome of loading one entry.
type Result struct {
	ID    string
	Asset *Asset
	Err   error
}

// Loader builds catalog entries on a small worker pool. Results are buffered until the
// main loop calls Drain, so the scene and socket registry are only touched on the main
// thread.
type Loader struct {
	workers int
	results chan Result
	wg      sync.WaitGroup
	log     logger.Logger
}

// NewLoader returns a loader with the given number of workers (<= 0 uses the default).
func NewLoader(workers int, log logger.Logger) *Loader {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Loader{
		workers: workers,
		results: make(chan Result, 64),
		log:     log.WithField("component", "loader"),
	}
}

// Load queues entries and returns immediately. Entries with LoadDelayMs wait that long
// first; cancelling ctx abandons entries that have not finished.
func (l *Loader) Load(ctx context.Context, entries []config.CatalogEntry) {
	jobs := make(chan config.CatalogEntry, len(entries))
	for _, e := range entries {
		jobs <- e
	}
	close(jobs)

	for w := 0; w < l.workers; w++ {
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			for e := range jobs {
				r, ok := l.load(ctx, e)
				if !ok {
					return
				}
				select {
				case l.results <- r:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
}

func (l *Loader) load(ctx context.Context, e config.CatalogEntry) (Result, bool) {
	if e.LoadDelayMs > 0 {
		t := time.NewTimer(time.Duration(e.LoadDelayMs) * time.Millisecond)
		select {
		case <-ctx.Done():
			t.Stop()
			return Result{}, false
		case <-t.C:
		}
	}
	a, err := NewAsset(e)
	return Result{ID: e.ID, Asset: a, Err: err}, true
}

// Drain moves every finished result into lib without blocking and returns the results
// it consumed. Failed loads are logged and left out of the library.
func (l *Loader) Drain(lib *Library) []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			if r.Err != nil {
				l.log.Errorf("load %s: %v", r.ID, r.Err)
			} else {
				lib.Put(r.Asset)
			}
			out = append(out, r)
		default:
			return out
		}
	}
}

// Wait blocks until every queued entry has been loaded or abandoned.
func (l *Loader) Wait() {
	l.wg.Wait()
}
