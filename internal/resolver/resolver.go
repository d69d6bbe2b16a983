// Package resolver orchestrates reference resolution for a root DOI:
// citation-graph fetch, cited-DOI extraction, and bounded-concurrency
// metadata lookup.
package resolver

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"citefetch/internal/cache"
	"citefetch/internal/doi"
	"citefetch/internal/doiorg"
	"citefetch/internal/opencitations"
	"citefetch/internal/pool"
	"citefetch/internal/reference"
)

// ErrNoDOIs indicates the reference edges contained no extractable DOI.
var ErrNoDOIs = errors.New("no DOIs found in references")

// MetadataConcurrency is the default worker count for per-DOI metadata
// fetches. Kept small to stay under upstream rate limits.
const MetadataConcurrency = 2

// Progress milestones: edges fetched, DOIs extracted, root title step,
// then metadata completion scales across the 30-95 band. An idle ticker
// nudges the value toward idleCeiling before the first metadata item
// lands so the bar never looks frozen.
const (
	progressEdges   = 10
	progressDOIs    = 20
	progressTitle   = 30
	progressMetaMax = 95
	idleCeiling     = 38

	idleTickInterval = 500 * time.Millisecond
)

// ProgressReporter receives progress updates during resolution.
type ProgressReporter interface {
	// OnProgress is called with the current percentage. Values are
	// non-decreasing but may repeat.
	OnProgress(percent int)
}

// ProgressFunc is a function adapter for ProgressReporter.
type ProgressFunc func(percent int)

// OnProgress implements ProgressReporter.
func (f ProgressFunc) OnProgress(percent int) {
	f(percent)
}

// Resolver resolves the reference list of a root DOI.
type Resolver struct {
	graph       *opencitations.Client
	meta        *doiorg.Client
	cache       *cache.DB
	progress    ProgressReporter
	concurrency int
}

// New creates a Resolver over the given citation-graph and metadata
// clients.
func New(graph *opencitations.Client, meta *doiorg.Client) *Resolver {
	return &Resolver{
		graph:       graph,
		meta:        meta,
		concurrency: MetadataConcurrency,
	}
}

// SetCache enables the DOI metadata cache.
func (r *Resolver) SetCache(db *cache.DB) {
	r.cache = db
}

// SetProgressReporter sets the progress observer.
func (r *Resolver) SetProgressReporter(p ProgressReporter) {
	r.progress = p
}

// SetConcurrency overrides the metadata fetch worker count.
func (r *Resolver) SetConcurrency(n int) {
	if n > 0 {
		r.concurrency = n
	}
}

// Resolve fetches and resolves the references of rootDOI. The returned
// session holds exactly one entry per extracted cited DOI; entries whose
// metadata lookup failed carry only the DOI. The session is also
// returned on failure, with Err set.
func (r *Resolver) Resolve(ctx context.Context, rootDOI string) (*Session, error) {
	s := &Session{Loading: true}
	root := doi.Normalize(rootDOI)

	edges, err := r.graph.References(ctx, root)
	if err != nil {
		s.fail(err)
		return s, err
	}
	r.report(s, progressEdges)

	cited := opencitations.ExtractCitedDOIs(edges)
	if len(cited) == 0 {
		s.fail(ErrNoDOIs)
		return s, ErrNoDOIs
	}
	r.report(s, progressDOIs)

	// Root title is display-only; a failure leaves it unset.
	if title, err := r.meta.FetchTitle(ctx, root); err == nil {
		s.mu.Lock()
		s.RootTitle = title
		s.mu.Unlock()
	}
	r.report(s, progressTitle)

	stopTick := r.startIdleTick(s)
	defer stopTick()

	refs := pool.Map(cited, r.concurrency, func(_ int, d string) reference.Resolved {
		return r.resolveOne(ctx, d)
	}, func(completed, total int) {
		stopTick()
		r.report(s, progressTitle+(progressMetaMax-progressTitle)*completed/total)
	})

	s.finish(refs)
	r.report(s, 100)
	return s, nil
}

// resolveOne fetches metadata for one cited DOI, degrading to a
// DOI-only record on any failure.
func (r *Resolver) resolveOne(ctx context.Context, d string) reference.Resolved {
	if r.cache != nil {
		if rec, err := r.cache.Get(d); err == nil && rec != nil {
			return reference.FromCSL(d, rec)
		}
	}

	rec, err := r.meta.FetchCSL(ctx, d)
	if err != nil || rec == nil {
		return reference.Resolved{DOI: d}
	}

	if r.cache != nil {
		if err := r.cache.Put(d, rec); err != nil {
			log.Printf("caching %s: %v", d, err)
		}
	}
	return reference.FromCSL(d, rec)
}

// report raises the session progress and notifies the observer with the
// clamped value.
func (r *Resolver) report(s *Session, pct int) {
	s.setProgress(pct)
	if r.progress != nil {
		r.progress.OnProgress(s.ProgressValue())
	}
}

// startIdleTick runs a low-frequency ticker that bumps progress by one
// point up to idleCeiling until stopped. The returned stop function is
// safe to call more than once and from multiple goroutines.
func (r *Resolver) startIdleTick(s *Session) func() {
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(idleTickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.Progress < idleCeiling {
					s.Progress++
				}
				pct := s.Progress
				s.mu.Unlock()
				if r.progress != nil {
					r.progress.OnProgress(pct)
				}
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}
