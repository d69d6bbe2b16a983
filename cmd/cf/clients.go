package main

import (
	"fmt"

	"citefetch/internal/cache"
	"citefetch/internal/config"
	"citefetch/internal/doiorg"
	"citefetch/internal/opencitations"
	"citefetch/internal/resolver"
)

// newClients wires the citation-graph client, the DOI resolver client,
// and the reference resolver from the global config. The metadata cache
// is best-effort: failing to open it disables caching rather than
// failing the command.
func newClients(cfg *config.Config, progress resolver.ProgressReporter) (*resolver.Resolver, *doiorg.Client, func()) {
	var graphOpts []opencitations.ClientOption
	if cfg.APIBase != "" {
		graphOpts = append(graphOpts, opencitations.WithBaseURL(cfg.APIBase))
	}
	if cfg.OCToken != "" {
		graphOpts = append(graphOpts, opencitations.WithToken(cfg.OCToken))
	}
	graph := opencitations.NewClient(graphOpts...)

	var metaOpts []doiorg.ClientOption
	if cfg.DOIBase != "" {
		metaOpts = append(metaOpts, doiorg.WithBaseURL(cfg.DOIBase))
	}
	if cfg.Mailto != "" {
		metaOpts = append(metaOpts, doiorg.WithUserAgent(fmt.Sprintf("citefetch/%s (mailto:%s)", Version, cfg.Mailto)))
	}
	meta := doiorg.NewClient(metaOpts...)

	r := resolver.New(graph, meta)
	r.SetConcurrency(cfg.Concurrency)
	if progress != nil {
		r.SetProgressReporter(progress)
	}

	cleanup := func() {}
	if cfg.CachePath != "" {
		if db, err := cache.Open(cfg.CachePath); err == nil {
			r.SetCache(db)
			cleanup = func() { db.Close() }
		}
	}
	return r, meta, cleanup
}
