// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources fetches raw paper records from preprint servers, working
// paper series and journal feeds.
//
// Each Source is a Strategy over one family of endpoints. A failing
// endpoint contributes zero records and never aborts the run.
package sources

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Source fetches raw records from one family of endpoints. A Source may
// return records together with an error when only some requests failed.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]types.RawRecord, error)
}

// Options holds what every Source needs to make requests.
type Options struct {
	Client    *http.Client
	UserAgent string

	// Delay is the fixed pause between requests of one source.
	Delay time.Duration

	// Sleep replaces time.Sleep for the pause. Nil uses time.Sleep.
	Sleep func(time.Duration)

	// Today anchors recency filters sent to APIs that support them.
	Today time.Time

	DaysBack int
}

func (o Options) pacer() *httputil.Pacer {
	p := httputil.NewPacer(o.Delay)
	p.Sleep = o.Sleep
	return p
}

func (o Options) get(ctx context.Context, url, accept string) ([]byte, error) {
	return httputil.Get(ctx, o.Client, url, o.UserAgent, accept)
}

// Build returns the enabled sources in concatenation order: NBER, journal
// feeds, CrossRef journals, NEP, arXiv. Working-paper records come first so
// they win title collisions during deduplication.
func Build(cfg types.SourcesConfig, opts Options) []Source {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: cfg.Timeout}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = cfg.UserAgent
	}
	if opts.Delay == 0 {
		opts.Delay = cfg.RequestDelay
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = cfg.DaysBack
	}

	var out []Source
	if cfg.EnableNBER && len(cfg.NBERFeeds) > 0 {
		feeds := make([]types.Feed, len(cfg.NBERFeeds))
		for i, u := range cfg.NBERFeeds {
			feeds[i] = types.Feed{Name: "NBER", URL: u}
		}
		out = append(out, NewFeedSource("NBER", feeds, opts))
	}
	if cfg.EnableJournals && len(cfg.JournalFeeds) > 0 {
		out = append(out, NewFeedSource("journals", cfg.JournalFeeds, opts))
	}
	if cfg.EnableCrossRef && len(cfg.CrossRefJournals) > 0 {
		out = append(out, NewCrossRef(cfg.CrossRefJournals, cfg.CrossRefMailto, opts))
	}
	if cfg.EnableNEP && len(cfg.NEPFeeds) > 0 {
		feeds := make([]types.Feed, len(cfg.NEPFeeds))
		for i, f := range cfg.NEPFeeds {
			feeds[i] = types.Feed{Name: "NEP:" + f.Name, URL: f.URL}
		}
		out = append(out, NewFeedSource("NEP", feeds, opts))
	}
	if cfg.EnableArxiv {
		out = append(out, NewArxiv(cfg, opts))
	}
	return out
}

// Stat records what one source contributed.
type Stat struct {
	Source  string
	Records int
	Err     error
}

// Batch is the concatenated output of all sources.
type Batch struct {
	Records []types.RawRecord
	Stats   []Stat
}

// Empty reports whether every source came back empty.
func (b Batch) Empty() bool { return len(b.Records) == 0 }

// FetchAll runs every source in order, removes repeated IDs within each
// source, and keeps at most maxPerSource records per source (0 means no
// cap). Errors are logged and recorded in Stats, never returned.
func FetchAll(ctx context.Context, srcs []Source, maxPerSource int, log zerolog.Logger) Batch {
	var b Batch
	for _, s := range srcs {
		records, err := s.Fetch(ctx)
		records = uniqueByID(records)
		if maxPerSource > 0 && len(records) > maxPerSource {
			records = records[:maxPerSource]
		}

		ev := log.Info()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("source", s.Name()).Int("records", len(records)).Msg("fetched")

		b.Records = append(b.Records, records...)
		b.Stats = append(b.Stats, Stat{Source: s.Name(), Records: len(records), Err: err})
	}
	return b
}

// uniqueByID keeps the first record per non-empty ID.
func uniqueByID(records []types.RawRecord) []types.RawRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		if r.ID != "" {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
		}
		out = append(out, r)
	}
	return out
}
