// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one digest batch end to end: fetch, normalize,
// filter, deduplicate, score, enrich, aggregate, persist, render.
//
// Every stage degrades instead of failing. Only a held lock, invalid
// configuration, or I/O on the output files make Run return an error.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-digest/internal/dedup"
	"github.com/pdiddy/paper-digest/internal/enrich"
	"github.com/pdiddy/paper-digest/internal/insights"
	"github.com/pdiddy/paper-digest/internal/normalize"
	"github.com/pdiddy/paper-digest/internal/relevance"
	"github.com/pdiddy/paper-digest/internal/report"
	"github.com/pdiddy/paper-digest/internal/score"
	"github.com/pdiddy/paper-digest/internal/snapshot"
	"github.com/pdiddy/paper-digest/internal/sources"
	"github.com/pdiddy/paper-digest/internal/taxonomy"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// DryRunNote is the enrichment note on every paper of a dry run.
const DryRunNote = "skipped: dry run"

// AI is what the pipeline needs from the model client.
type AI interface {
	enrich.Summarizer
	insights.Narrator
}

// Pipeline holds the collaborators of a run. Build one with New.
type Pipeline struct {
	cfg      types.DigestConfig
	tax      taxonomy.Taxonomy
	weights  score.Weights
	sources  []sources.Source
	ai       AI
	store    *snapshot.Store
	renderer *report.Renderer

	now   func() time.Time
	runID func() string
	sleep func(time.Duration)
	log   zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSources replaces the sources built from configuration.
func WithSources(srcs ...sources.Source) Option {
	return func(p *Pipeline) { p.sources = srcs }
}

// WithAI replaces the model client built from configuration.
func WithAI(ai AI) Option {
	return func(p *Pipeline) { p.ai = ai }
}

// WithTaxonomy replaces the built-in topic taxonomy.
func WithTaxonomy(tax taxonomy.Taxonomy) Option {
	return func(p *Pipeline) { p.tax = tax }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithRunID replaces the random run identifier.
func WithRunID(f func() string) Option {
	return func(p *Pipeline) { p.runID = f }
}

// WithSleeper replaces time.Sleep for request and call pacing.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(p *Pipeline) { p.sleep = sleep }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// New validates cfg and wires the default collaborators.
func New(cfg types.DigestConfig, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	p := &Pipeline{
		cfg:     cfg,
		tax:     taxonomy.Default(),
		weights: score.DefaultWeights(),
		now:     time.Now,
		runID:   func() string { return uuid.NewString() },
		sleep:   time.Sleep,
		log:     zerolog.Nop(),
	}
	if cfg.TaxonomyFile != "" {
		tax, err := taxonomy.Load(cfg.TaxonomyFile)
		if err != nil {
			return nil, err
		}
		p.tax = tax
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.sources == nil {
		p.sources = sources.Build(cfg.Sources, sources.Options{
			Client:    &http.Client{Timeout: cfg.Sources.Timeout},
			UserAgent: cfg.Sources.UserAgent,
			Delay:     cfg.Sources.RequestDelay,
			Sleep:     p.sleep,
			Today:     p.now().UTC(),
			DaysBack:  cfg.Sources.DaysBack,
		})
	}
	if p.ai == nil {
		backend, err := enrich.NewBackend(cfg.Enrichment.AIConfig, &http.Client{Timeout: cfg.Enrichment.Timeout})
		if err != nil {
			return nil, err
		}
		p.ai = enrich.NewClient(backend)
	}

	p.store = snapshot.NewStore(cfg.Report.DataDir)
	p.renderer = report.NewRenderer(report.Options{
		ReportsDir: cfg.Report.ReportsDir,
		ChartsDir:  cfg.Report.ChartsDir,
		MaxPapers:  cfg.Report.MaxPapersInReport,
		Taxonomy:   p.tax,
	})
	return p, nil
}

// RunOptions are per-invocation switches.
type RunOptions struct {
	// DryRun makes no enrichment or narrative calls.
	DryRun bool

	// Demo replaces every source with the built-in dataset. It implies DryRun.
	Demo bool
}

// Result summarizes a finished run.
type Result struct {
	RunID string
	Date  string

	Sources   []sources.Stat
	Fetched   int
	Malformed int
	Stale     int

	// UsedDemo is set when no source produced a usable record.
	UsedDemo bool

	Irrelevant int
	FellBack   bool
	Duplicates int
	Trimmed    int

	Enrichment enrich.Summary

	Papers   []types.Paper
	Insights types.Insights

	SnapshotPath string
	Report       report.Output
}

// Run executes one batch.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (Result, error) {
	if opts.Demo {
		opts.DryRun = true
	}
	started := p.now().UTC()
	res := Result{RunID: p.runID(), Date: started.Format(types.DateLayout)}
	log := p.log.With().Str("run_id", res.RunID).Str("date", res.Date).Logger()

	release, err := p.store.Lock()
	if err != nil {
		return res, err
	}
	defer func() {
		if err := release(); err != nil {
			log.Warn().Err(err).Msg("releasing lock")
		}
	}()

	srcs := p.sources
	if opts.Demo {
		srcs = []sources.Source{sources.DemoSource{}}
	}
	batch := sources.FetchAll(ctx, srcs, p.cfg.Sources.MaxPerSource, log)
	res.Sources = batch.Stats
	res.Fetched = len(batch.Records)

	norm := normalize.New(started, p.cfg.Sources.DaysBack).Normalize(batch.Records)
	res.Malformed, res.Stale = norm.Malformed, norm.Stale
	if len(norm.Papers) == 0 {
		log.Warn().Int("fetched", res.Fetched).Msg("no usable records from any source, using demo dataset")
		norm = normalize.New(started, 0).Normalize(sources.Demo())
		res.UsedDemo = true
	}
	log.Info().
		Int("fetched", res.Fetched).
		Int("normalized", len(norm.Papers)).
		Int("malformed", res.Malformed).
		Int("stale", res.Stale).
		Msg("normalized")

	filtered := relevance.NewFilter(p.tax).Apply(norm.Papers)
	res.Irrelevant, res.FellBack = filtered.Dropped, filtered.FellBack
	if filtered.FellBack {
		log.Warn().Msg("no paper matched the taxonomy, keeping the full pool")
	}

	papers, dups := dedup.Deduplicate(filtered.Papers)
	res.Duplicates = dups

	papers = byRelevance(papers)
	if limit := p.cfg.Report.MaxCandidates; limit > 0 && len(papers) > limit {
		res.Trimmed = len(papers) - limit
		papers = papers[:limit]
	}
	log.Info().
		Int("irrelevant", res.Irrelevant).
		Int("duplicates", res.Duplicates).
		Int("trimmed", res.Trimmed).
		Int("candidates", len(papers)).
		Msg("filtered")

	scorer := score.NewScorer(p.weights)
	papers = scorer.Apply(papers)

	var narrator insights.Narrator = p.ai
	if opts.DryRun {
		papers = enrich.MarkSkipped(papers, DryRunNote)
		narrator = nil
	} else {
		selector, err := enrich.NewSelector(p.cfg.Enrichment)
		if err != nil {
			return res, err
		}
		enricher := enrich.NewEnricher(p.ai, selector, p.cfg.Enrichment,
			enrich.WithSleeper(p.sleep),
			enrich.WithLogger(log),
		)
		papers, res.Enrichment = enricher.Enrich(ctx, papers)
		papers = scorer.Apply(papers)
	}

	papers = insights.ByImportance(papers)
	res.Papers = papers
	var aggOpts []insights.Option
	if res.Enrichment.Calls > 0 {
		aggOpts = append(aggOpts, insights.WithPause(p.cfg.Enrichment.CallDelay, p.sleep))
	}
	res.Insights = insights.NewAggregator(narrator, log, aggOpts...).Aggregate(ctx, papers)
	if opts.DryRun {
		res.Insights.Narrative = types.NarrativeDryRun
	}

	res.SnapshotPath, err = p.store.Write(snapshot.Snapshot{
		Date:        res.Date,
		RunID:       res.RunID,
		GeneratedAt: started,
		Papers:      papers,
		Insights:    res.Insights,
	})
	if err != nil {
		return res, err
	}

	res.Report, err = p.renderer.Render(report.Input{
		Date:        res.Date,
		RunID:       res.RunID,
		GeneratedAt: started,
		Papers:      papers,
		Insights:    res.Insights,
	})
	if err != nil {
		return res, err
	}

	log.Info().
		Str("snapshot", res.SnapshotPath).
		Str("report", res.Report.ReportPath).
		Int("papers", len(papers)).
		Int("enriched", res.Enrichment.Enriched).
		Msg("run complete")
	return res, nil
}

// byRelevance orders papers by relevance score, highest first, keeping
// input order among equals.
func byRelevance(papers []types.Paper) []types.Paper {
	out := make([]types.Paper, len(papers))
	copy(out, papers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}
