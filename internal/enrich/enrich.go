// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich selects a bounded subset of papers for AI summaries, calls
// the text-generation collaborator serially, and derives methodology tags
// from the returned text.
//
// Failures are local to one paper: the paper keeps a nil summary, gets a
// note, and the batch continues. Calls are never retried.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-digest/internal/taxonomy"
	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	noteUnavailable   = "AI unavailable: no API key configured"
	noteAbstractShort = "abstract too short"
)

// Summarizer is the part of Client the enricher needs.
type Summarizer interface {
	Available() bool
	Summarize(ctx context.Context, p PaperPrompt) (string, error)
}

// Summary counts the outcomes of one enrichment pass.
type Summary struct {
	Selected int
	Enriched int
	Failed   int
	Skipped  int
	Calls    int
}

// Enricher runs the selection and call loop.
type Enricher struct {
	client         Summarizer
	selector       Selector
	methods        taxonomy.Taxonomy
	delay          time.Duration
	minAbstractLen int
	sleep          func(time.Duration)
	log            zerolog.Logger
}

// Option customizes an Enricher.
type Option func(*Enricher)

// WithSleeper overrides how the inter-call pause is performed (useful for tests).
func WithSleeper(sleep func(time.Duration)) Option {
	return func(e *Enricher) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// WithMethods overrides the methodology tag table.
func WithMethods(methods taxonomy.Taxonomy) Option {
	return func(e *Enricher) { e.methods = methods }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Enricher) { e.log = log }
}

// NewEnricher returns an Enricher that pauses delay between successive calls.
func NewEnricher(client Summarizer, selector Selector, cfg types.EnrichmentConfig, opts ...Option) *Enricher {
	e := &Enricher{
		client:         client,
		selector:       selector,
		methods:        taxonomy.Methods(),
		delay:          cfg.CallDelay,
		minAbstractLen: cfg.MinAbstractLen,
		sleep:          time.Sleep,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich returns copies of papers with AISummary, AITags, AIStatus and AINote
// resolved. Importance scores are left to the caller.
func (e *Enricher) Enrich(ctx context.Context, papers []types.Paper) ([]types.Paper, Summary) {
	sel := e.selector.Select(papers)
	available := e.client != nil && e.client.Available()

	e.log.Info().
		Str("policy", string(e.selector.Name())).
		Int("selected", sel.Len()).
		Int("total", len(papers)).
		Bool("available", available).
		Msg("enrichment selection")

	out := make([]types.Paper, len(papers))
	summary := Summary{Selected: sel.Len()}

	for i, p := range papers {
		out[i] = clearEnrichment(p)
		if !sel.Selected(i) {
			out[i].AIStatus = types.EnrichmentSkipped
			out[i].AINote = sel.SkipReason
			summary.Skipped++
		}
	}

	for _, i := range sel.Order {
		p := &out[i]
		switch {
		case !available:
			p.AIStatus = types.EnrichmentFailed
			p.AINote = noteUnavailable
			summary.Failed++
			continue
		case len([]rune(p.Abstract)) < e.minAbstractLen:
			p.AIStatus = types.EnrichmentSkipped
			p.AINote = noteAbstractShort
			summary.Skipped++
			continue
		}

		if summary.Calls > 0 && e.delay > 0 {
			e.sleep(e.delay)
		}
		summary.Calls++

		text, err := e.client.Summarize(ctx, PaperPrompt{
			Title:    p.Title,
			Authors:  p.Authors,
			Source:   p.Source,
			Abstract: p.Abstract,
		})
		if err != nil {
			p.AIStatus = types.EnrichmentFailed
			p.AINote = failureNote(err)
			summary.Failed++
			e.log.Warn().Err(err).Str("title", shortTitle(p.Title)).Msg("enrichment failed")
			continue
		}

		p.AISummary = &text
		p.AITags = e.Tags(p.Abstract, text)
		p.AIStatus = types.EnrichmentDone
		summary.Enriched++
		e.log.Info().Str("title", shortTitle(p.Title)).Strs("tags", p.AITags).Msg("enriched")
	}

	return out, summary
}

// Tags derives methodology tags from the abstract and the AI summary.
func (e *Enricher) Tags(abstract, summary string) []string {
	tags := e.methods.Match(abstract + " " + summary)
	if tags == nil {
		return []string{}
	}
	return tags
}

// clearEnrichment drops any prior enrichment so a paper never carries tags
// without a summary.
func clearEnrichment(p types.Paper) types.Paper {
	out := p.Clone()
	out.AISummary = nil
	out.AITags = []string{}
	out.AIStatus = types.EnrichmentPending
	out.AINote = ""
	return out
}

func failureNote(err error) string {
	switch {
	case errors.Is(err, ErrNoCredential):
		return noteUnavailable
	case errors.Is(err, ErrEmptyResponse):
		return "AI failed: empty response"
	default:
		return fmt.Sprintf("AI failed: %v", err)
	}
}

func shortTitle(title string) string {
	return truncateRunes(title, 60)
}

// MarkSkipped resolves every paper as skipped with note, for runs that make
// no enrichment calls.
func MarkSkipped(papers []types.Paper, note string) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		out[i] = clearEnrichment(p)
		out[i].AIStatus = types.EnrichmentSkipped
		out[i].AINote = note
	}
	return out
}
