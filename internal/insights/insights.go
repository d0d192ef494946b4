// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package insights rolls a run's final paper set up into distributions,
// a ranked shortlist, and a best-effort narrative.
package insights

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-digest/internal/enrich"
	"github.com/pdiddy/paper-digest/internal/taxonomy"
	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	// TopPapers is the size of the ranked shortlist.
	TopPapers = 5

	// NarrativePapers is how many ranked papers go into the narrative prompt.
	NarrativePapers = 12
)

// Narrator produces the aggregate narrative. *enrich.Client implements it.
type Narrator interface {
	Available() bool
	Narrate(ctx context.Context, n enrich.NarrativePrompt) (string, error)
}

// Count is one entry of a distribution.
type Count struct {
	Key   string
	Count int
}

// Ranked returns the entries of dist by descending count, then key.
func Ranked(dist map[string]int) []Count {
	out := make([]Count, 0, len(dist))
	for k, v := range dist {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ByImportance returns copies of papers sorted by descending importance
// score; ties keep input order.
func ByImportance(papers []types.Paper) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		out[i] = p.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ImportanceScore > out[j].ImportanceScore
	})
	return out
}

// Aggregator builds Insights.
type Aggregator struct {
	narrator Narrator
	delay    time.Duration
	sleep    func(time.Duration)
	log      zerolog.Logger
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithPause makes the narrative call wait delay first, for runs where a
// call to the same API came just before it. A nil sleep uses time.Sleep.
func WithPause(delay time.Duration, sleep func(time.Duration)) Option {
	return func(a *Aggregator) {
		a.delay = delay
		if sleep != nil {
			a.sleep = sleep
		}
	}
}

// NewAggregator returns an Aggregator. A nil narrator always yields the
// fallback narrative.
func NewAggregator(narrator Narrator, log zerolog.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{narrator: narrator, sleep: time.Sleep, log: log}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Distributions computes everything except the narrative. It is
// deterministic in its input.
func Distributions(papers []types.Paper) types.Insights {
	in := types.Insights{
		TopicDistribution:  make(map[string]int),
		MethodDistribution: make(map[string]int),
		SourceDistribution: make(map[string]int),
		TotalPapers:        len(papers),
	}
	for _, p := range papers {
		for _, t := range p.MatchedTopics {
			in.TopicDistribution[t]++
		}
		if p.Enriched() {
			for _, tag := range p.AITags {
				in.MethodDistribution[tag]++
			}
		}
		in.SourceDistribution[p.Source]++
	}

	ranked := ByImportance(papers)
	if len(ranked) > TopPapers {
		ranked = ranked[:TopPapers]
	}
	in.TopPapers = ranked
	return in
}

// Aggregate computes the distributions and requests a narrative. A failed
// narrative call is logged and replaced by types.NarrativeFallback.
func (a *Aggregator) Aggregate(ctx context.Context, papers []types.Paper) types.Insights {
	in := Distributions(papers)
	in.Narrative = a.narrate(ctx, papers, in.TopicDistribution)
	return in
}

func (a *Aggregator) narrate(ctx context.Context, papers []types.Paper, topics map[string]int) string {
	if a.narrator == nil || !a.narrator.Available() {
		return types.NarrativeFallback
	}
	if a.delay > 0 {
		a.sleep(a.delay)
	}
	text, err := a.narrator.Narrate(ctx, NarrativeInput(papers, topics))
	if err != nil {
		a.log.Warn().Err(err).Msg("narrative unavailable")
		return types.NarrativeFallback
	}
	return text
}

// NarrativeInput renders the aggregate prompt fields.
func NarrativeInput(papers []types.Paper, topics map[string]int) enrich.NarrativePrompt {
	parts := make([]string, 0, len(topics))
	for _, c := range Ranked(topics) {
		parts = append(parts, fmt.Sprintf("%s (%d)", taxonomy.DisplayName(c.Key), c.Count))
	}

	ranked := ByImportance(papers)
	if len(ranked) > NarrativePapers {
		ranked = ranked[:NarrativePapers]
	}
	lines := make([]string, len(ranked))
	for i, p := range ranked {
		source := p.Source
		if source == "" {
			source = "?"
		}
		lines[i] = fmt.Sprintf("- [%s] %s", source, p.Title)
	}

	return enrich.NarrativePrompt{
		Topics:    strings.Join(parts, ", "),
		Total:     len(papers),
		PaperList: strings.Join(lines, "\n"),
	}
}
