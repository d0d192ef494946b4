// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance tags papers with taxonomy topics and a base relevance
// score, and decides which papers are kept for the run.
package relevance

import (
	"github.com/pdiddy/paper-digest/internal/taxonomy"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// CoreCategoryPrefix marks a category as belonging to the core domain
// (arXiv quantitative finance).
const CoreCategoryPrefix = "q-fin"

// Filter tags papers against an injected taxonomy.
type Filter struct {
	tax        taxonomy.Taxonomy
	corePrefix string
}

// NewFilter returns a Filter using tax and the q-fin core prefix.
func NewFilter(tax taxonomy.Taxonomy) *Filter {
	return &Filter{tax: tax, corePrefix: CoreCategoryPrefix}
}

// Tag returns a copy of p with MatchedTopics and RelevanceScore set from
// title, abstract, and categories only. Previous tags on p are ignored,
// so Tag is idempotent.
func (f *Filter) Tag(p types.Paper) types.Paper {
	out := p.Clone()
	out.MatchedTopics = f.tax.Match(p.Title + " " + p.Abstract)
	if out.MatchedTopics == nil {
		out.MatchedTopics = []string{}
	}
	out.RelevanceScore = len(out.MatchedTopics) + f.SourceBonus(p)
	return out
}

// SourceBonus is 1 when any category carries the core-domain prefix.
func (f *Filter) SourceBonus(p types.Paper) int {
	if p.HasCategoryPrefix(f.corePrefix) {
		return 1
	}
	return 0
}

// Relevant reports whether a tagged paper should be kept.
func Relevant(p types.Paper) bool {
	return p.RelevanceScore > 0
}

// Result is the outcome of filtering one batch.
type Result struct {
	Papers []types.Paper

	// Dropped counts papers with no topic and no bonus.
	Dropped int

	// FellBack is set when nothing passed and the whole pool was kept.
	FellBack bool
}

// Apply tags every paper and keeps the relevant ones in input order. When
// no paper is relevant the full tagged pool is returned instead so the run
// never produces an empty report.
func (f *Filter) Apply(papers []types.Paper) Result {
	tagged := make([]types.Paper, len(papers))
	var kept []types.Paper
	for i, p := range papers {
		tagged[i] = f.Tag(p)
		if Relevant(tagged[i]) {
			kept = append(kept, tagged[i])
		}
	}
	if len(kept) == 0 && len(tagged) > 0 {
		return Result{Papers: tagged, FellBack: true}
	}
	return Result{Papers: kept, Dropped: len(tagged) - len(kept)}
}
