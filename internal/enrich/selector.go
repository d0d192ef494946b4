// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"fmt"
	"sort"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Selection partitions a batch by index into the canonical ordered sequence.
// Indices never refer to pointer identity, so a Selection stays valid for
// copies of the batch.
type Selection struct {
	selected map[int]bool

	// Order lists selected indices in the order the policy picked them.
	Order []int

	// SkipReason is the note recorded on every paper that was not selected.
	SkipReason string
}

// Selected reports whether the paper at index i was chosen.
func (s Selection) Selected(i int) bool { return s.selected[i] }

// Len returns the number of selected papers.
func (s Selection) Len() int { return len(s.Order) }

func newSelection(reason string) Selection {
	return Selection{selected: make(map[int]bool), SkipReason: reason}
}

func (s *Selection) add(i int) {
	s.selected[i] = true
	s.Order = append(s.Order, i)
}

// Selector decides which papers receive an enrichment call. A selector sees
// the whole batch up front; its result is fixed before any call is made.
type Selector interface {
	Name() types.SelectionPolicy
	Select(papers []types.Paper) Selection
}

// NewSelector returns the selector named by cfg.Policy.
func NewSelector(cfg types.EnrichmentConfig) (Selector, error) {
	switch cfg.Policy {
	case types.PolicyGlobal, "":
		return GlobalTopN{Max: cfg.MaxAIPapers}, nil
	case types.PolicyPerTopic:
		return PerTopic{Cap: cfg.PerTopicCap}, nil
	default:
		return nil, fmt.Errorf("unsupported selection policy %q", cfg.Policy)
	}
}

// GlobalTopN selects the Max most relevant papers. Ties keep input order.
type GlobalTopN struct {
	Max int
}

// Name returns the policy identifier.
func (g GlobalTopN) Name() types.SelectionPolicy { return types.PolicyGlobal }

// Select implements Selector.
func (g GlobalTopN) Select(papers []types.Paper) Selection {
	sel := newSelection(fmt.Sprintf("skipped: cost cap (max %d AI papers per run)", g.Max))
	for _, i := range byRelevance(papers) {
		if sel.Len() >= g.Max {
			break
		}
		sel.add(i)
	}
	return sel
}

// PerTopic walks papers by descending relevance and selects a paper while
// at least one of its topics has fewer than Cap selected papers. Every
// topic of a selected paper is counted. Papers without topics are never
// selected.
type PerTopic struct {
	Cap int
}

// Name returns the policy identifier.
func (p PerTopic) Name() types.SelectionPolicy { return types.PolicyPerTopic }

// Select implements Selector.
func (p PerTopic) Select(papers []types.Paper) Selection {
	sel := newSelection(fmt.Sprintf("skipped: topic coverage reached (%d per topic)", p.Cap))
	counts := make(map[string]int)
	for _, i := range byRelevance(papers) {
		topics := papers[i].MatchedTopics
		open := false
		for _, t := range topics {
			if counts[t] < p.Cap {
				open = true
				break
			}
		}
		if !open {
			continue
		}
		sel.add(i)
		for _, t := range topics {
			counts[t]++
		}
	}
	return sel
}

// byRelevance returns indices sorted by descending relevance score,
// stable on input order.
func byRelevance(papers []types.Paper) []int {
	idx := make([]int, len(papers))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return papers[idx[a]].RelevanceScore > papers[idx[b]].RelevanceScore
	})
	return idx
}
