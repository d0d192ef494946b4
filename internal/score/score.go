// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes the importance score used to rank papers.
//
// The score is a pure function of the paper's relevance score, matched
// topics, AI tags, title, abstract, source and categories. It is computed
// once before enrichment and again after, which is how AI tags reach the
// ranking.
package score

import (
	"math"
	"strings"

	"github.com/pdiddy/paper-digest/internal/relevance"
	"github.com/pdiddy/paper-digest/internal/taxonomy"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Pair awards Bonus when Topic is matched together with any of Topics
// (also matched) or any of Tags (present in the AI tags).
type Pair struct {
	Topic  string
	Topics []string
	Tags   []string
	Bonus  float64
}

// KeywordBoost is one row of the first-match-wins keyword table.
type KeywordBoost struct {
	Keyword string
	Bonus   float64
}

// Weights parameterizes the scorer.
type Weights struct {
	// RelevanceFactor multiplies the relevance score.
	RelevanceFactor float64

	// Pairs all apply independently.
	Pairs []Pair

	// Keywords are scanned in order; only the first hit counts.
	Keywords []KeywordBoost

	// CoreSource and CorePrefix define the source-specific bonus.
	CoreSource      string
	CorePrefix      string
	CoreSourceBonus float64
}

// DefaultWeights returns the production scoring table.
func DefaultWeights() Weights {
	return Weights{
		RelevanceFactor: 1.5,
		Pairs: []Pair{
			{Topic: taxonomy.NLPFinance, Topics: []string{taxonomy.AssetPricing}, Bonus: 3.0},
			{Topic: taxonomy.BehavioralFinance, Tags: []string{taxonomy.MethodMachineLearning}, Bonus: 2.0},
			{Topic: taxonomy.TailRisk, Topics: []string{taxonomy.BehavioralFinance}, Bonus: 2.5},
			{Topic: taxonomy.QuantTrading, Topics: []string{taxonomy.NLPFinance}, Tags: []string{taxonomy.MethodMachineLearning}, Bonus: 2.5},
			{Topic: taxonomy.GenderFinance, Topics: []string{taxonomy.CorporateFinance}, Bonus: 2.0},
		},
		Keywords: []KeywordBoost{
			{"quantile", 2.0},
			{"transformer", 2.0},
			{"reinforcement learning", 2.5},
			{"sentiment", 1.5},
			{"llm", 2.0},
			{"gender", 1.5},
			{"factor model", 1.5},
			{"deep learning", 1.5},
			{"diagnostic", 1.5},
		},
		CoreSource:      "arXiv",
		CorePrefix:      relevance.CoreCategoryPrefix,
		CoreSourceBonus: 1.0,
	}
}

// Scorer computes importance scores with a fixed set of weights.
type Scorer struct {
	w Weights
}

// NewScorer returns a Scorer. Keyword phrases are lowercased once here.
func NewScorer(w Weights) *Scorer {
	kws := make([]KeywordBoost, len(w.Keywords))
	for i, k := range w.Keywords {
		kws[i] = KeywordBoost{Keyword: strings.ToLower(k.Keyword), Bonus: k.Bonus}
	}
	w.Keywords = kws
	return &Scorer{w: w}
}

// Score returns the importance score of p rounded to two decimals.
// Missing optional fields count as empty.
func (s *Scorer) Score(p types.Paper) float64 {
	total := float64(p.RelevanceScore) * s.w.RelevanceFactor

	topics := toSet(p.MatchedTopics)
	tags := toSet(p.AITags)
	for _, pair := range s.w.Pairs {
		if pairApplies(pair, topics, tags) {
			total += pair.Bonus
		}
	}

	total += s.keywordBoost(p.Title + " " + p.Abstract)

	if p.Source == s.w.CoreSource && p.HasCategoryPrefix(s.w.CorePrefix) {
		total += s.w.CoreSourceBonus
	}

	if total < 0 {
		total = 0
	}
	return round2(total)
}

// Apply returns copies of papers with ImportanceScore recomputed.
func (s *Scorer) Apply(papers []types.Paper) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		out[i] = p.Clone()
		out[i].ImportanceScore = s.Score(p)
	}
	return out
}

func (s *Scorer) keywordBoost(text string) float64 {
	lower := strings.ToLower(text)
	for _, k := range s.w.Keywords {
		if k.Keyword != "" && strings.Contains(lower, k.Keyword) {
			return k.Bonus
		}
	}
	return 0
}

func pairApplies(pair Pair, topics, tags map[string]struct{}) bool {
	if _, ok := topics[pair.Topic]; !ok {
		return false
	}
	for _, t := range pair.Topics {
		if _, ok := topics[t]; ok {
			return true
		}
	}
	for _, t := range pair.Tags {
		if _, ok := tags[t]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
