// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/internal/enrich"
	"github.com/pdiddy/paper-digest/pkg/types"
)

type fakeNarrator struct {
	available bool
	text      string
	err       error
	got       enrich.NarrativePrompt
	calls     int
}

func (f *fakeNarrator) Available() bool { return f.available }

func (f *fakeNarrator) Narrate(_ context.Context, n enrich.NarrativePrompt) (string, error) {
	f.calls++
	f.got = n
	return f.text, f.err
}

func summary(s string) *string { return &s }

func samplePapers() []types.Paper {
	return []types.Paper{
		{Title: "A", Source: "arXiv", MatchedTopics: []string{"asset_pricing", "quant_trading"}, ImportanceScore: 4.5,
			AISummary: summary("s"), AITags: []string{"machine_learning"}},
		{Title: "B", Source: "NBER", MatchedTopics: []string{"asset_pricing"}, ImportanceScore: 6.0},
		{Title: "C", Source: "arXiv", MatchedTopics: []string{"tail_risk"}, ImportanceScore: 4.5,
			AISummary: summary("s"), AITags: []string{"machine_learning", "empirical"}},
		// Tags without a summary never count.
		{Title: "D", Source: "JF", MatchedTopics: []string{}, ImportanceScore: 1.0, AITags: []string{"theoretical"}},
	}
}

func TestDistributions(t *testing.T) {
	in := Distributions(samplePapers())

	assert.Equal(t, 4, in.TotalPapers)
	assert.Equal(t, map[string]int{"asset_pricing": 2, "quant_trading": 1, "tail_risk": 1}, in.TopicDistribution)
	assert.Equal(t, map[string]int{"machine_learning": 2, "empirical": 1}, in.MethodDistribution)
	assert.Equal(t, map[string]int{"arXiv": 2, "NBER": 1, "JF": 1}, in.SourceDistribution)

	require.Len(t, in.TopPapers, 4)
	titles := make([]string, len(in.TopPapers))
	for i, p := range in.TopPapers {
		titles[i] = p.Title
	}
	assert.Equal(t, []string{"B", "A", "C", "D"}, titles, "ties keep input order")
}

func TestDistributionsEmpty(t *testing.T) {
	in := Distributions(nil)
	assert.Zero(t, in.TotalPapers)
	assert.NotNil(t, in.TopicDistribution)
	assert.NotNil(t, in.MethodDistribution)
	assert.NotNil(t, in.SourceDistribution)
	assert.Empty(t, in.TopPapers)
}

func TestTopPapersCappedAtFive(t *testing.T) {
	papers := make([]types.Paper, 8)
	for i := range papers {
		papers[i] = types.Paper{Title: fmt.Sprint(i), ImportanceScore: float64(i)}
	}
	in := Distributions(papers)
	require.Len(t, in.TopPapers, TopPapers)
	assert.Equal(t, "7", in.TopPapers[0].Title)
	assert.Equal(t, "3", in.TopPapers[4].Title)
}

func TestDistributionsDeterministic(t *testing.T) {
	a := Distributions(samplePapers())
	b := Distributions(samplePapers())
	assert.Equal(t, a, b)
}

func TestAggregateNarrative(t *testing.T) {
	n := &fakeNarrator{available: true, text: "Frontiers are shifting."}
	in := NewAggregator(n, zerolog.Nop()).Aggregate(context.Background(), samplePapers())

	assert.Equal(t, "Frontiers are shifting.", in.Narrative)
	assert.Equal(t, 1, n.calls)
	assert.Equal(t, "Asset Pricing (2), Quant Trading (1), Tail Risk (1)", n.got.Topics)
	assert.Equal(t, 4, n.got.Total)
	assert.True(t, strings.HasPrefix(n.got.PaperList, "- [NBER] B\n- [arXiv] A"))
}

func TestAggregatePausesBeforeNarrative(t *testing.T) {
	var events []string
	n := &fakeNarrator{available: true, text: "ok"}
	sleep := func(d time.Duration) { events = append(events, fmt.Sprintf("sleep %s", d)) }

	in := NewAggregator(n, zerolog.Nop(), WithPause(5*time.Second, sleep)).Aggregate(context.Background(), samplePapers())
	assert.Equal(t, "ok", in.Narrative)
	assert.Equal(t, []string{"sleep 5s"}, events)
	assert.Equal(t, 1, n.calls)

	events = nil
	NewAggregator(&fakeNarrator{}, zerolog.Nop(), WithPause(5*time.Second, sleep)).Aggregate(context.Background(), samplePapers())
	assert.Empty(t, events, "no pause when no call is made")

	NewAggregator(n, zerolog.Nop()).Aggregate(context.Background(), samplePapers())
	assert.Empty(t, events)
}

func TestAggregateNarrativeFallback(t *testing.T) {
	tests := []struct {
		name     string
		narrator Narrator
	}{
		{"nil narrator", nil},
		{"unavailable", &fakeNarrator{available: false}},
		{"call fails", &fakeNarrator{available: true, err: errors.New("503")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := NewAggregator(tc.narrator, zerolog.Nop()).Aggregate(context.Background(), samplePapers())
			assert.Equal(t, types.NarrativeFallback, in.Narrative)
			assert.Len(t, in.TopPapers, 4)
		})
	}
}

func TestNarrativeInputLimitsPapers(t *testing.T) {
	papers := make([]types.Paper, 20)
	for i := range papers {
		papers[i] = types.Paper{Title: fmt.Sprint(i), ImportanceScore: float64(i)}
	}
	n := NarrativeInput(papers, map[string]int{})
	assert.Equal(t, NarrativePapers, strings.Count(n.PaperList, "\n")+1)
	assert.Contains(t, n.PaperList, "- [?] 19")
	assert.Equal(t, "", n.Topics)
	assert.Equal(t, 20, n.Total)
}

func TestRanked(t *testing.T) {
	got := Ranked(map[string]int{"b": 2, "a": 2, "c": 5})
	assert.Equal(t, []Count{{"c", 5}, {"a", 2}, {"b", 2}}, got)
}
