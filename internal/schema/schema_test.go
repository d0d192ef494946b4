// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func validPaper() types.Paper {
	return types.Paper{
		ID:             "2601.00001",
		Source:         "arXiv",
		Title:          "Deep Learning for Factor Zoo",
		URL:            "https://arxiv.org/abs/2601.00001",
		Date:           "2026-01-05",
		Categories:     []string{"q-fin.PM"},
		MatchedTopics:  []string{},
		AITags:         []string{},
		RelevanceScore: 3,
	}
}

func TestValidatePaper(t *testing.T) {
	require.NoError(t, ValidatePaper(validPaper()))

	tests := []struct {
		name   string
		mutate func(p *types.Paper)
	}{
		{"blank title", func(p *types.Paper) { p.Title = "   " }},
		{"missing source", func(p *types.Paper) { p.Source = "" }},
		{"bad date", func(p *types.Paper) { p.Date = "Jan 5 2026" }},
		{"non-http url", func(p *types.Paper) { p.URL = "javascript:alert(1)" }},
		{"negative relevance", func(p *types.Paper) { p.RelevanceScore = -1 }},
		{"unknown status", func(p *types.Paper) { p.AIStatus = "queued" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validPaper()
			tc.mutate(&p)
			assert.Error(t, ValidatePaper(p))
		})
	}
}

func TestValidatePaperAllowsEmptyURL(t *testing.T) {
	p := validPaper()
	p.URL = ""
	assert.NoError(t, ValidatePaper(p))
}

func TestValidateSnapshot(t *testing.T) {
	valid := `{
		"date": "2026-01-05",
		"run_id": "abc",
		"generated_at": "2026-01-05T07:00:00Z",
		"papers": [{
			"id": "x", "source": "NBER", "title": "T", "authors": "", "abstract": "",
			"url": "https://www.nber.org/papers/w1", "date": "2026-01-05", "categories": [],
			"matched_topics": ["asset_pricing"], "relevance_score": 1, "ai_summary": null,
			"ai_tags": [], "ai_status": "skipped", "importance_score": 1.5
		}],
		"insights": {
			"topic_distribution": {"asset_pricing": 1},
			"method_distribution": {},
			"source_distribution": {"NBER": 1},
			"narrative": "Analysis unavailable.",
			"total_papers": 1
		}
	}`
	require.NoError(t, ValidateSnapshot([]byte(valid)))

	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ``},
		{"trailing content", `{"date":"2026-01-05","papers":[],"insights":{}} {}`},
		{"missing insights", `{"date":"2026-01-05","papers":[]}`},
		{"bad generated_at", `{"date":"2026-01-05","generated_at":"yesterday","papers":[],"insights":{"topic_distribution":{},"method_distribution":{},"source_distribution":{},"narrative":"","total_papers":0}}`},
		{"paper without title", `{"date":"2026-01-05","papers":[{"id":"x","source":"s"}],"insights":{"topic_distribution":{},"method_distribution":{},"source_distribution":{},"narrative":"","total_papers":0}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateSnapshot([]byte(tc.doc)))
		})
	}
}
