// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

var today = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-03-09", "2026-03-09"},
		{"2026-03-09T17:59:59Z", "2026-03-09"},
		{"Mon, 09 Mar 2026 10:00:00 +0000", "2026-03-09"},
		{"Mon, 9 Mar 2026 10:00:00 GMT", "2026-03-09"},
		{"9 Mar 2026", "2026-03-09"},
		{"March 9, 2026", "2026-03-09"},
		{"  2026-03-09  ", "2026-03-09"},
		{"Mon, 09 Mar 2026 22:00:00 -0500", "2026-03-09"},
		{"2026-03-09T23:30:00-08:00", "2026-03-09"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Format(types.DateLayout))
		})
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Factor   models\n and returns ", "Factor models and returns"},
		{"tags", "<p>We study <b>herding</b>.</p>", "We study herding."},
		{"entities", "Risk &amp; return", "Risk & return"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanText(tc.in))
		})
	}
}

func TestPaper(t *testing.T) {
	n := New(today, 7)
	p, err := n.Paper(types.RawRecord{
		Source:     "arXiv",
		ID:         "2603.01234",
		Title:      "  Deep Learning for\n Factor Zoo ",
		Authors:    "Ann Lee,  Bo Chen",
		Abstract:   "<p>neural network</p>",
		URL:        "https://arxiv.org/abs/2603.01234",
		Date:       "2026-03-09T00:00:00Z",
		Categories: []string{"q-fin.PM", " ", "cs.LG"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Deep Learning for Factor Zoo", p.Title)
	assert.Equal(t, "Ann Lee, Bo Chen", p.Authors)
	assert.Equal(t, "neural network", p.Abstract)
	assert.Equal(t, "2026-03-09", p.Date)
	assert.Equal(t, []string{"q-fin.PM", "cs.LG"}, p.Categories)
	assert.Equal(t, "q-fin.PM", p.PrimaryCategory)
	assert.NotNil(t, p.MatchedTopics)
	assert.NotNil(t, p.AITags)
	assert.Nil(t, p.AISummary)
}

func TestPaperDefaults(t *testing.T) {
	n := New(today, 7)

	p, err := n.Paper(types.RawRecord{Source: "JF", Title: "Herding in Bond Funds"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", p.Date, "missing date means the run date")
	assert.Equal(t, []string{}, p.Categories)
	assert.NotEmpty(t, p.ID)

	again, err := n.Paper(types.RawRecord{Source: "JF", Title: "Herding in Bond Funds"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID, "fallback id is stable")

	withURL, err := n.Paper(types.RawRecord{Source: "JF", Title: "X", URL: "https://example.org/x"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/x", withURL.ID)
}

func TestNormalizeDropsAndCounts(t *testing.T) {
	records := []types.RawRecord{
		{Source: "NBER", Title: "Fresh", Date: "2026-03-08"},
		{Source: "NBER", Title: "   "},
		{Source: "NBER", Title: "Bad date", Date: "sometime"},
		{Source: "NBER", Title: "Bad url", URL: "ftp://example.org"},
		{Source: "", Title: "No source"},
		{Source: "NBER", Title: "Old", Date: "2026-02-01"},
		{Source: "NBER", Title: "Edge", Date: "2026-03-03"},
	}
	res := New(today, 7).Normalize(records)

	require.Len(t, res.Papers, 2)
	assert.Equal(t, "Fresh", res.Papers[0].Title)
	assert.Equal(t, "Edge", res.Papers[1].Title)
	assert.Equal(t, 4, res.Malformed)
	assert.Equal(t, 1, res.Stale)
}

func TestNormalizeNoCutoff(t *testing.T) {
	res := New(today, 0).Normalize([]types.RawRecord{{Source: "JF", Title: "Old", Date: "1999-01-01"}})
	assert.Len(t, res.Papers, 1)
	assert.Zero(t, res.Stale)
}
