// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns raw source records into canonical Papers.
//
// Records that cannot be normalized are dropped and counted. A malformed
// record never affects the rest of its batch.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/pdiddy/paper-digest/internal/schema"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// dateLayouts are tried in order. Feeds mix RFC 822 variants with ISO dates.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	types.DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01",
}

// Result carries the normalized batch and drop counters.
type Result struct {
	Papers    []types.Paper
	Malformed int
	Stale     int
}

// Normalizer converts RawRecords relative to a run date.
type Normalizer struct {
	// Today is the run date. Records without a date are stamped with it.
	Today time.Time

	// Cutoff discards records dated strictly before it. Zero disables the check.
	Cutoff time.Time
}

// New returns a Normalizer for a run on today keeping daysBack days.
// A non-positive daysBack disables the recency check.
func New(today time.Time, daysBack int) *Normalizer {
	n := &Normalizer{Today: today}
	if daysBack > 0 {
		y, m, d := today.Date()
		n.Cutoff = time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysBack)
	}
	return n
}

// Normalize converts records in order.
func (n *Normalizer) Normalize(records []types.RawRecord) Result {
	res := Result{Papers: make([]types.Paper, 0, len(records))}
	for _, r := range records {
		p, err := n.Paper(r)
		if err != nil {
			res.Malformed++
			continue
		}
		if !n.Cutoff.IsZero() && p.Date < n.Cutoff.Format(types.DateLayout) {
			res.Stale++
			continue
		}
		res.Papers = append(res.Papers, p)
	}
	return res
}

// Paper converts a single record.
func (n *Normalizer) Paper(r types.RawRecord) (types.Paper, error) {
	title := CleanText(r.Title)
	if title == "" {
		return types.Paper{}, fmt.Errorf("record from %q has no title", r.Source)
	}

	date := n.Today.Format(types.DateLayout)
	if strings.TrimSpace(r.Date) != "" {
		t, err := ParseDate(r.Date)
		if err != nil {
			return types.Paper{}, err
		}
		date = t.Format(types.DateLayout)
	}

	var cats []string
	for _, c := range r.Categories {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}
	if cats == nil {
		cats = []string{}
	}

	p := types.Paper{
		ID:            strings.TrimSpace(r.ID),
		Source:        strings.TrimSpace(r.Source),
		Title:         title,
		Authors:       collapse(r.Authors),
		Abstract:      CleanText(r.Abstract),
		URL:           strings.TrimSpace(r.URL),
		PDFURL:        strings.TrimSpace(r.PDFURL),
		Date:          date,
		Categories:    cats,
		MatchedTopics: []string{},
		AITags:        []string{},
	}
	if len(cats) > 0 {
		p.PrimaryCategory = cats[0]
	}
	if p.ID == "" {
		p.ID = FallbackID(p)
	}

	if err := schema.ValidatePaper(p); err != nil {
		return types.Paper{}, fmt.Errorf("record %q: %w", title, err)
	}
	return p, nil
}

// FallbackID derives a stable identifier from the URL, or from source and
// title when there is no URL.
func FallbackID(p types.Paper) string {
	if p.URL != "" {
		return p.URL
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(p.Source+"\n"+strings.ToLower(p.Title))).String()
}

// ParseDate accepts the date formats seen across feeds and APIs. The
// result keeps the offset the source reported.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// CleanText strips markup and entities and collapses whitespace.
func CleanText(s string) string {
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return collapse(s)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
