// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// crossrefAPIBase is the CrossRef REST endpoint. Package-level var for test substitution.
var crossrefAPIBase = "https://api.crossref.org"

const (
	crossrefRows       = 40
	crossrefMaxAuthors = 4
)

// CrossRef lists recent works of journals that publish no usable feed.
type CrossRef struct {
	journals []types.Journal
	mailto   string
	opts     Options
}

// NewCrossRef returns a CrossRef source. mailto, when set, is sent in the
// User-Agent so requests use CrossRef's polite pool.
func NewCrossRef(journals []types.Journal, mailto string, opts Options) *CrossRef {
	return &CrossRef{journals: journals, mailto: mailto, opts: opts}
}

// Name returns the source identifier.
func (c *CrossRef) Name() string { return "CrossRef" }

type crossrefResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	DOI      string   `json:"DOI"`
	Title    []string `json:"title"`
	Abstract string   `json:"abstract"`
	Author   []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	Published struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"published"`
}

// Fetch queries each journal by ISSN for works published inside the
// recency window.
func (c *CrossRef) Fetch(ctx context.Context) ([]types.RawRecord, error) {
	opts := c.opts
	if c.mailto != "" {
		opts.UserAgent = fmt.Sprintf("%s (mailto:%s)", opts.UserAgent, c.mailto)
	}
	pacer := opts.pacer()

	var (
		out  []types.RawRecord
		errs []error
	)
	for _, j := range c.journals {
		pacer.Wait()
		body, err := opts.get(ctx, c.endpoint(j), "application/json")
		if err != nil {
			errs = append(errs, fmt.Errorf("CrossRef %s: %w", j.Name, err))
			continue
		}
		var resp crossrefResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			errs = append(errs, fmt.Errorf("CrossRef %s: decoding response: %w", j.Name, err))
			continue
		}
		for _, w := range resp.Message.Items {
			if r, ok := crossrefRecord(w, j.Name); ok {
				out = append(out, r)
			}
		}
	}
	return out, errors.Join(errs...)
}

func (c *CrossRef) endpoint(j types.Journal) string {
	params := url.Values{}
	params.Set("rows", fmt.Sprint(crossrefRows))
	params.Set("sort", "published")
	params.Set("order", "desc")
	params.Set("select", "DOI,title,author,abstract,published,container-title")
	if c.opts.DaysBack > 0 && !c.opts.Today.IsZero() {
		from := c.opts.Today.AddDate(0, 0, -c.opts.DaysBack).Format(types.DateLayout)
		params.Set("filter", "from-pub-date:"+from)
	}
	return fmt.Sprintf("%s/journals/%s/works?%s", crossrefAPIBase, url.PathEscape(j.ISSN), params.Encode())
}

func crossrefRecord(w crossrefWork, source string) (types.RawRecord, bool) {
	if len(w.Title) == 0 || !keepTitle(strings.TrimSpace(w.Title[0])) {
		return types.RawRecord{}, false
	}

	var authors []string
	for _, a := range w.Author {
		if len(authors) == crossrefMaxAuthors {
			break
		}
		if n := strings.TrimSpace(a.Given + " " + a.Family); n != "" {
			authors = append(authors, n)
		}
	}

	r := types.RawRecord{
		Source:   source,
		ID:       w.DOI,
		Title:    w.Title[0],
		Authors:  strings.Join(authors, ", "),
		Abstract: w.Abstract,
		Date:     crossrefDate(w.Published.DateParts),
	}
	if w.DOI != "" {
		r.URL = "https://doi.org/" + w.DOI
	}
	return r, true
}

// crossrefDate renders date-parts; a missing day becomes the first of the
// month and a missing month leaves the date empty.
func crossrefDate(parts [][]int) string {
	if len(parts) == 0 || len(parts[0]) < 2 {
		return ""
	}
	dp := parts[0]
	day := 1
	if len(dp) >= 3 {
		day = dp[2]
	}
	return fmt.Sprintf("%04d-%02d-%02d", dp[0], dp[1], day)
}
