// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	arxivCategoryResults = 40
	arxivQueryResults    = 15
	arxivMaxAuthors      = 5
)

// Arxiv lists the newest papers of each configured category, then runs
// title searches restricted to a set of categories.
type Arxiv struct {
	apiURL           string
	categories       []string
	queries          []string
	searchCategories []string
	opts             Options
}

// NewArxiv returns the arXiv source described by cfg.
func NewArxiv(cfg types.SourcesConfig, opts Options) *Arxiv {
	return &Arxiv{
		apiURL:           cfg.ArxivAPIURL,
		categories:       cfg.ArxivCategories,
		queries:          cfg.ArxivQueries,
		searchCategories: cfg.ArxivSearchCategories,
		opts:             opts,
	}
}

// Name returns the source identifier.
func (a *Arxiv) Name() string { return "arXiv" }

// Fetch issues one request per category and per query. Failed requests are
// skipped; their errors are joined into the returned error.
func (a *Arxiv) Fetch(ctx context.Context) ([]types.RawRecord, error) {
	pacer := a.opts.pacer()
	var (
		out  []types.RawRecord
		errs []error
	)
	for _, q := range a.searches() {
		pacer.Wait()
		records, err := a.query(ctx, q.query, q.max)
		if err != nil {
			errs = append(errs, fmt.Errorf("arXiv %s: %w", q.query, err))
			continue
		}
		out = append(out, records...)
	}
	return out, errors.Join(errs...)
}

type arxivSearch struct {
	query string
	max   int
}

func (a *Arxiv) searches() []arxivSearch {
	var out []arxivSearch
	for _, c := range a.categories {
		out = append(out, arxivSearch{query: "cat:" + c, max: arxivCategoryResults})
	}
	var filter string
	if len(a.searchCategories) > 0 {
		cats := make([]string, len(a.searchCategories))
		for i, c := range a.searchCategories {
			cats[i] = "cat:" + c
		}
		filter = " AND (" + strings.Join(cats, " OR ") + ")"
	}
	for _, q := range a.queries {
		out = append(out, arxivSearch{query: "(" + q + ")" + filter, max: arxivQueryResults})
	}
	return out
}

func (a *Arxiv) query(ctx context.Context, query string, max int) ([]types.RawRecord, error) {
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("max_results", strconv.Itoa(max))

	body, err := a.opts.get(ctx, a.apiURL+"?"+params.Encode(), "application/atom+xml")
	if err != nil {
		return nil, err
	}
	return parseArxivFeed(body)
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

func parseArxivFeed(body []byte) ([]types.RawRecord, error) {
	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var out []types.RawRecord
	for _, e := range feed.Entries {
		id := extractArxivID(e.ID)
		if id == "" {
			continue
		}

		var authors []string
		for _, au := range e.Authors {
			if len(authors) == arxivMaxAuthors {
				break
			}
			if n := strings.TrimSpace(au.Name); n != "" {
				authors = append(authors, n)
			}
		}
		var cats []string
		for _, c := range e.Categories {
			if c.Term != "" {
				cats = append(cats, c.Term)
			}
		}

		date := strings.TrimSpace(e.Published)
		if len(date) > 10 {
			date = date[:10]
		}

		out = append(out, types.RawRecord{
			Source:     "arXiv",
			ID:         id,
			Title:      e.Title,
			Authors:    strings.Join(authors, ", "),
			Abstract:   e.Summary,
			URL:        "https://arxiv.org/abs/" + id,
			PDFURL:     "https://arxiv.org/pdf/" + id,
			Date:       date,
			Categories: cats,
		})
	}
	return out, nil
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" becomes "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := strings.TrimSpace(idURL[idx+len(prefix):])

	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
