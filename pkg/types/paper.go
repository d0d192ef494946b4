// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-digest pipeline:
// raw source records, the canonical Paper, batch insights, and the
// configuration of each stage.
package types

// DateLayout is the calendar-date format used for Paper.Date and snapshot keys.
const DateLayout = "2006-01-02"

// RawRecord is an item as returned by a source fetcher, before normalization.
// Only Source and Title are required; everything else may be empty.
type RawRecord struct {
	Source     string   `json:"source" yaml:"source"`
	ID         string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title      string   `json:"title" yaml:"title"`
	Authors    string   `json:"authors,omitempty" yaml:"authors,omitempty"`
	Abstract   string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	URL        string   `json:"url,omitempty" yaml:"url,omitempty"`
	PDFURL     string   `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
	Date       string   `json:"date,omitempty" yaml:"date,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// EnrichmentStatus records what happened to a paper during AI enrichment.
type EnrichmentStatus string

const (
	// EnrichmentPending means the paper has not been through selection yet.
	EnrichmentPending EnrichmentStatus = ""
	// EnrichmentDone means the collaborator returned a summary.
	EnrichmentDone EnrichmentStatus = "enriched"
	// EnrichmentFailed means the paper was selected but the call did not produce a summary.
	EnrichmentFailed EnrichmentStatus = "failed"
	// EnrichmentSkipped means the paper was not selected, or was not eligible for a call.
	EnrichmentSkipped EnrichmentStatus = "skipped"
)

// Paper is the canonical unit of work. The fields below Categories are
// derived by the pipeline; a source never sets them.
type Paper struct {
	// ID is source-qualified: a DOI, URL, or accession such as an arXiv ID.
	ID string `json:"id" yaml:"id"`

	// Source identifies the origin (e.g. "arXiv", "NBER", "JF", "NEP:nep-fmk").
	Source string `json:"source" yaml:"source"`

	Title    string `json:"title" yaml:"title"`
	Authors  string `json:"authors" yaml:"authors"`
	Abstract string `json:"abstract" yaml:"abstract"`
	URL      string `json:"url" yaml:"url"`
	PDFURL   string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// Date is the source-reported calendar date in DateLayout.
	Date string `json:"date" yaml:"date"`

	// Categories are source-specific classifier codes in source order
	// (e.g. arXiv "q-fin.PM", "cs.LG").
	Categories []string `json:"categories" yaml:"categories"`

	// PrimaryCategory is the first category, kept for display.
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`

	// MatchedTopics are the taxonomy topics whose keywords occur in the
	// title or abstract, in taxonomy order.
	MatchedTopics []string `json:"matched_topics" yaml:"matched_topics"`

	// RelevanceScore is len(MatchedTopics) plus the core-category bonus.
	RelevanceScore int `json:"relevance_score" yaml:"relevance_score"`

	// AISummary is nil when the paper was not enriched or enrichment failed.
	AISummary *string `json:"ai_summary" yaml:"ai_summary"`

	// AITags are methodology tags derived from the summary and abstract.
	// Always empty when AISummary is nil.
	AITags []string `json:"ai_tags" yaml:"ai_tags"`

	AIStatus EnrichmentStatus `json:"ai_status,omitempty" yaml:"ai_status,omitempty"`

	// AINote explains a skipped or failed enrichment.
	AINote string `json:"ai_note,omitempty" yaml:"ai_note,omitempty"`

	// ImportanceScore is the final ranking key, rounded to two decimals.
	ImportanceScore float64 `json:"importance_score" yaml:"importance_score"`
}

// Enriched reports whether the paper carries an AI summary.
func (p Paper) Enriched() bool {
	return p.AISummary != nil
}

// HasCategoryPrefix reports whether any category starts with prefix.
func (p Paper) HasCategoryPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	for _, c := range p.Categories {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so pipeline stages can return updated values
// without aliasing the slices of their input.
func (p Paper) Clone() Paper {
	out := p
	out.Categories = cloneStrings(p.Categories)
	out.MatchedTopics = cloneStrings(p.MatchedTopics)
	out.AITags = cloneStrings(p.AITags)
	if p.AISummary != nil {
		s := *p.AISummary
		out.AISummary = &s
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
