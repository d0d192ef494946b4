// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NarrativeFallback replaces the narrative when the aggregate enrichment
// call fails or returns nothing.
const NarrativeFallback = "Analysis unavailable."

// NarrativeDryRun is the narrative used when enrichment is disabled for the run.
const NarrativeDryRun = "Demo mode: run without --dry-run for AI analysis."

// Insights is the read-only roll-up of a run's final paper set.
type Insights struct {
	TopicDistribution  map[string]int `json:"topic_distribution" yaml:"topic_distribution"`
	MethodDistribution map[string]int `json:"method_distribution" yaml:"method_distribution"`
	SourceDistribution map[string]int `json:"source_distribution" yaml:"source_distribution"`

	// TopPapers holds the highest-importance papers. Snapshots omit it
	// because the full papers list is stored alongside.
	TopPapers []Paper `json:"top_papers,omitempty" yaml:"top_papers,omitempty"`

	Narrative   string `json:"narrative" yaml:"narrative"`
	TotalPapers int    `json:"total_papers" yaml:"total_papers"`
}

// WithoutTopPapers returns a copy of the insights suitable for persisting.
func (in Insights) WithoutTopPapers() Insights {
	in.TopPapers = nil
	return in
}
