package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Feed names an RSS or Atom feed.
type Feed struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Journal names a journal indexed by CrossRef.
type Journal struct {
	Name string `json:"name" yaml:"name"`
	ISSN string `json:"issn" yaml:"issn"`
}

// SourcesConfig holds settings for the source fetchers.
type SourcesConfig struct {
	HTTPConfig `yaml:",inline"`

	// DaysBack is the recency window; older items are discarded.
	DaysBack int `json:"days_back" yaml:"days_back"`

	// RequestDelay is the pause between consecutive requests to one source.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// MaxPerSource caps the records each source contributes, in source order.
	MaxPerSource int `json:"max_per_source" yaml:"max_per_source"`

	EnableArxiv    bool `json:"enable_arxiv" yaml:"enable_arxiv"`
	EnableNBER     bool `json:"enable_nber" yaml:"enable_nber"`
	EnableJournals bool `json:"enable_journals" yaml:"enable_journals"`
	EnableCrossRef bool `json:"enable_crossref" yaml:"enable_crossref"`
	EnableNEP      bool `json:"enable_nep" yaml:"enable_nep"`

	ArxivAPIURL string `json:"arxiv_api_url" yaml:"arxiv_api_url"`

	// ArxivCategories are listed newest-first, one request each.
	ArxivCategories []string `json:"arxiv_categories" yaml:"arxiv_categories"`

	// ArxivQueries are title searches restricted to ArxivSearchCategories.
	ArxivQueries          []string `json:"arxiv_queries" yaml:"arxiv_queries"`
	ArxivSearchCategories []string `json:"arxiv_search_categories" yaml:"arxiv_search_categories"`

	NBERFeeds    []string `json:"nber_feeds" yaml:"nber_feeds"`
	JournalFeeds []Feed   `json:"journal_feeds" yaml:"journal_feeds"`
	NEPFeeds     []Feed   `json:"nep_feeds" yaml:"nep_feeds"`

	CrossRefJournals []Journal `json:"crossref_journals" yaml:"crossref_journals"`
	CrossRefMailto   string    `json:"crossref_mailto" yaml:"crossref_mailto"`
}

// Provider selects the enrichment backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
)

// SelectionPolicy names the rule that picks papers for enrichment.
type SelectionPolicy string

const (
	// PolicyGlobal selects the MaxAIPapers most relevant papers.
	PolicyGlobal SelectionPolicy = "global"
	// PolicyPerTopic selects papers while any of their topics is below PerTopicCap.
	PolicyPerTopic SelectionPolicy = "per-topic"
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-2.0-flash-lite"
	DefaultClaudeModel = "claude-3-5-haiku-latest"
)

// DefaultModel returns the model used for p when none is configured.
func DefaultModel(p Provider) string {
	if p == ProviderClaude {
		return DefaultClaudeModel
	}
	return DefaultGeminiModel
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	Provider Provider `json:"provider" yaml:"provider"`

	// Model is the AI model identifier (e.g. "gemini-2.0-flash-lite").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. Empty disables calls.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout bounds one call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ResolvedModel returns Model, or the provider's default when Model is
// empty or is the default of another provider (a provider switch that
// kept the built-in model).
func (c AIConfig) ResolvedModel() string {
	switch c.Model {
	case "", DefaultGeminiModel, DefaultClaudeModel:
		return DefaultModel(c.Provider)
	default:
		return c.Model
	}
}

// EnrichmentConfig holds settings for the AI enrichment stage.
type EnrichmentConfig struct {
	AIConfig `yaml:",inline"`

	Policy SelectionPolicy `json:"policy" yaml:"policy"`

	// MaxAIPapers is the per-run call budget under PolicyGlobal.
	MaxAIPapers int `json:"max_ai_papers" yaml:"max_ai_papers"`

	// PerTopicCap is K under PolicyPerTopic.
	PerTopicCap int `json:"per_topic_cap" yaml:"per_topic_cap"`

	// CallDelay is the fixed pause between successive calls.
	CallDelay time.Duration `json:"call_delay" yaml:"call_delay"`

	// MinAbstractLen is the shortest abstract worth sending.
	MinAbstractLen int `json:"min_abstract_len" yaml:"min_abstract_len"`
}

// ReportConfig holds output locations and sizes.
type ReportConfig struct {
	DataDir    string `json:"data_dir" yaml:"data_dir"`
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
	ChartsDir  string `json:"charts_dir" yaml:"charts_dir"`

	// MaxCandidates caps how many papers enter scoring and enrichment.
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`

	// MaxPapersInReport caps the papers rendered in the HTML digest.
	MaxPapersInReport int `json:"max_papers_in_report" yaml:"max_papers_in_report"`
}

// DigestConfig groups all stage configurations for one run.
type DigestConfig struct {
	Sources    SourcesConfig    `json:"sources" yaml:"sources"`
	Enrichment EnrichmentConfig `json:"enrichment" yaml:"enrichment"`
	Report     ReportConfig     `json:"report" yaml:"report"`

	// TaxonomyFile optionally replaces the built-in topic taxonomy.
	TaxonomyFile string `json:"taxonomy_file,omitempty" yaml:"taxonomy_file,omitempty"`
}

// DefaultDigestConfig returns the settings used when no config file is present.
func DefaultDigestConfig() DigestConfig {
	return DigestConfig{
		Sources: SourcesConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   20 * time.Second,
				UserAgent: "paper-digest/0.1 (research digest)",
			},
			DaysBack:       7,
			RequestDelay:   500 * time.Millisecond,
			MaxPerSource:   60,
			EnableArxiv:    true,
			EnableNBER:     true,
			EnableJournals: true,
			EnableCrossRef: true,
			EnableNEP:      false,
			ArxivAPIURL:    "https://export.arxiv.org/api/query",
			ArxivCategories: []string{
				"q-fin.TR", "q-fin.PM", "q-fin.RM", "q-fin.ST", "q-fin.GN", "q-fin.CP",
			},
			ArxivQueries: []string{
				"ti:transformer AND ti:stock",
				"ti:reinforcement learning AND ti:trading",
				"ti:deep learning AND ti:portfolio",
				"ti:LSTM AND ti:financial",
				"ti:LLM AND ti:finance",
				"ti:neural AND ti:asset pricing",
				"ti:machine learning AND ti:factor",
				"ti:gender AND ti:finance",
				"ti:CEO AND ti:corporate",
			},
			ArxivSearchCategories: []string{"cs.LG", "stat.ML", "econ.GN", "q-fin.GN"},
			NBERFeeds: []string{
				"https://www.nber.org/rss/new.xml",
			},
			JournalFeeds: []Feed{
				{Name: "JF", URL: "https://onlinelibrary.wiley.com/feed/15406261/most-recent"},
				{Name: "JFE", URL: "https://rss.sciencedirect.com/publication/science/0304405X"},
				{Name: "RFS", URL: "https://academic.oup.com/rss/site_5504/3365.xml"},
				{Name: "AER", URL: "https://www.aeaweb.org/journals/aer/rss"},
				{Name: "JPE", URL: "https://www.journals.uchicago.edu/action/showFeed?type=etoc&feed=rss&jc=jpe"},
				{Name: "MS", URL: "https://pubsonline.informs.org/action/showFeed?type=etoc&feed=rss&jc=mnsc"},
			},
			NEPFeeds: []Feed{
				{Name: "nep-fmk", URL: "https://nep.repec.org/rss/nep-fmk.rss.xml"},
				{Name: "nep-cfn", URL: "https://nep.repec.org/rss/nep-cfn.rss.xml"},
				{Name: "nep-big", URL: "https://nep.repec.org/rss/nep-big.rss.xml"},
			},
			CrossRefJournals: []Journal{
				{Name: "QJE", ISSN: "0033-5533"},
				{Name: "ReStud", ISSN: "0034-6527"},
				{Name: "JFQA", ISSN: "0022-1090"},
			},
		},
		Enrichment: EnrichmentConfig{
			AIConfig: AIConfig{
				Provider:    ProviderGemini,
				Model:       DefaultGeminiModel,
				MaxTokens:   350,
				Temperature: 0.2,
				Timeout:     30 * time.Second,
			},
			Policy:         PolicyGlobal,
			MaxAIPapers:    10,
			PerTopicCap:    2,
			CallDelay:      5 * time.Second,
			MinAbstractLen: 50,
		},
		Report: ReportConfig{
			DataDir:           "data",
			ReportsDir:        "reports",
			ChartsDir:         "charts",
			MaxCandidates:     30,
			MaxPapersInReport: 30,
		},
	}
}

// Validate checks the settings that would otherwise fail late in a run.
func (c DigestConfig) Validate() error {
	if c.Sources.DaysBack < 0 {
		return fmt.Errorf("sources.days_back must be >= 0, got %d", c.Sources.DaysBack)
	}
	switch c.Enrichment.Provider {
	case ProviderGemini, ProviderClaude:
	default:
		return fmt.Errorf("unsupported enrichment provider %q: use gemini or claude", c.Enrichment.Provider)
	}
	switch c.Enrichment.Policy {
	case PolicyGlobal:
		if c.Enrichment.MaxAIPapers < 0 {
			return fmt.Errorf("enrichment.max_ai_papers must be >= 0, got %d", c.Enrichment.MaxAIPapers)
		}
	case PolicyPerTopic:
		if c.Enrichment.PerTopicCap < 1 {
			return fmt.Errorf("enrichment.per_topic_cap must be >= 1, got %d", c.Enrichment.PerTopicCap)
		}
	default:
		return fmt.Errorf("unsupported selection policy %q: use global or per-topic", c.Enrichment.Policy)
	}
	if c.Enrichment.CallDelay < 0 {
		return fmt.Errorf("enrichment.call_delay must be >= 0")
	}
	if c.Report.DataDir == "" || c.Report.ReportsDir == "" || c.Report.ChartsDir == "" {
		return fmt.Errorf("report directories must not be empty")
	}
	return nil
}
