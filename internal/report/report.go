// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the static HTML digest and its SVG charts.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/paper-digest/internal/insights"
	"github.com/pdiddy/paper-digest/internal/taxonomy"
	"github.com/pdiddy/paper-digest/pkg/types"
)

//go:embed templates/digest.html.tmpl
var templateFS embed.FS

var digestTmpl = template.Must(template.ParseFS(templateFS, "templates/digest.html.tmpl"))

// LatestName is the stable alias of the newest digest.
const LatestName = "latest.html"

const excerptRunes = 280

// Options configures a Renderer.
type Options struct {
	ReportsDir string
	ChartsDir  string

	// MaxPapers caps the cards in the digest. Zero means all.
	MaxPapers int

	Taxonomy taxonomy.Taxonomy
}

// Renderer writes digests.
type Renderer struct {
	opts Options
}

// NewRenderer returns a Renderer.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Input is everything one digest shows.
type Input struct {
	Date        string
	RunID       string
	GeneratedAt time.Time
	Papers      []types.Paper
	Insights    types.Insights
}

// Output lists the files written.
type Output struct {
	ReportPath string
	LatestPath string
	ChartPaths []string
}

type labelCount struct {
	Label string
	Color string
	Count int
}

type topicBadge struct {
	Label string
	Color string
}

type paperCard struct {
	types.Paper
	Color   string
	Topics  []topicBadge
	Excerpt string
	Summary string
	Note    string
}

type digestView struct {
	DisplayDate string
	RunID       string
	Generated   string
	Insights    types.Insights
	Sources     []labelCount
	Topics      []labelCount
	Charts      []template.HTML
	Papers      []paperCard
}

// Render writes charts/DATE/*.svg, reports/digest_DATE.html and
// reports/latest.html.
func (r *Renderer) Render(in Input) (Output, error) {
	var out Output

	charts := BuildCharts(in.Papers, in.Insights, r.opts.Taxonomy)
	chartDir := filepath.Join(r.opts.ChartsDir, in.Date)
	if len(charts) > 0 {
		if err := os.MkdirAll(chartDir, 0o755); err != nil {
			return out, fmt.Errorf("creating chart directory: %w", err)
		}
	}

	view := digestView{
		DisplayDate: displayDate(in.Date),
		RunID:       in.RunID,
		Generated:   in.GeneratedAt.Format("2006-01-02 15:04 MST"),
		Insights:    in.Insights,
	}
	for _, c := range charts {
		svg, err := c.SVG()
		if err != nil {
			return out, err
		}
		path := filepath.Join(chartDir, c.Name+".svg")
		if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
			return out, fmt.Errorf("writing chart %s: %w", c.Name, err)
		}
		out.ChartPaths = append(out.ChartPaths, path)
		// Rendered by svgTmpl, which escapes every interpolated value.
		view.Charts = append(view.Charts, template.HTML(svg))
	}

	for _, c := range insights.Ranked(in.Insights.SourceDistribution) {
		view.Sources = append(view.Sources, labelCount{Label: c.Key, Color: SourceColor(c.Key), Count: c.Count})
	}
	for _, c := range insights.Ranked(in.Insights.TopicDistribution) {
		view.Topics = append(view.Topics, labelCount{
			Label: r.opts.Taxonomy.Label(c.Key),
			Color: r.opts.Taxonomy.Color(c.Key),
			Count: c.Count,
		})
	}

	ranked := insights.ByImportance(in.Papers)
	if r.opts.MaxPapers > 0 && len(ranked) > r.opts.MaxPapers {
		ranked = ranked[:r.opts.MaxPapers]
	}
	for _, p := range ranked {
		view.Papers = append(view.Papers, r.card(p))
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, view); err != nil {
		return out, fmt.Errorf("rendering digest: %w", err)
	}

	if err := os.MkdirAll(r.opts.ReportsDir, 0o755); err != nil {
		return out, fmt.Errorf("creating reports directory: %w", err)
	}
	out.ReportPath = filepath.Join(r.opts.ReportsDir, "digest_"+in.Date+".html")
	if err := os.WriteFile(out.ReportPath, buf.Bytes(), 0o644); err != nil {
		return out, fmt.Errorf("writing digest: %w", err)
	}
	out.LatestPath = filepath.Join(r.opts.ReportsDir, LatestName)
	if err := os.WriteFile(out.LatestPath, buf.Bytes(), 0o644); err != nil {
		return out, fmt.Errorf("writing %s: %w", LatestName, err)
	}
	return out, nil
}

func (r *Renderer) card(p types.Paper) paperCard {
	c := paperCard{
		Paper:   p,
		Color:   SourceColor(p.Source),
		Excerpt: shorten(p.Abstract, excerptRunes),
		Note:    p.AINote,
	}
	if p.URL == "" {
		c.URL = "#"
	}
	if c.Excerpt == "" {
		c.Excerpt = "No abstract."
	}
	if p.AISummary != nil {
		c.Summary = *p.AISummary
	}
	topics := p.MatchedTopics
	if len(topics) > 4 {
		topics = topics[:4]
	}
	for _, t := range topics {
		c.Topics = append(c.Topics, topicBadge{Label: r.opts.Taxonomy.Label(t), Color: r.opts.Taxonomy.Color(t)})
	}
	return c
}

func displayDate(date string) string {
	t, err := time.Parse(types.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
