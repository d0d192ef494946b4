// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/pdiddy/paper-digest/internal/insights"
	"github.com/pdiddy/paper-digest/internal/taxonomy"
	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	defaultColor   = "#8b949e"
	chartWidth     = 640
	chartRowHeight = 28
	chartLabelW    = 230
	chartTop       = 44
	maxChartRows   = 8
	maxTitleRunes  = 42
)

var sourceColors = map[string]string{
	"NBER":  "#e94560",
	"SSRN":  "#00b4d8",
	"arXiv": "#f5a623",
}

var methodColors = map[string]string{
	taxonomy.MethodMachineLearning: "#06d6a0",
	taxonomy.MethodEmpirical:       "#00b4d8",
	taxonomy.MethodTheoretical:     "#7b2d8b",
	taxonomy.MethodTextAnalysis:    "#f5a623",
	taxonomy.MethodHighFrequency:   "#e94560",
	taxonomy.MethodPortfolio:       "#45b7d1",
	taxonomy.MethodCausalInference: "#ff9f43",
}

// SourceColor returns the accent color for a source.
func SourceColor(source string) string {
	if c, ok := sourceColors[source]; ok {
		return c
	}
	return defaultColor
}

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	Text  string
	Color string
}

// Chart is a titled horizontal bar chart rendered as standalone SVG.
type Chart struct {
	// Name is the file stem, e.g. "topic_distribution".
	Name  string
	Title string
	Bars  []Bar
}

type svgRow struct {
	Bar
	Y, W, TextX, TextY int
}

var svgTmpl = template.Must(template.New("chart").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="system-ui, sans-serif">
<rect width="100%" height="100%" fill="#161b22" rx="8"/>
<text x="16" y="26" fill="#f0f6fc" font-size="15" font-weight="bold">{{.Title}}</text>
{{- range .Rows}}
<text x="{{$.LabelX}}" y="{{.TextY}}" fill="#c9d1d9" font-size="12" text-anchor="end">{{.Label}}</text>
<rect x="{{$.BarX}}" y="{{.Y}}" width="{{.W}}" height="18" fill="{{.Color}}" rx="3"/>
<text x="{{.TextX}}" y="{{.TextY}}" fill="#f0f6fc" font-size="12">{{.Text}}</text>
{{- end}}
</svg>
`))

// SVG renders the chart. An empty chart renders an empty panel.
func (c Chart) SVG() (string, error) {
	bars := c.Bars
	if len(bars) > maxChartRows {
		bars = bars[:maxChartRows]
	}
	maxVal := 0.0
	for _, b := range bars {
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}

	barX := chartLabelW + 10
	span := chartWidth - barX - 50
	rows := make([]svgRow, len(bars))
	for i, b := range bars {
		w := 0
		if maxVal > 0 {
			w = int(b.Value / maxVal * float64(span))
		}
		y := chartTop + i*chartRowHeight
		rows[i] = svgRow{Bar: b, Y: y, W: w, TextX: barX + w + 6, TextY: y + 14}
	}

	var buf bytes.Buffer
	err := svgTmpl.Execute(&buf, map[string]any{
		"Width":  chartWidth,
		"Height": chartTop + len(rows)*chartRowHeight + 12,
		"Title":  c.Title,
		"Rows":   rows,
		"LabelX": chartLabelW,
		"BarX":   barX,
	})
	if err != nil {
		return "", fmt.Errorf("rendering %s chart: %w", c.Name, err)
	}
	return buf.String(), nil
}

// BuildCharts derives the digest charts from the final papers and insights.
// Charts without data are omitted.
func BuildCharts(papers []types.Paper, in types.Insights, tax taxonomy.Taxonomy) []Chart {
	var charts []Chart

	if bars := countBars(in.TopicDistribution, tax.Label, tax.Color); len(bars) > 0 {
		charts = append(charts, Chart{Name: "topic_distribution", Title: "Research Topic Distribution", Bars: bars})
	}
	if bars := countBars(in.SourceDistribution, identity, SourceColor); len(bars) > 0 {
		charts = append(charts, Chart{Name: "source_breakdown", Title: "Papers by Source", Bars: bars})
	}

	top := in.TopPapers
	if len(top) == 0 {
		top = insights.ByImportance(papers)
	}
	if len(top) > maxChartRows {
		top = top[:maxChartRows]
	}
	if len(top) > 0 {
		bars := make([]Bar, len(top))
		for i, p := range top {
			bars[i] = Bar{
				Label: shorten(p.Title, maxTitleRunes),
				Value: p.ImportanceScore,
				Text:  fmt.Sprintf("%.1f", p.ImportanceScore),
				Color: SourceColor(p.Source),
			}
		}
		charts = append(charts, Chart{Name: "paper_scores", Title: "Top Papers by Importance", Bars: bars})
	}

	methodColor := func(m string) string {
		if c, ok := methodColors[m]; ok {
			return c
		}
		return defaultColor
	}
	if bars := countBars(in.MethodDistribution, taxonomy.DisplayName, methodColor); len(bars) > 0 {
		charts = append(charts, Chart{Name: "method_tags", Title: "Methodology Tags", Bars: bars})
	}
	return charts
}

func countBars(dist map[string]int, label, color func(string) string) []Bar {
	ranked := insights.Ranked(dist)
	bars := make([]Bar, 0, len(ranked))
	for _, c := range ranked {
		bars = append(bars, Bar{
			Label: label(c.Key),
			Value: float64(c.Count),
			Text:  fmt.Sprint(c.Count),
			Color: color(c.Key),
		})
	}
	return bars
}

func identity(s string) string { return s }

func shorten(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}
