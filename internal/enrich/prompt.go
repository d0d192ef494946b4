// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"bytes"
	"text/template"
)

// MaxAbstractChars bounds the abstract text sent in a summary prompt.
const MaxAbstractChars = 2000

// summaryPromptTmpl asks for a bilingual structured analysis of one paper.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are a research assistant for a PhD student in quantitative behavioral finance.

Given this paper, provide a BILINGUAL structured analysis (English first, then Chinese for each section):

Title: {{.Title}}
Authors: {{.Authors}}
Source: {{.Source}}
Abstract: {{.Abstract}}

---
**Abstract / 摘要**
[Plain-language English summary, 2-3 sentences, no jargon]

【中文摘要】
[同上，自然学术中文，2-3句]

---
**Core Contribution / 核心贡献**
[2-3 sentences English]

【核心贡献】
[2-3句中文]

---
**Methodology / 方法论**
[Data, model, identification, 1-2 sentences English]

【方法论】
[1-2句中文]

---
**Key Results / 主要发现**
• [Result 1]
• [Result 2]
• [Result 3]

【主要发现】
• [发现1]
• [发现2]
• [发现3]

---
**Relevance & Open Question / 相关性与开放问题**
[Connection to behavioral finance / asset pricing / quant trading / gender/corporate finance + one open question]

【相关性与开放问题】
[中文版]

Be precise and technical. Keep Chinese academic and natural, not machine-translated.`))

// narrativePromptTmpl asks for a short synthesis of the day's collection.
var narrativePromptTmpl = template.Must(template.New("narrative").Parse(`You are a research intelligence assistant for a quantitative behavioral finance PhD student.

Today's paper collection covers these topics: {{.Topics}}
Total papers: {{.Total}}

Top papers today:
{{.PaperList}}

In 4-5 sentences, synthesize: What are the most active research frontiers today?
Which methodological approaches are gaining traction?
Are there any emerging intersections between quant trading and behavioral/corporate finance?
Keep it sharp and insightful; the reader is a PhD student who publishes in top finance journals.`))

// PaperPrompt carries the fields of one paper that go into the summary prompt.
type PaperPrompt struct {
	Title    string
	Authors  string
	Source   string
	Abstract string
}

// NarrativePrompt carries the aggregate inputs of the narrative prompt.
type NarrativePrompt struct {
	// Topics is a rendered "Topic (count), ..." list.
	Topics string
	Total  int
	// PaperList is one "- [source] title" line per ranked paper.
	PaperList string
}

func renderSummaryPrompt(p PaperPrompt) (string, error) {
	p.Abstract = truncateRunes(p.Abstract, MaxAbstractChars)
	return render(summaryPromptTmpl, p)
}

func renderNarrativePrompt(n NarrativePrompt) (string, error) {
	return render(narrativePromptTmpl, n)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
