// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy holds the immutable topic → keyword table used by the
// relevance filter, the importance scorer, and method tagging.
//
// Matching is substring containment on lowercased text, not token matching:
// "cta" matches inside "expectations". Callers rely on that exact behaviour.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Topic is one named cluster of keyword phrases.
type Topic struct {
	Name     string   `yaml:"name"`
	Label    string   `yaml:"label,omitempty"`
	Color    string   `yaml:"color,omitempty"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is an ordered, read-only set of topics. The zero value matches nothing.
type Taxonomy struct {
	topics []Topic
	index  map[string]int
}

// file is the on-disk YAML layout accepted by Load.
type file struct {
	Topics []Topic `yaml:"topics"`
}

// New validates topics and returns a Taxonomy. Keywords are lowercased and
// blank keywords dropped; topic order is preserved.
func New(topics []Topic) (Taxonomy, error) {
	t := Taxonomy{index: make(map[string]int, len(topics))}
	for i, tp := range topics {
		name := strings.TrimSpace(tp.Name)
		if name == "" {
			return Taxonomy{}, fmt.Errorf("topic %d: empty name", i)
		}
		if _, dup := t.index[name]; dup {
			return Taxonomy{}, fmt.Errorf("topic %q defined twice", name)
		}
		kws := make([]string, 0, len(tp.Keywords))
		for _, kw := range tp.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			return Taxonomy{}, fmt.Errorf("topic %q has no keywords", name)
		}
		t.index[name] = len(t.topics)
		t.topics = append(t.topics, Topic{Name: name, Label: tp.Label, Color: tp.Color, Keywords: kws})
	}
	return t, nil
}

// MustNew is New for package-level tables; it panics on invalid input.
func MustNew(topics []Topic) Taxonomy {
	t, err := New(topics)
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads a taxonomy from a YAML file with a top-level "topics" list.
func Load(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Taxonomy{}, fmt.Errorf("parsing taxonomy %s: %w", path, err)
	}
	if len(f.Topics) == 0 {
		return Taxonomy{}, fmt.Errorf("taxonomy %s defines no topics", path)
	}
	return New(f.Topics)
}

// Len returns the number of topics.
func (t Taxonomy) Len() int { return len(t.topics) }

// Topics returns a copy of the topics in declaration order.
func (t Taxonomy) Topics() []Topic {
	out := make([]Topic, len(t.topics))
	for i, tp := range t.topics {
		tp.Keywords = append([]string(nil), tp.Keywords...)
		out[i] = tp
	}
	return out
}

// Has reports whether name is a topic.
func (t Taxonomy) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Keywords returns the lowercased keywords of a topic.
func (t Taxonomy) Keywords(name string) ([]string, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), t.topics[i].Keywords...), true
}

// Match returns the names of all topics with at least one keyword contained
// in text, in taxonomy order. text is lowercased before matching.
func (t Taxonomy) Match(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, tp := range t.topics {
		for _, kw := range tp.Keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, tp.Name)
				break
			}
		}
	}
	return matched
}

// Label returns the short display label of a topic, falling back to
// DisplayName for topics without one.
func (t Taxonomy) Label(name string) string {
	if i, ok := t.index[name]; ok && t.topics[i].Label != "" {
		return t.topics[i].Label
	}
	return DisplayName(name)
}

// Color returns the chart colour of a topic.
func (t Taxonomy) Color(name string) string {
	if i, ok := t.index[name]; ok && t.topics[i].Color != "" {
		return t.topics[i].Color
	}
	return defaultColor
}

const defaultColor = "#8b949e"

// DisplayName turns an identifier like "behavioral_finance" into "Behavioral Finance".
func DisplayName(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}
