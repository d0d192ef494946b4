// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// minTitleLen filters navigation entries some publisher feeds include.
const minTitleLen = 5

// FeedSource reads a list of RSS 2.0, RSS 1.0 or Atom feeds. Each feed's
// Name becomes the Source of its records.
type FeedSource struct {
	name  string
	feeds []types.Feed
	opts  Options
}

// NewFeedSource returns a source reading feeds in order.
func NewFeedSource(name string, feeds []types.Feed, opts Options) *FeedSource {
	return &FeedSource{name: name, feeds: feeds, opts: opts}
}

// Name returns the source identifier.
func (f *FeedSource) Name() string { return f.name }

// Fetch reads every feed. A feed that fails is skipped.
func (f *FeedSource) Fetch(ctx context.Context) ([]types.RawRecord, error) {
	pacer := f.opts.pacer()
	var (
		out  []types.RawRecord
		errs []error
	)
	for _, feed := range f.feeds {
		pacer.Wait()
		body, err := f.opts.get(ctx, feed.URL, "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")
		if err != nil {
			errs = append(errs, fmt.Errorf("%s feed: %w", feed.Name, err))
			continue
		}
		records, err := ParseFeed(body, feed.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s feed: %w", feed.Name, err))
			continue
		}
		out = append(out, records...)
	}
	return out, errors.Join(errs...)
}

// feedDoc covers RSS 2.0 (<channel><item>), RSS 1.0 (<rdf:RDF><item>) and
// Atom (<feed><entry>) in one decode.
type feedDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
	Items   []rssItem   `xml:"item"`
	Entries []atomEntry `xml:"entry"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	Description string   `xml:"description"`
	Creators    []string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Author      string   `xml:"author"`
	PubDate     string   `xml:"pubDate"`
	DCDate      string   `xml:"http://purl.org/dc/elements/1.1/ date"`
}

type atomEntry struct {
	ID        string     `xml:"id"`
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// ParseFeed decodes a feed document into records attributed to source.
// Dates are passed through unparsed; normalization handles them.
func ParseFeed(body []byte, source string) ([]types.RawRecord, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	// No AutoClose: xml.HTMLAutoClose lists "link", which is a content
	// element in RSS.
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charsetReader

	var doc feedDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var out []types.RawRecord
	items := append(doc.Channel.Items, doc.Items...)
	for _, it := range items {
		r := types.RawRecord{
			Source:   source,
			Title:    strings.TrimSpace(it.Title),
			URL:      strings.TrimSpace(it.Link),
			Abstract: it.Description,
			Authors:  strings.Join(trimAll(it.Creators), ", "),
			Date:     firstNonEmpty(it.PubDate, it.DCDate),
		}
		if r.Authors == "" {
			r.Authors = strings.TrimSpace(it.Author)
		}
		r.ID = firstNonEmpty(it.GUID, r.URL)
		if keepTitle(r.Title) {
			out = append(out, r)
		}
	}
	for _, e := range doc.Entries {
		r := types.RawRecord{
			Source:   source,
			Title:    strings.TrimSpace(e.Title),
			URL:      atomHref(e.Links),
			Abstract: firstNonEmpty(e.Summary, e.Content),
			Date:     firstNonEmpty(e.Published, e.Updated),
		}
		var names []string
		for _, a := range e.Authors {
			names = append(names, a.Name)
		}
		r.Authors = strings.Join(trimAll(names), ", ")
		r.ID = firstNonEmpty(e.ID, r.URL)
		if keepTitle(r.Title) {
			out = append(out, r)
		}
	}
	return out, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

func atomHref(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "" || l.Rel == "alternate" {
			return strings.TrimSpace(l.Href)
		}
	}
	if len(links) > 0 {
		return strings.TrimSpace(links[0].Href)
	}
	return ""
}

func keepTitle(title string) bool {
	return len([]rune(title)) >= minTitleLen
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
