// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup collapses papers indexed by more than one source.
package dedup

import (
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// KeyLength is the number of characters of the lowercased title that make
// up the dedup key. Titles that differ only after this prefix collapse.
const KeyLength = 60

// Key returns the dedup key for a title: its lowercase form truncated to
// KeyLength characters (runes, not bytes).
func Key(title string) string {
	r := []rune(strings.ToLower(title))
	if len(r) > KeyLength {
		r = r[:KeyLength]
	}
	return string(r)
}

// Deduplicate keeps the first paper for each key in encounter order and
// returns the survivors with the number removed. Papers with an empty
// title have no key and are dropped.
func Deduplicate(papers []types.Paper) ([]types.Paper, int) {
	seen := make(map[string]struct{}, len(papers))
	out := make([]types.Paper, 0, len(papers))
	removed := 0

	for _, p := range papers {
		k := Key(p.Title)
		if k == "" {
			removed++
			continue
		}
		if _, ok := seen[k]; ok {
			removed++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out, removed
}
