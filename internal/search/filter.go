// Package search computes todo and group visibility for a text query.
package search

import (
	"strings"

	"github.com/sandeepkv93/todotree/internal/model"
)

// Filter remembers the last applied query so redraws with unchanged input do
// not rescan.
type Filter struct {
	prev    string
	scanned bool
}

// Normalize trims leading whitespace the same way the search bar does.
func Normalize(query string) string {
	return strings.TrimLeft(query, " \t")
}

// Apply recomputes visibility over groups when query differs from the last
// applied one and reports whether it did. An empty query cancels the search
// and makes everything visible again.
func (f *Filter) Apply(groups []*model.Group, query string) bool {
	q := Normalize(query)
	if f.scanned && q == f.prev {
		return false
	}
	if q == "" {
		ShowAll(groups)
	} else {
		Scan(groups, q)
	}
	f.prev = q
	f.scanned = true
	return true
}

// Active reports whether a non-empty query is in effect.
func (f *Filter) Active() bool {
	return f.prev != ""
}

func (f *Filter) Query() string {
	return f.prev
}

// Reset forgets the memoized query so the next Apply always rescans.
func (f *Filter) Reset() {
	f.scanned = false
}

// Scan sets each todo visible when its title contains q, ignoring case, and
// each group visible when any of its todos is.
func Scan(groups []*model.Group, q string) {
	needle := strings.ToLower(q)
	for _, g := range groups {
		hit := false
		for _, t := range g.Todos() {
			t.Visible = strings.Contains(strings.ToLower(t.Title), needle)
			if t.Visible {
				hit = true
			}
		}
		g.Visible = hit
	}
}

func ShowAll(groups []*model.Group) {
	for _, g := range groups {
		g.Visible = true
		for _, t := range g.Todos() {
			t.Visible = true
		}
	}
}
