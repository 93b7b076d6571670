// Package directory maps free-text payer aliases to canonical identifiers.
package directory

import (
	"sort"
	"strings"
)

// Entry maps one alias to a canonical payer identifier. Aliases are
// free text: full names, short names, digit suffixes, or keywords.
type Entry struct {
	Alias     string
	Canonical string
}

// Listing is one row of the human-readable directory.
type Listing struct {
	DisplayName string
	Canonical   string
}

// Resolver provides longest-match alias lookup over a static table.
// Read-only after construction; safe for concurrent use.
type Resolver struct {
	entries []Entry           // aliases upper-cased, sorted by descending length
	byAlias map[string]string // normalized alias -> canonical, for exact lookup
}

// NewResolver builds a Resolver from directory entries. Aliases are
// case-normalized; ordering is fixed at construction so a longer,
// more specific alias always wins over a shorter one it contains.
func NewResolver(entries []Entry) *Resolver {
	normalized := make([]Entry, 0, len(entries))
	byAlias := make(map[string]string, len(entries))
	for _, e := range entries {
		alias := strings.ToUpper(strings.TrimSpace(e.Alias))
		if alias == "" {
			continue
		}
		normalized = append(normalized, Entry{Alias: alias, Canonical: e.Canonical})
		if _, ok := byAlias[alias]; !ok {
			byAlias[alias] = e.Canonical
		}
	}
	sort.SliceStable(normalized, func(i, j int) bool {
		return len(normalized[i].Alias) > len(normalized[j].Alias)
	})
	return &Resolver{entries: normalized, byAlias: byAlias}
}

// Resolve returns the canonical identifier of the longest alias that
// occurs as a substring of text, or "" and false if none match.
func (r *Resolver) Resolve(text string) (string, bool) {
	upper := strings.ToUpper(text)
	for _, e := range r.entries {
		if strings.Contains(upper, e.Alias) {
			return e.Canonical, true
		}
	}
	return "", false
}

// ResolveExact returns the canonical identifier for text only when
// the whole text, case-normalized, equals a known alias. Manual
// entries use this: a hand-typed identifier that merely contains an
// alias (say, a digit-suffix one) must be stored verbatim.
func (r *Resolver) ResolveExact(text string) (string, bool) {
	canonical, ok := r.byAlias[strings.ToUpper(strings.TrimSpace(text))]
	return canonical, ok
}

// List returns one row per canonical identifier, keyed by its longest
// alias, skipping aliases shorter than minAliasLen (digit suffixes and
// keywords make poor display names). Rows keep the resolver's
// longest-first order.
func (r *Resolver) List(minAliasLen int) []Listing {
	seen := make(map[string]bool, len(r.entries))
	var rows []Listing
	for _, e := range r.entries {
		if len(e.Alias) < minAliasLen {
			continue
		}
		if seen[e.Canonical] {
			continue
		}
		seen[e.Canonical] = true
		rows = append(rows, Listing{DisplayName: e.Alias, Canonical: e.Canonical})
	}
	return rows
}

// Len returns the number of aliases in the table.
func (r *Resolver) Len() int {
	return len(r.entries)
}
