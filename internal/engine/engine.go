// Package engine selects and ranks suggestion items for a situation.
//
// Select is a pure function of the catalog and the context: no hidden state,
// no randomness, no time-dependence. The same inputs always yield the same
// ordered result, which is what makes the output explainable to the user.
package engine

import (
	"sort"

	"github.com/azriel91/tears/internal/catalog"
)

// Context is the set of situational tags currently selected by the user.
// Insertion order is irrelevant; an empty context is valid and yields only
// universally applicable items.
type Context struct {
	tags map[string]struct{}
}

// NewContext builds a Context from raw tags. Tags are normalized and
// deduplicated; empties are dropped.
func NewContext(tags ...string) Context {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = catalog.Normalize(t)
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return Context{tags: set}
}

// ContextFor builds the two-tag context for a trust level and a mood,
// the situation descriptor the UI collects.
func ContextFor(trust catalog.Trust, mood catalog.Mood) Context {
	return NewContext(trust.Tag(), mood.Tag())
}

// With returns a copy of the context with additional tags selected.
func (c Context) With(tags ...string) Context {
	merged := make([]string, 0, len(c.tags)+len(tags))
	for t := range c.tags {
		merged = append(merged, t)
	}
	merged = append(merged, tags...)
	return NewContext(merged...)
}

// Has reports whether the normalized tag is selected.
func (c Context) Has(tag string) bool {
	_, ok := c.tags[catalog.Normalize(tag)]
	return ok
}

// Empty reports whether no tags are selected.
func (c Context) Empty() bool {
	return len(c.tags) == 0
}

// Tags returns the selected tags in ascending order, for display.
func (c Context) Tags() []string {
	tags := make([]string, 0, len(c.tags))
	for t := range c.tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Result is the ordered, deduplicated selection, partitioned by polarity.
// Empty partitions are valid results, not errors.
type Result struct {
	Do   []catalog.Item
	Dont []catalog.Item
}

// Select filters and ranks catalog items for the given context.
//
// An item is included if its tag set is empty (universally applicable) or
// shares at least one tag with the context. The match is deliberately
// permissive: overwhelmed situations benefit from broader suggestions, not
// narrower ones.
//
// Within each polarity, items are ordered by priority ascending, tie-broken
// by ID ascending. Duplicate IDs are dropped (first occurrence wins);
// validated catalogs never contain them, but Select stays total over raw
// item slices too.
func Select(items []catalog.Item, ctx Context) Result {
	var result Result
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		if !matches(item, ctx) {
			continue
		}
		seen[item.ID] = true

		switch item.Polarity {
		case catalog.Do:
			result.Do = append(result.Do, item)
		case catalog.Dont:
			result.Dont = append(result.Dont, item)
		}
	}

	rank(result.Do)
	rank(result.Dont)
	return result
}

// matches implements the any-match inclusion rule.
func matches(item catalog.Item, ctx Context) bool {
	if item.Universal() {
		return true
	}
	for _, tag := range item.Tags {
		if ctx.Has(tag) {
			return true
		}
	}
	return false
}

// rank sorts a partition by priority ascending, then ID ascending.
// The sort is fully deterministic: the tie-break leaves no equal elements.
func rank(items []catalog.Item) {
	sort.Slice(items, func(a, b int) bool {
		if items[a].Priority != items[b].Priority {
			return items[a].Priority < items[b].Priority
		}
		return items[a].ID < items[b].ID
	})
}
