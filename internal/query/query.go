// Package query implements the small set of named predicates the
// verification API composes over a store snapshot: topic equality,
// substring-within-body, and (via the store's own time-range query) time
// bounds. It intentionally does not implement a general filter expression
// language — nothing in this system's scope needs one.
package query

import (
	"strings"

	"github.com/dwalleck/TopicTracker/internal/model"
)

// Filter narrows a slice of records. A zero-value field means "no
// constraint on this dimension."
type Filter struct {
	Topic    string
	Contains string
}

// Apply returns the subset of records matching f, preserving relative
// order.
func Apply(records []model.Record, f Filter) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if f.Topic != "" && r.Topic != f.Topic {
			continue
		}
		if f.Contains != "" && !strings.Contains(r.Body, f.Contains) {
			continue
		}
		out = append(out, r)
	}
	return out
}
