// Package view derives the rendered list for a collection from its
// canonical entities plus search, filter and sort parameters. The
// projection is a pure function: it is recomputed in full on any input
// change and never caches across calls.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/nmhoang/taskflow/internal/domain"
)

// Item is the minimal surface an entity exposes to the projection.
type Item interface {
	SearchFields() []string
	CreatedTime() time.Time
}

// Prioritized is implemented by entities that carry a priority.
// Entities without one (members) pass every priority filter.
type Prioritized interface {
	PriorityValue() domain.Priority
}

// Params selects and orders a collection for display.
type Params struct {
	// Query is matched case-insensitively as a substring against each
	// of the entity's search fields. Empty matches everything.
	Query string

	// Priority is domain.PriorityAll or a concrete priority value.
	Priority string

	// Sort is applied last, after both filters.
	Sort domain.SortOrder
}

// DefaultParams matches everything and groups by priority rank.
func DefaultParams() Params {
	return Params{Priority: domain.PriorityAll, Sort: domain.SortPriority}
}

// Project returns the filtered, sorted list to render. The input slice
// is not mutated; ties under the priority sort keep their pre-sort order.
func Project[T Item](items []T, p Params) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesQuery(item, p.Query) && matchesPriority(item, p.Priority) {
			out = append(out, item)
		}
	}

	switch p.Sort {
	case domain.SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return rankOf(out[i]) < rankOf(out[j])
		})
	case domain.SortAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedTime().Before(out[j].CreatedTime())
		})
	case domain.SortDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].CreatedTime().Before(out[i].CreatedTime())
		})
	}

	return out
}

func matchesQuery(item Item, query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchesPriority(item Item, filter string) bool {
	if filter == "" || filter == domain.PriorityAll {
		return true
	}
	prioritized, ok := any(item).(Prioritized)
	if !ok {
		return true
	}
	return prioritized.PriorityValue() == domain.Priority(filter)
}

func rankOf(item Item) int {
	prioritized, ok := any(item).(Prioritized)
	if !ok {
		return 0
	}
	return domain.PriorityRank(prioritized.PriorityValue())
}
