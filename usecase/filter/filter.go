// Package filter decides which items satisfy a set of filter conditions.
package filter

import (
	"strings"

	"github.com/fastygo/tidydo/domain"
)

// Options carries view state that affects matching but is not part of the conditions.
type Options struct {
	ShowArchived bool
}

// Match reports whether item passes every gate of conditions. Gates run in order:
// archive, end date, status, category, tag. A nil conditions value imposes no constraint
// beyond the archive gate.
func Match(item domain.Item, conditions *domain.FilterConditions, opts Options) bool {
	if item.Archived && !opts.ShowArchived {
		return false
	}
	if conditions == nil {
		return true
	}
	return matchDate(item, conditions) &&
		matchStatus(item, conditions.Statuses) &&
		matchCategory(item, conditions.Categories) &&
		matchTags(item, conditions.Tags)
}

// Apply returns the items matching conditions, preserving input order.
func Apply(items []domain.Item, conditions *domain.FilterConditions, opts Options) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if Match(item, conditions, opts) {
			out = append(out, item)
		}
	}
	return out
}

// Items without an end date never satisfy a date bound.
func matchDate(item domain.Item, c *domain.FilterConditions) bool {
	if !c.HasDateBound() {
		return true
	}
	if item.EndDate.IsZero() {
		return false
	}
	if !c.EndDateFrom.IsZero() && item.EndDate.Before(c.EndDateFrom) {
		return false
	}
	if !c.EndDateTo.IsZero() && item.EndDate.After(c.EndDateTo) {
		return false
	}
	return true
}

func matchStatus(item domain.Item, statuses []domain.Status) bool {
	if len(statuses) == 0 {
		return true
	}
	status := item.Status.OrDefault()
	for _, s := range statuses {
		if domain.NormalizeStatus(string(s)) == status {
			return true
		}
	}
	return false
}

func matchCategory(item domain.Item, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, id := range categories {
		if id == item.CategoryID {
			return true
		}
	}
	return false
}

func matchTags(item domain.Item, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range item.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Search keeps items whose title, description, custom number or any tag contains query,
// ignoring case. An empty or blank query returns items unchanged.
func Search(items []domain.Item, query string) []domain.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if matchesQuery(item, q) {
			out = append(out, item)
		}
	}
	return out
}

func matchesQuery(item domain.Item, q string) bool {
	fields := []string{item.Title, item.Description, item.CustomNumber}
	fields = append(fields, item.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
