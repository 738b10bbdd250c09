package view

import (
	"sort"
	"strings"
	"time"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/usecase/filter"
)

// Derive computes the visible item list for sel: base set, archive gate, ad-hoc filter,
// search, then a stable sort.
func Derive(sel Selection, categories []domain.Category, items []domain.Item) []domain.Item {
	opts := filter.Options{ShowArchived: sel.ShowArchived}

	base := items
	if !sel.ViewAll && sel.SelectedCategoryID != "" {
		if c := findCategory(categories, sel.SelectedCategoryID); c != nil {
			if c.IsFilterCategory {
				base = filter.Apply(items, c.FilterConditions, opts)
			} else {
				base = make([]domain.Item, 0)
				for _, it := range items {
					if it.CategoryID == c.ID {
						base = append(base, it)
					}
				}
			}
		}
	}

	visible := filter.Apply(base, sel.Filter, opts)
	visible = filter.Search(visible, sel.SearchQuery)
	Sort(visible, sel.SortField, sel.SortOrder)
	return visible
}

// Sort orders items in place. Zero dates sort last in either direction and ties keep
// their encounter order.
func Sort(items []domain.Item, field SortField, order SortOrder) {
	if field == "" {
		field = SortEndDate
	}
	desc := order == Desc
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ta, tb, ok := timeValues(a, b, field); ok {
			switch {
			case ta.IsZero():
				return false
			case tb.IsZero():
				return true
			}
			c := ta.Compare(tb)
			if desc {
				return c > 0
			}
			return c < 0
		}
		c := compareValues(a, b, field)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func timeValues(a, b domain.Item, field SortField) (time.Time, time.Time, bool) {
	switch field {
	case SortEndDate:
		return a.EndDate.Time(), b.EndDate.Time(), true
	case SortCreatedAt:
		return a.CreatedAt, b.CreatedAt, true
	case SortUpdatedAt:
		return a.UpdatedAt, b.UpdatedAt, true
	}
	return time.Time{}, time.Time{}, false
}

func compareValues(a, b domain.Item, field SortField) int {
	switch field {
	case SortPriority:
		return a.Priority.OrDefault().Rank() - b.Priority.OrDefault().Rank()
	case SortStatus:
		return strings.Compare(strings.ToLower(string(a.Status.OrDefault())), strings.ToLower(string(b.Status.OrDefault())))
	case SortCustomNumber:
		return strings.Compare(strings.ToLower(a.CustomNumber), strings.ToLower(b.CustomNumber))
	default:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
}
