package domain

import "time"

// DefaultCategoryIcon is used when a category is created without an icon.
const DefaultCategoryIcon = "mdi-folder-outline"

// FilterConditions defines the membership of a filter category. Empty axes impose no constraint.
type FilterConditions struct {
	EndDateFrom Date     `json:"endDateFrom"`
	EndDateTo   Date     `json:"endDateTo"`
	Statuses    []Status `json:"statuses"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
}

// HasDateBound reports whether either end date bound is set.
func (c *FilterConditions) HasDateBound() bool {
	return c != nil && (!c.EndDateFrom.IsZero() || !c.EndDateTo.IsZero())
}

// Clone returns a deep copy with nil slices replaced by empty ones.
func (c *FilterConditions) Clone() *FilterConditions {
	if c == nil {
		return nil
	}
	return &FilterConditions{
		EndDateFrom: c.EndDateFrom,
		EndDateTo:   c.EndDateTo,
		Statuses:    append(make([]Status, 0, len(c.Statuses)), c.Statuses...),
		Categories:  copyStrings(c.Categories),
		Tags:        copyStrings(c.Tags),
	}
}

// Category groups items. Filter categories own nothing and compute membership from
// FilterConditions; simple-todo categories own SimpleItems instead of Items.
type Category struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Icon             string            `json:"icon"`
	IsExpanded       bool              `json:"isExpanded"`
	IsFilterCategory bool              `json:"isFilterCategory"`
	IsSimpleTodo     bool              `json:"isSimpleTodo"`
	FilterConditions *FilterConditions `json:"filterConditions"`
	Order            *int              `json:"order,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// OrderValue returns the order, and whether it was set.
func (c *Category) OrderValue() (int, bool) {
	if c == nil || c.Order == nil {
		return 0, false
	}
	return *c.Order, true
}

// SetOrder stores a copy of n.
func (c *Category) SetOrder(n int) {
	c.Order = &n
}

// Clone returns a copy that shares no mutable state with c.
func (c Category) Clone() Category {
	out := c
	out.FilterConditions = c.FilterConditions.Clone()
	if c.Order != nil {
		n := *c.Order
		out.Order = &n
	}
	return out
}

// Touch refreshes UpdatedAt and fills CreatedAt on first save.
func (c *Category) Touch(now time.Time) {
	c.UpdatedAt = now
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}

func copyStrings(in []string) []string {
	return append(make([]string, 0, len(in)), in...)
}
