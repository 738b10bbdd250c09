package app

import (
	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/usecase/view"
)

// Selection returns the current view selection.
func (c *Container) Selection() view.Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Selection
}

// UpdateSelection applies fn to the selection under the state lock and returns the result.
func (c *Container) UpdateSelection(fn func(*view.Selection)) view.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state.Selection)
	return c.state.Selection
}

func (c *Container) SelectCategory(id string) view.Selection {
	return c.UpdateSelection(func(s *view.Selection) { s.SelectCategory(id) })
}

func (c *Container) EnterViewAll() view.Selection {
	return c.UpdateSelection(func(s *view.Selection) { s.EnterViewAll() })
}

// ExitViewAll leaves view-all mode and falls back to the first category when none is selected.
func (c *Container) ExitViewAll() view.Selection {
	return c.UpdateSelection(func(s *view.Selection) {
		s.ExitViewAll()
		s.Initialize(c.state.Categories)
	})
}

func (c *Container) ToggleSort(field view.SortField) view.Selection {
	return c.UpdateSelection(func(s *view.Selection) { s.ToggleSort(field) })
}

func (c *Container) SetSearch(query string) view.Selection {
	return c.UpdateSelection(func(s *view.Selection) { s.SetSearch(query) })
}

func (c *Container) SetFilter(conditions *domain.FilterConditions) view.Selection {
	return c.UpdateSelection(func(s *view.Selection) { s.SetFilter(conditions) })
}

func (c *Container) ToggleShowArchived() view.Selection {
	return c.UpdateSelection(func(s *view.Selection) { s.ToggleShowArchived() })
}
