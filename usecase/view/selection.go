// Package view holds the view selection state and derives the visible, sorted item list.
package view

import (
	"strings"

	"github.com/fastygo/tidydo/domain"
)

type SortField string

const (
	SortEndDate      SortField = "endDate"
	SortCreatedAt    SortField = "createdAt"
	SortUpdatedAt    SortField = "updatedAt"
	SortTitle        SortField = "title"
	SortCustomNumber SortField = "customNumber"
	SortStatus       SortField = "status"
	SortPriority     SortField = "priority"
)

func (f SortField) Valid() bool {
	switch f {
	case SortEndDate, SortCreatedAt, SortUpdatedAt, SortTitle, SortCustomNumber, SortStatus, SortPriority:
		return true
	}
	return false
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Selection is the UI-facing view state: what is selected, how it is sorted and filtered.
type Selection struct {
	SelectedCategoryID string                   `json:"selectedCategoryId"`
	ViewAll            bool                     `json:"viewAll"`
	SortField          SortField                `json:"sortField"`
	SortOrder          SortOrder                `json:"sortOrder"`
	SearchQuery        string                   `json:"searchQuery"`
	ShowArchived       bool                     `json:"showArchived"`
	Filter             *domain.FilterConditions `json:"filter"`
}

// Default returns the initial selection: nothing selected, sorted by end date ascending.
func Default() Selection {
	return Selection{SortField: SortEndDate, SortOrder: Asc}
}

func (s *Selection) EnterViewAll() {
	s.ViewAll = true
	s.SelectedCategoryID = ""
}

func (s *Selection) ExitViewAll() {
	s.ViewAll = false
}

// SelectCategory selects id. A non-empty id leaves view-all mode; a changed selection
// clears the search query.
func (s *Selection) SelectCategory(id string) {
	if id != "" {
		s.ViewAll = false
	}
	if id != s.SelectedCategoryID {
		s.SearchQuery = ""
	}
	s.SelectedCategoryID = id
}

// ToggleSort flips the direction when field is already the sort field, otherwise sorts
// ascending by field.
func (s *Selection) ToggleSort(field SortField) bool {
	if !field.Valid() {
		return false
	}
	if s.SortField == field {
		if s.SortOrder == Desc {
			s.SortOrder = Asc
		} else {
			s.SortOrder = Desc
		}
		return true
	}
	s.SortField = field
	s.SortOrder = Asc
	return true
}

func (s *Selection) SetSearch(query string) {
	s.SearchQuery = strings.TrimSpace(query)
}

func (s *Selection) SetFilter(conditions *domain.FilterConditions) {
	s.Filter = conditions.Clone()
}

func (s *Selection) ToggleShowArchived() {
	s.ShowArchived = !s.ShowArchived
}

// Initialize selects the first category when nothing is selected and view-all is off.
// categories must already be in display order.
func (s *Selection) Initialize(categories []domain.Category) {
	if s.SortField == "" {
		s.SortField = SortEndDate
	}
	if s.SortOrder == "" {
		s.SortOrder = Asc
	}
	if s.SelectedCategoryID != "" || s.ViewAll || len(categories) == 0 {
		return
	}
	s.SelectedCategoryID = categories[0].ID
}

// CategoriesUpdated repairs a selection whose category no longer exists.
func (s *Selection) CategoriesUpdated(categories []domain.Category) {
	if s.SelectedCategoryID == "" || findCategory(categories, s.SelectedCategoryID) != nil {
		return
	}
	next := ""
	if len(categories) > 0 {
		next = categories[0].ID
	}
	s.SelectCategory(next)
}

func findCategory(categories []domain.Category, id string) *domain.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
