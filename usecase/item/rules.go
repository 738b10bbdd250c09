package item

import (
	"fmt"
	"math"
	"time"

	"github.com/fastygo/tidydo/domain"
)

// CanCreate reports whether items may be created in category.
func CanCreate(category *domain.Category) domain.Decision {
	switch {
	case category == nil:
		return domain.Deny("select a category first")
	case category.IsFilterCategory:
		return domain.Deny("filter categories cannot hold items")
	case category.IsSimpleTodo:
		return domain.Deny("simple-todo categories hold simple items only")
	}
	return domain.Allow()
}

// CanEdit refuses archived items.
func CanEdit(item *domain.Item) domain.Decision {
	switch {
	case item == nil:
		return domain.Deny("item does not exist")
	case item.Archived:
		return domain.Deny("archived items cannot be edited")
	}
	return domain.Allow()
}

func CanDelete(item *domain.Item) domain.Decision {
	if item == nil {
		return domain.Deny("item does not exist")
	}
	return domain.Allow()
}

// CanDeleteCategory refuses while the category still owns items.
func CanDeleteCategory(category *domain.Category, items []domain.Item) domain.Decision {
	if category == nil {
		return domain.Deny("category does not exist")
	}
	owned := 0
	for _, it := range items {
		if it.CategoryID == category.ID {
			owned++
		}
	}
	if owned > 0 {
		return domain.Deny(fmt.Sprintf("category still holds %d items", owned))
	}
	return domain.Allow()
}

// Statistics summarises a list of items. CompletionRate is a rounded percentage.
type Statistics struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	InProgress     int `json:"inProgress"`
	Overdue        int `json:"overdue"`
	Archived       int `json:"archived"`
	CompletionRate int `json:"completionRate"`
}

func ComputeStatistics(items []domain.Item, now time.Time) Statistics {
	s := Statistics{Total: len(items)}
	for i := range items {
		it := &items[i]
		switch it.Status.OrDefault() {
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusPending:
			s.Pending++
		case domain.StatusInProgress:
			s.InProgress++
		}
		if it.IsOverdue(now) {
			s.Overdue++
		}
		if it.Archived {
			s.Archived++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

func validStatus(s domain.Status) bool {
	switch s {
	case domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled:
		return true
	}
	return false
}

func validPriority(p domain.Priority) bool {
	switch p {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
		return true
	}
	return false
}
