package item

import (
	"fmt"
	"strings"
	"time"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/usecase/settings"
)

const (
	uncategorizedName = "Uncategorized"
	fallbackIcon      = "mdi-folder"
)

// Display is an item enriched with the presentation fields a client renders.
type Display struct {
	domain.Item
	DisplayNumber string `json:"displayNumber"`
	CategoryName  string `json:"categoryName"`
	CategoryIcon  string `json:"categoryIcon"`
	StatusText    string `json:"statusText"`
	StatusColor   string `json:"statusColor"`
	PriorityText  string `json:"priorityText"`
	PriorityColor string `json:"priorityColor"`
	PriorityIcon  string `json:"priorityIcon"`
	IsOverdue     bool   `json:"isOverdue"`
	RemainingDays *int   `json:"remainingDays"`
	RemainingText string `json:"remainingText,omitempty"`
}

// DisplayNumber is the custom number, or "#" and the last eight id characters upper-cased.
func DisplayNumber(it domain.Item) string {
	if it.CustomNumber != "" {
		return it.CustomNumber
	}
	id := it.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "#" + strings.ToUpper(id)
}

func ToDisplay(it domain.Item, category *domain.Category, labels settings.Typed, now time.Time) Display {
	status := labels.StatusLabel(it.Status)
	priority := labels.PriorityLabel(it.Priority)
	d := Display{
		Item:          it,
		DisplayNumber: DisplayNumber(it),
		CategoryName:  uncategorizedName,
		CategoryIcon:  fallbackIcon,
		StatusText:    status.Text,
		StatusColor:   status.Color,
		PriorityText:  priority.Text,
		PriorityColor: priority.Color,
		PriorityIcon:  priority.Icon,
		IsOverdue:     it.IsOverdue(now),
	}
	if category != nil {
		d.CategoryName = category.Name
		if category.Icon != "" {
			d.CategoryIcon = category.Icon
		}
	}
	if !it.EndDate.IsZero() {
		days := RemainingDays(it.EndDate, now)
		d.RemainingDays = &days
		d.RemainingText = RemainingText(days)
	}
	return d
}

// RemainingDays counts calendar days from today (UTC) to end; negative when past.
func RemainingDays(end domain.Date, now time.Time) int {
	today := domain.NewDate(now.UTC()).Time()
	return int(end.Time().Sub(today).Hours() / 24)
}

func RemainingText(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("overdue by %d days", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	}
	return fmt.Sprintf("due in %d days", days)
}

// FullInfo renders a plain-text summary suitable for copying.
func FullInfo(d Display) string {
	orNone := func(s string) string {
		if s == "" {
			return "none"
		}
		return s
	}
	stamp := func(t time.Time) string {
		if t.IsZero() {
			return "unknown"
		}
		return t.Format(time.DateTime)
	}
	end := d.EndDate.String()
	if end == "" {
		end = "not set"
	}
	lines := []string{
		"Number: " + d.DisplayNumber,
		"Title: " + d.Title,
		"Description: " + orNone(d.Description),
		"Status: " + d.StatusText,
		"Priority: " + d.PriorityText,
		"End date: " + end,
		"Category: " + d.CategoryName,
		"Tags: " + orNone(strings.Join(d.Tags, ", ")),
		"Created: " + stamp(d.CreatedAt),
		"Updated: " + stamp(d.UpdatedAt),
	}
	return strings.Join(lines, "\n")
}
