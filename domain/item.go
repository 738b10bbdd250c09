package domain

import (
	"encoding/json"
	"time"
)

// Item is a todo entry owned by a regular category.
type Item struct {
	ID           string            `json:"id" yaml:"id"`
	CategoryID   string            `json:"categoryId" yaml:"category_id"`
	Title        string            `json:"title" yaml:"title"`
	CustomNumber string            `json:"customNumber" yaml:"custom_number,omitempty"`
	Description  string            `json:"description" yaml:"description,omitempty"`
	Priority     Priority          `json:"priority" yaml:"priority"`
	Status       Status            `json:"status" yaml:"status"`
	Tags         []string          `json:"tags" yaml:"tags,omitempty"`
	EndDate      Date              `json:"endDate" yaml:"end_date,omitempty"`
	Assignee     *string           `json:"assignee" yaml:"assignee,omitempty"`
	Attachments  []json.RawMessage `json:"attachments" yaml:"-"`
	Archived     bool              `json:"archived" yaml:"archived"`
	CreatedAt    time.Time         `json:"createdAt" yaml:"created_at"`
	UpdatedAt    time.Time         `json:"updatedAt" yaml:"updated_at"`
}

// IsCompleted reports whether the item is in the completed state.
func (i *Item) IsCompleted() bool {
	return i != nil && i.Status == StatusCompleted
}

// IsOverdue reports whether the end date lies before today and the item is still open.
func (i *Item) IsOverdue(now time.Time) bool {
	if i == nil || i.EndDate.IsZero() || i.Status == StatusCompleted {
		return false
	}
	return i.EndDate.Before(NewDate(now.UTC()))
}

// Clone returns a copy with fresh tag and attachment slices, never nil.
func (i Item) Clone() Item {
	out := i
	out.Tags = copyStrings(i.Tags)
	out.Attachments = make([]json.RawMessage, 0, len(i.Attachments))
	for _, a := range i.Attachments {
		out.Attachments = append(out.Attachments, append(json.RawMessage(nil), a...))
	}
	if i.Assignee != nil {
		v := *i.Assignee
		out.Assignee = &v
	}
	return out
}

func (i *Item) Touch(now time.Time) {
	i.UpdatedAt = now
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
}

// SimpleItem is a status-only card owned by a simple-todo category.
type SimpleItem struct {
	ID         string       `json:"id"`
	CategoryID string       `json:"categoryId"`
	Title      string       `json:"title"`
	Status     SimpleStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

func (s *SimpleItem) Touch(now time.Time) {
	s.UpdatedAt = now
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
}
