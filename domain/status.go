package domain

import (
	"encoding/json"
	"strings"
)

// Status is the lifecycle state of an Item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "inProgress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// statusAliases maps historical spellings onto the canonical value. Older data written by the
// business layer used snake case while the configuration layer used camel case.
var statusAliases = map[string]Status{
	"in_progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"in-progress": StatusInProgress,
}

// NormalizeStatus maps a stored or user supplied status onto its canonical spelling.
// Unknown values are kept verbatim so that data written by newer versions survives a read.
func NormalizeStatus(raw string) Status {
	s := strings.TrimSpace(raw)
	if alias, ok := statusAliases[strings.ToLower(s)]; ok {
		return alias
	}
	return Status(s)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NormalizeStatus(raw)
	return nil
}

// OrDefault returns pending for an empty status.
func (s Status) OrDefault() Status {
	if s == "" {
		return StatusPending
	}
	return s
}

// Priority ranks an Item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// OrDefault returns medium for an empty priority.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// Rank orders priorities low < medium < high; unknown values sort with medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityHigh:
		return 2
	default:
		return 1
	}
}

// SimpleStatus is the column of a SimpleItem.
type SimpleStatus string

const (
	SimpleStatusTodo   SimpleStatus = "todo"
	SimpleStatusDoing  SimpleStatus = "doing"
	SimpleStatusDone   SimpleStatus = "done"
	SimpleStatusPaused SimpleStatus = "paused"
)

// SimpleStatuses lists the columns in board order.
var SimpleStatuses = []SimpleStatus{SimpleStatusTodo, SimpleStatusDoing, SimpleStatusDone, SimpleStatusPaused}

// OrDefault returns todo for an empty status.
func (s SimpleStatus) OrDefault() SimpleStatus {
	if s == "" {
		return SimpleStatusTodo
	}
	return s
}

func (s SimpleStatus) Valid() bool {
	for _, known := range SimpleStatuses {
		if s == known {
			return true
		}
	}
	return false
}
