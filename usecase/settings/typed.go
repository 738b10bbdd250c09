package settings

import (
	"encoding/json"

	"github.com/fastygo/tidydo/domain"
)

// Label is the display text, colour and optional icon of a status or priority.
type Label struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

type Field struct {
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

type System struct {
	Theme      string `json:"theme"`
	Language   string `json:"language"`
	DateFormat string `json:"dateFormat"`
	TimeFormat string `json:"timeFormat"`
}

type AutoBackup struct {
	Enabled        bool   `json:"enabled"`
	BackupPath     string `json:"backupPath"`
	LastBackupDate string `json:"lastBackupDate"`
}

// Typed is the configuration document decoded into Go types.
type Typed struct {
	StatusConfig     map[domain.Status]Label   `json:"statusConfig"`
	PriorityConfig   map[domain.Priority]Label `json:"priorityConfig"`
	FieldConfig      map[string]Field          `json:"fieldConfig"`
	SystemConfig     System                    `json:"systemConfig"`
	AutoBackupConfig AutoBackup                `json:"autoBackupConfig"`
}

// Decode converts a merged configuration document into Typed.
func Decode(doc map[string]any) (Typed, error) {
	var typed Typed
	raw, err := json.Marshal(doc)
	if err != nil {
		return Typed{}, domain.WrapError(domain.ErrCodeValidation, "encode configuration", err)
	}
	if err := json.Unmarshal(raw, &typed); err != nil {
		return Typed{}, domain.WrapError(domain.ErrCodeValidation, "decode configuration", err)
	}
	return typed, nil
}

// StatusLabel returns the label for status, falling back to the raw value.
func (t Typed) StatusLabel(status domain.Status) Label {
	if l, ok := t.StatusConfig[status.OrDefault()]; ok {
		return l
	}
	return Label{Text: string(status)}
}

// PriorityLabel returns the label for priority, falling back to the raw value.
func (t Typed) PriorityLabel(priority domain.Priority) Label {
	if l, ok := t.PriorityConfig[priority.OrDefault()]; ok {
		return l
	}
	return Label{Text: string(priority)}
}
