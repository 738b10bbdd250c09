package settings

// Top-level sections of the app configuration document.
const (
	SectionStatus     = "statusConfig"
	SectionPriority   = "priorityConfig"
	SectionField      = "fieldConfig"
	SectionSystem     = "systemConfig"
	SectionAutoBackup = "autoBackupConfig"
)

// Sections lists the sections Update accepts.
var Sections = []string{SectionStatus, SectionPriority, SectionField, SectionSystem, SectionAutoBackup}

// Defaults returns a fresh copy of the default configuration document.
func Defaults() map[string]any {
	return map[string]any{
		SectionStatus: map[string]any{
			"pending":    map[string]any{"text": "Pending", "color": "warning"},
			"inProgress": map[string]any{"text": "In progress", "color": "info"},
			"completed":  map[string]any{"text": "Completed", "color": "success"},
			"cancelled":  map[string]any{"text": "Cancelled", "color": "error"},
		},
		SectionPriority: map[string]any{
			"low":    map[string]any{"text": "Low", "color": "success", "icon": "mdi-chevron-down"},
			"medium": map[string]any{"text": "Medium", "color": "warning", "icon": "mdi-chevron-up"},
			"high":   map[string]any{"text": "High", "color": "error", "icon": "mdi-chevron-double-up"},
		},
		SectionField: map[string]any{
			"endDate":  map[string]any{"label": "End date", "required": true},
			"dueDate":  map[string]any{"label": "Due date", "required": false},
			"assignee": map[string]any{"label": "Assignee", "required": false},
			"tags":     map[string]any{"label": "Tags", "required": false},
		},
		SectionSystem: map[string]any{
			"theme":      "light",
			"language":   "en-US",
			"dateFormat": "YYYY-MM-DD",
			"timeFormat": "24h",
		},
		SectionAutoBackup: map[string]any{
			"enabled":        false,
			"backupPath":     "",
			"lastBackupDate": "",
		},
	}
}
