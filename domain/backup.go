package domain

import (
	"encoding/json"
	"time"
)

// Storage keys shared by every backend. They match the keys of browser-era backups so that
// those files import unchanged.
const (
	KeyCategories       = "todo-categories"
	KeyItems            = "todo-items"
	KeySimpleItems      = "simple-todo-items"
	KeyAppConfig        = "app-config"
	KeyDirectoryHandles = "directory-handles"
)

// RecordCollections lists the keys whose values are arrays of records with an "id" field.
var RecordCollections = []string{KeyCategories, KeyItems, KeySimpleItems}

// BackupVersion is written into every export document.
const BackupVersion = "1.0"

// BackupDocument is the export/import envelope.
type BackupDocument struct {
	Version   string                     `json:"version"`
	Timestamp time.Time                  `json:"timestamp"`
	Data      map[string]json.RawMessage `json:"data"`
}

// DirectoryTarget records where backups for a purpose are written.
type DirectoryTarget struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	StoredAt time.Time `json:"storedAt"`
}
