package transport

import (
	"github.com/fastygo/tidydo/domain"
)

type MoveRequest struct {
	Direction string `json:"direction"`
}

// ReorderRequest carries either a post-removal target index or a pre-removal drop index.
type ReorderRequest struct {
	TargetIndex *int `json:"targetIndex"`
	DropIndex   *int `json:"dropIndex"`
}

type ExpandRequest struct {
	Expanded bool `json:"expanded"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

// ArchiveRequest sets the archived flag; a missing value toggles it.
type ArchiveRequest struct {
	Archived *bool `json:"archived"`
}

type BatchStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type BatchArchiveRequest struct {
	IDs      []string `json:"ids"`
	Archived bool     `json:"archived"`
}

type SimpleItemRequest struct {
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Status     string `json:"status"`
}

type SimpleStatusChange struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type SimpleBatchStatusRequest struct {
	Changes []SimpleStatusChange `json:"changes"`
}

// ViewPatchRequest updates the selection. Fields are applied in declaration order;
// nil fields are skipped.
type ViewPatchRequest struct {
	ViewAll            *bool                    `json:"viewAll"`
	SelectedCategoryID *string                  `json:"selectedCategoryId"`
	ToggleSort         *string                  `json:"toggleSort"`
	SearchQuery        *string                  `json:"searchQuery"`
	Filter             *domain.FilterConditions `json:"filter"`
	ClearFilter        bool                     `json:"clearFilter"`
	ToggleShowArchived bool                     `json:"toggleShowArchived"`
}

type ImportRequest struct {
	Document      domain.BackupDocument `json:"document"`
	ClearExisting bool                  `json:"clearExisting"`
	MergeData     *bool                 `json:"mergeData"`
}

type BackupDirectoryRequest struct {
	Path string `json:"path"`
}

type SettingsSectionRequest struct {
	Section string         `json:"section"`
	Patch   map[string]any `json:"patch"`
}
