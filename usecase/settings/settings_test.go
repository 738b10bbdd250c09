package settings

import (
	"context"
	"testing"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository/memory"
	"github.com/fastygo/tidydo/repository/records"
)

func TestMergeRecursesAndKeepsUserValues(t *testing.T) {
	defaults := map[string]any{
		"systemConfig": map[string]any{"theme": "light", "language": "en-US"},
		"flag":         true,
	}
	user := map[string]any{
		"systemConfig": map[string]any{"theme": "dark", "custom": 1},
		"flag":         nil,
		"extra":        []any{"x"},
	}
	got := Merge(defaults, user)

	sys := got["systemConfig"].(map[string]any)
	if sys["theme"] != "dark" || sys["language"] != "en-US" || sys["custom"] != 1 {
		t.Fatalf("systemConfig = %v", sys)
	}
	if v, ok := got["flag"]; !ok || v != nil {
		t.Fatalf("explicit null not kept: %v", got["flag"])
	}
	if _, ok := got["extra"]; !ok {
		t.Fatal("extra user key dropped")
	}
	if defaults["systemConfig"].(map[string]any)["theme"] != "light" {
		t.Fatal("Merge modified defaults")
	}
}

func TestMergeIgnoresScalarOverObject(t *testing.T) {
	got := Merge(Defaults(), map[string]any{SectionSystem: "broken"})
	sys, ok := got[SectionSystem].(map[string]any)
	if !ok || sys["theme"] != "light" {
		t.Fatalf("systemConfig = %v", got[SectionSystem])
	}
}

func newUseCase() (*UseCase, *memory.Store) {
	kv := memory.New()
	return New(records.NewDocumentRepository(kv, domain.KeyAppConfig), nil, nil), kv
}

func TestLoadPersistsDefaultsOnFirstRun(t *testing.T) {
	ctx := context.Background()
	uc, kv := newUseCase()

	doc, err := uc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := doc[SectionStatus]; !ok {
		t.Fatalf("defaults missing status section: %v", doc)
	}
	if _, ok, _ := kv.Get(ctx, domain.KeyAppConfig); !ok {
		t.Fatal("defaults were not stored")
	}
}

func TestUpdateSectionAndTypedAccessors(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	if _, err := uc.Update(ctx, SectionStatus, map[string]any{
		"pending": map[string]any{"text": "To do", "color": "grey"},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	typed, err := uc.Typed(ctx)
	if err != nil {
		t.Fatalf("Typed: %v", err)
	}
	if l := typed.StatusLabel(domain.StatusPending); l.Text != "To do" {
		t.Fatalf("pending label = %+v", l)
	}
	if l := typed.StatusLabel(domain.StatusCompleted); l.Text != "Completed" {
		t.Fatalf("completed label = %+v", l)
	}
	if l := typed.PriorityLabel(""); l.Icon != "mdi-chevron-up" {
		t.Fatalf("default priority label = %+v", l)
	}

	if _, err := uc.Update(ctx, "bogus", nil); !domain.IsDomainError(err, domain.ErrCodeValidation) {
		t.Fatalf("unknown section err = %v", err)
	}
}

func TestAutoBackupRoundTripAndReset(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	ab, err := uc.UpdateAutoBackup(ctx, map[string]any{"enabled": true, "backupPath": "/backups"})
	if err != nil {
		t.Fatalf("UpdateAutoBackup: %v", err)
	}
	if !ab.Enabled || ab.BackupPath != "/backups" || ab.LastBackupDate != "" {
		t.Fatalf("auto backup = %+v", ab)
	}

	if _, err := uc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	ab, err = uc.AutoBackup(ctx)
	if err != nil {
		t.Fatalf("AutoBackup: %v", err)
	}
	if ab.Enabled {
		t.Fatal("Reset kept auto backup enabled")
	}
}
