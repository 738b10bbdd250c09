package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository/memory"
	"github.com/fastygo/tidydo/repository/records"
	"github.com/fastygo/tidydo/usecase/settings"
)

var day = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

func newUseCase(t *testing.T) (*UseCase, *memory.Store, *settings.UseCase) {
	t.Helper()
	kv := memory.New()
	cfg := settings.New(records.NewDocumentRepository(kv, domain.KeyAppConfig), nil, nil)
	uc := New(kv, cfg, nil, nil)
	uc.now = func() time.Time { return day }
	return uc, kv, cfg
}

func set(t *testing.T, kv *memory.Store, key, value string) {
	t.Helper()
	if err := kv.Set(context.Background(), key, json.RawMessage(value)); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
}

func TestExportClearImportRoundTrip(t *testing.T) {
	uc, kv, _ := newUseCase(t)
	ctx := context.Background()
	set(t, kv, domain.KeyCategories, `[{"id":"c1","name":"Inbox"}]`)
	set(t, kv, domain.KeyItems, `[{"id":"i1","categoryId":"c1","title":"a"}]`)

	doc, err := uc.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if doc.Version != "1.0" || len(doc.Data) != 2 {
		t.Fatalf("doc = %+v", doc)
	}

	set(t, kv, domain.KeyItems, `[]`)
	set(t, kv, "stray", `1`)
	res, err := uc.Import(ctx, doc, ImportOptions{ClearExisting: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.ImportedKeys) != 2 {
		t.Fatalf("imported keys = %v", res.ImportedKeys)
	}

	again, err := uc.Export(ctx)
	if err != nil {
		t.Fatalf("second Export: %v", err)
	}
	if len(again.Data) != 2 {
		t.Fatalf("keys after clear import = %d", len(again.Data))
	}
	for key, value := range doc.Data {
		if string(again.Data[key]) != string(value) {
			t.Fatalf("%s = %s, want %s", key, again.Data[key], value)
		}
	}
}

func TestMergeImportKeepsExistingAndAppendsNew(t *testing.T) {
	uc, kv, _ := newUseCase(t)
	ctx := context.Background()
	set(t, kv, domain.KeyItems, `[{"id":"x","title":"mine"}]`)
	set(t, kv, "other", `{"a":1}`)

	doc := domain.BackupDocument{Data: map[string]json.RawMessage{
		domain.KeyItems: json.RawMessage(`[{"id":"x","title":"theirs"},{"id":"y","title":"new"}]`),
		"other":         json.RawMessage(`{"b":2}`),
	}}
	if _, err := uc.Import(ctx, doc, ImportOptions{}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	raw, _, _ := kv.Get(ctx, domain.KeyItems)
	var items []map[string]string
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 || items[0]["title"] != "mine" || items[1]["id"] != "y" {
		t.Fatalf("merged items = %v", items)
	}
	other, _, _ := kv.Get(ctx, "other")
	if string(other) != `{"b":2}` {
		t.Fatalf("non-record key not replaced: %s", other)
	}
}

func TestImportWithoutMergeReplaces(t *testing.T) {
	uc, kv, _ := newUseCase(t)
	set(t, kv, domain.KeyItems, `[{"id":"x"}]`)
	off := false
	doc := domain.BackupDocument{Data: map[string]json.RawMessage{domain.KeyItems: json.RawMessage(`[{"id":"y"}]`)}}
	if _, err := uc.Import(context.Background(), doc, ImportOptions{MergeData: &off}); err != nil {
		t.Fatalf("Import: %v", err)
	}
	raw, _, _ := kv.Get(context.Background(), domain.KeyItems)
	if string(raw) != `[{"id":"y"}]` {
		t.Fatalf("items = %s", raw)
	}
}

func TestImportRejectsMissingData(t *testing.T) {
	uc, _, _ := newUseCase(t)
	if _, err := uc.Import(context.Background(), domain.BackupDocument{Version: "1.0"}, ImportOptions{}); !domain.IsDomainError(err, domain.ErrCodeValidation) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Decode([]byte(`{"version":"1.0"}`)); !domain.IsDomainError(err, domain.ErrCodeValidation) {
		t.Fatalf("Decode err = %v", err)
	}
	if _, err := Decode([]byte(`not json`)); !domain.IsDomainError(err, domain.ErrCodeValidation) {
		t.Fatalf("Decode garbage err = %v", err)
	}
}

func TestMergeImportKeepsRecordsWithoutID(t *testing.T) {
	uc, kv, _ := newUseCase(t)
	ctx := context.Background()
	set(t, kv, domain.KeyItems, `[{"id":"x","title":"mine"},{"title":"loose"}]`)

	doc := domain.BackupDocument{Data: map[string]json.RawMessage{
		domain.KeyItems: json.RawMessage(`[{"title":"first"},{"id":7,"title":"numeric"},{"title":"second"},{"id":"x","title":"dup"}]`),
	}}
	if _, err := uc.Import(ctx, doc, ImportOptions{}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	raw, _, _ := kv.Get(ctx, domain.KeyItems)
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	var titles []string
	for _, it := range items {
		titles = append(titles, it["title"].(string))
	}
	want := []string{"mine", "loose", "first", "numeric", "second"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}
}

func TestImportRejectsMalformedRecordCollections(t *testing.T) {
	cases := map[string]string{
		"string":      `"x"`,
		"object":      `{"id":"a"}`,
		"scalar item": `[{"id":"a"},1]`,
		"null item":   `[null]`,
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			uc, kv, _ := newUseCase(t)
			ctx := context.Background()
			set(t, kv, domain.KeyItems, `[{"id":"x"}]`)
			set(t, kv, "other", `1`)

			doc := domain.BackupDocument{Data: map[string]json.RawMessage{
				domain.KeyItems: json.RawMessage(value),
				"other":         json.RawMessage(`2`),
			}}
			_, err := uc.Import(ctx, doc, ImportOptions{ClearExisting: true})
			if !domain.IsDomainError(err, domain.ErrCodeValidation) {
				t.Fatalf("err = %v", err)
			}

			items, _, _ := kv.Get(ctx, domain.KeyItems)
			other, _, _ := kv.Get(ctx, "other")
			if string(items) != `[{"id":"x"}]` || string(other) != `1` {
				t.Fatalf("store changed: items=%s other=%s", items, other)
			}
		})
	}
}

func TestImportAcceptsNullRecordCollection(t *testing.T) {
	uc, _, _ := newUseCase(t)
	doc := domain.BackupDocument{Data: map[string]json.RawMessage{domain.KeyCategories: json.RawMessage(`null`)}}
	if _, err := uc.Import(context.Background(), doc, ImportOptions{}); err != nil {
		t.Fatalf("Import: %v", err)
	}
}

func TestStats(t *testing.T) {
	uc, kv, _ := newUseCase(t)
	set(t, kv, domain.KeyItems, `[{"id":"a"},{"id":"b"}]`)
	set(t, kv, "cfg", `{"a":1,"b":2,"c":3}`)
	set(t, kv, "flag", `true`)

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalKeys != 3 || stats.TotalSize == "" {
		t.Fatalf("stats = %+v", stats)
	}
	if d := stats.Details[domain.KeyItems]; d.Type != "array" || d.Count != 2 {
		t.Fatalf("items detail = %+v", d)
	}
	if d := stats.Details["cfg"]; d.Type != "object" || d.Keys != 3 {
		t.Fatalf("cfg detail = %+v", d)
	}
	if d := stats.Details["flag"]; d.Type != "primitive" || d.Value != true {
		t.Fatalf("flag detail = %+v", d)
	}
}

func TestValidateBackupPath(t *testing.T) {
	cases := map[string]bool{
		`C:\backups`:    true,
		"/var/backups":  true,
		"~/tidydo":      true,
		"backups/daily": true,
		"":              false,
		"   ":           false,
		"bad|name":      false,
		`D:relative`:    false,
		"trailing/":     false,
	}
	for path, want := range cases {
		if got := ValidateBackupPath(path); got != want {
			t.Errorf("ValidateBackupPath(%q) = %v, want %v", path, got, want)
		}
	}
	if FileName(day) != "tidydo-backup-2024-06-10.json" {
		t.Fatalf("FileName = %q", FileName(day))
	}
}

func TestAutoBackupSkipsAndWrites(t *testing.T) {
	uc, _, cfg := newUseCase(t)
	ctx := context.Background()

	res, err := uc.AutoBackup(ctx, day)
	if err != nil || res.Performed || res.Reason != "disabled" {
		t.Fatalf("disabled run = %+v, %v", res, err)
	}
	if _, err := cfg.UpdateAutoBackup(ctx, map[string]any{"enabled": true}); err != nil {
		t.Fatalf("enable: %v", err)
	}
	res, err = uc.AutoBackup(ctx, day)
	if err != nil || res.Performed {
		t.Fatalf("run without path = %+v, %v", res, err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	if _, err := uc.SetBackupDirectory(ctx, dir); err != nil {
		t.Fatalf("SetBackupDirectory: %v", err)
	}
	res, err = uc.AutoBackup(ctx, day)
	if err != nil || !res.Performed {
		t.Fatalf("first run = %+v, %v", res, err)
	}
	if res.Outcome.Method != MethodDirectory {
		t.Fatalf("method = %q", res.Outcome.Method)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName(day))); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	auto, _ := cfg.AutoBackup(ctx)
	if auto.LastBackupDate != "2024-06-10" {
		t.Fatalf("lastBackupDate = %q", auto.LastBackupDate)
	}
	res, err = uc.AutoBackup(ctx, day)
	if err != nil || res.Performed {
		t.Fatalf("second run same day = %+v, %v", res, err)
	}

	if err := os.Remove(filepath.Join(dir, FileName(day))); err != nil {
		t.Fatalf("remove: %v", err)
	}
	res, err = uc.AutoBackup(ctx, day)
	if err != nil || !res.Performed {
		t.Fatalf("run after file removal = %+v, %v", res, err)
	}
}

func TestManualBackupFallsBackToDownload(t *testing.T) {
	uc, _, cfg := newUseCase(t)
	ctx := context.Background()
	if _, err := uc.ManualBackup(ctx, day); !domain.IsDomainError(err, domain.ErrCodeBusiness) {
		t.Fatalf("manual backup while disabled err = %v", err)
	}
	if _, err := cfg.UpdateAutoBackup(ctx, map[string]any{"enabled": true}); err != nil {
		t.Fatalf("enable: %v", err)
	}
	out, err := uc.ManualBackup(ctx, day)
	if err != nil {
		t.Fatalf("ManualBackup: %v", err)
	}
	if !IsDownload(out) || len(out.Data) == 0 {
		t.Fatalf("outcome = %+v", out)
	}

	st, err := uc.Status(ctx, day)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.NeedsBackupToday || st.ExpectedFileName != FileName(day) || st.IsPathValid {
		t.Fatalf("status = %+v", st)
	}
}

func TestFallbackDirectory(t *testing.T) {
	uc, _, cfg := newUseCase(t)
	ctx := context.Background()
	fallback := t.TempDir()
	uc.SetFallbackDir(fallback)
	if _, err := cfg.UpdateAutoBackup(ctx, map[string]any{"enabled": true}); err != nil {
		t.Fatalf("enable: %v", err)
	}
	out, err := uc.ManualBackup(ctx, day)
	if err != nil {
		t.Fatalf("ManualBackup: %v", err)
	}
	if out.Method != MethodFallback || out.Location != filepath.Join(fallback, FileName(day)) {
		t.Fatalf("outcome = %+v", out)
	}
}
