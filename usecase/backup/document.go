package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/usecase"
)

// ImportOptions controls how an imported document meets existing data. A nil MergeData
// means true.
type ImportOptions struct {
	ClearExisting bool  `json:"clearExisting"`
	MergeData     *bool `json:"mergeData"`
}

func (o ImportOptions) merge() bool {
	return o.MergeData == nil || *o.MergeData
}

// ImportResult lists the keys written by Import.
type ImportResult struct {
	Success      bool     `json:"success"`
	ImportedKeys []string `json:"importedKeys"`
}

// KeyStat describes one stored value.
type KeyStat struct {
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
	Keys  int    `json:"keys,omitempty"`
	Value any    `json:"value,omitempty"`
	Size  string `json:"size"`
}

// Stats summarises the store contents.
type Stats struct {
	TotalKeys int                `json:"totalKeys"`
	TotalSize string             `json:"totalSize"`
	Details   map[string]KeyStat `json:"details"`
}

// Export reads every stored key into a backup document.
func (uc *UseCase) Export(ctx context.Context) (domain.BackupDocument, error) {
	keys, err := uc.kv.Keys(ctx)
	if err != nil {
		return domain.BackupDocument{}, usecase.Wrap(uc.logger, "export data", domain.ErrCodeStorage, err)
	}
	doc := domain.BackupDocument{
		Version:   domain.BackupVersion,
		Timestamp: uc.now().UTC(),
		Data:      make(map[string]json.RawMessage, len(keys)),
	}
	for _, key := range keys {
		raw, ok, err := uc.kv.Get(ctx, key)
		if err != nil {
			return domain.BackupDocument{}, usecase.Wrap(uc.logger, "export data", domain.ErrCodeStorage, err)
		}
		if ok {
			doc.Data[key] = raw
		}
	}
	return doc, nil
}

// Import writes doc.Data into the store. With ClearExisting the store is wiped first;
// otherwise, when merging, record collections keep every existing record and gain the
// incoming records whose id is new. Every other key is replaced.
func (uc *UseCase) Import(ctx context.Context, doc domain.BackupDocument, opts ImportOptions) (ImportResult, error) {
	if doc.Data == nil {
		return ImportResult{}, domain.ErrInvalidImport
	}
	for _, key := range domain.RecordCollections {
		value, ok := doc.Data[key]
		if !ok {
			continue
		}
		if err := validateRecords(value); err != nil {
			return ImportResult{}, domain.WrapError(domain.ErrCodeValidation,
				domain.ErrInvalidImport.Message+": "+key+" must be an array of records", err)
		}
	}
	if opts.ClearExisting {
		if err := uc.kv.Clear(ctx); err != nil {
			return ImportResult{}, usecase.Wrap(uc.logger, "import data", domain.ErrCodeStorage, err)
		}
	}

	keys := make([]string, 0, len(doc.Data))
	for key := range doc.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := doc.Data[key]
		if opts.merge() && !opts.ClearExisting && isRecordCollection(key) {
			existing, ok, err := uc.kv.Get(ctx, key)
			if err != nil {
				return ImportResult{}, usecase.Wrap(uc.logger, "import data", domain.ErrCodeStorage, err)
			}
			if ok {
				if merged, mergeable := mergeRecords(existing, value); mergeable {
					value = merged
				}
			}
		}
		if err := uc.kv.Set(ctx, key, value); err != nil {
			return ImportResult{}, usecase.Wrap(uc.logger, "import data", domain.ErrCodeStorage, err)
		}
	}

	uc.logger.Info("backup imported",
		zap.Strings("keys", keys),
		zap.Bool("clear_existing", opts.ClearExisting),
		zap.Bool("merge", opts.merge()),
	)
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return ImportResult{Success: true, ImportedKeys: keys}, nil
}

// Decode parses a backup file. Documents without a data object are rejected.
func Decode(raw []byte) (domain.BackupDocument, error) {
	var doc domain.BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.BackupDocument{}, domain.WrapError(domain.ErrCodeValidation, "backup file is not valid JSON", err)
	}
	if doc.Data == nil {
		return domain.BackupDocument{}, domain.ErrInvalidImport
	}
	return doc, nil
}

// Stats describes every stored key by type and size.
func (uc *UseCase) Stats(ctx context.Context) (Stats, error) {
	keys, err := uc.kv.Keys(ctx)
	if err != nil {
		return Stats{}, usecase.Wrap(uc.logger, "read data stats", domain.ErrCodeStorage, err)
	}
	stats := Stats{TotalKeys: len(keys), Details: make(map[string]KeyStat, len(keys))}
	var total uint64
	for _, key := range keys {
		raw, ok, err := uc.kv.Get(ctx, key)
		if err != nil {
			return Stats{}, usecase.Wrap(uc.logger, "read data stats", domain.ErrCodeStorage, err)
		}
		if !ok {
			continue
		}
		total += uint64(len(raw))
		stats.Details[key] = describe(raw)
	}
	stats.TotalSize = humanize.Bytes(total)
	return stats, nil
}

func describe(raw json.RawMessage) KeyStat {
	stat := KeyStat{Size: humanize.Bytes(uint64(len(raw)))}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		stat.Type = "invalid"
		return stat
	}
	switch v := value.(type) {
	case []any:
		stat.Type = "array"
		stat.Count = len(v)
	case map[string]any:
		stat.Type = "object"
		stat.Keys = len(v)
	case nil:
		stat.Type = "null"
	default:
		stat.Type = "primitive"
		stat.Value = v
	}
	return stat
}

func isRecordCollection(key string) bool {
	for _, k := range domain.RecordCollections {
		if k == key {
			return true
		}
	}
	return false
}

// validateRecords accepts a JSON array of objects, or null.
func validateRecords(raw json.RawMessage) error {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	for i, rec := range records {
		if rec == nil {
			return fmt.Errorf("record %d is null", i)
		}
	}
	return nil
}

// mergeRecords appends the incoming records whose id is not already present; records
// without a string id are always appended. It reports
// false when either side is not an array, in which case the incoming value replaces.
func mergeRecords(existing, incoming json.RawMessage) (json.RawMessage, bool) {
	var current, next []json.RawMessage
	if json.Unmarshal(existing, &current) != nil || current == nil {
		return nil, false
	}
	if json.Unmarshal(incoming, &next) != nil || next == nil {
		return nil, false
	}
	seen := make(map[string]struct{}, len(current))
	for _, rec := range current {
		if id := recordID(rec); id != "" {
			seen[id] = struct{}{}
		}
	}
	for _, rec := range next {
		id := recordID(rec)
		if id != "" {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		current = append(current, rec)
	}
	out, err := json.Marshal(current)
	if err != nil {
		return nil, false
	}
	return out, true
}

func recordID(rec json.RawMessage) string {
	var head struct {
		ID any `json:"id"`
	}
	if json.Unmarshal(rec, &head) != nil {
		return ""
	}
	id, _ := head.ID.(string)
	return id
}
