package records

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
)

type documentRepository struct {
	kv  repository.KVStore
	key string
	mu  sync.Mutex
}

// NewDocumentRepository stores one JSON object under key.
func NewDocumentRepository(kv repository.KVStore, key string) repository.DocumentRepository {
	return &documentRepository{kv: kv, key: key}
}

func (r *documentRepository) Load(ctx context.Context) (map[string]any, bool, error) {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, false, domain.WrapError(domain.ErrCodeStorage, "read "+r.key, err)
	}
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, false, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, domain.WrapError(domain.ErrCodeValidation, "decode "+r.key, err)
	}
	return doc, true, nil
}

func (r *documentRepository) Store(ctx context.Context, doc map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc == nil {
		doc = map[string]any{}
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return domain.WrapError(domain.ErrCodeValidation, "encode "+r.key, err)
	}
	if err := r.kv.Set(ctx, r.key, payload); err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "write "+r.key, err)
	}
	return nil
}
