package records

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
)

type simpleItemRepository struct {
	col  collection[domain.SimpleItem]
	opts options
}

// NewSimpleItemRepository stores simple items under domain.KeySimpleItems.
func NewSimpleItemRepository(kv repository.KVStore, opts ...Option) repository.SimpleItemRepository {
	return &simpleItemRepository{
		col:  collection[domain.SimpleItem]{kv: kv, key: domain.KeySimpleItems},
		opts: buildOptions(opts),
	}
}

func (r *simpleItemRepository) GetAll(ctx context.Context) ([]domain.SimpleItem, error) {
	return r.col.load(ctx)
}

func (r *simpleItemRepository) GetByID(ctx context.Context, id string) (*domain.SimpleItem, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, domain.ErrSimpleItemNotFound
}

func (r *simpleItemRepository) Save(ctx context.Context, item domain.SimpleItem) (domain.SimpleItem, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load(ctx)
	if err != nil {
		return domain.SimpleItem{}, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Status = item.Status.OrDefault()
	item.Touch(r.opts.now())

	items = upsert(items, item, item.ID, func(s domain.SimpleItem) string { return s.ID })
	if err := r.col.store(ctx, items); err != nil {
		return domain.SimpleItem{}, err
	}
	return item, nil
}

func (r *simpleItemRepository) SaveAll(ctx context.Context, items []domain.SimpleItem) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()
	return r.col.store(ctx, append([]domain.SimpleItem(nil), items...))
}

func (r *simpleItemRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, func(s domain.SimpleItem) bool { return s.ID != id })
}

func (r *simpleItemRepository) DeleteByCategoryID(ctx context.Context, categoryID string) error {
	return r.remove(ctx, func(s domain.SimpleItem) bool { return s.CategoryID != categoryID })
}

func (r *simpleItemRepository) remove(ctx context.Context, keep func(domain.SimpleItem) bool) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	return r.col.store(ctx, without(items, keep))
}
