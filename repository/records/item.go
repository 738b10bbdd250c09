package records

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
)

type itemRepository struct {
	col  collection[domain.Item]
	opts options
}

// NewItemRepository stores items under domain.KeyItems.
func NewItemRepository(kv repository.KVStore, opts ...Option) repository.ItemRepository {
	return &itemRepository{
		col:  collection[domain.Item]{kv: kv, key: domain.KeyItems},
		opts: buildOptions(opts),
	}
}

func (r *itemRepository) GetAll(ctx context.Context) ([]domain.Item, error) {
	return r.col.load(ctx)
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, domain.ErrItemNotFound
}

// Save upserts item with fresh copies of its nested slices and a new updatedAt.
func (r *itemRepository) Save(ctx context.Context, item domain.Item) (domain.Item, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load(ctx)
	if err != nil {
		return domain.Item{}, err
	}
	saved := item.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	saved.Touch(r.opts.now())

	items = upsert(items, saved, saved.ID, itemID)
	if err := r.col.store(ctx, items); err != nil {
		return domain.Item{}, err
	}
	return saved.Clone(), nil
}

func (r *itemRepository) SaveAll(ctx context.Context, items []domain.Item) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.Clone())
	}
	return r.col.store(ctx, out)
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, func(it domain.Item) bool { return it.ID != id })
}

func (r *itemRepository) DeleteByCategoryID(ctx context.Context, categoryID string) error {
	return r.remove(ctx, func(it domain.Item) bool { return it.CategoryID != categoryID })
}

func (r *itemRepository) remove(ctx context.Context, keep func(domain.Item) bool) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	items, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	return r.col.store(ctx, without(items, keep))
}

func itemID(it domain.Item) string { return it.ID }
