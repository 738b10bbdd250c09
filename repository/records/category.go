package records

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
)

type categoryRepository struct {
	col  collection[domain.Category]
	opts options
}

// NewCategoryRepository stores categories under domain.KeyCategories.
func NewCategoryRepository(kv repository.KVStore, opts ...Option) repository.CategoryRepository {
	return &categoryRepository{
		col:  collection[domain.Category]{kv: kv, key: domain.KeyCategories},
		opts: buildOptions(opts),
	}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	return r.col.load(ctx)
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	categories, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *categoryRepository) Save(ctx context.Context, category domain.Category) (domain.Category, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	categories, err := r.col.load(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	saved := category.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	saved.Touch(r.opts.now())

	categories = upsert(categories, saved, saved.ID, categoryID)
	if err := r.col.store(ctx, categories); err != nil {
		return domain.Category{}, err
	}
	return saved.Clone(), nil
}

func (r *categoryRepository) SaveAll(ctx context.Context, categories []domain.Category) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	out := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Clone())
	}
	return r.col.store(ctx, out)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	categories, err := r.col.load(ctx)
	if err != nil {
		return err
	}
	categories = without(categories, func(c domain.Category) bool { return c.ID != id })
	return r.col.store(ctx, categories)
}

func categoryID(c domain.Category) string { return c.ID }
