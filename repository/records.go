package repository

import (
	"context"

	"github.com/fastygo/tidydo/domain"
)

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Save(ctx context.Context, category domain.Category) (domain.Category, error)
	SaveAll(ctx context.Context, categories []domain.Category) error
	Delete(ctx context.Context, id string) error
}

type ItemRepository interface {
	GetAll(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Save(ctx context.Context, item domain.Item) (domain.Item, error)
	SaveAll(ctx context.Context, items []domain.Item) error
	Delete(ctx context.Context, id string) error
	DeleteByCategoryID(ctx context.Context, categoryID string) error
}

type SimpleItemRepository interface {
	GetAll(ctx context.Context) ([]domain.SimpleItem, error)
	GetByID(ctx context.Context, id string) (*domain.SimpleItem, error)
	Save(ctx context.Context, item domain.SimpleItem) (domain.SimpleItem, error)
	SaveAll(ctx context.Context, items []domain.SimpleItem) error
	Delete(ctx context.Context, id string) error
	DeleteByCategoryID(ctx context.Context, categoryID string) error
}

// DocumentRepository stores a single JSON object under a fixed key.
type DocumentRepository interface {
	Load(ctx context.Context) (map[string]any, bool, error)
	Store(ctx context.Context, doc map[string]any) error
}
