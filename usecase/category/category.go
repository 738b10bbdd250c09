package category

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/usecase"
)

// CreateInput describes a new category.
type CreateInput struct {
	Name             string                   `json:"name"`
	Icon             string                   `json:"icon"`
	IsFilterCategory bool                     `json:"isFilterCategory"`
	IsSimpleTodo     bool                     `json:"isSimpleTodo"`
	FilterConditions *domain.FilterConditions `json:"filterConditions"`
}

// Patch lists the mutable fields of a category; nil fields are left untouched.
type Patch struct {
	Name             *string                  `json:"name"`
	Icon             *string                  `json:"icon"`
	IsExpanded       *bool                    `json:"isExpanded"`
	FilterConditions *domain.FilterConditions `json:"filterConditions"`
}

type UseCase struct {
	categories  repository.CategoryRepository
	items       repository.ItemRepository
	simpleItems repository.SimpleItemRepository
	reloader    usecase.StateReloader
	logger      *zap.Logger
	now         func() time.Time
}

func New(
	categories repository.CategoryRepository,
	items repository.ItemRepository,
	simpleItems repository.SimpleItemRepository,
	reloader usecase.StateReloader,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		categories:  categories,
		items:       items,
		simpleItems: simpleItems,
		reloader:    reloader,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock overrides the time source used when rewriting orders.
func (uc *UseCase) SetClock(now func() time.Time) {
	if now != nil {
		uc.now = now
	}
}

// List returns every category in display order.
func (uc *UseCase) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.categories.GetAll(ctx)
	if err != nil {
		return nil, usecase.Wrap(uc.logger, "list categories", domain.ErrCodeStorage, err)
	}
	return SortForDisplay(categories), nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Category, error) {
	return uc.categories.GetByID(ctx, id)
}

// Create appends a category at the end of the display order. Existing orders are
// re-densified first so the new order equals the category count.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Category{}, domain.NewError(domain.ErrCodeValidation, "category name is required")
	}
	if in.IsFilterCategory && in.IsSimpleTodo {
		return domain.Category{}, domain.NewError(domain.ErrCodeValidation, "a category cannot be both a filter and a simple-todo category")
	}

	existing, err := uc.List(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	if renumber(existing, uc.now(), false) {
		if err := uc.categories.SaveAll(ctx, existing); err != nil {
			return domain.Category{}, usecase.Wrap(uc.logger, "create category", domain.ErrCodeBusiness, err)
		}
	}

	icon := strings.TrimSpace(in.Icon)
	if icon == "" {
		icon = domain.DefaultCategoryIcon
	}
	category := domain.Category{
		Name:             name,
		Icon:             icon,
		IsFilterCategory: in.IsFilterCategory,
		IsSimpleTodo:     in.IsSimpleTodo,
	}
	if in.IsFilterCategory {
		category.FilterConditions = sanitizeConditions(in.FilterConditions)
	}
	category.SetOrder(len(existing))

	saved, err := uc.categories.Save(ctx, category)
	if err != nil {
		return domain.Category{}, usecase.Wrap(uc.logger, "create category", domain.ErrCodeBusiness, err)
	}
	uc.logger.Info("category created", zap.String("category_id", saved.ID), zap.Int("order", len(existing)))
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return saved, nil
}

func (uc *UseCase) Update(ctx context.Context, id string, patch Patch) (domain.Category, error) {
	current, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}
	category := current.Clone()

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Category{}, domain.NewError(domain.ErrCodeValidation, "category name is required")
		}
		category.Name = name
	}
	if patch.Icon != nil {
		category.Icon = strings.TrimSpace(*patch.Icon)
		if category.Icon == "" {
			category.Icon = domain.DefaultCategoryIcon
		}
	}
	if patch.IsExpanded != nil {
		category.IsExpanded = *patch.IsExpanded
	}
	if patch.FilterConditions != nil {
		if !category.IsFilterCategory {
			return domain.Category{}, domain.NewError(domain.ErrCodeValidation, "only filter categories carry filter conditions")
		}
		category.FilterConditions = sanitizeConditions(patch.FilterConditions)
	}

	saved, err := uc.categories.Save(ctx, category)
	if err != nil {
		return domain.Category{}, usecase.Wrap(uc.logger, "update category", domain.ErrCodeBusiness, err)
	}
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return saved, nil
}

func (uc *UseCase) SetExpanded(ctx context.Context, id string, expanded bool) (domain.Category, error) {
	return uc.Update(ctx, id, Patch{IsExpanded: &expanded})
}

// Delete removes the category together with every item and simple item it owns, then
// re-densifies the remaining orders.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.categories.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.items.DeleteByCategoryID(ctx, id); err != nil {
		return usecase.Wrap(uc.logger, "delete category", domain.ErrCodeBusiness, err)
	}
	if err := uc.simpleItems.DeleteByCategoryID(ctx, id); err != nil {
		return usecase.Wrap(uc.logger, "delete category", domain.ErrCodeBusiness, err)
	}
	if err := uc.categories.Delete(ctx, id); err != nil {
		return usecase.Wrap(uc.logger, "delete category", domain.ErrCodeBusiness, err)
	}

	remaining, err := uc.List(ctx)
	if err != nil {
		return err
	}
	if renumber(remaining, uc.now(), false) {
		if err := uc.categories.SaveAll(ctx, remaining); err != nil {
			return usecase.Wrap(uc.logger, "delete category", domain.ErrCodeBusiness, err)
		}
	}
	uc.logger.Info("category deleted", zap.String("category_id", id))
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return nil
}

// Move swaps the category with its neighbour in dir. It returns false, without writing,
// when the category is already first (up) or last (down).
func (uc *UseCase) Move(ctx context.Context, id string, dir Direction) (bool, error) {
	if dir != Up && dir != Down {
		return false, domain.NewError(domain.ErrCodeValidation, "direction must be up or down")
	}
	categories, err := uc.List(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(categories, id)
	if idx < 0 {
		return false, domain.ErrCategoryNotFound
	}
	if !swapNeighbour(categories, idx, dir) {
		return false, nil
	}
	return true, uc.persistOrder(ctx, "move category", categories)
}

// ReorderByDrag moves the category to targetIndex in the list with the category removed.
// The resulting index is min(targetIndex, N-1); a move to the current index is a no-op.
func (uc *UseCase) ReorderByDrag(ctx context.Context, id string, targetIndex int) (bool, error) {
	categories, err := uc.List(ctx)
	if err != nil {
		return false, err
	}
	from := indexOf(categories, id)
	if from < 0 {
		return false, domain.ErrCategoryNotFound
	}
	reordered, moved := dragTo(categories, from, targetIndex)
	if !moved {
		return false, nil
	}
	return true, uc.persistOrder(ctx, "reorder categories", reordered)
}

// ReorderByDrop handles a drop-line index measured before the dragged category is
// removed, in [0, N].
func (uc *UseCase) ReorderByDrop(ctx context.Context, id string, dropIndex int) (bool, error) {
	categories, err := uc.List(ctx)
	if err != nil {
		return false, err
	}
	from := indexOf(categories, id)
	if from < 0 {
		return false, domain.ErrCategoryNotFound
	}
	reordered, moved := dragTo(categories, from, dropToInsert(from, dropIndex))
	if !moved {
		return false, nil
	}
	return true, uc.persistOrder(ctx, "reorder categories", reordered)
}

func (uc *UseCase) persistOrder(ctx context.Context, operation string, categories []domain.Category) error {
	renumber(categories, uc.now(), true)
	if err := uc.categories.SaveAll(ctx, categories); err != nil {
		return usecase.Wrap(uc.logger, operation, domain.ErrCodeBusiness, err)
	}
	uc.logger.Debug("category order rewritten", zap.String("operation", operation), zap.Int("count", len(categories)))
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return nil
}

// sanitizeConditions returns a copy with empty slices in place of nil and canonical statuses.
func sanitizeConditions(in *domain.FilterConditions) *domain.FilterConditions {
	if in == nil {
		return &domain.FilterConditions{
			Statuses:   []domain.Status{},
			Categories: []string{},
			Tags:       []string{},
		}
	}
	out := in.Clone()
	for i, s := range out.Statuses {
		out.Statuses[i] = domain.NormalizeStatus(string(s))
	}
	return out
}
