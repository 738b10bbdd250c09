package simpleitem

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/usecase"
)

// StatusChange is one entry of a batch status update.
type StatusChange struct {
	ID     string              `json:"id"`
	Status domain.SimpleStatus `json:"status"`
}

// Result is the per-entry outcome of BatchUpdateStatus.
type Result struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Patch lists the editable fields; nil fields are left untouched.
type Patch struct {
	Title  *string              `json:"title"`
	Status *domain.SimpleStatus `json:"status"`
}

type UseCase struct {
	items      repository.SimpleItemRepository
	categories repository.CategoryRepository
	reloader   usecase.StateReloader
	logger     *zap.Logger
	now        func() time.Time
}

func New(
	items repository.SimpleItemRepository,
	categories repository.CategoryRepository,
	reloader usecase.StateReloader,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{items: items, categories: categories, reloader: reloader, logger: logger, now: time.Now}
}

func (uc *UseCase) List(ctx context.Context) ([]domain.SimpleItem, error) {
	items, err := uc.items.GetAll(ctx)
	if err != nil {
		return nil, usecase.Wrap(uc.logger, "list simple items", domain.ErrCodeStorage, err)
	}
	return items, nil
}

// ListByCategory returns the cards of categoryID in stored order.
func (uc *UseCase) ListByCategory(ctx context.Context, categoryID string) ([]domain.SimpleItem, error) {
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SimpleItem, 0)
	for _, it := range items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.SimpleItem, error) {
	return uc.items.GetByID(ctx, id)
}

// Create adds a card to a simple-todo category.
func (uc *UseCase) Create(ctx context.Context, categoryID, title string, status domain.SimpleStatus) (domain.SimpleItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.SimpleItem{}, domain.NewError(domain.ErrCodeValidation, "simple item title is required")
	}
	status = status.OrDefault()
	if !status.Valid() {
		return domain.SimpleItem{}, domain.NewError(domain.ErrCodeValidation, "unknown simple status "+string(status))
	}
	category, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return domain.SimpleItem{}, err
	}
	if !category.IsSimpleTodo {
		return domain.SimpleItem{}, domain.NewError(domain.ErrCodeBusiness, "simple items belong to simple-todo categories only")
	}

	saved, err := uc.items.Save(ctx, domain.SimpleItem{CategoryID: categoryID, Title: title, Status: status})
	if err != nil {
		return domain.SimpleItem{}, usecase.Wrap(uc.logger, "create simple item", domain.ErrCodeBusiness, err)
	}
	uc.logger.Info("simple item created", zap.String("item_id", saved.ID), zap.String("category_id", categoryID))
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return saved, nil
}

func (uc *UseCase) Update(ctx context.Context, id string, patch Patch) (domain.SimpleItem, error) {
	current, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return domain.SimpleItem{}, err
	}
	it := *current
	if patch.Title != nil {
		it.Title = strings.TrimSpace(*patch.Title)
		if it.Title == "" {
			return domain.SimpleItem{}, domain.NewError(domain.ErrCodeValidation, "simple item title is required")
		}
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return domain.SimpleItem{}, domain.NewError(domain.ErrCodeValidation, "unknown simple status "+string(*patch.Status))
		}
		it.Status = *patch.Status
	}
	saved, err := uc.items.Save(ctx, it)
	if err != nil {
		return domain.SimpleItem{}, usecase.Wrap(uc.logger, "update simple item", domain.ErrCodeBusiness, err)
	}
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return saved, nil
}

func (uc *UseCase) UpdateStatus(ctx context.Context, id string, status domain.SimpleStatus) (domain.SimpleItem, error) {
	return uc.Update(ctx, id, Patch{Status: &status})
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.items.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.items.Delete(ctx, id); err != nil {
		return usecase.Wrap(uc.logger, "delete simple item", domain.ErrCodeBusiness, err)
	}
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return nil
}

// BatchUpdateStatus applies every change in one collection write. Unknown ids and invalid
// statuses fail individually; the valid entries are still written.
func (uc *UseCase) BatchUpdateStatus(ctx context.Context, changes []StatusChange) ([]Result, error) {
	items, err := uc.items.GetAll(ctx)
	if err != nil {
		return nil, usecase.Wrap(uc.logger, "batch update simple items", domain.ErrCodeStorage, err)
	}
	index := make(map[string]int, len(items))
	for i := range items {
		index[items[i].ID] = i
	}

	now := uc.now()
	results := make([]Result, 0, len(changes))
	changed := false
	for _, ch := range changes {
		r := Result{ID: ch.ID}
		i, ok := index[ch.ID]
		switch {
		case !ok:
			r.Error = domain.ErrSimpleItemNotFound.Message
		case !ch.Status.Valid():
			r.Error = "unknown simple status " + string(ch.Status)
		default:
			items[i].Status = ch.Status
			items[i].Touch(now)
			r.Success = true
			changed = true
		}
		results = append(results, r)
	}
	if !changed {
		return results, nil
	}
	if err := uc.items.SaveAll(ctx, items); err != nil {
		return nil, usecase.Wrap(uc.logger, "batch update simple items", domain.ErrCodeBusiness, err)
	}
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return results, nil
}

// CountsByStatus returns the number of cards per column of categoryID. Every column is present.
func (uc *UseCase) CountsByStatus(ctx context.Context, categoryID string) (map[domain.SimpleStatus]int, error) {
	items, err := uc.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.SimpleStatus]int, len(domain.SimpleStatuses))
	for _, s := range domain.SimpleStatuses {
		counts[s] = 0
	}
	for _, it := range items {
		counts[it.Status.OrDefault()]++
	}
	return counts, nil
}
