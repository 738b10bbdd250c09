package item

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/usecase"
	"github.com/fastygo/tidydo/usecase/settings"
)

// LabelSource supplies the merged status and priority labels.
type LabelSource interface {
	Typed(ctx context.Context) (settings.Typed, error)
}

// CreateInput describes a new item. Empty priority and status take their defaults.
type CreateInput struct {
	CategoryID   string          `json:"categoryId"`
	Title        string          `json:"title"`
	CustomNumber string          `json:"customNumber"`
	Description  string          `json:"description"`
	Priority     domain.Priority `json:"priority"`
	Status       domain.Status   `json:"status"`
	Tags         []string        `json:"tags"`
	EndDate      domain.Date     `json:"endDate"`
	Assignee     *string         `json:"assignee"`
}

// Patch lists the editable fields of an item; nil fields are left untouched. EndDate and
// Assignee are cleared by an explicit null.
type Patch struct {
	CategoryID   *string               `json:"categoryId"`
	Title        *string               `json:"title"`
	CustomNumber *string               `json:"customNumber"`
	Description  *string               `json:"description"`
	Priority     *domain.Priority      `json:"priority"`
	Status       *domain.Status        `json:"status"`
	Tags         *[]string             `json:"tags"`
	EndDate      Nullable[domain.Date] `json:"endDate,omitzero"`
	Assignee     Nullable[string]      `json:"assignee,omitzero"`
}

// Result is the per-item outcome of a batch operation.
type Result struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type UseCase struct {
	items      repository.ItemRepository
	categories repository.CategoryRepository
	labels     LabelSource
	reloader   usecase.StateReloader
	logger     *zap.Logger
	now        func() time.Time
}

func New(
	items repository.ItemRepository,
	categories repository.CategoryRepository,
	labels LabelSource,
	reloader usecase.StateReloader,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		items:      items,
		categories: categories,
		labels:     labels,
		reloader:   reloader,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Item, error) {
	items, err := uc.items.GetAll(ctx)
	if err != nil {
		return nil, usecase.Wrap(uc.logger, "list items", domain.ErrCodeStorage, err)
	}
	return items, nil
}

// ListByCategory returns the items owned by categoryID, archived ones only when requested.
func (uc *UseCase) ListByCategory(ctx context.Context, categoryID string, showArchived bool) ([]domain.Item, error) {
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Item, 0)
	for _, it := range items {
		if it.CategoryID != categoryID {
			continue
		}
		if it.Archived && !showArchived {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Item, error) {
	return uc.items.GetByID(ctx, id)
}

func (uc *UseCase) Create(ctx context.Context, in CreateInput) (domain.Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Item{}, domain.NewError(domain.ErrCodeValidation, "item title is required")
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return domain.Item{}, err
	}

	it := domain.Item{
		CategoryID:   in.CategoryID,
		Title:        title,
		CustomNumber: strings.TrimSpace(in.CustomNumber),
		Description:  in.Description,
		Priority:     in.Priority.OrDefault(),
		Status:       domain.NormalizeStatus(string(in.Status)).OrDefault(),
		Tags:         normalizeTags(in.Tags),
		EndDate:      in.EndDate,
		Assignee:     in.Assignee,
	}
	if err := validate(it); err != nil {
		return domain.Item{}, err
	}

	saved, err := uc.items.Save(ctx, it)
	if err != nil {
		return domain.Item{}, usecase.Wrap(uc.logger, "create item", domain.ErrCodeBusiness, err)
	}
	uc.logger.Info("item created", zap.String("item_id", saved.ID), zap.String("category_id", saved.CategoryID))
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return saved, nil
}

// Update applies patch. Archived items are refused.
func (uc *UseCase) Update(ctx context.Context, id string, patch Patch) (domain.Item, error) {
	current, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	if d := CanEdit(current); !d.Allowed {
		return domain.Item{}, domain.NewError(domain.ErrCodeBusiness, d.Reason)
	}
	it := current.Clone()

	if patch.CategoryID != nil && *patch.CategoryID != it.CategoryID {
		if err := uc.checkCategory(ctx, *patch.CategoryID); err != nil {
			return domain.Item{}, err
		}
		it.CategoryID = *patch.CategoryID
	}
	if patch.Title != nil {
		it.Title = strings.TrimSpace(*patch.Title)
		if it.Title == "" {
			return domain.Item{}, domain.NewError(domain.ErrCodeValidation, "item title is required")
		}
	}
	if patch.CustomNumber != nil {
		it.CustomNumber = strings.TrimSpace(*patch.CustomNumber)
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Priority != nil {
		it.Priority = patch.Priority.OrDefault()
	}
	if patch.Status != nil {
		it.Status = domain.NormalizeStatus(string(*patch.Status)).OrDefault()
	}
	if patch.Tags != nil {
		it.Tags = normalizeTags(*patch.Tags)
	}
	if patch.EndDate.Set {
		it.EndDate = domain.Date{}
		if patch.EndDate.Value != nil {
			it.EndDate = *patch.EndDate.Value
		}
	}
	if patch.Assignee.Set {
		var assignee string
		if patch.Assignee.Value != nil {
			assignee = strings.TrimSpace(*patch.Assignee.Value)
		}
		if assignee == "" {
			it.Assignee = nil
		} else {
			it.Assignee = &assignee
		}
	}
	if err := validate(it); err != nil {
		return domain.Item{}, err
	}

	saved, err := uc.items.Save(ctx, it)
	if err != nil {
		return domain.Item{}, usecase.Wrap(uc.logger, "update item", domain.ErrCodeBusiness, err)
	}
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return saved, nil
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	current, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d := CanDelete(current); !d.Allowed {
		return domain.NewError(domain.ErrCodeBusiness, d.Reason)
	}
	if err := uc.items.Delete(ctx, id); err != nil {
		return usecase.Wrap(uc.logger, "delete item", domain.ErrCodeBusiness, err)
	}
	uc.logger.Info("item deleted", zap.String("item_id", id))
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return nil
}

// UpdateStatus sets the status; it is allowed on archived items.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Item, error) {
	status = domain.NormalizeStatus(string(status))
	if !validStatus(status) {
		return domain.Item{}, domain.NewError(domain.ErrCodeValidation, "unknown status "+string(status))
	}
	return uc.mutate(ctx, "update item status", id, func(it *domain.Item) { it.Status = status })
}

func (uc *UseCase) ToggleArchived(ctx context.Context, id string) (domain.Item, error) {
	return uc.mutate(ctx, "toggle item archive", id, func(it *domain.Item) { it.Archived = !it.Archived })
}

func (uc *UseCase) SetArchived(ctx context.Context, id string, archived bool) (domain.Item, error) {
	return uc.mutate(ctx, "archive item", id, func(it *domain.Item) { it.Archived = archived })
}

func (uc *UseCase) BatchUpdateStatus(ctx context.Context, ids []string, status domain.Status) []Result {
	return uc.batch(ids, func(id string) error {
		_, err := uc.UpdateStatus(ctx, id, status)
		return err
	})
}

func (uc *UseCase) BatchArchive(ctx context.Context, ids []string, archived bool) []Result {
	return uc.batch(ids, func(id string) error {
		_, err := uc.SetArchived(ctx, id, archived)
		return err
	})
}

// Counts returns the number of non-archived items per category id.
func (uc *UseCase) Counts(ctx context.Context) (map[string]int, error) {
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, it := range items {
		if !it.Archived {
			counts[it.CategoryID]++
		}
	}
	return counts, nil
}

func (uc *UseCase) Statistics(ctx context.Context) (Statistics, error) {
	items, err := uc.List(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return ComputeStatistics(items, uc.now()), nil
}

// Display returns the presentation view of one item.
func (uc *UseCase) Display(ctx context.Context, id string) (Display, error) {
	it, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return Display{}, err
	}
	labels, err := uc.labels.Typed(ctx)
	if err != nil {
		return Display{}, err
	}
	category, err := uc.categories.GetByID(ctx, it.CategoryID)
	if err != nil && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return Display{}, err
	}
	return ToDisplay(*it, category, labels, uc.now()), nil
}

// Export renders the items of categoryID (all items when empty) in format.
func (uc *UseCase) Export(ctx context.Context, categoryID, format string) ([]byte, error) {
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID != "" {
		scoped := make([]domain.Item, 0, len(items))
		for _, it := range items {
			if it.CategoryID == categoryID {
				scoped = append(scoped, it)
			}
		}
		items = scoped
	}
	labels, err := uc.labels.Typed(ctx)
	if err != nil {
		return nil, err
	}
	out, err := Export(items, format, labels)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeValidation) {
			return nil, err
		}
		return nil, usecase.Wrap(uc.logger, "export items", domain.ErrCodeBusiness, err)
	}
	return out, nil
}

func (uc *UseCase) mutate(ctx context.Context, operation, id string, apply func(*domain.Item)) (domain.Item, error) {
	current, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	it := current.Clone()
	apply(&it)
	saved, err := uc.items.Save(ctx, it)
	if err != nil {
		return domain.Item{}, usecase.Wrap(uc.logger, operation, domain.ErrCodeBusiness, err)
	}
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return saved, nil
}

func (uc *UseCase) batch(ids []string, run func(id string) error) []Result {
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		r := Result{ID: id, Success: true}
		if err := run(id); err != nil {
			r.Success = false
			r.Error = domain.UserMessage(err)
		}
		results = append(results, r)
	}
	return results
}

func (uc *UseCase) checkCategory(ctx context.Context, categoryID string) error {
	var category *domain.Category
	if categoryID != "" {
		c, err := uc.categories.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		category = c
	}
	if d := CanCreate(category); !d.Allowed {
		return domain.NewError(domain.ErrCodeBusiness, d.Reason)
	}
	return nil
}

func validate(it domain.Item) error {
	if !validStatus(it.Status) {
		return domain.NewError(domain.ErrCodeValidation, "unknown status "+string(it.Status))
	}
	if !validPriority(it.Priority) {
		return domain.NewError(domain.ErrCodeValidation, "unknown priority "+string(it.Priority))
	}
	return nil
}

// normalizeTags trims, drops empties and removes duplicates, keeping first occurrence.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
