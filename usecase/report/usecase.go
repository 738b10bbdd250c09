package report

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/usecase"
)

type UseCase struct {
	categories  repository.CategoryRepository
	items       repository.ItemRepository
	simpleItems repository.SimpleItemRepository
	logger      *zap.Logger
	now         func() time.Time
}

func New(
	categories repository.CategoryRepository,
	items repository.ItemRepository,
	simpleItems repository.SimpleItemRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		categories:  categories,
		items:       items,
		simpleItems: simpleItems,
		logger:      logger,
		now:         time.Now,
	}
}

// Report loads the current records and builds the comprehensive report. days <= 0
// selects DefaultTrendDays.
func (uc *UseCase) Report(ctx context.Context, days int) (Comprehensive, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	snapshot, err := LoadSnapshot(ctx, uc.categories, uc.items, uc.simpleItems)
	if err != nil {
		return Comprehensive{}, usecase.Wrap(uc.logger, "build report", domain.ErrCodeBusiness, err)
	}
	return Build(snapshot, days, uc.now()), nil
}

// LoadSnapshot reads the three record collections concurrently.
func LoadSnapshot(
	ctx context.Context,
	categories repository.CategoryRepository,
	items repository.ItemRepository,
	simpleItems repository.SimpleItemRepository,
) (domain.Snapshot, error) {
	var s domain.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Categories, err = categories.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Items, err = items.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.SimpleItems, err = simpleItems.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Snapshot{}, err
	}
	return s, nil
}
