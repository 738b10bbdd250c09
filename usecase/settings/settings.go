package settings

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/usecase"
)

type UseCase struct {
	docs     repository.DocumentRepository
	reloader usecase.StateReloader
	logger   *zap.Logger
}

func New(docs repository.DocumentRepository, reloader usecase.StateReloader, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		docs:     docs,
		reloader: reloader,
		logger:   logger,
	}
}

// SetReloader wires the state container after construction.
func (uc *UseCase) SetReloader(reloader usecase.StateReloader) {
	uc.reloader = reloader
}

// Load returns the saved configuration merged over the defaults. On first run the
// defaults are persisted.
func (uc *UseCase) Load(ctx context.Context) (map[string]any, error) {
	saved, ok, err := uc.docs.Load(ctx)
	if err != nil {
		return nil, usecase.Wrap(uc.logger, "load configuration", domain.ErrCodeStorage, err)
	}
	if !ok {
		defaults := Defaults()
		if err := uc.docs.Store(ctx, defaults); err != nil {
			return nil, usecase.Wrap(uc.logger, "store default configuration", domain.ErrCodeStorage, err)
		}
		uc.logger.Info("default configuration stored")
		return defaults, nil
	}
	return Merge(Defaults(), saved), nil
}

// Save merges doc over the defaults and stores the result.
func (uc *UseCase) Save(ctx context.Context, doc map[string]any) (map[string]any, error) {
	merged := Merge(Defaults(), doc)
	if err := uc.docs.Store(ctx, merged); err != nil {
		return nil, usecase.Wrap(uc.logger, "save configuration", domain.ErrCodeStorage, err)
	}
	usecase.NotifyChanged(ctx, uc.reloader, uc.logger)
	return merged, nil
}

// Update shallow-merges patch into one section, then saves the whole document.
func (uc *UseCase) Update(ctx context.Context, section string, patch map[string]any) (map[string]any, error) {
	if !slices.Contains(Sections, section) {
		return nil, domain.NewError(domain.ErrCodeValidation, "unknown configuration section "+section)
	}
	doc, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}
	current, _ := doc[section].(map[string]any)
	next := make(map[string]any, len(current)+len(patch))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range patch {
		next[k] = cloneValue(v)
	}
	doc[section] = next
	return uc.Save(ctx, doc)
}

// Reset stores the defaults.
func (uc *UseCase) Reset(ctx context.Context) (map[string]any, error) {
	uc.logger.Info("configuration reset to defaults")
	return uc.Save(ctx, Defaults())
}

func (uc *UseCase) Typed(ctx context.Context) (Typed, error) {
	doc, err := uc.Load(ctx)
	if err != nil {
		return Typed{}, err
	}
	return Decode(doc)
}

func (uc *UseCase) AutoBackup(ctx context.Context) (AutoBackup, error) {
	typed, err := uc.Typed(ctx)
	if err != nil {
		return AutoBackup{}, err
	}
	return typed.AutoBackupConfig, nil
}

func (uc *UseCase) UpdateAutoBackup(ctx context.Context, patch map[string]any) (AutoBackup, error) {
	doc, err := uc.Update(ctx, SectionAutoBackup, patch)
	if err != nil {
		return AutoBackup{}, err
	}
	typed, err := Decode(doc)
	if err != nil {
		return AutoBackup{}, err
	}
	return typed.AutoBackupConfig, nil
}
