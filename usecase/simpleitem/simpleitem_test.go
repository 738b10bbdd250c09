package simpleitem

import (
	"context"
	"testing"
	"time"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository/memory"
	"github.com/fastygo/tidydo/repository/records"
)

type countingReloader struct{ calls int }

func (r *countingReloader) Reload(context.Context) error {
	r.calls++
	return nil
}

func setup(t *testing.T) (*UseCase, *countingReloader, domain.Category, domain.Category) {
	t.Helper()
	kv := memory.New()
	categories := records.NewCategoryRepository(kv)
	board, err := categories.Save(context.Background(), domain.Category{Name: "Board", IsSimpleTodo: true})
	if err != nil {
		t.Fatalf("save board: %v", err)
	}
	regular, err := categories.Save(context.Background(), domain.Category{Name: "Work"})
	if err != nil {
		t.Fatalf("save regular: %v", err)
	}
	reloader := &countingReloader{}
	return New(records.NewSimpleItemRepository(kv), categories, reloader, nil), reloader, board, regular
}

func TestCreateOnlyInSimpleCategories(t *testing.T) {
	uc, reloader, board, regular := setup(t)
	ctx := context.Background()

	card, err := uc.Create(ctx, board.ID, " Card ", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if card.Title != "Card" || card.Status != domain.SimpleStatusTodo {
		t.Fatalf("card = %+v", card)
	}
	if reloader.calls != 1 {
		t.Fatalf("reload calls = %d", reloader.calls)
	}

	if _, err := uc.Create(ctx, regular.ID, "x", ""); !domain.IsDomainError(err, domain.ErrCodeBusiness) {
		t.Fatalf("create in regular category err = %v", err)
	}
	if _, err := uc.Create(ctx, "missing", "x", ""); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("create in missing category err = %v", err)
	}
	if _, err := uc.Create(ctx, board.ID, "x", "blocked"); !domain.IsDomainError(err, domain.ErrCodeValidation) {
		t.Fatalf("bad status err = %v", err)
	}
}

func TestBatchUpdateStatusAndCounts(t *testing.T) {
	uc, _, board, _ := setup(t)
	ctx := context.Background()
	a, _ := uc.Create(ctx, board.ID, "a", "")
	b, _ := uc.Create(ctx, board.ID, "b", "")

	later := a.UpdatedAt.Add(48 * time.Hour)
	uc.now = func() time.Time { return later }
	results, err := uc.BatchUpdateStatus(ctx, []StatusChange{
		{ID: a.ID, Status: domain.SimpleStatusDone},
		{ID: "missing", Status: domain.SimpleStatusDone},
		{ID: b.ID, Status: "nope"},
	})
	if err != nil {
		t.Fatalf("BatchUpdateStatus: %v", err)
	}
	if !results[0].Success || results[1].Success || results[2].Success {
		t.Fatalf("results = %+v", results)
	}
	items, err := uc.ListByCategory(ctx, board.ID)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	for _, it := range items {
		switch it.ID {
		case a.ID:
			if !it.UpdatedAt.Equal(later) || !it.CreatedAt.Equal(a.CreatedAt) {
				t.Fatalf("batched card times = %v / %v, want updated %v", it.CreatedAt, it.UpdatedAt, later)
			}
		case b.ID:
			if !it.UpdatedAt.Equal(b.UpdatedAt) {
				t.Fatalf("rejected card updatedAt = %v, want %v", it.UpdatedAt, b.UpdatedAt)
			}
		}
	}

	counts, err := uc.CountsByStatus(ctx, board.ID)
	if err != nil {
		t.Fatalf("CountsByStatus: %v", err)
	}
	if counts[domain.SimpleStatusDone] != 1 || counts[domain.SimpleStatusTodo] != 1 || counts[domain.SimpleStatusPaused] != 0 {
		t.Fatalf("counts = %v", counts)
	}
	if _, ok := counts[domain.SimpleStatusDoing]; !ok {
		t.Fatal("empty column missing from counts")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	uc, _, board, _ := setup(t)
	ctx := context.Background()
	card, _ := uc.Create(ctx, board.ID, "a", "")

	moved, err := uc.UpdateStatus(ctx, card.ID, domain.SimpleStatusDoing)
	if err != nil || moved.Status != domain.SimpleStatusDoing {
		t.Fatalf("UpdateStatus = %+v, %v", moved, err)
	}
	empty := " "
	if _, err := uc.Update(ctx, card.ID, Patch{Title: &empty}); !domain.IsDomainError(err, domain.ErrCodeValidation) {
		t.Fatalf("blank title err = %v", err)
	}
	if err := uc.Delete(ctx, card.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := uc.Delete(ctx, card.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}
