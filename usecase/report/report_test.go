package report

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository/memory"
	"github.com/fastygo/tidydo/repository/records"
)

var now = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return now.AddDate(0, 0, offset)
}

func snapshot() domain.Snapshot {
	return domain.Snapshot{
		Categories: []domain.Category{
			{ID: "work", Name: "Work"},
			{ID: "kanban", Name: "Board", IsSimpleTodo: true},
			{ID: "hot", Name: "Hot", IsFilterCategory: true},
		},
		Items: []domain.Item{
			{ID: "1", CategoryID: "work", Status: domain.StatusCompleted, Priority: domain.PriorityHigh, CreatedAt: day(-2), UpdatedAt: day(0)},
			{ID: "2", CategoryID: "work", Status: domain.StatusPending, CreatedAt: day(0), UpdatedAt: day(0)},
			{ID: "3", CategoryID: "work", CreatedAt: day(-40), UpdatedAt: day(-40)},
			{ID: "4", CategoryID: "work", Status: domain.StatusCompleted, Archived: true, CreatedAt: day(-1), UpdatedAt: day(-1)},
		},
		SimpleItems: []domain.SimpleItem{
			{ID: "s1", CategoryID: "kanban", Status: domain.SimpleStatusDone, CreatedAt: day(-1), UpdatedAt: day(0)},
			{ID: "s2", CategoryID: "kanban", CreatedAt: day(0), UpdatedAt: day(0)},
		},
	}
}

func TestProjects(t *testing.T) {
	p := Projects(snapshot())
	if p.TotalTodos != 3 || p.TotalSimpleTodos != 2 || p.TotalProjects != 5 {
		t.Fatalf("totals = %+v", p)
	}
	if p.RegularCategories != 1 || p.FilterCategories != 1 || p.SimpleTodoCategories != 1 || p.TotalCategories != 3 {
		t.Fatalf("category counts = %+v", p)
	}
	if p.ArchivedTodos != 1 {
		t.Fatalf("archived = %d", p.ArchivedTodos)
	}
	work := p.CategoryStats[0]
	if work.TodoCount != 3 || work.TotalCount != 3 {
		t.Fatalf("work stats = %+v", work)
	}
	if board := p.CategoryStats[1]; board.SimpleTodoCount != 2 || board.TotalCount != 2 {
		t.Fatalf("board stats = %+v", board)
	}
}

func TestStatusesDefaultMissingValues(t *testing.T) {
	s := Statuses(snapshot())
	if s.TodoStatusStats[domain.StatusPending] != 2 || s.TodoStatusStats[domain.StatusCompleted] != 1 {
		t.Fatalf("todo stats = %v", s.TodoStatusStats)
	}
	if s.SimpleTodoStatusStats[domain.SimpleStatusTodo] != 1 || s.SimpleTodoStatusStats[domain.SimpleStatusDone] != 1 {
		t.Fatalf("simple stats = %v", s.SimpleTodoStatusStats)
	}
}

func TestCompletionRates(t *testing.T) {
	c := Completions(snapshot())
	if math.Abs(c.TodoStats.CompletionRate-1.0/3.0) > 1e-9 {
		t.Fatalf("todo rate = %v", c.TodoStats.CompletionRate)
	}
	if c.SimpleTodoStats.CompletionRate != 0.5 {
		t.Fatalf("simple rate = %v", c.SimpleTodoStats.CompletionRate)
	}
	if c.OverallStats.Completed != 2 || c.OverallStats.Total != 5 {
		t.Fatalf("overall = %+v", c.OverallStats)
	}

	empty := Completions(domain.Snapshot{})
	if empty.OverallStats.CompletionRate != 0 || empty.TodoStats.CompletionRate != 0 {
		t.Fatalf("empty rates = %+v", empty)
	}
}

func TestTrendWindowEndsToday(t *testing.T) {
	tr := Trend(snapshot(), 3, now)
	want := []string{"2024-03-13", "2024-03-14", "2024-03-15"}
	for i := range want {
		if tr.DateRange[i] != want[i] {
			t.Fatalf("DateRange = %v", tr.DateRange)
		}
	}
	if got := tr.DailyCreated["2024-03-15"]; got.Todos != 1 || got.SimpleTodos != 1 || got.Total != 2 {
		t.Fatalf("created today = %+v", got)
	}
	if got := tr.DailyCreated["2024-03-14"]; got.Todos != 1 || got.SimpleTodos != 1 {
		t.Fatalf("created yesterday = %+v", got)
	}
	if got := tr.DailyCompleted["2024-03-15"]; got.Todos != 1 || got.SimpleTodos != 1 {
		t.Fatalf("completed today = %+v", got)
	}
	if got := tr.DailyCompleted["2024-03-14"]; got.Todos != 1 {
		t.Fatalf("archived completion should count: %+v", got)
	}
	if tr.Period != 3 {
		t.Fatalf("period = %d", tr.Period)
	}

	if single := Trend(domain.Snapshot{}, 0, now); len(single.DateRange) != 1 {
		t.Fatalf("minimum window = %v", single.DateRange)
	}
}

func TestPrioritiesDefaultToMedium(t *testing.T) {
	p := Priorities(snapshot())
	if p.PriorityStats[domain.PriorityMedium] != 2 || p.PriorityStats[domain.PriorityHigh] != 1 {
		t.Fatalf("priority stats = %v", p.PriorityStats)
	}
}

func TestReportLoadsFromRepositories(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	raw, _ := json.Marshal(snapshot().Items)
	_ = kv.Set(ctx, domain.KeyItems, raw)

	uc := New(records.NewCategoryRepository(kv), records.NewItemRepository(kv), records.NewSimpleItemRepository(kv), nil)
	uc.now = func() time.Time { return now }

	got, err := uc.Report(ctx, 0)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got.TimeTrend.Period != DefaultTrendDays {
		t.Fatalf("period = %d", got.TimeTrend.Period)
	}
	if got.ProjectCount.TotalTodos != 3 {
		t.Fatalf("total todos = %d", got.ProjectCount.TotalTodos)
	}
	if !got.GeneratedAt.Equal(now) {
		t.Fatalf("generatedAt = %v", got.GeneratedAt)
	}
}
