package view

import (
	"testing"
	"time"

	"github.com/fastygo/tidydo/domain"
)

func itemIDs(items []domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []domain.Item, want ...string) {
	t.Helper()
	g := itemIDs(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

var (
	categories = []domain.Category{
		{ID: "work", Name: "Work"},
		{ID: "home", Name: "Home"},
		{ID: "urgent", Name: "Urgent", IsFilterCategory: true, FilterConditions: &domain.FilterConditions{Tags: []string{"urgent"}}},
	}
	items = []domain.Item{
		{ID: "a", CategoryID: "work", Title: "beta", Tags: []string{"urgent"}, EndDate: domain.MustParseDate("2024-02-01")},
		{ID: "b", CategoryID: "home", Title: "Alpha", Priority: domain.PriorityHigh},
		{ID: "c", CategoryID: "work", Title: "gamma", Priority: domain.PriorityLow, EndDate: domain.MustParseDate("2024-01-01"), Archived: true},
		{ID: "d", CategoryID: "home", Title: "delta", Tags: []string{"urgent"}, EndDate: domain.MustParseDate("2024-03-01")},
	}
)

func TestDeriveBaseSets(t *testing.T) {
	sel := Default()
	assertIDs(t, Derive(sel, categories, items), "a", "d", "b")

	sel.SelectCategory("work")
	assertIDs(t, Derive(sel, categories, items), "a")

	sel.ToggleShowArchived()
	assertIDs(t, Derive(sel, categories, items), "c", "a")

	sel.SelectCategory("urgent")
	assertIDs(t, Derive(sel, categories, items), "a", "d")

	sel.EnterViewAll()
	assertIDs(t, Derive(sel, categories, items), "c", "a", "d", "b")
}

func TestDeriveSearchAndAdHocFilter(t *testing.T) {
	sel := Default()
	sel.EnterViewAll()
	sel.SetSearch("  ALPHA ")
	assertIDs(t, Derive(sel, categories, items), "b")

	sel.SetSearch("")
	sel.SetFilter(&domain.FilterConditions{Categories: []string{"home"}})
	assertIDs(t, Derive(sel, categories, items), "d", "b")
}

func TestSortNullDatesLastBothDirections(t *testing.T) {
	list := append([]domain.Item(nil), items...)
	Sort(list, SortEndDate, Desc)
	assertIDs(t, list, "d", "a", "c", "b")
	Sort(list, SortEndDate, Asc)
	assertIDs(t, list, "c", "a", "d", "b")
}

func TestSortStringsAndPriority(t *testing.T) {
	list := append([]domain.Item(nil), items...)
	Sort(list, SortTitle, Asc)
	assertIDs(t, list, "b", "a", "d", "c")

	Sort(list, SortPriority, Desc)
	assertIDs(t, list, "b", "a", "d", "c")
	Sort(list, SortPriority, Asc)
	assertIDs(t, list, "c", "a", "d", "b")
}

func TestSortTimestampsKeepPrecision(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	list := []domain.Item{
		{ID: "late", CreatedAt: base.Add(time.Hour)},
		{ID: "zero"},
		{ID: "early", CreatedAt: base},
	}
	Sort(list, SortCreatedAt, Asc)
	assertIDs(t, list, "early", "late", "zero")
}

func TestToggleSort(t *testing.T) {
	sel := Default()
	sel.ToggleSort(SortEndDate)
	if sel.SortOrder != Desc {
		t.Fatalf("same field should flip: %+v", sel)
	}
	sel.ToggleSort(SortTitle)
	if sel.SortField != SortTitle || sel.SortOrder != Asc {
		t.Fatalf("new field should start asc: %+v", sel)
	}
	if sel.ToggleSort("bogus") {
		t.Fatal("unknown field accepted")
	}
}

func TestSelectCategoryTransitions(t *testing.T) {
	sel := Default()
	sel.EnterViewAll()
	sel.SetSearch("x")

	sel.SelectCategory("work")
	if sel.ViewAll || sel.SearchQuery != "" || sel.SelectedCategoryID != "work" {
		t.Fatalf("after select = %+v", sel)
	}
	sel.SetSearch("y")
	sel.SelectCategory("work")
	if sel.SearchQuery != "y" {
		t.Fatal("reselecting the same category cleared the search")
	}
}

func TestInitializeAndRepair(t *testing.T) {
	sel := Selection{}
	sel.Initialize(categories)
	if sel.SelectedCategoryID != "work" || sel.SortField != SortEndDate || sel.SortOrder != Asc {
		t.Fatalf("initialized = %+v", sel)
	}

	sel.CategoriesUpdated(categories[1:])
	if sel.SelectedCategoryID != "home" {
		t.Fatalf("repaired selection = %q", sel.SelectedCategoryID)
	}
	sel.CategoriesUpdated(nil)
	if sel.SelectedCategoryID != "" {
		t.Fatalf("selection with no categories = %q", sel.SelectedCategoryID)
	}

	all := Default()
	all.EnterViewAll()
	all.Initialize(categories)
	if all.SelectedCategoryID != "" {
		t.Fatal("Initialize selected a category in view-all mode")
	}
}
