package filter

import (
	"testing"

	"github.com/fastygo/tidydo/domain"
)

func ids(items []domain.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func sameIDs(t *testing.T, got []domain.Item, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

var sample = []domain.Item{
	{ID: "a", CategoryID: "work", Status: domain.StatusPending, Tags: []string{"urgent"}, EndDate: domain.MustParseDate("2024-03-10")},
	{ID: "b", CategoryID: "home", Status: domain.StatusCompleted, Tags: []string{"chores"}},
	{ID: "c", CategoryID: "work", Status: domain.StatusInProgress, Tags: []string{"urgent", "q1"}, EndDate: domain.MustParseDate("2024-03-20")},
	{ID: "d", CategoryID: "work", Status: domain.StatusPending, Archived: true, EndDate: domain.MustParseDate("2024-03-15")},
}

func TestEmptyConditionsKeepAllActive(t *testing.T) {
	sameIDs(t, Apply(sample, &domain.FilterConditions{}, Options{}), "a", "b", "c")
	sameIDs(t, Apply(sample, nil, Options{}), "a", "b", "c")
	sameIDs(t, Apply(sample, nil, Options{ShowArchived: true}), "a", "b", "c", "d")
}

func TestDateBoundsAreInclusiveAndExcludeMissingDates(t *testing.T) {
	c := &domain.FilterConditions{
		EndDateFrom: domain.MustParseDate("2024-03-10"),
		EndDateTo:   domain.MustParseDate("2024-03-15"),
	}
	sameIDs(t, Apply(sample, c, Options{ShowArchived: true}), "a", "d")

	onlyFrom := &domain.FilterConditions{EndDateFrom: domain.MustParseDate("2024-03-11")}
	sameIDs(t, Apply(sample, onlyFrom, Options{}), "c")
}

func TestNullEndDateNeverMatchesDateBound(t *testing.T) {
	item := domain.Item{ID: "x"}
	c := &domain.FilterConditions{EndDateFrom: domain.MustParseDate("2024-01-01")}
	if Match(item, c, Options{}) {
		t.Fatal("item without end date matched a date bound")
	}
}

func TestGatesIntersect(t *testing.T) {
	c := &domain.FilterConditions{
		Statuses:   []domain.Status{domain.StatusPending, "in_progress"},
		Categories: []string{"work"},
		Tags:       []string{"q1", "chores"},
	}
	sameIDs(t, Apply(sample, c, Options{}), "c")

	statusOnly := &domain.FilterConditions{Statuses: []domain.Status{domain.StatusPending}}
	categoryOnly := &domain.FilterConditions{Categories: []string{"work"}}
	both := &domain.FilterConditions{Statuses: statusOnly.Statuses, Categories: categoryOnly.Categories}
	for _, it := range sample {
		want := Match(it, statusOnly, Options{}) && Match(it, categoryOnly, Options{})
		if got := Match(it, both, Options{}); got != want {
			t.Errorf("item %s: combined = %v, intersection = %v", it.ID, got, want)
		}
	}
}

func TestMissingStatusCountsAsPending(t *testing.T) {
	c := &domain.FilterConditions{Statuses: []domain.Status{domain.StatusPending}}
	if !Match(domain.Item{ID: "legacy"}, c, Options{}) {
		t.Fatal("item without status should count as pending")
	}
}

func TestSearch(t *testing.T) {
	items := []domain.Item{
		{ID: "1", Title: "Quarterly Report"},
		{ID: "2", Description: "call the REPORTER"},
		{ID: "3", CustomNumber: "OPS-42"},
		{ID: "4", Tags: []string{"Reporting"}},
		{ID: "5", Title: "unrelated"},
	}
	sameIDs(t, Search(items, "  report "), "1", "2", "4")
	sameIDs(t, Search(items, "ops-4"), "3")
	sameIDs(t, Search(items, ""), "1", "2", "3", "4", "5")
}
