// Package report aggregates counts, distributions, completion rates and daily trends
// over a snapshot of the record store.
package report

import (
	"time"

	"github.com/fastygo/tidydo/domain"
)

// DefaultTrendDays is the trend window used when none is requested.
const DefaultTrendDays = 30

type CategoryStat struct {
	CategoryID       string `json:"categoryId"`
	CategoryName     string `json:"categoryName"`
	CategoryIcon     string `json:"categoryIcon"`
	IsSimpleTodo     bool   `json:"isSimpleTodo"`
	IsFilterCategory bool   `json:"isFilterCategory"`
	TodoCount        int    `json:"todoCount"`
	SimpleTodoCount  int    `json:"simpleTodoCount"`
	TotalCount       int    `json:"totalCount"`
}

type ProjectCounts struct {
	TotalTodos           int            `json:"totalTodos"`
	TotalSimpleTodos     int            `json:"totalSimpleTodos"`
	TotalProjects        int            `json:"totalProjects"`
	TotalCategories      int            `json:"totalCategories"`
	RegularCategories    int            `json:"regularCategories"`
	FilterCategories     int            `json:"filterCategories"`
	SimpleTodoCategories int            `json:"simpleTodoCategories"`
	CategoryStats        []CategoryStat `json:"categoryStats"`
	ArchivedTodos        int            `json:"archivedTodos"`
}

type StatusDistribution struct {
	TodoStatusStats       map[domain.Status]int       `json:"todoStatusStats"`
	SimpleTodoStatusStats map[domain.SimpleStatus]int `json:"simpleTodoStatusStats"`
	TotalActiveTodos      int                         `json:"totalActiveTodos"`
	TotalSimpleTodos      int                         `json:"totalSimpleTodos"`
}

// Rate is a completion ratio. CompletionRate is a fraction in [0,1].
type Rate struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}

func newRate(completed, total int) Rate {
	r := Rate{Total: total, Completed: completed}
	if total > 0 {
		r.CompletionRate = float64(completed) / float64(total)
	}
	return r
}

type Completion struct {
	TodoStats       Rate `json:"todoStats"`
	SimpleTodoStats Rate `json:"simpleTodoStats"`
	OverallStats    Rate `json:"overallStats"`
	ArchivedCount   int  `json:"archivedCount"`
}

type DayCount struct {
	Todos       int `json:"todos"`
	SimpleTodos int `json:"simpleTodos"`
	Total       int `json:"total"`
}

type TimeTrend struct {
	DateRange      []string            `json:"dateRange"`
	DailyCreated   map[string]DayCount `json:"dailyCreated"`
	DailyCompleted map[string]DayCount `json:"dailyCompleted"`
	Period         int                 `json:"period"`
}

type PriorityDistribution struct {
	PriorityStats map[domain.Priority]int `json:"priorityStats"`
	TotalTodos    int                     `json:"totalTodos"`
}

type Comprehensive struct {
	ProjectCount         ProjectCounts        `json:"projectCount"`
	StatusDistribution   StatusDistribution   `json:"statusDistribution"`
	Completion           Completion           `json:"completion"`
	TimeTrend            TimeTrend            `json:"timeTrend"`
	PriorityDistribution PriorityDistribution `json:"priorityDistribution"`
	GeneratedAt          time.Time            `json:"generatedAt"`
}

func Projects(s domain.Snapshot) ProjectCounts {
	active := s.ActiveItems()
	todosByCategory := make(map[string]int)
	for _, it := range active {
		todosByCategory[it.CategoryID]++
	}
	simpleByCategory := make(map[string]int)
	for _, it := range s.SimpleItems {
		simpleByCategory[it.CategoryID]++
	}

	out := ProjectCounts{
		TotalTodos:       len(active),
		TotalSimpleTodos: len(s.SimpleItems),
		TotalProjects:    len(active) + len(s.SimpleItems),
		TotalCategories:  len(s.Categories),
		CategoryStats:    make([]CategoryStat, 0, len(s.Categories)),
		ArchivedTodos:    len(s.Items) - len(active),
	}
	for _, c := range s.Categories {
		switch {
		case c.IsFilterCategory:
			out.FilterCategories++
		case c.IsSimpleTodo:
			out.SimpleTodoCategories++
		default:
			out.RegularCategories++
		}
		todo, simple := todosByCategory[c.ID], simpleByCategory[c.ID]
		out.CategoryStats = append(out.CategoryStats, CategoryStat{
			CategoryID:       c.ID,
			CategoryName:     c.Name,
			CategoryIcon:     c.Icon,
			IsSimpleTodo:     c.IsSimpleTodo,
			IsFilterCategory: c.IsFilterCategory,
			TodoCount:        todo,
			SimpleTodoCount:  simple,
			TotalCount:       todo + simple,
		})
	}
	return out
}

func Statuses(s domain.Snapshot) StatusDistribution {
	active := s.ActiveItems()
	out := StatusDistribution{
		TodoStatusStats:       make(map[domain.Status]int),
		SimpleTodoStatusStats: make(map[domain.SimpleStatus]int),
		TotalActiveTodos:      len(active),
		TotalSimpleTodos:      len(s.SimpleItems),
	}
	for _, it := range active {
		out.TodoStatusStats[it.Status.OrDefault()]++
	}
	for _, it := range s.SimpleItems {
		out.SimpleTodoStatusStats[it.Status.OrDefault()]++
	}
	return out
}

func Completions(s domain.Snapshot) Completion {
	active := s.ActiveItems()
	completed := 0
	for _, it := range active {
		if it.IsCompleted() {
			completed++
		}
	}
	done := 0
	for _, it := range s.SimpleItems {
		if it.Status == domain.SimpleStatusDone {
			done++
		}
	}
	return Completion{
		TodoStats:       newRate(completed, len(active)),
		SimpleTodoStats: newRate(done, len(s.SimpleItems)),
		OverallStats:    newRate(completed+done, len(active)+len(s.SimpleItems)),
		ArchivedCount:   len(s.Items) - len(active),
	}
}

// Trend buckets creations and completions into days UTC calendar days ending with the
// day of now. There is no status history: an item counts as completed on the day of its
// last update while its current status is completed (done for simple items). Archived
// items are included.
func Trend(s domain.Snapshot, days int, now time.Time) TimeTrend {
	if days < 1 {
		days = 1
	}
	today := domain.NewDate(now.UTC()).Time()
	out := TimeTrend{
		DateRange:      make([]string, 0, days),
		DailyCreated:   make(map[string]DayCount, days),
		DailyCompleted: make(map[string]DayCount, days),
		Period:         days,
	}
	for i := days - 1; i >= 0; i-- {
		day := domain.Day(today.AddDate(0, 0, -i))
		out.DateRange = append(out.DateRange, day)
		out.DailyCreated[day] = DayCount{}
		out.DailyCompleted[day] = DayCount{}
	}

	bump := func(series map[string]DayCount, t time.Time, simple bool) {
		if t.IsZero() {
			return
		}
		day := domain.Day(t)
		c, ok := series[day]
		if !ok {
			return
		}
		if simple {
			c.SimpleTodos++
		} else {
			c.Todos++
		}
		c.Total++
		series[day] = c
	}

	for _, it := range s.Items {
		bump(out.DailyCreated, it.CreatedAt, false)
		if it.IsCompleted() {
			bump(out.DailyCompleted, it.UpdatedAt, false)
		}
	}
	for _, it := range s.SimpleItems {
		bump(out.DailyCreated, it.CreatedAt, true)
		if it.Status == domain.SimpleStatusDone {
			bump(out.DailyCompleted, it.UpdatedAt, true)
		}
	}
	return out
}

func Priorities(s domain.Snapshot) PriorityDistribution {
	active := s.ActiveItems()
	out := PriorityDistribution{
		PriorityStats: make(map[domain.Priority]int),
		TotalTodos:    len(active),
	}
	for _, it := range active {
		out.PriorityStats[it.Priority.OrDefault()]++
	}
	return out
}

// Build assembles every report section.
func Build(s domain.Snapshot, trendDays int, now time.Time) Comprehensive {
	return Comprehensive{
		ProjectCount:         Projects(s),
		StatusDistribution:   Statuses(s),
		Completion:           Completions(s),
		TimeTrend:            Trend(s, trendDays, now),
		PriorityDistribution: Priorities(s),
		GeneratedAt:          now,
	}
}
