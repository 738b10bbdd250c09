package category

import (
	"sort"
	"time"

	"github.com/fastygo/tidydo/domain"
)

// Direction is a single-step move in the display order.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// SortForDisplay returns a copy sorted for display: categories with an order ascending by
// order (ties by createdAt), then legacy categories without one ascending by createdAt.
func SortForDisplay(categories []domain.Category) []domain.Category {
	out := append([]domain.Category(nil), categories...)
	sort.SliceStable(out, func(i, j int) bool {
		return compareForDisplay(out[i], out[j]) < 0
	})
	return out
}

func compareForDisplay(a, b domain.Category) int {
	ao, aok := a.OrderValue()
	bo, bok := b.OrderValue()
	switch {
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case aok && bok && ao != bo:
		if ao < bo {
			return -1
		}
		return 1
	}
	if a.CreatedAt.Before(b.CreatedAt) {
		return -1
	}
	if a.CreatedAt.After(b.CreatedAt) {
		return 1
	}
	return 0
}

func indexOf(categories []domain.Category, id string) int {
	for i := range categories {
		if categories[i].ID == id {
			return i
		}
	}
	return -1
}

// swapNeighbour moves the element at idx one step in dir. It reports false at the boundary.
func swapNeighbour(categories []domain.Category, idx int, dir Direction) bool {
	target := idx - 1
	if dir == Down {
		target = idx + 1
	}
	if idx < 0 || target < 0 || target >= len(categories) {
		return false
	}
	categories[idx], categories[target] = categories[target], categories[idx]
	return true
}

// dragTo removes the element at from and inserts it at insertAt in the list without it,
// clamped to [0, len-1]. It reports false when the element stays where it was.
func dragTo(categories []domain.Category, from, insertAt int) ([]domain.Category, bool) {
	if from < 0 || from >= len(categories) {
		return categories, false
	}
	moved := categories[from]
	rest := make([]domain.Category, 0, len(categories)-1)
	rest = append(rest, categories[:from]...)
	rest = append(rest, categories[from+1:]...)

	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}
	if insertAt == from {
		return categories, false
	}

	out := make([]domain.Category, 0, len(categories))
	out = append(out, rest[:insertAt]...)
	out = append(out, moved)
	out = append(out, rest[insertAt:]...)
	return out, true
}

// dropToInsert converts a drop-line index measured on the list before removal into the
// post-removal insert index used by dragTo.
func dropToInsert(from, dropIndex int) int {
	if dropIndex > from {
		return dropIndex - 1
	}
	return dropIndex
}

// renumber writes dense orders 0..n-1 in list order and refreshes updatedAt on every
// category whose order changed, or on all of them with touchAll. It reports any change.
func renumber(categories []domain.Category, now time.Time, touchAll bool) bool {
	changed := false
	for i := range categories {
		cur, ok := categories[i].OrderValue()
		if ok && cur == i {
			if touchAll {
				categories[i].UpdatedAt = now
			}
			continue
		}
		categories[i].SetOrder(i)
		categories[i].UpdatedAt = now
		changed = true
	}
	return changed
}
