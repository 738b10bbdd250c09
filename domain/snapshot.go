package domain

// Snapshot is the full set of records at one point in time.
type Snapshot struct {
	Categories  []Category   `json:"categories"`
	Items       []Item       `json:"items"`
	SimpleItems []SimpleItem `json:"simpleItems"`
}

// ActiveItems returns the non-archived items.
func (s Snapshot) ActiveItems() []Item {
	out := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if !it.Archived {
			out = append(out, it)
		}
	}
	return out
}
