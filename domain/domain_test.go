package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"in_progress": StatusInProgress,
		"In-Progress": StatusInProgress,
		"inProgress":  StatusInProgress,
		" pending ":   StatusPending,
		"blocked":     Status("blocked"),
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}

	var it Item
	if err := json.Unmarshal([]byte(`{"status":"in_progress","priority":""}`), &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Status != StatusInProgress {
		t.Fatalf("status = %q", it.Status)
	}
	if it.Priority.OrDefault() != PriorityMedium {
		t.Fatalf("priority default = %q", it.Priority.OrDefault())
	}
}

func TestDateJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-05T22:30:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if d.String() != "2024-03-05" {
		t.Fatalf("date = %s", d)
	}
	raw, _ := json.Marshal(d)
	if string(raw) != `"2024-03-05"` {
		t.Fatalf("marshal = %s", raw)
	}

	var zero Date
	raw, _ = json.Marshal(zero)
	if string(raw) != "null" {
		t.Fatalf("zero date = %s", raw)
	}
	if err := json.Unmarshal([]byte("null"), &d); err != nil || !d.IsZero() {
		t.Fatalf("null did not reset date: %v %v", d, err)
	}
	if err := json.Unmarshal([]byte(`"next week"`), &d); err == nil {
		t.Fatal("expected error for free text date")
	}

	if got := Day(time.Date(2024, 1, 1, 23, 0, 0, 0, time.FixedZone("x", -2*3600))); got != "2024-01-02" {
		t.Fatalf("Day = %s", got)
	}
}

func TestErrorChain(t *testing.T) {
	inner := WrapError(ErrCodeStorage, "write todo-items", errors.New("disk full"))
	outer := WrapError(ErrCodeBusiness, "create item failed", inner)
	wrapped := fmt.Errorf("handler: %w", outer)

	if !IsDomainError(wrapped, ErrCodeBusiness) || !IsDomainError(wrapped, ErrCodeStorage) {
		t.Fatal("codes in the chain not found")
	}
	if IsDomainError(wrapped, ErrCodeNotFound) {
		t.Fatal("unexpected NOT_FOUND")
	}
	if CodeOf(wrapped) != ErrCodeBusiness {
		t.Fatalf("CodeOf = %s", CodeOf(wrapped))
	}
	if UserMessage(wrapped) != "create item failed" {
		t.Fatalf("UserMessage = %q", UserMessage(wrapped))
	}
	if UserMessage(NewError(ErrCodeStorage, "")) != defaultMessages[ErrCodeStorage] {
		t.Fatal("empty message should fall back to the code default")
	}
	if UserMessage(errors.New("plain")) != "plain" {
		t.Fatal("plain errors keep their text")
	}
	if !errors.Is(fmt.Errorf("x: %w", ErrItemNotFound), ErrItemNotFound) {
		t.Fatal("sentinel lost through wrapping")
	}
}

func TestItemOverdue(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	it := Item{EndDate: MustParseDate("2024-06-09"), Status: StatusPending}
	if !it.IsOverdue(now) {
		t.Fatal("past end date should be overdue")
	}
	it.Status = StatusCompleted
	if it.IsOverdue(now) {
		t.Fatal("completed items are never overdue")
	}
	it = Item{Status: StatusPending}
	if it.IsOverdue(now) {
		t.Fatal("items without end date are never overdue")
	}
}
