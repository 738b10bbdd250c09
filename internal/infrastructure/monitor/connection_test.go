package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fastygo/tidydo/repository/memory"
)

type offlineStore struct{ *memory.Store }

func (offlineStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestRefreshReportsOnline(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_ = store.Set(ctx, "todo-items", json.RawMessage(`[]`))

	m := New(store, "memory", 0, nil)
	status := m.Refresh(ctx)
	if !status.Online || status.Keys != 1 || status.Backend != "memory" {
		t.Fatalf("status = %+v", status)
	}
	if !m.IsOnline() {
		t.Fatal("IsOnline = false after successful refresh")
	}
}

func TestRefreshReportsOffline(t *testing.T) {
	m := New(offlineStore{memory.New()}, "redis", 0, nil)
	status := m.Refresh(context.Background())
	if status.Online {
		t.Fatal("expected offline status")
	}
	if status.LastError == "" {
		t.Fatal("expected error text")
	}
	m.Stop()
	m.Stop()
}
