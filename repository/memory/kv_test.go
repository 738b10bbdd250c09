package memory

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing = ok %v err %v", ok, err)
	}

	value := json.RawMessage(`{"a":1}`)
	if err := s.Set(ctx, "b", value); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "a", json.RawMessage(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value[2] = 'X'

	got, ok, err := s.Get(ctx, "b")
	if err != nil || !ok {
		t.Fatalf("Get b = ok %v err %v", ok, err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}

	keys, _ := s.Keys(ctx)
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("Keys = %v", keys)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	keys, _ = s.Keys(ctx)
	if len(keys) != 0 {
		t.Fatalf("Keys after Clear = %v", keys)
	}
}
