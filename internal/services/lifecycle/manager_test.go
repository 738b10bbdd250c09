package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestShutdownRunsHooksInReverseAndCombinesErrors(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	errStore := errors.New("store close failed")
	errHTTP := errors.New("http shutdown failed")

	m.Register("store", func(context.Context) error {
		order = append(order, "store")
		return errStore
	})
	m.Register("scheduler", func(context.Context) error {
		order = append(order, "scheduler")
		return nil
	})
	m.Register("http", func(context.Context) error {
		order = append(order, "http")
		return errHTTP
	})
	m.Register("ignored", nil)

	if got := m.Names(); len(got) != 3 {
		t.Fatalf("Names = %v", got)
	}
	err := m.Shutdown(context.Background())
	if len(order) != 3 || order[0] != "http" || order[2] != "store" {
		t.Fatalf("order = %v", order)
	}
	errs := multierr.Errors(err)
	if len(errs) != 2 || !errors.Is(err, errStore) || !errors.Is(err, errHTTP) {
		t.Fatalf("err = %v", err)
	}
	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown = %v", err)
	}
}

func TestShutdownHonoursTimeout(t *testing.T) {
	m := New(10*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err := m.Shutdown(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
}
