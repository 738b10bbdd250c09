package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastygo/tidydo/usecase/backup"
)

type countingRunner struct {
	calls int
	err   error
}

func (r *countingRunner) AutoBackup(context.Context, time.Time) (backup.AutoResult, error) {
	r.calls++
	return backup.AutoResult{Performed: r.err == nil}, r.err
}

type staticHealth bool

func (s staticHealth) IsOnline() bool { return bool(s) }

func TestRunOnceSkipsWhileOffline(t *testing.T) {
	runner := &countingRunner{}
	bs, err := NewBackupScheduler(runner, staticHealth(false), nil, SchedulerConfig{})
	if err != nil {
		t.Fatalf("NewBackupScheduler: %v", err)
	}
	if err := bs.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if runner.calls != 0 {
		t.Fatalf("runner called %d times while offline", runner.calls)
	}
}

func TestRunOncePropagatesFailure(t *testing.T) {
	runner := &countingRunner{err: errors.New("disk full")}
	bs, err := NewBackupScheduler(runner, staticHealth(true), nil, SchedulerConfig{Schedule: "@every 1h"})
	if err != nil {
		t.Fatalf("NewBackupScheduler: %v", err)
	}
	if err := bs.RunOnce(context.Background()); err == nil || runner.calls != 1 {
		t.Fatalf("RunOnce err = %v, calls = %d", err, runner.calls)
	}
	bs.Start()
	bs.Stop(context.Background())
}

func TestInvalidSchedule(t *testing.T) {
	if _, err := NewBackupScheduler(&countingRunner{}, nil, nil, SchedulerConfig{Schedule: "every tuesday"}); err == nil {
		t.Fatal("invalid schedule accepted")
	}
}
