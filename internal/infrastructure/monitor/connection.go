package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/repository"
)

// Monitor periodically pings the record store backend and caches the result for /health.
type Monitor struct {
	store   repository.KVStore
	backend string

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(store repository.KVStore, backend string, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		backend:  backend,
		status:   Status{Backend: backend},
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Online
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh checks the backend now and returns the new status.
func (m *Monitor) Refresh(ctx context.Context) Status {
	status := m.check(ctx)

	m.mu.Lock()
	wasOnline := m.status.Online
	m.status = status
	m.mu.Unlock()

	if wasOnline && !status.Online {
		m.logger.Warn("storage backend went offline", zap.String("backend", m.backend), zap.String("error", status.LastError))
	}
	return status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh(context.Background())
	for {
		select {
		case <-ticker.C:
			m.Refresh(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) check(parent context.Context) Status {
	status := Status{Backend: m.backend, LastCheck: time.Now()}
	if m.store == nil {
		status.LastError = "store not configured"
		return status
	}

	ctx, cancel := context.WithTimeout(parent, 3*time.Second)
	defer cancel()

	if err := m.store.Ping(ctx); err != nil {
		status.LastError = err.Error()
		return status
	}
	keys, err := m.store.Keys(ctx)
	if err != nil {
		m.logger.Warn("storage key listing failed", zap.Error(err))
		status.LastError = err.Error()
		return status
	}
	status.Online = true
	status.Keys = len(keys)
	return status
}
