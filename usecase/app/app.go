package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/usecase"
	"github.com/fastygo/tidydo/usecase/backup"
	"github.com/fastygo/tidydo/usecase/category"
	"github.com/fastygo/tidydo/usecase/report"
	"github.com/fastygo/tidydo/usecase/view"
)

// DefaultCategoryName is the category created when the store holds none.
const DefaultCategoryName = "Inbox"

const (
	defaultPollInterval = 50 * time.Millisecond
	defaultBackupDelay  = time.Second
)

// ConfigLoader returns the merged configuration document, persisting defaults on first use.
type ConfigLoader interface {
	Load(ctx context.Context) (map[string]any, error)
}

// AutoBackupRunner performs the daily backup check.
type AutoBackupRunner interface {
	AutoBackup(ctx context.Context, now time.Time) (backup.AutoResult, error)
}

// Deps wires the container to its collaborators. Backups may be nil.
type Deps struct {
	Categories  repository.CategoryRepository
	Items       repository.ItemRepository
	SimpleItems repository.SimpleItemRepository
	Config      ConfigLoader
	Backups     AutoBackupRunner
	// BackupDelay postpones the post-bootstrap backup check. Negative disables it.
	BackupDelay time.Duration
	Logger      *zap.Logger
}

// State is the in-memory picture every reader works from.
type State struct {
	Categories  []domain.Category   `json:"categories"`
	Items       []domain.Item       `json:"items"`
	SimpleItems []domain.SimpleItem `json:"simpleItems"`
	Config      map[string]any      `json:"config"`
	Selection   view.Selection      `json:"selection"`
}

// Status reports bootstrap progress and the size of the loaded state.
type Status struct {
	Initialized  bool      `json:"initialized"`
	Initializing bool      `json:"initializing"`
	Categories   int       `json:"categories"`
	Items        int       `json:"items"`
	SimpleItems  int       `json:"simpleItems"`
	LastReload   time.Time `json:"lastReload"`
}

// Container owns the application state. It implements usecase.StateReloader so that
// every successful write is followed by a wholesale reload.
type Container struct {
	categories  repository.CategoryRepository
	items       repository.ItemRepository
	simpleItems repository.SimpleItemRepository
	config      ConfigLoader
	backups     AutoBackupRunner
	backupDelay time.Duration
	logger      *zap.Logger
	now         func() time.Time
	poll        time.Duration

	mu         sync.RWMutex
	state      State
	lastReload time.Time

	flagsMu      sync.Mutex
	initialized  bool
	initializing bool
	initErr      error

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

var _ usecase.StateReloader = (*Container)(nil)

func New(deps Deps) *Container {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	delay := deps.BackupDelay
	if delay == 0 {
		delay = defaultBackupDelay
	}
	return &Container{
		categories:  deps.Categories,
		items:       deps.Items,
		simpleItems: deps.SimpleItems,
		config:      deps.Config,
		backups:     deps.Backups,
		backupDelay: delay,
		logger:      logger,
		now:         time.Now,
		poll:        defaultPollInterval,
		state:       emptyState(),
		stop:        make(chan struct{}),
	}
}

func emptyState() State {
	return State{
		Categories:  []domain.Category{},
		Items:       []domain.Item{},
		SimpleItems: []domain.SimpleItem{},
		Config:      map[string]any{},
		Selection:   view.Default(),
	}
}

// Initialize bootstraps the application once. A caller arriving while another bootstrap
// runs waits for it and shares its outcome. force repeats a completed bootstrap.
func (c *Container) Initialize(ctx context.Context, force bool) error {
	c.flagsMu.Lock()
	if c.initialized && !force {
		c.flagsMu.Unlock()
		return nil
	}
	if c.initializing {
		c.flagsMu.Unlock()
		return c.waitForInitialization(ctx)
	}
	c.initializing = true
	c.initErr = nil
	c.flagsMu.Unlock()

	err := c.bootstrap(ctx)

	c.flagsMu.Lock()
	c.initializing = false
	c.initialized = err == nil
	c.initErr = err
	c.flagsMu.Unlock()

	if err != nil {
		return usecase.Wrap(c.logger, "initialize application", domain.ErrCodeBusiness, err)
	}
	c.logger.Info("application initialized")
	c.scheduleAutoBackup()
	return nil
}

func (c *Container) waitForInitialization(ctx context.Context) error {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		c.flagsMu.Lock()
		initialized, initializing, initErr := c.initialized, c.initializing, c.initErr
		c.flagsMu.Unlock()

		switch {
		case initialized:
			return nil
		case !initializing:
			if initErr == nil {
				initErr = domain.NewError(domain.ErrCodeBusiness, "initialization was reset")
			}
			return domain.WrapError(domain.ErrCodeBusiness, "initialize application failed: "+domain.UserMessage(initErr), initErr)
		}
		c.logger.Debug("waiting for initialization")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Container) bootstrap(ctx context.Context) error {
	if _, err := c.config.Load(ctx); err != nil {
		return err
	}
	if err := c.ensureDefaultCategory(ctx); err != nil {
		return err
	}
	return c.Reload(ctx)
}

func (c *Container) ensureDefaultCategory(ctx context.Context) error {
	categories, err := c.categories.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		return nil
	}
	inbox := domain.Category{Name: DefaultCategoryName, Icon: domain.DefaultCategoryIcon, IsExpanded: true}
	inbox.SetOrder(0)
	saved, err := c.categories.Save(ctx, inbox)
	if err != nil {
		return err
	}
	c.logger.Info("default category created", zap.String("category_id", saved.ID))
	return nil
}

// Reload replaces the in-memory state with a fresh read of the store and repairs the
// selection against the new category list.
func (c *Container) Reload(ctx context.Context) error {
	cfg, err := c.config.Load(ctx)
	if err != nil {
		return usecase.Wrap(c.logger, "reload application data", domain.ErrCodeBusiness, err)
	}
	snapshot, err := report.LoadSnapshot(ctx, c.categories, c.items, c.simpleItems)
	if err != nil {
		return usecase.Wrap(c.logger, "reload application data", domain.ErrCodeBusiness, err)
	}
	categories := category.SortForDisplay(snapshot.Categories)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Categories = categories
	c.state.Items = snapshot.Items
	c.state.SimpleItems = snapshot.SimpleItems
	c.state.Config = cfg
	c.state.Selection.CategoriesUpdated(categories)
	c.state.Selection.Initialize(categories)
	c.lastReload = c.now()
	return nil
}

// Reset drops the loaded state and the bootstrap flags; the next Initialize starts over.
func (c *Container) Reset() {
	c.mu.Lock()
	c.state = emptyState()
	c.lastReload = time.Time{}
	c.mu.Unlock()

	c.flagsMu.Lock()
	c.initialized = false
	c.initErr = nil
	c.flagsMu.Unlock()
	c.logger.Info("application state reset")
}

func (c *Container) Status() Status {
	c.flagsMu.Lock()
	st := Status{Initialized: c.initialized, Initializing: c.initializing}
	c.flagsMu.Unlock()

	c.mu.RLock()
	defer c.mu.RUnlock()
	st.Categories = len(c.state.Categories)
	st.Items = len(c.state.Items)
	st.SimpleItems = len(c.state.SimpleItems)
	st.LastReload = c.lastReload
	return st
}

// State returns a copy of the current state.
func (c *Container) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		Categories:  append([]domain.Category(nil), c.state.Categories...),
		Items:       append([]domain.Item(nil), c.state.Items...),
		SimpleItems: append([]domain.SimpleItem(nil), c.state.SimpleItems...),
		Config:      c.state.Config,
		Selection:   c.state.Selection,
	}
}

// Snapshot returns the loaded records.
func (c *Container) Snapshot() domain.Snapshot {
	s := c.State()
	return domain.Snapshot{Categories: s.Categories, Items: s.Items, SimpleItems: s.SimpleItems}
}

// CurrentItems derives the visible item list from the current selection.
func (c *Container) CurrentItems() []domain.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return view.Derive(c.state.Selection, c.state.Categories, c.state.Items)
}

// Close stops a pending auto-backup check and waits for a running one.
func (c *Container) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
}

func (c *Container) scheduleAutoBackup() {
	if c.backups == nil || c.backupDelay < 0 {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		timer := time.NewTimer(c.backupDelay)
		defer timer.Stop()
		select {
		case <-c.stop:
			return
		case <-timer.C:
		}
		res, err := c.backups.AutoBackup(context.Background(), c.now())
		if err != nil {
			c.logger.Warn("auto backup check failed", zap.Error(err))
			return
		}
		c.logger.Debug("auto backup check finished", zap.Bool("performed", res.Performed), zap.String("reason", res.Reason))
	}()
}
