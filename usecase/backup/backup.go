package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/usecase"
	"github.com/fastygo/tidydo/usecase/settings"
)

// AutoBackupTarget is the key under directory-handles that holds the auto-backup directory.
const AutoBackupTarget = "autoBackup"

// Methods reported in Outcome.Method, in the order they are attempted.
const (
	MethodDirectory = "directory"
	MethodPath      = "path"
	MethodFallback  = "fallback"
	MethodDownload  = "download"
)

// ConfigStore reads and patches the auto-backup section of the app configuration.
type ConfigStore interface {
	AutoBackup(ctx context.Context) (settings.AutoBackup, error)
	UpdateAutoBackup(ctx context.Context, patch map[string]any) (settings.AutoBackup, error)
}

// Outcome describes where a backup went. Data is set only for downloads.
type Outcome struct {
	FileName string `json:"fileName"`
	Method   string `json:"method"`
	Location string `json:"location,omitempty"`
	Size     string `json:"size"`
	Data     []byte `json:"-"`
}

// AutoResult is the outcome of an automatic backup check.
type AutoResult struct {
	Performed bool     `json:"performed"`
	Reason    string   `json:"reason,omitempty"`
	Outcome   *Outcome `json:"outcome,omitempty"`
}

// Status reports the auto-backup configuration as seen today.
type Status struct {
	Enabled          bool                    `json:"enabled"`
	BackupPath       string                  `json:"backupPath"`
	LastBackupDate   string                  `json:"lastBackupDate"`
	NeedsBackupToday bool                    `json:"needsBackupToday"`
	IsPathValid      bool                    `json:"isPathValid"`
	ExpectedFileName string                  `json:"expectedFileName"`
	Directory        *domain.DirectoryTarget `json:"directory,omitempty"`
}

type UseCase struct {
	kv          repository.KVStore
	config      ConfigStore
	reloader    usecase.StateReloader
	logger      *zap.Logger
	fallbackDir string
	now         func() time.Time
}

func New(kv repository.KVStore, config ConfigStore, reloader usecase.StateReloader, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{kv: kv, config: config, reloader: reloader, logger: logger, now: time.Now}
}

// SetFallbackDir sets the directory tried after the stored target and the configured path.
func (uc *UseCase) SetFallbackDir(dir string) {
	uc.fallbackDir = strings.TrimSpace(dir)
}

// SetReloader attaches the state reloader once the container exists.
func (uc *UseCase) SetReloader(reloader usecase.StateReloader) {
	uc.reloader = reloader
}

// FileName is the backup file name for the UTC day of t.
func FileName(t time.Time) string {
	return fmt.Sprintf("tidydo-backup-%s.json", domain.Day(t))
}

var (
	windowsPath  = regexp.MustCompile(`^[A-Za-z]:\\[^<>:"|?*]*$`)
	unixPath     = regexp.MustCompile(`^(/|~/)[^<>:"|?*]*$`)
	relativePath = regexp.MustCompile(`^[^<>:"|?*\\/]+([\\/][^<>:"|?*\\/]+)*$`)
)

// ValidateBackupPath accepts Windows drive paths, absolute or home-relative Unix paths and
// relative paths without reserved characters.
func ValidateBackupPath(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}
	return windowsPath.MatchString(path) || unixPath.MatchString(path) || relativePath.MatchString(path)
}

// SetBackupDirectory records dir as the auto-backup target and as the configured path.
func (uc *UseCase) SetBackupDirectory(ctx context.Context, dir string) (domain.DirectoryTarget, error) {
	dir = strings.TrimSpace(dir)
	if !ValidateBackupPath(dir) {
		return domain.DirectoryTarget{}, domain.NewError(domain.ErrCodeValidation, "invalid backup path "+dir)
	}
	resolved := expandHome(dir)
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return domain.DirectoryTarget{}, usecase.Wrap(uc.logger, "select backup directory", domain.ErrCodeStorage, err)
	}

	targets, err := uc.loadTargets(ctx)
	if err != nil {
		return domain.DirectoryTarget{}, err
	}
	target := domain.DirectoryTarget{Path: resolved, Name: filepath.Base(resolved), StoredAt: uc.now().UTC()}
	targets[AutoBackupTarget] = target
	payload, err := json.Marshal(targets)
	if err != nil {
		return domain.DirectoryTarget{}, usecase.Wrap(uc.logger, "select backup directory", domain.ErrCodeValidation, err)
	}
	if err := uc.kv.Set(ctx, domain.KeyDirectoryHandles, payload); err != nil {
		return domain.DirectoryTarget{}, usecase.Wrap(uc.logger, "select backup directory", domain.ErrCodeStorage, err)
	}
	if _, err := uc.config.UpdateAutoBackup(ctx, map[string]any{"backupPath": dir}); err != nil {
		return domain.DirectoryTarget{}, usecase.Wrap(uc.logger, "select backup directory", domain.ErrCodeBusiness, err)
	}
	uc.logger.Info("backup directory set", zap.String("path", resolved))
	return target, nil
}

// AutoBackup writes today's backup when it is enabled, a path is configured and either the
// last recorded backup is not from today or today's file is missing.
func (uc *UseCase) AutoBackup(ctx context.Context, now time.Time) (AutoResult, error) {
	cfg, err := uc.config.AutoBackup(ctx)
	if err != nil {
		return AutoResult{}, usecase.Wrap(uc.logger, "auto backup", domain.ErrCodeBusiness, err)
	}
	if !cfg.Enabled {
		uc.logger.Debug("auto backup disabled")
		return AutoResult{Reason: "disabled"}, nil
	}
	if strings.TrimSpace(cfg.BackupPath) == "" {
		uc.logger.Warn("auto backup path not set, skipping")
		return AutoResult{Reason: "path not set"}, nil
	}

	today := domain.Day(now)
	if cfg.LastBackupDate == today && uc.todayFileExists(ctx, cfg.BackupPath, now) {
		uc.logger.Debug("auto backup already done today", zap.String("day", today))
		return AutoResult{Reason: "already backed up today"}, nil
	}

	outcome, err := uc.write(ctx, cfg.BackupPath, now)
	if err != nil {
		return AutoResult{}, usecase.Wrap(uc.logger, "auto backup", domain.ErrCodeBusiness, err)
	}
	if _, err := uc.config.UpdateAutoBackup(ctx, map[string]any{"lastBackupDate": today}); err != nil {
		return AutoResult{}, usecase.Wrap(uc.logger, "auto backup", domain.ErrCodeBusiness, err)
	}
	uc.logger.Info("auto backup written",
		zap.String("file", outcome.FileName),
		zap.String("method", outcome.Method),
		zap.String("location", outcome.Location),
	)
	return AutoResult{Performed: true, Outcome: &outcome}, nil
}

// ManualBackup writes a backup now regardless of today's state. Auto-backup must be enabled.
func (uc *UseCase) ManualBackup(ctx context.Context, now time.Time) (Outcome, error) {
	cfg, err := uc.config.AutoBackup(ctx)
	if err != nil {
		return Outcome{}, usecase.Wrap(uc.logger, "manual backup", domain.ErrCodeBusiness, err)
	}
	if !cfg.Enabled {
		return Outcome{}, domain.NewError(domain.ErrCodeBusiness, "auto backup is not enabled")
	}
	outcome, err := uc.write(ctx, cfg.BackupPath, now)
	if err != nil {
		return Outcome{}, usecase.Wrap(uc.logger, "manual backup", domain.ErrCodeBusiness, err)
	}
	if _, err := uc.config.UpdateAutoBackup(ctx, map[string]any{"lastBackupDate": domain.Day(now)}); err != nil {
		return Outcome{}, usecase.Wrap(uc.logger, "manual backup", domain.ErrCodeBusiness, err)
	}
	return outcome, nil
}

func (uc *UseCase) Status(ctx context.Context, now time.Time) (Status, error) {
	cfg, err := uc.config.AutoBackup(ctx)
	if err != nil {
		return Status{}, usecase.Wrap(uc.logger, "read backup status", domain.ErrCodeBusiness, err)
	}
	st := Status{
		Enabled:          cfg.Enabled,
		BackupPath:       cfg.BackupPath,
		LastBackupDate:   cfg.LastBackupDate,
		NeedsBackupToday: cfg.LastBackupDate != domain.Day(now),
		IsPathValid:      ValidateBackupPath(cfg.BackupPath),
		ExpectedFileName: FileName(now),
	}
	if target, ok := uc.storedTarget(ctx); ok {
		st.Directory = &target
	}
	return st, nil
}

// write serialises an export and hands it to the first destination that accepts it:
// the stored directory target, the configured path, the fallback directory, and finally
// the caller as raw bytes.
func (uc *UseCase) write(ctx context.Context, path string, now time.Time) (Outcome, error) {
	doc, err := uc.Export(ctx)
	if err != nil {
		return Outcome{}, err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Outcome{}, domain.WrapError(domain.ErrCodeValidation, "encode backup", err)
	}
	name := FileName(now)
	size := humanize.Bytes(uint64(len(payload)))

	type destination struct {
		method string
		dir    string
	}
	var chain []destination
	if target, ok := uc.storedTarget(ctx); ok {
		chain = append(chain, destination{MethodDirectory, target.Path})
	}
	if path = strings.TrimSpace(path); path != "" && ValidateBackupPath(path) {
		chain = append(chain, destination{MethodPath, expandHome(path)})
	}
	if uc.fallbackDir != "" {
		chain = append(chain, destination{MethodFallback, uc.fallbackDir})
	}

	for _, dest := range chain {
		location, err := writeFile(dest.dir, name, payload)
		if err != nil {
			uc.logger.Warn("backup destination failed, trying next",
				zap.String("method", dest.method),
				zap.String("dir", dest.dir),
				zap.Error(err),
			)
			continue
		}
		return Outcome{FileName: name, Method: dest.method, Location: location, Size: size}, nil
	}
	return Outcome{FileName: name, Method: MethodDownload, Size: size, Data: payload}, nil
}

func writeFile(dir, name string, payload []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	location := filepath.Join(dir, name)
	tmp := location + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, location); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return location, nil
}

func (uc *UseCase) todayFileExists(ctx context.Context, path string, now time.Time) bool {
	name := FileName(now)
	dirs := []string{expandHome(strings.TrimSpace(path))}
	if target, ok := uc.storedTarget(ctx); ok {
		dirs = append([]string{target.Path}, dirs...)
	}
	for _, dir := range dirs {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func (uc *UseCase) storedTarget(ctx context.Context) (domain.DirectoryTarget, bool) {
	targets, err := uc.loadTargets(ctx)
	if err != nil {
		uc.logger.Warn("stored backup directory unreadable", zap.Error(err))
		return domain.DirectoryTarget{}, false
	}
	target, ok := targets[AutoBackupTarget]
	if !ok || target.Path == "" {
		return domain.DirectoryTarget{}, false
	}
	info, err := os.Stat(target.Path)
	if err != nil || !info.IsDir() {
		return domain.DirectoryTarget{}, false
	}
	return target, true
}

func (uc *UseCase) loadTargets(ctx context.Context) (map[string]domain.DirectoryTarget, error) {
	raw, ok, err := uc.kv.Get(ctx, domain.KeyDirectoryHandles)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "read "+domain.KeyDirectoryHandles, err)
	}
	targets := make(map[string]domain.DirectoryTarget)
	if !ok {
		return targets, nil
	}
	if err := json.Unmarshal(raw, &targets); err != nil {
		return nil, domain.WrapError(domain.ErrCodeValidation, "decode "+domain.KeyDirectoryHandles, err)
	}
	if targets == nil {
		targets = make(map[string]domain.DirectoryTarget)
	}
	return targets, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// IsDownload reports whether outcome carries bytes for the caller instead of a written file.
func IsDownload(outcome Outcome) bool {
	return outcome.Method == MethodDownload
}
