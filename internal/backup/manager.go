package backup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	defaultInterval = 30 * time.Minute
	defaultKeepLast = 10
)

// Manager runs periodic local snapshots of the store so custom decks,
// favorites, and history survive a corrupted database file.
type Manager struct {
	store Snapshotter
	cfg   Config
	log   *slog.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// NewManager initializes the backup manager. It returns nil when backups are
// disabled.
func NewManager(store Snapshotter, cfg Config, log *slog.Logger) (*Manager, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if store == nil {
		return nil, fmt.Errorf("backup: nil snapshotter")
	}
	if strings.TrimSpace(store.DBPath()) == "" {
		return nil, fmt.Errorf("backup: store has no file (in-memory)")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("backup: dir is required when backup is enabled")
	}
	if cfg.KeepLast <= 0 {
		cfg.KeepLast = defaultKeepLast
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("backup: create dir: %w", err)
	}

	m := &Manager{
		store: store,
		cfg:   cfg,
		log:   log,
		done:  make(chan struct{}),
	}

	// Startup snapshot to reduce the recovery point after restarts.
	if err := m.RunOnce(); err != nil {
		log.Warn("startup snapshot failed", "error", err)
	}

	m.wg.Add(1)
	go m.loop()
	return m, nil
}

func (m *Manager) loop() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.RunOnce(); err != nil {
				m.log.Warn("periodic snapshot failed", "error", err)
			}
		case <-m.done:
			return
		}
	}
}

// RunOnce creates one snapshot and prunes old copies.
func (m *Manager) RunOnce() error {
	fileName := fmt.Sprintf("unfold-%s-%06d.db",
		time.Now().UTC().Format("20060102-150405"), time.Now().UnixNano()%1000000)
	dstPath := filepath.Join(m.cfg.Dir, fileName)

	if err := m.store.SnapshotTo(dstPath); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	m.log.Debug("created snapshot", "path", dstPath)

	if err := pruneSnapshots(m.cfg.Dir, m.cfg.KeepLast); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Stop terminates the periodic backup loop.
func (m *Manager) Stop() {
	close(m.done)
	m.wg.Wait()
}

func pruneSnapshots(dir string, keepLast int) error {
	if keepLast <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "unfold-*.db"))
	if err != nil {
		return err
	}
	if len(matches) <= keepLast {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		// timestamp is embedded in the filename and lexical sort matches chronology
		return matches[i] > matches[j]
	})

	for _, oldPath := range matches[keepLast:] {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
