package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unfoldapp/unfold/internal/backup"
	"github.com/unfoldapp/unfold/internal/catalog"
	"github.com/unfoldapp/unfold/internal/deck"
	"github.com/unfoldapp/unfold/internal/favorites"
	"github.com/unfoldapp/unfold/internal/game"
	"github.com/unfoldapp/unfold/internal/history"
	"github.com/unfoldapp/unfold/internal/model"
	"github.com/unfoldapp/unfold/internal/store"
	"github.com/unfoldapp/unfold/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/unfold/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Unfold - Conversation Cards\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading deck catalog: %w", err)
	}

	kv, closeKV := openStore(cfg, log)
	defer closeKV()

	if db, ok := kv.(*store.SQLite); ok {
		mgr, err := backup.NewManager(db, backup.Config{
			Enabled:  cfg.BackupEnabled,
			Interval: cfg.BackupInterval,
			Dir:      cfg.BackupDir,
			KeepLast: cfg.BackupKeepLast,
		}, log)
		if err != nil {
			log.Warn("backups disabled", "error", err)
		} else if mgr != nil {
			defer mgr.Stop()
		}
	}

	// First run only: seed the journey sizing preference from config. Once
	// the player changes it in-app, the stored value wins.
	if _, ok, err := kv.Get(model.KeyCardsPerDeck); err == nil && !ok {
		if raw, err := json.Marshal(cfg.CardsPerDeck); err == nil {
			_ = kv.Set(model.KeyCardsPerDeck, raw)
		}
	}

	custom := deck.NewRegistry(kv, log)
	engine := deck.NewEngine(cat, custom, kv, log)
	favs := favorites.New(kv, log)
	hist := history.New(kv, log)
	session := game.NewSession(cat, engine, custom, favs, hist, kv, log)

	m := tui.NewModel(session, tui.Config{ReduceMotion: cfg.ReduceMotion}, log)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("unfold requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// openStore opens the on-disk store, falling back to an in-memory one when
// the data directory is unusable. The game still plays; it just forgets.
func openStore(cfg cliConfig, log *slog.Logger) (store.KV, func()) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Warn("data directory unavailable, state will not persist", "dir", cfg.DataDir, "error", err)
		return store.NewMemory(), func() {}
	}

	dbPath := filepath.Join(cfg.DataDir, "unfold.db")
	db, err := store.OpenSQLite(dbPath)
	if err != nil {
		log.Warn("opening store failed, state will not persist", "path", dbPath, "error", err)
		return store.NewMemory(), func() {}
	}
	return db, func() { db.Close() }
}
