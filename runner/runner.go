package runner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dhcgn/msg-ledger/config"
	"github.com/dhcgn/msg-ledger/report"
	"github.com/dhcgn/msg-ledger/state"
	"github.com/dhcgn/msg-ledger/store"
)

// Runner wires one command invocation: the configured backend, the store
// loaded from it and the report engine on top.
type Runner struct {
	cfg    config.Config
	logger *slog.Logger

	backend state.Backend
	store   *store.Store
	reports *report.Engine

	loadErr error
	since   time.Time
}

// New opens the backend and loads the store. Collections that fail to load
// start empty; the failure is kept in LoadErr rather than returned.
func New(cfg config.Config, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}

	return NewWithBackend(cfg, backend, logger), nil
}

// NewWithBackend is New with an already opened backend.
func NewWithBackend(cfg config.Config, backend state.Backend, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	s := store.New(backend, logger)
	r := &Runner{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		store:   s,
		reports: report.New(s),
		since:   time.Now(),
	}
	r.loadErr = s.Initialize()
	return r
}

// OpenBackend selects the storage backend named in cfg.
func OpenBackend(cfg config.Config) (state.Backend, error) {
	switch cfg.Backend {
	case config.BackendJSON, "":
		return state.NewFileBackend(cfg.DataDir)
	case config.BackendBadger:
		return state.OpenBadgerBackend(filepath.Join(cfg.DataDir, "badger"))
	case config.BackendSQLite:
		return state.OpenSQLiteBackend(filepath.Join(cfg.DataDir, "ledger.db"))
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func (r *Runner) Config() config.Config {
	return r.cfg
}

func (r *Runner) Logger() *slog.Logger {
	return r.logger
}

func (r *Runner) Store() *store.Store {
	return r.store
}

func (r *Runner) Reports() *report.Engine {
	return r.reports
}

// LoadErr is the joined load failure from startup, or nil.
func (r *Runner) LoadErr() error {
	return r.loadErr
}

// Close releases the backend.
func (r *Runner) Close() error {
	err := r.backend.Close()
	r.logger.Debug("runner closed", "duration", time.Since(r.since), "err", err)
	return err
}
