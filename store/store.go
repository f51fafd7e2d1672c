package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/arloliu/fitmatch/errs"
	"github.com/arloliu/fitmatch/internal/options"
)

// Table names used by the save and load methods.
const (
	TableTraining = "training_data"
	TableIdeal    = "ideal_functions"
	TableBestFits = "best_fits"
	TableTestData = "test_data"
	TableRuns     = "runs"
)

// Store wraps a SQLite database holding fitmatch tables.
//
// A Store is safe for concurrent readers; writers should serialize at the
// call site, matching SQLite's own locking model.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	closed atomic.Bool
}

type config struct {
	logger *zap.Logger
}

// Option is a functional option for Open.
type Option = options.Option[*config]

// WithLogger attaches a zap logger for save and load diagnostics. The
// default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return options.New(func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		cfg.logger = logger

		return nil
	})
}

// Open opens (or creates) the SQLite database at path. Use ":memory:" for an
// ephemeral database.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := &config{logger: zap.NewNop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	// SQLite allows a single writer; one pooled connection also keeps
	// ":memory:" databases on a single backing instance.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	return &Store{db: db, logger: cfg.logger}, nil
}

// Close releases the underlying database. Further calls are no-ops.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	return s.db.Close()
}

// guard rejects operations on a closed store.
func (s *Store) guard() error {
	if s.closed.Load() {
		return errs.ErrStoreClosed
	}

	return nil
}

// NewRunID returns a fresh run identifier for the runs table.
func NewRunID() string {
	return uuid.NewString()
}

// quoteIdent quotes a SQL identifier. Series names come from CSV headers,
// so they are treated as untrusted input.
func quoteIdent(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "\"\x00") {
		return "", fmt.Errorf("invalid sql identifier %q", name)
	}

	return `"` + name + `"`, nil
}
