// Package store persists resolved GW graphs to SQLite. Each import is a run
// identified by a UUID; runs never overwrite each other.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/teranos/gwkit/db"
	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/logger"
	"github.com/teranos/gwkit/version"
)

// ErrIncompatibleSchema is returned when the database was last written by a
// newer major version of gwkit.
var ErrIncompatibleSchema = errors.New("database written by an incompatible gwkit version")

// writerVersionKey is the meta row holding the version of the last writer.
const writerVersionKey = "writer_version"

// RunID identifies one import.
type RunID string

// Run describes one import.
type Run struct {
	ID          RunID     `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	ToolVersion string    `json:"tool_version" yaml:"tool_version"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	Persons     int       `json:"persons" yaml:"persons"`
	Families    int       `json:"families" yaml:"families"`
	Dummies     int       `json:"dummies" yaml:"dummies"`
}

// Store reads and writes import runs.
type Store struct {
	db          *sql.DB
	log         *zap.SugaredLogger
	toolVersion string
	now         func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithToolVersion overrides the version recorded for writes.
func WithToolVersion(v string) Option {
	return func(s *Store) { s.toolVersion = v }
}

// New returns a store over a migrated database. A nil log uses the
// "store" component logger.
func New(conn *sql.DB, log *zap.SugaredLogger, opts ...Option) *Store {
	if log == nil {
		log = logger.ComponentLogger("store")
	}
	s := &Store{db: conn, log: log, now: time.Now}
	if sv, err := version.Get().Semver(); err == nil {
		s.toolVersion = sv.String()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckCompatible refuses a database last written by a newer major version.
func (s *Store) CheckCompatible(ctx context.Context) error {
	var stored string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", writerVersionKey).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return wrapDB(err, "read writer version")
	}

	written, err := semver.NewVersion(stored)
	if err != nil {
		return errors.Wrapf(err, "parse stored writer version %q", stored)
	}
	current, err := semver.NewVersion(s.toolVersion)
	if err != nil {
		return errors.Wrapf(err, "parse tool version %q", s.toolVersion)
	}
	if written.Major() > current.Major() {
		return errors.WithHintf(
			errors.Wrapf(ErrIncompatibleSchema, "written by %s, this is %s", written, current),
			"upgrade gwkit to %d.x or use a different --db", written.Major())
	}
	return nil
}

// Runs lists all imports, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, tool_version, started_at, persons, families, dummies
		FROM import_runs
		ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, wrapDB(err, "query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.ToolVersion, &r.StartedAt, &r.Persons, &r.Families, &r.Dummies); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "iterate runs")
}

// Run returns one import.
func (s *Store) Run(ctx context.Context, id RunID) (*Run, error) {
	r := Run{ID: id}
	err := s.db.QueryRowContext(ctx, `
		SELECT source, tool_version, started_at, persons, families, dummies
		FROM import_runs WHERE id = ?`, string(id)).
		Scan(&r.Source, &r.ToolVersion, &r.StartedAt, &r.Persons, &r.Families, &r.Dummies)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("run %s", id)
	}
	if err != nil {
		return nil, wrapDB(err, "query run")
	}
	return &r, nil
}

func wrapDB(err error, what string) error {
	if db.IsDatabaseClosed(err) {
		return errors.Wrap(db.ErrDatabaseClosed, what)
	}
	return errors.Wrap(err, what)
}
