package db

import (
	"database/sql"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/gwkit/errors"
)

//go:embed sqlite/migrations/*.sql
var migrations embed.FS

const migrationsDir = "sqlite/migrations"

// Migration is one numbered schema change, e.g. 002_create_persons.sql.
type Migration struct {
	Version string // zero-padded prefix, as recorded in schema_migrations
	Name    string // file name without the prefix and extension
	seq     int
	sql     string
}

func (m Migration) String() string {
	return m.Version + "_" + m.Name
}

// Migrate runs all pending migrations, one transaction each.
// If log is provided, logs migration progress; otherwise operates silently.
func Migrate(db *sql.DB, log *zap.SugaredLogger) error {
	_, err := migrateFS(db, migrations, migrationsDir, log)
	return err
}

func migrateFS(db *sql.DB, fsys fs.FS, dir string, log *zap.SugaredLogger) ([]Migration, error) {
	all, err := loadMigrations(fsys, dir)
	if err != nil {
		return nil, err
	}
	done, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}

	pending := pendingOf(all, done)
	if len(done) == 0 && len(pending) > 0 && pending[0].seq != 0 {
		return nil, errors.Newf("schema_migrations table missing, but first migration is not 000: %s", pending[0])
	}

	var applied []Migration
	for _, m := range pending {
		if log != nil {
			log.Infow("Applying migration",
				"migration", m.String(),
				"version", m.Version,
			)
		}
		if err := applyMigration(db, m); err != nil {
			return applied, err
		}
		applied = append(applied, m)
	}

	if log != nil {
		names := make([]string, len(applied))
		for i, m := range applied {
			names[i] = m.String()
		}
		log.Infow("Migrations complete",
			"total_migrations", len(all),
			"already_applied", len(done),
			"applied", names,
		)
	}
	return applied, nil
}

func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", m)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		return errors.Wrapf(err, "execute %s", m)
	}
	// 000 creates the table, then records itself
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
		return errors.Wrapf(err, "record %s", m)
	}
	return errors.Wrapf(tx.Commit(), "commit %s", m)
}

// loadMigrations reads NNN_name.sql files from dir, ordered by number.
func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}

	seen := make(map[int]string)
	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		file := entry.Name()
		version, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
		seq, convErr := strconv.Atoi(version)
		if !ok || convErr != nil || seq < 0 {
			return nil, errors.Newf("migration %s is not named NNN_name.sql", file)
		}
		if prev, dup := seen[seq]; dup {
			return nil, errors.Newf("migrations %s and %s share version %d", prev, file, seq)
		}
		seen[seq] = file

		body, err := fs.ReadFile(fsys, path.Join(dir, file))
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", file)
		}
		out = append(out, Migration{Version: version, Name: name, seq: seq, sql: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out, nil
}

// appliedVersions returns the recorded versions, empty on a fresh database.
func appliedVersions(db *sql.DB) (map[string]bool, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'").Scan(&n)
	if err != nil {
		return nil, errors.Wrap(err, "inspect schema")
	}
	done := make(map[string]bool)
	if n == 0 {
		return done, nil
	}

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, errors.Wrap(err, "read schema_migrations")
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "scan schema_migrations")
		}
		done[v] = true
	}
	return done, errors.Wrap(rows.Err(), "read schema_migrations")
}

func pendingOf(all []Migration, done map[string]bool) []Migration {
	var out []Migration
	for _, m := range all {
		if !done[m.Version] {
			out = append(out, m)
		}
	}
	return out
}
