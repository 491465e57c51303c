package commands

import (
	"database/sql"

	"github.com/teranos/gwkit/am"
	"github.com/teranos/gwkit/db"
	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/logger"
)

// openDatabase opens and migrates a database using the specified path.
// If dbPath is empty, it uses the configured database path.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		cfg, err := am.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		dbPath = cfg.GetDatabasePath()
	}

	database, err := db.OpenWithMigrations(dbPath, logger.ComponentLogger("db"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	return database, nil
}
