package db

import (
	"embed"
	"fmt"
	"path"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies the schema for the connected dialect. Every migration is
// idempotent, so it runs on each start.
func (db *DB) Migrate() error {
	db.log.Debug("running tracker migrations", "driver", db.driver)

	dir := path.Join("migrations", "postgres")
	if db.driver == DriverSQLite {
		dir = path.Join("migrations", "sqlite")
	}

	entries, err := migrations.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, e := range entries {
		body, err := migrations.ReadFile(path.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		if _, err := db.conn.Exec(string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", e.Name(), err)
		}
	}

	db.log.Debug("tracker migrations finished")
	return nil
}
