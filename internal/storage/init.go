// internal/storage/init.go
package storage

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq"
)

// migrationPath is resolved relative to the working directory, next to
// config.yaml.
const migrationPath = "migrations"

func runMigrations(db *sql.DB) error {
	const op = "storage.runMigrations"

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	if err := goose.Up(db, migrationPath); err != nil {
		if err == goose.ErrNoNextVersion {
			return nil
		}
		return fmt.Errorf("%s: %v", op, err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	log.Printf("database schema at version %d", version)
	return nil
}
