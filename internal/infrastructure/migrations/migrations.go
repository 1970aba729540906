// Package migrations applies the alphawork database schema.
//
// Migrations are embedded SQL files run through golang-migrate. The stock
// golang-migrate sqlite3 driver imports mattn/go-sqlite3, which collides
// with the ncruces driver registration, so this package ships its own
// database.Driver implementation that works against any sql.DB opened via
// ncruces/go-sqlite3.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var embeddedFS embed.FS

// FS returns the embedded migration files, exposed for tests.
func FS() fs.FS {
	return embeddedFS
}

// Run applies all pending migrations to db. A fully migrated database is
// not an error.
func Run(db *sql.DB) error {
	source, err := iofs.New(embeddedFS, ".")
	if err != nil {
		return err
	}

	driver, err := WithInstance(db, &Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
