package store

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hashicorp/go-multierror"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date.
func Migrate(config Config) (err error) {
	databaseURL, err := config.MigrationURL()
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("could not read migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("could not initialize migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = multierror.Append(err, srcErr, dbErr).ErrorOrNil()
	}()

	fromVersion, _, _ := m.Version()
	start := time.Now()
	switch err = m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		err = nil
	case err != nil:
		log.WithError(err).Error("store.migrate")
		return fmt.Errorf("migration failed: %w", err)
	}
	toVersion, _, _ := m.Version()

	log.
		WithField("from", fromVersion).
		WithField("to", toVersion).
		WithField("duration", time.Since(start)).
		Info("store.migrate")
	return nil
}
