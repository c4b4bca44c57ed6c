package mysql

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending migration. Migration files hold several statements, so it uses its own connection.
func Migrate(dsn string) error {
	normalized, err := normalizeDSN(dsn, true)
	if err != nil {
		return err
	}
	db, err := sql.Open(driverName, normalized)
	if err != nil {
		return errors.Wrap(err, "open mysql connection for migrations")
	}
	defer db.Close()

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "load embedded migrations")
	}
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return errors.Wrap(err, "create migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return errors.Wrap(err, "create migrator")
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("database schema is up to date")
			return nil
		}
		return errors.Wrap(err, "apply migrations")
	}

	version, _, _ := m.Version()
	log.WithField("version", version).Info("database schema migrated")
	return nil
}
