package mysql

import (
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const driverName = "mysql"

const errDuplicateEntry = 1062

// Open connects with the settings the repositories rely on: UTC time parsing and found-rows counts.
func Open(dsn string, maxConnections int) (*sqlx.DB, error) {
	normalized, err := normalizeDSN(dsn, false)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, normalized)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql connection")
	}
	if maxConnections > 0 {
		db.SetMaxOpenConns(maxConnections)
		db.SetMaxIdleConns(maxConnections)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}
	return db, nil
}

func normalizeDSN(dsn string, multiStatements bool) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", errors.Wrap(err, "parse mysql dsn")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true
	cfg.MultiStatements = multiStatements
	return cfg.FormatDSN(), nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry
}
