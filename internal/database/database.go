package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB is the store handle shared by all services.
type DB struct {
	*sqlx.DB
	// Builder produces queries with the placeholder format of the driver.
	Builder sq.StatementBuilderType
}

// New wraps an existing connection pool. driverName picks the placeholder format.
func New(conn *sqlx.DB, driverName string) *DB {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if driverName == DriverPostgres {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &DB{DB: conn, Builder: builder}
}

// Open creates a new database connection pool and verifies it with a ping.
func Open(ctx context.Context, driverName, dataSourceName string) (*DB, error) {
	dsn := dataSourceName
	switch driverName {
	case DriverSQLite:
		// A full "file:" URI is used as given.
		if !strings.HasPrefix(dataSourceName, "file:") {
			dsn = "file:" + dataSourceName + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}

	conn, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if driverName == DriverSQLite {
		// SQLite allows a single writer; serialise through one connection.
		conn.SetMaxOpenConns(1)
	}
	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return New(conn, driverName), nil
}

// Migrate runs the SQL statements to set up the database schema.
func (db *DB) Migrate(ctx context.Context) error {
	stmts := sqliteSchema
	if db.DriverName() == DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when it returns an error or panics.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err was caused by a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
