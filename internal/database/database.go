package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Table Structure:
//
// CREATE TABLE companies (
//   handle VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
//   name TEXT UNIQUE NOT NULL,
//   num_employees INTEGER CHECK (num_employees >= 0),
//   description TEXT NOT NULL,
//   logo_url TEXT
// );
//
// CREATE TABLE jobs (
//   id SERIAL PRIMARY KEY,
//   title TEXT NOT NULL,
//   salary INTEGER CHECK (salary >= 0),
//   equity NUMERIC CHECK (equity <= 1.0),
//   company_handle VARCHAR(25) NOT NULL
//     REFERENCES companies ON DELETE CASCADE
// );
//
// CREATE INDEX jobs_company_handle_idx ON jobs (company_handle);

var (
	// ErrDuplicateKey is returned when a unique constraint is violated.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrRecordNotFound is returned when a single row lookup matched nothing.
	ErrRecordNotFound = errors.New("record not found")
)

// Handler is the subset of *sql.DB the repositories need. *DB, *sql.DB and
// *sql.Tx all satisfy it.
type Handler interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// DB wraps a connection pool and traces every statement it runs.
type DB struct {
	*sql.DB
	logger    zerolog.Logger
	slowQuery time.Duration
}

// New wraps conn. Statements taking longer than slowQuery are logged at warn
// level; a zero slowQuery disables the warning.
func New(conn *sql.DB, logger zerolog.Logger, slowQuery time.Duration) *DB {
	return &DB{DB: conn, logger: logger, slowQuery: slowQuery}
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.trace(time.Now(), query, args)
	return d.DB.QueryContext(ctx, query, args...)
}

// QueryRowContext only times dispatching the statement. Row fetching and
// any error surface later in Scan, so a slow single row read is traced with
// the dispatch time and may not trigger the slow query warning.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.trace(time.Now(), query, args)
	return d.DB.QueryRowContext(ctx, query, args...)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.trace(time.Now(), query, args)
	return d.DB.ExecContext(ctx, query, args...)
}

func (d *DB) trace(start time.Time, query string, args []interface{}) {
	elapsed := time.Since(start)
	query = strings.Join(strings.Fields(query), " ")
	if d.slowQuery > 0 && elapsed > d.slowQuery {
		d.logger.Warn().
			Str("query", query).
			Interface("args", args).
			Dur("elapsed", elapsed).
			Msg("slow query")
		return
	}
	d.logger.Debug().
		Str("query", query).
		Interface("args", args).
		Dur("elapsed", elapsed).
		Msg("trace")
}

// WrapError maps driver errors to ErrRecordNotFound and ErrDuplicateKey.
// Other errors are returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrDuplicateKey
	}
	return err
}

func GetDbConn(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open postgres connection")
	}
	err = db.Ping()
	if err != nil {
		return nil, errors.Wrap(err, "unable to ping postgres")
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// CloseDbConn closes db conn
func CloseDbConn(conn *sql.DB) {
	conn.Close()
}
