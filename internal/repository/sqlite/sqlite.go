// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// SQLite is embedded — the whole store is a single file (or ":memory:" for
// tests), with no server process to run. We use modernc.org/sqlite rather
// than mattn/go-sqlite3 because it is a pure Go translation of SQLite: no
// CGo, no C compiler, cross-compiles everywhere Go does.
//
// The schema is also where the core invariants live. Uniqueness of the login
// email and the shape checks on every column are enforced by the database
// itself, atomically, regardless of what the service layer validated. When
// one of those constraints fires, constraint.go translates the driver error
// into the application's error taxonomy.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" in its init().
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements both repository
// interfaces. New creates it, Close tears it down; the server owns the
// lifecycle.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath (":memory:" for an ephemeral one),
// configures the connection pool, and creates the schema.
//
// Two PRAGMAs matter here:
//   - journal_mode=WAL lets reads proceed concurrently with a write, which a
//     web server needs.
//   - foreign_keys=ON because SQLite ships with foreign-key enforcement OFF
//     for backwards compatibility. Without it, ON DELETE CASCADE on
//     jobs.created_by would silently do nothing.
//
// Both are passed as _pragma DSN parameters rather than executed with Exec:
// sql.DB is a connection pool, and an Exec'd PRAGMA only configures the one
// connection that happened to serve it. The driver applies _pragma params to
// every connection it opens.
func New(dbPath string) (*DB, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each connection to ":memory:" is its own empty database, so the pool
	// must be capped at a single connection for the schema to be visible to
	// every query.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// Force an immediate connection so a bad path fails at startup, not on
	// the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New — it
// flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the tables. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup; there is no versioned migration history here.
//
// The CHECK constraints are the storage-boundary contract: name 3..50 chars,
// email must look like an address and be unique, password hash at least 6
// chars, role/company length caps, status restricted to the three allowed
// values. The error messages SQLite produces for these exact expressions are
// what the translator in constraint.go parses, so changing a constraint
// means updating the pinned tests there too.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY,
			name     TEXT NOT NULL CHECK(length(name) >= 3 AND length(name) <= 50),
			email    TEXT NOT NULL UNIQUE CHECK(email LIKE '%@%.%'),
			password TEXT NOT NULL CHECK(length(password) >= 6)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			role       TEXT NOT NULL CHECK(length(role) <= 100),
			company    TEXT NOT NULL CHECK(length(company) <= 50),
			status     TEXT NOT NULL DEFAULT 'pending'
			           CHECK(status IN ('interview', 'pending', 'declined')),
			created_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_jobs_created_by ON jobs(created_by);
	`)
	if err != nil {
		return fmt.Errorf("creating jobs table: %w", err)
	}

	return nil
}
