package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// =========================================================================
// CONNECTION POOL CONFIGURATION TESTS
// =========================================================================

// Foreign-key enforcement must hold on every connection the pool opens, not
// just the first one. The pragma travels in the DSN for that reason; this
// test pins it by holding several physical connections at once and checking
// each.
func TestNew_ForeignKeysOnEveryPooledConnection(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "pool.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	conns := make([]*sql.Conn, 0, 5)
	t.Cleanup(func() {
		for _, c := range conns {
			c.Close()
		}
	})

	for i := 0; i < 5; i++ {
		conn, err := db.conn.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn() #%d error = %v", i, err)
		}
		conns = append(conns, conn)

		var enabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("PRAGMA foreign_keys on conn #%d: %v", i, err)
		}
		if enabled != 1 {
			t.Errorf("foreign_keys = %d on conn #%d, want 1", enabled, i)
		}
	}
}

func TestNew_InMemorySchemaSurvivesPoolReuse(t *testing.T) {
	db := newTestDB(t)

	// With an unbounded pool every connection to ":memory:" would be a
	// separate empty database and one of these inserts would hit a missing
	// table. New caps the in-memory pool at one connection.
	for i := 0; i < 10; i++ {
		createTestUser(t, db, "Alice Smith", emailN(i))
	}
}

func emailN(i int) string {
	return string(rune('a'+i)) + "@example.com"
}
