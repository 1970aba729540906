package migrations

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRun_FreshDB(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, Run(db))

	tables := []string{
		"organizations", "teams", "users", "projects", "boards",
		"sprints", "issues", "time_logs", "notes", "audit_logs",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, Run(db))
	require.NoError(t, Run(db))
}

func TestSchema_IssueColumns(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Run(db))

	rows, err := db.Query(`PRAGMA table_info(issues)`)
	require.NoError(t, err)
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid, notnull, pk int
		var name, typ string
		var dflt any
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk))
		columns[name] = true
	}
	require.NoError(t, rows.Err())

	for _, col := range []string{
		"id", "project_id", "board_id", "sprint_id", "assignee_id",
		"title", "type", "status", "estimate_hours", "time_spent_hours",
		"order_in_column", "version", "created_at", "updated_at",
	} {
		require.True(t, columns[col], "column %s should exist", col)
	}
}

func TestSchema_ColumnOrderIndex(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Run(db))

	indexes := make(map[string]bool)
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='index' AND tbl_name='issues'`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		indexes[name] = true
	}
	require.NoError(t, rows.Err())

	require.True(t, indexes["idx_issues_board_status"], "column-order index should exist")
}
