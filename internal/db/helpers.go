package db

import "database/sql"

// QueryRower is the subset of *sql.DB the schema helpers need; tests pass
// sqlmock through it.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// HasTable reports whether the current schema has the named table.
func HasTable(q QueryRower, table string) bool {
	if q == nil {
		return false
	}
	var name string
	err := q.QueryRow(`
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	return err == nil
}

// HasColumn reports whether the named table has the named column.
func HasColumn(q QueryRower, table, column string) bool {
	if q == nil {
		return false
	}
	var name string
	err := q.QueryRow(`
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	return err == nil
}
