// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		query   string
		want    string
	}{
		{DialectSQLite, "SELECT * FROM posts WHERE id = ? AND topic_id = ?", "SELECT * FROM posts WHERE id = ? AND topic_id = ?"},
		{DialectPostgres, "SELECT * FROM posts WHERE id = ? AND topic_id = ?", "SELECT * FROM posts WHERE id = $1 AND topic_id = $2"},
		{DialectPostgres, "SELECT 1", "SELECT 1"},
		{DialectPostgres, "IN (?, ?, ?) LIMIT ?", "IN ($1, $2, $3) LIMIT $4"},
	}

	for _, tt := range tests {
		s := &Store{dialect: tt.dialect}
		if got := s.rebind(tt.query); got != tt.want {
			t.Errorf("rebind(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	for n, want := range map[int]string{0: "", 1: "?", 3: "?, ?, ?"} {
		if got := placeholders(n); got != want {
			t.Errorf("placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestConstraintClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		unique bool
		fk     bool
	}{
		{"pq unique", &pq.Error{Code: "23505"}, true, false},
		{"pq foreign key", &pq.Error{Code: "23503"}, false, true},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true, false},
		{"pgx foreign key wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), false, true},
		{"pgx other", &pgconn.PgError{Code: "40001"}, false, false},
		{"plain error", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.unique {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.unique)
			}
			if got := IsForeignKeyViolation(tt.err); got != tt.fk {
				t.Errorf("IsForeignKeyViolation() = %v, want %v", got, tt.fk)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	if DialectFor(TypeSQLite) != DialectSQLite {
		t.Error("sqlite should use the sqlite dialect")
	}
	if DialectFor(TypePostgres) != DialectPostgres || DialectFor(TypePgx) != DialectPostgres {
		t.Error("postgres drivers should use the postgres dialect")
	}
}

func TestSQLiteDSN(t *testing.T) {
	dir := t.TempDir()
	dsn, err := sqliteDSN(dir + "/nested/db.sqlite")
	if err != nil {
		t.Fatalf("sqliteDSN() error = %v", err)
	}
	want := "file:" + dir + "/nested/db.sqlite?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if dsn != want {
		t.Errorf("sqliteDSN() = %q, want %q", dsn, want)
	}
}
