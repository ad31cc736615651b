// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database types, matching cliparse
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypePgx      = "pgx"
)

// Dialect is the SQL flavour a Store speaks.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DialectFor maps a database type to its SQL dialect.
func DialectFor(dbType string) Dialect {
	if dbType == TypeSQLite {
		return DialectSQLite
	}
	return DialectPostgres
}

// Open connects to the configured database. For sqlite the URL is a file
// path; foreign keys and a busy timeout are always enabled and the pool is
// limited to one connection so writers never race each other.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case TypeSQLite:
		dsn, err := sqliteDSN(url)
		if err != nil {
			return nil, err
		}
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		conn.SetMaxOpenConns(1)
		return conn, nil
	case TypePostgres, TypePgx:
		conn, err := sql.Open(dbType, url)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", dbType, err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

func sqliteDSN(url string) (string, error) {
	path := strings.TrimPrefix(url, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path != ":memory:" && path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := url
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
}
