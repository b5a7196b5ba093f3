// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder syntax for the SQL store.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

const schemaKV = `CREATE TABLE IF NOT EXISTS kv (
	namespace TEXT NOT NULL,
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (namespace, name)
)`

// SQLStore keeps the storage area in a single kv table, one row per key,
// scoped by namespace so several profiles can share a database.
type SQLStore struct {
	db        *sql.DB
	dialect   Dialect
	namespace string
}

// NewSQLStore wraps an open database. It does not run migrations.
func NewSQLStore(db *sql.DB, dialect Dialect, namespace string) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, namespace: namespace}
}

// OpenSQLite creates or opens the SQLite file at path and runs migrations.
func OpenSQLite(ctx context.Context, path, namespace string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := NewSQLStore(db, DialectSQLite, namespace)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenPostgres connects through the pgx stdlib driver and runs migrations.
func OpenPostgres(ctx context.Context, dsn, namespace string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres storage requires a DSN (FIELDKIT_DSN)")
	}
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return nil, fmt.Errorf("invalid postgres DSN: %w", err)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	s := NewSQLStore(db, DialectPostgres, namespace)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the kv table when missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaKV); err != nil {
		return fmt.Errorf("executing migration: %w\nSQL: %s", err, schemaKV)
	}
	return nil
}

// bind rewrites ? placeholders to $n for Postgres.
func (s *SQLStore) bind(q string) string {
	if s.dialect != DialectPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var v string
	err := s.db.QueryRowContext(ctx, s.bind(`SELECT value FROM kv WHERE namespace = ? AND name = ?`), s.namespace, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	q := `INSERT INTO kv (namespace, name, value) VALUES (?, ?, ?)
		ON CONFLICT (namespace, name) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, s.bind(q), s.namespace, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.bind(`DELETE FROM kv WHERE namespace = ? AND name = ?`), s.namespace, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.bind(`DELETE FROM kv WHERE namespace = ?`), s.namespace); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
