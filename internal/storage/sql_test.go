package storage

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupPostgresMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	store := NewSQLStore(db, DialectPostgres, "fieldkit")
	cleanup := func() { db.Close() }
	return store, mock, cleanup
}

func TestSQLStore_Postgres_GetFound(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE namespace = $1 AND name = $2`)).
		WithArgs("fieldkit", KeyToken).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("csrf-123"))

	v, ok, err := store.Get(KeyToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || v != "csrf-123" {
		t.Errorf("Get() = (%q, %v), want (%q, true)", v, ok, "csrf-123")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSQLStore_Postgres_GetMissing(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE namespace = $1 AND name = $2`)).
		WithArgs("fieldkit", KeyEmail).
		WillReturnError(sql.ErrNoRows)

	_, ok, err := store.Get(KeyEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSQLStore_Postgres_SetUpserts(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv (namespace, name, value) VALUES ($1, $2, $3)`)).
		WithArgs("fieldkit", KeyFarmName, "Green Acres").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Set(KeyFarmName, "Green Acres"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSQLStore_Postgres_ClearDeletesNamespace(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE namespace = $1`)).
		WithArgs("fieldkit").
		WillReturnResult(sqlmock.NewResult(0, 7))

	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSQLStore_Postgres_RemoveError(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE namespace = $1 AND name = $2`)).
		WithArgs("fieldkit", KeyPassword).
		WillReturnError(errors.New("connection reset"))

	if err := store.Remove(KeyPassword); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSQLStore_Bind(t *testing.T) {
	pg := NewSQLStore(nil, DialectPostgres, "ns")
	lite := NewSQLStore(nil, DialectSQLite, "ns")
	q := `DELETE FROM kv WHERE namespace = ? AND name = ?`

	if got, want := pg.bind(q), `DELETE FROM kv WHERE namespace = $1 AND name = $2`; got != want {
		t.Errorf("postgres bind = %q, want %q", got, want)
	}
	if got := lite.bind(q); got != q {
		t.Errorf("sqlite bind = %q, want unchanged", got)
	}
}
