package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresStore(db), mock, db
}

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*email,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id\s*$`
	findQuery   = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+LOWER\(email\)\s*=\s*LOWER\(\$1\)\s*$`
	nameQuery   = `(?s)^SELECT\s+name\s+FROM\s+users\s+WHERE\s+LOWER\(email\)\s*=\s*LOWER\(\$1\)\s*$`
)

func TestPostgresInsert_Success(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("Ann", "ann@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	id, err := store.Insert(context.Background(), NewUser{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != "u-1" {
		t.Fatalf("unexpected id: %s", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresInsert_Duplicate(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("Ann", "ann@x.com", "hash").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := store.Insert(context.Background(), NewUser{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestPostgresInsert_DBError(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("Ann", "ann@x.com", "hash").
		WillReturnError(errors.New("db down"))

	_, err := store.Insert(context.Background(), NewUser{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgresFindByEmail_Found(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(findQuery).
		WithArgs("ann@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow("u-1", "Ann", "ann@x.com", "hash", created))

	got, err := store.FindByEmail(context.Background(), "ann@x.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if got == nil || got.ID != "u-1" || got.Name != "Ann" || got.PasswordHash != "hash" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestPostgresFindByEmail_NotFound(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	got, err := store.FindByEmail(context.Background(), "nobody@x.com")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", got, err)
	}
}

func TestPostgresFindByEmail_DBError(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WithArgs("ann@x.com").
		WillReturnError(errors.New("conn reset"))

	if _, err := store.FindByEmail(context.Background(), "ann@x.com"); err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresFindNameByEmail(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(nameQuery).
		WithArgs("ann@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Ann"))
	mock.ExpectQuery(nameQuery).
		WithArgs("gone@x.com").
		WillReturnError(sql.ErrNoRows)

	name, found, err := store.FindNameByEmail(context.Background(), "ann@x.com")
	if err != nil || !found || name != "Ann" {
		t.Fatalf("unexpected result: %q %v %v", name, found, err)
	}

	_, found, err = store.FindNameByEmail(context.Background(), "gone@x.com")
	if err != nil || found {
		t.Fatalf("expected not found, got found=%v err=%v", found, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
