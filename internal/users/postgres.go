package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/yourusername/exercise-hub/internal/users/migrations"
)

// DBTX は *sql.DB と *sql.Tx の共通部分です。
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore は PostgreSQL の users テーブルを使うストアです。
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore は既存の接続から PostgresStore を作成します。
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres は DSN で接続を開き、疎通確認とマイグレーションを行います。
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}

// Migrate は埋め込み済みのマイグレーションを適用します。
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Insert はユーザーを追加します。
func (s *PostgresStore) Insert(ctx context.Context, user NewUser) (string, error) {
	query :=
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id string
	err := s.db.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// FindByEmail はユーザーを取得します。
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Record, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE LOWER(email) = LOWER($1)
		 `

	record := &Record{}
	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&record.ID, &record.Name, &record.Email, &record.PasswordHash, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return record, nil
}

// FindNameByEmail は表示名を取得します。
func (s *PostgresStore) FindNameByEmail(ctx context.Context, email string) (string, bool, error) {
	query :=
		`SELECT name FROM users
		 WHERE LOWER(email) = LOWER($1)
		 `

	var name string
	err := s.db.QueryRowContext(ctx, query, email).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("db error: %w", err)
	}
	return name, true, nil
}
