// Package users はユーザーレコードの永続化を担うストアを提供します。
package users

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrDuplicateEmail は同じメールアドレスのユーザーが既に存在する場合のエラーです。
var ErrDuplicateEmail = errors.New("email already registered")

// Record は保存済みのユーザーを表します。
type Record struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser は登録時に渡す入力です。PasswordHash はハッシュ化済みの値を渡します。
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
}

// Store はユーザーコレクションへの狭いインターフェースです。
// メールアドレスの一意性（大文字小文字を区別しない）は実装側が保証します。
type Store interface {
	// Insert はユーザーを追加し ID を返します。重複時は ErrDuplicateEmail を返します。
	Insert(ctx context.Context, user NewUser) (string, error)

	// FindByEmail はユーザーを取得します。存在しない場合は nil, nil を返します。
	FindByEmail(ctx context.Context, email string) (*Record, error)

	// FindNameByEmail は表示名のみを取得します。
	FindNameByEmail(ctx context.Context, email string) (name string, found bool, err error)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
