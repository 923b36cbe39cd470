// Package session は認証済みセッションの生成・検証・破棄を提供します。
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// セッション検証時のエラー
var (
	ErrNotAuthenticated = errors.New("session not authenticated")
	ErrExpired          = errors.New("session expired")
	ErrUserVanished     = errors.New("session user no longer exists")
)

const tokenBytes = 32

// Session はサーバー側に保存する認証済みプリンシパルの記録です。
type Session struct {
	ID            string        `json:"id"`
	Authenticated bool          `json:"authenticated"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	CreatedAt     time.Time     `json:"createdAt"`
	MaxAge        time.Duration `json:"maxAge"`
}

// ExpiresAt は失効時刻を返します。
func (s *Session) ExpiresAt() time.Time {
	return s.CreatedAt.Add(s.MaxAge)
}

// IsExpiredAt は t の時点で失効しているかを返します（CreatedAt+MaxAge ちょうどは有効）。
func (s *Session) IsExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt())
}

func generateID() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
