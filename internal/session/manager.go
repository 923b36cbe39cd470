package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultMaxAge はセッションの既定の有効期間です。
const DefaultMaxAge = time.Hour

// NameLookup はセッション検証時に表示名を引き直すためのユーザーストアの一部です。
type NameLookup interface {
	FindNameByEmail(ctx context.Context, email string) (name string, found bool, err error)
}

// Manager はセッションのライフサイクル（Anonymous → Authenticated → Expired/LoggedOut）を管理します。
type Manager struct {
	store  Store
	users  NameLookup
	maxAge time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option は Manager の設定を変更します。
type Option func(*Manager)

// WithClock は現在時刻の取得関数を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger はロガーを設定します。
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager は Manager を作成します。maxAge が 0 以下なら DefaultMaxAge を使います。
func NewManager(store Store, users NameLookup, maxAge time.Duration, opts ...Option) *Manager {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	m := &Manager{
		store:  store,
		users:  users,
		maxAge: maxAge,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MaxAge はセッションの有効期間を返します。
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// Create は認証済みセッションを作成して保存します。
func (m *Manager) Create(ctx context.Context, email, name string) (*Session, error) {
	if email == "" {
		return nil, fmt.Errorf("session: email is required")
	}
	id, err := generateID()
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:            id,
		Authenticated: true,
		Email:         email,
		Name:          name,
		CreatedAt:     m.now(),
		MaxAge:        m.maxAge,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("session: failed to save: %w", err)
	}
	return s, nil
}

// Validate はセッションを検証し、表示名をユーザーストアから引き直して返します。
// 失効またはユーザー消失の場合はセッションを削除します。
func (m *Manager) Validate(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotAuthenticated
	}
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("session: failed to load: %w", err)
	}
	if s == nil || !s.Authenticated || s.Email == "" {
		return nil, ErrNotAuthenticated
	}

	if s.IsExpiredAt(m.now()) {
		m.discard(ctx, id)
		return nil, ErrExpired
	}

	if m.users == nil {
		return s, nil
	}

	name, found, err := m.users.FindNameByEmail(ctx, s.Email)
	if err != nil {
		return nil, fmt.Errorf("session: failed to refresh user: %w", err)
	}
	if !found {
		m.discard(ctx, id)
		return nil, ErrUserVanished
	}

	if name != s.Name {
		// 読み込み→更新→書き戻し。同時更新は後勝ち
		s.Name = name
		if err := m.store.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("session: failed to save: %w", err)
		}
	}
	return s, nil
}

// Destroy はセッションを破棄します。何度呼んでも同じ結果になります。
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("session: failed to delete: %w", err)
	}
	return nil
}

func (m *Manager) discard(ctx context.Context, id string) {
	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.WarnContext(ctx, "failed to delete session", "error", err)
	}
}

// IsAuthFailure は検証失敗がログインへのリダイレクトで扱うべきものかを返します。
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrUserVanished)
}
