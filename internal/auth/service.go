package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourusername/exercise-hub/internal/session"
	"github.com/yourusername/exercise-hub/internal/users"
)

// ErrInvalidCredentials はログインに失敗したことを表します。
// メール形式不正・未登録・パスワード不一致を区別しません。
var ErrInvalidCredentials = errors.New("invalid credentials")

// 認証イベント名
const (
	EventRegistered    = "registered"
	EventRegisterFail  = "register_failed"
	EventLogin         = "login"
	EventLoginRejected = "login_rejected"
	EventLogout        = "logout"
	EventGateRejected  = "gate_rejected"
)

// EventRecorder は認証イベントを記録します（メトリクス用）。
type EventRecorder interface {
	AuthEvent(event string)
}

type nopRecorder struct{}

func (nopRecorder) AuthEvent(string) {}

// Service は登録とログインの手順をまとめたものです。
type Service struct {
	users    users.Store
	codec    *Codec
	sessions *session.Manager
	events   EventRecorder
	logger   *slog.Logger
}

// NewService は Service を作成します。events と logger は nil でも構いません。
func NewService(store users.Store, codec *Codec, sessions *session.Manager, events EventRecorder, logger *slog.Logger) *Service {
	if events == nil {
		events = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:    store,
		codec:    codec,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

// Register は入力を検証し、ユーザーを保存して認証済みセッションを作成します。
func (s *Service) Register(ctx context.Context, name, email, password string) (*session.Session, error) {
	reg, err := ValidateRegistration(name, email, password)
	if err != nil {
		s.events.AuthEvent(EventRegisterFail)
		return nil, err
	}

	hash, err := s.codec.Hash(reg.Password)
	if err != nil {
		s.events.AuthEvent(EventRegisterFail)
		return nil, err
	}

	id, err := s.users.Insert(ctx, users.NewUser{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
	})
	if err != nil {
		s.events.AuthEvent(EventRegisterFail)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	sess, err := s.sessions.Create(ctx, reg.Email, reg.Name)
	if err != nil {
		return nil, err
	}
	s.events.AuthEvent(EventRegistered)
	s.logger.InfoContext(ctx, "user registered", "user_id", id)
	return sess, nil
}

// Login は資格情報を照合し、成功すれば認証済みセッションを作成します。
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if _, err := ValidateEmailOnly(email); err != nil {
		return nil, s.reject(ctx, "invalid_email")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.codec.VerifyDummy(password)
		return nil, s.reject(ctx, "unknown_email")
	}
	if !s.codec.Verify(password, user.PasswordHash) {
		return nil, s.reject(ctx, "wrong_password")
	}

	sess, err := s.sessions.Create(ctx, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	s.events.AuthEvent(EventLogin)
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return sess, nil
}

func (s *Service) reject(ctx context.Context, reason string) error {
	s.events.AuthEvent(EventLoginRejected)
	s.logger.InfoContext(ctx, "login rejected", "reason", reason)
	return ErrInvalidCredentials
}
