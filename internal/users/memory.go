package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore はプロセス内で完結するユーザーストアです。ローカル開発とテストで使います。
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]Record
	now     func() time.Time
}

// NewMemoryStore は空の MemoryStore を作成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail: make(map[string]Record),
		now:     time.Now,
	}
}

// Insert はユーザーを追加します。
func (s *MemoryStore) Insert(ctx context.Context, user NewUser) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := normalizeEmail(user.Email)
	if key == "" {
		return "", fmt.Errorf("email is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return "", ErrDuplicateEmail
	}
	record := Record{
		ID:           uuid.NewString(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    s.now().UTC(),
	}
	s.byEmail[key] = record
	return record.ID, nil
}

// FindByEmail はユーザーを取得します。
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// FindNameByEmail は表示名を取得します。
func (s *MemoryStore) FindNameByEmail(ctx context.Context, email string) (string, bool, error) {
	record, err := s.FindByEmail(ctx, email)
	if err != nil || record == nil {
		return "", false, err
	}
	return record.Name, true, nil
}

// Delete はユーザーを削除します。管理操作やテストで使います。
func (s *MemoryStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byEmail, normalizeEmail(email))
}
