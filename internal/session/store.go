package session

import (
	"context"
	"sync"
	"time"
)

// Store はセッションの保存先です。
// リクエスト間でロックは取らず、同一セッションへの同時書き込みは後勝ちになります。
type Store interface {
	// Get はセッションを取得します。存在しない場合は nil, nil を返します。
	Get(ctx context.Context, id string) (*Session, error)
	// Save はセッションを保存します（存在しない場合は作成）。
	Save(ctx context.Context, s *Session) error
	// Delete はセッションを削除します。存在しなくてもエラーにしません。
	Delete(ctx context.Context, id string) error
}

// MemoryStore はプロセス内のセッションストアです。単一プロセスでの開発用です。
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore は MemoryStore を作成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Get はセッションを取得します。失効済みのものは削除して nil を返します。
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	if s.IsExpiredAt(m.now()) {
		delete(m.sessions, id)
		return nil, nil
	}
	return &s, nil
}

// Save はセッションのコピーを保存します。
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

// Delete はセッションを削除します。
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len は保存中のセッション数を返します。
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
