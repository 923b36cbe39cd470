package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"
	"testing"
)

type memLoader struct {
	mu    sync.Mutex
	files map[string][]byte
	loads int
}

func newMemLoader() *memLoader {
	return &memLoader{files: make(map[string][]byte)}
}

func (m *memLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("failed to read %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (m *memLoader) put(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
}

func (m *memLoader) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return data
}

// numbered は "<prefix> 1" から始まる n 件のレコードを作ります。
func numbered(prefix string, n int) []Exercise {
	out := make([]Exercise, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Exercise{
			ID:     fmt.Sprintf("%s_%d", prefix, i),
			Name:   fmt.Sprintf("%s %d", prefix, i),
			Images: []string{fmt.Sprintf("%s_%d/0.jpg", prefix, i)},
		})
	}
	return out
}
