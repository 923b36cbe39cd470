// Package storage はストレージ抽象化レイヤーを提供します。
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot はルートディレクトリ外を指すパスが渡された場合のエラーです。
var ErrOutsideRoot = errors.New("path escapes storage root")

// Loader は読み取り専用のデータソースを表します。
// カタログのデータファイルはこのインターフェース越しに読み込みます。
type Loader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// Local はローカルファイルシステム上のディレクトリをルートとするストレージ実装です。
type Local struct {
	root string
}

// NewLocal は root 配下のファイルを読む Local を作成します。
func NewLocal(root string) *Local {
	if root == "" {
		root = "."
	}
	return &Local{root: filepath.Clean(root)}
}

// Root はルートディレクトリを返します。
func (l *Local) Root() string {
	return l.root
}

// Load は root からの相対パスでファイルを読み込みます。
func (l *Local) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (l *Local) resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is required")
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	full := filepath.Join(l.root, path)
	rel, err := filepath.Rel(l.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return full, nil
}
