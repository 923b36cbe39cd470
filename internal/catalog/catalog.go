package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/yourusername/exercise-hub/internal/storage"
)

// ErrNotLoaded はまだ一度も読み込みに成功していないことを表します。
var ErrNotLoaded = errors.New("catalog not loaded")

// Snapshot は読み込み済みのカタログです。作成後は変更しません。
type Snapshot struct {
	Exercises []Exercise
	LoadedAt  time.Time
}

// ReloadObserver はリロード結果を受け取ります（メトリクス用）。
type ReloadObserver interface {
	CatalogReloaded(count int, err error)
}

// Catalog はプロセス全体で共有するカタログです。
// スナップショットはアトミックに差し替えるため、読み取り側はロック不要です。
type Catalog struct {
	src      storage.Loader
	name     string
	logger   *slog.Logger
	observer ReloadObserver
	now      func() time.Time

	current atomic.Pointer[Snapshot]
	lastErr atomic.Pointer[error]
}

// Option は Catalog の設定を変更します。
type Option func(*Catalog)

// WithLogger はロガーを設定します。
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithObserver はリロード結果の通知先を設定します。
func WithObserver(observer ReloadObserver) Option {
	return func(c *Catalog) {
		c.observer = observer
	}
}

// New は src の name を読むカタログを作成します。読み込みは Reload で行います。
func New(src storage.Loader, name string, opts ...Option) *Catalog {
	c := &Catalog{
		src:    src,
		name:   name,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reload はデータを読み直し、成功した場合だけスナップショットを差し替えます。
func (c *Catalog) Reload(ctx context.Context) error {
	exercises, err := Load(ctx, c.src, c.name)
	if err != nil {
		c.lastErr.Store(&err)
		c.notify(0, err)
		c.logger.ErrorContext(ctx, "catalog reload failed", "path", c.name, "error", err)
		return err
	}

	c.current.Store(&Snapshot{Exercises: exercises, LoadedAt: c.now()})
	c.lastErr.Store(nil)
	c.notify(len(exercises), nil)
	c.logger.InfoContext(ctx, "catalog loaded", "path", c.name, "exercises", len(exercises))
	return nil
}

// Current は現在のスナップショットを返します。
// 一度も読み込めていない場合は直近のエラー（なければ ErrNotLoaded）を返します。
func (c *Catalog) Current() (*Snapshot, error) {
	if snap := c.current.Load(); snap != nil {
		return snap, nil
	}
	if errp := c.lastErr.Load(); errp != nil {
		return nil, *errp
	}
	return nil, ErrNotLoaded
}

// FindByID は id が一致するレコードをすべて返します。該当なしは空スライスです。
func (c *Catalog) FindByID(id string) ([]Exercise, error) {
	snap, err := c.Current()
	if err != nil {
		return nil, err
	}
	matches := []Exercise{}
	for _, e := range snap.Exercises {
		if e.ID == id {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// Watch は interval ごとにリロードします。ctx がキャンセルされるまで戻りません。
// interval が 0 以下なら何もしません。
func (c *Catalog) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// 失敗しても前回のスナップショットで提供を続ける
			_ = c.Reload(ctx)
		}
	}
}

func (c *Catalog) notify(count int, err error) {
	if c.observer != nil {
		c.observer.CatalogReloaded(count, err)
	}
}
