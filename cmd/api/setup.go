package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/yourusername/exercise-hub/internal/auth"
	"github.com/yourusername/exercise-hub/internal/catalog"
	"github.com/yourusername/exercise-hub/internal/config"
	"github.com/yourusername/exercise-hub/internal/metrics"
	"github.com/yourusername/exercise-hub/internal/session"
	"github.com/yourusername/exercise-hub/internal/storage"
	"github.com/yourusername/exercise-hub/internal/users"
)

type closeFunc func() error

func noopClose() error { return nil }

// setupUserStore は設定に応じたユーザーストアを返します。
func setupUserStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (users.Store, closeFunc, error) {
	switch cfg.UserStore {
	case config.UserStorePostgres:
		db, err := users.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open user database: %w", err)
		}
		logger.Info("user store ready", "backend", config.UserStorePostgres)
		return users.NewPostgresStore(db), db.Close, nil
	default:
		logger.Warn("using in-memory user store; registered users are lost on restart")
		return users.NewMemoryStore(), noopClose, nil
	}
}

// setupSessionStore は SESSION_REDIS_URL があれば Redis、なければメモリのセッションストアを返します。
func setupSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (session.Store, closeFunc, error) {
	if cfg.SessionRedisURL == "" {
		logger.Warn("using in-memory session store; sessions are not shared between processes")
		return session.NewMemoryStore(), noopClose, nil
	}
	rdb, err := session.OpenRedis(ctx, cfg.SessionRedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect session redis: %w", err)
	}
	logger.Info("session store ready", "backend", "redis")
	return session.NewRedisStore(rdb), rdb.Close, nil
}

// setupCatalog はカタログを作成し、起動時の読み込みを行います。
func setupCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*catalog.Catalog, error) {
	src := storage.NewLocal(cfg.CatalogRoot)
	logger.Info("catalog source", "root", src.Root(), "path", cfg.CatalogPath)
	cat := catalog.New(
		src,
		cfg.CatalogPath,
		catalog.WithLogger(logger),
		catalog.WithObserver(m),
	)
	if err := cat.Reload(ctx); err != nil {
		return nil, err
	}
	return cat, nil
}

// cookieSecret はクッキー署名鍵を返します。未設定なら起動ごとにランダムな鍵を作ります。
func cookieSecret(cfg *config.Config, logger *slog.Logger) ([]byte, error) {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	logger.Warn("SESSION_SECRET is not set; using a random key, sessions end on restart")
	return key, nil
}

// newCodec はパスワードのコーデックを作成します。範囲外のコストは既定値に置き換わるので警告します。
func newCodec(cfg *config.Config, logger *slog.Logger) *auth.Codec {
	codec := auth.NewCodec(cfg.BcryptCost)
	if codec.Cost() != cfg.BcryptCost {
		logger.Warn("BCRYPT_COST out of range; using default", "configured", cfg.BcryptCost, "cost", codec.Cost())
	}
	return codec
}
