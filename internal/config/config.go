// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ユーザーストアの種別
const (
	UserStoreMemory   = "memory"
	UserStorePostgres = "postgres"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// セッション設定
	SessionSecret        string // セッションクッキー署名用の秘密鍵
	SessionMaxAgeSeconds int    // セッションの有効期間（秒）
	SessionRedisURL      string // セッションストア用Redis接続URL（空ならメモリ）

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// 認証設定
	BcryptCost int // bcrypt のコスト係数

	// ユーザーストア設定
	UserStore   string // memory または postgres
	DatabaseDSN string // PostgreSQL 接続文字列

	// カタログ設定
	CatalogRoot          string // カタログデータを読むルートディレクトリ
	CatalogPath          string // ルートからのデータファイルパス
	CatalogReloadMinutes int    // 定期リロード間隔（分）。0 で無効
	CatalogPageSize      int    // 一覧の1ページあたりの件数
	ExerciseImageDir     string // 画像ファイルの配信元ディレクトリ

	// 運用設定
	MetricsEnabled bool // /metrics を公開するか
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// セッション設定
		SessionSecret:        getEnv("SESSION_SECRET", ""),
		SessionMaxAgeSeconds: getEnvAsInt("SESSION_MAX_AGE_SECONDS", 3600),
		SessionRedisURL:      getEnv("SESSION_REDIS_URL", ""),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8080"),

		// 認証設定
		BcryptCost: getEnvAsInt("BCRYPT_COST", 12),

		// ユーザーストア設定
		UserStore:   getEnv("USER_STORE", UserStoreMemory),
		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		// カタログ設定
		CatalogRoot:          getEnv("CATALOG_ROOT", "."),
		CatalogPath:          getEnv("CATALOG_PATH", "dist/exercises.json"),
		CatalogReloadMinutes: getEnvAsInt("CATALOG_RELOAD_MINUTES", 0),
		CatalogPageSize:      getEnvAsInt("CATALOG_PAGE_SIZE", 10),
		ExerciseImageDir:     getEnv("EXERCISE_IMAGE_DIR", "exercises"),

		// 運用設定
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	if c.SessionMaxAgeSeconds <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE_SECONDS must be positive")
	}
	if c.CatalogPageSize <= 0 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive")
	}
	if c.CatalogReloadMinutes < 0 {
		return fmt.Errorf("CATALOG_RELOAD_MINUTES must not be negative")
	}
	switch c.UserStore {
	case UserStoreMemory:
	case UserStorePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required when USER_STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown USER_STORE: %s", c.UserStore)
	}

	// ローカル開発ではメモリストアや自動生成の鍵で動かせる
	// 本番環境では共有ストアと固定の鍵を必須にする
	if c.GinMode == "release" {
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required in release mode")
		}
		if c.SessionRedisURL == "" {
			return fmt.Errorf("SESSION_REDIS_URL is required in release mode")
		}
	}

	return nil
}

// SessionMaxAge はセッションの有効期間を返します。
func (c *Config) SessionMaxAge() time.Duration {
	return time.Duration(c.SessionMaxAgeSeconds) * time.Second
}

// CatalogReloadInterval はカタログの定期リロード間隔を返します。
func (c *Config) CatalogReloadInterval() time.Duration {
	return time.Duration(c.CatalogReloadMinutes) * time.Minute
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool は環境変数を真偽値として取得します。
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
