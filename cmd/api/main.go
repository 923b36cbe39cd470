// Package main はWebサーバーのエントリーポイントです。
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/exercise-hub/internal/auth"
	"github.com/yourusername/exercise-hub/internal/catalog"
	"github.com/yourusername/exercise-hub/internal/config"
	"github.com/yourusername/exercise-hub/internal/logging"
	"github.com/yourusername/exercise-hub/internal/metrics"
	"github.com/yourusername/exercise-hub/internal/session"
	"github.com/yourusername/exercise-hub/internal/users"
	"github.com/yourusername/exercise-hub/internal/view"
)

const shutdownTimeout = 10 * time.Second

// deps はルーティングに必要な依存をまとめたものです。
type deps struct {
	cfg          *config.Config
	logger       *slog.Logger
	users        users.Store
	sessions     *session.Manager
	catalog      *catalog.Catalog
	metrics      *metrics.Metrics
	cookieSecret []byte
}

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)
	logger := logging.New(cfg.GinMode, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	m := metrics.New()

	userStore, closeUsers, err := setupUserStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeUsers()

	sessionStore, closeSessions, err := setupSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSessions()

	cat, err := setupCatalog(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	go cat.Watch(ctx, cfg.CatalogReloadInterval())
	go reloadOnHangup(ctx, cat, logger)

	secret, err := cookieSecret(cfg, logger)
	if err != nil {
		return err
	}

	router := newRouter(&deps{
		cfg:          cfg,
		logger:       logger,
		users:        userStore,
		sessions:     session.NewManager(sessionStore, userStore, cfg.SessionMaxAge(), session.WithLogger(logger)),
		catalog:      cat,
		metrics:      m,
		cookieSecret: secret,
	})

	// サーバーの起動
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "addr", srv.Addr, "mode", cfg.GinMode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// reloadOnHangup は SIGHUP を受けるたびにカタログを読み直します。
func reloadOnHangup(ctx context.Context, cat *catalog.Catalog, logger *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logger.Info("reloading catalog on SIGHUP")
			_ = cat.Reload(ctx)
		}
	}
}

// newRouter はミドルウェアとルーティングを設定したルーターを返します。
func newRouter(d *deps) *gin.Engine {
	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()
	router.Use(d.metrics.Middleware())
	router.SetHTMLTemplate(view.Templates())

	// セッションクッキーにはセッション ID だけを載せる
	store := cookie.NewStore(d.cookieSecret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   d.cfg.SessionMaxAgeSeconds,
		HttpOnly: true,
		Secure:   d.cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, store))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	corsConfig.AllowOrigins = splitOrigins(d.cfg.CORSAllowedOrigins, d.cfg.Port)
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	setupRoutes(router, d)
	return router
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "exercise-hub",
		"version": "0.1.0",
	})
}

func handleNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Page not found - 404")
}

// setupRoutes は認証とカタログのルーティングを行います。
func setupRoutes(router *gin.Engine, d *deps) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)
	if d.cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(d.metrics.Handler()))
	}
	router.Static("/exercises", d.cfg.ExerciseImageDir)

	service := auth.NewService(d.users, newCodec(d.cfg, d.logger), d.sessions, d.metrics, d.logger)
	authManager := auth.NewManager(service, d.sessions)

	router.GET("/createUser", authManager.SignupForm)
	router.POST("/submitUser", authManager.SubmitUser)
	router.GET("/login", authManager.LoginForm)
	router.POST("/loggingin", authManager.Login)
	router.GET("/logout", authManager.Logout)

	member := router.Group("")
	member.Use(authManager.RequireLogin())
	{
		member.GET("/loggedin", authManager.Landing)
		member.GET("/member", authManager.Landing)
	}

	catalogHandler := catalog.NewHandler(d.catalog, d.cfg.CatalogPageSize, d.logger)
	router.GET("/", catalogHandler.List)
	router.POST("/search", catalogHandler.SearchRedirect)
	router.GET("/:id", catalogHandler.Detail)

	router.NoRoute(handleNotFound)
}

// splitOrigins はカンマ区切りのオリジンを分割します。空なら自分自身のオリジンだけを許可します。
func splitOrigins(raw, port string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:" + port}
	}
	return origins
}
