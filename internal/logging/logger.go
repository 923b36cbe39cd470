// Package logging はアプリケーション共通の構造化ロガーを提供します。
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
)

// New は Gin の実行モードに応じたロガーを作成し、slog のデフォルトとして登録します。
// release モードでは JSON、それ以外はテキスト形式で出力します。
// w が nil の場合は標準出力へ書き込みます。
func New(ginMode string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	switch ginMode {
	case gin.ReleaseMode:
		handler = slog.NewJSONHandler(w, opts)
	case gin.DebugMode:
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(slog.String("service", "exercise-hub"))
	slog.SetDefault(logger)
	return logger
}

// Discard は出力を捨てるロガーを返します。テスト用です。
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
