// Package metrics は Prometheus のメトリクスを提供します。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// リロード結果のラベル値
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// unmatchedRoute はどのルートにも一致しなかったリクエストのラベル値です。
const unmatchedRoute = "unmatched"

// Metrics はアプリケーションのメトリクスと専用レジストリをまとめたものです。
type Metrics struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	authEvents       *prometheus.CounterVec
	catalogReloads   *prometheus.CounterVec
	catalogExercises prometheus.Gauge
}

// New は専用レジストリにメトリクスを登録して返します。
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		authEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event"},
		),
		catalogReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_reloads_total",
				Help: "Total number of catalog reload attempts",
			},
			[]string{"result"},
		),
		catalogExercises: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_exercises",
			Help: "Number of exercises in the current catalog snapshot",
		}),
	}
	registry.MustRegister(m.requests, m.authEvents, m.catalogReloads, m.catalogExercises)
	return m
}

// Registry はメトリクスのレジストリを返します。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AuthEvent は認証イベントを数えます。
func (m *Metrics) AuthEvent(event string) {
	m.authEvents.WithLabelValues(event).Inc()
}

// CatalogReloaded はカタログのリロード結果を記録します。失敗時は件数を更新しません。
func (m *Metrics) CatalogReloaded(count int, err error) {
	if err != nil {
		m.catalogReloads.WithLabelValues(ResultError).Inc()
		return
	}
	m.catalogReloads.WithLabelValues(ResultSuccess).Inc()
	m.catalogExercises.Set(float64(count))
}

// Middleware はリクエスト数を数える gin ミドルウェアです。
// ラベルにはパスではなくルートのパターンを使います。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler は /metrics のハンドラーを返します。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
