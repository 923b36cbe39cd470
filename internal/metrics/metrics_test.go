package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistered(t *testing.T) {
	m := New()
	m.AuthEvent("login")
	m.CatalogReloaded(3, nil)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, family := range families {
		registered[family.GetName()] = true
	}
	for _, name := range []string{"auth_events_total", "catalog_reloads_total", "catalog_exercises", "go_goroutines"} {
		assert.True(t, registered[name], "metric %q should be registered", name)
	}
}

func TestAuthEvent(t *testing.T) {
	m := New()
	m.AuthEvent("login")
	m.AuthEvent("login")
	m.AuthEvent("logout")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authEvents.WithLabelValues("login")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authEvents.WithLabelValues("logout")))
}

func TestCatalogReloaded(t *testing.T) {
	m := New()
	m.CatalogReloaded(42, nil)
	m.CatalogReloaded(0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogReloads.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogReloads.WithLabelValues(ResultError)))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.catalogExercises), "failed reload keeps the previous count")
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/a", "/b", "/c/d"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", unmatchedRoute, "404")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `http_requests_total{method="GET",route="/:id",status="200"} 2`))
}
