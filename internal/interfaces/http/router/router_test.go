package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/baogia/backend/internal/infrastructure/auth"
	"github.com/baogia/backend/internal/infrastructure/config"
	"github.com/baogia/backend/internal/interfaces/http/handler"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough",
		Expiration: time.Hour,
		Issuer:     "baogia-test",
	})
	cfg := DefaultConfig(jwtService, nil)
	return Setup(cfg, Handlers{
		System:   handler.NewSystemHandler(nil, "test"),
		Auth:     handler.NewAuthHandler(nil),
		Settings: handler.NewSettingsHandler(nil),
		Catalog:  handler.NewCatalogHandler(nil),
		Quote:    handler.NewQuoteHandler(nil, nil, nil),
		Costing:  handler.NewCostingHandler(nil),
		Printing: handler.NewPrintingHandler(nil),
	})
}

func TestSetup_HealthIsPublic(t *testing.T) {
	r := newTestEngine(t)

	for _, path := range []string{"/health", "/healthz", "/ready", "/api/v1/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSetup_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/quotes"},
		{http.MethodGet, "/api/v1/catalog/entries"},
		{http.MethodGet, "/api/v1/costing/sheets"},
		{http.MethodGet, "/api/v1/print-jobs"},
		{http.MethodGet, "/api/v1/settings/profile"},
		{http.MethodGet, "/api/v1/auth/profile"},
	}
	for _, tc := range protected {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestSetup_RequestIDHeader(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetup_UnknownRouteIs404(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/no-such-thing", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
