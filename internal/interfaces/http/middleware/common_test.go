package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/api/v1/quotes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestCORS_DefaultWhitelistIsEmpty(t *testing.T) {
	router := okRouter(CORS())

	t.Run("cross-origin request gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		req.Header.Set("Origin", "http://unknown.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("same-origin request passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("preflight still answers 204", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/v1/quotes", nil)
		req.Header.Set("Origin", "http://unknown.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("whitelisted origin is mirrored back", func(t *testing.T) {
		router := okRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000", "https://baogia.vn"},
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))

		for _, origin := range []string{"http://localhost:3000", "https://baogia.vn"} {
			req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
			req.Header.Set("Origin", origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		}
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		router := okRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{"https://baogia.vn"},
		}))

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		router := okRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		req.Header.Set("Origin", "http://anywhere.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("max age is whole seconds", func(t *testing.T) {
		router := okRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{"https://baogia.vn"},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       12 * time.Hour,
		}))

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		req.Header.Set("Origin", "https://baogia.vn")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("expose headers are joined", func(t *testing.T) {
		router := okRouter(CORSWithConfig(CORSConfig{
			AllowOrigins:  []string{"https://baogia.vn"},
			AllowMethods:  []string{"GET"},
			AllowHeaders:  []string{"Content-Type"},
			ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining"},
		}))

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		req.Header.Set("Origin", "https://baogia.vn")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "X-Request-ID, X-RateLimit-Remaining", w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("preflight from whitelisted origin carries method and header lists", func(t *testing.T) {
		router := okRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{"https://baogia.vn"},
			AllowMethods: []string{"GET", "POST", "PUT"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
		}))

		req := httptest.NewRequest("OPTIONS", "/api/v1/quotes", nil)
		req.Header.Set("Origin", "https://baogia.vn")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://baogia.vn", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("preflight from unlisted origin answers 204 bare", func(t *testing.T) {
		router := okRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{"https://baogia.vn"},
			AllowMethods: []string{"GET", "POST"},
		}))

		req := httptest.NewRequest("OPTIONS", "/api/v1/quotes", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Empty(t, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowMethods, "GET")
	assert.Contains(t, cfg.AllowMethods, "POST")
	assert.Contains(t, cfg.AllowHeaders, "Content-Type")
	assert.Contains(t, cfg.AllowHeaders, "Authorization")
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/v1/quotes", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates an id when none supplied", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
	})

	t.Run("honors the caller's id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		req.Header.Set("X-Request-ID", "req-from-gateway")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-from-gateway", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-from-gateway", w.Body.String())
	})
}

func TestGenerateRequestID(t *testing.T) {
	id1 := generateRequestID()
	id2 := generateRequestID()

	assert.Len(t, id1, 32) // 16 random bytes, hex encoded
	assert.NotEqual(t, id1, id2)
}

func TestSecure_Defaults(t *testing.T) {
	router := okRouter(Secure())

	req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))

	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "frame-ancestors 'none'")

	// HSTS stays off until TLS is configured
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	permissions := w.Header().Get("Permissions-Policy")
	assert.Contains(t, permissions, "camera=()")
	assert.Contains(t, permissions, "microphone=()")
}

func TestSecureWithConfig(t *testing.T) {
	t.Run("custom CSP directive", func(t *testing.T) {
		router := okRouter(SecureWithConfig(SecurityConfig{
			CSPEnabled:   true,
			CSPDirective: "default-src 'none'; script-src 'self'",
		}))

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "default-src 'none'; script-src 'self'", w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
	})

	t.Run("HSTS with all flags", func(t *testing.T) {
		router := okRouter(SecureWithConfig(SecurityConfig{
			HSTSEnabled:           true,
			HSTSMaxAge:            63072000,
			HSTSIncludeSubdomains: true,
			HSTSPreload:           true,
		}))

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "max-age=63072000; includeSubDomains; preload", w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("HSTS without optional flags", func(t *testing.T) {
		router := okRouter(SecureWithConfig(SecurityConfig{
			HSTSEnabled: true,
			HSTSMaxAge:  31536000,
		}))

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "max-age=31536000", w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("everything optional disabled keeps the basics", func(t *testing.T) {
		router := okRouter(SecureWithConfig(SecurityConfig{}))

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
	})
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	assert.False(t, cfg.HSTSEnabled)
	assert.Equal(t, 31536000, cfg.HSTSMaxAge)
	assert.True(t, cfg.CSPEnabled)
	assert.Contains(t, cfg.CSPDirective, "default-src 'self'")
	assert.True(t, cfg.PermissionsPolicyEnabled)
	assert.Contains(t, cfg.PermissionsPolicyDirective, "camera=()")
}

func TestTimeout(t *testing.T) {
	router := okRouter(Timeout(30 * time.Second))

	req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "30s", w.Header().Get("X-Request-Timeout"))
}
