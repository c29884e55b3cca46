package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(maxBytes int64) *gin.Engine {
		router := gin.New()
		router.Use(BodyLimit(maxBytes))
		router.POST("/api/v1/quotes", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		router.GET("/api/v1/quotes", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		return router
	}

	t.Run("accepts a body within the limit", func(t *testing.T) {
		router := newRouter(1024)

		payload := `{"customerName":"Nguyễn Văn An"}`
		req := httptest.NewRequest("POST", "/api/v1/quotes", strings.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects an oversized declared body", func(t *testing.T) {
		router := newRouter(100)

		req := httptest.NewRequest("POST", "/api/v1/quotes", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = 200
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("ignores bodyless requests", func(t *testing.T) {
		router := newRouter(10)

		req := httptest.NewRequest("GET", "/api/v1/quotes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("caps chunked bodies while reading", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(50))
		router.POST("/api/v1/quotes", func(c *gin.Context) {
			buf := make([]byte, 200)
			if _, err := c.Request.Body.Read(buf); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		// no Content-Length, the pre-check cannot catch this one
		req := httptest.NewRequest("POST", "/api/v1/quotes", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
