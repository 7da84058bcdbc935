package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	keyFunc := func(c *gin.Context) string { return c.GetHeader("X-Client") }
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/limited", RateLimitMiddleware(0.001, 2, keyFunc), ok)
	router.GET("/other", RateLimitMiddleware(0.001, 1, keyFunc), ok)

	send := func(path, client string) int {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("X-Client", client)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("/limited", "a"))
	assert.Equal(t, http.StatusOK, send("/limited", "a"))
	assert.Equal(t, http.StatusTooManyRequests, send("/limited", "a"))

	assert.Equal(t, http.StatusOK, send("/limited", "b"), "each key has its own bucket")
	assert.Equal(t, http.StatusOK, send("/other", "a"), "each middleware has its own buckets")
	assert.Equal(t, http.StatusTooManyRequests, send("/other", "a"))
}
