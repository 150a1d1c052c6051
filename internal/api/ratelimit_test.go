package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other clients have their own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	rl.mu.Lock()
	rl.buckets["10.0.0.1"].lastReset = time.Now().Add(-2 * time.Hour)
	rl.mu.Unlock()

	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterRetryAfter(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)

	assert.Equal(t, 0, rl.RetryAfter("10.0.0.1"))

	rl.Allow("10.0.0.1")
	after := rl.RetryAfter("10.0.0.1")
	assert.Greater(t, after, 0)
	assert.LessOrEqual(t, after, 3600)
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.POST("/limited", rateLimit(NewRateLimiter(2, time.Hour)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	hit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit().Code)
	assert.Equal(t, http.StatusOK, hit().Code)

	w := hit()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	resp := decodeBody[ErrorResponse](t, w)
	assert.Equal(t, "RATE_LIMITED", resp.Error.Code)
}
