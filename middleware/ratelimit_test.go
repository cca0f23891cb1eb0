package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRouter(cfg RateLimitConfig) *gin.Engine {
	r := gin.New()
	r.POST("/login", RateLimiter(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func postLogin(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.4:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	mock := setupRedisMock(t)
	key := "ratelimit:/login:198.51.100.4"
	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	assert.Equal(t, http.StatusOK, postLogin(rateLimitedRouter(RateLimitConfig{Limit: 2, Window: time.Minute})))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	mock := setupRedisMock(t)
	key := "ratelimit:/login:198.51.100.4"
	mock.ExpectIncr(key).SetVal(3)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	assert.Equal(t, http.StatusTooManyRequests, postLogin(rateLimitedRouter(RateLimitConfig{Limit: 2, Window: time.Minute})))
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mock := setupRedisMock(t)
	key := "ratelimit:/login:198.51.100.4"
	mock.ExpectIncr(key).SetErr(errors.New("connection refused"))

	assert.Equal(t, http.StatusOK, postLogin(rateLimitedRouter(RateLimitConfig{})))
}

func TestRateLimiter_NoRedis(t *testing.T) {
	assert.Equal(t, http.StatusOK, postLogin(rateLimitedRouter(RateLimitConfig{})))
}

func TestResetRateLimit(t *testing.T) {
	mock := setupRedisMock(t)
	mock.ExpectDel("ratelimit:/login:198.51.100.4").SetVal(1)

	assert.NoError(t, ResetRateLimit(context.Background(), "198.51.100.4", "/login"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetRateLimit_NoRedis(t *testing.T) {
	assert.Error(t, ResetRateLimit(context.Background(), "198.51.100.4", "/login"))
}
