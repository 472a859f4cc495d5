package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func rateLimitedHandler(t *testing.T, requestsPerWindow int) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	config := RateLimitConfig{
		RequestsPerWindow: requestsPerWindow,
		Window:            time.Second,
		KeyPrefix:         "test_rate_limit",
	}

	return RateLimitMiddleware(client, config, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
}

func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("excessive requests are blocked with 429", prop.ForAll(
		func(requestsPerWindow int, excessRequests int) bool {
			handler := rateLimitedHandler(t, requestsPerWindow)

			clientIP := "192.168.1.100"
			successCount := 0
			blockedCount := 0

			for i := 0; i < requestsPerWindow+excessRequests; i++ {
				req := httptest.NewRequest("POST", "/products", nil)
				req.RemoteAddr = clientIP
				w := httptest.NewRecorder()

				handler.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			return successCount == requestsPerWindow && blockedCount == excessRequests
		},
		gen.IntRange(5, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitHeadersAreSet(t *testing.T) {
	handler := rateLimitedHandler(t, 10)

	req := httptest.NewRequest("POST", "/products", nil)
	req.RemoteAddr = "192.168.1.101"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitBlockedResponseHasRetryAfter(t *testing.T) {
	handler := rateLimitedHandler(t, 1)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/products", nil)
		req.RemoteAddr = "192.168.1.102"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if i == 1 {
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
}

func TestRateLimitIsPerClient(t *testing.T) {
	handler := rateLimitedHandler(t, 1)

	first := httptest.NewRequest("POST", "/products", nil)
	first.RemoteAddr = "10.0.0.1"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	// A different client gets its own window.
	second := httptest.NewRequest("POST", "/products", nil)
	second.RemoteAddr = "10.0.0.2"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitAllowsRequestsWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	handler := RateLimitMiddleware(client, RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Second,
		KeyPrefix:         "test_rate_limit",
	}, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/products", nil)
		req.RemoteAddr = "10.0.0.3"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "requests must pass through on redis failure")
	}
}
