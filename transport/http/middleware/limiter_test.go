package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"roombook/config"
	otelMocks "roombook/infras/otel/mocks"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newLimited(t *testing.T, enable bool) (http.Handler, *cacheMocks.MockRedisCache) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	app := NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)

	handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	return handler, redisCache
}

func TestRateLimit(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		handler, _ := newLimited(t, false)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
	})

	t.Run("under the limit", func(t *testing.T) {
		handler, redisCache := newLimited(t, true)
		redisCache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.1", 60).Return(int64(1), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		req.RemoteAddr = "10.0.0.1:5123"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("over the limit", func(t *testing.T) {
		handler, redisCache := newLimited(t, true)
		redisCache.EXPECT().Increment(gomock.Any(), "limiter:203.0.113.7", 60).Return(int64(3), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.2")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRetryAfter))
	})

	t.Run("cache failure lets request through", func(t *testing.T) {
		handler, redisCache := newLimited(t, true)
		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestGetClientIP(t *testing.T) {
	app := &appMiddleware{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:4000"
	assert.Equal(t, "192.0.2.10", app.getClientIP(req))

	req.Header.Set(constant.RequestHeaderRealIP, " 198.51.100.4 ")
	assert.Equal(t, "198.51.100.4", app.getClientIP(req))

	req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.9")
	assert.Equal(t, "203.0.113.9", app.getClientIP(req))
}
