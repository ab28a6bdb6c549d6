package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/rollfit/internal/auth"
	"github.com/2beens/rollfit/internal/middleware"
	"github.com/2beens/rollfit/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := NewMockRequestRateLimiter(ctrl)
	metricsManager := metrics.NewTestManager()

	nextCalls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalls++
	})
	handler := middleware.RateLimit(limiter, "streak", 2, metricsManager)(next)

	authedReq := func() *http.Request {
		req := httptest.NewRequest("POST", "/streak/login", nil)
		return req.WithContext(auth.WithUserID(req.Context(), "u1"))
	}

	gomock.InOrder(
		limiter.EXPECT().Allow(gomock.Any(), "streak::user::u1", redis_rate.PerMinute(2)).
			Return(&redis_rate.Result{Allowed: 1, Remaining: 1}, nil),
		limiter.EXPECT().Allow(gomock.Any(), "streak::user::u1", redis_rate.PerMinute(2)).
			Return(&redis_rate.Result{Allowed: 0, RetryAfter: 20 * time.Second}, nil),
		limiter.EXPECT().Allow(gomock.Any(), "streak::user::u1", redis_rate.PerMinute(2)).
			Return(nil, errors.New("redis down")),
	)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedReq())
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, authedReq())
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "21", rr.Header().Get("Retry-After"))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, authedReq())
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	assert.Equal(t, 1, nextCalls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))
}

func TestRateLimit_AnonymousByAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := NewMockRequestRateLimiter(ctrl)
	handler := middleware.RateLimit(limiter, "main", 60, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	limiter.EXPECT().Allow(gomock.Any(), "main::addr::10.0.0.7", gomock.Any()).
		Return(&redis_rate.Result{Allowed: 1}, nil)

	req := httptest.NewRequest("GET", "/streak/goal/3", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
