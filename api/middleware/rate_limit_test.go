package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubLimiter struct {
	allowed bool
	count   int64
	err     error
	scopes  []string
}

func (s *stubLimiter) FixedWindowAllow(_ context.Context, scope string, _ int64, _ time.Duration) (bool, int64, error) {
	s.scopes = append(s.scopes, scope)
	return s.allowed, s.count, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func limitedRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/analysis/image", nil)
	if userID != "" {
		req = req.WithContext(WithUserID(req.Context(), userID))
	}
	return req
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	limiter := &stubLimiter{allowed: true, count: 1}
	policy := NewRateLimitPolicy("analysis", time.Hour, 30)
	handler := RateLimit(policy, limiter, nil)(okHandler())

	userID := uuid.NewString()
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, limitedRequest(userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(limiter.scopes) != 1 || limiter.scopes[0] != "analysis:"+userID {
		t.Fatalf("unexpected scopes %v", limiter.scopes)
	}
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	limiter := &stubLimiter{allowed: false, count: 31}
	policy := NewRateLimitPolicy("analysis", time.Hour, 30)
	handler := RateLimit(policy, limiter, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, limitedRequest(uuid.NewString()))

	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	policy := NewRateLimitPolicy("analysis", time.Hour, 30)
	handler := RateLimit(policy, limiter, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, limitedRequest(uuid.NewString()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200 got %d", resp.Code)
	}
}

func TestRateLimitDisabledPolicySkipsLimiter(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	policy := NewRateLimitPolicy("analysis", time.Hour, 0)
	handler := RateLimit(policy, limiter, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, limitedRequest(uuid.NewString()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with disabled policy got %d", resp.Code)
	}
	if len(limiter.scopes) != 0 {
		t.Fatalf("limiter should not be consulted, got %v", limiter.scopes)
	}
}

func TestRateLimitFallsBackToClientIP(t *testing.T) {
	limiter := &stubLimiter{allowed: true, count: 1}
	policy := NewRateLimitPolicy("analysis", time.Hour, 30)
	handler := RateLimit(policy, limiter, nil)(okHandler())

	req := limitedRequest("")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if len(limiter.scopes) != 1 || limiter.scopes[0] != "analysis:203.0.113.9" {
		t.Fatalf("expected IP scope, got %v", limiter.scopes)
	}
}
