package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rule RateLimitRule, now *time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(func() time.Time { return *now })
	r := gin.New()
	r.POST("/generate", RateLimit(rule, limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/download", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func serveFrom(r http.Handler, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRateLimitBurstThenReject(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(PerMinute(60, 2), &now)

	for i := 0; i < 2; i++ {
		if resp := serveFrom(r, http.MethodPost, "/generate", "10.0.0.1:1234"); resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}
	resp := serveFrom(r, http.MethodPost, "/generate", "10.0.0.1:1234")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("request 3 expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp.Header().Get("Retry-After"))
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["code"] != "rate_limited" {
		t.Fatalf("expected code=rate_limited, got %v", payload["code"])
	}
	if _, ok := payload["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in response")
	}

	if resp := serveFrom(r, http.MethodPost, "/generate", "10.0.0.2:1234"); resp.Code != http.StatusOK {
		t.Fatalf("other client expected 200, got %d", resp.Code)
	}
	if resp := serveFrom(r, http.MethodGet, "/download", "10.0.0.1:1234"); resp.Code != http.StatusOK {
		t.Fatalf("unlimited route expected 200, got %d", resp.Code)
	}
}

func TestRateLimitRefills(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(PerMinute(60, 1), &now)

	if resp := serveFrom(r, http.MethodPost, "/generate", "10.0.0.1:1"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp := serveFrom(r, http.MethodPost, "/generate", "10.0.0.1:1"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	now = now.Add(time.Second)
	if resp := serveFrom(r, http.MethodPost, "/generate", "10.0.0.1:1"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 after refill, got %d", resp.Code)
	}
}

func TestRateLimitDisabledRule(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 100; i++ {
		if ok, _ := limiter.Allow("k", PerMinute(0, 0)); !ok {
			t.Fatalf("disabled rule must always allow")
		}
	}
}

func TestRateLimiterEvictsRefilledBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := PerMinute(1, 5)

	for i := 0; i < 5; i++ {
		if ok, _ := limiter.Allow("busy", rule); !ok {
			t.Fatalf("busy request %d expected allowed", i+1)
		}
	}
	if ok, _ := limiter.Allow("idle", rule); !ok {
		t.Fatalf("idle request expected allowed")
	}
	if got := limiter.Len(); got != 2 {
		t.Fatalf("expected 2 buckets, got %d", got)
	}

	now = now.Add(61 * time.Second)
	if ok, _ := limiter.Allow("busy", rule); !ok {
		t.Fatalf("busy bucket should have one refilled token")
	}
	if got := limiter.Len(); got != 1 {
		t.Fatalf("expected idle bucket evicted, got %d buckets", got)
	}
	if ok, _ := limiter.Allow("busy", rule); ok {
		t.Fatalf("busy bucket must keep its drained state across the sweep")
	}
}
