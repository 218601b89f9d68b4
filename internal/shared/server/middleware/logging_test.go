package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	t.Cleanup(telemetry.SetOutput(&buf))

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.GET("/download/:id", func(c *gin.Context) {
		c.Set(GenerationIDKey, "gen-1")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/download/gen-1", nil)
	req.Header.Set("X-Request-Id", "req-123")
	router.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	for _, key := range []string{"request_id", "duration_ms", "status", "route", "generation_id"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["request_id"] != "req-123" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["route"] != "/download/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
	if payload["generation_id"] != "gen-1" {
		t.Fatalf("unexpected generation_id: %v", payload["generation_id"])
	}
}

func TestLoggingSkipsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	t.Cleanup(telemetry.SetOutput(&buf))

	router := gin.New()
	router.Use(Logging(), CORS([]string{"*"}))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodOptions, "/generate", nil))

	if buf.Len() != 0 {
		t.Fatalf("expected no log output for OPTIONS, got %s", buf.String())
	}
}
