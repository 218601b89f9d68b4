package respond

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

func TestErrorWritesBodyAndAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Cleanup(telemetry.SetOutput(io.Discard))

	reached := false
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusInternalServerError, "validation_error", "Missing required field: name")
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if reached {
		t.Fatalf("expected chain to abort")
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Missing required field: name" || body.Code != "validation_error" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestOKWritesPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { OK(c, gin.H{"message": "hi"}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"message":"hi"}` {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}
