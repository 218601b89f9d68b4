package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/telemetry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient("test-token", srv.URL, timeout)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	if _, err := NewClient(" ", "", 0); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestGenerateSendsPromptAndParameters(t *testing.T) {
	var got generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`[{"generated_text":"  Improved text  "}]`))
	}, time.Second)

	text, err := client.Generate(context.Background(), "hello", llm.DefaultParameters())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "  Improved text  " {
		t.Fatalf("unexpected text %q", text)
	}
	if got.Inputs != "hello" {
		t.Fatalf("unexpected inputs %q", got.Inputs)
	}
	want := generateParameters{MaxNewTokens: 500, Temperature: 0.7, TopP: 0.95, DoSample: true, ReturnFullText: false}
	if got.Parameters != want {
		t.Fatalf("parameters = %+v, want %+v", got.Parameters, want)
	}
}

func TestGenerateLogsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(telemetry.SetOutput(&buf))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"generated_text":"ok"}]`))
	}, time.Second)
	if _, err := client.Generate(context.Background(), "hello", llm.DefaultParameters()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		msgs = append(msgs, entry["msg"].(string))
		if entry["msg"] == "llm.request" && entry["prompt_len"] != float64(5) {
			t.Fatalf("unexpected prompt_len %v", entry["prompt_len"])
		}
		if entry["msg"] == "llm.response" && entry["status"] != float64(http.StatusOK) {
			t.Fatalf("unexpected status %v", entry["status"])
		}
	}
	if strings.Join(msgs, ",") != "llm.request,llm.response" {
		t.Fatalf("unexpected log messages %v", msgs)
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "non-200", status: http.StatusServiceUnavailable, body: `{"error":"loading"}`, wantErr: llm.ErrStatus},
		{name: "empty list", status: http.StatusOK, body: `[]`, wantErr: llm.ErrNoCandidates},
		{name: "missing text", status: http.StatusOK, body: `[{}]`, wantErr: llm.ErrEmptyContent},
		{name: "blank text", status: http.StatusOK, body: `[{"generated_text":"   "}]`, wantErr: llm.ErrEmptyContent},
		{name: "error payload", status: http.StatusOK, body: `{"error":"model overloaded"}`, wantErr: llm.ErrMalformed},
		{name: "garbage", status: http.StatusOK, body: `not json`, wantErr: llm.ErrMalformed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, time.Second)

			_, err := client.Generate(context.Background(), "prompt", llm.DefaultParameters())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerateStatusErrorCarriesCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad token"}`))
	}, time.Second)

	_, err := client.Generate(context.Background(), "prompt", llm.DefaultParameters())
	var statusErr *llm.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", statusErr.Code)
	}
}

func TestGenerateTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	_, err := client.Generate(context.Background(), "prompt", llm.DefaultParameters())
	if !errors.Is(err, llm.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestGenerateTransportError(t *testing.T) {
	client, err := NewClient("token", "http://127.0.0.1:1", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Generate(context.Background(), "prompt", llm.DefaultParameters())
	if !errors.Is(err, llm.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
