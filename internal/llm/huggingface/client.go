package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/telemetry"
)

const (
	// DefaultURL is the hosted inference endpoint for the instruct model.
	DefaultURL = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.2"

	// DefaultTimeout bounds a single generation round-trip.
	DefaultTimeout = 30 * time.Second

	maxLoggedBody = 200
)

// Client implements llm.Generator against the Hugging Face Inference API.
type Client struct {
	apiToken   string
	url        string
	httpClient *http.Client
}

// NewClient constructs a new inference client.
func NewClient(apiToken, url string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiToken) == "" {
		return nil, fmt.Errorf("HF_API_TOKEN is required")
	}
	if strings.TrimSpace(url) == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiToken: apiToken,
		url:      url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type candidate struct {
	GeneratedText string `json:"generated_text"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Generate sends one prompt and returns the first candidate's text unmodified.
func (c *Client) Generate(ctx context.Context, prompt string, params llm.Parameters) (string, error) {
	reqBody := generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens:   params.MaxNewTokens,
			Temperature:    params.Temperature,
			TopP:           params.TopP,
			DoSample:       params.DoSample,
			ReturnFullText: params.ReturnFullText,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	telemetry.Info("llm.request", map[string]any{"url": c.url, "prompt_len": len(prompt)})
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", llm.ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", llm.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: read body: %v", llm.ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: read body: %v", llm.ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	telemetry.Info("llm.response", map[string]any{"status": resp.StatusCode, "body": truncate(string(body), maxLoggedBody)})

	var candidates []candidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		var payloadErr errorPayload
		if json.Unmarshal(body, &payloadErr) == nil && payloadErr.Error != "" {
			return "", fmt.Errorf("%w: %s", llm.ErrMalformed, payloadErr.Error)
		}
		return "", fmt.Errorf("%w: %s", llm.ErrMalformed, truncate(string(body), maxLoggedBody))
	}
	if len(candidates) == 0 {
		return "", llm.ErrNoCandidates
	}
	text := candidates[0].GeneratedText
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyContent
	}
	return text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ llm.Generator = (*Client)(nil)
