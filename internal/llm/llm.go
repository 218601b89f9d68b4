package llm

import (
	"context"
	"errors"
	"fmt"
)

// Generator abstracts text-generation providers used for resume enhancement.
type Generator interface {
	Generate(ctx context.Context, prompt string, params Parameters) (string, error)
}

// Parameters are the sampling settings sent with every generation request.
type Parameters struct {
	MaxNewTokens   int
	Temperature    float64
	TopP           float64
	DoSample       bool
	ReturnFullText bool
}

// DefaultParameters returns the sampling settings used for enhancement.
func DefaultParameters() Parameters {
	return Parameters{
		MaxNewTokens:   500,
		Temperature:    0.7,
		TopP:           0.95,
		DoSample:       true,
		ReturnFullText: false,
	}
}

var (
	// ErrStatus indicates a non-200 response from the endpoint.
	ErrStatus = errors.New("llm: unexpected status")
	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("llm: request timed out")
	// ErrTransport indicates the request never produced a response.
	ErrTransport = errors.New("llm: transport error")
	// ErrNoCandidates indicates an empty candidate list.
	ErrNoCandidates = errors.New("llm: no candidates")
	// ErrEmptyContent indicates a candidate without generated text.
	ErrEmptyContent = errors.New("llm: empty generated text")
	// ErrMalformed indicates a body that is neither a candidate list nor an error payload.
	ErrMalformed = errors.New("llm: malformed response")
)

// StatusError carries the status code and body of a failed response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm http status %d: %s", e.Code, e.Body)
}

// Is reports StatusError as ErrStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// GeneratorFunc adapts a function into a Generator.
type GeneratorFunc func(ctx context.Context, prompt string, params Parameters) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string, params Parameters) (string, error) {
	return f(ctx, prompt, params)
}
