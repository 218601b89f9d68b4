package generations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
	"resume-builder/resume/enhance"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
	"resume-builder/resume/style"
)

// Request keys that carry generation options rather than resume content.
const (
	keyStyle   = "style"
	keyEnhance = "enhance"
)

// Service runs the validate, enhance, style, render and store pipeline.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	Enhancer *enhance.Enhancer
	// EnhanceDefault applies when a request does not carry an enhance flag.
	EnhanceDefault bool

	Now   func() time.Time
	NewID func() string
}

// Options are the per-request generation settings extracted from the payload.
type Options struct {
	Style   style.Config
	Enhance *bool
}

// ParseOptions reads the optional style object and enhance flag from a raw payload.
func ParseOptions(raw map[string]any) (Options, error) {
	var opts Options
	if v, ok := raw[keyStyle]; ok && v != nil {
		obj, isObj := v.(map[string]any)
		if !isObj {
			return Options{}, &model.ValidationError{Field: keyStyle, Kind: model.KindTypeMismatch, Detail: "an object"}
		}
		for _, field := range []string{"colorScheme", "fontFamily", "fontSize"} {
			fv, present := obj[field]
			if !present || fv == nil {
				continue
			}
			s, isString := fv.(string)
			if !isString {
				return Options{}, &model.ValidationError{Field: keyStyle + "." + field, Kind: model.KindTypeMismatch, Detail: "a string"}
			}
			switch field {
			case "colorScheme":
				opts.Style.ColorScheme = s
			case "fontFamily":
				opts.Style.FontFamily = s
			case "fontSize":
				opts.Style.FontSize = s
			}
		}
	}
	if v, ok := raw[keyEnhance]; ok && v != nil {
		b, isBool := v.(bool)
		if !isBool {
			return Options{}, &model.ValidationError{Field: keyEnhance, Kind: model.KindTypeMismatch, Detail: "a boolean"}
		}
		opts.Enhance = &b
	}
	return opts, nil
}

// DecodeRequest parses a JSON request body into the raw payload map.
func DecodeRequest(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &model.ValidationError{Kind: model.KindInvalid, Detail: err.Error()}
	}
	if raw == nil {
		return nil, &model.ValidationError{Kind: model.KindInvalid, Detail: "request body must be a JSON object"}
	}
	return raw, nil
}

// Generate validates raw, optionally enhances it, renders a DOCX and stores it
// under a fresh generation id. Nothing is stored unless every step succeeds.
func (s *Service) Generate(ctx context.Context, raw map[string]any) (Generation, error) {
	if s.Repo == nil || s.Store == nil {
		return Generation{}, errors.New("missing dependencies")
	}
	metrics.IncGenerationStarted()
	gen, err := s.generate(ctx, raw)
	if err != nil {
		metrics.IncGenerationFailed()
		telemetry.Warn("generation.failed", map[string]any{"error": err})
		return Generation{}, err
	}
	metrics.IncGenerationCompleted()
	telemetry.Info("generation.completed", map[string]any{
		"generation_id": gen.ID,
		"size_bytes":    gen.SizeBytes,
		"color_scheme":  gen.ColorScheme,
		"font_size":     gen.FontSize,
		"enhanced":      gen.Enhanced,
	})
	return gen, nil
}

func (s *Service) generate(ctx context.Context, raw map[string]any) (Generation, error) {
	data, err := model.Decode(raw)
	if err != nil {
		return Generation{}, err
	}
	opts, err := ParseOptions(raw)
	if err != nil {
		return Generation{}, err
	}
	resolved, err := style.Resolve(opts.Style)
	if err != nil {
		return Generation{}, err
	}

	enhanced := false
	if s.shouldEnhance(opts) {
		var report enhance.Report
		data, report = s.Enhancer.Apply(ctx, data)
		metrics.AddEnhancements(report.Attempted, report.Attempted-report.Enhanced)
		enhanced = report.Enhanced > 0
	}

	start := time.Now()
	docx, err := render.RenderResume(data, resolved)
	metrics.ObserveRenderDurationMs(metrics.SinceMillis(start))
	if err != nil {
		return Generation{}, err
	}

	id := s.newID()
	key := StorageKey(id)
	size, err := s.Store.Put(ctx, key, render.MimeDOCX, bytes.NewReader(docx))
	if err != nil {
		return Generation{}, fmt.Errorf("store artifact: %w", err)
	}

	gen := Generation{
		ID:          id,
		StorageKey:  key,
		MimeType:    render.MimeDOCX,
		SizeBytes:   size,
		Checksum:    util.Checksum(docx),
		ColorScheme: string(resolved.Scheme),
		FontSize:    string(resolved.Size),
		FontFamily:  resolved.FontFamily,
		Enhanced:    enhanced,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Create(ctx, gen); err != nil {
		return Generation{}, fmt.Errorf("record generation: %w", err)
	}
	return gen, nil
}

func (s *Service) shouldEnhance(opts Options) bool {
	if s.Enhancer == nil {
		return false
	}
	if opts.Enhance != nil {
		return *opts.Enhance
	}
	return s.EnhanceDefault
}

// Get returns generation metadata by id.
func (s *Service) Get(ctx context.Context, id string) (Generation, error) {
	if id == "" {
		return Generation{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// Open returns the stored artifact for id. The caller closes the reader.
func (s *Service) Open(ctx context.Context, id string) (Generation, io.ReadCloser, error) {
	gen, err := s.Get(ctx, id)
	if err != nil {
		return Generation{}, nil, err
	}
	return s.openArtifact(ctx, gen)
}

// OpenLatest returns the most recently generated artifact.
func (s *Service) OpenLatest(ctx context.Context) (Generation, io.ReadCloser, error) {
	gen, err := s.Repo.Latest(ctx)
	if err != nil {
		return Generation{}, nil, err
	}
	return s.openArtifact(ctx, gen)
}

func (s *Service) openArtifact(ctx context.Context, gen Generation) (Generation, io.ReadCloser, error) {
	rc, err := s.Store.Open(ctx, gen.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Generation{}, nil, ErrNotFound
		}
		return Generation{}, nil, err
	}
	return gen, rc, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
