package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/telemetry"
)

// Section selects the prompt template for a piece of text.
type Section string

const (
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionSkills     Section = "skills"
)

// Reason classifies why enhancement fell back to the original text.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonSkipped      Reason = "skipped"
	ReasonUnsupported  Reason = "unsupported_section"
	ReasonStatus       Reason = "status"
	ReasonTimeout      Reason = "timeout"
	ReasonTransport    Reason = "transport"
	ReasonNoCandidates Reason = "no_candidates"
	ReasonEmptyContent Reason = "empty_content"
	ReasonMalformed    Reason = "malformed"
)

// Result holds either enhanced text or the reason enhancement did not happen.
type Result struct {
	Text   string
	Reason Reason
	Err    error
}

// OK reports whether Text holds enhanced output.
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// TextOr returns the enhanced text, or original when enhancement failed.
func (r Result) TextOr(original string) string {
	if r.OK() {
		return r.Text
	}
	return original
}

const instructionTemplate = `<s>[INST] You are a professional resume writer. Your task is to enhance the following text while maintaining accuracy and professionalism. Keep the core information unchanged but make it more impactful:

%s

Respond with only the enhanced text, no explanations or additional formatting. [/INST]</s>`

var sectionPrompts = map[Section]string{
	SectionSummary:    "As a professional resume writer, enhance this summary while keeping the same core information and being truthful: %s",
	SectionExperience: "As a professional resume writer, enhance this job experience with strong action verbs and quantifiable achievements while keeping the same core information and being truthful: %s",
	SectionSkills:     "As a professional resume writer, organize and enhance this list of skills with industry-standard terminology while keeping the same core skills: %s",
}

var instructionMarkers = []string{"[INST]", "[/INST]", "<s>", "</s>"}

// BuildPrompt renders the full instruction prompt for a section.
func BuildPrompt(section Section, text string) (string, error) {
	tmpl, ok := sectionPrompts[section]
	if !ok {
		return "", fmt.Errorf("unsupported section %q", section)
	}
	return fmt.Sprintf(instructionTemplate, fmt.Sprintf(tmpl, text)), nil
}

// Clean strips instruction markers and surrounding whitespace from generated text.
func Clean(text string) string {
	out := strings.TrimSpace(text)
	for _, marker := range instructionMarkers {
		out = strings.ReplaceAll(out, marker, "")
	}
	return strings.TrimSpace(out)
}

// Enhancer rewrites resume text through a Generator. It never returns an error;
// failures are reported through Result.
type Enhancer struct {
	Generator llm.Generator
	Params    llm.Parameters
}

// New constructs an Enhancer with the default sampling parameters.
func New(gen llm.Generator) *Enhancer {
	return &Enhancer{Generator: gen, Params: llm.DefaultParameters()}
}

// Enhance issues a single generation call for text. Blank input is not sent.
func (e *Enhancer) Enhance(ctx context.Context, section Section, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Reason: ReasonSkipped}
	}
	prompt, err := BuildPrompt(section, text)
	if err != nil {
		return e.fail(section, ReasonUnsupported, err)
	}
	if e == nil || e.Generator == nil {
		return e.fail(section, ReasonSkipped, errors.New("no generator configured"))
	}

	raw, err := e.Generator.Generate(ctx, prompt, e.Params)
	if err != nil {
		return e.fail(section, classify(err), err)
	}
	cleaned := Clean(raw)
	if cleaned == "" {
		return e.fail(section, ReasonEmptyContent, errors.New("generated text is empty after cleanup"))
	}
	return Result{Text: cleaned}
}

func (e *Enhancer) fail(section Section, reason Reason, err error) Result {
	telemetry.Warn("enhance.fallback", map[string]any{
		"section": string(section),
		"reason":  string(reason),
		"error":   err,
	})
	return Result{Reason: reason, Err: err}
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, llm.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, llm.ErrStatus):
		return ReasonStatus
	case errors.Is(err, llm.ErrNoCandidates):
		return ReasonNoCandidates
	case errors.Is(err, llm.ErrEmptyContent):
		return ReasonEmptyContent
	case errors.Is(err, llm.ErrMalformed):
		return ReasonMalformed
	default:
		return ReasonTransport
	}
}
