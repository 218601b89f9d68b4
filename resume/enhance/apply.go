package enhance

import (
	"context"
	"strings"

	"resume-builder/resume/model"
)

// Report counts enhancement outcomes for one resume.
type Report struct {
	Attempted int
	Enhanced  int
	Fallbacks map[Reason]int
}

func (r *Report) record(res Result) {
	if res.Reason == ReasonSkipped {
		return
	}
	r.Attempted++
	if res.OK() {
		r.Enhanced++
		return
	}
	if r.Fallbacks == nil {
		r.Fallbacks = make(map[Reason]int)
	}
	r.Fallbacks[res.Reason]++
}

// Apply enhances the summary, each experience description and both skills lists.
// The input is not modified; every failed section keeps its original text.
func (e *Enhancer) Apply(ctx context.Context, data model.ResumeData) (model.ResumeData, Report) {
	var report Report
	out := data

	res := e.Enhance(ctx, SectionSummary, data.Summary)
	report.record(res)
	out.Summary = res.TextOr(data.Summary)

	if len(data.Experience) > 0 {
		out.Experience = make([]model.Experience, len(data.Experience))
		for i, exp := range data.Experience {
			res := e.Enhance(ctx, SectionExperience, exp.Description)
			report.record(res)
			exp.Description = res.TextOr(exp.Description)
			out.Experience[i] = exp
		}
	}

	out.TechnicalSkills = e.enhanceSkills(ctx, data.TechnicalSkills, &report)
	out.SoftSkills = e.enhanceSkills(ctx, data.SoftSkills, &report)
	return out, report
}

func (e *Enhancer) enhanceSkills(ctx context.Context, skills []string, report *Report) []string {
	if len(skills) == 0 {
		return skills
	}
	res := e.Enhance(ctx, SectionSkills, strings.Join(skills, ", "))
	report.record(res)
	if !res.OK() {
		return skills
	}
	split := SplitSkills(res.Text)
	if len(split) == 0 {
		return skills
	}
	return split
}

// SplitSkills splits generated skills text on commas and newlines, dropping list
// bullets and blanks.
func SplitSkills(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		item := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(f), "-*•"))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
