package render

import (
	"errors"
	"fmt"
	"strings"

	"resume-builder/resume/model"
	"resume-builder/resume/style"
)

// Section headings in document order.
const (
	HeadingSummary        = "Professional Summary"
	HeadingSkills         = "Technical & Soft Skills"
	HeadingEducation      = "Education"
	HeadingExperience     = "Professional Experience"
	HeadingProjects       = "Projects"
	HeadingCertifications = "Certifications / Online Courses"
	HeadingAchievements   = "Achievements / Awards"
	HeadingActivities     = "Extra-curricular / Volunteer Activities"
	HeadingLanguages      = "Languages Known"
	HeadingHobbies        = "Hobbies / Interests"
)

type builder struct {
	st     style.Resolved
	blocks []Block
}

// Build maps a validated resume onto an ordered block sequence. The output is a
// pure function of its inputs.
func Build(resume model.ResumeData, st style.Resolved) (Document, error) {
	if strings.TrimSpace(resume.Name) == "" {
		return Document{}, &RenderError{Section: "name", Err: errors.New("name is required")}
	}
	if st.Sizes == (style.Sizes{}) {
		return Document{}, &RenderError{Section: "style", Err: errors.New("style is not resolved")}
	}

	b := &builder{st: st}
	b.header(resume)
	b.summary(resume.Summary)
	b.skills(resume.TechnicalSkills, resume.SoftSkills)
	b.education(resume.Education)
	b.experience(resume.Experience)
	b.projects(resume.Projects)
	b.certifications(resume.Certifications)
	b.achievements(resume.Achievements)
	b.activities(resume.Activities)
	b.languages(resume.Languages)
	b.hobbies(resume.Hobbies.String())

	return Document{FontFamily: st.FontFamily, Blocks: b.blocks}, nil
}

func (b *builder) add(kind BlockKind, align Alignment, runs ...Run) {
	b.blocks = append(b.blocks, Block{Kind: kind, Align: align, Runs: runs})
}

func (b *builder) paragraph(runs ...Run) {
	b.add(KindParagraph, AlignLeft, runs...)
}

func (b *builder) bullet(runs ...Run) {
	b.add(KindBullet, AlignLeft, runs...)
}

func (b *builder) heading(text string) {
	color := b.st.Heading
	b.add(KindHeading, AlignLeft, Run{Text: text, Bold: true, Color: &color, SizePt: b.st.Sizes.Heading})
}

func (b *builder) text(s string) Run {
	return Run{Text: s, SizePt: b.st.Sizes.Normal}
}

func (b *builder) bold(s string) Run {
	return Run{Text: s, Bold: true, SizePt: b.st.Sizes.Normal}
}

func (b *builder) italic(s string) Run {
	return Run{Text: s, Italic: true, SizePt: b.st.Sizes.Normal}
}

func (b *builder) header(resume model.ResumeData) {
	b.add(KindParagraph, AlignCenter, Run{Text: strings.ToUpper(resume.Name), Bold: true, SizePt: b.st.Sizes.Name})
	contact := fmt.Sprintf("%s | %s | %s", resume.Email, resume.Phone, resume.Location)
	b.add(KindParagraph, AlignCenter, b.text(contact))
	b.paragraph()
}

func (b *builder) summary(summary string) {
	b.heading(HeadingSummary)
	b.paragraph(b.text(summary))
}

func (b *builder) skills(technical, soft []string) {
	b.heading(HeadingSkills)
	b.paragraph(b.bold("Technical Skills: "), b.text(strings.Join(technical, ", ")))
	b.paragraph(b.bold("Soft Skills: "), b.text(strings.Join(soft, ", ")))
}

func (b *builder) education(items []model.Education) {
	if len(items) == 0 {
		return
	}
	b.heading(HeadingEducation)
	for _, edu := range items {
		runs := []Run{b.bold(edu.School)}
		if present(edu.Degree) {
			runs = append(runs, b.text(" - "), b.text(edu.Degree))
		}
		b.paragraph(runs...)

		var details []string
		if present(edu.GraduationDate) {
			details = append(details, "Graduation: "+edu.GraduationDate)
		}
		if present(edu.GPA) {
			details = append(details, "GPA: "+edu.GPA)
		}
		if len(details) > 0 {
			b.paragraph(b.italic(strings.Join(details, " | ")))
		}
	}
}

func (b *builder) experience(items []model.Experience) {
	b.heading(HeadingExperience)
	for _, exp := range items {
		b.paragraph(b.bold(exp.Company))

		sub := b.st.Subheading
		runs := []Run{{Text: exp.Title, Color: &sub, SizePt: b.st.Sizes.Normal}}
		if present(exp.Dates) {
			runs = append(runs, b.italic(" | "+exp.Dates))
		}
		b.paragraph(runs...)

		if present(exp.Description) {
			b.bullet(b.text(exp.Description))
		}
	}
}

func (b *builder) projects(items []model.Project) {
	if len(items) == 0 {
		return
	}
	b.heading(HeadingProjects)
	for _, p := range items {
		b.paragraph(b.bold(p.Title))
		if present(p.Technologies) {
			b.paragraph(b.italic("Technologies: " + p.Technologies))
		}
		if present(p.Description) {
			b.bullet(b.text(p.Description))
		}
	}
}

func (b *builder) certifications(items []model.Certification) {
	if len(items) == 0 {
		return
	}
	b.heading(HeadingCertifications)
	for _, c := range items {
		runs := []Run{b.text(joinDash(c.Name, c.Issuer))}
		if present(c.Date) {
			runs = append(runs, b.italic(" ("+c.Date+")"))
		}
		b.bullet(runs...)
	}
}

func (b *builder) achievements(items []model.Achievement) {
	if len(items) == 0 {
		return
	}
	b.heading(HeadingAchievements)
	for _, a := range items {
		runs := []Run{b.bold(a.Title)}
		if present(a.Date) {
			runs = append(runs, b.italic(" ("+a.Date+")"))
		}
		b.bullet(runs...)
		if present(a.Description) {
			b.paragraph(b.text(a.Description))
		}
	}
}

func (b *builder) activities(items []model.Activity) {
	if len(items) == 0 {
		return
	}
	b.heading(HeadingActivities)
	for _, a := range items {
		runs := []Run{b.bold(joinDash(a.Title, a.Organization))}
		if present(a.Date) {
			runs = append(runs, b.italic(" ("+a.Date+")"))
		}
		b.bullet(runs...)
		if present(a.Description) {
			b.paragraph(b.text(a.Description))
		}
	}
}

func (b *builder) languages(items []model.Language) {
	if len(items) == 0 {
		return
	}
	b.heading(HeadingLanguages)
	runs := make([]Run, 0, len(items)*2)
	for i, lang := range items {
		if i > 0 {
			runs = append(runs, b.text(" | "))
		}
		label := lang.Name
		if present(lang.Proficiency) {
			label = fmt.Sprintf("%s (%s)", lang.Name, lang.Proficiency)
		}
		runs = append(runs, b.text(label))
	}
	b.paragraph(runs...)
}

func (b *builder) hobbies(text string) {
	if !present(text) {
		return
	}
	b.heading(HeadingHobbies)
	b.paragraph(b.text(text))
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func joinDash(head, tail string) string {
	if present(tail) {
		return head + " - " + tail
	}
	return head
}
