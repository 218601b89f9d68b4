package main

// Render a sample resume to DOCX without the HTTP server:
//   go run ./cmd/renderdemo -color modern -size large
//   go run ./cmd/renderdemo -in payload.json -out ./out/resume.docx

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-builder/resume/model"
	"resume-builder/resume/render"
	"resume-builder/resume/style"
)

func main() {
	outPath := flag.String("out", "./out/sample_resume.docx", "output path for generated DOCX")
	inPath := flag.String("in", "", "optional JSON payload in the /generate request shape")
	colorScheme := flag.String("color", "", "color scheme (classic, modern, professional, elegant)")
	fontSize := flag.String("size", "", "font size tier (small, normal, large)")
	fontFamily := flag.String("font", "", "font family")
	flag.Parse()

	resume, err := loadResume(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	resolved, err := style.Resolve(style.Config{
		ColorScheme: *colorScheme,
		FontSize:    *fontSize,
		FontFamily:  *fontFamily,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "style failed: %v\n", err)
		os.Exit(1)
	}

	docxBytes, err := render.RenderResume(resume, resolved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutputs(*outPath, resume, docxBytes); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRenderedDocx(*outPath, resume); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s (%s, %s, %s)\n", *outPath, resolved.Scheme, resolved.Size, resolved.FontFamily)
}

func loadResume(path string) (model.ResumeData, error) {
	if path == "" {
		return sampleResume(), nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeData{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return model.ResumeData{}, err
	}
	return model.Decode(raw)
}

func writeOutputs(outPath string, resume model.ResumeData, docxBytes []byte) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, docxBytes, 0o644); err != nil {
		return err
	}

	modelPath := filepath.Join(dir, "sample_resume_model.json")
	payload, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(modelPath, payload, 0o644)
}

func sampleResume() model.ResumeData {
	return model.ResumeData{
		Name:            "Jordan Lee",
		Email:           "jordan.lee@example.com",
		Phone:           "+1-555-0102",
		Location:        "Austin, TX",
		Summary:         "Backend engineer with 8+ years of experience building resilient APIs and data services.",
		TechnicalSkills: []string{"Go", "PostgreSQL", "AWS", "Docker"},
		SoftSkills:      []string{"Mentoring", "Technical writing"},
		Experience: []model.Experience{
			{
				Title:       "Senior Backend Engineer",
				Company:     "Acme Logistics",
				Dates:       "2021 - Present",
				Description: "Designed a routing service that reduced shipment latency by 18%.",
			},
			{
				Title:       "Backend Engineer",
				Company:     "Blue Harbor Systems",
				Dates:       "2018 - 2021",
				Description: "Built event-driven ingestion pipelines for compliance data feeds.",
			},
		},
		Education: []model.Education{
			{School: "University of Texas", Degree: "BSc Computer Science", GraduationDate: "2017"},
		},
		Certifications: []model.Certification{
			{Name: "AWS Solutions Architect", Issuer: "Amazon", Date: "2022"},
		},
		Languages: []model.Language{
			{Name: "English", Proficiency: "Native"},
			{Name: "Spanish", Proficiency: "Conversational"},
		},
		Hobbies: "Chess, trail running",
	}
}

func validateRenderedDocx(path string, resume model.ResumeData) error {
	docxBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text, err := render.PlainText(docxBytes)
	if err != nil {
		return err
	}
	want := strings.ToUpper(strings.TrimSpace(resume.Name))
	first, _, _ := strings.Cut(text, "\n")
	if first != want {
		return fmt.Errorf("expected first paragraph %q, got %q", want, first)
	}
	if !strings.Contains(text, render.HeadingSummary) {
		return fmt.Errorf("summary heading missing from rendered document")
	}
	return nil
}
