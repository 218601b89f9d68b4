package model

import (
	"encoding/json"
	"errors"
	"strings"
)

// ResumeData represents the canonical resume payload accepted by the generator.
type ResumeData struct {
	Name            string          `json:"name" validate:"required"`
	Email           string          `json:"email" validate:"required"`
	Phone           string          `json:"phone" validate:"required"`
	Location        string          `json:"location" validate:"required"`
	Summary         string          `json:"summary" validate:"required"`
	TechnicalSkills []string        `json:"technicalSkills"`
	SoftSkills      []string        `json:"softSkills"`
	Experience      []Experience    `json:"experience" validate:"dive"`
	Education       []Education     `json:"education,omitempty" validate:"dive"`
	Projects        []Project       `json:"projects,omitempty" validate:"dive"`
	Certifications  []Certification `json:"certifications,omitempty" validate:"dive"`
	Achievements    []Achievement   `json:"achievements,omitempty" validate:"dive"`
	Activities      []Activity      `json:"activities,omitempty" validate:"dive"`
	Languages       []Language      `json:"languages,omitempty" validate:"dive"`
	Hobbies         FreeText        `json:"hobbies,omitempty"`
}

// Experience represents a work history entry.
type Experience struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

// Education represents an education entry.
type Education struct {
	School         string `json:"school" validate:"required"`
	Degree         string `json:"degree,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// Project represents a notable project.
type Project struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Link         string `json:"link,omitempty"`
}

// Certification represents a certification or online course.
type Certification struct {
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Achievement represents an award or discrete achievement.
type Achievement struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Activity represents extra-curricular or volunteer work.
type Activity struct {
	Title        string `json:"title" validate:"required"`
	Organization string `json:"organization,omitempty"`
	Date         string `json:"date,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Language is a spoken language with a free-form proficiency.
type Language struct {
	Name        string `json:"name" validate:"required"`
	Proficiency string `json:"proficiency,omitempty"`
}

// FreeText accepts either a JSON string or a list of strings. Lists are joined
// with ", " so older clients posting hobbies as an array keep working.
type FreeText string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FreeText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FreeText(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("must be a string or a list of strings")
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			parts = append(parts, v)
		}
	}
	*f = FreeText(strings.Join(parts, ", "))
	return nil
}

// String returns the text value.
func (f FreeText) String() string {
	return string(f)
}
