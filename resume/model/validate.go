package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type fieldShape int

const (
	shapeString fieldShape = iota
	shapeStringList
	shapeList
)

// requiredFields is the declaration order used for fail-fast validation.
var requiredFields = []struct {
	name  string
	shape fieldShape
}{
	{"name", shapeString},
	{"email", shapeString},
	{"phone", shapeString},
	{"location", shapeString},
	{"summary", shapeString},
	{"technicalSkills", shapeStringList},
	{"softSkills", shapeStringList},
	{"experience", shapeList},
}

// optionalLists must be lists when present.
var optionalLists = []string{"education", "projects", "certifications", "achievements", "activities", "languages"}

// ValidateRaw checks the decoded JSON payload before any typed decoding. It stops
// at the first violation in field declaration order.
func ValidateRaw(raw map[string]any) error {
	if raw == nil {
		return &ValidationError{Field: requiredFields[0].name, Kind: KindMissing}
	}
	for _, field := range requiredFields {
		value, ok := raw[field.name]
		if !ok {
			return &ValidationError{Field: field.name, Kind: KindMissing}
		}
		if isEmptyValue(value) {
			return &ValidationError{Field: field.name, Kind: KindEmpty}
		}
		if err := checkShape(field.name, field.shape, value); err != nil {
			return err
		}
	}
	for _, name := range optionalLists {
		value, ok := raw[name]
		if !ok || value == nil {
			continue
		}
		if _, isList := value.([]any); !isList {
			return &ValidationError{Field: name, Kind: KindTypeMismatch, Detail: "a list"}
		}
	}
	return nil
}

func checkShape(name string, shape fieldShape, value any) error {
	switch shape {
	case shapeString:
		if _, ok := value.(string); !ok {
			return &ValidationError{Field: name, Kind: KindTypeMismatch, Detail: "a string"}
		}
	case shapeStringList:
		items, ok := value.([]any)
		if !ok {
			return &ValidationError{Field: name, Kind: KindTypeMismatch, Detail: "a list"}
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				return &ValidationError{Field: fmt.Sprintf("%s[%d]", name, i), Kind: KindTypeMismatch, Detail: "a string"}
			}
		}
	case shapeList:
		if _, ok := value.([]any); !ok {
			return &ValidationError{Field: name, Kind: KindTypeMismatch, Detail: "a list"}
		}
	}
	return nil
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

var (
	structValidatorOnce sync.Once
	structValidator     *validator.Validate
)

func getValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		structValidator = v
	})
	return structValidator
}

// Decode validates raw and converts it into ResumeData. Nested entries are checked
// for their own required fields after the top-level pass succeeds.
func Decode(raw map[string]any) (ResumeData, error) {
	if err := ValidateRaw(raw); err != nil {
		return ResumeData{}, err
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return ResumeData{}, &ValidationError{Kind: KindInvalid, Detail: err.Error()}
	}
	var data ResumeData
	if err := json.Unmarshal(payload, &data); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ResumeData{}, &ValidationError{Field: typeErr.Field, Kind: KindTypeMismatch, Detail: "a " + typeErr.Type.String()}
		}
		return ResumeData{}, &ValidationError{Kind: KindInvalid, Detail: err.Error()}
	}

	if err := ValidateEntries(data); err != nil {
		return ResumeData{}, err
	}
	return data, nil
}

// ValidateEntries runs struct-level rules over a typed ResumeData and reports the
// first failing field.
func ValidateEntries(data ResumeData) error {
	err := getValidator().Struct(data)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Kind: KindInvalid, Detail: err.Error()}
	}
	first := fieldErrs[0]
	field := strings.TrimPrefix(first.Namespace(), "ResumeData.")
	if first.Tag() == "required" {
		return &ValidationError{Field: field, Kind: KindMissing}
	}
	return &ValidationError{Field: field, Kind: KindInvalid, Detail: first.Tag()}
}
