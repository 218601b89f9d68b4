package model

import "fmt"

// ValidationKind classifies a validation failure.
type ValidationKind string

const (
	KindMissing      ValidationKind = "missing"
	KindEmpty        ValidationKind = "empty"
	KindTypeMismatch ValidationKind = "type_mismatch"
	KindInvalid      ValidationKind = "invalid"
)

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field  string
	Kind   ValidationKind
	Detail string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissing:
		return "Missing required field: " + e.Field
	case KindEmpty:
		return "Field cannot be empty: " + e.Field
	case KindTypeMismatch:
		if e.Detail != "" {
			return fmt.Sprintf("%s must be %s", e.Field, e.Detail)
		}
		return e.Field + " has the wrong type"
	default:
		if e.Field == "" {
			return "Invalid resume data: " + e.Detail
		}
		return fmt.Sprintf("Invalid field %s: %s", e.Field, e.Detail)
	}
}
