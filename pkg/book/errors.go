package book

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks malformed or missing input, rejected before any external call.
	ErrValidation = errors.New("validation failed")
	// ErrCredentialMissing marks an absent API key.
	ErrCredentialMissing = errors.New("credential missing")
	// ErrGeneration marks a failed, timed out or schema-invalid model call.
	ErrGeneration = errors.New("generation failed")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CredentialError names the missing key.
type CredentialError struct {
	Name string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: %s is not set", ErrCredentialMissing, e.Name)
}

func (e *CredentialError) Unwrap() error { return ErrCredentialMissing }
