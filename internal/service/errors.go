package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrPermissionDenied means the access evaluator rejected the operation.
	// Callers must not leak anything about the case beyond "forbidden".
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means the case or document id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrUnrecognizedRole means the actor carries none of the three roles.
	// Scoped operations treat this as a hard failure, never an empty scope.
	ErrUnrecognizedRole = errors.New("user role not recognized")
)

// ValidationError carries a field-level detail map. No partial write occurs
// when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
