package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailRegistered = errors.New("email already registered")
	ErrBadCredentials  = errors.New("invalid email or password")
)

// Violation is one field-level problem with a request.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found in a request. Callers
// collect all problems before failing rather than stopping at the first.
type ValidationError struct {
	Violations []Violation
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (e *ValidationError) Add(field, format string, args ...interface{}) {
	e.Violations = append(e.Violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ConfigurationError means authored content (a screening or flow version, or
// one of its rules) is defective. It is fatal for the request and never
// retried; guessing at intent would misreport clinical results.
type ConfigurationError struct {
	Reason string
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// IntegrityError means persisted state violates an engine invariant. It
// signals a programmer defect or a write race, never bad user input.
type IntegrityError struct {
	Reason string
}

func NewIntegrityError(format string, args ...interface{}) *IntegrityError {
	return &IntegrityError{Reason: fmt.Sprintf(format, args...)}
}

func (e *IntegrityError) Error() string {
	return "integrity error: " + e.Reason
}

// EvaluationError wraps a failure inside the sandboxed rule evaluator.
type EvaluationError struct {
	RuleKind string
	Err      error
}

func NewEvaluationError(ruleKind string, err error) *EvaluationError {
	return &EvaluationError{RuleKind: ruleKind, Err: err}
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s rule evaluation failed: %v", e.RuleKind, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
