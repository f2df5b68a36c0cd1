// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"strings"
)

// ValidationError aggregates every violated constraint of a request body.
// Its message is the comma-joined list of all violations, not just the
// first one found.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// Helper constructor
func NewValidation(messages []string) error {
	return &ValidationError{Messages: messages}
}

// UnsupportedFieldError means a rule references a field with no entry in
// the coercion table.
type UnsupportedFieldError struct {
	Field string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("unsupported field: %s", e.Field)
}

func NewUnsupportedField(field string) error {
	return &UnsupportedFieldError{Field: field}
}

// UnsupportedOperatorError means a rule uses a comparison symbol outside
// the operator table.
type UnsupportedOperatorError struct {
	Operator string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator: %s", e.Operator)
}

func NewUnsupportedOperator(operator string) error {
	return &UnsupportedOperatorError{Operator: operator}
}

// CoercionError means a rule value cannot be read under its field's
// semantic type. Coercion fails loudly; no NaN or zero-time sentinel ever
// reaches a store query.
type CoercionError struct {
	Field string
	Value any
	Cause error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("invalid value %v for field %s: %v", e.Value, e.Field, e.Cause)
}

func (e *CoercionError) Unwrap() error { return e.Cause }

func NewCoercion(field string, value any, cause error) error {
	return &CoercionError{Field: field, Value: value, Cause: cause}
}

// StoreError wraps a collaborator failure. Opaque to the core; the boundary
// maps it to a server-side outcome instead of a client error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func NewStore(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
