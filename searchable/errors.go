package searchable

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type ErrorKind string

const (
	ErrMissingFields      ErrorKind = "missing_fields"
	ErrMissingWeights     ErrorKind = "missing_weights"
	ErrInvalidWeight      ErrorKind = "invalid_weight"
	ErrDialectUnavailable ErrorKind = "dialect_unavailable"
	ErrUnknownRelation    ErrorKind = "unknown_relation"
	ErrRender             ErrorKind = "render"
)

const missingFieldsMessage = "no searchable fields: define a default field set (implement SearchableFields) or pass fields explicitly"

type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Field != "" {
		base = fmt.Sprintf("%s (field=%s)", base, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func MissingFieldsError() *Error {
	return &Error{Kind: ErrMissingFields, Message: missingFieldsMessage}
}

func MissingWeightsError() *Error {
	return &Error{Kind: ErrMissingWeights, Message: "ranked search needs at least one weighted field"}
}

func InvalidWeightError(field string, w float64) *Error {
	return &Error{Kind: ErrInvalidWeight, Field: field, Message: fmt.Sprintf("weight must be positive and finite, got %g", w)}
}

func DialectUnavailableError(cause error) *Error {
	return &Error{Kind: ErrDialectUnavailable, Message: "connection cannot report its dialect", Cause: cause}
}

func UnknownRelationError(name string) *Error {
	return &Error{Kind: ErrUnknownRelation, Message: fmt.Sprintf("unknown relation: %s", name)}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
