package spatialsql

import (
	"errors"
	"fmt"

	"github.com/roach88/tdgeo/internal/spatialir"
)

// ErrorCode categorizes translation failures.
type ErrorCode string

const (
	// ErrCodeIO indicates the output sink rejected a write.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeUnsupportedPredicate indicates a predicate kind the mapper cannot express.
	ErrCodeUnsupportedPredicate ErrorCode = "UNSUPPORTED_PREDICATE"

	// ErrCodeGeometryEvaluation indicates a literal that is not a usable geometry.
	ErrCodeGeometryEvaluation ErrorCode = "GEOMETRY_EVALUATION"

	// ErrCodeInvalidPredicate indicates a malformed node (nil child, negative distance).
	ErrCodeInvalidPredicate ErrorCode = "INVALID_PREDICATE"
)

// TranslateError is returned by every failing translation.
// All translation errors are fatal; there are no retries.
type TranslateError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Kind is the spatial kind being translated, when known.
	Kind spatialir.Kind

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *TranslateError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Kind != spatialir.KindUnknown {
		msg = fmt.Sprintf("%s (kind=%s)", msg, e.Kind)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *TranslateError) Unwrap() error {
	return e.Err
}

func ioError(err error) *TranslateError {
	return &TranslateError{Code: ErrCodeIO, Message: "write to SQL sink failed", Err: err}
}

func unsupported(kind spatialir.Kind, node string) *TranslateError {
	return &TranslateError{
		Code:    ErrCodeUnsupportedPredicate,
		Message: fmt.Sprintf("unsupported %s predicate %s", node, kind),
		Kind:    kind,
	}
}

func geometryError(kind spatialir.Kind, err error) *TranslateError {
	return &TranslateError{
		Code:    ErrCodeGeometryEvaluation,
		Message: "literal does not evaluate to a geometry",
		Kind:    kind,
		Err:     err,
	}
}

func invalid(kind spatialir.Kind, format string, args ...any) *TranslateError {
	return &TranslateError{
		Code:    ErrCodeInvalidPredicate,
		Message: fmt.Sprintf(format, args...),
		Kind:    kind,
	}
}

// IsIOError reports whether err is a sink write failure.
// Uses errors.As to handle wrapped errors.
func IsIOError(err error) bool {
	return hasCode(err, ErrCodeIO)
}

// IsUnsupportedPredicate reports whether err rejects a predicate kind.
func IsUnsupportedPredicate(err error) bool {
	return hasCode(err, ErrCodeUnsupportedPredicate)
}

// IsGeometryEvaluation reports whether err is a literal evaluation failure.
func IsGeometryEvaluation(err error) bool {
	return hasCode(err, ErrCodeGeometryEvaluation)
}

// IsInvalidPredicate reports whether err is a malformed-node failure.
func IsInvalidPredicate(err error) bool {
	return hasCode(err, ErrCodeInvalidPredicate)
}

func hasCode(err error, code ErrorCode) bool {
	var te *TranslateError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}
