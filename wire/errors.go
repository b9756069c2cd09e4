package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Decoding and encoding failures. Every one of them aborts the current pass;
// callers discard the Reader or Writer afterwards.
var (
	ErrTruncated           = errors.New("truncated message: length exceeds remaining input")
	ErrNegativeSize        = errors.New("negative size in length prefix")
	ErrInvalidTag          = errors.New("invalid tag: field number 0")
	ErrUnsupportedWireType = errors.New("unsupported wire type")
	ErrRecursionLimit      = errors.New("too many levels of nesting")
	ErrMessageNotConsumed  = errors.New("message not fully consumed")
	ErrInvalidUTF8         = errors.New("invalid encoding: malformed UTF-8")
	ErrSizeMismatch        = errors.New("serialized length does not match precomputed message size")
)

// FieldError represents an encoding/decoding error with a field path.
type FieldError struct {
	FieldPath []string // e.g., ["person", "home", "street"]
	Err       error    // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("error at proto path %s: %v", strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// WrapField prefixes err's field path with fieldName. Generated code calls it
// while unwinding out of a nested field so the final error names the full path.
func WrapField(err error, fieldName string) error {
	if err == nil {
		return nil
	}

	if fe, ok := err.(*FieldError); ok {
		return &FieldError{
			FieldPath: append([]string{fieldName}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []string{fieldName},
		Err:       err,
	}
}

func unsupportedWireType(wt WireType) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedWireType, wt)
}
