package wrappers

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidUUID          = errors.New("uuid must be exactly 16 bytes")
	ErrTimestampOutOfRange  = errors.New("timestamp out of range")
	ErrDurationOutOfRange   = errors.New("duration out of range")
	ErrUnsupportedWrapper   = errors.New("unsupported wrapper type")
	ErrWrapperFieldMismatch = errors.New("wrapper value has unexpected field")
)

// NonNullError reports that a wrapper-typed field declared non-null was
// absent while a message was being constructed.
type NonNullError struct {
	Field  string // field name, e.g. "id"
	Option string // governing field option, e.g. "(wrap).non_null"
}

func (e *NonNullError) Error() string {
	return fmt.Sprintf("field %s is required to be non-null by option %s but was absent", e.Field, e.Option)
}

// RequireNonNull returns *v, or a *NonNullError naming field and option when
// v is nil.
func RequireNonNull[T any](field, option string, v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, &NonNullError{Field: field, Option: option}
	}
	return *v, nil
}
