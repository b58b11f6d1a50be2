package argfn

import (
	"errors"
	"fmt"
)

// BindError reports that a set of call arguments could not satisfy a
// callable's declared parameters under strict binding.
type BindError struct {
	Target  string
	Pos     []any
	Kw      Values
	Missing []string
	Reason  string
	Cause   error
}

func (e *BindError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("cannot bind arguments pos=%v kw=%v to %q: missing required parameters %v", e.Pos, e.Kw, e.Target, e.Missing)
	}
	return fmt.Sprintf("cannot bind arguments pos=%v kw=%v to %q: %s", e.Pos, e.Kw, e.Target, e.Reason)
}

func (e *BindError) Unwrap() error {
	return e.Cause
}

// IsBindError reports whether err is (or wraps) a *BindError.
func IsBindError(err error) bool {
	var be *BindError
	return errors.As(err, &be)
}

func newBindError(target string, pos []any, kw Values, reason string) *BindError {
	return &BindError{
		Target: target,
		Pos:    pos,
		Kw:     kw,
		Reason: reason,
	}
}

// safeAssert performs a safe type assertion with a proper error instead of
// a runtime panic when a value bound to a parameter has the wrong type.
func safeAssert[T any](value any) (T, error) {
	if value == nil {
		var zero T
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("type assertion error: expected %T, got %T (value: %v)", zero, value, value)
	}

	return typed, nil
}
