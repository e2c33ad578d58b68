package custom_error

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("asset not found")
	ErrInvalidInput = errors.New("invalid input")
)

type CustomError interface {
	Error() string
}

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23505")
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23503")
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: "Value is already used by other resources " + message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// BackendError marks a failure of the persistence backend itself (unreachable,
// rejected query, broken transaction) as opposed to a missing record.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend unavailable during %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func NewBackendError(op string, err error) error {
	if err == nil {
		return nil
	}
	var backendErr *BackendError
	if errors.As(err, &backendErr) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &BackendError{Op: op, Err: err}
}

func IsBackendError(err error) bool {
	var backendErr *BackendError
	return errors.As(err, &backendErr)
}

// InvalidInput wraps a validation message so callers can match it with errors.Is.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
