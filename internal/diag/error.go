package diag

import (
	"errors"
	"fmt"

	"cobrust/internal/source"
)

// Error — фатальная диагностика в виде значения error.
// Фазы возвращают её вместо паники; CLI печатает её один раз.
type Error struct {
	Diag Diagnostic
}

// Errorf builds an error diagnostic with a formatted message.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diag: NewError(code, primary, fmt.Sprintf(format, args...))}
}

// Wrap converts an arbitrary error into an *Error carrying code.
// An existing *Error in the chain is returned unchanged.
func Wrap(err error, code Code, primary source.Span) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Diag: NewError(code, primary, err.Error())}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Diag.Code.ID(), e.Diag.Message)
}

// Note appends a secondary message and returns the same error.
func (e *Error) Note(sp source.Span, msg string) *Error {
	e.Diag = e.Diag.WithNote(sp, msg)
	return e
}

// Code returns the diagnostic code.
func (e *Error) Code() Code { return e.Diag.Code }

// CodeOf extracts the diagnostic code from err, or UnknownCode.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag.Code
	}
	return UnknownCode
}

// IsCode reports whether err carries code.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
