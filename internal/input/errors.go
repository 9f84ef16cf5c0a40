package input

import (
	"errors"
	"fmt"
)

var ErrSyntax = errors.New("syntax error")

// SyntaxError locates a malformed input. Line is 0 when unknown.
type SyntaxError struct {
	File string
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap exposes both ErrSyntax and the underlying cause.
func (e *SyntaxError) Unwrap() []error {
	return []error{ErrSyntax, e.Err}
}
