// Package diagnostics defines the single fatal error carrier used across
// the pipeline: parse (illegal characters surface here, as the lexer
// itself reports none), unify, and sign-analysis setup.
package diagnostics

import (
	"fmt"

	"github.com/chopinballadeno4/static-program-analysis/internal/token"
)

// Code identifies the class of a diagnostic.
type Code string

const (
	ErrLex001   Code = "LEX001" // illegal character
	ErrParse001 Code = "PARSE001"
	ErrParse002 Code = "PARSE002"
	ErrParse003 Code = "PARSE003"
	ErrParse004 Code = "PARSE004"
	ErrType001  Code = "TYPE001" // unification failure
	ErrCFG001   Code = "CFG001"  // program has no function named main
)

// DiagnosticError is a fatal, position-carrying error.
type DiagnosticError struct {
	Code    Code
	Pos     token.Token
	Message string
	// Offending holds the two conflicting type terms, rendered, for
	// ErrType001 diagnostics.
	Offending [2]string
}

func (e *DiagnosticError) Error() string {
	if e.Offending[0] != "" || e.Offending[1] != "" {
		return fmt.Sprintf("%s:%d:%d: %s (%s vs %s)", e.Code, e.Pos.Line, e.Pos.Column, e.Message, e.Offending[0], e.Offending[1])
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Code, e.Pos.Line, e.Pos.Column, e.Message)
}

// NewError constructs a DiagnosticError positioned at pos.
func NewError(code Code, pos token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Pos: pos, Message: message}
}

// NewTypeError constructs a unification failure between two offending
// type terms.
func NewTypeError(pos token.Token, message string, t1, t2 fmt.Stringer) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrType001,
		Pos:       pos,
		Message:   message,
		Offending: [2]string{t1.String(), t2.String()},
	}
}
