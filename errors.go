package es5

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why the pipeline gave up. It is not a family of Go
// types in its own right (unlike the historic split into LexicalError/
// SyntaxError/InternalAssertion) because the three only ever differ in the
// message they carry and in whether a stack trace is worth keeping around.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	InternalAssertion
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case InternalAssertion:
		return "internal assertion"
	default:
		return "error"
	}
}

// Error is the single error type every stage of the pipeline returns.
// Position pinpoints the offending token/rune; Token, when non-nil,
// documents the token the parser was looking at.
type Error struct {
	Kind ErrorKind
	Position
	Context string
	Token   *Token
	cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Context)
	if e.Token != nil {
		msg = fmt.Sprintf("%s. %s", msg, e.Token)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func lexError(pos Position, context string) error {
	return errors.WithStack(&Error{Kind: LexicalError, Position: pos, Context: context})
}

func lexErrorf(pos Position, format string, args ...any) error {
	return lexError(pos, fmt.Sprintf(format, args...))
}

func syntaxError(pos Position, tok Token, context string) error {
	t := tok
	return errors.WithStack(&Error{Kind: SyntaxError, Position: pos, Context: context, Token: &t})
}

func unexpectedToken(tok Token, expected string) error {
	context := "unexpected token"
	if expected != "" {
		context = fmt.Sprintf("expected %s, got unexpected token", expected)
	}
	return syntaxError(tok.Position, tok, context)
}

func assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(errors.Wrapf(&Error{Kind: InternalAssertion, Context: fmt.Sprintf(format, args...)}, "internal assertion failed"))
}
