package eval

import (
	"fmt"

	"github.com/forgelang/forge/lang/token"
	"github.com/forgelang/forge/lang/value"
)

// Kind distinguishes the category of an evaluation error, for recoverability
// rather than for typing: scripts never inspect it directly; a Go caller can
// read it from *Error to tell e.g. a division-by-zero apart from a missing
// name, and it appears in the error text.
type Kind int

const (
	KindName Kind = iota
	KindType
	KindBounds
	KindArithmetic
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name error"
	case KindType:
		return "type error"
	case KindBounds:
		return "bounds error"
	case KindArithmetic:
		return "arithmetic error"
	case KindResource:
		return "resource error"
	default:
		return "error"
	}
}

// Error is a single evaluation failure. All evaluation errors are
// human-readable strings with enough context to identify the failed
// operation; Kind only tags the category.
type Error struct {
	Kind Kind
	Pos  token.Pos
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg) }

func newError(kind Kind, pos token.Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func nameErr(pos token.Pos, format string, args ...any) error {
	return newError(KindName, pos, format, args...)
}

func typeErr(pos token.Pos, format string, args ...any) error {
	return newError(KindType, pos, format, args...)
}

func boundsErr(pos token.Pos, format string, args ...any) error {
	return newError(KindBounds, pos, format, args...)
}

func arithErr(pos token.Pos, format string, args ...any) error {
	return newError(KindArithmetic, pos, format, args...)
}

func resourceErr(pos token.Pos, format string, args ...any) error {
	return newError(KindResource, pos, format, args...)
}

// returnSignal unwinds block execution up to the enclosing function call. It
// is carried through the normal error-return path but is not itself a
// failure.
type returnSignal struct {
	Value value.Value
}

func (r *returnSignal) Error() string { return "return outside of a function" }
