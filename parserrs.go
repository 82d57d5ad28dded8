package mathovi

import (
	"strconv"
	"strings"
)

// UnexpectedTokenError is an error indicating a token that the grammar does
// not allow where it appears. It implements InputError.
type UnexpectedTokenError struct {
	// Line and Col are the position of the offending token.
	Line, Col int
	// Expected is the set of token kinds that would have been accepted.
	Expected []TokenKind
	// Found is the token that was scanned instead, or nil if there was none.
	Found *Token
}

func (err *UnexpectedTokenError) Error() string {
	var b strings.Builder
	b.WriteString("expected ")
	for i, k := range err.Expected {
		switch {
		case i == 0:
		case i == len(err.Expected)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k.String()))
	}
	b.WriteString(", found ")
	if err.Found == nil {
		b.WriteString("nothing")
	} else {
		b.WriteString(strconv.Quote(err.Found.Text))
	}
	return errpos(err.Line, err.Col, b.String())
}

func (err *UnexpectedTokenError) Pos() (line, col int) {
	return err.Line, err.Col
}

// UnexpectedIdentError is an error indicating a call to a function name that
// is not recognized. It implements InputError.
type UnexpectedIdentError struct {
	// Line and Col are the position of the identifier.
	Line, Col int
	// Ident is the unrecognized name.
	Ident string
}

func (err *UnexpectedIdentError) Error() string {
	return errpos(err.Line, err.Col, "unexpected identifier "+strconv.Quote(err.Ident))
}

func (err *UnexpectedIdentError) Pos() (line, col int) {
	return err.Line, err.Col
}

// UnexpectedEOFError is an error indicating that the input ended where a token
// was required. It implements InputError.
type UnexpectedEOFError struct {
	// Line and Col are the position of the end of the input.
	Line, Col int
}

func (err *UnexpectedEOFError) Error() string {
	return errpos(err.Line, err.Col, "unexpected end of input")
}

func (err *UnexpectedEOFError) Pos() (line, col int) {
	return err.Line, err.Col
}

// ArgumentsError is an error indicating a function call with the wrong number
// of arguments. It implements InputError.
type ArgumentsError struct {
	// Line and Col are the position of the call's open parenthesis.
	Line, Col int
	// Func is the function that was called.
	Func Func
	// Expected is the function's arity.
	Expected int
	// Found is the number of arguments the call supplied.
	Found int
}

func (err *ArgumentsError) Error() string {
	return errpos(err.Line, err.Col, "cannot call "+err.Func.String()+" with "+strconv.Itoa(err.Found)+" arguments, expected "+strconv.Itoa(err.Expected))
}

func (err *ArgumentsError) Pos() (line, col int) {
	return err.Line, err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(line, col int, msg string) string {
	return strconv.Itoa(line) + ":" + strconv.Itoa(col) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based line and column of the token that caused the
	// error.
	Pos() (line, col int)
}

var (
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*UnexpectedIdentError)(nil)
	_ InputError = (*UnexpectedEOFError)(nil)
	_ InputError = (*ArgumentsError)(nil)
	_ InputError = (*LexError)(nil)
)
