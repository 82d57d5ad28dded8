package mathovi

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrInvalidExpr is the panic value when rendering a tree that could not have
// come from the parser.
var ErrInvalidExpr = errors.NewKind("mathovi: invalid expression: %s")

// Ellipsis is the rendering of a Dots node.
const Ellipsis = `\ldots`

// Infinity is the rendering of a literal too large to represent.
const Infinity = `\infty`

// Times is placed between two literal factors of a product.
const Times = `\cdot`

// Render produces the LaTeX math-mode form of an expression. Every operand is
// wrapped in its own braces. Render panics with an ErrInvalidExpr error if e
// is malformed, e.g. a call with the wrong number of arguments.
func Render(e *Expr) string {
	var b strings.Builder
	e.render(&b)
	return b.String()
}

// RenderAll renders each expression in order.
func RenderAll(es []*Expr) []string {
	r := make([]string, len(es))
	for i, e := range es {
		r[i] = Render(e)
	}
	return r
}

// Convert parses src and renders each statement. It returns no fragments if
// any statement fails to parse.
func Convert(src string, opts ...ParseOption) ([]string, error) {
	es, err := ParseString(src, opts...)
	if err != nil {
		return nil, err
	}
	return RenderAll(es), nil
}

func (e *Expr) render(b *strings.Builder) {
	if e == nil {
		panic(ErrInvalidExpr.New("nil node"))
	}
	switch e.Kind {
	case ExprSym:
		b.WriteByte('{')
		b.WriteRune(e.Sym)
		b.WriteByte('}')
	case ExprVal:
		b.WriteByte('{')
		if math.IsInf(e.Val, 1) {
			b.WriteString(Infinity)
		} else {
			b.WriteString(strconv.FormatFloat(e.Val, 'f', -1, 64))
		}
		b.WriteByte('}')
	case ExprDots:
		b.WriteString(Ellipsis)
	case ExprUnary:
		if e.Op != OpSub {
			panic(ErrInvalidExpr.New("unary operator " + e.Op.String()))
		}
		b.WriteByte('-')
		e.Left.braced(b, false)
	case ExprBinary:
		e.renderBinary(b)
	case ExprFunc:
		if !e.Fn.CanCall(len(e.Args)) {
			panic(ErrInvalidExpr.New(fmt.Sprintf("%s takes %d arguments but has %d", e.Fn, e.Fn.Arity(), len(e.Args))))
		}
		args := make([]interface{}, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Render(arg)
		}
		fmt.Fprintf(b, e.Fn.info().tmpl, args...)
	default:
		panic(ErrInvalidExpr.New("node kind " + e.Kind.String()))
	}
}

func (e *Expr) renderBinary(b *strings.Builder) {
	switch e.Op {
	case OpAdd, OpSub, OpPow, OpEquals:
		e.Left.braced(b, false)
		b.WriteByte(' ')
		b.WriteString(ops[e.Op].tex)
		b.WriteByte(' ')
		e.Right.braced(b, false)
	case OpMult:
		e.Left.braced(b, e.Left.isSum())
		if e.Left.Kind == ExprVal && e.Right.Kind == ExprVal {
			b.WriteString(" " + Times + " ")
		}
		e.Right.braced(b, e.Right.isSum())
	case OpFrac:
		b.WriteString(`\frac`)
		e.Left.braced(b, false)
		e.Right.braced(b, false)
	default:
		panic(ErrInvalidExpr.New("binary operator " + e.Op.String()))
	}
}

// braced renders e inside braces, and additionally inside parentheses if
// paren is set.
func (e *Expr) braced(b *strings.Builder, paren bool) {
	b.WriteByte('{')
	if paren {
		b.WriteByte('(')
	}
	e.render(b)
	if paren {
		b.WriteByte(')')
	}
	b.WriteByte('}')
}

// isSum reports whether e is an addition or subtraction.
func (e *Expr) isSum() bool {
	return e != nil && e.Kind == ExprBinary && (e.Op == OpAdd || e.Op == OpSub)
}
